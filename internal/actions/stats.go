package actions

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/ochronus/goimgur/internal/services/imgur"
)

// Stats prints the remaining API credits as "key: value" lines. The reset
// timestamp is shown as a date in now's location.
func (r *Runner) Stats(ctx context.Context, now time.Time) error {
	credits, err := r.app.Client.GetCredits(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch credits: %w", err)
	}

	for _, line := range renderCredits(credits, now) {
		if _, err := fmt.Fprintln(r.app.Out, line); err != nil {
			return err
		}
	}
	return nil
}

func renderCredits(c *imgur.Credits, now time.Time) []string {
	reset := time.Unix(c.UserReset, 0).In(now.Location())
	return []string{
		fmt.Sprintf("UserLimit: %d", c.UserLimit),
		fmt.Sprintf("UserRemaining: %d", c.UserRemaining),
		fmt.Sprintf("UserReset: %s (%s)", reset.Format("2006-01-02 15:04:05 MST"), humanize.RelTime(reset, now, "ago", "from now")),
		fmt.Sprintf("ClientLimit: %d", c.ClientLimit),
		fmt.Sprintf("ClientRemaining: %d", c.ClientRemaining),
	}
}
