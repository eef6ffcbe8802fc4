// Package actions implements the user-facing operations of the tool: upload,
// delete, clear, stats and config display. Every operation runs strictly
// sequentially. Per-item failures are logged as warnings and the batch goes
// on; the caller turns recorded warnings into a failing exit status via Result.
package actions

import (
	"errors"
	"fmt"

	"github.com/ochronus/goimgur/internal/app"
)

var (
	// ErrWarnings reports that an operation finished but at least one item failed.
	ErrWarnings = errors.New("completed with warnings")
	// ErrClearAborted reports that clear kept the history because a deletion failed.
	ErrClearAborted = errors.New("clean-up aborted")
)

// Runner executes operations against the dependencies held by a container.
type Runner struct {
	app *app.Container
}

// NewRunner creates a Runner
func NewRunner(container *app.Container) *Runner {
	return &Runner{app: container}
}

// Result returns ErrWarnings if any warning was recorded.
func (r *Runner) Result() error {
	if n := r.app.Warnings(); n > 0 {
		return fmt.Errorf("%w: %d warning(s)", ErrWarnings, n)
	}
	return nil
}

// ShowConfig prints the effective credential and history path.
func (r *Runner) ShowConfig() error {
	cfg := r.app.Config
	_, err := fmt.Fprintf(r.app.Out, "APP_ID=%s\nAPP_HISTORY=%s\n", cfg.ClientID, cfg.History)
	return err
}
