package actions

import (
	"context"
	"fmt"

	"github.com/ochronus/goimgur/internal/utils"
)

// ClearOptions tunes Clear.
type ClearOptions struct {
	// Yes answers both confirmations with yes.
	Yes bool
}

// Clear deletes every live item recorded in the history and then removes
// the history file. The file is kept if any deletion fails.
func (r *Runner) Clear(ctx context.Context, opts ClearOptions) error {
	log := r.app.History
	if !log.Enabled() {
		r.app.Logger.Info("history is disabled, nothing to clear")
		return nil
	}

	exists, err := log.Exists()
	if err != nil {
		return err
	}
	if !exists {
		r.app.Logger.Infof("no history at %s, nothing to clear", log.Path())
		return nil
	}

	ok, err := r.confirm(opts, fmt.Sprintf("Delete every upload recorded in %s?", log.Path()))
	if err != nil || !ok {
		if err == nil {
			r.app.Logger.Info("clear cancelled")
		}
		return err
	}

	live, err := log.Live()
	if err != nil {
		return err
	}
	r.app.Logger.Debugf("%d live item(s) in %s", len(live), log.Path())

	failed, err := r.deleteKeys(ctx, live)
	if err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d deletion(s) failed, %s kept", ErrClearAborted, failed, len(live), log.Path())
	}

	ok, err = r.confirm(opts, fmt.Sprintf("Remove %s?", log.Path()))
	if err != nil || !ok {
		if err == nil {
			r.app.Logger.Infof("all uploads deleted, %s kept", log.Path())
		}
		return err
	}

	if err := log.Remove(); err != nil {
		return err
	}
	r.app.Logger.Infof("all uploads deleted, %s removed", log.Path())
	return nil
}

func (r *Runner) confirm(opts ClearOptions, question string) (bool, error) {
	if opts.Yes {
		return true, nil
	}
	return utils.Confirm(r.app.In, r.app.Logger.Out, question)
}
