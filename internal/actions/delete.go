package actions

import (
	"context"
	"errors"
	"fmt"

	"github.com/ochronus/goimgur/internal/history"
	"github.com/ochronus/goimgur/internal/services/imgur"
)

// Delete deletes every "kind:hash" key in args. Malformed keys and remote
// failures are warnings. It returns how many keys could not be deleted.
func (r *Runner) Delete(ctx context.Context, args []string) (int, error) {
	failed := 0
	keys := make([]history.Key, 0, len(args))
	for _, arg := range args {
		key, err := history.ParseKey(arg)
		if err != nil {
			r.app.Warnf("%s: invalid key, expected image:HASH or album:HASH", arg)
			failed++
			continue
		}
		keys = append(keys, key)
	}

	n, err := r.deleteKeys(ctx, keys)
	return failed + n, err
}

func (r *Runner) deleteKeys(ctx context.Context, keys []history.Key) (int, error) {
	failed := 0
	for _, key := range keys {
		var err error
		switch key.Kind {
		case history.KindAlbum:
			err = r.app.Client.DeleteAlbum(ctx, key.Hash)
		default:
			err = r.app.Client.DeleteImage(ctx, key.Hash)
		}
		if err != nil {
			r.app.Warnf("%s: %s", key, failureMessage(err))
			failed++
			continue
		}

		if err := r.app.History.AppendDeletion(key); err != nil {
			return failed, fmt.Errorf("failed to record deletion of %s: %w", key, err)
		}
		r.app.Logger.Infof("%s: deleted", key)
	}
	return failed, nil
}

// failureMessage prefers the remote error message over the full error.
func failureMessage(err error) string {
	var apiErr *imgur.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
