package actions

import (
	"context"
	"fmt"
	"os"

	"github.com/ochronus/goimgur/internal/history"
	"github.com/ochronus/goimgur/internal/services/imgur"
)

// UploadOptions tunes Upload.
type UploadOptions struct {
	// Album groups multiple targets into a new hidden album.
	Album bool
	// Title is the album title.
	Title string
}

// Upload uploads every target in order. With more than one target and
// Album set, a hidden album is created first and every image is added to it.
// Failing to create the album or to write the history is fatal; a failed
// image is a warning.
func (r *Runner) Upload(ctx context.Context, args []string, opts UploadOptions) error {
	if len(args) == 0 {
		return fmt.Errorf("nothing to upload")
	}

	var albumHash string
	if len(args) > 1 && opts.Album {
		album, err := r.app.Client.CreateAlbum(ctx, opts.Title)
		if err != nil {
			return fmt.Errorf("failed to create album: %w", err)
		}
		albumHash = album.DeleteHash

		key := history.NewKey(history.KindAlbum, album.DeleteHash)
		if err := r.record(key, album.Link()); err != nil {
			return err
		}
	}

	for _, arg := range args {
		if err := r.uploadOne(ctx, imgur.ParseTarget(arg), albumHash); err != nil {
			return err
		}
	}

	return nil
}

func (r *Runner) uploadOne(ctx context.Context, target imgur.Target, albumHash string) error {
	if target.Type == imgur.SourceFile {
		info, err := os.Stat(target.Value)
		if err != nil {
			r.app.Warnf("%s: file not found", target.Raw)
			return nil
		}
		if !info.Mode().IsRegular() {
			r.app.Warnf("%s: not a regular file", target.Raw)
			return nil
		}
	}

	image, err := r.app.Client.UploadImage(ctx, target, albumHash)
	if err != nil {
		r.app.Warnf("%s: upload failed: %v", describe(target), err)
		return nil
	}

	return r.record(history.NewKey(history.KindImage, image.DeleteHash), image.SecureLink())
}

// record appends an upload to the history and prints the link.
func (r *Runner) record(key history.Key, link string) error {
	if err := r.app.History.AppendUpload(key, link); err != nil {
		return fmt.Errorf("failed to record %s: %w", key, err)
	}
	r.app.Logger.Infof("%s: delete key %s", link, key)
	_, err := fmt.Fprintln(r.app.Out, link)
	return err
}

// describe shortens data URIs for log messages.
func describe(target imgur.Target) string {
	if target.Type == imgur.SourceBase64 && len(target.Raw) > 32 {
		return target.Raw[:32] + "..."
	}
	return target.Raw
}
