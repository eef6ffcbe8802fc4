package imgur

import "context"

// ClientAPI defines the methods required to interact with the image host.
// It mirrors the concrete client so it can be mocked in tests.
type ClientAPI interface {
	CreateAlbum(ctx context.Context, title string) (*Album, error)
	UploadImage(ctx context.Context, target Target, albumHash string) (*Image, error)
	DeleteImage(ctx context.Context, deleteHash string) error
	DeleteAlbum(ctx context.Context, deleteHash string) error
	GetCredits(ctx context.Context) (*Credits, error)
}
