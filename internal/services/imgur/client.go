package imgur

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	DefaultBaseURL = "https://api.imgur.com/3"
	DefaultTimeout = 30 * time.Second
)

// Client represents an Imgur API client authenticated with a client id.
type Client struct {
	clientID string
	client   *resty.Client
}

var _ ClientAPI = (*Client)(nil)

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL points the client at a different API root.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.client.SetBaseURL(strings.TrimRight(baseURL, "/"))
	}
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.client.SetTimeout(timeout)
		}
	}
}

// NewClient creates a new Imgur client
func NewClient(clientID string, opts ...Option) *Client {
	c := &Client{
		clientID: clientID,
		client: resty.New().
			SetBaseURL(DefaultBaseURL).
			SetTimeout(DefaultTimeout).
			SetHeader("Authorization", "Client-ID "+clientID),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do executes the request and decodes the data field of a successful
// response into out. Unsuccessful responses are returned as *APIError.
func (c *Client) do(req *resty.Request, method, path string, out any) error {
	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}

	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return &APIError{Status: resp.StatusCode(), Message: fmt.Sprintf("unexpected response: %s", resp.Status())}
	}
	if !env.Success {
		status := env.Status
		if status == 0 {
			status = resp.StatusCode()
		}
		return &APIError{Status: status, Message: errorMessage(env.Data)}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%s %s: error decoding response: %w", method, path, err)
	}
	return nil
}

// CreateAlbum creates a hidden album. Images are attached to it using the
// returned delete hash.
func (c *Client) CreateAlbum(ctx context.Context, title string) (*Album, error) {
	form := map[string]string{"privacy": "hidden"}
	if title != "" {
		form["title"] = title
	}

	var album Album
	req := c.client.R().SetContext(ctx).SetFormData(form)
	if err := c.do(req, http.MethodPost, "/album", &album); err != nil {
		return nil, err
	}
	return &album, nil
}

// UploadImage uploads a single image, optionally into the album identified
// by albumHash.
func (c *Client) UploadImage(ctx context.Context, target Target, albumHash string) (*Image, error) {
	form := map[string]string{"type": string(target.Type)}
	if albumHash != "" {
		form["album"] = albumHash
	}

	req := c.client.R().SetContext(ctx)
	switch target.Type {
	case SourceFile:
		req.SetFile("image", target.Value)
	default:
		form["image"] = target.Value
	}
	req.SetFormData(form)

	var image Image
	if err := c.do(req, http.MethodPost, "/image", &image); err != nil {
		return nil, err
	}
	return &image, nil
}

// DeleteImage deletes an image by its delete hash.
func (c *Client) DeleteImage(ctx context.Context, deleteHash string) error {
	req := c.client.R().SetContext(ctx).SetPathParam("hash", deleteHash)
	return c.do(req, http.MethodDelete, "/image/{hash}", nil)
}

// DeleteAlbum deletes an album by its delete hash. Images in the album are kept.
func (c *Client) DeleteAlbum(ctx context.Context, deleteHash string) error {
	req := c.client.R().SetContext(ctx).SetPathParam("hash", deleteHash)
	return c.do(req, http.MethodDelete, "/album/{hash}", nil)
}

// GetCredits returns the current rate limit status.
func (c *Client) GetCredits(ctx context.Context) (*Credits, error) {
	var credits Credits
	if err := c.do(c.client.R().SetContext(ctx), http.MethodGet, "/credits", &credits); err != nil {
		return nil, err
	}
	return &credits, nil
}
