package imgur

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SourceType is the value of the "type" form field of an image upload.
type SourceType string

const (
	SourceFile   SourceType = "file"
	SourceURL    SourceType = "url"
	SourceBase64 SourceType = "base64"
)

// Target is something that can be uploaded as an image: a local file,
// a remote http(s) URL or a base64 data URI.
type Target struct {
	Type  SourceType
	Value string
	Raw   string
}

// ParseTarget classifies an upload argument.
func ParseTarget(arg string) Target {
	lower := strings.ToLower(arg)
	switch {
	case strings.HasPrefix(lower, "data:"):
		if i := strings.Index(arg, ";base64,"); i >= 0 {
			return Target{Type: SourceBase64, Value: arg[i+len(";base64,"):], Raw: arg}
		}
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		return Target{Type: SourceURL, Value: arg, Raw: arg}
	}
	return Target{Type: SourceFile, Value: arg, Raw: arg}
}

// Image is the payload of a successful image upload.
type Image struct {
	ID         string `json:"id"`
	DeleteHash string `json:"deletehash"`
	Link       string `json:"link"`
}

// SecureLink returns the image link with https preferred over http.
func (i Image) SecureLink() string {
	return SecureLink(i.Link)
}

// Album is the payload of a successful album creation.
type Album struct {
	ID         string `json:"id"`
	DeleteHash string `json:"deletehash"`
}

// Link returns the public album page.
func (a Album) Link() string {
	return "https://imgur.com/a/" + a.ID
}

// Credits describes the remaining rate limits of the client and user.
type Credits struct {
	UserLimit       int64 `json:"UserLimit"`
	UserRemaining   int64 `json:"UserRemaining"`
	UserReset       int64 `json:"UserReset"`
	ClientLimit     int64 `json:"ClientLimit"`
	ClientRemaining int64 `json:"ClientRemaining"`
}

// SecureLink rewrites an http link to https.
func SecureLink(link string) string {
	if strings.HasPrefix(link, "http://") {
		return "https://" + strings.TrimPrefix(link, "http://")
	}
	return link
}

// envelope is the common wrapper around every API response.
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Success bool            `json:"success"`
	Status  int             `json:"status"`
}

// APIError is a failure reported by the remote service.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("imgur: %s (status %d)", e.Message, e.Status)
}

// errorMessage extracts data.error, which is either a plain string or an
// object carrying a message.
func errorMessage(data json.RawMessage) string {
	var wrapper struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil || len(wrapper.Error) == 0 {
		return "unknown error"
	}

	var msg string
	if err := json.Unmarshal(wrapper.Error, &msg); err == nil {
		return msg
	}

	var obj struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(wrapper.Error, &obj); err == nil && obj.Message != "" {
		return obj.Message
	}
	return string(wrapper.Error)
}
