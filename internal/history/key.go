package history

import (
	"errors"
	"fmt"
	"regexp"
)

// Kind identifies which remote endpoint a key belongs to.
type Kind string

const (
	KindImage Kind = "image"
	KindAlbum Kind = "album"
)

// ErrInvalidKey is returned when a string does not have the kind:hash shape.
var ErrInvalidKey = errors.New("invalid key")

var keyPattern = regexp.MustCompile(`^(image|album):([A-Za-z0-9]+)$`)

// Key is a delete key issued by the remote service, e.g. "image:Ab12Cd".
type Key struct {
	Kind Kind
	Hash string
}

// NewKey builds a key for the given kind and delete hash.
func NewKey(kind Kind, hash string) Key {
	return Key{Kind: kind, Hash: hash}
}

// ParseKey parses a "kind:hash" string.
func ParseKey(s string) (Key, error) {
	m := keyPattern.FindStringSubmatch(s)
	if m == nil {
		return Key{}, fmt.Errorf("%w: %q", ErrInvalidKey, s)
	}
	return Key{Kind: Kind(m[1]), Hash: m[2]}, nil
}

func (k Key) String() string {
	return string(k.Kind) + ":" + k.Hash
}
