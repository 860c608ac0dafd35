package query

import (
	"errors"
	"strings"
)

const keySeparator = "/"

// ErrInvalidKey is returned for an empty key or a key with a blank part.
var ErrInvalidKey = errors.New("query: invalid key")

// Key identifies a query, e.g. Key{"request", id}. The first part names the
// query in metrics; invalidating a key also invalidates every longer key
// that starts with it.
type Key []string

func (k Key) String() string {
	return strings.Join(k, keySeparator)
}

// Name is the first part of the key.
func (k Key) Name() string {
	if len(k) == 0 {
		return ""
	}
	return k[0]
}

// Valid reports whether every part is non-blank. A query over an unset id
// is disabled rather than sent.
func (k Key) Valid() bool {
	if len(k) == 0 {
		return false
	}
	for _, part := range k {
		if strings.TrimSpace(part) == "" {
			return false
		}
	}
	return true
}
