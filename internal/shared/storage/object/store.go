package object

import (
	"context"
	"io"
	"strings"
)

// URLScheme prefixes artifact URLs whose body lives in the object store.
const URLScheme = "store://"

// Stored describes an object written by Put.
type Stored struct {
	Key         string
	SizeBytes   int64
	ContentType string
}

// ObjectStore persists artifact bodies that have no remote URL of their own.
type ObjectStore interface {
	Put(ctx context.Context, ownerID, fileName, contentType string, r io.Reader) (Stored, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// URLFor returns the artifact URL for a stored key.
func URLFor(key string) string {
	return URLScheme + key
}

// KeyFromURL extracts the storage key from a store:// URL.
func KeyFromURL(url string) (string, bool) {
	if !strings.HasPrefix(url, URLScheme) {
		return "", false
	}
	key := strings.TrimPrefix(url, URLScheme)
	if key == "" {
		return "", false
	}
	return key, true
}
