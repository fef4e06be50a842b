// Package storage keeps uploaded question images.
package storage

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

type BlobStore interface {
	// Put stores r under key and returns the public URL.
	Put(ctx context.Context, key, contentType string, r io.Reader) (string, error)
}

// ImageKey builds a collision-free object key that keeps the original
// extension.
func ImageKey(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return "images/" + uuid.NewString() + ext
}
