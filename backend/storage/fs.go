package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// FSStore writes blobs under base; files are served from urlPrefix.
type FSStore struct {
	base      string
	urlPrefix string
}

func NewFSStore(base, urlPrefix string) (*FSStore, error) {
	if base == "" {
		base = "./uploads"
	}
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, errors.WithStack(err)
	}
	return &FSStore{base: base, urlPrefix: strings.TrimRight(urlPrefix, "/")}, nil
}

func (s *FSStore) Dir() string { return s.base }

func (s *FSStore) Put(ctx context.Context, key, _ string, r io.Reader) (string, error) {
	if key == "" {
		return "", errors.New("empty key")
	}
	if err := ctx.Err(); err != nil {
		return "", errors.WithStack(err)
	}
	clean := filepath.Clean("/" + key)[1:]
	dst := filepath.Join(s.base, clean)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", errors.WithStack(err)
	}
	f, err := os.Create(dst)
	if err != nil {
		return "", errors.WithStack(err)
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return "", errors.WithStack(err)
	}
	return s.urlPrefix + "/" + filepath.ToSlash(clean), nil
}
