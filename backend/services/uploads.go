package services

import (
	"bytes"
	"context"
	"io"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/pkg/errors"

	"iqscaler/backend/apperror"
	"iqscaler/backend/storage"
)

// sniffLen is how much of an upload is read to detect its real type.
const sniffLen = 3072

var (
	imageExtensions = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".gif": true}
	imageTypes      = []string{"image/jpeg", "image/png", "image/gif"}
)

type UploadService struct {
	blobs storage.BlobStore
}

func NewUploadService(blobs storage.BlobStore) *UploadService {
	return &UploadService{blobs: blobs}
}

// SaveImage stores an uploaded question image and returns its URL. Only
// jpeg, png and gif are accepted, judged by both the file name and the
// content; the declared content type is not trusted.
func (s *UploadService) SaveImage(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	if !strings.HasPrefix(contentType, "image/") || !imageExtensions[strings.ToLower(path.Ext(filename))] {
		return "", apperror.Validation("Images only!")
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", errors.Wrap(err, "read upload")
	}
	head = head[:n]
	detected := mimetype.Detect(head)
	if !mimetype.EqualsAny(detected.String(), imageTypes...) {
		return "", apperror.Validation("Images only!")
	}

	body := io.MultiReader(bytes.NewReader(head), r)
	key := storage.ImageKey("upload" + detected.Extension())
	url, err := s.blobs.Put(ctx, key, detected.String(), body)
	if err != nil {
		return "", apperror.Internal("Image upload failed", err)
	}
	return url, nil
}
