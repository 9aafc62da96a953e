package storage

import (
	"context"
	"errors"
	"io"
)

// ErrStorageDisabled is returned by the no-op uploader when no object
// storage credentials were configured.
var ErrStorageDisabled = errors.New("object storage is not configured")

type noopUploader struct{}

// NoopUploader returns an uploader that rejects every operation. It
// lets the application run without object storage credentials.
func NoopUploader() FileUploader {
	return noopUploader{}
}

func (noopUploader) Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error) {
	return nil, ErrStorageDisabled
}

func (noopUploader) Delete(ctx context.Context, key string) error {
	return ErrStorageDisabled
}

func (noopUploader) GetPublicURL(key string) string {
	return ""
}
