package storage

import (
	"context"
	"io"
)

// StorageService uploads and removes public media such as doctor photos.
type StorageService interface {
	// UploadImage stores the image under folder and returns its public HTTPS URL.
	UploadImage(ctx context.Context, file io.Reader, folder, name string) (string, error)
	DeleteFile(ctx context.Context, publicID string) error
}
