package filestorage

import (
	"context"
	"mime/multipart"
)

// FileStorage defines the interface for local file storage operations.
type FileStorage interface {
	// SaveFile saves an uploaded file and returns the stored path.
	SaveFile(fileHeader *multipart.FileHeader) (string, error)

	// SaveFileWithPath saves an uploaded file under a subdirectory.
	SaveFileWithPath(fileHeader *multipart.FileHeader, path string) (string, error)

	// DeleteFile removes a file from storage.
	DeleteFile(filePath string) error
}

// BucketStorage defines the interface for the remote object-storage mirror.
type BucketStorage interface {
	// Upload stores data under key and returns the object URL.
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}
