package blobentity

import "context"

// FileStore is a remote blob host. WriteFile returns the public URL
// that the uploaded file can be fetched from afterwards.
type FileStore interface {
	WriteFile(ctx context.Context, filePath string, fileContent []byte) (string, error)
	GetFile(ctx context.Context, fileURL string) ([]byte, error)
}
