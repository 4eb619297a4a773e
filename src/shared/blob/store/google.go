package blobstore

import (
	"context"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	blobentity "github.com/stemnote/vocal-extract-be/src/shared/blob/entity"
	"github.com/stemnote/vocal-extract-be/src/shared/lib/cerr"
	"google.golang.org/api/option"
)

var _ blobentity.FileStore = GoogleFileStore{}

func NewGoogleFileStore(storageHost string, bucketName string, opts ...option.ClientOption) (GoogleFileStore, error) {
	client, err := storage.NewClient(context.Background(), opts...)
	if err != nil {
		return GoogleFileStore{}, cerr.Wrap(err).Error("Failed to create Google Cloud Storage client")
	}

	return GoogleFileStore{
		storageHost:   storageHost,
		bucketName:    bucketName,
		storageClient: client,
	}, nil
}

type GoogleFileStore struct {
	storageHost   string
	bucketName    string
	storageClient *storage.Client
}

func (g GoogleFileStore) WriteFile(ctx context.Context, filePath string, fileContent []byte) (string, error) {
	errctx := cerr.Field("file_path", filePath)

	writer := g.storageClient.Bucket(g.bucketName).Object(filePath).NewWriter(ctx)
	if _, err := writer.Write(fileContent); err != nil {
		return "", errctx.Wrap(err).Error("Failed to write contents to the storage object")
	}

	if err := writer.Close(); err != nil {
		return "", errctx.Wrap(err).Error("Failed to flush the storage object")
	}

	return fmt.Sprintf("%s/%s/%s", g.storageHost, g.bucketName, filePath), nil
}

func (g GoogleFileStore) GetFile(ctx context.Context, fileURL string) ([]byte, error) {
	errctx := cerr.Field("file_url", fileURL)

	filePath, err := g.objectPath(fileURL)
	if err != nil {
		return nil, errctx.Wrap(err).Error("Failed to resolve the object path for this URL")
	}

	reader, err := g.storageClient.Bucket(g.bucketName).Object(filePath).NewReader(ctx)
	if err != nil {
		return nil, errctx.Wrap(err).Error("Failed to open a reader on the storage object")
	}

	defer reader.Close()

	contents, err := io.ReadAll(reader)
	if err != nil {
		return nil, errctx.Wrap(err).Error("Failed to read the storage object")
	}

	return contents, nil
}

func (g GoogleFileStore) objectPath(fileURL string) (string, error) {
	hostPrefix := fmt.Sprintf("%s/%s/", g.storageHost, g.bucketName)
	if !strings.HasPrefix(fileURL, hostPrefix) {
		return "", cerr.Field("host_prefix", hostPrefix).
			Error("The file URL does not belong to this bucket")
	}

	return strings.TrimPrefix(fileURL, hostPrefix), nil
}
