package dummy

import (
	"context"
	"fmt"
	"sync"

	blobentity "github.com/stemnote/vocal-extract-be/src/shared/blob/entity"
)

const FileStoreHost = "https://fake.blobstore.net"

var _ blobentity.FileStore = &FileStore{}

func NewDummyFileStore() *FileStore {
	return &FileStore{
		Unavailable: false,
		State:       make(map[string][]byte),
	}
}

type FileStore struct {
	Unavailable bool
	State       map[string][]byte
	mutex       sync.RWMutex
}

func (f *FileStore) WriteFile(ctx context.Context, filePath string, fileContent []byte) (string, error) {
	if f.Unavailable {
		return "", NetworkFailure
	}

	f.mutex.Lock()
	defer f.mutex.Unlock()

	fileURL := fmt.Sprintf("%s/%s", FileStoreHost, filePath)
	f.State[fileURL] = fileContent
	return fileURL, nil
}

func (f *FileStore) GetFile(ctx context.Context, fileURL string) ([]byte, error) {
	if f.Unavailable {
		return nil, NetworkFailure
	}

	f.mutex.RLock()
	defer f.mutex.RUnlock()

	contents, ok := f.State[fileURL]
	if !ok {
		return nil, NotFound
	}

	return contents, nil
}
