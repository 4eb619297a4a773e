package config

type BlobStorage interface {
	GetStorageHost() string
}

var _ BlobStorage = VercelBlobStorage{}

type VercelBlobStorage struct {
	APIHost        string
	ReadWriteToken string
	StoreID        string
}

func (v VercelBlobStorage) GetStorageHost() string {
	return v.APIHost
}

var _ BlobStorage = GoogleBlobStorage{}

type GoogleBlobStorage struct {
	StorageHost string
	SecretKey   string
	BucketName  string
}

func (g GoogleBlobStorage) GetStorageHost() string {
	return g.StorageHost
}

var _ BlobStorage = LocalGoogleBlobStorage{}

type LocalGoogleBlobStorage struct {
	StorageHost  string
	HostEndpoint string
	BucketName   string
}

func (l LocalGoogleBlobStorage) GetStorageHost() string {
	return l.StorageHost
}
