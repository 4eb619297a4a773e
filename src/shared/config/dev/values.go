package dev

import (
	"github.com/stemnote/vocal-extract-be/src/shared/config"
	"github.com/stemnote/vocal-extract-be/src/shared/config/prod"
)

// local fake GCS, see https://github.com/fsouza/fake-gcs-server
var GCSConfig = config.LocalGoogleBlobStorage{
	StorageHost:  prod.GOOGLE_STORAGE_HOST,
	HostEndpoint: "http://localhost:4443/storage/v1/",
	BucketName:   "vocal-extract-dev",
}
