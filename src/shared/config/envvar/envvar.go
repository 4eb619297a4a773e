package envvar

import (
	"fmt"
	"os"
)

const (
	API_TOKEN                        = "API_TOKEN"
	PORT                             = "PORT"
	ALLOWED_FE_ORIGINS               = "ALLOWED_FE_ORIGINS"
	BLOB_STORE                       = "BLOB_STORE"
	VERCEL_BLOB_READ_WRITE_TOKEN     = "VERCEL_BLOB_READ_WRITE_TOKEN"
	VERCEL_BLOB_STORE_ID             = "VERCEL_BLOB_STORE_ID"
	GOOGLE_CLOUD_KEY                 = "GOOGLE_CLOUD_KEY"
	GOOGLE_CLOUD_STORAGE_BUCKET_NAME = "GOOGLE_CLOUD_STORAGE_BUCKET_NAME"
	SEPARATION_ENGINE                = "SEPARATION_ENGINE"
	DEMUCS_BIN_PATH                  = "DEMUCS_BIN_PATH"
	SPLEETER_BIN_PATH                = "SPLEETER_BIN_PATH"
	FFMPEG_BIN_PATH                  = "FFMPEG_BIN_PATH"
	WORKING_DIR_PATH                 = "WORKING_DIR_PATH"
	MAX_DOWNLOAD_BYTES               = "MAX_DOWNLOAD_BYTES"
)

func MustGet(key string) string {
	val, isSet := os.LookupEnv(key)
	if !isSet {
		panic(fmt.Sprintf("No env variable found for key %s", key))
	}

	if val == "" {
		panic(fmt.Sprintf("Env variable is empty for key %s", key))
	}

	return val
}
