package main

import (
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/apex/log"
	"github.com/stemnote/vocal-extract-be/src/server/api_token"
	"github.com/stemnote/vocal-extract-be/src/server/application"
	"github.com/stemnote/vocal-extract-be/src/server/internal/extract/separator"
	"github.com/stemnote/vocal-extract-be/src/shared/config"
	"github.com/stemnote/vocal-extract-be/src/shared/config/dev"
	"github.com/stemnote/vocal-extract-be/src/shared/config/envvar"
	"github.com/stemnote/vocal-extract-be/src/shared/config/local"
	"github.com/stemnote/vocal-extract-be/src/shared/config/prod"
	"github.com/stemnote/vocal-extract-be/src/shared/lib/env"
)

const (
	defaultPort = ":8000"

	// single songs only, anything past this is not a song upload
	defaultMaxDownloadBytes = 256 * 1024 * 1024
)

func main() {
	var appConfig application.Config

	switch env.Get() {
	case env.Production:
		commaSeparatedOrigins := envvar.MustGet(envvar.ALLOWED_FE_ORIGINS)
		allowedOrigins := strings.Split(commaSeparatedOrigins, ",")

		appConfig = application.Config{
			APIToken:           envvar.MustGet(envvar.API_TOKEN),
			BlobStorageConfig:  blobStorageConfig(),
			SeparationEngine:   must(separator.ParseEngine(envvar.MustGet(envvar.SEPARATION_ENGINE))),
			DemucsBinPath:      envvar.MustGet(envvar.DEMUCS_BIN_PATH),
			SpleeterBinPath:    envvar.MustGet(envvar.SPLEETER_BIN_PATH),
			FFMPEGBinPath:      envvar.MustGet(envvar.FFMPEG_BIN_PATH),
			WorkingDirPath:     envvar.MustGet(envvar.WORKING_DIR_PATH),
			MaxDownloadBytes:   maxDownloadBytes(),
			CORSAllowedOrigins: allowedOrigins,
			Port:               port(),
			Log:                true,
		}

	case env.Development:
		appConfig = application.Config{
			APIToken:           devAPIToken(),
			BlobStorageConfig:  blobStorageConfig(),
			SeparationEngine:   separator.DemucsEngine,
			DemucsBinPath:      config.DemucsPath(),
			SpleeterBinPath:    config.SpleeterPath(),
			FFMPEGBinPath:      config.FFMPEGPath(),
			WorkingDirPath:     path.Join(local.ProjectRoot(), "/src/server/wd/extract"),
			MaxDownloadBytes:   maxDownloadBytes(),
			CORSAllowedOrigins: []string{"*"},
			Port:               port(),
			Log:                true,
		}

	default:
		panic("Unexpected environment")
	}

	app := application.NewApp(appConfig)
	if err := app.Start(); err != nil {
		panic(err)
	}
}

func blobStorageConfig() config.BlobStorage {
	switch os.Getenv(envvar.BLOB_STORE) {
	case "vercel", "":
		return config.VercelBlobStorage{
			APIHost:        prod.VERCEL_BLOB_HOST,
			ReadWriteToken: envvar.MustGet(envvar.VERCEL_BLOB_READ_WRITE_TOKEN),
			StoreID:        os.Getenv(envvar.VERCEL_BLOB_STORE_ID),
		}

	case "google":
		return config.GoogleBlobStorage{
			StorageHost: prod.GOOGLE_STORAGE_HOST,
			SecretKey:   envvar.MustGet(envvar.GOOGLE_CLOUD_KEY),
			BucketName:  envvar.MustGet(envvar.GOOGLE_CLOUD_STORAGE_BUCKET_NAME),
		}

	case "local":
		return dev.GCSConfig

	default:
		panic("Unrecognized BLOB_STORE value")
	}
}

func devAPIToken() string {
	token, isSet := os.LookupEnv(envvar.API_TOKEN)
	if isSet && token != "" {
		return token
	}

	generatedToken, err := api_token.GenerateToken()
	if err != nil {
		panic(err)
	}

	log.WithField("api_token", generatedToken).
		Warn("No API token configured, generated one for this session")

	return generatedToken
}

func maxDownloadBytes() int64 {
	value, isSet := os.LookupEnv(envvar.MAX_DOWNLOAD_BYTES)
	if !isSet || value == "" {
		return defaultMaxDownloadBytes
	}

	return must(strconv.ParseInt(value, 10, 64))
}

func port() string {
	portValue, isSet := os.LookupEnv(envvar.PORT)
	if !isSet || portValue == "" {
		return defaultPort
	}

	return ":" + strings.TrimPrefix(portValue, ":")
}

func must[T any](t T, err error) T {
	if err != nil {
		panic(err)
	}

	return t
}
