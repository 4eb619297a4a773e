package application

import (
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/stemnote/vocal-extract-be/src/server/api_token"
	"github.com/stemnote/vocal-extract-be/src/server/internal/extract/download"
	"github.com/stemnote/vocal-extract-be/src/server/internal/extract/encode"
	"github.com/stemnote/vocal-extract-be/src/server/internal/extract/executor"
	extractgateway "github.com/stemnote/vocal-extract-be/src/server/internal/extract/gateway"
	"github.com/stemnote/vocal-extract-be/src/server/internal/extract/separator"
	"github.com/stemnote/vocal-extract-be/src/server/internal/extract/separator/file_separator"
	extractusecase "github.com/stemnote/vocal-extract-be/src/server/internal/extract/usecase"
	blobentity "github.com/stemnote/vocal-extract-be/src/shared/blob/entity"
	blobstore "github.com/stemnote/vocal-extract-be/src/shared/blob/store"
	"github.com/stemnote/vocal-extract-be/src/shared/config"
	"github.com/stemnote/vocal-extract-be/src/shared/lib/storagepath"
	"github.com/stemnote/vocal-extract-be/src/shared/lib/working_dir"
	"google.golang.org/api/option"
)

// uploaded vocal stems all live under this prefix in the blob store
const vocalsPathPrefix = "vocals"

func must[T any](t T, err error) T {
	if err != nil {
		panic(err)
	}

	return t
}

type HTTPMethod string

const (
	GET  HTTPMethod = "GET"
	POST HTTPMethod = "POST"
)

type App struct {
	echo *echo.Echo
	port string
}

type Config struct {
	APIToken          string
	BlobStorageConfig config.BlobStorage

	SeparationEngine separator.Engine
	DemucsBinPath    string
	SpleeterBinPath  string
	FFMPEGBinPath    string
	WorkingDirPath   string
	MaxDownloadBytes int64

	CORSAllowedOrigins []string
	Port               string
	Log                bool
}

func NewApp(config Config) App {
	e := echo.New()

	if config.Log {
		e.Use(middleware.Logger())
	}

	corsMiddleware := makeCorsMiddleware(config)

	handleRoute := func(method HTTPMethod, path string, handlerFunc echo.HandlerFunc) {
		params := func() (string, echo.HandlerFunc, echo.MiddlewareFunc) {
			return path, handlerFunc, corsMiddleware
		}

		e.OPTIONS(params())

		switch method {
		case GET:
			e.GET(params())
		case POST:
			e.POST(params())
		default:
			panic("unhandled http method!")
		}
	}

	fileStore := newFileStore(config.BlobStorageConfig)
	extractUsecase := newExtractUsecase(config, fileStore)
	extractGateway := extractgateway.NewGateway(extractUsecase, api_token.StaticValidator{
		Token: config.APIToken,
	})

	handleRoute(GET, "/health", extractGateway.Health)
	handleRoute(POST, "/extract-vocals", extractGateway.ExtractVocals)

	return App{
		echo: e,
		port: config.Port,
	}
}

func (a *App) Start() error {
	return a.echo.Start(a.port)
}

func (a *App) Stop() {
	_ = a.echo.Close()
}

func makeCorsMiddleware(config Config) echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: config.CORSAllowedOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
	})
}

func newFileStore(storageConfig config.BlobStorage) blobentity.FileStore {
	switch t := storageConfig.(type) {
	case config.VercelBlobStorage:
		return blobstore.NewVercelFileStore(t.APIHost, t.ReadWriteToken, t.StoreID)

	case config.GoogleBlobStorage:
		return must(blobstore.NewGoogleFileStore(
			t.StorageHost,
			t.BucketName,
			option.WithCredentialsJSON([]byte(t.SecretKey)),
		))

	case config.LocalGoogleBlobStorage:
		return must(blobstore.NewGoogleFileStore(
			t.StorageHost,
			t.BucketName,
			option.WithEndpoint(t.HostEndpoint),
			option.WithAPIKey("fake_api_key"),
		))

	default:
		panic("Unrecognized blob storage config")
	}
}

func newExtractUsecase(config Config, fileStore blobentity.FileStore) extractusecase.Usecase {
	if err := os.MkdirAll(config.WorkingDirPath, os.ModePerm); err != nil {
		panic(err)
	}

	workingDir := must(working_dir.NewWorkingDir(config.WorkingDirPath))

	fileSeparator := must(file_separator.NewLocalFileSeparator(
		config.WorkingDirPath,
		config.DemucsBinPath,
		config.SpleeterBinPath,
		executor.BinaryFileExecutor{},
	))

	return extractusecase.NewUsecase(
		download.NewGenericDLer(config.MaxDownloadBytes),
		fileSeparator,
		encode.NewFFMPEGEncoder(config.FFMPEGBinPath, executor.BinaryFileExecutor{}),
		fileStore,
		storagepath.Generator{Prefix: vocalsPathPrefix},
		config.SeparationEngine,
		workingDir,
	)
}
