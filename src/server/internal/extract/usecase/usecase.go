package extractusecase

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/apex/log"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/errors/markers"
	"github.com/stemnote/vocal-extract-be/src/server/internal/errors/api"
	"github.com/stemnote/vocal-extract-be/src/server/internal/extract/download"
	"github.com/stemnote/vocal-extract-be/src/server/internal/extract/encode"
	extractentity "github.com/stemnote/vocal-extract-be/src/server/internal/extract/entity"
	extracterrors "github.com/stemnote/vocal-extract-be/src/server/internal/extract/errors"
	"github.com/stemnote/vocal-extract-be/src/server/internal/extract/separator"
	blobentity "github.com/stemnote/vocal-extract-be/src/shared/blob/entity"
	"github.com/stemnote/vocal-extract-be/src/shared/lib/cerr"
	"github.com/stemnote/vocal-extract-be/src/shared/lib/errors/mark"
	"github.com/stemnote/vocal-extract-be/src/shared/lib/storagepath"
	"github.com/stemnote/vocal-extract-be/src/shared/lib/working_dir"
)

func NewUsecase(
	downloader download.Downloader,
	fileSeparator separator.FileSeparator,
	encoder encode.Encoder,
	fileStore blobentity.FileStore,
	pathGenerator storagepath.Generator,
	engine separator.Engine,
	workingDir working_dir.WorkingDir,
) Usecase {
	return Usecase{
		downloader:    downloader,
		fileSeparator: fileSeparator,
		encoder:       encoder,
		fileStore:     fileStore,
		pathGenerator: pathGenerator,
		engine:        engine,
		workingDir:    workingDir,
	}
}

type Usecase struct {
	downloader    download.Downloader
	fileSeparator separator.FileSeparator
	encoder       encode.Encoder
	fileStore     blobentity.FileStore
	pathGenerator storagepath.Generator
	engine        separator.Engine
	workingDir    working_dir.WorkingDir
}

func (u Usecase) ExtractVocals(ctx context.Context, sourceURL string) (extractentity.ExtractResponse, *api.Error) {
	startTime := time.Now()

	if err := validateSourceURL(sourceURL); err != nil {
		return extractentity.ExtractResponse{}, api.CommitError(err,
			extracterrors.BadRequestDataCode,
			"The source URL is not a valid HTTP URL")
	}

	job := extractentity.NewJob(sourceURL, startTime)

	logger := log.WithFields(log.Fields{
		"job_id":     job.ID,
		"source_url": job.SourceURL,
	})

	vocalsURL, err := u.runPipeline(ctx, job, logger)
	if err != nil {
		err = errors.Wrap(err, "Failed to extract vocals from the source file")
		switch {
		case markers.Is(err, extracterrors.DownloadFailedMark):
			return extractentity.ExtractResponse{}, api.CommitError(err,
				extracterrors.DownloadFailedCode,
				"The source audio file could not be downloaded")
		case markers.Is(err, extracterrors.SeparationFailedMark):
			return extractentity.ExtractResponse{}, api.CommitError(err,
				extracterrors.SeparationFailedCode,
				"The source audio file could not be separated into stems")
		case markers.Is(err, extracterrors.EncodingFailedMark):
			return extractentity.ExtractResponse{}, api.CommitError(err,
				extracterrors.EncodingFailedCode,
				"The vocal stem could not be encoded to MP3")
		case markers.Is(err, extracterrors.UploadFailedMark):
			return extractentity.ExtractResponse{}, api.CommitError(err,
				extracterrors.UploadFailedCode,
				"The vocal stem could not be uploaded to storage")
		default:
			return extractentity.ExtractResponse{}, api.CommitError(err,
				api.DefaultErrorCode,
				"Unknown error: Failed to process the extraction request")
		}
	}

	logger.WithField("vocals_url", vocalsURL).Info("Finished extracting vocals")

	return extractentity.ExtractResponse{
		VocalsURL:             vocalsURL,
		ProcessingTimeSeconds: time.Since(startTime).Seconds(),
	}, nil
}

func (u Usecase) runPipeline(ctx context.Context, job extractentity.Job, logger log.Interface) (string, error) {
	workspacePath, cleanUpWorkspace, err := u.makeWorkspace(job)
	if err != nil {
		return "", cerr.Wrap(err).Error("Failed to create a workspace for this job")
	}

	defer cleanUpWorkspace()

	logger.Info("Downloading the source file")
	inputFilePath := filepath.Join(workspacePath, job.InputFileName())
	if err := u.downloader.Download(ctx, job.SourceURL, inputFilePath); err != nil {
		return "", mark.Wrap(err, extracterrors.DownloadFailedMark, "Failed to download the source file")
	}

	logger.Info("Separating the vocal stem")
	stemsOutputDir := filepath.Join(workspacePath, "stems")
	stemPaths, err := u.fileSeparator.SeparateFile(ctx, inputFilePath, stemsOutputDir, u.engine)
	if err != nil {
		return "", mark.Wrap(err, extracterrors.SeparationFailedMark, "Failed to separate the source audio")
	}

	vocalsStemPath, ok := stemPaths[separator.VocalsStem]
	if !ok {
		return "", mark.Message(extracterrors.SeparationFailedMark, "The separation output has no vocals stem")
	}

	vocalsMP3Path := vocalsStemPath
	if filepath.Ext(vocalsStemPath) != ".mp3" {
		logger.Info("Encoding the vocal stem to MP3")
		vocalsMP3Path = filepath.Join(workspacePath, job.VocalsFileName())
		if err := u.encoder.EncodeToMP3(ctx, vocalsStemPath, vocalsMP3Path); err != nil {
			return "", mark.Wrap(err, extracterrors.EncodingFailedMark, "Failed to encode the vocal stem")
		}
	}

	fileContent, err := os.ReadFile(vocalsMP3Path)
	if err != nil {
		return "", mark.Wrap(err, extracterrors.UploadFailedMark, "Failed to read the vocals file for upload")
	}

	logger.Info("Uploading the vocal stem")
	destinationPath := u.pathGenerator.GeneratePath(job.VocalsFileName())
	vocalsURL, err := u.fileStore.WriteFile(ctx, destinationPath, fileContent)
	if err != nil {
		return "", mark.Wrap(err, extracterrors.UploadFailedMark, "Failed to write the vocals file to storage")
	}

	return vocalsURL, nil
}

func (u Usecase) makeWorkspace(job extractentity.Job) (string, func(), error) {
	workspacePath := filepath.Join(u.workingDir.TempDir(), "extract-"+job.ID)

	if err := os.MkdirAll(workspacePath, os.ModePerm); err != nil {
		return "", nil, cerr.Field("workspace_path", workspacePath).
			Wrap(err).Error("Failed to create the workspace dir")
	}

	return workspacePath, func() { os.RemoveAll(workspacePath) }, nil
}

func validateSourceURL(sourceURL string) error {
	parsedURL, err := url.Parse(sourceURL)
	if err != nil {
		return errors.Wrap(err, "The source URL could not be parsed")
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return errors.New("The source URL is not an http or https URL")
	}

	if parsedURL.Host == "" {
		return errors.New("The source URL has no host")
	}

	return nil
}
