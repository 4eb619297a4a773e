package extracterrors

import (
	"github.com/cockroachdb/errors"
	"github.com/stemnote/vocal-extract-be/src/server/internal/errors/api"
)

const (
	BadRequestDataCode   = api.ErrorCode("bad_request_data")
	DownloadFailedCode   = api.ErrorCode("download_failed")
	SeparationFailedCode = api.ErrorCode("separation_failed")
	EncodingFailedCode   = api.ErrorCode("encoding_failed")
	UploadFailedCode     = api.ErrorCode("upload_failed")
)

// marks to classify which stage of the pipeline fell over
var (
	DownloadFailedMark   = errors.New("download_failed")
	SeparationFailedMark = errors.New("separation_failed")
	EncodingFailedMark   = errors.New("encoding_failed")
	UploadFailedMark     = errors.New("upload_failed")
)
