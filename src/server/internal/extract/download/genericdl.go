package download

import (
	"context"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/apex/log"
	"github.com/stemnote/vocal-extract-be/src/shared/lib/cerr"
)

const downloadTimeout = 30 * time.Second

type Downloader interface {
	Download(ctx context.Context, sourceURL string, outFilePath string) error
}

var _ Downloader = GenericDLer{}

func NewGenericDLer(maxBytes int64) GenericDLer {
	return GenericDLer{
		maxBytes: maxBytes,
		client:   &http.Client{Timeout: downloadTimeout},
	}
}

// GenericDLer fetches any plain HTTP(S) URL to a local file,
// following redirects
type GenericDLer struct {
	maxBytes int64
	client   *http.Client
}

func (g GenericDLer) Download(ctx context.Context, sourceURL string, outFilePath string) error {
	log.WithField("source_url", sourceURL).Info("Downloading source file")

	errctx := cerr.Field("source_url", sourceURL)

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return errctx.Wrap(err).Error("Failed to create the download request")
	}

	response, err := g.client.Do(request)
	if err != nil {
		return errctx.Wrap(err).Error("Failed to fetch the source URL")
	}

	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return errctx.Field("status_code", response.StatusCode).
			Error("The source URL responded with a non-success status")
	}

	outFile, err := os.Create(outFilePath)
	if err != nil {
		return errctx.Field("out_file_path", outFilePath).
			Wrap(err).Error("Failed to create the output file")
	}

	defer outFile.Close()

	written, err := io.Copy(outFile, io.LimitReader(response.Body, g.maxBytes+1))
	if err != nil {
		return errctx.Wrap(err).Error("Failed to write the download to disk")
	}

	if written > g.maxBytes {
		return errctx.Field("max_bytes", g.maxBytes).
			Error("The source file exceeds the download size limit")
	}

	return nil
}
