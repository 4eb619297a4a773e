package blobstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	blobentity "github.com/stemnote/vocal-extract-be/src/shared/blob/entity"
	"github.com/stemnote/vocal-extract-be/src/shared/lib/cerr"
)

// the blob API is versioned through this header, responses have
// changed shape between versions before
const vercelAPIVersion = "6"

const uploadTimeout = 60 * time.Second

var _ blobentity.FileStore = VercelFileStore{}

func NewVercelFileStore(apiHost string, readWriteToken string, storeID string) VercelFileStore {
	return VercelFileStore{
		apiHost:        apiHost,
		readWriteToken: readWriteToken,
		storeID:        storeID,
		client:         &http.Client{Timeout: uploadTimeout},
	}
}

type VercelFileStore struct {
	apiHost        string
	readWriteToken string
	storeID        string
	client         *http.Client
}

type vercelPutResponse struct {
	URL      string `json:"url"`
	Pathname string `json:"pathname"`
}

func (v VercelFileStore) WriteFile(ctx context.Context, filePath string, fileContent []byte) (string, error) {
	errctx := cerr.Field("file_path", filePath)

	endpoint := fmt.Sprintf("%s/api/put?pathname=%s", v.apiHost, url.QueryEscape(filePath))

	request, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(fileContent))
	if err != nil {
		return "", errctx.Wrap(err).Error("Failed to create the upload request")
	}

	request.Header.Set("Authorization", "Bearer "+v.readWriteToken)
	request.Header.Set("x-api-version", vercelAPIVersion)
	if v.storeID != "" {
		request.Header.Set("x-vercel-blob-store-id", v.storeID)
	}

	response, err := v.client.Do(request)
	if err != nil {
		return "", errctx.Wrap(err).Error("Failed to upload to the blob store")
	}

	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		body, _ := io.ReadAll(response.Body)
		return "", errctx.Field("status_code", response.StatusCode).
			Field("response_body", string(body)).
			Error("The blob store responded with a non-success status")
	}

	putResponse := vercelPutResponse{}
	if err := json.NewDecoder(response.Body).Decode(&putResponse); err != nil {
		return "", errctx.Wrap(err).Error("Failed to decode the blob store response")
	}

	if err := validateBlobURL(putResponse.URL, filePath); err != nil {
		return "", errctx.Field("response_url", putResponse.URL).
			Wrap(err).Error("The blob store did not return a usable URL")
	}

	return putResponse.URL, nil
}

func (v VercelFileStore) GetFile(ctx context.Context, fileURL string) ([]byte, error) {
	errctx := cerr.Field("file_url", fileURL)

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return nil, errctx.Wrap(err).Error("Failed to create the fetch request")
	}

	request.Header.Set("Authorization", "Bearer "+v.readWriteToken)

	response, err := v.client.Do(request)
	if err != nil {
		return nil, errctx.Wrap(err).Error("Failed to fetch from the blob store")
	}

	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, errctx.Field("status_code", response.StatusCode).
			Error("The blob store responded with a non-success status")
	}

	contents, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, errctx.Wrap(err).Error("Failed to read the blob contents")
	}

	return contents, nil
}

// the URL in the put response doesn't echo the requested pathname exactly -
// the host portion varies per store - so the most that can be checked is
// that it points somewhere into the directory that was asked for
func validateBlobURL(blobURL string, requestedPath string) error {
	if blobURL == "" {
		return cerr.Error("The response URL is empty")
	}

	dir := path.Dir(requestedPath)
	if dir == "." {
		return nil
	}

	if !strings.Contains(blobURL, dir+"/") {
		return cerr.Field("expected_dir", dir).
			Error("The response URL does not reference the requested directory")
	}

	return nil
}
