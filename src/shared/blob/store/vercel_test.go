package blobstore_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	blobstore "github.com/stemnote/vocal-extract-be/src/shared/blob/store"
)

var _ = Describe("VercelFileStore", func() {
	var (
		blobServer *httptest.Server

		receivedRequests []*http.Request
		receivedBodies   [][]byte
		responseStatus   int
		responseURL      string

		fileStore blobstore.VercelFileStore
	)

	BeforeEach(func() {
		receivedRequests = nil
		receivedBodies = nil
		responseStatus = http.StatusOK
		responseURL = ""

		blobServer = httptest.NewServer(http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				body, err := io.ReadAll(r.Body)
				Expect(err).NotTo(HaveOccurred())

				receivedRequests = append(receivedRequests, r)
				receivedBodies = append(receivedBodies, body)

				if r.Method == http.MethodGet {
					_, err := w.Write([]byte("stored_bytes"))
					Expect(err).NotTo(HaveOccurred())
					return
				}

				w.WriteHeader(responseStatus)

				if responseStatus >= 200 && responseStatus < 300 {
					url := responseURL
					if url == "" {
						url = blobServer.URL + "/store-abc123/" + r.URL.Query().Get("pathname")
					}

					err := json.NewEncoder(w).Encode(map[string]string{
						"url":      url,
						"pathname": r.URL.Query().Get("pathname"),
					})
					Expect(err).NotTo(HaveOccurred())
				}
			}))

		fileStore = blobstore.NewVercelFileStore(blobServer.URL, "rw-token-456", "store-abc123")
	})

	AfterEach(func() {
		blobServer.Close()
	})

	Describe("WriteFile", func() {
		var writtenURL string
		var writeErr error

		JustBeforeEach(func() {
			writtenURL, writeErr = fileStore.WriteFile(
				context.Background(), "vocals/vocals_abc_123.mp3", []byte("vocal_jamz"))
		})

		Describe("Happy path", func() {
			It("doesn't return an error", func() {
				Expect(writeErr).NotTo(HaveOccurred())
			})

			It("PUTs to the put endpoint with the pathname", func() {
				Expect(receivedRequests).To(HaveLen(1))

				request := receivedRequests[0]
				Expect(request.Method).To(Equal(http.MethodPut))
				Expect(request.URL.Path).To(Equal("/api/put"))
				Expect(request.URL.Query().Get("pathname")).To(Equal("vocals/vocals_abc_123.mp3"))
			})

			It("sends the auth and version headers", func() {
				request := receivedRequests[0]
				Expect(request.Header.Get("Authorization")).To(Equal("Bearer rw-token-456"))
				Expect(request.Header.Get("x-api-version")).To(Equal("6"))
				Expect(request.Header.Get("x-vercel-blob-store-id")).To(Equal("store-abc123"))
			})

			It("uploads the file contents", func() {
				Expect(receivedBodies[0]).To(Equal([]byte("vocal_jamz")))
			})

			It("returns the URL from the response", func() {
				Expect(writtenURL).To(Equal(blobServer.URL + "/store-abc123/vocals/vocals_abc_123.mp3"))
			})
		})

		Describe("Without a store ID", func() {
			BeforeEach(func() {
				fileStore = blobstore.NewVercelFileStore(blobServer.URL, "rw-token-456", "")
			})

			It("omits the store ID header", func() {
				Expect(writeErr).NotTo(HaveOccurred())

				request := receivedRequests[0]
				_, hasStoreID := request.Header["X-Vercel-Blob-Store-Id"]
				Expect(hasStoreID).To(BeFalse())
			})
		})

		Describe("Non-success response", func() {
			BeforeEach(func() {
				responseStatus = http.StatusForbidden
			})

			It("returns an error", func() {
				Expect(writeErr).To(HaveOccurred())
			})
		})

		Describe("Response URL outside the requested directory", func() {
			BeforeEach(func() {
				responseURL = blobServer.URL + "/store-abc123/somewhere-else/file.mp3"
			})

			It("returns an error", func() {
				Expect(writeErr).To(HaveOccurred())
			})
		})
	})

	Describe("GetFile", func() {
		It("fetches the file contents with the auth header", func() {
			contents, err := fileStore.GetFile(context.Background(), blobServer.URL+"/store-abc123/vocals/file.mp3")
			Expect(err).NotTo(HaveOccurred())
			Expect(contents).To(Equal([]byte("stored_bytes")))

			Expect(receivedRequests).To(HaveLen(1))
			Expect(receivedRequests[0].Method).To(Equal(http.MethodGet))
			Expect(receivedRequests[0].Header.Get("Authorization")).To(Equal("Bearer rw-token-456"))
		})
	})
})
