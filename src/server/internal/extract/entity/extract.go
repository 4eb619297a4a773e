package extractentity

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type ExtractRequest struct {
	MP3URL string `json:"mp3_url"`
}

type ExtractResponse struct {
	VocalsURL             string  `json:"vocals_url"`
	ProcessingTimeSeconds float64 `json:"processing_time_seconds"`
}

type HealthResponse struct {
	Status         string `json:"status"`
	SeparatorReady bool   `json:"separator_ready"`
}

// Job carries the naming scheme for one extraction request. File names
// embed a hash of the source URL and the request timestamp so that
// uploads for the same source don't clobber each other
type Job struct {
	ID        string
	SourceURL string
	urlHash   string
	timestamp string
}

func NewJob(sourceURL string, now time.Time) Job {
	urlSum := md5.Sum([]byte(sourceURL))

	return Job{
		ID:        uuid.New().String(),
		SourceURL: sourceURL,
		urlHash:   hex.EncodeToString(urlSum[:])[:8],
		timestamp: now.Format("20060102_150405"),
	}
}

func (j Job) InputFileName() string {
	return fmt.Sprintf("input_%s.mp3", j.urlHash)
}

func (j Job) VocalsFileName() string {
	return fmt.Sprintf("vocals_%s_%s.mp3", j.urlHash, j.timestamp)
}
