package dummy

import "github.com/cockroachdb/errors"

var (
	NetworkFailure = errors.New("Network failure")
	NotFound       = errors.New("File not found")
)
