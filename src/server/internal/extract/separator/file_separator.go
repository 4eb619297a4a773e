package separator

import (
	"context"

	"github.com/stemnote/vocal-extract-be/src/shared/lib/cerr"
)

// stem name -> local file path
type StemFilePaths = map[string]string

// both engines name the vocal stem the same way
const VocalsStem = "vocals"

type Engine string

const (
	InvalidEngine  Engine = ""
	DemucsEngine   Engine = "demucs"
	SpleeterEngine Engine = "spleeter"
)

func ParseEngine(value string) (Engine, error) {
	switch value {
	case string(DemucsEngine):
		return DemucsEngine, nil
	case string(SpleeterEngine):
		return SpleeterEngine, nil
	default:
		return InvalidEngine,
			cerr.Field("engine", value).Error("Value does not match any separation engine")
	}
}

type FileSeparator interface {
	SeparateFile(ctx context.Context, inputFilePath string, stemsOutputDir string, engine Engine) (StemFilePaths, error)
}
