package working_dir

import (
	"os"
	"path/filepath"

	"github.com/stemnote/vocal-extract-be/src/shared/lib/cerr"
)

func NewWorkingDir(dirStr string) (WorkingDir, error) {
	absDir, err := filepath.Abs(dirStr)
	if err != nil {
		return WorkingDir{}, cerr.Field("dir", dirStr).
			Wrap(err).Error("Failed to convert working dir to absolute format")
	}

	tempDir := filepath.Join(absDir, "tmp")
	if err := os.MkdirAll(tempDir, os.ModePerm); err != nil {
		return WorkingDir{}, cerr.Field("temp_dir", tempDir).
			Wrap(err).Error("Failed to create the temp dir")
	}

	return WorkingDir{root: absDir}, nil
}

type WorkingDir struct {
	root string
}

func (w WorkingDir) Root() string {
	return w.root
}

// TempDir is the parent for per-request scratch dirs
func (w WorkingDir) TempDir() string {
	return filepath.Join(w.root, "tmp")
}
