package local

import (
	"path"
	"runtime"
)

func ProjectRoot() string {
	_, currentFilePath, _, ok := runtime.Caller(0)
	if !ok {
		panic("Failed to get the current file path")
	}

	return path.Join(path.Dir(currentFilePath), "../../../..")
}
