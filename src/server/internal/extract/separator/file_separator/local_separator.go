package file_separator

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"github.com/stemnote/vocal-extract-be/src/server/internal/extract/executor"
	"github.com/stemnote/vocal-extract-be/src/server/internal/extract/separator"
	"github.com/stemnote/vocal-extract-be/src/shared/lib/cerr"
	"github.com/stemnote/vocal-extract-be/src/shared/lib/working_dir"
)

// the pretrained model checkpoint to run, 4 stems with vocals last
const demucsModelName = "htdemucs"

const spleeterParam = "spleeter:4stems-16kHz"

const mp3Bitrate = "192k"

var _ separator.FileSeparator = LocalFileSeparator{}

func NewLocalFileSeparator(workingDirStr string, demucsBinPath string, spleeterBinPath string, commandExecutor executor.Executor) (LocalFileSeparator, error) {
	workingDir, err := working_dir.NewWorkingDir(workingDirStr)
	if err != nil {
		return LocalFileSeparator{}, cerr.Wrap(err).Error("Failed to convert working dir to absolute format")
	}

	return LocalFileSeparator{
		workingDir:      workingDir,
		demucsBinPath:   demucsBinPath,
		spleeterBinPath: spleeterBinPath,
		executor:        commandExecutor,
	}, nil
}

type LocalFileSeparator struct {
	workingDir      working_dir.WorkingDir
	demucsBinPath   string
	spleeterBinPath string
	executor        executor.Executor
}

func (l LocalFileSeparator) SeparateFile(ctx context.Context, inputFilePath string, stemsOutputDir string, engine separator.Engine) (separator.StemFilePaths, error) {
	absInputFilePath, err := filepath.Abs(inputFilePath)
	if err != nil {
		return nil, cerr.Wrap(err).Error("Cannot convert source path to absolute format")
	}

	errctx := cerr.Field("input_filepath", absInputFilePath)

	absStemsOutputDir, err := filepath.Abs(stemsOutputDir)
	if err != nil {
		return nil, errctx.Wrap(err).Error("Cannot convert destination path to absolute format")
	}

	if err := os.MkdirAll(absStemsOutputDir, os.ModePerm); err != nil {
		return nil, errctx.Wrap(err).Error("Failed to create the stems output dir")
	}

	// separation is a lengthy process, if we want to halt now is the time
	if ctx.Err() != nil {
		return nil, cerr.Wrap(ctx.Err()).Error("Context cancelled before separation could happen")
	}

	switch engine {
	case separator.DemucsEngine:
		if err := l.runDemucs(absInputFilePath, absStemsOutputDir); err != nil {
			return nil, errctx.Field("output_dir", absStemsOutputDir).
				Wrap(err).Error("Failed to execute demucs")
		}

	case separator.SpleeterEngine:
		if err := l.runSpleeter(absInputFilePath, absStemsOutputDir); err != nil {
			return nil, errctx.Field("output_dir", absStemsOutputDir).
				Wrap(err).Error("Failed to execute spleeter")
		}

	default:
		return nil, cerr.Field("engine", engine).Error("Invalid separation engine passed in!")
	}

	return collectStemFilePaths(absStemsOutputDir)
}

func (l LocalFileSeparator) runDemucs(sourcePath string, destPath string) error {
	logger := log.WithFields(log.Fields{
		"sourcePath": sourcePath,
		"destPath":   destPath,
		"workingDir": l.workingDir.Root(),
	})

	logger.Info("Running demucs command")

	args := []string{"-o", destPath, "-n", demucsModelName, "-d", "cpu", "--filename", "{stem}.{ext}", sourcePath}

	errctx := cerr.Field("demucs_bin_path", l.demucsBinPath).Field("demucs_args", args)

	cmd := l.executor.Command(l.demucsBinPath, args...)
	cmd.SetDir(l.workingDir.Root())

	output, err := cmd.CombinedOutput()
	if err != nil {
		return errctx.Field("demucs_output", string(output)).
			Wrap(err).
			Error(fmt.Sprintf("Error occurred while running demucs: %s", string(output)))
	}

	logger.Debug(string(output))
	logger.Info("Finished demucs command")

	return nil
}

func (l LocalFileSeparator) runSpleeter(sourcePath string, destPath string) error {
	logger := log.WithFields(log.Fields{
		"sourcePath": sourcePath,
		"destPath":   destPath,
		"workingDir": l.workingDir.Root(),
	})

	logger.Info("Running spleeter command")

	args := []string{"separate", "-p", spleeterParam, "-o", destPath, "-c", "mp3", "-b", mp3Bitrate, "-f", "{instrument}.mp3", sourcePath}

	errctx := cerr.Field("spleeter_bin_path", l.spleeterBinPath).Field("spleeter_args", args)

	cmd := l.executor.Command(l.spleeterBinPath, args...)
	cmd.SetDir(l.workingDir.Root())

	output, err := cmd.CombinedOutput()
	if err != nil {
		return errctx.Field("spleeter_output", string(output)).
			Wrap(err).
			Error(fmt.Sprintf("Error occurred while running spleeter: %s", string(output)))
	}

	logger.Debug(string(output))
	logger.Info("Finished spleeter command")

	return nil
}

// the engines nest their outputs differently (demucs puts stems under
// <model>/<track>/, spleeter directly under the output dir), so walk the
// whole tree and key by base file name
func collectStemFilePaths(dir string) (separator.StemFilePaths, error) {
	logger := log.WithFields(log.Fields{
		"dir": dir,
	})

	logger.Info("Walking directory to collect stem file paths")

	outputs := separator.StemFilePaths{}

	err := filepath.WalkDir(dir, func(currentPath string, dirEntry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if dirEntry.IsDir() {
			return nil
		}

		fileName := dirEntry.Name()
		filePath, err := filepath.Abs(currentPath)
		if err != nil {
			return cerr.Field("relative_file_path", currentPath).
				Wrap(err).Error("Failed to convert file path to absolute format")
		}

		stemName := strings.TrimSuffix(fileName, filepath.Ext(fileName))
		outputs[stemName] = filePath
		return nil
	})

	if err != nil {
		return nil, cerr.Wrap(err).Error("Error walking the output directory")
	}

	if len(outputs) == 0 {
		return nil, cerr.Field("dir", dir).Error("No files in output directory")
	}

	return outputs, nil
}
