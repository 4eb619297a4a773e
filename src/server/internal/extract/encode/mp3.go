package encode

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/apex/log"
	"github.com/stemnote/vocal-extract-be/src/server/internal/extract/executor"
	"github.com/stemnote/vocal-extract-be/src/shared/lib/cerr"
)

const mp3Bitrate = "192k"

type Encoder interface {
	EncodeToMP3(ctx context.Context, inputFilePath string, outputFilePath string) error
}

var _ Encoder = FFMPEGEncoder{}

func NewFFMPEGEncoder(ffmpegBinPath string, commandExecutor executor.Executor) FFMPEGEncoder {
	return FFMPEGEncoder{
		ffmpegBinPath: ffmpegBinPath,
		executor:      commandExecutor,
	}
}

type FFMPEGEncoder struct {
	ffmpegBinPath string
	executor      executor.Executor
}

func (f FFMPEGEncoder) EncodeToMP3(ctx context.Context, inputFilePath string, outputFilePath string) error {
	absInputFilePath, err := filepath.Abs(inputFilePath)
	if err != nil {
		return cerr.Wrap(err).Error("Cannot convert input path to absolute format")
	}

	absOutputFilePath, err := filepath.Abs(outputFilePath)
	if err != nil {
		return cerr.Wrap(err).Error("Cannot convert output path to absolute format")
	}

	if ctx.Err() != nil {
		return cerr.Wrap(ctx.Err()).Error("Context cancelled before encoding could happen")
	}

	logger := log.WithFields(log.Fields{
		"inputPath":  absInputFilePath,
		"outputPath": absOutputFilePath,
	})

	logger.Info("Running ffmpeg command")

	args := []string{"-y", "-i", absInputFilePath, "-codec:a", "libmp3lame", "-b:a", mp3Bitrate, absOutputFilePath}

	errctx := cerr.Field("ffmpeg_bin_path", f.ffmpegBinPath).Field("ffmpeg_args", args)

	cmd := f.executor.Command(f.ffmpegBinPath, args...)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return errctx.Field("ffmpeg_output", string(output)).
			Wrap(err).
			Error(fmt.Sprintf("Error occurred while running ffmpeg: %s", string(output)))
	}

	logger.Debug(string(output))
	logger.Info("Finished ffmpeg command")

	return nil
}
