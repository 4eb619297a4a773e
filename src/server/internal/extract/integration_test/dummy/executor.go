package dummy

import (
	"os"
	"path/filepath"

	"github.com/stemnote/vocal-extract-be/src/server/internal/extract/executor"
	"github.com/stemnote/vocal-extract-be/src/shared/lib/cerr"
)

// SeparatorExecutor impersonates the separation engine binary. On
// invocation it writes one file per configured stem into the output dir
// that the argv asked for, with contents derived from the input file so
// tests can assert on data flow
type SeparatorExecutor struct {
	StemNames []string
	StemExt   string
	Fail      bool
	Calls     [][]string
}

var _ executor.Executor = &SeparatorExecutor{}

func NewDummySeparatorExecutor(stemNames []string, stemExt string) *SeparatorExecutor {
	return &SeparatorExecutor{
		StemNames: stemNames,
		StemExt:   stemExt,
	}
}

func (s *SeparatorExecutor) Command(name string, arg ...string) executor.Command {
	return &separatorCommand{
		executor: s,
		name:     name,
		args:     arg,
	}
}

type separatorCommand struct {
	executor *SeparatorExecutor
	name     string
	args     []string
}

func (c *separatorCommand) SetDir(dir string) {}

func (c *separatorCommand) CombinedOutput() ([]byte, error) {
	c.executor.Calls = append(c.executor.Calls, append([]string{c.name}, c.args...))

	if c.executor.Fail {
		return []byte("dummy separation failure"), cerr.Error("The dummy separator was set to fail")
	}

	if len(c.args) == 0 {
		return nil, cerr.Error("No args passed to the dummy separator")
	}

	destPath := argValueAfter(c.args, "-o")
	if destPath == "" {
		return nil, cerr.Error("No output dir passed to the dummy separator")
	}

	sourcePath := c.args[len(c.args)-1]
	sourceContent, err := os.ReadFile(sourcePath)
	if err != nil {
		return nil, cerr.Field("source_path", sourcePath).
			Wrap(err).Error("Failed to read the source file")
	}

	for _, stemName := range c.executor.StemNames {
		stemPath := filepath.Join(destPath, stemName+"."+c.executor.StemExt)
		stemContent := append([]byte(stemName+":"), sourceContent...)
		if err := os.WriteFile(stemPath, stemContent, os.ModePerm); err != nil {
			return nil, cerr.Field("stem_path", stemPath).
				Wrap(err).Error("Failed to write the stem file")
		}
	}

	return []byte("dummy separation ok"), nil
}

// FFMPEGExecutor impersonates ffmpeg, producing an output file that
// tags the input contents so encoding can be asserted on
type FFMPEGExecutor struct {
	Fail  bool
	Calls [][]string
}

var _ executor.Executor = &FFMPEGExecutor{}

func NewDummyFFMPEGExecutor() *FFMPEGExecutor {
	return &FFMPEGExecutor{}
}

func (f *FFMPEGExecutor) Command(name string, arg ...string) executor.Command {
	return &ffmpegCommand{
		executor: f,
		name:     name,
		args:     arg,
	}
}

type ffmpegCommand struct {
	executor *FFMPEGExecutor
	name     string
	args     []string
}

func (c *ffmpegCommand) SetDir(dir string) {}

func (c *ffmpegCommand) CombinedOutput() ([]byte, error) {
	c.executor.Calls = append(c.executor.Calls, append([]string{c.name}, c.args...))

	if c.executor.Fail {
		return []byte("dummy encoding failure"), cerr.Error("The dummy encoder was set to fail")
	}

	inputPath := argValueAfter(c.args, "-i")
	if inputPath == "" {
		return nil, cerr.Error("No input file passed to the dummy encoder")
	}

	if len(c.args) == 0 {
		return nil, cerr.Error("No args passed to the dummy encoder")
	}

	outputPath := c.args[len(c.args)-1]

	inputContent, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, cerr.Field("input_path", inputPath).
			Wrap(err).Error("Failed to read the input file")
	}

	outputContent := append([]byte("mp3:"), inputContent...)
	if err := os.WriteFile(outputPath, outputContent, os.ModePerm); err != nil {
		return nil, cerr.Field("output_path", outputPath).
			Wrap(err).Error("Failed to write the output file")
	}

	return []byte("dummy encoding ok"), nil
}

func argValueAfter(args []string, flag string) string {
	for i, arg := range args {
		if arg == flag && i+1 < len(args) {
			return args[i+1]
		}
	}

	return ""
}
