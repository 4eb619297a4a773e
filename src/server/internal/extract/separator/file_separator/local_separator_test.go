package file_separator_test

import (
	"context"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/stemnote/vocal-extract-be/src/server/internal/extract/integration_test/dummy"
	"github.com/stemnote/vocal-extract-be/src/server/internal/extract/separator"
	"github.com/stemnote/vocal-extract-be/src/server/internal/extract/separator/file_separator"
)

var _ = Describe("LocalFileSeparator", func() {
	var (
		workingDirStr string
		inputFilePath string
		stemsDir      string
		inputData     []byte

		dummyExecutor *dummy.SeparatorExecutor
		fileSeparator file_separator.LocalFileSeparator
	)

	BeforeEach(func() {
		var err error
		workingDirStr, err = os.MkdirTemp("", "separator-test-*")
		Expect(err).NotTo(HaveOccurred())

		inputData = []byte("cool_jamz")
		inputFilePath = filepath.Join(workingDirStr, "input.mp3")
		Expect(os.WriteFile(inputFilePath, inputData, os.ModePerm)).To(Succeed())

		stemsDir = filepath.Join(workingDirStr, "stems")

		dummyExecutor = dummy.NewDummySeparatorExecutor(
			[]string{"drums", "bass", "other", "vocals"}, "wav")

		fileSeparator, err = file_separator.NewLocalFileSeparator(
			workingDirStr, "/bin/demucs", "/bin/spleeter", dummyExecutor)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		Expect(os.RemoveAll(workingDirStr)).To(Succeed())
	})

	Describe("Running demucs", func() {
		var stemPaths separator.StemFilePaths

		BeforeEach(func() {
			var err error
			stemPaths, err = fileSeparator.SeparateFile(
				context.Background(), inputFilePath, stemsDir, separator.DemucsEngine)
			Expect(err).NotTo(HaveOccurred())
		})

		It("invokes the demucs binary once", func() {
			Expect(dummyExecutor.Calls).To(HaveLen(1))
			Expect(dummyExecutor.Calls[0][0]).To(Equal("/bin/demucs"))
		})

		It("passes the expected arguments", func() {
			args := dummyExecutor.Calls[0][1:]
			Expect(args).To(ContainElements("-o", "-n", "htdemucs", "-d", "cpu", "--filename", "{stem}.{ext}"))
			Expect(args[len(args)-1]).To(Equal(inputFilePath))
		})

		It("collects all the produced stems", func() {
			Expect(stemPaths).To(HaveLen(4))
			Expect(stemPaths).To(HaveKey("vocals"))
			Expect(stemPaths).To(HaveKey("drums"))
			Expect(stemPaths).To(HaveKey("bass"))
			Expect(stemPaths).To(HaveKey("other"))
		})

		It("maps the vocals stem to its file", func() {
			contents, err := os.ReadFile(stemPaths[separator.VocalsStem])
			Expect(err).NotTo(HaveOccurred())
			Expect(contents).To(Equal(append([]byte("vocals:"), inputData...)))
		})
	})

	Describe("Running spleeter", func() {
		BeforeEach(func() {
			_, err := fileSeparator.SeparateFile(
				context.Background(), inputFilePath, stemsDir, separator.SpleeterEngine)
			Expect(err).NotTo(HaveOccurred())
		})

		It("invokes the spleeter binary with the separate command", func() {
			Expect(dummyExecutor.Calls).To(HaveLen(1))
			Expect(dummyExecutor.Calls[0][0]).To(Equal("/bin/spleeter"))
			Expect(dummyExecutor.Calls[0][1]).To(Equal("separate"))
		})

		It("asks for MP3 output at the configured bitrate", func() {
			args := dummyExecutor.Calls[0][1:]
			Expect(args).To(ContainElements("-c", "mp3", "-b", "192k"))
		})
	})

	Describe("Engine failures", func() {
		BeforeEach(func() {
			dummyExecutor.Fail = true
		})

		It("returns an error", func() {
			_, err := fileSeparator.SeparateFile(
				context.Background(), inputFilePath, stemsDir, separator.DemucsEngine)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Empty output", func() {
		BeforeEach(func() {
			dummyExecutor.StemNames = nil
		})

		It("returns an error when no stems were produced", func() {
			_, err := fileSeparator.SeparateFile(
				context.Background(), inputFilePath, stemsDir, separator.DemucsEngine)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Cancelled context", func() {
		It("doesn't invoke the engine", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			_, err := fileSeparator.SeparateFile(ctx, inputFilePath, stemsDir, separator.DemucsEngine)
			Expect(err).To(HaveOccurred())
			Expect(dummyExecutor.Calls).To(BeEmpty())
		})
	})

	Describe("Invalid engine", func() {
		It("returns an error", func() {
			_, err := fileSeparator.SeparateFile(
				context.Background(), inputFilePath, stemsDir, separator.InvalidEngine)
			Expect(err).To(HaveOccurred())
		})
	})
})
