package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dargueta/nemesis"
	"github.com/fatih/color"
	"github.com/hashicorp/go-multierror"
	"github.com/urfave/cli/v2"
)

var (
	okColor   = color.New(color.FgGreen)
	failColor = color.New(color.FgRed, color.Bold)
)

// codecFunc is the signature shared by [nemesis.Decode] and the encoder
// closures built by compressFiles.
type codecFunc func(input io.Reader, output io.Writer) (int64, error)

// processFile runs `codec` over the file at `sourcePath` and writes the result
// to `outputPath`. It returns the input and output sizes.
func processFile(codec codecFunc, sourcePath, outputPath string) (int64, int64, error) {
	sourceFile, err := os.Open(sourcePath)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to open file for reading: `%s`: %w", sourcePath, err)
	}
	defer sourceFile.Close()

	stat, err := sourceFile.Stat()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to stat `%s`: %w", sourcePath, err)
	}

	outFile, err := os.Create(outputPath)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to open file for writing: `%s`: %w", outputPath, err)
	}
	defer outFile.Close()

	writer := bufio.NewWriter(outFile)
	nWritten, err := codec(bufio.NewReader(sourceFile), writer)
	if err != nil {
		return stat.Size(), nWritten, fmt.Errorf("`%s`: %w", sourcePath, err)
	}
	if err = writer.Flush(); err != nil {
		return stat.Size(), nWritten, fmt.Errorf("failed to write `%s`: %w", outputPath, err)
	}
	return stat.Size(), nWritten, nil
}

// processFiles runs `codec` over every file named on the command line. A
// failure doesn't stop the remaining files from being processed; all errors
// are returned together.
func processFiles(
	context *cli.Context,
	codec codecFunc,
	outputName func(string) string,
) error {
	if context.NArg() == 0 {
		return cli.Exit("no input files given", 1)
	}

	var result *multierror.Error
	for _, sourcePath := range context.Args().Slice() {
		outputPath := outputName(sourcePath)

		inSize, outSize, err := processFile(codec, sourcePath, outputPath)
		if err != nil {
			failColor.Fprintf(context.App.ErrWriter, "FAILED ")
			fmt.Fprintln(context.App.ErrWriter, err)
			result = multierror.Append(result, err)
			continue
		}

		okColor.Fprintf(context.App.Writer, "OK ")
		fmt.Fprintf(
			context.App.Writer, "%s -> %s (%d -> %d bytes)\n",
			sourcePath, outputPath, inSize, outSize)
	}
	return result.ErrorOrNil()
}

func compressFiles(context *cli.Context) error {
	mode, err := nemesis.ParseMode(context.String("mode"))
	if err != nil {
		return err
	}

	opts := &nemesis.Options{
		Mode:     mode,
		Parallel: context.Bool("parallel"),
	}
	suffix := context.String("suffix")

	return processFiles(
		context,
		func(input io.Reader, output io.Writer) (int64, error) {
			return nemesis.EncodeWithOptions(input, output, opts)
		},
		func(sourcePath string) string {
			return sourcePath + suffix
		},
	)
}

func decompressFiles(context *cli.Context) error {
	suffix := context.String("suffix")

	return processFiles(
		context,
		nemesis.Decode,
		func(sourcePath string) string {
			if suffix != "" && strings.HasSuffix(sourcePath, suffix) {
				return strings.TrimSuffix(sourcePath, suffix)
			}
			return sourcePath + ".bin"
		},
	)
}
