package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dargueta/nemesis"
	ntesting "github.com/dargueta/nemesis/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func newTestApp(stdout *bytes.Buffer) *cli.App {
	app := newApp()
	app.Writer = stdout
	app.ErrWriter = stdout
	// Don't let exit codes kill the test binary.
	app.ExitErrHandler = func(*cli.Context, error) {}
	return app
}

func TestCompressDecompress(t *testing.T) {
	dir := t.TempDir()
	original := ntesting.CreateSparseTiles(t, 10)

	sourcePath := filepath.Join(dir, "art.bin")
	require.NoError(t, os.WriteFile(sourcePath, original, 0o644))

	stdout := bytes.Buffer{}
	err := newTestApp(&stdout).Run(
		[]string{"nemesis", "compress", "--mode", "xor", sourcePath})
	require.NoError(t, err, stdout.String())

	compressed, err := os.ReadFile(sourcePath + ".nem")
	require.NoError(t, err)
	header, _, err := nemesis.ReadCodeTable(bytes.NewReader(compressed))
	require.NoError(t, err)
	assert.True(t, header.Xor)
	assert.Equal(t, 10, header.Tiles)

	require.NoError(t, os.Remove(sourcePath))
	err = newTestApp(&stdout).Run(
		[]string{"nemesis", "decompress", sourcePath + ".nem"})
	require.NoError(t, err, stdout.String())

	decompressed, err := os.ReadFile(sourcePath)
	require.NoError(t, err)
	assert.Equal(t, original, decompressed)
}

func TestCompress__MissingFileDoesNotStopOthers(t *testing.T) {
	dir := t.TempDir()
	goodPath := filepath.Join(dir, "good.bin")
	require.NoError(t, os.WriteFile(goodPath, make([]byte, nemesis.TileSize), 0o644))

	stdout := bytes.Buffer{}
	err := newTestApp(&stdout).Run(
		[]string{
			"nemesis",
			"compress",
			filepath.Join(dir, "missing.bin"),
			goodPath,
		},
	)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "missing.bin")
	assert.FileExists(t, goodPath+".nem")
}

func TestCompress__BadMode(t *testing.T) {
	stdout := bytes.Buffer{}
	err := newTestApp(&stdout).Run(
		[]string{"nemesis", "compress", "--mode", "fast", "whatever.bin"})
	assert.ErrorIs(t, err, nemesis.ErrInvalidArgument)
}

func TestShowCodeTable__CSV(t *testing.T) {
	dir := t.TempDir()
	compressedPath := filepath.Join(dir, "zeros.nem")

	compressed, err := nemesis.EncodeBytes(make([]byte, nemesis.TileSize))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(compressedPath, compressed, 0o644))

	stdout := bytes.Buffer{}
	err = newTestApp(&stdout).Run(
		[]string{"nemesis", "table", "--format", "csv", compressedPath})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	assert.Equal(t, []string{"nibble,count,code,length", "0,8,0,1"}, lines)
}

func TestShowCodeTable__Table(t *testing.T) {
	dir := t.TempDir()
	compressedPath := filepath.Join(dir, "sparse.nem")

	compressed := ntesting.EncodeToBytes(t, ntesting.CreateSparseTiles(t, 4), nil)
	require.NoError(t, os.WriteFile(compressedPath, compressed, 0o644))

	stdout := bytes.Buffer{}
	err := newTestApp(&stdout).Run([]string{"nemesis", "table", compressedPath})
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "4 tiles (128 bytes)")
	assert.Contains(t, stdout.String(), "NIBBLE")
}
