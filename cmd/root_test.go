package cmd

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/klauspost/compress/flate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookspot/lambdapack/api"
)

// runRoot executes rootCmd with args and resets the flag variables afterwards.
func runRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	prevColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() {
		color.NoColor = prevColor
		sourceDir, outputPath = api.DefaultSourceDir, api.DefaultOutput
		level, verbose = flate.DefaultCompression, false
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	var stdout, stderr bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRoot_PackagesPublishDir(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(src, "lib"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "app.txt"), []byte("hello"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "lib", "util.txt"), []byte("world"), 0o644))
	out := filepath.Join(t.TempDir(), "bookspot-api.zip")

	stdout, stderr, err := runRoot(t, "--source", src, "--output", out, "--verbose")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Creating Lambda deployment package...\n")
	assert.Contains(t, stdout, "  Added: app.txt\n")
	assert.Contains(t, stdout, "  Added: lib/util.txt\n")
	assert.Contains(t, stdout, "\n✅ Lambda package created: "+out+"\n")
	assert.Contains(t, stdout, "📦 Package size: 0.00 MB\n")
	assert.NotContains(t, stdout, "Warning")

	assert.Contains(t, stderr, "added entry")
	assert.Contains(t, stderr, "package created")

	zr, err := zip.OpenReader(out)
	require.NoError(t, err)
	defer func() { _ = zr.Close() }()
	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"app.txt", "lib/util.txt"}, names)
}

func TestRoot_DefaultsToFixedPaths(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	publish := filepath.FromSlash(api.DefaultSourceDir)
	require.NoError(t, os.MkdirAll(publish, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(publish, "BookSpot.API.dll"), []byte("MZ"), 0o644))
	require.NoError(t, os.WriteFile(api.DefaultOutput, []byte("stale"), 0o644))

	stdout, _, err := runRoot(t)
	require.NoError(t, err)

	assert.Contains(t, stdout, "Removed existing "+api.DefaultOutput+"\n")
	assert.Contains(t, stdout, "  Added: BookSpot.API.dll\n")
	_, err = os.Stat(filepath.Join(dir, api.DefaultOutput))
	assert.NoError(t, err)
}

func TestRoot_MissingSource(t *testing.T) {
	dir := t.TempDir()
	_, _, err := runRoot(t, "--source", filepath.Join(dir, "publish"), "--output", filepath.Join(dir, "out.zip"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRoot_RejectsBadLevel(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.zip")
	_, _, err := runRoot(t, "--source", dir, "--output", out, "--level", "11")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid compression level")

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRoot_RejectsPositionalArgs(t *testing.T) {
	_, _, err := runRoot(t, "extra")
	assert.Error(t, err)
}
