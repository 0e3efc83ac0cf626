package source

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFile is a test helper that creates a file with the given contents.
func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
}

func TestLoad(t *testing.T) {
	t.Run("both files present", func(t *testing.T) {
		dir := t.TempDir()
		primary := filepath.Join(dir, ".env")
		sample := filepath.Join(dir, ".env.sample")
		writeFile(t, primary, "VAR1=a\n")
		writeFile(t, sample, "VAR1=b\n")

		src, err := Load(context.Background(), primary, sample)
		require.NoError(t, err)
		assert.Equal(t, "VAR1=a\n", src.Primary)
		assert.Equal(t, "VAR1=b\n", src.Sample)
		assert.Equal(t, primary, src.PrimaryPath)
		assert.Equal(t, sample, src.SamplePath)
	})

	t.Run("missing files read as empty", func(t *testing.T) {
		dir := t.TempDir()

		src, err := Load(context.Background(),
			filepath.Join(dir, ".env"), filepath.Join(dir, ".env.sample"))
		require.NoError(t, err)
		assert.Empty(t, src.Primary)
		assert.Empty(t, src.Sample)
	})

	t.Run("only sample present", func(t *testing.T) {
		dir := t.TempDir()
		sample := filepath.Join(dir, "nested", ".2env.sample")
		writeFile(t, sample, "VAR1=value1\r\n")

		src, err := Load(context.Background(), filepath.Join(dir, ".env"), sample)
		require.NoError(t, err)
		assert.Empty(t, src.Primary)
		assert.Equal(t, "VAR1=value1\r\n", src.Sample, "line endings must survive loading")
	})

	t.Run("directory in place of primary is an error", func(t *testing.T) {
		dir := t.TempDir()
		primary := filepath.Join(dir, ".env")
		require.NoError(t, os.Mkdir(primary, 0o755))

		src, err := Load(context.Background(), primary, filepath.Join(dir, ".env.sample"))
		require.Error(t, err)
		assert.Nil(t, src)
		assert.Contains(t, err.Error(), primary)
		assert.False(t, errors.Is(err, fs.ErrNotExist))
	})

	t.Run("directory in place of sample is an error", func(t *testing.T) {
		dir := t.TempDir()
		sample := filepath.Join(dir, ".env.sample")
		require.NoError(t, os.Mkdir(sample, 0o755))

		_, err := Load(context.Background(), filepath.Join(dir, ".env"), sample)
		require.Error(t, err)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := Load(ctx, filepath.Join(t.TempDir(), ".env"), "")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

// TestLoad_DefaultPaths runs in a temporary working directory so the
// conventional file names resolve there.
func TestLoad_DefaultPaths(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	writeFile(t, filepath.Join(dir, DefaultSamplePath), "VAR1=value1\n")

	src, err := Load(context.Background(), "", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultPrimaryPath, src.PrimaryPath)
	assert.Equal(t, DefaultSamplePath, src.SamplePath)
	assert.Empty(t, src.Primary)
	assert.Equal(t, "VAR1=value1\n", src.Sample)
}
