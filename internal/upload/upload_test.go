package upload

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"CR-CMIP-0-2-0/gn/v20240520/co2_CR-CMIP-0-2-0_200001-200012.nc": "one",
		"CR-CMIP-0-2-0/gr/v20240520/co2_CR-CMIP-0-2-0_200001-200012.nc": "two",
		"CR-CMIP-0-2-0/gn/v20240520/notes.txt":                          "not a netcdf file",
	}
	for rel, content := range files {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func TestFindTreeFiles(t *testing.T) {
	root := writeTree(t)
	files, err := FindTreeFiles(root, "*.nc")
	require.NoError(t, err)
	assert.Len(t, files, 2)
	for _, f := range files {
		assert.Equal(t, ".nc", filepath.Ext(f))
	}
}

func TestUploadTreePreservesLayout(t *testing.T) {
	root := writeTree(t)
	staging := t.TempDir()
	uploader := &LocalStagingUploader{Dir: staging}

	require.NoError(t, UploadTree(context.Background(), uploader, root, "*.nc", 2))

	staged, err := FindTreeFiles(staging, "*.nc")
	require.NoError(t, err)
	require.Len(t, staged, 2)

	content, err := os.ReadFile(filepath.Join(
		staging, "CR-CMIP-0-2-0", "gn", "v20240520", "co2_CR-CMIP-0-2-0_200001-200012.nc"))
	require.NoError(t, err)
	assert.Equal(t, "one", string(content))
}

func TestUploadSkipsExistingFiles(t *testing.T) {
	root := writeTree(t)
	staging := t.TempDir()
	uploader := &LocalStagingUploader{Dir: staging}

	require.NoError(t, UploadTree(context.Background(), uploader, root, "*.nc", 1))

	// Change a source file, re-upload: the staged copy must survive.
	changed := filepath.Join(root, "CR-CMIP-0-2-0", "gn", "v20240520", "co2_CR-CMIP-0-2-0_200001-200012.nc")
	require.NoError(t, os.WriteFile(changed, []byte("changed"), 0o644))
	require.NoError(t, UploadTree(context.Background(), uploader, root, "*.nc", 1))

	content, err := os.ReadFile(filepath.Join(
		staging, "CR-CMIP-0-2-0", "gn", "v20240520", "co2_CR-CMIP-0-2-0_200001-200012.nc"))
	require.NoError(t, err)
	assert.Equal(t, "one", string(content))
}

func TestUploadTreeAggregatesFailures(t *testing.T) {
	root := writeTree(t)
	// A staging dir that cannot be created under.
	uploader := &LocalStagingUploader{Dir: filepath.Join(root, "CR-CMIP-0-2-0", "gn", "v20240520", "notes.txt")}

	err := UploadTree(context.Background(), uploader, root, "*.nc", 1)
	require.ErrorIs(t, err, ErrUpload)
	assert.Contains(t, err.Error(), "2 of 2 files failed")
}
