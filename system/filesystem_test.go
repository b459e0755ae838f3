package system_test

import (
	"io"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/oasref/openapi/system"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSystem_Open_Success(t *testing.T) {
	t.Parallel()

	testFile := filepath.Join(t.TempDir(), "openapi.yaml")
	require.NoError(t, os.WriteFile(testFile, []byte("openapi: 3.0.0"), 0o644), "should create test file")

	fsys := &system.FileSystem{}
	file, err := fsys.Open(testFile)
	require.NoError(t, err, "should open file successfully")
	defer file.Close()

	content, err := io.ReadAll(file)
	require.NoError(t, err, "should read file content")
	assert.Equal(t, "openapi: 3.0.0", string(content))
}

func TestFileSystem_Open_Error(t *testing.T) {
	t.Parallel()

	fsys := &system.FileSystem{}
	file, err := fsys.Open(filepath.Join(t.TempDir(), "missing.yaml"))

	require.Error(t, err, "should return error for nonexistent file")
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Nil(t, file, "should return nil file on error")
}

func TestFileSystem_WriteFile_Success(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		path     []string
		existing []byte
	}{
		{name: "new file", path: []string{"out.json"}},
		{name: "creates parent directories", path: []string{"a", "b", "c", "out.json"}},
		{name: "overwrites existing", path: []string{"out.json"}, existing: []byte("previous content that is longer")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			target := filepath.Join(append([]string{t.TempDir()}, tt.path...)...)
			if tt.existing != nil {
				require.NoError(t, os.WriteFile(target, tt.existing, 0o644))
			}

			fsys := &system.FileSystem{}
			require.NoError(t, fsys.WriteFile(target, []byte(`{"openapi":"3.0.0"}`), 0o644), "should write file")

			content, err := os.ReadFile(target)
			require.NoError(t, err, "should read written file")
			assert.Equal(t, `{"openapi":"3.0.0"}`, string(content))
		})
	}
}

func TestFileSystem_MkdirAll_Success(t *testing.T) {
	t.Parallel()

	testPath := filepath.Join(t.TempDir(), "level1", "level2")

	fsys := &system.FileSystem{}
	require.NoError(t, fsys.MkdirAll(testPath, 0o755), "should create directories")
	require.NoError(t, fsys.MkdirAll(testPath, 0o755), "should succeed for an existing directory")

	info, err := os.Stat(testPath)
	require.NoError(t, err)
	assert.True(t, info.IsDir(), "should be a directory")
}

func TestDefaultClient_Do(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("openapi: 3.0.0"))
	}))
	defer server.Close()

	req, err := http.NewRequest(http.MethodGet, server.URL, nil)
	require.NoError(t, err)

	resp, err := system.NewDefaultClient().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "openapi: 3.0.0", string(body))
}
