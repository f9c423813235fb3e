package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchiveName(t *testing.T) {
	assert.Equal(t, "foo@1.2.3.zip", ArchiveName("foo", "1.2.3", ".zip"))
	assert.Equal(t, "foo@1.2.3.tar.zst", ArchiveName("foo", "1.2.3", ".tar.zst"))
}

func TestDownloadNames(t *testing.T) {
	assert.Equal(t, "lazyload-0.0.1.zip", DownloadName("lazyload-0.0.1"))
	assert.Equal(t, ".lazyload-0.0.1.zip.part", PartialName("lazyload-0.0.1"))
}

func TestDirname(t *testing.T) {
	assert.Equal(t, "widget", Dirname("/home/alice/widget"))
	assert.Equal(t, "widget", Dirname("/home/alice/widget/"))
}

func TestStampFile(t *testing.T) {
	assert.Equal(t, filepath.Join("/a/b", "info.json"), StampFile("/a/b"))
}

func TestSame(t *testing.T) {
	root := t.TempDir()
	real := filepath.Join(root, "widget")
	require.NoError(t, os.Mkdir(real, 0o755))
	other := filepath.Join(root, "other")
	require.NoError(t, os.Mkdir(other, 0o755))

	link := filepath.Join(root, "link")
	require.NoError(t, os.Symlink(real, link))

	tests := []struct {
		name     string
		recorded string
		actual   string
		want     bool
	}{
		{"identical", real, real, true},
		{"trailing slash", real + "/", real, true},
		{"dot segment", filepath.Join(real, "."), real, true},
		{"symlink", link, real, true},
		{"different dir", other, real, false},
		{"empty recorded", "", real, false},
		{"missing dir exact", "/nope/x", "/nope/x", true},
		{"missing dirs differ", "/nope/x", "/nope/y", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Same(tt.recorded, tt.actual))
		})
	}
}

func TestDefaultConfigFile(t *testing.T) {
	path, err := DefaultConfigFile()
	require.NoError(t, err)
	assert.Equal(t, ConfigFileName, filepath.Base(path))
	assert.True(t, filepath.IsAbs(path))
}
