package registry

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/tccm/internal/providers/http/client"
	"github.com/GriffinCanCode/tccm/internal/registry/registrytest"
	"github.com/GriffinCanCode/tccm/internal/shared/errors"
	"github.com/GriffinCanCode/tccm/internal/shared/id"
)

func newClient() *Client {
	return NewClient(client.NewClient(client.Options{}))
}

func TestPublish(t *testing.T) {
	reg := registrytest.New(t)

	archive := filepath.Join(t.TempDir(), "widget@1.0.0.zip")
	require.NoError(t, os.WriteFile(archive, []byte("archive-bytes"), 0o644))

	_, err := newClient().Publish(context.Background(), PublishRequest{
		Origin:      reg.URL + "/",
		ArchivePath: archive,
		Author:      "alice",
		Email:       "a@x.com",
	})
	require.NoError(t, err)

	uploads := reg.Uploads()
	require.Len(t, uploads, 1)
	assert.Equal(t, "alice", uploads[0].Author)
	assert.Equal(t, "a@x.com", uploads[0].Email)
	assert.Equal(t, "widget@1.0.0.zip", uploads[0].Filename)
	assert.Equal(t, "archive-bytes", string(uploads[0].Body))
	assert.True(t, id.IsValid(uploads[0].RequestID))
}

func TestPublishRejected(t *testing.T) {
	reg := registrytest.New(t)
	reg.FailUploads(http.StatusInternalServerError)

	archive := filepath.Join(t.TempDir(), "widget@1.0.0.zip")
	require.NoError(t, os.WriteFile(archive, []byte("x"), 0o644))

	_, err := newClient().Publish(context.Background(), PublishRequest{
		Origin:      reg.URL,
		ArchivePath: archive,
	})
	require.Error(t, err)
	assert.Equal(t, errors.CategoryNetwork, errors.CategoryOf(err))
}

func TestPublishMissingArchive(t *testing.T) {
	reg := registrytest.New(t)

	_, err := newClient().Publish(context.Background(), PublishRequest{
		Origin:      reg.URL,
		ArchivePath: filepath.Join(t.TempDir(), "gone.zip"),
	})
	require.Error(t, err)
	assert.Equal(t, errors.CategoryFileSystem, errors.CategoryOf(err))
	assert.Equal(t, 0, reg.Requests())
}

func TestLookup(t *testing.T) {
	reg := registrytest.New(t)
	path := reg.AddComponent("widget", []byte("zip"))

	env, err := newClient().Lookup(context.Background(), reg.URL, "widget")
	require.NoError(t, err)
	assert.True(t, env.OK())
	assert.Equal(t, path, env.Data)
}

func TestLookupRegistryError(t *testing.T) {
	reg := registrytest.New(t)
	reg.SetResponse("widget", registrytest.Response{Code: 7, Msg: "not found"})

	_, err := newClient().Lookup(context.Background(), reg.URL, "widget")
	require.Error(t, err)
	assert.Equal(t, errors.CategoryRegistry, errors.CategoryOf(err))
	assert.Equal(t, "not found", errors.Format(err))
}

func TestLookupUnknownComponent(t *testing.T) {
	reg := registrytest.New(t)

	_, err := newClient().Lookup(context.Background(), reg.URL, "nope")
	require.Error(t, err)
	assert.Equal(t, errors.CategoryRegistry, errors.CategoryOf(err))
	assert.Contains(t, err.Error(), "nope")
}

func TestLookupUnreachable(t *testing.T) {
	reg := registrytest.New(t)
	origin := reg.URL
	reg.Close()

	_, err := newClient().Lookup(context.Background(), origin, "widget")
	require.Error(t, err)
	assert.Equal(t, errors.CategoryNetwork, errors.CategoryOf(err))
}

func TestFetch(t *testing.T) {
	reg := registrytest.New(t)
	path := reg.AddComponent("widget", []byte("served bytes"))

	dest := filepath.Join(t.TempDir(), "widget.zip")
	result, err := newClient().Fetch(context.Background(), reg.URL, path, dest, "")
	require.NoError(t, err)
	assert.Equal(t, int64(12), result.Size)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "served bytes", string(data))
}

func TestFetchMissingFile(t *testing.T) {
	reg := registrytest.New(t)

	dest := filepath.Join(t.TempDir(), "widget.zip")
	_, err := newClient().Fetch(context.Background(), reg.URL, "/files/missing.zip", dest, "")
	require.Error(t, err)
	assert.Equal(t, errors.CategoryNetwork, errors.CategoryOf(err))
	assert.NoFileExists(t, dest)
}

func TestEndpoint(t *testing.T) {
	assert.Equal(t, "http://reg.test/upload", Endpoint("http://reg.test", UploadPath))
	assert.Equal(t, "http://reg.test/upload", Endpoint("http://reg.test//", UploadPath))
	assert.Equal(t, "http://reg.test/files/a.zip", DataURL("http://reg.test/", "/files/a.zip"))
	assert.Equal(t, "http://reg.test/files/a.zip", DataURL("http://reg.test", "files/a.zip"))
	assert.Equal(t, "https://cdn.test/a.zip", DataURL("http://reg.test", "https://cdn.test/a.zip"))
}

func TestDecodeEnvelope(t *testing.T) {
	env, err := DecodeEnvelope([]byte(`{"code":7,"msg":"not found"}`))
	require.NoError(t, err)
	assert.False(t, env.OK())
	assert.Equal(t, "not found", env.Message())

	env, err = DecodeEnvelope([]byte(`{"code":3}`))
	require.NoError(t, err)
	assert.Equal(t, "registry returned code 3", env.Message())

	_, err = DecodeEnvelope([]byte(`<html>`))
	assert.Error(t, err)
}
