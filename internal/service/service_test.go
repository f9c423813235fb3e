package service

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/tccm/internal/domain/settings"
	"github.com/GriffinCanCode/tccm/internal/domain/stamp"
	"github.com/GriffinCanCode/tccm/internal/providers/filesystem"
	"github.com/GriffinCanCode/tccm/internal/providers/http/client"
	"github.com/GriffinCanCode/tccm/internal/registry"
	"github.com/GriffinCanCode/tccm/internal/registry/registrytest"
	"github.com/GriffinCanCode/tccm/internal/shared/errors"
	"github.com/GriffinCanCode/tccm/internal/shared/paths"
)

type fixture struct {
	store   *settings.Store
	dir     string
	staging string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, "widget")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	staging := filepath.Join(root, "staging")
	require.NoError(t, os.MkdirAll(staging, 0o755))
	return &fixture{
		store:   settings.NewStore(filepath.Join(root, "etc", "config.json"), nil),
		dir:     dir,
		staging: staging,
	}
}

func (f *fixture) configure(t *testing.T, origin string) {
	t.Helper()
	_, err := f.store.Apply(settings.Update{Origin: origin, User: "alice", Email: "a@x.com"})
	require.NoError(t, err)
}

func (f *fixture) service(reg Registry, arch Archiver) *Service {
	return New(Options{
		Store:      f.store,
		Registry:   reg,
		Archiver:   arch,
		StagingDir: f.staging,
	})
}

func (f *fixture) live(t *testing.T) *Service {
	t.Helper()
	return f.service(registry.NewClient(client.NewClient(client.Options{})), nil)
}

func TestConfigurePreservesFields(t *testing.T) {
	f := newFixture(t)
	svc := f.service(nil, nil)
	ctx := context.Background()

	_, err := svc.Configure(ctx, settings.Update{Origin: "http://reg.test"})
	require.NoError(t, err)
	res, err := svc.Configure(ctx, settings.Update{User: "alice"})
	require.NoError(t, err)

	assert.Equal(t, f.store.Path(), res.Path)
	assert.Equal(t, "http://reg.test", res.Settings.Origin)
	assert.Equal(t, "alice", res.Settings.User)
}

func TestConfigureEmpty(t *testing.T) {
	f := newFixture(t)
	_, err := f.service(nil, nil).Configure(context.Background(), settings.Update{})
	assert.ErrorIs(t, err, settings.ErrInvalidConfiguration)
	assert.NoFileExists(t, f.store.Path())
}

func TestSetVersion(t *testing.T) {
	f := newFixture(t)
	f.configure(t, "http://reg.test")

	info, err := f.service(nil, nil).SetVersion(context.Background(), f.dir, "1.2.3")
	require.NoError(t, err)
	assert.Equal(t, "1.2.3", info.Version)
	assert.Equal(t, "alice", info.Author)
	assert.Equal(t, "widget", info.Dirname)

	stored, err := stamp.Read(f.dir)
	require.NoError(t, err)
	assert.Equal(t, "1.2.3", stored.Version)
}

func TestSetVersionGateBeforeVersionCheck(t *testing.T) {
	f := newFixture(t)

	_, err := f.service(nil, nil).SetVersion(context.Background(), f.dir, "not-a-version")
	assert.ErrorIs(t, err, settings.ErrMissingOrigin)
	assert.NoFileExists(t, paths.StampFile(f.dir))
}

func TestSetVersionInvalid(t *testing.T) {
	f := newFixture(t)
	f.configure(t, "http://reg.test")

	_, err := f.service(nil, nil).SetVersion(context.Background(), f.dir, "1.2")
	assert.ErrorIs(t, err, stamp.ErrMissingVersion)
	assert.NoFileExists(t, paths.StampFile(f.dir))
}

func TestPublishRefusedWithoutSideEffects(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T, f *fixture)
		wantErr error
	}{
		{
			name:    "no config",
			setup:   func(t *testing.T, f *fixture) {},
			wantErr: settings.ErrMissingOrigin,
		},
		{
			name: "missing user",
			setup: func(t *testing.T, f *fixture) {
				_, err := f.store.Apply(settings.Update{Origin: "http://reg.test"})
				require.NoError(t, err)
			},
			wantErr: settings.ErrMissingUser,
		},
		{
			name: "missing email",
			setup: func(t *testing.T, f *fixture) {
				_, err := f.store.Apply(settings.Update{Origin: "http://reg.test", User: "alice"})
				require.NoError(t, err)
			},
			wantErr: settings.ErrMissingEmail,
		},
		{
			name: "no stamp",
			setup: func(t *testing.T, f *fixture) {
				f.configure(t, "http://reg.test")
			},
			wantErr: stamp.ErrNotStamped,
		},
		{
			name: "stale stamp",
			setup: func(t *testing.T, f *fixture) {
				f.configure(t, "http://reg.test")
				require.NoError(t, stamp.Write(f.dir, &stamp.Info{
					Version: "1.0.0",
					Author:  "alice",
					Email:   "a@x.com",
					Cwd:     "/somewhere/else/widget",
					Dirname: "widget",
				}))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(t, f)

			reg := &mockRegistry{}
			arch := &mockArchiver{}

			_, err := f.service(reg, arch).Publish(context.Background(), f.dir)
			require.Error(t, err)
			assert.Equal(t, errors.CategoryUsage, errors.CategoryOf(err))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}

			reg.AssertNumberOfCalls(t, "Publish", 0)
			arch.AssertNumberOfCalls(t, "Create", 0)

			entries, err := os.ReadDir(f.staging)
			require.NoError(t, err)
			assert.Empty(t, entries)
		})
	}
}

func TestPublish(t *testing.T) {
	reg := registrytest.New(t)
	f := newFixture(t)
	f.configure(t, reg.URL)
	require.NoError(t, os.WriteFile(filepath.Join(f.dir, "index.js"), []byte("module.exports = {}"), 0o644))

	svc := f.live(t)
	ctx := context.Background()
	_, err := svc.SetVersion(ctx, f.dir, "1.2.3")
	require.NoError(t, err)

	result, err := svc.Publish(ctx, f.dir)
	require.NoError(t, err)
	assert.Equal(t, "widget@1.2.3", result.Name)
	assert.Equal(t, filepath.Join(f.staging, "widget@1.2.3.zip"), result.Archive)
	assert.Equal(t, 2, result.Entries)

	uploads := reg.Uploads()
	require.Len(t, uploads, 1)
	assert.Equal(t, "widget@1.2.3.zip", uploads[0].Filename)
	assert.Equal(t, "alice", uploads[0].Author)
	assert.Equal(t, "a@x.com", uploads[0].Email)
	assert.Equal(t, "application/zip", uploads[0].ContentType)

	assert.NoFileExists(t, result.Archive)
	assert.Equal(t, float64(1), testutil.ToFloat64(svc.Metrics().Operations.WithLabelValues(CommandPublish, "success")))
	assert.Equal(t, float64(2), testutil.ToFloat64(svc.Metrics().ArchiveFiles))
}

func TestPublishFailureKeepsArchive(t *testing.T) {
	reg := registrytest.New(t)
	reg.FailUploads(http.StatusInternalServerError)

	f := newFixture(t)
	f.configure(t, reg.URL)
	require.NoError(t, os.WriteFile(filepath.Join(f.dir, "index.js"), []byte("x"), 0o644))

	svc := f.live(t)
	ctx := context.Background()
	_, err := svc.SetVersion(ctx, f.dir, "1.0.0")
	require.NoError(t, err)

	_, err = svc.Publish(ctx, f.dir)
	require.Error(t, err)
	assert.Equal(t, errors.CategoryNetwork, errors.CategoryOf(err))

	kept := filepath.Join(f.staging, "widget@1.0.0.zip")
	assert.FileExists(t, kept)
	assert.Contains(t, err.Error(), kept)
	assert.Equal(t, float64(1), testutil.ToFloat64(svc.Metrics().Operations.WithLabelValues(CommandPublish, "network")))
}

func TestPublishArchiveFailure(t *testing.T) {
	f := newFixture(t)
	f.configure(t, "http://reg.test")
	_, err := f.service(nil, nil).SetVersion(context.Background(), f.dir, "1.0.0")
	require.NoError(t, err)

	reg := &mockRegistry{}
	arch := &mockArchiver{}
	arch.On("Create", mock.Anything, filesystem.ArchiveRequest{
		Source: f.dir,
		Output: filepath.Join(f.staging, "widget@1.0.0.zip"),
		Format: filesystem.FormatZip,
	}).Return(nil, os.ErrPermission)

	_, err = f.service(reg, arch).Publish(context.Background(), f.dir)
	require.Error(t, err)
	assert.Equal(t, errors.CategoryFileSystem, errors.CategoryOf(err))
	arch.AssertExpectations(t)
	reg.AssertNumberOfCalls(t, "Publish", 0)
}

func TestGet(t *testing.T) {
	reg := registrytest.New(t)
	reg.AddComponent("lazyload-0.0.1", []byte("zip bytes"))

	f := newFixture(t)
	_, err := f.store.Apply(settings.Update{Origin: reg.URL})
	require.NoError(t, err)

	svc := f.live(t)
	result, err := svc.Get(context.Background(), f.dir, "lazyload-0.0.1")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(f.dir, "lazyload-0.0.1.zip"), result.Path)

	data, err := os.ReadFile(result.Path)
	require.NoError(t, err)
	assert.Equal(t, "zip bytes", string(data))
	assert.Equal(t, float64(9), testutil.ToFloat64(svc.Metrics().TransferBytes.WithLabelValues("download")))
}

func TestGetNotFound(t *testing.T) {
	reg := registrytest.New(t)
	reg.SetResponse("widget", registrytest.Response{Code: 7, Msg: "not found"})

	f := newFixture(t)
	_, err := f.store.Apply(settings.Update{Origin: reg.URL})
	require.NoError(t, err)

	_, err = f.live(t).Get(context.Background(), f.dir, "widget")
	require.Error(t, err)
	assert.Equal(t, errors.CategoryRegistry, errors.CategoryOf(err))
	assert.Equal(t, "not found", errors.Format(err))

	entries, err := os.ReadDir(f.dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGetRequiresOrigin(t *testing.T) {
	f := newFixture(t)
	reg := &mockRegistry{}

	_, err := f.service(reg, nil).Get(context.Background(), f.dir, "widget")
	assert.ErrorIs(t, err, settings.ErrMissingOrigin)
	reg.AssertNumberOfCalls(t, "Lookup", 0)
}

func TestGetRequiresName(t *testing.T) {
	f := newFixture(t)
	_, err := f.store.Apply(settings.Update{Origin: "http://reg.test"})
	require.NoError(t, err)

	reg := &mockRegistry{}
	_, err = f.service(reg, nil).Get(context.Background(), f.dir, "")
	require.Error(t, err)
	assert.Equal(t, errors.CategoryUsage, errors.CategoryOf(err))
	reg.AssertNumberOfCalls(t, "Lookup", 0)
}

func TestGetFetchFailureLeavesNothing(t *testing.T) {
	reg := registrytest.New(t)
	reg.SetResponse("widget", registrytest.Response{Code: 0, Data: "/files/missing.zip"})

	f := newFixture(t)
	_, err := f.store.Apply(settings.Update{Origin: reg.URL})
	require.NoError(t, err)

	_, err = f.live(t).Get(context.Background(), f.dir, "widget")
	require.Error(t, err)
	assert.Equal(t, errors.CategoryNetwork, errors.CategoryOf(err))

	entries, err := os.ReadDir(f.dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
