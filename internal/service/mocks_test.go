package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/GriffinCanCode/tccm/internal/providers/filesystem"
	"github.com/GriffinCanCode/tccm/internal/providers/http/files"
	"github.com/GriffinCanCode/tccm/internal/registry"
)

type mockRegistry struct {
	mock.Mock
}

func (m *mockRegistry) Publish(ctx context.Context, req registry.PublishRequest) (*files.UploadResult, error) {
	args := m.Called(ctx, req)
	if res := args.Get(0); res != nil {
		return res.(*files.UploadResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRegistry) Lookup(ctx context.Context, origin, name string) (*registry.Envelope, error) {
	args := m.Called(ctx, origin, name)
	if res := args.Get(0); res != nil {
		return res.(*registry.Envelope), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRegistry) Fetch(ctx context.Context, origin, dataPath, dest, partial string) (*files.DownloadResult, error) {
	args := m.Called(ctx, origin, dataPath, dest, partial)
	if res := args.Get(0); res != nil {
		return res.(*files.DownloadResult), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockArchiver struct {
	mock.Mock
}

func (m *mockArchiver) Create(ctx context.Context, req filesystem.ArchiveRequest) (*filesystem.ArchiveResult, error) {
	args := m.Called(ctx, req)
	if res := args.Get(0); res != nil {
		return res.(*filesystem.ArchiveResult), args.Error(1)
	}
	return nil, args.Error(1)
}
