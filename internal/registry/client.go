package registry

import (
	"context"
	stderrors "errors"
	"io/fs"
	"net/url"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/tccm/internal/infrastructure/logging"
	"github.com/GriffinCanCode/tccm/internal/providers/http/client"
	"github.com/GriffinCanCode/tccm/internal/providers/http/files"
	"github.com/GriffinCanCode/tccm/internal/shared/errors"
)

// Registry endpoints
const (
	UploadPath     = "/upload"
	ComponentsPath = "/components/"
)

// Client talks to one registry over HTTP
type Client struct {
	http      *client.Client
	uploads   *files.UploadsOps
	downloads *files.DownloadsOps
	logger    *logging.Logger
}

// NewClient creates a registry client on top of an HTTP client
func NewClient(httpClient *client.Client) *Client {
	return &Client{
		http:      httpClient,
		uploads:   &files.UploadsOps{Client: httpClient},
		downloads: &files.DownloadsOps{Client: httpClient},
		logger:    httpClient.Logger(),
	}
}

// PublishRequest describes one component upload
type PublishRequest struct {
	Origin      string
	ArchivePath string
	Author      string
	Email       string
}

// Publish uploads an archive to {origin}/upload
func (c *Client) Publish(ctx context.Context, req PublishRequest) (*files.UploadResult, error) {
	endpoint := Endpoint(req.Origin, UploadPath)

	c.logger.Debug("publishing component",
		zap.String("url", endpoint),
		zap.String("archive", req.ArchivePath),
		zap.String("author", req.Author))

	result, err := c.uploads.UploadFile(ctx, files.UploadRequest{
		URL:       endpoint,
		FilePath:  req.ArchivePath,
		FieldName: files.DefaultFieldName,
		Query: map[string]string{
			"author": req.Author,
			"email":  req.Email,
		},
	})
	if err != nil {
		return nil, classify(err, "publish failed")
	}
	return result, nil
}

// Lookup resolves a component name to its download path
func (c *Client) Lookup(ctx context.Context, origin, name string) (*Envelope, error) {
	endpoint := Endpoint(origin, ComponentsPath+url.PathEscape(name))

	request, err := c.http.Request(ctx)
	if err != nil {
		return nil, errors.Network(err, "lookup failed")
	}

	resp, err := request.Get(endpoint)
	if err != nil {
		return nil, errors.Network(err, "lookup failed")
	}

	env, err := DecodeEnvelope(resp.Body())
	if err != nil {
		if !client.IsSuccess(resp) {
			return nil, errors.Network(&files.StatusError{URL: endpoint, Code: resp.StatusCode(), Status: resp.Status()}, "lookup failed")
		}
		return nil, errors.Network(err, "lookup failed")
	}

	c.logger.Debug("component lookup",
		zap.String("url", endpoint),
		zap.Int("status", resp.StatusCode()),
		zap.Int("code", env.Code),
		zap.String("data", env.Data))

	if !env.OK() {
		return env, errors.Registry(env.Message())
	}
	if !client.IsSuccess(resp) {
		return nil, errors.Network(&files.StatusError{URL: endpoint, Code: resp.StatusCode(), Status: resp.Status()}, "lookup failed")
	}
	if env.Data == "" {
		return nil, errors.Network(nil, "lookup failed: registry returned no download path")
	}
	return env, nil
}

// Fetch downloads {origin}{dataPath} to dest
func (c *Client) Fetch(ctx context.Context, origin, dataPath, dest, partial string) (*files.DownloadResult, error) {
	result, err := c.downloads.Download(ctx, files.DownloadRequest{
		URL:     DataURL(origin, dataPath),
		Path:    dest,
		Partial: partial,
	})
	if err != nil {
		return nil, classify(err, "download failed")
	}
	return result, nil
}

// Endpoint joins origin and an absolute path
func Endpoint(origin, path string) string {
	return strings.TrimRight(origin, "/") + path
}

// DataURL resolves the data field of a lookup envelope against origin
func DataURL(origin, data string) string {
	if strings.HasPrefix(data, "http://") || strings.HasPrefix(data, "https://") {
		return data
	}
	if !strings.HasPrefix(data, "/") {
		data = "/" + data
	}
	return Endpoint(origin, data)
}

// classify maps local I/O failures to filesystem errors and the rest to
// network errors
func classify(err error, message string) error {
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return errors.Network(err, message)
	}
	var urlErr *url.Error
	if stderrors.As(err, &urlErr) {
		return errors.Network(err, message)
	}
	var pathErr *fs.PathError
	var linkErr *os.LinkError
	if stderrors.As(err, &pathErr) || stderrors.As(err, &linkErr) {
		return errors.FileSystem(err, message)
	}
	return errors.Network(err, message)
}
