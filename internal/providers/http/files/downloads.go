package files

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/tccm/internal/providers/http/client"
)

// Download streams a URL to in.Path through a partial file
func (d *DownloadsOps) Download(ctx context.Context, in DownloadRequest) (result *DownloadResult, err error) {
	if in.URL == "" || in.Path == "" {
		return nil, fmt.Errorf("download url and path are required")
	}

	// Check for context cancellation before starting
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("download cancelled: %w", err)
	}

	partial := in.Partial
	if partial == "" {
		partial = filepath.Join(filepath.Dir(in.Path), "."+filepath.Base(in.Path)+".part")
	}

	if err := os.MkdirAll(filepath.Dir(in.Path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	req, err := d.Client.Request(ctx)
	if err != nil {
		return nil, err
	}

	// Clean up partial download on error
	defer func() {
		if err != nil {
			os.Remove(partial)
		}
	}()

	resp, err := req.SetOutput(partial).Get(in.URL)
	if err != nil {
		return nil, fmt.Errorf("download failed: %w", err)
	}

	if !client.IsSuccess(resp) {
		return nil, &StatusError{URL: in.URL, Code: resp.StatusCode(), Status: resp.Status()}
	}

	stat, err := os.Stat(partial)
	if err != nil {
		return nil, fmt.Errorf("failed to stat downloaded file: %w", err)
	}

	contentType := ""
	if mtype, err := mimetype.DetectFile(partial); err == nil {
		contentType = mtype.String()
		if !mtype.Is("application/zip") {
			d.Client.Logger().Warn("downloaded file is not a zip archive",
				zap.String("url", in.URL),
				zap.String("content_type", contentType))
		}
	}

	if err = os.Rename(partial, in.Path); err != nil {
		return nil, fmt.Errorf("failed to move download into place: %w", err)
	}

	d.Client.Logger().Debug("download complete",
		zap.String("url", in.URL),
		zap.String("path", in.Path),
		zap.Int64("size", stat.Size()),
		zap.Duration("elapsed", resp.Time()))

	return &DownloadResult{
		Path:        in.Path,
		Size:        stat.Size(),
		Status:      resp.StatusCode(),
		ContentType: contentType,
	}, nil
}
