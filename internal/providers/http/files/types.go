package files

import (
	"fmt"

	"github.com/GriffinCanCode/tccm/internal/providers/http/client"
)

// DefaultFieldName is the multipart field carrying an uploaded file
const DefaultFieldName = "file"

// UploadsOps handles file upload operations
type UploadsOps struct {
	Client *client.Client
}

// DownloadsOps handles file downloads
type DownloadsOps struct {
	Client *client.Client
}

// UploadRequest describes one multipart upload
type UploadRequest struct {
	URL      string
	FilePath string
	// FieldName defaults to "file"
	FieldName string
	Query     map[string]string
}

// UploadResult describes a finished upload
type UploadResult struct {
	Status      int
	Bytes       int64
	ContentType string
	Body        []byte
}

// DownloadRequest describes one download
type DownloadRequest struct {
	URL string
	// Path is the final destination
	Path string
	// Partial is the in-progress file; defaults to ".<base>.part" beside Path
	Partial string
}

// DownloadResult describes a finished download
type DownloadResult struct {
	Path        string
	Size        int64
	Status      int
	ContentType string
}

// StatusError is returned when the server answers with a non-2xx status
type StatusError struct {
	URL    string
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("%s: %s", e.URL, e.Status)
	}
	return fmt.Sprintf("%s: HTTP %d", e.URL, e.Code)
}
