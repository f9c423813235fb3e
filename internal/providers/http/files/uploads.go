package files

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/tccm/internal/providers/http/client"
)

// UploadFile uploads a single file using a multipart form
func (u *UploadsOps) UploadFile(ctx context.Context, in UploadRequest) (*UploadResult, error) {
	if in.URL == "" || in.FilePath == "" {
		return nil, fmt.Errorf("upload url and file path are required")
	}

	// Check for context cancellation before starting
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("upload cancelled: %w", err)
	}

	stat, err := os.Stat(in.FilePath)
	if err != nil {
		return nil, fmt.Errorf("file not found: %w", err)
	}

	mtype, err := mimetype.DetectFile(in.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to detect content type: %w", err)
	}

	file, err := os.Open(in.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", in.FilePath, err)
	}

	fieldName := in.FieldName
	if fieldName == "" {
		fieldName = DefaultFieldName
	}

	req, err := u.Client.Request(ctx)
	if err != nil {
		file.Close()
		return nil, err
	}

	body, contentType, done := streamPart(file, fieldName, filepath.Base(in.FilePath), mtype.String())
	defer func() {
		body.Close()
		<-done
	}()
	req.SetHeader("Content-Type", contentType).SetBody(body)
	if len(in.Query) > 0 {
		req.SetQueryParams(in.Query)
	}

	u.Client.Logger().Debug("uploading file",
		zap.String("url", in.URL),
		zap.String("file", in.FilePath),
		zap.String("content_type", mtype.String()),
		zap.Int64("size", stat.Size()))

	resp, err := req.Post(in.URL)
	if err != nil {
		return nil, fmt.Errorf("upload failed: %w", err)
	}

	if !client.IsSuccess(resp) {
		return nil, &StatusError{URL: in.URL, Code: resp.StatusCode(), Status: resp.Status()}
	}

	return &UploadResult{
		Status:      resp.StatusCode(),
		Bytes:       stat.Size(),
		ContentType: mtype.String(),
		Body:        resp.Body(),
	}, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// streamPart encodes file as the only part of a multipart form as the
// request body is read. The returned channel closes once file is closed.
func streamPart(file *os.File, field, filename, partType string) (*io.PipeReader, string, <-chan struct{}) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	contentType := mw.FormDataContentType()
	done := make(chan struct{})

	go func() {
		defer close(done)
		defer file.Close()

		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			quoteEscaper.Replace(field), quoteEscaper.Replace(filename)))
		header.Set("Content-Type", partType)

		part, err := mw.CreatePart(header)
		if err == nil {
			_, err = io.Copy(part, file)
		}
		if err == nil {
			err = mw.Close()
		}
		pw.CloseWithError(err)
	}()

	return pr, contentType, done
}
