package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// UploadResult is the backend's answer to a file upload.
type UploadResult struct {
	URL string `json:"url"`
}

// Upload posts a file as multipart form data under the "file" field.
func (c *Client) Upload(ctx context.Context, token, filename string, r io.Reader) (UploadResult, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return UploadResult{}, fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return UploadResult{}, fmt.Errorf("failed to read upload content: %w", err)
	}
	if err := w.Close(); err != nil {
		return UploadResult{}, err
	}

	var out UploadResult
	err = c.doRaw(ctx, http.MethodPost, "/upload", token, w.FormDataContentType(), &buf, &out)
	return out, err
}
