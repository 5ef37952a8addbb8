package hub

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
)

// UploadSheet uploads one composed sheet file to the hub and returns the
// artifact key it was stored under.
func (h *Hub) UploadSheet(ctx context.Context, filePath string) (string, error) {
	file, err := os.Open(filePath) //nolint:gosec // user-provided sheet path for upload
	if err != nil {
		return "", fmt.Errorf("could not open sheet %s: %w", filePath, err)
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("files", filepath.Base(filePath))
	if err != nil {
		return "", fmt.Errorf("could not create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("could not copy sheet data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("could not close writer: %w", err)
	}

	key := uuid.NewString()
	url := fmt.Sprintf("%s/api/v1/sheets/%s", h.baseURL, key)
	payload := body.Bytes()

	err = h.retry(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			return backoff.Permanent(fmt.Errorf("could not create request: %w", err))
		}
		req.Header.Set("Authorization", "Bearer "+h.token)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		return h.do(req)
	})
	if err != nil {
		return "", fmt.Errorf("upload of %s failed: %w", filepath.Base(filePath), err)
	}
	return key, nil
}

// NotifyProcessed enqueues a downstream processing message for an uploaded
// sheet.
func (h *Hub) NotifyProcessed(ctx context.Context, key, document string, sheet int) error {
	message := struct {
		Key      string `json:"key"`
		Document string `json:"document"`
		Sheet    int    `json:"sheet"`
	}{
		Key:      key,
		Document: document,
		Sheet:    sheet,
	}
	if err := h.postJSON(ctx, "/api/v1/process", message); err != nil {
		return fmt.Errorf("could not enqueue processing for %s: %w", key, err)
	}
	return nil
}
