// Package pdfreader talks to the Python extraction worker that parses
// distributor invoice PDFs.
package pdfreader

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// ErrWorker covers every failure of the extraction worker: unreachable,
// non-200, malformed reply or an explicit error status in the payload. The
// HTTP layer maps it to 502.
var ErrWorker = errors.New("pdf worker failed")

// Extracted is what the worker pulls out of an invoice PDF. Referencia is
// "YYYY-MM" and Vencimento "YYYY-MM-DD".
type Extracted struct {
	Referencia  string  `json:"referencia"`
	Vencimento  string  `json:"vencimento"`
	ValorTotal  float64 `json:"valorTotal"`
	Consumo     *int64  `json:"consumo,omitempty"`
	Distribuida *string `json:"distribuidora,omitempty"`
}

// Client is an HTTP client for the worker's two-step upload/process flow.
type Client struct {
	baseURL string
	http    *http.Client
}

// New builds a client. A non-positive timeout falls back to 60 seconds, which
// covers slow extraction of large PDFs.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{baseURL: baseURL, http: &http.Client{Timeout: timeout}}
}

// Upload sends the PDF bytes as multipart form data and returns the path the
// worker stored it under.
func (c *Client) Upload(ctx context.Context, filename string, pdf io.Reader) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, pdf); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api-python/upload-pdf", &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrWorker, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: upload returned %d", ErrWorker, resp.StatusCode)
	}

	var out struct {
		FilePath string `json:"filePath"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil || out.FilePath == "" {
		return "", fmt.Errorf("%w: bad upload reply", ErrWorker)
	}
	return out.FilePath, nil
}

// Process asks the worker to extract the invoice fields from a previously
// uploaded PDF.
func (c *Client) Process(ctx context.Context, filePath string) (*Extracted, error) {
	payload, err := json.Marshal(map[string]string{"filePath": filePath})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api-python/process-pdf", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWorker, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: process returned %d", ErrWorker, resp.StatusCode)
	}

	var out struct {
		Status string    `json:"status"`
		Data   Extracted `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: bad process reply", ErrWorker)
	}
	if out.Status != "success" {
		return nil, fmt.Errorf("%w: extraction status %q", ErrWorker, out.Status)
	}
	return &out.Data, nil
}
