package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/docmindhq/docmind-be/types"
)

// APIClient is a thin request/response wrapper around a base URL. It joins
// paths, merges a default header set with per-call headers and translates
// non-2xx statuses into RequestFailedError. Retries, timeouts and recovery
// are the caller's job.
type APIClient struct {
	baseURL    string
	headers    map[string]string
	httpClient *http.Client
}

// FilePart is one file in a multipart upload.
type FilePart struct {
	FieldName   string
	FileName    string
	ContentType string
	Data        []byte
}

// NewAPIClient creates a client for the given base URL. The default headers
// are sent on every request; per-call headers win on conflict.
func NewAPIClient(baseURL string, headers map[string]string) (*APIClient, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, &types.ConfigurationError{Field: "base_url", Reason: "must not be empty"}
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, &types.ConfigurationError{Field: "base_url", Reason: err.Error()}
	}
	if headers == nil {
		headers = map[string]string{}
	}
	return &APIClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		headers:    headers,
		httpClient: http.DefaultClient,
	}, nil
}

// Get sends a GET request and returns the raw response body.
func (c *APIClient) Get(ctx context.Context, path string, params url.Values, headers map[string]string) ([]byte, error) {
	fullURL := c.fullURL(path)
	if len(params) > 0 {
		fullURL += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build GET request: %w", err)
	}
	c.applyHeaders(req, headers)
	return c.do(req)
}

// GetJSON sends a GET request and decodes the JSON response into out.
func (c *APIClient) GetJSON(ctx context.Context, path string, params url.Values, headers map[string]string, out any) error {
	body, err := c.Get(ctx, path, params, headers)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("invalid JSON response: %w", err)
	}
	return nil
}

// PostJSON sends a POST request with a JSON body and decodes the JSON
// response into out. Pass nil out to discard the body.
func (c *APIClient) PostJSON(ctx context.Context, path string, payload any, headers map[string]string, out any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode request body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.fullURL(path), bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to build POST request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.applyHeaders(req, headers)
	body, err := c.do(req)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("invalid JSON response: %w", err)
	}
	return nil
}

// PostMultipart sends a POST request with form fields and file parts and
// decodes the JSON response into out.
func (c *APIClient) PostMultipart(ctx context.Context, path string, fields map[string]string, files []FilePart, headers map[string]string, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return fmt.Errorf("failed to write form field %s: %w", name, err)
		}
	}
	for _, f := range files {
		part, err := w.CreateFormFile(f.FieldName, f.FileName)
		if err != nil {
			return fmt.Errorf("failed to create file part %s: %w", f.FieldName, err)
		}
		if _, err := part.Write(f.Data); err != nil {
			return fmt.Errorf("failed to write file part %s: %w", f.FieldName, err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.fullURL(path), &buf)
	if err != nil {
		return fmt.Errorf("failed to build POST request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	c.applyHeaders(req, headers)
	body, err := c.do(req)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("invalid JSON response: %w", err)
	}
	return nil
}

// Patch sends a PATCH request with a JSON body.
func (c *APIClient) Patch(ctx context.Context, path string, payload any, headers map[string]string, out any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode request body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, c.fullURL(path), bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to build PATCH request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.applyHeaders(req, headers)
	body, err := c.do(req)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("invalid JSON response: %w", err)
	}
	return nil
}

// Delete sends a DELETE request.
func (c *APIClient) Delete(ctx context.Context, path string, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.fullURL(path), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build DELETE request: %w", err)
	}
	c.applyHeaders(req, headers)
	return c.do(req)
}

func (c *APIClient) fullURL(path string) string {
	return c.baseURL + "/" + strings.TrimLeft(path, "/")
}

func (c *APIClient) applyHeaders(req *http.Request, extra map[string]string) {
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for k, v := range extra {
		req.Header.Set(k, v)
	}
}

func (c *APIClient) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &types.RequestFailedError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}
