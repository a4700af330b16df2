// Package client implements the remote API surface of the Wazi backend.
// Every authenticated request reads the bearer token from the persistence
// adapter at call time; the adapter, not process memory, is the source of
// truth for the token.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/wazihub/wazi-go/internal/storage"
)

const maxErrorBody = 8 << 10

// APIError is a non-2xx reply from the backend. Message carries the
// server-supplied message when the body had one.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// Client talks to the Wazi backend.
type Client struct {
	baseURL string
	http    *http.Client
	storage storage.Adapter
	log     *slog.Logger
}

func New(baseURL string, timeout time.Duration, adapter storage.Adapter, log *slog.Logger) *Client {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		storage: adapter,
		log:     log,
	}
}

// do issues a JSON request. When skipAuth is false the bearer token is looked
// up in storage for this request. out may be nil for calls whose reply body
// is irrelevant.
func (c *Client) do(ctx context.Context, method, path string, body, out any, skipAuth bool) error {
	var payload io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		payload = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, path, out, skipAuth)
}

// upload issues a multipart request with one file part plus extra form fields.
func (c *Client) upload(ctx context.Context, path string, file *FilePart, fields map[string]string, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if file != nil {
		part, err := mw.CreateFormFile("file", file.Name)
		if err != nil {
			return fmt.Errorf("build upload %s: %w", path, err)
		}
		if _, err := part.Write(file.Data); err != nil {
			return fmt.Errorf("build upload %s: %w", path, err)
		}
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return fmt.Errorf("build upload %s: %w", path, err)
		}
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("build upload %s: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("build upload %s: %w", path, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.send(req, path, out, false)
}

// FilePart is a file destined for a multipart endpoint.
type FilePart struct {
	Name string
	Data []byte
}

func (c *Client) send(req *http.Request, path string, out any, skipAuth bool) error {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if !skipAuth {
		token, ok, err := c.storage.Get(req.Context(), storage.KeyToken)
		if err != nil {
			c.log.Warn("token lookup failed, sending unauthenticated", "path", path, "error", err)
		} else if ok && token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		msg := gjson.GetBytes(raw, "message").String()
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		c.log.Error("request failed", "method", req.Method, "path", path, "status", resp.StatusCode, "message", msg)
		return &APIError{Status: resp.StatusCode, Message: msg}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", req.Method, path, err)
	}
	return nil
}
