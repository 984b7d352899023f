// Package api is the HTTP client for the DocChat backend. It attaches the
// bearer token from the session store, speaks JSON for login/chat and
// multipart form-data for uploads, and maps failures onto a closed set of
// error kinds. It never retries and never clears the stored session on a
// backend rejection; a failed call is reported once and needs a fresh user
// action.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"docchat/internal/session"
)

// Kind categorizes client errors for handling.
type Kind int

const (
	KindUnknown Kind = iota
	// KindAuthRequired: no session present; the call was never issued.
	KindAuthRequired
	// KindRejected: the backend answered non-2xx; Message carries the
	// backend's detail verbatim when it sent one.
	KindRejected
	// KindUnreachable: transport-level failure, nothing decoded.
	KindUnreachable
	// KindInvalidResponse: the backend answered 2xx but the body did not
	// decode.
	KindInvalidResponse
)

// ClientError is the only error type this package returns.
type ClientError struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrAuthRequired is returned by authenticated operations when the session
// store reports absent. No network call is made in that case.
var ErrAuthRequired = &ClientError{Kind: KindAuthRequired, Message: "not signed in"}

// IsAuthRequired reports whether err means the call was skipped for lack
// of a session.
func IsAuthRequired(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Kind == KindAuthRequired
	}
	return false
}

// Client talks to one DocChat backend at a fixed base URL.
//
// No request timeout is set; the transport default applies and in-flight
// requests run to completion.
type Client struct {
	baseURL    string
	httpClient *http.Client
	sessions   *session.Store
}

func NewClient(baseURL string, sessions *session.Store) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		sessions:   sessions,
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// token reads the bearer token, or ErrAuthRequired when no session exists.
// Every authenticated operation calls this before touching the network, so
// stale UI state cannot produce unauthenticated requests.
func (c *Client) token() (string, error) {
	sess, ok := c.sessions.Load()
	if !ok {
		return "", ErrAuthRequired
	}
	return sess.Token, nil
}

// Login exchanges credentials for a session. It does not persist the
// session; the caller decides whether to save it.
func (c *Client) Login(ctx context.Context, username, password string) (session.Session, error) {
	body, err := json.Marshal(loginRequest{Username: username, Password: password})
	if err != nil {
		return session.Session{}, &ClientError{Kind: KindUnknown, Message: "Login failed", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login", bytes.NewReader(body))
	if err != nil {
		return session.Session{}, &ClientError{Kind: KindUnreachable, Message: "Login failed", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return session.Session{}, &ClientError{Kind: KindUnreachable, Message: "Login failed", Cause: err}
	}
	defer resp.Body.Close()

	if !is2xx(resp.StatusCode) {
		return session.Session{}, rejected(resp, "Login failed")
	}

	var out loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return session.Session{}, &ClientError{Kind: KindInvalidResponse, Message: "Login failed", Cause: err}
	}
	return session.Session{Token: out.AccessToken, Role: session.Role(out.Role)}, nil
}

// Ask submits a question and returns the answer with its citations.
func (c *Client) Ask(ctx context.Context, question string) (*ChatResponse, error) {
	tok, err := c.token()
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(chatRequest{Question: question})
	if err != nil {
		return nil, &ClientError{Kind: KindUnknown, Message: "Chat failed", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat", bytes.NewReader(body))
	if err != nil {
		return nil, &ClientError{Kind: KindUnreachable, Message: "Chat failed", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+tok)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ClientError{Kind: KindUnreachable, Message: "Chat failed", Cause: err}
	}
	defer resp.Body.Close()

	if !is2xx(resp.StatusCode) {
		return nil, rejected(resp, "Chat failed")
	}

	var out ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &ClientError{Kind: KindInvalidResponse, Message: "Chat failed", Cause: err}
	}
	return &out, nil
}

// PreviewChunk fetches the HTML preview of one cited chunk. The returned
// fragment is trusted backend output; the caller decides how to display it.
func (c *Client) PreviewChunk(ctx context.Context, source string, chunk int) (string, error) {
	tok, err := c.token()
	if err != nil {
		return "", err
	}

	q := url.Values{}
	q.Set("source", source)
	q.Set("chunk", strconv.Itoa(chunk))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/view?"+q.Encode(), nil)
	if err != nil {
		return "", &ClientError{Kind: KindUnreachable, Message: "Preview failed", Cause: err}
	}
	req.Header.Set("Authorization", "Bearer "+tok)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &ClientError{Kind: KindUnreachable, Message: "Preview failed", Cause: err}
	}
	defer resp.Body.Close()

	if !is2xx(resp.StatusCode) {
		return "", rejected(resp, "Preview failed")
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &ClientError{Kind: KindInvalidResponse, Message: "Preview failed", Cause: err}
	}
	return string(raw), nil
}

// UploadDocuments sends the given files as a multipart request, field
// "files" repeated per file. Zero paths is a no-op: no request is issued.
func (c *Client) UploadDocuments(ctx context.Context, paths []string) ([]string, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	tok, err := c.token()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, path := range paths {
		if err := appendFilePart(w, path); err != nil {
			return nil, &ClientError{Kind: KindUnknown, Message: "Upload failed", Cause: err}
		}
	}
	if err := w.Close(); err != nil {
		return nil, &ClientError{Kind: KindUnknown, Message: "Upload failed", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/ingest/upload", &buf)
	if err != nil {
		return nil, &ClientError{Kind: KindUnreachable, Message: "Upload failed", Cause: err}
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+tok)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ClientError{Kind: KindUnreachable, Message: "Upload failed", Cause: err}
	}
	defer resp.Body.Close()

	if !is2xx(resp.StatusCode) {
		// The upload surface reports a generic failure regardless of detail.
		return nil, &ClientError{Kind: KindRejected, Message: "Upload failed"}
	}

	var out uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &ClientError{Kind: KindInvalidResponse, Message: "Upload failed", Cause: err}
	}
	return out.Saved, nil
}

func appendFilePart(w *multipart.Writer, path string) error {
	part, err := w.CreateFormFile("files", filepath.Base(path))
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return nil
}

// BuildIndex asks the backend to (re)build its document index.
func (c *Client) BuildIndex(ctx context.Context) error {
	tok, err := c.token()
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/ingest/build", nil)
	if err != nil {
		return &ClientError{Kind: KindUnreachable, Message: "Index build failed", Cause: err}
	}
	req.Header.Set("Authorization", "Bearer "+tok)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &ClientError{Kind: KindUnreachable, Message: "Index build failed", Cause: err}
	}
	defer resp.Body.Close()

	if !is2xx(resp.StatusCode) {
		return &ClientError{Kind: KindRejected, Message: "Index build failed"}
	}
	return nil
}

// ExportSummary downloads the backend-rendered summary document.
func (c *Client) ExportSummary(ctx context.Context) ([]byte, error) {
	tok, err := c.token()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/export/summary.docx", nil)
	if err != nil {
		return nil, &ClientError{Kind: KindUnreachable, Message: "Export failed", Cause: err}
	}
	req.Header.Set("Authorization", "Bearer "+tok)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ClientError{Kind: KindUnreachable, Message: "Export failed", Cause: err}
	}
	defer resp.Body.Close()

	if !is2xx(resp.StatusCode) {
		return nil, &ClientError{Kind: KindRejected, Message: "Export failed"}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ClientError{Kind: KindInvalidResponse, Message: "Export failed", Cause: err}
	}
	return raw, nil
}

// Health probes the backend. No token required.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return &ClientError{Kind: KindUnreachable, Message: "backend unreachable", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &ClientError{Kind: KindUnreachable, Message: "backend unreachable", Cause: err}
	}
	defer resp.Body.Close()

	if !is2xx(resp.StatusCode) {
		return &ClientError{Kind: KindUnreachable, Message: "backend unhealthy: " + resp.Status}
	}
	return nil
}

func is2xx(status int) bool {
	return status >= 200 && status < 300
}

// rejected builds the error for a non-2xx response, surfacing the
// backend's detail message verbatim when present.
func rejected(resp *http.Response, fallback string) *ClientError {
	var body errorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Detail != "" {
		return &ClientError{Kind: KindRejected, Message: body.Detail}
	}
	return &ClientError{Kind: KindRejected, Message: fallback}
}
