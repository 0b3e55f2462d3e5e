package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"adlytics/domain/model"
	"adlytics/infrastructure/logger"

	"github.com/google/go-querystring/query"
	"github.com/google/uuid"
)

// maxErrorBody caps how much of a failure payload is read for detail.
const maxErrorBody = 1 << 20

// Client is the single point of outbound HTTP calls to the
// ad-analytics backend. It attaches the current bearer token, maps
// non-2xx responses to a typed ApiError and never retries: a failed
// call surfaces immediately to the caller.
type Client struct {
	baseURL        string
	http           *http.Client
	token          func() string
	onUnauthorized func()
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// SetTokenSource installs the session store's token accessor. The
// gateway never caches the token itself; the store stays the single
// writer.
func (c *Client) SetTokenSource(fn func() string) { c.token = fn }

// SetUnauthorizedHook is invoked when a request carrying the session
// token comes back 401, so the session store can clear itself; the
// failed request is still surfaced, not retried.
func (c *Client) SetUnauthorizedHook(fn func()) { c.onUnauthorized = fn }

// credentialRoute reports whether path submits the user's credentials
// directly. A 401 from these means the credentials were wrong; it says
// nothing about the established session.
func credentialRoute(path string) bool {
	return path == "/api/auth/login" || path == "/api/auth/register"
}

func (c *Client) do(ctx context.Context, method, path string, q url.Values, body io.Reader, contentType string) (*http.Response, error) {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	sessionAuthed := false
	if c.token != nil {
		if tok := c.token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
			sessionAuthed = true
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		logger.GetLogger().WithField("error", err).WithField("path", path).Warn("Backend request failed")
		return nil, model.NetworkError(err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := readAPIError(resp)
		_ = resp.Body.Close()
		// Only a rejected session token invalidates the session. A 401
		// off a credential submission is a domain error for the form.
		if resp.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil &&
			sessionAuthed && !credentialRoute(path) {
			c.onUnauthorized()
		}
		return nil, apiErr
	}
	return resp, nil
}

// doJSON runs a JSON round trip. opts, when non-nil, is encoded into
// the query string; out, when non-nil, receives the decoded body.
func (c *Client) doJSON(ctx context.Context, method, path string, opts any, in any, out any) error {
	var q url.Values
	if opts != nil {
		values, err := query.Values(opts)
		if err != nil {
			return fmt.Errorf("encode query: %w", err)
		}
		q = values
	}

	var body io.Reader
	contentType := ""
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode body: %w", err)
		}
		body = bytes.NewReader(payload)
		contentType = "application/json"
	}

	resp, err := c.do(ctx, method, path, q, body, contentType)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// doBlob runs a binary round trip (PDF downloads). The filename comes
// from Content-Disposition when the backend provides one.
func (c *Client) doBlob(ctx context.Context, method, path string, in any) (*model.FileBlob, error) {
	var body io.Reader
	contentType := ""
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("encode body: %w", err)
		}
		body = bytes.NewReader(payload)
		contentType = "application/json"
	}

	resp, err := c.do(ctx, method, path, nil, body, contentType)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, model.NetworkError(err)
	}
	return &model.FileBlob{
		Name:        dispositionFilename(resp.Header.Get("Content-Disposition")),
		ContentType: resp.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// readAPIError maps a non-2xx response to an ApiError, preferring the
// backend's detail message when one is present.
func readAPIError(resp *http.Response) *model.ApiError {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var payload struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	detail := ""
	if err := json.Unmarshal(raw, &payload); err == nil {
		if payload.Detail != "" {
			detail = payload.Detail
		} else if payload.Error != "" {
			detail = payload.Error
		}
	}
	if detail == "" {
		detail = http.StatusText(resp.StatusCode)
	}
	return &model.ApiError{Status: resp.StatusCode, Detail: detail}
}

func dispositionFilename(header string) string {
	if header == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(header)
	if err != nil {
		return ""
	}
	return params["filename"]
}
