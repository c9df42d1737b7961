package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/url"
	"sync"
	"time"
)

// StatusTransport is the sentinel status for transport-level failures
// (timeout, DNS, TLS) where no HTTP response was received.
const StatusTransport = -1

// APIError carries the raw HTTP status of a failed request, or
// StatusTransport when the request never reached the server.
type APIError struct {
	Status int
	Path   string
	Body   string
}

func (e *APIError) Error() string {
	if e.Status == StatusTransport {
		return fmt.Sprintf("transport failure on %s: %s", e.Path, e.Body)
	}
	return fmt.Sprintf("%s: status %d, body: %s", e.Path, e.Status, e.Body)
}

// Client issues authenticated requests against the health backend.
// A 401 response invalidates the stored token and triggers one silent
// re-login; the original request is not retried automatically.
type Client struct {
	BaseURL  string
	Username string
	HTTP     *http.Client

	mu    sync.Mutex
	token string
}

// NewClient creates a client with optional proxy support.
func NewClient(baseURL, username, proxyURL string) *Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &Client{
		BaseURL:  baseURL,
		Username: username,
		HTTP: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login performs the no-credential simple login and stores the bearer token.
func (c *Client) Login(ctx context.Context) error {
	payload, err := json.Marshal(map[string]string{"username": c.Username})
	if err != nil {
		return fmt.Errorf("marshal login payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.BaseURL+"/api/v1/auth/simple-login", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return &APIError{Status: StatusTransport, Path: "/api/v1/auth/simple-login", Body: err.Error()}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{Status: resp.StatusCode, Path: "/api/v1/auth/simple-login", Body: string(body)}
	}

	var lr loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return fmt.Errorf("decode login response: %w", err)
	}
	if lr.AccessToken == "" {
		return fmt.Errorf("login returned empty token")
	}

	c.mu.Lock()
	c.token = lr.AccessToken
	c.mu.Unlock()
	return nil
}

// Token returns the current bearer token, empty before the first login.
func (c *Client) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

func (c *Client) ensureToken(ctx context.Context) error {
	if c.Token() != "" {
		return nil
	}
	return c.Login(ctx)
}

// Get issues an authenticated GET and returns the raw response body.
// Query parameters are encoded in sorted key order.
func (c *Client) Get(ctx context.Context, path string, params map[string]string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, params, nil, "")
}

// PostJSON issues an authenticated POST with a JSON body.
func (c *Client) PostJSON(ctx context.Context, path string, payload any) ([]byte, error) {
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal payload: %w", err)
		}
	}
	return c.do(ctx, http.MethodPost, path, nil, body, "application/json")
}

func (c *Client) do(ctx context.Context, method, path string, params map[string]string, body []byte, contentType string) ([]byte, error) {
	if err := c.ensureToken(ctx); err != nil {
		return nil, fmt.Errorf("ensure token: %w", err)
	}

	endpoint := c.BaseURL + path
	if len(params) > 0 {
		q := url.Values{}
		for k, v := range params {
			q.Set(k, v)
		}
		endpoint += "?" + q.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.Token())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, &APIError{Status: StatusTransport, Path: path, Body: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Status: StatusTransport, Path: path, Body: err.Error()}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		// Token expired or revoked: drop it and re-login silently so the
		// next request succeeds. The current request is not retried.
		c.mu.Lock()
		c.token = ""
		c.mu.Unlock()
		if err := c.Login(ctx); err != nil {
			log.Printf("[WARN] silent re-login failed: %v", err)
		}
		return nil, &APIError{Status: http.StatusUnauthorized, Path: path, Body: string(respBody)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Status: resp.StatusCode, Path: path, Body: string(respBody)}
	}
	return respBody, nil
}

// UploadMultipart posts a multipart form with one file part plus extra
// fields. Used for meal photo uploads.
func (c *Client) UploadMultipart(ctx context.Context, path, fileField, filename string, data []byte, fields map[string]string) ([]byte, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(fileField, filename)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("write form file: %w", err)
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, fmt.Errorf("write field %s: %w", k, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, nil, buf.Bytes(), w.FormDataContentType())
}

// SyncPolar asks the backend to pull fresh data from the Polar API.
func (c *Client) SyncPolar(ctx context.Context) error {
	_, err := c.PostJSON(ctx, "/api/v1/polar/sync", nil)
	return err
}

// RegenerateRecommendation forces the backend to regenerate today's AI
// recommendation.
func (c *Client) RegenerateRecommendation(ctx context.Context) error {
	_, err := c.PostJSON(ctx, "/api/v1/ai/regenerate", nil)
	return err
}
