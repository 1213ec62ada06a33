// Package rest implements service.Backend against the task REST API.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"taskdeck/internal/service"
)

const (
	// DefaultTimeout bounds each request when Config.Timeout is zero.
	DefaultTimeout = 10 * time.Second

	// maxResponseBytes caps how much of a response body is read.
	maxResponseBytes = 4 << 20
)

// Config holds configuration for creating a Client.
type Config struct {
	// BaseURL is the API root, e.g. "http://localhost:8000/api/v1".
	BaseURL string
	// Token is an optional static bearer token sent with every request.
	Token string
	// Timeout bounds each request. Zero means DefaultTimeout.
	Timeout time.Duration
	// HTTPClient is used for all requests. If nil, http.DefaultClient is used.
	// When Token is set the client's transport is wrapped to add it.
	HTTPClient *http.Client
	// Logger is used for structured logging. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// Client talks to the task API.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	logger     *slog.Logger
}

// New creates a Client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("rest: BaseURL is required")
	}
	parsed, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("rest: invalid BaseURL %q: %w", cfg.BaseURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("rest: BaseURL %q must be http or https", cfg.BaseURL)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if cfg.Token != "" {
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)
		httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: cfg.Token,
			TokenType:   "Bearer",
		}))
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		timeout:    timeout,
		httpClient: httpClient,
		logger:     logger.With("backend", "rest"),
	}, nil
}

// ListTasks implements service.TaskAPI.
func (c *Client) ListTasks(ctx context.Context) ([]service.Task, error) {
	return c.doList(ctx, http.MethodGet, "/tasks", nil, http.StatusOK)
}

// CreateTask implements service.TaskAPI.
func (c *Client) CreateTask(ctx context.Context, draft service.Draft) ([]service.Task, error) {
	return c.doList(ctx, http.MethodPost, "/tasks", draft, http.StatusCreated)
}

// UpdateTask implements service.TaskAPI.
func (c *Client) UpdateTask(ctx context.Context, id string, patch service.Patch) ([]service.Task, error) {
	if id == "" {
		return nil, fmt.Errorf("rest: task id is required")
	}
	return c.doList(ctx, http.MethodPatch, taskPath(id), patch, http.StatusOK)
}

// DeleteTask implements service.TaskAPI.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("rest: task id is required")
	}
	_, err := c.doRequest(ctx, http.MethodDelete, taskPath(id), nil, http.StatusNoContent)
	return err
}

// Login implements service.UserAPI.
func (c *Client) Login(ctx context.Context, email string) error {
	_, err := c.doRequest(ctx, http.MethodPost, "/users/login", service.LoginRequest{Email: email}, http.StatusOK)
	return err
}

func taskPath(id string) string {
	return "/tasks/" + url.PathEscape(id)
}

// doList performs a request whose success body is {"tasks": [...]}.
func (c *Client) doList(ctx context.Context, method, path string, requestBody any, want int) ([]service.Task, error) {
	body, err := c.doRequest(ctx, method, path, requestBody, want)
	if err != nil {
		return nil, err
	}

	var list service.TaskList
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("rest: failed to parse %s %s response: %w", method, path, err)
	}
	if list.Tasks == nil {
		list.Tasks = []service.Task{}
	}
	return list.Tasks, nil
}

// doRequest performs an HTTP request and returns the body when the status
// matches want. Any other status is a *service.StatusError.
func (c *Client) doRequest(ctx context.Context, method, path string, requestBody any, want int) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var bodyReader io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return nil, fmt.Errorf("rest: failed to encode request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("rest: failed to create request: %w", err)
	}
	request.Header.Set("Accept", "application/json")
	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("rest: request to %s %s failed: %w", method, path, err)
	}
	defer response.Body.Close()

	responseBody, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("rest: failed to read response body: %w", err)
	}

	c.logger.Debug("request complete",
		"method", method,
		"path", path,
		"status", response.StatusCode,
		"duration", time.Since(start),
	)

	if response.StatusCode != want {
		return nil, &service.StatusError{
			Method:     method,
			Path:       path,
			StatusCode: response.StatusCode,
			Body:       strings.TrimSpace(string(responseBody)),
		}
	}
	return responseBody, nil
}
