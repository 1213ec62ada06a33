// Package googletasks implements service.Backend on top of a Google Tasks list.
package googletasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	tasks "google.golang.org/api/tasks/v1"

	"taskdeck/internal/config"
	"taskdeck/internal/service"
)

const (
	// DefaultListID is the special ID for the user's default list.
	DefaultListID = "@default"

	// Scope is the OAuth scope needed for reading and writing tasks.
	Scope = "https://www.googleapis.com/auth/tasks"

	// APITimeout is the timeout for API calls.
	APITimeout = 5 * time.Second

	pageSize = 100

	statusCompleted   = "completed"
	statusNeedsAction = "needsAction"
)

// Client implements service.Backend using one Google Tasks list as the
// task collection.
type Client struct {
	svc    *tasks.Service
	listID string
	logger *slog.Logger
}

// New creates a client from the OAuth client and token files in cfg.Dir.
// The token is written by the authorize command.
func New(ctx context.Context, cfg *config.Config, listID string, logger *slog.Logger) (*Client, error) {
	oauthConfig, err := LoadOAuthConfig(cfg)
	if err != nil {
		return nil, err
	}

	tokenData, err := os.ReadFile(cfg.TokenPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", config.TokenFile, err)
	}
	var token oauth2.Token
	if err := json.Unmarshal(tokenData, &token); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", config.TokenFile, err)
	}

	httpClient := oauth2.NewClient(ctx, oauthConfig.TokenSource(ctx, &token))
	return NewWithHTTPClient(ctx, httpClient, listID, logger)
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(ctx context.Context, httpClient *http.Client, listID string, logger *slog.Logger, opts ...option.ClientOption) (*Client, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)
	svc, err := tasks.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create tasks service: %w", err)
	}
	if listID == "" {
		listID = DefaultListID
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		svc:    svc,
		listID: listID,
		logger: logger.With("backend", "googletasks", "list", listID),
	}, nil
}

// LoadOAuthConfig reads the OAuth client credentials from cfg.Dir.
func LoadOAuthConfig(cfg *config.Config) (*oauth2.Config, error) {
	clientJSON, err := os.ReadFile(cfg.OAuthClientPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", config.OAuthClientFile, err)
	}
	oauthConfig, err := google.ConfigFromJSON(clientJSON, Scope)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", config.OAuthClientFile, err)
	}
	return oauthConfig, nil
}

// ListTasks returns every task in the list, completed ones included,
// in API order.
func (c *Client) ListTasks(ctx context.Context) ([]service.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	result := []service.Task{}
	err := c.svc.Tasks.List(c.listID).
		MaxResults(pageSize).
		ShowCompleted(true).
		ShowHidden(true).
		ShowDeleted(false).
		Pages(ctx, func(resp *tasks.Tasks) error {
			for _, item := range resp.Items {
				result = append(result, fromAPI(item))
			}
			return nil
		})
	if err != nil {
		return nil, wrapError(err)
	}
	return result, nil
}

// CreateTask inserts the task and returns the refreshed list.
// If only the refresh fails the error is a *service.RefreshError.
func (c *Client) CreateTask(ctx context.Context, draft service.Draft) ([]service.Task, error) {
	item := &tasks.Task{
		Title:  draft.Name,
		Notes:  draft.Description,
		Due:    toDue(draft.DueDate),
		Status: toStatus(draft.Completed),
	}

	callCtx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()
	created, err := c.svc.Tasks.Insert(c.listID, item).Context(callCtx).Do()
	if err != nil {
		return nil, wrapError(err)
	}
	c.logger.Debug("task inserted", "id", created.Id)

	return c.refresh(ctx, "create task "+created.Id)
}

// UpdateTask patches the task and returns the refreshed list.
// Cleared fields are sent explicitly through ForceSendFields.
func (c *Client) UpdateTask(ctx context.Context, id string, patch service.Patch) ([]service.Task, error) {
	item := &tasks.Task{}
	if patch.Name != nil {
		item.Title = *patch.Name
		item.ForceSendFields = append(item.ForceSendFields, "Title")
	}
	if patch.Description != nil {
		item.Notes = *patch.Description
		item.ForceSendFields = append(item.ForceSendFields, "Notes")
	}
	if patch.DueDate != nil {
		item.Due = toDue(*patch.DueDate)
		if item.Due == "" {
			item.NullFields = append(item.NullFields, "Due")
		}
	}
	if patch.Completed != nil {
		item.Status = toStatus(*patch.Completed)
		if !*patch.Completed {
			item.NullFields = append(item.NullFields, "Completed")
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()
	if _, err := c.svc.Tasks.Patch(c.listID, id, item).Context(callCtx).Do(); err != nil {
		return nil, wrapError(err)
	}

	return c.refresh(ctx, "update task "+id)
}

// refresh lists the tasks after a mutation that already succeeded. A list
// failure is reported as a *service.RefreshError so the write is not retried.
func (c *Client) refresh(ctx context.Context, op string) ([]service.Task, error) {
	list, err := c.ListTasks(ctx)
	if err != nil {
		c.logger.Warn("listing after write failed", "op", op, "error", err)
		return nil, &service.RefreshError{Op: op, Err: err}
	}
	return list, nil
}

// DeleteTask deletes a task.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	if err := c.svc.Tasks.Delete(c.listID, id).Context(ctx).Do(); err != nil {
		return wrapError(err)
	}
	return nil
}

// Login confirms that the stored credentials can read the list.
// Google identifies the account through the token, so email is only logged.
func (c *Client) Login(ctx context.Context, email string) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	if _, err := c.svc.Tasklists.Get(c.listID).Context(ctx).Do(); err != nil {
		return wrapError(err)
	}
	c.logger.Debug("credentials confirmed", "email", email)
	return nil
}

func fromAPI(item *tasks.Task) service.Task {
	return service.Task{
		ID:          item.Id,
		Name:        item.Title,
		Description: item.Notes,
		DueDate:     fromDue(item.Due),
		Completed:   item.Status == statusCompleted,
	}
}

func toStatus(completed bool) string {
	if completed {
		return statusCompleted
	}
	return statusNeedsAction
}

// toDue converts a YYYY-MM-DD date to the RFC 3339 timestamp the API
// expects. Other values are passed through unchanged.
func toDue(date string) string {
	date = strings.TrimSpace(date)
	if date == "" {
		return ""
	}
	if t, err := time.Parse(time.DateOnly, date); err == nil {
		return t.Format(time.RFC3339)
	}
	return date
}

// fromDue keeps only the date part; the API discards the time of day.
func fromDue(due string) string {
	if t, err := time.Parse(time.RFC3339, due); err == nil {
		return t.Format(time.DateOnly)
	}
	return due
}

// wrapError wraps API errors with user-friendly messages.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("request timed out: %w", err)
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("token expired or revoked (run: taskdeck authorize): %w", err)
		case http.StatusNotFound:
			return fmt.Errorf("%w: %s", service.ErrNotFound, apiErr.Message)
		}
	}
	return err
}
