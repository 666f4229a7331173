package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/kanishkm/recyclit/internal/logger"
	"github.com/kanishkm/recyclit/internal/models"
)

// APIError is a non-2xx response from the backend. Message carries the
// backend-provided error field when the body had one, otherwise a
// status-derived fallback.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// IsNotFound reports whether err is a backend 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// Client wraps every outbound call to the pickup backend. It attaches
// the bearer token and a per-call request id, serializes bodies as
// JSON, and normalizes error responses. No retries, no caching.
type Client struct {
	baseURL string
	http    *http.Client
	log     *logger.Logger
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     logger.New("api"),
	}
}

// Call performs one request against the backend. A non-nil out is
// filled from the JSON response body on 2xx. An empty token means an
// unauthenticated call.
func (c *Client) Call(ctx context.Context, method, path string, body, out interface{}, token string) error {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.log.Debug("%s %s", method, path)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.decodeError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	var errBody struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	raw, _ := io.ReadAll(resp.Body)
	if json.Unmarshal(raw, &errBody) == nil {
		if errBody.Error != "" {
			apiErr.Message = errBody.Error
		} else if errBody.Message != "" {
			apiErr.Message = errBody.Message
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = fmt.Sprintf("API error: status %d", resp.StatusCode)
	}

	c.log.Debug("%s %s -> %d (%s)", resp.Request.Method, resp.Request.URL.Path, resp.StatusCode, apiErr.Message)
	return apiErr
}

// Register creates an account. The backend only honors a non-default
// role when the caller's token belongs to an admin; token may be empty
// for self-registration.
func (c *Client) Register(ctx context.Context, draft models.RegisterDraft, token string) (models.AuthResponse, error) {
	var resp models.AuthResponse
	err := c.Call(ctx, http.MethodPost, "/users/register", draft, &resp, token)
	return resp, err
}

func (c *Client) Login(ctx context.Context, email, password string) (models.AuthResponse, error) {
	body := map[string]string{"email": email, "password": password}
	var resp models.AuthResponse
	err := c.Call(ctx, http.MethodPost, "/users/login", body, &resp, "")
	return resp, err
}

func (c *Client) ListUsers(ctx context.Context, token string) ([]models.User, error) {
	var users []models.User
	err := c.Call(ctx, http.MethodGet, "/users", nil, &users, token)
	return users, err
}

func (c *Client) UpdateUser(ctx context.Context, token, id string, update models.UserUpdate) (models.User, error) {
	var user models.User
	err := c.Call(ctx, http.MethodPut, "/users/"+url.PathEscape(id), update, &user, token)
	return user, err
}

func (c *Client) DeleteUser(ctx context.Context, token, id string) error {
	return c.Call(ctx, http.MethodDelete, "/users/"+url.PathEscape(id), nil, nil, token)
}

// ListRequests fetches pickup requests. An empty userID asks for all
// records (admin-only semantics, enforced server-side); otherwise only
// that user's records are requested.
func (c *Client) ListRequests(ctx context.Context, token, userID string) ([]models.PickupRequest, error) {
	path := "/requests"
	if userID != "" {
		path += "?userId=" + url.QueryEscape(userID)
	}
	var requests []models.PickupRequest
	err := c.Call(ctx, http.MethodGet, path, nil, &requests, token)
	return requests, err
}

func (c *Client) CreateRequest(ctx context.Context, token, userID string, draft models.RequestDraft) (models.PickupRequest, error) {
	body := struct {
		models.RequestDraft
		UserID string `json:"userId"`
	}{draft, userID}

	var created models.PickupRequest
	err := c.Call(ctx, http.MethodPost, "/requests", body, &created, token)
	return created, err
}

func (c *Client) UpdateRequestStatus(ctx context.Context, token, id string, status models.Status) (models.PickupRequest, error) {
	body := map[string]models.Status{"status": status}
	var updated models.PickupRequest
	err := c.Call(ctx, http.MethodPatch, "/requests/"+url.PathEscape(id), body, &updated, token)
	return updated, err
}

// DeleteRequest removes a pickup request. A backend 404 means the
// record is already gone and counts as success.
func (c *Client) DeleteRequest(ctx context.Context, token, id string) error {
	err := c.Call(ctx, http.MethodDelete, "/requests/"+url.PathEscape(id), nil, nil, token)
	if IsNotFound(err) {
		return nil
	}
	return err
}
