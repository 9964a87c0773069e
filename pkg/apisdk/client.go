package apisdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client is a typed HTTP client for the API. Zero value is not usable;
// construct with NewClient.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	accessToken string
}

// NewClient creates a client against the given base URL (no trailing slash).
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetAccessToken stores the bearer token sent on subsequent requests.
func (c *Client) SetAccessToken(token string) {
	c.accessToken = token
}

// BaseURL returns the base URL this client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Register creates an account and returns the initial token pair.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*TokenResponse, error) {
	var out TokenResponse
	if err := c.do(ctx, http.MethodPost, "/api/register", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login authenticates with email and password.
func (c *Client) Login(ctx context.Context, email, password string) (*TokenResponse, error) {
	var out TokenResponse
	req := LoginRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/api/login", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Refresh exchanges a refresh token for a new short-lived access token.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	var out TokenResponse
	if err := c.do(ctx, http.MethodPost, "/api/refresh", TokenRequest{Token: refreshToken}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout removes the refresh token from the server-side registry.
func (c *Client) Logout(ctx context.Context, refreshToken string) (*MessageResponse, error) {
	var out MessageResponse
	if err := c.do(ctx, http.MethodPost, "/api/logout", TokenRequest{Token: refreshToken}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListTodos returns all todos ordered by id.
func (c *Client) ListTodos(ctx context.Context) ([]Todo, error) {
	var out []Todo
	if err := c.do(ctx, http.MethodGet, "/api/todos", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetTodo returns a single todo by id.
func (c *Client) GetTodo(ctx context.Context, id int64) (*Todo, error) {
	var out Todo
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/todos/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateTodo adds a new todo.
func (c *Client) CreateTodo(ctx context.Context, req TodoRequest) (*TodoCreatedResponse, error) {
	var out TodoCreatedResponse
	if err := c.do(ctx, http.MethodPost, "/api/todos", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateTodo replaces a todo's fields by id.
func (c *Client) UpdateTodo(ctx context.Context, id int64, req TodoRequest) (*MessageResponse, error) {
	var out MessageResponse
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/todos/%d", id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteTodo removes a todo by id.
func (c *Client) DeleteTodo(ctx context.Context, id int64) (*MessageResponse, error) {
	var out MessageResponse
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/todos/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListUsers returns all users ordered by id.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var out []User
	if err := c.do(ctx, http.MethodGet, "/api/users", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetUser returns a single user by id.
func (c *Client) GetUser(ctx context.Context, id int64) (*User, error) {
	var out User
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/users/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateUser adds a user without credentials. A password can be attached
// later via SetUserPassword.
func (c *Client) CreateUser(ctx context.Context, req UserRequest) (*UserCreatedResponse, error) {
	var out UserCreatedResponse
	if err := c.do(ctx, http.MethodPost, "/api/users", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateUser updates a user's name and phone number by id.
func (c *Client) UpdateUser(ctx context.Context, id int64, req UserRequest) (*MessageResponse, error) {
	var out MessageResponse
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/users/%d", id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteUser removes a user by id.
func (c *Client) DeleteUser(ctx context.Context, id int64) (*MessageResponse, error) {
	var out MessageResponse
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/users/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SetUserPassword attaches a password to an existing user.
func (c *Client) SetUserPassword(ctx context.Context, req SetPasswordRequest) (*MessageResponse, error) {
	var out MessageResponse
	if err := c.do(ctx, http.MethodPost, "/api/users/password", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ChangeUserPassword rotates a user's password after checking the old one.
func (c *Client) ChangeUserPassword(ctx context.Context, id int64, req ChangePasswordRequest) (*MessageResponse, error) {
	var out MessageResponse
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/users/password/%d", id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("apisdk: encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if err := parseErrorResponse(resp, raw); err != nil {
		return err
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, out)
}

// parseErrorResponse turns a non-2xx response into a typed *APIError.
// Returns nil for success responses.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var apiErr APIError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Kind != "" {
		apiErr.StatusCode = resp.StatusCode
		return &apiErr
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Kind:       KindStoreFailure,
		Detail:     fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
