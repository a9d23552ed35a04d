// File: internal/client/client.go
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"uplio_backend/internal/common"
	"uplio_backend/internal/profile"
	"uplio_backend/internal/user"
)

// Client is a thin HTTP client for the Uplio API. Methods mirror the server
// endpoints one to one; error responses come back as *common.APIError so
// callers can branch on status codes the same way handlers do.
type Client struct {
	baseURL string
	http    *http.Client
}

// AuthResponse is the register/login payload: the sanitized user, a session
// token, and note set to "existing" on convenience logins.
type AuthResponse struct {
	User  user.UserResponse `json:"user"`
	Token string            `json:"token"`
	Note  string            `json:"note,omitempty"`
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Register creates or logs in a password account.
func (c *Client) Register(ctx context.Context, email, password string) (*AuthResponse, error) {
	body := user.RegisterRequest{Email: email, Password: password}
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/register", "", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RegisterWithGoogle creates or logs in a Google account from an ID token.
func (c *Client) RegisterWithGoogle(ctx context.Context, credential string) (*AuthResponse, error) {
	body := user.RegisterRequest{Credential: credential}
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/register", "", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetProfile fetches the caller's profile, synthesized or stored.
func (c *Client) GetProfile(ctx context.Context, token string) (*profile.Response, error) {
	var out struct {
		Profile profile.Response `json:"profile"`
	}
	if err := c.do(ctx, http.MethodGet, "/profile", token, nil, &out); err != nil {
		return nil, err
	}
	return &out.Profile, nil
}

// SaveProfile writes the caller's profile and returns the canonical stored
// version.
func (c *Client) SaveProfile(ctx context.Context, token string, req profile.UpdateRequest) (*profile.Response, error) {
	var out struct {
		Profile profile.Response `json:"profile"`
	}
	if err := c.do(ctx, http.MethodPost, "/profile", token, req, &out); err != nil {
		return nil, err
	}
	return &out.Profile, nil
}

// ListUsers fetches the public user directory.
func (c *Client) ListUsers(ctx context.Context) ([]user.UserResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/users", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, decodeAPIError(resp.StatusCode, raw)
	}
	var out []user.UserResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to decode user list: %w", err)
	}
	return out, nil
}

// do issues a JSON request and decodes either the success envelope into out
// or the error envelope into an *common.APIError.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp.StatusCode, raw)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func decodeAPIError(status int, raw []byte) error {
	var envelope struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil || envelope.Error == "" {
		return &common.APIError{StatusCode: status, Message: http.StatusText(status)}
	}
	return &common.APIError{StatusCode: status, Code: envelope.Code, Message: envelope.Error}
}
