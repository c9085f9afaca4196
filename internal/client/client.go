// Package client is the API client used by the HRM frontends and tests.
// It owns the client side of the session: a single stored access token
// attached to every request, dropped globally on the first 401 response.
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

	"github.com/tatrunhau/HRM-Project-Final-sub002/internal/services"
	"github.com/tatrunhau/HRM-Project-Final-sub002/internal/utils"
)

// APIError is a structured error response decoded from the server.
type APIError struct {
	Status int
	Body   utils.ErrorBody
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d %s: %s", e.Status, e.Body.Code, e.Body.Message)
}

type Client struct {
	baseURL string
	httpc   *http.Client
	store   *TokenStore

	// onAuthFailure fires once per 401 response, after the token slot is
	// cleared. The web frontend navigates to the login page here.
	onAuthFailure func()
}

type Option func(*Client)

func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) { c.httpc = httpc }
}

func WithAuthFailureHandler(fn func()) Option {
	return func(c *Client) { c.onAuthFailure = fn }
}

func New(baseURL string, store *TokenStore, opts ...Option) *Client {
	c := &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		httpc:         &http.Client{Timeout: 10 * time.Second},
		store:         store,
		onAuthFailure: func() {},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Login(ctx context.Context, usercode, pass string) (*services.TokenResponse, error) {
	var resp services.TokenResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login",
		map[string]string{"usercode": usercode, "pass": pass}, &resp)
	if err != nil {
		return nil, err
	}
	c.store.Set(resp.AccessToken)
	return &resp, nil
}

func (c *Client) SignOut(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/api/auth/signout", nil, nil)
	c.store.Clear()
	return err
}

func (c *Client) AuthMe(ctx context.Context) (map[string]interface{}, error) {
	var resp map[string]interface{}
	if err := c.do(ctx, http.MethodGet, "/api/users/authme", nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) VerifyIdentity(ctx context.Context, usercode, email string) (*services.VerifyIdentityResponse, error) {
	var resp services.VerifyIdentityResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/verify-identity",
		map[string]string{"usercode": usercode, "email": email}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ResetPassword(ctx context.Context, userID int64, newPass, confirmPass string) error {
	return c.do(ctx, http.MethodPut, "/api/auth/reset-password", map[string]interface{}{
		"userid":      userID,
		"newPass":     newPass,
		"confirmPass": confirmPass,
	}, nil)
}

func (c *Client) do(ctx context.Context, method, path string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token, ok := c.store.Get(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		// Global side effect: any 401 ends the session, whatever endpoint
		// the request was for.
		c.store.Clear()
		c.onAuthFailure()
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode}
		var decoded utils.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&decoded); err == nil {
			apiErr.Body = decoded.Error
		}
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
