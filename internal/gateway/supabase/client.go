package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/BhupenderNayak/krishi-unnati-app/internal/domain"
)

// AuthError carries the GoTrue error message verbatim so the login/signup
// screens can display it.
type AuthError struct {
	Status  int
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

// Client talks to the Supabase GoTrue REST API. It implements
// domain.AuthGateway; credentials never touch this service's own storage.
type Client struct {
	baseURL string
	anonKey string
	http    *http.Client
}

func NewClient(baseURL, anonKey string) *Client {
	return &Client{
		baseURL: baseURL,
		anonKey: anonKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*domain.AuthGrant, error) {
	// Password login: POST /auth/v1/token?grant_type=password
	body := map[string]interface{}{
		"email":    email,
		"password": password,
	}

	var out struct {
		AccessToken string          `json:"access_token"`
		User        domain.Identity `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/v1/token?grant_type=password", "", body, &out); err != nil {
		return nil, err
	}

	return &domain.AuthGrant{Identity: out.User, AccessToken: out.AccessToken}, nil
}

func (c *Client) SignUp(ctx context.Context, email, password string, metadata map[string]interface{}) (*domain.AuthGrant, error) {
	body := map[string]interface{}{
		"email":    email,
		"password": password,
		"data":     metadata,
	}

	// GoTrue returns the user at the top level; access_token is only present
	// when email confirmation is disabled (our projects run auto-confirm).
	var out struct {
		ID          string `json:"id"`
		Email       string `json:"email"`
		AccessToken string `json:"access_token"`
		User        *struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/v1/signup", "", body, &out); err != nil {
		return nil, err
	}

	grant := &domain.AuthGrant{
		Identity:    domain.Identity{ID: out.ID, Email: out.Email},
		AccessToken: out.AccessToken,
	}
	if grant.Identity.ID == "" && out.User != nil {
		grant.Identity = domain.Identity{ID: out.User.ID, Email: out.User.Email}
	}
	return grant, nil
}

func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	return c.do(ctx, http.MethodPost, "/auth/v1/logout", accessToken, nil, nil)
}

func (c *Client) GetUser(ctx context.Context, accessToken string) (*domain.Identity, error) {
	var out domain.Identity
	if err := c.do(ctx, http.MethodGet, "/auth/v1/user", accessToken, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path, accessToken string, body, out interface{}) error {
	var reader *bytes.Buffer
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewBuffer(jsonBody)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.anonKey)
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("supabase: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return parseAuthError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("supabase: decode response: %w", err)
	}
	return nil
}

// parseAuthError extracts the GoTrue message; the wire format has shifted
// between msg, message and error_description over API versions.
func parseAuthError(resp *http.Response) error {
	var errResp map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&errResp)

	msg := "Authentication failed"
	for _, key := range []string{"msg", "message", "error_description"} {
		if m, ok := errResp[key].(string); ok && m != "" {
			msg = m
			break
		}
	}

	return &AuthError{Status: resp.StatusCode, Message: msg}
}
