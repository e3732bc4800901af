package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"jamaah_server/models"
)

// AuthProvider is the hosted auth provider: session issuance, password
// verification and account administration all live on the other side of it.
type AuthProvider interface {
	GetUserByToken(ctx context.Context, accessToken string) (*models.AuthUser, error)
	AdminCreateUser(ctx context.Context, email, password string, metadata map[string]string) (*models.AuthUser, error)
	AdminUpdateUser(ctx context.Context, userID, password string, metadata map[string]string) error
	SignInWithPassword(ctx context.Context, email, password string) (*models.AuthSession, error)
	SignOut(ctx context.Context, accessToken string) error
}

// HostedAuthClient talks to a GoTrue-style auth API. Admin calls authenticate
// with the service-role key; user calls pass the caller's access token.
type HostedAuthClient struct {
	BaseURL    string
	ServiceKey string
	HTTPClient *http.Client
}

// NewHostedAuthClient builds the provider client.
func NewHostedAuthClient(baseURL, serviceKey string) *HostedAuthClient {
	return &HostedAuthClient{
		BaseURL:    baseURL,
		ServiceKey: serviceKey,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type providerError struct {
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	ErrorDescription string `json:"error_description"`
}

func (e providerError) text() string {
	switch {
	case e.Msg != "":
		return e.Msg
	case e.Message != "":
		return e.Message
	case e.ErrorDescription != "":
		return e.ErrorDescription
	}
	return ""
}

func (c *HostedAuthClient) do(ctx context.Context, method, path, bearer string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+bearer)
	req.Header.Set("apikey", c.ServiceKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("auth provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		// Surface the provider's own message, not a generic one.
		var perr providerError
		data, _ := io.ReadAll(resp.Body)
		_ = json.Unmarshal(data, &perr)
		if msg := perr.text(); msg != "" {
			return fmt.Errorf("auth provider: %s", msg)
		}
		return fmt.Errorf("auth provider: status %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode auth provider response: %w", err)
		}
	}
	return nil
}

func (c *HostedAuthClient) GetUserByToken(ctx context.Context, accessToken string) (*models.AuthUser, error) {
	var user models.AuthUser
	if err := c.do(ctx, http.MethodGet, "/user", accessToken, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *HostedAuthClient) AdminCreateUser(ctx context.Context, email, password string, metadata map[string]string) (*models.AuthUser, error) {
	body := map[string]interface{}{
		"email":         email,
		"password":      password,
		"email_confirm": true,
		"user_metadata": metadata,
	}
	var user models.AuthUser
	if err := c.do(ctx, http.MethodPost, "/admin/users", c.ServiceKey, body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *HostedAuthClient) AdminUpdateUser(ctx context.Context, userID, password string, metadata map[string]string) error {
	body := map[string]interface{}{}
	if password != "" {
		body["password"] = password
	}
	if metadata != nil {
		body["user_metadata"] = metadata
	}
	return c.do(ctx, http.MethodPut, "/admin/users/"+userID, c.ServiceKey, body, nil)
}

func (c *HostedAuthClient) SignInWithPassword(ctx context.Context, email, password string) (*models.AuthSession, error) {
	body := map[string]string{"email": email, "password": password}
	var session models.AuthSession
	if err := c.do(ctx, http.MethodPost, "/token?grant_type=password", c.ServiceKey, body, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *HostedAuthClient) SignOut(ctx context.Context, accessToken string) error {
	return c.do(ctx, http.MethodPost, "/logout", accessToken, nil, nil)
}
