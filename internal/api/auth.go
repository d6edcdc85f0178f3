package api

import (
	"context"
	"net/http"
)

// AuthResponse is the token payload returned by the auth gateway.
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	UserID      int    `json:"user_id"`
	Role        string `json:"role"`
	ActiveRole  string `json:"active_role,omitempty"`
	FirstName   string `json:"first_name"`
}

// RegisterRequest creates a new account. New accounts always start as buyers;
// the backend ignores any role hint.
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an account and returns a fresh token.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/register", "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login exchanges credentials for a token. The role in the response is the
// account's active role as the backend sees it.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", "", loginRequest{Email: email, Password: password}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ToggleRole flips the account between buyer and seller and reissues the
// token. The old token is dead after this returns.
func (c *Client) ToggleRole(ctx context.Context, token string) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/toggle-role", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
