package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/fjod/go_cart/storefront-service/domain"
)

var ErrMissingAccessToken = errors.New("login response has no access token")

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResult struct {
	AccessToken string             `json:"access_token"`
	User        domain.UserProfile `json:"user"`
}

func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var result LoginResult
	req := loginRequest{Email: email, Password: password}
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", req, &result); err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}
	if result.AccessToken == "" {
		return nil, ErrMissingAccessToken
	}
	return &result, nil
}

// CurrentUser returns the profile behind the bearer token
func (c *Client) CurrentUser(ctx context.Context) (*domain.UserProfile, error) {
	var user domain.UserProfile
	if err := c.doJSON(ctx, http.MethodGet, "/auth/me", nil, &user); err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return &user, nil
}
