package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"slotbook/pkg/client"
)

// ErrInvalidToken marks a bearer token the provider refused.
var ErrInvalidToken = errors.New("invalid or expired session token")

// Provider is the hosted auth service: session identity resolution,
// account creation and password recovery. Issuing sessions is entirely
// the provider's business; this service only consumes them.
type Provider interface {
	GetUser(ctx context.Context, accessToken string) (*Identity, error)
	SignUp(ctx context.Context, email, password string) (*Identity, error)
	ResetPassword(ctx context.Context, email, redirectTo string) error
}

// gotrueProvider talks to a GoTrue-style REST API. Every request
// carries the project api key; user resolution adds the caller's
// bearer token.
type gotrueProvider struct {
	http *client.HttpClient
}

func NewGotrueProvider(baseURL, apiKey string) Provider {
	return &gotrueProvider{
		http: client.NewHttpClient(baseURL, map[string]string{
			"apikey": apiKey,
		}),
	}
}

func (p *gotrueProvider) GetUser(ctx context.Context, accessToken string) (*Identity, error) {
	resp, err := p.http.GET(ctx, "/auth/v1/user", map[string]string{
		"Authorization": "Bearer " + accessToken,
	})
	if err != nil {
		return nil, fmt.Errorf("auth provider unreachable: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, ErrInvalidToken
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("auth provider returned %d: %s", resp.StatusCode, client.GetErrorMessage(resp))
	}

	var user struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}
	if err := resp.DecodeJSON(&user); err != nil {
		return nil, fmt.Errorf("failed to decode auth user: %w", err)
	}
	if user.ID == "" {
		return nil, ErrInvalidToken
	}

	return &Identity{ID: user.ID, Email: user.Email}, nil
}

func (p *gotrueProvider) SignUp(ctx context.Context, email, password string) (*Identity, error) {
	resp, err := p.http.POST(ctx, "/auth/v1/signup", map[string]string{
		"email":    email,
		"password": password,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("auth provider unreachable: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("signup rejected: %s", client.GetErrorMessage(resp))
	}

	// The provider returns the bare user when confirmation is off and a
	// session envelope when it is on.
	var payload struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		User  *struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"user"`
	}
	if err := resp.DecodeJSON(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode signup response: %w", err)
	}

	if payload.ID != "" {
		return &Identity{ID: payload.ID, Email: payload.Email}, nil
	}
	if payload.User != nil && payload.User.ID != "" {
		return &Identity{ID: payload.User.ID, Email: payload.User.Email}, nil
	}
	return nil, fmt.Errorf("signup response carried no user id")
}

func (p *gotrueProvider) ResetPassword(ctx context.Context, email, redirectTo string) error {
	body := map[string]string{"email": email}
	var headers map[string]string
	if redirectTo != "" {
		headers = map[string]string{"redirect_to": redirectTo}
	}

	resp, err := p.http.POST(ctx, "/auth/v1/recover", body, headers)
	if err != nil {
		return fmt.Errorf("auth provider unreachable: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("recover rejected: %s", client.GetErrorMessage(resp))
	}
	return nil
}
