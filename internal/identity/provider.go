// Package identity fronts the account store: it creates and removes
// identities and turns credentials into principal ids.
package identity

import (
	"context"
	"errors"
)

var (
	ErrIdentityExists     = errors.New("identity already exists")
	ErrIdentityNotFound   = errors.New("identity not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token has expired")
	ErrInactiveIdentity   = errors.New("identity is inactive")
)

// Metadata is stored alongside a new identity.
type Metadata struct {
	Name          string
	EmailVerified bool
	Attributes    map[string]any
}

//go:generate mockery --name Provider --output ../mocks
type Provider interface {
	// CreateIdentity registers a new account and returns its principal id.
	CreateIdentity(ctx context.Context, email, password string, metadata Metadata) (string, error)
	DeleteIdentity(ctx context.Context, id string) error
	// GetCurrentPrincipal validates a bearer credential.
	GetCurrentPrincipal(ctx context.Context, credential string) (string, error)
	// Authenticate checks email and password and issues a credential.
	Authenticate(ctx context.Context, email, password string) (string, error)
}
