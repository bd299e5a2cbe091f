package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/kingrain94/tenancy-api/internal/domain"
	"github.com/kingrain94/tenancy-api/internal/repository"
)

// LocalProvider keeps identities in the application's own store, hashing
// passwords with bcrypt and issuing HS256 tokens.
type LocalProvider struct {
	repo       repository.IdentityRepository
	tokens     *JWTService
	bcryptCost int
}

type Option func(*LocalProvider)

// WithBcryptCost overrides bcrypt.DefaultCost.
func WithBcryptCost(cost int) Option {
	return func(p *LocalProvider) {
		p.bcryptCost = cost
	}
}

func NewLocalProvider(repo repository.IdentityRepository, tokens *JWTService, opts ...Option) *LocalProvider {
	p := &LocalProvider{
		repo:       repo,
		tokens:     tokens,
		bcryptCost: bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *LocalProvider) CreateIdentity(ctx context.Context, email, password string, metadata Metadata) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	var attrs json.RawMessage
	if len(metadata.Attributes) > 0 {
		if attrs, err = json.Marshal(metadata.Attributes); err != nil {
			return "", fmt.Errorf("failed to encode identity metadata: %w", err)
		}
	}

	identity := &domain.Identity{
		Email:         normalizeEmail(email),
		PasswordHash:  string(hash),
		Name:          metadata.Name,
		EmailVerified: metadata.EmailVerified,
		Active:        true,
		Metadata:      attrs,
	}
	if err := p.repo.Create(ctx, identity); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return "", ErrIdentityExists
		}
		return "", err
	}
	return identity.ID, nil
}

func (p *LocalProvider) DeleteIdentity(ctx context.Context, id string) error {
	if err := p.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrIdentityNotFound
		}
		return err
	}
	return nil
}

func (p *LocalProvider) GetCurrentPrincipal(ctx context.Context, credential string) (string, error) {
	claims, err := p.tokens.ValidateToken(credential)
	if err != nil {
		return "", err
	}

	// Deleted or disabled accounts lose access even with an unexpired token
	identity, err := p.repo.GetByID(ctx, claims.PrincipalID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrInvalidToken
		}
		return "", err
	}
	if !identity.Active {
		return "", ErrInactiveIdentity
	}
	return identity.ID, nil
}

func (p *LocalProvider) Authenticate(ctx context.Context, email, password string) (string, error) {
	identity, err := p.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	if !identity.Active {
		return "", ErrInactiveIdentity
	}

	return p.tokens.GenerateToken(identity.ID, identity.Email)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
