package identity

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/kingrain94/tenancy-api/internal/repository/memory"
)

const testSecret = "test-secret"

func newTestProvider() (*LocalProvider, *memory.Store) {
	store := memory.NewStore()
	p := NewLocalProvider(store.Identity(), NewJWTService(testSecret, time.Hour), WithBcryptCost(bcrypt.MinCost))
	return p, store
}

func TestCreateIdentity_HashesPasswordAndNormalizesEmail(t *testing.T) {
	p, store := newTestProvider()
	ctx := context.Background()

	id, err := p.CreateIdentity(ctx, "  Admin@Example.com ", "s3cret-pass", Metadata{Name: "Ada", EmailVerified: true})
	require.NoError(t, err)

	stored, err := store.Identity().GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", stored.Email)
	assert.NotEqual(t, "s3cret-pass", stored.PasswordHash)
	assert.True(t, stored.EmailVerified)
	assert.True(t, stored.Active)

	_, err = p.CreateIdentity(ctx, "admin@example.com", "other-pass", Metadata{})
	assert.ErrorIs(t, err, ErrIdentityExists)
}

func TestAuthenticate_RoundTripsThroughToken(t *testing.T) {
	p, _ := newTestProvider()
	ctx := context.Background()

	id, err := p.CreateIdentity(ctx, "ada@example.com", "s3cret-pass", Metadata{Name: "Ada"})
	require.NoError(t, err)

	token, err := p.Authenticate(ctx, "ADA@example.com", "s3cret-pass")
	require.NoError(t, err)

	principal, err := p.GetCurrentPrincipal(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, id, principal)
}

func TestAuthenticate_RejectsBadCredentials(t *testing.T) {
	p, _ := newTestProvider()
	ctx := context.Background()

	_, err := p.CreateIdentity(ctx, "ada@example.com", "s3cret-pass", Metadata{})
	require.NoError(t, err)

	_, err = p.Authenticate(ctx, "ada@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = p.Authenticate(ctx, "nobody@example.com", "s3cret-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGetCurrentPrincipal_DeletedIdentityLosesAccess(t *testing.T) {
	p, _ := newTestProvider()
	ctx := context.Background()

	id, err := p.CreateIdentity(ctx, "ada@example.com", "s3cret-pass", Metadata{})
	require.NoError(t, err)
	token, err := p.Authenticate(ctx, "ada@example.com", "s3cret-pass")
	require.NoError(t, err)

	require.NoError(t, p.DeleteIdentity(ctx, id))

	_, err = p.GetCurrentPrincipal(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.ErrorIs(t, p.DeleteIdentity(ctx, id), ErrIdentityNotFound)
}

func TestValidateToken(t *testing.T) {
	svc := NewJWTService(testSecret, time.Hour)

	_, err := svc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := NewJWTService(testSecret, -time.Minute)
	token, err := expired.GenerateToken("p1", "")
	require.NoError(t, err)
	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)

	other := NewJWTService("another-secret", time.Hour)
	token, err = other.GenerateToken("p1", "")
	require.NoError(t, err)
	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{PrincipalID: "p1"})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.ValidateToken(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
