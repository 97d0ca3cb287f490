package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/issuetrack-api/internal/application/auth"
	"github.com/jhoicas/issuetrack-api/internal/application/dto"
	"github.com/jhoicas/issuetrack-api/internal/domain"
	"github.com/jhoicas/issuetrack-api/internal/infrastructure/memory"
	pkgjwt "github.com/jhoicas/issuetrack-api/pkg/jwt"
)

const tokenTTL = time.Hour

func newAuthUseCase(t *testing.T) (*auth.AuthUseCase, *memory.Store) {
	t.Helper()
	codec, err := pkgjwt.New(pkgjwt.Options{
		Secret: "test-secret-key-for-unit-tests",
		Issuer: "issuetrack-test",
		TTL:    tokenTTL,
	})
	require.NoError(t, err)
	store := memory.NewStore()
	return auth.NewAuthUseCase(store.Users(), codec, auth.GrantAllScopes{}), store
}

func register(t *testing.T, uc *auth.AuthUseCase, username, pass string) {
	t.Helper()
	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Username: username,
		Fullname: "Test van Holland",
		Password: pass,
	})
	require.NoError(t, err)
}

func TestRegister_NeverLeaksHash(t *testing.T) {
	uc, store := newAuthUseCase(t)

	out, err := uc.Register(context.Background(), dto.RegisterRequest{Username: "alice", Password: "pw1"})
	require.NoError(t, err)

	assert.Equal(t, "alice", out.Username)
	assert.True(t, out.Active)
	assert.Equal(t, 1, store.UserCount())

	stored, err := store.Users().GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "pw1", stored.PasswordHash, "password must be stored hashed")
}

func TestRegister_DuplicateUsername(t *testing.T) {
	uc, store := newAuthUseCase(t)
	register(t, uc, "alice", "pw1")

	_, err := uc.Register(context.Background(), dto.RegisterRequest{Username: "alice", Password: "other"})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 1, store.UserCount())
}

func TestAuthenticate_Success(t *testing.T) {
	uc, _ := newAuthUseCase(t)
	register(t, uc, "alice", "pw1")

	user, err := uc.Authenticate(context.Background(), "alice", "pw1")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
}

func TestAuthenticate_UnknownUser(t *testing.T) {
	uc, _ := newAuthUseCase(t)

	_, err := uc.Authenticate(context.Background(), "nobody", "pw1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	uc, _ := newAuthUseCase(t)
	register(t, uc, "alice", "pw1")

	_, err := uc.Authenticate(context.Background(), "alice", "wrong")
	assert.ErrorIs(t, err, domain.ErrCredentialMismatch)
}

func TestAuthenticate_InactiveAccount(t *testing.T) {
	uc, store := newAuthUseCase(t)
	register(t, uc, "alice", "pw1")
	store.SetActive("alice", false)

	_, err := uc.Authenticate(context.Background(), "alice", "pw1")
	assert.ErrorIs(t, err, domain.ErrAccountInactive)
}

// Login then Authorize must yield the identity as stored.
func TestLoginAuthorize_RoundTrip(t *testing.T) {
	uc, store := newAuthUseCase(t)
	register(t, uc, "alice", "pw1")
	now := time.Now()

	out, err := uc.Login(context.Background(), dto.LoginRequest{Username: "alice", Password: "pw1"}, now)
	require.NoError(t, err)
	assert.Equal(t, "bearer", out.TokenType)

	user, err := uc.Authorize(context.Background(), out.AccessToken, now.Add(time.Minute), "issues")
	require.NoError(t, err)

	stored, err := store.Users().GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, stored, user)
}

func TestAuthorize_ExpiredToken(t *testing.T) {
	uc, _ := newAuthUseCase(t)
	register(t, uc, "alice", "pw1")
	now := time.Now()

	out, err := uc.Login(context.Background(), dto.LoginRequest{Username: "alice", Password: "pw1"}, now)
	require.NoError(t, err)

	_, err = uc.Authorize(context.Background(), out.AccessToken, now.Add(tokenTTL+time.Second), "issues")
	assert.ErrorIs(t, err, pkgjwt.ErrTokenExpired)
}

func TestAuthorize_TamperedToken(t *testing.T) {
	uc, _ := newAuthUseCase(t)
	register(t, uc, "alice", "pw1")
	now := time.Now()

	out, err := uc.Login(context.Background(), dto.LoginRequest{Username: "alice", Password: "pw1"}, now)
	require.NoError(t, err)

	_, err = uc.Authorize(context.Background(), out.AccessToken+"x", now, "issues")
	assert.ErrorIs(t, err, pkgjwt.ErrTokenInvalid)
}

// Deactivation must cut off an unexpired token on the very next call:
// the active flag embedded in the claims is not trusted.
func TestAuthorize_DeactivatedAfterIssue(t *testing.T) {
	uc, store := newAuthUseCase(t)
	register(t, uc, "alice", "pw1")
	now := time.Now()

	out, err := uc.Login(context.Background(), dto.LoginRequest{Username: "alice", Password: "pw1"}, now)
	require.NoError(t, err)

	store.SetActive("alice", false)

	_, err = uc.Authorize(context.Background(), out.AccessToken, now.Add(time.Minute), "issues")
	assert.ErrorIs(t, err, domain.ErrAccountInactive)
}

func TestAuthorize_EveryScopeGranted(t *testing.T) {
	uc, _ := newAuthUseCase(t)
	register(t, uc, "alice", "pw1")
	now := time.Now()

	out, err := uc.Login(context.Background(), dto.LoginRequest{Username: "alice", Password: "pw1"}, now)
	require.NoError(t, err)

	for _, scopes := range [][]string{nil, {"issues"}, {"products"}, {"issues", "products", "anything"}} {
		_, err := uc.Authorize(context.Background(), out.AccessToken, now, scopes...)
		assert.NoError(t, err, "GrantAllScopes must grant %v", scopes)
	}
}
