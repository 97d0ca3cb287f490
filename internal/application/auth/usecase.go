package auth

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/issuetrack-api/internal/application/dto"
	"github.com/jhoicas/issuetrack-api/internal/domain"
	"github.com/jhoicas/issuetrack-api/internal/domain/entity"
	"github.com/jhoicas/issuetrack-api/internal/domain/repository"
	"github.com/jhoicas/issuetrack-api/pkg/jwt"
	"github.com/jhoicas/issuetrack-api/pkg/password"
)

// ErrScopeDenied indicates the scope policy rejected the operation.
// Unreachable while GrantAllScopes is wired.
var ErrScopeDenied = errors.New("auth: scope denied")

// AuthUseCase authentication and authorization flows: registration,
// login (credential check + token issuance) and per-request token
// authorization. Holds no per-request state.
type AuthUseCase struct {
	users  repository.UserRepository
	codec  *jwt.Codec
	scopes ScopePolicy
}

// NewAuthUseCase builds the auth use case.
func NewAuthUseCase(users repository.UserRepository, codec *jwt.Codec, scopes ScopePolicy) *AuthUseCase {
	return &AuthUseCase{users: users, codec: codec, scopes: scopes}
}

// Register creates a user: hashes the password and persists. A duplicate
// username surfaces the unique-constraint violation as domain.ErrConflict;
// there is no pre-check, concurrent registrations race at the store.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	hash, err := password.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		Username:     in.Username,
		Fullname:     in.Fullname,
		PasswordHash: hash,
		Active:       true,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Authenticate verifies username/password and the account's active flag.
// The caller collapses every failure kind into one generic outcome, so
// which stage failed never leaks past the boundary.
func (uc *AuthUseCase) Authenticate(ctx context.Context, username, plain string) (*entity.User, error) {
	user, err := uc.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	if err := password.Verify(plain, user.PasswordHash); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			return nil, domain.ErrCredentialMismatch
		}
		return nil, err
	}
	if !user.Active {
		return nil, domain.ErrAccountInactive
	}
	return user, nil
}

// Login authenticates and issues a session token expiring at now + TTL.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest, now time.Time) (*dto.TokenResponse, error) {
	user, err := uc.Authenticate(ctx, in.Username, in.Password)
	if err != nil {
		return nil, err
	}
	token, err := uc.codec.Issue(user.Username, user.Fullname, user.Active, now)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{AccessToken: token, TokenType: "bearer"}, nil
}

// Authorize verifies the token, then re-fetches the account and
// re-checks its active flag against current store state. The active flag
// embedded in the claims is never trusted: a token issued before a
// deactivation must stop working on the very next call. Propagates
// jwt.ErrTokenExpired / jwt.ErrTokenInvalid from verification.
func (uc *AuthUseCase) Authorize(ctx context.Context, token string, now time.Time, scopes ...string) (*entity.User, error) {
	claims, err := uc.codec.Verify(token, now)
	if err != nil {
		return nil, err
	}
	user, err := uc.users.GetByUsername(ctx, claims.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	if !user.Active {
		return nil, domain.ErrAccountInactive
	}
	if !uc.scopes.Granted(user, scopes) {
		return nil, ErrScopeDenied
	}
	return user, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		Username: u.Username,
		Fullname: u.Fullname,
		Active:   u.Active,
	}
}
