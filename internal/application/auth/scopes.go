package auth

import "github.com/jhoicas/issuetrack-api/internal/domain/entity"

// ScopePolicy is the capability check run after a token holder is
// re-validated: required lists the scopes the protected operation
// declares (e.g. "issues", "products").
type ScopePolicy interface {
	Granted(user *entity.User, required []string) bool
}

// GrantAllScopes grants every scope to every authenticated, active
// identity. This mirrors the current product behavior, where routes
// declare scopes but none are enforced; swap this value at the wiring
// site once real scope enforcement lands.
type GrantAllScopes struct{}

// Granted always reports true.
func (GrantAllScopes) Granted(*entity.User, []string) bool { return true }
