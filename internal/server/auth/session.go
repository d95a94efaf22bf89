// Package auth defines the roles produced by password verification and the
// pluggable session token issuer used by the HTTP boundary.
package auth

import "github.com/dmitrijs2005/keepsake/internal/common"

// Role is the authorization level resulting from password verification.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleViewer Role = "viewer"
)

// Valid reports whether the role is one of the known levels.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleViewer
}

// SessionIssuer issues and validates session tokens for verified roles.
// Whether sessions exist at all is a configuration concern: a deployment
// without a session secret runs the NoopIssuer and authenticates
// per-request, matching the earlier behavior of the app.
type SessionIssuer interface {
	// Issue returns a token for the given role, or an empty string when the
	// issuer does not produce tokens.
	Issue(role Role) (string, error)

	// Validate returns the role encoded in the token, or
	// common.ErrInvalidToken when the token is missing, malformed, expired
	// or carries an unknown role.
	Validate(token string) (Role, error)
}

// NoopIssuer is the "no sessions" implementation: it never issues tokens and
// rejects every validation attempt.
type NoopIssuer struct{}

func (NoopIssuer) Issue(role Role) (string, error) {
	return "", nil
}

func (NoopIssuer) Validate(token string) (Role, error) {
	return "", common.ErrInvalidToken
}
