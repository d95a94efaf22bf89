package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/keepsake/internal/common"
	"github.com/dmitrijs2005/keepsake/internal/cryptox"
	"github.com/dmitrijs2005/keepsake/internal/server/auth"
	"github.com/dmitrijs2005/keepsake/internal/server/repositories/repomanager"
)

// AccessService verifies a submitted password against the configured admin
// secret and the stored viewer credential.
//
// Verify is a pure function over (input, admin secret, stored hash): it has
// no side effects, keeps no counters, and is safe to call concurrently.
type AccessService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	adminSecret []byte
}

func NewAccessService(db *sql.DB, rm repomanager.RepositoryManager, adminSecret string) *AccessService {
	return &AccessService{db: db, repomanager: rm, adminSecret: []byte(adminSecret)}
}

// Verify checks the plaintext in order: admin secret first (constant-time
// string compare), then the stored bcrypt hash. It returns:
//
//   - auth.RoleAdmin when the plaintext matches the configured admin secret
//   - common.ErrorNotConfigured when no viewer password was ever set
//   - auth.RoleViewer when the plaintext matches the stored hash
//   - common.ErrorUnauthorized otherwise
func (s *AccessService) Verify(ctx context.Context, plaintext string) (auth.Role, error) {
	if len(s.adminSecret) > 0 && cryptox.ConstantTimeEquals([]byte(plaintext), s.adminSecret) {
		return auth.RoleAdmin, nil
	}

	hashed, err := s.repomanager.Credentials(s.db).Get(ctx)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorNotConfigured
		}
		return "", common.ErrorInternal
	}

	if cryptox.CheckSecret(hashed, []byte(plaintext)) {
		return auth.RoleViewer, nil
	}

	return "", common.ErrorUnauthorized
}
