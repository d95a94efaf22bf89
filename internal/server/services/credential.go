// Package services contains the application services: credential
// management, password verification and the memory upload/delete lifecycle.
package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/keepsake/internal/common"
	"github.com/dmitrijs2005/keepsake/internal/cryptox"
	"github.com/dmitrijs2005/keepsake/internal/dbx"
	"github.com/dmitrijs2005/keepsake/internal/server/repositories/repomanager"
)

// CredentialService sets and reads the shared viewer password.
type CredentialService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewCredentialService(db *sql.DB, rm repomanager.RepositoryManager) *CredentialService {
	return &CredentialService{db: db, repomanager: rm}
}

// SetSecret hashes the plaintext and replaces any existing credential.
// The delete-then-insert pair runs in one transaction, so the final state is
// atomic; a concurrent verify may still observe either the old or the new
// secret depending on commit timing.
func (s *CredentialService) SetSecret(ctx context.Context, plaintext string) error {
	if strings.TrimSpace(plaintext) == "" {
		return fmt.Errorf("%w: password must not be empty", common.ErrorValidation)
	}

	hashed, err := cryptox.HashSecret([]byte(plaintext))
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Credentials(tx)
		if err := repo.DeleteAll(ctx); err != nil {
			return err
		}
		return repo.Insert(ctx, hashed)
	})
	if err != nil {
		return fmt.Errorf("error replacing credential: %w", err)
	}

	return nil
}

// GetHashedSecret returns the stored hash or common.ErrorNotFound.
func (s *CredentialService) GetHashedSecret(ctx context.Context) (string, error) {
	return s.repomanager.Credentials(s.db).Get(ctx)
}
