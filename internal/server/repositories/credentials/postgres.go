// Package credentials provides the PostgreSQL-backed repository for the
// singleton hashed viewer password.
package credentials

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/keepsake/internal/common"
	"github.com/dmitrijs2005/keepsake/internal/dbx"
)

// PostgresRepository implements credential storage over a dbx.DBTX
// (*sql.DB or *sql.Tx). Callers that need the delete-then-insert pair to be
// atomic with respect to final state should bind it to a transaction via
// dbx.WithTx.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM credentials`); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Insert(ctx context.Context, hashedSecret string) error {
	query := `INSERT INTO credentials (hashed_secret) VALUES ($1)`
	if _, err := r.db.ExecContext(ctx, query, hashedSecret); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context) (string, error) {
	query := `SELECT hashed_secret FROM credentials ORDER BY id DESC LIMIT 1`

	var hashed string
	err := r.db.QueryRowContext(ctx, query).Scan(&hashed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", common.ErrorNotFound
		}
		return "", fmt.Errorf("db error: %w", err)
	}
	return hashed, nil
}
