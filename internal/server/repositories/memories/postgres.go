// Package memories provides the PostgreSQL-backed repository for persisted
// recordings.
package memories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/keepsake/internal/common"
	"github.com/dmitrijs2005/keepsake/internal/dbx"
	"github.com/dmitrijs2005/keepsake/internal/server/models"
)

// PostgresRepository implements memory storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create persists a fully-populated memory. ID and CreatedAt are assigned by
// the caller (the service layer) before this point.
func (r *PostgresRepository) Create(ctx context.Context, memory *models.Memory) (*models.Memory, error) {
	query := `
		INSERT INTO memories (id, title, description, audio_url, audio_key, photo_url, photo_key, sort_order, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	var photoURL, photoKey sql.NullString
	if memory.Photo != nil {
		photoURL = sql.NullString{String: memory.Photo.URL, Valid: true}
		photoKey = sql.NullString{String: memory.Photo.Key, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, query,
		memory.ID, memory.Title, memory.Description,
		memory.Audio.URL, memory.Audio.Key,
		photoURL, photoKey,
		memory.SortOrder, memory.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return memory, nil
}

// List returns all memories ordered by sort_order ascending, with created_at
// and finally id as deterministic tiebreaks (earliest upload first among
// equal sort orders).
func (r *PostgresRepository) List(ctx context.Context) ([]*models.Memory, error) {
	query := `
		SELECT id, title, description, audio_url, audio_key, photo_url, photo_key, sort_order, created_at
		FROM memories
		ORDER BY sort_order ASC, created_at ASC, id ASC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select memories: %w", err)
	}
	defer rows.Close()

	var result []*models.Memory
	for rows.Next() {
		item, err := scanMemory(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID returns the memory with the given id or common.ErrorNotFound.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Memory, error) {
	query := `
		SELECT id, title, description, audio_url, audio_key, photo_url, photo_key, sort_order, created_at
		FROM memories
		WHERE id = $1
	`

	item := &models.Memory{}
	var photoURL, photoKey sql.NullString

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID, &item.Title, &item.Description,
		&item.Audio.URL, &item.Audio.Key,
		&photoURL, &photoKey,
		&item.SortOrder, &item.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	attachPhoto(item, photoURL, photoKey)
	return item, nil
}

// DeleteByID unconditionally removes the memory with the given id.
// Returns common.ErrorNotFound when no row was removed.
func (r *PostgresRepository) DeleteByID(ctx context.Context, id string) error {
	query := `DELETE FROM memories WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func scanMemory(rows *sql.Rows) (*models.Memory, error) {
	item := &models.Memory{}
	var photoURL, photoKey sql.NullString

	if err := rows.Scan(
		&item.ID, &item.Title, &item.Description,
		&item.Audio.URL, &item.Audio.Key,
		&photoURL, &photoKey,
		&item.SortOrder, &item.CreatedAt,
	); err != nil {
		return nil, err
	}

	attachPhoto(item, photoURL, photoKey)
	return item, nil
}

// attachPhoto sets the optional photo ref only when both columns are present,
// so a record can never carry a dangling key without a URL.
func attachPhoto(item *models.Memory, photoURL, photoKey sql.NullString) {
	if photoURL.Valid && photoKey.Valid {
		item.Photo = &models.BlobRef{URL: photoURL.String, Key: photoKey.String}
	}
}
