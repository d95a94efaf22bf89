package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/keepsake/internal/dbx"
	"github.com/dmitrijs2005/keepsake/internal/server/repositories/credentials"
	"github.com/dmitrijs2005/keepsake/internal/server/repositories/memories"
)

// RepositoryManager vends repository implementations bound to a DBTX
// (either the shared *sql.DB or a transaction) and exposes a schema
// migration hook.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Memories(db dbx.DBTX) memories.Repository
	Credentials(db dbx.DBTX) credentials.Repository
}
