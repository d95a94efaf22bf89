package services

import (
	"context"
	"database/sql"
	"io"

	"github.com/dmitrijs2005/keepsake/internal/common"
	"github.com/dmitrijs2005/keepsake/internal/dbx"
	"github.com/dmitrijs2005/keepsake/internal/logging"
	"github.com/dmitrijs2005/keepsake/internal/server/blob"
	"github.com/dmitrijs2005/keepsake/internal/server/models"
	"github.com/dmitrijs2005/keepsake/internal/server/repositories/credentials"
	"github.com/dmitrijs2005/keepsake/internal/server/repositories/memories"
)

type nopLogger struct{}

func (nopLogger) Info(ctx context.Context, msg string, args ...any)  {}
func (nopLogger) Warn(ctx context.Context, msg string, args ...any)  {}
func (nopLogger) Error(ctx context.Context, msg string, args ...any) {}
func (nopLogger) With(args ...any) logging.Logger                    { return nopLogger{} }

type fakeCredentialsRepo struct {
	hashed       string
	getErr       error
	deleteAllErr error
	insertErr    error

	deletedAll bool
	inserted   []string
}

func (r *fakeCredentialsRepo) DeleteAll(ctx context.Context) error {
	if r.deleteAllErr != nil {
		return r.deleteAllErr
	}
	r.deletedAll = true
	r.hashed = ""
	return nil
}

func (r *fakeCredentialsRepo) Insert(ctx context.Context, hashedSecret string) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.inserted = append(r.inserted, hashedSecret)
	r.hashed = hashedSecret
	return nil
}

func (r *fakeCredentialsRepo) Get(ctx context.Context) (string, error) {
	if r.getErr != nil {
		return "", r.getErr
	}
	if r.hashed == "" {
		return "", common.ErrorNotFound
	}
	return r.hashed, nil
}

type fakeMemoriesRepo struct {
	createErr error
	deleteErr error

	records map[string]*models.Memory
	created []*models.Memory
	deleted []string
}

func newFakeMemoriesRepo() *fakeMemoriesRepo {
	return &fakeMemoriesRepo{records: make(map[string]*models.Memory)}
}

func (r *fakeMemoriesRepo) Create(ctx context.Context, memory *models.Memory) (*models.Memory, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.created = append(r.created, memory)
	r.records[memory.ID] = memory
	return memory, nil
}

func (r *fakeMemoriesRepo) List(ctx context.Context) ([]*models.Memory, error) {
	result := make([]*models.Memory, 0, len(r.records))
	for _, m := range r.records {
		result = append(result, m)
	}
	return result, nil
}

func (r *fakeMemoriesRepo) GetByID(ctx context.Context, id string) (*models.Memory, error) {
	m, ok := r.records[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return m, nil
}

func (r *fakeMemoriesRepo) DeleteByID(ctx context.Context, id string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	if _, ok := r.records[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.records, id)
	r.deleted = append(r.deleted, id)
	return nil
}

type fakeRepoManager struct {
	memories    *fakeMemoriesRepo
	credentials *fakeCredentialsRepo
}

func (m *fakeRepoManager) RunMigrations(ctx context.Context, db *sql.DB) error { return nil }

func (m *fakeRepoManager) Memories(db dbx.DBTX) memories.Repository { return m.memories }

func (m *fakeRepoManager) Credentials(db dbx.DBTX) credentials.Repository { return m.credentials }

type storedBlob struct {
	key  string
	kind blob.Kind
	data string
}

type removedBlob struct {
	key  string
	kind blob.Kind
}

// fakeGateway records Store and Remove calls in order so tests can assert on
// the exact rollback sequence.
type fakeGateway struct {
	storeErr  map[blob.Kind]error
	removeErr error

	stored  []storedBlob
	removed []removedBlob
	seq     int
}

func (g *fakeGateway) Store(ctx context.Context, r io.Reader, kind blob.Kind, contentType string) (models.BlobRef, error) {
	if err := g.storeErr[kind]; err != nil {
		return models.BlobRef{}, err
	}

	prefix, err := kind.Prefix()
	if err != nil {
		return models.BlobRef{}, err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return models.BlobRef{}, err
	}

	g.seq++
	key := prefix + "/" + contentType
	g.stored = append(g.stored, storedBlob{key: key, kind: kind, data: string(data)})
	return models.BlobRef{URL: "http://blobs.test/" + key, Key: key}, nil
}

func (g *fakeGateway) Remove(ctx context.Context, key string, kind blob.Kind) error {
	g.removed = append(g.removed, removedBlob{key: key, kind: kind})
	return g.removeErr
}
