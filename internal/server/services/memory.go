package services

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/keepsake/internal/common"
	"github.com/dmitrijs2005/keepsake/internal/logging"
	"github.com/dmitrijs2005/keepsake/internal/server/blob"
	"github.com/dmitrijs2005/keepsake/internal/server/models"
	"github.com/dmitrijs2005/keepsake/internal/server/repositories/repomanager"
)

// test seams
var (
	timeNow  = time.Now
	newRecID = func() string { return uuid.New().String() }
)

// UploadRequest carries the metadata and media streams for one upload.
// Audio is required; Photo may be nil.
type UploadRequest struct {
	Title            string
	Description      string
	SortOrder        int64
	Audio            io.Reader
	AudioContentType string
	Photo            io.Reader
	PhotoContentType string
}

// MemoryService runs the upload and delete lifecycles that span the object
// store and the database.
type MemoryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	gateway     blob.Gateway
	logger      logging.Logger
}

func NewMemoryService(db *sql.DB, rm repomanager.RepositoryManager, gateway blob.Gateway, logger logging.Logger) *MemoryService {
	return &MemoryService{db: db, repomanager: rm, gateway: gateway, logger: logger}
}

// compensation is one reverse step of the upload saga. Compensations run
// best-effort: a failure is logged, never escalated, so a failed cleanup can
// at worst leave an orphaned blob.
type compensation struct {
	name string
	run  func(ctx context.Context)
}

func (s *MemoryService) compensate(ctx context.Context, steps []compensation) {
	for i := len(steps) - 1; i >= 0; i-- {
		s.logger.Warn(ctx, "rolling back upload step", "step", steps[i].name)
		steps[i].run(ctx)
	}
}

func (s *MemoryService) removeBlob(ctx context.Context, key string, kind blob.Kind) {
	if err := s.gateway.Remove(ctx, key, kind); err != nil {
		s.logger.Warn(ctx, "error removing blob", "key", key, "kind", string(kind), "error", err.Error())
	}
}

// Upload runs the multi-step upload as a saga: store audio, store the
// optional photo, then insert the record. Each completed step registers a
// compensation; on failure the completed compensations run in LIFO order and
// the step's error is returned unchanged. On success no external blob is
// orphaned and exactly one record exists.
func (s *MemoryService) Upload(ctx context.Context, req *UploadRequest) (*models.Memory, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", common.ErrorValidation)
	}
	if req.Audio == nil {
		return nil, fmt.Errorf("%w: audio file is required", common.ErrorValidation)
	}

	var done []compensation

	audioRef, err := s.gateway.Store(ctx, req.Audio, blob.KindAudio, req.AudioContentType)
	if err != nil {
		return nil, err
	}
	done = append(done, compensation{
		name: "store audio",
		run:  func(ctx context.Context) { s.removeBlob(ctx, audioRef.Key, blob.KindAudio) },
	})

	memory := &models.Memory{
		ID:          newRecID(),
		Title:       req.Title,
		Description: req.Description,
		Audio:       audioRef,
		SortOrder:   req.SortOrder,
		CreatedAt:   timeNow().UTC(),
	}

	if req.Photo != nil {
		photoRef, err := s.gateway.Store(ctx, req.Photo, blob.KindImage, req.PhotoContentType)
		if err != nil {
			s.compensate(ctx, done)
			return nil, err
		}
		done = append(done, compensation{
			name: "store photo",
			run:  func(ctx context.Context) { s.removeBlob(ctx, photoRef.Key, blob.KindImage) },
		})
		memory.Photo = &photoRef
	}

	if _, err := s.repomanager.Memories(s.db).Create(ctx, memory); err != nil {
		s.compensate(ctx, done)
		return nil, fmt.Errorf("%w: %v", common.ErrPersistenceFailed, err)
	}

	return memory, nil
}

// List returns all memories in display order.
func (s *MemoryService) List(ctx context.Context) ([]*models.Memory, error) {
	return s.repomanager.Memories(s.db).List(ctx)
}

// Delete removes the record's blobs and then the record itself. Blob removal
// is best-effort: a storage failure is logged and the record is deleted
// anyway, because an orphaned blob is recoverable while a dangling record
// pointing at deleted media is not.
func (s *MemoryService) Delete(ctx context.Context, id string) error {
	repo := s.repomanager.Memories(s.db)

	memory, err := repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	s.removeBlob(ctx, memory.Audio.Key, blob.KindAudio)
	if memory.Photo != nil {
		s.removeBlob(ctx, memory.Photo.Key, blob.KindImage)
	}

	return repo.DeleteByID(ctx, id)
}
