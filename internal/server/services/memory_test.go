package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/keepsake/internal/common"
	"github.com/dmitrijs2005/keepsake/internal/server/blob"
)

func newMemoryService(gw *fakeGateway, repo *fakeMemoriesRepo) *MemoryService {
	rm := &fakeRepoManager{memories: repo, credentials: &fakeCredentialsRepo{}}
	return NewMemoryService(nil, rm, gw, nopLogger{})
}

func TestMemoryService_Upload(t *testing.T) {
	ctx := context.Background()

	t.Run("audio only", func(t *testing.T) {
		gw := &fakeGateway{}
		repo := newFakeMemoriesRepo()
		s := newMemoryService(gw, repo)

		memory, err := s.Upload(ctx, &UploadRequest{
			Title:            "first dance",
			Description:      "our song",
			SortOrder:        3,
			Audio:            strings.NewReader("riff"),
			AudioContentType: "audio/mpeg",
		})
		require.NoError(t, err)

		assert.NotEmpty(t, memory.ID)
		assert.Equal(t, "first dance", memory.Title)
		assert.Equal(t, int64(3), memory.SortOrder)
		assert.NotEmpty(t, memory.Audio.URL)
		assert.NotEmpty(t, memory.Audio.Key)
		assert.Nil(t, memory.Photo)
		assert.False(t, memory.CreatedAt.IsZero())

		require.Len(t, gw.stored, 1)
		assert.Equal(t, blob.KindAudio, gw.stored[0].kind)
		assert.Equal(t, "riff", gw.stored[0].data)
		assert.Empty(t, gw.removed)
		require.Len(t, repo.created, 1)
		assert.Equal(t, memory, repo.created[0])
	})

	t.Run("audio and photo", func(t *testing.T) {
		gw := &fakeGateway{}
		repo := newFakeMemoriesRepo()
		s := newMemoryService(gw, repo)

		memory, err := s.Upload(ctx, &UploadRequest{
			Title:            "beach day",
			Audio:            strings.NewReader("waves"),
			AudioContentType: "audio/mpeg",
			Photo:            strings.NewReader("sunset"),
			PhotoContentType: "image/jpeg",
		})
		require.NoError(t, err)

		require.NotNil(t, memory.Photo)
		assert.NotEmpty(t, memory.Photo.URL)
		assert.NotEmpty(t, memory.Photo.Key)

		require.Len(t, gw.stored, 2)
		assert.Equal(t, blob.KindAudio, gw.stored[0].kind)
		assert.Equal(t, blob.KindImage, gw.stored[1].kind)
		assert.Empty(t, gw.removed)
	})

	t.Run("missing title", func(t *testing.T) {
		gw := &fakeGateway{}
		repo := newFakeMemoriesRepo()
		s := newMemoryService(gw, repo)

		_, err := s.Upload(ctx, &UploadRequest{
			Title: "   ",
			Audio: strings.NewReader("riff"),
		})
		assert.ErrorIs(t, err, common.ErrorValidation)
		assert.Empty(t, gw.stored)
	})

	t.Run("missing audio", func(t *testing.T) {
		gw := &fakeGateway{}
		repo := newFakeMemoriesRepo()
		s := newMemoryService(gw, repo)

		_, err := s.Upload(ctx, &UploadRequest{Title: "no sound"})
		assert.ErrorIs(t, err, common.ErrorValidation)
		assert.Empty(t, gw.stored)
	})

	t.Run("photo store fails, audio compensated", func(t *testing.T) {
		gw := &fakeGateway{storeErr: map[blob.Kind]error{blob.KindImage: common.ErrStorageUnavailable}}
		repo := newFakeMemoriesRepo()
		s := newMemoryService(gw, repo)

		_, err := s.Upload(ctx, &UploadRequest{
			Title:            "beach day",
			Audio:            strings.NewReader("waves"),
			AudioContentType: "audio/mpeg",
			Photo:            strings.NewReader("sunset"),
			PhotoContentType: "image/jpeg",
		})
		assert.ErrorIs(t, err, common.ErrStorageUnavailable)

		require.Len(t, gw.stored, 1)
		require.Len(t, gw.removed, 1)
		assert.Equal(t, gw.stored[0].key, gw.removed[0].key)
		assert.Equal(t, blob.KindAudio, gw.removed[0].kind)
		assert.Empty(t, repo.created)
	})

	t.Run("record create fails, blobs compensated LIFO", func(t *testing.T) {
		gw := &fakeGateway{}
		repo := newFakeMemoriesRepo()
		repo.createErr = errors.New("db error")
		s := newMemoryService(gw, repo)

		_, err := s.Upload(ctx, &UploadRequest{
			Title:            "beach day",
			Audio:            strings.NewReader("waves"),
			AudioContentType: "audio/mpeg",
			Photo:            strings.NewReader("sunset"),
			PhotoContentType: "image/jpeg",
		})
		assert.ErrorIs(t, err, common.ErrPersistenceFailed)

		require.Len(t, gw.stored, 2)
		require.Len(t, gw.removed, 2)
		// reverse of storage order: photo first, then audio
		assert.Equal(t, gw.stored[1].key, gw.removed[0].key)
		assert.Equal(t, gw.stored[0].key, gw.removed[1].key)
	})

	t.Run("audio store fails, nothing to compensate", func(t *testing.T) {
		gw := &fakeGateway{storeErr: map[blob.Kind]error{blob.KindAudio: common.ErrStorageUnavailable}}
		repo := newFakeMemoriesRepo()
		s := newMemoryService(gw, repo)

		_, err := s.Upload(ctx, &UploadRequest{
			Title:            "beach day",
			Audio:            strings.NewReader("waves"),
			AudioContentType: "audio/mpeg",
		})
		assert.ErrorIs(t, err, common.ErrStorageUnavailable)
		assert.Empty(t, gw.removed)
		assert.Empty(t, repo.created)
	})
}

func TestMemoryService_Delete(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T, s *MemoryService, withPhoto bool) string {
		t.Helper()
		req := &UploadRequest{
			Title:            "to be deleted",
			Audio:            strings.NewReader("waves"),
			AudioContentType: "audio/mpeg",
		}
		if withPhoto {
			req.Photo = strings.NewReader("sunset")
			req.PhotoContentType = "image/jpeg"
		}
		memory, err := s.Upload(ctx, req)
		require.NoError(t, err)
		return memory.ID
	}

	t.Run("removes blobs and record", func(t *testing.T) {
		gw := &fakeGateway{}
		repo := newFakeMemoriesRepo()
		s := newMemoryService(gw, repo)
		id := seed(t, s, true)

		require.NoError(t, s.Delete(ctx, id))

		require.Len(t, gw.removed, 2)
		assert.Equal(t, blob.KindAudio, gw.removed[0].kind)
		assert.Equal(t, blob.KindImage, gw.removed[1].kind)
		assert.Equal(t, []string{id}, repo.deleted)
	})

	t.Run("skips photo removal when absent", func(t *testing.T) {
		gw := &fakeGateway{}
		repo := newFakeMemoriesRepo()
		s := newMemoryService(gw, repo)
		id := seed(t, s, false)

		require.NoError(t, s.Delete(ctx, id))
		require.Len(t, gw.removed, 1)
		assert.Equal(t, blob.KindAudio, gw.removed[0].kind)
	})

	t.Run("unknown id", func(t *testing.T) {
		gw := &fakeGateway{}
		repo := newFakeMemoriesRepo()
		s := newMemoryService(gw, repo)

		err := s.Delete(ctx, "missing")
		assert.ErrorIs(t, err, common.ErrorNotFound)
		assert.Empty(t, gw.removed)
	})

	t.Run("blob removal failure does not block record delete", func(t *testing.T) {
		gw := &fakeGateway{}
		repo := newFakeMemoriesRepo()
		s := newMemoryService(gw, repo)
		id := seed(t, s, true)

		gw.removeErr = common.ErrStorageUnavailable

		require.NoError(t, s.Delete(ctx, id))
		assert.Equal(t, []string{id}, repo.deleted)
	})
}

func TestMemoryService_List(t *testing.T) {
	gw := &fakeGateway{}
	repo := newFakeMemoriesRepo()
	s := newMemoryService(gw, repo)

	_, err := s.Upload(context.Background(), &UploadRequest{
		Title:            "one",
		Audio:            strings.NewReader("a"),
		AudioContentType: "audio/mpeg",
	})
	require.NoError(t, err)

	result, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, result, 1)
}
