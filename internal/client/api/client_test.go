package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/keepsake/internal/common"
)

func writeTempFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestClient_SetPassword(t *testing.T) {
	var gotBody map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/set-password", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(map[string]string{"message": "Password set successfully"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	require.NoError(t, c.SetPassword(context.Background(), "forever"))
	assert.Equal(t, "forever", gotBody["password"])
}

func TestClient_SetPassword_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "Password is required"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	err := c.SetPassword(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Password is required")
}

func TestClient_VerifyPassword(t *testing.T) {
	t.Run("valid with token", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/api/verify-password":
				json.NewEncoder(w).Encode(VerifyResult{Valid: true, Role: "admin", Token: "tok-123"})
			case "/api/recordings":
				// the remembered token must be attached to later requests
				assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
				json.NewEncoder(w).Encode([]Recording{})
			default:
				t.Errorf("unexpected path %s", r.URL.Path)
			}
		}))
		defer srv.Close()

		c := NewClient(srv.URL)

		result, err := c.VerifyPassword(context.Background(), "hunter2")
		require.NoError(t, err)
		assert.True(t, result.Valid)
		assert.Equal(t, "admin", result.Role)

		_, err = c.List(context.Background())
		require.NoError(t, err)
	})

	t.Run("password not set", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"error": "Password not set"})
		}))
		defer srv.Close()

		c := NewClient(srv.URL)
		_, err := c.VerifyPassword(context.Background(), "anything")
		assert.ErrorIs(t, err, common.ErrorNotConfigured)
	})

	t.Run("denied", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(VerifyResult{Valid: false})
		}))
		defer srv.Close()

		c := NewClient(srv.URL)
		result, err := c.VerifyPassword(context.Background(), "wrong")
		require.NoError(t, err)
		assert.False(t, result.Valid)
		assert.Empty(t, result.Token)
	})
}

func TestClient_Upload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/recordings", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "first dance", r.FormValue("title"))
		assert.Equal(t, "our song", r.FormValue("description"))
		assert.Equal(t, "2", r.FormValue("order"))

		audio, header, err := r.FormFile("audio")
		require.NoError(t, err)
		defer audio.Close()
		assert.Equal(t, "song.mp3", header.Filename)
		assert.Equal(t, "audio/mpeg", header.Header.Get("Content-Type"))

		_, _, err = r.FormFile("photo")
		assert.ErrorIs(t, err, http.ErrMissingFile)

		json.NewEncoder(w).Encode(Recording{ID: "abc", Title: "first dance", AudioURL: "http://blobs/audio/1", Order: 2})
	}))
	defer srv.Close()

	audioPath := writeTempFile(t, "song.mp3", "riff")

	c := NewClient(srv.URL)
	recording, err := c.Upload(context.Background(), &UploadArgs{
		Title:       "first dance",
		Description: "our song",
		Order:       2,
		AudioPath:   audioPath,
	})
	require.NoError(t, err)
	assert.Equal(t, "abc", recording.ID)
	assert.Equal(t, int64(2), recording.Order)
}

func TestClient_Upload_WithPhoto(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))

		photo, header, err := r.FormFile("photo")
		require.NoError(t, err)
		defer photo.Close()
		assert.Equal(t, "sunset.jpg", header.Filename)
		assert.Equal(t, "image/jpeg", header.Header.Get("Content-Type"))

		json.NewEncoder(w).Encode(Recording{ID: "abc"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Upload(context.Background(), &UploadArgs{
		Title:     "beach day",
		AudioPath: writeTempFile(t, "waves.mp3", "waves"),
		PhotoPath: writeTempFile(t, "sunset.jpg", "pixels"),
	})
	require.NoError(t, err)
}

func TestClient_Upload_MissingAudioFile(t *testing.T) {
	c := NewClient("http://127.0.0.1:0")
	_, err := c.Upload(context.Background(), &UploadArgs{
		Title:     "beach day",
		AudioPath: filepath.Join(t.TempDir(), "missing.mp3"),
	})
	assert.Error(t, err)
}

func TestClient_Delete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/api/recordings/abc", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{"message": "Recording deleted"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	require.NoError(t, c.Delete(context.Background(), "abc"))
}

func TestClient_List(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]Recording{
			{ID: "a", Order: 0},
			{ID: "b", Order: 1},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	recordings, err := c.List(context.Background())
	require.NoError(t, err)
	require.Len(t, recordings, 2)
	assert.Equal(t, "a", recordings[0].ID)
}
