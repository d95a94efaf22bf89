package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dmitrijs2005/keepsake/internal/common"
	"github.com/dmitrijs2005/keepsake/internal/server/models"
	"github.com/dmitrijs2005/keepsake/internal/server/services"
)

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type passwordRequest struct {
	Password string `json:"password"`
}

type verifyPasswordResponse struct {
	Valid bool   `json:"valid"`
	Role  string `json:"role,omitempty"`
	Token string `json:"token,omitempty"`
}

type valentineRequest struct {
	Response string `json:"response"`
}

type memoryResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	AudioURL    string    `json:"audioUrl"`
	PhotoURL    string    `json:"photoUrl,omitempty"`
	Order       int64     `json:"order"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toMemoryResponse(m *models.Memory) memoryResponse {
	resp := memoryResponse{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		AudioURL:    m.Audio.URL,
		Order:       m.SortOrder,
		CreatedAt:   m.CreatedAt,
	}
	if m.Photo != nil {
		resp.PhotoURL = m.Photo.URL
	}
	return resp
}

func (s *Server) handleSetPassword(e echo.Context) error {
	var req passwordRequest
	if err := e.Bind(&req); err != nil {
		return e.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	if err := s.credentials.SetSecret(e.Request().Context(), req.Password); err != nil {
		if errors.Is(err, common.ErrorValidation) {
			return e.JSON(http.StatusBadRequest, errorResponse{Error: "Password is required"})
		}
		return e.JSON(http.StatusInternalServerError, errorResponse{Error: "Error setting password"})
	}

	return e.JSON(http.StatusOK, messageResponse{Message: "Password set successfully"})
}

func (s *Server) handleVerifyPassword(e echo.Context) error {
	var req passwordRequest
	if err := e.Bind(&req); err != nil {
		return e.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	role, err := s.access.Verify(e.Request().Context(), req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorNotConfigured):
			return e.JSON(http.StatusNotFound, errorResponse{Error: "Password not set"})
		case errors.Is(err, common.ErrorUnauthorized):
			return e.JSON(http.StatusOK, verifyPasswordResponse{Valid: false})
		default:
			return e.JSON(http.StatusInternalServerError, errorResponse{Error: "Error verifying password"})
		}
	}

	resp := verifyPasswordResponse{Valid: true, Role: string(role)}

	token, err := s.issuer.Issue(role)
	if err != nil {
		return e.JSON(http.StatusInternalServerError, errorResponse{Error: "Error issuing session token"})
	}
	resp.Token = token

	return e.JSON(http.StatusOK, resp)
}

func (s *Server) handleCreateMemory(e echo.Context) error {
	ctx := e.Request().Context()

	var order int64
	if v := e.FormValue("order"); v != "" {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return e.JSON(http.StatusBadRequest, errorResponse{Error: "order must be an integer"})
		}
		order = parsed
	}

	req := &services.UploadRequest{
		Title:       e.FormValue("title"),
		Description: e.FormValue("description"),
		SortOrder:   order,
	}

	audio, err := e.FormFile("audio")
	if err != nil {
		return e.JSON(http.StatusBadRequest, errorResponse{Error: "Audio file is required"})
	}
	audioFile, err := audio.Open()
	if err != nil {
		return e.JSON(http.StatusInternalServerError, errorResponse{Error: "Error reading audio file"})
	}
	defer audioFile.Close()
	req.Audio = audioFile
	req.AudioContentType = audio.Header.Get("Content-Type")

	photo, err := e.FormFile("photo")
	if err == nil {
		photoFile, err := photo.Open()
		if err != nil {
			return e.JSON(http.StatusInternalServerError, errorResponse{Error: "Error reading photo file"})
		}
		defer photoFile.Close()
		req.Photo = photoFile
		req.PhotoContentType = photo.Header.Get("Content-Type")
	}

	memory, err := s.memories.Upload(ctx, req)
	if err != nil {
		if errors.Is(err, common.ErrorValidation) {
			return e.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		}
		s.logger.Error(ctx, "error uploading recording", "error", err.Error())
		return e.JSON(http.StatusInternalServerError, errorResponse{Error: "Error uploading recording"})
	}

	return e.JSON(http.StatusOK, toMemoryResponse(memory))
}

func (s *Server) handleListMemories(e echo.Context) error {
	result, err := s.memories.List(e.Request().Context())
	if err != nil {
		return e.JSON(http.StatusInternalServerError, errorResponse{Error: "Error fetching recordings"})
	}

	resp := make([]memoryResponse, 0, len(result))
	for _, m := range result {
		resp = append(resp, toMemoryResponse(m))
	}

	return e.JSON(http.StatusOK, resp)
}

func (s *Server) handleDeleteMemory(e echo.Context) error {
	ctx := e.Request().Context()

	err := s.memories.Delete(ctx, e.Param("id"))
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		s.logger.Error(ctx, "error deleting recording", "error", err.Error())
		return e.JSON(http.StatusInternalServerError, errorResponse{Error: "Error deleting recording"})
	}

	// unknown ids are treated as already deleted
	return e.JSON(http.StatusOK, messageResponse{Message: "Recording deleted"})
}

func (s *Server) handleValentineResponse(e echo.Context) error {
	var req valentineRequest
	if err := e.Bind(&req); err != nil {
		return e.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	s.logger.Info(e.Request().Context(), "valentine response received", "response", req.Response)

	return e.JSON(http.StatusOK, messageResponse{Message: "Response recorded!"})
}
