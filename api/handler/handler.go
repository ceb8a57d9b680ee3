package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/dnascimb/video-upload-service/internal/entity"
	"github.com/dnascimb/video-upload-service/internal/repository"
	"github.com/dnascimb/video-upload-service/internal/service"
	"github.com/dnascimb/video-upload-service/internal/storage"
)

// UploadService is what the upload endpoint needs from the pipeline.
type UploadService interface {
	Upload(ctx context.Context, filename string, r io.Reader) (*entity.Video, error)
}

type Handler struct {
	Uploads UploadService
	Videos  repository.Videos
	Log     *zap.Logger
}

// Upload handles POST /videos with a multipart "file" field.
func (h *Handler) Upload(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return h.fail(c, fmt.Errorf("%w: missing multipart file field", service.ErrInvalidInput))
	}

	src, err := file.Open()
	if err != nil {
		return h.fail(c, fmt.Errorf("open multipart file: %w", err))
	}
	defer src.Close()

	video, err := h.Uploads.Upload(c.Request().Context(), file.Filename, src)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusCreated, video)
}

// GetVideo handles GET /videos/:id.
func (h *Handler) GetVideo(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return h.fail(c, fmt.Errorf("%w: video id must be numeric", service.ErrInvalidInput))
	}

	video, err := h.Videos.GetByID(c.Request().Context(), uint(id))
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, video)
}

// fail maps a classified error to its HTTP status and a stable, generic
// message. The underlying detail goes to the logger together with the
// request id; it never appears in the response body.
func (h *Handler) fail(c echo.Context, err error) error {
	status, msg := classifyStatus(err)
	reqID := c.Response().Header().Get(echo.HeaderXRequestID)

	if status >= http.StatusInternalServerError {
		h.Log.Error("request failed",
			zap.Int("status", status),
			zap.String("requestId", reqID),
			zap.Error(err))
	} else {
		h.Log.Warn("request rejected",
			zap.Int("status", status),
			zap.String("requestId", reqID),
			zap.Error(err))
	}

	return c.JSON(status, map[string]string{
		"message":   msg,
		"requestId": reqID,
	})
}

func classifyStatus(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, storage.ErrInvalidKey):
		return http.StatusBadRequest, "invalid upload request"
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, "Video not found"
	case errors.Is(err, storage.ErrUnauthorized):
		return http.StatusBadGateway, "storage backend rejected credentials"
	case errors.Is(err, storage.ErrUnreachable):
		return http.StatusServiceUnavailable, "storage backend unavailable"
	case errors.Is(err, storage.ErrWriteFailed):
		return http.StatusInternalServerError, "failed to store upload"
	case errors.Is(err, repository.ErrDatabase):
		return http.StatusInternalServerError, "Database error occurred"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}
