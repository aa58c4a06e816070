package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/formlytic/formlytic-api/internal/service"
	"go.uber.org/zap"
)

type FileHandler struct {
	fileService *service.FileService
	logger      *zap.Logger
}

func NewFileHandler(fileService *service.FileService, logger *zap.Logger) *FileHandler {
	return &FileHandler{
		fileService: fileService,
		logger:      logger,
	}
}

// ListByForm godoc
// @Summary List uploaded files of a form
// @Tags Files
// @Produce json
// @Param id path string true "Form ID"
// @Success 200 {array} domain.FileDTO
// @Failure 404 {object} domain.ErrorResponse "Form not found"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /forms/{id}/files [get]
func (h *FileHandler) ListByForm(w http.ResponseWriter, r *http.Request) {
	formID, ok := parseUUIDParam(w, r, "id", "form")
	if !ok {
		return
	}

	files, err := h.fileService.ListByForm(r.Context(), formID)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to list files")
		return
	}

	respondJSON(w, http.StatusOK, files)
}

// Download godoc
// @Summary Download file
// @Tags Files
// @Produce application/octet-stream
// @Param id path string true "File ID"
// @Success 200
// @Failure 404 {object} domain.ErrorResponse "File not found"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /files/{id}/download [get]
func (h *FileHandler) Download(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id", "file")
	if !ok {
		return
	}

	download, err := h.fileService.Download(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to download file")
		return
	}
	defer download.Body.Close()

	w.Header().Set("Content-Disposition", contentDisposition(download.File.Filename))
	w.Header().Set("Content-Type", download.File.ContentType)
	if download.File.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(download.File.Size, 10))
	}
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, download.Body); err != nil {
		h.logger.Warn("file download interrupted", zap.Error(err), zap.String("file_id", id.String()))
	}
}

// Delete godoc
// @Summary Delete file
// @Tags Files
// @Param id path string true "File ID"
// @Success 204
// @Failure 404 {object} domain.ErrorResponse "File not found"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /files/{id} [delete]
func (h *FileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id", "file")
	if !ok {
		return
	}

	if err := h.fileService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err, "Failed to delete file")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
