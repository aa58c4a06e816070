package handler

import (
	"errors"
	"fmt"
	"mime"
	"net/http"

	"github.com/formlytic/formlytic-api/internal/domain"
	"github.com/formlytic/formlytic-api/internal/http/middleware"
	"github.com/formlytic/formlytic-api/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// multipartOverhead is the allowance for multipart framing and form fields
const multipartOverhead = 1 << 20

// ResponseHandler serves the public collection endpoints and the creator's response list
type ResponseHandler struct {
	responseService *service.ResponseService
	fileService     *service.FileService
	logger          *zap.Logger
}

func NewResponseHandler(responseService *service.ResponseService, fileService *service.FileService, logger *zap.Logger) *ResponseHandler {
	return &ResponseHandler{
		responseService: responseService,
		fileService:     fileService,
		logger:          logger,
	}
}

func clientInfo(r *http.Request) service.ClientInfo {
	return service.ClientInfo{
		IPAddress: middleware.ClientIP(r),
		UserAgent: r.UserAgent(),
	}
}

// GetPublicForm godoc
// @Summary Get a published form
// @Description Returns a published, active form with its ordered questions. Correct answers are never included.
// @Tags Public
// @Produce json
// @Param publicId path string true "Public form ID"
// @Success 200 {object} domain.PublicFormDTO
// @Failure 404 {object} domain.ErrorResponse "Form not found"
// @Router /public/forms/{publicId} [get]
func (h *ResponseHandler) GetPublicForm(w http.ResponseWriter, r *http.Request) {
	form, err := h.responseService.GetPublicForm(r.Context(), chi.URLParam(r, "publicId"))
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to get form")
		return
	}

	respondJSON(w, http.StatusOK, form)
}

// Submit godoc
// @Summary Submit a response
// @Tags Public
// @Accept json
// @Produce json
// @Param publicId path string true "Public form ID"
// @Param request body domain.SubmitResponseRequest true "Answers keyed by question ID"
// @Success 201 {object} domain.SubmitResponseResult
// @Failure 400 {object} MissingAnswersResponse "Required questions unanswered"
// @Failure 404 {object} domain.ErrorResponse "Form not found"
// @Failure 409 {object} domain.ErrorResponse "Already submitted"
// @Router /public/forms/{publicId}/responses [post]
func (h *ResponseHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req domain.SubmitResponseRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.responseService.Submit(r.Context(), chi.URLParam(r, "publicId"), &req, clientInfo(r))
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to submit response")
		return
	}

	respondJSON(w, http.StatusCreated, result)
}

// UploadFile godoc
// @Summary Upload an answer attachment
// @Description Stores a file for a file_upload question. Put the returned id in the answers of the submission.
// @Tags Public
// @Accept multipart/form-data
// @Produce json
// @Param publicId path string true "Public form ID"
// @Param file formData file true "File to upload"
// @Param questionId formData string false "file_upload question ID"
// @Success 201 {object} domain.FileDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse "Form not found"
// @Failure 413 {object} domain.ErrorResponse "File too large"
// @Router /public/forms/{publicId}/files [post]
func (h *ResponseHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	maxBytes := h.fileService.MaxBytes()
	if maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes+multipartOverhead)
	}

	if err := r.ParseMultipartForm(8 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondWithError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("File too large: maximum size is %dMB", maxBytes/(1024*1024)))
			return
		}
		respondWithError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid file upload: file field is required")
		return
	}
	defer file.Close()

	var questionID *uuid.UUID
	if qid := r.FormValue("questionId"); qid != "" {
		id, err := uuid.Parse(qid)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid questionId: must be a valid UUID")
			return
		}
		questionID = &id
	}

	fileDTO, err := h.fileService.Upload(r.Context(), chi.URLParam(r, "publicId"), questionID,
		header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to upload file")
		return
	}

	respondJSON(w, http.StatusCreated, fileDTO)
}

// List godoc
// @Summary List responses
// @Tags Responses
// @Produce json
// @Param id path string true "Form ID"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page" default(20)
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.ResponseDTO}
// @Failure 404 {object} domain.ErrorResponse "Form not found"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /forms/{id}/responses [get]
func (h *ResponseHandler) List(w http.ResponseWriter, r *http.Request) {
	formID, ok := parseUUIDParam(w, r, "id", "form")
	if !ok {
		return
	}

	result, err := h.responseService.List(r.Context(), formID, parseIntQuery(r, "page", 1), parseIntQuery(r, "pageSize", 20))
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to list responses")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// contentDisposition builds an attachment header value with a safe filename
func contentDisposition(filename string) string {
	return mime.FormatMediaType("attachment", map[string]string{"filename": filename})
}
