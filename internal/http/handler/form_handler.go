package handler

import (
	"net/http"

	"github.com/formlytic/formlytic-api/internal/domain"
	"github.com/formlytic/formlytic-api/internal/repository"
	"github.com/formlytic/formlytic-api/internal/service"
	"go.uber.org/zap"
)

type FormHandler struct {
	formService *service.FormService
	logger      *zap.Logger
}

func NewFormHandler(formService *service.FormService, logger *zap.Logger) *FormHandler {
	return &FormHandler{
		formService: formService,
		logger:      logger,
	}
}

// List godoc
// @Summary List forms
// @Description Lists the caller's forms with question and response counts, most recently updated first
// @Tags Forms
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(20)
// @Param search query string false "Search in title"
// @Param isQuiz query bool false "Only quizzes (true) or only plain forms (false)"
// @Param sortBy query string false "Sort field (createdAt, updatedAt, title)"
// @Param sortOrder query string false "Sort order (asc, desc)"
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.FormDTO}
// @Failure 401 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /forms [get]
func (h *FormHandler) List(w http.ResponseWriter, r *http.Request) {
	page := parseIntQuery(r, "page", 1)
	pageSize := parseIntQuery(r, "pageSize", 20)

	filter := repository.FormFilter{
		Search: r.URL.Query().Get("search"),
		IsQuiz: parseBoolQuery(r, "isQuiz"),
	}

	sort := repository.DefaultSortConfig()
	if sortBy := r.URL.Query().Get("sortBy"); sortBy != "" {
		sort.Field = sortBy
	}
	if order := r.URL.Query().Get("sortOrder"); order != "" {
		sort.Order = repository.ParseSortOrder(order)
	}

	result, err := h.formService.List(r.Context(), page, pageSize, filter, sort)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to list forms")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Create godoc
// @Summary Create form
// @Tags Forms
// @Accept json
// @Produce json
// @Param request body domain.CreateFormRequest true "Form details"
// @Success 201 {object} domain.FormDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /forms [post]
func (h *FormHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateFormRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	form, err := h.formService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to create form")
		return
	}

	w.Header().Set("Location", "/api/v1/forms/"+form.ID.String())
	respondJSON(w, http.StatusCreated, form)
}

// GetByID godoc
// @Summary Get form
// @Description Returns the form with its ordered questions and response count
// @Tags Forms
// @Produce json
// @Param id path string true "Form ID"
// @Success 200 {object} domain.FormWithQuestionsDTO
// @Failure 404 {object} domain.ErrorResponse "Form not found"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /forms/{id} [get]
func (h *FormHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id", "form")
	if !ok {
		return
	}

	form, err := h.formService.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to get form")
		return
	}

	respondJSON(w, http.StatusOK, form)
}

// Update godoc
// @Summary Update form
// @Description Applies a partial update; omitted fields are unchanged
// @Tags Forms
// @Accept json
// @Produce json
// @Param id path string true "Form ID"
// @Param request body domain.UpdateFormRequest true "Fields to change"
// @Success 200 {object} domain.FormDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.ErrorResponse "Form not found"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /forms/{id} [patch]
func (h *FormHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id", "form")
	if !ok {
		return
	}

	var req domain.UpdateFormRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	form, err := h.formService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to update form")
		return
	}

	respondJSON(w, http.StatusOK, form)
}

// Delete godoc
// @Summary Delete form
// @Description Deletes the form with its questions, responses and uploaded files
// @Tags Forms
// @Param id path string true "Form ID"
// @Success 204
// @Failure 404 {object} domain.ErrorResponse "Form not found"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /forms/{id} [delete]
func (h *FormHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id", "form")
	if !ok {
		return
	}

	if err := h.formService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err, "Failed to delete form")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
