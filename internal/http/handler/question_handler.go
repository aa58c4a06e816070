package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/formlytic/formlytic-api/internal/domain"
	"github.com/formlytic/formlytic-api/internal/service"
	"go.uber.org/zap"
)

// maxQuestionsPerForm bounds a full replace
const maxQuestionsPerForm = 500

type QuestionHandler struct {
	questionService *service.QuestionService
	logger          *zap.Logger
}

func NewQuestionHandler(questionService *service.QuestionService, logger *zap.Logger) *QuestionHandler {
	return &QuestionHandler{
		questionService: questionService,
		logger:          logger,
	}
}

// List godoc
// @Summary List questions
// @Tags Questions
// @Produce json
// @Param id path string true "Form ID"
// @Success 200 {array} domain.QuestionDTO
// @Failure 404 {object} domain.ErrorResponse "Form not found"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /forms/{id}/questions [get]
func (h *QuestionHandler) List(w http.ResponseWriter, r *http.Request) {
	formID, ok := parseUUIDParam(w, r, "id", "form")
	if !ok {
		return
	}

	questions, err := h.questionService.List(r.Context(), formID)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to list questions")
		return
	}

	respondJSON(w, http.StatusOK, questions)
}

// Create godoc
// @Summary Add question
// @Description Adds one question. An order of 0 appends it after the existing questions.
// @Tags Questions
// @Accept json
// @Produce json
// @Param id path string true "Form ID"
// @Param request body domain.QuestionRequest true "Question"
// @Success 201 {object} domain.QuestionDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.ErrorResponse "Form not found"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /forms/{id}/questions [post]
func (h *QuestionHandler) Create(w http.ResponseWriter, r *http.Request) {
	formID, ok := parseUUIDParam(w, r, "id", "form")
	if !ok {
		return
	}

	var req domain.QuestionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	question, err := h.questionService.Add(r.Context(), formID, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to create question")
		return
	}

	respondJSON(w, http.StatusCreated, question)
}

// Replace godoc
// @Summary Replace all questions
// @Description Replaces the complete ordered question list in one transaction. Order is the array index.
// @Tags Questions
// @Accept json
// @Produce json
// @Param id path string true "Form ID"
// @Param request body []domain.QuestionRequest true "Ordered questions"
// @Success 200 {array} domain.QuestionDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.ErrorResponse "Form not found"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /forms/{id}/questions [put]
func (h *QuestionHandler) Replace(w http.ResponseWriter, r *http.Request) {
	formID, ok := parseUUIDParam(w, r, "id", "form")
	if !ok {
		return
	}

	var reqs []domain.QuestionRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&reqs); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: expected an array of questions")
		return
	}
	if len(reqs) > maxQuestionsPerForm {
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("A form can have at most %d questions", maxQuestionsPerForm))
		return
	}
	for i := range reqs {
		if err := validate.Struct(&reqs[i]); err != nil {
			respondValidationError(w, err)
			return
		}
	}

	questions, err := h.questionService.Replace(r.Context(), formID, reqs)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to replace questions")
		return
	}

	respondJSON(w, http.StatusOK, questions)
}
