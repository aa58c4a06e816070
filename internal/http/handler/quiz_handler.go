package handler

import (
	"net/http"
	"strings"

	"github.com/formlytic/formlytic-api/internal/domain"
	"github.com/formlytic/formlytic-api/internal/service"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type QuizHandler struct {
	quizService *service.QuizService
	logger      *zap.Logger
}

func NewQuizHandler(quizService *service.QuizService, logger *zap.Logger) *QuizHandler {
	return &QuizHandler{
		quizService: quizService,
		logger:      logger,
	}
}

// Create godoc
// @Summary Create quiz
// @Description Creates an active quiz. The access code, when given, must be unique.
// @Tags Quizzes
// @Accept json
// @Produce json
// @Param request body domain.CreateQuizRequest true "Quiz details"
// @Success 201 {object} domain.FormDTO
// @Failure 400 {object} domain.APIError
// @Failure 409 {object} domain.ErrorResponse "Access code already in use"
// @Security BearerAuth
// @Router /quizzes [post]
func (h *QuizHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateQuizRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	quiz, err := h.quizService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to create quiz")
		return
	}

	respondJSON(w, http.StatusCreated, quiz)
}

// ListMine godoc
// @Summary List my quizzes
// @Tags Quizzes
// @Produce json
// @Success 200 {array} domain.FormDTO
// @Security BearerAuth
// @Router /quizzes/mine [get]
func (h *QuizHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	quizzes, err := h.quizService.ListMine(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to list quizzes")
		return
	}

	respondJSON(w, http.StatusOK, quizzes)
}

// AddQuestion godoc
// @Summary Add quiz question
// @Description Adds a multiple-choice question. correctAnswer is an option index or the option text.
// @Tags Quizzes
// @Accept json
// @Produce json
// @Param id path string true "Quiz ID"
// @Param request body domain.AddQuizQuestionRequest true "Question"
// @Success 201 {object} domain.QuestionDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.ErrorResponse "Quiz not found"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /quizzes/{id}/questions [post]
func (h *QuizHandler) AddQuestion(w http.ResponseWriter, r *http.Request) {
	quizID, ok := parseUUIDParam(w, r, "id", "quiz")
	if !ok {
		return
	}

	var req domain.AddQuizQuestionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	question, err := h.quizService.AddQuestion(r.Context(), quizID, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to add question")
		return
	}

	respondJSON(w, http.StatusCreated, question)
}

// GetPublic godoc
// @Summary Get quiz for taking
// @Description Looks the quiz up by public ID, then by ID. Correct answers are not included.
// @Tags Public
// @Produce json
// @Param id path string true "Quiz public ID or ID"
// @Success 200 {object} domain.PublicFormDTO
// @Failure 404 {object} domain.ErrorResponse "Quiz not found"
// @Router /public/quizzes/{id} [get]
func (h *QuizHandler) GetPublic(w http.ResponseWriter, r *http.Request) {
	quiz, err := h.quizService.GetPublic(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to get quiz")
		return
	}

	respondJSON(w, http.StatusOK, quiz)
}

// GetByAccessCode godoc
// @Summary Find quiz by access code
// @Tags Public
// @Produce json
// @Param code query string true "Access code"
// @Success 200 {object} domain.PublicFormDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse "Quiz not found"
// @Router /public/quizzes [get]
func (h *QuizHandler) GetByAccessCode(w http.ResponseWriter, r *http.Request) {
	code := strings.TrimSpace(r.URL.Query().Get("code"))
	if code == "" {
		respondWithError(w, http.StatusBadRequest, "code query parameter is required")
		return
	}

	quiz, err := h.quizService.GetByAccessCode(r.Context(), code)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to get quiz")
		return
	}

	respondJSON(w, http.StatusOK, quiz)
}

// Submit godoc
// @Summary Submit quiz answers
// @Description Grades the attempt, stores it and returns the score with per-question results
// @Tags Public
// @Accept json
// @Produce json
// @Param request body domain.QuizSubmitRequest true "Attempt"
// @Success 200 {object} domain.QuizSubmitResult
// @Failure 400 {object} domain.ErrorResponse "Missing formId or answers"
// @Failure 404 {object} domain.ErrorResponse "Quiz not found"
// @Router /quiz/submit [post]
func (h *QuizHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req domain.QuizSubmitRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.quizService.Submit(r.Context(), &req, clientInfo(r))
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to submit quiz")
		return
	}

	respondJSON(w, http.StatusOK, result)
}
