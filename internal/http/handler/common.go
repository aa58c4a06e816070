package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/formlytic/formlytic-api/internal/domain"
	"github.com/formlytic/formlytic-api/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var validate = validator.New()

// maxJSONBodyBytes bounds JSON request bodies
const maxJSONBodyBytes = 1 << 20

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// respondValidationError sends a standardized validation error response with specific field messages
func respondValidationError(w http.ResponseWriter, err error) {
	fields := make(map[string]string)
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			fields[toJSONFieldName(fe.Field())] = formatValidationError(fe)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(domain.APIError{
		Type:   domain.ErrorTypeValidation,
		Title:  "Validation Error",
		Status: http.StatusBadRequest,
		Detail: "One or more fields failed validation",
		Errors: fields,
	})
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", toJSONFieldName(fe.Field()))
	case "email":
		return "Must be a valid email address"
	case "max":
		return fmt.Sprintf("Must be at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("Must be at least %s characters", fe.Param())
	case "len":
		return fmt.Sprintf("Must be exactly %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("Must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("Must be less than or equal to %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", fe.Param())
	case "url":
		return "Must be a valid URL"
	default:
		return domain.GetValidationMessage(fe.Tag())
	}
}

// toJSONFieldName converts a Go struct field name to its JSON equivalent (camelCase)
func toJSONFieldName(field string) string {
	if len(field) == 0 {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}

// respondWithError sends a {error, message} JSON error response
func respondWithError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, domain.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
	})
}

// MissingAnswersResponse is returned when required questions are unanswered
type MissingAnswersResponse struct {
	Error            string   `json:"error"`
	Message          string   `json:"message"`
	MissingQuestions []string `json:"missingQuestions"`
}

// serviceErrorStatus maps service sentinels to a status and client message.
// ok is false for unexpected errors.
func serviceErrorStatus(err error) (status int, message string, ok bool) {
	switch {
	case errors.Is(err, service.ErrFormNotFound), errors.Is(err, service.ErrFormNotAvailable):
		return http.StatusNotFound, "Form not found", true
	case errors.Is(err, service.ErrQuizNotFound):
		return http.StatusNotFound, "Quiz not found", true
	case errors.Is(err, service.ErrFileNotFound):
		return http.StatusNotFound, "File not found", true
	case errors.Is(err, service.ErrQuestionNotFound):
		return http.StatusNotFound, "Question not found", true
	case errors.Is(err, service.ErrUserNotFound):
		return http.StatusNotFound, "User not found", true
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrAccessCodeTaken),
		errors.Is(err, service.ErrDuplicateSubmission),
		errors.Is(err, service.ErrConflict):
		return http.StatusConflict, err.Error(), true
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, service.ErrInvalidCredentials.Error(), true
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized, "Authentication required", true
	case errors.Is(err, service.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, service.ErrFileTooLarge.Error(), true
	case errors.Is(err, service.ErrQuestionInvalid),
		errors.Is(err, service.ErrInvalidCorrectAnswer),
		errors.Is(err, service.ErrAnswersRequired),
		errors.Is(err, service.ErrMissingRequired),
		errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrActiveSubscription),
		errors.Is(err, service.ErrFileTypeNotAllowed):
		return http.StatusBadRequest, err.Error(), true
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, "Resource not found", true
	}
	return http.StatusInternalServerError, "", false
}

// respondServiceError writes the response for an error returned by a service.
// Unexpected errors are logged and reported as 500 with fallback as message.
func respondServiceError(w http.ResponseWriter, logger *zap.Logger, err error, fallback string) {
	var missing *service.MissingAnswersError
	if errors.As(err, &missing) {
		respondJSON(w, http.StatusBadRequest, MissingAnswersResponse{
			Error:            http.StatusText(http.StatusBadRequest),
			Message:          missing.Error(),
			MissingQuestions: missing.QuestionIDs,
		})
		return
	}

	status, message, ok := serviceErrorStatus(err)
	if !ok {
		logger.Error(fallback, zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, fallback)
		return
	}
	respondWithError(w, status, message)
}

// decodeJSON reads and validates a JSON body. It writes the error response
// itself and returns false when the request should stop.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := validate.Struct(dst); err != nil {
		respondValidationError(w, err)
		return false
	}
	return true
}

// parseUUIDParam parses a UUID route parameter, responding 400 on failure
func parseUUIDParam(w http.ResponseWriter, r *http.Request, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("Invalid %s ID: must be a valid UUID", label))
		return uuid.Nil, false
	}
	return id, true
}

// parseIntQuery parses an integer query parameter with a default value
func parseIntQuery(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	intVal, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return intVal
}

// parseBoolQuery returns nil when the parameter is absent or malformed
func parseBoolQuery(r *http.Request, key string) *bool {
	val := r.URL.Query().Get(key)
	if val == "" {
		return nil
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return nil
	}
	return &b
}
