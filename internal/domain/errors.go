package domain

// APIError is an RFC 7807 style problem document used for validation failures
type APIError struct {
	Type   string            `json:"type"`
	Title  string            `json:"title"`
	Status int               `json:"status"`
	Detail string            `json:"detail,omitempty"`
	Errors map[string]string `json:"errors,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return e.Title
}

// ValidationMessages maps validator tags to user-facing messages
var ValidationMessages = map[string]string{
	"required": "This field is required",
	"email":    "Must be a valid email address",
	"max":      "Exceeds maximum length",
	"min":      "Below minimum length",
	"len":      "Must be exactly the specified length",
	"gte":      "Must be greater than or equal to minimum value",
	"lte":      "Must be less than or equal to maximum value",
	"oneof":    "Must be one of the allowed values",
	"url":      "Must be a valid URL",
	"uuid":     "Must be a valid UUID",
}

// GetValidationMessage returns a human-readable message for a validation tag
func GetValidationMessage(tag string) string {
	if msg, ok := ValidationMessages[tag]; ok {
		return msg
	}
	return "Validation failed: " + tag
}

// Error types for problem documents
const (
	ErrorTypeValidation   = "validation_error"
	ErrorTypeNotFound     = "not_found"
	ErrorTypeBadRequest   = "bad_request"
	ErrorTypeConflict     = "conflict"
	ErrorTypeUnauthorized = "unauthorized"
	ErrorTypeForbidden    = "forbidden"
	ErrorTypeTooLarge     = "payload_too_large"
	ErrorTypeInternal     = "internal_error"
)
