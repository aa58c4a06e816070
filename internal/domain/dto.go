package domain

import (
	"time"

	"github.com/google/uuid"
)

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// PaginatedResponse wraps a page of results
type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	TotalPages int         `json:"totalPages"`
}

// NewPaginatedResponse builds a page envelope, computing the page count
func NewPaginatedResponse(data interface{}, total int64, page, pageSize int) PaginatedResponse {
	totalPages := 0
	if pageSize > 0 {
		totalPages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}
	return PaginatedResponse{
		Data:       data,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

// Users / session

type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	Image     string    `json:"image,omitempty"`
	CreatedAt string    `json:"createdAt"` // ISO 8601
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Name     string `json:"name" validate:"max=200"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned after register and login
type AuthResponse struct {
	AccessToken string  `json:"accessToken"`
	TokenType   string  `json:"tokenType"`
	ExpiresAt   string  `json:"expiresAt"` // ISO 8601
	User        UserDTO `json:"user"`
}

// Forms

type FormDTO struct {
	ID               uuid.UUID    `json:"id"`
	Title            string       `json:"title"`
	Description      string       `json:"description,omitempty"`
	CreatorID        uuid.UUID    `json:"creatorId"`
	IsActive         bool         `json:"isActive"`
	IsPublished      bool         `json:"isPublished"`
	PublicID         string       `json:"publicId"`
	PublicURL        string       `json:"publicUrl,omitempty"`
	Settings         FormSettings `json:"settings"`
	IsQuiz           bool         `json:"isQuiz"`
	AccessCode       string       `json:"accessCode,omitempty"`
	TimerType        TimerType    `json:"timerType,omitempty"`
	TimeLimit        int          `json:"timeLimit,omitempty"`
	PerQuestionTime  int          `json:"perQuestionTime,omitempty"`
	AllowSkip        bool         `json:"allowSkip"`
	OrganizationName string       `json:"organizationName,omitempty"`
	IsPaid           bool         `json:"isPaid"`
	PurchaseID       *uuid.UUID   `json:"purchaseId,omitempty"`
	ResponseCount    int64        `json:"responseCount"`
	QuestionCount    int64        `json:"questionCount"`
	CreatedAt        string       `json:"createdAt"` // ISO 8601
	UpdatedAt        string       `json:"updatedAt"` // ISO 8601
}

// FormCounts carries the aggregate counts shown next to a form
type FormCounts struct {
	Questions int64
	Responses int64
}

// FormWithQuestionsDTO is a form together with its ordered questions
type FormWithQuestionsDTO struct {
	FormDTO
	Questions []QuestionDTO `json:"questions"`
}

// PublicFormDTO is the respondent view of a published form
type PublicFormDTO struct {
	ID               uuid.UUID     `json:"id"`
	PublicID         string        `json:"publicId"`
	Title            string        `json:"title"`
	Description      string        `json:"description,omitempty"`
	Settings         FormSettings  `json:"settings"`
	IsQuiz           bool          `json:"isQuiz"`
	TimerType        TimerType     `json:"timerType,omitempty"`
	TimeLimit        int           `json:"timeLimit,omitempty"`
	PerQuestionTime  int           `json:"perQuestionTime,omitempty"`
	AllowSkip        bool          `json:"allowSkip"`
	OrganizationName string        `json:"organizationName,omitempty"`
	Questions        []QuestionDTO `json:"questions"`
}

type CreateFormRequest struct {
	Title       string        `json:"title" validate:"required,min=1,max=200"`
	Description string        `json:"description" validate:"max=5000"`
	Settings    *FormSettings `json:"settings,omitempty"`
}

// UpdateFormRequest applies a partial update; nil fields are left unchanged
type UpdateFormRequest struct {
	Title       *string       `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string       `json:"description,omitempty" validate:"omitempty,max=5000"`
	IsActive    *bool         `json:"isActive,omitempty"`
	IsPublished *bool         `json:"isPublished,omitempty"`
	Settings    *FormSettings `json:"settings,omitempty"`
}

// Questions

type QuestionDTO struct {
	ID            uuid.UUID        `json:"id"`
	FormID        uuid.UUID        `json:"formId"`
	Type          QuestionType     `json:"type"`
	Label         string           `json:"label"`
	Description   string           `json:"description,omitempty"`
	Required      bool             `json:"required"`
	Options       []QuestionOption `json:"options"`
	Validation    JSONMap          `json:"validation,omitempty"`
	Order         int              `json:"order"`
	CorrectAnswer *string          `json:"correctAnswer,omitempty"`
	Points        int              `json:"points"`
}

// QuestionRequest creates or, inside a full replace, updates a question.
// ID is only honoured by the replace operation and only for questions of the same form.
type QuestionRequest struct {
	ID            *uuid.UUID       `json:"id,omitempty"`
	Type          QuestionType     `json:"type" validate:"required,oneof=short_text long_text multiple_choice checkboxes dropdown linear_scale date time file_upload section_break text"`
	Label         string           `json:"label" validate:"required,min=1,max=2000"`
	Description   string           `json:"description" validate:"max=5000"`
	Required      bool             `json:"required"`
	Options       []QuestionOption `json:"options" validate:"omitempty,max=100,dive"`
	Validation    JSONMap          `json:"validation"`
	Order         int              `json:"order" validate:"gte=0"`
	CorrectAnswer *string          `json:"correctAnswer,omitempty" validate:"omitempty,max=2000"`
	Points        *int             `json:"points,omitempty" validate:"omitempty,gte=0,lte=1000"`
}

// Responses

type ResponseDTO struct {
	ID            uuid.UUID `json:"id"`
	FormID        uuid.UUID `json:"formId"`
	Answers       JSONMap   `json:"answers"`
	Metadata      JSONMap   `json:"metadata,omitempty"`
	IPAddress     string    `json:"ipAddress,omitempty"`
	UserAgent     string    `json:"userAgent,omitempty"`
	IsQuizAttempt bool      `json:"isQuizAttempt"`
	Score         *int      `json:"score,omitempty"`
	MaxScore      *int      `json:"maxScore,omitempty"`
	TimeTaken     int       `json:"timeTaken,omitempty"`
	CompletedAt   string    `json:"completedAt,omitempty"` // ISO 8601
	CreatedAt     string    `json:"createdAt"`             // ISO 8601
}

type SubmitResponseRequest struct {
	Answers JSONMap `json:"answers"`
}

type SubmitResponseResult struct {
	Success             bool      `json:"success"`
	ResponseID          uuid.UUID `json:"responseId"`
	ConfirmationMessage string    `json:"confirmationMessage,omitempty"`
}

// Files

type FileDTO struct {
	ID          uuid.UUID  `json:"id"`
	FormID      uuid.UUID  `json:"formId"`
	QuestionID  *uuid.UUID `json:"questionId,omitempty"`
	Filename    string     `json:"filename"`
	ContentType string     `json:"contentType"`
	Size        int64      `json:"size"`
	CreatedAt   string     `json:"createdAt"` // ISO 8601
}

// Analytics

type AnswerCountDTO struct {
	Label      string  `json:"label"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type QuestionAnalyticsDTO struct {
	QuestionID   uuid.UUID        `json:"questionId"`
	Label        string           `json:"label"`
	Type         QuestionType     `json:"type"`
	TotalAnswers int              `json:"totalAnswers"`
	Data         []AnswerCountDTO `json:"data"`
	Average      *float64         `json:"average,omitempty"`
}

type AnalyticsOverviewDTO struct {
	TotalResponses  int      `json:"totalResponses"`
	LastResponse    *string  `json:"lastResponse"` // ISO 8601
	AverageScore    *float64 `json:"averageScore,omitempty"`
	AverageMaxScore *float64 `json:"averageMaxScore,omitempty"`
}

type FormAnalyticsDTO struct {
	FormID    uuid.UUID              `json:"formId"`
	Overview  AnalyticsOverviewDTO   `json:"overview"`
	Questions []QuestionAnalyticsDTO `json:"questions"`
}

// Quizzes

type CreateQuizRequest struct {
	Title           string    `json:"title" validate:"required,min=1,max=200"`
	Description     string    `json:"description" validate:"max=5000"`
	AccessCode      string    `json:"accessCode" validate:"omitempty,min=3,max=50"`
	TimerType       TimerType `json:"timerType" validate:"omitempty,oneof=none total per_question"`
	TimeLimit       int       `json:"timeLimit" validate:"gte=0"`
	PerQuestionTime int       `json:"perQuestionTime" validate:"gte=0"`
	AllowSkip       bool      `json:"allowSkip"`
	College         string    `json:"college" validate:"max=200"`
}

// AddQuizQuestionRequest adds a multiple-choice question to a quiz.
// CorrectAnswer is either an option index or the option text.
type AddQuizQuestionRequest struct {
	Question      string      `json:"question" validate:"required,min=1,max=2000"`
	Options       []string    `json:"options" validate:"required,min=1,max=100"`
	CorrectAnswer interface{} `json:"correctAnswer"`
	Order         *int        `json:"order,omitempty" validate:"omitempty,gte=0"`
	Points        *int        `json:"points,omitempty" validate:"omitempty,gte=0,lte=1000"`
}

// QuizSubmitRequest is a participant's attempt. TimeTaken is in seconds and
// may be fractional; it is stored rounded to whole seconds.
type QuizSubmitRequest struct {
	FormID          string                 `json:"formId"`
	Answers         map[string]interface{} `json:"answers"`
	TimeTaken       float64                `json:"timeTaken"`
	ParticipantInfo JSONMap                `json:"participantInfo,omitempty"`
}

type QuizQuestionResult struct {
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correctAnswer"`
}

type QuizSubmitResult struct {
	Success    bool                          `json:"success"`
	Score      int                           `json:"score"`
	MaxScore   int                           `json:"maxScore"`
	ResponseID uuid.UUID                     `json:"responseId"`
	Results    map[string]QuizQuestionResult `json:"results"`
}

// Billing

type CreatePurchaseRequest struct {
	Amount   *float64   `json:"amount,omitempty" validate:"omitempty,gte=0"`
	Currency string     `json:"currency" validate:"omitempty,len=3"`
	FormID   *uuid.UUID `json:"formId,omitempty"`
}

type PurchaseDTO struct {
	ID        uuid.UUID      `json:"id"`
	UserID    uuid.UUID      `json:"userId"`
	FormID    *uuid.UUID     `json:"formId,omitempty"`
	FormTitle string         `json:"formTitle,omitempty"`
	Amount    float64        `json:"amount"`
	Currency  string         `json:"currency"`
	Status    PurchaseStatus `json:"status"`
	Features  []string       `json:"features"`
	CreatedAt string         `json:"createdAt"` // ISO 8601
}

type PurchaseListDTO struct {
	Purchases      []PurchaseDTO `json:"purchases"`
	TotalPurchases int           `json:"totalPurchases"`
}

type CreateSubscriptionRequest struct {
	Amount   *float64 `json:"amount,omitempty" validate:"omitempty,gte=0"`
	Currency string   `json:"currency" validate:"omitempty,len=3"`
}

type SubscriptionDTO struct {
	ID        uuid.UUID          `json:"id"`
	UserID    uuid.UUID          `json:"userId"`
	Plan      string             `json:"plan"`
	Status    SubscriptionStatus `json:"status"`
	Amount    float64            `json:"amount"`
	Currency  string             `json:"currency"`
	StartDate string             `json:"startDate"` // ISO 8601
	EndDate   string             `json:"endDate"`   // ISO 8601
	AutoRenew bool               `json:"autoRenew"`
}

type SubscriptionStatusDTO struct {
	Subscription          *SubscriptionDTO `json:"subscription"`
	HasActiveSubscription bool             `json:"hasActiveSubscription"`
}

// ExpireSubscriptionsResult reports how many subscriptions a sweep expired
type ExpireSubscriptionsResult struct {
	Expired int64 `json:"expired"`
}

// Audit

type AuditLogDTO struct {
	ID          uuid.UUID   `json:"id"`
	UserID      string      `json:"userId"`
	UserEmail   string      `json:"userEmail,omitempty"`
	Action      AuditAction `json:"action"`
	EntityType  string      `json:"entityType"`
	EntityID    *uuid.UUID  `json:"entityId,omitempty"`
	Method      string      `json:"method"`
	Path        string      `json:"path"`
	StatusCode  int         `json:"statusCode"`
	IPAddress   string      `json:"ipAddress,omitempty"`
	RequestID   string      `json:"requestId,omitempty"`
	Values      JSONMap     `json:"values,omitempty"`
	PerformedAt time.Time   `json:"performedAt"`
}
