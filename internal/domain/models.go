package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseModel carries the id and timestamps shared by all tables. IDs are
// generated in Go so the same models work on PostgreSQL and SQLite.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// BeforeCreate assigns a random UUID when none is set
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// QuestionType enumerates the supported question kinds
type QuestionType string

const (
	QuestionTypeShortText      QuestionType = "short_text"
	QuestionTypeLongText       QuestionType = "long_text"
	QuestionTypeMultipleChoice QuestionType = "multiple_choice"
	QuestionTypeCheckboxes     QuestionType = "checkboxes"
	QuestionTypeDropdown       QuestionType = "dropdown"
	QuestionTypeLinearScale    QuestionType = "linear_scale"
	QuestionTypeDate           QuestionType = "date"
	QuestionTypeTime           QuestionType = "time"
	QuestionTypeFileUpload     QuestionType = "file_upload"
	QuestionTypeSectionBreak   QuestionType = "section_break"
	// QuestionTypeText is the free-text type used by quizzes
	QuestionTypeText QuestionType = "text"
)

// QuestionTypeLabels maps each question type to its display label
var QuestionTypeLabels = map[QuestionType]string{
	QuestionTypeShortText:      "Short Text",
	QuestionTypeLongText:       "Long Text",
	QuestionTypeMultipleChoice: "Multiple Choice",
	QuestionTypeCheckboxes:     "Checkboxes",
	QuestionTypeDropdown:       "Dropdown",
	QuestionTypeLinearScale:    "Linear Scale",
	QuestionTypeDate:           "Date",
	QuestionTypeTime:           "Time",
	QuestionTypeFileUpload:     "File Upload",
	QuestionTypeSectionBreak:   "Section Break",
	QuestionTypeText:           "Text",
}

// IsValid reports whether t is a known question type
func (t QuestionType) IsValid() bool {
	_, ok := QuestionTypeLabels[t]
	return ok
}

// IsChoice reports whether answers are picked from the question's options
func (t QuestionType) IsChoice() bool {
	return t == QuestionTypeMultipleChoice || t == QuestionTypeCheckboxes || t == QuestionTypeDropdown
}

// CollectsAnswer is false for layout-only questions
func (t QuestionType) CollectsAnswer() bool {
	return t != QuestionTypeSectionBreak
}

// TimerType controls how a quiz is timed
type TimerType string

const (
	TimerTypeNone        TimerType = "none"
	TimerTypeTotal       TimerType = "total"
	TimerTypePerQuestion TimerType = "per_question"
)

// User is a form creator
type User struct {
	BaseModel
	Email        string     `gorm:"type:varchar(255);not null;uniqueIndex"`
	Name         string     `gorm:"type:varchar(200)"`
	Image        string     `gorm:"type:varchar(500)"`
	PasswordHash string     `gorm:"type:varchar(255);column:password_hash"`
	LastLoginAt  *time.Time `gorm:"column:last_login_at"`
}

// NormalizeEmail lower-cases and trims an e-mail address for lookups
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Form is a questionnaire owned by a creator. Quizzes are forms with IsQuiz set.
type Form struct {
	BaseModel
	Title       string       `gorm:"type:varchar(200);not null"`
	Description string       `gorm:"type:text"`
	CreatorID   uuid.UUID    `gorm:"type:uuid;not null;index;column:creator_id"`
	Creator     *User        `gorm:"foreignKey:CreatorID"`
	IsActive    bool         `gorm:"not null;default:true;column:is_active"`
	IsPublished bool         `gorm:"not null;default:false;column:is_published"`
	PublicID    string       `gorm:"type:varchar(32);not null;uniqueIndex;column:public_id"`
	Settings    FormSettings `gorm:"type:jsonb"`

	// Quiz fields
	IsQuiz           bool      `gorm:"not null;default:false;index;column:is_quiz"`
	AccessCode       *string   `gorm:"type:varchar(50);uniqueIndex;column:access_code"`
	TimerType        TimerType `gorm:"type:varchar(20);column:timer_type"`
	TimeLimit        int       `gorm:"not null;default:0;column:time_limit"`
	PerQuestionTime  int       `gorm:"not null;default:0;column:per_question_time"`
	AllowSkip        bool      `gorm:"not null;default:false;column:allow_skip"`
	OrganizationName string    `gorm:"type:varchar(200);column:organization_name"`

	IsPaid     bool       `gorm:"not null;default:false;column:is_paid"`
	PurchaseID *uuid.UUID `gorm:"type:uuid;column:purchase_id"`

	Questions []Question `gorm:"foreignKey:FormID;constraint:OnDelete:CASCADE"`
	Responses []Response `gorm:"foreignKey:FormID;constraint:OnDelete:CASCADE"`
}

// IsOpen reports whether the form accepts public traffic
func (f *Form) IsOpen() bool {
	return f.IsPublished && f.IsActive
}

// Question is one item of a form
type Question struct {
	BaseModel
	FormID        uuid.UUID       `gorm:"type:uuid;not null;index;column:form_id"`
	Type          QuestionType    `gorm:"type:varchar(50);not null"`
	Label         string          `gorm:"type:text;not null"`
	Description   string          `gorm:"type:text"`
	Required      bool            `gorm:"not null;default:false"`
	Options       QuestionOptions `gorm:"type:jsonb"`
	Validation    JSONMap         `gorm:"type:jsonb"`
	Order         int             `gorm:"not null;default:0;column:sort_order"`
	CorrectAnswer *string         `gorm:"type:text;column:correct_answer"`
	Points        int             `gorm:"not null;default:1"`
}

// EffectivePoints returns the points awarded for a correct answer; non-positive values count as one
func (q *Question) EffectivePoints() int {
	if q.Points <= 0 {
		return 1
	}
	return q.Points
}

// Response is one submission to a form or quiz
type Response struct {
	BaseModel
	FormID        uuid.UUID  `gorm:"type:uuid;not null;index;column:form_id"`
	Answers       JSONMap    `gorm:"type:jsonb;not null"`
	Metadata      JSONMap    `gorm:"type:jsonb"`
	IPAddress     string     `gorm:"type:varchar(100);column:ip_address;index"`
	UserAgent     string     `gorm:"type:text;column:user_agent"`
	IsQuizAttempt bool       `gorm:"not null;default:false;column:is_quiz_attempt"`
	Score         *int       `gorm:"column:score"`
	MaxScore      *int       `gorm:"column:max_score"`
	TimeTaken     int        `gorm:"not null;default:0;column:time_taken"`
	CompletedAt   *time.Time `gorm:"column:completed_at"`
}

// File is an attachment uploaded as the answer to a file_upload question
type File struct {
	BaseModel
	FormID      uuid.UUID  `gorm:"type:uuid;not null;index;column:form_id"`
	QuestionID  *uuid.UUID `gorm:"type:uuid;column:question_id"`
	Filename    string     `gorm:"type:varchar(255);not null"`
	ContentType string     `gorm:"type:varchar(100);not null;column:content_type"`
	Size        int64      `gorm:"not null"`
	StoragePath string     `gorm:"type:varchar(500);not null;uniqueIndex;column:storage_path"`
}

// PurchaseStatus is the state of a one-off purchase
type PurchaseStatus string

const (
	PurchaseStatusPending   PurchaseStatus = "pending"
	PurchaseStatusCompleted PurchaseStatus = "completed"
	PurchaseStatusRefunded  PurchaseStatus = "refunded"
)

// PremiumFeatures are unlocked by a form purchase
var PremiumFeatures = []string{
	"conditionalLogic",
	"fileUpload",
	"advancedAnalytics",
	"customValidation",
	"exportData",
	"emailNotifications",
	"customThankYou",
}

// FormPurchase records a premium unlock, optionally tied to one form
type FormPurchase struct {
	BaseModel
	UserID   uuid.UUID      `gorm:"type:uuid;not null;index;column:user_id"`
	FormID   *uuid.UUID     `gorm:"type:uuid;column:form_id"`
	Form     *Form          `gorm:"foreignKey:FormID"`
	Amount   float64        `gorm:"not null"`
	Currency string         `gorm:"type:varchar(3);not null"`
	Status   PurchaseStatus `gorm:"type:varchar(20);not null"`
	Features StringList     `gorm:"type:jsonb"`
}

// SubscriptionStatus is the state of an organization subscription
type SubscriptionStatus string

const (
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusExpired   SubscriptionStatus = "expired"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
)

// SubscriptionPlanOrganization is the only paid plan
const SubscriptionPlanOrganization = "organization"

// Subscription is a user's recurring plan. Each user has at most one.
type Subscription struct {
	BaseModel
	UserID    uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex;column:user_id"`
	Plan      string             `gorm:"type:varchar(50);not null"`
	Status    SubscriptionStatus `gorm:"type:varchar(20);not null;index"`
	Amount    float64            `gorm:"not null"`
	Currency  string             `gorm:"type:varchar(3);not null"`
	StartDate time.Time          `gorm:"not null;column:start_date"`
	EndDate   time.Time          `gorm:"not null;index;column:end_date"`
	AutoRenew bool               `gorm:"not null;default:false;column:auto_renew"`
}

// IsActiveAt reports whether the subscription is active and unexpired at t
func (s *Subscription) IsActiveAt(t time.Time) bool {
	return s.Status == SubscriptionStatusActive && s.EndDate.After(t)
}

// AuditAction represents the type of action recorded in an audit log
type AuditAction string

const (
	AuditActionCreate AuditAction = "create"
	AuditActionUpdate AuditAction = "update"
	AuditActionDelete AuditAction = "delete"
)

// AuditLog is an audit trail entry for a mutating request
type AuditLog struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey"`
	UserID      string      `gorm:"type:varchar(100);index;column:user_id"`
	UserEmail   string      `gorm:"type:varchar(255);column:user_email"`
	Action      AuditAction `gorm:"type:varchar(20);not null"`
	EntityType  string      `gorm:"type:varchar(50);not null;column:entity_type"`
	EntityID    *uuid.UUID  `gorm:"type:uuid;column:entity_id"`
	Method      string      `gorm:"type:varchar(10);not null"`
	Path        string      `gorm:"type:varchar(500);not null"`
	StatusCode  int         `gorm:"not null;column:status_code"`
	IPAddress   string      `gorm:"type:varchar(100);column:ip_address"`
	UserAgent   string      `gorm:"type:text;column:user_agent"`
	RequestID   string      `gorm:"type:varchar(100);column:request_id"`
	Values      JSONMap     `gorm:"type:jsonb"`
	PerformedAt time.Time   `gorm:"not null;index;column:performed_at"`
}

// BeforeCreate assigns the id and timestamp
func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.PerformedAt.IsZero() {
		a.PerformedAt = time.Now().UTC()
	}
	return nil
}
