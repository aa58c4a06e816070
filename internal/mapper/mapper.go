package mapper

import (
	"fmt"
	"strings"
	"time"

	"github.com/formlytic/formlytic-api/internal/domain"
)

const isoLayout = "2006-01-02T15:04:05Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(isoLayout)
}

// ToUserDTO converts User to UserDTO
func ToUserDTO(user *domain.User) domain.UserDTO {
	return domain.UserDTO{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Image:     user.Image,
		CreatedAt: formatTime(user.CreatedAt),
	}
}

// ToFormDTO converts Form to FormDTO. publicBaseURL may be empty.
func ToFormDTO(form *domain.Form, counts domain.FormCounts, publicBaseURL string) domain.FormDTO {
	dto := domain.FormDTO{
		ID:               form.ID,
		Title:            form.Title,
		Description:      form.Description,
		CreatorID:        form.CreatorID,
		IsActive:         form.IsActive,
		IsPublished:      form.IsPublished,
		PublicID:         form.PublicID,
		PublicURL:        PublicFormURL(publicBaseURL, form),
		Settings:         form.Settings,
		IsQuiz:           form.IsQuiz,
		TimerType:        form.TimerType,
		TimeLimit:        form.TimeLimit,
		PerQuestionTime:  form.PerQuestionTime,
		AllowSkip:        form.AllowSkip,
		OrganizationName: form.OrganizationName,
		IsPaid:           form.IsPaid,
		PurchaseID:       form.PurchaseID,
		ResponseCount:    counts.Responses,
		QuestionCount:    counts.Questions,
		CreatedAt:        formatTime(form.CreatedAt),
		UpdatedAt:        formatTime(form.UpdatedAt),
	}
	if form.AccessCode != nil {
		dto.AccessCode = *form.AccessCode
	}
	return dto
}

// PublicFormURL returns the respondent link for a form
func PublicFormURL(baseURL string, form *domain.Form) string {
	if baseURL == "" {
		return ""
	}
	base := strings.TrimRight(baseURL, "/")
	if form.IsQuiz {
		return fmt.Sprintf("%s/quiz/%s", base, form.PublicID)
	}
	return fmt.Sprintf("%s/f/%s", base, form.PublicID)
}

// ToFormWithQuestionsDTO converts a form and its questions for the creator view
func ToFormWithQuestionsDTO(form *domain.Form, questions []domain.Question, counts domain.FormCounts, publicBaseURL string) domain.FormWithQuestionsDTO {
	return domain.FormWithQuestionsDTO{
		FormDTO:   ToFormDTO(form, counts, publicBaseURL),
		Questions: ToQuestionDTOs(questions, true),
	}
}

// ToPublicFormDTO converts a form for respondents; correct answers are never included
func ToPublicFormDTO(form *domain.Form, questions []domain.Question) domain.PublicFormDTO {
	return domain.PublicFormDTO{
		ID:               form.ID,
		PublicID:         form.PublicID,
		Title:            form.Title,
		Description:      form.Description,
		Settings:         form.Settings,
		IsQuiz:           form.IsQuiz,
		TimerType:        form.TimerType,
		TimeLimit:        form.TimeLimit,
		PerQuestionTime:  form.PerQuestionTime,
		AllowSkip:        form.AllowSkip,
		OrganizationName: form.OrganizationName,
		Questions:        ToQuestionDTOs(questions, false),
	}
}

// ToQuestionDTO converts Question to QuestionDTO
func ToQuestionDTO(q *domain.Question, includeAnswer bool) domain.QuestionDTO {
	options := []domain.QuestionOption(q.Options)
	if options == nil {
		options = []domain.QuestionOption{}
	}
	dto := domain.QuestionDTO{
		ID:          q.ID,
		FormID:      q.FormID,
		Type:        q.Type,
		Label:       q.Label,
		Description: q.Description,
		Required:    q.Required,
		Options:     options,
		Validation:  q.Validation,
		Order:       q.Order,
		Points:      q.EffectivePoints(),
	}
	if includeAnswer {
		dto.CorrectAnswer = q.CorrectAnswer
	}
	return dto
}

// ToQuestionDTOs converts a slice of questions preserving order
func ToQuestionDTOs(questions []domain.Question, includeAnswer bool) []domain.QuestionDTO {
	dtos := make([]domain.QuestionDTO, len(questions))
	for i := range questions {
		dtos[i] = ToQuestionDTO(&questions[i], includeAnswer)
	}
	return dtos
}

// ToResponseDTO converts Response to ResponseDTO
func ToResponseDTO(r *domain.Response) domain.ResponseDTO {
	dto := domain.ResponseDTO{
		ID:            r.ID,
		FormID:        r.FormID,
		Answers:       r.Answers,
		Metadata:      r.Metadata,
		IPAddress:     r.IPAddress,
		UserAgent:     r.UserAgent,
		IsQuizAttempt: r.IsQuizAttempt,
		Score:         r.Score,
		MaxScore:      r.MaxScore,
		TimeTaken:     r.TimeTaken,
		CreatedAt:     formatTime(r.CreatedAt),
	}
	if dto.Answers == nil {
		dto.Answers = domain.JSONMap{}
	}
	if r.CompletedAt != nil {
		dto.CompletedAt = formatTime(*r.CompletedAt)
	}
	return dto
}

// ToFileDTO converts File to FileDTO
func ToFileDTO(file *domain.File) domain.FileDTO {
	return domain.FileDTO{
		ID:          file.ID,
		FormID:      file.FormID,
		QuestionID:  file.QuestionID,
		Filename:    file.Filename,
		ContentType: file.ContentType,
		Size:        file.Size,
		CreatedAt:   formatTime(file.CreatedAt),
	}
}

// ToPurchaseDTO converts FormPurchase to PurchaseDTO
func ToPurchaseDTO(p *domain.FormPurchase) domain.PurchaseDTO {
	features := []string(p.Features)
	if features == nil {
		features = []string{}
	}
	dto := domain.PurchaseDTO{
		ID:        p.ID,
		UserID:    p.UserID,
		FormID:    p.FormID,
		Amount:    p.Amount,
		Currency:  p.Currency,
		Status:    p.Status,
		Features:  features,
		CreatedAt: formatTime(p.CreatedAt),
	}
	if p.Form != nil {
		dto.FormTitle = p.Form.Title
	}
	return dto
}

// ToSubscriptionDTO converts Subscription to SubscriptionDTO
func ToSubscriptionDTO(s *domain.Subscription) domain.SubscriptionDTO {
	return domain.SubscriptionDTO{
		ID:        s.ID,
		UserID:    s.UserID,
		Plan:      s.Plan,
		Status:    s.Status,
		Amount:    s.Amount,
		Currency:  s.Currency,
		StartDate: formatTime(s.StartDate),
		EndDate:   formatTime(s.EndDate),
		AutoRenew: s.AutoRenew,
	}
}

// ToAuditLogDTO converts AuditLog to AuditLogDTO
func ToAuditLogDTO(a *domain.AuditLog) domain.AuditLogDTO {
	return domain.AuditLogDTO{
		ID:          a.ID,
		UserID:      a.UserID,
		UserEmail:   a.UserEmail,
		Action:      a.Action,
		EntityType:  a.EntityType,
		EntityID:    a.EntityID,
		Method:      a.Method,
		Path:        a.Path,
		StatusCode:  a.StatusCode,
		IPAddress:   a.IPAddress,
		RequestID:   a.RequestID,
		Values:      a.Values,
		PerformedAt: a.PerformedAt,
	}
}

// FormatError wraps an error with entity and operation context
func FormatError(entity, operation string, err error) error {
	return fmt.Errorf("failed to %s %s: %w", operation, entity, err)
}
