package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/formlytic/formlytic-api/internal/domain"
	"github.com/formlytic/formlytic-api/internal/email"
	"github.com/formlytic/formlytic-api/internal/logger"
	"github.com/formlytic/formlytic-api/internal/mapper"
	"github.com/formlytic/formlytic-api/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const notificationTimeout = 10 * time.Second

// ClientInfo identifies the respondent's client
type ClientInfo struct {
	IPAddress string
	UserAgent string
}

type ResponseService struct {
	formRepo      *repository.FormRepository
	questionRepo  *repository.QuestionRepository
	responseRepo  *repository.ResponseRepository
	userRepo      *repository.UserRepository
	sender        email.Sender
	publicBaseURL string
	logger        *zap.Logger
}

func NewResponseService(
	formRepo *repository.FormRepository,
	questionRepo *repository.QuestionRepository,
	responseRepo *repository.ResponseRepository,
	userRepo *repository.UserRepository,
	sender email.Sender,
	publicBaseURL string,
	logger *zap.Logger,
) *ResponseService {
	return &ResponseService{
		formRepo:      formRepo,
		questionRepo:  questionRepo,
		responseRepo:  responseRepo,
		userRepo:      userRepo,
		sender:        sender,
		publicBaseURL: publicBaseURL,
		logger:        logger,
	}
}

func (s *ResponseService) formByPublicID(ctx context.Context, publicID string) (*domain.Form, error) {
	form, err := s.formRepo.GetByPublicID(ctx, publicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFormNotFound
		}
		return nil, fmt.Errorf("failed to get form: %w", err)
	}
	return form, nil
}

// openForm loads a published and active form by public id
func (s *ResponseService) openForm(ctx context.Context, publicID string) (*domain.Form, error) {
	form, err := s.formByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if !form.IsOpen() {
		return nil, ErrFormNotAvailable
	}
	return form, nil
}

// GetPublicForm returns the respondent view of an open form. The form's
// creator can also preview it while it is unpublished or inactive.
func (s *ResponseService) GetPublicForm(ctx context.Context, publicID string) (*domain.PublicFormDTO, error) {
	form, err := s.formByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if !form.IsOpen() && !repository.MustOwn(ctx, form.CreatorID) {
		return nil, ErrFormNotAvailable
	}
	questions, err := s.questionRepo.ListByForm(ctx, form.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	dto := mapper.ToPublicFormDTO(form, questions)
	return &dto, nil
}

// Submit stores an anonymous response to an open form
func (s *ResponseService) Submit(ctx context.Context, publicID string, req *domain.SubmitResponseRequest, client ClientInfo) (*domain.SubmitResponseResult, error) {
	if req.Answers == nil {
		return nil, ErrAnswersRequired
	}

	form, err := s.openForm(ctx, publicID)
	if err != nil {
		return nil, err
	}

	questions, err := s.questionRepo.ListByForm(ctx, form.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}

	if missing := missingRequired(questions, req.Answers); len(missing) > 0 {
		return nil, &MissingAnswersError{QuestionIDs: missing}
	}

	if !form.Settings.AllowMultipleSubmissions && client.IPAddress != "" {
		exists, err := s.responseRepo.ExistsForIP(ctx, form.ID, client.IPAddress)
		if err != nil {
			return nil, fmt.Errorf("failed to check previous submissions: %w", err)
		}
		if exists {
			return nil, ErrDuplicateSubmission
		}
	}

	now := time.Now().UTC()
	response := &domain.Response{
		FormID:      form.ID,
		Answers:     req.Answers,
		Metadata:    domain.JSONMap{"submittedAt": now.Format(time.RFC3339)},
		IPAddress:   client.IPAddress,
		UserAgent:   client.UserAgent,
		CompletedAt: &now,
	}
	if err := s.responseRepo.Create(ctx, response); err != nil {
		return nil, fmt.Errorf("failed to store response: %w", err)
	}

	logger.WithForm(s.logger, form.ID.String(), form.PublicID).Info("response submitted",
		zap.String("response_id", response.ID.String()),
		logger.RespondentIP(client.IPAddress))

	if form.Settings.EmailNotifications {
		s.notifyCreator(ctx, form, response)
	}

	return &domain.SubmitResponseResult{
		Success:             true,
		ResponseID:          response.ID,
		ConfirmationMessage: form.Settings.ConfirmationMessage,
	}, nil
}

// List returns the responses of an owned form, newest first
func (s *ResponseService) List(ctx context.Context, formID uuid.UUID, page, pageSize int) (*domain.PaginatedResponse, error) {
	form, err := loadOwnedForm(ctx, s.formRepo, formID)
	if err != nil {
		return nil, err
	}

	page, pageSize = repository.NormalizePage(page, pageSize)
	responses, total, err := s.responseRepo.ListByForm(ctx, form.ID, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list responses: %w", err)
	}

	dtos := make([]domain.ResponseDTO, len(responses))
	for i := range responses {
		dtos[i] = mapper.ToResponseDTO(&responses[i])
	}

	resp := domain.NewPaginatedResponse(dtos, total, page, pageSize)
	return &resp, nil
}

// missingRequired returns the ids of required questions without an answer
func missingRequired(questions []domain.Question, answers domain.JSONMap) []string {
	var missing []string
	for i := range questions {
		q := &questions[i]
		if !q.Required || !q.Type.CollectsAnswer() {
			continue
		}
		if _, ok := AnswerString(answers[q.ID.String()]); !ok {
			missing = append(missing, q.ID.String())
		}
	}
	return missing
}

// notifyCreator e-mails the form owner. Failures are logged, never returned.
func (s *ResponseService) notifyCreator(ctx context.Context, form *domain.Form, response *domain.Response) {
	if s.sender == nil {
		return
	}

	log := logger.WithForm(s.logger, form.ID.String(), form.PublicID)
	creator, err := s.userRepo.GetByID(ctx, form.CreatorID)
	if err != nil {
		log.Warn("failed to load form creator for notification", zap.Error(err))
		return
	}

	link := ""
	if s.publicBaseURL != "" {
		link = fmt.Sprintf("%s/forms/%s/responses", strings.TrimRight(s.publicBaseURL, "/"), form.ID)
	}

	text := fmt.Sprintf("Your form %q received a new response at %s.", form.Title, response.CreatedAt.UTC().Format(time.RFC1123))
	if link != "" {
		text += "\n\nView responses: " + link
	}

	msg := email.Message{
		To:          []mail.Address{{Name: creator.Name, Address: creator.Email}},
		Subject:     "New response: " + form.Title,
		TextContent: text,
	}

	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notificationTimeout)
	defer cancel()
	if err := s.sender.Send(sendCtx, msg); err != nil {
		log.Warn("failed to send response notification", zap.Error(err))
	}
}
