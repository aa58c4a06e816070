package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/formlytic/formlytic-api/internal/domain"
	"github.com/formlytic/formlytic-api/internal/mapper"
	"github.com/formlytic/formlytic-api/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type QuestionService struct {
	formRepo     *repository.FormRepository
	questionRepo *repository.QuestionRepository
	logger       *zap.Logger
}

func NewQuestionService(formRepo *repository.FormRepository, questionRepo *repository.QuestionRepository, logger *zap.Logger) *QuestionService {
	return &QuestionService{
		formRepo:     formRepo,
		questionRepo: questionRepo,
		logger:       logger,
	}
}

// Add appends one question to an owned form. An order of zero places the
// question after the existing ones.
func (s *QuestionService) Add(ctx context.Context, formID uuid.UUID, req *domain.QuestionRequest) (*domain.QuestionDTO, error) {
	form, err := loadOwnedForm(ctx, s.formRepo, formID)
	if err != nil {
		return nil, err
	}

	question, err := buildQuestion(req)
	if err != nil {
		return nil, err
	}
	question.FormID = form.ID

	if question.Order == 0 {
		next, err := s.questionRepo.NextOrder(ctx, form.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to compute question order: %w", err)
		}
		question.Order = next
	}

	if err := s.questionRepo.Create(ctx, question); err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}

	dto := mapper.ToQuestionDTO(question, true)
	return &dto, nil
}

// Replace makes reqs the complete ordered question list of an owned form.
// Each question's order becomes its index in reqs.
func (s *QuestionService) Replace(ctx context.Context, formID uuid.UUID, reqs []domain.QuestionRequest) ([]domain.QuestionDTO, error) {
	form, err := loadOwnedForm(ctx, s.formRepo, formID)
	if err != nil {
		return nil, err
	}

	questions := make([]domain.Question, 0, len(reqs))
	for i := range reqs {
		q, err := buildQuestion(&reqs[i])
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", i, err)
		}
		q.Order = i
		questions = append(questions, *q)
	}

	if err := s.questionRepo.ReplaceForForm(ctx, form.ID, questions); err != nil {
		return nil, fmt.Errorf("failed to replace questions: %w", err)
	}

	s.logger.Info("questions replaced",
		zap.String("form_id", form.ID.String()),
		zap.Int("count", len(questions)))

	return mapper.ToQuestionDTOs(questions, true), nil
}

// List returns the ordered questions of an owned form
func (s *QuestionService) List(ctx context.Context, formID uuid.UUID) ([]domain.QuestionDTO, error) {
	form, err := loadOwnedForm(ctx, s.formRepo, formID)
	if err != nil {
		return nil, err
	}
	questions, err := s.questionRepo.ListByForm(ctx, form.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	return mapper.ToQuestionDTOs(questions, true), nil
}

// buildQuestion validates a request and converts it to a question without a form
func buildQuestion(req *domain.QuestionRequest) (*domain.Question, error) {
	if !req.Type.IsValid() {
		return nil, fmt.Errorf("%w: unknown type %q", ErrQuestionInvalid, req.Type)
	}
	label := strings.TrimSpace(req.Label)
	if label == "" {
		return nil, fmt.Errorf("%w: label is required", ErrQuestionInvalid)
	}

	options := make(domain.QuestionOptions, 0, len(req.Options))
	for i, opt := range req.Options {
		opt.Label = strings.TrimSpace(opt.Label)
		if opt.Label == "" {
			return nil, fmt.Errorf("%w: option %d has no label", ErrQuestionInvalid, i)
		}
		if opt.ID == "" {
			opt.ID = fmt.Sprintf("opt-%d", i+1)
		}
		options = append(options, opt)
	}
	if req.Type.IsChoice() && len(options) == 0 {
		return nil, fmt.Errorf("%w: %s questions need at least one option", ErrQuestionInvalid, req.Type)
	}

	if req.Type == domain.QuestionTypeLinearScale {
		scale, err := domain.LinearScaleFrom(req.Validation)
		if err != nil {
			return nil, fmt.Errorf("%w: malformed linear scale", ErrQuestionInvalid)
		}
		if scale != nil && scale.Min >= scale.Max {
			return nil, fmt.Errorf("%w: linear scale min must be below max", ErrQuestionInvalid)
		}
	}

	question := &domain.Question{
		Type:        req.Type,
		Label:       label,
		Description: req.Description,
		Required:    req.Required,
		Options:     options,
		Validation:  req.Validation,
		Order:       req.Order,
		Points:      1,
	}
	if req.ID != nil {
		question.ID = *req.ID
	}
	if req.Points != nil {
		question.Points = *req.Points
	}

	if req.CorrectAnswer != nil && strings.TrimSpace(*req.CorrectAnswer) != "" {
		answer := strings.TrimSpace(*req.CorrectAnswer)
		if req.Type.IsChoice() {
			resolved, ok := matchOption(options, answer)
			if !ok {
				return nil, ErrInvalidCorrectAnswer
			}
			answer = resolved
		}
		question.CorrectAnswer = &answer
	}

	return question, nil
}

// matchOption finds the option whose value or label equals answer
func matchOption(options domain.QuestionOptions, answer string) (string, bool) {
	for _, opt := range options {
		if opt.DisplayValue() == answer || opt.Label == answer {
			return opt.DisplayValue(), true
		}
	}
	return "", false
}
