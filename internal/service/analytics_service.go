package service

import (
	"context"
	"fmt"
	"time"

	"github.com/formlytic/formlytic-api/internal/domain"
	"github.com/formlytic/formlytic-api/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AnalyticsService struct {
	formRepo     *repository.FormRepository
	questionRepo *repository.QuestionRepository
	responseRepo *repository.ResponseRepository
	logger       *zap.Logger
}

func NewAnalyticsService(
	formRepo *repository.FormRepository,
	questionRepo *repository.QuestionRepository,
	responseRepo *repository.ResponseRepository,
	logger *zap.Logger,
) *AnalyticsService {
	return &AnalyticsService{
		formRepo:     formRepo,
		questionRepo: questionRepo,
		responseRepo: responseRepo,
		logger:       logger,
	}
}

// GetFormAnalytics tallies every stored response of an owned form
func (s *AnalyticsService) GetFormAnalytics(ctx context.Context, formID uuid.UUID) (*domain.FormAnalyticsDTO, error) {
	form, err := loadOwnedForm(ctx, s.formRepo, formID)
	if err != nil {
		return nil, err
	}

	questions, err := s.questionRepo.ListByForm(ctx, form.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}

	// newest first
	responses, err := s.responseRepo.ListAllByForm(ctx, form.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list responses: %w", err)
	}

	overview := domain.AnalyticsOverviewDTO{TotalResponses: len(responses)}
	if len(responses) > 0 {
		last := responses[0].CreatedAt.UTC().Format(time.RFC3339)
		overview.LastResponse = &last
	}
	if form.IsQuiz {
		overview.AverageScore, overview.AverageMaxScore = QuizAverages(responses)
	}

	return &domain.FormAnalyticsDTO{
		FormID:    form.ID,
		Overview:  overview,
		Questions: TallyAnswers(questions, responses),
	}, nil
}
