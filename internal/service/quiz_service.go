package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/formlytic/formlytic-api/internal/domain"
	"github.com/formlytic/formlytic-api/internal/logger"
	"github.com/formlytic/formlytic-api/internal/mapper"
	"github.com/formlytic/formlytic-api/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type QuizService struct {
	formRepo      *repository.FormRepository
	questionRepo  *repository.QuestionRepository
	responseRepo  *repository.ResponseRepository
	publicBaseURL string
	logger        *zap.Logger
}

func NewQuizService(
	formRepo *repository.FormRepository,
	questionRepo *repository.QuestionRepository,
	responseRepo *repository.ResponseRepository,
	publicBaseURL string,
	logger *zap.Logger,
) *QuizService {
	return &QuizService{
		formRepo:      formRepo,
		questionRepo:  questionRepo,
		responseRepo:  responseRepo,
		publicBaseURL: publicBaseURL,
		logger:        logger,
	}
}

// Create stores a new active quiz owned by the caller
func (s *QuizService) Create(ctx context.Context, req *domain.CreateQuizRequest) (*domain.FormDTO, error) {
	creatorID, err := requireCreator(ctx)
	if err != nil {
		return nil, err
	}

	title, err := normalizeTitle(req.Title)
	if err != nil {
		return nil, err
	}

	var accessCode *string
	if code := strings.TrimSpace(req.AccessCode); code != "" {
		exists, err := s.formRepo.AccessCodeExists(ctx, code)
		if err != nil {
			return nil, fmt.Errorf("failed to check access code: %w", err)
		}
		if exists {
			return nil, ErrAccessCodeTaken
		}
		accessCode = &code
	}

	publicID, err := newPublicID(ctx, s.formRepo)
	if err != nil {
		return nil, err
	}

	timerType := req.TimerType
	if timerType == "" {
		timerType = domain.TimerTypeNone
	}

	quiz := &domain.Form{
		Title:            title,
		Description:      req.Description,
		CreatorID:        creatorID,
		IsActive:         true,
		PublicID:         publicID,
		Settings:         domain.DefaultFormSettings(),
		IsQuiz:           true,
		AccessCode:       accessCode,
		TimerType:        timerType,
		TimeLimit:        req.TimeLimit,
		PerQuestionTime:  req.PerQuestionTime,
		AllowSkip:        req.AllowSkip,
		OrganizationName: strings.TrimSpace(req.College),
	}
	if err := s.formRepo.Create(ctx, quiz); err != nil {
		if accessCode != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAccessCodeTaken
		}
		return nil, fmt.Errorf("failed to create quiz: %w", err)
	}

	s.logger.Info("quiz created",
		zap.String("form_id", quiz.ID.String()),
		zap.String("creator_id", creatorID.String()))

	dto := mapper.ToFormDTO(quiz, domain.FormCounts{}, s.publicBaseURL)
	return &dto, nil
}

// ListMine returns the caller's quizzes newest first with question counts
func (s *QuizService) ListMine(ctx context.Context) ([]domain.FormDTO, error) {
	creatorID, err := requireCreator(ctx)
	if err != nil {
		return nil, err
	}

	isQuiz := true
	quizzes, err := s.formRepo.ListByCreator(ctx, creatorID, repository.FormFilter{IsQuiz: &isQuiz})
	if err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}

	ids := make([]uuid.UUID, len(quizzes))
	for i := range quizzes {
		ids[i] = quizzes[i].ID
	}
	counts, err := s.formRepo.Counts(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to count quiz questions: %w", err)
	}

	dtos := make([]domain.FormDTO, len(quizzes))
	for i := range quizzes {
		dtos[i] = mapper.ToFormDTO(&quizzes[i], counts[quizzes[i].ID], s.publicBaseURL)
	}
	return dtos, nil
}

// AddQuestion appends a multiple-choice question to an owned quiz
func (s *QuizService) AddQuestion(ctx context.Context, quizID uuid.UUID, req *domain.AddQuizQuestionRequest) (*domain.QuestionDTO, error) {
	quiz, err := loadOwnedForm(ctx, s.formRepo, quizID)
	if err != nil {
		if errors.Is(err, ErrFormNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, err
	}
	if !quiz.IsQuiz {
		return nil, ErrQuizNotFound
	}

	label := strings.TrimSpace(req.Question)
	if label == "" {
		return nil, fmt.Errorf("%w: question text is required", ErrQuestionInvalid)
	}

	options := make(domain.QuestionOptions, 0, len(req.Options))
	for i, text := range req.Options {
		text = strings.TrimSpace(text)
		if text == "" {
			return nil, fmt.Errorf("%w: option %d is empty", ErrQuestionInvalid, i)
		}
		options = append(options, domain.QuestionOption{
			ID:    fmt.Sprintf("opt-%d", i+1),
			Label: text,
			Value: text,
		})
	}
	if len(options) == 0 {
		return nil, fmt.Errorf("%w: multiple_choice questions need at least one option", ErrQuestionInvalid)
	}

	correct, err := ResolveCorrectAnswer(options, req.CorrectAnswer)
	if err != nil {
		return nil, err
	}

	question := &domain.Question{
		FormID:        quiz.ID,
		Type:          domain.QuestionTypeMultipleChoice,
		Label:         label,
		Options:       options,
		CorrectAnswer: correct,
		Points:        1,
	}
	if req.Points != nil {
		question.Points = *req.Points
	}
	if req.Order != nil {
		question.Order = *req.Order
	} else {
		next, err := s.questionRepo.NextOrder(ctx, quiz.ID)
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

// ResolveCorrectAnswer turns an option index or option text into the stored
// option text. A nil or empty answer leaves the question ungraded.
func ResolveCorrectAnswer(options domain.QuestionOptions, answer interface{}) (*string, error) {
	pick := func(i int) (*string, error) {
		if i < 0 || i >= len(options) {
			return nil, ErrInvalidCorrectAnswer
		}
		v := options[i].DisplayValue()
		return &v, nil
	}

	switch v := answer.(type) {
	case nil:
		return nil, nil
	case float64:
		if v != math.Trunc(v) {
			return nil, ErrInvalidCorrectAnswer
		}
		return pick(int(v))
	case int:
		return pick(v)
	case string:
		text := strings.TrimSpace(v)
		if text == "" {
			return nil, nil
		}
		if resolved, ok := matchOption(options, text); ok {
			return &resolved, nil
		}
		if i, err := strconv.Atoi(text); err == nil {
			return pick(i)
		}
		return nil, ErrInvalidCorrectAnswer
	default:
		return nil, ErrInvalidCorrectAnswer
	}
}

// GetPublic looks a quiz up by public id, then by id. Correct answers are stripped.
func (s *QuizService) GetPublic(ctx context.Context, idOrPublicID string) (*domain.PublicFormDTO, error) {
	quiz, err := s.formRepo.GetByPublicID(ctx, idOrPublicID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}
	if quiz == nil || !quiz.IsQuiz {
		id, parseErr := uuid.Parse(idOrPublicID)
		if parseErr != nil {
			return nil, ErrQuizNotFound
		}
		quiz, err = s.loadQuiz(ctx, id)
		if err != nil {
			return nil, err
		}
	}
	if !quiz.IsActive {
		return nil, ErrQuizNotFound
	}
	return s.publicView(ctx, quiz)
}

// GetByAccessCode returns the quiz behind an access code
func (s *QuizService) GetByAccessCode(ctx context.Context, code string) (*domain.PublicFormDTO, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrQuizNotFound
	}
	quiz, err := s.formRepo.GetQuizByAccessCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}
	if !quiz.IsActive {
		return nil, ErrQuizNotFound
	}
	return s.publicView(ctx, quiz)
}

func (s *QuizService) loadQuiz(ctx context.Context, id uuid.UUID) (*domain.Form, error) {
	quiz, err := s.formRepo.GetUnscopedByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}
	if !quiz.IsQuiz {
		return nil, ErrQuizNotFound
	}
	return quiz, nil
}

func (s *QuizService) publicView(ctx context.Context, quiz *domain.Form) (*domain.PublicFormDTO, error) {
	questions, err := s.questionRepo.ListByForm(ctx, quiz.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	dto := mapper.ToPublicFormDTO(quiz, questions)
	return &dto, nil
}

// Submit grades an attempt and stores it as a quiz response
func (s *QuizService) Submit(ctx context.Context, req *domain.QuizSubmitRequest, client ClientInfo) (*domain.QuizSubmitResult, error) {
	if strings.TrimSpace(req.FormID) == "" || req.Answers == nil {
		return nil, fmt.Errorf("%w: formId and answers are required", ErrInvalidInput)
	}

	id, err := uuid.Parse(strings.TrimSpace(req.FormID))
	if err != nil {
		return nil, ErrQuizNotFound
	}
	quiz, err := s.loadQuiz(ctx, id)
	if err != nil {
		return nil, err
	}
	if !quiz.IsActive {
		return nil, ErrQuizNotFound
	}

	questions, err := s.questionRepo.ListByForm(ctx, quiz.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}

	graded := GradeQuiz(questions, req.Answers)

	metadata := req.ParticipantInfo
	if metadata == nil {
		metadata = domain.JSONMap{}
	}
	timeTaken := wholeSeconds(req.TimeTaken)

	now := time.Now().UTC()
	score, maxScore := graded.Score, graded.MaxScore
	response := &domain.Response{
		FormID:        quiz.ID,
		Answers:       domain.JSONMap(req.Answers),
		Metadata:      metadata,
		IPAddress:     client.IPAddress,
		UserAgent:     client.UserAgent,
		IsQuizAttempt: true,
		Score:         &score,
		MaxScore:      &maxScore,
		TimeTaken:     timeTaken,
		CompletedAt:   &now,
	}
	if err := s.responseRepo.Create(ctx, response); err != nil {
		return nil, fmt.Errorf("failed to store quiz attempt: %w", err)
	}

	logger.WithForm(s.logger, quiz.ID.String(), quiz.PublicID).Info("quiz attempt graded",
		zap.String("response_id", response.ID.String()),
		zap.Int("score", score),
		zap.Int("max_score", maxScore),
		logger.RespondentIP(client.IPAddress))

	return &domain.QuizSubmitResult{
		Success:    true,
		Score:      score,
		MaxScore:   maxScore,
		ResponseID: response.ID,
		Results:    graded.Results,
	}, nil
}

// wholeSeconds rounds a client-reported duration, clamping it to [0, MaxInt32]
func wholeSeconds(v float64) int {
	switch {
	case math.IsNaN(v) || v <= 0:
		return 0
	case v >= math.MaxInt32:
		return math.MaxInt32
	}
	return int(math.Round(v))
}
