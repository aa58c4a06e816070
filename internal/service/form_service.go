package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/formlytic/formlytic-api/internal/auth"
	"github.com/formlytic/formlytic-api/internal/domain"
	"github.com/formlytic/formlytic-api/internal/mapper"
	"github.com/formlytic/formlytic-api/internal/repository"
	"github.com/formlytic/formlytic-api/internal/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	publicIDLength   = 12
	publicIDAttempts = 5
)

type FormService struct {
	formRepo      *repository.FormRepository
	questionRepo  *repository.QuestionRepository
	fileRepo      *repository.FileRepository
	store         storage.Storage
	publicBaseURL string
	logger        *zap.Logger
}

func NewFormService(
	formRepo *repository.FormRepository,
	questionRepo *repository.QuestionRepository,
	fileRepo *repository.FileRepository,
	store storage.Storage,
	publicBaseURL string,
	logger *zap.Logger,
) *FormService {
	return &FormService{
		formRepo:      formRepo,
		questionRepo:  questionRepo,
		fileRepo:      fileRepo,
		store:         store,
		publicBaseURL: publicBaseURL,
		logger:        logger,
	}
}

// requireCreator returns the id of the signed-in user. API key callers can
// read any form but cannot own one.
func requireCreator(ctx context.Context) (uuid.UUID, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok || userCtx.IsSystem || userCtx.UserID == uuid.Nil {
		return uuid.Nil, ErrUnauthorized
	}
	return userCtx.UserID, nil
}

// loadOwnedForm loads a form visible to the caller. Missing forms and forms of
// other creators both map to ErrFormNotFound.
func loadOwnedForm(ctx context.Context, repo *repository.FormRepository, id uuid.UUID) (*domain.Form, error) {
	form, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFormNotFound
		}
		return nil, fmt.Errorf("failed to get form: %w", err)
	}
	return form, nil
}

// newPublicID generates a short unused public identifier
func newPublicID(ctx context.Context, repo *repository.FormRepository) (string, error) {
	for i := 0; i < publicIDAttempts; i++ {
		candidate := strings.ReplaceAll(uuid.New().String(), "-", "")[:publicIDLength]
		exists, err := repo.PublicIDExists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check public id: %w", err)
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: could not allocate a public id", ErrConflict)
}

func (s *FormService) Create(ctx context.Context, req *domain.CreateFormRequest) (*domain.FormDTO, error) {
	creatorID, err := requireCreator(ctx)
	if err != nil {
		return nil, err
	}

	title, err := normalizeTitle(req.Title)
	if err != nil {
		return nil, err
	}

	publicID, err := newPublicID(ctx, s.formRepo)
	if err != nil {
		return nil, err
	}

	settings := domain.DefaultFormSettings()
	if req.Settings != nil {
		settings = normalizeSettings(*req.Settings)
	}

	form := &domain.Form{
		Title:       title,
		Description: req.Description,
		CreatorID:   creatorID,
		IsActive:    true,
		PublicID:    publicID,
		Settings:    settings,
		TimerType:   domain.TimerTypeNone,
	}
	if err := s.formRepo.Create(ctx, form); err != nil {
		return nil, fmt.Errorf("failed to create form: %w", err)
	}

	s.logger.Info("form created",
		zap.String("form_id", form.ID.String()),
		zap.String("creator_id", creatorID.String()))

	dto := mapper.ToFormDTO(form, domain.FormCounts{}, s.publicBaseURL)
	return &dto, nil
}

// List returns the caller's forms with question and response counts
func (s *FormService) List(ctx context.Context, page, pageSize int, filter repository.FormFilter, sort repository.SortConfig) (*domain.PaginatedResponse, error) {
	page, pageSize = repository.NormalizePage(page, pageSize)

	forms, total, err := s.formRepo.List(ctx, page, pageSize, filter, sort)
	if err != nil {
		return nil, fmt.Errorf("failed to list forms: %w", err)
	}

	dtos, err := s.withCounts(ctx, forms)
	if err != nil {
		return nil, err
	}

	resp := domain.NewPaginatedResponse(dtos, total, page, pageSize)
	return &resp, nil
}

func (s *FormService) withCounts(ctx context.Context, forms []domain.Form) ([]domain.FormDTO, error) {
	ids := make([]uuid.UUID, len(forms))
	for i := range forms {
		ids[i] = forms[i].ID
	}
	counts, err := s.formRepo.Counts(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to count form contents: %w", err)
	}

	dtos := make([]domain.FormDTO, len(forms))
	for i := range forms {
		dtos[i] = mapper.ToFormDTO(&forms[i], counts[forms[i].ID], s.publicBaseURL)
	}
	return dtos, nil
}

// Get returns an owned form with its ordered questions
func (s *FormService) Get(ctx context.Context, id uuid.UUID) (*domain.FormWithQuestionsDTO, error) {
	form, err := s.formRepo.GetByIDWithQuestions(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFormNotFound
		}
		return nil, fmt.Errorf("failed to get form: %w", err)
	}

	counts, err := s.formRepo.Counts(ctx, []uuid.UUID{form.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to count form contents: %w", err)
	}

	dto := mapper.ToFormWithQuestionsDTO(form, form.Questions, counts[form.ID], s.publicBaseURL)
	return &dto, nil
}

// Update applies the non-nil fields of req
func (s *FormService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateFormRequest) (*domain.FormDTO, error) {
	form, err := loadOwnedForm(ctx, s.formRepo, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title, err := normalizeTitle(*req.Title)
		if err != nil {
			return nil, err
		}
		form.Title = title
	}
	if req.Description != nil {
		form.Description = *req.Description
	}
	if req.IsActive != nil {
		form.IsActive = *req.IsActive
	}
	if req.IsPublished != nil {
		form.IsPublished = *req.IsPublished
	}
	if req.Settings != nil {
		form.Settings = normalizeSettings(*req.Settings)
	}

	if err := s.formRepo.Update(ctx, form); err != nil {
		return nil, fmt.Errorf("failed to update form: %w", err)
	}

	counts, err := s.formRepo.Counts(ctx, []uuid.UUID{form.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to count form contents: %w", err)
	}

	dto := mapper.ToFormDTO(form, counts[form.ID], s.publicBaseURL)
	return &dto, nil
}

// Delete removes the form with its questions, responses and uploaded files
func (s *FormService) Delete(ctx context.Context, id uuid.UUID) error {
	form, err := loadOwnedForm(ctx, s.formRepo, id)
	if err != nil {
		return err
	}

	files, err := s.fileRepo.ListByForm(ctx, form.ID)
	if err != nil {
		return fmt.Errorf("failed to list form files: %w", err)
	}

	if err := s.formRepo.Delete(ctx, form.ID); err != nil {
		return fmt.Errorf("failed to delete form: %w", err)
	}

	// Blobs go after the rows so a storage failure never leaves dangling records
	if s.store != nil {
		for _, f := range files {
			if err := s.store.Delete(ctx, f.StoragePath); err != nil {
				s.logger.Warn("failed to delete stored file",
					zap.Error(err),
					zap.String("form_id", form.ID.String()),
					zap.String("path", f.StoragePath))
			}
		}
	}

	s.logger.Info("form deleted", zap.String("form_id", form.ID.String()), zap.Int("files", len(files)))
	return nil
}

func normalizeSettings(in domain.FormSettings) domain.FormSettings {
	if strings.TrimSpace(in.ConfirmationMessage) == "" {
		in.ConfirmationMessage = domain.DefaultConfirmationMessage
	}
	return in
}

// normalizeTitle trims a form or quiz title and rejects blank ones
func normalizeTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	return title, nil
}
