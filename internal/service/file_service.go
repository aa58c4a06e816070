package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/formlytic/formlytic-api/internal/domain"
	"github.com/formlytic/formlytic-api/internal/mapper"
	"github.com/formlytic/formlytic-api/internal/repository"
	"github.com/formlytic/formlytic-api/internal/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DefaultAllowedContentTypes are accepted when no list is configured
var DefaultAllowedContentTypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// FileDownload is an open stored file with its metadata. Callers close Body.
type FileDownload struct {
	File domain.FileDTO
	Body io.ReadCloser
}

// FileService stores answer attachments of public forms
type FileService struct {
	formRepo     *repository.FormRepository
	questionRepo *repository.QuestionRepository
	fileRepo     *repository.FileRepository
	storage      storage.Storage
	maxBytes     int64
	allowed      map[string]bool
	logger       *zap.Logger
}

func NewFileService(
	formRepo *repository.FormRepository,
	questionRepo *repository.QuestionRepository,
	fileRepo *repository.FileRepository,
	storage storage.Storage,
	maxBytes int64,
	allowedContentTypes []string,
	logger *zap.Logger,
) *FileService {
	if len(allowedContentTypes) == 0 {
		allowedContentTypes = DefaultAllowedContentTypes
	}
	allowed := make(map[string]bool, len(allowedContentTypes))
	for _, ct := range allowedContentTypes {
		allowed[strings.ToLower(strings.TrimSpace(ct))] = true
	}
	return &FileService{
		formRepo:     formRepo,
		questionRepo: questionRepo,
		fileRepo:     fileRepo,
		storage:      storage,
		maxBytes:     maxBytes,
		allowed:      allowed,
		logger:       logger,
	}
}

// MaxBytes is the largest accepted upload
func (s *FileService) MaxBytes() int64 {
	return s.maxBytes
}

// Upload stores an attachment for an open form. When questionID is set it
// must reference a file_upload question of that form.
func (s *FileService) Upload(ctx context.Context, publicID string, questionID *uuid.UUID, filename, contentType string, data io.Reader) (*domain.FileDTO, error) {
	form, err := s.formRepo.GetByPublicID(ctx, publicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFormNotFound
		}
		return nil, fmt.Errorf("failed to get form: %w", err)
	}
	if !form.IsOpen() {
		return nil, ErrFormNotAvailable
	}

	if questionID != nil {
		q, err := s.questionRepo.GetByID(ctx, *questionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrQuestionNotFound
			}
			return nil, fmt.Errorf("failed to get question: %w", err)
		}
		if q.FormID != form.ID || q.Type != domain.QuestionTypeFileUpload {
			return nil, ErrQuestionNotFound
		}
	}

	mediaType := normalizeContentType(contentType)
	if !s.allowed[mediaType] {
		return nil, fmt.Errorf("%w: %s", ErrFileTypeNotAllowed, mediaType)
	}

	filename = filepath.Base(strings.TrimSpace(filename))
	if filename == "." || filename == string(filepath.Separator) || filename == "" {
		filename = "upload"
	}

	// One byte past the limit tells an oversized upload from an exact fit
	reader := data
	if s.maxBytes > 0 {
		reader = io.LimitReader(data, s.maxBytes+1)
	}

	storagePath, size, err := s.storage.Upload(ctx, "forms/"+form.ID.String(), filename, mediaType, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to upload file: %w", err)
	}
	if s.maxBytes > 0 && size > s.maxBytes {
		s.cleanup(ctx, storagePath)
		return nil, ErrFileTooLarge
	}

	file := &domain.File{
		FormID:      form.ID,
		QuestionID:  questionID,
		Filename:    filename,
		ContentType: mediaType,
		Size:        size,
		StoragePath: storagePath,
	}
	if err := s.fileRepo.Create(ctx, file); err != nil {
		s.cleanup(ctx, storagePath)
		return nil, fmt.Errorf("failed to create file record: %w", err)
	}

	s.logger.Info("file uploaded",
		zap.String("form_id", form.ID.String()),
		zap.String("file_id", file.ID.String()),
		zap.Int64("size", size))

	dto := mapper.ToFileDTO(file)
	return &dto, nil
}

func (s *FileService) cleanup(ctx context.Context, storagePath string) {
	if err := s.storage.Delete(ctx, storagePath); err != nil {
		s.logger.Warn("failed to cleanup file from storage",
			zap.Error(err),
			zap.String("storagePath", storagePath))
	}
}

// Download opens a file of a form owned by the caller
func (s *FileService) Download(ctx context.Context, fileID uuid.UUID) (*FileDownload, error) {
	file, err := s.ownedFile(ctx, fileID)
	if err != nil {
		return nil, err
	}

	body, err := s.storage.Download(ctx, file.StoragePath)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("failed to download file: %w", err)
	}

	return &FileDownload{File: mapper.ToFileDTO(file), Body: body}, nil
}

// ListByForm returns the attachments of an owned form
func (s *FileService) ListByForm(ctx context.Context, formID uuid.UUID) ([]domain.FileDTO, error) {
	form, err := loadOwnedForm(ctx, s.formRepo, formID)
	if err != nil {
		return nil, err
	}
	files, err := s.fileRepo.ListByForm(ctx, form.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}
	dtos := make([]domain.FileDTO, len(files))
	for i := range files {
		dtos[i] = mapper.ToFileDTO(&files[i])
	}
	return dtos, nil
}

// Delete removes an attachment of an owned form
func (s *FileService) Delete(ctx context.Context, fileID uuid.UUID) error {
	file, err := s.ownedFile(ctx, fileID)
	if err != nil {
		return err
	}
	if err := s.fileRepo.Delete(ctx, file.ID); err != nil {
		return fmt.Errorf("failed to delete file record: %w", err)
	}
	s.cleanup(ctx, file.StoragePath)
	return nil
}

func (s *FileService) ownedFile(ctx context.Context, fileID uuid.UUID) (*domain.File, error) {
	file, err := s.fileRepo.GetByID(ctx, fileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("failed to get file: %w", err)
	}
	if _, err := loadOwnedForm(ctx, s.formRepo, file.FormID); err != nil {
		if errors.Is(err, ErrFormNotFound) {
			return nil, ErrFileNotFound
		}
		return nil, err
	}
	return file, nil
}

func normalizeContentType(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return strings.ToLower(mediaType)
}
