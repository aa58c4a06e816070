package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/formlytic/formlytic-api/internal/domain"
	"github.com/formlytic/formlytic-api/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CSVExport is a rendered response export
type CSVExport struct {
	Filename string
	Content  []byte
}

type ExportService struct {
	formRepo     *repository.FormRepository
	questionRepo *repository.QuestionRepository
	responseRepo *repository.ResponseRepository
	logger       *zap.Logger
}

func NewExportService(
	formRepo *repository.FormRepository,
	questionRepo *repository.QuestionRepository,
	responseRepo *repository.ResponseRepository,
	logger *zap.Logger,
) *ExportService {
	return &ExportService{
		formRepo:     formRepo,
		questionRepo: questionRepo,
		responseRepo: responseRepo,
		logger:       logger,
	}
}

// ExportCSV renders every response of an owned form, newest first, with one
// column per answer-collecting question
func (s *ExportService) ExportCSV(ctx context.Context, formID uuid.UUID) (*CSVExport, error) {
	form, err := loadOwnedForm(ctx, s.formRepo, formID)
	if err != nil {
		return nil, err
	}

	questions, err := s.questionRepo.ListByForm(ctx, form.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	responses, err := s.responseRepo.ListAllByForm(ctx, form.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list responses: %w", err)
	}

	content, err := RenderResponsesCSV(questions, responses)
	if err != nil {
		return nil, err
	}

	s.logger.Info("responses exported",
		zap.String("form_id", form.ID.String()),
		zap.Int("rows", len(responses)))

	return &CSVExport{
		Filename: fmt.Sprintf("form-%s-responses.csv", form.ID),
		Content:  content,
	}, nil
}

// RenderResponsesCSV writes the header and one row per response in the given order
func RenderResponsesCSV(questions []domain.Question, responses []domain.Response) ([]byte, error) {
	columns := make([]domain.Question, 0, len(questions))
	for _, q := range questions {
		if q.Type.CollectsAnswer() {
			columns = append(columns, q)
		}
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := make([]string, 0, len(columns)+2)
	header = append(header, "Response ID", "Submitted At")
	for _, q := range columns {
		header = append(header, q.Label)
	}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, r := range responses {
		row := make([]string, 0, len(header))
		row = append(row, r.ID.String(), r.CreatedAt.UTC().Format(time.RFC3339))
		for _, q := range columns {
			cell, _ := AnswerString(r.Answers[q.ID.String()])
			row = append(row, cell)
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
