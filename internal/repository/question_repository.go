package repository

import (
	"context"

	"github.com/formlytic/formlytic-api/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuestionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

func (r *QuestionRepository) Create(ctx context.Context, question *domain.Question) error {
	return r.db.WithContext(ctx).Create(question).Error
}

func (r *QuestionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Question, error) {
	var question domain.Question
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&question).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

// ListByForm returns the questions of a form in display order
func (r *QuestionRepository) ListByForm(ctx context.Context, formID uuid.UUID) ([]domain.Question, error) {
	var questions []domain.Question
	err := r.db.WithContext(ctx).
		Where("form_id = ?", formID).
		Order("sort_order ASC").
		Order("created_at ASC").
		Find(&questions).Error
	return questions, err
}

// NextOrder returns the order value that appends a question at the end of the form
func (r *QuestionRepository) NextOrder(ctx context.Context, formID uuid.UUID) (int, error) {
	var maxOrder *int
	err := r.db.WithContext(ctx).Model(&domain.Question{}).
		Where("form_id = ?", formID).
		Select("MAX(sort_order)").
		Scan(&maxOrder).Error
	if err != nil {
		return 0, err
	}
	if maxOrder == nil {
		return 0, nil
	}
	return *maxOrder + 1, nil
}

// ReplaceForForm makes questions the complete list of the form in one
// transaction. Questions whose id already belongs to the form are updated in
// place; all others are inserted, and questions missing from the list are removed.
func (r *QuestionRepository) ReplaceForForm(ctx context.Context, formID uuid.UUID, questions []domain.Question) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existingIDs []uuid.UUID
		if err := tx.Model(&domain.Question{}).
			Where("form_id = ?", formID).
			Pluck("id", &existingIDs).Error; err != nil {
			return err
		}
		existing := make(map[uuid.UUID]bool, len(existingIDs))
		for _, id := range existingIDs {
			existing[id] = true
		}

		kept := make([]uuid.UUID, 0, len(questions))
		for i := range questions {
			q := &questions[i]
			q.FormID = formID
			if q.ID != uuid.Nil && existing[q.ID] {
				if err := tx.Omit("created_at").Save(q).Error; err != nil {
					return err
				}
				delete(existing, q.ID)
			} else {
				q.ID = uuid.Nil
				if err := tx.Create(q).Error; err != nil {
					return err
				}
			}
			kept = append(kept, q.ID)
		}

		query := tx.Where("form_id = ?", formID)
		if len(kept) > 0 {
			query = query.Where("id NOT IN ?", kept)
		}
		return query.Delete(&domain.Question{}).Error
	})
}
