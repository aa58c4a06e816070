package repository_test

import (
	"context"
	"testing"

	"github.com/formlytic/formlytic-api/internal/domain"
	"github.com/formlytic/formlytic-api/internal/repository"
	"github.com/formlytic/formlytic-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestionRepository_NextOrder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewQuestionRepository(db)
	owner := testutil.CreateTestUser(t, db, "Owner")
	form := testutil.CreateTestForm(t, db, owner, "Form")

	next, err := repo.NextOrder(context.Background(), form.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, next)

	testutil.CreateTestQuestion(t, db, form, domain.Question{Type: domain.QuestionTypeShortText, Order: 4})

	next, err = repo.NextOrder(context.Background(), form.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, next)
}

func TestQuestionRepository_ReplaceForForm(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewQuestionRepository(db)
	owner := testutil.CreateTestUser(t, db, "Owner")
	form := testutil.CreateTestForm(t, db, owner, "Form")

	keep := testutil.CreateTestQuestion(t, db, form, domain.Question{Type: domain.QuestionTypeShortText, Label: "Name"})
	drop := testutil.CreateTestQuestion(t, db, form, domain.Question{Type: domain.QuestionTypeLongText, Label: "Bio", Order: 1})

	replacement := []domain.Question{
		{Type: domain.QuestionTypeDropdown, Label: "Colour", Order: 0, Options: testutil.Options("Red", "Blue")},
		{BaseModel: domain.BaseModel{ID: keep.ID}, Type: domain.QuestionTypeShortText, Label: "Full name", Order: 1},
	}
	require.NoError(t, repo.ReplaceForForm(context.Background(), form.ID, replacement))

	questions, err := repo.ListByForm(context.Background(), form.ID)
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, "Colour", questions[0].Label)
	assert.Len(t, questions[0].Options, 2)
	assert.Equal(t, keep.ID, questions[1].ID)
	assert.Equal(t, "Full name", questions[1].Label)

	_, err = repo.GetByID(context.Background(), drop.ID)
	assert.Error(t, err)
}

func TestQuestionRepository_ReplaceWithEmptyListClearsForm(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewQuestionRepository(db)
	owner := testutil.CreateTestUser(t, db, "Owner")
	form := testutil.CreateTestForm(t, db, owner, "Form")
	testutil.CreateTestQuestion(t, db, form, domain.Question{Type: domain.QuestionTypeShortText})

	require.NoError(t, repo.ReplaceForForm(context.Background(), form.ID, nil))

	questions, err := repo.ListByForm(context.Background(), form.ID)
	require.NoError(t, err)
	assert.Empty(t, questions)
}
