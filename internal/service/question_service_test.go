package service_test

import (
	"testing"

	"github.com/formlytic/formlytic-api/internal/domain"
	"github.com/formlytic/formlytic-api/internal/repository"
	"github.com/formlytic/formlytic-api/internal/service"
	"github.com/formlytic/formlytic-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func createQuestionService(db *gorm.DB) *service.QuestionService {
	return service.NewQuestionService(
		repository.NewFormRepository(db),
		repository.NewQuestionRepository(db),
		zap.NewNop(),
	)
}

func TestQuestionService_Add_AppendsAndAssignsOptionIDs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createQuestionService(db)
	owner := testutil.CreateTestUser(t, db, "Owner")
	form := testutil.CreateTestForm(t, db, owner, "Survey")
	ctx := testutil.ContextFor(owner)

	first, err := svc.Add(ctx, form.ID, &domain.QuestionRequest{Type: domain.QuestionTypeShortText, Label: "Name"})
	require.NoError(t, err)
	assert.Equal(t, 0, first.Order)
	assert.Equal(t, 1, first.Points)

	second, err := svc.Add(ctx, form.ID, &domain.QuestionRequest{
		Type:    domain.QuestionTypeDropdown,
		Label:   "Country",
		Options: []domain.QuestionOption{{Label: "Norway"}, {Label: "India"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, second.Order)
	require.Len(t, second.Options, 2)
	assert.Equal(t, "opt-1", second.Options[0].ID)
	assert.Equal(t, "opt-2", second.Options[1].ID)
}

func TestQuestionService_Add_Validation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createQuestionService(db)
	owner := testutil.CreateTestUser(t, db, "Owner")
	form := testutil.CreateTestForm(t, db, owner, "Survey")
	ctx := testutil.ContextFor(owner)

	_, err := svc.Add(ctx, form.ID, &domain.QuestionRequest{Type: domain.QuestionTypeCheckboxes, Label: "Pick"})
	assert.ErrorIs(t, err, service.ErrQuestionInvalid)

	_, err = svc.Add(ctx, form.ID, &domain.QuestionRequest{
		Type:       domain.QuestionTypeLinearScale,
		Label:      "Rate",
		Validation: domain.JSONMap{"linearScale": map[string]interface{}{"min": 5, "max": 1}},
	})
	assert.ErrorIs(t, err, service.ErrQuestionInvalid)

	_, err = svc.Add(ctx, form.ID, &domain.QuestionRequest{
		Type:          domain.QuestionTypeMultipleChoice,
		Label:         "Capital",
		Options:       []domain.QuestionOption{{Label: "Oslo"}},
		CorrectAnswer: strPtr("Bergen"),
	})
	assert.ErrorIs(t, err, service.ErrInvalidCorrectAnswer)

	scale, err := svc.Add(ctx, form.ID, &domain.QuestionRequest{
		Type:       domain.QuestionTypeLinearScale,
		Label:      "Rate",
		Validation: domain.JSONMap{"linearScale": map[string]interface{}{"min": 1, "max": 5, "minLabel": "Bad"}},
	})
	require.NoError(t, err)
	assert.NotNil(t, scale.Validation["linearScale"])
}

func TestQuestionService_Add_OtherOwnersForm(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createQuestionService(db)
	owner := testutil.CreateTestUser(t, db, "Owner")
	other := testutil.CreateTestUser(t, db, "Other")
	form := testutil.CreateTestForm(t, db, owner, "Survey")

	_, err := svc.Add(testutil.ContextFor(other), form.ID, &domain.QuestionRequest{Type: domain.QuestionTypeShortText, Label: "Name"})
	assert.ErrorIs(t, err, service.ErrFormNotFound)
}

func TestQuestionService_Replace(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createQuestionService(db)
	owner := testutil.CreateTestUser(t, db, "Owner")
	form := testutil.CreateTestForm(t, db, owner, "Survey")
	ctx := testutil.ContextFor(owner)

	keep := testutil.CreateTestQuestion(t, db, form, domain.Question{Type: domain.QuestionTypeShortText, Label: "Keep", Order: 4})
	testutil.CreateTestQuestion(t, db, form, domain.Question{Type: domain.QuestionTypeShortText, Label: "Drop", Order: 5})

	out, err := svc.Replace(ctx, form.ID, []domain.QuestionRequest{
		{Type: domain.QuestionTypeLongText, Label: "New first", Order: 9},
		{ID: &keep.ID, Type: domain.QuestionTypeShortText, Label: "Kept", Required: true},
	})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, 0, out[0].Order)
	assert.Equal(t, keep.ID, out[1].ID)
	assert.Equal(t, 1, out[1].Order)

	listed, err := svc.List(ctx, form.ID)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "New first", listed[0].Label)
	assert.Equal(t, "Kept", listed[1].Label)
	assert.True(t, listed[1].Required)
}

func TestQuestionService_Replace_InvalidLeavesFormUntouched(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createQuestionService(db)
	owner := testutil.CreateTestUser(t, db, "Owner")
	form := testutil.CreateTestForm(t, db, owner, "Survey")
	ctx := testutil.ContextFor(owner)
	testutil.CreateTestQuestion(t, db, form, domain.Question{Type: domain.QuestionTypeShortText, Label: "Existing"})

	_, err := svc.Replace(ctx, form.ID, []domain.QuestionRequest{
		{Type: domain.QuestionTypeShortText, Label: "Fine"},
		{Type: domain.QuestionTypeMultipleChoice, Label: "No options"},
	})
	assert.ErrorIs(t, err, service.ErrQuestionInvalid)

	listed, err := svc.List(ctx, form.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Existing", listed[0].Label)
}
