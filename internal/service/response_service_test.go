package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/formlytic/formlytic-api/internal/domain"
	"github.com/formlytic/formlytic-api/internal/email"
	"github.com/formlytic/formlytic-api/internal/repository"
	"github.com/formlytic/formlytic-api/internal/service"
	"github.com/formlytic/formlytic-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type recordingSender struct {
	sent []email.Message
	err  error
}

func (s *recordingSender) Send(_ context.Context, msg email.Message) error {
	s.sent = append(s.sent, msg)
	return s.err
}

func createResponseService(db *gorm.DB, sender email.Sender) *service.ResponseService {
	return service.NewResponseService(
		repository.NewFormRepository(db),
		repository.NewQuestionRepository(db),
		repository.NewResponseRepository(db),
		repository.NewUserRepository(db),
		sender,
		"https://forms.example.com",
		zap.NewNop(),
	)
}

var respondent = service.ClientInfo{IPAddress: "203.0.113.7", UserAgent: "test-agent"}

func TestResponseService_GetPublicForm(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createResponseService(db, nil)
	owner := testutil.CreateTestUser(t, db, "Owner")
	form := testutil.CreateTestForm(t, db, owner, "Survey")
	testutil.CreateTestQuestion(t, db, form, domain.Question{
		Type:          domain.QuestionTypeMultipleChoice,
		Options:       testutil.Options("A", "B"),
		CorrectAnswer: strPtr("A"),
	})

	got, err := svc.GetPublicForm(context.Background(), form.PublicID)
	require.NoError(t, err)
	require.Len(t, got.Questions, 1)
	assert.Nil(t, got.Questions[0].CorrectAnswer)

	_, err = svc.GetPublicForm(context.Background(), "missing")
	assert.ErrorIs(t, err, service.ErrFormNotFound)

	require.NoError(t, db.Model(form).Update("is_published", false).Error)
	_, err = svc.GetPublicForm(context.Background(), form.PublicID)
	assert.ErrorIs(t, err, service.ErrFormNotAvailable)

	t.Run("creator previews the unpublished form", func(t *testing.T) {
		got, err := svc.GetPublicForm(testutil.ContextFor(owner), form.PublicID)
		require.NoError(t, err)
		assert.Equal(t, form.ID, got.ID)
	})

	t.Run("other users still get not available", func(t *testing.T) {
		other := testutil.CreateTestUser(t, db, "Other")
		_, err := svc.GetPublicForm(testutil.ContextFor(other), form.PublicID)
		assert.ErrorIs(t, err, service.ErrFormNotAvailable)
	})

	t.Run("preview does not open submissions", func(t *testing.T) {
		_, err := svc.Submit(testutil.ContextFor(owner), form.PublicID, &domain.SubmitResponseRequest{
			Answers: domain.JSONMap{},
		}, respondent)
		assert.ErrorIs(t, err, service.ErrFormNotAvailable)
	})
}

func TestResponseService_Submit(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createResponseService(db, nil)
	owner := testutil.CreateTestUser(t, db, "Owner")
	form := testutil.CreateTestForm(t, db, owner, "Survey")
	q := testutil.CreateTestQuestion(t, db, form, domain.Question{Type: domain.QuestionTypeShortText, Required: true})

	result, err := svc.Submit(context.Background(), form.PublicID, &domain.SubmitResponseRequest{
		Answers: domain.JSONMap{q.ID.String(): "Ann"},
	}, respondent)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, domain.DefaultConfirmationMessage, result.ConfirmationMessage)

	var stored domain.Response
	require.NoError(t, db.First(&stored, "id = ?", result.ResponseID).Error)
	assert.Equal(t, "Ann", stored.Answers[q.ID.String()])
	assert.Equal(t, "203.0.113.7", stored.IPAddress)
	assert.Equal(t, "test-agent", stored.UserAgent)
	assert.NotEmpty(t, stored.Metadata["submittedAt"])
	assert.False(t, stored.IsQuizAttempt)
}

func TestResponseService_Submit_MissingRequired(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createResponseService(db, nil)
	owner := testutil.CreateTestUser(t, db, "Owner")
	form := testutil.CreateTestForm(t, db, owner, "Survey")
	required := testutil.CreateTestQuestion(t, db, form, domain.Question{Type: domain.QuestionTypeShortText, Required: true})
	testutil.CreateTestQuestion(t, db, form, domain.Question{Type: domain.QuestionTypeSectionBreak, Required: true})
	optional := testutil.CreateTestQuestion(t, db, form, domain.Question{Type: domain.QuestionTypeShortText})

	_, err := svc.Submit(context.Background(), form.PublicID, &domain.SubmitResponseRequest{
		Answers: domain.JSONMap{required.ID.String(): "", optional.ID.String(): "x"},
	}, respondent)
	require.ErrorIs(t, err, service.ErrMissingRequired)

	var missing *service.MissingAnswersError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{required.ID.String()}, missing.QuestionIDs)

	_, err = svc.Submit(context.Background(), form.PublicID, &domain.SubmitResponseRequest{}, respondent)
	assert.ErrorIs(t, err, service.ErrAnswersRequired)
}

func TestResponseService_Submit_DuplicateIP(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createResponseService(db, nil)
	owner := testutil.CreateTestUser(t, db, "Owner")
	form := testutil.CreateTestForm(t, db, owner, "Survey")
	req := &domain.SubmitResponseRequest{Answers: domain.JSONMap{}}

	_, err := svc.Submit(context.Background(), form.PublicID, req, respondent)
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), form.PublicID, req, respondent)
	assert.ErrorIs(t, err, service.ErrDuplicateSubmission)

	_, err = svc.Submit(context.Background(), form.PublicID, req, service.ClientInfo{IPAddress: "198.51.100.1"})
	assert.NoError(t, err)

	settings := form.Settings
	settings.AllowMultipleSubmissions = true
	require.NoError(t, db.Model(form).Update("settings", settings).Error)

	_, err = svc.Submit(context.Background(), form.PublicID, req, respondent)
	assert.NoError(t, err)
}

func TestResponseService_Submit_NotifiesCreator(t *testing.T) {
	db := testutil.SetupTestDB(t)
	sender := &recordingSender{err: errors.New("smtp down")}
	svc := createResponseService(db, sender)
	owner := testutil.CreateTestUser(t, db, "Owner")
	form := testutil.CreateTestForm(t, db, owner, "Survey")

	_, err := svc.Submit(context.Background(), form.PublicID, &domain.SubmitResponseRequest{Answers: domain.JSONMap{}}, respondent)
	require.NoError(t, err)
	assert.Empty(t, sender.sent)

	settings := form.Settings
	settings.EmailNotifications = true
	settings.AllowMultipleSubmissions = true
	require.NoError(t, db.Model(form).Update("settings", settings).Error)

	// a failing sender never fails the submission
	_, err = svc.Submit(context.Background(), form.PublicID, &domain.SubmitResponseRequest{Answers: domain.JSONMap{}}, respondent)
	require.NoError(t, err)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, owner.Email, sender.sent[0].To[0].Address)
	assert.Equal(t, "New response: Survey", sender.sent[0].Subject)
	assert.Contains(t, sender.sent[0].TextContent, "https://forms.example.com/forms/"+form.ID.String()+"/responses")
}

func TestResponseService_List(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createResponseService(db, nil)
	owner := testutil.CreateTestUser(t, db, "Owner")
	other := testutil.CreateTestUser(t, db, "Other")
	form := testutil.CreateTestForm(t, db, owner, "Survey")
	for i := 0; i < 3; i++ {
		testutil.CreateTestResponse(t, db, form, domain.JSONMap{"n": float64(i)})
	}

	page, err := svc.List(testutil.ContextFor(owner), form.ID, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, 2, page.TotalPages)
	items := page.Data.([]domain.ResponseDTO)
	assert.Len(t, items, 2)

	_, err = svc.List(testutil.ContextFor(other), form.ID, 1, 2)
	assert.ErrorIs(t, err, service.ErrFormNotFound)
}
