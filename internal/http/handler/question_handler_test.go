package handler_test

import (
	"net/http"
	"testing"

	"github.com/formlytic/formlytic-api/internal/domain"
	"github.com/formlytic/formlytic-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestionHandler_CreateAndReplace(t *testing.T) {
	env := newTestEnv(t, 0)
	owner, ctx := newOwner(t, env.db)
	form := testutil.CreateTestForm(t, env.db, owner, "Event signup")
	params := map[string]string{"id": form.ID.String()}

	rr := serve(env.questions.Create, newRequest(t, ctx, http.MethodPost, "/", domain.QuestionRequest{
		Type:  domain.QuestionTypeShortText,
		Label: "Your name",
	}, params))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	first := decode[domain.QuestionDTO](t, rr)

	rr = serve(env.questions.Create, newRequest(t, ctx, http.MethodPost, "/", domain.QuestionRequest{
		Type:    domain.QuestionTypeMultipleChoice,
		Label:   "Session",
		Options: []domain.QuestionOption{{Label: "Morning"}, {Label: "Evening"}},
	}, params))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	second := decode[domain.QuestionDTO](t, rr)
	assert.Greater(t, second.Order, first.Order)
	assert.Equal(t, "opt-1", second.Options[0].ID)

	t.Run("choice question without options", func(t *testing.T) {
		rr := serve(env.questions.Create, newRequest(t, ctx, http.MethodPost, "/", domain.QuestionRequest{
			Type:  domain.QuestionTypeCheckboxes,
			Label: "Pick some",
		}, params))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("unknown type fails validation", func(t *testing.T) {
		rr := serve(env.questions.Create, newRequest(t, ctx, http.MethodPost, "/", domain.QuestionRequest{
			Type:  "signature",
			Label: "Sign here",
		}, params))
		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, domain.ErrorTypeValidation, decode[domain.APIError](t, rr).Type)
	})

	t.Run("replace keeps array order", func(t *testing.T) {
		body := []domain.QuestionRequest{
			{ID: &second.ID, Type: domain.QuestionTypeMultipleChoice, Label: "Session", Options: second.Options},
			{Type: domain.QuestionTypeDate, Label: "Arrival"},
		}
		rr := serve(env.questions.Replace, newRequest(t, ctx, http.MethodPut, "/", body, params))
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

		questions := decode[[]domain.QuestionDTO](t, rr)
		require.Len(t, questions, 2)
		assert.Equal(t, second.ID, questions[0].ID)
		assert.Equal(t, "Arrival", questions[1].Label)

		rr = serve(env.questions.List, newRequest(t, ctx, http.MethodGet, "/", nil, params))
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Len(t, decode[[]domain.QuestionDTO](t, rr), 2)
	})

	t.Run("replace expects an array", func(t *testing.T) {
		rr := serve(env.questions.Replace, newRequest(t, ctx, http.MethodPut, "/", `{"questions":[]}`, params))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
