package handler_test

import (
	"net/http"
	"testing"

	"github.com/formlytic/formlytic-api/internal/domain"
	"github.com/formlytic/formlytic-api/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type formPage struct {
	Data       []domain.FormDTO `json:"data"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	PageSize   int              `json:"pageSize"`
	TotalPages int              `json:"totalPages"`
}

func TestFormHandler_Create(t *testing.T) {
	env := newTestEnv(t, 0)
	_, ctx := newOwner(t, env.db)

	t.Run("creates with default settings", func(t *testing.T) {
		req := newRequest(t, ctx, http.MethodPost, "/api/v1/forms", domain.CreateFormRequest{Title: "Feedback"}, nil)
		rr := serve(env.forms.Create, req)

		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
		form := decode[domain.FormDTO](t, rr)
		assert.Equal(t, "Feedback", form.Title)
		assert.True(t, form.IsActive)
		assert.False(t, form.IsPublished)
		assert.NotEmpty(t, form.PublicID)
		assert.Equal(t, domain.DefaultConfirmationMessage, form.Settings.ConfirmationMessage)
		assert.Equal(t, "/api/v1/forms/"+form.ID.String(), rr.Header().Get("Location"))
	})

	t.Run("missing title is a validation error", func(t *testing.T) {
		req := newRequest(t, ctx, http.MethodPost, "/api/v1/forms", map[string]string{"description": "x"}, nil)
		rr := serve(env.forms.Create, req)

		require.Equal(t, http.StatusBadRequest, rr.Code)
		apiErr := decode[domain.APIError](t, rr)
		assert.Equal(t, domain.ErrorTypeValidation, apiErr.Type)
		assert.Contains(t, apiErr.Errors, "title")
	})

	t.Run("whitespace-only title is rejected", func(t *testing.T) {
		req := newRequest(t, ctx, http.MethodPost, "/api/v1/forms", domain.CreateFormRequest{Title: "   "}, nil)
		rr := serve(env.forms.Create, req)

		require.Equal(t, http.StatusBadRequest, rr.Code, rr.Body.String())
		assert.Contains(t, rr.Body.String(), "title is required")
	})

	t.Run("malformed body", func(t *testing.T) {
		req := newRequest(t, ctx, http.MethodPost, "/api/v1/forms", "{not json", nil)
		rr := serve(env.forms.Create, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("anonymous caller", func(t *testing.T) {
		req := newRequest(t, nil, http.MethodPost, "/api/v1/forms", domain.CreateFormRequest{Title: "X"}, nil)
		rr := serve(env.forms.Create, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestFormHandler_ListIsScopedToCaller(t *testing.T) {
	env := newTestEnv(t, 0)
	owner, ctx := newOwner(t, env.db)
	other := testutil.CreateTestUser(t, env.db, "Other")

	mine := testutil.CreateTestForm(t, env.db, owner, "Mine")
	testutil.CreateTestForm(t, env.db, other, "Theirs")
	testutil.CreateTestQuestion(t, env.db, mine, domain.Question{Type: domain.QuestionTypeShortText})
	testutil.CreateTestResponse(t, env.db, mine, domain.JSONMap{})

	rr := serve(env.forms.List, newRequest(t, ctx, http.MethodGet, "/api/v1/forms?page=1&pageSize=10", nil, nil))

	require.Equal(t, http.StatusOK, rr.Code)
	page := decode[formPage](t, rr)
	require.Len(t, page.Data, 1)
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, "Mine", page.Data[0].Title)
	assert.Equal(t, int64(1), page.Data[0].QuestionCount)
	assert.Equal(t, int64(1), page.Data[0].ResponseCount)
}

func TestFormHandler_GetByID(t *testing.T) {
	env := newTestEnv(t, 0)
	owner, ctx := newOwner(t, env.db)
	other := testutil.CreateTestUser(t, env.db, "Other")
	form := testutil.CreateTestForm(t, env.db, owner, "Survey")
	testutil.CreateTestQuestion(t, env.db, form, domain.Question{Type: domain.QuestionTypeShortText, Label: "Second", Order: 1})
	testutil.CreateTestQuestion(t, env.db, form, domain.Question{Type: domain.QuestionTypeShortText, Label: "First", Order: 0})

	t.Run("owner sees ordered questions", func(t *testing.T) {
		rr := serve(env.forms.GetByID, newRequest(t, ctx, http.MethodGet, "/", nil, map[string]string{"id": form.ID.String()}))

		require.Equal(t, http.StatusOK, rr.Code)
		got := decode[domain.FormWithQuestionsDTO](t, rr)
		require.Len(t, got.Questions, 2)
		assert.Equal(t, "First", got.Questions[0].Label)
		assert.Equal(t, "Second", got.Questions[1].Label)
	})

	t.Run("other creator gets 404", func(t *testing.T) {
		rr := serve(env.forms.GetByID, newRequest(t, testutil.ContextFor(other), http.MethodGet, "/", nil, map[string]string{"id": form.ID.String()}))

		require.Equal(t, http.StatusNotFound, rr.Code)
		errResp := decode[domain.ErrorResponse](t, rr)
		assert.Equal(t, "Form not found", errResp.Message)
	})

	t.Run("invalid id", func(t *testing.T) {
		rr := serve(env.forms.GetByID, newRequest(t, ctx, http.MethodGet, "/", nil, map[string]string{"id": "nope"}))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("unknown id", func(t *testing.T) {
		rr := serve(env.forms.GetByID, newRequest(t, ctx, http.MethodGet, "/", nil, map[string]string{"id": uuid.NewString()}))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestFormHandler_UpdateAndDelete(t *testing.T) {
	env := newTestEnv(t, 0)
	owner, ctx := newOwner(t, env.db)
	form := testutil.CreateTestForm(t, env.db, owner, "Draft")
	params := map[string]string{"id": form.ID.String()}

	rr := serve(env.forms.Update, newRequest(t, ctx, http.MethodPatch, "/", map[string]interface{}{
		"title":       "Final",
		"isPublished": false,
	}, params))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	updated := decode[domain.FormDTO](t, rr)
	assert.Equal(t, "Final", updated.Title)
	assert.False(t, updated.IsPublished)
	assert.True(t, updated.IsActive)

	rr = serve(env.forms.Update, newRequest(t, ctx, http.MethodPatch, "/", map[string]interface{}{
		"title": "\t \n",
	}, params))
	require.Equal(t, http.StatusBadRequest, rr.Code, rr.Body.String())

	rr = serve(env.forms.GetByID, newRequest(t, ctx, http.MethodGet, "/", nil, params))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Final", decode[domain.FormWithQuestionsDTO](t, rr).Title)

	rr = serve(env.forms.Delete, newRequest(t, ctx, http.MethodDelete, "/", nil, params))
	require.Equal(t, http.StatusNoContent, rr.Code)

	rr = serve(env.forms.GetByID, newRequest(t, ctx, http.MethodGet, "/", nil, params))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
