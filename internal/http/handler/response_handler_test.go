package handler_test

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"testing"

	"github.com/formlytic/formlytic-api/internal/domain"
	"github.com/formlytic/formlytic-api/internal/http/handler"
	"github.com/formlytic/formlytic-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type responsePage struct {
	Data  []domain.ResponseDTO `json:"data"`
	Total int64                `json:"total"`
}

func TestResponseHandler_GetPublicForm(t *testing.T) {
	env := newTestEnv(t, 0)
	owner, _ := newOwner(t, env.db)
	form := testutil.CreateTestForm(t, env.db, owner, "Open survey")
	testutil.CreateTestQuestion(t, env.db, form, domain.Question{
		Type:          domain.QuestionTypeDropdown,
		Options:       testutil.Options("Red", "Blue"),
		CorrectAnswer: strPtr("Red"),
	})
	params := map[string]string{"publicId": form.PublicID}

	rr := serve(env.responses.GetPublicForm, newRequest(t, nil, http.MethodGet, "/", nil, params))
	require.Equal(t, http.StatusOK, rr.Code)
	public := decode[domain.PublicFormDTO](t, rr)
	require.Len(t, public.Questions, 1)
	assert.Nil(t, public.Questions[0].CorrectAnswer)
	assert.NotContains(t, rr.Body.String(), "correctAnswer")

	require.NoError(t, env.db.Model(form).Update("is_published", false).Error)
	rr = serve(env.responses.GetPublicForm, newRequest(t, nil, http.MethodGet, "/", nil, params))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestResponseHandler_Submit(t *testing.T) {
	env := newTestEnv(t, 0)
	owner, ctx := newOwner(t, env.db)
	form := testutil.CreateTestForm(t, env.db, owner, "Survey")
	name := testutil.CreateTestQuestion(t, env.db, form, domain.Question{Type: domain.QuestionTypeShortText, Label: "Name", Required: true})
	testutil.CreateTestQuestion(t, env.db, form, domain.Question{Type: domain.QuestionTypeSectionBreak, Required: true, Order: 1})
	params := map[string]string{"publicId": form.PublicID}

	submit := func(answers domain.JSONMap) *http.Request {
		req := newRequest(t, nil, http.MethodPost, "/", domain.SubmitResponseRequest{Answers: answers}, params)
		req.Header.Set("X-Forwarded-For", "198.51.100.23, 10.0.0.1")
		req.Header.Set("User-Agent", "handler-test")
		return req
	}

	t.Run("missing required answers are listed", func(t *testing.T) {
		rr := serve(env.responses.Submit, submit(domain.JSONMap{name.ID.String(): ""}))

		require.Equal(t, http.StatusBadRequest, rr.Code)
		body := decode[handler.MissingAnswersResponse](t, rr)
		assert.Equal(t, []string{name.ID.String()}, body.MissingQuestions)
	})

	t.Run("stores the response", func(t *testing.T) {
		rr := serve(env.responses.Submit, submit(domain.JSONMap{name.ID.String(): "Ada"}))

		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
		result := decode[domain.SubmitResponseResult](t, rr)
		assert.True(t, result.Success)
		assert.Equal(t, domain.DefaultConfirmationMessage, result.ConfirmationMessage)

		var stored domain.Response
		require.NoError(t, env.db.First(&stored, "id = ?", result.ResponseID).Error)
		assert.Equal(t, "198.51.100.23", stored.IPAddress)
		assert.Equal(t, "handler-test", stored.UserAgent)
		assert.Contains(t, stored.Metadata, "submittedAt")
	})

	t.Run("second submission from the same IP conflicts", func(t *testing.T) {
		rr := serve(env.responses.Submit, submit(domain.JSONMap{name.ID.String(): "Again"}))
		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("creator lists responses", func(t *testing.T) {
		rr := serve(env.responses.List, newRequest(t, ctx, http.MethodGet, "/", nil, map[string]string{"id": form.ID.String()}))

		require.Equal(t, http.StatusOK, rr.Code)
		page := decode[responsePage](t, rr)
		require.Len(t, page.Data, 1)
		assert.Equal(t, "Ada", page.Data[0].Answers[name.ID.String()])
	})
}

func multipartUpload(t *testing.T, filename, contentType string, content []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return body, mw.FormDataContentType()
}

func TestResponseHandler_UploadAndDownload(t *testing.T) {
	env := newTestEnv(t, 1024)
	owner, ctx := newOwner(t, env.db)
	form := testutil.CreateTestForm(t, env.db, owner, "Applications")
	cv := testutil.CreateTestQuestion(t, env.db, form, domain.Question{Type: domain.QuestionTypeFileUpload, Label: "CV"})

	upload := func(filename, contentType string, content []byte) *http.Request {
		body, ct := multipartUpload(t, filename, contentType, content, map[string]string{"questionId": cv.ID.String()})
		req := newRequest(t, nil, http.MethodPost, "/", nil, map[string]string{"publicId": form.PublicID})
		req.Body = nopCloser{body}
		req.ContentLength = int64(body.Len())
		req.Header.Set("Content-Type", ct)
		return req
	}

	rr := serve(env.responses.UploadFile, upload("cv.pdf", "application/pdf", []byte("%PDF-1.4 resume")))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	file := decode[domain.FileDTO](t, rr)
	assert.Equal(t, "cv.pdf", file.Filename)
	assert.Equal(t, "application/pdf", file.ContentType)
	require.NotNil(t, file.QuestionID)
	assert.Equal(t, cv.ID, *file.QuestionID)

	t.Run("disallowed type", func(t *testing.T) {
		rr := serve(env.responses.UploadFile, upload("run.sh", "text/x-shellscript", []byte("echo")))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("too large", func(t *testing.T) {
		rr := serve(env.responses.UploadFile, upload("big.pdf", "application/pdf", bytes.Repeat([]byte("a"), 2048)))
		assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
	})

	t.Run("owner downloads", func(t *testing.T) {
		rr := serve(env.files.Download, newRequest(t, ctx, http.MethodGet, "/", nil, map[string]string{"id": file.ID.String()}))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "%PDF-1.4 resume", rr.Body.String())
		assert.Equal(t, "application/pdf", rr.Header().Get("Content-Type"))
		assert.Contains(t, rr.Header().Get("Content-Disposition"), `filename=cv.pdf`)
	})

	t.Run("other creator cannot download", func(t *testing.T) {
		other := testutil.CreateTestUser(t, env.db, "Other")
		rr := serve(env.files.Download, newRequest(t, testutil.ContextFor(other), http.MethodGet, "/", nil, map[string]string{"id": file.ID.String()}))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("owner lists and deletes", func(t *testing.T) {
		rr := serve(env.files.ListByForm, newRequest(t, ctx, http.MethodGet, "/", nil, map[string]string{"id": form.ID.String()}))
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Len(t, decode[[]domain.FileDTO](t, rr), 1)

		rr = serve(env.files.Delete, newRequest(t, ctx, http.MethodDelete, "/", nil, map[string]string{"id": file.ID.String()}))
		assert.Equal(t, http.StatusNoContent, rr.Code)
	})
}

type nopCloser struct {
	*bytes.Buffer
}

func (nopCloser) Close() error { return nil }

func strPtr(s string) *string { return &s }
