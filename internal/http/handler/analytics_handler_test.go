package handler_test

import (
	"encoding/csv"
	"net/http"
	"strings"
	"testing"

	"github.com/formlytic/formlytic-api/internal/domain"
	"github.com/formlytic/formlytic-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyticsHandler_GetAnalytics(t *testing.T) {
	env := newTestEnv(t, 0)
	owner, ctx := newOwner(t, env.db)
	form := testutil.CreateTestForm(t, env.db, owner, "Colours")
	colour := testutil.CreateTestQuestion(t, env.db, form, domain.Question{
		Type:    domain.QuestionTypeDropdown,
		Label:   "Favourite colour",
		Options: testutil.Options("Red", "Blue"),
	})
	testutil.CreateTestResponse(t, env.db, form, domain.JSONMap{colour.ID.String(): "Red"})
	testutil.CreateTestResponse(t, env.db, form, domain.JSONMap{colour.ID.String(): "Red"})
	testutil.CreateTestResponse(t, env.db, form, domain.JSONMap{colour.ID.String(): "Blue"})
	params := map[string]string{"id": form.ID.String()}

	rr := serve(env.analytics.GetAnalytics, newRequest(t, ctx, http.MethodGet, "/", nil, params))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	analytics := decode[domain.FormAnalyticsDTO](t, rr)
	assert.Equal(t, 3, analytics.Overview.TotalResponses)
	assert.NotNil(t, analytics.Overview.LastResponse)
	require.Len(t, analytics.Questions, 1)

	counts := map[string]int{}
	for _, c := range analytics.Questions[0].Data {
		counts[c.Label] = c.Count
	}
	assert.Equal(t, map[string]int{"Red": 2, "Blue": 1}, counts)

	t.Run("other creators get 404", func(t *testing.T) {
		other := testutil.CreateTestUser(t, env.db, "Other")
		rr := serve(env.analytics.GetAnalytics, newRequest(t, testutil.ContextFor(other), http.MethodGet, "/", nil, params))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestAnalyticsHandler_ExportCSV(t *testing.T) {
	env := newTestEnv(t, 0)
	owner, ctx := newOwner(t, env.db)
	form := testutil.CreateTestForm(t, env.db, owner, "Feedback")
	comment := testutil.CreateTestQuestion(t, env.db, form, domain.Question{Type: domain.QuestionTypeLongText, Label: "Comments"})
	testutil.CreateTestQuestion(t, env.db, form, domain.Question{Type: domain.QuestionTypeSectionBreak, Label: "Part two", Order: 1})
	resp := testutil.CreateTestResponse(t, env.db, form, domain.JSONMap{comment.ID.String(): "Great, thanks"})

	rr := serve(env.analytics.ExportCSV, newRequest(t, ctx, http.MethodGet, "/", nil, map[string]string{"id": form.ID.String()}))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "text/csv; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "form-"+form.ID.String()+"-responses.csv")

	records, err := csv.NewReader(strings.NewReader(rr.Body.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"Response ID", "Submitted At", "Comments"}, records[0])
	assert.Equal(t, resp.ID.String(), records[1][0])
	assert.Equal(t, "Great, thanks", records[1][2])
}
