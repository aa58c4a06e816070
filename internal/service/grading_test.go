package service_test

import (
	"testing"

	"github.com/formlytic/formlytic-api/internal/domain"
	"github.com/formlytic/formlytic-api/internal/service"
	"github.com/formlytic/formlytic-api/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func question(t domain.QuestionType, correct *string, points int) domain.Question {
	q := domain.Question{Type: t, Label: string(t), CorrectAnswer: correct, Points: points}
	q.ID = uuid.New()
	if t.IsChoice() {
		q.Options = testutil.Options("Paris", "Berlin", "Rome")
	}
	return q
}

func TestGradeQuiz_ScoresCorrectAnswers(t *testing.T) {
	mc := question(domain.QuestionTypeMultipleChoice, strPtr("Paris"), 2)
	text := question(domain.QuestionTypeText, strPtr("Blue Whale"), 1)
	dropdown := question(domain.QuestionTypeDropdown, strPtr("Rome"), 3)

	result := service.GradeQuiz([]domain.Question{mc, text, dropdown}, map[string]interface{}{
		mc.ID.String():       "Paris",
		text.ID.String():     "  blue whale ",
		dropdown.ID.String(): "Berlin",
	})

	assert.Equal(t, 3, result.Score)
	assert.Equal(t, 6, result.MaxScore)
	assert.True(t, result.Results[mc.ID.String()].Correct)
	assert.True(t, result.Results[text.ID.String()].Correct)
	assert.False(t, result.Results[dropdown.ID.String()].Correct)
	assert.Equal(t, "Rome", result.Results[dropdown.ID.String()].CorrectAnswer)
}

func TestGradeQuiz_MissingAnswerIsNotCorrect(t *testing.T) {
	mc := question(domain.QuestionTypeMultipleChoice, strPtr("Paris"), 1)

	result := service.GradeQuiz([]domain.Question{mc}, map[string]interface{}{})

	assert.Equal(t, 0, result.Score)
	assert.Equal(t, 1, result.MaxScore)
	assert.False(t, result.Results[mc.ID.String()].Correct)
}

func TestGradeQuiz_MultipleChoiceIsCaseSensitive(t *testing.T) {
	mc := question(domain.QuestionTypeMultipleChoice, strPtr("Paris"), 1)

	result := service.GradeQuiz([]domain.Question{mc}, map[string]interface{}{mc.ID.String(): "paris"})

	assert.Equal(t, 0, result.Score)
}

func TestGradeQuiz_NonPositivePointsCountAsOne(t *testing.T) {
	mc := question(domain.QuestionTypeMultipleChoice, strPtr("Paris"), 0)
	neg := question(domain.QuestionTypeMultipleChoice, strPtr("Rome"), -4)

	result := service.GradeQuiz([]domain.Question{mc, neg}, map[string]interface{}{
		mc.ID.String():  "Paris",
		neg.ID.String(): "Rome",
	})

	assert.Equal(t, 2, result.Score)
	assert.Equal(t, 2, result.MaxScore)
}

func TestGradeQuiz_UngradedQuestions(t *testing.T) {
	noAnswer := question(domain.QuestionTypeMultipleChoice, nil, 5)
	checkboxes := question(domain.QuestionTypeCheckboxes, strPtr("Paris"), 5)
	section := question(domain.QuestionTypeSectionBreak, nil, 1)

	result := service.GradeQuiz([]domain.Question{noAnswer, checkboxes, section}, map[string]interface{}{
		noAnswer.ID.String():   "Paris",
		checkboxes.ID.String(): []interface{}{"Paris"},
	})

	assert.Equal(t, 0, result.Score)
	assert.Equal(t, 0, result.MaxScore)
	assert.Equal(t, "N/A", result.Results[noAnswer.ID.String()].CorrectAnswer)
	assert.Equal(t, "N/A", result.Results[checkboxes.ID.String()].CorrectAnswer)
	_, hasSection := result.Results[section.ID.String()]
	assert.False(t, hasSection)
}

func TestGradeQuiz_NumericAnswerRenderedAsString(t *testing.T) {
	text := question(domain.QuestionTypeShortText, strPtr("42"), 1)

	result := service.GradeQuiz([]domain.Question{text}, map[string]interface{}{text.ID.String(): float64(42)})

	assert.Equal(t, 1, result.Score)
}

func TestResolveCorrectAnswer(t *testing.T) {
	opts := testutil.Options("A", "B", "C")

	got, err := service.ResolveCorrectAnswer(opts, float64(1))
	assert.NoError(t, err)
	assert.Equal(t, "B", *got)

	got, err = service.ResolveCorrectAnswer(opts, "C")
	assert.NoError(t, err)
	assert.Equal(t, "C", *got)

	got, err = service.ResolveCorrectAnswer(opts, "0")
	assert.NoError(t, err)
	assert.Equal(t, "A", *got)

	got, err = service.ResolveCorrectAnswer(opts, nil)
	assert.NoError(t, err)
	assert.Nil(t, got)

	_, err = service.ResolveCorrectAnswer(opts, float64(3))
	assert.ErrorIs(t, err, service.ErrInvalidCorrectAnswer)

	_, err = service.ResolveCorrectAnswer(opts, "D")
	assert.ErrorIs(t, err, service.ErrInvalidCorrectAnswer)

	_, err = service.ResolveCorrectAnswer(opts, float64(0.5))
	assert.ErrorIs(t, err, service.ErrInvalidCorrectAnswer)
}
