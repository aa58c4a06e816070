package service

import (
	"strings"

	"github.com/formlytic/formlytic-api/internal/domain"
)

const noCorrectAnswer = "N/A"

// GradeResult is the outcome of scoring one quiz attempt
type GradeResult struct {
	Score    int
	MaxScore int
	Results  map[string]domain.QuizQuestionResult
}

// isGradable reports whether answers to the type can be compared with a stored correct answer
func isGradable(t domain.QuestionType) bool {
	switch t {
	case domain.QuestionTypeMultipleChoice, domain.QuestionTypeDropdown,
		domain.QuestionTypeShortText, domain.QuestionTypeText:
		return true
	}
	return false
}

// GradeQuiz scores answers against the questions' correct answers in a single
// pass. Only gradable questions with a correct answer count toward MaxScore; a
// missing answer is simply not correct. Every question gets a result entry.
func GradeQuiz(questions []domain.Question, answers map[string]interface{}) GradeResult {
	result := GradeResult{Results: make(map[string]domain.QuizQuestionResult, len(questions))}

	for i := range questions {
		q := &questions[i]
		id := q.ID.String()

		if !q.Type.CollectsAnswer() {
			continue
		}
		if !isGradable(q.Type) || q.CorrectAnswer == nil || strings.TrimSpace(*q.CorrectAnswer) == "" {
			result.Results[id] = domain.QuizQuestionResult{Correct: false, CorrectAnswer: noCorrectAnswer}
			continue
		}

		points := q.EffectivePoints()
		result.MaxScore += points

		correct := false
		if raw, ok := answers[id]; ok {
			if submitted, present := AnswerString(raw); present {
				correct = answerMatches(q.Type, submitted, *q.CorrectAnswer)
			}
		}
		if correct {
			result.Score += points
		}

		result.Results[id] = domain.QuizQuestionResult{
			Correct:       correct,
			CorrectAnswer: *q.CorrectAnswer,
		}
	}

	return result
}

func answerMatches(t domain.QuestionType, submitted, expected string) bool {
	switch t {
	case domain.QuestionTypeShortText, domain.QuestionTypeText:
		return strings.EqualFold(strings.TrimSpace(submitted), strings.TrimSpace(expected))
	default:
		return submitted == expected
	}
}
