package service

import (
	"sort"
	"strconv"

	"github.com/formlytic/formlytic-api/internal/domain"
)

type questionTally struct {
	total   int
	counts  map[string]int
	seen    []string
	sum     float64
	numeric int
}

func (t *questionTally) add(label string) {
	if _, ok := t.counts[label]; !ok {
		t.seen = append(t.seen, label)
	}
	t.counts[label]++
}

// TallyAnswers builds per-question analytics in one pass over responses.
// Missing, null and empty answers are skipped.
func TallyAnswers(questions []domain.Question, responses []domain.Response) []domain.QuestionAnalyticsDTO {
	tallies := make([]questionTally, len(questions))
	for i := range tallies {
		tallies[i].counts = make(map[string]int)
	}

	for _, resp := range responses {
		if resp.Answers == nil {
			continue
		}
		for i := range questions {
			q := &questions[i]
			raw, ok := resp.Answers[q.ID.String()]
			if !ok {
				continue
			}
			t := &tallies[i]

			switch q.Type {
			case domain.QuestionTypeCheckboxes:
				items := AnswerList(raw)
				if len(items) == 0 {
					continue
				}
				t.total++
				for _, item := range items {
					t.add(item)
				}
			default:
				label, present := AnswerString(raw)
				if !present {
					continue
				}
				t.total++
				switch q.Type {
				case domain.QuestionTypeMultipleChoice, domain.QuestionTypeDropdown:
					t.add(label)
				case domain.QuestionTypeLinearScale:
					t.add(label)
					if n, ok := AnswerNumber(raw); ok {
						t.sum += n
						t.numeric++
					}
				}
			}
		}
	}

	out := make([]domain.QuestionAnalyticsDTO, len(questions))
	for i := range questions {
		q := &questions[i]
		t := &tallies[i]

		dto := domain.QuestionAnalyticsDTO{
			QuestionID:   q.ID,
			Label:        q.Label,
			Type:         q.Type,
			TotalAnswers: t.total,
			Data:         []domain.AnswerCountDTO{},
		}

		for _, label := range orderLabels(q, t) {
			count := t.counts[label]
			dto.Data = append(dto.Data, domain.AnswerCountDTO{
				Label:      label,
				Count:      count,
				Percentage: float64(count) / float64(t.total) * 100,
			})
		}

		if q.Type == domain.QuestionTypeLinearScale {
			avg := 0.0
			if t.numeric > 0 {
				avg = t.sum / float64(t.numeric)
			}
			dto.Average = &avg
		}

		out[i] = dto
	}
	return out
}

// orderLabels returns tallied labels in option order for choice questions,
// unknown values following in first-seen order, and ascending numeric order for scales
func orderLabels(q *domain.Question, t *questionTally) []string {
	if len(t.seen) == 0 {
		return nil
	}

	if q.Type == domain.QuestionTypeLinearScale {
		labels := append([]string(nil), t.seen...)
		sort.SliceStable(labels, func(a, b int) bool {
			na, errA := strconv.ParseFloat(labels[a], 64)
			nb, errB := strconv.ParseFloat(labels[b], 64)
			switch {
			case errA == nil && errB == nil:
				return na < nb
			case errA == nil:
				return true
			default:
				return false
			}
		})
		return labels
	}

	labels := make([]string, 0, len(t.seen))
	used := make(map[string]bool, len(t.seen))
	for _, opt := range q.Options {
		v := opt.DisplayValue()
		if _, ok := t.counts[v]; ok && !used[v] {
			labels = append(labels, v)
			used[v] = true
		}
	}
	for _, label := range t.seen {
		if !used[label] {
			labels = append(labels, label)
		}
	}
	return labels
}

// QuizAverages returns the mean score and mean max score over graded attempts
func QuizAverages(responses []domain.Response) (avgScore, avgMax *float64) {
	var sumScore, sumMax float64
	n := 0
	for _, r := range responses {
		if !r.IsQuizAttempt || r.Score == nil {
			continue
		}
		sumScore += float64(*r.Score)
		if r.MaxScore != nil {
			sumMax += float64(*r.MaxScore)
		}
		n++
	}
	if n == 0 {
		return nil, nil
	}
	s := sumScore / float64(n)
	m := sumMax / float64(n)
	return &s, &m
}
