package service

import (
	"encoding/json"
	"strconv"
	"strings"
)

// AnswerString renders a submitted answer as text. The second return value is
// false for missing answers: nil, empty strings and empty lists.
func AnswerString(v interface{}) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", false
	case string:
		return val, val != ""
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32), true
	case int:
		return strconv.Itoa(val), true
	case int64:
		return strconv.FormatInt(val, 10), true
	case json.Number:
		return val.String(), true
	case bool:
		return strconv.FormatBool(val), true
	case []interface{}:
		items := AnswerList(val)
		return strings.Join(items, ", "), len(items) > 0
	case []string:
		return strings.Join(val, ", "), len(val) > 0
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return "", false
		}
		return string(b), true
	}
}

// AnswerList renders a multi-select answer as its non-empty items
func AnswerList(v interface{}) []string {
	var raw []interface{}
	switch val := v.(type) {
	case []interface{}:
		raw = val
	case []string:
		return filterEmpty(val)
	default:
		if s, ok := AnswerString(v); ok {
			return []string{s}
		}
		return nil
	}

	items := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := AnswerString(item); ok {
			items = append(items, s)
		}
	}
	return items
}

// AnswerNumber parses a numeric answer
func AnswerNumber(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case json.Number:
		f, err := val.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		return f, err == nil
	}
	return 0, false
}

func filterEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
