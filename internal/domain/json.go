package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONMap is a free-form JSON object stored in a jsonb column
type JSONMap map[string]interface{}

// Value implements driver.Valuer
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal json map: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (m *JSONMap) Scan(value interface{}) error {
	data, err := jsonBytes(value)
	if err != nil || data == nil {
		*m = JSONMap{}
		return err
	}
	out := JSONMap{}
	if err := json.Unmarshal(data, &out); err != nil {
		return fmt.Errorf("unmarshal json map: %w", err)
	}
	*m = out
	return nil
}

// QuestionOption is one selectable choice of a choice question
type QuestionOption struct {
	ID    string `json:"id"`
	Label string `json:"label" validate:"required,max=500"`
	Value string `json:"value"`
}

// DisplayValue returns the value recorded when the option is picked
func (o QuestionOption) DisplayValue() string {
	if o.Value != "" {
		return o.Value
	}
	return o.Label
}

// QuestionOptions is the ordered option list of a question
type QuestionOptions []QuestionOption

// Value implements driver.Valuer
func (o QuestionOptions) Value() (driver.Value, error) {
	if o == nil {
		return "[]", nil
	}
	b, err := json.Marshal(o)
	if err != nil {
		return nil, fmt.Errorf("marshal question options: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (o *QuestionOptions) Scan(value interface{}) error {
	data, err := jsonBytes(value)
	if err != nil || data == nil {
		*o = QuestionOptions{}
		return err
	}
	out := QuestionOptions{}
	if err := json.Unmarshal(data, &out); err != nil {
		return fmt.Errorf("unmarshal question options: %w", err)
	}
	*o = out
	return nil
}

// StringList is a list of strings stored as a JSON array
type StringList []string

// Value implements driver.Valuer
func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal string list: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (s *StringList) Scan(value interface{}) error {
	data, err := jsonBytes(value)
	if err != nil || data == nil {
		*s = StringList{}
		return err
	}
	out := StringList{}
	if err := json.Unmarshal(data, &out); err != nil {
		return fmt.Errorf("unmarshal string list: %w", err)
	}
	*s = out
	return nil
}

// DefaultConfirmationMessage is shown after a successful submission
const DefaultConfirmationMessage = "Thank you for your submission!"

// FormSettings holds per-form behaviour toggles and branding
type FormSettings struct {
	CollectEmail             bool   `json:"collectEmail"`
	AllowMultipleSubmissions bool   `json:"allowMultipleSubmissions"`
	ShowProgressBar          bool   `json:"showProgressBar"`
	ShuffleQuestions         bool   `json:"shuffleQuestions"`
	ConfirmationMessage      string `json:"confirmationMessage"`
	EmailNotifications       bool   `json:"emailNotifications"`
	LogoURL                  string `json:"logoUrl,omitempty" validate:"omitempty,url,max=500"`
	OrganizationName         string `json:"organizationName,omitempty" validate:"max=200"`
	HeaderColor              string `json:"headerColor,omitempty" validate:"omitempty,max=20"`
}

// DefaultFormSettings returns the settings of a newly created form
func DefaultFormSettings() FormSettings {
	return FormSettings{
		CollectEmail:             false,
		AllowMultipleSubmissions: false,
		ShowProgressBar:          true,
		ShuffleQuestions:         false,
		ConfirmationMessage:      DefaultConfirmationMessage,
	}
}

// Value implements driver.Valuer
func (s FormSettings) Value() (driver.Value, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal form settings: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner. Stored documents missing a key keep the default for it.
func (s *FormSettings) Scan(value interface{}) error {
	out := DefaultFormSettings()
	data, err := jsonBytes(value)
	if err != nil {
		return err
	}
	if data != nil {
		if err := json.Unmarshal(data, &out); err != nil {
			return fmt.Errorf("unmarshal form settings: %w", err)
		}
	}
	*s = out
	return nil
}

// LinearScale is the range definition of a linear_scale question, kept under
// the "linearScale" key of the question's validation object
type LinearScale struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	MinLabel string  `json:"minLabel,omitempty"`
	MaxLabel string  `json:"maxLabel,omitempty"`
}

// LinearScaleFrom extracts the scale from a validation object, if present
func LinearScaleFrom(validation JSONMap) (*LinearScale, error) {
	raw, ok := validation["linearScale"]
	if !ok || raw == nil {
		return nil, nil
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	var scale LinearScale
	if err := json.Unmarshal(b, &scale); err != nil {
		return nil, err
	}
	return &scale, nil
}

func jsonBytes(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []byte:
		if len(v) == 0 {
			return nil, nil
		}
		return v, nil
	case string:
		if v == "" {
			return nil, nil
		}
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("unsupported json column type %T", value)
	}
}
