package model

import "strings"

// FieldKind is the closed set of control types a schema may declare.
// Decoding an unrecognized tag yields KindUnknown so the gap is visible to
// every switch over the set instead of silently rendering nothing.
type FieldKind string

const (
	KindText        FieldKind = "text"
	KindNumber      FieldKind = "number"
	KindSelect      FieldKind = "select"
	KindMultiSelect FieldKind = "multiselect"
	KindSwitch      FieldKind = "switch"
	KindCheckbox    FieldKind = "checkbox"
	KindRange       FieldKind = "range"
	KindFile        FieldKind = "file"
	KindUnknown     FieldKind = ""
)

// ParseFieldKind maps a raw schema tag to a FieldKind.
func ParseFieldKind(raw string) FieldKind {
	switch FieldKind(strings.ToLower(strings.TrimSpace(raw))) {
	case KindText:
		return KindText
	case KindNumber:
		return KindNumber
	case KindSelect:
		return KindSelect
	case KindMultiSelect:
		return KindMultiSelect
	case KindSwitch:
		return KindSwitch
	case KindCheckbox:
		return KindCheckbox
	case KindRange:
		return KindRange
	case KindFile:
		return KindFile
	default:
		return KindUnknown
	}
}

// Boolean reports whether the kind renders as a boolean toggle. Boolean
// fields are exempt from required-field validation.
func (k FieldKind) Boolean() bool {
	return k == KindSwitch || k == KindCheckbox
}

// Known reports whether the kind is part of the recognized set.
func (k FieldKind) Known() bool {
	return k != KindUnknown
}

// GroupAdvanced marks fields collapsed behind the advanced disclosure.
const GroupAdvanced = "advanced"

// OptionField is one configurable parameter of a model run request.
type OptionField struct {
	Name         string   `json:"name"`
	Title        string   `json:"title"`
	Type         string   `json:"type"`
	IsRequired   bool     `json:"is_required,omitempty"`
	DefaultValue any      `json:"default_value,omitempty"`
	Options      []any    `json:"options,omitempty"`
	Min          *float64 `json:"min,omitempty"`
	Max          *float64 `json:"max,omitempty"`
	Step         *float64 `json:"step,omitempty"`
	Hint         string   `json:"hint,omitempty"`
	Description  string   `json:"description,omitempty"`
	Order        *int     `json:"order,omitempty"`
	Group        string   `json:"group,omitempty"`
}

// Kind returns the parsed control kind for the field.
func (f OptionField) Kind() FieldKind {
	return ParseFieldKind(f.Type)
}

// Label returns the display title, falling back to the submission name.
func (f OptionField) Label() string {
	if strings.TrimSpace(f.Title) != "" {
		return f.Title
	}
	return f.Name
}

// Advanced reports whether the field belongs to the collapsed group.
func (f OptionField) Advanced() bool {
	return strings.EqualFold(strings.TrimSpace(f.Group), GroupAdvanced)
}

// MinOr returns the declared minimum or the given fallback.
func (f OptionField) MinOr(fallback float64) float64 {
	if f.Min != nil {
		return *f.Min
	}
	return fallback
}

// MaxOr returns the declared maximum or the given fallback.
func (f OptionField) MaxOr(fallback float64) float64 {
	if f.Max != nil {
		return *f.Max
	}
	return fallback
}

// StepOr returns the declared step or the given fallback.
func (f OptionField) StepOr(fallback float64) float64 {
	if f.Step != nil {
		return *f.Step
	}
	return fallback
}

// InitialValue returns the control's starting value: the declared default
// when present, else a kind-appropriate fallback. Deterministic for a
// given field declaration.
func (f OptionField) InitialValue() any {
	if f.DefaultValue != nil {
		return f.DefaultValue
	}
	switch f.Kind() {
	case KindText:
		return ""
	case KindNumber, KindRange:
		return f.MinOr(0)
	case KindSelect:
		if len(f.Options) > 0 {
			return f.Options[0]
		}
		return nil
	case KindMultiSelect:
		return []any{}
	case KindSwitch, KindCheckbox:
		return false
	case KindFile:
		return nil
	case KindUnknown:
		return nil
	}
	return nil
}
