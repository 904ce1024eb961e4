// Package form is the dynamic form engine: it partitions schema-declared
// fields into base and advanced groups, validates required fields, and
// assembles the run-request payload.
package form

import (
	"fmt"
	"strings"

	"genhub/services/web-frontend/internal/domain/model"
)

const (
	// MinGenerationCount and MaxGenerationCount bound the user-adjustable
	// quantity control on a run request.
	MinGenerationCount = 1
	MaxGenerationCount = 10
)

// Partition splits fields into base (always shown) and advanced
// (collapsed by default) groups, preserving declared order. Fields with
// an unrecognized kind are skipped in both groups.
func Partition(fields []model.OptionField) (base, advanced []model.OptionField) {
	for _, f := range fields {
		if !f.Kind().Known() {
			continue
		}
		if f.Advanced() {
			advanced = append(advanced, f)
		} else {
			base = append(base, f)
		}
	}
	return base, advanced
}

// InitialValues builds the starting value map for a model's fields.
// Rendering the same schema twice yields the same map.
func InitialValues(m *model.Model) map[string]any {
	values := make(map[string]any, len(m.Options))
	for _, f := range m.Options {
		if !f.Kind().Known() || f.Kind() == model.KindFile {
			continue
		}
		values[f.Name] = f.InitialValue()
	}
	return values
}

// ValidationError reports the first required field found empty.
type ValidationError struct {
	FieldName  string
	FieldLabel string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("Field %q is required", e.FieldLabel)
}

// Validate checks required fields in declared order and fails fast on the
// first empty one. Boolean kinds never fail requiredness; range kinds are
// satisfied by presence in the slider-value map; everything else must be
// present and non-empty after trimming.
func Validate(m *model.Model, values map[string]any, sliders map[string]float64) error {
	for _, f := range m.Options {
		kind := f.Kind()
		if !kind.Known() || !f.IsRequired || kind.Boolean() {
			continue
		}

		if kind == model.KindRange {
			if _, ok := sliders[f.Name]; !ok {
				return &ValidationError{FieldName: f.Name, FieldLabel: f.Label()}
			}
			continue
		}

		if isEmpty(values[f.Name]) {
			return &ValidationError{FieldName: f.Name, FieldLabel: f.Label()}
		}
	}
	return nil
}

func isEmpty(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(val) == ""
	case []any:
		return len(val) == 0
	case []string:
		return len(val) == 0
	default:
		return false
	}
}

// ClampCount forces the requested generation count into the allowed range.
func ClampCount(n int) int {
	if n < MinGenerationCount {
		return MinGenerationCount
	}
	if n > MaxGenerationCount {
		return MaxGenerationCount
	}
	return n
}

// BuildPayload assembles the run request body: every field's current
// value keyed by its declared name (submitted values overlaid on
// defaults, slider positions winning for range fields), plus the attached
// file count, the clamped generation count, and the caller's user id when
// known.
func BuildPayload(m *model.Model, values map[string]any, sliders map[string]float64, fileCount, count int, userID string) map[string]any {
	payload := make(map[string]any, len(m.Options)+3)

	current := InitialValues(m)
	for name, v := range values {
		current[name] = v
	}
	for _, f := range m.Options {
		kind := f.Kind()
		if !kind.Known() || kind == model.KindFile {
			continue
		}
		if kind == model.KindRange {
			if pos, ok := sliders[f.Name]; ok {
				payload[f.Name] = pos
				continue
			}
		}
		payload[f.Name] = current[f.Name]
	}

	payload["input_files_count"] = fileCount
	payload["count"] = ClampCount(count)
	if userID != "" {
		payload["user_id"] = userID
	}
	return payload
}
