package form_test

import (
	"errors"
	"reflect"
	"testing"

	"genhub/services/web-frontend/internal/domain/form"
	"genhub/services/web-frontend/internal/domain/model"
)

func testModel() *model.Model {
	min, max := 0.0, 1.0
	return &model.Model{
		ID:   "img2img",
		From: model.IOTypeImage,
		To:   model.IOTypeImage,
		Options: []model.OptionField{
			{Name: "prompt", Title: "Prompt", Type: "text", IsRequired: true},
			{Name: "negative", Title: "Negative prompt", Type: "text"},
			{Name: "ratio", Title: "Aspect ratio", Type: "select", IsRequired: true, Options: []any{"1:1", "16:9"}},
			{Name: "strength", Title: "Strength", Type: "range", IsRequired: true, Min: &min, Max: &max},
			{Name: "hd", Title: "HD output", Type: "switch", IsRequired: true},
			{Name: "seed", Title: "Seed", Type: "number", Group: "advanced"},
			{Name: "mystery", Title: "Mystery", Type: "color-picker", IsRequired: true},
			{Name: "image", Title: "Image", Type: "file"},
		},
	}
}

func TestPartition(t *testing.T) {
	base, advanced := form.Partition(testModel().Options)

	baseNames := fieldNames(base)
	wantBase := []string{"prompt", "negative", "ratio", "strength", "hd", "image"}
	if !reflect.DeepEqual(baseNames, wantBase) {
		t.Errorf("base fields = %v, want %v", baseNames, wantBase)
	}

	advancedNames := fieldNames(advanced)
	wantAdvanced := []string{"seed"}
	if !reflect.DeepEqual(advancedNames, wantAdvanced) {
		t.Errorf("advanced fields = %v, want %v", advancedNames, wantAdvanced)
	}
}

func fieldNames(fields []model.OptionField) []string {
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Name)
	}
	return names
}

func TestInitialValues(t *testing.T) {
	m := testModel()
	values := form.InitialValues(m)

	if _, ok := values["image"]; ok {
		t.Error("file fields must not get an initial value")
	}
	if _, ok := values["mystery"]; ok {
		t.Error("unknown-kind fields must not get an initial value")
	}
	if got := values["prompt"]; got != "" {
		t.Errorf("prompt initial value = %#v, want empty string", got)
	}
	if got := values["ratio"]; got != "1:1" {
		t.Errorf("ratio initial value = %#v, want first option", got)
	}
	if got := values["hd"]; got != false {
		t.Errorf("hd initial value = %#v, want false", got)
	}

	// Rendering the same schema twice yields the same map.
	again := form.InitialValues(m)
	if !reflect.DeepEqual(values, again) {
		t.Errorf("InitialValues is not deterministic: %#v then %#v", values, again)
	}
}

func TestValidate(t *testing.T) {
	filled := func() (map[string]any, map[string]float64) {
		return map[string]any{
			"prompt": "a red fox",
			"ratio":  "16:9",
			"hd":     false,
		}, map[string]float64{"strength": 0.7}
	}

	t.Run("complete values pass", func(t *testing.T) {
		values, sliders := filled()
		if err := form.Validate(testModel(), values, sliders); err != nil {
			t.Fatalf("Validate() = %v, want nil", err)
		}
	})

	t.Run("fails fast on the first empty required field", func(t *testing.T) {
		values, sliders := filled()
		values["prompt"] = "   "
		delete(values, "ratio")
		err := form.Validate(testModel(), values, sliders)
		if err == nil {
			t.Fatal("Validate() = nil, want error")
		}
		var verr *form.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("Validate() error type = %T, want *ValidationError", err)
		}
		if verr.FieldName != "prompt" {
			t.Errorf("failed field = %q, want the first in declared order %q", verr.FieldName, "prompt")
		}
		if got := err.Error(); got != `Field "Prompt" is required` {
			t.Errorf("error message = %q, want %q", got, `Field "Prompt" is required`)
		}
	})

	t.Run("message falls back to field name without a title", func(t *testing.T) {
		m := &model.Model{Options: []model.OptionField{
			{Name: "prompt", Type: "text", IsRequired: true},
		}}
		err := form.Validate(m, nil, nil)
		if err == nil {
			t.Fatal("Validate() = nil, want error")
		}
		if got := err.Error(); got != `Field "prompt" is required` {
			t.Errorf("error message = %q, want %q", got, `Field "prompt" is required`)
		}
	})

	t.Run("required booleans never fail", func(t *testing.T) {
		values, sliders := filled()
		delete(values, "hd")
		if err := form.Validate(testModel(), values, sliders); err != nil {
			t.Fatalf("Validate() = %v, want nil for an absent required switch", err)
		}
	})

	t.Run("range is satisfied by slider presence", func(t *testing.T) {
		values, _ := filled()
		err := form.Validate(testModel(), values, nil)
		var verr *form.ValidationError
		if !errors.As(err, &verr) || verr.FieldName != "strength" {
			t.Fatalf("Validate() without slider value = %v, want strength failure", err)
		}
		if err := form.Validate(testModel(), values, map[string]float64{"strength": 0}); err != nil {
			t.Fatalf("Validate() with slider at zero = %v, want nil", err)
		}
	})

	t.Run("empty multiselect fails", func(t *testing.T) {
		m := &model.Model{Options: []model.OptionField{
			{Name: "styles", Title: "Styles", Type: "multiselect", IsRequired: true},
		}}
		if err := form.Validate(m, map[string]any{"styles": []any{}}, nil); err == nil {
			t.Fatal("Validate() = nil, want error for empty list")
		}
		if err := form.Validate(m, map[string]any{"styles": []any{"anime"}}, nil); err != nil {
			t.Fatalf("Validate() = %v, want nil for non-empty list", err)
		}
	})

	t.Run("required unknown-kind fields are skipped", func(t *testing.T) {
		values, sliders := filled()
		// mystery is required but its kind is unrecognized.
		if err := form.Validate(testModel(), values, sliders); err != nil {
			t.Fatalf("Validate() = %v, want nil", err)
		}
	})
}

func TestClampCount(t *testing.T) {
	tests := []struct {
		in       int
		expected int
	}{
		{-3, form.MinGenerationCount},
		{0, form.MinGenerationCount},
		{1, 1},
		{5, 5},
		{10, 10},
		{99, form.MaxGenerationCount},
	}

	for _, tt := range tests {
		if got := form.ClampCount(tt.in); got != tt.expected {
			t.Errorf("ClampCount(%d) = %d, want %d", tt.in, got, tt.expected)
		}
	}
}

func TestBuildPayload(t *testing.T) {
	m := testModel()
	values := map[string]any{
		"prompt": "a red fox",
		"ratio":  "16:9",
	}
	sliders := map[string]float64{"strength": 0.7}

	payload := form.BuildPayload(m, values, sliders, 2, 25, "user-1")

	if got := payload["prompt"]; got != "a red fox" {
		t.Errorf("prompt = %#v, want submitted value", got)
	}
	if got := payload["negative"]; got != "" {
		t.Errorf("negative = %#v, want schema default", got)
	}
	if got := payload["strength"]; got != 0.7 {
		t.Errorf("strength = %#v, want the slider position", got)
	}
	if got := payload["hd"]; got != false {
		t.Errorf("hd = %#v, want schema default", got)
	}
	if _, ok := payload["image"]; ok {
		t.Error("file fields must not appear in the payload")
	}
	if _, ok := payload["mystery"]; ok {
		t.Error("unknown-kind fields must not appear in the payload")
	}
	if got := payload["input_files_count"]; got != 2 {
		t.Errorf("input_files_count = %#v, want 2", got)
	}
	if got := payload["count"]; got != form.MaxGenerationCount {
		t.Errorf("count = %#v, want clamped to %d", got, form.MaxGenerationCount)
	}
	if got := payload["user_id"]; got != "user-1" {
		t.Errorf("user_id = %#v, want %q", got, "user-1")
	}
}

func TestBuildPayload_AnonymousOmitsUserID(t *testing.T) {
	payload := form.BuildPayload(testModel(), nil, nil, 0, 1, "")
	if _, ok := payload["user_id"]; ok {
		t.Error("user_id must be absent for an unknown caller")
	}
}
