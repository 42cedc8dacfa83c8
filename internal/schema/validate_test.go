package schema

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func decode(t *testing.T, s string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		t.Fatalf("bad test JSON %q: %v", s, err)
	}
	return v
}

func TestCompile_InvalidJSON(t *testing.T) {
	if _, err := Compile([]byte(`{"type":`)); err == nil {
		t.Fatal("expected error for malformed schema")
	}
}

func TestCompile_UnresolvableRef(t *testing.T) {
	if _, err := Compile([]byte(`{"$ref": "#/$defs/missing"}`)); err == nil {
		t.Fatal("expected error for unresolvable $ref")
	}
}

func TestValidator_Validate(t *testing.T) {
	v, err := Compile([]byte(`{"type": "object", "properties": {"id": {"type": "integer"}, "title": {"type": "string"}}, "required": ["id"]}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := v.Validate(decode(t, `{"id": 7, "title": "Hamlet"}`)); err != nil {
		t.Errorf("expected valid, got %v", err)
	}
	if err := v.Validate(decode(t, `{"id": 7, "extra": true}`)); err != nil {
		t.Errorf("expected extra properties to be allowed, got %v", err)
	}
	if err := v.Validate(decode(t, `{"title": "Hamlet"}`)); err == nil {
		t.Error("expected invalid for missing required field")
	}
	if err := v.Validate(decode(t, `{"id": "seven"}`)); err == nil {
		t.Error("expected invalid for wrong type")
	}
}

func TestValidationErrorMessages_HumanReadable(t *testing.T) {
	tests := []struct {
		name           string
		schema         string
		data           string
		wantContains   []string
		wantNotContain []string
	}{
		{
			name:           "type mismatch - string expected",
			schema:         `{"type": "object", "properties": {"title": {"type": "string"}}, "required": ["title"]}`,
			data:           `{"title": 123}`,
			wantContains:   []string{"/title", "string"},
			wantNotContain: []string{"&{", "file:///", "$ref"},
		},
		{
			name:           "missing required property",
			schema:         `{"type": "object", "properties": {"id": {"type": "integer"}, "title": {"type": "string"}}, "required": ["id", "title"]}`,
			data:           `{"id": 1}`,
			wantContains:   []string{"title"},
			wantNotContain: []string{"&{", "file:///"},
		},
		{
			name:           "null where integer expected",
			schema:         `{"type": "object", "properties": {"count": {"type": "integer"}}, "required": ["count"]}`,
			data:           `{"count": null}`,
			wantContains:   []string{"integer"},
			wantNotContain: []string{"&{null [integer]}", "&{"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Compile([]byte(tt.schema))
			if err != nil {
				t.Fatalf("compile: %v", err)
			}

			err = v.Validate(decode(t, tt.data))
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if len(verr.Messages) == 0 {
				t.Fatal("expected at least one message")
			}

			joined := strings.Join(verr.Messages, "\n")
			for _, want := range tt.wantContains {
				if !strings.Contains(joined, want) {
					t.Errorf("messages %q should contain %q", joined, want)
				}
			}
			for _, bad := range tt.wantNotContain {
				if strings.Contains(joined, bad) {
					t.Errorf("messages %q should not contain %q", joined, bad)
				}
			}
		})
	}
}

func TestReflect(t *testing.T) {
	type document struct {
		ID    int    `json:"id"`
		Title string `json:"title,omitempty"`
	}

	raw, err := Reflect[document]()
	if err != nil {
		t.Fatalf("reflect: %v", err)
	}

	var s map[string]any
	if err := json.Unmarshal(raw, &s); err != nil {
		t.Fatalf("reflected schema is not JSON: %v", err)
	}
	if s["type"] != "object" {
		t.Errorf("type = %v, want object", s["type"])
	}
	if _, ok := s["$defs"]; ok {
		t.Error("expected inlined schema without $defs")
	}

	v, err := Compile(raw)
	if err != nil {
		t.Fatalf("compile reflected schema: %v", err)
	}
	if err := v.Validate(decode(t, `{"id": 1, "score": 0.5}`)); err != nil {
		t.Errorf("expected valid, got %v", err)
	}
	if err := v.Validate(decode(t, `{"title": "no id"}`)); err == nil {
		t.Error("expected id to be required")
	}
}
