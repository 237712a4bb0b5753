package schemas

import (
	"encoding/json"
	"testing"
)

func TestCompile(t *testing.T) {
	tests := []struct {
		name       string
		schemaName string
		wantErr    bool
	}{
		{name: "compile plan schema", schemaName: Plan},
		{name: "compile config schema", schemaName: Config},
		{name: "compile package schema", schemaName: Package},
		{name: "compile non-existent schema", schemaName: "nonexistent", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schema, err := Compile(tt.schemaName)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Compile(%q) error = %v", tt.schemaName, err)
			}
			if schema == nil {
				t.Fatal("schema is nil")
			}
		})
	}
}

func TestPlanSchemaRejectsEmptySearch(t *testing.T) {
	s, err := Compile(Plan)
	if err != nil {
		t.Fatal(err)
	}
	var doc any
	raw := `{"artifacts": [{"output": "a.js", "sources": ["a.js"], "substitutions": [{"search": "", "replace": "x"}]}]}`
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatal(err)
	}
	if err := s.Validate(doc); err == nil {
		t.Error("expected validation error for empty search string")
	}
}

func TestCompileBytes(t *testing.T) {
	s, err := CompileBytes("inline.json", []byte(`{"type": "object", "required": ["id"]}`))
	if err != nil {
		t.Fatalf("CompileBytes() error = %v", err)
	}
	if err := s.Validate(map[string]any{"id": "x"}); err != nil {
		t.Errorf("valid document rejected: %v", err)
	}
	if err := s.Validate(map[string]any{}); err == nil {
		t.Error("document without id accepted")
	}

	if _, err := CompileBytes("broken.json", []byte(`{not json`)); err == nil {
		t.Error("expected error for malformed schema")
	}
}

func TestGet(t *testing.T) {
	b, err := Get(Package)
	if err != nil {
		t.Fatal(err)
	}
	if !json.Valid(b) {
		t.Error("embedded package schema is not valid JSON")
	}
}
