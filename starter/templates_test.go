package starter

import (
	"strings"
	"testing"

	"github.com/visualtopology/skadi-build/internal/jsonc"
)

func TestGet(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		wantErr   bool
		wantParts []string
	}{
		{name: "config", path: "skadi-build.jsonc", wantParts: []string{"{{version}}", "{{plan}}", `"serve"`}},
		{name: "plan", path: "plan.jsonc", wantParts: []string{`"artifacts"`, `"copies"`}},
		{name: "leading slash is stripped", path: "/plan.jsonc", wantParts: []string{`"icons"`}},
		{name: "missing", path: "nonexistent.json", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content, err := Get(tt.path)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for _, part := range tt.wantParts {
				if !strings.Contains(content, part) {
					t.Errorf("template %s missing %q", tt.path, part)
				}
			}
		})
	}
}

func TestApply(t *testing.T) {
	got := Apply(`v={{version}} at {{createdAt}} {{other}}`, map[string]string{
		"version":   "1.0.0",
		"createdAt": "2026-01-01T00:00:00Z",
	})
	want := "v=1.0.0 at 2026-01-01T00:00:00Z other"
	if got != want {
		t.Errorf("Apply() = %q, want %q", got, want)
	}
}

func TestTemplatesAreJSONC(t *testing.T) {
	for _, name := range []string{"skadi-build.jsonc", "plan.jsonc"} {
		tpl, err := Get(name)
		if err != nil {
			t.Fatal(err)
		}
		var doc map[string]any
		out := Apply(tpl, map[string]string{"version": "0.0.1", "plan": "", "createdAt": "now"})
		if err := jsonc.Decode([]byte(out), &doc); err != nil {
			t.Errorf("%s does not decode after Apply: %v", name, err)
		}
	}
}
