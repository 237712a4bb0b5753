package commands

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/visualtopology/skadi-build/internal/config"
	"github.com/visualtopology/skadi-build/internal/plan"
)

func TestExecuteInit(t *testing.T) {
	root := t.TempDir()
	buf := captureOut(t)

	if err := ExecuteInit(InitOptions{Root: root, Version: "1.0.0"}); err != nil {
		t.Fatalf("ExecuteInit() error = %v", err)
	}
	cfg, err := config.Load(root)
	if err != nil {
		t.Fatalf("config.Load() error = %v", err)
	}
	if cfg.Version != "1.0.0" || cfg.Plan != "" {
		t.Errorf("config version/plan = %q/%q", cfg.Version, cfg.Plan)
	}

	buf.Reset()
	if err := ExecuteInit(InitOptions{Root: root, Version: "2.0.0"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "kept existing") {
		t.Errorf("existing config should be kept: %q", buf.String())
	}
	if cfg, _ := config.Load(root); cfg.Version != "1.0.0" {
		t.Errorf("config overwritten without --force: %q", cfg.Version)
	}
}

func TestExecuteInitPlans(t *testing.T) {
	tests := []struct {
		name      string
		opts      InitOptions
		planFile  string
		artifacts int
	}{
		{"starter plan", InitOptions{WithPlan: true}, "plan.jsonc", 2},
		{"built-in plan", InitOptions{DefaultPlan: true}, "plan.json", len(plan.Default().Artifacts)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			captureOut(t)
			tt.opts.Root = root

			if err := ExecuteInit(tt.opts); err != nil {
				t.Fatalf("ExecuteInit() error = %v", err)
			}
			cfg, err := config.Load(root)
			if err != nil {
				t.Fatal(err)
			}
			if cfg.Plan != tt.planFile {
				t.Errorf("config plan = %q, want %q", cfg.Plan, tt.planFile)
			}
			p, err := plan.Load(filepath.Join(root, tt.planFile))
			if err != nil {
				t.Fatalf("written plan does not load: %v", err)
			}
			if len(p.Artifacts) != tt.artifacts {
				t.Errorf("plan has %d artifacts, want %d", len(p.Artifacts), tt.artifacts)
			}
		})
	}
}

func TestExecuteInitConflictingPlans(t *testing.T) {
	err := ExecuteInit(InitOptions{Root: t.TempDir(), WithPlan: true, DefaultPlan: true})
	if err == nil {
		t.Error("expected error for --with-plan with --default-plan")
	}
}
