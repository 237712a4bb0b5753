// Package plan declares which artifacts a build produces and from which
// fragments, and runs those declarations.
package plan

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/visualtopology/skadi-build/internal/bundle"
	"github.com/visualtopology/skadi-build/internal/jsonc"
	"github.com/visualtopology/skadi-build/internal/subst"
	"github.com/visualtopology/skadi-build/internal/validate"
	"github.com/visualtopology/skadi-build/schemas"
)

// Plan is the full description of a build.
type Plan struct {
	// Icons, when set, is generated before any artifact is built.
	Icons     *IconPass  `json:"icons,omitempty" yaml:"icons,omitempty"`
	Artifacts []Artifact `json:"artifacts" yaml:"artifacts"`
	Copies    []Copy     `json:"copies,omitempty" yaml:"copies,omitempty"`
}

// IconPass embeds image files into a script fragment.
type IconPass struct {
	Output  string   `json:"output" yaml:"output"`
	Sources []string `json:"sources" yaml:"sources"`
}

// Artifact is one output file and its ordered fragments.
type Artifact struct {
	Output string `json:"output" yaml:"output"`
	// Kind is inferred from Output when empty.
	Kind string `json:"kind,omitempty" yaml:"kind,omitempty"`
	// Annotate defaults per kind when nil.
	Annotate      *bool     `json:"annotate,omitempty" yaml:"annotate,omitempty"`
	Sources       []string  `json:"sources" yaml:"sources"`
	Substitutions subst.Map `json:"substitutions,omitempty" yaml:"substitutions,omitempty"`
}

// ResolvedKind returns the declared kind or the one implied by Output.
func (a Artifact) ResolvedKind() (bundle.Kind, error) {
	k, err := bundle.ParseKind(a.Kind)
	if err != nil {
		return "", fmt.Errorf("artifact %s: %w", a.Output, err)
	}
	if k == "" {
		k = bundle.KindFor(a.Output)
	}
	return k, nil
}

// ShouldAnnotate applies the kind default when Annotate is unset.
func (a Artifact) ShouldAnnotate(k bundle.Kind) bool {
	if a.Annotate != nil {
		return *a.Annotate
	}
	return k.DefaultAnnotate()
}

// Copy mirrors a directory tree. The destination is removed first.
type Copy struct {
	From    string   `json:"from" yaml:"from"`
	To      string   `json:"to" yaml:"to"`
	Exclude []string `json:"exclude,omitempty" yaml:"exclude,omitempty"`
}

// Validate checks the parts of a plan that do not depend on the file
// system.
func (p *Plan) Validate() error {
	if p.Icons != nil && p.Icons.Output == "" {
		return fmt.Errorf("icons: output is required")
	}
	seen := make(map[string]bool, len(p.Artifacts))
	for i, a := range p.Artifacts {
		if a.Output == "" {
			return fmt.Errorf("artifact %d: output is required", i)
		}
		if seen[a.Output] {
			return fmt.Errorf("artifact %s declared twice", a.Output)
		}
		seen[a.Output] = true
		if _, err := a.ResolvedKind(); err != nil {
			return err
		}
		if err := a.Substitutions.Validate(); err != nil {
			return fmt.Errorf("artifact %s: %w", a.Output, err)
		}
	}
	for i, c := range p.Copies {
		if c.From == "" || c.To == "" {
			return fmt.Errorf("copy %d: from and to are required", i)
		}
	}
	return nil
}

// Load reads a plan file. Files ending in .yaml or .yml are YAML, anything
// else is JSONC. The document is checked against the plan schema before it
// is decoded.
func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read plan: %w", err)
	}
	return Parse(path, data)
}

// Parse decodes plan data; name picks the format and labels errors.
func Parse(name string, data []byte) (*Plan, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		// Re-encode so both formats share one decode and validation path.
		encoded, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		data = encoded
	default:
		data = jsonc.Clean(data)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	if err := validate.Value(name, doc, schemas.Plan); err != nil {
		return nil, err
	}

	var p Plan
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &p, nil
}

// Outputs lists every path the plan writes, in run order.
func (p *Plan) Outputs() []string {
	var out []string
	if p.Icons != nil {
		out = append(out, p.Icons.Output)
	}
	for _, a := range p.Artifacts {
		out = append(out, a.Output)
	}
	for _, c := range p.Copies {
		out = append(out, c.To)
	}
	return out
}
