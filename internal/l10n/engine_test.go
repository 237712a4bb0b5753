package l10n

import (
	"errors"
	"reflect"
	"testing"
)

var enBundle = Bundle{
	"save":     "Save",
	"greeting": "Hello {{name}}",
	"":         "EMPTY",
}

func TestLocalise(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no tokens", "plain text { } }", "plain text { } }"},
		{"known key", "{{save}}", "Save"},
		{"unknown key keeps raw text", "{{load}}", "load"},
		{"mixed", "[{{save}}] and [{{load}}]", "[Save] and [load]"},
		{"value is not rescanned", "{{greeting}}", "Hello {{name}}"},
		{"empty token", "a{{}}b", "aEMPTYb"},
		{"unterminated drops the tail", "keep {{save", "keep "},
		{"lone open at end", "x{{", "x"},
		{"no nesting", "{{a{{b}}c}}", "a{{bc}}"},
		{"stray close", "}}{{save}}}", "}}Save}"},
		{"extra open brace joins the key", "{{{save}}", "{save"},
		{"multibyte text", "ü{{save}}ß", "üSaveß"},
		{"empty input", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Localise(tt.input, enBundle); got != tt.want {
				t.Errorf("Localise(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestLocaliseIdentityWithoutDelimiters(t *testing.T) {
	inputs := []string{"", "abc", "{ {x} }", "} }", "function() { return {}; }"}
	for _, in := range inputs {
		if got := Localise(in, enBundle); got != in {
			t.Errorf("Localise(%q) = %q, want unchanged", in, got)
		}
		if got := Localise(in, nil); got != in {
			t.Errorf("Localise(%q, nil) = %q, want unchanged", in, got)
		}
	}
}

func TestScanReportsMissingAndUnterminated(t *testing.T) {
	res := Scan("{{a}} {{save}} {{b}} {{c", enBundle, DefaultDelimiters)

	if !reflect.DeepEqual(res.Missing, []string{"a", "b"}) {
		t.Errorf("Missing = %v", res.Missing)
	}
	if !res.Unterminated {
		t.Error("Unterminated = false, want true")
	}
	if res.Offset != 21 {
		t.Errorf("Offset = %d, want 21", res.Offset)
	}
	if res.Text != "a Save b " {
		t.Errorf("Text = %q", res.Text)
	}
}

func TestScanRuntimeDelimiters(t *testing.T) {
	got := Scan("||save|| {{save}} ||x||", enBundle, RuntimeDelimiters).Text
	if got != "Save {{save}} x" {
		t.Errorf("Scan() = %q", got)
	}
}

func TestScanZeroDelimitersUseDefault(t *testing.T) {
	if got := Scan("{{save}}", enBundle, Delimiters{}).Text; got != "Save" {
		t.Errorf("Scan() = %q, want Save", got)
	}
}

func TestEngineStrictness(t *testing.T) {
	lenient := &Engine{Bundle: enBundle, Name: "page.html"}
	got, err := lenient.Localise("ok {{save")
	if err != nil {
		t.Fatalf("lenient Localise() error = %v", err)
	}
	if got != "ok " {
		t.Errorf("lenient Localise() = %q", got)
	}

	strict := &Engine{Bundle: enBundle, Strict: true}
	if _, err := strict.Localise("ok {{save"); !errors.Is(err, ErrUnterminatedToken) {
		t.Errorf("strict Localise() error = %v, want ErrUnterminatedToken", err)
	}
	if out, err := strict.Localise("{{save}}"); err != nil || out != "Save" {
		t.Errorf("strict Localise() = %q, %v", out, err)
	}
}
