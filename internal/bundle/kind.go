package bundle

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Kind decides how fragments of an artifact are transformed.
type Kind string

const (
	KindScript Kind = "script"
	KindStyle  Kind = "style"
	KindMarkup Kind = "markup"
	// KindBinary artifacts get their fragments copied byte for byte.
	KindBinary Kind = "binary-passthrough"
)

// ParseKind validates a kind name. An empty name is allowed and means the
// kind is inferred from the output path.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case "", KindScript, KindStyle, KindMarkup, KindBinary:
		return k, nil
	default:
		return "", fmt.Errorf("unknown artifact kind %q", s)
	}
}

// KindFor infers a kind from an output file extension.
func KindFor(output string) Kind {
	switch strings.ToLower(filepath.Ext(output)) {
	case ".js", ".mjs":
		return KindScript
	case ".css":
		return KindStyle
	case ".html", ".htm", ".svg":
		return KindMarkup
	default:
		return KindBinary
	}
}

// StripsHeaders reports whether fragments lose their license header.
// The banner is written for the same kinds.
func (k Kind) StripsHeaders() bool {
	return k == KindScript
}

// Substitutes reports whether placeholders are replaced in fragments.
func (k Kind) Substitutes() bool {
	return k != KindBinary
}

// DefaultAnnotate is used when a plan does not say whether to annotate.
func (k Kind) DefaultAnnotate() bool {
	return k == KindScript || k == KindStyle
}

// annotation is the one-line comment naming a fragment's source path.
func (k Kind) annotation(fragment string) string {
	switch k {
	case KindMarkup:
		return "<!-- " + fragment + " -->\n"
	case KindBinary:
		return ""
	default:
		return "/* " + fragment + " */\n"
	}
}
