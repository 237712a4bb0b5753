package header

import "testing"

const banner = `/*   Skadi - A visual modelling tool for constructing and executing directed graphs.

     Copyright (C) 2022-2023 Visual Topology Ltd

     Licensed under the Open Software License version 3.0
*/
`

func TestStrip(t *testing.T) {
	tests := []struct {
		name         string
		in           string
		want         string
		stripped     bool
		unterminated bool
	}{
		{
			name:     "banner followed by body",
			in:       banner + "class Node {}\n",
			want:     "class Node {}\n",
			stripped: true,
		},
		{
			name:     "blank line after banner is kept",
			in:       banner + "\nlet x = 1;",
			want:     "\nlet x = 1;",
			stripped: true,
		},
		{
			name: "no header",
			in:   "let x = 1;\n/* not a header */\n",
			want: "let x = 1;\n/* not a header */\n",
		},
		{
			name: "indented opener is not a header",
			in:   "  /* comment\n*/\nbody",
			want: "  /* comment\n*/\nbody",
		},
		{
			name: "empty input",
			in:   "",
			want: "",
		},
		{
			name:     "single line comment on line 0 keeps scanning",
			in:       "/* one */\nbody\n*/\nrest",
			want:     "rest",
			stripped: true,
		},
		{
			name:     "closer must start the line",
			in:       "/*\n  */\nbody\n*/ tail\nrest",
			want:     "rest",
			stripped: true,
		},
		{
			name:         "unterminated header swallows everything",
			in:           "/* license\nstill license\nbody",
			want:         "",
			stripped:     true,
			unterminated: true,
		},
		{
			name:         "opener alone",
			in:           "/*",
			want:         "",
			stripped:     true,
			unterminated: true,
		},
		{
			name:     "crlf line endings",
			in:       "/* a\r\n*/\r\nbody\r\n",
			want:     "body\r\n",
			stripped: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Strip(tt.in)
			if got.Text != tt.want {
				t.Errorf("Strip().Text = %q, want %q", got.Text, tt.want)
			}
			if got.Stripped != tt.stripped {
				t.Errorf("Strip().Stripped = %v, want %v", got.Stripped, tt.stripped)
			}
			if got.Unterminated != tt.unterminated {
				t.Errorf("Strip().Unterminated = %v, want %v", got.Unterminated, tt.unterminated)
			}
		})
	}
}

func TestStripIdentityWithoutOpener(t *testing.T) {
	bodies := []string{
		"var A = A || {};",
		"\n/* later */",
		"// line comment\n/* x */",
		"*/ stray closer",
	}
	for _, body := range bodies {
		if got := Strip(body); got.Text != body || got.Stripped {
			t.Errorf("Strip(%q) = %+v, want unchanged", body, got)
		}
	}
}

func TestStripCountsLines(t *testing.T) {
	got := Strip("/*\nx\n*/\nbody")
	if got.Lines != 3 {
		t.Errorf("Lines = %d, want 3", got.Lines)
	}
}
