// Package stale compares generated artifacts on disk with what a build
// recorded for them.
package stale

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/visualtopology/skadi-build/internal/fsutil"
	"github.com/visualtopology/skadi-build/internal/history"
)

// Detect checks every recorded artifact against the file now at its output
// path under root and returns one line per difference, sorted. A size
// mismatch is reported without hashing.
func Detect(root string, recorded []history.Artifact) []string {
	var stale []string
	for _, a := range recorded {
		abs := a.Output
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(root, filepath.FromSlash(a.Output))
		}
		info, err := os.Stat(abs)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				stale = append(stale, fmt.Sprintf("missing file %s", a.Output))
				continue
			}
			stale = append(stale, fmt.Sprintf("error reading %s: %v", a.Output, err))
			continue
		}
		if info.Size() != a.Bytes {
			stale = append(stale, fmt.Sprintf("changed file %s", a.Output))
			continue
		}
		h, err := fsutil.HashFile(abs)
		if err != nil {
			stale = append(stale, fmt.Sprintf("hash %s: %v", a.Output, err))
			continue
		}
		if h != a.SHA256 {
			stale = append(stale, fmt.Sprintf("changed file %s", a.Output))
		}
	}
	sort.Strings(stale)
	return stale
}
