package fsutil

import (
	"crypto/sha256"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// HashFile returns the hex sha256 of the file at path.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// IsPattern reports whether p contains glob metacharacters.
func IsPattern(p string) bool {
	return strings.ContainsAny(p, "*?[{")
}

// Expand resolves plan entries relative to root. Literal entries are kept
// as-is (existence is checked later by whoever reads them). Glob entries are
// replaced by their matches in lexical order; a glob matching nothing is an
// error. Declaration order across entries is preserved and nothing is
// deduplicated.
func Expand(root string, entries []string) ([]string, error) {
	fsys := os.DirFS(root)
	var out []string
	for _, e := range entries {
		e = filepath.ToSlash(e)
		if !IsPattern(e) {
			out = append(out, e)
			continue
		}
		matches, err := doublestar.Glob(fsys, e, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("expand %s: %w", e, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("expand %s: no files match", e)
		}
		sort.Strings(matches)
		out = append(out, matches...)
	}
	return out, nil
}

// MatchesAny returns true if the slash-separated path matches any glob.
func MatchesAny(path string, globs []string) bool {
	normalized := filepath.ToSlash(path)
	for _, g := range globs {
		if g == "" {
			continue
		}
		ok, err := doublestar.Match(g, normalized)
		if err == nil && ok {
			return true
		}
	}
	return false
}

// CopyTree replaces dst with a copy of src. Files whose path relative to src
// matches one of exclude are skipped. It returns the number of files copied.
func CopyTree(src, dst string, exclude []string) (int, error) {
	info, err := os.Stat(src)
	if err != nil {
		return 0, fmt.Errorf("copy %s: %w", src, err)
	}
	if !info.IsDir() {
		return 0, fmt.Errorf("copy %s: not a directory", src)
	}
	if err := os.RemoveAll(dst); err != nil {
		return 0, fmt.Errorf("clear %s: %w", dst, err)
	}

	copied := 0
	err = filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		if MatchesAny(rel, exclude) {
			return nil
		}
		if err := copyFile(path, target); err != nil {
			return err
		}
		copied++
		return nil
	})
	if err != nil {
		return copied, fmt.Errorf("copy %s to %s: %w", src, dst, err)
	}
	return copied, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
