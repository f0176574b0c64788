package texsplit

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// resolver locates LaTeX sources under a project root.
type resolver struct {
	root string
	ext  string
}

// recordFile resolves a record's file, which is normally relative to the
// root. Older .secid files only carry a bare file name, so a bare name that
// is not found directly is searched for recursively.
func (r *resolver) recordFile(name string) (string, bool) {
	name = normalizeSlashes(name)
	if p := r.join(r.root, name); isFile(p) {
		return p, true
	}
	return r.search(name)
}

// inputFile resolves the argument of an \input directive found in current.
// The default extension is appended when missing. Lookup order: the
// directory of current, the project root, then a recursive name search.
func (r *resolver) inputFile(arg, current string) (string, bool) {
	name := normalizeSlashes(arg)
	if !strings.HasSuffix(name, r.ext) {
		name += r.ext
	}
	if current != "" {
		if p := r.join(filepath.Dir(current), name); isFile(p) {
			return p, true
		}
	}
	if p := r.join(r.root, name); isFile(p) {
		return p, true
	}
	return r.search(name)
}

// relative renders path relative to the root with forward slashes and the
// default extension stripped, the form \input arguments are usually written
// in. ok is false when path lies outside the root.
func (r *resolver) relative(path string) (string, bool) {
	rel, err := filepath.Rel(r.root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	return strings.TrimSuffix(rel, r.ext), true
}

func (r *resolver) join(dir, name string) string {
	native := filepath.FromSlash(name)
	if filepath.IsAbs(native) {
		return filepath.Clean(native)
	}
	return filepath.Join(dir, native)
}

// search walks the root in lexical order and returns the first regular file
// whose base name is name. Only bare names are searched.
func (r *resolver) search(name string) (string, bool) {
	if strings.Contains(name, "/") {
		return "", false
	}
	var found string
	_ = filepath.WalkDir(r.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() && d.Name() == name && d.Type().IsRegular() {
			found = path
			return fs.SkipAll
		}
		return nil
	})
	return found, found != ""
}

func normalizeSlashes(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// readLines reads a text file, replacing invalid UTF-8 bytes with U+FFFD
// instead of failing.
func readLines(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	text, _, err := transform.Bytes(unicode.UTF8.NewDecoder(), raw)
	if err != nil {
		return nil, err
	}
	return splitLines(string(text)), nil
}

// splitLines splits on \n, \r\n and \r. A trailing line break does not
// yield an empty final line.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}
