package core

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// NormalizePath cleans a root-relative path: forward slashes, no leading "./".
func NormalizePath(p string) string {
	clean := filepath.ToSlash(filepath.Clean(p))
	return strings.TrimPrefix(clean, "./")
}

// cleanPath normalizes p and rejects paths that leave the workspace root.
func cleanPath(p string) (string, error) {
	if p == "" {
		return "", fmt.Errorf("empty path")
	}
	if filepath.IsAbs(p) || strings.HasPrefix(p, "/") {
		return "", fmt.Errorf("path must be relative to the workspace root: %s", p)
	}
	n := NormalizePath(p)
	if n == "." || n == ".." || strings.HasPrefix(n, "../") {
		return "", fmt.Errorf("path escapes workspace root: %s", p)
	}
	return n, nil
}

// CleanupEmptyDirs removes empty directories left after file moves or deletions.
// It walks from each path's parent directory upward, removing empty directories
// until it reaches root or encounters a non-empty directory.
func CleanupEmptyDirs(root string, paths []string) error {
	cleaned := make(map[string]bool)
	for _, p := range paths {
		dir := filepath.Dir(filepath.Join(root, p))
		for {
			rel, err := filepath.Rel(root, dir)
			if err != nil {
				break
			}
			rel = filepath.ToSlash(rel)
			if rel == "." || rel == "" || strings.HasPrefix(rel, "..") {
				break
			}
			if cleaned[dir] {
				break
			}
			if err := os.Remove(dir); err != nil {
				break // non-empty or permission error
			}
			cleaned[dir] = true
			dir = filepath.Dir(dir)
		}
	}
	return nil
}

// without returns paths minus every occurrence of p.
func without(paths []string, p string) []string {
	out := make([]string, 0, len(paths))
	for _, q := range paths {
		if q != p {
			out = append(out, q)
		}
	}
	return out
}

// resolveRequire resolves a require literal found in the artifact at from to a
// root-relative path. Only relative literals ("./", "../") resolve. A literal that omits
// ".js" resolves to the ".js" file when the literal itself has no known kind.
func resolveRequire(from, value string) (string, bool) {
	if !strings.HasPrefix(value, "./") && !strings.HasPrefix(value, "../") {
		return "", false
	}
	target := path.Join(path.Dir(from), value)
	if target == ".." || strings.HasPrefix(target, "../") {
		return "", false
	}
	if _, ok := KindOf(target); !ok {
		if _, ok := KindOf(target + ".js"); ok {
			target += ".js"
		}
	}
	return target, true
}

// relativeRequire returns the require literal that reaches to from the artifact at from.
// The result always starts with "./" or "../". When original omitted the ".js" extension
// the result omits it too.
func relativeRequire(from, to, original string) string {
	rel, err := filepath.Rel(filepath.FromSlash(path.Dir(from)), filepath.FromSlash(to))
	if err != nil {
		rel = to
	}
	rel = filepath.ToSlash(rel)
	if !strings.HasPrefix(rel, "../") {
		rel = "./" + rel
	}
	if !strings.HasSuffix(original, ".js") && strings.HasSuffix(rel, ".js") {
		rel = strings.TrimSuffix(rel, ".js")
	}
	return rel
}
