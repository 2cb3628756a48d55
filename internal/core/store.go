package core

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	ignore "github.com/sabhiram/go-gitignore"
)

// Storage persists artifacts. Errors are returned as produced by the backing store so
// callers can inspect them (errors.Is(err, fs.ErrNotExist)).
type Storage interface {
	Read(p string) (Artifact, error)
	Save(a Artifact) error
	// Move relocates a according to u and returns the artifact at its new path.
	Move(a Artifact, u Update) (Artifact, error)
	Delete(a Artifact) error
}

// Lister is implemented by storages that can enumerate their artifacts.
type Lister interface {
	List() ([]string, error)
}

var skipDirs = map[string]bool{
	"node_modules": true,
}

// FileStore stores artifacts as files below a workspace root. Reads are served from an
// LRU cache that every write through the store keeps current.
type FileStore struct {
	root    string
	cache   *lru.Cache[string, []byte]
	exclude []string
}

// NewFileStore returns a FileStore rooted at root.
func NewFileStore(root string, cfg Config) (*FileStore, error) {
	size := cfg.CacheSize
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, []byte](size)
	if err != nil {
		return nil, err
	}
	return &FileStore{root: root, cache: cache, exclude: cfg.Exclude.Paths}, nil
}

// Root returns the workspace root directory.
func (s *FileStore) Root() string { return s.root }

func (s *FileStore) abs(p string) string {
	return filepath.Join(s.root, filepath.FromSlash(p))
}

// Read returns the artifact at p, from the cache when possible.
func (s *FileStore) Read(p string) (Artifact, error) {
	clean, err := cleanPath(p)
	if err != nil {
		return nil, err
	}
	if _, ok := KindOf(clean); !ok {
		return nil, fmt.Errorf("unsupported file type: %s", clean)
	}
	if data, ok := s.cache.Get(clean); ok {
		return NewArtifact(clean, clone(data))
	}
	data, err := os.ReadFile(s.abs(clean))
	if err != nil {
		return nil, err
	}
	s.cache.Add(clean, clone(data))
	return NewArtifact(clean, data)
}

// Save writes a atomically, creating parent directories as needed.
func (s *FileStore) Save(a Artifact) error {
	full := s.abs(a.Path())
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}
	if err := writeFileAtomic(full, a.Content()); err != nil {
		s.cache.Remove(a.Path())
		return err
	}
	s.cache.Add(a.Path(), clone(a.Content()))
	return nil
}

// Move renames a to its destination under u. An existing destination is refused and
// emptied source directories are removed.
func (s *FileStore) Move(a Artifact, u Update) (Artifact, error) {
	dest, err := Destination(a, u)
	if err != nil {
		return nil, err
	}
	fullFrom, fullTo := s.abs(a.Path()), s.abs(dest)
	if _, err := os.Stat(fullTo); err == nil {
		return nil, fmt.Errorf("destination already exists: %s", dest)
	}
	if err := os.MkdirAll(filepath.Dir(fullTo), 0o755); err != nil {
		return nil, err
	}
	if err := os.Rename(fullFrom, fullTo); err != nil {
		return nil, err
	}
	s.cache.Remove(a.Path())
	_ = CleanupEmptyDirs(s.root, []string{a.Path()})
	return NewArtifact(dest, a.Content())
}

// Delete removes a and any directories it leaves empty.
func (s *FileStore) Delete(a Artifact) error {
	if err := os.Remove(s.abs(a.Path())); err != nil {
		return err
	}
	s.cache.Remove(a.Path())
	return CleanupEmptyDirs(s.root, []string{a.Path()})
}

// List returns the sorted root-relative paths of every artifact in the workspace.
// Dot-directories, node_modules, .gitignore matches and excluded paths are skipped.
func (s *FileStore) List() ([]string, error) {
	gi := loadGitignore(s.root)
	var paths []string
	err := filepath.WalkDir(s.root, func(full string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if full == s.root {
				return nil
			}
			if skipDirs[name] || strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, ".") || d.Type()&fs.ModeSymlink != 0 {
			return nil
		}
		rel, err := filepath.Rel(s.root, full)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if gi != nil && gi.MatchesPath(rel) {
			return nil
		}
		if excluded(rel, s.exclude) {
			return nil
		}
		if _, ok := KindOf(rel); !ok {
			return nil
		}
		paths = append(paths, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

func loadGitignore(root string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return gi
}

// writeFileAtomic writes data to a temporary file next to path and renames it into
// place. The permission bits of an existing file are kept.
func writeFileAtomic(path string, data []byte) error {
	perm := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	// CreateTemp applies 0600; restore the exact bits.
	if err := os.Chmod(tmpPath, perm); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	committed = true
	return nil
}

func clone(b []byte) []byte {
	return append([]byte(nil), b...)
}
