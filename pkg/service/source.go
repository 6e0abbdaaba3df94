package service

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// Source is a file fennec works on.
type Source struct {
	// Name is the path relative to the project root when the file lies
	// inside it.
	Name string
	Path string
	// External marks third-party sources, which are never formatted.
	External bool
}

// Manager discovers, loads and writes sources.
type Manager struct {
	root       string
	extensions []string
	excludes   []string

	mu      sync.Mutex
	sources map[string]Source
}

// NewManager creates a manager for the project at root.
func NewManager(root string, extensions, excludes []string) *Manager {
	return &Manager{
		root:       root,
		extensions: extensions,
		excludes:   excludes,
		sources:    map[string]Source{},
	}
}

// Add registers the files at paths. Directories are walked for files
// with a source extension; files named explicitly are always added.
// Exclusions only apply to the project's own sources.
func (m *Manager) Add(paths []string, external bool) error {
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", path, err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return fmt.Errorf("accessing %s: %w", path, err)
		}
		if !info.IsDir() {
			m.add(abs, external)
			continue
		}
		err = filepath.WalkDir(abs, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if p != abs && (d.Name() == ".git" || !external && m.excluded(p)) {
					return filepath.SkipDir
				}
				return nil
			}
			if m.hasExtension(p) && (external || !m.excluded(p)) {
				m.add(p, external)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("walking %s: %w", path, err)
		}
	}
	return nil
}

func (m *Manager) add(path string, external bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.sources[path]; ok && !existing.External {
		return
	}
	m.sources[path] = Source{Name: m.name(path), Path: path, External: external}
}

func (m *Manager) name(path string) string {
	rel, err := filepath.Rel(m.root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.ToSlash(rel)
}

func (m *Manager) hasExtension(path string) bool {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	return slices.ContainsFunc(m.extensions, func(e string) bool {
		return strings.EqualFold(e, ext)
	})
}

func (m *Manager) excluded(path string) bool {
	name := m.name(path)
	base := filepath.Base(path)
	for _, pattern := range m.excludes {
		pattern = strings.TrimSuffix(filepath.ToSlash(pattern), "/")
		if name == pattern || strings.HasPrefix(name, pattern+"/") {
			return true
		}
		if ok, _ := filepath.Match(pattern, name); ok {
			return true
		}
		if ok, _ := filepath.Match(pattern, base); ok {
			return true
		}
	}
	return false
}

// Sources returns every registered source sorted by name.
func (m *Manager) Sources() []Source {
	m.mu.Lock()
	defer m.mu.Unlock()
	sources := make([]Source, 0, len(m.sources))
	for _, s := range m.sources {
		sources = append(sources, s)
	}
	slices.SortFunc(sources, func(a, b Source) int {
		return strings.Compare(a.Name, b.Name)
	})
	return sources
}

// UserDefined returns the project's own sources sorted by name.
func (m *Manager) UserDefined() []Source {
	return slices.DeleteFunc(m.Sources(), func(s Source) bool {
		return s.External
	})
}

// Load reads the content of s.
func (m *Manager) Load(s Source) (string, error) {
	content, err := os.ReadFile(s.Path)
	if err != nil {
		return "", fmt.Errorf("loading %s: %w", s.Name, err)
	}
	return string(content), nil
}

// Write replaces the content of s, keeping its permissions.
func (m *Manager) Write(s Source, content string) error {
	mode := fs.FileMode(0644)
	if info, err := os.Stat(s.Path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(s.Path, []byte(content), mode); err != nil {
		return fmt.Errorf("writing %s: %w", s.Name, err)
	}
	return nil
}
