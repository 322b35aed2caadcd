package fastforge

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

var (
	// ErrInvalidPath is returned for paths that are empty, absolute or escape the root.
	ErrInvalidPath = errors.New("invalid relative path")
	// ErrDuplicatePath is returned when a path is added to a set twice.
	ErrDuplicatePath = errors.New("duplicate template path")
)

// TemplateEntry is a single config file: where it goes and what it contains.
type TemplateEntry struct {
	// RelativePath is a forward-slash path resolved against the output root.
	RelativePath string
	// Content is the final file body, written byte for byte.
	Content string
}

// TemplateSet is an ordered collection of entries with unique paths.
// The zero value is an empty set ready for use.
type TemplateSet struct {
	entries []TemplateEntry
	index   map[string]int
}

// WrittenFileList holds relative paths in the order they were written.
type WrittenFileList []string

// NewTemplateSet builds a set from entries, keeping their order.
func NewTemplateSet(entries ...TemplateEntry) (*TemplateSet, error) {
	set := &TemplateSet{
		entries: make([]TemplateEntry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}

	for _, entry := range entries {
		if err := set.Add(entry); err != nil {
			return nil, err
		}
	}

	return set, nil
}

// Add appends an entry to the set.
func (s *TemplateSet) Add(entry TemplateEntry) error {
	if err := ValidatePath(entry.RelativePath); err != nil {
		return err
	}

	if s.index == nil {
		s.index = make(map[string]int)
	}

	if _, ok := s.index[entry.RelativePath]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicatePath, entry.RelativePath)
	}

	s.index[entry.RelativePath] = len(s.entries)
	s.entries = append(s.entries, entry)

	return nil
}

// Len returns the number of entries.
func (s *TemplateSet) Len() int {
	if s == nil {
		return 0
	}

	return len(s.entries)
}

// Get looks an entry up by its relative path.
func (s *TemplateSet) Get(relativePath string) (TemplateEntry, bool) {
	if s == nil {
		return TemplateEntry{}, false
	}

	i, ok := s.index[relativePath]
	if !ok {
		return TemplateEntry{}, false
	}

	return s.entries[i], true
}

// Entries returns a copy of the entries in insertion order.
func (s *TemplateSet) Entries() []TemplateEntry {
	if s == nil {
		return nil
	}

	return append([]TemplateEntry(nil), s.entries...)
}

// Paths returns the relative paths in insertion order.
func (s *TemplateSet) Paths() []string {
	if s == nil {
		return nil
	}

	paths := make([]string, 0, len(s.entries))
	for _, entry := range s.entries {
		paths = append(paths, entry.RelativePath)
	}

	return paths
}

// ValidatePath checks that p is a clean, forward-slash path inside the root.
func ValidatePath(p string) error {
	switch {
	case p == "":
		return fmt.Errorf("%w: empty", ErrInvalidPath)
	case strings.Contains(p, `\`):
		return fmt.Errorf("%w: %q contains a backslash", ErrInvalidPath, p)
	case path.IsAbs(p):
		return fmt.Errorf("%w: %q is absolute", ErrInvalidPath, p)
	case path.Clean(p) != p:
		return fmt.Errorf("%w: %q is not clean", ErrInvalidPath, p)
	case p == ".." || strings.HasPrefix(p, "../"):
		return fmt.Errorf("%w: %q escapes the root", ErrInvalidPath, p)
	case p == ".":
		return fmt.Errorf("%w: %q names the root itself", ErrInvalidPath, p)
	}

	return nil
}
