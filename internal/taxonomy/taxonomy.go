// Package taxonomy holds the set of categories an expense may be filed under.
package taxonomy

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultCategories is used when no categories file is configured or the
// file lists nothing.
var DefaultCategories = []string{"Food", "Housing", "Transport", "Other"}

type Taxonomy struct {
	names []string
	index map[string]string // lower-cased -> canonical
}

type file struct {
	Categories []string `yaml:"categories"`
}

func New(categories []string) *Taxonomy {
	t := &Taxonomy{index: map[string]string{}}
	for _, c := range categories {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		key := strings.ToLower(c)
		if _, ok := t.index[key]; ok {
			continue
		}
		t.index[key] = c
		t.names = append(t.names, c)
	}
	return t
}

// Load reads a YAML document of the form
//
//	categories:
//	  - Food
//	  - Housing
//
// An empty path or a missing file yields the defaults; a file that cannot
// be parsed is an error.
func Load(path string) (*Taxonomy, error) {
	if path == "" {
		return New(DefaultCategories), nil
	}
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return New(DefaultCategories), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read categories file: %w", err)
	}
	var f file
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse categories file %s: %w", path, err)
	}
	t := New(f.Categories)
	if len(t.names) == 0 {
		return New(DefaultCategories), nil
	}
	return t, nil
}

// List returns the categories in file order.
func (t *Taxonomy) List() []string {
	return append([]string(nil), t.names...)
}

// Lookup returns the canonical spelling of name, ignoring case.
func (t *Taxonomy) Lookup(name string) (string, bool) {
	c, ok := t.index[strings.ToLower(strings.TrimSpace(name))]
	return c, ok
}
