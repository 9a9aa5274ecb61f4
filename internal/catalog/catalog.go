package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"go.yaml.in/yaml/v3"
)

// Dataset kinds understood by the loaders.
const (
	KindCitation = "citation"
	KindTUD      = "tud"
)

//go:embed catalog.yaml
var builtinYAML []byte

// Entry describes one named dataset: where to fetch it and how to read it.
type Entry struct {
	Name        string `yaml:"name"`
	Kind        string `yaml:"kind"`
	URL         string `yaml:"url"`
	Version     string `yaml:"version"`
	SHA256      string `yaml:"sha256,omitempty"`
	Description string `yaml:"description,omitempty"`
	Subdir      string `yaml:"subdir,omitempty"`
}

// document is the shape of a catalog YAML file.
type document struct {
	Datasets []Entry `yaml:"datasets"`
}

// Problem reports a user catalog file that could not be merged.
type Problem struct {
	Path   string
	Reason string
}

// Catalog is a merged name -> Entry registry.
type Catalog struct {
	entries map[string]Entry
}

var (
	builtinOnce sync.Once
	builtinCat  *Catalog
	builtinErr  error
)

// Builtin returns the embedded catalog. The embed is parsed once; a broken
// embed is a build defect and surfaces as an error on every call.
func Builtin() (*Catalog, error) {
	builtinOnce.Do(func() {
		var doc document
		if err := yaml.Unmarshal(builtinYAML, &doc); err != nil {
			builtinErr = fmt.Errorf("parsing embedded catalog: %w", err)
			return
		}
		builtinCat = &Catalog{entries: make(map[string]Entry, len(doc.Datasets))}
		for _, e := range doc.Datasets {
			builtinCat.entries[e.Name] = e
		}
	})
	return builtinCat, builtinErr
}

// Load returns the built-in catalog merged with user catalog files from
// userDir (*.yaml and *.yml, lexical order). Files that fail to read, fail
// schema validation, or fail to parse are skipped and reported as Problems.
// A missing userDir is not an error.
func Load(userDir string) (*Catalog, []Problem, error) {
	base, err := Builtin()
	if err != nil {
		return nil, nil, err
	}

	merged := &Catalog{entries: make(map[string]Entry, len(base.entries))}
	for name, e := range base.entries {
		merged.entries[name] = e
	}

	var problems []Problem
	for _, path := range userCatalogFiles(userDir) {
		raw, err := os.ReadFile(path)
		if err != nil {
			problems = append(problems, Problem{Path: path, Reason: err.Error()})
			continue
		}

		result, err := Validate(raw)
		if err != nil {
			problems = append(problems, Problem{Path: path, Reason: err.Error()})
			continue
		}
		if !result.Valid {
			problems = append(problems, Problem{Path: path, Reason: result.Summary()})
			continue
		}

		var doc document
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			problems = append(problems, Problem{Path: path, Reason: err.Error()})
			continue
		}
		// User entries win on collision.
		for _, e := range doc.Datasets {
			merged.entries[e.Name] = e
		}
	}

	return merged, problems, nil
}

// userCatalogFiles lists YAML files under dir in lexical order. A missing or
// unreadable dir yields an empty list.
func userCatalogFiles(dir string) []string {
	if dir == "" {
		return nil
	}
	var files []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			continue
		}
		files = append(files, matches...)
	}
	sort.Strings(files)
	return files
}

// Lookup returns the entry for name, if known.
func (c *Catalog) Lookup(name string) (Entry, bool) {
	e, ok := c.entries[name]
	return e, ok
}

// All returns every entry, sorted by name.
func (c *Catalog) All() []Entry {
	out := make([]Entry, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}
