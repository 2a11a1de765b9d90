// Package normalisers converts raw project documents into the plain-text
// input files the indexing engine consumes. Selection is by file extension;
// when multiple normalisers claim an extension the highest priority wins.
package normalisers

import (
	"sort"
	"strings"
	"sync"
)

// Normaliser converts one raw document into indexable text. Name is the
// source filename; the returned name is the file to write under input/.
type Normaliser interface {
	// SupportedExtensions lists lowercase extensions including the dot.
	SupportedExtensions() []string

	// Priority orders normalisers claiming the same extension (higher wins).
	Priority() int

	Normalise(name string, content []byte) (outName string, out []byte, err error)
}

// Registry selects normalisers by file extension.
type Registry struct {
	mu          sync.RWMutex
	normalisers []Normaliser
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// NewDefaultRegistry creates a registry with the built-in normalisers.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&TextNormaliser{})
	r.Register(&MarkdownNormaliser{})
	r.Register(&CSVNormaliser{})
	return r
}

// Register adds a normaliser.
func (r *Registry) Register(n Normaliser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.normalisers = append(r.normalisers, n)
}

// Get returns the best normaliser for a filename, or nil when the extension
// is unsupported.
func (r *Registry) Get(name string) Normaliser {
	ext := strings.ToLower(extOf(name))

	r.mu.RLock()
	defer r.mu.RUnlock()

	var matches []Normaliser
	for _, n := range r.normalisers {
		for _, e := range n.SupportedExtensions() {
			if e == ext {
				matches = append(matches, n)
				break
			}
		}
	}
	if len(matches) == 0 {
		return nil
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Priority() > matches[j].Priority()
	})
	return matches[0]
}

// Extensions lists every supported extension, sorted and deduplicated.
func (r *Registry) Extensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool)
	var exts []string
	for _, n := range r.normalisers {
		for _, e := range n.SupportedExtensions() {
			if !seen[e] {
				seen[e] = true
				exts = append(exts, e)
			}
		}
	}
	sort.Strings(exts)
	return exts
}

func extOf(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return ""
	}
	return name[i:]
}
