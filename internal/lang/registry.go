package lang

import (
	"fmt"
	"path/filepath"
	"strings"
)

var registry = map[string]Adapter{}
var byExt = map[string]Adapter{}

// Register makes an Adapter available under its Name() and every
// extension it claims. Called from each language package's init().
func Register(a Adapter) {
	if a == nil {
		panic("lang.Register: nil adapter")
	}
	if _, dup := registry[a.Name()]; dup {
		panic("lang.Register: called twice for " + a.Name())
	}
	registry[a.Name()] = a
	for _, ext := range a.Extensions() {
		byExt[strings.ToLower(ext)] = a
	}
}

// Get resolves an adapter by its language slug.
func Get(name string) (Adapter, bool) {
	a, ok := registry[name]
	return a, ok
}

// GetByExtension resolves an adapter by file extension (with or without
// the leading dot, case-insensitive). Unknown extensions return ok=false.
func GetByExtension(ext string) (Adapter, bool) {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	a, ok := byExt[ext]
	return a, ok
}

// GetByPath resolves an adapter from a file path's extension.
func GetByPath(path string) (Adapter, bool) {
	return GetByExtension(filepath.Ext(path))
}

// Names returns every registered language slug.
func Names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	return out
}

// ResolveDominant picks the single adapter that should handle a mixed list
// of file paths: if every path maps to the same adapter, return it; if the
// paths span exactly one known language plus unknowns, return that one;
// otherwise return the most frequent language, matching the way a scan
// target of mixed files picks one effective mode for reporting purposes.
func ResolveDominant(paths []string) (Adapter, error) {
	counts := map[string]int{}
	adapters := map[string]Adapter{}
	for _, p := range paths {
		a, ok := GetByPath(p)
		if !ok {
			continue
		}
		counts[a.Name()]++
		adapters[a.Name()] = a
	}
	if len(counts) == 0 {
		return nil, fmt.Errorf("lang: no supported language among %d paths", len(paths))
	}
	var best string
	var bestCount int
	for name, c := range counts {
		if c > bestCount {
			bestCount = c
			best = name
		}
	}
	return adapters[best], nil
}
