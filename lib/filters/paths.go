package filters

import (
	"fmt"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/samber/lo"
)

// PathFilter decides if a slash separated, repository relative path should be analyzed.
type PathFilter func(path string) bool

// ParseExcludeFilter returns a filter that rejects paths matching any of the globs.
func ParseExcludeFilter(globs []string) (PathFilter, error) {
	globs = lo.Filter(lo.Map(globs, func(g string, _ int) string { return strings.TrimSpace(g) }),
		func(g string, _ int) bool { return g != "" })

	for _, g := range globs {
		if !doublestar.ValidatePattern(g) {
			return nil, fmt.Errorf("invalid file glob: %v", g)
		}
	}

	return func(p string) bool {
		for _, g := range globs {
			if match(g, p) || match(g, path.Base(p)) {
				return false
			}
		}
		return true
	}, nil
}

// ExtensionFilter accepts paths whose extension is in exts. With no
// extensions, every path is accepted. Files without a dot use their whole
// name as extension, so "Makefile" is ".Makefile".
func ExtensionFilter(exts []string) PathFilter {
	if len(exts) == 0 {
		return func(string) bool { return true }
	}

	allowed := make(map[string]bool, len(exts))
	for _, e := range exts {
		allowed[e] = true
	}

	return func(p string) bool {
		return allowed[Extension(p)]
	}
}

func match(pattern string, p string) bool {
	m, err := doublestar.Match(pattern, p)
	return err == nil && m
}

func Extension(p string) string {
	name := path.Base(p)

	i := strings.LastIndex(name, ".")
	if i < 0 {
		return "." + name
	}
	return name[i:]
}

// And accepts paths accepted by all filters.
func And(fs ...PathFilter) PathFilter {
	return func(p string) bool {
		for _, f := range fs {
			if !f(p) {
				return false
			}
		}
		return true
	}
}

func Apply(paths []string, f PathFilter) []string {
	return lo.Filter(paths, func(p string, _ int) bool { return f(p) })
}
