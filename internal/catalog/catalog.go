// Package catalog turns the command line argument list into the ordered
// candidate list of a triage session.
package catalog

import (
	"image"
	"os"
	"path/filepath"
	"strings"

	// Registered decoders. DecodeConfig recognises exactly these formats.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"fotosort/internal/errors"
	"fotosort/internal/log"

	"github.com/gobwas/glob"
)

// Candidate is one loadable image.
type Candidate struct {
	Path   string
	Format string
	Width  int
	Height int
	Size   int64
}

// Result is the outcome of Load. Candidates keeps argument order and
// duplicates; Dropped lists what was filtered out.
type Result struct {
	Candidates []Candidate
	Dropped    []string
}

// Paths returns the candidate paths in order.
func (r *Result) Paths() []string {
	paths := make([]string, len(r.Candidates))
	for i, c := range r.Candidates {
		paths[i] = c.Path
	}
	return paths
}

// Filter selects candidates by base name. An empty include list admits
// every name; exclude is applied after include.
type Filter struct {
	include []glob.Glob
	exclude []glob.Glob
}

// NewFilter compiles include and exclude globs. Matching is case-insensitive.
func NewFilter(include, exclude []string) (*Filter, error) {
	f := &Filter{}
	var err error
	if f.include, err = compileAll(include); err != nil {
		return nil, err
	}
	if f.exclude, err = compileAll(exclude); err != nil {
		return nil, err
	}
	return f, nil
}

func compileAll(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(strings.ToLower(p))
		if err != nil {
			return nil, errors.NewConfigError("invalid filter pattern", p, errors.InvalidConfig, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

// Match reports whether path passes the filter.
func (f *Filter) Match(path string) bool {
	if f == nil {
		return true
	}
	name := strings.ToLower(filepath.Base(path))
	if len(f.include) > 0 && !matchAny(f.include, name) {
		return false
	}
	return !matchAny(f.exclude, name)
}

func matchAny(globs []glob.Glob, name string) bool {
	for _, g := range globs {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// Load probes every path and keeps those that exist, pass the filter and
// decode as an image. Rejections are silent apart from debug logging. It
// returns errors.ErrNoImages when nothing survives.
func Load(paths []string, filter *Filter) (*Result, error) {
	res := &Result{}
	for _, path := range paths {
		cand, reason := probe(path, filter)
		if reason != "" {
			log.Debugf("Dropping %s: %s", path, reason)
			res.Dropped = append(res.Dropped, path)
			continue
		}
		res.Candidates = append(res.Candidates, cand)
	}

	if len(res.Candidates) == 0 {
		return res, errors.ErrNoImages
	}
	log.Debugf("Loaded %d of %d paths", len(res.Candidates), len(paths))
	return res, nil
}

func probe(path string, filter *Filter) (Candidate, string) {
	if !filter.Match(path) {
		return Candidate{}, "filtered"
	}

	info, err := os.Stat(path)
	if err != nil {
		return Candidate{}, err.Error()
	}
	if !info.Mode().IsRegular() {
		return Candidate{}, "not a regular file"
	}

	f, err := os.Open(path)
	if err != nil {
		return Candidate{}, err.Error()
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return Candidate{}, "not an image: " + err.Error()
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return Candidate{}, "empty image"
	}

	return Candidate{
		Path:   path,
		Format: format,
		Width:  cfg.Width,
		Height: cfg.Height,
		Size:   info.Size(),
	}, ""
}
