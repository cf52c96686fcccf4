// Package imageref resolves raw image references coming back from the API
// into an ordered fallback chain of URLs. References arrive in every shape
// imaginable: absolute URLs, protocol-relative URLs, root-relative paths,
// bare upload filenames, or nothing at all. The chain always ends in an
// inline placeholder that cannot fail to render.
package imageref

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const placeholderSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="600" height="400"><rect width="100%" height="100%" fill="#f6f6f6"/><text x="50%" y="50%" dominant-baseline="middle" text-anchor="middle" fill="#cfcfcf" font-size="20">Sin imagen</text></svg>`

// Placeholder is an inline "no image" graphic. It is data, not a network
// resource, so it is always renderable and terminates every candidate chain.
var Placeholder = "data:image/svg+xml;utf8," + url.PathEscape(placeholderSVG)

var absoluteRe = regexp.MustCompile(`(?i)^https?://`)

// Candidates builds the ordered URL fallback chain for a raw reference.
// apiBase is the gateway base URL ("" when unset); scheme is the current
// protocol ("https:") used to complete protocol-relative references.
// The returned list is de-duplicated preserving order and is never empty:
// its last element is always Placeholder.
func Candidates(raw, apiBase, scheme string) []string {
	base := strings.TrimRight(apiBase, "/")
	s := strings.TrimSpace(raw)
	if s == "" {
		return []string{Placeholder}
	}

	if absoluteRe.MatchString(s) {
		return dedupe([]string{s, Placeholder})
	}
	if strings.HasPrefix(s, "//") {
		return dedupe([]string{scheme + s, Placeholder})
	}

	var candidates []string
	if strings.HasPrefix(s, "/") {
		if base != "" {
			candidates = append(candidates, base+s)
		}
		candidates = append(candidates, s, Placeholder)
		return dedupe(candidates)
	}

	// Bare filename: assume it lives in the upload area.
	if base != "" {
		candidates = append(candidates, base+"/static/uploads/"+s)
	}
	candidates = append(candidates,
		"/static/uploads/"+s,
		"/"+s,
		s,
		Placeholder,
	)
	return dedupe(candidates)
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := in[:0]
	for _, c := range in {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// Resolver memoizes candidate chains per raw reference so a list rendered
// over and over does not recompute them on every frame.
type Resolver struct {
	apiBase string
	scheme  string
	cache   *gocache.Cache
}

// NewResolver creates a Resolver bound to an API base and current scheme.
func NewResolver(apiBase, scheme string) *Resolver {
	return &Resolver{
		apiBase: apiBase,
		scheme:  scheme,
		cache:   gocache.New(30*time.Minute, 10*time.Minute),
	}
}

// Candidates returns the memoized chain for raw.
func (r *Resolver) Candidates(raw string) []string {
	key := fmt.Sprintf("%s|%s|%s", raw, r.apiBase, r.scheme)
	if v, ok := r.cache.Get(key); ok {
		return v.([]string)
	}
	c := Candidates(raw, r.apiBase, r.scheme)
	r.cache.Set(key, c, gocache.DefaultExpiration)
	return c
}

// Image walks a candidate chain. The cursor advances on load failure and
// parks on the placeholder, which never fails.
type Image struct {
	raw        string
	candidates []string
	idx        int
}

// NewImage starts a cursor over the chain for raw.
func (r *Resolver) NewImage(raw string) *Image {
	return &Image{raw: raw, candidates: r.Candidates(raw)}
}

// Raw returns the reference the chain was built from.
func (im *Image) Raw() string {
	return im.raw
}

// Current is the URL that should be rendered right now.
func (im *Image) Current() string {
	return im.candidates[im.idx]
}

// Fail records a load failure for the current candidate and advances to the
// next one if any remains. Reports whether a new candidate is available.
func (im *Image) Fail() bool {
	if im.idx+1 < len(im.candidates) {
		im.idx++
		return true
	}
	return false
}

// Exhausted reports that the cursor sits on the terminal placeholder.
func (im *Image) Exhausted() bool {
	return im.idx == len(im.candidates)-1
}

// Reset rebinds the cursor when the raw reference itself changes. A reset
// with the same reference keeps the current position.
func (im *Image) Reset(r *Resolver, raw string) {
	if raw == im.raw {
		return
	}
	im.raw = raw
	im.candidates = r.Candidates(raw)
	im.idx = 0
}
