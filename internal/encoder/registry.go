package encoder

import (
	"fmt"
	"path/filepath"
	"strings"
)

// priority is the order formats are listed and chosen as fallback.
var priority = []string{"png", "jpeg"}

// Registry holds the preview encoders by format name.
type Registry struct {
	encoders map[string]Encoder
}

// NewRegistry creates a registry with every built-in encoder.
func NewRegistry() *Registry {
	r := &Registry{encoders: make(map[string]Encoder)}
	for _, enc := range []Encoder{&PNGEncoder{}, &JPEGEncoder{}} {
		r.encoders[enc.Format()] = enc
	}
	return r
}

// Get returns an encoder for the given format, or nil if unknown.
// "jpg" is accepted as an alias of "jpeg".
func (r *Registry) Get(format string) Encoder {
	format = strings.ToLower(format)
	if format == "jpg" {
		format = "jpeg"
	}
	return r.encoders[format]
}

// ForPath picks the encoder matching the extension of path.
func (r *Registry) ForPath(path string) (Encoder, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if enc := r.Get(ext); enc != nil {
		return enc, nil
	}
	return nil, fmt.Errorf("unsupported output format %q (want %s)", ext, strings.Join(r.Available(), ", "))
}

// Available returns all format names in priority order.
func (r *Registry) Available() []string {
	var result []string
	for _, f := range priority {
		if _, ok := r.encoders[f]; ok {
			result = append(result, f)
		}
	}
	return result
}

// ResolveFormats filters requested formats to known ones, dropping
// duplicates, and falls back to PNG when nothing usable was requested.
func (r *Registry) ResolveFormats(requested []string) []string {
	var resolved []string
	seen := map[string]bool{}
	for _, f := range requested {
		enc := r.Get(f)
		if enc == nil || seen[enc.Format()] {
			continue
		}
		seen[enc.Format()] = true
		resolved = append(resolved, enc.Format())
	}
	if len(resolved) == 0 {
		resolved = append(resolved, "png")
	}
	return resolved
}

// String returns a summary of available encoders.
func (r *Registry) String() string {
	return fmt.Sprintf("preview encoders: %s", strings.Join(r.Available(), ", "))
}
