// Package assets provides the static files of the homepage: feature icons
// and the favicon. Icons are referenced by path ("img/easy-to-use.svg") and
// inlined into the page when they are SVG.
package assets

import (
	"embed"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
)

// FaviconPath is the favicon location relative to the static root.
const FaviconPath = "img/favicon.svg"

//go:embed static
var embedded embed.FS

// Embedded returns the static files compiled into the binary.
func Embedded() fs.FS {
	fsys, err := fs.Sub(embedded, "static")
	if err != nil {
		panic(err)
	}
	return fsys
}

// Open returns contentDir/static when it exists, otherwise the embedded files.
func Open(contentDir string) fs.FS {
	if contentDir != "" {
		dir := filepath.Join(contentDir, "static")
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return os.DirFS(dir)
		}
	}
	return Embedded()
}

// Handler serves the static files.
func Handler(fsys fs.FS) http.Handler {
	return http.FileServerFS(fsys)
}

// URL returns the absolute URL path of an asset reference.
func URL(ref string) string {
	return "/" + strings.TrimPrefix(path.Clean("/"+ref), "/")
}

// Resolver turns icon references into markup. Inline SVG is cached per
// reference; a Resolver is safe for concurrent use.
type Resolver struct {
	fsys  fs.FS
	class string
	cache sync.Map
}

// NewResolver creates a resolver over fsys. class is added to inlined <svg>
// elements.
func NewResolver(fsys fs.FS, class string) *Resolver {
	return &Resolver{fsys: fsys, class: class}
}

type inlined struct {
	markup string
	ok     bool
}

// InlineSVG returns the SVG markup of ref with its XML prolog removed and
// class and role attributes added. It reports false when ref is not an SVG
// file of the resolver's filesystem.
func (r *Resolver) InlineSVG(ref string) (string, bool) {
	if v, ok := r.cache.Load(ref); ok {
		entry := v.(inlined)
		return entry.markup, entry.ok
	}

	entry := r.load(ref)
	r.cache.Store(ref, entry)
	return entry.markup, entry.ok
}

// URL returns the URL path of ref.
func (r *Resolver) URL(ref string) string {
	return URL(ref)
}

func (r *Resolver) load(ref string) inlined {
	name := strings.TrimPrefix(path.Clean("/"+ref), "/")
	if r.fsys == nil || path.Ext(name) != ".svg" || !fs.ValidPath(name) {
		return inlined{}
	}
	data, err := fs.ReadFile(r.fsys, name)
	if err != nil {
		return inlined{}
	}

	svg := string(data)
	start := strings.Index(svg, "<svg")
	if start < 0 {
		return inlined{}
	}
	svg = strings.TrimSpace(svg[start:])

	attrs := ` role="img"`
	if r.class != "" {
		attrs = ` class="` + r.class + `"` + attrs
	}
	return inlined{markup: "<svg" + attrs + svg[len("<svg"):], ok: true}
}
