// Package router wraps chi with named routes and nestable groups.
package router

import (
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
)

type Middleware func(http.Handler) http.Handler

// Router registers handlers on a chi mux and remembers each route's
// path under its name, so handlers can build URLs without hardcoding
// paths.
type Router struct {
	mux chi.Router

	mu    sync.RWMutex
	names map[string]string
}

func New() *Router {
	return &Router{
		mux:   chi.NewRouter(),
		names: make(map[string]string),
	}
}

func (r *Router) Handler() http.Handler { return r.mux }

// Use appends middleware applied to every route registered afterwards.
func (r *Router) Use(mws ...Middleware) {
	for _, mw := range mws {
		r.mux.Use(mw)
	}
}

// Group scopes subsequent registrations under a path prefix and a
// middleware stack.
func (r *Router) Group(prefix string, mws ...Middleware) *Group {
	return &Group{root: r, prefix: cleanPath(prefix), stack: append([]Middleware(nil), mws...)}
}

func (r *Router) Get(path, name string, h http.HandlerFunc, mws ...Middleware) {
	r.register(http.MethodGet, cleanPath(path), name, h, mws)
}

func (r *Router) Post(path, name string, h http.HandlerFunc, mws ...Middleware) {
	r.register(http.MethodPost, cleanPath(path), name, h, mws)
}

func (r *Router) Put(path, name string, h http.HandlerFunc, mws ...Middleware) {
	r.register(http.MethodPut, cleanPath(path), name, h, mws)
}

func (r *Router) Delete(path, name string, h http.HandlerFunc, mws ...Middleware) {
	r.register(http.MethodDelete, cleanPath(path), name, h, mws)
}

// Path looks up the registered path for a route name.
func (r *Router) Path(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.names[name]
	return p, ok
}

// URL resolves a named route, substituting {param} placeholders from
// params. It fails if the route is unknown or a placeholder is left
// unfilled.
func (r *Router) URL(name string, params map[string]string) (string, error) {
	p, ok := r.Path(name)
	if !ok {
		return "", fmt.Errorf("route %q not found", name)
	}
	for k, v := range params {
		p = strings.ReplaceAll(p, "{"+k+"}", v)
	}
	if strings.Contains(p, "{") {
		return "", fmt.Errorf("missing parameters for route %q", name)
	}
	return p, nil
}

func (r *Router) register(method, path, name string, h http.HandlerFunc, mws []Middleware) {
	var wrapped http.Handler = h
	for i := len(mws) - 1; i >= 0; i-- {
		wrapped = mws[i](wrapped)
	}
	r.mux.Method(method, path, wrapped)

	if name != "" {
		r.mu.Lock()
		r.names[name] = path
		r.mu.Unlock()
	}
}

// Group is a prefix plus middleware stack. Groups nest; a child carries
// its parent's prefix and middleware.
type Group struct {
	root   *Router
	prefix string
	stack  []Middleware
}

func (g *Group) Group(prefix string, mws ...Middleware) *Group {
	return &Group{
		root:   g.root,
		prefix: cleanPath(g.prefix + "/" + prefix),
		stack:  append(append([]Middleware(nil), g.stack...), mws...),
	}
}

func (g *Group) Get(path, name string, h http.HandlerFunc, mws ...Middleware) {
	g.register(http.MethodGet, path, name, h, mws)
}

func (g *Group) Post(path, name string, h http.HandlerFunc, mws ...Middleware) {
	g.register(http.MethodPost, path, name, h, mws)
}

func (g *Group) Put(path, name string, h http.HandlerFunc, mws ...Middleware) {
	g.register(http.MethodPut, path, name, h, mws)
}

func (g *Group) Delete(path, name string, h http.HandlerFunc, mws ...Middleware) {
	g.register(http.MethodDelete, path, name, h, mws)
}

func (g *Group) register(method, path, name string, h http.HandlerFunc, mws []Middleware) {
	full := cleanPath(g.prefix + "/" + path)
	combined := append(append([]Middleware(nil), g.stack...), mws...)
	g.root.register(method, full, name, h, combined)
}

// cleanPath collapses slashes and guarantees a single leading "/".
func cleanPath(p string) string {
	parts := strings.FieldsFunc(p, func(r rune) bool { return r == '/' })
	if len(parts) == 0 {
		return "/"
	}
	return "/" + strings.Join(parts, "/")
}
