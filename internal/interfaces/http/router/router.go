package router

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

// Route is one entry in a route table
type Route struct {
	Method   string
	Path     string
	Handlers []gin.HandlerFunc
}

// R builds a Route
func R(method, path string, handlers ...gin.HandlerFunc) Route {
	return Route{Method: method, Path: path, Handlers: handlers}
}

// Table collects routes and rejects duplicates before anything reaches gin
type Table struct {
	seen   map[string]string
	routes []registered
}

type registered struct {
	group gin.IRoutes
	route Route
}

func NewTable() *Table {
	return &Table{seen: make(map[string]string)}
}

// Add queues routes under group. basePath is the group's prefix and is used
// only for duplicate detection and error messages.
func (t *Table) Add(group gin.IRoutes, basePath string, routes ...Route) error {
	for _, rt := range routes {
		full := joinPath(basePath, rt.Path)
		sig := rt.Method + " " + normalize(full)
		if prev, ok := t.seen[sig]; ok {
			return fmt.Errorf("duplicate route %s %s (already registered as %s)", rt.Method, full, prev)
		}
		if len(rt.Handlers) == 0 {
			return fmt.Errorf("route %s %s has no handlers", rt.Method, full)
		}
		t.seen[sig] = full
		t.routes = append(t.routes, registered{group: group, route: rt})
	}
	return nil
}

// Mount registers every queued route with gin
func (t *Table) Mount() {
	for _, r := range t.routes {
		r.group.Handle(r.route.Method, r.route.Path, r.route.Handlers...)
	}
}

// Len returns the number of queued routes
func (t *Table) Len() int {
	return len(t.routes)
}

// normalize replaces parameter names so /jobs/:id and /jobs/:jobId compare equal
func normalize(path string) string {
	segments := strings.Split(path, "/")
	for i, s := range segments {
		switch {
		case strings.HasPrefix(s, ":"):
			segments[i] = ":"
		case strings.HasPrefix(s, "*"):
			segments[i] = "*"
		}
	}
	return strings.TrimSuffix(strings.Join(segments, "/"), "/")
}

func joinPath(base, path string) string {
	if path == "" {
		return base
	}
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(path, "/")
}
