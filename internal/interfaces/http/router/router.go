package router

import (
	"github.com/gin-gonic/gin"
)

// RouteRegistrar registers a set of routes on a gin router group.
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router collects route registrars and mounts them under a versioned
// API prefix.
type Router struct {
	engine     *gin.Engine
	apiVersion string
	middleware []gin.HandlerFunc
	registrars []RouteRegistrar
}

// RouterOption configures a Router.
type RouterOption func(*Router)

// WithAPIVersion overrides the API version prefix (default "v1").
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// NewRouter creates a Router bound to the given engine.
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{
		engine:     engine,
		apiVersion: "v1",
		registrars: make([]RouteRegistrar, 0),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Use attaches middleware to the versioned API group.
func (r *Router) Use(middleware ...gin.HandlerFunc) *Router {
	r.middleware = append(r.middleware, middleware...)
	return r
}

// Register queues a registrar for mounting.
func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrar)
	return r
}

// Setup mounts all registered route groups on the engine.
func (r *Router) Setup() {
	api := r.engine.Group("/api/" + r.apiVersion)
	if len(r.middleware) > 0 {
		api.Use(r.middleware...)
	}
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}
}

// Group is a named route group with its own prefix and middleware.
type Group struct {
	name       string
	prefix     string
	middleware []gin.HandlerFunc
	routes     []route
}

type route struct {
	method   string
	path     string
	handlers []gin.HandlerFunc
}

// NewGroup creates a route group mounted at prefix.
func NewGroup(name, prefix string) *Group {
	return &Group{
		name:   name,
		prefix: prefix,
	}
}

// Use attaches middleware to the group.
func (g *Group) Use(middleware ...gin.HandlerFunc) *Group {
	g.middleware = append(g.middleware, middleware...)
	return g
}

// GET registers a GET route.
func (g *Group) GET(path string, handlers ...gin.HandlerFunc) *Group {
	return g.handle("GET", path, handlers)
}

// POST registers a POST route.
func (g *Group) POST(path string, handlers ...gin.HandlerFunc) *Group {
	return g.handle("POST", path, handlers)
}

// PUT registers a PUT route.
func (g *Group) PUT(path string, handlers ...gin.HandlerFunc) *Group {
	return g.handle("PUT", path, handlers)
}

// PATCH registers a PATCH route.
func (g *Group) PATCH(path string, handlers ...gin.HandlerFunc) *Group {
	return g.handle("PATCH", path, handlers)
}

// DELETE registers a DELETE route.
func (g *Group) DELETE(path string, handlers ...gin.HandlerFunc) *Group {
	return g.handle("DELETE", path, handlers)
}

func (g *Group) handle(method, path string, handlers []gin.HandlerFunc) *Group {
	g.routes = append(g.routes, route{method: method, path: path, handlers: handlers})
	return g
}

// RegisterRoutes implements RouteRegistrar.
func (g *Group) RegisterRoutes(rg *gin.RouterGroup) {
	grp := rg.Group(g.prefix)
	if len(g.middleware) > 0 {
		grp.Use(g.middleware...)
	}
	for _, rt := range g.routes {
		switch rt.method {
		case "GET":
			grp.GET(rt.path, rt.handlers...)
		case "POST":
			grp.POST(rt.path, rt.handlers...)
		case "PUT":
			grp.PUT(rt.path, rt.handlers...)
		case "PATCH":
			grp.PATCH(rt.path, rt.handlers...)
		case "DELETE":
			grp.DELETE(rt.path, rt.handlers...)
		}
	}
}

// Name returns the group name.
func (g *Group) Name() string {
	return g.name
}

// Prefix returns the group prefix.
func (g *Group) Prefix() string {
	return g.prefix
}
