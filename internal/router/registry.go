package router

import "github.com/gin-gonic/gin"

// Registry collects the feature modules and mounts them on the engine root.
type Registry struct {
	Engine      *gin.Engine
	Root        *gin.RouterGroup
	middlewares []gin.HandlerFunc
	modules     []Module
	noRoute     gin.HandlerFunc
}

func NewRegistry(engine *gin.Engine) *Registry {
	return &Registry{Engine: engine, Root: &engine.RouterGroup}
}

// Use queues global middleware, applied in order before any module route.
func (r *Registry) Use(mw ...gin.HandlerFunc) {
	r.middlewares = append(r.middlewares, mw...)
}

func (r *Registry) Add(mod Module) {
	r.modules = append(r.modules, mod)
}

// NoRoute sets the handler for paths no module registered.
func (r *Registry) NoRoute(h gin.HandlerFunc) {
	r.noRoute = h
}

func (r *Registry) RegisterAll() {
	if len(r.middlewares) > 0 {
		// engine-level so unmatched paths pass through them too
		r.Engine.Use(r.middlewares...)
	}
	for _, m := range r.modules {
		m.Register(r.Root)
	}
	if r.noRoute != nil {
		r.Engine.NoRoute(r.noRoute)
	}
}
