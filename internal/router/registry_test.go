package router

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func itoa(id int64) string { return strconv.FormatInt(id, 10) }

type pingModule struct{ path string }

func (m pingModule) Register(rg *gin.RouterGroup) {
	rg.GET(m.path, func(c *gin.Context) { c.String(http.StatusOK, c.GetString("mw")) })
}

func TestRegistryAppliesMiddlewareAndModules(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	reg := NewRegistry(engine)
	reg.Use(func(c *gin.Context) { c.Set("mw", "yes"); c.Next() })
	reg.Add(pingModule{path: "/a/"})
	reg.Add(pingModule{path: "/b/"})
	reg.NoRoute(func(c *gin.Context) { c.String(http.StatusNotFound, "nope") })
	reg.RegisterAll()

	for _, p := range []string{"/a/", "/b/"} {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, p, nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "yes", w.Body.String())
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/c/", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "nope", w.Body.String())
}

func TestRegistryMiddlewareRunsOnNoRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	reg := NewRegistry(engine)
	reg.Use(func(c *gin.Context) { c.Header("X-Seen", "1"); c.Next() })
	reg.NoRoute(func(c *gin.Context) { c.String(http.StatusNotFound, "nope") })
	reg.RegisterAll()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing/", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-Seen"))
}
