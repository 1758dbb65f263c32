package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()

	ranking := NewDomainGroup("ranking", "").
		GET("/marketplace", func(c *gin.Context) { c.String(http.StatusOK, "market") })
	system := NewDomainGroup("system", "/system").
		GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	NewRouter(engine).Register(ranking).Register(system).Setup()

	w := serve(engine, http.MethodGet, "/marketplace")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "market", w.Body.String())

	w = serve(engine, http.MethodGet, "/system/ping")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())

	assert.Equal(t, http.StatusNotFound, serve(engine, http.MethodGet, "/ping").Code)
}

func TestRouter_SetupWithoutRegistrars(t *testing.T) {
	engine := gin.New()
	NewRouter(engine).Setup()

	assert.Empty(t, engine.Routes())
}

func TestDomainGroup_Methods(t *testing.T) {
	engine := gin.New()
	ok := func(c *gin.Context) { c.Status(http.StatusOK) }

	NewDomainGroup("ranking-legacy", "/api").
		GET("/coupang", ok).
		OPTIONS("/coupang", ok).
		Handle(http.MethodHead, "/coupang", ok).
		RegisterRoutes(&engine.RouterGroup)

	for _, method := range []string{http.MethodGet, http.MethodOptions, http.MethodHead} {
		assert.Equal(t, http.StatusOK, serve(engine, method, "/api/coupang").Code, method)
	}
	assert.Equal(t, http.StatusNotFound, serve(engine, http.MethodPost, "/api/coupang").Code)
}
