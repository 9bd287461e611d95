package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCacheServesSecondRequestFromMemory(t *testing.T) {
	gin.SetMode(gin.TestMode)
	PurgeCache()

	hits := 0
	r := gin.New()
	r.GET("/cached", Cache(CacheConfig{Expiration: time.Minute}), func(c *gin.Context) {
		hits++
		c.String(http.StatusOK, "hits="+strconv.Itoa(hits))
	})

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/cached", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "hits=1", w.Body.String())
	}
	assert.Equal(t, 1, hits)
}

func TestCacheSkipsNonGET(t *testing.T) {
	gin.SetMode(gin.TestMode)
	PurgeCache()

	hits := 0
	r := gin.New()
	r.POST("/write", Cache(CacheConfig{Expiration: time.Minute}), func(c *gin.Context) {
		hits++
		c.String(http.StatusOK, "ok")
	})

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/write", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
	assert.Equal(t, 2, hits)
}

func TestCacheByParamsSeparatesOperators(t *testing.T) {
	gin.SetMode(gin.TestMode)
	PurgeCache()

	adminID := uint(1)
	hits := 0
	r := gin.New()
	r.GET("/report",
		func(c *gin.Context) { c.Set("adminID", adminID) },
		CacheByParams(time.Minute, "range"),
		func(c *gin.Context) {
			hits++
			c.String(http.StatusOK, "ok")
		})

	// 同一操作者同样参数命中缓存
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/report?range=7d", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/report?range=7d", nil))
	assert.Equal(t, 1, hits)

	// 参数不同不命中
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/report?range=30d", nil))
	assert.Equal(t, 2, hits)

	// 操作者不同不命中
	adminID = 2
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/report?range=7d", nil))
	assert.Equal(t, 3, hits)
}
