package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoprank/backend/internal/domain/integration"
	"github.com/shoprank/backend/internal/interfaces/http/dto"
	"github.com/shoprank/backend/internal/interfaces/http/router"
)

func newSystemEngine(h *SystemHandler) *gin.Engine {
	engine := gin.New()
	r := router.NewRouter(engine)
	for _, registrar := range h.Routes() {
		r.Register(registrar)
	}
	r.Setup()
	return engine
}

func TestSystemHandler_Health(t *testing.T) {
	tests := []struct {
		name       string
		platforms  PlatformStatus
		wantStatus string
		wantMap    map[string]bool
	}{
		{
			name:       "no status source",
			wantStatus: "healthy",
			wantMap:    map[string]bool{},
		},
		{
			name: "all configured",
			platforms: func() map[integration.PlatformCode]bool {
				return map[integration.PlatformCode]bool{
					integration.PlatformCodeCoupang: true,
					integration.PlatformCodeNaver:   true,
				}
			},
			wantStatus: "healthy",
			wantMap:    map[string]bool{"COUPANG": true, "NAVER": true},
		},
		{
			name: "missing credentials degrade",
			platforms: func() map[integration.PlatformCode]bool {
				return map[integration.PlatformCode]bool{
					integration.PlatformCodeCoupang: false,
					integration.PlatformCodeNaver:   true,
				}
			},
			wantStatus: "degraded",
			wantMap:    map[string]bool{"COUPANG": false, "NAVER": true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewSystemHandler("shoprank-backend", "1.2.3", tt.platforms, WithClock(fixedClock))
			w := get(newSystemEngine(h), "/health")

			require.Equal(t, http.StatusOK, w.Code)
			var resp dto.HealthResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantStatus, resp.Status)
			assert.Equal(t, tt.wantMap, resp.Platforms)
			assert.Equal(t, "shoprank-backend", resp.Service)
			assert.Equal(t, "1.2.3", resp.Version)
			assert.Equal(t, "0s", resp.Uptime)
		})
	}
}

func TestSystemHandler_GetSystemInfo(t *testing.T) {
	now := testNow
	h := NewSystemHandler("shoprank-backend", "1.0.0", nil, WithClock(func() time.Time { return now }))
	now = now.Add(90 * time.Minute)

	w := get(newSystemEngine(h), "/system/info")
	require.Equal(t, http.StatusOK, w.Code)

	var resp SystemInfoResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "shoprank-backend", resp.Name)
	assert.Equal(t, "1.0.0", resp.Version)
	assert.NotEmpty(t, resp.GoVersion)
	assert.Equal(t, "1h30m0s", resp.Uptime)
}

func TestSystemHandler_Ping(t *testing.T) {
	h := NewSystemHandler("shoprank-backend", "1.0.0", nil, WithClock(fixedClock))

	w := get(newSystemEngine(h), "/system/ping")
	require.Equal(t, http.StatusOK, w.Code)

	var resp PingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "pong", resp.Message)
	assert.Equal(t, "2026-05-04T03:02:01.000Z", resp.Timestamp)
}
