package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/shoprank/backend/internal/domain/integration"
	"github.com/shoprank/backend/internal/domain/listing"
	"github.com/shoprank/backend/internal/infrastructure/ecommerce"
	"github.com/shoprank/backend/internal/interfaces/http/dto"
	"github.com/shoprank/backend/internal/interfaces/http/middleware"
	"github.com/shoprank/backend/internal/interfaces/http/router"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

var testNow = time.Date(2026, 5, 4, 3, 2, 1, 0, time.UTC)

func fixedClock() time.Time { return testNow }

type fakeSource struct {
	mu       sync.Mutex
	platform integration.PlatformCode
	batch    *listing.Batch
	err      error
	queries  []integration.RankingQuery
}

func (f *fakeSource) PlatformCode() integration.PlatformCode { return f.platform }

func (f *fakeSource) FetchRanking(_ context.Context, q integration.RankingQuery) (*listing.Batch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, q)
	return f.batch, f.err
}

func (f *fakeSource) lastQuery(t *testing.T) integration.RankingQuery {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.queries, "source was not called")
	return f.queries[len(f.queries)-1]
}

type servedRecord struct {
	platform, category string
	count              int
}

type fakeServedRecorder struct {
	mu      sync.Mutex
	records []servedRecord
}

func (r *fakeServedRecorder) RecordListingsServed(_ context.Context, platform, category string, count int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, servedRecord{platform, category, count})
}

func newRankingEngine(h *RankingHandler) *gin.Engine {
	engine := gin.New()
	r := router.NewRouter(engine)
	for _, registrar := range h.Routes() {
		r.Register(registrar)
	}
	r.Setup()
	return engine
}

func get(engine *gin.Engine, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func ptr[T any](v T) *T { return &v }

func sampleListings() []listing.Listing {
	return []listing.Listing{
		{Rank: 1, Title: "무선 이어폰", Price: "39,900원", MallName: "쿠팡", Category: "디지털", ProductID: "p1", Discount: ptr("10%"), Rating: ptr(4.5), ReviewCount: ptr(120)},
		{Rank: 2, Title: "보조배터리", Price: "19,800원", MallName: "쿠팡", Category: "디지털", ProductID: "p2", ReviewCount: ptr(0)},
	}
}

func TestRankingHandler_Marketplace(t *testing.T) {
	source := &fakeSource{
		platform: integration.PlatformCodeCoupang,
		batch:    listing.NewOKBatch(sampleListings(), 2),
	}
	recorder := &fakeServedRecorder{}
	h := NewRankingHandler(source, &fakeSource{platform: integration.PlatformCodeNaver}, recorder, WithClock(fixedClock))
	engine := newRankingEngine(h)

	w := get(engine, "/marketplace?category=digital&limit=20")
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.MarketplaceResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, "digital", resp.Category)
	assert.Equal(t, "2026-05-04T03:02:01.000Z", resp.Timestamp)
	assert.Empty(t, resp.Note)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "10%", *resp.Items[0].Discount)

	q := source.lastQuery(t)
	assert.Equal(t, integration.CategoryDigital, q.Category)
	assert.Equal(t, 20, q.Limit)

	require.Len(t, recorder.records, 1)
	assert.Equal(t, servedRecord{"COUPANG", "digital", 2}, recorder.records[0])
}

func TestRankingHandler_MarketplaceDefaults(t *testing.T) {
	source := &fakeSource{
		platform: integration.PlatformCodeCoupang,
		batch:    listing.NewOKBatch(nil, 0),
	}
	recorder := &fakeServedRecorder{}
	engine := newRankingEngine(NewRankingHandler(source, &fakeSource{}, recorder))

	w := get(engine, "/marketplace")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"category":"all"`)
	assert.Contains(t, w.Body.String(), `"items":[]`)

	q := source.lastQuery(t)
	assert.Equal(t, integration.CategoryAll, q.Category)
	assert.Equal(t, 0, q.Limit, "adapter applies its own default")
}

func TestRankingHandler_MarketplaceUnknownCategory(t *testing.T) {
	source := &fakeSource{
		platform: integration.PlatformCodeCoupang,
		batch:    listing.NewOKBatch(sampleListings(), 2),
	}
	recorder := &fakeServedRecorder{}
	engine := newRankingEngine(NewRankingHandler(source, &fakeSource{}, recorder))

	w := get(engine, "/marketplace?category=gardening")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"category":"gardening"`)

	require.Len(t, recorder.records, 1)
	assert.Equal(t, "other", recorder.records[0].category)
}

func TestRankingHandler_MarketplaceConfigError(t *testing.T) {
	source := &fakeSource{
		platform: integration.PlatformCodeCoupang,
		batch:    listing.NewConfigErrorBatch(ecommerce.CoupangConfigErrorMessage),
	}
	engine := newRankingEngine(NewRankingHandler(source, &fakeSource{}, nil))

	w := get(engine, "/marketplace")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"API 키가 설정되지 않았습니다.","message":"`+ecommerce.CoupangConfigErrorMessage+`"}`, w.Body.String())
}

func TestRankingHandler_MarketplaceUpstreamFallback(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer upstream.Close()

	adapter := ecommerce.NewCoupangAdapter(func() *ecommerce.CoupangConfig {
		cfg := ecommerce.NewCoupangConfig("access", "secret")
		cfg.APIBaseURL = upstream.URL
		return cfg
	}, ecommerce.WithLogger(zaptest.NewLogger(t)))

	engine := newRankingEngine(NewRankingHandler(adapter, &fakeSource{}, nil, WithClock(fixedClock)))

	for _, path := range []string{"/marketplace?category=beauty", "/api/coupang?category=beauty"} {
		w := get(engine, path)
		require.Equal(t, http.StatusOK, w.Code, path)

		var resp dto.MarketplaceResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, 2, resp.Total)
		assert.Len(t, resp.Items, 2)
		assert.Equal(t, ecommerce.CoupangFallbackNote, resp.Note)
		assert.Equal(t, "beauty", resp.Category)
	}
}

func TestRankingHandler_MarketplaceUnexpectedError(t *testing.T) {
	source := &fakeSource{
		platform: integration.PlatformCodeCoupang,
		err:      &integration.UpstreamError{Platform: integration.PlatformCodeCoupang, StatusCode: 502, Err: integration.ErrPlatformRequestFailed},
	}
	engine := newRankingEngine(NewRankingHandler(source, &fakeSource{}, nil))

	w := get(engine, "/marketplace")
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "쿠팡 API 호출 실패", resp.Error)
	assert.Equal(t, "쿠팡 API 오류: 502", resp.Message)
}

func TestRankingHandler_Search(t *testing.T) {
	batch := listing.NewOKBatch([]listing.Listing{{Rank: 11, Title: "운동화", Price: "59,000원", MallName: "무신사"}}, 4321)
	batch.Start = 11
	batch.Display = 1
	batch.Query = "스포츠"
	source := &fakeSource{platform: integration.PlatformCodeNaver, batch: batch}
	recorder := &fakeServedRecorder{}
	engine := newRankingEngine(NewRankingHandler(&fakeSource{}, source, recorder, WithClock(fixedClock)))

	w := get(engine, "/search?query=%EC%9A%B4%EB%8F%99%ED%99%94&category=sports&start=11&display=1&sort=date")
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.SearchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 4321, resp.Total)
	assert.Equal(t, 11, resp.Start)
	assert.Equal(t, 1, resp.Display)
	assert.Equal(t, "스포츠", resp.Query)
	require.Len(t, resp.Items, 1)
	assert.Nil(t, resp.Items[0].Discount)
	assert.Nil(t, resp.Items[0].Rating)
	assert.Nil(t, resp.Items[0].ReviewCount)
	assert.Contains(t, w.Body.String(), `"discount":null`)

	q := source.lastQuery(t)
	assert.Equal(t, "운동화", q.Text)
	assert.Equal(t, integration.CategorySports, q.Category)
	assert.Equal(t, 11, q.Start)
	assert.Equal(t, 1, q.Display)
	assert.Equal(t, "date", q.Sort)

	require.Len(t, recorder.records, 1)
	assert.Equal(t, servedRecord{"NAVER", "sports", 1}, recorder.records[0])
}

func TestRankingHandler_SearchUpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer upstream.Close()

	adapter := ecommerce.NewNaverAdapter(func() *ecommerce.NaverConfig {
		cfg := ecommerce.NewNaverConfig("id", "secret")
		cfg.APIBaseURL = upstream.URL
		return cfg
	}, ecommerce.WithLogger(zaptest.NewLogger(t)))

	engine := newRankingEngine(NewRankingHandler(&fakeSource{}, adapter, nil, WithClock(fixedClock)))

	for _, path := range []string{"/search", "/api/naver"} {
		w := get(engine, path)
		require.Equal(t, http.StatusInternalServerError, w.Code, path)

		var resp dto.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "네이버 API 호출 실패", resp.Error)
		assert.Equal(t, "네이버 API 오류: 500", resp.Message)
		assert.Equal(t, "2026-05-04T03:02:01.000Z", resp.Timestamp)
	}
}

func TestRankingHandler_SearchConfigError(t *testing.T) {
	adapter := ecommerce.NewNaverAdapter(func() *ecommerce.NaverConfig {
		return ecommerce.NewNaverConfig("", "")
	}, ecommerce.WithLogger(zaptest.NewLogger(t)))

	engine := newRankingEngine(NewRankingHandler(&fakeSource{}, adapter, nil))

	w := get(engine, "/search?query=test")
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, dto.ErrorMissingCredentials, resp.Error)
	assert.Equal(t, ecommerce.NaverConfigErrorMessage, resp.Message)
}

func TestRankingHandler_Validation(t *testing.T) {
	marketplace := &fakeSource{platform: integration.PlatformCodeCoupang, batch: listing.NewOKBatch(nil, 0)}
	search := &fakeSource{platform: integration.PlatformCodeNaver, batch: listing.NewOKBatch(nil, 0)}
	engine := newRankingEngine(NewRankingHandler(marketplace, search, nil))

	tests := []struct {
		name   string
		target string
		want   int
	}{
		{name: "limit upper bound", target: "/marketplace?limit=100", want: http.StatusOK},
		{name: "limit too large", target: "/marketplace?limit=101", want: http.StatusBadRequest},
		{name: "limit negative", target: "/marketplace?limit=-1", want: http.StatusBadRequest},
		{name: "limit not numeric", target: "/marketplace?limit=many", want: http.StatusBadRequest},
		{name: "display too large", target: "/search?display=500", want: http.StatusBadRequest},
		{name: "start upper bound", target: "/search?start=1000", want: http.StatusOK},
		{name: "start too large", target: "/search?start=1001", want: http.StatusBadRequest},
		{name: "sort unknown", target: "/search?sort=popular", want: http.StatusBadRequest},
		{name: "sort asc", target: "/search?sort=asc", want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(engine, tt.target)
			require.Equal(t, tt.want, w.Code, w.Body.String())
			if tt.want == http.StatusBadRequest {
				var resp dto.ErrorResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.NotEmpty(t, resp.Error)
				assert.NotEmpty(t, resp.Message)
				assert.NotEmpty(t, resp.Timestamp)
			}
		})
	}
}

func TestRankingHandler_Options(t *testing.T) {
	engine := newRankingEngine(NewRankingHandler(&fakeSource{}, &fakeSource{}, nil))

	for _, path := range []string{"/marketplace", "/search", "/api/coupang", "/api/naver"} {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.Empty(t, w.Body.String(), path)
	}
}
