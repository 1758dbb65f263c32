package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shoprank/backend/internal/domain/integration"
	"github.com/shoprank/backend/internal/domain/listing"
	"github.com/shoprank/backend/internal/infrastructure/logger"
	"github.com/shoprank/backend/internal/infrastructure/telemetry"
	"github.com/shoprank/backend/internal/interfaces/http/dto"
	"github.com/shoprank/backend/internal/interfaces/http/router"
)

// ListingsRecorder counts listings served to clients
type ListingsRecorder interface {
	RecordListingsServed(ctx context.Context, platform, category string, count int)
}

// MarketplaceQuery is the query string of the marketplace ranking endpoint.
// Category is free text; unknown values fall back to the all-products ranking.
type MarketplaceQuery struct {
	Category string `form:"category"`
	Limit    int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

// SearchQuery is the query string of the search-shopping endpoint
type SearchQuery struct {
	Query    string `form:"query"`
	Category string `form:"category"`
	Display  int    `form:"display" binding:"omitempty,min=1,max=100"`
	Start    int    `form:"start" binding:"omitempty,min=1,max=1000"`
	Sort     string `form:"sort" binding:"omitempty,oneof=sim date asc dsc"`
}

// RankingHandler serves normalized listings from the marketplace and search-shopping sources
type RankingHandler struct {
	BaseHandler
	marketplace integration.RankingSource
	search      integration.RankingSource
	recorder    ListingsRecorder
}

// NewRankingHandler creates a RankingHandler. recorder may be nil.
func NewRankingHandler(marketplace, search integration.RankingSource, recorder ListingsRecorder, opts ...HandlerOption) *RankingHandler {
	return &RankingHandler{
		BaseHandler: newBaseHandler(opts),
		marketplace: marketplace,
		search:      search,
		recorder:    recorder,
	}
}

// Routes returns the ranking routes: /marketplace and /search, plus the
// /api/coupang and /api/naver paths existing deployments call.
func (h *RankingHandler) Routes() []router.RouteRegistrar {
	root := router.NewDomainGroup("ranking", "")
	root.GET("/marketplace", h.GetMarketplace).OPTIONS("/marketplace", preflight)
	root.GET("/search", h.GetSearch).OPTIONS("/search", preflight)

	legacy := router.NewDomainGroup("ranking-legacy", "/api")
	legacy.GET("/coupang", h.GetMarketplace).OPTIONS("/coupang", preflight)
	legacy.GET("/naver", h.GetSearch).OPTIONS("/naver", preflight)

	return []router.RouteRegistrar{root, legacy}
}

// GetMarketplace returns the best-seller ranking of one category.
// Upstream failures are answered with the fallback sample set and a note; only
// missing credentials produce an error status.
func (h *RankingHandler) GetMarketplace(c *gin.Context) {
	var q MarketplaceQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err)
		return
	}
	if q.Category == "" {
		q.Category = integration.CategoryAll.String()
	}

	platform := h.marketplace.PlatformCode()
	ctx, span := telemetry.StartSpan(c.Request.Context(), "ranking.marketplace",
		telemetry.WithAttribute(telemetry.SpanAttrPlatform, platform.String()),
		telemetry.WithAttribute(telemetry.SpanAttrCategory, q.Category),
	)
	defer span.End()

	batch, err := h.marketplace.FetchRanking(ctx, integration.RankingQuery{
		Category: integration.Category(q.Category),
		Limit:    q.Limit,
	})
	if err != nil {
		telemetry.RecordError(span, err)
		h.upstreamFailure(c, platform, err)
		return
	}
	if h.configFailure(ctx, c, platform, batch) {
		return
	}

	telemetry.SetAttributes(span,
		telemetry.SpanAttrOutcome, string(batch.Outcome),
		telemetry.SpanAttrItems, len(batch.Items),
	)
	telemetry.SetOK(span)
	h.served(ctx, platform, q.Category, batch)
	h.Success(c, dto.NewMarketplaceResponse(batch, q.Category, h.Now()))
}

// GetSearch returns one page of search-shopping results.
// Upstream failures are reported as 500 with the failure message.
func (h *RankingHandler) GetSearch(c *gin.Context) {
	var q SearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err)
		return
	}
	if q.Category == "" {
		q.Category = integration.CategoryAll.String()
	}

	platform := h.search.PlatformCode()
	ctx, span := telemetry.StartSpan(c.Request.Context(), "ranking.search",
		telemetry.WithAttribute(telemetry.SpanAttrPlatform, platform.String()),
		telemetry.WithAttribute(telemetry.SpanAttrCategory, q.Category),
		telemetry.WithAttribute(telemetry.SpanAttrQuery, q.Query),
	)
	defer span.End()

	batch, err := h.search.FetchRanking(ctx, integration.RankingQuery{
		Category: integration.Category(q.Category),
		Text:     q.Query,
		Sort:     q.Sort,
		Start:    q.Start,
		Display:  q.Display,
	})
	if err != nil {
		telemetry.RecordError(span, err)
		h.upstreamFailure(c, platform, err)
		return
	}
	if h.configFailure(ctx, c, platform, batch) {
		return
	}

	telemetry.SetAttributes(span,
		telemetry.SpanAttrOutcome, string(batch.Outcome),
		telemetry.SpanAttrItems, len(batch.Items),
	)
	telemetry.SetOK(span)
	h.served(ctx, platform, q.Category, batch)
	h.Success(c, dto.NewSearchResponse(batch, h.Now()))
}

func (h *RankingHandler) configFailure(ctx context.Context, c *gin.Context, platform integration.PlatformCode, batch *listing.Batch) bool {
	if !batch.IsConfigError() {
		return false
	}
	err := integration.NewConfigurationError(platform, batch.Reason)
	logger.L(ctx).Error("Ranking source not configured",
		zap.String("platform", platform.String()),
	)
	h.Error(c, http.StatusInternalServerError, dto.NewConfigErrorResponse(batch.Reason), err)
	return true
}

func (h *RankingHandler) upstreamFailure(c *gin.Context, platform integration.PlatformCode, err error) {
	fields := []zap.Field{zap.String("platform", platform.String()), zap.Error(err)}
	var upstreamErr *integration.UpstreamError
	if errors.As(err, &upstreamErr) && upstreamErr.StatusCode != 0 {
		fields = append(fields, zap.Int("upstream_status", upstreamErr.StatusCode))
	}
	logger.L(c.Request.Context()).Error("Ranking source failed", fields...)

	resp := dto.NewErrorResponse(dto.UpstreamFailureTitle(platform.DisplayName()), err.Error(), h.Now())
	h.Error(c, http.StatusInternalServerError, resp, err)
}

func (h *RankingHandler) served(ctx context.Context, platform integration.PlatformCode, category string, batch *listing.Batch) {
	if h.recorder == nil {
		return
	}
	// free-text categories would explode metric cardinality
	if !integration.Category(category).IsValid() {
		category = "other"
	}
	h.recorder.RecordListingsServed(ctx, platform.String(), category, len(batch.Items))
}

// preflight answers OPTIONS when no CORS middleware intercepted it
func preflight(c *gin.Context) {
	c.Status(http.StatusOK)
}
