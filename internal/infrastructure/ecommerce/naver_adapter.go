package ecommerce

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/shoprank/backend/internal/domain/integration"
	"github.com/shoprank/backend/internal/domain/listing"
)

const (
	// naverShopSearchPath is the JSON shopping search endpoint
	naverShopSearchPath = "/v1/search/shop.json"
	// NaverConfigErrorMessage tells the operator which variables to set
	NaverConfigErrorMessage = "환경변수에서 NAVER_CLIENT_ID와 NAVER_CLIENT_SECRET을 확인해주세요."
)

// NaverConfigProvider returns the configuration for the next request
type NaverConfigProvider func() *NaverConfig

// NaverAdapter implements RankingSource for the Naver shopping search API.
//
// Unlike the Coupang adapter it has no fallback: upstream failures are returned
// to the caller as *integration.UpstreamError.
type NaverAdapter struct {
	configProvider NaverConfigProvider
	opts           adapterOptions
}

// NewNaverAdapter creates a new Naver adapter
func NewNaverAdapter(configProvider NaverConfigProvider, opts ...AdapterOption) *NaverAdapter {
	return &NaverAdapter{
		configProvider: configProvider,
		opts:           newAdapterOptions(opts),
	}
}

// PlatformCode returns the platform code this adapter handles
func (a *NaverAdapter) PlatformCode() integration.PlatformCode {
	return integration.PlatformCodeNaver
}

// SearchQuery resolves the effective search text for q.
// A known category other than "all" replaces the free text with its keyword.
func SearchQuery(q integration.RankingQuery) string {
	text := q.Text
	if text == "" {
		text = integration.DefaultSearchQuery
	}
	if keyword, ok := NaverCategoryKeyword(q.Category); ok {
		return keyword
	}
	return text
}

// FetchRanking searches the shopping catalog and ranks the hits from q.Start
func (a *NaverAdapter) FetchRanking(ctx context.Context, q integration.RankingQuery) (*listing.Batch, error) {
	q = q.WithDefaults()
	start := a.opts.now()
	platform := a.PlatformCode().String()

	var config *NaverConfig
	if a.configProvider != nil {
		config = a.configProvider()
	}
	if config == nil {
		config = &NaverConfig{}
	}
	if err := config.Validate(); err != nil {
		a.opts.logger.Error("Naver credentials missing", zap.Error(err))
		a.opts.recorder.RecordUpstreamCall(ctx, platform, CallOutcomeConfigError, 0)
		return listing.NewConfigErrorBatch(NaverConfigErrorMessage), nil
	}

	query := SearchQuery(q)
	params := url.Values{}
	params.Set("query", query)
	params.Set("start", strconv.Itoa(q.Start))
	params.Set("display", strconv.Itoa(q.Display))
	params.Set("sort", q.Sort)

	body, err := a.doRequest(ctx, config, params)
	if err == nil {
		var batch *listing.Batch
		batch, err = a.parseSearchResponse(body, q.Start)
		if err == nil {
			batch.Query = query
			a.opts.recorder.RecordUpstreamCall(ctx, platform, CallOutcomeOK, a.opts.now().Sub(start))
			return batch, nil
		}
	}

	a.opts.logger.Error("Naver API failed",
		zap.String("query", query),
		zap.Int("start", q.Start),
		zap.Int("display", q.Display),
		zap.String("sort", q.Sort),
		zap.Error(err),
	)
	a.opts.recorder.RecordUpstreamCall(ctx, platform, CallOutcomeError, a.opts.now().Sub(start))
	return nil, err
}

// parseSearchResponse maps the search body to a batch ranked from rankStart
func (a *NaverAdapter) parseSearchResponse(body []byte, rankStart int) (*listing.Batch, error) {
	var resp NaverShopSearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &integration.UpstreamError{
			Platform: integration.PlatformCodeNaver,
			Err:      fmt.Errorf("%w: failed to parse response: %v", integration.ErrPlatformInvalidResponse, err),
		}
	}
	if resp.Items == nil {
		return nil, &integration.UpstreamError{
			Platform: integration.PlatformCodeNaver,
			Err:      fmt.Errorf("%w: missing items array", integration.ErrPlatformInvalidResponse),
		}
	}

	items := make([]listing.Listing, 0, len(resp.Items))
	for i := range resp.Items {
		items = append(items, convertNaverItem(&resp.Items[i]))
	}
	listing.AssignRanks(items, rankStart)

	batch := listing.NewOKBatch(items, resp.Total)
	batch.Start = resp.Start
	batch.Display = resp.Display
	return batch, nil
}

// doRequest performs an authenticated search request
func (a *NaverAdapter) doRequest(ctx context.Context, config *NaverConfig, params url.Values) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(config.TimeoutSeconds)*time.Second)
	defer cancel()

	reqURL := config.APIBaseURL + naverShopSearchPath + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("naver: failed to create request: %w", err)
	}

	req.Header.Set("X-Naver-Client-Id", config.ClientID)
	req.Header.Set("X-Naver-Client-Secret", config.ClientSecret)
	req.Header.Set("User-Agent", config.UserAgent)

	resp, err := a.opts.httpClient.Do(req)
	if err != nil {
		return nil, &integration.UpstreamError{
			Platform: integration.PlatformCodeNaver,
			Err:      fmt.Errorf("%w: %v", integration.ErrPlatformUnavailable, err),
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, &integration.UpstreamError{
			Platform: integration.PlatformCodeNaver,
			Err:      fmt.Errorf("%w: failed to read response: %v", integration.ErrPlatformUnavailable, err),
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &integration.UpstreamError{
			Platform:   integration.PlatformCodeNaver,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%w: HTTP %d", integration.ErrPlatformRequestFailed, resp.StatusCode),
		}
	}

	return body, nil
}

// convertNaverItem converts one search hit to a Listing. Rank is assigned by the caller.
func convertNaverItem(item *NaverShopItem) listing.Listing {
	result := listing.Listing{
		Title:     listing.StripMarkup(item.Title),
		Image:     item.Image,
		Price:     listing.PriceText(item.LowPrice.String()),
		MallName:  item.MallName,
		Link:      item.Link,
		Category:  listing.CategoryOrDefault(item.Category1),
		Brand:     item.Brand,
		ProductID: item.ProductID.String(),
	}
	if result.ProductID == "" {
		result.ProductID = listing.NewProductID()
	}
	return result
}

// Ensure NaverAdapter implements RankingSource interface
var _ integration.RankingSource = (*NaverAdapter)(nil)
