package ecommerce

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/shoprank/backend/internal/domain/integration"
	"github.com/shoprank/backend/internal/domain/listing"
)

// maxResponseSize is the maximum allowed response size from an upstream API (10MB)
const maxResponseSize = 10 * 1024 * 1024

const (
	// coupangBestCategoriesPath is the best-categories endpoint, formatted with category ID and limit
	coupangBestCategoriesPath = "/v2/providers/affiliate_open_api/apis/openapi/products/bestcategories/%s?limit=%d"
	// coupangMallName is the storefront name for every Coupang listing
	coupangMallName = "쿠팡"
	// CoupangFallbackNote annotates responses served from the sample dataset
	CoupangFallbackNote = "API 오류로 인한 샘플 데이터"
	// CoupangConfigErrorMessage tells the operator which variables to set
	CoupangConfigErrorMessage = "환경변수에서 COUPANG_ACCESS_KEY와 COUPANG_SECRET_KEY를 확인해주세요."
)

// CoupangConfigProvider returns the configuration for the next request.
// It is called on every fetch so credential changes take effect without a restart.
type CoupangConfigProvider func() *CoupangConfig

// CoupangAdapter implements RankingSource for the Coupang Partners best-category ranking.
//
// Upstream failures never reach the caller: they are logged and replaced by a fixed
// two-item sample batch. Missing credentials are reported as a configuration-error batch.
type CoupangAdapter struct {
	configProvider CoupangConfigProvider
	opts           adapterOptions
}

// NewCoupangAdapter creates a new Coupang adapter
func NewCoupangAdapter(configProvider CoupangConfigProvider, opts ...AdapterOption) *CoupangAdapter {
	return &CoupangAdapter{
		configProvider: configProvider,
		opts:           newAdapterOptions(opts),
	}
}

// PlatformCode returns the platform code this adapter handles
func (a *CoupangAdapter) PlatformCode() integration.PlatformCode {
	return integration.PlatformCodeCoupang
}

// FetchRanking fetches the best-category ranking for q.Category, limited to q.Limit items
func (a *CoupangAdapter) FetchRanking(ctx context.Context, q integration.RankingQuery) (*listing.Batch, error) {
	q = q.WithDefaults()
	start := a.opts.now()
	platform := a.PlatformCode().String()

	var config *CoupangConfig
	if a.configProvider != nil {
		config = a.configProvider()
	}
	if config == nil {
		config = &CoupangConfig{}
	}
	if err := config.Validate(); err != nil {
		a.opts.logger.Error("Coupang credentials missing", zap.Error(err))
		a.opts.recorder.RecordUpstreamCall(ctx, platform, CallOutcomeConfigError, 0)
		return listing.NewConfigErrorBatch(CoupangConfigErrorMessage), nil
	}

	items, err := a.fetchBestCategories(ctx, config, q)
	elapsed := a.opts.now().Sub(start)
	if err != nil {
		a.opts.logger.Warn("Coupang API failed, serving sample data",
			zap.String("category", q.Category.String()),
			zap.Int("limit", q.Limit),
			zap.Error(err),
		)
		a.opts.recorder.RecordUpstreamCall(ctx, platform, CallOutcomeFallback, elapsed)
		return listing.NewFallbackBatch(coupangFallbackListings(), CoupangFallbackNote), nil
	}

	a.opts.recorder.RecordUpstreamCall(ctx, platform, CallOutcomeOK, elapsed)
	return listing.NewOKBatch(items, len(items)), nil
}

// fetchBestCategories performs the signed request and maps the response
func (a *CoupangAdapter) fetchBestCategories(ctx context.Context, config *CoupangConfig, q integration.RankingQuery) ([]listing.Listing, error) {
	path := fmt.Sprintf(coupangBestCategoriesPath, CoupangCategoryID(q.Category), q.Limit)

	body, err := a.doRequest(ctx, config, http.MethodGet, path)
	if err != nil {
		return nil, err
	}

	var resp CoupangBestCategoryResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &integration.UpstreamError{
			Platform: integration.PlatformCodeCoupang,
			Err:      fmt.Errorf("%w: failed to parse response: %v", integration.ErrPlatformInvalidResponse, err),
		}
	}
	if resp.Data == nil {
		return nil, &integration.UpstreamError{
			Platform: integration.PlatformCodeCoupang,
			Err:      fmt.Errorf("%w: missing data array", integration.ErrPlatformInvalidResponse),
		}
	}

	items := make([]listing.Listing, 0, len(resp.Data))
	for i := range resp.Data {
		items = append(items, convertCoupangProduct(&resp.Data[i]))
	}
	listing.AssignRanks(items, 1)
	return items, nil
}

// doRequest performs a signed HTTP request against the Coupang API gateway
func (a *CoupangAdapter) doRequest(ctx context.Context, config *CoupangConfig, method, path string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(config.TimeoutSeconds)*time.Second)
	defer cancel()

	timestamp := a.opts.now().UnixMilli()
	signature := config.Sign(timestamp, method, path)

	req, err := http.NewRequestWithContext(ctx, method, config.APIBaseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("coupang: failed to create request: %w", err)
	}

	req.Header.Set("Authorization", config.AuthorizationHeader(timestamp, signature))
	req.Header.Set("Content-Type", "application/json;charset=UTF-8")

	resp, err := a.opts.httpClient.Do(req)
	if err != nil {
		return nil, &integration.UpstreamError{
			Platform: integration.PlatformCodeCoupang,
			Err:      fmt.Errorf("%w: %v", integration.ErrPlatformUnavailable, err),
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("coupang: failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &integration.UpstreamError{
			Platform:   integration.PlatformCodeCoupang,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%w: HTTP %d", integration.ErrPlatformRequestFailed, resp.StatusCode),
		}
	}

	return body, nil
}

// convertCoupangProduct converts one Coupang record to a Listing. Rank is assigned by the caller.
func convertCoupangProduct(p *CoupangProduct) listing.Listing {
	item := listing.Listing{
		Title:     p.ProductName,
		Image:     p.ProductImage,
		Price:     coupangPriceText(p.ProductPrice.String()),
		MallName:  coupangMallName,
		Link:      p.ProductURL,
		Category:  listing.CategoryOrDefault(p.CategoryName),
		Brand:     p.VendorItemName,
		ProductID: p.ProductID.String(),
	}
	if item.ProductID == "" {
		item.ProductID = listing.NewProductID()
	}

	if rate, ok := listing.ParsePrice(p.DiscountRate.String()); ok && !rate.IsZero() {
		discount := rate.String() + "%"
		item.Discount = &discount
	}
	if rating, ok := parseNumber(p.Rating); ok && !rating.IsZero() {
		value := rating.InexactFloat64()
		item.Rating = &value
	}
	reviewCount := 0
	if count, ok := parseNumber(p.ReviewCount); ok {
		reviewCount = int(count.IntPart())
	}
	item.ReviewCount = &reviewCount

	return item
}

// parseNumber reads a numeric field; blank or malformed values report false
func parseNumber(raw FlexibleString) (decimal.Decimal, bool) {
	text := strings.TrimSpace(raw.String())
	if text == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// coupangPriceText formats a Coupang price; zero counts as missing
func coupangPriceText(raw string) string {
	amount, ok := listing.ParsePrice(raw)
	if !ok || amount.IsZero() {
		return listing.PriceUnavailable
	}
	return listing.FormatPrice(amount)
}

// coupangFallbackListings returns a fresh copy of the sample dataset
func coupangFallbackListings() []listing.Listing {
	return []listing.Listing{
		{
			Rank:      1,
			Title:     "샌디스크 USB 3.0 64GB",
			Image:     "https://thumbnail6.coupangcdn.com/thumbnails/remote/492x492ex/image/retail/images/2019/12/13/17/4/ac0d6467-7b2e-4b9a-9c7e-8f9d5c4b2a1e.jpg",
			Price:     "12,900원",
			MallName:  coupangMallName,
			Link:      "https://coupa.ng/sample1",
			Category:  "디지털",
			Brand:     "샌디스크",
			ProductID: "sample1",
		},
		{
			Rank:      2,
			Title:     "베오베 밀크쉐이크 프로틴",
			Image:     "https://thumbnail9.coupangcdn.com/thumbnails/remote/492x492ex/image/retail/images/2020/08/25/14/2/bd1e8356-4c7f-4a8b-8d6e-9f0e5c3b1a2d.jpg",
			Price:     "45,000원",
			MallName:  coupangMallName,
			Link:      "https://coupa.ng/sample2",
			Category:  "건강식품",
			Brand:     "베오베",
			ProductID: "sample2",
		},
	}
}

// Ensure CoupangAdapter implements RankingSource interface
var _ integration.RankingSource = (*CoupangAdapter)(nil)
