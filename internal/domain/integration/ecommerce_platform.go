package integration

import (
	"context"
	"errors"

	"github.com/shoprank/backend/internal/domain/listing"
)

// ---------------------------------------------------------------------------
// RankingSource Errors
// ---------------------------------------------------------------------------

var (
	ErrPlatformNotConfigured   = errors.New("integration: platform not configured")
	ErrPlatformUnavailable     = errors.New("integration: platform temporarily unavailable")
	ErrPlatformRequestFailed   = errors.New("integration: platform request failed")
	ErrPlatformInvalidResponse = errors.New("integration: invalid platform response")
)

// ---------------------------------------------------------------------------
// PlatformCode represents an upstream shopping platform
// ---------------------------------------------------------------------------

// PlatformCode represents an upstream shopping platform
type PlatformCode string

const (
	// PlatformCodeCoupang represents the Coupang Partners affiliate API
	PlatformCodeCoupang PlatformCode = "COUPANG"
	// PlatformCodeNaver represents the Naver shopping search API
	PlatformCodeNaver PlatformCode = "NAVER"
)

// IsValid returns true if the platform code is valid
func (c PlatformCode) IsValid() bool {
	switch c {
	case PlatformCodeCoupang, PlatformCodeNaver:
		return true
	default:
		return false
	}
}

// String returns the string representation of PlatformCode
func (c PlatformCode) String() string {
	return string(c)
}

// DisplayName returns a human-readable name for the platform
func (c PlatformCode) DisplayName() string {
	switch c {
	case PlatformCodeCoupang:
		return "쿠팡"
	case PlatformCodeNaver:
		return "네이버"
	default:
		return string(c)
	}
}

// ResultsTitle returns the results header shown above a platform's listings
func (c PlatformCode) ResultsTitle() string {
	return c.DisplayName() + " 검색 결과"
}

// ---------------------------------------------------------------------------
// RankingQuery
// ---------------------------------------------------------------------------

// Defaults applied when a query field is left empty
const (
	DefaultLimit       = 50
	DefaultDisplay     = 50
	DefaultStart       = 1
	DefaultSort        = "sim"
	DefaultSearchQuery = "인기상품"
)

// RankingQuery describes one ranking fetch. Fields a platform does not use are ignored.
type RankingQuery struct {
	Category Category
	// Limit is the result count for non-paginated sources
	Limit int
	// Text is the free-text search query
	Text    string
	Sort    string
	Start   int
	Display int
}

// WithDefaults returns a copy of q with empty fields set to their defaults
func (q RankingQuery) WithDefaults() RankingQuery {
	if q.Category == "" {
		q.Category = CategoryAll
	}
	if q.Limit <= 0 {
		q.Limit = DefaultLimit
	}
	if q.Sort == "" {
		q.Sort = DefaultSort
	}
	if q.Start <= 0 {
		q.Start = DefaultStart
	}
	if q.Display <= 0 {
		q.Display = DefaultDisplay
	}
	return q
}

// ---------------------------------------------------------------------------
// RankingSource Interface (Port)
// ---------------------------------------------------------------------------

// RankingSource is the port for fetching ranked products from one upstream platform.
// Implementations are stateless between calls and must read credentials on every call.
//
// A returned batch may be a configuration-error batch; a returned error is always an
// upstream failure the adapter chose not to absorb.
type RankingSource interface {
	// PlatformCode returns the platform this source handles
	PlatformCode() PlatformCode

	// FetchRanking fetches one fresh batch of listings
	FetchRanking(ctx context.Context, q RankingQuery) (*listing.Batch, error)
}
