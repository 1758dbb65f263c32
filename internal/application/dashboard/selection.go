package dashboard

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/shoprank/backend/internal/domain/integration"
)

// Platform values accepted in a Selection
const (
	PlatformCoupang = "coupang"
	PlatformNaver   = "naver"
)

// PageSize is the number of listings requested per load
const PageSize = 100

// Selection is the user's current filter state
type Selection struct {
	Platform string
	Category string
	Sort     string
	Query    string
}

// DefaultSelection returns the state the dashboard starts with
func DefaultSelection() Selection {
	return Selection{
		Platform: PlatformCoupang,
		Category: integration.CategoryAll.String(),
		Sort:     integration.DefaultSort,
	}
}

// PlatformCode maps the selection to its ranking source.
// Anything other than naver is served by the marketplace.
func (s Selection) PlatformCode() integration.PlatformCode {
	if s.Platform == PlatformNaver {
		return integration.PlatformCodeNaver
	}
	return integration.PlatformCodeCoupang
}

// BuildURL returns the request path and query for the selection
func BuildURL(s Selection) string {
	category := s.Category
	if category == "" {
		category = integration.CategoryAll.String()
	}

	var b strings.Builder
	if s.PlatformCode() == integration.PlatformCodeNaver {
		sort := s.Sort
		if sort == "" {
			sort = integration.DefaultSort
		}
		b.WriteString("/search?category=")
		b.WriteString(url.QueryEscape(category))
		b.WriteString("&sort=")
		b.WriteString(url.QueryEscape(sort))
		b.WriteString("&display=")
		b.WriteString(strconv.Itoa(PageSize))
		if q := strings.TrimSpace(s.Query); q != "" {
			b.WriteString("&query=")
			b.WriteString(url.QueryEscape(q))
		}
		return b.String()
	}

	b.WriteString("/marketplace?category=")
	b.WriteString(url.QueryEscape(category))
	b.WriteString("&limit=")
	b.WriteString(strconv.Itoa(PageSize))
	return b.String()
}
