package integration

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// ---------------------------------------------------------------------------
// PlatformCode Tests
// ---------------------------------------------------------------------------

func TestPlatformCode_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		code     PlatformCode
		expected bool
	}{
		{"Coupang valid", PlatformCodeCoupang, true},
		{"Naver valid", PlatformCodeNaver, true},
		{"Invalid code", PlatformCode("INVALID"), false},
		{"Empty code", PlatformCode(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.code.IsValid())
		})
	}
}

func TestPlatformCode_DisplayName(t *testing.T) {
	tests := []struct {
		code     PlatformCode
		expected string
	}{
		{PlatformCodeCoupang, "쿠팡"},
		{PlatformCodeNaver, "네이버"},
		{PlatformCode("UNKNOWN"), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.code.DisplayName())
		})
	}
}

func TestPlatformCode_ResultsTitle(t *testing.T) {
	assert.Equal(t, "네이버 검색 결과", PlatformCodeNaver.ResultsTitle())
	assert.Equal(t, "쿠팡 검색 결과", PlatformCodeCoupang.ResultsTitle())
}

// ---------------------------------------------------------------------------
// Category / Query Tests
// ---------------------------------------------------------------------------

func TestCategory_IsValid(t *testing.T) {
	for _, c := range AllCategories {
		assert.True(t, c.IsValid(), c.String())
	}
	assert.False(t, Category("garden").IsValid())
	assert.False(t, Category("").IsValid())
}

func TestRankingQuery_WithDefaults(t *testing.T) {
	q := RankingQuery{}.WithDefaults()

	assert.Equal(t, CategoryAll, q.Category)
	assert.Equal(t, DefaultLimit, q.Limit)
	assert.Equal(t, DefaultSort, q.Sort)
	assert.Equal(t, DefaultStart, q.Start)
	assert.Equal(t, DefaultDisplay, q.Display)
	assert.Empty(t, q.Text)

	custom := RankingQuery{Category: CategoryPet, Limit: 10, Sort: "asc", Start: 21, Display: 20}.WithDefaults()
	assert.Equal(t, CategoryPet, custom.Category)
	assert.Equal(t, 10, custom.Limit)
	assert.Equal(t, "asc", custom.Sort)
	assert.Equal(t, 21, custom.Start)
	assert.Equal(t, 20, custom.Display)
}

// ---------------------------------------------------------------------------
// Error Tests
// ---------------------------------------------------------------------------

func TestConfigurationError(t *testing.T) {
	err := NewConfigurationError(PlatformCodeCoupang, "access key missing")

	assert.ErrorIs(t, err, ErrPlatformNotConfigured)
	assert.Contains(t, err.Error(), "access key missing")

	var cfgErr *ConfigurationError
	wrapped := fmt.Errorf("fetch: %w", err)
	assert.True(t, errors.As(wrapped, &cfgErr))
	assert.Equal(t, PlatformCodeCoupang, cfgErr.Platform)
}

func TestUpstreamError(t *testing.T) {
	t.Run("with status", func(t *testing.T) {
		err := &UpstreamError{Platform: PlatformCodeNaver, StatusCode: 500, Err: ErrPlatformRequestFailed}
		assert.Equal(t, "네이버 API 오류: 500", err.Error())
		assert.ErrorIs(t, err, ErrPlatformRequestFailed)
	})

	t.Run("transport failure", func(t *testing.T) {
		err := &UpstreamError{Platform: PlatformCodeCoupang, Err: ErrPlatformUnavailable}
		assert.Contains(t, err.Error(), "쿠팡 API 오류")
		assert.ErrorIs(t, err, ErrPlatformUnavailable)
	})
}
