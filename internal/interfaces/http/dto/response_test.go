package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoprank/backend/internal/domain/listing"
)

var fixedNow = time.Date(2026, 3, 1, 9, 30, 15, 123_000_000, time.FixedZone("KST", 9*3600))

func TestTimestamp(t *testing.T) {
	assert.Equal(t, "2026-03-01T00:30:15.123Z", Timestamp(fixedNow))
}

func TestNewMarketplaceResponse(t *testing.T) {
	t.Run("ok batch has no note", func(t *testing.T) {
		batch := listing.NewOKBatch([]listing.Listing{{Rank: 1, Title: "a"}}, 1)
		resp := NewMarketplaceResponse(batch, "digital", fixedNow)

		assert.True(t, resp.Success)
		assert.Equal(t, 1, resp.Total)
		assert.Equal(t, "digital", resp.Category)
		assert.Empty(t, resp.Note)

		raw, err := json.Marshal(resp)
		require.NoError(t, err)
		assert.NotContains(t, string(raw), `"note"`)
	})

	t.Run("fallback batch carries note", func(t *testing.T) {
		batch := listing.NewFallbackBatch([]listing.Listing{{Rank: 1}, {Rank: 2}}, "sample")
		resp := NewMarketplaceResponse(batch, "all", fixedNow)

		assert.True(t, resp.Success)
		assert.Equal(t, 2, resp.Total)
		assert.Equal(t, "sample", resp.Note)
	})

	t.Run("nil items serialize as empty array", func(t *testing.T) {
		resp := NewMarketplaceResponse(&listing.Batch{Outcome: listing.OutcomeOK}, "all", fixedNow)
		raw, err := json.Marshal(resp)
		require.NoError(t, err)
		assert.Contains(t, string(raw), `"items":[]`)
	})
}

func TestNewSearchResponse(t *testing.T) {
	batch := listing.NewOKBatch([]listing.Listing{{Rank: 11}}, 500)
	batch.Start = 11
	batch.Display = 1
	batch.Query = "패션"

	resp := NewSearchResponse(batch, fixedNow)

	assert.Equal(t, 500, resp.Total)
	assert.Equal(t, 11, resp.Start)
	assert.Equal(t, 1, resp.Display)
	assert.Equal(t, "패션", resp.Query)
	assert.Equal(t, "2026-03-01T00:30:15.123Z", resp.Timestamp)
}

func TestErrorResponses(t *testing.T) {
	cfgErr := NewConfigErrorResponse("check env")
	raw, err := json.Marshal(cfgErr)
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"API 키가 설정되지 않았습니다.","message":"check env"}`, string(raw))

	upErr := NewErrorResponse(UpstreamFailureTitle("네이버"), "네이버 API 오류: 500", fixedNow)
	assert.Equal(t, "네이버 API 호출 실패", upErr.Error)
	assert.Equal(t, "2026-03-01T00:30:15.123Z", upErr.Timestamp)
}
