package dashboard

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoprank/backend/internal/domain/listing"
)

func TestExportFilename(t *testing.T) {
	now := time.Date(2026, 7, 8, 18, 5, 9, 999_000_000, time.FixedZone("KST", 9*3600))
	assert.Equal(t, "shopping-data-2026-07-08T09-05-09.csv", ExportFilename(now))
}

func TestEncodeCSV(t *testing.T) {
	items := []listing.Listing{
		{Rank: 1, Title: "양말, 10켤레", Price: "12,900원", MallName: "쿠팡", Category: "패션", Brand: "무명, 상사"},
		{Rank: 2, Title: "텀블러", Price: "가격 문의", MallName: "네이버"},
	}

	data, err := EncodeCSV(items)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte("\xef\xbb\xbf")), "missing UTF-8 BOM")

	records, err := csv.NewReader(bytes.NewReader(data[3:])).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"순위", "상품명", "가격", "쇼핑몰", "카테고리", "브랜드"}, records[0])
	assert.Equal(t, []string{"1", "양말  10켤레", "12,900원", "쿠팡", "패션", "무명  상사"}, records[1])
	assert.Equal(t, []string{"2", "텀블러", "가격 문의", "네이버", "", ""}, records[2])
}

func TestController_Export(t *testing.T) {
	t.Run("empty collection alerts", func(t *testing.T) {
		view := &recordingView{}
		c := NewController(&scriptedFetcher{}, view)

		require.NoError(t, c.Export())

		assert.Equal(t, []string{"alert"}, view.kinds())
		assert.Equal(t, EmptyExportMessage, view.last("alert").message)
	})

	t.Run("downloads current items", func(t *testing.T) {
		view := &recordingView{}
		fetcher := &scriptedFetcher{responses: map[string]fetchResult{
			defaultMarketplacePath: {payload: &Payload{Success: true, Items: marketplaceItems()}},
		}}
		now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
		c := NewController(fetcher, view, WithClock(func() time.Time { return now }))
		require.NoError(t, c.Load(context.Background()))

		require.NoError(t, c.Export())

		download := view.last("download")
		assert.Equal(t, "shopping-data-2026-01-02T03-04-05.csv", download.message)
		records, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(download.data, []byte("\xef\xbb\xbf")))).ReadAll()
		require.NoError(t, err)
		assert.Len(t, records, 3)
		assert.Equal(t, "샌디스크 USB 3.0 64GB", records[1][1])
	})

	t.Run("failed download is returned", func(t *testing.T) {
		view := &recordingView{downloadErr: os.ErrPermission}
		fetcher := &scriptedFetcher{responses: map[string]fetchResult{
			defaultMarketplacePath: {payload: &Payload{Success: true, Items: marketplaceItems()}},
		}}
		c := NewController(fetcher, view)
		require.NoError(t, c.Load(context.Background()))

		err := c.Export()

		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrPermission)
		assert.Contains(t, err.Error(), "shopping-data-")
	})
}
