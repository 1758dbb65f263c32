package dashboard

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shoprank/backend/internal/domain/listing"
)

// EmptyExportMessage is shown when there is nothing to export
const EmptyExportMessage = "다운로드할 데이터가 없습니다."

// utf8BOM lets spreadsheet applications detect the encoding
const utf8BOM = "\ufeff"

var exportHeader = []string{"순위", "상품명", "가격", "쇼핑몰", "카테고리", "브랜드"}

// ExportFilename returns the download name for an export taken at now
func ExportFilename(now time.Time) string {
	return "shopping-data-" + now.UTC().Format("2006-01-02T15-04-05") + ".csv"
}

// EncodeCSV renders items as a BOM-prefixed CSV document
func EncodeCSV(items []listing.Listing) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(utf8BOM)

	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeader); err != nil {
		return nil, err
	}
	for _, item := range items {
		record := []string{
			strconv.Itoa(item.Rank),
			stripCommas(item.Title),
			item.Price,
			stripCommas(item.MallName),
			stripCommas(item.Category),
			stripCommas(item.Brand),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func stripCommas(s string) string {
	return strings.ReplaceAll(s, ",", " ")
}

// Export offers the current collection as a CSV download.
// An empty collection only raises an alert. A download the view could not
// save is returned as an error.
func (c *Controller) Export() error {
	items := c.Items()
	if len(items) == 0 {
		c.view.Alert(EmptyExportMessage)
		return nil
	}

	data, err := EncodeCSV(items)
	if err != nil {
		return fmt.Errorf("dashboard: encode export: %w", err)
	}
	filename := ExportFilename(c.now())
	if err := c.view.PromptDownload(data, filename); err != nil {
		return fmt.Errorf("dashboard: save %s: %w", filename, err)
	}
	return nil
}
