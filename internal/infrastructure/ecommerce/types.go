package ecommerce

import (
	"bytes"
	"encoding/json"
)

// FlexibleString decodes a JSON string or number into its text form.
// Upstream APIs are inconsistent about quoting IDs, prices and counts.
// Null, booleans, objects and arrays decode to "" so one odd field never
// fails the whole record.
type FlexibleString string

// UnmarshalJSON implements json.Unmarshaler
func (s *FlexibleString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		*s = ""
		return nil
	}
	switch data[0] {
	case '"':
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*s = FlexibleString(text)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var number json.Number
		if err := json.Unmarshal(data, &number); err != nil {
			return err
		}
		*s = FlexibleString(number.String())
	default:
		*s = ""
	}
	return nil
}

// String returns the decoded text
func (s FlexibleString) String() string {
	return string(s)
}

// ---------------------------------------------------------------------------
// Coupang Partners API Types
// ---------------------------------------------------------------------------

// CoupangBestCategoryResponse is the body of the best-categories endpoint
type CoupangBestCategoryResponse struct {
	RCode    string           `json:"rCode"`
	RMessage string           `json:"rMessage"`
	Data     []CoupangProduct `json:"data"`
}

// CoupangProduct is one ranked product record
type CoupangProduct struct {
	ProductID      FlexibleString `json:"productId"`
	ProductName    string         `json:"productName"`
	ProductImage   string         `json:"productImage"`
	ProductPrice   FlexibleString `json:"productPrice"`
	ProductURL     string         `json:"productUrl"`
	CategoryName   string         `json:"categoryName"`
	VendorItemName string         `json:"vendorItemName"`
	DiscountRate   FlexibleString `json:"discountRate"`
	Rating         FlexibleString `json:"rating"`
	ReviewCount    FlexibleString `json:"reviewCount"`
}

// ---------------------------------------------------------------------------
// Naver Shopping Search API Types
// ---------------------------------------------------------------------------

// NaverShopSearchResponse is the body of the shopping search endpoint
type NaverShopSearchResponse struct {
	LastBuildDate string          `json:"lastBuildDate"`
	Total         int             `json:"total"`
	Start         int             `json:"start"`
	Display       int             `json:"display"`
	Items         []NaverShopItem `json:"items"`
}

// NaverShopItem is one search hit
type NaverShopItem struct {
	Title       string         `json:"title"`
	Link        string         `json:"link"`
	Image       string         `json:"image"`
	LowPrice    FlexibleString `json:"lprice"`
	HighPrice   FlexibleString `json:"hprice"`
	MallName    string         `json:"mallName"`
	ProductID   FlexibleString `json:"productId"`
	ProductType FlexibleString `json:"productType"`
	Brand       string         `json:"brand"`
	Maker       string         `json:"maker"`
	Category1   string         `json:"category1"`
	Category2   string         `json:"category2"`
	Category3   string         `json:"category3"`
	Category4   string         `json:"category4"`
}
