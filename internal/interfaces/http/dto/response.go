package dto

import (
	"time"

	"github.com/shoprank/backend/internal/domain/listing"
)

// TimestampLayout is the ISO-8601 layout with milliseconds used in every payload
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Error titles shared by the ranking endpoints
const (
	ErrorMissingCredentials = "API 키가 설정되지 않았습니다."
	ErrorInvalidRequest     = "잘못된 요청입니다."
)

// UpstreamFailureTitle returns the error title for a failed call to the named platform
func UpstreamFailureTitle(platformName string) string {
	return platformName + " API 호출 실패"
}

// Timestamp formats t in UTC
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ErrorResponse represents an error payload
type ErrorResponse struct {
	Error     string            `json:"error"`
	Message   string            `json:"message"`
	Timestamp string            `json:"timestamp,omitempty"`
	Details   []ValidationError `json:"details,omitempty"`
}

// ValidationError describes one invalid query parameter
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// NewErrorResponse creates an error payload stamped with now
func NewErrorResponse(title, message string, now time.Time) ErrorResponse {
	return ErrorResponse{
		Error:     title,
		Message:   message,
		Timestamp: Timestamp(now),
	}
}

// NewConfigErrorResponse creates the missing-credentials payload
func NewConfigErrorResponse(message string) ErrorResponse {
	return ErrorResponse{
		Error:   ErrorMissingCredentials,
		Message: message,
	}
}

// MarketplaceResponse is the body of the marketplace ranking endpoint
type MarketplaceResponse struct {
	Success   bool              `json:"success"`
	Total     int               `json:"total"`
	Items     []listing.Listing `json:"items"`
	Category  string            `json:"category"`
	Timestamp string            `json:"timestamp"`
	Note      string            `json:"note,omitempty"`
}

// NewMarketplaceResponse wraps a marketplace batch
func NewMarketplaceResponse(batch *listing.Batch, category string, now time.Time) MarketplaceResponse {
	resp := MarketplaceResponse{
		Success:   true,
		Total:     len(batch.Items),
		Items:     nonNil(batch.Items),
		Category:  category,
		Timestamp: Timestamp(now),
	}
	if batch.IsFallback() {
		resp.Note = batch.Reason
	}
	return resp
}

// SearchResponse is the body of the search-shopping endpoint
type SearchResponse struct {
	Success   bool              `json:"success"`
	Total     int               `json:"total"`
	Start     int               `json:"start"`
	Display   int               `json:"display"`
	Items     []listing.Listing `json:"items"`
	Query     string            `json:"query"`
	Timestamp string            `json:"timestamp"`
}

// NewSearchResponse wraps a search batch
func NewSearchResponse(batch *listing.Batch, now time.Time) SearchResponse {
	return SearchResponse{
		Success:   true,
		Total:     batch.Total,
		Start:     batch.Start,
		Display:   batch.Display,
		Items:     nonNil(batch.Items),
		Query:     batch.Query,
		Timestamp: Timestamp(now),
	}
}

// HealthResponse is the body of the health endpoint
type HealthResponse struct {
	Status    string          `json:"status"`
	Service   string          `json:"service"`
	Version   string          `json:"version"`
	Uptime    string          `json:"uptime"`
	Platforms map[string]bool `json:"platforms"`
	Timestamp string          `json:"timestamp"`
}

func nonNil(items []listing.Listing) []listing.Listing {
	if items == nil {
		return []listing.Listing{}
	}
	return items
}
