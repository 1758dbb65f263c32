package ecommerce

import (
	"errors"
)

// NaverConfig holds configuration for the Naver shopping search API
type NaverConfig struct {
	// ClientID is the application client ID from the Naver developer center
	ClientID string
	// ClientSecret is the application client secret
	ClientSecret string
	// APIBaseURL is the base URL for the Naver open API
	APIBaseURL string
	// UserAgent is sent with every search request
	UserAgent string
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int
}

const (
	// NaverProductionAPIURL is the production open API endpoint
	NaverProductionAPIURL = "https://openapi.naver.com"
	// DefaultNaverUserAgent identifies the dashboard to the search API
	DefaultNaverUserAgent = "Mozilla/5.0 (compatible; NaverShoppingBot/1.0)"
)

// Errors for Naver configuration
var (
	ErrNaverConfigMissingClientID     = errors.New("naver: client ID is required")
	ErrNaverConfigMissingClientSecret = errors.New("naver: client secret is required")
)

// NewNaverConfig creates a new Naver configuration with defaults
func NewNaverConfig(clientID, clientSecret string) *NaverConfig {
	return &NaverConfig{
		ClientID:       clientID,
		ClientSecret:   clientSecret,
		APIBaseURL:     NaverProductionAPIURL,
		UserAgent:      DefaultNaverUserAgent,
		TimeoutSeconds: 30,
	}
}

// Validate validates the Naver configuration
func (c *NaverConfig) Validate() error {
	if c.ClientID == "" {
		return ErrNaverConfigMissingClientID
	}
	if c.ClientSecret == "" {
		return ErrNaverConfigMissingClientSecret
	}
	if c.APIBaseURL == "" {
		c.APIBaseURL = NaverProductionAPIURL
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultNaverUserAgent
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	return nil
}
