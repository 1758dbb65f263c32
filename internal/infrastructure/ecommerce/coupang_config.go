package ecommerce

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
)

// CoupangConfig holds configuration for the Coupang Partners affiliate API
type CoupangConfig struct {
	// AccessKey is the partner access key
	AccessKey string
	// SecretKey is the partner secret used for HMAC signing
	SecretKey string
	// APIBaseURL is the base URL of the Coupang API gateway
	APIBaseURL string
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int
}

const (
	// CoupangProductionAPIURL is the production API gateway
	CoupangProductionAPIURL = "https://api-gateway.coupang.com"
	// CoupangSignatureAlgorithm is the algorithm name sent in the Authorization header
	CoupangSignatureAlgorithm = "HmacSHA256"
)

// Errors for Coupang configuration
var (
	ErrCoupangConfigMissingAccessKey = errors.New("coupang: access key is required")
	ErrCoupangConfigMissingSecretKey = errors.New("coupang: secret key is required")
)

// NewCoupangConfig creates a new Coupang configuration with defaults
func NewCoupangConfig(accessKey, secretKey string) *CoupangConfig {
	return &CoupangConfig{
		AccessKey:      accessKey,
		SecretKey:      secretKey,
		APIBaseURL:     CoupangProductionAPIURL,
		TimeoutSeconds: 30,
	}
}

// Validate validates the Coupang configuration
func (c *CoupangConfig) Validate() error {
	if c.AccessKey == "" {
		return ErrCoupangConfigMissingAccessKey
	}
	if c.SecretKey == "" {
		return ErrCoupangConfigMissingSecretKey
	}
	if c.APIBaseURL == "" {
		c.APIBaseURL = CoupangProductionAPIURL
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	return nil
}

// Sign generates the request signature.
// The signed message is the Unix millisecond timestamp, the HTTP method and the request
// path (with query string) concatenated, and the digest is hex encoded HMAC-SHA256.
func (c *CoupangConfig) Sign(timestampMillis int64, method, path string) string {
	message := strconv.FormatInt(timestampMillis, 10) + method + path

	h := hmac.New(sha256.New, []byte(c.SecretKey))
	h.Write([]byte(message))
	return hex.EncodeToString(h.Sum(nil))
}

// AuthorizationHeader builds the CEA Authorization header value
func (c *CoupangConfig) AuthorizationHeader(timestampMillis int64, signature string) string {
	return fmt.Sprintf("CEA algorithm=%s, access-key=%s, signed-date=%d, signature=%s",
		CoupangSignatureAlgorithm, c.AccessKey, timestampMillis, signature)
}
