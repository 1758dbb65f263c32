package config

import (
	"github.com/spf13/viper"
)

// Environment variable names for marketplace credentials. They carry no prefix so
// existing deployments keep working.
const (
	EnvCoupangAccessKey  = "COUPANG_ACCESS_KEY"
	EnvCoupangSecretKey  = "COUPANG_SECRET_KEY"
	EnvNaverClientID     = "NAVER_CLIENT_ID"
	EnvNaverClientSecret = "NAVER_CLIENT_SECRET"
)

// Credentials is a snapshot of the marketplace API keys
type Credentials struct {
	CoupangAccessKey  string
	CoupangSecretKey  string
	NaverClientID     string
	NaverClientSecret string
}

// HasCoupang reports whether both Coupang keys are present
func (c Credentials) HasCoupang() bool {
	return c.CoupangAccessKey != "" && c.CoupangSecretKey != ""
}

// HasNaver reports whether both Naver keys are present
func (c Credentials) HasNaver() bool {
	return c.NaverClientID != "" && c.NaverClientSecret != ""
}

// EnvCredentials reads credentials from the process environment on every call,
// so rotated keys are picked up without a restart.
type EnvCredentials struct {
	v *viper.Viper
}

// NewEnvCredentials binds the credential keys to their environment variables
func NewEnvCredentials() *EnvCredentials {
	v := viper.New()
	_ = v.BindEnv("coupang.access_key", EnvCoupangAccessKey)
	_ = v.BindEnv("coupang.secret_key", EnvCoupangSecretKey)
	_ = v.BindEnv("naver.client_id", EnvNaverClientID)
	_ = v.BindEnv("naver.client_secret", EnvNaverClientSecret)
	return &EnvCredentials{v: v}
}

// Current returns the credentials as they are set right now
func (e *EnvCredentials) Current() Credentials {
	return Credentials{
		CoupangAccessKey:  e.v.GetString("coupang.access_key"),
		CoupangSecretKey:  e.v.GetString("coupang.secret_key"),
		NaverClientID:     e.v.GetString("naver.client_id"),
		NaverClientSecret: e.v.GetString("naver.client_secret"),
	}
}
