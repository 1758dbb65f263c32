package main

import (
	"github.com/shoprank/backend/internal/domain/integration"
	"github.com/shoprank/backend/internal/infrastructure/config"
	"github.com/shoprank/backend/internal/infrastructure/ecommerce"
	"github.com/shoprank/backend/internal/interfaces/http/handler"
)

// credentialSource yields the current marketplace keys
type credentialSource interface {
	Current() config.Credentials
}

func coupangConfigProvider(creds credentialSource, upstream config.UpstreamConfig) ecommerce.CoupangConfigProvider {
	return func() *ecommerce.CoupangConfig {
		current := creds.Current()
		cfg := ecommerce.NewCoupangConfig(current.CoupangAccessKey, current.CoupangSecretKey)
		cfg.APIBaseURL = upstream.CoupangBaseURL
		cfg.TimeoutSeconds = upstream.TimeoutSeconds
		return cfg
	}
}

func naverConfigProvider(creds credentialSource, upstream config.UpstreamConfig) ecommerce.NaverConfigProvider {
	return func() *ecommerce.NaverConfig {
		current := creds.Current()
		cfg := ecommerce.NewNaverConfig(current.NaverClientID, current.NaverClientSecret)
		cfg.APIBaseURL = upstream.NaverBaseURL
		cfg.UserAgent = upstream.NaverUserAgent
		cfg.TimeoutSeconds = upstream.TimeoutSeconds
		return cfg
	}
}

func platformStatus(creds credentialSource) handler.PlatformStatus {
	return func() map[integration.PlatformCode]bool {
		current := creds.Current()
		return map[integration.PlatformCode]bool{
			integration.PlatformCodeCoupang: current.HasCoupang(),
			integration.PlatformCodeNaver:   current.HasNaver(),
		}
	}
}
