// Package config handles configuration for the gallery gateway, including
// defaults, the environment, a JSON overlay and command-line flags.
package config

import (
	"time"

	"github.com/dmitrijs2005/nftmarket/internal/configx"
)

// Config holds runtime settings for the gallery gateway.
//
// Fields:
//   - EndpointAddrGRPC: bind address for the public gRPC endpoint.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use test defaults in prod.
//   - AccessTokenValidityDuration: access token lifetime.
//   - ChallengeValidityDuration: how long an issued login challenge may be used.
//   - Network / RPCURL: chain endpoint selection, see configx.ResolveRPC.
//   - TokenAddress / MarketAddress: deployed contract addresses.
//   - FetchTimeout: per-request timeout for metadata documents.
type Config struct {
	EndpointAddrGRPC            string
	SecretKey                   string
	AccessTokenValidityDuration time.Duration
	ChallengeValidityDuration   time.Duration
	Network                     string
	RPCURL                      string
	EthRPCURL                   string
	PolygonRPCURL               string
	TokenAddress                string
	MarketAddress               string
	FetchTimeout                time.Duration
	LogLevel                    string
}

// LoadDefaults populates Config with development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddrGRPC = ":50051"
	c.SecretKey = "secretKey"
	c.AccessTokenValidityDuration = 15 * time.Minute
	c.ChallengeValidityDuration = 5 * time.Minute
	c.Network = "localhost"
	c.FetchTimeout = 30 * time.Second
	c.LogLevel = "info"
}

// LoadConfig builds a Config by applying defaults, then the environment,
// an optional JSON file and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

// RPCEndpoint resolves the JSON-RPC URL for the selected network.
func (c *Config) RPCEndpoint() (string, error) {
	return configx.ResolveRPC(c.Network, c.RPCURL, c.EthRPCURL, c.PolygonRPCURL)
}
