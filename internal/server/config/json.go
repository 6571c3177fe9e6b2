package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/nftmarket/internal/configx"
	"github.com/dmitrijs2005/nftmarket/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON unmarshalling.
// It uses timex.Duration for interval fields, which allows parsing both
// string values such as "1s" and integer nanoseconds.
type JsonConfig struct {
	EndpointAddrGRPC            string         `json:"endpoint_addr_grpc"`
	SecretKey                   string         `json:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	ChallengeValidityDuration   timex.Duration `json:"challenge_validity_duration"`
	Network                     string         `json:"network"`
	RPCURL                      string         `json:"rpc_url"`
	TokenAddress                string         `json:"token_address"`
	MarketAddress               string         `json:"market_address"`
	FetchTimeout                timex.Duration `json:"fetch_timeout"`
	LogLevel                    string         `json:"log_level"`
}

// parseJson loads values from the file given with -c or -config. Only
// fields present in the file replace the current ones. If the file cannot
// be read or contains invalid JSON, the function panics.
func parseJson(config *Config) {
	jsonConfigFile := configx.ConfigFile()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	for dst, v := range map[*string]string{
		&config.EndpointAddrGRPC: c.EndpointAddrGRPC,
		&config.SecretKey:        c.SecretKey,
		&config.Network:          c.Network,
		&config.RPCURL:           c.RPCURL,
		&config.TokenAddress:     c.TokenAddress,
		&config.MarketAddress:    c.MarketAddress,
		&config.LogLevel:         c.LogLevel,
	} {
		if v != "" {
			*dst = v
		}
	}

	if c.AccessTokenValidityDuration.Duration != 0 {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.ChallengeValidityDuration.Duration != 0 {
		config.ChallengeValidityDuration = c.ChallengeValidityDuration.Duration
	}
	if c.FetchTimeout.Duration != 0 {
		config.FetchTimeout = c.FetchTimeout.Duration
	}
}
