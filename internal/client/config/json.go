package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/nftmarket/internal/configx"
	"github.com/dmitrijs2005/nftmarket/internal/timex"
)

// JsonConfig is a DTO used only for unmarshalling. Durations accept "30s"
// or integer nanoseconds. Secrets are not read from JSON.
type JsonConfig struct {
	Network        string         `json:"network"`
	RPCURL         string         `json:"rpc_url"`
	TokenAddress   string         `json:"token_address"`
	MarketAddress  string         `json:"market_address"`
	KeystorePath   string         `json:"keystore"`
	ContentStore   string         `json:"content_store"`
	IPFSAPIURL     string         `json:"ipfs_api_url"`
	GatewayURL     string         `json:"gateway_url"`
	S3Bucket       string         `json:"s3_bucket"`
	S3Region       string         `json:"s3_region"`
	S3Endpoint     string         `json:"s3_endpoint"`
	UploadTimeout  timex.Duration `json:"upload_timeout"`
	FetchTimeout   timex.Duration `json:"fetch_timeout"`
	DatabaseDriver string         `json:"database_driver"`
	DatabaseDSN    string         `json:"database_dsn"`
	GatewayAddr    string         `json:"gateway_addr"`
	GatewayCheck   timex.Duration `json:"gateway_check_interval"`
	LogLevel       string         `json:"log_level"`
}

// parseJson overlays cfg with the non-empty values of the file named by -c
// or -config. It panics on read or decode errors.
func parseJson(cfg *Config) {
	path := configx.ConfigFile()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	setDuration := func(dst *time.Duration, v timex.Duration) {
		if v.Duration != 0 {
			*dst = v.Duration
		}
	}

	set(&cfg.Network, jc.Network)
	set(&cfg.RPCURL, jc.RPCURL)
	set(&cfg.TokenAddress, jc.TokenAddress)
	set(&cfg.MarketAddress, jc.MarketAddress)
	set(&cfg.KeystorePath, jc.KeystorePath)
	set(&cfg.ContentStore, jc.ContentStore)
	set(&cfg.IPFSAPIURL, jc.IPFSAPIURL)
	set(&cfg.GatewayURL, jc.GatewayURL)
	set(&cfg.S3Bucket, jc.S3Bucket)
	set(&cfg.S3Region, jc.S3Region)
	set(&cfg.S3Endpoint, jc.S3Endpoint)
	setDuration(&cfg.UploadTimeout, jc.UploadTimeout)
	setDuration(&cfg.FetchTimeout, jc.FetchTimeout)
	set(&cfg.DatabaseDriver, jc.DatabaseDriver)
	set(&cfg.DatabaseDSN, jc.DatabaseDSN)
	set(&cfg.GatewayAddr, jc.GatewayAddr)
	setDuration(&cfg.GatewayCheckInterval, jc.GatewayCheck)
	set(&cfg.LogLevel, jc.LogLevel)
}
