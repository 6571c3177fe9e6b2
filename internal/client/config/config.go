package config

import (
	"time"

	"github.com/dmitrijs2005/nftmarket/internal/configx"
)

const (
	StoreIPFS = "ipfs"
	StoreS3   = "s3"
)

// Config holds runtime settings for the marketplace terminal client.
type Config struct {
	Network string
	// RPCURL overrides the endpoint derived from Network.
	RPCURL        string
	EthRPCURL     string
	PolygonRPCURL string

	TokenAddress  string
	MarketAddress string

	KeystorePath string
	PrivateKey   string

	ContentStore      string
	IPFSAPIURL        string
	IPFSProjectID     string
	IPFSProjectSecret string
	GatewayURL        string
	S3Bucket          string
	S3Region          string
	S3Endpoint        string
	S3AccessKey       string
	S3SecretKey       string
	UploadTimeout     time.Duration
	FetchTimeout      time.Duration

	DatabaseDriver string
	DatabaseDSN    string

	// GatewayAddr is the host:port of the remote gallery service.
	GatewayAddr          string
	GatewayCheckInterval time.Duration

	LogLevel string
}

// LoadDefaults populates c with defaults for a local development chain.
func (c *Config) LoadDefaults() {
	c.Network = "localhost"
	c.ContentStore = StoreIPFS
	c.IPFSAPIURL = "https://ipfs.infura.io:5001"
	c.GatewayURL = "https://ipfs.io"
	c.S3Region = "us-east-1"
	c.UploadTimeout = 2 * time.Minute
	c.FetchTimeout = 30 * time.Second
	c.DatabaseDriver = "sqlite"
	c.DatabaseDSN = "market.db"
	c.GatewayAddr = "127.0.0.1:50051"
	c.GatewayCheckInterval = 30 * time.Second
	c.LogLevel = "info"
}

// LoadConfig applies defaults, then the environment (.env included), the
// JSON file and finally command-line flags. Later sources win.
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
