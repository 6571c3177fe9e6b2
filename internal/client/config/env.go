package config

import "github.com/dmitrijs2005/nftmarket/internal/configx"

// parseEnv overlays values from the process environment, seeded from a
// .env file in the working directory when one exists.
func parseEnv(cfg *Config) {
	if err := configx.LoadDotEnv(); err != nil {
		panic(err)
	}

	configx.StringFromEnv(&cfg.IPFSProjectID, "IPFS_PROJECT_ID", "NEXT_PUBLIC_IPFS_PROJECT_ID")
	configx.StringFromEnv(&cfg.IPFSProjectSecret, "IPFS_PROJECT_SECRET", "NEXT_PUBLIC_IPFS_PROJECT_SECRET")
	configx.StringFromEnv(&cfg.EthRPCURL, "ETH_RPC_URL")
	configx.StringFromEnv(&cfg.PolygonRPCURL, "POLYGON_RPC_URL")
	configx.StringFromEnv(&cfg.PrivateKey, "PRIVATE_KEY")
	configx.StringFromEnv(&cfg.TokenAddress, "NFTMARKET_TOKEN_ADDRESS")
	configx.StringFromEnv(&cfg.MarketAddress, "NFTMARKET_MARKET_ADDRESS")
	configx.StringFromEnv(&cfg.KeystorePath, "NFTMARKET_KEYSTORE")
	configx.StringFromEnv(&cfg.S3AccessKey, "NFTMARKET_S3_ACCESS_KEY")
	configx.StringFromEnv(&cfg.S3SecretKey, "NFTMARKET_S3_SECRET_KEY")
}
