package config

import "github.com/dmitrijs2005/nftmarket/internal/configx"

func parseEnv(cfg *Config) {
	if err := configx.LoadDotEnv(); err != nil {
		panic(err)
	}

	configx.StringFromEnv(&cfg.SecretKey, "NFTMARKET_SECRET_KEY")
	configx.StringFromEnv(&cfg.EthRPCURL, "ETH_RPC_URL")
	configx.StringFromEnv(&cfg.PolygonRPCURL, "POLYGON_RPC_URL")
	configx.StringFromEnv(&cfg.TokenAddress, "NFTMARKET_TOKEN_ADDRESS")
	configx.StringFromEnv(&cfg.MarketAddress, "NFTMARKET_MARKET_ADDRESS")
}
