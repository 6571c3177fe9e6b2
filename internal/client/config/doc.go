// Package config loads runtime configuration for the marketplace client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables, optionally seeded from ./.env: IPFS_PROJECT_ID,
//     IPFS_PROJECT_SECRET, ETH_RPC_URL, POLYGON_RPC_URL, PRIVATE_KEY,
//     NFTMARKET_TOKEN_ADDRESS, NFTMARKET_MARKET_ADDRESS, NFTMARKET_KEYSTORE,
//     NFTMARKET_S3_ACCESS_KEY, NFTMARKET_S3_SECRET_KEY.
//  3. Optional JSON file selected with -c or -config.
//  4. Command-line flags.
//
// # JSON schema
//
//	{
//	  "network": "mumbai",
//	  "token_address": "0x...",
//	  "market_address": "0x...",
//	  "content_store": "ipfs",
//	  "upload_timeout": "2m",
//	  "database_dsn": "market.db"
//	}
//
// Networks map to RPC endpoints the same way for every command: localhost
// is http://127.0.0.1:8545, goerli and mainnet use ETH_RPC_URL, mumbai and
// polygon use POLYGON_RPC_URL.
package config
