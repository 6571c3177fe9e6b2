package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/nftmarket/internal/configx"
)

// parseFlags populates Config from command-line flags:
//
//	-n string   network (localhost, goerli, mainnet, mumbai, polygon)
//	-r string   JSON-RPC URL, overrides the network default
//	-k string   keystore file
//	-s string   content store backend (ipfs, s3)
//	-d string   listing journal DSN
//	-g string   gallery gateway address
//	-l string   log level
func parseFlags(cfg *Config) {
	args := configx.FilterArgs(os.Args[1:], []string{"-n", "-r", "-k", "-s", "-d", "-g", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.Network, "n", cfg.Network, "network name")
	fs.StringVar(&cfg.RPCURL, "r", cfg.RPCURL, "JSON-RPC endpoint URL")
	fs.StringVar(&cfg.KeystorePath, "k", cfg.KeystorePath, "keystore file")
	fs.StringVar(&cfg.ContentStore, "s", cfg.ContentStore, "content store backend (ipfs, s3)")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "listing journal DSN")
	fs.StringVar(&cfg.GatewayAddr, "g", cfg.GatewayAddr, "gallery gateway address")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
