package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/nftmarket/internal/configx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   gRPC bind address (e.g., ":50051")
//	-s string   JWT HMAC secret key
//	-t int      access token validity, minutes
//	-n string   network name
//	-r string   JSON-RPC endpoint URL
//	-l string   log level
func parseFlags(config *Config) {
	args := configx.FilterArgs(os.Args[1:], []string{"-a", "-s", "-t", "-n", "-r", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	accessTokenValidityDuration := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access_token_validity_duration (in minutes)")

	fs.StringVar(&config.Network, "n", config.Network, "network name")
	fs.StringVar(&config.RPCURL, "r", config.RPCURL, "JSON-RPC endpoint URL")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Minute
}
