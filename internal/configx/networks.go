package configx

import "fmt"

// LocalRPCURL is the endpoint of a local development node.
const LocalRPCURL = "http://127.0.0.1:8545"

// ResolveRPC returns the JSON-RPC endpoint for network. An explicit
// override always wins; ethURL and polygonURL come from ETH_RPC_URL and
// POLYGON_RPC_URL.
func ResolveRPC(network, override, ethURL, polygonURL string) (string, error) {
	if override != "" {
		return override, nil
	}

	var url, env string
	switch network {
	case "localhost":
		return LocalRPCURL, nil
	case "goerli", "mainnet":
		url, env = ethURL, "ETH_RPC_URL"
	case "mumbai", "polygon":
		url, env = polygonURL, "POLYGON_RPC_URL"
	default:
		return "", fmt.Errorf("unknown network %q", network)
	}

	if url == "" {
		return "", fmt.Errorf("network %s needs %s", network, env)
	}
	return url, nil
}
