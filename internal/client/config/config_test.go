package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "localhost", c.Network)
	assert.Equal(t, StoreIPFS, c.ContentStore)
	assert.Equal(t, "https://ipfs.infura.io:5001", c.IPFSAPIURL)
	assert.Equal(t, "sqlite", c.DatabaseDriver)
	assert.Equal(t, 30*time.Second, c.FetchTimeout)
}

func TestRPCEndpoint(t *testing.T) {
	c := Config{EthRPCURL: "https://eth.example", PolygonRPCURL: "https://poly.example"}

	tests := []struct {
		network string
		want    string
		wantErr bool
	}{
		{"localhost", "http://127.0.0.1:8545", false},
		{"goerli", "https://eth.example", false},
		{"mainnet", "https://eth.example", false},
		{"mumbai", "https://poly.example", false},
		{"polygon", "https://poly.example", false},
		{"ropsten", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.network, func(t *testing.T) {
			c.Network = tt.network
			got, err := c.RPCEndpoint()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("missing env", func(t *testing.T) {
		_, err := (&Config{Network: "goerli"}).RPCEndpoint()
		require.ErrorContains(t, err, "ETH_RPC_URL")
	})

	t.Run("explicit url wins", func(t *testing.T) {
		got, err := (&Config{Network: "ropsten", RPCURL: "http://node"}).RPCEndpoint()
		require.NoError(t, err)
		assert.Equal(t, "http://node", got)
	})
}

func TestLoadConfig_Precedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	wd, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Chdir(wd) })
	require.NoError(t, os.Chdir(t.TempDir()))

	t.Setenv("NFTMARKET_KEYSTORE", "env.json")
	t.Setenv("NFTMARKET_TOKEN_ADDRESS", "0xenv")
	t.Setenv("IPFS_PROJECT_ID", "proj")

	cfgPath := filepath.Join(t.TempDir(), "cfg.json")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`{"keystore":"json.json","network":"mumbai"}`), 0o600))

	os.Args = []string{"client", "-c", cfgPath, "-n", "polygon"}

	cfg := LoadConfig()

	assert.Equal(t, "proj", cfg.IPFSProjectID)     // env over default
	assert.Equal(t, "0xenv", cfg.TokenAddress)     // env, not in json
	assert.Equal(t, "json.json", cfg.KeystorePath) // json over env
	assert.Equal(t, "polygon", cfg.Network)        // flag over json
	assert.Equal(t, "market.db", cfg.DatabaseDSN)  // default
}
