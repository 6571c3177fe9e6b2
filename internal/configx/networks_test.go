package configx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveRPC(t *testing.T) {
	tests := []struct {
		name     string
		network  string
		override string
		want     string
		wantErr  string
	}{
		{name: "localhost", network: "localhost", want: LocalRPCURL},
		{name: "goerli", network: "goerli", want: "https://eth"},
		{name: "mainnet", network: "mainnet", want: "https://eth"},
		{name: "mumbai", network: "mumbai", want: "https://poly"},
		{name: "polygon", network: "polygon", want: "https://poly"},
		{name: "override", network: "nowhere", override: "http://node", want: "http://node"},
		{name: "unknown", network: "nowhere", wantErr: "unknown network"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveRPC(tt.network, tt.override, "https://eth", "https://poly")
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveRPC_MissingEndpoint(t *testing.T) {
	_, err := ResolveRPC("mumbai", "", "https://eth", "")
	require.ErrorContains(t, err, "POLYGON_RPC_URL")
}
