package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("WALLET_RPC_URL", "")

	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", c.Port)
	assert.Equal(t, "ETH", c.NFTCurrency)
	assert.Equal(t, "https://ipfs.infura.io:5001", c.IPFSAPIURL)
	assert.Equal(t, "https://ipfs.infura.io/ipfs", c.IPFSGatewayURL)
	assert.Equal(t, 30*time.Second, c.WalletTimeout)
	assert.Equal(t, 60*time.Second, c.UploadTimeout)
	assert.Equal(t, int64(100<<20), c.MaxUploadBytes)
	assert.Empty(t, c.WalletRPCURL)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("WALLET_RPC_URL", "http://127.0.0.1:8545")
	t.Setenv("WALLET_TIMEOUT", "5s")
	t.Setenv("NFT_CURRENCY", "MATIC")

	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", c.Port)
	assert.Equal(t, "http://127.0.0.1:8545", c.WalletRPCURL)
	assert.Equal(t, 5*time.Second, c.WalletTimeout)
	assert.Equal(t, "MATIC", c.NFTCurrency)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"bad duration", "UPLOAD_TIMEOUT", "soon"},
		{"non-positive upload size", "MAX_UPLOAD_BYTES", "0"},
		{"empty gateway", "IPFS_GATEWAY_URL", ""},
		{"id without secret", "IPFS_PROJECT_ID", "project"},
		{"bad market address", "MARKET_ADDRESS", "0x1234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestGet_PanicsBeforeInit(t *testing.T) {
	saved := cfg
	cfg = nil
	defer func() { cfg = saved }()

	assert.Panics(t, func() { Get() })
}

func TestGetMarketAddress(t *testing.T) {
	saved := cfg
	defer func() { cfg = saved }()

	cfg = &Config{MarketAddress: "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"}
	assert.Equal(t, "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", GetMarketAddress())

	cfg = &Config{}
	assert.Empty(t, GetMarketAddress())
}
