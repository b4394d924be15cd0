package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/AlexZinkM/nft-marketplace/internal/common"
)

// Config contains all configuration parameters for the application.
type Config struct {
	Port     string `envconfig:"PORT" default:"8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Empty WalletRPCURL means no wallet provider is installed.
	WalletRPCURL  string        `envconfig:"WALLET_RPC_URL"`
	WalletTimeout time.Duration `envconfig:"WALLET_TIMEOUT" default:"30s"`

	IPFSAPIURL        string        `envconfig:"IPFS_API_URL" default:"https://ipfs.infura.io:5001"`
	IPFSGatewayURL    string        `envconfig:"IPFS_GATEWAY_URL" default:"https://ipfs.infura.io/ipfs"`
	IPFSProjectID     string        `envconfig:"IPFS_PROJECT_ID"`
	IPFSProjectSecret string        `envconfig:"IPFS_PROJECT_SECRET"`
	UploadTimeout     time.Duration `envconfig:"UPLOAD_TIMEOUT" default:"60s"`
	MaxUploadBytes    int64         `envconfig:"MAX_UPLOAD_BYTES" default:"104857600"`

	NFTCurrency   string `envconfig:"NFT_CURRENCY" default:"ETH"`
	MarketAddress string `envconfig:"MARKET_ADDRESS"`
}

// cfg is the global configuration instance
var cfg *Config

// Init loads .env files (if any) and then configuration from environment variables.
func Init() error {
	LoadEnvironment()

	c, err := Load()
	if err != nil {
		return err
	}
	cfg = c
	return nil
}

// Load processes environment variables into a new Config without touching the global one.
func Load() (*Config, error) {
	c := &Config{}
	if err := envconfig.Process("", c); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks values envconfig cannot express with tags.
func (c *Config) Validate() error {
	if c.IPFSAPIURL == "" {
		return fmt.Errorf("IPFS_API_URL cannot be empty")
	}
	if c.IPFSGatewayURL == "" {
		return fmt.Errorf("IPFS_GATEWAY_URL cannot be empty")
	}
	if c.NFTCurrency == "" {
		return fmt.Errorf("NFT_CURRENCY cannot be empty")
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive, got: %d", c.MaxUploadBytes)
	}
	if (c.IPFSProjectID == "") != (c.IPFSProjectSecret == "") {
		return fmt.Errorf("IPFS_PROJECT_ID and IPFS_PROJECT_SECRET must be set together")
	}
	if c.MarketAddress != "" && !common.IsAddress(c.MarketAddress) {
		return fmt.Errorf("MARKET_ADDRESS is not a valid address: %s", c.MarketAddress)
	}
	return nil
}

// LoadEnvironment loads variables from a .env file in the working directory
// and next to the executable. Variables already set in the environment win.
func LoadEnvironment() {
	_ = godotenv.Load()

	if execPath, err := os.Executable(); err == nil {
		_ = godotenv.Load(filepath.Join(filepath.Dir(execPath), ".env"))
	}
}

// Get returns the global configuration instance.
// Panics if Init() was not called.
func Get() *Config {
	if cfg == nil {
		panic("config not initialized, call Init() first")
	}
	return cfg
}

// GetPort returns port from configuration
func GetPort() string {
	return Get().Port
}

// GetWalletRPCURL returns the wallet provider endpoint, empty when no wallet is installed
func GetWalletRPCURL() string {
	return Get().WalletRPCURL
}

// GetIPFSGatewayURL returns the read gateway used to build retrieval URLs
func GetIPFSGatewayURL() string {
	return Get().IPFSGatewayURL
}

// GetNFTCurrency returns the native currency label
func GetNFTCurrency() string {
	return Get().NFTCurrency
}

// GetMarketAddress returns the marketplace contract address in checksum form, empty when unset
func GetMarketAddress() string {
	addr, err := common.NormalizeAddress(Get().MarketAddress)
	if err != nil {
		return ""
	}
	return addr
}
