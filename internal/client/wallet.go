package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gagliardetto/solana-go/rpc/jsonrpc"

	"github.com/AlexZinkM/nft-marketplace/internal/logger"
)

const (
	methodAccounts        = "eth_accounts"        // non-interactive, already authorized accounts
	methodRequestAccounts = "eth_requestAccounts" // interactive, may prompt the user
	methodChainID         = "eth_chainId"

	// EIP-1193 provider error code for "user rejected the request"
	codeUserRejected = 4001
)

// ErrUserRejected is returned when the wallet user declines an authorization request
var ErrUserRejected = errors.New("user rejected the request")

// WalletClient talks to an EIP-1193 wallet provider exposed over JSON-RPC 2.0 / HTTP
type WalletClient struct {
	rpcClient jsonrpc.RPCClient
	rpcURL    string
}

// NewWalletClient creates a wallet client for the given provider endpoint.
// timeout bounds every call, including interactive ones.
func NewWalletClient(rpcURL string, timeout time.Duration) *WalletClient {
	return &WalletClient{
		rpcClient: jsonrpc.NewClientWithOpts(rpcURL, &jsonrpc.RPCClientOpts{
			HTTPClient: &http.Client{Timeout: timeout},
		}),
		rpcURL: rpcURL,
	}
}

// Accounts returns the accounts the provider has already authorized (eth_accounts)
func (c *WalletClient) Accounts(ctx context.Context) ([]string, error) {
	return c.accounts(ctx, methodAccounts)
}

// RequestAccounts asks the provider to authorize accounts (eth_requestAccounts)
func (c *WalletClient) RequestAccounts(ctx context.Context) ([]string, error) {
	return c.accounts(ctx, methodRequestAccounts)
}

// ChainID returns the hex chain id reported by the provider (eth_chainId)
func (c *WalletClient) ChainID(ctx context.Context) (string, error) {
	var chainID string
	if err := c.rpcClient.CallForInto(ctx, &chainID, methodChainID, []interface{}{}); err != nil {
		return "", mapRPCError(methodChainID, err)
	}
	return chainID, nil
}

// Close releases the underlying transport
func (c *WalletClient) Close() error {
	return c.rpcClient.Close()
}

func (c *WalletClient) accounts(ctx context.Context, method string) ([]string, error) {
	start := time.Now()
	logger.Debug("Calling %s on %s", method, c.rpcURL)

	var accounts []string
	if err := c.rpcClient.CallForInto(ctx, &accounts, method, []interface{}{}); err != nil {
		logger.Debug("%s failed after %v: %v", method, time.Since(start), err)
		return nil, mapRPCError(method, err)
	}

	logger.Debug("%s returned %d account(s) in %v", method, len(accounts), time.Since(start))
	return accounts, nil
}

// mapRPCError turns provider error codes into sentinel errors
func mapRPCError(method string, err error) error {
	var rpcErr *jsonrpc.RPCError
	if errors.As(err, &rpcErr) && rpcErr.Code == codeUserRejected {
		return fmt.Errorf("%s: %w: %s", method, ErrUserRejected, rpcErr.Message)
	}
	return fmt.Errorf("%s failed: %w", method, err)
}
