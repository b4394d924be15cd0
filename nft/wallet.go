package nft

import (
	"context"
	"errors"
	"fmt"

	"github.com/AlexZinkM/nft-marketplace/internal/client"
	"github.com/AlexZinkM/nft-marketplace/internal/logger"
)

// Start runs the automatic wallet check once; a missing wallet or an
// unauthorized session is expected at startup and is not an error.
func (c *Context) Start(ctx context.Context) error {
	_, err := c.CheckWalletConnection(ctx)
	if errors.Is(err, ErrNoAccounts) || errors.Is(err, ErrProviderUnavailable) {
		return nil
	}
	return err
}

// CheckWalletConnection looks up already-authorized accounts without prompting.
// On success the session holds the first account, which is also returned.
func (c *Context) CheckWalletConnection(ctx context.Context) (string, error) {
	if !c.ensureProvider() {
		return "", ErrProviderUnavailable
	}

	accounts, err := c.provider.Accounts(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to check wallet connection: %w", err)
	}

	if len(accounts) == 0 {
		logger.Info("No accounts found.")
		return "", ErrNoAccounts
	}

	c.store.SetAccount(accounts[0])
	logger.Debug("Wallet connected: %s", accounts[0])
	return accounts[0], nil
}

// ConnectWallet asks the user to authorize the application, stores the first
// account and then runs the reloader exactly once.
func (c *Context) ConnectWallet(ctx context.Context) (string, error) {
	if !c.ensureProvider() {
		return "", ErrProviderUnavailable
	}

	accounts, err := c.provider.RequestAccounts(ctx)
	if err != nil {
		if errors.Is(err, client.ErrUserRejected) {
			logger.Info("Wallet connection rejected by user")
			return "", fmt.Errorf("%w: %v", ErrAuthorizationRejected, err)
		}
		return "", fmt.Errorf("failed to connect wallet: %w", err)
	}

	if len(accounts) == 0 {
		return "", ErrNoAccounts
	}

	account := accounts[0]
	c.store.SetAccount(account)
	logger.Info("Wallet connected: %s", account)

	if err := c.reload(ctx); err != nil {
		logger.Error("Failed to reload session after connect: %v", err)
		return account, fmt.Errorf("reload after connect: %w", err)
	}

	return c.CurrentAccount(), nil
}

// ensureProvider alerts the user once per call when no wallet is installed
func (c *Context) ensureProvider() bool {
	if c.provider != nil {
		return true
	}
	if c.notifier != nil {
		c.notifier.Alert(installWalletMessage)
	} else {
		logger.Warn("%s", installWalletMessage)
	}
	return false
}

// resync is the default reloader: drop the session and re-evaluate it from the provider
func (c *Context) resync(ctx context.Context) error {
	c.store.Reset()
	_, err := c.CheckWalletConnection(ctx)
	return err
}
