// Package nft is the marketplace's wallet and storage context: it tracks the
// connected wallet account for the session and uploads assets to IPFS.
package nft

import (
	"context"
	"errors"
	"io"

	"github.com/AlexZinkM/nft-marketplace/internal/session"
)

const (
	// DefaultCurrency is the chain's native currency label
	DefaultCurrency = "ETH"

	installWalletMessage = "Please install MetaMask"
)

var (
	// ErrProviderUnavailable means no wallet provider is installed
	ErrProviderUnavailable = errors.New("wallet provider unavailable")
	// ErrNoAccounts means the provider returned an empty account list
	ErrNoAccounts = errors.New("no accounts found")
	// ErrAuthorizationRejected means the user declined the connect request
	ErrAuthorizationRejected = errors.New("wallet authorization rejected")
	// ErrUploadFailed wraps every storage failure
	ErrUploadFailed = errors.New("upload to IPFS failed")
)

// Provider is the wallet capability (EIP-1193 subset)
type Provider interface {
	// Accounts returns already-authorized accounts without prompting
	Accounts(ctx context.Context) ([]string, error)
	// RequestAccounts asks the user to authorize accounts
	RequestAccounts(ctx context.Context) ([]string, error)
}

// Uploader stores a payload and returns its content path
type Uploader interface {
	Add(ctx context.Context, r io.Reader) (string, error)
}

// Notifier shows a blocking, user-facing alert
type Notifier interface {
	Alert(message string)
}

// ReloadFunc resynchronizes derived state after a successful connect
type ReloadFunc func(ctx context.Context) error

// Surface is the read-only view handed to presentation code
type Surface struct {
	NFTCurrency    string `json:"nftCurrency"`
	CurrentAccount string `json:"currentAccount"`
}

// Context is the session-lifetime wallet and storage state holder
type Context struct {
	provider   Provider
	uploader   Uploader
	notifier   Notifier
	reload     ReloadFunc
	store      *session.Store
	currency   string
	gatewayURL string
}

// Option configures Context.
type Option func(*Context)

// WithProvider sets the wallet provider; a nil provider means no wallet is installed
func WithProvider(p Provider) Option {
	return func(c *Context) {
		c.provider = p
	}
}

// WithUploader sets the storage backend and the gateway base used for retrieval URLs
func WithUploader(u Uploader, gatewayURL string) Option {
	return func(c *Context) {
		c.uploader = u
		c.gatewayURL = gatewayURL
	}
}

// WithNotifier sets where ProviderUnavailable alerts go
func WithNotifier(n Notifier) Option {
	return func(c *Context) {
		c.notifier = n
	}
}

// WithReloader replaces the default post-connect resynchronization
func WithReloader(fn ReloadFunc) Option {
	return func(c *Context) {
		c.reload = fn
	}
}

// WithCurrency sets the native currency label
func WithCurrency(currency string) Option {
	return func(c *Context) {
		if currency != "" {
			c.currency = currency
		}
	}
}

// WithStore shares an existing session store
func WithStore(s *session.Store) Option {
	return func(c *Context) {
		if s != nil {
			c.store = s
		}
	}
}

// New creates a Context in the Disconnected state
func New(opts ...Option) *Context {
	c := &Context{
		store:    session.NewStore(),
		currency: DefaultCurrency,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.reload == nil {
		c.reload = c.resync
	}
	return c
}

// CurrentAccount returns the connected account, empty when disconnected
func (c *Context) CurrentAccount() string {
	return c.store.Get().CurrentAccount
}

// NFTCurrency returns the native currency label
func (c *Context) NFTCurrency() string {
	return c.currency
}

// State returns the full session snapshot
func (c *Context) State() session.State {
	return c.store.Get()
}

// Surface returns the values presentation code renders
func (c *Context) Surface() Surface {
	return Surface{
		NFTCurrency:    c.currency,
		CurrentAccount: c.CurrentAccount(),
	}
}

// Subscribe registers fn for session changes; call the returned func to stop
func (c *Context) Subscribe(fn func(session.State)) func() {
	return c.store.Subscribe(fn)
}

// HasProvider reports whether a wallet provider is installed
func (c *Context) HasProvider() bool {
	return c.provider != nil
}

// Provider returns the installed wallet provider, nil when none
func (c *Context) Provider() Provider {
	return c.provider
}
