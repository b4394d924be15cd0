package nft

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexZinkM/nft-marketplace/internal/client"
	"github.com/AlexZinkM/nft-marketplace/internal/session"
)

const testGateway = "https://ipfs.infura.io/ipfs"

type mockProvider struct {
	accounts       []string
	requested      []string
	accountsErr    error
	requestErr     error
	accountsCalls  int
	requestedCalls int
}

func (m *mockProvider) Accounts(ctx context.Context) ([]string, error) {
	m.accountsCalls++
	return m.accounts, m.accountsErr
}

func (m *mockProvider) RequestAccounts(ctx context.Context) ([]string, error) {
	m.requestedCalls++
	return m.requested, m.requestErr
}

type mockNotifier struct {
	messages []string
}

func (m *mockNotifier) Alert(message string) {
	m.messages = append(m.messages, message)
}

type mockUploader struct {
	path     string
	err      error
	received string
}

func (m *mockUploader) Add(ctx context.Context, r io.Reader) (string, error) {
	data, _ := io.ReadAll(r)
	m.received = string(data)
	return m.path, m.err
}

func TestCheckWalletConnection_NoProvider(t *testing.T) {
	notifier := &mockNotifier{}
	c := New(WithNotifier(notifier))

	var changes int
	c.Subscribe(func(session.State) { changes++ })

	account, err := c.CheckWalletConnection(context.Background())

	assert.ErrorIs(t, err, ErrProviderUnavailable)
	assert.Empty(t, account)
	assert.Empty(t, c.CurrentAccount())
	assert.Equal(t, 0, changes)
	assert.Equal(t, []string{installWalletMessage}, notifier.messages)
}

func TestConnectWallet_NoProvider(t *testing.T) {
	notifier := &mockNotifier{}
	reloads := 0
	c := New(WithNotifier(notifier), WithReloader(func(context.Context) error {
		reloads++
		return nil
	}))

	_, err := c.ConnectWallet(context.Background())

	assert.ErrorIs(t, err, ErrProviderUnavailable)
	assert.Empty(t, c.CurrentAccount())
	assert.Len(t, notifier.messages, 1)
	assert.Equal(t, 0, reloads)
}

func TestCheckWalletConnection_Authorized(t *testing.T) {
	provider := &mockProvider{accounts: []string{"0xABC"}}
	notifier := &mockNotifier{}
	c := New(WithProvider(provider), WithNotifier(notifier))

	account, err := c.CheckWalletConnection(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "0xABC", account)
	assert.Equal(t, "0xABC", c.CurrentAccount())
	assert.Equal(t, session.StatusConnected, c.State().Status)
	assert.Equal(t, 1, provider.accountsCalls)
	assert.Equal(t, 0, provider.requestedCalls, "check must not prompt the user")
	assert.Empty(t, notifier.messages)
}

func TestCheckWalletConnection_FirstAccountWins(t *testing.T) {
	provider := &mockProvider{accounts: []string{"0xABC", "0x999"}}
	c := New(WithProvider(provider))

	_, err := c.CheckWalletConnection(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "0xABC", c.CurrentAccount())
}

func TestCheckWalletConnection_EmptyList(t *testing.T) {
	provider := &mockProvider{accounts: []string{}}
	c := New(WithProvider(provider))

	account, err := c.CheckWalletConnection(context.Background())

	assert.ErrorIs(t, err, ErrNoAccounts)
	assert.Empty(t, account)
	assert.Empty(t, c.CurrentAccount())
	assert.Equal(t, session.StatusDisconnected, c.State().Status)
}

func TestCheckWalletConnection_ProviderError(t *testing.T) {
	provider := &mockProvider{accountsErr: errors.New("boom")}
	c := New(WithProvider(provider))

	_, err := c.CheckWalletConnection(context.Background())

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoAccounts)
	assert.Empty(t, c.CurrentAccount())
}

func TestConnectWallet_Success(t *testing.T) {
	provider := &mockProvider{requested: []string{"0xDEF"}}
	reloads := 0
	c := New(WithProvider(provider), WithReloader(func(context.Context) error {
		reloads++
		return nil
	}))

	account, err := c.ConnectWallet(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "0xDEF", account)
	assert.Equal(t, "0xDEF", c.CurrentAccount())
	assert.Equal(t, 1, reloads)
	assert.Equal(t, 1, provider.requestedCalls)
}

func TestConnectWallet_Rejected(t *testing.T) {
	provider := &mockProvider{requestErr: fmt.Errorf("eth_requestAccounts: %w: User rejected the request.", client.ErrUserRejected)}
	reloads := 0
	c := New(WithProvider(provider), WithReloader(func(context.Context) error {
		reloads++
		return nil
	}))

	var account string
	var err error
	assert.NotPanics(t, func() {
		account, err = c.ConnectWallet(context.Background())
	})

	assert.ErrorIs(t, err, ErrAuthorizationRejected)
	assert.Empty(t, account)
	assert.Empty(t, c.CurrentAccount())
	assert.Equal(t, 0, reloads)
}

func TestConnectWallet_EmptyList(t *testing.T) {
	provider := &mockProvider{requested: nil}
	c := New(WithProvider(provider))

	_, err := c.ConnectWallet(context.Background())
	assert.ErrorIs(t, err, ErrNoAccounts)
	assert.Empty(t, c.CurrentAccount())
}

func TestConnectWallet_DefaultReloadResyncs(t *testing.T) {
	provider := &mockProvider{requested: []string{"0xDEF"}, accounts: []string{"0xDEF"}}
	c := New(WithProvider(provider))

	var statuses []session.Status
	c.Subscribe(func(st session.State) { statuses = append(statuses, st.Status) })

	account, err := c.ConnectWallet(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "0xDEF", account)
	assert.Equal(t, 1, provider.accountsCalls, "reload re-runs the wallet check")
	assert.Equal(t, []session.Status{
		session.StatusConnected,
		session.StatusDisconnected,
		session.StatusConnected,
	}, statuses)
}

func TestConnectWallet_ReloadError(t *testing.T) {
	provider := &mockProvider{requested: []string{"0xDEF"}}
	c := New(WithProvider(provider), WithReloader(func(context.Context) error {
		return errors.New("reload failed")
	}))

	account, err := c.ConnectWallet(context.Background())

	assert.Error(t, err)
	assert.Equal(t, "0xDEF", account)
	assert.Equal(t, "0xDEF", c.CurrentAccount())
}

func TestStart(t *testing.T) {
	t.Run("no wallet is not fatal", func(t *testing.T) {
		c := New(WithNotifier(&mockNotifier{}))
		assert.NoError(t, c.Start(context.Background()))
	})

	t.Run("no accounts is not fatal", func(t *testing.T) {
		c := New(WithProvider(&mockProvider{}))
		assert.NoError(t, c.Start(context.Background()))
	})

	t.Run("authorized account is loaded", func(t *testing.T) {
		c := New(WithProvider(&mockProvider{accounts: []string{"0xABC"}}))
		require.NoError(t, c.Start(context.Background()))
		assert.Equal(t, "0xABC", c.CurrentAccount())
	})

	t.Run("provider failure is reported", func(t *testing.T) {
		c := New(WithProvider(&mockProvider{accountsErr: errors.New("boom")}))
		assert.Error(t, c.Start(context.Background()))
	})
}

func TestUploadToIPFS_Success(t *testing.T) {
	uploader := &mockUploader{path: "Qm123"}
	c := New(WithUploader(uploader, testGateway))

	url, err := c.UploadToIPFS(context.Background(), strings.NewReader("image bytes"))
	require.NoError(t, err)

	assert.Equal(t, testGateway+"/Qm123", url)
	assert.Equal(t, "image bytes", uploader.received)
}

func TestUploadToIPFS_Failure(t *testing.T) {
	uploader := &mockUploader{err: errors.New("gateway rejected")}
	c := New(WithUploader(uploader, testGateway))

	var url string
	var err error
	assert.NotPanics(t, func() {
		url, err = c.UploadToIPFS(context.Background(), strings.NewReader("image bytes"))
	})

	assert.Empty(t, url)
	assert.ErrorIs(t, err, ErrUploadFailed)
}

func TestUploadToIPFS_NoBackend(t *testing.T) {
	c := New()

	url, err := c.UploadToIPFS(context.Background(), strings.NewReader("x"))
	assert.Empty(t, url)
	assert.ErrorIs(t, err, ErrUploadFailed)
}

func TestUploadToIPFS_EmptyPath(t *testing.T) {
	c := New(WithUploader(&mockUploader{}, testGateway))

	url, err := c.UploadToIPFS(context.Background(), strings.NewReader("x"))
	assert.Empty(t, url)
	assert.ErrorIs(t, err, ErrUploadFailed)
}

func TestSurface(t *testing.T) {
	c := New(WithProvider(&mockProvider{accounts: []string{"0xABC"}}), WithCurrency("MATIC"))

	assert.Equal(t, Surface{NFTCurrency: "MATIC"}, c.Surface())

	_, err := c.CheckWalletConnection(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Surface{NFTCurrency: "MATIC", CurrentAccount: "0xABC"}, c.Surface())
}

func TestNew_Defaults(t *testing.T) {
	c := New(WithCurrency(""))

	assert.Equal(t, DefaultCurrency, c.NFTCurrency())
	assert.False(t, c.HasProvider())
	assert.Nil(t, c.Provider())
}
