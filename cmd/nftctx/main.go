package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/AlexZinkM/nft-marketplace/internal/api"
	"github.com/AlexZinkM/nft-marketplace/internal/client"
	"github.com/AlexZinkM/nft-marketplace/internal/common"
	"github.com/AlexZinkM/nft-marketplace/internal/config"
	"github.com/AlexZinkM/nft-marketplace/internal/handler"
	"github.com/AlexZinkM/nft-marketplace/internal/logger"
	"github.com/AlexZinkM/nft-marketplace/internal/notify"
	"github.com/AlexZinkM/nft-marketplace/internal/session"
	"github.com/AlexZinkM/nft-marketplace/nft"
)

const shutdownTimeout = 10 * time.Second

// @title           NFT Marketplace API
// @version         1.0
// @description     Wallet session and IPFS upload service for the NFT marketplace.
// @BasePath        /
func main() {
	rootCmd := &cobra.Command{
		Use:   "nftctx",
		Short: "NFT marketplace wallet and storage context",
		Long:  `nftctx tracks the connected wallet account and uploads marketplace assets to IPFS.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Init(); err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			logger.Init(config.Get().LogLevel)
			return nil
		},
		SilenceUsage: true,
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Print the already-authorized wallet account",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, cleanup := newContext(notify.NewTerminalNotifier())
			defer cleanup()

			account, err := c.CheckWalletConnection(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Println(account)
			return nil
		},
	}

	connectCmd := &cobra.Command{
		Use:   "connect",
		Short: "Ask the wallet to authorize the marketplace and print the account",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, cleanup := newContext(notify.NewTerminalNotifier())
			defer cleanup()

			account, err := c.ConnectWallet(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Println(account)
			return nil
		},
	}

	uploadCmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a file to IPFS and print its URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open file: %w", err)
			}
			defer f.Close()

			c, cleanup := newContext(notify.NewTerminalNotifier())
			defer cleanup()

			url, err := c.UploadToIPFS(cmd.Context(), f)
			if err != nil {
				return err
			}
			fmt.Println(url)
			return nil
		},
	}

	rootCmd.AddCommand(serveCmd, checkCmd, connectCmd, uploadCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.Fatal("Failed to execute command: %v", err)
	}
}

// newContext wires config, clients and notifier into an nft.Context
func newContext(notifier nft.Notifier) (*nft.Context, func()) {
	cfg := config.Get()

	opts := []nft.Option{
		nft.WithNotifier(notifier),
		nft.WithCurrency(config.GetNFTCurrency()),
	}

	cleanup := func() {}
	// keep the provider a nil interface when no wallet is configured
	if rpcURL := config.GetWalletRPCURL(); rpcURL != "" {
		wallet := client.NewWalletClient(rpcURL, cfg.WalletTimeout)
		opts = append(opts, nft.WithProvider(wallet))
		cleanup = func() {
			if err := wallet.Close(); err != nil {
				logger.Debug("Failed to close wallet client: %v", err)
			}
		}
	}

	ipfsOpts := []client.IPFSOption{
		client.WithUploadTimeout(cfg.UploadTimeout),
		client.WithMaxBytes(cfg.MaxUploadBytes),
	}
	if cfg.IPFSProjectID != "" {
		ipfsOpts = append(ipfsOpts, client.WithProjectCredentials(cfg.IPFSProjectID, cfg.IPFSProjectSecret))
	}
	uploader := client.NewIPFSClient(cfg.IPFSAPIURL, ipfsOpts...)
	opts = append(opts, nft.WithUploader(uploader, config.GetIPFSGatewayURL()))

	return nft.New(opts...), cleanup
}

func serve(ctx context.Context) error {
	c, cleanup := newContext(notify.LogNotifier{})
	defer cleanup()

	if err := c.Start(ctx); err != nil {
		logger.Error("Startup wallet check failed: %v", err)
	}

	c.Subscribe(func(st session.State) {
		if st.Connected() {
			logger.Info("Session connected: %s", common.ShortenAddress(st.CurrentAccount))
			return
		}
		logger.Info("Session disconnected")
	})

	if market := config.GetMarketAddress(); market != "" {
		logger.Info("Marketplace contract: %s", market)
	}

	nftHandler, err := handler.NewNFTHandler(c, config.Get().MaxUploadBytes)
	if err != nil {
		return err
	}
	router, err := api.SetupRouter(nftHandler)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + config.GetPort(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting on :%s", config.GetPort())
		logger.Info("Swagger UI: http://localhost:%s/swagger/index.html", config.GetPort())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
