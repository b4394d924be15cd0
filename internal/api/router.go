package api

import (
	"errors"
	"net/http"

	"github.com/AlexZinkM/nft-marketplace/internal/handler"

	_ "github.com/AlexZinkM/nft-marketplace/docs"

	httpSwagger "github.com/swaggo/http-swagger"
)

// SetupRouter sets up router with handlers
func SetupRouter(nftHandler *handler.NFTHandler) (http.Handler, error) {
	if nftHandler == nil {
		return nil, errors.New("nft handler is nil")
	}

	mux := http.NewServeMux()

	// Swagger UI
	mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	// NFT endpoints
	mux.HandleFunc("/nft/session", nftHandler.Session)
	mux.HandleFunc("/nft/session/qr", nftHandler.QR)
	mux.HandleFunc("/nft/wallet/check", nftHandler.Check)
	mux.HandleFunc("/nft/wallet/connect", nftHandler.Connect)
	mux.HandleFunc("/nft/upload", nftHandler.Upload)

	return mux, nil
}
