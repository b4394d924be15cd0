package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/skip2/go-qrcode"

	"github.com/AlexZinkM/nft-marketplace/internal/client"
	"github.com/AlexZinkM/nft-marketplace/internal/common"
	"github.com/AlexZinkM/nft-marketplace/internal/logger"
	"github.com/AlexZinkM/nft-marketplace/internal/model"
	"github.com/AlexZinkM/nft-marketplace/nft"
)

const (
	qrSize = 256

	// upper bound for the eth_chainId lookup on GET /nft/session
	defaultChainIDTimeout = 2 * time.Second
)

// chainIDer is implemented by providers that can report the connected chain
type chainIDer interface {
	ChainID(ctx context.Context) (string, error)
}

// NFTHandler exposes the marketplace context over HTTP
type NFTHandler struct {
	nft            *nft.Context
	maxUploadBytes int64
	chainIDTimeout time.Duration
}

// NewNFTHandler creates a new NFTHandler; maxUploadBytes <= 0 disables the request size limit
func NewNFTHandler(c *nft.Context, maxUploadBytes int64) (*NFTHandler, error) {
	if c == nil {
		return nil, errors.New("nft context is nil")
	}

	return &NFTHandler{
		nft:            c,
		maxUploadBytes: maxUploadBytes,
		chainIDTimeout: defaultChainIDTimeout,
	}, nil
}

// Session handles GET /nft/session
// @Summary      Get session surface
// @Description  Returns the native currency and the connected account (empty when disconnected)
// @Tags         nft
// @Produce      json
// @Success      200  {object}  model.SessionResponse
// @Router       /nft/session [get]
func (h *NFTHandler) Session(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	surface := h.nft.Surface()
	resp := model.SessionResponse{
		NFTCurrency:     surface.NFTCurrency,
		CurrentAccount:  surface.CurrentAccount,
		Connected:       surface.CurrentAccount != "",
		WalletInstalled: h.nft.HasProvider(),
	}

	if resp.Connected {
		resp.ShortAccount = common.ShortenAddress(surface.CurrentAccount)
		if checksum, err := common.NormalizeAddress(surface.CurrentAccount); err == nil {
			resp.ChecksumAccount = checksum
		}
		if p, ok := h.nft.Provider().(chainIDer); ok {
			ctx, cancel := context.WithTimeout(r.Context(), h.chainIDTimeout)
			chainID, err := p.ChainID(ctx)
			cancel()
			if err != nil {
				logger.Debug("Failed to read chain id: %v", err)
			}
			resp.ChainID = chainID
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// Check handles POST /nft/wallet/check
// @Summary      Check wallet connection
// @Description  Loads an already-authorized account without prompting the user
// @Tags         nft
// @Produce      json
// @Success      200  {object}  model.WalletResponse
// @Failure      404  {object}  model.ErrorResponse
// @Failure      503  {object}  model.ErrorResponse
// @Router       /nft/wallet/check [post]
func (h *NFTHandler) Check(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	account, err := h.nft.CheckWalletConnection(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.WalletResponse{
		Account:      account,
		ShortAccount: common.ShortenAddress(account),
	})
}

// Connect handles POST /nft/wallet/connect
// @Summary      Connect wallet
// @Description  Asks the wallet to authorize the marketplace and resynchronizes the session
// @Tags         nft
// @Produce      json
// @Success      200  {object}  model.WalletResponse
// @Failure      403  {object}  model.ErrorResponse
// @Failure      404  {object}  model.ErrorResponse
// @Failure      503  {object}  model.ErrorResponse
// @Router       /nft/wallet/connect [post]
func (h *NFTHandler) Connect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	account, err := h.nft.ConnectWallet(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.WalletResponse{
		Account:      account,
		ShortAccount: common.ShortenAddress(account),
	})
}

// Upload handles POST /nft/upload
// @Summary      Upload file to IPFS
// @Description  Stores the multipart "file" field on IPFS and returns its gateway URL
// @Tags         nft
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "File to upload"
// @Success      200   {object}  model.UploadResponse
// @Failure      400   {object}  model.ErrorResponse
// @Failure      502   {object}  model.ErrorResponse
// @Router       /nft/upload [post]
func (h *NFTHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	if h.maxUploadBytes > 0 {
		// multipart framing adds a little on top of the file itself
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+64*1024)
	}

	file, _, err := r.FormFile(model.UploadFormField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeErrorResponse(w, http.StatusRequestEntityTooLarge, model.CodeBadRequest,
				fmt.Sprintf("upload exceeds %d bytes", h.maxUploadBytes))
			return
		}
		writeErrorResponse(w, http.StatusBadRequest, model.CodeBadRequest,
			fmt.Sprintf("invalid upload, expected multipart field %q: %v", model.UploadFormField, err))
		return
	}
	defer file.Close()

	url, err := h.nft.UploadToIPFS(r.Context(), file)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.UploadResponse{URL: url})
}

// QR handles GET /nft/session/qr
// @Summary      Account QR code
// @Description  Returns a PNG QR code of the connected account
// @Tags         nft
// @Produce      png
// @Success      200
// @Failure      404  {object}  model.ErrorResponse
// @Router       /nft/session/qr [get]
func (h *NFTHandler) QR(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	account := h.nft.CurrentAccount()
	if account == "" {
		writeError(w, nft.ErrNoAccounts)
		return
	}

	qr, err := qrcode.New(account, qrcode.Medium)
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, model.CodeInternal, fmt.Sprintf("failed to create QR code: %v", err))
		return
	}

	png, err := qr.PNG(qrSize)
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, model.CodeInternal, fmt.Sprintf("failed to generate PNG: %v", err))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

// writeError maps context errors to HTTP statuses
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, nft.ErrProviderUnavailable):
		writeErrorResponse(w, http.StatusServiceUnavailable, model.CodeProviderUnavailable, err.Error())
	case errors.Is(err, nft.ErrNoAccounts):
		writeErrorResponse(w, http.StatusNotFound, model.CodeNoAccounts, err.Error())
	case errors.Is(err, nft.ErrAuthorizationRejected):
		writeErrorResponse(w, http.StatusForbidden, model.CodeAuthorizationRejected, err.Error())
	case errors.Is(err, client.ErrPayloadTooLarge):
		writeErrorResponse(w, http.StatusRequestEntityTooLarge, model.CodeBadRequest, err.Error())
	case errors.Is(err, nft.ErrUploadFailed):
		writeErrorResponse(w, http.StatusBadGateway, model.CodeUploadFailed, err.Error())
	default:
		writeErrorResponse(w, http.StatusInternalServerError, model.CodeInternal, err.Error())
	}
}

func writeErrorResponse(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, model.ErrorResponse{Error: message, Code: code})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
