package model

// SessionResponse represents response for GET /nft/session
type SessionResponse struct {
	NFTCurrency     string `json:"nftCurrency"`
	CurrentAccount  string `json:"currentAccount"`
	ChecksumAccount string `json:"checksumAccount,omitempty"` // EIP-55 form, only for 20-byte hex accounts
	ShortAccount    string `json:"shortAccount,omitempty"`
	Connected       bool   `json:"connected"`
	WalletInstalled bool   `json:"walletInstalled"`
	ChainID         string `json:"chainId,omitempty"`
}

// WalletResponse represents response for POST /nft/wallet/check and /nft/wallet/connect
type WalletResponse struct {
	Account      string `json:"account"`
	ShortAccount string `json:"shortAccount"`
}
