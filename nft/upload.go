package nft

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/AlexZinkM/nft-marketplace/internal/common"
	"github.com/AlexZinkM/nft-marketplace/internal/logger"
)

// UploadToIPFS stores file and returns its retrieval URL (<gateway>/<cid>).
// Any failure yields an empty URL and an error wrapping ErrUploadFailed.
func (c *Context) UploadToIPFS(ctx context.Context, file io.Reader) (string, error) {
	if c.uploader == nil {
		logger.Error("Error uploading file to IPFS.")
		return "", fmt.Errorf("%w: no storage backend configured", ErrUploadFailed)
	}
	if file == nil {
		return "", fmt.Errorf("%w: empty file", ErrUploadFailed)
	}

	path, err := c.uploader.Add(ctx, file)
	if err != nil {
		logger.Error("Error uploading file to IPFS.")
		logger.Debug("IPFS upload error: %v", err)
		return "", fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}
	if path == "" {
		logger.Error("Error uploading file to IPFS.")
		return "", fmt.Errorf("%w: %w", ErrUploadFailed, errors.New("empty content path"))
	}

	return common.JoinURL(c.gatewayURL, path), nil
}
