package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ipfs/boxo/files"
	shell "github.com/ipfs/go-ipfs-api"

	"github.com/AlexZinkM/nft-marketplace/internal/logger"
)

const (
	defaultIPFSAPI = "https://ipfs.infura.io:5001"
)

// ErrPayloadTooLarge is returned when an upload exceeds the configured limit
var ErrPayloadTooLarge = errors.New("payload too large")

// IPFSClient uploads payloads through the IPFS HTTP API (/api/v0/add)
type IPFSClient struct {
	shell    *shell.Shell
	apiURL   string
	maxBytes int64
	pin      bool
}

// IPFSOption configures IPFSClient.
type IPFSOption func(*ipfsOptions)

type ipfsOptions struct {
	projectID     string
	projectSecret string
	timeout       time.Duration
	maxBytes      int64
	pin           bool
}

// WithProjectCredentials sets basic-auth credentials (Infura project id/secret)
func WithProjectCredentials(id, secret string) IPFSOption {
	return func(o *ipfsOptions) {
		o.projectID = id
		o.projectSecret = secret
	}
}

// WithUploadTimeout bounds each upload request
func WithUploadTimeout(d time.Duration) IPFSOption {
	return func(o *ipfsOptions) {
		o.timeout = d
	}
}

// WithMaxBytes rejects payloads larger than n bytes; n <= 0 disables the check
func WithMaxBytes(n int64) IPFSOption {
	return func(o *ipfsOptions) {
		o.maxBytes = n
	}
}

// WithPin controls whether added content is pinned on the node
func WithPin(pin bool) IPFSOption {
	return func(o *ipfsOptions) {
		o.pin = pin
	}
}

// NewIPFSClient creates a client for the IPFS HTTP API at apiURL
func NewIPFSClient(apiURL string, opts ...IPFSOption) *IPFSClient {
	if apiURL == "" {
		apiURL = defaultIPFSAPI
	}

	o := ipfsOptions{timeout: 60 * time.Second, pin: true}
	for _, opt := range opts {
		opt(&o)
	}

	httpClient := &http.Client{Timeout: o.timeout}
	if o.projectID != "" {
		httpClient.Transport = &basicAuthTransport{
			username: o.projectID,
			password: o.projectSecret,
			base:     http.DefaultTransport,
		}
	}

	return &IPFSClient{
		shell:    shell.NewShellWithClient(apiURL, httpClient),
		apiURL:   apiURL,
		maxBytes: o.maxBytes,
		pin:      o.pin,
	}
}

// Add stores the payload and returns its content path (CID)
func (c *IPFSClient) Add(ctx context.Context, r io.Reader) (string, error) {
	if r == nil {
		return "", errors.New("nil payload")
	}
	if c.maxBytes > 0 {
		data, err := io.ReadAll(io.LimitReader(r, c.maxBytes+1))
		if err != nil {
			return "", fmt.Errorf("read payload: %w", err)
		}
		if int64(len(data)) > c.maxBytes {
			return "", fmt.Errorf("ipfs add: %w (limit %d bytes)", ErrPayloadTooLarge, c.maxBytes)
		}
		r = bytes.NewReader(data)
	}

	start := time.Now()
	logger.Debug("Adding payload to IPFS via %s", c.apiURL)

	// same request shell.Add builds, but bound to ctx
	dir := files.NewSliceDirectory([]files.DirEntry{files.FileEntry("", files.NewReaderFile(r))})
	var out struct {
		Hash string
	}
	err := c.shell.Request("add").
		Option("pin", c.pin).
		Body(files.NewMultiFileReader(dir, true, false)).
		Exec(ctx, &out)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", fmt.Errorf("ipfs add: %w", err)
	}
	if out.Hash == "" {
		return "", errors.New("ipfs add: empty content identifier in response")
	}

	logger.Debug("Added %s to IPFS in %v", out.Hash, time.Since(start))
	return out.Hash, nil
}

// basicAuthTransport adds basic-auth to every request
type basicAuthTransport struct {
	username string
	password string
	base     http.RoundTripper
}

func (t *basicAuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.SetBasicAuth(t.username, t.password)
	return t.base.RoundTrip(req)
}
