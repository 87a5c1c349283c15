package signer

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/WebHash-eth/sui-domain/internal/suins"
)

// Bridge relays transactions to a wallet bridge that owns the signing UX.
// The bridge receives {transaction, options} and answers with
// {digest, effects} or {error}.
type Bridge struct {
	url    string
	client *http.Client
	logger *slog.Logger
}

var _ suins.Signer = (*Bridge)(nil)

func NewBridge(url string, timeout time.Duration, logger *slog.Logger) *Bridge {
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Bridge{
		url:    url,
		client: &http.Client{Timeout: timeout},
		logger: logger.With("component", "signer_bridge"),
	}
}

func (b *Bridge) SignAndExecute(ctx context.Context, req suins.ExecuteRequest) (*suins.ExecuteResponse, error) {
	if req.Transaction == nil {
		return nil, errors.New("transaction is required")
	}
	var out suins.ExecuteResponse
	if err := postJSON(ctx, b.client, b.url, req, &out); err != nil {
		return nil, err
	}
	b.logger.Debug("bridge executed transaction", "digest", out.Digest)
	return &out, nil
}
