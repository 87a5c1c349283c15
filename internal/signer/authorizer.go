package signer

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// Authorizer produces a serialized Sui signature (flag || sig || pubkey,
// base64) over transaction bytes for sender.
type Authorizer interface {
	Authorize(ctx context.Context, sender, txBytes string) (string, error)
}

// RemoteAuthorizer asks an external signing service for signatures.
type RemoteAuthorizer struct {
	url    string
	client *http.Client
}

func NewRemoteAuthorizer(url string, timeout time.Duration) *RemoteAuthorizer {
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &RemoteAuthorizer{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

type authorizeRequest struct {
	Sender  string `json:"sender"`
	TxBytes string `json:"tx_bytes"`
}

type authorizeResponse struct {
	Signature string `json:"signature"`
}

func (a *RemoteAuthorizer) Authorize(ctx context.Context, sender, txBytes string) (string, error) {
	var out authorizeResponse
	if err := postJSON(ctx, a.client, a.url, authorizeRequest{Sender: sender, TxBytes: txBytes}, &out); err != nil {
		return "", err
	}
	if out.Signature == "" {
		return "", errors.New("signing service returned no signature")
	}
	return out.Signature, nil
}
