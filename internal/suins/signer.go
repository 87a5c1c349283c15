package suins

import (
	"context"

	"github.com/WebHash-eth/sui-domain/internal/chain/sui/ptb"
)

// Signer is the wallet capability: it signs a transaction and submits it.
// Key material never reaches this package.
type Signer interface {
	SignAndExecute(ctx context.Context, req ExecuteRequest) (*ExecuteResponse, error)
}

type ExecuteOptions struct {
	ShowEffects bool `json:"showEffects"`
}

type ExecuteRequest struct {
	Transaction *ptb.Transaction `json:"transaction"`
	Options     ExecuteOptions   `json:"options"`
}

type ExecuteResponse struct {
	Digest  string   `json:"digest"`
	Effects *Effects `json:"effects,omitempty"`
}

type Effects struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}
