package signer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/WebHash-eth/sui-domain/internal/chain/sui/ptb"
	"github.com/WebHash-eth/sui-domain/internal/chain/sui/rpc"
	"github.com/WebHash-eth/sui-domain/internal/suins"
)

const DefaultGasBudget uint64 = 50_000_000

// Executor builds transaction bytes on the fullnode, gets them signed by an
// Authorizer and submits the result. Only single move-call transactions are
// supported.
type Executor struct {
	client    rpc.RPCClient
	auth      Authorizer
	sender    string
	gasBudget uint64
	logger    *slog.Logger
}

var _ suins.Signer = (*Executor)(nil)

func NewExecutor(client rpc.RPCClient, auth Authorizer, sender string, gasBudget uint64, logger *slog.Logger) *Executor {
	if gasBudget == 0 {
		gasBudget = DefaultGasBudget
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{
		client:    client,
		auth:      auth,
		sender:    sender,
		gasBudget: gasBudget,
		logger:    logger.With("component", "signer_executor"),
	}
}

// Sender is the address every transaction is built and signed for.
func (e *Executor) Sender() string {
	return e.sender
}

func (e *Executor) SignAndExecute(ctx context.Context, req suins.ExecuteRequest) (*suins.ExecuteResponse, error) {
	call, err := moveCallRequest(req.Transaction)
	if err != nil {
		return nil, err
	}
	call.Signer = e.sender
	call.GasBudget = e.gasBudget

	built, err := e.client.UnsafeMoveCall(ctx, call)
	if err != nil {
		return nil, fmt.Errorf("build transaction: %w", err)
	}
	// The digest is fixed by the bytes; the node must report the same one.
	expected, err := ptb.TransactionDigestBase64(built.TxBytes)
	if err != nil {
		return nil, fmt.Errorf("build transaction: %w", err)
	}

	sig, err := e.auth.Authorize(ctx, e.sender, built.TxBytes)
	if err != nil {
		return nil, err
	}
	if err := ptb.VerifySignature(e.sender, built.TxBytes, sig); err != nil {
		if !errors.Is(err, ptb.ErrUnsupportedScheme) {
			return nil, fmt.Errorf("authorizer signature: %w", err)
		}
		e.logger.Debug("skipping local signature check", "reason", err)
	}

	resp, err := e.client.ExecuteTransactionBlock(ctx, built.TxBytes, []string{sig},
		&rpc.TransactionBlockResponseOptions{ShowEffects: req.Options.ShowEffects})
	if err != nil {
		return nil, fmt.Errorf("execute transaction: %w", err)
	}
	if resp.Digest != "" && resp.Digest != expected {
		return nil, fmt.Errorf("execute transaction: node reported digest %s, signed %s", resp.Digest, expected)
	}

	out := &suins.ExecuteResponse{Digest: resp.Digest}
	if resp.Effects != nil {
		out.Effects = &suins.Effects{
			Status: resp.Effects.Status.Status,
			Error:  resp.Effects.Status.Error,
		}
	}
	e.logger.Debug("transaction executed", "digest", resp.Digest, "sender", e.sender)
	return out, nil
}

// moveCallRequest flattens a single-call transaction into unsafe_moveCall
// arguments: object inputs by id, pure inputs as their decoded string.
// unsafe_moveCall takes objects by id only. The node looks up the initial
// shared version and reads mutability from the function signature, so the
// SharedObject version and Mutable fields do not reach the wire here.
func moveCallRequest(tx *ptb.Transaction) (rpc.MoveCallRequest, error) {
	if tx == nil {
		return rpc.MoveCallRequest{}, errors.New("transaction is required")
	}
	if len(tx.Commands) != 1 || tx.Commands[0].MoveCall == nil {
		return rpc.MoveCallRequest{}, fmt.Errorf("want exactly one move call, have %d commands", len(tx.Commands))
	}
	inputs, err := tx.CallInputs(0)
	if err != nil {
		return rpc.MoveCallRequest{}, err
	}

	args := make([]any, 0, len(inputs))
	for i, in := range inputs {
		if in.Pure != nil {
			s, err := in.PureString()
			if err != nil {
				return rpc.MoveCallRequest{}, fmt.Errorf("argument %d: %w", i, err)
			}
			args = append(args, s)
			continue
		}
		id := in.ObjectID()
		if id == "" {
			return rpc.MoveCallRequest{}, fmt.Errorf("argument %d: unsupported input", i)
		}
		args = append(args, id)
	}

	call := tx.Commands[0].MoveCall
	return rpc.MoveCallRequest{
		PackageID:     call.Package,
		Module:        call.Module,
		Function:      call.Function,
		TypeArguments: call.TypeArguments,
		Arguments:     args,
	}, nil
}
