package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/WebHash-eth/sui-domain/internal/chain/ratelimit"
	"github.com/WebHash-eth/sui-domain/internal/circuitbreaker"
	"github.com/WebHash-eth/sui-domain/internal/tracing"
)

const (
	userAgent = "suilink/1"

	// Owned-object pages with full content stay well below this.
	maxResponseBytes = 8 << 20
)

// RPCClient abstracts the Sui JSON-RPC interface for testing.
type RPCClient interface {
	GetOwnedObjects(ctx context.Context, owner string, query ObjectResponseQuery, cursor *string, limit int) (*ObjectsPage, error)
	UnsafeMoveCall(ctx context.Context, req MoveCallRequest) (*TransactionBytes, error)
	ExecuteTransactionBlock(ctx context.Context, txBytes string, signatures []string, opts *TransactionBlockResponseOptions) (*TransactionBlockResponse, error)
}

var _ RPCClient = (*Client)(nil)

type Client struct {
	httpClient *http.Client
	rpcURL     string
	network    string
	requestID  atomic.Int64
	logger     *slog.Logger
	limiter    *ratelimit.Limiter
	breaker    *circuitbreaker.Breaker
}

func NewClient(rpcURL, network string, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		rpcURL:     rpcURL,
		network:    network,
		logger:     logger.With("component", "sui_rpc"),
	}
}

// SetRateLimiter sets the RPC rate limiter for this client.
func (c *Client) SetRateLimiter(l *ratelimit.Limiter) {
	c.limiter = l
}

// SetBreaker routes every call through b. JSON-RPC level errors such as
// invalid params do not count as endpoint failures.
func (c *Client) SetBreaker(b *circuitbreaker.Breaker) {
	c.breaker = b
}

// IsEndpointFailure reports whether err reflects an unhealthy endpoint rather
// than a request the node rejected.
func IsEndpointFailure(err error) bool {
	var rpcErr *RPCError
	return err != nil && !errors.As(err, &rpcErr) && !errors.Is(err, context.Canceled)
}

func (c *Client) call(ctx context.Context, method string, params []interface{}) (json.RawMessage, error) {
	start := time.Now()
	var result json.RawMessage
	var err error
	if c.breaker != nil {
		err = c.breaker.Call(func() error {
			var callErr error
			result, callErr = c.do(ctx, method, params)
			return callErr
		})
	} else {
		result, err = c.do(ctx, method, params)
	}
	ratelimit.RecordRPCCall(c.network, method, err, time.Since(start))
	if err != nil {
		c.logger.Debug("rpc call failed", "method", method, "error", err)
	}
	return result, err
}

func (c *Client) do(ctx context.Context, method string, params []interface{}) (json.RawMessage, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req := c.newRequest(method, params)
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.rpcURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("User-Agent", userAgent)
	tracing.Inject(ctx, httpReq.Header)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if len(respBody) > maxResponseBytes {
		return nil, fmt.Errorf("%s: response exceeds %d bytes", method, maxResponseBytes)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var rpcResp Response
	if err := json.Unmarshal(respBody, &rpcResp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	if rpcResp.Error != nil {
		return nil, rpcResp.Error
	}
	if rpcResp.ID != req.ID {
		return nil, fmt.Errorf("%s: response id %d does not match request id %d", method, rpcResp.ID, req.ID)
	}

	return rpcResp.Result, nil
}

func (c *Client) newRequest(method string, params []interface{}) Request {
	id := int(c.requestID.Add(1))
	return Request{
		JSONRPC: "2.0",
		ID:      id,
		Method:  method,
		Params:  params,
	}
}
