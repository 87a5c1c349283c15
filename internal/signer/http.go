// Package signer provides suins.Signer implementations. Neither holds key
// material: Bridge forwards the whole transaction to a wallet bridge, and
// Executor builds the bytes itself and asks an Authorizer for a signature.
package signer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/WebHash-eth/sui-domain/internal/tracing"
)

const maxResponseBytes = 1 << 20

// StatusError is returned when an endpoint answers with a non-2xx status and
// no error message of its own.
type StatusError struct {
	Endpoint   string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status %d", e.Endpoint, e.StatusCode)
}

func (e *StatusError) HTTPStatus() int {
	return e.StatusCode
}

type errorBody struct {
	Error string `json:"error"`
}

// postJSON posts payload and decodes a 2xx body into out. When the endpoint
// reports {"error": "..."} that message is returned unwrapped, so wallet
// wording such as "user rejected" reaches the caller intact.
func postJSON(ctx context.Context, client *http.Client, endpoint string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	tracing.Inject(ctx, req.Header)

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("post %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var eb errorBody
	if len(raw) > 0 && json.Unmarshal(raw, &eb) == nil && eb.Error != "" {
		return errors.New(eb.Error)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Endpoint: endpoint, StatusCode: resp.StatusCode}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
