package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
)

const (
	MethodGetOwnedObjects         = "suix_getOwnedObjects"
	MethodUnsafeMoveCall          = "unsafe_moveCall"
	MethodExecuteTransactionBlock = "sui_executeTransactionBlock"

	// RequestTypeWaitForLocalExecution makes the fullnode return only after
	// the effects are applied locally.
	RequestTypeWaitForLocalExecution = "WaitForLocalExecution"
)

// GetOwnedObjects returns one page of objects owned by owner. A nil cursor
// starts from the beginning; limit <= 0 leaves the page size to the node.
func (c *Client) GetOwnedObjects(ctx context.Context, owner string, query ObjectResponseQuery, cursor *string, limit int) (*ObjectsPage, error) {
	var limitParam interface{}
	if limit > 0 {
		limitParam = limit
	}
	var cursorParam interface{}
	if cursor != nil {
		cursorParam = *cursor
	}

	params := []interface{}{owner, query, cursorParam, limitParam}
	result, err := c.call(ctx, MethodGetOwnedObjects, params)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", MethodGetOwnedObjects, err)
	}

	var page ObjectsPage
	if err := json.Unmarshal(result, &page); err != nil {
		return nil, fmt.Errorf("unmarshal owned objects: %w", err)
	}
	if page.Data == nil {
		page.Data = []ObjectResponse{}
	}
	return &page, nil
}

// UnsafeMoveCall asks the fullnode to build unsigned transaction bytes for a
// single Move call. Shared object versions are resolved by the node.
func (c *Client) UnsafeMoveCall(ctx context.Context, req MoveCallRequest) (*TransactionBytes, error) {
	typeArgs := req.TypeArguments
	if typeArgs == nil {
		typeArgs = []string{}
	}
	args := req.Arguments
	if args == nil {
		args = []any{}
	}
	var gas interface{}
	if req.Gas != nil {
		gas = *req.Gas
	}

	params := []interface{}{
		req.Signer,
		req.PackageID,
		req.Module,
		req.Function,
		typeArgs,
		args,
		gas,
		strconv.FormatUint(req.GasBudget, 10),
	}
	result, err := c.call(ctx, MethodUnsafeMoveCall, params)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", MethodUnsafeMoveCall, err)
	}

	var txBytes TransactionBytes
	if err := json.Unmarshal(result, &txBytes); err != nil {
		return nil, fmt.Errorf("unmarshal transaction bytes: %w", err)
	}
	if txBytes.TxBytes == "" {
		return nil, fmt.Errorf("%s: empty txBytes in response", MethodUnsafeMoveCall)
	}
	return &txBytes, nil
}

// ExecuteTransactionBlock submits signed transaction bytes (base64) and
// waits for local execution.
func (c *Client) ExecuteTransactionBlock(ctx context.Context, txBytes string, signatures []string, opts *TransactionBlockResponseOptions) (*TransactionBlockResponse, error) {
	if opts == nil {
		opts = &TransactionBlockResponseOptions{}
	}
	params := []interface{}{
		txBytes,
		signatures,
		opts,
		RequestTypeWaitForLocalExecution,
	}
	result, err := c.call(ctx, MethodExecuteTransactionBlock, params)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", MethodExecuteTransactionBlock, err)
	}

	var resp TransactionBlockResponse
	if err := json.Unmarshal(result, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal transaction block response: %w", err)
	}
	if resp.Digest == "" {
		return nil, fmt.Errorf("%s: empty digest in response", MethodExecuteTransactionBlock)
	}
	return &resp, nil
}
