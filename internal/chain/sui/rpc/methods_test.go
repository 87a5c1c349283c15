package rpc

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDomainType = "0xd22b24490e0bae52676651b4f56660a5ff8022a2576e0089f79b3c88d44e08f0::suins_registration::SuinsRegistration"

func methodTestClient(handler func(*http.Request) (*http.Response, error)) *Client {
	client := NewClient("http://rpc.local", "testnet", 0, nil)
	client.httpClient = &http.Client{
		Transport: roundTripFunc(handler),
	}
	return client
}

func decodeRequest(t *testing.T, r *http.Request) Request {
	t.Helper()
	body, err := io.ReadAll(r.Body)
	require.NoError(t, err)
	var req Request
	require.NoError(t, json.Unmarshal(body, &req))
	return req
}

func resultResponse(t *testing.T, id int, result string) *http.Response {
	t.Helper()
	raw, err := json.Marshal(Response{JSONRPC: "2.0", ID: id, Result: json.RawMessage(result)})
	require.NoError(t, err)
	return jsonHTTPResponse(http.StatusOK, string(raw))
}

func TestGetOwnedObjects_Success(t *testing.T) {
	client := methodTestClient(func(r *http.Request) (*http.Response, error) {
		req := decodeRequest(t, r)
		assert.Equal(t, MethodGetOwnedObjects, req.Method)
		require.Len(t, req.Params, 4)
		assert.Equal(t, "0xowner", req.Params[0])

		query := req.Params[1].(map[string]interface{})
		filter := query["filter"].(map[string]interface{})
		assert.Equal(t, testDomainType, filter["StructType"])
		options := query["options"].(map[string]interface{})
		assert.Equal(t, true, options["showContent"])
		assert.Equal(t, true, options["showDisplay"])
		assert.Nil(t, req.Params[2])
		assert.Nil(t, req.Params[3])

		return resultResponse(t, req.ID, `{
			"data": [
				{"data": {"objectId": "0xaaa", "version": "7", "digest": "d1",
					"content": {"dataType": "moveObject", "fields": {"domain_name": "alice.sui", "expiration_timestamp_ms": "1"}}}},
				{"data": {"objectId": "0xbbb", "version": "9", "digest": "d2"}}
			],
			"nextCursor": "0xbbb",
			"hasNextPage": false
		}`), nil
	})

	page, err := client.GetOwnedObjects(context.Background(), "0xowner", ObjectResponseQuery{
		Filter:  &ObjectFilter{StructType: testDomainType},
		Options: &ObjectDataOptions{ShowContent: true, ShowDisplay: true},
	}, nil, 0)
	require.NoError(t, err)
	require.Len(t, page.Data, 2)
	assert.False(t, page.HasNextPage)
	require.NotNil(t, page.NextCursor)
	assert.Equal(t, "0xbbb", *page.NextCursor)

	first := page.Data[0].Data
	require.NotNil(t, first)
	assert.Equal(t, "0xaaa", first.ObjectID)
	require.NotNil(t, first.Content)
	assert.Equal(t, "alice.sui", first.Content.Fields["domain_name"])
	assert.Nil(t, page.Data[1].Data.Content)
}

func TestGetOwnedObjects_CursorAndLimitPassed(t *testing.T) {
	client := methodTestClient(func(r *http.Request) (*http.Response, error) {
		req := decodeRequest(t, r)
		assert.Equal(t, "cursor-1", req.Params[2])
		assert.Equal(t, float64(25), req.Params[3])
		return resultResponse(t, req.ID, `{"data": [], "nextCursor": null, "hasNextPage": false}`), nil
	})

	cursor := "cursor-1"
	page, err := client.GetOwnedObjects(context.Background(), "0xowner", ObjectResponseQuery{}, &cursor, 25)
	require.NoError(t, err)
	assert.Empty(t, page.Data)
	assert.Nil(t, page.NextCursor)
}

func TestGetOwnedObjects_NullDataBecomesEmpty(t *testing.T) {
	client := methodTestClient(func(r *http.Request) (*http.Response, error) {
		req := decodeRequest(t, r)
		return resultResponse(t, req.ID, `{"data": null, "hasNextPage": false}`), nil
	})

	page, err := client.GetOwnedObjects(context.Background(), "0xowner", ObjectResponseQuery{}, nil, 0)
	require.NoError(t, err)
	require.NotNil(t, page.Data)
	assert.Len(t, page.Data, 0)
}

func TestGetOwnedObjects_Error(t *testing.T) {
	client := methodTestClient(func(r *http.Request) (*http.Response, error) {
		raw, err := json.Marshal(Response{
			JSONRPC: "2.0",
			ID:      1,
			Error:   &RPCError{Code: -32602, Message: "Invalid Sui address"},
		})
		require.NoError(t, err)
		return jsonHTTPResponse(http.StatusOK, string(raw)), nil
	})

	_, err := client.GetOwnedObjects(context.Background(), "not-an-address", ObjectResponseQuery{}, nil, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), MethodGetOwnedObjects)
	assert.Contains(t, err.Error(), "Invalid Sui address")
}

func TestUnsafeMoveCall_Success(t *testing.T) {
	client := methodTestClient(func(r *http.Request) (*http.Response, error) {
		req := decodeRequest(t, r)
		assert.Equal(t, MethodUnsafeMoveCall, req.Method)
		require.Len(t, req.Params, 8)
		assert.Equal(t, "0xsender", req.Params[0])
		assert.Equal(t, "0xpkg", req.Params[1])
		assert.Equal(t, "controller", req.Params[2])
		assert.Equal(t, "set_user_data", req.Params[3])
		assert.Equal(t, []interface{}{}, req.Params[4])
		assert.Equal(t, []interface{}{"0xcontroller", "0xdomain", "content_hash", "bafy", "0x6"}, req.Params[5])
		assert.Nil(t, req.Params[6])
		assert.Equal(t, "50000000", req.Params[7])
		return resultResponse(t, req.ID, `{"txBytes": "AAAB", "gas": [], "inputObjects": []}`), nil
	})

	tx, err := client.UnsafeMoveCall(context.Background(), MoveCallRequest{
		Signer:    "0xsender",
		PackageID: "0xpkg",
		Module:    "controller",
		Function:  "set_user_data",
		Arguments: []any{"0xcontroller", "0xdomain", "content_hash", "bafy", "0x6"},
		GasBudget: 50_000_000,
	})
	require.NoError(t, err)
	assert.Equal(t, "AAAB", tx.TxBytes)
}

func TestUnsafeMoveCall_EmptyBytes(t *testing.T) {
	client := methodTestClient(func(r *http.Request) (*http.Response, error) {
		req := decodeRequest(t, r)
		return resultResponse(t, req.ID, `{"txBytes": ""}`), nil
	})

	_, err := client.UnsafeMoveCall(context.Background(), MoveCallRequest{Signer: "0xsender"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty txBytes")
}

func TestExecuteTransactionBlock_Success(t *testing.T) {
	client := methodTestClient(func(r *http.Request) (*http.Response, error) {
		req := decodeRequest(t, r)
		assert.Equal(t, MethodExecuteTransactionBlock, req.Method)
		require.Len(t, req.Params, 4)
		assert.Equal(t, "AAAB", req.Params[0])
		assert.Equal(t, []interface{}{"sig-1"}, req.Params[1])
		opts := req.Params[2].(map[string]interface{})
		assert.Equal(t, true, opts["showEffects"])
		assert.Equal(t, RequestTypeWaitForLocalExecution, req.Params[3])
		return resultResponse(t, req.ID, `{"digest": "abc123", "effects": {"status": {"status": "success"}}}`), nil
	})

	resp, err := client.ExecuteTransactionBlock(context.Background(), "AAAB", []string{"sig-1"}, &TransactionBlockResponseOptions{ShowEffects: true})
	require.NoError(t, err)
	assert.Equal(t, "abc123", resp.Digest)
	require.NotNil(t, resp.Effects)
	assert.Equal(t, "success", resp.Effects.Status.Status)
}

func TestExecuteTransactionBlock_MissingDigest(t *testing.T) {
	client := methodTestClient(func(r *http.Request) (*http.Response, error) {
		req := decodeRequest(t, r)
		return resultResponse(t, req.ID, `{}`), nil
	})

	_, err := client.ExecuteTransactionBlock(context.Background(), "AAAB", []string{"sig-1"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty digest")
}
