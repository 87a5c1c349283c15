package ptb

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPackage = "0x71af035413ed499710980ed8adb010bbf2cc5cacf4ab37c7710a4bb87eb58ba5"

func TestParseTarget(t *testing.T) {
	target, err := ParseTarget(testPackage + "::controller::set_user_data")
	require.NoError(t, err)
	assert.Equal(t, testPackage, target.Package)
	assert.Equal(t, "controller", target.Module)
	assert.Equal(t, "set_user_data", target.Function)
	assert.Equal(t, testPackage+"::controller::set_user_data", target.String())
}

func TestParseTarget_Invalid(t *testing.T) {
	tests := []string{
		"",
		"controller::set_user_data",
		testPackage + "::controller::",
		testPackage + "::controller::set_user_data::extra",
		"71af::controller::set_user_data",
		"0xzz::controller::set_user_data",
	}
	for _, in := range tests {
		t.Run(in, func(t *testing.T) {
			_, err := ParseTarget(in)
			assert.Error(t, err)
		})
	}
}

func TestTransaction_MoveCallOrder(t *testing.T) {
	tx := New()
	a := tx.SharedObject("0xcontroller", 13, true)
	b := tx.Object("0xdomain")
	c := tx.PureString("content_hash")
	target, err := ParseTarget(testPackage + "::controller::set_user_data")
	require.NoError(t, err)
	require.NoError(t, tx.MoveCall(target, nil, a, b, c))

	require.Len(t, tx.Commands, 1)
	assert.Equal(t, testPackage+"::controller::set_user_data", tx.Commands[0].MoveCall.Target())

	inputs, err := tx.CallInputs(0)
	require.NoError(t, err)
	require.Len(t, inputs, 3)

	require.NotNil(t, inputs[0].Object)
	assert.Equal(t, "0xcontroller", inputs[0].ObjectID())
	assert.Equal(t, uint64(13), inputs[0].Object.SharedObject.InitialSharedVersion)
	assert.True(t, inputs[0].Object.SharedObject.Mutable)

	require.NotNil(t, inputs[1].UnresolvedObject)
	assert.Equal(t, "0xdomain", inputs[1].ObjectID())

	key, err := inputs[2].PureString()
	require.NoError(t, err)
	assert.Equal(t, "content_hash", key)
	assert.Empty(t, inputs[2].ObjectID())
}

func TestTransaction_MoveCallRejectsDanglingArgument(t *testing.T) {
	tx := New()
	idx := uint16(3)
	err := tx.MoveCall(Target{Package: testPackage, Module: "m", Function: "f"}, nil, Argument{Input: &idx})
	require.Error(t, err)
	assert.Empty(t, tx.Commands)
}

func TestTransaction_CallInputsOutOfRange(t *testing.T) {
	_, err := New().CallInputs(0)
	assert.Error(t, err)
}

func TestPureString_NotPure(t *testing.T) {
	tx := New()
	tx.Object("0xdomain")
	_, err := tx.Inputs[0].PureString()
	assert.ErrorIs(t, err, errNotPure)
}

func TestTransaction_JSONShape(t *testing.T) {
	tx := New()
	a := tx.SharedObject("0xcontroller", 13, true)
	b := tx.Object("0xdomain")
	c := tx.PureString("hi")
	require.NoError(t, tx.MoveCall(Target{Package: testPackage, Module: "controller", Function: "set_user_data"}, nil, a, b, c))

	raw, err := json.Marshal(tx)
	require.NoError(t, err)
	body := string(raw)

	assert.Contains(t, body, `"version":2`)
	assert.Contains(t, body, `{"Object":{"SharedObject":{"objectId":"0xcontroller","initialSharedVersion":"13","mutable":true}}}`)
	assert.Contains(t, body, `{"UnresolvedObject":{"objectId":"0xdomain"}}`)
	// 0x02 'h' 'i'
	assert.Contains(t, body, `{"Pure":{"bytes":"Amhp"}}`)
	assert.Contains(t, body, `"arguments":[{"Input":0},{"Input":1},{"Input":2}]`)
	assert.Contains(t, body, `"typeArguments":[]`)

	var decoded Transaction
	require.NoError(t, json.Unmarshal(raw, &decoded))
	inputs, err := decoded.CallInputs(0)
	require.NoError(t, err)
	s, err := inputs[2].PureString()
	require.NoError(t, err)
	assert.Equal(t, "hi", s)
	assert.Equal(t, uint64(13), inputs[0].Object.SharedObject.InitialSharedVersion)
}

func TestNormalizeObjectID(t *testing.T) {
	got, err := NormalizeObjectID("0x6")
	require.NoError(t, err)
	assert.Equal(t, "0x"+strings.Repeat("0", 63)+"6", got)

	got, err = NormalizeObjectID("0xABCDEF")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(got, "abcdef"))
	assert.Len(t, got, 66)

	for _, bad := range []string{"", "6", "0x", "0xg1", "0x" + strings.Repeat("a", 65)} {
		_, err := NormalizeObjectID(bad)
		assert.Error(t, err, bad)
	}
}
