package solana

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ybbus/jsonrpc"
)

func TestParseTransactionError_BareString(t *testing.T) {
	txErr, err := ParseTransactionError("AccountInUse")
	require.NoError(t, err)
	require.NotNil(t, txErr)
	assert.Equal(t, TransactionErrorAccountInUse, txErr.ErrorKey())
	assert.Nil(t, txErr.InstructionError())
}

func TestParseTransactionError_InstructionErrorCustom(t *testing.T) {
	var raw interface{}
	require.NoError(t, json.Unmarshal([]byte(`{"InstructionError":[1,{"Custom":17}]}`), &raw))

	txErr, err := ParseTransactionError(raw)
	require.NoError(t, err)
	require.NotNil(t, txErr)

	instrErr := txErr.InstructionError()
	require.NotNil(t, instrErr)
	assert.Equal(t, 1, instrErr.Index)
	assert.Equal(t, InstructionErrorCustom, instrErr.ErrorKey())
	require.NotNil(t, instrErr.CustomError())
	assert.EqualValues(t, 17, *instrErr.CustomError())
}

func TestParseTransactionError_InstructionErrorNamed(t *testing.T) {
	var raw interface{}
	require.NoError(t, json.Unmarshal([]byte(`{"InstructionError":[0,"InvalidAccountData"]}`), &raw))

	txErr, err := ParseTransactionError(raw)
	require.NoError(t, err)

	instrErr := txErr.InstructionError()
	require.NotNil(t, instrErr)
	assert.Equal(t, InstructionErrorInvalidAccountData, instrErr.ErrorKey())
	assert.Nil(t, instrErr.CustomError())
}

func TestParseTransactionError_Nil(t *testing.T) {
	txErr, err := ParseTransactionError(nil)
	require.NoError(t, err)
	assert.Nil(t, txErr)
}

func TestParseRPCError(t *testing.T) {
	rpcErr := &jsonrpc.RPCError{
		Code:    -32002,
		Message: "Transaction simulation failed",
		Data: map[string]interface{}{
			"err": "BlockhashNotFound",
		},
	}

	txErr, err := ParseRPCError(rpcErr)
	require.NoError(t, err)
	require.NotNil(t, txErr)
	assert.Equal(t, TransactionErrorBlockhashNotFound, txErr.ErrorKey())
}

func TestParseRPCError_NoErrField(t *testing.T) {
	rpcErr := &jsonrpc.RPCError{
		Code: -32002,
		Data: map[string]interface{}{"logs": []interface{}{"log line"}},
	}

	txErr, err := ParseRPCError(rpcErr)
	require.NoError(t, err)
	assert.Nil(t, txErr)
}
