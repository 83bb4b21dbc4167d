package transport

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRequest(t *testing.T) {
	body := bytes.NewBufferString(`{"jsonrpc":"2.0","method":"add_slab","params":{"length":"96"},"id":1}`)
	req, err := ParseRequest(body)
	require.NoError(t, err)
	require.Equal(t, "2.0", req.JSONRPC)
	require.Equal(t, "add_slab", req.Method)
	require.Equal(t, json.RawMessage(`{"length":"96"}`), req.Params)
}

func TestParseRequest_Invalid(t *testing.T) {
	_, err := ParseRequest(bytes.NewBufferString(`{"jsonrpc":"2.0","id":1}`))
	require.ErrorIs(t, err, ErrInvalidRequest)

	_, err = ParseRequest(bytes.NewBufferString(`{"jsonrpc":"2.0","method":5}`))
	require.ErrorIs(t, err, ErrInvalidRequest)

	_, err = ParseRequest(bytes.NewBufferString(`not json`))
	require.ErrorIs(t, err, ErrParse)
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, 1, ErrInvalidParams, "bad params", nil)

	require.Equal(t, 200, rec.Code)
	require.Contains(t, rec.Body.String(), `"error"`)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestRequestIsNotification(t *testing.T) {
	req, err := ParseRequest(bytes.NewBufferString(`{"jsonrpc":"2.0","method":"get_stats"}`))
	require.NoError(t, err)
	require.True(t, req.IsNotification())

	req, err = ParseRequest(bytes.NewBufferString(`{"jsonrpc":"2.0","method":"get_stats","id":"7"}`))
	require.NoError(t, err)
	require.False(t, req.IsNotification())
	require.Equal(t, json.RawMessage(`"7"`), req.ID)
}

func TestResponseMarshal(t *testing.T) {
	cases := []struct {
		name string
		resp Response
		want string
	}{
		{"null result is kept", NewResult(json.RawMessage(`1`), nil), `{"jsonrpc":"2.0","result":null,"id":1}`},
		{"string id echoed", NewResult(json.RawMessage(`"a"`), map[string]int{"n": 1}), `{"jsonrpc":"2.0","result":{"n":1},"id":"a"}`},
		{"error drops result", NewError(json.RawMessage(`2`), ErrInternal, "internal error", nil), `{"jsonrpc":"2.0","error":{"code":-32603,"message":"internal error"},"id":2}`},
		{"unknown id is null", NewError(nil, ErrParseCode, "parse error", nil), `{"jsonrpc":"2.0","error":{"code":-32700,"message":"parse error"},"id":null}`},
		{"empty raw id is null", NewError(json.RawMessage(nil), ErrInvalidReq, "invalid request", nil), `{"jsonrpc":"2.0","error":{"code":-32600,"message":"invalid request"},"id":null}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data, err := json.Marshal(tc.resp)
			require.NoError(t, err)
			require.JSONEq(t, tc.want, string(data))
		})
	}
}

func TestSplitBatch(t *testing.T) {
	msgs, batch, err := SplitBatch([]byte(` {"jsonrpc":"2.0","method":"a","id":1} `))
	require.NoError(t, err)
	require.False(t, batch)
	require.Len(t, msgs, 1)

	msgs, batch, err = SplitBatch([]byte(`[{"jsonrpc":"2.0","method":"a","id":1}, 5]`))
	require.NoError(t, err)
	require.True(t, batch)
	require.Len(t, msgs, 2)

	_, _, err = SplitBatch([]byte(`[]`))
	require.ErrorIs(t, err, ErrInvalidRequest)

	_, _, err = SplitBatch([]byte(`[{"jsonrpc"`))
	require.ErrorIs(t, err, ErrParse)

	_, _, err = SplitBatch(nil)
	require.ErrorIs(t, err, ErrParse)
}
