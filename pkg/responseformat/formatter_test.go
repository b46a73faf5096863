package responseformat

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

type payload struct {
	Season string `json:"season"`
	Count  int    `json:"count"`
}

func TestWriteResponseJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/season", nil)

	require.NoError(t, NewFormatter().WriteResponse(rec, req, payload{Season: "winter", Count: 2}))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"season":"winter","count":2}`, rec.Body.String())
}

func TestWriteResponseMsgPack(t *testing.T) {
	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/api/season?format=msgpack", nil),
		func() *http.Request {
			r := httptest.NewRequest(http.MethodGet, "/api/season", nil)
			r.Header.Set("Accept", MsgPackContentType)
			return r
		}(),
	} {
		rec := httptest.NewRecorder()
		require.NoError(t, NewFormatter().WriteResponse(rec, req, payload{Season: "winter", Count: 2}))
		assert.Equal(t, MsgPackContentType, rec.Header().Get("Content-Type"))

		var got map[string]any
		require.NoError(t, msgpack.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "winter", got["season"], "json tags name the msgpack keys")
	}
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/lod/grass", nil)

	require.NoError(t, NewFormatter().WriteError(rec, req, http.StatusBadRequest, "unknown category", errors.New("grass")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var got ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "unknown category", got.Error)
	assert.Equal(t, http.StatusBadRequest, got.Status)
	assert.Equal(t, "grass", got.Details)
}
