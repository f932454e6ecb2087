package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPForwarderForward(t *testing.T) {
	var captured map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	payload := map[string]string{
		"DOCUMENTO":    "123",
		"GRABACION_SI": "X",
		"GRABACION_NO": " ",
	}
	require.NoError(t, NewHTTPForwarder(srv.URL).Forward(context.Background(), payload))
	assert.Equal(t, payload, captured)
}

func TestHTTPForwarderErrorResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("zap down"))
	}))
	defer srv.Close()

	err := NewHTTPForwarder(srv.URL).Forward(context.Background(), map[string]string{"A": "1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
	assert.Contains(t, err.Error(), "zap down")
}
