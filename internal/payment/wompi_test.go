package payment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intakeapi/internal/config"
	"intakeapi/internal/model"
)

func newGateway(url string) *WompiGateway {
	return NewWompiGateway(config.WompiConfig{
		PublicKey:   "pub_test_key",
		APIURL:      url,
		RedirectURL: "https://example.com/gracias",
	})
}

func TestWompiGatewayCreateLink(t *testing.T) {
	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer pub_test_key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"data":{"id":"link_abc123"}}`))
	}))
	defer srv.Close()

	id, err := newGateway(srv.URL).CreateLink(context.Background(), model.PaymentLinkRequest{
		ServiceName: "Consulta individual",
		DateTime:    "2026-09-05 10:00",
		Price:       120000,
	})
	require.NoError(t, err)
	assert.Equal(t, "link_abc123", id)

	assert.Equal(t, "Consulta individual", captured["name"])
	assert.Equal(t, "Agendamiento para 2026-09-05 10:00", captured["description"])
	assert.Equal(t, true, captured["single_use"])
	assert.Equal(t, float64(12000000), captured["amount_in_cents"], "price converted to cents")
	assert.Equal(t, "COP", captured["currency"])
	assert.True(t, strings.HasPrefix(captured["reference"].(string), "kc-psicologia-"))
}

func TestWompiGatewayErrorPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error":{"type":"INPUT_VALIDATION_ERROR","messages":{"amount_in_cents":["must be greater than 0"]}}}`))
	}))
	defer srv.Close()

	_, err := newGateway(srv.URL).CreateLink(context.Background(), model.PaymentLinkRequest{
		ServiceName: "Consulta", DateTime: "x", Price: 1,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrPaymentGateway))
	assert.Contains(t, err.Error(), "INPUT_VALIDATION_ERROR", "processor payload travels in the error")
}

func TestWompiGatewayUnreachable(t *testing.T) {
	_, err := newGateway("http://127.0.0.1:1").CreateLink(context.Background(), model.PaymentLinkRequest{
		ServiceName: "Consulta", DateTime: "x", Price: 1,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrPaymentGateway))
}
