package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/umaxship/console/internal/apperrors"
)

func TestClient_CreateSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/pg/orders", r.URL.Path)
		assert.Equal(t, "app-1", r.Header.Get("x-client-id"))
		assert.Equal(t, "secret", r.Header.Get("x-client-secret"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "rc_1", body["order_id"])
		assert.Equal(t, 1500.5, body["order_amount"])
		assert.Equal(t, "INR", body["order_currency"])
		customer := body["customer_details"].(map[string]any)
		assert.Equal(t, "user-1", customer["customer_id"])
		assert.Equal(t, "9876543210", customer["customer_phone"])

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"order_id":           "rc_1",
			"payment_session_id": "session_abc",
		})
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL + "/pg", AppID: "app-1", SecretKey: "secret", Timeout: time.Second})

	s, err := client.CreateSession(context.Background(), SessionRequest{
		OrderID:  "rc_1",
		Amount:   decimal.RequireFromString("1500.50"),
		Customer: Customer{ID: "user-1", Phone: "9876543210"},
	})
	require.NoError(t, err)
	assert.Equal(t, "session_abc", s.PaymentSessionID)
}

func TestClient_CreateSessionErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "provider error", status: http.StatusBadRequest, body: `{"code":"order_amount_invalid","message":"amount too low"}`},
		{name: "plain failure", status: http.StatusInternalServerError, body: `boom`},
		{name: "missing session id", status: http.StatusOK, body: `{"order_id":"rc_1"}`},
		{name: "oversized body", status: http.StatusOK, body: `{"order_id":"rc_1","payment_session_id":"sess_1"}` + strings.Repeat(" ", maxResponseBody)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer server.Close()

			client := NewClient(Config{BaseURL: server.URL, Timeout: time.Second})
			_, err := client.CreateSession(context.Background(), SessionRequest{OrderID: "rc_1", Amount: decimal.NewFromInt(10)})

			assert.ErrorIs(t, err, apperrors.ErrExternalService)
		})
	}
}
