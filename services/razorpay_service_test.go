package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrderSendsPaise(t *testing.T) {
	var captured struct {
		Amount   int64  `json:"amount"`
		Currency string `json:"currency"`
		Receipt  string `json:"receipt"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/orders", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "key_test", user)
		assert.Equal(t, "secret_test", pass)

		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":       "order_ABC123",
			"amount":   captured.Amount,
			"currency": captured.Currency,
			"receipt":  captured.Receipt,
			"status":   "created",
		})
	}))
	defer server.Close()

	service := NewRazorpayServiceWithCredentials(server.URL, "key_test", "secret_test")

	order, err := service.CreateOrder(1499.50, "", "rcpt_42")
	require.NoError(t, err)

	assert.Equal(t, int64(149950), captured.Amount)
	assert.Equal(t, "INR", captured.Currency, "currency defaults to INR")
	assert.Equal(t, "rcpt_42", captured.Receipt)

	assert.Equal(t, "order_ABC123", order.ID)
	assert.Equal(t, "created", order.Status)
}

func TestCreateOrderPaiseConversionRounds(t *testing.T) {
	// Amounts whose float64 form sits just below the true value must not
	// truncate down a paisa
	tests := []struct {
		amount float64
		paise  int64
	}{
		{19.99, 1999},
		{0.29, 29},
		{1099.99, 109999},
		{100, 10000},
	}

	var captured struct {
		Amount int64 `json:"amount"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&captured)
		json.NewEncoder(w).Encode(map[string]interface{}{"id": "order_X", "status": "created"})
	}))
	defer server.Close()

	service := NewRazorpayServiceWithCredentials(server.URL, "key_test", "secret_test")

	for _, tt := range tests {
		_, err := service.CreateOrder(tt.amount, "INR", "rcpt_1")
		require.NoError(t, err)
		assert.Equal(t, tt.paise, captured.Amount, "amount %.2f", tt.amount)
	}
}

func TestCreateOrderGeneratesReceipt(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]interface{}
		json.NewDecoder(r.Body).Decode(&payload)
		assert.NotEmpty(t, payload["receipt"])

		json.NewEncoder(w).Encode(map[string]interface{}{"id": "order_X", "status": "created"})
	}))
	defer server.Close()

	service := NewRazorpayServiceWithCredentials(server.URL, "key_test", "secret_test")

	_, err := service.CreateOrder(100, "INR", "")
	require.NoError(t, err)
}

func TestCreateOrderGatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"description":"amount too small"}}`))
	}))
	defer server.Close()

	service := NewRazorpayServiceWithCredentials(server.URL, "key_test", "secret_test")

	_, err := service.CreateOrder(0.01, "INR", "rcpt_1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "razorpay API error")
}

func TestCreateOrderMissingCredentials(t *testing.T) {
	service := NewRazorpayServiceWithCredentials("http://localhost", "", "")

	_, err := service.CreateOrder(100, "INR", "rcpt_1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing Razorpay credentials")
}

func TestVerifySignature(t *testing.T) {
	service := NewRazorpayServiceWithCredentials("http://localhost", "key_test", "secret_test")

	mac := hmac.New(sha256.New, []byte("secret_test"))
	mac.Write([]byte("order_ABC|pay_XYZ"))
	valid := hex.EncodeToString(mac.Sum(nil))

	assert.True(t, service.VerifySignature("order_ABC", "pay_XYZ", valid))
	assert.False(t, service.VerifySignature("order_ABC", "pay_XYZ", "tampered"))
	assert.False(t, service.VerifySignature("order_OTHER", "pay_XYZ", valid))
}
