package services

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/naturebridge/store_backend/models"
)

// RazorpayService handles interactions with the Razorpay API
type RazorpayService struct {
	baseURL   string
	keyID     string
	keySecret string
	client    *http.Client
}

// NewRazorpayService creates a new Razorpay service instance
func NewRazorpayService() *RazorpayService {
	baseURL := os.Getenv("RAZORPAY_BASE_URL")
	if baseURL == "" {
		baseURL = "https://api.razorpay.com/v1"
	}

	keyID := os.Getenv("RAZORPAY_KEY_ID")
	keySecret := os.Getenv("RAZORPAY_KEY_SECRET")

	if keyID == "" || keySecret == "" {
		log.Printf("WARNING: Razorpay credentials not fully configured:")
		if keyID == "" {
			log.Printf("  - RAZORPAY_KEY_ID is missing")
		}
		if keySecret == "" {
			log.Printf("  - RAZORPAY_KEY_SECRET is missing")
		}
		log.Printf("Please set these environment variables for online payments to work")
	}

	return &RazorpayService{
		baseURL:   baseURL,
		keyID:     keyID,
		keySecret: keySecret,
		client:    &http.Client{Timeout: 30 * time.Second},
	}
}

// NewRazorpayServiceWithCredentials builds a service against a specific
// endpoint, used for sandbox configurations.
func NewRazorpayServiceWithCredentials(baseURL, keyID, keySecret string) *RazorpayService {
	return &RazorpayService{
		baseURL:   baseURL,
		keyID:     keyID,
		keySecret: keySecret,
		client:    &http.Client{Timeout: 30 * time.Second},
	}
}

// razorpayOrderPayload is the wire format for order creation
type razorpayOrderPayload struct {
	Amount   int64  `json:"amount"` // minor currency units (paise)
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

// razorpayOrderResponse is the subset of the order response we consume
type razorpayOrderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// CreateOrder registers a payment order with the gateway. Amount comes
// in as major currency units and goes out in paise.
func (s *RazorpayService) CreateOrder(amount float64, currency, receipt string) (*models.PaymentOrder, error) {
	if s.keyID == "" || s.keySecret == "" {
		return nil, fmt.Errorf("missing Razorpay credentials. Please set RAZORPAY_KEY_ID and RAZORPAY_KEY_SECRET environment variables")
	}

	if currency == "" {
		currency = "INR"
	}
	if receipt == "" {
		receipt = "rcpt_" + uuid.New().String()
	}

	// Truncating the float undercharges on amounts like 19.99, whose
	// binary representation sits just below the true value
	paise := decimal.NewFromFloat(amount).Mul(decimal.NewFromInt(100)).Round(0).IntPart()

	payload := razorpayOrderPayload{
		Amount:   paise,
		Currency: currency,
		Receipt:  receipt,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, s.baseURL+"/orders", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(s.keyID, s.keySecret)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("razorpay API error: %d - %s", resp.StatusCode, string(respBody))
	}

	var orderResp razorpayOrderResponse
	if err := json.Unmarshal(respBody, &orderResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return &models.PaymentOrder{
		ID:       orderResp.ID,
		Amount:   orderResp.Amount,
		Currency: orderResp.Currency,
		Receipt:  orderResp.Receipt,
		Status:   orderResp.Status,
	}, nil
}

// VerifySignature checks the checkout callback signature. Razorpay
// signs "orderID|paymentID" with the key secret using HMAC-SHA256.
func (s *RazorpayService) VerifySignature(orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(s.keySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
