// models/payment.go
package models

// CreatePaymentOrderRequest asks the gateway for a new payment order
type CreatePaymentOrderRequest struct {
	Amount   float64 `json:"amount" validate:"required,gt=0"`
	Currency string  `json:"currency"`
	Receipt  string  `json:"receipt,omitempty"`
}

// PaymentOrder is the gateway-side order handed back to the frontend
type PaymentOrder struct {
	ID       string  `json:"id"`
	Amount   int64   `json:"amount"` // minor currency units
	Currency string  `json:"currency"`
	Receipt  string  `json:"receipt,omitempty"`
	Status   string  `json:"status,omitempty"`
	Rate     float64 `json:"-"`
}

// VerifyPaymentRequest carries the gateway callback fields the client
// relays after checkout completes
type VerifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id" validate:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" validate:"required"`
	RazorpaySignature string `json:"razorpay_signature" validate:"required"`
	OrderID           string `json:"orderId" validate:"required"`
}
