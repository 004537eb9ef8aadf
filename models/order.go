// models/order.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order item types
const (
	ItemTypeProduct = "product"
	ItemTypeEbook   = "ebook"
	ItemTypeCourse  = "course"
)

// Order statuses
const (
	OrderStatusProcessing = "Processing"
	OrderStatusShipped    = "Shipped"
	OrderStatusDelivered  = "Delivered"
	OrderStatusCancelled  = "Cancelled"
)

// OrderItem is a single line of an order. Exactly one of ProductID,
// EbookID or CourseID is set depending on ItemType.
type OrderItem struct {
	Name      string              `json:"name" bson:"name" validate:"required"`
	Qty       int                 `json:"qty" bson:"qty" validate:"required,gt=0"`
	Image     string              `json:"image" bson:"image"`
	Price     float64             `json:"price" bson:"price" validate:"required,gte=0"`
	ProductID *primitive.ObjectID `json:"product,omitempty" bson:"product,omitempty"`
	Pack      string              `json:"pack,omitempty" bson:"pack,omitempty"`
	ItemType  string              `json:"itemType" bson:"itemType"` // product, ebook, course
	EbookID   *primitive.ObjectID `json:"ebook,omitempty" bson:"ebook,omitempty"`
	CourseID  *primitive.ObjectID `json:"course,omitempty" bson:"course,omitempty"`
}

// ShippingAddress is the delivery destination snapshot on the order
type ShippingAddress struct {
	Address    string `json:"address" bson:"address" validate:"required"`
	City       string `json:"city" bson:"city" validate:"required"`
	PostalCode string `json:"postalCode" bson:"postalCode" validate:"required"`
	Country    string `json:"country" bson:"country" validate:"required"`
}

// PaymentResult holds the gateway confirmation for a paid order
type PaymentResult struct {
	ID           string `json:"id,omitempty" bson:"id,omitempty"`
	Status       string `json:"status,omitempty" bson:"status,omitempty"`
	UpdateTime   string `json:"updateTime,omitempty" bson:"updateTime,omitempty"`
	EmailAddress string `json:"emailAddress,omitempty" bson:"emailAddress,omitempty"`
}

// Order model. ReferredBy/ReferralCode are set once during attribution
// at creation time and never mutated afterwards.
type Order struct {
	ID              primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID          primitive.ObjectID `json:"user" bson:"user"`
	OrderItems      []OrderItem        `json:"orderItems" bson:"orderItems"`
	ShippingAddress ShippingAddress    `json:"shippingAddress" bson:"shippingAddress"`
	PaymentMethod   string             `json:"paymentMethod" bson:"paymentMethod"` // "COD" or "Online"
	PaymentResult   *PaymentResult     `json:"paymentResult,omitempty" bson:"paymentResult,omitempty"`
	ItemsPrice      float64            `json:"itemsPrice" bson:"itemsPrice"`
	TaxPrice        float64            `json:"taxPrice" bson:"taxPrice"`
	ShippingPrice   float64            `json:"shippingPrice" bson:"shippingPrice"`
	TotalPrice      float64            `json:"totalPrice" bson:"totalPrice"`
	IsPaid          bool               `json:"isPaid" bson:"isPaid"`
	PaidAt          *time.Time         `json:"paidAt,omitempty" bson:"paidAt,omitempty"`
	IsDelivered     bool               `json:"isDelivered" bson:"isDelivered"`
	DeliveredAt     *time.Time         `json:"deliveredAt,omitempty" bson:"deliveredAt,omitempty"`
	Status          string             `json:"status" bson:"status"`

	// Referral tracking
	ReferredBy          *primitive.ObjectID `json:"referredBy,omitempty" bson:"referredBy,omitempty"`
	ReferralCode        string              `json:"referralCode,omitempty" bson:"referralCode,omitempty"`
	CommissionGenerated bool                `json:"commissionGenerated" bson:"commissionGenerated"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

type CreateOrderRequest struct {
	OrderItems      []OrderItem     `json:"orderItems" validate:"required,min=1,dive"`
	ShippingAddress ShippingAddress `json:"shippingAddress" validate:"required"`
	PaymentMethod   string          `json:"paymentMethod" validate:"required"`
	ItemsPrice      float64         `json:"itemsPrice"`
	TaxPrice        float64         `json:"taxPrice"`
	ShippingPrice   float64         `json:"shippingPrice"`
	TotalPrice      float64         `json:"totalPrice" validate:"required,gt=0"`
	ReferralCode    string          `json:"referralCode,omitempty"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
