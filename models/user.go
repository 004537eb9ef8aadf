// models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User model. Partners are regular users with IsPartner set; their
// referral code and ledger fields live directly on the user document.
type User struct {
	ID       primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name     string             `json:"name" bson:"name"`
	Email    string             `json:"email" bson:"email"`
	Password string             `json:"password,omitempty" bson:"password"`
	Role     string             `json:"role" bson:"role"` // "user", "admin", "partner"
	Phone    string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Avatar   string             `json:"avatar,omitempty" bson:"avatar,omitempty"`

	// Partner / referral data (only meaningful when IsPartner is true)
	IsPartner         bool    `json:"isPartner" bson:"isPartner"`
	ReferralCode      string  `json:"referralCode,omitempty" bson:"referralCode,omitempty"`
	CommissionRate    float64 `json:"commissionRate" bson:"commissionRate"`
	TotalEarnings     float64 `json:"totalEarnings" bson:"totalEarnings"`
	PendingCommission float64 `json:"pendingCommission" bson:"pendingCommission"`
	PaidCommission    float64 `json:"paidCommission" bson:"paidCommission"`

	// Partner that referred this user at signup time, if any. Set once.
	ReferredBy *primitive.ObjectID `json:"referredBy,omitempty" bson:"referredBy,omitempty"`

	// Shopping data
	Wishlist []primitive.ObjectID `json:"wishlist,omitempty" bson:"wishlist,omitempty"`
	Cart     []CartItem           `json:"cart,omitempty" bson:"cart,omitempty"`

	// Purchased digital content
	PurchasedEbooks  []primitive.ObjectID `json:"purchasedEbooks,omitempty" bson:"purchasedEbooks,omitempty"`
	PurchasedCourses []primitive.ObjectID `json:"purchasedCourses,omitempty" bson:"purchasedCourses,omitempty"`

	Addresses []Address `json:"addresses,omitempty" bson:"addresses,omitempty"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// CartItem is one entry of the persistent cart
type CartItem struct {
	ProductID primitive.ObjectID `json:"product" bson:"product"`
	PackID    string             `json:"packId,omitempty" bson:"packId,omitempty"`
	Quantity  int                `json:"quantity" bson:"quantity"`
}

// Address is a saved shipping address
type Address struct {
	Label     string `json:"label,omitempty" bson:"label,omitempty"` // Home, Work
	Street    string `json:"street" bson:"street"`
	City      string `json:"city" bson:"city"`
	State     string `json:"state" bson:"state"`
	Pincode   string `json:"pincode" bson:"pincode"`
	IsDefault bool   `json:"isDefault" bson:"isDefault"`
}

// PartnerStats is the aggregate block returned on the partner dashboard
type PartnerStats struct {
	TotalReferrals    int     `json:"totalReferrals"`
	TotalOrders       int     `json:"totalOrders"`
	TotalEarnings     float64 `json:"totalEarnings"`
	PendingCommission float64 `json:"pendingCommission"`
	PaidCommission    float64 `json:"paidCommission"`
	CommissionRate    float64 `json:"commissionRate"`
}

// PartnerDashboard bundles everything the partner frontend needs
type PartnerDashboard struct {
	Partner        PartnerProfile `json:"partner"`
	Stats          PartnerStats   `json:"stats"`
	ReferredOrders []Order        `json:"referredOrders"`
	Commissions    []Commission   `json:"commissions"`
	ReferralLink   string         `json:"referralLink"`
	ReferralQR     string         `json:"referralQR,omitempty"` // base64 PNG
}

// PartnerProfile is the public slice of a partner account
type PartnerProfile struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	ReferralCode string `json:"referralCode"`
}

type RegisterRequest struct {
	Name         string `json:"name" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=6"`
	Phone        string `json:"phone,omitempty"`
	ReferralCode string `json:"referralCode,omitempty"`
}

type PartnerRegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	Name      string    `json:"name,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Avatar    string    `json:"avatar,omitempty"`
	Addresses []Address `json:"addresses,omitempty"`
}

type UpdateCommissionRateRequest struct {
	CommissionRate float64 `json:"commissionRate" validate:"gte=0,lte=100"`
}
