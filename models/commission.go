// models/commission.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Commission statuses. pending -> approved -> paid, or pending -> rejected.
const (
	CommissionStatusPending  = "pending"
	CommissionStatusApproved = "approved"
	CommissionStatusPaid     = "paid"
	CommissionStatusRejected = "rejected"
)

// Commission is the payout record owed to a partner for one referred
// order. OrderID is unique across the collection: an order generates at
// most one commission. The rate is snapshotted at creation time so
// later rate changes never affect historical records. Only Status and
// the bookkeeping fields change after creation; commissions are never
// deleted.
type Commission struct {
	ID               primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	PartnerID        primitive.ObjectID  `json:"partner" bson:"partner"`
	OrderID          primitive.ObjectID  `json:"order" bson:"order"`
	OrderAmount      float64             `json:"orderAmount" bson:"orderAmount"`
	CommissionRate   float64             `json:"commissionRate" bson:"commissionRate"`
	CommissionAmount float64             `json:"commissionAmount" bson:"commissionAmount"`
	Status           string              `json:"status" bson:"status"`
	ApprovedBy       *primitive.ObjectID `json:"approvedBy,omitempty" bson:"approvedBy,omitempty"`
	ApprovedAt       *time.Time          `json:"approvedAt,omitempty" bson:"approvedAt,omitempty"`
	PaidAt           *time.Time          `json:"paidAt,omitempty" bson:"paidAt,omitempty"`
	Notes            string              `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt        time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt        time.Time           `json:"updatedAt" bson:"updatedAt"`
}

type RejectCommissionRequest struct {
	Notes string `json:"notes" validate:"required"`
}

// CommissionSummaryEntry is one bucket of the admin stats aggregation
type CommissionSummaryEntry struct {
	Status string  `json:"status" bson:"_id"`
	Total  float64 `json:"total" bson:"total"`
	Count  int     `json:"count" bson:"count"`
}
