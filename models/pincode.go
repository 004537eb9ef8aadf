// models/pincode.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Pincode is a serviceable delivery area
type Pincode struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Code      string             `json:"code" bson:"code" validate:"required,len=6"`
	City      string             `json:"city" bson:"city" validate:"required"`
	State     string             `json:"state" bson:"state" validate:"required"`
	IsActive  bool               `json:"isActive" bson:"isActive"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// PincodeCheckResult is the serviceability answer for a delivery check
type PincodeCheckResult struct {
	Serviceable   bool   `json:"serviceable"`
	Pincode       string `json:"pincode,omitempty"`
	City          string `json:"city,omitempty"`
	State         string `json:"state,omitempty"`
	EstimatedDate string `json:"estimatedDate,omitempty"`
	Message       string `json:"message"`
}
