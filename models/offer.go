// models/offer.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Offer is a discount code with an optional validity window and scope
type Offer struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Code          string             `json:"code" bson:"code" validate:"required"`
	Title         string             `json:"title" bson:"title" validate:"required"`
	Description   string             `json:"description,omitempty" bson:"description,omitempty"`
	DiscountType  string             `json:"discountType" bson:"discountType"` // percentage, fixed
	DiscountValue float64            `json:"discountValue" bson:"discountValue" validate:"required,gt=0"`
	MinOrderValue float64            `json:"minOrderValue" bson:"minOrderValue"`
	IsActive      bool               `json:"isActive" bson:"isActive"`
	StartDate     time.Time          `json:"startDate" bson:"startDate"`
	EndDate       *time.Time         `json:"endDate,omitempty" bson:"endDate,omitempty"`

	ApplicableTo         string               `json:"applicableTo" bson:"applicableTo"` // all, product, category
	ApplicableProducts   []primitive.ObjectID `json:"applicableProducts,omitempty" bson:"applicableProducts,omitempty"`
	ApplicableCategories []primitive.ObjectID `json:"applicableCategories,omitempty" bson:"applicableCategories,omitempty"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}
