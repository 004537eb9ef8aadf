// models/review.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review statuses
const (
	ReviewStatusPending  = "Pending"
	ReviewStatusApproved = "Approved"
	ReviewStatusRejected = "Rejected"
)

// Review is a product review awaiting moderation
type Review struct {
	ID                 primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID             primitive.ObjectID `json:"user" bson:"user"`
	ProductID          primitive.ObjectID `json:"product" bson:"product"`
	Rating             int                `json:"rating" bson:"rating" validate:"required,min=1,max=5"`
	Comment            string             `json:"comment,omitempty" bson:"comment,omitempty"`
	Images             []string           `json:"images,omitempty" bson:"images,omitempty"`
	IsVerifiedPurchase bool               `json:"isVerifiedPurchase" bson:"isVerifiedPurchase"`
	IsApproved         bool               `json:"isApproved" bson:"isApproved"`
	Status             string             `json:"status" bson:"status"`
	CreatedAt          time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt" bson:"updatedAt"`
}
