// models/category.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category model. Type partitions categories between physical products
// and the two digital content kinds. A nil Parent means top-level.
type Category struct {
	ID          primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	Name        string              `json:"name" bson:"name" validate:"required"`
	Slug        string              `json:"slug" bson:"slug" validate:"required"`
	Description string              `json:"description,omitempty" bson:"description,omitempty"`
	Type        string              `json:"type" bson:"type"` // product, ebook, course
	Image       string              `json:"image,omitempty" bson:"image,omitempty"`
	ParentID    *primitive.ObjectID `json:"parent,omitempty" bson:"parent,omitempty"`
	IsActive    bool                `json:"isActive" bson:"isActive"`
	CreatedAt   time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt" bson:"updatedAt"`
}
