// models/course.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CourseModule is one lesson of a course
type CourseModule struct {
	Title       string `json:"title" bson:"title"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
	VideoURL    string `json:"videoUrl,omitempty" bson:"videoUrl,omitempty"`
	Duration    string `json:"duration,omitempty" bson:"duration,omitempty"`
	Order       int    `json:"order" bson:"order"`
}

// Course model. Modules are only returned through the purchase-gated
// access endpoint.
type Course struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Title         string             `json:"title" bson:"title" validate:"required"`
	Slug          string             `json:"slug" bson:"slug" validate:"required"`
	Description   string             `json:"description,omitempty" bson:"description,omitempty"`
	Instructor    string             `json:"instructor,omitempty" bson:"instructor,omitempty"`
	Thumbnail     string             `json:"thumbnail,omitempty" bson:"thumbnail,omitempty"`
	Price         float64            `json:"price" bson:"price"`
	MRP           float64            `json:"mrp,omitempty" bson:"mrp,omitempty"`
	Duration      string             `json:"duration,omitempty" bson:"duration,omitempty"`
	Level         string             `json:"level" bson:"level"` // Beginner, Intermediate, Advanced
	Category      string             `json:"category" bson:"category" validate:"required"`
	Modules       []CourseModule     `json:"modules,omitempty" bson:"modules,omitempty"`
	IsActive      bool               `json:"isActive" bson:"isActive"`
	IsFree        bool               `json:"isFree" bson:"isFree"`
	EnrolledCount int                `json:"enrolledCount" bson:"enrolledCount"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updatedAt"`
}
