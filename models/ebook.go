// models/ebook.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Ebook model. PDFFile is only exposed through the purchase-gated
// download endpoint, never in catalog listings.
type Ebook struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title" validate:"required"`
	Slug        string             `json:"slug" bson:"slug" validate:"required"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	Author      string             `json:"author,omitempty" bson:"author,omitempty"`
	Images      []ProductImage     `json:"images,omitempty" bson:"images,omitempty"`
	CoverImage  string             `json:"coverImage,omitempty" bson:"coverImage,omitempty"`
	PDFFile     string             `json:"-" bson:"pdfFile,omitempty"`
	Price       float64            `json:"price" bson:"price"`
	MRP         float64            `json:"mrp,omitempty" bson:"mrp,omitempty"`
	Pages       int                `json:"pages,omitempty" bson:"pages,omitempty"`
	Language    string             `json:"language" bson:"language"`
	Category    string             `json:"category" bson:"category" validate:"required"`
	IsActive    bool               `json:"isActive" bson:"isActive"`
	IsFree      bool               `json:"isFree" bson:"isFree"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// EbookDownload is returned by the gated download endpoint
type EbookDownload struct {
	Title       string `json:"title"`
	PDFURL      string `json:"pdfUrl"`
	DownloadURL string `json:"downloadUrl"`
}
