// models/product.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductImage is a stored media reference
type ProductImage struct {
	URL  string `json:"url" bson:"url"`
	Alt  string `json:"alt,omitempty" bson:"alt,omitempty"`
	Type string `json:"type,omitempty" bson:"type,omitempty"` // product, packaging, ingredient
}

// ProductPack is a purchasable variant of a product
type ProductPack struct {
	Name      string  `json:"name" bson:"name"`
	Quantity  string  `json:"quantity,omitempty" bson:"quantity,omitempty"`
	Price     float64 `json:"price" bson:"price"`
	MRP       float64 `json:"mrp,omitempty" bson:"mrp,omitempty"`
	IsDefault bool    `json:"isDefault" bson:"isDefault"`
}

// ProductFAQ is a question/answer pair shown on the product page
type ProductFAQ struct {
	Question string `json:"question" bson:"question"`
	Answer   string `json:"answer" bson:"answer"`
}

// ProductBenefit is an icon/text highlight
type ProductBenefit struct {
	Icon string `json:"icon,omitempty" bson:"icon,omitempty"`
	Text string `json:"text" bson:"text"`
}

// ProductSections toggles page sections per product
type ProductSections struct {
	ShowBenefits    bool `json:"showBenefits" bson:"showBenefits"`
	ShowIngredients bool `json:"showIngredients" bson:"showIngredients"`
	ShowReviews     bool `json:"showReviews" bson:"showReviews"`
}

// Product model
type Product struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title" validate:"required"`
	Slug        string             `json:"slug" bson:"slug" validate:"required"`
	Tagline     string             `json:"tagline,omitempty" bson:"tagline,omitempty"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`

	MRP          float64 `json:"mrp" bson:"mrp" validate:"required,gte=0"`
	SellingPrice float64 `json:"sellingPrice" bson:"sellingPrice" validate:"required,gte=0"`
	Stock        int     `json:"stock" bson:"stock"`
	SKU          string  `json:"sku,omitempty" bson:"sku,omitempty"`

	CategoryID *primitive.ObjectID `json:"category,omitempty" bson:"category,omitempty"`

	Images      []ProductImage   `json:"images,omitempty" bson:"images,omitempty"`
	Benefits    []ProductBenefit `json:"benefits,omitempty" bson:"benefits,omitempty"`
	Ingredients string           `json:"ingredients,omitempty" bson:"ingredients,omitempty"`
	HowToUse    string           `json:"howToUse,omitempty" bson:"howToUse,omitempty"`
	Disclaimer  string           `json:"disclaimer,omitempty" bson:"disclaimer,omitempty"`
	FAQs        []ProductFAQ     `json:"faqs,omitempty" bson:"faqs,omitempty"`

	MetaTitle       string `json:"metaTitle,omitempty" bson:"metaTitle,omitempty"`
	MetaDescription string `json:"metaDescription,omitempty" bson:"metaDescription,omitempty"`

	Packs []ProductPack `json:"packs,omitempty" bson:"packs,omitempty"`

	FrequentlyBoughtTogether []primitive.ObjectID `json:"frequentlyBoughtTogether,omitempty" bson:"frequentlyBoughtTogether,omitempty"`

	AverageRating float64 `json:"averageRating" bson:"averageRating"`
	ReviewCount   int     `json:"reviewCount" bson:"reviewCount"`

	IsActive bool            `json:"isActive" bson:"isActive"`
	Sections ProductSections `json:"sections" bson:"sections"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}
