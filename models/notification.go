// models/notification.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification types
const (
	NotificationTypeOrder      = "order"
	NotificationTypeCommission = "commission"
	NotificationTypeSystem     = "system"
)

// Notification model
type Notification struct {
	ID          primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	RecipientID primitive.ObjectID  `json:"recipient" bson:"recipient"`
	Type        string              `json:"type" bson:"type"`
	Title       string              `json:"title" bson:"title"`
	Message     string              `json:"message" bson:"message"`
	RelatedID   *primitive.ObjectID `json:"relatedId,omitempty" bson:"relatedId,omitempty"`
	Read        bool                `json:"read" bson:"read"`
	CreatedAt   time.Time           `json:"createdAt" bson:"createdAt"`
}

// NotificationFeed is the list endpoint payload
type NotificationFeed struct {
	Notifications []Notification `json:"notifications"`
	UnreadCount   int64          `json:"unreadCount"`
}
