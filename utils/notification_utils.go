package utils

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"gopkg.in/gomail.v2"

	"github.com/naturebridge/store_backend/config"
	"github.com/naturebridge/store_backend/models"
)

// SaveNotification saves a notification to the database
func SaveNotification(db *mongo.Client, recipientID primitive.ObjectID, title, message, notifType string, relatedID *primitive.ObjectID) error {
	collection := config.GetCollection(db, "notifications")

	notification := models.Notification{
		ID:          primitive.NewObjectID(),
		RecipientID: recipientID,
		Title:       title,
		Message:     message,
		Type:        notifType,
		RelatedID:   relatedID,
		Read:        false,
		CreatedAt:   time.Now(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := collection.InsertOne(ctx, notification)
	return err
}

// SendEmail delivers a plain-text email through the configured SMTP
// relay. Failures are logged, not fatal; email is best-effort here.
func SendEmail(to, subject, body string) error {
	smtpHost := os.Getenv("SMTP_HOST")
	smtpUser := os.Getenv("SMTP_USER")
	smtpPass := os.Getenv("SMTP_PASS")
	smtpPort := 587
	if portStr := os.Getenv("SMTP_PORT"); portStr != "" {
		fmt.Sscanf(portStr, "%d", &smtpPort)
	}

	if smtpHost == "" {
		log.Printf("SMTP_HOST not configured, skipping email to %s", to)
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", smtpUser)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPass)
	if err := d.DialAndSend(m); err != nil {
		log.Printf("Failed to send email to %s: %v", to, err)
		return err
	}
	return nil
}

// NotifyPartnerOfCommission emails the partner about commission
// activity and drops a matching in-app notification.
func NotifyPartnerOfCommission(db *mongo.Client, partner *models.User, commission *models.Commission, title, message string) {
	_ = SendEmail(partner.Email, title, fmt.Sprintf("Dear %s,\n\n%s\n\nBest regards,\nNatureBridge Store", partner.Name, message))

	if err := SaveNotification(db, partner.ID, title, message, models.NotificationTypeCommission, &commission.ID); err != nil {
		log.Printf("Failed to save commission notification for partner %s: %v", partner.ID.Hex(), err)
	}
}
