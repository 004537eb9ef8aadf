package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/naturebridge/store_backend/config"
	"github.com/naturebridge/store_backend/models"
)

type NotificationRepository struct {
	collection *mongo.Collection
}

func NewNotificationRepository(db *mongo.Client) *NotificationRepository {
	return &NotificationRepository{
		collection: config.GetCollection(db, "notifications"),
	}
}

// InsertMany persists a batch of notifications in one call (fan-out).
func (r *NotificationRepository) InsertMany(ctx context.Context, notifications []models.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	docs := make([]interface{}, 0, len(notifications))
	now := time.Now()
	for i := range notifications {
		if notifications[i].ID.IsZero() {
			notifications[i].ID = primitive.NewObjectID()
		}
		notifications[i].CreatedAt = now
		docs = append(docs, notifications[i])
	}

	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

func (r *NotificationRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Notification, error) {
	var notification models.Notification
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&notification)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, mongo.ErrNoDocuments
		}
		return nil, err
	}
	return &notification, nil
}

// ListByRecipient returns the newest notifications for a user, capped.
func (r *NotificationRepository) ListByRecipient(ctx context.Context, recipientID primitive.ObjectID, limit int64) ([]models.Notification, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"recipient": recipientID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(limit))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var notifications []models.Notification
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, recipientID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"recipient": recipientID, "read": false})
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.UpdateByID(ctx, id, bson.M{"$set": bson.M{"read": true}})
	return err
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, recipientID primitive.ObjectID) error {
	_, err := r.collection.UpdateMany(ctx,
		bson.M{"recipient": recipientID, "read": false},
		bson.M{"$set": bson.M{"read": true}})
	return err
}

func (r *NotificationRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
