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

type OrderRepository struct {
	collection *mongo.Collection
}

func NewOrderRepository(db *mongo.Client) *OrderRepository {
	return &OrderRepository{
		collection: config.GetCollection(db, "orders"),
	}
}

func (r *OrderRepository) Insert(ctx context.Context, order *models.Order) (primitive.ObjectID, error) {
	now := time.Now()
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	order.CreatedAt = now
	order.UpdatedAt = now
	if order.Status == "" {
		order.Status = models.OrderStatusProcessing
	}

	res, err := r.collection.InsertOne(ctx, order)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	return r.list(ctx, bson.M{"user": userID})
}

// ListByPartner returns every order attributed to the partner.
func (r *OrderRepository) ListByPartner(ctx context.Context, partnerID primitive.ObjectID) ([]models.Order, error) {
	return r.list(ctx, bson.M{"referredBy": partnerID})
}

func (r *OrderRepository) ListAll(ctx context.Context) ([]models.Order, error) {
	return r.list(ctx, bson.M{})
}

func (r *OrderRepository) list(ctx context.Context, filter bson.M) ([]models.Order, error) {
	cursor, err := r.collection.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderRepository) MarkCommissionGenerated(ctx context.Context, orderID primitive.ObjectID) error {
	_, err := r.collection.UpdateByID(ctx, orderID, bson.M{
		"$set": bson.M{"commissionGenerated": true, "updatedAt": time.Now()},
	})
	return err
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, orderID primitive.ObjectID, status string) (*models.Order, error) {
	set := bson.M{"status": status, "updatedAt": time.Now()}
	if status == models.OrderStatusDelivered {
		now := time.Now()
		set["isDelivered"] = true
		set["deliveredAt"] = now
	}

	after := options.After
	var order models.Order
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": orderID},
		bson.M{"$set": set},
		&options.FindOneAndUpdateOptions{ReturnDocument: &after},
	).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

// MarkPaid records the gateway confirmation on the order.
func (r *OrderRepository) MarkPaid(ctx context.Context, orderID primitive.ObjectID, result models.PaymentResult) (*models.Order, error) {
	now := time.Now()
	after := options.After
	var order models.Order
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": orderID},
		bson.M{"$set": bson.M{
			"isPaid":        true,
			"paidAt":        now,
			"paymentResult": result,
			"updatedAt":     now,
		}},
		&options.FindOneAndUpdateOptions{ReturnDocument: &after},
	).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}
