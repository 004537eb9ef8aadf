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

type CommissionRepository struct {
	collection *mongo.Collection
}

func NewCommissionRepository(db *mongo.Client) *CommissionRepository {
	return &CommissionRepository{
		collection: config.GetCollection(db, "commissions"),
	}
}

// Insert creates a commission record. The collection carries a unique
// index on the order field, so a second insert for the same order
// surfaces as ErrCommissionExists instead of a duplicate record.
func (r *CommissionRepository) Insert(ctx context.Context, commission *models.Commission) error {
	now := time.Now()
	if commission.ID.IsZero() {
		commission.ID = primitive.NewObjectID()
	}
	commission.CreatedAt = now
	commission.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, commission)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.ErrCommissionExists
		}
		return err
	}
	return nil
}

func (r *CommissionRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Commission, error) {
	var commission models.Commission
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&commission)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrCommissionNotFound
		}
		return nil, err
	}
	return &commission, nil
}

// Transition moves a commission from one status to another with a
// single conditional update: the filter requires the expected prior
// status, so a concurrent transition on the same record can never apply
// twice. Returns ErrCommissionStateConflict when the record exists but
// is no longer in the expected state.
func (r *CommissionRepository) Transition(ctx context.Context, id primitive.ObjectID, from, to string, set bson.M) (*models.Commission, error) {
	if set == nil {
		set = bson.M{}
	}
	set["status"] = to
	set["updatedAt"] = time.Now()

	after := options.After
	var commission models.Commission
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "status": from},
		bson.M{"$set": set},
		&options.FindOneAndUpdateOptions{ReturnDocument: &after},
	).Decode(&commission)
	if err == nil {
		return &commission, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}

	// No match: distinguish missing record from wrong state.
	if _, findErr := r.FindByID(ctx, id); findErr != nil {
		return nil, findErr
	}
	return nil, models.ErrCommissionStateConflict
}

func (r *CommissionRepository) ListByStatus(ctx context.Context, status string) ([]models.Commission, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	cursor, err := r.collection.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var commissions []models.Commission
	if err := cursor.All(ctx, &commissions); err != nil {
		return nil, err
	}
	return commissions, nil
}

func (r *CommissionRepository) ListByPartner(ctx context.Context, partnerID primitive.ObjectID) ([]models.Commission, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"partner": partnerID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var commissions []models.Commission
	if err := cursor.All(ctx, &commissions); err != nil {
		return nil, err
	}
	return commissions, nil
}

// SummaryByStatus groups commission totals per status for the admin
// dashboard.
func (r *CommissionRepository) SummaryByStatus(ctx context.Context) ([]models.CommissionSummaryEntry, error) {
	cursor, err := r.collection.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   "$status",
			"total": bson.M{"$sum": "$commissionAmount"},
			"count": bson.M{"$sum": 1},
		}}},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var summary []models.CommissionSummaryEntry
	if err := cursor.All(ctx, &summary); err != nil {
		return nil, err
	}
	return summary, nil
}
