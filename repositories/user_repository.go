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

type UserRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(db *mongo.Client) *UserRepository {
	return &UserRepository{
		collection: config.GetCollection(db, "users"),
	}
}

func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindPartnerByReferralCode resolves a referral code to an active
// partner account. A code held by a non-partner does not match.
func (r *UserRepository) FindPartnerByReferralCode(ctx context.Context, code string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"referralCode": code, "isPartner": true}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrPartnerNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) (primitive.ObjectID, error) {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	res, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, models.ErrEmailTaken
		}
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// ApplyLedgerDelta adjusts the partner's running totals with a single
// atomic $inc so concurrent commission activity on the same partner
// never loses an update. Zero deltas are omitted from the update.
func (r *UserRepository) ApplyLedgerDelta(ctx context.Context, partnerID primitive.ObjectID, pending, total, paid float64) error {
	inc := bson.M{}
	if pending != 0 {
		inc["pendingCommission"] = pending
	}
	if total != 0 {
		inc["totalEarnings"] = total
	}
	if paid != 0 {
		inc["paidCommission"] = paid
	}
	if len(inc) == 0 {
		return nil
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": partnerID}, bson.M{
		"$inc": inc,
		"$set": bson.M{"updatedAt": time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrPartnerNotFound
	}
	return nil
}

// SetCommissionRate updates a partner's rate. Existing commissions keep
// their snapshot rate; only future orders are affected.
func (r *UserRepository) SetCommissionRate(ctx context.Context, partnerID primitive.ObjectID, rate float64) (*models.User, error) {
	after := options.After
	var user models.User
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": partnerID, "isPartner": true},
		bson.M{"$set": bson.M{"commissionRate": rate, "updatedAt": time.Now()}},
		&options.FindOneAndUpdateOptions{ReturnDocument: &after},
	).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrPartnerNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) ListPartners(ctx context.Context) ([]models.User, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetProjection(bson.M{"password": 0})
	cursor, err := r.collection.Find(ctx, bson.M{"isPartner": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var partners []models.User
	if err := cursor.All(ctx, &partners); err != nil {
		return nil, err
	}
	return partners, nil
}

func (r *UserRepository) ListAdmins(ctx context.Context) ([]models.User, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"role": "admin"},
		options.Find().SetProjection(bson.M{"password": 0}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var admins []models.User
	if err := cursor.All(ctx, &admins); err != nil {
		return nil, err
	}
	return admins, nil
}

// AddPurchasedContent appends digital purchases to the buyer. $addToSet
// keeps repeated purchases of the same item from duplicating entries.
func (r *UserRepository) AddPurchasedContent(ctx context.Context, userID primitive.ObjectID, ebooks, courses []primitive.ObjectID) error {
	addToSet := bson.M{}
	if len(ebooks) > 0 {
		addToSet["purchasedEbooks"] = bson.M{"$each": ebooks}
	}
	if len(courses) > 0 {
		addToSet["purchasedCourses"] = bson.M{"$each": courses}
	}
	if len(addToSet) == 0 {
		return nil
	}

	_, err := r.collection.UpdateByID(ctx, userID, bson.M{
		"$addToSet": addToSet,
		"$set":      bson.M{"updatedAt": time.Now()},
	})
	return err
}

// SetReferralCode backfills a referral code on a partner that is
// missing one (lazy migration for accounts created before codes).
func (r *UserRepository) SetReferralCode(ctx context.Context, userID primitive.ObjectID, code string) error {
	_, err := r.collection.UpdateByID(ctx, userID, bson.M{
		"$set": bson.M{"referralCode": code, "updatedAt": time.Now()},
	})
	return err
}
