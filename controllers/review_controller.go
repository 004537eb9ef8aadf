// controllers/review_controller.go
package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/naturebridge/store_backend/config"
	"github.com/naturebridge/store_backend/models"
	"github.com/naturebridge/store_backend/utils"
)

type ReviewController struct {
	DB *mongo.Client
}

func NewReviewController(db *mongo.Client) *ReviewController {
	return &ReviewController{DB: db}
}

// CreateReview submits a review for moderation. One review per user
// per product. The verified-purchase badge comes from the buyer's
// order history, not from the payload.
func (rc *ReviewController) CreateReview(c echo.Context) error {
	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid token",
		})
	}

	productID, err := primitive.ObjectIDFromHex(c.Param("productId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid product ID",
		})
	}

	var review models.Review
	if err := c.Bind(&review); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&review); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Rating must be between 1 and 5",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count, err := config.GetCollection(rc.DB, "products").CountDocuments(ctx, bson.M{"_id": productID, "isActive": true})
	if err != nil || count == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Product not found",
		})
	}

	existing, err := config.GetCollection(rc.DB, "reviews").CountDocuments(ctx, bson.M{
		"user":    userID,
		"product": productID,
	})
	if err == nil && existing > 0 {
		return c.JSON(http.StatusConflict, models.Response{
			Status:  http.StatusConflict,
			Message: "You have already reviewed this product",
		})
	}

	purchased, err := config.GetCollection(rc.DB, "orders").CountDocuments(ctx, bson.M{
		"user":               userID,
		"orderItems.product": productID,
		"status":             bson.M{"$ne": models.OrderStatusCancelled},
	})
	if err != nil {
		log.Println("Failed to check purchase history for review:", err)
	}

	review.ID = primitive.NewObjectID()
	review.UserID = userID
	review.ProductID = productID
	review.IsVerifiedPurchase = purchased > 0
	review.IsApproved = false
	review.Status = models.ReviewStatusPending
	review.CreatedAt = time.Now()
	review.UpdatedAt = time.Now()

	if _, err := config.GetCollection(rc.DB, "reviews").InsertOne(ctx, review); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to submit review",
		})
	}

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Review submitted for moderation",
		Data:    review,
	})
}

// ListProductReviews returns approved reviews for a product page
func (rc *ReviewController) ListProductReviews(c echo.Context) error {
	productID, err := primitive.ObjectIDFromHex(c.Param("productId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid product ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := config.GetCollection(rc.DB, "reviews").Find(ctx,
		bson.M{"product": productID, "status": models.ReviewStatusApproved},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve reviews",
		})
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to decode reviews",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Reviews retrieved successfully",
		Data:    reviews,
	})
}

// ListPendingReviews returns the moderation queue. Admin only.
func (rc *ReviewController) ListPendingReviews(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := config.GetCollection(rc.DB, "reviews").Find(ctx,
		bson.M{"status": models.ReviewStatusPending},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve reviews",
		})
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to decode reviews",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Pending reviews retrieved successfully",
		Data:    reviews,
	})
}

// ApproveReview publishes a pending review and folds its rating into
// the product's average. Admin only.
func (rc *ReviewController) ApproveReview(c echo.Context) error {
	reviewID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid review ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var review models.Review
	after := options.After
	err = config.GetCollection(rc.DB, "reviews").FindOneAndUpdate(ctx,
		bson.M{"_id": reviewID, "status": models.ReviewStatusPending},
		bson.M{"$set": bson.M{
			"status":     models.ReviewStatusApproved,
			"isApproved": true,
			"updatedAt":  time.Now(),
		}},
		&options.FindOneAndUpdateOptions{ReturnDocument: &after},
	).Decode(&review)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Pending review not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to approve review",
		})
	}

	if err := rc.recalculateRating(ctx, review.ProductID); err != nil {
		log.Println("Failed to recalculate product rating:", err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Review approved successfully",
		Data:    review,
	})
}

// RejectReview discards a pending review. Admin only.
func (rc *ReviewController) RejectReview(c echo.Context) error {
	reviewID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid review ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	res, err := config.GetCollection(rc.DB, "reviews").UpdateOne(ctx,
		bson.M{"_id": reviewID, "status": models.ReviewStatusPending},
		bson.M{"$set": bson.M{
			"status":     models.ReviewStatusRejected,
			"isApproved": false,
			"updatedAt":  time.Now(),
		}})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to reject review",
		})
	}
	if res.MatchedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Pending review not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Review rejected",
	})
}

// DeleteReview removes a review outright. Admin only. Approved reviews
// leave the product average, so it gets recomputed.
func (rc *ReviewController) DeleteReview(c echo.Context) error {
	reviewID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid review ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var review models.Review
	err = config.GetCollection(rc.DB, "reviews").FindOneAndDelete(ctx, bson.M{"_id": reviewID}).Decode(&review)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Review not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to delete review",
		})
	}

	if review.Status == models.ReviewStatusApproved {
		if err := rc.recalculateRating(ctx, review.ProductID); err != nil {
			log.Println("Failed to recalculate product rating:", err)
		}
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Review deleted successfully",
	})
}

// recalculateRating recomputes the average from approved reviews so
// the stored figures survive review deletions and re-moderation.
func (rc *ReviewController) recalculateRating(ctx context.Context, productID primitive.ObjectID) error {
	cursor, err := config.GetCollection(rc.DB, "reviews").Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"product": productID, "status": models.ReviewStatusApproved}}},
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"avg":   bson.M{"$avg": "$rating"},
			"count": bson.M{"$sum": 1},
		}}},
	})
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	avg := 0.0
	count := 0
	if cursor.Next(ctx) {
		var result struct {
			Avg   float64 `bson:"avg"`
			Count int     `bson:"count"`
		}
		if err := cursor.Decode(&result); err != nil {
			return err
		}
		avg = utils.RoundMoney(result.Avg)
		count = result.Count
	}

	_, err = config.GetCollection(rc.DB, "products").UpdateByID(ctx, productID, bson.M{
		"$set": bson.M{"averageRating": avg, "reviewCount": count, "updatedAt": time.Now()},
	})
	return err
}
