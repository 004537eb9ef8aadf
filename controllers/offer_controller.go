// controllers/offer_controller.go
package controllers

import (
	"context"
	"net/http"
	"strings"
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

type OfferController struct {
	DB *mongo.Client
}

func NewOfferController(db *mongo.Client) *OfferController {
	return &OfferController{DB: db}
}

// ValidateOffer checks an offer code against the cart value and returns
// the discount that would apply.
func (oc *OfferController) ValidateOffer(c echo.Context) error {
	code := strings.ToUpper(strings.TrimSpace(c.QueryParam("code")))
	if code == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Offer code is required",
		})
	}

	orderValue, err := utils.ParseFloat(c.QueryParam("orderValue"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid order value",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var offer models.Offer
	err = config.GetCollection(oc.DB, "offers").FindOne(ctx, bson.M{"code": code, "isActive": true}).Decode(&offer)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Offer code not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to validate offer",
		})
	}

	now := time.Now()
	if now.Before(offer.StartDate) || (offer.EndDate != nil && now.After(*offer.EndDate)) {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Offer is not currently active",
		})
	}
	if orderValue < offer.MinOrderValue {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Order value below the offer minimum",
		})
	}

	discount := offer.DiscountValue
	if offer.DiscountType == "percentage" {
		discount = utils.RoundMoney(orderValue * offer.DiscountValue / 100)
	}
	if discount > orderValue {
		discount = orderValue
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Offer is valid",
		Data: map[string]interface{}{
			"offer":    offer,
			"discount": discount,
		},
	})
}

// ListOffers returns all offers for the admin panel
func (oc *OfferController) ListOffers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := config.GetCollection(oc.DB, "offers").Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve offers",
		})
	}
	defer cursor.Close(ctx)

	var offers []models.Offer
	if err := cursor.All(ctx, &offers); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to decode offers",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Offers retrieved successfully",
		Data:    offers,
	})
}

// CreateOffer creates a discount code. Admin only.
func (oc *OfferController) CreateOffer(c echo.Context) error {
	var offer models.Offer
	if err := c.Bind(&offer); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&offer); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Validation failed: " + err.Error(),
		})
	}

	offer.ID = primitive.NewObjectID()
	offer.Code = strings.ToUpper(strings.TrimSpace(offer.Code))
	if offer.DiscountType == "" {
		offer.DiscountType = "percentage"
	}
	if offer.ApplicableTo == "" {
		offer.ApplicableTo = "all"
	}
	if offer.StartDate.IsZero() {
		offer.StartDate = time.Now()
	}
	offer.IsActive = true
	offer.CreatedAt = time.Now()
	offer.UpdatedAt = time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := config.GetCollection(oc.DB, "offers").InsertOne(ctx, offer); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return c.JSON(http.StatusConflict, models.Response{
				Status:  http.StatusConflict,
				Message: "Offer with this code already exists",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create offer",
		})
	}

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Offer created successfully",
		Data:    offer,
	})
}

// DeleteOffer deactivates an offer code. Admin only.
func (oc *OfferController) DeleteOffer(c echo.Context) error {
	offerID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid offer ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	res, err := config.GetCollection(oc.DB, "offers").UpdateByID(ctx, offerID, bson.M{
		"$set": bson.M{"isActive": false, "updatedAt": time.Now()},
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to delete offer",
		})
	}
	if res.MatchedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Offer not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Offer deleted successfully",
	})
}
