// controllers/pincode_controller.go
package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"regexp"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/naturebridge/store_backend/config"
	"github.com/naturebridge/store_backend/models"
)

var pincodeRegex = regexp.MustCompile(`^\d{6}$`)

type PincodeController struct {
	DB *mongo.Client
}

func NewPincodeController(db *mongo.Client) *PincodeController {
	return &PincodeController{DB: db}
}

// CheckPincode answers serviceability for a delivery pincode. Results
// are cached in Redis for an hour since the table changes rarely.
func (pc *PincodeController) CheckPincode(c echo.Context) error {
	code := c.Param("code")
	if !pincodeRegex.MatchString(code) {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Pincode must be 6 digits",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cacheKey := "pincode:" + code
	if redisClient := config.GetRedisClient(); redisClient != nil {
		if cached, err := redisClient.Get(ctx, cacheKey).Result(); err == nil {
			var result models.PincodeCheckResult
			if json.Unmarshal([]byte(cached), &result) == nil {
				return c.JSON(http.StatusOK, models.Response{
					Status:  http.StatusOK,
					Message: "Pincode checked",
					Data:    result,
				})
			}
		}
	}

	var pincode models.Pincode
	err := config.GetCollection(pc.DB, "pincodes").FindOne(ctx, bson.M{"code": code, "isActive": true}).Decode(&pincode)

	var result models.PincodeCheckResult
	if err == nil {
		result = models.PincodeCheckResult{
			Serviceable:   true,
			Pincode:       pincode.Code,
			City:          pincode.City,
			State:         pincode.State,
			EstimatedDate: time.Now().AddDate(0, 0, 5).Format("02 Jan 2006"),
			Message:       "Delivery available",
		}
	} else if err == mongo.ErrNoDocuments {
		result = models.PincodeCheckResult{
			Serviceable: false,
			Pincode:     code,
			Message:     "Delivery not available for this pincode",
		}
	} else {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to check pincode",
		})
	}

	if redisClient := config.GetRedisClient(); redisClient != nil {
		if data, err := json.Marshal(result); err == nil {
			redisClient.Set(ctx, cacheKey, data, time.Hour)
		}
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Pincode checked",
		Data:    result,
	})
}

// ListPincodes returns the serviceable area table. Admin only.
func (pc *PincodeController) ListPincodes(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := config.GetCollection(pc.DB, "pincodes").Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "code", Value: 1}}))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve pincodes",
		})
	}
	defer cursor.Close(ctx)

	var pincodes []models.Pincode
	if err := cursor.All(ctx, &pincodes); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to decode pincodes",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Pincodes retrieved successfully",
		Data:    pincodes,
	})
}

// AddPincode adds a serviceable pincode. Admin only.
func (pc *PincodeController) AddPincode(c echo.Context) error {
	var pincode models.Pincode
	if err := c.Bind(&pincode); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&pincode); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Validation failed: " + err.Error(),
		})
	}
	if !pincodeRegex.MatchString(pincode.Code) {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Pincode must be 6 digits",
		})
	}

	pincode.ID = primitive.NewObjectID()
	pincode.IsActive = true
	pincode.CreatedAt = time.Now()
	pincode.UpdatedAt = time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := config.GetCollection(pc.DB, "pincodes").InsertOne(ctx, pincode); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return c.JSON(http.StatusConflict, models.Response{
				Status:  http.StatusConflict,
				Message: "Pincode already exists",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to add pincode",
		})
	}

	pc.invalidateCache(pincode.Code)

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Pincode added successfully",
		Data:    pincode,
	})
}

// RemovePincode deactivates a pincode. Admin only.
func (pc *PincodeController) RemovePincode(c echo.Context) error {
	pincodeID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid pincode ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var pincode models.Pincode
	after := options.After
	err = config.GetCollection(pc.DB, "pincodes").FindOneAndUpdate(ctx,
		bson.M{"_id": pincodeID},
		bson.M{"$set": bson.M{"isActive": false, "updatedAt": time.Now()}},
		&options.FindOneAndUpdateOptions{ReturnDocument: &after},
	).Decode(&pincode)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Pincode not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to remove pincode",
		})
	}

	pc.invalidateCache(pincode.Code)

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Pincode removed successfully",
	})
}

func (pc *PincodeController) invalidateCache(code string) {
	if redisClient := config.GetRedisClient(); redisClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		redisClient.Del(ctx, "pincode:"+code)
	}
}
