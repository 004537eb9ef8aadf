// controllers/setting_controller.go
package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/naturebridge/store_backend/config"
	"github.com/naturebridge/store_backend/models"
)

type SettingController struct {
	DB *mongo.Client
}

func NewSettingController(db *mongo.Client) *SettingController {
	return &SettingController{DB: db}
}

// GetSetting returns one setting by key, served from Redis when warm
func (sc *SettingController) GetSetting(c echo.Context) error {
	key := c.Param("key")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cacheKey := "setting:" + key
	if redisClient := config.GetRedisClient(); redisClient != nil {
		if cached, err := redisClient.Get(ctx, cacheKey).Result(); err == nil {
			var setting models.SiteSetting
			if json.Unmarshal([]byte(cached), &setting) == nil {
				return c.JSON(http.StatusOK, models.Response{
					Status:  http.StatusOK,
					Message: "Setting retrieved successfully",
					Data:    setting,
				})
			}
		}
	}

	var setting models.SiteSetting
	err := config.GetCollection(sc.DB, "settings").FindOne(ctx, bson.M{"key": key}).Decode(&setting)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Setting not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve setting",
		})
	}

	if redisClient := config.GetRedisClient(); redisClient != nil {
		if data, err := json.Marshal(setting); err == nil {
			redisClient.Set(ctx, cacheKey, data, 10*time.Minute)
		}
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Setting retrieved successfully",
		Data:    setting,
	})
}

// ListSettings returns all settings. Admin only.
func (sc *SettingController) ListSettings(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := config.GetCollection(sc.DB, "settings").Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "key", Value: 1}}))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve settings",
		})
	}
	defer cursor.Close(ctx)

	var settings []models.SiteSetting
	if err := cursor.All(ctx, &settings); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to decode settings",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Settings retrieved successfully",
		Data:    settings,
	})
}

// UpsertSetting creates or replaces a setting by key. Admin only.
func (sc *SettingController) UpsertSetting(c echo.Context) error {
	var setting models.SiteSetting
	if err := c.Bind(&setting); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&setting); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Validation failed: " + err.Error(),
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	now := time.Now()
	upsert := true
	_, err := config.GetCollection(sc.DB, "settings").UpdateOne(ctx,
		bson.M{"key": setting.Key},
		bson.M{
			"$set":         bson.M{"value": setting.Value, "description": setting.Description, "updatedAt": now},
			"$setOnInsert": bson.M{"createdAt": now},
		},
		&options.UpdateOptions{Upsert: &upsert})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to save setting",
		})
	}

	if redisClient := config.GetRedisClient(); redisClient != nil {
		redisClient.Del(ctx, "setting:"+setting.Key)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Setting saved successfully",
	})
}
