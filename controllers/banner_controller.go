// controllers/banner_controller.go
package controllers

import (
	"context"
	"io"
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

type BannerController struct {
	DB *mongo.Client
}

func NewBannerController(db *mongo.Client) *BannerController {
	return &BannerController{DB: db}
}

// ListBanners returns active banners for the storefront
func (bc *BannerController) ListBanners(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := config.GetCollection(bc.DB, "banners")
	cursor, err := collection.Find(ctx, bson.M{"isActive": true},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve banners",
		})
	}
	defer cursor.Close(ctx)

	var banners []models.Banner
	if err := cursor.All(ctx, &banners); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to decode banners",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Banners retrieved successfully",
		Data:    banners,
	})
}

// CreateBanner creates a banner from multipart form data. Admin only.
func (bc *BannerController) CreateBanner(c echo.Context) error {
	title := c.FormValue("title")
	if title == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Banner title is required",
		})
	}

	file, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Banner image is required",
		})
	}
	if !utils.IsValidImageFile(file) {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Unsupported image format",
		})
	}

	src, err := file.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to read image",
		})
	}
	defer src.Close()

	fileData, err := io.ReadAll(src)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to read image",
		})
	}

	imageURL, err := utils.UploadFileToPath(fileData, utils.UniqueFilename(file.Filename), "image", "banners")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Image upload failed: " + err.Error(),
		})
	}

	banner := models.Banner{
		ID:        primitive.NewObjectID(),
		Title:     utils.SanitizeInput(title),
		Image:     imageURL,
		Link:      c.FormValue("link"),
		IsActive:  true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := config.GetCollection(bc.DB, "banners")
	if _, err := collection.InsertOne(ctx, banner); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create banner",
		})
	}

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Banner created successfully",
		Data:    banner,
	})
}

// DeleteBanner removes a banner and its stored image. Admin only.
func (bc *BannerController) DeleteBanner(c echo.Context) error {
	bannerID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid banner ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := config.GetCollection(bc.DB, "banners")

	var banner models.Banner
	err = collection.FindOneAndDelete(ctx, bson.M{"_id": bannerID}).Decode(&banner)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Banner not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to delete banner",
		})
	}

	// Stored image cleanup is best-effort
	_ = utils.DeleteUploadedFile(banner.Image)

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Banner deleted successfully",
	})
}
