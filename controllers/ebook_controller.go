// controllers/ebook_controller.go
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

type EbookController struct {
	DB *mongo.Client
}

func NewEbookController(db *mongo.Client) *EbookController {
	return &EbookController{DB: db}
}

// ListEbooks returns the active ebook catalog. The PDF file path is
// never serialized here.
func (ec *EbookController) ListEbooks(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{"isActive": true}
	if category := c.QueryParam("category"); category != "" {
		filter["category"] = category
	}

	collection := config.GetCollection(ec.DB, "ebooks")
	cursor, err := collection.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve ebooks",
		})
	}
	defer cursor.Close(ctx)

	var ebooks []models.Ebook
	if err := cursor.All(ctx, &ebooks); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to decode ebooks",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Ebooks retrieved successfully",
		Data:    ebooks,
	})
}

// GetEbookBySlug returns one ebook's public details
func (ec *EbookController) GetEbookBySlug(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := config.GetCollection(ec.DB, "ebooks")

	var ebook models.Ebook
	err := collection.FindOne(ctx, bson.M{"slug": c.Param("slug"), "isActive": true}).Decode(&ebook)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Ebook not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve ebook",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Ebook retrieved successfully",
		Data:    ebook,
	})
}

// DownloadEbook hands out the PDF location, gated on purchase. Free
// ebooks are open to any authenticated user.
func (ec *EbookController) DownloadEbook(c echo.Context) error {
	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid token",
		})
	}

	ebookID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid ebook ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var ebook models.Ebook
	err = config.GetCollection(ec.DB, "ebooks").FindOne(ctx, bson.M{"_id": ebookID, "isActive": true}).Decode(&ebook)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Ebook not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve ebook",
		})
	}

	if !ebook.IsFree {
		count, err := config.GetCollection(ec.DB, "users").CountDocuments(ctx, bson.M{
			"_id":             userID,
			"purchasedEbooks": ebookID,
		})
		if err != nil || count == 0 {
			return c.JSON(http.StatusForbidden, models.Response{
				Status:  http.StatusForbidden,
				Message: "Purchase required to download this ebook",
			})
		}
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Download ready",
		Data: models.EbookDownload{
			Title:       ebook.Title,
			PDFURL:      ebook.PDFFile,
			DownloadURL: ebook.PDFFile,
		},
	})
}

// CreateEbook creates an ebook entry. Admin only.
func (ec *EbookController) CreateEbook(c echo.Context) error {
	var ebook models.Ebook
	if err := c.Bind(&ebook); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	if ebook.Slug == "" {
		ebook.Slug = utils.Slugify(ebook.Title)
	}
	if err := c.Validate(&ebook); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Validation failed: " + err.Error(),
		})
	}
	if ebook.Language == "" {
		ebook.Language = "English"
	}

	ebook.ID = primitive.NewObjectID()
	ebook.IsActive = true
	ebook.CreatedAt = time.Now()
	ebook.UpdatedAt = time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := config.GetCollection(ec.DB, "ebooks").InsertOne(ctx, ebook); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return c.JSON(http.StatusConflict, models.Response{
				Status:  http.StatusConflict,
				Message: "Ebook with this slug already exists",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create ebook",
		})
	}

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Ebook created successfully",
		Data:    ebook,
	})
}

// UploadEbookPDF attaches the gated PDF file to an ebook. Admin only.
func (ec *EbookController) UploadEbookPDF(c echo.Context) error {
	ebookID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid ebook ID",
		})
	}

	file, err := c.FormFile("pdf")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "PDF file is required",
		})
	}

	src, err := file.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to read file",
		})
	}
	defer src.Close()

	fileData, err := io.ReadAll(src)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to read file",
		})
	}

	pdfURL, err := utils.UploadFileToPath(fileData, utils.UniqueFilename(file.Filename), "document", "ebooks")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "PDF upload failed: " + err.Error(),
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	res, err := config.GetCollection(ec.DB, "ebooks").UpdateByID(ctx, ebookID, bson.M{
		"$set": bson.M{"pdfFile": pdfURL, "updatedAt": time.Now()},
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to attach PDF",
		})
	}
	if res.MatchedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Ebook not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "PDF uploaded successfully",
	})
}
