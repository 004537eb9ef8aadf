// controllers/user_controller.go
package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/naturebridge/store_backend/config"
	"github.com/naturebridge/store_backend/models"
	"github.com/naturebridge/store_backend/utils"
)

type UserController struct {
	DB *mongo.Client
}

func NewUserController(db *mongo.Client) *UserController {
	return &UserController{DB: db}
}

// GetProfile returns the authenticated user's account
func (uc *UserController) GetProfile(c echo.Context) error {
	user, err := utils.GetUserFromToken(c, uc.DB)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid token",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Profile retrieved successfully",
		Data:    user,
	})
}

// UpdateProfile updates name, phone, avatar and addresses
func (uc *UserController) UpdateProfile(c echo.Context) error {
	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid token",
		})
	}

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	set := bson.M{"updatedAt": time.Now()}
	if req.Name != "" {
		set["name"] = utils.SanitizeInput(req.Name)
	}
	if req.Phone != "" {
		phone, err := utils.SanitizePhone(req.Phone)
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: "Invalid phone number",
			})
		}
		set["phone"] = phone
	}
	if req.Avatar != "" {
		set["avatar"] = req.Avatar
	}
	if req.Addresses != nil {
		set["addresses"] = req.Addresses
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := config.GetCollection(uc.DB, "users")
	res, err := collection.UpdateByID(ctx, userID, bson.M{"$set": set})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update profile",
		})
	}
	if res.MatchedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "User not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Profile updated successfully",
	})
}

// UpdateCart replaces the persistent cart wholesale. The frontend owns
// cart state; the backend just keeps it across devices.
func (uc *UserController) UpdateCart(c echo.Context) error {
	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid token",
		})
	}

	var cart []models.CartItem
	if err := c.Bind(&cart); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := config.GetCollection(uc.DB, "users")
	_, err = collection.UpdateByID(ctx, userID, bson.M{
		"$set": bson.M{"cart": cart, "updatedAt": time.Now()},
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update cart",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Cart updated successfully",
		Data:    cart,
	})
}

// GetMyLibrary returns the user's purchased ebooks and courses
func (uc *UserController) GetMyLibrary(c echo.Context) error {
	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid token",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	if err := config.GetCollection(uc.DB, "users").FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "User not found",
		})
	}

	ebooks := []models.Ebook{}
	if len(user.PurchasedEbooks) > 0 {
		cursor, err := config.GetCollection(uc.DB, "ebooks").Find(ctx, bson.M{"_id": bson.M{"$in": user.PurchasedEbooks}})
		if err == nil {
			defer cursor.Close(ctx)
			if err := cursor.All(ctx, &ebooks); err != nil {
				ebooks = []models.Ebook{}
			}
		}
	}

	courses := []models.Course{}
	if len(user.PurchasedCourses) > 0 {
		cursor, err := config.GetCollection(uc.DB, "courses").Find(ctx, bson.M{"_id": bson.M{"$in": user.PurchasedCourses}})
		if err == nil {
			defer cursor.Close(ctx)
			if err := cursor.All(ctx, &courses); err != nil {
				courses = []models.Course{}
			}
		}
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Library retrieved successfully",
		Data: map[string]interface{}{
			"ebooks":  ebooks,
			"courses": courses,
		},
	})
}

// ToggleWishlist adds or removes a product from the wishlist
func (uc *UserController) ToggleWishlist(c echo.Context) error {
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

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := config.GetCollection(uc.DB, "users")

	var user models.User
	if err := collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "User not found",
		})
	}

	inList := false
	for _, id := range user.Wishlist {
		if id == productID {
			inList = true
			break
		}
	}

	var update bson.M
	var message string
	if inList {
		update = bson.M{"$pull": bson.M{"wishlist": productID}}
		message = "Removed from wishlist"
	} else {
		update = bson.M{"$addToSet": bson.M{"wishlist": productID}}
		message = "Added to wishlist"
	}
	update["$set"] = bson.M{"updatedAt": time.Now()}

	if _, err := collection.UpdateByID(ctx, userID, update); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update wishlist",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: message,
	})
}
