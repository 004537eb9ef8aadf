package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/naturebridge/store_backend/controllers"
	"github.com/naturebridge/store_backend/middleware"
	"github.com/naturebridge/store_backend/models"
	"github.com/naturebridge/store_backend/utils"
	"github.com/naturebridge/store_backend/websocket"
)

// RegisterUserRoutes sets up profile, cart, wishlist, notification and
// websocket routes for authenticated users
func RegisterUserRoutes(e *echo.Echo, db *mongo.Client, hub *websocket.Hub) {
	userController := controllers.NewUserController(db)
	notificationController := controllers.NewNotificationController(db)

	r := e.Group("/api")
	r.Use(middleware.JWTMiddleware())

	r.GET("/users/profile", userController.GetProfile)
	r.PUT("/users/profile", userController.UpdateProfile)
	r.PUT("/users/cart", userController.UpdateCart)
	r.GET("/users/library", userController.GetMyLibrary)
	r.POST("/users/wishlist/:productId", userController.ToggleWishlist)

	r.GET("/notifications", notificationController.GetMyNotifications)
	r.PUT("/notifications/read-all", notificationController.MarkAllRead)
	r.PUT("/notifications/:id/read", notificationController.MarkRead)
	r.DELETE("/notifications/:id", notificationController.DeleteNotification)

	r.GET("/ws", func(c echo.Context) error {
		userID, err := utils.GetUserIDFromToken(c)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, models.Response{
				Status:  http.StatusUnauthorized,
				Message: "Invalid token",
			})
		}
		role, _ := c.Get("role").(string)
		isAdmin := role == "admin"
		return websocket.HandleWebSocket(c, hub, userID, isAdmin)
	})
}
