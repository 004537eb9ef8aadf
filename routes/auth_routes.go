package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/naturebridge/store_backend/controllers"
	"github.com/naturebridge/store_backend/middleware"
)

// RegisterAuthRoutes sets up registration, login and logout
func RegisterAuthRoutes(e *echo.Echo, db *mongo.Client) {
	authController := controllers.NewAuthController(db)

	auth := e.Group("/api/auth")
	auth.POST("/register", authController.Register)
	auth.POST("/register-partner", authController.RegisterPartner)
	auth.POST("/login", authController.Login)

	protected := e.Group("/api/auth")
	protected.Use(middleware.JWTMiddleware())
	protected.POST("/logout", authController.Logout)
}
