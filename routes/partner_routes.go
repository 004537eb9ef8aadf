package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/naturebridge/store_backend/controllers"
	"github.com/naturebridge/store_backend/middleware"
)

// RegisterPartnerRoutes sets up the partner dashboard and earnings views
func RegisterPartnerRoutes(e *echo.Echo, db *mongo.Client) {
	partnerController := controllers.NewPartnerController(db)

	r := e.Group("/api/partner")
	r.Use(middleware.JWTMiddleware())
	r.Use(middleware.RequirePartner())

	r.GET("/dashboard", partnerController.GetDashboard)
	r.GET("/referral-link", partnerController.GetReferralLink)
	r.GET("/commissions", partnerController.GetMyCommissions)
	r.GET("/orders", partnerController.GetReferredOrders)
}
