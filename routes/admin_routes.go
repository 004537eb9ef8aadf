package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/naturebridge/store_backend/controllers"
	"github.com/naturebridge/store_backend/middleware"
	"github.com/naturebridge/store_backend/websocket"
)

// RegisterAdminRoutes sets up partner management, the commission
// workflow and order administration
func RegisterAdminRoutes(e *echo.Echo, db *mongo.Client, hub *websocket.Hub) {
	adminController := controllers.NewAdminController(db, hub)
	orderController := controllers.NewOrderController(db, hub)

	r := e.Group("/api/admin")
	r.Use(middleware.JWTMiddleware())
	r.Use(middleware.RequireAdmin())

	r.GET("/stats", adminController.GetDashboardStats)

	r.GET("/partners", adminController.ListPartners)
	r.GET("/partners/:id", adminController.GetPartnerDetails)
	r.PUT("/partners/:id/commission-rate", adminController.UpdateCommissionRate)

	r.GET("/commissions", adminController.ListCommissions)
	r.GET("/commissions/stats", adminController.GetCommissionStats)
	r.PUT("/commissions/:id/approve", adminController.ApproveCommission)
	r.PUT("/commissions/:id/reject", adminController.RejectCommission)
	r.PUT("/commissions/:id/paid", adminController.MarkCommissionPaid)

	r.GET("/orders", adminController.ListOrders)
	r.PUT("/orders/:id/status", orderController.UpdateOrderStatus)
}
