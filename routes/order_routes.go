package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/naturebridge/store_backend/controllers"
	"github.com/naturebridge/store_backend/middleware"
	"github.com/naturebridge/store_backend/websocket"
)

// RegisterOrderRoutes sets up order placement, history and payment
func RegisterOrderRoutes(e *echo.Echo, db *mongo.Client, hub *websocket.Hub) {
	orderController := controllers.NewOrderController(db, hub)
	paymentController := controllers.NewPaymentController(db)

	r := e.Group("/api")
	r.Use(middleware.JWTMiddleware())

	r.POST("/orders", orderController.CreateOrder)
	r.GET("/orders", orderController.GetMyOrders)
	r.GET("/orders/:id", orderController.GetOrder)
	r.GET("/orders/:id/invoice", orderController.GetInvoice)

	r.POST("/payment/order", paymentController.CreatePaymentOrder)
	r.POST("/payment/verify", paymentController.VerifyPayment)
}
