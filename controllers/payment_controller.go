// controllers/payment_controller.go
package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/naturebridge/store_backend/models"
	"github.com/naturebridge/store_backend/repositories"
	"github.com/naturebridge/store_backend/services"
	"github.com/naturebridge/store_backend/utils"
)

type PaymentController struct {
	DB      *mongo.Client
	orders  *repositories.OrderRepository
	gateway *services.RazorpayService
}

func NewPaymentController(db *mongo.Client) *PaymentController {
	return &PaymentController{
		DB:      db,
		orders:  repositories.NewOrderRepository(db),
		gateway: services.NewRazorpayService(),
	}
}

// NewPaymentControllerWithGateway wires a custom gateway client
func NewPaymentControllerWithGateway(db *mongo.Client, gateway *services.RazorpayService) *PaymentController {
	pc := NewPaymentController(db)
	pc.gateway = gateway
	return pc
}

// CreatePaymentOrder registers a gateway order for online checkout
func (pc *PaymentController) CreatePaymentOrder(c echo.Context) error {
	var req models.CreatePaymentOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Amount must be greater than zero",
		})
	}

	paymentOrder, err := pc.gateway.CreateOrder(req.Amount, req.Currency, req.Receipt)
	if err != nil {
		log.Printf("Failed to create payment order: %v", err)
		return c.JSON(http.StatusBadGateway, models.Response{
			Status:  http.StatusBadGateway,
			Message: "Failed to create payment order",
		})
	}

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Payment order created successfully",
		Data:    paymentOrder,
	})
}

// VerifyPayment checks the checkout callback signature and marks the
// store order paid. A bad signature never touches the order.
func (pc *PaymentController) VerifyPayment(c echo.Context) error {
	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid token",
		})
	}

	var req models.VerifyPaymentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Validation failed: " + err.Error(),
		})
	}

	if !pc.gateway.VerifySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Payment signature verification failed",
		})
	}

	orderID, err := primitive.ObjectIDFromHex(req.OrderID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid order ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	order, err := pc.orders.FindByID(ctx, orderID)
	if err != nil {
		if err == models.ErrOrderNotFound {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Order not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve order",
		})
	}

	if order.UserID != userID {
		return c.JSON(http.StatusForbidden, models.Response{
			Status:  http.StatusForbidden,
			Message: "Not authorized to verify this payment",
		})
	}

	now := time.Now()
	result := models.PaymentResult{
		ID:         req.RazorpayPaymentID,
		Status:     "captured",
		UpdateTime: now.Format(time.RFC3339),
	}

	order, err = pc.orders.MarkPaid(ctx, orderID, result)
	if err != nil {
		log.Printf("Failed to mark order %s paid: %v", orderID.Hex(), err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to record payment",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Payment verified successfully",
		Data:    order,
	})
}
