// controllers/order_controller.go
package controllers

import (
	"context"
	"fmt"
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
	ws "github.com/naturebridge/store_backend/websocket"
)

type OrderController struct {
	DB          *mongo.Client
	orders      *repositories.OrderRepository
	users       *repositories.UserRepository
	commissions *services.CommissionService
	hub         *ws.Hub
}

func NewOrderController(db *mongo.Client, hub *ws.Hub) *OrderController {
	users := repositories.NewUserRepository(db)
	orders := repositories.NewOrderRepository(db)
	return &OrderController{
		DB:     db,
		orders: orders,
		users:  users,
		commissions: services.NewCommissionService(
			users,
			repositories.NewCommissionRepository(db),
			orders,
			repositories.NewNotificationRepository(db),
		),
		hub: hub,
	}
}

// CreateOrder places an order for the authenticated user. Attribution
// runs first (explicit code beats signup referral), then the order is
// persisted and the commission record is created before the response
// goes out, so a ledger failure is never silent.
func (oc *OrderController) CreateOrder(c echo.Context) error {
	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid token",
		})
	}

	var req models.CreateOrderRequest
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

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buyer, err := oc.users.FindByID(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "User not found",
		})
	}

	partnerID, matchedCode, err := oc.commissions.Attribute(ctx, buyer, req.ReferralCode)
	if err != nil {
		log.Printf("Attribution failed for order by user %s: %v", userID.Hex(), err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to resolve referral",
		})
	}

	order := models.Order{
		UserID:          userID,
		OrderItems:      req.OrderItems,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		ItemsPrice:      req.ItemsPrice,
		TaxPrice:        req.TaxPrice,
		ShippingPrice:   req.ShippingPrice,
		TotalPrice:      req.TotalPrice,
		Status:          models.OrderStatusProcessing,
		ReferredBy:      partnerID,
		ReferralCode:    matchedCode,
	}

	orderID, err := oc.orders.Insert(ctx, &order)
	if err != nil {
		log.Printf("Failed to create order: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create order",
		})
	}
	order.ID = orderID

	message := "Order created successfully"
	if err := oc.commissions.CreateForOrder(ctx, &order); err != nil {
		log.Printf("Commission generation failed for order %s: %v", orderID.Hex(), err)
		message = "Order created, but commission generation failed"
	}

	// Digital items unlock immediately for COD-free checkout flows
	oc.grantDigitalContent(ctx, userID, order.OrderItems)

	oc.commissions.NotifyAdminsOfOrder(ctx, &order, buyer.Name)
	oc.hub.NotifyOrderCreated(order)

	go func() {
		body := fmt.Sprintf("Dear %s,\n\nYour order %s for %.2f has been placed successfully.\n\nThank you for shopping with us,\nNatureBridge Store",
			buyer.Name, orderID.Hex(), order.TotalPrice)
		_ = utils.SendEmail(buyer.Email, "Order confirmation", body)
	}()

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: message,
		Data:    order,
	})
}

// grantDigitalContent unlocks purchased ebooks and courses for the buyer
func (oc *OrderController) grantDigitalContent(ctx context.Context, userID primitive.ObjectID, items []models.OrderItem) {
	var ebooks, courses []primitive.ObjectID
	for _, item := range items {
		switch item.ItemType {
		case models.ItemTypeEbook:
			if item.EbookID != nil {
				ebooks = append(ebooks, *item.EbookID)
			}
		case models.ItemTypeCourse:
			if item.CourseID != nil {
				courses = append(courses, *item.CourseID)
			}
		}
	}
	if len(ebooks) == 0 && len(courses) == 0 {
		return
	}
	if err := oc.users.AddPurchasedContent(ctx, userID, ebooks, courses); err != nil {
		log.Printf("Failed to grant digital content to user %s: %v", userID.Hex(), err)
	}
}

// GetMyOrders returns the authenticated user's orders, newest first
func (oc *OrderController) GetMyOrders(c echo.Context) error {
	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid token",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	orders, err := oc.orders.ListByUser(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve orders",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Orders retrieved successfully",
		Data:    orders,
	})
}

// GetOrder returns one order. Buyers only see their own; admins see all.
func (oc *OrderController) GetOrder(c echo.Context) error {
	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid token",
		})
	}

	orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid order ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	order, err := oc.orders.FindByID(ctx, orderID)
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

	if order.UserID != userID && c.Get("role") != "admin" {
		return c.JSON(http.StatusForbidden, models.Response{
			Status:  http.StatusForbidden,
			Message: "Not authorized to view this order",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Order retrieved successfully",
		Data:    order,
	})
}

// UpdateOrderStatus moves an order through its fulfilment states and
// pushes the change to the buyer over WebSocket.
func (oc *OrderController) UpdateOrderStatus(c echo.Context) error {
	orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid order ID",
		})
	}

	var req models.UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	switch req.Status {
	case models.OrderStatusProcessing, models.OrderStatusShipped,
		models.OrderStatusDelivered, models.OrderStatusCancelled:
	default:
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid order status",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	order, err := oc.orders.UpdateStatus(ctx, orderID, req.Status)
	if err != nil {
		if err == models.ErrOrderNotFound {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Order not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update order status",
		})
	}

	// Buyer may not be connected; the in-app notification still lands
	_ = oc.hub.NotifyOrderStatus(order.UserID, order)
	if err := utils.SaveNotification(oc.DB, order.UserID, "Order "+req.Status,
		fmt.Sprintf("Your order %s is now %s", orderID.Hex(), req.Status),
		models.NotificationTypeOrder, &order.ID); err != nil {
		log.Printf("Failed to save order status notification: %v", err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Order status updated successfully",
		Data:    order,
	})
}

// GetInvoice generates (or regenerates) the PDF invoice for an order
func (oc *OrderController) GetInvoice(c echo.Context) error {
	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid token",
		})
	}

	orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid order ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	order, err := oc.orders.FindByID(ctx, orderID)
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

	if order.UserID != userID && c.Get("role") != "admin" {
		return c.JSON(http.StatusForbidden, models.Response{
			Status:  http.StatusForbidden,
			Message: "Not authorized to view this invoice",
		})
	}

	buyer, err := oc.users.FindByID(ctx, order.UserID)
	customerName := "Customer"
	if err == nil {
		customerName = buyer.Name
	}

	invoiceURL, err := utils.GenerateInvoicePDF(order, customerName)
	if err != nil {
		log.Printf("Failed to generate invoice for order %s: %v", orderID.Hex(), err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to generate invoice",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Invoice generated successfully",
		Data:    map[string]string{"invoiceUrl": invoiceURL},
	})
}
