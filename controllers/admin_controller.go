// controllers/admin_controller.go
package controllers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/naturebridge/store_backend/config"
	"github.com/naturebridge/store_backend/models"
	"github.com/naturebridge/store_backend/repositories"
	"github.com/naturebridge/store_backend/services"
	"github.com/naturebridge/store_backend/utils"
	ws "github.com/naturebridge/store_backend/websocket"
)

// CommissionWorkflow is the slice of the commission service the admin
// surface drives.
type CommissionWorkflow interface {
	Approve(ctx context.Context, id, adminID primitive.ObjectID) (*models.Commission, error)
	Reject(ctx context.Context, id, adminID primitive.ObjectID, notes string) (*models.Commission, error)
	MarkPaid(ctx context.Context, id primitive.ObjectID) (*models.Commission, error)
}

type AdminController struct {
	DB          *mongo.Client
	users       *repositories.UserRepository
	orders      *repositories.OrderRepository
	commissions *repositories.CommissionRepository
	workflow    CommissionWorkflow
	hub         *ws.Hub
}

func NewAdminController(db *mongo.Client, hub *ws.Hub) *AdminController {
	users := repositories.NewUserRepository(db)
	orders := repositories.NewOrderRepository(db)
	commissions := repositories.NewCommissionRepository(db)
	return &AdminController{
		DB:          db,
		users:       users,
		orders:      orders,
		commissions: commissions,
		workflow: services.NewCommissionService(
			users, commissions, orders,
			repositories.NewNotificationRepository(db)),
		hub: hub,
	}
}

// NewAdminControllerWithWorkflow wires a custom workflow implementation
func NewAdminControllerWithWorkflow(db *mongo.Client, hub *ws.Hub, workflow CommissionWorkflow) *AdminController {
	ac := &AdminController{DB: db, workflow: workflow, hub: hub}
	if db != nil {
		ac.users = repositories.NewUserRepository(db)
		ac.orders = repositories.NewOrderRepository(db)
		ac.commissions = repositories.NewCommissionRepository(db)
	}
	return ac
}

// ListPartners returns every partner account with its ledger fields
func (ac *AdminController) ListPartners(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	partners, err := ac.users.ListPartners(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve partners",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Partners retrieved successfully",
		Data:    partners,
	})
}

// UpdateCommissionRate changes a partner's rate for future orders.
// Existing commissions keep their snapshotted rate.
func (ac *AdminController) UpdateCommissionRate(c echo.Context) error {
	partnerID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid partner ID",
		})
	}

	var req models.UpdateCommissionRateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Commission rate must be between 0 and 100",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	partner, err := ac.users.SetCommissionRate(ctx, partnerID, req.CommissionRate)
	if err != nil {
		if err == models.ErrPartnerNotFound {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Partner not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update commission rate",
		})
	}
	partner.Password = ""

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Commission rate updated successfully",
		Data:    partner,
	})
}

// ListCommissions returns commissions, optionally filtered by status
func (ac *AdminController) ListCommissions(c echo.Context) error {
	status := c.QueryParam("status")
	switch status {
	case "", models.CommissionStatusPending, models.CommissionStatusApproved,
		models.CommissionStatusPaid, models.CommissionStatusRejected:
	default:
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid commission status filter",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	commissions, err := ac.commissions.ListByStatus(ctx, status)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve commissions",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Commissions retrieved successfully",
		Data:    commissions,
	})
}

// ApproveCommission moves a pending commission to approved
func (ac *AdminController) ApproveCommission(c echo.Context) error {
	adminID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid token",
		})
	}

	commissionID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid commission ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	commission, err := ac.workflow.Approve(ctx, commissionID, adminID)
	if err != nil {
		return ac.commissionErrorResponse(c, err, "approve")
	}

	ac.notifyPartnerCommission(commission, "Commission approved",
		fmt.Sprintf("Your commission of %.2f has been approved.", commission.CommissionAmount))

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Commission approved successfully",
		Data:    commission,
	})
}

// RejectCommission moves a pending commission to rejected. Notes are
// mandatory so the partner always sees a reason.
func (ac *AdminController) RejectCommission(c echo.Context) error {
	adminID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid token",
		})
	}

	commissionID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid commission ID",
		})
	}

	var req models.RejectCommissionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Rejection notes are required",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	commission, err := ac.workflow.Reject(ctx, commissionID, adminID, req.Notes)
	if err != nil {
		return ac.commissionErrorResponse(c, err, "reject")
	}

	ac.notifyPartnerCommission(commission, "Commission rejected",
		fmt.Sprintf("Your commission of %.2f has been rejected. Reason: %s", commission.CommissionAmount, req.Notes))

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Commission rejected successfully",
		Data:    commission,
	})
}

// MarkCommissionPaid settles an approved commission
func (ac *AdminController) MarkCommissionPaid(c echo.Context) error {
	commissionID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid commission ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	commission, err := ac.workflow.MarkPaid(ctx, commissionID)
	if err != nil {
		return ac.commissionErrorResponse(c, err, "pay")
	}

	ac.notifyPartnerCommission(commission, "Commission paid",
		fmt.Sprintf("Your commission of %.2f has been paid out.", commission.CommissionAmount))

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Commission marked as paid",
		Data:    commission,
	})
}

// commissionErrorResponse maps workflow errors onto HTTP statuses
func (ac *AdminController) commissionErrorResponse(c echo.Context, err error, action string) error {
	switch err {
	case models.ErrCommissionNotFound:
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Commission not found",
		})
	case models.ErrCommissionProcessed:
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Commission already processed",
		})
	case models.ErrCommissionNotApproved:
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Commission must be approved first",
		})
	default:
		log.Printf("Failed to %s commission: %v", action, err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to " + action + " commission",
		})
	}
}

func (ac *AdminController) notifyPartnerCommission(commission *models.Commission, title, message string) {
	if ac.DB == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	partner, err := ac.users.FindByID(ctx, commission.PartnerID)
	if err != nil {
		log.Printf("Failed to load partner %s for notification: %v", commission.PartnerID.Hex(), err)
		return
	}

	utils.NotifyPartnerOfCommission(ac.DB, partner, commission, title, message)
	if ac.hub != nil {
		_ = ac.hub.NotifyCommissionStatus(partner.ID, commission)
	}
}

// ListOrders returns every order for the admin dashboard
func (ac *AdminController) ListOrders(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	orders, err := ac.orders.ListAll(ctx)
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

// GetPartnerDetails returns one partner with their referred orders and
// commission history
func (ac *AdminController) GetPartnerDetails(c echo.Context) error {
	partnerID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid partner ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	partner, err := ac.users.FindByID(ctx, partnerID)
	if err != nil || !partner.IsPartner {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Partner not found",
		})
	}
	partner.Password = ""

	orders, err := ac.orders.ListByPartner(ctx, partnerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve referred orders",
		})
	}

	commissions, err := ac.commissions.ListByPartner(ctx, partnerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve commissions",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Partner details retrieved successfully",
		Data: map[string]interface{}{
			"partner":     partner,
			"orders":      orders,
			"commissions": commissions,
		},
	})
}

// GetDashboardStats aggregates the headline numbers for the admin panel
func (ac *AdminController) GetDashboardStats(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ordersColl := config.GetCollection(ac.DB, "orders")
	usersColl := config.GetCollection(ac.DB, "users")

	totalOrders, err := ordersColl.CountDocuments(ctx, bson.M{})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to aggregate dashboard stats",
		})
	}

	totalUsers, _ := usersColl.CountDocuments(ctx, bson.M{})
	totalPartners, _ := usersColl.CountDocuments(ctx, bson.M{"isPartner": true})

	// Cancelled orders never count toward revenue
	revenue := 0.0
	cursor, err := ordersColl.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": bson.M{"$ne": models.OrderStatusCancelled}}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$totalPrice"}}}},
	})
	if err == nil {
		defer cursor.Close(ctx)
		if cursor.Next(ctx) {
			var result struct {
				Total float64 `bson:"total"`
			}
			if cursor.Decode(&result) == nil {
				revenue = result.Total
			}
		}
	}

	var topProducts []bson.M
	topCursor, err := ordersColl.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": bson.M{"$ne": models.OrderStatusCancelled}}}},
		{{Key: "$unwind", Value: "$orderItems"}},
		{{Key: "$group", Value: bson.M{
			"_id":      "$orderItems.name",
			"quantity": bson.M{"$sum": "$orderItems.qty"},
			"revenue":  bson.M{"$sum": bson.M{"$multiply": bson.A{"$orderItems.price", "$orderItems.qty"}}},
		}}},
		{{Key: "$sort", Value: bson.M{"quantity": -1}}},
		{{Key: "$limit", Value: 5}},
	})
	if err == nil {
		defer topCursor.Close(ctx)
		if err := topCursor.All(ctx, &topProducts); err != nil {
			log.Printf("Failed to decode top products: %v", err)
		}
	}

	commissionSummary, err := ac.commissions.SummaryByStatus(ctx)
	if err != nil {
		log.Printf("Failed to aggregate commission summary: %v", err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Dashboard stats retrieved successfully",
		Data: map[string]interface{}{
			"totalOrders":       totalOrders,
			"totalUsers":        totalUsers,
			"totalPartners":     totalPartners,
			"totalRevenue":      revenue,
			"topProducts":       topProducts,
			"commissionSummary": commissionSummary,
		},
	})
}

// GetCommissionStats aggregates commission totals per status
func (ac *AdminController) GetCommissionStats(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	summary, err := ac.commissions.SummaryByStatus(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve commission stats",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Commission stats retrieved successfully",
		Data:    summary,
	})
}
