// controllers/partner_controller.go
package controllers

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/naturebridge/store_backend/models"
	"github.com/naturebridge/store_backend/repositories"
	"github.com/naturebridge/store_backend/utils"
)

type PartnerController struct {
	DB          *mongo.Client
	users       *repositories.UserRepository
	orders      *repositories.OrderRepository
	commissions *repositories.CommissionRepository
}

func NewPartnerController(db *mongo.Client) *PartnerController {
	return &PartnerController{
		DB:          db,
		users:       repositories.NewUserRepository(db),
		orders:      repositories.NewOrderRepository(db),
		commissions: repositories.NewCommissionRepository(db),
	}
}

// storefrontURL is the base for referral links
func storefrontURL() string {
	if url := os.Getenv("STOREFRONT_URL"); url != "" {
		return url
	}
	return "https://naturebridge.store"
}

// GetDashboard bundles the partner's stats, referred orders,
// commission history, referral link and QR code in one response.
func (pc *PartnerController) GetDashboard(c echo.Context) error {
	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid token",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	partner, err := pc.users.FindByID(ctx, userID)
	if err != nil || !partner.IsPartner {
		return c.JSON(http.StatusForbidden, models.Response{
			Status:  http.StatusForbidden,
			Message: "Not a partner account",
		})
	}

	// Accounts created before codes existed get one on first visit
	if partner.ReferralCode == "" {
		code, genErr := utils.GenerateReferralCode(partner.Name)
		if genErr == nil {
			if setErr := pc.users.SetReferralCode(ctx, partner.ID, code); setErr == nil {
				partner.ReferralCode = code
			}
		}
	}

	orders, err := pc.orders.ListByPartner(ctx, partner.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve referred orders",
		})
	}

	commissions, err := pc.commissions.ListByPartner(ctx, partner.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve commissions",
		})
	}

	referralLink := storefrontURL() + "/?ref=" + partner.ReferralCode

	qr, err := utils.GenerateQRCode(referralLink, 256)
	if err != nil {
		log.Printf("Failed to generate referral QR for partner %s: %v", partner.ID.Hex(), err)
		qr = ""
	}

	dashboard := models.PartnerDashboard{
		Partner: models.PartnerProfile{
			Name:         partner.Name,
			Email:        partner.Email,
			Phone:        partner.Phone,
			ReferralCode: partner.ReferralCode,
		},
		Stats:          partnerStats(partner, orders),
		ReferredOrders: orders,
		Commissions:    commissions,
		ReferralLink:   referralLink,
		ReferralQR:     qr,
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Dashboard retrieved successfully",
		Data:    dashboard,
	})
}

// partnerStats summarizes the ledger for the dashboard. Referrals count
// referred orders, not commissions: a zero-rate partner still referred
// the order even though no commission came of it.
func partnerStats(partner *models.User, orders []models.Order) models.PartnerStats {
	return models.PartnerStats{
		TotalOrders:       len(orders),
		TotalReferrals:    len(orders),
		TotalEarnings:     partner.TotalEarnings,
		PendingCommission: partner.PendingCommission,
		PaidCommission:    partner.PaidCommission,
		CommissionRate:    partner.CommissionRate,
	}
}

// GetReferralLink returns the shareable link and QR code on their own,
// for clients that only need the share sheet.
func (pc *PartnerController) GetReferralLink(c echo.Context) error {
	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid token",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	partner, err := pc.users.FindByID(ctx, userID)
	if err != nil || !partner.IsPartner || partner.ReferralCode == "" {
		return c.JSON(http.StatusForbidden, models.Response{
			Status:  http.StatusForbidden,
			Message: "Not a partner account",
		})
	}

	referralLink := storefrontURL() + "/?ref=" + partner.ReferralCode

	qr, err := utils.GenerateQRCode(referralLink, 256)
	if err != nil {
		log.Printf("Failed to generate referral QR for partner %s: %v", partner.ID.Hex(), err)
		qr = ""
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Referral link retrieved successfully",
		Data: map[string]interface{}{
			"referralCode": partner.ReferralCode,
			"referralLink": referralLink,
			"referralQr":   qr,
		},
	})
}

// GetMyCommissions returns the partner's commission history
func (pc *PartnerController) GetMyCommissions(c echo.Context) error {
	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid token",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	commissions, err := pc.commissions.ListByPartner(ctx, userID)
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

// GetReferredOrders returns the orders attributed to the partner
func (pc *PartnerController) GetReferredOrders(c echo.Context) error {
	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid token",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	orders, err := pc.orders.ListByPartner(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve referred orders",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Referred orders retrieved successfully",
		Data:    orders,
	})
}
