package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/naturebridge/store_backend/models"
)

func TestPartnerStatsCountsReferredOrders(t *testing.T) {
	partner := &models.User{
		ID:                primitive.NewObjectID(),
		IsPartner:         true,
		CommissionRate:    0,
		TotalEarnings:     0,
		PendingCommission: 0,
		PaidCommission:    0,
	}

	// A zero-rate partner referred three orders but earned no commission;
	// the referral count still reflects the orders
	orders := []models.Order{
		{ID: primitive.NewObjectID()},
		{ID: primitive.NewObjectID()},
		{ID: primitive.NewObjectID()},
	}

	stats := partnerStats(partner, orders)

	assert.Equal(t, 3, stats.TotalReferrals)
	assert.Equal(t, 3, stats.TotalOrders)
	assert.Zero(t, stats.TotalEarnings)
	assert.Zero(t, stats.CommissionRate)
}

func TestPartnerStatsCarriesLedgerBalances(t *testing.T) {
	partner := &models.User{
		ID:                primitive.NewObjectID(),
		IsPartner:         true,
		CommissionRate:    12.5,
		TotalEarnings:     340.75,
		PendingCommission: 90.25,
		PaidCommission:    250.50,
	}

	stats := partnerStats(partner, nil)

	assert.Zero(t, stats.TotalReferrals)
	assert.Zero(t, stats.TotalOrders)
	assert.Equal(t, 340.75, stats.TotalEarnings)
	assert.Equal(t, 90.25, stats.PendingCommission)
	assert.Equal(t, 250.50, stats.PaidCommission)
	assert.Equal(t, 12.5, stats.CommissionRate)
}
