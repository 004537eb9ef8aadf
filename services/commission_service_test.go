package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/naturebridge/store_backend/models"
)

type ledgerDelta struct {
	partnerID primitive.ObjectID
	pending   float64
	total     float64
	paid      float64
}

type stubUserStore struct {
	users   map[primitive.ObjectID]*models.User
	byCode  map[string]*models.User
	deltas  []ledgerDelta
	admins  []models.User
}

func newStubUserStore() *stubUserStore {
	return &stubUserStore{
		users:  make(map[primitive.ObjectID]*models.User),
		byCode: make(map[string]*models.User),
	}
}

func (s *stubUserStore) add(u *models.User) {
	s.users[u.ID] = u
	if u.IsPartner && u.ReferralCode != "" {
		s.byCode[u.ReferralCode] = u
	}
}

func (s *stubUserStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, models.ErrUserNotFound
}

func (s *stubUserStore) FindPartnerByReferralCode(ctx context.Context, code string) (*models.User, error) {
	if u, ok := s.byCode[code]; ok {
		return u, nil
	}
	return nil, models.ErrPartnerNotFound
}

func (s *stubUserStore) ApplyLedgerDelta(ctx context.Context, partnerID primitive.ObjectID, pending, total, paid float64) error {
	s.deltas = append(s.deltas, ledgerDelta{partnerID, pending, total, paid})
	return nil
}

func (s *stubUserStore) ListAdmins(ctx context.Context) ([]models.User, error) {
	return s.admins, nil
}

type stubCommissionStore struct {
	byOrder  map[primitive.ObjectID]*models.Commission
	byID     map[primitive.ObjectID]*models.Commission
	inserted []*models.Commission
}

func newStubCommissionStore() *stubCommissionStore {
	return &stubCommissionStore{
		byOrder: make(map[primitive.ObjectID]*models.Commission),
		byID:    make(map[primitive.ObjectID]*models.Commission),
	}
}

func (s *stubCommissionStore) Insert(ctx context.Context, commission *models.Commission) error {
	if _, ok := s.byOrder[commission.OrderID]; ok {
		return models.ErrCommissionExists
	}
	if commission.ID.IsZero() {
		commission.ID = primitive.NewObjectID()
	}
	s.byOrder[commission.OrderID] = commission
	s.byID[commission.ID] = commission
	s.inserted = append(s.inserted, commission)
	return nil
}

func (s *stubCommissionStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Commission, error) {
	if c, ok := s.byID[id]; ok {
		return c, nil
	}
	return nil, models.ErrCommissionNotFound
}

func (s *stubCommissionStore) Transition(ctx context.Context, id primitive.ObjectID, from, to string, set bson.M) (*models.Commission, error) {
	c, ok := s.byID[id]
	if !ok {
		return nil, models.ErrCommissionNotFound
	}
	if c.Status != from {
		return nil, models.ErrCommissionStateConflict
	}
	c.Status = to
	if notes, ok := set["notes"].(string); ok {
		c.Notes = notes
	}
	return c, nil
}

type stubOrderStore struct {
	marked []primitive.ObjectID
}

func (s *stubOrderStore) MarkCommissionGenerated(ctx context.Context, orderID primitive.ObjectID) error {
	s.marked = append(s.marked, orderID)
	return nil
}

type stubNotificationStore struct {
	saved []models.Notification
}

func (s *stubNotificationStore) InsertMany(ctx context.Context, notifications []models.Notification) error {
	s.saved = append(s.saved, notifications...)
	return nil
}

type fixture struct {
	users         *stubUserStore
	commissions   *stubCommissionStore
	orders        *stubOrderStore
	notifications *stubNotificationStore
	service       *CommissionService
}

func newFixture() *fixture {
	f := &fixture{
		users:         newStubUserStore(),
		commissions:   newStubCommissionStore(),
		orders:        &stubOrderStore{},
		notifications: &stubNotificationStore{},
	}
	f.service = NewCommissionService(f.users, f.commissions, f.orders, f.notifications)
	return f
}

func partnerUser(code string, rate float64) *models.User {
	return &models.User{
		ID:             primitive.NewObjectID(),
		Name:           "Partner " + code,
		IsPartner:      true,
		Role:           "partner",
		ReferralCode:   code,
		CommissionRate: rate,
	}
}

func TestAttributeExplicitCodeWins(t *testing.T) {
	f := newFixture()
	signupPartner := partnerUser("SIGN-UP1234", 10)
	codePartner := partnerUser("CODE-XYZ789", 12)
	f.users.add(signupPartner)
	f.users.add(codePartner)

	buyer := &models.User{ID: primitive.NewObjectID(), ReferredBy: &signupPartner.ID}

	partnerID, code, err := f.service.Attribute(context.Background(), buyer, "CODE-XYZ789")
	require.NoError(t, err)
	require.NotNil(t, partnerID)
	assert.Equal(t, codePartner.ID, *partnerID)
	assert.Equal(t, "CODE-XYZ789", code)
}

func TestAttributeUnknownCodeFallsBackToSignup(t *testing.T) {
	f := newFixture()
	signupPartner := partnerUser("SIGN-UP1234", 10)
	f.users.add(signupPartner)

	buyer := &models.User{ID: primitive.NewObjectID(), ReferredBy: &signupPartner.ID}

	partnerID, code, err := f.service.Attribute(context.Background(), buyer, "NO-SUCH-CODE")
	require.NoError(t, err)
	require.NotNil(t, partnerID)
	assert.Equal(t, signupPartner.ID, *partnerID)
	assert.Equal(t, "SIGN-UP1234", code)
}

func TestAttributeNonPartnerReferrerIgnored(t *testing.T) {
	f := newFixture()
	regular := &models.User{ID: primitive.NewObjectID(), Role: "customer"}
	f.users.add(regular)

	buyer := &models.User{ID: primitive.NewObjectID(), ReferredBy: &regular.ID}

	partnerID, code, err := f.service.Attribute(context.Background(), buyer, "")
	require.NoError(t, err)
	assert.Nil(t, partnerID)
	assert.Empty(t, code)
}

func TestAttributeNoReferral(t *testing.T) {
	f := newFixture()
	buyer := &models.User{ID: primitive.NewObjectID()}

	partnerID, code, err := f.service.Attribute(context.Background(), buyer, "")
	require.NoError(t, err)
	assert.Nil(t, partnerID)
	assert.Empty(t, code)
}

func TestCreateForOrderCreditsPendingLedger(t *testing.T) {
	f := newFixture()
	partner := partnerUser("CODE-AAA111", 10)
	f.users.add(partner)

	order := &models.Order{
		ID:         primitive.NewObjectID(),
		TotalPrice: 2499.50,
		ReferredBy: &partner.ID,
	}

	require.NoError(t, f.service.CreateForOrder(context.Background(), order))

	require.Len(t, f.commissions.inserted, 1)
	commission := f.commissions.inserted[0]
	assert.Equal(t, partner.ID, commission.PartnerID)
	assert.Equal(t, order.ID, commission.OrderID)
	assert.Equal(t, 10.0, commission.CommissionRate)
	assert.Equal(t, 249.95, commission.CommissionAmount)
	assert.Equal(t, models.CommissionStatusPending, commission.Status)

	require.Len(t, f.users.deltas, 1)
	assert.Equal(t, ledgerDelta{partner.ID, 249.95, 249.95, 0}, f.users.deltas[0])

	assert.Equal(t, []primitive.ObjectID{order.ID}, f.orders.marked)
}

func TestCreateForOrderIdempotent(t *testing.T) {
	f := newFixture()
	partner := partnerUser("CODE-AAA111", 10)
	f.users.add(partner)

	order := &models.Order{
		ID:         primitive.NewObjectID(),
		TotalPrice: 100,
		ReferredBy: &partner.ID,
	}

	require.NoError(t, f.service.CreateForOrder(context.Background(), order))
	require.NoError(t, f.service.CreateForOrder(context.Background(), order))

	assert.Len(t, f.commissions.inserted, 1)
	assert.Len(t, f.users.deltas, 1, "a duplicate create must not touch the ledger")
}

func TestCreateForOrderSkipsUnattributedOrder(t *testing.T) {
	f := newFixture()

	order := &models.Order{ID: primitive.NewObjectID(), TotalPrice: 100}

	require.NoError(t, f.service.CreateForOrder(context.Background(), order))
	assert.Empty(t, f.commissions.inserted)
	assert.Empty(t, f.users.deltas)
}

func TestCreateForOrderSkipsZeroRatePartner(t *testing.T) {
	f := newFixture()
	partner := partnerUser("CODE-AAA111", 0)
	f.users.add(partner)

	order := &models.Order{
		ID:         primitive.NewObjectID(),
		TotalPrice: 100,
		ReferredBy: &partner.ID,
	}

	require.NoError(t, f.service.CreateForOrder(context.Background(), order))
	assert.Empty(t, f.commissions.inserted)
}

func TestCreateForOrderNotifiesAdmins(t *testing.T) {
	f := newFixture()
	partner := partnerUser("CODE-AAA111", 10)
	f.users.add(partner)
	f.users.admins = []models.User{
		{ID: primitive.NewObjectID(), Role: "admin"},
		{ID: primitive.NewObjectID(), Role: "admin"},
	}

	order := &models.Order{
		ID:         primitive.NewObjectID(),
		TotalPrice: 100,
		ReferredBy: &partner.ID,
	}

	require.NoError(t, f.service.CreateForOrder(context.Background(), order))

	require.Len(t, f.notifications.saved, 2)
	assert.Equal(t, models.NotificationTypeCommission, f.notifications.saved[0].Type)
}

func seedCommission(f *fixture, partner *models.User, amount float64, status string) *models.Commission {
	commission := &models.Commission{
		ID:               primitive.NewObjectID(),
		PartnerID:        partner.ID,
		OrderID:          primitive.NewObjectID(),
		OrderAmount:      amount * 10,
		CommissionRate:   10,
		CommissionAmount: amount,
		Status:           status,
	}
	f.commissions.byOrder[commission.OrderID] = commission
	f.commissions.byID[commission.ID] = commission
	return commission
}

func TestApproveReleasesPendingBalance(t *testing.T) {
	f := newFixture()
	partner := partnerUser("CODE-AAA111", 10)
	f.users.add(partner)
	commission := seedCommission(f, partner, 50, models.CommissionStatusPending)

	approved, err := f.service.Approve(context.Background(), commission.ID, primitive.NewObjectID())
	require.NoError(t, err)
	assert.Equal(t, models.CommissionStatusApproved, approved.Status)

	require.Len(t, f.users.deltas, 1)
	assert.Equal(t, ledgerDelta{partner.ID, -50, 0, 0}, f.users.deltas[0])
}

func TestApproveAlreadyProcessed(t *testing.T) {
	f := newFixture()
	partner := partnerUser("CODE-AAA111", 10)
	f.users.add(partner)
	commission := seedCommission(f, partner, 50, models.CommissionStatusApproved)

	_, err := f.service.Approve(context.Background(), commission.ID, primitive.NewObjectID())
	assert.ErrorIs(t, err, models.ErrCommissionProcessed)
	assert.Empty(t, f.users.deltas, "a failed transition must not touch the ledger")
}

func TestApproveNotFound(t *testing.T) {
	f := newFixture()
	_, err := f.service.Approve(context.Background(), primitive.NewObjectID(), primitive.NewObjectID())
	assert.ErrorIs(t, err, models.ErrCommissionNotFound)
}

func TestRejectAfterApprove(t *testing.T) {
	f := newFixture()
	partner := partnerUser("CODE-AAA111", 10)
	f.users.add(partner)
	commission := seedCommission(f, partner, 50, models.CommissionStatusApproved)

	_, err := f.service.Reject(context.Background(), commission.ID, primitive.NewObjectID(), "changed our mind")
	assert.ErrorIs(t, err, models.ErrCommissionProcessed)
	assert.Equal(t, models.CommissionStatusApproved, commission.Status, "approved commission must stay approved")
	assert.Empty(t, f.users.deltas, "a failed transition must not touch the ledger")
}

func TestRejectRollsBackEarnings(t *testing.T) {
	f := newFixture()
	partner := partnerUser("CODE-AAA111", 10)
	f.users.add(partner)
	commission := seedCommission(f, partner, 75, models.CommissionStatusPending)

	rejected, err := f.service.Reject(context.Background(), commission.ID, primitive.NewObjectID(), "duplicate order")
	require.NoError(t, err)
	assert.Equal(t, models.CommissionStatusRejected, rejected.Status)
	assert.Equal(t, "duplicate order", rejected.Notes)

	require.Len(t, f.users.deltas, 1)
	assert.Equal(t, ledgerDelta{partner.ID, -75, -75, 0}, f.users.deltas[0])
}

func TestMarkPaidCreditsPaidTotal(t *testing.T) {
	f := newFixture()
	partner := partnerUser("CODE-AAA111", 10)
	f.users.add(partner)
	commission := seedCommission(f, partner, 60, models.CommissionStatusApproved)

	paid, err := f.service.MarkPaid(context.Background(), commission.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CommissionStatusPaid, paid.Status)

	require.Len(t, f.users.deltas, 1)
	assert.Equal(t, ledgerDelta{partner.ID, 0, 0, 60}, f.users.deltas[0])
}

func TestMarkPaidRequiresApproval(t *testing.T) {
	f := newFixture()
	partner := partnerUser("CODE-AAA111", 10)
	f.users.add(partner)

	for _, status := range []string{
		models.CommissionStatusPending,
		models.CommissionStatusRejected,
		models.CommissionStatusPaid,
	} {
		commission := seedCommission(f, partner, 60, status)
		_, err := f.service.MarkPaid(context.Background(), commission.ID)
		assert.ErrorIs(t, err, models.ErrCommissionNotApproved, "status %s", status)
	}
	assert.Empty(t, f.users.deltas)
}

func TestLedgerReconstructableFromLifecycle(t *testing.T) {
	f := newFixture()
	partner := partnerUser("CODE-AAA111", 10)
	f.users.add(partner)

	order := &models.Order{
		ID:         primitive.NewObjectID(),
		TotalPrice: 1000,
		ReferredBy: &partner.ID,
	}

	require.NoError(t, f.service.CreateForOrder(context.Background(), order))
	commission := f.commissions.inserted[0]

	_, err := f.service.Approve(context.Background(), commission.ID, primitive.NewObjectID())
	require.NoError(t, err)
	_, err = f.service.MarkPaid(context.Background(), commission.ID)
	require.NoError(t, err)

	var pending, total, paid float64
	for _, d := range f.users.deltas {
		pending += d.pending
		total += d.total
		paid += d.paid
	}
	assert.Equal(t, 0.0, pending)
	assert.Equal(t, 100.0, total)
	assert.Equal(t, 100.0, paid)
}
