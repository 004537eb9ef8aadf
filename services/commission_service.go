package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/naturebridge/store_backend/models"
	"github.com/naturebridge/store_backend/utils"
)

// Storage interfaces consumed by the commission workflow. The concrete
// implementations live in the repositories package.

type UserStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindPartnerByReferralCode(ctx context.Context, code string) (*models.User, error)
	ApplyLedgerDelta(ctx context.Context, partnerID primitive.ObjectID, pending, total, paid float64) error
	ListAdmins(ctx context.Context) ([]models.User, error)
}

type CommissionStore interface {
	Insert(ctx context.Context, commission *models.Commission) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Commission, error)
	Transition(ctx context.Context, id primitive.ObjectID, from, to string, set bson.M) (*models.Commission, error)
}

type OrderStore interface {
	MarkCommissionGenerated(ctx context.Context, orderID primitive.ObjectID) error
}

type NotificationStore interface {
	InsertMany(ctx context.Context, notifications []models.Notification) error
}

// CommissionService owns referral attribution and the commission
// ledger. Every ledger mutation flows through here so partner balances
// stay reconstructable from the commission records alone.
type CommissionService struct {
	users         UserStore
	commissions   CommissionStore
	orders        OrderStore
	notifications NotificationStore
}

func NewCommissionService(users UserStore, commissions CommissionStore, orders OrderStore, notifications NotificationStore) *CommissionService {
	return &CommissionService{
		users:         users,
		commissions:   commissions,
		orders:        orders,
		notifications: notifications,
	}
}

// Attribute resolves which partner, if any, an order belongs to. An
// explicit referral code on the order wins; when it is absent or does
// not resolve to a partner, the buyer's stored referredBy applies.
// Returns the partner ID and the code that matched, or nil when the
// order carries no attribution.
func (s *CommissionService) Attribute(ctx context.Context, buyer *models.User, referralCode string) (*primitive.ObjectID, string, error) {
	if referralCode != "" {
		partner, err := s.users.FindPartnerByReferralCode(ctx, referralCode)
		if err == nil {
			return &partner.ID, partner.ReferralCode, nil
		}
		if err != models.ErrPartnerNotFound {
			return nil, "", err
		}
		// Unknown code: fall through to the signup attribution
	}

	if buyer != nil && buyer.ReferredBy != nil {
		partner, err := s.users.FindByID(ctx, *buyer.ReferredBy)
		if err != nil {
			if err == models.ErrUserNotFound {
				return nil, "", nil
			}
			return nil, "", err
		}
		if partner.IsPartner {
			return &partner.ID, partner.ReferralCode, nil
		}
	}

	return nil, "", nil
}

// CreateForOrder generates the commission record for an attributed
// order and credits the partner's pending balance. Safe to call more
// than once for the same order: the unique order index turns a
// duplicate insert into a no-op.
func (s *CommissionService) CreateForOrder(ctx context.Context, order *models.Order) error {
	if order.ReferredBy == nil {
		return nil
	}

	partner, err := s.users.FindByID(ctx, *order.ReferredBy)
	if err != nil {
		return fmt.Errorf("failed to load partner: %w", err)
	}
	if !partner.IsPartner || partner.CommissionRate <= 0 {
		return nil
	}

	amount := utils.CommissionAmount(order.TotalPrice, partner.CommissionRate)

	commission := &models.Commission{
		PartnerID:        partner.ID,
		OrderID:          order.ID,
		OrderAmount:      order.TotalPrice,
		CommissionRate:   partner.CommissionRate,
		CommissionAmount: amount,
		Status:           models.CommissionStatusPending,
	}

	err = s.commissions.Insert(ctx, commission)
	if err == models.ErrCommissionExists {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to create commission: %w", err)
	}

	// Pending and lifetime totals both grow on creation
	if err := s.users.ApplyLedgerDelta(ctx, partner.ID, amount, amount, 0); err != nil {
		return fmt.Errorf("failed to credit partner ledger: %w", err)
	}

	if err := s.orders.MarkCommissionGenerated(ctx, order.ID); err != nil {
		log.Printf("Failed to flag order %s as commission generated: %v", order.ID.Hex(), err)
	}

	s.notifyAdmins(ctx, models.NotificationTypeCommission, "New commission pending",
		fmt.Sprintf("Partner %s earned %.2f on order %s", partner.Name, amount, order.ID.Hex()),
		&commission.ID)

	return nil
}

// Approve moves a pending commission to approved and releases it from
// the partner's pending balance.
func (s *CommissionService) Approve(ctx context.Context, id, adminID primitive.ObjectID) (*models.Commission, error) {
	now := time.Now()
	commission, err := s.commissions.Transition(ctx, id,
		models.CommissionStatusPending, models.CommissionStatusApproved,
		bson.M{"approvedBy": adminID, "approvedAt": now})
	if err != nil {
		if err == models.ErrCommissionStateConflict {
			return nil, models.ErrCommissionProcessed
		}
		return nil, err
	}

	if err := s.users.ApplyLedgerDelta(ctx, commission.PartnerID, -commission.CommissionAmount, 0, 0); err != nil {
		return nil, fmt.Errorf("failed to update partner ledger: %w", err)
	}

	return commission, nil
}

// Reject moves a pending commission to rejected with a mandatory note.
// Both the pending balance and the lifetime earnings roll back.
func (s *CommissionService) Reject(ctx context.Context, id, adminID primitive.ObjectID, notes string) (*models.Commission, error) {
	commission, err := s.commissions.Transition(ctx, id,
		models.CommissionStatusPending, models.CommissionStatusRejected,
		bson.M{"approvedBy": adminID, "notes": notes})
	if err != nil {
		if err == models.ErrCommissionStateConflict {
			return nil, models.ErrCommissionProcessed
		}
		return nil, err
	}

	if err := s.users.ApplyLedgerDelta(ctx, commission.PartnerID,
		-commission.CommissionAmount, -commission.CommissionAmount, 0); err != nil {
		return nil, fmt.Errorf("failed to update partner ledger: %w", err)
	}

	return commission, nil
}

// MarkPaid settles an approved commission and credits the partner's
// paid total. Only approved commissions can be paid.
func (s *CommissionService) MarkPaid(ctx context.Context, id primitive.ObjectID) (*models.Commission, error) {
	now := time.Now()
	commission, err := s.commissions.Transition(ctx, id,
		models.CommissionStatusApproved, models.CommissionStatusPaid,
		bson.M{"paidAt": now})
	if err != nil {
		if err == models.ErrCommissionStateConflict {
			return nil, models.ErrCommissionNotApproved
		}
		return nil, err
	}

	if err := s.users.ApplyLedgerDelta(ctx, commission.PartnerID, 0, 0, commission.CommissionAmount); err != nil {
		return nil, fmt.Errorf("failed to update partner ledger: %w", err)
	}

	return commission, nil
}

// NotifyAdminsOfOrder fans out an in-app notification to every admin
// when an order lands. Best-effort: a failed fan-out never fails the
// order.
func (s *CommissionService) NotifyAdminsOfOrder(ctx context.Context, order *models.Order, buyerName string) {
	title := "New order received"
	message := fmt.Sprintf("%s placed an order for %.2f", buyerName, order.TotalPrice)
	s.notifyAdmins(ctx, models.NotificationTypeOrder, title, message, &order.ID)
}

func (s *CommissionService) notifyAdmins(ctx context.Context, notifType, title, message string, relatedID *primitive.ObjectID) {
	admins, err := s.users.ListAdmins(ctx)
	if err != nil {
		log.Printf("Failed to list admins for notification fan-out: %v", err)
		return
	}
	if len(admins) == 0 {
		return
	}

	notifications := make([]models.Notification, 0, len(admins))
	for _, admin := range admins {
		notifications = append(notifications, models.Notification{
			RecipientID: admin.ID,
			Type:        notifType,
			Title:       title,
			Message:     message,
			RelatedID:   relatedID,
		})
	}

	if err := s.notifications.InsertMany(ctx, notifications); err != nil {
		log.Printf("Failed to fan out admin notifications: %v", err)
	}
}
