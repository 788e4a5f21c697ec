package payment

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/homedeco/marketplace/internal/models"
	"github.com/homedeco/marketplace/pkg/metrics"
	"github.com/homedeco/marketplace/pkg/tool"
	"github.com/homedeco/marketplace/pkg/types"
)

// Metadata keys embedded in every checkout session so Confirm can locate
// the originating booking without trusting client input.
const (
	metaBookingID   = "booking_id"
	metaTrackingID  = "tracking_id"
	metaServicesID  = "services_id"
	metaServiceName = "service_name"
)

type StartCheckoutRequest struct {
	BookingID   string  `json:"booking_id" binding:"required"`
	TrackingID  string  `json:"tracking_id" binding:"required"`
	ServicesID  string  `json:"services_id" binding:"required"`
	ServiceName string  `json:"service_name" binding:"required"`
	Cost        float64 `json:"cost" binding:"required,gt=0"`
	Currency    string  `json:"currency"`
	Email       string  `json:"email" binding:"required,email"`
}

type StartCheckoutResponse struct {
	RedirectURL string `json:"redirect_url"`
}

// ConfirmResult is the idempotent confirmation outcome: replaying Confirm
// for the same session returns an identical tuple.
type ConfirmResult struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"transaction_id,omitempty"`
	TrackingID    string `json:"tracking_id,omitempty"`
}

type HistoryRequest struct {
	Email string          `json:"email"`
	Sort  types.SortOrder `json:"sort"`
}

type HistoryResponse struct {
	Items []*models.Payment `json:"items"`
	Total int64             `json:"total"`
}

// Service reconciles gateway payment state into bookings and the payment
// ledger.
type Service struct {
	log *zap.SugaredLogger
	db  *gorm.DB
	gw  Gateway
}

func NewService(log *zap.SugaredLogger, db *gorm.DB, gw Gateway) *Service {
	return &Service{log: log, db: db, gw: gw}
}

// StartCheckout opens a hosted gateway session for a pending booking and
// returns its redirect target. The booking is left untouched, so a failed
// call is retryable.
func (s *Service) StartCheckout(ctx context.Context, req *StartCheckoutRequest) (*StartCheckoutResponse, error) {
	currency := req.Currency
	if currency == "" {
		currency = "usd"
	}
	sess, err := s.gw.CreateSession(ctx, &CreateSessionRequest{
		AmountMinor:   int64(math.Round(req.Cost * 100)),
		Currency:      currency,
		ProductName:   req.ServiceName,
		CustomerEmail: req.Email,
		Metadata: map[string]string{
			metaBookingID:   req.BookingID,
			metaTrackingID:  req.TrackingID,
			metaServicesID:  req.ServicesID,
			metaServiceName: req.ServiceName,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: create session: %s", ErrGateway, err.Error())
	}
	s.log.Infow("checkout session created", "session_id", sess.ID, "booking_id", req.BookingID)
	return &StartCheckoutResponse{RedirectURL: sess.RedirectURL}, nil
}

// Confirm reconciles a gateway session into the booking and payment ledger.
// It is safe to call any number of times for the same session: a payment
// already recorded under the session's transaction id short-circuits to the
// previous result, and a concurrent duplicate insert is absorbed through
// the unique index on transaction_id.
func (s *Service) Confirm(ctx context.Context, sessionID string) (*ConfirmResult, error) {
	outcome := "error"
	defer func(start time.Time) {
		metrics.PaymentReconcileDur.WithLabelValues(outcome).Observe(metrics.MillisecondsSince(start))
	}(time.Now())

	sess, err := s.gw.GetSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: retrieve session: %s", ErrGateway, err.Error())
	}

	if sess.TransactionID != "" {
		if prev, err := s.findByTransactionID(ctx, sess.TransactionID); err != nil {
			return nil, err
		} else if prev != nil {
			outcome = "replayed"
			return &ConfirmResult{Success: true, TransactionID: prev.TransactionID, TrackingID: prev.TrackingID}, nil
		}
	}

	// An open session typically has no payment intent yet; that is the
	// normal not-yet-paid state and the caller may poll again.
	if sess.Status != SessionStatusPaid {
		s.log.Infow("session not paid yet", "session_id", sess.ID, "status", sess.Status)
		outcome = "unpaid"
		return &ConfirmResult{Success: false}, nil
	}
	if sess.TransactionID == "" {
		return nil, fmt.Errorf("%w: paid session %s has no transaction id", ErrGateway, sess.ID)
	}

	bookingID := sess.Metadata[metaBookingID]
	paidAt := time.Now().UTC()
	var pay *models.Payment
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.Where(&models.Booking{ID: bookingID}).First(&booking).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: id %s", ErrBookingNotFound, bookingID)
			}
			return err
		}
		if err := tx.
			Model(&models.Booking{}).
			Where("id = ?", booking.ID).
			Updates(map[string]any{
				"payment_status":      types.PaymentStatusPaid,
				"service_work_status": types.WorkStatusPending,
				"transaction_id":      sess.TransactionID,
				"paid_at":             paidAt,
			}).Error; err != nil {
			return err
		}
		pay = &models.Payment{
			ID:            tool.GenerateUUIDV7(),
			BookingID:     booking.ID,
			TrackingID:    booking.TrackingID,
			TransactionID: sess.TransactionID,
			ServicesID:    sess.Metadata[metaServicesID],
			Amount:        float64(sess.AmountMinor) / 100,
			Currency:      sess.Currency,
			Email:         sess.Email,
			PaidAt:        paidAt,
		}
		return tx.Create(pay).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// A concurrent Confirm for the same session won the race;
			// return what it recorded.
			prev, ferr := s.findByTransactionID(ctx, sess.TransactionID)
			if ferr != nil {
				return nil, ferr
			}
			if prev != nil {
				outcome = "replayed"
				return &ConfirmResult{Success: true, TransactionID: prev.TransactionID, TrackingID: prev.TrackingID}, nil
			}
		}
		return nil, err
	}
	outcome = "reconciled"
	s.log.Infow("payment reconciled", "transaction_id", pay.TransactionID, "booking_id", pay.BookingID)
	return &ConfirmResult{Success: true, TransactionID: pay.TransactionID, TrackingID: pay.TrackingID}, nil
}

func (s *Service) findByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error) {
	var pay models.Payment
	err := s.db.WithContext(ctx).Where(&models.Payment{TransactionID: transactionID}).First(&pay).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pay, nil
}

// History lists a customer's payment ledger sorted by paid_at; callers must
// have already cross-checked the email against the verified identity.
func (s *Service) History(ctx context.Context, req *HistoryRequest) (*HistoryResponse, error) {
	tx := s.db.WithContext(ctx).Model(&models.Payment{}).Where("email = ?", req.Email)

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count payments: %w", err)
	}

	var rows []*models.Payment
	order := clause.OrderBy{Columns: []clause.OrderByColumn{{
		Column: clause.Column{Name: "paid_at"},
		Desc:   req.Sort != types.SortOrderAsc,
	}}}
	if err := tx.Order(order).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return &HistoryResponse{Items: rows, Total: total}, nil
}
