package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/homedeco/marketplace/internal/models"
	"github.com/homedeco/marketplace/pkg/tool"
	"github.com/homedeco/marketplace/pkg/types"
)

var (
	ErrNotFound = errors.New("booking not found")
	// ErrNotPaid rejects decorator assignment on a booking whose payment
	// has not been confirmed.
	ErrNotPaid = errors.New("booking is not paid")
)

type CreateRequest struct {
	CustomerEmail string  `json:"customer_email" binding:"required,email"`
	ServicesID    string  `json:"services_id" binding:"required"`
	ServiceName   string  `json:"service_name" binding:"required"`
	Cost          float64 `json:"cost" binding:"required,gt=0"`
	Currency      string  `json:"currency"`
	Address       string  `json:"address"`
	ServiceDate   string  `json:"service_date"`
}

type AssignRequest struct {
	BookingID string `json:"booking_id" binding:"required"`
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"omitempty,email"`
	Phone     string `json:"phone"`
}

type ListAllRequest struct {
	WorkStatus *types.WorkStatus     `json:"work_status"`
	Filters    []*types.CommonFilter `json:"filters"`
}

type ListByCustomerRequest struct {
	Email string          `json:"email"`
	Sort  types.SortOrder `json:"sort"`
}

type ListResponse struct {
	Items []*models.Booking `json:"items"`
	Total int64             `json:"total"`
}

// Service owns the booking lifecycle: creation with a fresh tracking id,
// decorator assignment, listing, and deletion. Payment state transitions
// are driven by the payment reconciler, never from here.
type Service struct {
	log *zap.SugaredLogger
	db  *gorm.DB
}

func NewService(log *zap.SugaredLogger, db *gorm.DB) *Service {
	return &Service{log: log, db: db}
}

func (s *Service) Create(ctx context.Context, req *CreateRequest) (*models.Booking, error) {
	currency := req.Currency
	if currency == "" {
		currency = "usd"
	}
	b := &models.Booking{
		ID:            tool.GenerateUUIDV7(),
		CustomerEmail: req.CustomerEmail,
		ServicesID:    req.ServicesID,
		ServiceName:   req.ServiceName,
		TrackingID:    tool.GenerateTrackingID(time.Now()),
		Cost:          req.Cost,
		Currency:      currency,
		Address:       req.Address,
		ServiceDate:   req.ServiceDate,
		PaymentStatus: types.PaymentStatusPending,
	}
	if err := s.db.WithContext(ctx).Create(b).Error; err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}
	s.log.Infow("booking created", "booking_id", b.ID, "tracking_id", b.TrackingID)
	return b, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	var b models.Booking
	if err := s.db.WithContext(ctx).Where(&models.Booking{ID: id}).First(&b).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id %s", ErrNotFound, id)
		}
		return nil, err
	}
	return &b, nil
}

// Assign merges decorator contact fields into the booking and moves its
// work status to assign. Unpaid bookings are rejected: work only becomes
// assignable once the reconciler has marked the booking paid.
func (s *Service) Assign(ctx context.Context, req *AssignRequest) (*models.Booking, error) {
	b, err := s.GetByID(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}
	if !b.IsPaid() {
		return nil, fmt.Errorf("%w: id %s", ErrNotPaid, b.ID)
	}
	decorator := datatypes.NewJSONType(&models.AssignedDecorator{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err := s.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", b.ID).
		Updates(map[string]any{
			"decorator":           decorator,
			"service_work_status": types.WorkStatusAssign,
		}).Error; err != nil {
		return nil, fmt.Errorf("failed to assign decorator: %w", err)
	}
	s.log.Infow("decorator assigned", "booking_id", b.ID, "decorator", req.Name)
	return s.GetByID(ctx, b.ID)
}

// ListAll is the admin listing; optional work-status and common filters.
func (s *Service) ListAll(ctx context.Context, req *ListAllRequest) (*ListResponse, error) {
	tx := s.db.WithContext(ctx).Model(&models.Booking{})
	if req.WorkStatus != nil {
		tx = tx.Where("service_work_status = ?", *req.WorkStatus)
	}
	for _, f := range req.Filters {
		tx = tx.Where(clause.Where{Exprs: []clause.Expression{f}})
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count bookings: %w", err)
	}
	var rows []*models.Booking
	if err := tx.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return &ListResponse{Items: rows, Total: total}, nil
}

func (s *Service) ListByCustomer(ctx context.Context, req *ListByCustomerRequest) (*ListResponse, error) {
	tx := s.db.WithContext(ctx).Model(&models.Booking{}).Where("customer_email = ?", req.Email)

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count bookings: %w", err)
	}
	var rows []*models.Booking
	order := clause.OrderBy{Columns: []clause.OrderByColumn{{
		Column: clause.Column{Name: "created_at"},
		Desc:   req.Sort != types.SortOrderAsc,
	}}}
	if err := tx.Order(order).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return &ListResponse{Items: rows, Total: total}, nil
}

// Delete removes a booking unconditionally. Payments referencing it are
// retained as history; a dangling ledger row is intentional.
func (s *Service) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Booking{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete booking: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: id %s", ErrNotFound, id)
	}
	return nil
}
