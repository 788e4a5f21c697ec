package decorator

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/homedeco/marketplace/internal/models"
	"github.com/homedeco/marketplace/pkg/tool"
	"github.com/homedeco/marketplace/pkg/types"
)

var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrInvalidDecision     = errors.New("decision must be accepted or rejected")
)

type ApplyRequest struct {
	Email       string `json:"email" binding:"required,email"`
	ServiceType string `json:"service_type" binding:"required"`
}

// ApplyResult reports duplicate applications as a normal outcome rather
// than an error: the caller already has a live application on file.
type ApplyResult struct {
	AlreadyExists bool                         `json:"already_exists"`
	Application   *models.DecoratorApplication `json:"application,omitempty"`
}

type DecideRequest struct {
	ApplicationID string `json:"application_id" binding:"required"`
	// Email must match the application on file; a mismatch reads as no
	// pending application.
	Email  string            `json:"email" binding:"required,email"`
	Status types.ApplyStatus `json:"status" binding:"required"`
}

type ListRequest struct {
	ServiceType string `json:"service_type"`
}

// Service manages decorator applications and the role promotion that an
// acceptance triggers.
type Service struct {
	log *zap.SugaredLogger
	db  *gorm.DB
}

func NewService(log *zap.SugaredLogger, db *gorm.DB) *Service {
	return &Service{log: log, db: db}
}

// Apply files a decorator application. If a live (pending) application
// already exists for the email, it is returned with AlreadyExists set and
// nothing is written.
func (s *Service) Apply(ctx context.Context, req *ApplyRequest) (*ApplyResult, error) {
	var existing models.DecoratorApplication
	err := s.db.WithContext(ctx).
		Where("email = ? AND apply_status = ?", req.Email, types.ApplyStatusPending).
		First(&existing).Error
	if err == nil {
		return &ApplyResult{AlreadyExists: true, Application: &existing}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing application: %w", err)
	}

	app := &models.DecoratorApplication{
		ID:          tool.GenerateUUIDV7(),
		Email:       req.Email,
		ServiceType: req.ServiceType,
		ApplyStatus: types.ApplyStatusPending,
	}
	if err := s.db.WithContext(ctx).Create(app).Error; err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}
	s.log.Infow("decorator application filed", "application_id", app.ID, "email", app.Email)
	return &ApplyResult{Application: app}, nil
}

// Decide settles a pending application. Acceptance also marks the
// applicant available for work and promotes the account role to decorator;
// both writes happen in one store transaction so a crash cannot leave an
// accepted application with a stale role. Accepted and rejected are
// terminal: a second decision finds no pending application.
func (s *Service) Decide(ctx context.Context, req *DecideRequest) (*models.DecoratorApplication, error) {
	if !req.Status.Terminal() {
		return nil, fmt.Errorf("%w: got %q", ErrInvalidDecision, req.Status)
	}

	var app models.DecoratorApplication
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.
			Where("id = ? AND email = ? AND apply_status = ?", req.ApplicationID, req.Email, types.ApplyStatusPending).
			First(&app).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: id %s", ErrApplicationNotFound, req.ApplicationID)
			}
			return err
		}

		updates := map[string]any{"apply_status": req.Status}
		if req.Status == types.ApplyStatusAccepted {
			updates["work_status"] = models.WorkStatusAvailable
		}
		if err := tx.Model(&models.DecoratorApplication{}).Where("id = ?", app.ID).Updates(updates).Error; err != nil {
			return err
		}

		if req.Status == types.ApplyStatusAccepted {
			if err := tx.
				Model(&models.Account{}).
				Where("email = ?", app.Email).
				Update("role", types.AccountRoleDecorator).Error; err != nil {
				return err
			}
		}

		app.ApplyStatus = req.Status
		if req.Status == types.ApplyStatusAccepted {
			app.WorkStatus = models.WorkStatusAvailable
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Infow("application decided", "application_id", app.ID, "status", app.ApplyStatus)
	return &app, nil
}

// List returns accepted applications only; pending and rejected ones are
// never exposed to public listing. Optional service-type filter.
func (s *Service) List(ctx context.Context, req *ListRequest) ([]*models.DecoratorApplication, error) {
	tx := s.db.WithContext(ctx).
		Where("apply_status = ?", types.ApplyStatusAccepted)
	if req.ServiceType != "" {
		tx = tx.Where("service_type = ?", req.ServiceType)
	}
	var rows []*models.DecoratorApplication
	if err := tx.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return rows, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.DecoratorApplication{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete application: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: id %s", ErrApplicationNotFound, id)
	}
	return nil
}
