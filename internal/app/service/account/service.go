package account

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/homedeco/marketplace/internal/models"
	"github.com/homedeco/marketplace/pkg/tool"
	"github.com/homedeco/marketplace/pkg/types"
)

var (
	ErrNotFound    = errors.New("account not found")
	ErrInvalidRole = errors.New("invalid account role")
)

type UpdateRoleRequest struct {
	AccountID string            `json:"account_id" binding:"required"`
	Role      types.AccountRole `json:"role" binding:"required"`
	// AdminEmail is the verified identity of the acting admin, passed
	// explicitly by the handler after the admin gate has run.
	AdminEmail string `json:"-"`
}

// Service reads accounts for the authorization gate and applies explicit
// role changes. Role elevation to decorator normally happens through the
// approval workflow, not here.
type Service struct {
	log *zap.SugaredLogger
	db  *gorm.DB
}

func NewService(log *zap.SugaredLogger, db *gorm.DB) *Service {
	return &Service{log: log, db: db}
}

// Ensure registers an account for a verified email on first sight. The
// insert is conflict-tolerant, so repeated calls return the stored account
// with whatever role it has accumulated.
func (s *Service) Ensure(ctx context.Context, email string) (*models.Account, error) {
	acc := &models.Account{
		ID:    tool.GenerateUUIDV7(),
		Email: email,
		Role:  types.AccountRoleUser,
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoNothing: true,
		}).
		Create(acc).Error
	if err != nil {
		return nil, fmt.Errorf("failed to ensure account: %w", err)
	}
	return s.GetByEmail(ctx, email)
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	var acc models.Account
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&acc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: email %s", ErrNotFound, email)
		}
		return nil, err
	}
	return &acc, nil
}

func (s *Service) List(ctx context.Context) ([]*models.Account, error) {
	var rows []*models.Account
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return rows, nil
}

func (s *Service) UpdateRole(ctx context.Context, req *UpdateRoleRequest) (*models.Account, error) {
	if !req.Role.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, req.Role)
	}
	var acc models.Account
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", req.AccountID).First(&acc).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: id %s", ErrNotFound, req.AccountID)
			}
			return err
		}
		if err := tx.Model(&models.Account{}).Where("id = ?", acc.ID).Update("role", req.Role).Error; err != nil {
			return err
		}
		acc.Role = req.Role
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Infow("account role updated", "account_id", acc.ID, "role", acc.Role, "admin", req.AdminEmail)
	return &acc, nil
}
