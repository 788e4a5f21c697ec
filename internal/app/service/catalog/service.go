package catalog

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/homedeco/marketplace/internal/models"
	"github.com/homedeco/marketplace/pkg/tool"
)

var ErrNotFound = errors.New("service not found")

// TopRatedLimit caps the homepage top-rating carousel.
const TopRatedLimit = 8

type CreateRequest struct {
	Name        string  `json:"name" binding:"required"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Cost        float64 `json:"cost" binding:"required,gt=0"`
	Rating      float64 `json:"rating" binding:"gte=0,lte=5"`
	ImageURL    string  `json:"image_url" binding:"omitempty,url"`
}

// Service is the catalog of decoration listings. The booking and payment
// flows only read a listing's id and display name from here.
type Service struct {
	log *zap.SugaredLogger
	db  *gorm.DB
}

func NewService(log *zap.SugaredLogger, db *gorm.DB) *Service {
	return &Service{log: log, db: db}
}

func (s *Service) Create(ctx context.Context, req *CreateRequest) (*models.Service, error) {
	svc := &models.Service{
		ID:          tool.GenerateUUIDV7(),
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Cost:        req.Cost,
		Rating:      req.Rating,
		ImageURL:    req.ImageURL,
	}
	if err := s.db.WithContext(ctx).Create(svc).Error; err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}
	return svc, nil
}

func (s *Service) List(ctx context.Context) ([]*models.Service, error) {
	var rows []*models.Service
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return rows, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*models.Service, error) {
	var svc models.Service
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&svc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id %s", ErrNotFound, id)
		}
		return nil, err
	}
	return &svc, nil
}

func (s *Service) TopRated(ctx context.Context) ([]*models.Service, error) {
	var rows []*models.Service
	if err := s.db.WithContext(ctx).Order("rating DESC").Limit(TopRatedLimit).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list top rated services: %w", err)
	}
	return rows, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Service{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete service: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: id %s", ErrNotFound, id)
	}
	return nil
}
