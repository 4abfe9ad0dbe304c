package services

import (
	"context"

	"menuhub-backend/models"
	"menuhub-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service holds the mutation and retrieval operations over restaurants,
// categories and menu items.
type Service struct {
	db            *gorm.DB
	images        ImageStore
	views         Invalidator
	maxImageBytes int64
	fetchImage    func(ctx context.Context, url string, maxBytes int64) ([]byte, string, error)
}

func NewService(db *gorm.DB, images ImageStore, views Invalidator) *Service {
	if images == nil {
		images = InlineImageStore{}
	}
	if views == nil {
		views = noopInvalidator{}
	}
	return &Service{db: db, images: images, views: views, maxImageBytes: utils.MaxUploadSize, fetchImage: utils.FetchImage}
}

// WithMaxImageBytes overrides the per-image size limit.
func (s *Service) WithMaxImageBytes(n int64) *Service {
	if n > 0 {
		s.maxImageBytes = n
	}
	return s
}

func (s *Service) ingest(ctx context.Context, form *Form, key string) (*string, error) {
	return IngestImage(ctx, s.images, form.File(key), s.maxImageBytes)
}

// loadRestaurant fetches the restaurant and checks it is inside scope.
func (s *Service) loadRestaurant(ctx context.Context, tx *gorm.DB, scope Scope, id uuid.UUID) (*models.Restaurant, error) {
	if err := scope.Authorize(id); err != nil {
		return nil, err
	}
	var restaurant models.Restaurant
	if err := tx.WithContext(ctx).First(&restaurant, "id = ?", id).Error; err != nil {
		return nil, classify("load restaurant", err)
	}
	return &restaurant, nil
}

// loadWritableRestaurant is loadRestaurant for mutations. A deactivated
// restaurant is read-only to its own dashboard; admins may still edit it.
func (s *Service) loadWritableRestaurant(ctx context.Context, tx *gorm.DB, scope Scope, id uuid.UUID) (*models.Restaurant, error) {
	restaurant, err := s.loadRestaurant(ctx, tx, scope, id)
	if err != nil {
		return nil, err
	}
	if !restaurant.IsActive && !scope.IsAdmin() {
		return nil, ErrRestaurantInactive
	}
	return restaurant, nil
}
