package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"menuhub-backend/models"
	"menuhub-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrInvalidCredentials = &AuthorizationError{Reason: "invalid credentials"}

// AuthService issues session tokens for both consoles. Admins log in with
// e-mail and password, restaurant dashboards with slug and password.
type AuthService struct {
	db *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

func (a *AuthService) LoginAdmin(ctx context.Context, email, password string) (string, *models.User, error) {
	var user models.User
	err := a.db.WithContext(ctx).
		Where("email = ? AND role = ?", strings.ToLower(strings.TrimSpace(email)), models.RoleAdmin).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, fmt.Errorf("load admin: %w", err)
	}
	if err := utils.ComparePassword(user.PasswordHash, password); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(models.RoleAdmin, &user.ID, nil, "")
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, &user, nil
}

// LoginRestaurant only admits active restaurants.
func (a *AuthService) LoginRestaurant(ctx context.Context, slug, password string) (string, *models.Restaurant, error) {
	var restaurant models.Restaurant
	err := a.db.WithContext(ctx).
		Where("slug = ? AND is_active = ?", strings.ToLower(strings.TrimSpace(slug)), true).
		First(&restaurant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, fmt.Errorf("load restaurant: %w", err)
	}
	if err := utils.ComparePassword(restaurant.PasswordHash, password); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := IssueRestaurantToken(&restaurant, nil)
	if err != nil {
		return "", nil, err
	}
	return token, &restaurant, nil
}

// IssueRestaurantToken signs a dashboard session scoped to restaurant.
func IssueRestaurantToken(restaurant *models.Restaurant, owner *models.User) (string, error) {
	var userID *uuid.UUID
	if owner != nil {
		userID = &owner.ID
	}
	token, err := utils.GenerateToken(models.RoleRestaurant, userID, &restaurant.ID, restaurant.Slug)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}
