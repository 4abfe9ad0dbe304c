package services

import (
	"errors"

	"menuhub-backend/models"
	"menuhub-backend/utils"

	"github.com/google/uuid"
)

// Scope is the capability every mutation requires. It is only ever built
// from a verified session token, or by tests.
type Scope struct {
	Role         string
	UserID       *uuid.UUID
	RestaurantID *uuid.UUID
}

func AdminScope(userID uuid.UUID) Scope {
	return Scope{Role: models.RoleAdmin, UserID: &userID}
}

func RestaurantScope(restaurantID uuid.UUID) Scope {
	return Scope{Role: models.RoleRestaurant, RestaurantID: &restaurantID}
}

// ScopeFromClaims converts verified JWT claims into a Scope.
func ScopeFromClaims(claims *utils.Claims) (Scope, error) {
	if claims == nil {
		return Scope{}, errors.New("missing claims")
	}
	switch claims.Role {
	case models.RoleAdmin:
		if claims.UserID == nil {
			return Scope{}, errors.New("admin token without user")
		}
		return AdminScope(*claims.UserID), nil
	case models.RoleRestaurant:
		if claims.RestaurantID == nil {
			return Scope{}, errors.New("restaurant token without restaurant")
		}
		s := RestaurantScope(*claims.RestaurantID)
		s.UserID = claims.UserID
		return s, nil
	}
	return Scope{}, errors.New("unknown role " + claims.Role)
}

func (s Scope) IsAdmin() bool {
	return s.Role == models.RoleAdmin
}

func (s Scope) RequireAdmin() error {
	if !s.IsAdmin() {
		return &AuthorizationError{Reason: "admin role required"}
	}
	return nil
}

// Authorize allows admins everywhere and restaurant sessions only on their
// own restaurant.
func (s Scope) Authorize(restaurantID uuid.UUID) error {
	if s.IsAdmin() {
		return nil
	}
	if s.Role == models.RoleRestaurant && s.RestaurantID != nil && *s.RestaurantID == restaurantID {
		return nil
	}
	return &AuthorizationError{Reason: "restaurant is outside the session scope"}
}
