package services

import (
	"testing"

	"menuhub-backend/models"
	"menuhub-backend/utils"
)

func TestLoginAdmin(t *testing.T) {
	db := freshDB()
	hash, _ := utils.HashPassword("adminpass1")
	admin := models.User{Email: "admin@menuhub.local", PasswordHash: hash, Role: models.RoleAdmin}
	db.Create(&admin)
	owner := models.User{Email: "owner@menuhub.local", PasswordHash: hash, Role: models.RoleRestaurant}
	db.Create(&owner)

	auth := NewAuthService(db)
	token, user, err := auth.LoginAdmin(ctx, " Admin@MenuHub.local ", "adminpass1")
	if err != nil {
		t.Fatal(err)
	}
	if user.ID != admin.ID {
		t.Error("expected the admin user")
	}
	claims, err := utils.ValidateToken(token)
	if err != nil {
		t.Fatal(err)
	}
	scope, err := ScopeFromClaims(claims)
	if err != nil || !scope.IsAdmin() {
		t.Errorf("expected admin scope from token, got %+v %v", scope, err)
	}

	_, _, err = auth.LoginAdmin(ctx, "admin@menuhub.local", "wrong")
	assertAuthorization(t, err)
	_, _, err = auth.LoginAdmin(ctx, "owner@menuhub.local", "adminpass1")
	assertAuthorization(t, err)
}

func TestLoginRestaurant(t *testing.T) {
	db := freshDB()
	r := seedRestaurant(t, db, "pizza-place", true)
	seedRestaurant(t, db, "closed", false)

	auth := NewAuthService(db)
	token, restaurant, err := auth.LoginRestaurant(ctx, "Pizza-Place", "password123")
	if err != nil {
		t.Fatal(err)
	}
	if restaurant.ID != r.ID {
		t.Error("expected the seeded restaurant")
	}
	claims, err := utils.ValidateToken(token)
	if err != nil {
		t.Fatal(err)
	}
	if claims.Slug != "pizza-place" || claims.RestaurantID == nil || *claims.RestaurantID != r.ID {
		t.Errorf("unexpected claims %+v", claims)
	}

	_, _, err = auth.LoginRestaurant(ctx, "pizza-place", "nope")
	assertAuthorization(t, err)
	_, _, err = auth.LoginRestaurant(ctx, "closed", "password123")
	assertAuthorization(t, err)
	_, _, err = auth.LoginRestaurant(ctx, "missing", "password123")
	assertAuthorization(t, err)
}
