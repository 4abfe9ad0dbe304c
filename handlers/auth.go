package handlers

import (
	"log"
	"net/http"

	"menuhub-backend/dtos"
	"menuhub-backend/models"
	"menuhub-backend/services"
	"menuhub-backend/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	Auth          *services.AuthService
	Service       *services.Service
	MaxImageBytes int64
}

func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req dtos.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	token, _, err := h.Auth.LoginAdmin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, "log in", err)
		return
	}

	c.JSON(http.StatusOK, dtos.AuthResponse{Token: token, Role: models.RoleAdmin})
}

func (h *AuthHandler) RestaurantLogin(c *gin.Context) {
	var req dtos.RestaurantLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	token, restaurant, err := h.Auth.LoginRestaurant(c.Request.Context(), req.Slug, req.Password)
	if err != nil {
		respondError(c, "log in", err)
		return
	}

	view := services.ToRestaurantView(restaurant, requestLanguage(c))
	c.JSON(http.StatusOK, dtos.AuthResponse{Token: token, Role: models.RoleRestaurant, Restaurant: &view})
}

// Signup registers an owner and a restaurant and logs the owner straight
// into the new dashboard.
func (h *AuthHandler) Signup(c *gin.Context) {
	form, err := bindForm(c, h.MaxImageBytes)
	if err != nil {
		respondError(c, "sign up", err)
		return
	}

	restaurant, owner, err := h.Service.Signup(c.Request.Context(), form)
	if err != nil {
		respondError(c, "sign up", err)
		return
	}

	token, err := services.IssueRestaurantToken(restaurant, owner)
	if err != nil {
		log.Printf("Failed to issue token after signup for %s: %v", restaurant.Slug, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	// Send welcome email (non-blocking)
	utils.SendRestaurantWelcomeEmail(owner.Email, owner.Name, restaurant.Name, restaurant.Slug)

	view := services.ToRestaurantView(restaurant, requestLanguage(c))
	c.JSON(http.StatusCreated, dtos.AuthResponse{Token: token, Role: models.RoleRestaurant, Restaurant: &view})
}
