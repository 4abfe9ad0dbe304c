package handlers

import (
	"net/http"

	"menuhub-backend/dtos"
	"menuhub-backend/middleware"
	"menuhub-backend/services"
	"menuhub-backend/utils"

	"github.com/gin-gonic/gin"
)

// AdminHandler is the platform console: it lists, creates, deactivates and
// deletes restaurants across all tenants.
type AdminHandler struct {
	Service       *services.Service
	MaxImageBytes int64
}

func adminSession(c *gin.Context) (services.Scope, bool) {
	scope, ok := middleware.CurrentScope(c)
	if !ok || !scope.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
		return services.Scope{}, false
	}
	return scope, true
}

func (h *AdminHandler) ListRestaurants(c *gin.Context) {
	scope, ok := adminSession(c)
	if !ok {
		return
	}

	restaurants, err := h.Service.ListRestaurants(c.Request.Context(), scope)
	if err != nil {
		respondError(c, "fetch restaurants", err)
		return
	}
	c.JSON(http.StatusOK, restaurants)
}

func (h *AdminHandler) GetRestaurant(c *gin.Context) {
	scope, ok := adminSession(c)
	if !ok {
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}

	restaurant, err := h.Service.GetRestaurant(c.Request.Context(), scope, id)
	if err != nil {
		respondError(c, "fetch restaurant", err)
		return
	}
	c.JSON(http.StatusOK, restaurant)
}

func (h *AdminHandler) CreateRestaurant(c *gin.Context) {
	scope, ok := adminSession(c)
	if !ok {
		return
	}
	form, err := bindForm(c, h.MaxImageBytes)
	if err != nil {
		respondError(c, "create restaurant", err)
		return
	}

	restaurant, err := h.Service.CreateRestaurant(c.Request.Context(), scope, form)
	if err != nil {
		respondError(c, "create restaurant", err)
		return
	}
	c.JSON(http.StatusCreated, restaurant)
}

// SetRestaurantActive is the console's soft delete and restore.
func (h *AdminHandler) SetRestaurantActive(c *gin.Context) {
	scope, ok := adminSession(c)
	if !ok {
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req dtos.SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	restaurant, err := h.Service.SetRestaurantActive(c.Request.Context(), scope, id, *req.IsActive)
	if err != nil {
		respondError(c, "update restaurant status", err)
		return
	}
	c.JSON(http.StatusOK, restaurant)
}

// ResetPassword sets a new dashboard password without the current one.
func (h *AdminHandler) ResetPassword(c *gin.Context) {
	scope, ok := adminSession(c)
	if !ok {
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req dtos.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	if err := h.Service.ChangePassword(c.Request.Context(), scope, id, "", req.NewPassword); err != nil {
		respondError(c, "reset password", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password reset successfully"})
}

func (h *AdminHandler) DeleteRestaurant(c *gin.Context) {
	scope, ok := adminSession(c)
	if !ok {
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.Service.DeleteRestaurant(c.Request.Context(), scope, id); err != nil {
		respondError(c, "delete restaurant", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Restaurant deleted successfully"})
}
