package handlers

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"menuhub-backend/dtos"
	"menuhub-backend/middleware"
	"menuhub-backend/models"
	"menuhub-backend/services"
	"menuhub-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// maxImportFileSize bounds an uploaded xlsx import.
const maxImportFileSize = 10 << 20

// DashboardHandler serves a restaurant's own management console. Every
// action is scoped to the restaurant carried by the session token.
type DashboardHandler struct {
	Service       *services.Service
	MaxImageBytes int64
}

// session returns the verified scope and the restaurant it is bound to.
func session(c *gin.Context) (services.Scope, uuid.UUID, bool) {
	scope, ok := middleware.CurrentScope(c)
	if !ok || scope.RestaurantID == nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Restaurant access required"})
		return services.Scope{}, uuid.Nil, false
	}
	return scope, *scope.RestaurantID, true
}

func (h *DashboardHandler) GetRestaurant(c *gin.Context) {
	scope, restaurantID, ok := session(c)
	if !ok {
		return
	}

	restaurant, err := h.Service.GetRestaurant(c.Request.Context(), scope, restaurantID)
	if err != nil {
		respondError(c, "fetch restaurant", err)
		return
	}
	c.JSON(http.StatusOK, restaurant)
}

func (h *DashboardHandler) GetMenu(c *gin.Context) {
	scope, restaurantID, ok := session(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	restaurant, err := h.Service.GetRestaurant(ctx, scope, restaurantID)
	if err != nil {
		respondError(c, "fetch menu", err)
		return
	}
	menu, err := h.Service.GetManagementView(ctx, scope, restaurant.Slug, requestLanguage(c))
	if err != nil {
		respondError(c, "fetch menu", err)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, menu)
}

func (h *DashboardHandler) ExportMenu(c *gin.Context) {
	scope, restaurantID, ok := session(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	restaurant, err := h.Service.GetRestaurant(ctx, scope, restaurantID)
	if err != nil {
		respondError(c, "export menu", err)
		return
	}

	var buf bytes.Buffer
	if err := h.Service.ExportMenu(ctx, scope, restaurantID, requestLanguage(c), &buf); err != nil {
		respondError(c, "export menu", err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s-menu.xlsx", restaurant.Slug))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// ImportMenu accepts either a JSON item list or an xlsx workbook in the
// multipart "file" field.
func (h *DashboardHandler) ImportMenu(c *gin.Context) {
	scope, restaurantID, ok := session(c)
	if !ok {
		return
	}

	var items []dtos.MenuImportItem
	if strings.HasPrefix(c.ContentType(), gin.MIMEMultipartPOSTForm) {
		fh, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "An xlsx file is required", "field": "file"})
			return
		}
		if err := utils.ValidateFileUpload(fh, maxImportFileSize); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "field": "file"})
			return
		}
		f, err := fh.Open()
		if err != nil {
			respondError(c, "import menu", err)
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			respondError(c, "import menu", err)
			return
		}
		if items, err = services.ParseMenuSheet(bytes.NewReader(data), int64(len(data))); err != nil {
			respondError(c, "import menu", err)
			return
		}
	} else {
		var req dtos.MenuImportRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
			return
		}
		items = req.Items
	}

	report, err := h.Service.ImportMenu(c.Request.Context(), scope, restaurantID, items)
	if err != nil {
		respondError(c, "import menu", err)
		return
	}
	c.JSON(http.StatusOK, report)
}

type restaurantMutation func(context.Context, services.Scope, uuid.UUID, *services.Form) (*models.Restaurant, error)

// updateRestaurant binds the form and applies one of the settings mutations
// to the session's restaurant.
func (h *DashboardHandler) updateRestaurant(c *gin.Context, op string, mutate restaurantMutation) {
	scope, restaurantID, ok := session(c)
	if !ok {
		return
	}
	form, err := bindForm(c, h.MaxImageBytes)
	if err != nil {
		respondError(c, op, err)
		return
	}
	restaurant, err := mutate(c.Request.Context(), scope, restaurantID, form)
	if err != nil {
		respondError(c, op, err)
		return
	}
	c.JSON(http.StatusOK, restaurant)
}

func (h *DashboardHandler) UpdateInfo(c *gin.Context) {
	h.updateRestaurant(c, "update restaurant info", h.Service.UpdateRestaurantInfo)
}

func (h *DashboardHandler) UpdateAbout(c *gin.Context) {
	h.updateRestaurant(c, "update about page", h.Service.UpdateAbout)
}

func (h *DashboardHandler) UpdateAppearance(c *gin.Context) {
	h.updateRestaurant(c, "update appearance", h.Service.UpdateAppearance)
}

func (h *DashboardHandler) ChangePassword(c *gin.Context) {
	scope, restaurantID, ok := session(c)
	if !ok {
		return
	}

	var req dtos.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	if err := h.Service.ChangePassword(c.Request.Context(), scope, restaurantID, req.CurrentPassword, req.NewPassword); err != nil {
		respondError(c, "change password", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}

func (h *DashboardHandler) CreateCategory(c *gin.Context) {
	scope, restaurantID, ok := session(c)
	if !ok {
		return
	}
	form, err := bindForm(c, h.MaxImageBytes)
	if err != nil {
		respondError(c, "create category", err)
		return
	}

	category, err := h.Service.CreateCategory(c.Request.Context(), scope, restaurantID, form)
	if err != nil {
		respondError(c, "create category", err)
		return
	}
	c.JSON(http.StatusCreated, services.ToCategoryView(category, requestLanguage(c)))
}

func (h *DashboardHandler) UpdateCategory(c *gin.Context) {
	scope, _, ok := session(c)
	if !ok {
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}
	form, err := bindForm(c, h.MaxImageBytes)
	if err != nil {
		respondError(c, "update category", err)
		return
	}

	category, err := h.Service.UpdateCategory(c.Request.Context(), scope, id, form)
	if err != nil {
		respondError(c, "update category", err)
		return
	}
	c.JSON(http.StatusOK, services.ToCategoryView(category, requestLanguage(c)))
}

func (h *DashboardHandler) DeleteCategory(c *gin.Context) {
	scope, _, ok := session(c)
	if !ok {
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.Service.DeleteCategory(c.Request.Context(), scope, id); err != nil {
		respondError(c, "delete category", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}

func (h *DashboardHandler) CreateItem(c *gin.Context) {
	scope, restaurantID, ok := session(c)
	if !ok {
		return
	}
	form, err := bindForm(c, h.MaxImageBytes)
	if err != nil {
		respondError(c, "create menu item", err)
		return
	}

	item, err := h.Service.CreateMenuItem(c.Request.Context(), scope, restaurantID, form)
	if err != nil {
		respondError(c, "create menu item", err)
		return
	}
	c.JSON(http.StatusCreated, services.ToMenuItemView(item, requestLanguage(c)))
}

func (h *DashboardHandler) UpdateItem(c *gin.Context) {
	scope, _, ok := session(c)
	if !ok {
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}
	form, err := bindForm(c, h.MaxImageBytes)
	if err != nil {
		respondError(c, "update menu item", err)
		return
	}

	item, err := h.Service.UpdateMenuItem(c.Request.Context(), scope, id, form)
	if err != nil {
		respondError(c, "update menu item", err)
		return
	}
	c.JSON(http.StatusOK, services.ToMenuItemView(item, requestLanguage(c)))
}

func (h *DashboardHandler) SetItemAvailability(c *gin.Context) {
	scope, _, ok := session(c)
	if !ok {
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req dtos.SetAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	item, err := h.Service.SetMenuItemAvailability(c.Request.Context(), scope, id, *req.IsAvailable)
	if err != nil {
		respondError(c, "update availability", err)
		return
	}
	c.JSON(http.StatusOK, services.ToMenuItemView(item, requestLanguage(c)))
}

func (h *DashboardHandler) DeleteItem(c *gin.Context) {
	scope, _, ok := session(c)
	if !ok {
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.Service.DeleteMenuItem(c.Request.Context(), scope, id); err != nil {
		respondError(c, "delete menu item", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted successfully"})
}
