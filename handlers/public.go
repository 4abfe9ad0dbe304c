package handlers

import (
	"net/http"
	"strings"

	"menuhub-backend/services"
	"menuhub-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PublicHandler serves the guest-facing menu and about pages.
type PublicHandler struct {
	Service *services.Service
}

func requestLanguage(c *gin.Context) string {
	return utils.NegotiateLanguage(c.Query("lang"), c.GetHeader("Accept-Language"))
}

// respondCached writes body with an ETag derived from its content, or 304
// when the client copy is still current.
func respondCached(c *gin.Context, lang string, body interface{}) {
	etag, err := services.ContentETag(lang, body)
	if err != nil {
		respondError(c, "tag response", err)
		return
	}
	c.Header("ETag", etag)
	c.Header("Cache-Control", "no-cache")
	c.Header("Vary", "Accept-Language")
	if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
		c.Status(http.StatusNotModified)
		return
	}
	c.JSON(http.StatusOK, body)
}

func (h *PublicHandler) GetMenu(c *gin.Context) {
	slug := strings.ToLower(strings.TrimSpace(c.Param("slug")))
	lang := requestLanguage(c)

	menu, err := h.Service.GetPublicMenu(c.Request.Context(), slug, lang)
	if err != nil {
		respondError(c, "fetch menu", err)
		return
	}
	respondCached(c, lang, menu)
}

func (h *PublicHandler) GetAbout(c *gin.Context) {
	slug := strings.ToLower(strings.TrimSpace(c.Param("slug")))
	lang := requestLanguage(c)

	about, err := h.Service.GetAboutPage(c.Request.Context(), slug, lang)
	if err != nil {
		respondError(c, "fetch about page", err)
		return
	}
	respondCached(c, lang, about)
}

type HealthHandler struct {
	DB *gorm.DB
}

func (h *HealthHandler) Health(c *gin.Context) {
	sqlDB, err := h.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "unreachable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "ok"})
}
