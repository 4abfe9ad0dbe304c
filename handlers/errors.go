package handlers

import (
	"errors"
	"log"
	"net/http"

	"menuhub-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// respondError maps the service error taxonomy onto HTTP statuses. Only
// unexpected failures are logged; their detail never reaches the client.
func respondError(c *gin.Context, op string, err error) {
	var validationErr *services.ValidationError
	var integrityErr *services.IntegrityError
	var authErr *services.AuthorizationError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error(), "field": validationErr.Field})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	case errors.As(err, &authErr):
		c.JSON(http.StatusForbidden, gin.H{"error": authErr.Error()})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.As(err, &integrityErr):
		c.JSON(http.StatusConflict, gin.H{"error": integrityMessage(integrityErr)})
	default:
		log.Printf("Failed to %s: %v", op, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + op})
	}
}

func integrityMessage(err *services.IntegrityError) string {
	switch {
	case errors.Is(err, services.ErrEmailTaken):
		return "Email already registered"
	case errors.Is(err, services.ErrCategoryMismatch):
		return "Category belongs to a different restaurant"
	case errors.Is(err, services.ErrSlugExhausted):
		return "Could not reserve a unique slug, please try again"
	}
	return "Request conflicts with existing data"
}

// paramID parses the :id path parameter, answering 400 when malformed.
func paramID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return uuid.Nil, false
	}
	return id, true
}
