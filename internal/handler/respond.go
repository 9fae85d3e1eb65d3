package handler

import (
	"errors"
	"net/http"

	"credon/internal/domain"
	"credon/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// respondErr maps service and ledger errors onto HTTP statuses. Unknown errors
// become opaque 500s so internals never leak to clients.
func respondErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInsufficientBalance),
		errors.Is(err, domain.ErrBelowMinimum),
		errors.Is(err, domain.ErrNotEligible),
		errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrBelowMinAmount),
		errors.Is(err, service.ErrAddressRequired),
		errors.Is(err, service.ErrTxHashRequired),
		errors.Is(err, service.ErrWrongTxType),
		errors.Is(err, service.ErrPlanInactive),
		errors.Is(err, service.ErrEmailExists),
		errors.Is(err, service.ErrInvalidReferral):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrAlreadyResolved):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCreds):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
