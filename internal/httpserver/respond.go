package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"freshbasket/internal/domain"
)

// respondError maps the domain error taxonomy to a status code and a
// machine-readable kind. The storefront relies on the code to distinguish
// "no delivery here" from hard failures.
func respondError(c *gin.Context, err error) {
	var verr *domain.ValidationError
	var pnf *domain.ProductNotFoundError
	var terr *domain.InvalidTransitionError

	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "code": "validation_error"})
	case errors.Is(err, domain.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "validation_error"})
	case errors.Is(err, domain.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "empty_cart"})
	case errors.As(err, &pnf):
		c.JSON(http.StatusNotFound, gin.H{"error": pnf.Error(), "code": "product_not_found"})
	case errors.Is(err, domain.ErrDuplicateZone):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "code": "duplicate_zone"})
	case errors.Is(err, domain.ErrAmountMismatch):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "amount_mismatch"})
	case errors.As(err, &terr):
		c.JSON(http.StatusConflict, gin.H{"error": terr.Error(), "code": "invalid_transition"})
	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error(), "code": "unauthorized"})
	case errors.Is(err, domain.ErrNotServiceable):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "code": "not_serviceable"})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "code": "not_found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error", "code": "internal"})
	}
}

func bindJSON(c *gin.Context, out any) bool {
	if err := c.ShouldBindJSON(out); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body", "code": "validation_error"})
		return false
	}
	return true
}
