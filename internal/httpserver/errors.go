package httpserver

import (
	"errors"
	"net/http"

	"storefront-checkout/internal/domain"
	"storefront-checkout/internal/gateway"
	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto HTTP statuses with machine-readable
// reason codes. Upstream gateway failures get their own status so operators
// can tell them apart from local storage faults.
func respondError(c *gin.Context, err error) {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error(), "reason": "ValidationError"})
	case errors.Is(err, domain.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "reason": "EmptyCartError"})
	case errors.Is(err, domain.ErrUnsupportedMethod):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "reason": "UnsupportedMethodError"})
	case errors.Is(err, domain.ErrOrderNotPayable):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "reason": "OrderNotPayableError"})
	case errors.Is(err, domain.ErrInvalidSignature):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error(), "reason": "InvalidSignatureError"})
	case errors.Is(err, domain.ErrPaymentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "reason": "PaymentNotFoundError"})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "reason": "NotFoundError"})
	case errors.Is(err, gateway.ErrGateway):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "reason": "GatewayError"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error", "reason": "PersistenceError"})
	}
}
