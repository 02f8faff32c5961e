package httpserver

import (
	"net/http"

	checkoutsvc "storefront-checkout/internal/service/checkout"
	"github.com/gin-gonic/gin"
)

func checkoutHandler(svc CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in checkoutsvc.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body", "reason": "ValidationError"})
			return
		}
		order, err := svc.Checkout(c.Request.Context(), buyerFrom(c), in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, order)
	}
}
