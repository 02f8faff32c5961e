package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func getOrderHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		// Buyers only ever see their own orders.
		if order.BuyerID != buyerFrom(c) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found", "reason": "NotFoundError"})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func cancelOrderHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := svc.Cancel(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		resp := gin.H{"order": result.Order, "refund": "none"}
		switch {
		case result.Refunded:
			resp["refund"] = "succeeded"
		case result.RefundErr != nil:
			// The order is cancelled, but the money is still with the
			// gateway. Surface it for manual reconciliation.
			resp["refund"] = "failed"
			resp["reason"] = "RefundFailedError"
		}
		c.JSON(http.StatusOK, resp)
	}
}
