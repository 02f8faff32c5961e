package httpserver

import (
	"net/http"

	"storefront-checkout/internal/gateway"
	paymentsvc "storefront-checkout/internal/service/payment"
	"github.com/gin-gonic/gin"
)

func initiateHandler(svc PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in paymentsvc.InitiateInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body", "reason": "ValidationError"})
			return
		}
		result, err := svc.Initiate(c.Request.Context(), in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// webhookHandler processes provider notifications. The signature is computed
// over the exact raw bytes received, and any failure answers non-2xx so the
// provider's retry mechanism redelivers.
func webhookHandler(svc PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := c.GetRawData()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body", "reason": "ValidationError"})
			return
		}
		result, err := svc.HandleWebhook(c.Request.Context(), body, c.GetHeader(gateway.SignatureHeader))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "payment": result.Payment.Status})
	}
}

func verifyHandler(svc PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := svc.VerifyByReference(c.Request.Context(), c.Param("reference"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func markPaidHandler(svc PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := svc.MarkCashPaid(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}
