package httpserver

import (
	"context"
	"log"
	"time"

	"storefront-checkout/internal/domain"
	checkoutsvc "storefront-checkout/internal/service/checkout"
	ordersvc "storefront-checkout/internal/service/order"
	paymentsvc "storefront-checkout/internal/service/payment"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CheckoutService converts a buyer's cart into an order.
type CheckoutService interface {
	Checkout(ctx context.Context, buyerID string, in checkoutsvc.Input) (*domain.Order, error)
}

// PaymentService covers initiation, reconciliation and manual settlement.
type PaymentService interface {
	Initiate(ctx context.Context, in paymentsvc.InitiateInput) (*paymentsvc.InitiateResult, error)
	HandleWebhook(ctx context.Context, body []byte, signature string) (*paymentsvc.ReconcileResult, error)
	VerifyByReference(ctx context.Context, reference string) (*paymentsvc.ReconcileResult, error)
	MarkCashPaid(ctx context.Context, orderID string) (*domain.Order, error)
}

// OrderService reads and cancels orders.
type OrderService interface {
	Get(ctx context.Context, id string) (*domain.Order, error)
	Cancel(ctx context.Context, id string) (*ordersvc.CancelResult, error)
}

// Authenticator resolves a bearer token to a buyer id.
type Authenticator interface {
	BuyerFromToken(ctx context.Context, token string) (string, error)
}

// Deps bundles everything the routes need.
type Deps struct {
	CheckoutSvc CheckoutService
	PaymentSvc  PaymentService
	OrderSvc    OrderService
	Auth        Authenticator
	OperatorKey string
	CORSOrigins []string
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	if len(deps.CORSOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins: deps.CORSOrigins,
			AllowMethods: []string{"GET", "POST", "OPTIONS"},
			AllowHeaders: []string{"Authorization", "Content-Type", "X-Operator-Key"},
			MaxAge:       12 * time.Hour,
		}))
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	// Provider-facing endpoints authenticate by signature / reference, not by
	// buyer token.
	router.POST("/payments/webhook", webhookHandler(deps.PaymentSvc))
	router.GET("/payments/verify/:reference", verifyHandler(deps.PaymentSvc))

	buyer := router.Group("")
	buyer.Use(buyerAuth(deps.Auth))
	buyer.POST("/checkout", checkoutHandler(deps.CheckoutSvc))
	buyer.POST("/payments/initiate", initiateHandler(deps.PaymentSvc))
	buyer.GET("/orders/:id", getOrderHandler(deps.OrderSvc))

	ops := router.Group("/orders")
	ops.Use(operatorAuth(deps.OperatorKey))
	ops.POST("/:id/cancel", cancelOrderHandler(deps.OrderSvc))
	ops.POST("/:id/mark-paid", markPaidHandler(deps.PaymentSvc))

	return router
}
