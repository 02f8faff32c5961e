package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"storefront-checkout/internal/config"
	"storefront-checkout/internal/db"
	"storefront-checkout/internal/gateway"
	"storefront-checkout/internal/httpserver"
	"storefront-checkout/internal/notify"
	orderrepo "storefront-checkout/internal/repository/order"
	paymentrepo "storefront-checkout/internal/repository/payment"
	tokenrepo "storefront-checkout/internal/repository/token"
	authsvc "storefront-checkout/internal/service/auth"
	checkoutsvc "storefront-checkout/internal/service/checkout"
	ordersvc "storefront-checkout/internal/service/order"
	paymentsvc "storefront-checkout/internal/service/payment"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	gw := gateway.New(cfg.Gateway, logger)
	notifier := notify.NewLogNotifier(logger)

	orderRepo := orderrepo.NewPostgres(dbpool, logger)
	paymentRepo := paymentrepo.NewPostgres(dbpool, logger)
	tokenRepo := tokenrepo.NewPostgres(dbpool)

	checkoutService := checkoutsvc.New(orderRepo, notifier, cfg.Currency, logger)
	paymentService := paymentsvc.New(paymentRepo, orderRepo, gw, notifier, cfg.Gateway.SecretKey, logger)
	orderService := ordersvc.New(orderRepo, paymentRepo, gw, logger)
	authService := authsvc.New(tokenRepo)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		CheckoutSvc: checkoutService,
		PaymentSvc:  paymentService,
		OrderSvc:    orderService,
		Auth:        authService,
		OperatorKey: cfg.OperatorKey,
		CORSOrigins: cfg.CORSOrigins,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
