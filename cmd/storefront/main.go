package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"kebuli-storefront/internal/config"
	"kebuli-storefront/internal/db"
	"kebuli-storefront/internal/httpserver"
	"kebuli-storefront/internal/remote"
	cartintentrepo "kebuli-storefront/internal/repository/cartintent"
	guestcartrepo "kebuli-storefront/internal/repository/guestcart"
	paymentstaterepo "kebuli-storefront/internal/repository/paymentstate"
	selectionrepo "kebuli-storefront/internal/repository/selection"
	sessionrepo "kebuli-storefront/internal/repository/session"
	accountsvc "kebuli-storefront/internal/service/account"
	cartsvc "kebuli-storefront/internal/service/cart"
	checkoutsvc "kebuli-storefront/internal/service/checkout"
	paymentsvc "kebuli-storefront/internal/service/payment"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[storefront] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	api := remote.New(cfg.APIBaseURL, cfg.APITimeout, logger)

	sessionRepo := sessionrepo.NewPostgres(dbpool)
	guestRepo := guestcartrepo.NewPostgres(dbpool)
	selectionRepo := selectionrepo.NewPostgres(dbpool)
	intentRepo := cartintentrepo.NewPostgres(dbpool)
	paymentRepo := paymentstaterepo.NewPostgres(dbpool)

	accountService := accountsvc.New(sessionRepo, api, logger)
	cartService := cartsvc.New(guestRepo, intentRepo, sessionRepo, api, api, logger)
	checkoutService := checkoutsvc.New(selectionRepo, paymentRepo, cartService, api, cfg.ShippingFeeCents, logger)
	paymentService := paymentsvc.New(paymentRepo, sessionRepo, selectionRepo, cartService, api, logger)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		AccountSvc:  accountService,
		CartSvc:     cartService,
		CheckoutSvc: checkoutService,
		PaymentSvc:  paymentService,
		API:         api,
	}, cfg.CORSAllowedOrigins)
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
