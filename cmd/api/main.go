package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"freshbasket/internal/config"
	"freshbasket/internal/db"
	"freshbasket/internal/httpserver"
	"freshbasket/internal/notify"
	cartrepo "freshbasket/internal/repository/cart"
	orderrepo "freshbasket/internal/repository/order"
	productrepo "freshbasket/internal/repository/product"
	shoprepo "freshbasket/internal/repository/shop"
	userrepo "freshbasket/internal/repository/user"
	zonerepo "freshbasket/internal/repository/zone"
	cartsvc "freshbasket/internal/service/cart"
	deliverysvc "freshbasket/internal/service/delivery"
	ordersvc "freshbasket/internal/service/order"
	"freshbasket/internal/service/shoprouter"
	zonesvc "freshbasket/internal/service/zone"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	var notifier notify.Notifier
	if cfg.SendGridAPIKey != "" {
		notifier = notify.NewEmailNotifier(cfg.SendGridAPIKey, cfg.NotifyFromEmail, cfg.AdminEmail, logger)
	} else {
		notifier = &notify.LogNotifier{Logger: logger}
	}

	productRepo := productrepo.NewPostgres(dbpool, logger)
	shopRepo := shoprepo.NewPostgres(dbpool)
	zoneRepo := zonerepo.NewPostgres(dbpool)
	userRepo := userrepo.NewPostgres(dbpool)
	cartRepo := cartrepo.NewPostgres(dbpool)
	orderRepo := orderrepo.NewPostgres(dbpool, logger)

	routerSvc := shoprouter.New(shopRepo, cfg.DefaultShopID, logger)
	zoneSvc := zonesvc.New(zoneRepo)
	cartSvc := cartsvc.New(cartRepo, productRepo)
	orderSvc := ordersvc.New(orderRepo, userRepo, routerSvc, zoneSvc, notifier, logger)
	deliverySvc := deliverysvc.New(orderRepo, userRepo, logger)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		CartSvc:     cartSvc,
		OrderSvc:    orderSvc,
		DeliverySvc: deliverySvc,
		ZoneSvc:     zoneSvc,
		RouterSvc:   routerSvc,
		ProductRepo: productRepo,
		ShopRepo:    shopRepo,
		UserRepo:    userRepo,
		JWTSecret:   cfg.JWTSecret,
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
