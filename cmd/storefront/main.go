package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"

	cartadapter "github.com/oleeahmmed/ecommerce/internal/cart/infra/adapter"
	cartpg "github.com/oleeahmmed/ecommerce/internal/cart/infra/postgres"
	catalogpg "github.com/oleeahmmed/ecommerce/internal/catalog/infra/postgres"
	checkoutadapter "github.com/oleeahmmed/ecommerce/internal/checkout/infra/adapter"
	couponpg "github.com/oleeahmmed/ecommerce/internal/coupon/infra/postgres"
	orderpg "github.com/oleeahmmed/ecommerce/internal/order/infra/postgres"
	settingspg "github.com/oleeahmmed/ecommerce/internal/settings/postgres"

	cartapp "github.com/oleeahmmed/ecommerce/internal/cart/app"
	catalogapp "github.com/oleeahmmed/ecommerce/internal/catalog/app"
	checkoutapp "github.com/oleeahmmed/ecommerce/internal/checkout/app"
	couponapp "github.com/oleeahmmed/ecommerce/internal/coupon/app"
	orderapp "github.com/oleeahmmed/ecommerce/internal/order/app"

	"github.com/oleeahmmed/ecommerce/internal/events"
	"github.com/oleeahmmed/ecommerce/internal/handler"
	"github.com/oleeahmmed/ecommerce/internal/settings"
	"github.com/oleeahmmed/ecommerce/pkg/config"
	"github.com/oleeahmmed/ecommerce/pkg/logger"
	"github.com/oleeahmmed/ecommerce/pkg/postgres"
	"github.com/oleeahmmed/ecommerce/pkg/shutdown"
)

func main() {
	if err := run(); err != nil {
		slog.Error("storefront exited", slog.Any("err", err))
		os.Exit(1)
	}
}

func run() error {
	// Missing .env is fine; the environment itself may carry the config.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(logger.Options{
		Service: "storefront",
		Env:     cfg.AppEnv,
		Level:   cfg.LogLevel,
	})

	ctx, stop := shutdown.WithSignals(context.Background())
	defer stop()

	db, err := postgres.Open(postgres.Config{
		Host: cfg.PostgresHost,
		Port: cfg.PostgresPort,
		User: cfg.PostgresUser,
		Pass: cfg.PostgresPassword,
		DB:   cfg.PostgresDB,
	})
	if err != nil {
		return err
	}
	defer db.Close()

	catalogSvc := catalogapp.NewService(catalogpg.NewProductRepo(db), catalogpg.NewCategoryRepo(db))
	cartSvc := cartapp.NewService(
		cartpg.NewCartRepo(db),
		cartadapter.NewCatalogServiceReader(catalogSvc),
		cfg.CheckoutMaxConcurrent,
	)
	couponSvc := couponapp.NewService(couponpg.NewCouponRepo(db))
	orderSvc := orderapp.NewService(orderpg.NewOrderRepo(db))

	storeSvc := settings.NewService(settingspg.NewSettingsRepo(db))
	if err := storeSvc.Load(ctx); err != nil {
		return fmt.Errorf("load store settings: %w", err)
	}

	publisher, closePublisher, err := newPublisher(cfg, log)
	if err != nil {
		return err
	}
	defer closePublisher()

	checkoutSvc := checkoutapp.NewService(
		checkoutadapter.NewCartServiceStore(cartSvc),
		checkoutadapter.NewCatalogServiceReader(catalogSvc),
		checkoutadapter.NewCouponServiceStore(couponSvc),
		orderpg.NewOrderRepo(db),
		publisher,
		log,
		cfg.CheckoutMaxConcurrent,
	)

	router := handler.NewRouter(handler.RouterDeps{
		Catalog:  handler.NewCatalogHandler(catalogSvc, log),
		Cart:     handler.NewCartHandler(cartSvc, log),
		Coupon:   handler.NewCouponHandler(couponSvc, log),
		Checkout: handler.NewCheckoutHandler(checkoutSvc, log),
		Order:    handler.NewOrderHandler(orderSvc, log),
		Settings: handler.NewSettingsHandler(storeSvc, log),
		Store:    storeSvc,
		Log:      log,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("storefront listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newPublisher returns the AMQP order-event publisher, or a no-op one when
// no broker is configured.
func newPublisher(cfg config.Config, log *slog.Logger) (events.Publisher, func(), error) {
	if cfg.AMQPURL == "" {
		log.Info("order events disabled, no AMQP_URL configured")
		return events.NopPublisher{}, func() {}, nil
	}

	conn, err := amqp.Dial(cfg.AMQPURL)
	if err != nil {
		return nil, nil, fmt.Errorf("dial amqp: %w", err)
	}

	pub, err := events.NewAMQPPublisher(conn, cfg.OrderEventsQueue)
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("amqp publisher: %w", err)
	}

	closer := func() {
		if err := pub.Close(); err != nil {
			log.Error("amqp publisher close failed", slog.Any("err", err))
		}
		conn.Close()
	}
	return pub, closer, nil
}
