package main

import (
	"context"
	"errors"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"icafe-booking/internal/config"
	"icafe-booking/internal/controllers/http"
	"icafe-booking/internal/infra"
	"icafe-booking/internal/infra/kafka"
	mmysql "icafe-booking/internal/infra/mysql"
	"icafe-booking/internal/infra/rabbitmq"
	"icafe-booking/internal/infra/redisx"
	mysqlrepo "icafe-booking/internal/repository/mysql"
	"icafe-booking/internal/services"
	"icafe-booking/internal/worker"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg := config.Load()
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel(cfg.LogLevel)})))

	db, err := mmysql.Open(cfg.MySQL)
	if err != nil {
		slog.Error("db: connect", "error", err)
		os.Exit(1)
	}

	orderRepo := mysqlrepo.NewOrderRepository(db)
	catalogRepo := mysqlrepo.NewCatalogRepository(db)
	adminRepo := mysqlrepo.NewAdminRepository(db)
	credRepo := mysqlrepo.NewCredentialRepository(db)

	publisher, err := newPublisher(cfg)
	if err != nil {
		slog.Error("failed to init publisher", "broker", cfg.Broker, "error", err)
		os.Exit(1)
	}
	defer publisher.Close()

	gateway := infra.NewMidtransClient(cfg.Midtrans.ServerKey, cfg.Midtrans.SnapURL, cfg.Midtrans.APIURL, cfg.Midtrans.Timeout)
	scheduler := services.NewTimerScheduler()

	orderSvc := services.NewOrderService(orderRepo, catalogRepo, gateway, publisher, scheduler)
	orderSvc.SetExpiry(cfg.OrderExpiry)
	if cfg.RedisAddr != "" {
		rdb := redisx.NewClient(cfg.RedisAddr)
		defer rdb.Close()
		orderSvc.SetCache(redisx.NewCache(rdb), cfg.OrderCacheTTL)
	}

	authSvc := services.NewAuthService(credRepo, cfg.JWTSecret, cfg.JWTTTL)
	adminSvc := services.NewAdminService(adminRepo)
	computerSvc := services.NewComputerService(catalogRepo)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Admin.Email != "" {
		err := authSvc.EnsureAdmin(ctx, services.RegisterAdminRequest{
			Email:    cfg.Admin.Email,
			Password: cfg.Admin.Password,
			FullName: cfg.Admin.FullName,
		})
		if err != nil {
			slog.Error("failed to seed admin", "email", cfg.Admin.Email, "error", err)
			os.Exit(1)
		}
	}

	handler := http.NewHandler(orderSvc, adminSvc, authSvc, computerSvc)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	handler.RegisterRoutes(r)

	srv := &nethttp.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		worker.NewExpiryWorker(orderSvc, cfg.SweepInterval, orderSvc.Expiry()).Start(gctx)
		return nil
	})
	g.Go(func() error {
		slog.Info("starting icafe booking service", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("server run", "error", err)
	}
	scheduler.Stop()
	slog.Info("shutdown complete")
}

func newPublisher(cfg config.Config) (infra.Publisher, error) {
	switch cfg.Broker {
	case "rabbitmq":
		return rabbitmq.NewPublisher(cfg.RabbitMQURL, cfg.RabbitMQExchange)
	case "kafka":
		return kafka.NewPublisher(cfg.KafkaBrokers), nil
	default:
		slog.Warn("no event broker configured, events are dropped")
		return infra.NoopPublisher{}, nil
	}
}

func logLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return l
}
