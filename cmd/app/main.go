package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoswagger "github.com/swaggo/echo-swagger"
	"golang.org/x/sync/errgroup"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"marketplace/cmd"
	_ "marketplace/docs"
	"marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/in/ws"
	"marketplace/internal/adapters/out/kafka"
	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/adapters/out/postgres/productrepo"
	"marketplace/internal/adapters/out/postgres/shoprepo"
	"marketplace/internal/adapters/out/postgres/userrepo"
	"marketplace/internal/jobs"
	"marketplace/internal/notifications"
)

//	@title			Marketplace Order Service API
//	@version		1.0
//	@description	Order lifecycle and delivery assignment for the neighborhood marketplace.
//	@BasePath		/
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("application stopped", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	config, err := cmd.LoadConfig()
	if err != nil {
		return err
	}

	gormDB, err := gorm.Open(postgres.Open(config.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}

	if err := gormDB.AutoMigrate(
		&userrepo.UserDTO{},
		&shoprepo.ShopDTO{},
		&productrepo.ProductDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
	); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}

	hub := ws.NewHub(logger)
	eventSink := kafka.NewOrderEventSink(config.KafkaBrokers, config.KafkaOrderEventTopic)
	defer func() {
		if closeErr := eventSink.Close(); closeErr != nil {
			logger.Warn("closing kafka sink failed", "error", closeErr)
		}
	}()

	dispatcher := notifications.NewDispatcher(logger, hub, eventSink)
	root := cmd.NewCompositionRoot(config, gormDB, dispatcher)

	authenticator := root.CreateTokenAuthenticator()

	server := http.NewServer(logger,
		root.CreateCreateOrderCommandHandler(),
		root.CreateUpdateOrderStatusCommandHandler(),
		root.CreateAssignCourierCommandHandler(),
		root.CreateTakeOrderCommandHandler(),
		root.CreateGetOrderQueryHandler(),
		root.CreateGetAllOrdersQueryHandler(),
		root.CreateGetMyOrdersQueryHandler(),
		root.CreateGetShopOrdersQueryHandler(),
		root.CreateGetCourierOrdersQueryHandler(),
	)

	courierRooms := root.CreateGetCourierDeliveryRoomsQueryHandler()
	shopOwners := root.CreateCheckShopOwnerQueryHandler()
	gateway := ws.NewGateway(logger, hub, authenticator, dispatcher, courierRooms, shopOwners)

	e := echo.New()
	e.HideBanner = true
	e.Validator = http.NewRequestValidator()
	e.Use(echomiddleware.Recover())
	e.Use(http.Metrics())

	e.GET("/health", func(c echo.Context) error {
		return c.String(nethttp.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoswagger.WrapHandler)
	e.GET("/ws", gateway.Handle)

	api := e.Group("", http.BearerAuth(authenticator))
	server.RegisterRoutes(api)

	jobManager := jobs.NewJobManager(
		root.CreateRemindStaleOrdersCommandHandler(),
		config.StaleOrderThreshold,
		logger,
	)
	if err := jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		logger.Info("http server starting", "port", config.HTTPPort)
		if serveErr := e.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort)); serveErr != nil &&
			!errors.Is(serveErr, nethttp.ErrServerClosed) {
			return serveErr
		}
		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		logger.Info("shutting down")
		return e.Shutdown(shutdownCtx)
	})

	return group.Wait()
}
