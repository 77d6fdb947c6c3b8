package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/alimikegami/point-of-sales/storefront-service/config"
	"github.com/alimikegami/point-of-sales/storefront-service/internal/controller"
	"github.com/alimikegami/point-of-sales/storefront-service/internal/dto"
	"github.com/alimikegami/point-of-sales/storefront-service/internal/infrastructure/database/mongodb"
	"github.com/alimikegami/point-of-sales/storefront-service/internal/infrastructure/database/postgres"
	"github.com/alimikegami/point-of-sales/storefront-service/internal/infrastructure/llm"
	"github.com/alimikegami/point-of-sales/storefront-service/internal/infrastructure/message-queue/kafka"
	"github.com/alimikegami/point-of-sales/storefront-service/internal/infrastructure/tracing"
	custommiddleware "github.com/alimikegami/point-of-sales/storefront-service/internal/middleware"
	"github.com/alimikegami/point-of-sales/storefront-service/internal/repository"
	"github.com/alimikegami/point-of-sales/storefront-service/internal/service"
	"github.com/alimikegami/point-of-sales/storefront-service/pkg/response"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/sdk/trace"
)

type publisher interface {
	service.EventPublisher
	Close() error
}

type repositories struct {
	trx     repository.TransactionManager
	cart    repository.CartRepository
	order   repository.OrderRepository
	product repository.ProductRepository
	user    repository.UserRepository
	chat    repository.ChatRepository
}

type App struct {
	Config        *config.Config
	Server        *echo.Echo
	MetricsServer *echo.Echo

	traceProvider *trace.TracerProvider
	publisher     publisher
	orderService  service.OrderService
	closers       []func(ctx context.Context) error
}

func configureLogger(level string) {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = logger
	zerolog.DefaultContextLogger = &log.Logger
}

func (app *App) openRepositories(ctx context.Context) (repos repositories, err error) {
	switch app.Config.StorageDriver {
	case config.StorageDriverMemory:
		store := repository.CreateMemoryStore()
		return repositories{
			trx:     repository.CreateMemoryTransactionManager(store),
			cart:    repository.CreateMemoryCartRepository(store),
			order:   repository.CreateMemoryOrderRepository(store),
			product: repository.CreateMemoryProductRepository(store),
			user:    repository.CreateMemoryUserRepository(store),
			chat:    repository.CreateMemoryChatRepository(store),
		}, nil
	case config.StorageDriverMongoDB:
	default:
		return repos, fmt.Errorf("unknown storage driver %q", app.Config.StorageDriver)
	}

	db, err := mongodb.ConnectToMongoDB(app.Config.MongoDBConfig.URI, app.Config.MongoDBConfig.Database)
	if err != nil {
		return repos, err
	}
	app.closers = append(app.closers, db.Client().Disconnect)

	if err = mongodb.EnsureIndexes(ctx, db); err != nil {
		return repos, err
	}

	sqlDB, err := postgres.GetDBInstance(app.Config.PostgreSQLConfig.DBUsername, app.Config.PostgreSQLConfig.DBPassword,
		app.Config.PostgreSQLConfig.DBHost, app.Config.PostgreSQLConfig.DBPort, app.Config.PostgreSQLConfig.DBName)
	if err != nil {
		return repos, err
	}
	app.closers = append(app.closers, func(context.Context) error { return sqlDB.Close() })

	if err = postgres.EnsureSchema(ctx, sqlDB); err != nil {
		return repos, err
	}

	return repositories{
		trx:     repository.CreateMongoDBTransactionManager(db),
		cart:    repository.CreateMongoDBCartRepository(db),
		order:   repository.CreateMongoDBOrderRepository(db),
		product: repository.CreateMongoDBProductRepository(db),
		user:    repository.CreatePostgresUserRepository(sqlDB),
		chat:    repository.CreateMongoDBChatRepository(db),
	}, nil
}

func (app *App) openPublisher() publisher {
	if app.Config.KafkaConfig.BrokerAddress == "" {
		log.Warn().Str("component", "openPublisher").Msg("no broker address configured, order events are not published")
		return kafka.NopPublisher{}
	}
	return kafka.CreateKafkaPublisher(app.Config)
}

// Setup builds the HTTP server and its dependencies without listening.
func (app *App) Setup(ctx context.Context) error {
	configureLogger(app.Config.LogLevel)

	traceProvider, err := tracing.InitTracing(app.Config.TracingConfig.CollectorHost)
	if err != nil {
		return err
	}
	app.traceProvider = traceProvider
	tracer := traceProvider.Tracer(tracing.ServiceName)

	repos, err := app.openRepositories(ctx)
	if err != nil {
		return err
	}

	app.publisher = app.openPublisher()

	cartSvc := service.CreateCartService(repos.cart, app.Config.CartRetries)
	orderSvc := service.CreateOrderService(repos.trx, repos.order, repos.cart, app.publisher, app.Config.CartRetries)
	app.orderService = orderSvc
	productSvc := service.CreateProductService(repos.product)
	userSvc := service.CreateUserService(repos.user, app.Config.JWTConfig)
	chatSvc := service.CreateChatService(repos.chat, repos.order, repos.product, llm.CreateGeminiClient(app.Config.LLMConfig))

	err = userSvc.EnsureAdmin(ctx, dto.UserRequest{
		Name:     app.Config.AdminConfig.Name,
		Email:    app.Config.AdminConfig.Email,
		Password: app.Config.AdminConfig.Password,
	})
	if err != nil {
		return fmt.Errorf("seeding admin account: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx, span := tracer.Start(c.Request().Context(), fmt.Sprintf("[%s] %s", c.Request().Method, c.Path()))
			defer span.End()

			req := c.Request()
			c.SetRequest(req.WithContext(ctx))

			return next(c)
		}
	})

	// Used empty string so that metrics are not prefixed with the service name making it easier to aggregate across services
	e.Use(echoprometheus.NewMiddleware(""))
	e.Use(custommiddleware.Logger)

	g := e.Group("/api/v1")

	isLoggedIn := custommiddleware.IsLoggedIn(app.Config.JWTConfig.JWTSecret)
	controller.CreateCartController(g, cartSvc, isLoggedIn)
	controller.CreateOrderController(g, orderSvc, isLoggedIn)
	controller.CreateProductController(g, productSvc)
	controller.CreateUserController(g, userSvc)
	controller.CreateChatController(g, chatSvc, custommiddleware.OptionalAuth(app.Config.JWTConfig.JWTSecret))
	controller.CreateAdminController(g, productSvc, orderSvc, isLoggedIn, custommiddleware.IsAdmin)

	g.GET("/ping", func(c echo.Context) error {
		return response.WriteSuccessResponse(c, "Hello, World!", nil)
	})

	metrics := echo.New()
	metrics.HideBanner = true
	metrics.GET("/metrics", echoprometheus.NewHandler())

	app.Server = e
	app.MetricsServer = metrics

	return nil
}

// Start blocks until the server stops. http.ErrServerClosed is not reported.
func (app *App) Start(ctx context.Context) error {
	if app.Server == nil {
		if err := app.Setup(ctx); err != nil {
			return err
		}
	}

	go func() {
		if err := app.MetricsServer.Start(fmt.Sprintf(":%s", app.Config.MetricsPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Failed to start metrics server")
		}
	}()

	log.Info().Str("port", app.Config.ServicePort).Str("storage", app.Config.StorageDriver).Msg("starting server")

	err := app.Server.Start(fmt.Sprintf(":%s", app.Config.ServicePort))
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (app *App) StopServer() error {
	ctx, cancel := context.WithTimeout(context.Background(), app.Config.ShutdownGrace)
	defer cancel()

	var errList []error
	if app.Server != nil {
		errList = append(errList, app.Server.Shutdown(ctx))
	}
	if app.MetricsServer != nil {
		errList = append(errList, app.MetricsServer.Shutdown(ctx))
	}
	if app.orderService != nil {
		errList = append(errList, app.orderService.WaitForEvents(ctx))
	}
	if app.publisher != nil {
		errList = append(errList, app.publisher.Close())
	}
	for _, closeFn := range app.closers {
		errList = append(errList, closeFn(ctx))
	}
	if app.traceProvider != nil {
		errList = append(errList, app.traceProvider.Shutdown(ctx))
	}

	return errors.Join(errList...)
}
