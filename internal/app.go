package internal

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"baka-api/config"
	"baka-api/internal/application/ports"
	"baka-api/internal/application/services"
	"baka-api/internal/domain/user"
	"baka-api/internal/infrastructure/db/postgres"
	pguser "baka-api/internal/infrastructure/db/postgres/user"
	"baka-api/internal/infrastructure/db/sqlite"
	sqliteuser "baka-api/internal/infrastructure/db/sqlite/user"
	applogger "baka-api/internal/infrastructure/logger"
	"baka-api/internal/infrastructure/metrics"
	"baka-api/internal/infrastructure/mq"
	"baka-api/internal/infrastructure/s3"
	"baka-api/internal/infrastructure/token"
	"baka-api/internal/interface/api/rest"
	"baka-api/internal/interface/api/rest/middleware"
	"baka-api/internal/interface/api/rest/response"
	"baka-api/pkg/rmqconsumer"
)

type App struct {
	logger     *zap.Logger
	cfg        config.Config
	userRepo   user.Repository
	closeDB    func() error
	s3         ports.S3Client
	httpSrv    *http.Server
	router     *gin.Engine
	mCounter   *prometheus.CounterVec
	publisher  ports.EventPublisher
	mq         ports.RabbitMQ
	mqConsumer ports.RMQConsumer
}

func NewApp(ctx context.Context) (*App, error) {
	// config, .env is optional
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("error loading .env file: %v", err)
	}
	cfg := config.Load()

	// logger
	logger, err := applogger.New(cfg.Log)
	if err != nil {
		log.Fatalf("cannot initialize zap logger: %v", err)
	}

	// metrics
	mCounter := metrics.NewCounter()

	// router
	switch cfg.App.Env {
	case gin.ReleaseMode, "prod", "production":
		gin.SetMode(gin.ReleaseMode)
	case gin.TestMode:
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogGin(logger, mCounter))
	if len(cfg.App.AllowedOrigins) > 0 {
		r.Use(cors.New(corsConfig(cfg.App.AllowedOrigins)))
	}

	// httpServer
	httpSrv := &http.Server{
		Addr:              cfg.App.Host + ":" + cfg.App.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// db
	userRepo, closeDB, err := openStore(ctx, logger, cfg)
	if err != nil {
		logger.Fatal("failed to open user store", zap.Error(err))
	}

	// s3
	var s3Client ports.S3Client
	c, err := s3.New(logger, cfg.S3)
	switch {
	case err == nil:
		s3Client = c
	case errors.Is(err, s3.ErrNoBucket):
		logger.Info("uploads bucket not configured, file urls omitted")
	default:
		logger.Fatal("S3 config error", zap.Error(err))
	}

	app := &App{
		logger:    logger,
		cfg:       cfg,
		userRepo:  userRepo,
		closeDB:   closeDB,
		s3:        s3Client,
		httpSrv:   httpSrv,
		router:    r,
		mCounter:  mCounter,
		publisher: mq.NewDiscard(logger),
	}

	if !cfg.MQEnabled() {
		logger.Info("rabbitMQ not configured, lifecycle events are discarded")
		return app, nil
	}

	// rabbitMQ
	rabbitDsn, err := cfg.AMQPDSN()
	if err != nil {
		logger.Fatal("RabbitMQ config error", zap.Error(err))
	}
	rbMQ := mq.New(cfg.MQ, logger)
	if err = rbMQ.Connect(ctx, rabbitDsn); err != nil {
		logger.Fatal("failed to connect to rabbitMQ", zap.Error(err))
	}
	if err = rbMQ.Init(); err != nil {
		logger.Fatal("failed init rabbitMQ", zap.Error(err))
	}
	// rmqConsumer
	rmqConsumer := rmqconsumer.New(cfg.MQ, logger, rbMQ.GetConn())
	if err = rmqConsumer.Connect(rabbitDsn); err != nil {
		logger.Fatal("failed to connect rabbitMQ consumer", zap.Error(err))
	}
	if err = rmqConsumer.Init(); err != nil {
		logger.Fatal("failed to init rabbitMQ consumer", zap.Error(err))
	}

	app.publisher = rbMQ
	app.mq = rbMQ
	app.mqConsumer = rmqConsumer

	return app, nil
}

// openStore connects the configured backend, brings its schema up to date
// and returns the user repository over it.
func openStore(ctx context.Context, logger *zap.Logger, cfg config.Config) (user.Repository, func() error, error) {
	dsn, err := cfg.DBDSN()
	if err != nil {
		return nil, nil, err
	}

	switch cfg.DB.Driver {
	case config.DriverSQLite:
		db, err := sqlite.New(logger, dsn)
		if err != nil {
			return nil, nil, err
		}
		if err = sqliteuser.AutoMigrate(db); err != nil {
			_ = sqlite.Close(db)
			return nil, nil, fmt.Errorf("sqlite migrate: %w", err)
		}
		return sqliteuser.NewRepository(db), func() error { return sqlite.Close(db) }, nil
	default:
		pool, err := postgres.New(ctx, logger, dsn)
		if err != nil {
			return nil, nil, err
		}
		if err = postgres.Migrate(ctx, logger, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return pguser.NewRepository(pool), func() error { pool.Close(); return nil }, nil
	}
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins

	return cfg
}

func (a *App) Close() {
	if a.closeDB != nil {
		if err := a.closeDB(); err != nil {
			a.logger.Error("close user store", zap.Error(err))
		}
	}
	if a.mq != nil && a.mq.GetConn() != nil {
		a.mq.GetConn().Close()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// Run - The central place to launch and manage our application and
// parallel processes through a single context.
func (a *App) Run(ctx context.Context) error {
	// context with os signals cancel chan
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGUSR1)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("starting "+a.cfg.App.Name, zap.String("addr", a.httpSrv.Addr))
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server "+a.cfg.App.Name+" error: %w", err)
		}

		return nil
	})

	if a.mq != nil {
		g.Go(func() error {
			a.mq.PublisherWorker(ctx)
			return nil
		})
	}

	if a.mqConsumer != nil {
		g.Go(func() error {
			a.mqConsumer.DeliveryWorker(ctx)
			return nil
		})
	}

	<-ctx.Done()

	a.logger.Info("shutting down " + a.cfg.App.Name + " gracefully...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if a.httpSrv != nil {
		if err := a.httpSrv.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("http server shutdown "+a.cfg.App.Name+" error", zap.Error(err))
			return err
		}
	}

	if err := g.Wait(); err != nil {
		a.logger.Error(a.cfg.App.Name+" returning an error", zap.Error(err))
		return err
	}

	a.logger.Info(a.cfg.App.Name + " gracefully stopped")

	return nil
}

func (a *App) InitControllers() {
	// services
	tokens := token.New()
	authService := services.NewAuthService(a.userRepo, a.mCounter)
	userService := services.NewUserService(a.cfg.App, a.userRepo, tokens, a.publisher, a.mCounter)

	// controllers
	rest.NewUserController(a.router, a.cfg.App, userService, authService, a.s3, a.logger)

	// ops
	a.router.GET(rest.RouteHealth, func(c *gin.Context) { c.Status(http.StatusOK) })
	a.router.GET(rest.RouteMetrics, gin.WrapH(promhttp.Handler()))

	a.router.NoRoute(response.NotFound)
}

func (a *App) Logger() *zap.Logger { return a.logger }
