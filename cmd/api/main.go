package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fekuna/omnipos-cafe-service/config"
	"github.com/fekuna/omnipos-cafe-service/internal/auth"
	"github.com/fekuna/omnipos-cafe-service/internal/job"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/broker"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/cache"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/clock"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/httpx"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/i18n"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/metrics"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/postgres"
	"github.com/fekuna/omnipos-cafe-service/internal/server"
	"github.com/fekuna/omnipos-cafe-service/migrations"

	authH "github.com/fekuna/omnipos-cafe-service/internal/auth/handler"
	authMW "github.com/fekuna/omnipos-cafe-service/internal/auth/middleware"
	authRepoPkg "github.com/fekuna/omnipos-cafe-service/internal/auth/repository"
	authUCPkg "github.com/fekuna/omnipos-cafe-service/internal/auth/usecase"

	catH "github.com/fekuna/omnipos-cafe-service/internal/category/handler"
	catRepoPkg "github.com/fekuna/omnipos-cafe-service/internal/category/repository"
	catUCPkg "github.com/fekuna/omnipos-cafe-service/internal/category/usecase"

	defH "github.com/fekuna/omnipos-cafe-service/internal/definition/handler"
	defRepoPkg "github.com/fekuna/omnipos-cafe-service/internal/definition/repository"
	defUCPkg "github.com/fekuna/omnipos-cafe-service/internal/definition/usecase"

	matH "github.com/fekuna/omnipos-cafe-service/internal/material/handler"
	matRepoPkg "github.com/fekuna/omnipos-cafe-service/internal/material/repository"
	matUCPkg "github.com/fekuna/omnipos-cafe-service/internal/material/usecase"

	noteH "github.com/fekuna/omnipos-cafe-service/internal/note/handler"
	noteRepoPkg "github.com/fekuna/omnipos-cafe-service/internal/note/repository"
	noteUCPkg "github.com/fekuna/omnipos-cafe-service/internal/note/usecase"

	orderH "github.com/fekuna/omnipos-cafe-service/internal/order/handler"
	orderRepoPkg "github.com/fekuna/omnipos-cafe-service/internal/order/repository"
	orderUCPkg "github.com/fekuna/omnipos-cafe-service/internal/order/usecase"

	prodH "github.com/fekuna/omnipos-cafe-service/internal/product/handler"
	prodRepoPkg "github.com/fekuna/omnipos-cafe-service/internal/product/repository"
	prodUCPkg "github.com/fekuna/omnipos-cafe-service/internal/product/usecase"

	provH "github.com/fekuna/omnipos-cafe-service/internal/provider/handler"
	provRepoPkg "github.com/fekuna/omnipos-cafe-service/internal/provider/repository"
	provUCPkg "github.com/fekuna/omnipos-cafe-service/internal/provider/usecase"

	statH "github.com/fekuna/omnipos-cafe-service/internal/statistic/handler"
	statListenerPkg "github.com/fekuna/omnipos-cafe-service/internal/statistic/listener"
	statRepoPkg "github.com/fekuna/omnipos-cafe-service/internal/statistic/repository"
	statUCPkg "github.com/fekuna/omnipos-cafe-service/internal/statistic/usecase"

	userH "github.com/fekuna/omnipos-cafe-service/internal/user/handler"
	userRepoPkg "github.com/fekuna/omnipos-cafe-service/internal/user/repository"
	userUCPkg "github.com/fekuna/omnipos-cafe-service/internal/user/usecase"

	"github.com/go-co-op/gocron"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	if cfg.Server.AppEnv == "dev" || cfg.Server.AppEnv == "development" {
		logConfig.IsDevelopment = true
	}
	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 3. Initialize i18n
	translator, err := i18n.New(cfg.I18n.DefaultLanguage)
	if err != nil {
		appLogger.Fatal("Could not load locales", zap.Error(err))
	}

	// 4. Connect to Database
	db, err := postgres.NewPostgres(&postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	if cfg.Postgres.Migrate {
		if err := postgres.Migrate(db, migrations.FS); err != nil {
			appLogger.Fatal("Could not migrate database", zap.Error(err))
		}
		appLogger.Info("Database schema is up to date")
	}

	// 5. Initialize Redis
	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))

	// 6. Initialize Kafka
	producer := broker.NewProducer(&broker.Config{Brokers: cfg.Kafka.Brokers})
	defer producer.Close()
	consumer := broker.NewConsumer(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.OrderTopic,
		GroupID: cfg.Kafka.GroupID,
	})
	defer consumer.Close()
	appLogger.Info("Connected to Kafka", zap.Strings("brokers", cfg.Kafka.Brokers))

	metrics.InitMetrics()
	clk := clock.System()
	txManager := postgres.NewTxManager(db, cfg.Tx.LockTimeout, cfg.Tx.Timeout, appLogger)
	resp := httpx.NewResponder(translator, appLogger)

	// 7. Initialize Repositories
	authRepo := authRepoPkg.NewPGRepository(db)
	catRepo := catRepoPkg.NewPGRepository(db)
	matRepo := matRepoPkg.NewPGRepository(db)
	provRepo := provRepoPkg.NewPGRepository(db)
	noteRepo := noteRepoPkg.NewPGRepository(db)
	orderRepo := orderRepoPkg.NewPGRepository(db)
	prodRepo := prodRepoPkg.NewPGRepository(db)
	statRepo := statRepoPkg.NewPGRepository(db)
	defRepo := defRepoPkg.NewPGRepository(db)
	userRepo := userRepoPkg.NewPGRepository(db)

	// 8. Initialize UseCases
	tokens := auth.NewTokenManager(cfg.JWT.SecretKey, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL, clk)
	authUC := authUCPkg.NewAuthUseCase(authRepo, tokens, redisClient, appLogger)
	ledger := matUCPkg.NewLedger(matRepo, clk, appLogger)
	matUC := matUCPkg.NewMaterialUseCase(matRepo, ledger, txManager, clk, appLogger)
	provUC := provUCPkg.NewProviderUseCase(provRepo, clk, appLogger)
	noteUC := noteUCPkg.NewNoteUseCase(noteRepo, provRepo, ledger, txManager, producer, cfg.Kafka.WarehouseTopic, clk, appLogger)
	orderUC := orderUCPkg.NewOrderUseCase(orderRepo, statRepo, txManager, producer, cfg.Kafka.OrderTopic, clk, appLogger)
	statUC := statUCPkg.NewStatisticUseCase(statRepo, redisClient, clk, appLogger)
	catUC := catUCPkg.NewCategoryUseCase(catRepo, txManager, redisClient, appLogger)
	prodUC := prodUCPkg.NewProductUseCase(prodRepo, redisClient, clk, appLogger)
	defUC := defUCPkg.NewDefinitionUseCase(defRepo, txManager, redisClient, appLogger)
	userUC := userUCPkg.NewUserUseCase(userRepo, txManager, redisClient, authUC, appLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := authUC.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password); err != nil {
		appLogger.Fatal("Could not create administrator", zap.Error(err))
	}

	// 9. Start Listener
	statListener := statListenerPkg.NewStatisticListener(consumer, statUC, appLogger)
	go statListener.Start(ctx)

	// 10. Start Scheduler
	scheduler := gocron.NewScheduler(clock.Location)
	if cfg.Scheduler.Enabled {
		lowStock := job.NewLowStockJob(matUC, redisClient, producer, cfg.Kafka.WarehouseTopic, clk, appLogger)
		if err := lowStock.Schedule(scheduler, cfg.Scheduler.LowStockAt); err != nil {
			appLogger.Fatal("Could not schedule jobs", zap.Error(err))
		}
		scheduler.StartAsync()
		appLogger.Info("Scheduler started", zap.String("low_stock_at", cfg.Scheduler.LowStockAt))
	}

	// 11. Start HTTP Server
	router := server.NewRouter(
		cfg.Server.AllowedOrigins,
		appLogger,
		authMW.New(tokens, authUC, auth.RoutePermissions, resp, appLogger),
		authH.NewAuthHandler(authUC, resp, appLogger, cfg.JWT.RefreshTTL, cfg.Server.AppEnv == "production"),
		matH.NewMaterialHandler(matUC, resp, appLogger),
		provH.NewProviderHandler(provUC, resp, appLogger),
		noteH.NewNoteHandler(noteUC, resp, appLogger),
		orderH.NewOrderHandler(orderUC, resp, appLogger),
		statH.NewStatisticHandler(statUC, resp, appLogger),
		catH.NewCategoryHandler(catUC, resp, appLogger),
		prodH.NewProductHandler(prodUC, resp, appLogger),
		defH.NewDefinitionHandler(defUC, resp, appLogger),
		userH.NewUserHandler(userUC, resp, appLogger),
	)
	httpServer := &http.Server{
		Addr:              withColon(cfg.Server.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		appLogger.Info("Starting HTTP server", zap.String("port", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("failed to serve http", zap.Error(err))
		}
	}()

	// 12. Start gRPC health server
	lis, err := net.Listen("tcp", withColon(cfg.Server.GRPCPort))
	if err != nil {
		log.Fatalf("failed to listen: %v", err)
	}
	grpcServer := grpc.NewServer()
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	reflection.Register(grpcServer)
	go func() {
		appLogger.Info("Starting gRPC health server", zap.String("port", cfg.Server.GRPCPort))
		if err := grpcServer.Serve(lis); err != nil {
			appLogger.Fatal("failed to serve grpc", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	scheduler.Stop()
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("http shutdown", zap.Error(err))
	}
	grpcServer.GracefulStop()
	appLogger.Info("Server stopped")
}

func withColon(port string) string {
	if !strings.HasPrefix(port, ":") {
		return ":" + port
	}
	return port
}
