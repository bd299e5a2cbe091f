package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap/zapcore"

	"github.com/kingrain94/tenancy-api/docs"
	"github.com/kingrain94/tenancy-api/internal/api"
	"github.com/kingrain94/tenancy-api/internal/config"
	"github.com/kingrain94/tenancy-api/internal/hostname"
	"github.com/kingrain94/tenancy-api/internal/identity"
	"github.com/kingrain94/tenancy-api/internal/middleware"
	"github.com/kingrain94/tenancy-api/internal/observability"
	"github.com/kingrain94/tenancy-api/internal/repository"
	"github.com/kingrain94/tenancy-api/internal/repository/memory"
	"github.com/kingrain94/tenancy-api/internal/repository/postgres"
	"github.com/kingrain94/tenancy-api/internal/service"
	"github.com/kingrain94/tenancy-api/internal/service/cache"
	"github.com/kingrain94/tenancy-api/internal/service/queue"
	"github.com/kingrain94/tenancy-api/pkg/logger"
)

// @title           Tenancy API
// @version         1.0
// @description     Tenant resolution, access control and tenant provisioning.

// @host      localhost:10000
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logBuffer := observability.NewLogBuffer(cfg.LogBufferSize, zapcore.InfoLevel)
	appLogger := logger.NewLogger(cfg.Env, logBuffer)
	defer appLogger.Sync()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewMetrics(registry)

	repo, closeRepo := openRepository(cfg, appLogger)
	defer closeRepo()

	// Redis backs the role cache and the rate limiter; both degrade to off
	var redisClient redis.Cmdable
	var roleCache service.RoleCache
	if cfg.RedisEnabled {
		client, err := config.DefaultRedisConfig().GetClient()
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", err)
		}
		defer client.Close()
		redisClient = client
		roleCache = cache.NewRedisRoleCache(client, cfg.RoleCacheTTL)
	}

	var events service.EventPublisher = service.NopPublisher{}
	if cfg.EventsEnabled {
		sqsConfig := config.DefaultSQSConfig()
		sqsClient, err := sqsConfig.GetClient(context.Background())
		if err != nil {
			appLogger.Fatal("Failed to connect to SQS", err)
		}
		events = queue.NewSQSService(sqsClient, sqsConfig)
	}

	if cfg.JWTSecretKey == "" {
		appLogger.Fatal("JWT_SECRET_KEY is required", fmt.Errorf("missing JWT secret"))
	}
	tokens := identity.NewJWTService(cfg.JWTSecretKey, time.Duration(cfg.JWTExpirationHours)*time.Hour)
	identityProvider := identity.NewLocalProvider(repo.Identity(), tokens)

	resolver := hostname.NewResolver(hostname.Options{
		RootDomain: cfg.RootDomain,
		DevHosts:   cfg.DevHosts,
		Reserved:   cfg.ReservedSubdomains,
	})

	// Initialize services
	tenantService := service.NewTenantService(repo, events, appLogger)
	roleResolver := service.NewRoleResolver(repo, roleCache, metrics, appLogger)
	accessGuard := service.NewAccessGuard(roleResolver, metrics, appLogger)
	membershipService := service.NewMembershipService(repo, roleResolver, appLogger)
	provisioningService := service.NewProvisioningService(
		repo,
		tenantService,
		identityProvider,
		roleResolver,
		events,
		metrics,
		appLogger,
		service.ProvisioningConfig{
			Timeout:             cfg.ProvisioningTimeout,
			CompensationTimeout: cfg.CompensationTimeout,
			IsReserved:          resolver.IsReserved,
		},
	)

	// Initialize server
	server := api.NewServer(api.ServerDeps{
		Admin:           api.NewAdminHandler(provisioningService, tenantService, logBuffer, appLogger),
		Tenant:          api.NewTenantHandler(membershipService, appLogger),
		Login:           api.NewAuthHandler(identityProvider, appLogger),
		Auth:            middleware.NewAuthMiddleware(identityProvider),
		Tenants:         middleware.NewTenantMiddleware(resolver, tenantService, cfg.TrustForwardedHost, metrics, appLogger),
		Guard:           middleware.NewGuardMiddleware(accessGuard),
		RateLimit:       middleware.NewRateLimitMiddleware(redisClient, cfg.DefaultRateLimit, appLogger),
		Validation:      middleware.NewValidationMiddleware(),
		GlobalRateLimit: cfg.GlobalRateLimit,
	})

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", cfg.ServerPort)
	docs.SwaggerInfo.BasePath = "/api/v1"
	docs.SwaggerInfo.Schemes = []string{"http"}
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Setup API routes
	apiGroup := router.Group("/api/v1")
	server.SetupRoutes(apiGroup)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		appLogger.Infof("Listening on %s (store=%s, redis=%t, events=%t)",
			srv.Addr, cfg.StoreDriver, cfg.RedisEnabled, cfg.EventsEnabled)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Failed to start server", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", err)
	}

	appLogger.Info("Server exiting")
}

func openRepository(cfg *config.Config, appLogger *logger.Logger) (repository.Repository, func()) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		appLogger.Warn("Using the in-memory store; nothing survives a restart")
		return memory.NewStore(), func() {}
	}

	dbConnections, err := config.NewDatabaseConnections()
	if err != nil {
		appLogger.Fatal("Failed to connect to database", err)
	}
	if err := postgres.Migrate(dbConnections.Writer); err != nil {
		appLogger.Fatal("Failed to migrate database", err)
	}
	appLogger.Info("Database connections established - writer and reader connected")

	return postgres.NewPostgresRepository(dbConnections), func() { dbConnections.Close() }
}
