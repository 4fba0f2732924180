package serverApp

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	config "transfer-storefront/configs"
	"transfer-storefront/docs"
	database "transfer-storefront/internal/pkg/db"
	"transfer-storefront/internal/pkg/jwt"
	"transfer-storefront/internal/pkg/logger"
	"transfer-storefront/internal/pkg/middleware"
	"transfer-storefront/internal/pkg/moncash"
	"transfer-storefront/internal/pkg/paypal"
	"transfer-storefront/internal/pkg/rabbitmq"
	"transfer-storefront/internal/pkg/redis"
	"transfer-storefront/internal/pkg/stock"
	s3aws "transfer-storefront/internal/pkg/storage/s3"
	"transfer-storefront/internal/repository"
	catalogRepo "transfer-storefront/internal/repository/catalog"
	leadRepo "transfer-storefront/internal/repository/lead"
	stockRepo "transfer-storefront/internal/repository/stock"
	transferRepo "transfer-storefront/internal/repository/transfer"
	userRepo "transfer-storefront/internal/repository/user"
	wizardRepo "transfer-storefront/internal/repository/wizard"

	authHandler "transfer-storefront/internal/handler/auth"
	catalogHandler "transfer-storefront/internal/handler/catalog"
	notificationHandler "transfer-storefront/internal/handler/notification"
	transferHandler "transfer-storefront/internal/handler/transfer"
	authService "transfer-storefront/internal/service/auth"
	catalogService "transfer-storefront/internal/service/catalog"
	notificationService "transfer-storefront/internal/service/notification"
	transferService "transfer-storefront/internal/service/transfer"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const serviceName = "transfer-storefront"

// Deps are the shared clients built by cmd/api. Db is nil with the memory
// driver; Rb, Publisher, Storage, PayPal and MonCash are nil when unconfigured.
type Deps struct {
	Ctx       context.Context
	Wg        *sync.WaitGroup
	Env       *config.Config
	Db        *database.Database
	Rds       redis.IRedis
	Rb        *rabbitmq.ConnectionManager
	Publisher rabbitmq.IPublisher
	Storage   s3aws.Is3
	PayPal    paypal.IPayPal
	MonCash   moncash.IMonCash
	Signer    *jwt.Signer
}

// Services are exposed so the worker consumes events with the same instances.
type Services struct {
	Auth         authService.IService
	Catalog      catalogService.IService
	Notification notificationService.IService
	Transfer     transferService.IService
	Ticker       *notificationService.Ticker
}

// Setup initializes the HTTP server with middleware and routes
func Setup(engine *gin.Engine, deps *Deps) (*Services, error) {
	InitMiddleware(engine, deps.Env)

	// Set swagger host dynamically from APP_BASE_URL
	if parsed, err := url.Parse(deps.Env.AppBaseURL); err == nil {
		docs.SwaggerInfo.Host = parsed.Host
		if strings.HasPrefix(deps.Env.AppBaseURL, "https") {
			docs.SwaggerInfo.Schemes = []string{"https"}
		} else {
			docs.SwaggerInfo.Schemes = []string{"http"}
		}
	}

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	engine.GET("/health", healthHandler(deps))

	e := engine.Group(BasePath())
	return InitRoutes(e, deps)
}

// BasePath returns the base API path
func BasePath() string {
	return "/api"
}

// InitMiddleware initializes global middleware
func InitMiddleware(e *gin.Engine, env *config.Config) {
	e.Use(middleware.CorsMiddleware(env.Origins()))
	e.Use(otelgin.Middleware(serviceName))
	e.Use(middleware.PrometheusMiddleware())
	e.Use(middleware.RequestInit())
	e.Use(middleware.ResponseInit())
}

func status(ok bool) gin.H {
	if ok {
		return gin.H{"status": "healthy"}
	}
	return gin.H{"status": "unhealthy"}
}

func healthHandler(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		redisHealthy := deps.Rds != nil && deps.Rds.Ping() == nil
		rabbitHealthy := deps.Rb != nil && !deps.Rb.IsClosed()

		dbStatus := status(deps.Db != nil && !deps.Db.IsCloseConnection())
		if deps.Db == nil {
			dbStatus = gin.H{"status": "healthy", "driver": database.MEMORY.ToString()}
		}

		code := http.StatusOK
		if !redisHealthy {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"status": code,
			"service": gin.H{
				"rabbitmq": status(rabbitHealthy),
				"redis":    status(redisHealthy),
				"database": dbStatus,
			},
		})
	}
}

// NewRepository picks the gorm or in-memory stores. The memory transfer store
// is seeded with demo history for DemoSender.
func NewRepository(db *database.Database, rds redis.IRedis) repository.IRepository {
	rp := repository.IRepository{
		Catalog: catalogRepo.NewRepo(),
		Stock:   stockRepo.NewRepo(rds),
		Wizard:  wizardRepo.NewRepo(rds),
	}
	if db == nil {
		rp.User = userRepo.NewMemoryRepo()
		rp.Lead = leadRepo.NewMemoryRepo()
		rp.Transfer = transferRepo.NewMemoryRepo(transferRepo.Seed(time.Now())...)
		return rp
	}
	rp.User = userRepo.NewRepo(db)
	rp.Lead = leadRepo.NewRepo(db)
	rp.Transfer = transferRepo.NewRepo(db)
	return rp
}

func InitRoutes(e *gin.RouterGroup, deps *Deps) (*Services, error) {
	env := deps.Env
	rp := NewRepository(deps.Db, deps.Rds)

	stockCfg := stock.Config{
		Window:        time.Duration(env.StockWindowMinutes) * time.Minute,
		Cooldown:      time.Duration(env.StockCooldownMinutes) * time.Minute,
		RefillPercent: env.StockRefillPercent,
	}
	if err := stockCfg.Validate(); err != nil {
		return nil, err
	}
	maxAmount, err := env.MaxAmount()
	if err != nil {
		return nil, err
	}

	svc := &Services{}

	// === Auth ===
	svc.Auth = authService.NewService(rp, deps.Rds, deps.Publisher, deps.Signer)
	authHandler.NewHandler(svc.Auth, deps.Signer).NewRoutes(e)

	// === Catalog ===
	svc.Catalog = catalogService.NewService(rp, stockCfg)
	catalogHandler.NewHandler(svc.Catalog).NewRoutes(e)

	// === Notifications ===
	svc.Ticker = notificationService.NewTicker(notificationService.Config{
		Interval: time.Duration(env.TickerIntervalSeconds) * time.Second,
	})
	svc.Notification = notificationService.NewService(svc.Ticker)
	notificationHandler.NewHandler(svc.Notification).NewRoutes(e)

	deps.Wg.Add(1)
	go func() {
		defer deps.Wg.Done()
		svc.Ticker.Run(deps.Ctx)
	}()

	// === Transfers ===
	svc.Transfer = transferService.NewService(rp, transferService.Config{
		MaxAmount:   maxAmount,
		Currency:    env.TransferCurrency,
		FrontendURL: env.FrontendURL,
	}, deps.PayPal, deps.MonCash, deps.Storage, deps.Publisher)
	transferHandler.NewHandler(svc.Transfer, deps.Signer).NewRoutes(e)

	logger.Info.Printf("routes registered under %s\n", BasePath())
	return svc, nil
}
