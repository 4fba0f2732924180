package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	config "transfer-storefront/configs"
	database "transfer-storefront/internal/pkg/db"
	"transfer-storefront/internal/pkg/helper"
	"transfer-storefront/internal/pkg/jwt"
	"transfer-storefront/internal/pkg/logger"
	"transfer-storefront/internal/pkg/moncash"
	"transfer-storefront/internal/pkg/paypal"
	"transfer-storefront/internal/pkg/rabbitmq"
	"transfer-storefront/internal/pkg/redis"
	s3aws "transfer-storefront/internal/pkg/storage/s3"
	"transfer-storefront/internal/pkg/telemetry"
	"transfer-storefront/internal/pkg/validation"
	serverApp "transfer-storefront/internal/server"

	"github.com/gin-gonic/gin"
)

// @title           Transfer Storefront API
// @version         1.0
// @description     Money-transfer storefront: catalog, auth, transfer wizard with PayPal and MonCash, history and tracking.

// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization

// @BasePath        /api
func main() {
	logger.Setup()
	defer func() { _ = logger.Sync() }()

	env, err := config.GetEnv()
	if err != nil {
		logger.Error.Println("Error getting environment", err)
		panic(err)
	}

	var wg sync.WaitGroup
	ctx, cancel := context.WithCancel(context.Background())

	shutdownTracer, err := telemetry.InitTracer(ctx, "transfer-storefront", env.OtelEndpoint)
	if err != nil {
		logger.Warning.Println("Tracing disabled:", err)
	}

	// Setup Redis
	redisClient, err := setupRedis(ctx, env)
	if err != nil {
		logger.Error.Println("Error setting up Redis", err)
		cancel()
		return
	}

	// Setup RabbitMQ (optional)
	rabbit, err := setupRabbitMQ(ctx, env)
	if err != nil {
		logger.Warning.Println("RabbitMQ unavailable, payment results finalize inline:", err)
		rabbit = nil
	}

	// Setup Database
	var db *database.Database
	if env.DBDriver != database.MEMORY {
		db, err = setupDB(env, redisClient)
		if err != nil {
			logger.Error.Println("Error setting up Database", err)
			cancel()
			return
		}
	} else {
		logger.Info.Println("Using in-memory repositories")
	}

	setupServer(&config.SetupServerDto{
		Rds:    redisClient,
		Env:    env,
		Ctx:    &ctx,
		Cancel: cancel,
		Db:     db,
		Wg:     &wg,
		Rb:     rabbit,
	})

	if shutdownTracer != nil {
		flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer flushCancel()
		_ = shutdownTracer(flushCtx)
	}
}

func setupRedis(ctx context.Context, env *config.Config) (*redis.Client, error) {
	return redis.Setup(ctx, &redis.Config{
		Host:     env.RedisHost,
		Username: env.RedisUser,
		Port:     env.RedisPort,
		Password: env.RedisPass,
		PoolSize: env.RedisPoolSize,
	})
}

func setupRabbitMQ(ctx context.Context, env *config.Config) (*rabbitmq.ConnectionManager, error) {
	return rabbitmq.NewConnectionManager(ctx, &rabbitmq.Config{
		Username: env.RabbitUser,
		Password: env.RabbitPass,
		Host:     env.RabbitHost,
		Port:     env.RabbitPort,
	})
}

func setupDB(env *config.Config, rds *redis.Client) (*database.Database, error) {
	return database.Setup(&database.Config{
		Host:      env.DBHost,
		Port:      env.DBPort,
		User:      env.DBUser,
		Password:  env.DBPass,
		Database:  env.DBName,
		SSLMode:   env.DBSSLMode,
		Driver:    env.DBDriver,
		Cache:     env.DBCache,
		Rds:       rds,
		CacheTime: time.Duration(env.DBCacheSeconds) * time.Second,
	})
}

// Outbound clients are optional. Each is left as a nil interface when it
// is not configured so the services can detect it.

func setupPayPal(env *config.Config, httpClient *helper.HTTPClient) paypal.IPayPal {
	client, err := paypal.Setup(&paypal.Config{
		ClientID:     env.PayPalClientID,
		ClientSecret: env.PayPalClientSecret,
		Environment:  env.PayPalEnvironment,
	}, httpClient)
	if err != nil {
		logger.Warning.Println("PayPal disabled:", err)
		return nil
	}
	return client
}

func setupMonCash(env *config.Config, httpClient *helper.HTTPClient) moncash.IMonCash {
	client, err := moncash.Setup(&moncash.Config{
		ClientID:     env.MonCashClientID,
		ClientSecret: env.MonCashSecret,
		Environment:  env.MonCashEnvironment,
	}, httpClient)
	if err != nil {
		logger.Warning.Println("MonCash disabled:", err)
		return nil
	}
	return client
}

func setupS3(ctx context.Context, env *config.Config, rds redis.IRedis) s3aws.Is3 {
	if env.AWSBucketName == "" {
		logger.Warning.Println("S3 bucket not set, receipts are not stored")
		return nil
	}
	client, err := s3aws.NewS3Client(ctx, s3aws.S3Config{
		AWSRegion:          env.AWSRegion,
		AWSAccessKeyID:     env.AWSAccessKeyID,
		AWSSecretAccessKey: env.AWSSecretAccessKey,
		Endpoint:           env.AWSEndpoint,
	}, env.AWSBucketName, rds)
	if err != nil {
		logger.Warning.Println("S3 disabled:", err)
		return nil
	}
	return client
}

func setupServer(payload *config.SetupServerDto) {
	rds := payload.Rds
	env := payload.Env
	ctx := payload.Ctx
	cancel := payload.Cancel
	wg := payload.Wg
	rb := payload.Rb
	db := payload.Db

	defer func() {
		cancel()
		wg.Wait()
		if rb != nil {
			_ = rb.Close()
		}
		if db != nil {
			_ = db.Close()
		}
		if rds != nil {
			_ = rds.Close()
		}
	}()

	err := validation.Setup()
	if err != nil {
		logger.Error.Println("Failed to setup validation")
		panic(err)
	}

	signer, err := jwt.NewSigner(env.JWTSecret)
	if err != nil {
		logger.Error.Println("Invalid JWT_SECRET")
		panic(err)
	}

	if !env.AppEnv.IsDebug() {
		gin.SetMode(gin.ReleaseMode)
	}
	e := gin.New()
	e.Use(gin.Recovery())

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", env.AppPort),
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}

	var publisher rabbitmq.IPublisher
	if rb != nil {
		p, err := rabbitmq.NewPublisher(*ctx, rb)
		if err != nil {
			panic(err)
		}
		defer func() { _ = p.Close() }()
		publisher = p
	}

	httpClient := helper.NewHTTPClient(&helper.ClientConfig{RequestTimeout: 30})
	services, err := serverApp.Setup(e, &serverApp.Deps{
		Ctx:       *ctx,
		Wg:        wg,
		Env:       env,
		Db:        db,
		Rds:       rds,
		Rb:        rb,
		Publisher: publisher,
		Storage:   setupS3(*ctx, env, rds),
		PayPal:    setupPayPal(env, httpClient),
		MonCash:   setupMonCash(env, httpClient),
		Signer:    signer,
	})
	if err != nil {
		logger.Error.Println("Failed to setup server", err)
		panic(err)
	}

	if err := serverApp.InitWorker(*ctx, wg, rb, services); err != nil {
		logger.Error.Println("Failed to start workers", err)
		panic(err)
	}

	go func() {
		logger.HTTP.Println("========= Server Started =========")
		logger.HTTP.Println("=========", env.AppPort, "=========")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error.Println("Server error:", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	<-sigChan
	logger.HTTP.Println("========= Server Shutting Down =========")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	_ = server.Shutdown(shutdownCtx)
}
