package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/example/aseertime/gateway"
	"github.com/example/aseertime/pkg/actors"
	"github.com/example/aseertime/pkg/catalog"
	"github.com/example/aseertime/pkg/config"
	"github.com/example/aseertime/pkg/discovery"
	catalogrpc "github.com/example/aseertime/pkg/grpc"
	"github.com/example/aseertime/pkg/logging"
	"github.com/example/aseertime/pkg/orders"
	"github.com/example/aseertime/pkg/repository"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	envErr := godotenv.Load()

	// Load config
	cfg, err := config.Load("config/config.yaml")
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Setup logger
	logger, err := logging.New(cfg.Log)
	if err != nil {
		panic(fmt.Sprintf("Failed to create logger: %v", err))
	}
	defer logger.Sync()

	if envErr != nil {
		logger.Debug("No .env file loaded", zap.Error(envErr))
	}

	logger.Info("Starting API Gateway",
		zap.Int("port", cfg.Gateway.Port),
		zap.String("host", cfg.Gateway.Host))

	ctx := context.Background()

	// Open catalog storage
	store, err := catalog.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open catalog", zap.Error(err))
	}
	defer store.Close()

	// Cart sessions live in Redis when it is reachable
	var sessions actors.SessionStore = repository.NewMemorySessions()
	if cfg.Redis.Enabled {
		redis := repository.NewRedisRepository(&cfg.Redis)
		if err := redis.Ping(ctx); err != nil {
			logger.Warn("Redis connection failed, carts stay in memory", zap.Error(err))
			redis.Close()
		} else {
			logger.Info("Redis connected successfully")
			sessions = repository.NewCartSessions(redis, cfg.Shop.CartTTL)
			defer redis.Close()
		}
	}

	// Audit log
	var (
		auditor catalog.Auditor
		audit   gateway.AuditLogs
	)
	if cfg.MongoDB.Enabled {
		mongo, err := repository.NewMongoRepository(&cfg.MongoDB, "gateway")
		if err != nil {
			logger.Warn("MongoDB connection failed, audit log disabled", zap.Error(err))
		} else {
			auditor, audit = mongo, mongo
			defer mongo.Close(context.Background())
		}
	}

	// Start actors
	system := actor.NewActorSystem()
	defer system.Shutdown()

	hub := actors.NewCartHub(system, store, sessions, cfg.Shop.ActorTimeout, logger)
	defer hub.Stop()

	notifier, err := actors.SpawnNotifier(system, cfg.Shop.ActorTimeout, logger)
	if err != nil {
		logger.Fatal("Failed to start notifier", zap.Error(err))
	}

	deps := gateway.Deps{
		Store:         store,
		Admin:         catalog.NewAdmin(store, auditor, logger),
		Orders:        orders.NewBoard(store.Repositories().Orders, notifier, logger),
		Carts:         hub,
		Notifications: notifier,
		Audit:         audit,
	}

	// Setup service discovery
	var sd *discovery.ServiceDiscovery
	if cfg.Etcd.Enabled {
		sd, err = discovery.NewServiceDiscovery(&cfg.Etcd)
		if err != nil {
			logger.Warn("Failed to connect to etcd, continuing without service discovery", zap.Error(err))
		} else {
			defer sd.Close()
		}
	}

	if cfg.Gateway.RemoteCatalog {
		var disc catalogrpc.Discoverer
		if sd != nil {
			disc = sd
		}
		target := catalogrpc.ResolveCatalog(ctx, disc, cfg.Server.Name, cfg.Gateway.CatalogAddr, logger)
		client, err := catalogrpc.NewCatalogClient(target, logger)
		if err != nil {
			logger.Fatal("Failed to create catalog client", zap.Error(err))
		}
		defer client.Close()
		deps.Menu = client
	}

	// Create gateway
	gw := gateway.NewGateway(cfg, logger, deps)
	gw.SetupRoutes()

	// Start gateway in goroutine
	gwErr := make(chan error, 1)
	go func() {
		if err := gw.Start(); err != nil {
			gwErr <- err
		}
	}()

	logger.Info("Gateway started successfully")

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigCh:
		logger.Info("Received shutdown signal")
	case err := <-gwErr:
		logger.Error("Gateway error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := gw.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to shut down gateway", zap.Error(err))
	}

	logger.Info("Gateway stopped")
}
