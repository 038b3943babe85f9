package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/example/aseertime/pkg/actors"
	"github.com/example/aseertime/pkg/catalog"
	"github.com/example/aseertime/pkg/config"
	"github.com/example/aseertime/pkg/models"
	"github.com/example/aseertime/pkg/orders"
	"github.com/example/aseertime/pkg/repository"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Menu serves storefront menu reads. *catalog.Store and the catalog gRPC
// client both satisfy it.
type Menu interface {
	ActiveCategories(ctx context.Context) ([]models.Category, error)
	CategoryProducts(ctx context.Context, categoryID string) ([]models.Product, error)
	Product(ctx context.Context, id string) (models.Product, error)
}

type Notifications interface {
	Recent() ([]actors.OrderStatusChanged, error)
}

type AuditLogs interface {
	GetAuditLogs(ctx context.Context, entityID string, limit int64) ([]*repository.AuditLog, error)
}

// Deps are the services behind the HTTP API. Menu defaults to Store;
// Notifications and Audit may be nil.
type Deps struct {
	Store         *catalog.Store
	Menu          Menu
	Admin         *catalog.Admin
	Orders        *orders.Board
	Carts         *actors.CartHub
	Notifications Notifications
	Audit         AuditLogs
}

type Gateway struct {
	config *config.Config
	logger *zap.Logger
	router *gin.Engine
	server *http.Server
	deps   Deps
	now    func() time.Time
}

func NewGateway(cfg *config.Config, logger *zap.Logger, deps Deps) *Gateway {
	if deps.Menu == nil {
		deps.Menu = deps.Store
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(loggerMiddleware(logger))
	router.Use(cors.New(corsConfig(cfg.Gateway.AllowOrigins)))

	return &Gateway{
		config: cfg,
		logger: logger,
		router: router,
		deps:   deps,
		now:    time.Now,
	}
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	return c
}

func (g *Gateway) SetupRoutes() {
	g.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := g.router.Group("/api/v1")
	{
		v1.GET("/categories", g.listMenuCategories)
		v1.GET("/categories/:id/products", g.listCategoryProducts)
		v1.GET("/products/:id", g.getProduct)
		v1.GET("/branches", g.listBranches)
		v1.GET("/branches/:id", g.getBranch)
		v1.GET("/zones", g.listZones)
		v1.GET("/settings", g.getSettings)

		carts := v1.Group("/cart/:session")
		{
			carts.GET("", g.getCart)
			carts.DELETE("", g.clearCart)
			carts.POST("/items", g.addCartItem)
			carts.PATCH("/items/:itemId", g.updateCartItem)
			carts.DELETE("/items/:itemId", g.removeCartItem)
			carts.PUT("/zone", g.selectZone)
		}

		g.adminRoutes(v1.Group("/admin"))
	}

	g.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// Handler exposes the router, mainly for tests.
func (g *Gateway) Handler() http.Handler {
	return g.router
}

func (g *Gateway) Start() error {
	addr := fmt.Sprintf("%s:%d", g.config.Gateway.Host, g.config.Gateway.Port)
	g.server = &http.Server{Addr: addr, Handler: g.router, ReadHeaderTimeout: 10 * time.Second}
	g.logger.Info("Gateway starting", zap.String("address", addr))
	if err := g.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (g *Gateway) Shutdown(ctx context.Context) error {
	if g.server == nil {
		return nil
	}
	return g.server.Shutdown(ctx)
}

func loggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
