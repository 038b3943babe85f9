package gateway

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/example/aseertime/pkg/catalog"
	"github.com/example/aseertime/pkg/models"
	"github.com/example/aseertime/pkg/orders"
	"github.com/example/aseertime/pkg/repository"
	"github.com/gin-gonic/gin"
)

func (g *Gateway) adminRoutes(admin *gin.RouterGroup) {
	a := g.deps.Admin
	repos := g.deps.Store.Repositories()

	admin.GET("/dashboard", g.dashboard)

	branches := admin.Group("/branches")
	{
		branches.GET("", listHandler(g, a.ListBranches))
		branches.POST("", createHandler(g, a.CreateBranch))
		branches.POST("/check", checkHandler(g, a.CheckBranch))
		branches.GET("/:id", byIDHandler(g, repos.Branches.Get))
		branches.PUT("/:id", updateHandler(g, a.UpdateBranch))
		branches.DELETE("/:id", deleteHandler(g, a.DeleteBranch))
		branches.PATCH("/:id/toggle", byIDHandler(g, a.ToggleBranch))
	}

	zones := admin.Group("/zones")
	{
		zones.GET("", listHandler(g, a.ListZones))
		zones.POST("", createHandler(g, a.CreateZone))
		zones.POST("/check", checkHandler(g, a.CheckZone))
		zones.GET("/:id", g.getZoneForm)
		zones.PUT("/:id", updateHandler(g, a.UpdateZone))
		zones.DELETE("/:id", deleteHandler(g, a.DeleteZone))
		zones.PATCH("/:id/toggle", byIDHandler(g, a.ToggleZone))
	}

	categories := admin.Group("/categories")
	{
		categories.GET("", listHandler(g, a.ListCategories))
		categories.POST("", createHandler(g, a.CreateCategory))
		categories.POST("/check", checkHandler(g, a.CheckCategory))
		categories.GET("/:id", byIDHandler(g, repos.Categories.Get))
		categories.PUT("/:id", updateHandler(g, a.UpdateCategory))
		categories.DELETE("/:id", deleteHandler(g, a.DeleteCategory))
		categories.PATCH("/:id/toggle", byIDHandler(g, a.ToggleCategory))
		categories.POST("/:id/move", g.moveCategory)
	}

	products := admin.Group("/products")
	{
		products.GET("", listHandler(g, a.ListProducts))
		products.GET("/export", g.exportProducts)
		products.POST("", createHandler(g, a.CreateProduct))
		products.POST("/check", checkHandler(g, a.CheckProduct))
		products.GET("/:id", g.getProductForm)
		products.PUT("/:id", updateHandler(g, a.UpdateProduct))
		products.DELETE("/:id", deleteHandler(g, a.DeleteProduct))
		products.PATCH("/:id/toggle", byIDHandler(g, a.ToggleProduct))
	}

	board := admin.Group("/orders")
	{
		board.GET("", listHandler(g, g.deps.Orders.List))
		board.GET("/export", g.exportOrders)
		board.GET("/pending", g.pendingOrders)
		board.DELETE("/pending", g.discardOrders)
		board.POST("/apply", g.applyOrders)
		board.POST("/bulk-status", g.bulkStatus)
		board.GET("/:id", byIDHandler(g, g.deps.Orders.Get))
		board.POST("/:id/stage", g.stageOrder)
	}

	admin.GET("/settings", g.getSettings)
	admin.PUT("/settings", g.saveSettings)
	admin.POST("/settings/check", checkHandler(g, a.CheckSettings))
	admin.GET("/notifications", g.notifications)
	admin.GET("/audit/:entityId", g.auditLogs)
}

func (g *Gateway) dashboard(c *gin.Context) {
	stats, err := g.deps.Store.Stats(c.Request.Context(), g.now())
	if err != nil {
		g.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Edit forms are returned alongside the record so numbers round-trip as typed text.

func (g *Gateway) getZoneForm(c *gin.Context) {
	z, err := g.deps.Store.Zone(c.Request.Context(), c.Param("id"))
	if err != nil {
		g.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"zone": z, "form": catalog.ZoneFormFrom(z)})
}

func (g *Gateway) getProductForm(c *gin.Context) {
	p, err := g.deps.Store.Product(c.Request.Context(), c.Param("id"))
	if err != nil {
		g.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": p, "form": catalog.ProductFormFrom(p)})
}

type moveRequest struct {
	Direction string `json:"direction" binding:"required"`
}

func (g *Gateway) moveCategory(c *gin.Context) {
	var req moveRequest
	if !g.bind(c, &req) {
		return
	}
	categories, err := g.deps.Admin.MoveCategory(c.Request.Context(), c.Param("id"), req.Direction)
	if err != nil {
		g.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// attachment sends a fully rendered CSV, so a failed export still answers
// with a JSON error instead of a half-written download.
func attachment(c *gin.Context, filename string, csv []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", csv)
}

func (g *Gateway) exportProducts(c *gin.Context) {
	p, err := g.listParams(c)
	if err != nil {
		g.fail(c, err)
		return
	}
	var buf bytes.Buffer
	if err := g.deps.Admin.ExportProducts(c.Request.Context(), &buf, p); err != nil {
		g.fail(c, err)
		return
	}
	attachment(c, "products-"+g.now().Format(time.DateOnly)+".csv", buf.Bytes())
}

func (g *Gateway) exportOrders(c *gin.Context) {
	p, err := g.listParams(c)
	if err != nil {
		g.fail(c, err)
		return
	}
	var buf bytes.Buffer
	if err := g.deps.Orders.Export(c.Request.Context(), &buf, p, time.Local); err != nil {
		g.fail(c, err)
		return
	}
	attachment(c, orders.Filename(g.now()), buf.Bytes())
}

func (g *Gateway) stageOrder(c *gin.Context) {
	var change orders.Change
	if !g.bind(c, &change) {
		return
	}
	if err := g.deps.Orders.Stage(c.Request.Context(), c.Param("id"), change); err != nil {
		g.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pending": g.deps.Orders.Pending()})
}

type bulkStatusRequest struct {
	IDs    []string `json:"ids" binding:"required,min=1"`
	Status string   `json:"status" binding:"required"`
}

func (g *Gateway) bulkStatus(c *gin.Context) {
	var req bulkStatusRequest
	if !g.bind(c, &req) {
		return
	}
	status, err := models.ParseOrderStatus(req.Status)
	if err != nil {
		g.fail(c, err)
		return
	}
	if err := g.deps.Orders.BulkStatus(c.Request.Context(), req.IDs, status); err != nil {
		g.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pending": g.deps.Orders.Pending()})
}

func (g *Gateway) pendingOrders(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"pending": g.deps.Orders.Pending()})
}

func (g *Gateway) discardOrders(c *gin.Context) {
	g.deps.Orders.Discard()
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (g *Gateway) applyOrders(c *gin.Context) {
	applied, err := g.deps.Orders.Apply(c.Request.Context())
	if err != nil {
		g.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": applied})
}

func (g *Gateway) saveSettings(c *gin.Context) {
	var form catalog.SettingsForm
	if !g.bind(c, &form) {
		return
	}
	s, err := g.deps.Admin.SaveSettings(c.Request.Context(), form)
	if err != nil {
		g.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (g *Gateway) notifications(c *gin.Context) {
	if g.deps.Notifications == nil {
		c.JSON(http.StatusOK, gin.H{"notifications": []any{}})
		return
	}
	items, err := g.deps.Notifications.Recent()
	if err != nil {
		g.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": items})
}

func (g *Gateway) auditLogs(c *gin.Context) {
	if g.deps.Audit == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "audit log is disabled"})
		return
	}
	limit, err := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)
	if err != nil || limit < 1 {
		g.fail(c, fmt.Errorf("%w: limit must be a positive number", errBadRequest))
		return
	}
	logs, err := g.deps.Audit.GetAuditLogs(c.Request.Context(), c.Param("entityId"), limit)
	if err != nil {
		g.fail(c, err)
		return
	}
	if logs == nil {
		logs = []*repository.AuditLog{}
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs})
}
