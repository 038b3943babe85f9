package gateway

import (
	"net/http"

	"github.com/example/aseertime/pkg/actors"
	"github.com/example/aseertime/pkg/cart"
	"github.com/gin-gonic/gin"
)

func (g *Gateway) listMenuCategories(c *gin.Context) {
	categories, err := g.deps.Menu.ActiveCategories(c.Request.Context())
	if err != nil {
		g.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func (g *Gateway) listCategoryProducts(c *gin.Context) {
	products, err := g.deps.Menu.CategoryProducts(c.Request.Context(), c.Param("id"))
	if err != nil {
		g.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (g *Gateway) getProduct(c *gin.Context) {
	p, err := g.deps.Menu.Product(c.Request.Context(), c.Param("id"))
	if err != nil {
		g.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (g *Gateway) listBranches(c *gin.Context) {
	at, err := g.at(c)
	if err != nil {
		g.fail(c, err)
		return
	}
	branches, err := g.deps.Store.Branches(c.Request.Context(), at)
	if err != nil {
		g.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"branches": branches})
}

func (g *Gateway) getBranch(c *gin.Context) {
	at, err := g.at(c)
	if err != nil {
		g.fail(c, err)
		return
	}
	b, err := g.deps.Store.Branch(c.Request.Context(), c.Param("id"), at)
	if err != nil {
		g.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (g *Gateway) listZones(c *gin.Context) {
	at, err := g.at(c)
	if err != nil {
		g.fail(c, err)
		return
	}
	zones, err := g.deps.Store.Zones(c.Request.Context(), c.Query("branchId"), at)
	if err != nil {
		g.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"zones": zones})
}

func (g *Gateway) getSettings(c *gin.Context) {
	s, err := g.deps.Store.Settings(c.Request.Context())
	if err != nil {
		g.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

// Cart

type cartResponse struct {
	Cart  cart.Snapshot `json:"cart"`
	Quote cart.Quote    `json:"quote"`
	Item  *cart.Item    `json:"item,omitempty"`
}

func (g *Gateway) replyCart(c *gin.Context, reply *actors.CartReply, err error) {
	if err != nil {
		g.fail(c, err)
		return
	}
	if !reply.Found {
		c.JSON(http.StatusNotFound, gin.H{"error": cart.ErrMsgItemNotInCart})
		return
	}
	c.JSON(http.StatusOK, cartResponse{Cart: reply.Snapshot, Quote: reply.Quote, Item: reply.Item})
}

func (g *Gateway) getCart(c *gin.Context) {
	reply, err := g.deps.Carts.Get(c.Param("session"))
	g.replyCart(c, reply, err)
}

func (g *Gateway) clearCart(c *gin.Context) {
	reply, err := g.deps.Carts.Clear(c.Param("session"))
	g.replyCart(c, reply, err)
}

type addItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	cart.Selection
}

func (g *Gateway) addCartItem(c *gin.Context) {
	var req addItemRequest
	if !g.bind(c, &req) {
		return
	}
	reply, err := g.deps.Carts.Add(c.Param("session"), req.ProductID, req.Selection)
	g.replyCart(c, reply, err)
}

type quantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

func (g *Gateway) updateCartItem(c *gin.Context) {
	var req quantityRequest
	if !g.bind(c, &req) {
		return
	}
	reply, err := g.deps.Carts.UpdateQuantity(c.Param("session"), c.Param("itemId"), *req.Quantity)
	g.replyCart(c, reply, err)
}

func (g *Gateway) removeCartItem(c *gin.Context) {
	reply, err := g.deps.Carts.Remove(c.Param("session"), c.Param("itemId"))
	g.replyCart(c, reply, err)
}

type zoneRequest struct {
	BranchID string `json:"branchId"`
	ZoneID   string `json:"zoneId"`
}

func (g *Gateway) selectZone(c *gin.Context) {
	var req zoneRequest
	if !g.bind(c, &req) {
		return
	}
	reply, err := g.deps.Carts.SelectZone(c.Param("session"), req.BranchID, req.ZoneID)
	g.replyCart(c, reply, err)
}
