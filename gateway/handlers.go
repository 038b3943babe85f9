package gateway

import (
	"context"
	"fmt"
	"maps"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/example/aseertime/pkg/query"
	"github.com/example/aseertime/pkg/validation"
	"github.com/gin-gonic/gin"
)

var reservedParams = map[string]bool{
	"search":   true,
	"page":     true,
	"pageSize": true,
	"sortKey":  true,
	"sortDir":  true,
	"prev":     true,
}

// listParams reads search, paging and sort from the query string. Every other
// non-empty key is a filter. When "prev" carries the query string of the
// previous listing request, a changed search, filter or sort starts over at
// page 1.
func (g *Gateway) listParams(c *gin.Context) (query.Params, error) {
	values := c.Request.URL.Query()
	p, err := g.parseParams(values)
	if err != nil || !values.Has("prev") {
		return p, err
	}

	prevValues, err := url.ParseQuery(values.Get("prev"))
	if err != nil {
		return p, fmt.Errorf("%w: prev must be a query string", errBadRequest)
	}
	prev, err := g.parseParams(prevValues)
	if err != nil {
		return p, err
	}
	return p.Reconcile(prev), nil
}

func (g *Gateway) parseParams(values url.Values) (query.Params, error) {
	p := query.Params{
		Search:   values.Get("search"),
		SortKey:  values.Get("sortKey"),
		Page:     1,
		PageSize: g.config.Shop.PageSize,
	}
	if dir := values.Get("sortDir"); dir != "" {
		p.SortDir = query.ParseDirection(dir)
	}

	var err error
	if p.Page, err = intParam(values, "page", p.Page); err != nil {
		return p, err
	}
	if p.PageSize, err = intParam(values, "pageSize", p.PageSize); err != nil {
		return p, err
	}

	for k, vs := range values {
		if reservedParams[k] || len(vs) == 0 || vs[0] == "" {
			continue
		}
		if p.Filters == nil {
			p.Filters = make(map[string]string)
		}
		p.Filters[k] = vs[0]
	}
	return p, nil
}

func intParam(values url.Values, key string, def int) (int, error) {
	raw := values.Get(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", errBadRequest, key)
	}
	return n, nil
}

// at reads the optional RFC 3339 "at" parameter used to evaluate opening hours.
func (g *Gateway) at(c *gin.Context) (time.Time, error) {
	raw := c.Query("at")
	if raw == "" {
		return g.now(), nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: at must be RFC 3339", errBadRequest)
	}
	return t, nil
}

func (g *Gateway) bind(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		g.fail(c, fmt.Errorf("%w: %w", errBadRequest, err))
		return false
	}
	return true
}

func listHandler[T any](g *Gateway, list func(context.Context, query.Params) (query.Page[T], error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := g.listParams(c)
		if err != nil {
			g.fail(c, err)
			return
		}
		page, err := list(c.Request.Context(), p)
		if err != nil {
			g.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, page)
	}
}

// byIDHandler serves reads and toggles, which take only the path id.
func byIDHandler[T any](g *Gateway, fn func(context.Context, string) (T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, err := fn(c.Request.Context(), c.Param("id"))
		if err != nil {
			g.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, v)
	}
}

func createHandler[F, T any](g *Gateway, create func(context.Context, F) (T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form F
		if !g.bind(c, &form) {
			return
		}
		v, err := create(c.Request.Context(), form)
		if err != nil {
			g.fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, v)
	}
}

func updateHandler[F, T any](g *Gateway, update func(context.Context, string, F) (T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form F
		if !g.bind(c, &form) {
			return
		}
		v, err := update(c.Request.Context(), c.Param("id"), form)
		if err != nil {
			g.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, v)
	}
}

func deleteHandler(g *Gateway, remove func(context.Context, string) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := remove(c.Request.Context(), c.Param("id")); err != nil {
			g.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

type formCheck[F any] struct {
	Form   F                 `json:"form"`
	Errors validation.Errors `json:"errors"`
	Edited validation.Field  `json:"edited"`
}

// checkHandler backs live form feedback. Editing a field only clears that
// field's previous error; without an edited field the whole form is checked.
func checkHandler[F any](g *Gateway, check func(F) validation.Result) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req formCheck[F]
		if !g.bind(c, &req) {
			return
		}
		if req.Edited == "" {
			c.JSON(http.StatusOK, check(req.Form))
			return
		}
		errs := validation.Errors{}
		maps.Copy(errs, req.Errors)
		errs.Clear(req.Edited)
		c.JSON(http.StatusOK, validation.Result{Errors: errs, Valid: len(errs) == 0})
	}
}
