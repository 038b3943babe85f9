package gateway

import (
	"errors"
	"net/http"

	"github.com/example/aseertime/pkg/actors"
	"github.com/example/aseertime/pkg/cart"
	"github.com/example/aseertime/pkg/catalog"
	"github.com/example/aseertime/pkg/models"
	"github.com/example/aseertime/pkg/orders"
	"github.com/example/aseertime/pkg/query"
	"github.com/example/aseertime/pkg/validation"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var errBadRequest = errors.New("bad request")

var badRequests = []error{
	errBadRequest,
	query.ErrUnknownFilter,
	query.ErrInvalidFilter,
	query.ErrUnknownSort,
	models.ErrInvalidStatus,
	orders.ErrInvalidPayment,
	orders.ErrEmptyChange,
	catalog.ErrInvalidMove,
	actors.ErrInvalidSession,
	actors.ErrZoneMismatch,
}

// fail writes err as a JSON response. Form errors keep their per-field shape.
func (g *Gateway) fail(c *gin.Context, err error) {
	var (
		fields  validation.Errors
		submit  *catalog.SubmitError
		cartErr *cart.Error
	)
	switch {
	case errors.As(err, &fields):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": fields})
	case errors.As(err, &submit):
		g.logger.Error("Save failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"errors": submit.Errors()})
	case errors.Is(err, catalog.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &cartErr):
		code := http.StatusBadRequest
		if cartErr.Code == cart.CodeFailedPrecondition {
			code = http.StatusConflict
		}
		c.JSON(code, gin.H{"error": cartErr.Message, "code": cartErr.Code.String()})
	case isBadRequest(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		g.logger.Error("Request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func isBadRequest(err error) bool {
	for _, target := range badRequests {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
