package common

import (
	"database/sql"
	"errors"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"guardlink.com.au/guardlink/core"
	pcore "guardlink.com.au/guardlink/patrol/core"
	web "guardlink.com.au/guardlink/web/common"
)

type Handler struct {
	Dm *core.DatabaseManager
}

func GetHostname(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return host
}

// GetDB resolves the tenant schema from the request hostname.
func (h *Handler) GetDB(r *gin.Context) (*gorm.DB, *sql.Conn, error) {
	hostname := GetHostname(r.Request.Host)
	return h.Dm.GetDB(r.Request.Context(), hostname)
}

// ActorFromContext reads the acting identity out of the JWT claims so
// it can be recorded on every ledger row.
func ActorFromContext(c *gin.Context) pcore.Actor {
	var actor pcore.Actor
	if raw, ok := c.Get("claims"); ok {
		if claims, ok := raw.(jwt.MapClaims); ok {
			if id, ok := claims["nameid"].(float64); ok {
				actor.ID = uint(id)
			}
			if name, ok := claims["unique_name"].(string); ok {
				actor.Name = name
			}
		}
	}
	return actor
}

// RespondError maps domain errors onto HTTP statuses: validation 400,
// unknown rows 404, window violations and out-of-order actions 409.
func RespondError(c *gin.Context, err error) {
	var malformed *pcore.MalformedScheduleError
	var window *pcore.WindowViolationError

	switch {
	case errors.Is(err, pcore.ErrAssignmentNotFound),
		errors.Is(err, pcore.ErrCheckCallNotFound),
		errors.Is(err, pcore.ErrUnknownToken):
		c.JSON(http.StatusNotFound, web.NewErrorResponse(err.Error()))

	case errors.As(err, &window),
		errors.Is(err, pcore.ErrCallAlreadyCompleted),
		errors.Is(err, pcore.ErrCallAlreadyMissed),
		errors.Is(err, pcore.ErrAlreadyBookedOn),
		errors.Is(err, pcore.ErrNotBookedOn),
		errors.Is(err, pcore.ErrAlreadyBookedOff),
		errors.Is(err, pcore.ErrCheckpointWrongSite),
		errors.Is(err, pcore.ErrAssignmentClosed):
		c.JSON(http.StatusConflict, web.NewErrorResponse(err.Error()))

	case errors.As(err, &malformed):
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(err.Error()))

	default:
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
	}
}
