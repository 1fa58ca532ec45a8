package telemetry

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"guardlink.com.au/guardlink/core"
	pcore "guardlink.com.au/guardlink/patrol/core"
	common "guardlink.com.au/guardlink/patrol/web/common"
	"guardlink.com.au/guardlink/utils"
	web "guardlink.com.au/guardlink/web/common"
)

type Endpoint struct {
	base common.Handler
}

func Register(r *gin.RouterGroup, dm *core.DatabaseManager) {
	endpoint := &Endpoint{base: common.Handler{Dm: dm}}
	r.POST("/assignments/:id/locations", endpoint.Submit)
	r.GET("/assignments/:id/locations/latest", endpoint.Latest)
	r.GET("/assignments/:id/locations", endpoint.Trail)
}

type PingParams struct {
	Latitude     *float64 `json:"latitude" binding:"required,gte=-90,lte=90"`
	Longitude    *float64 `json:"longitude" binding:"required,gte=-180,lte=180"`
	Accuracy     *float64 `json:"accuracy"`
	Speed        *float64 `json:"speed"`
	Heading      *float64 `json:"heading"`
	Altitude     *float64 `json:"altitude"`
	Provider     *string  `json:"provider"`
	Battery      *int     `json:"battery" binding:"omitempty,gte=0,lte=100"`
	MockLocation bool     `json:"mockLocation"`
}

func (ep *Endpoint) Submit(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse("Invalid id"))
		return
	}

	var params PingParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(web.FormatBindingError(err)))
		return
	}

	db, conn, err := ep.base.GetDB(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}
	defer conn.Close()

	assignment, err := pcore.FindAssignment(db, uint(id))
	if err != nil {
		common.RespondError(c, err)
		return
	}

	ping := pcore.MovementPing{
		Latitude:     *params.Latitude,
		Longitude:    *params.Longitude,
		Accuracy:     params.Accuracy,
		Speed:        params.Speed,
		Heading:      params.Heading,
		Altitude:     params.Altitude,
		Provider:     params.Provider,
		Battery:      params.Battery,
		MockLocation: params.MockLocation,
	}

	row, err := pcore.RecordMovement(db, assignment, ping, time.Now().UTC())
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(row))
}

func (ep *Endpoint) Latest(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse("Invalid id"))
		return
	}

	db, conn, err := ep.base.GetDB(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}
	defer conn.Close()

	if _, err := pcore.FindAssignment(db, uint(id)); err != nil {
		common.RespondError(c, err)
		return
	}

	latest, err := pcore.LatestMovement(db, uint(id))
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}
	if latest == nil {
		c.JSON(http.StatusNotFound, web.NewErrorResponse("No telemetry recorded"))
		return
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(latest))
}

func (ep *Endpoint) Trail(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse("Invalid id"))
		return
	}

	var since *time.Time
	if s := c.Query("since"); s != "" {
		since, err = utils.ParseISOTime(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, web.NewErrorResponse("Invalid since timestamp"))
			return
		}
	}

	limit := pcore.TrailMaxRows
	if val, err := strconv.Atoi(c.Query("limit")); err == nil {
		limit = val
	}

	db, conn, err := ep.base.GetDB(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}
	defer conn.Close()

	if _, err := pcore.FindAssignment(db, uint(id)); err != nil {
		common.RespondError(c, err)
		return
	}

	trail, err := pcore.MovementTrail(db, uint(id), since, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, web.NewSearchResponse(trail, int64(len(trail))))
}
