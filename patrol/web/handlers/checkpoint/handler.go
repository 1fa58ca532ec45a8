package checkpoint

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"guardlink.com.au/guardlink/core"
	pcore "guardlink.com.au/guardlink/patrol/core"
	common "guardlink.com.au/guardlink/patrol/web/common"
	web "guardlink.com.au/guardlink/web/common"
)

type Endpoint struct {
	base common.Handler
	loc  *time.Location
}

func Register(r *gin.RouterGroup, dm *core.DatabaseManager) {
	endpoint := &Endpoint{base: common.Handler{Dm: dm}, loc: pcore.Location()}
	r.POST("/assignments/:id/checkpoints/seed", endpoint.Seed)
	r.GET("/assignments/:id/checkpoints", endpoint.List)
	r.POST("/assignments/:id/checkpoints/scan", endpoint.Scan)
}

type SeedParams struct {
	StartDate *web.DateOnly `json:"startDate" binding:"required"`
	EndDate   *web.DateOnly `json:"endDate" binding:"required"`
}

func (ep *Endpoint) Seed(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse("Invalid id"))
		return
	}

	var params SeedParams
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

	site, err := core.FindSiteByID(db, assignment.SiteID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}
	if site == nil {
		c.JSON(http.StatusNotFound, web.NewErrorResponse("Site not found"))
		return
	}

	checkpoints, err := core.ActiveCheckpoints(db, site.SiteID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}

	created, err := pcore.SeedCheckpointScans(db, assignment, site, checkpoints, params.StartDate.Time, params.EndDate.Time)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(gin.H{"seeded": created}))
}

// List returns the expected rounds for the assignment's shift day.
func (ep *Endpoint) List(c *gin.Context) {
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

	assignment, err := pcore.FindAssignment(db, uint(id))
	if err != nil {
		common.RespondError(c, err)
		return
	}

	rounds, err := pcore.ListCheckpointRounds(db, assignment.EmployeeID, assignment.Date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(rounds))
}

type ScanParams struct {
	Token     string   `json:"token" binding:"required"`
	Latitude  *float64 `json:"latitude" binding:"required,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" binding:"required,gte=-180,lte=180"`
}

func (ep *Endpoint) Scan(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse("Invalid id"))
		return
	}

	var params ScanParams
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

	scan, err := pcore.ScanCheckpoint(db, assignment, params.Token, *params.Latitude, *params.Longitude, time.Now().UTC(), ep.loc)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(scan))
}
