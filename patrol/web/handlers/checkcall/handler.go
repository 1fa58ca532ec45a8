package checkcall

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"guardlink.com.au/guardlink/core"
	"guardlink.com.au/guardlink/infrastructure/communication"
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
	r.POST("/assignments/:id/check-calls/seed", endpoint.Seed)
	r.GET("/assignments/:id/check-calls", endpoint.List)
	r.POST("/check-calls/:id/complete", endpoint.Complete)
}

type SeedParams struct {
	StartDate *web.DateOnly `json:"startDate" binding:"required"`
	EndDate   *web.DateOnly `json:"endDate" binding:"required"`
}

// Seed is called by the roster product when an assignment is created.
// Re-seeding the same range is a no-op, so retried calls are safe.
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

	callTimes, err := core.ActiveCallTimes(db, site.SiteID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}

	created, err := pcore.SeedCheckCalls(db, assignment, site, callTimes, params.StartDate.Time, params.EndDate.Time)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}

	// Nudge the guard by email. Confirmation still only happens in the
	// app, so a delivery failure never blocks the seed.
	if emp, err := core.FindEmployeeByID(db, assignment.EmployeeID); err == nil && emp != nil && emp.Email != nil {
		info := communication.BuildShiftReminder(*emp.Email, emp.FirstName, site.Name,
			assignment.Date.Format("2006-01-02"), assignment.StartTime)
		go func() {
			if err := communication.SendEmail(context.Background(), info); err != nil {
				fmt.Printf("[ERROR] failed to send shift reminder: %v\n", err)
			}
		}()
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(gin.H{"seeded": created}))
}

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

	if _, err := pcore.FindAssignment(db, uint(id)); err != nil {
		common.RespondError(c, err)
		return
	}

	views, err := pcore.ListCheckCalls(db, uint(id), time.Now().UTC(), ep.loc)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(views))
}

type CompleteParams struct {
	Latitude  *float64 `json:"latitude" binding:"required,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" binding:"required,gte=-180,lte=180"`
}

func (ep *Endpoint) Complete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse("Invalid id"))
		return
	}

	var params CompleteParams
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

	call, err := pcore.CompleteCheckCall(db, uint(id), *params.Latitude, *params.Longitude, time.Now().UTC(), ep.loc)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(call))
}
