package assignment

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
	r.GET("/assignments/:id/phase", endpoint.GetPhase)
	r.POST("/assignments/:id/confirmations", endpoint.Confirm)
	r.PUT("/assignments/:id/eta", endpoint.SetEta)
	r.POST("/assignments/:id/book-on", endpoint.BookOn)
	r.POST("/assignments/:id/book-off", endpoint.BookOff)
}

func assignmentID(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse("Invalid id"))
		return 0, false
	}
	return uint(id), true
}

func (ep *Endpoint) GetPhase(c *gin.Context) {
	id, ok := assignmentID(c)
	if !ok {
		return
	}

	db, conn, err := ep.base.GetDB(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}
	defer conn.Close()

	info, err := pcore.LoadPhase(db, id, time.Now().UTC(), ep.loc)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(NewPhaseDTO(info)))
}

type ConfirmParams struct {
	Type     string `json:"type" binding:"required,oneof=shift_created 24h 2h"`
	Response string `json:"response" binding:"required,oneof=accept decline"`
}

func (ep *Endpoint) Confirm(c *gin.Context) {
	id, ok := assignmentID(c)
	if !ok {
		return
	}

	var params ConfirmParams
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

	meta := pcore.EventMeta{Actor: common.ActorFromContext(c), Channel: "app"}
	if err := pcore.ConfirmReminder(db, id, params.Type, params.Response, meta, time.Now().UTC()); err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(gin.H{}))
}

type EtaParams struct {
	// nil clears a previously submitted eta
	Minutes *int `json:"minutes" binding:"omitempty,gte=0"`
}

func (ep *Endpoint) SetEta(c *gin.Context) {
	id, ok := assignmentID(c)
	if !ok {
		return
	}

	var params EtaParams
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

	meta := pcore.EventMeta{Actor: common.ActorFromContext(c), Channel: "app"}
	if err := pcore.SetEta(db, id, params.Minutes, meta, time.Now().UTC()); err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(gin.H{}))
}

type BookParams struct {
	// Opaque evidence store reference for the book-on/off photo.
	Evidence  *string  `json:"evidence"`
	Latitude  *float64 `json:"latitude" binding:"omitempty,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" binding:"omitempty,gte=-180,lte=180"`
}

func (ep *Endpoint) BookOn(c *gin.Context) {
	id, ok := assignmentID(c)
	if !ok {
		return
	}

	var params BookParams
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

	meta := pcore.EventMeta{Actor: common.ActorFromContext(c), Channel: "app", Latitude: params.Latitude, Longitude: params.Longitude}
	if err := pcore.BookOn(db, id, params.Evidence, meta, time.Now().UTC()); err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(gin.H{}))
}

func (ep *Endpoint) BookOff(c *gin.Context) {
	id, ok := assignmentID(c)
	if !ok {
		return
	}

	var params BookParams
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

	meta := pcore.EventMeta{Actor: common.ActorFromContext(c), Channel: "app", Latitude: params.Latitude, Longitude: params.Longitude}
	if err := pcore.BookOff(db, id, params.Evidence, meta, time.Now().UTC()); err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(gin.H{}))
}
