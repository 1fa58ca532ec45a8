package report

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"guardlink.com.au/guardlink/core"
	pcore "guardlink.com.au/guardlink/patrol/core"
	common "guardlink.com.au/guardlink/patrol/web/common"
	web "guardlink.com.au/guardlink/web/common"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Endpoint struct {
	base common.Handler
	loc  *time.Location
}

func Register(r *gin.RouterGroup, dm *core.DatabaseManager) {
	endpoint := &Endpoint{base: common.Handler{Dm: dm}, loc: pcore.Location()}
	r.POST("/reports/check-calls/export", endpoint.ExportCheckCalls)
}

type ExportParams struct {
	StartDate *web.DateOnly `json:"startDate" binding:"required"`
	EndDate   *web.DateOnly `json:"endDate" binding:"required"`
}

func (ep *Endpoint) ExportCheckCalls(c *gin.Context) {
	var params ExportParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(web.FormatBindingError(err)))
		return
	}
	if params.EndDate.Time.Before(params.StartDate.Time) {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse("endDate must not be before startDate"))
		return
	}

	db, conn, err := ep.base.GetDB(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}
	defer conn.Close()

	rows, err := pcore.QueryCheckCallReport(db, params.StartDate.Time, params.EndDate.Time)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}

	f, err := pcore.BuildCheckCallReport(rows, time.Now().UTC(), ep.loc)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}

	filename := fmt.Sprintf("check-calls-%s-%s.xlsx",
		params.StartDate.Time.Format("20060102"), params.EndDate.Time.Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
