package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yery-max/Proyecto-final/internal/apierror"
	"github.com/yery-max/Proyecto-final/internal/dto"
	"github.com/yery-max/Proyecto-final/internal/service"
)

type ReportesHandler struct {
	svc service.ReportService
}

func NewReportesHandler(svc service.ReportService) *ReportesHandler {
	return &ReportesHandler{svc: svc}
}

func (h *ReportesHandler) Inventario(c *gin.Context) {
	path, err := h.svc.InventoryReport(c.Request.Context(), c.Query("sucursal"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ReportResponse{Path: path})
}

func (h *ReportesHandler) Recibo(c *gin.Context) {
	path, err := h.svc.SaleReceipt(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ReportResponse{Path: path})
}

// Cierre renders the daily closing of ?fecha=YYYY-MM-DD, today when omitted.
func (h *ReportesHandler) Cierre(c *gin.Context) {
	var filter dto.ReportFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	day := h.svc.Today()
	if filter.Date != "" {
		parsed, err := parseDay(filter.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("fecha invalida, se espera AAAA-MM-DD"))
			return
		}
		day = parsed
	}
	path, err := h.svc.DailyClosing(c.Request.Context(), day)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ReportResponse{Path: path})
}
