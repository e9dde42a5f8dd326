package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yery-max/Proyecto-final/internal/apierror"
	"github.com/yery-max/Proyecto-final/internal/dto"
	"github.com/yery-max/Proyecto-final/internal/service"
)

type VentasHandler struct {
	svc   service.SaleService
	query service.QueryService
}

func NewVentasHandler(svc service.SaleService, query service.QueryService) *VentasHandler {
	return &VentasHandler{svc: svc, query: query}
}

func (h *VentasHandler) Registrar(c *gin.Context) {
	var req dto.RegisterSaleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegisterSale(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar returns the sales of ?fecha=YYYY-MM-DD, today when omitted.
func (h *VentasHandler) Listar(c *gin.Context) {
	var filter dto.SaleFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	if filter.Date == "" {
		c.JSON(http.StatusOK, h.query.TodaySales(c.Request.Context()))
		return
	}
	day, err := parseDay(filter.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("fecha invalida, se espera AAAA-MM-DD"))
		return
	}
	c.JSON(http.StatusOK, h.query.SalesOn(c.Request.Context(), day))
}

func (h *VentasHandler) Obtener(c *gin.Context) {
	sale, err := h.query.GetSale(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSaleResponse(sale))
}
