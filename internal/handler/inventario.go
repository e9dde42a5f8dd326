package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yery-max/Proyecto-final/internal/apierror"
	"github.com/yery-max/Proyecto-final/internal/dto"
	"github.com/yery-max/Proyecto-final/internal/service"
)

type InventarioHandler struct {
	svc   service.InventoryService
	query service.QueryService
}

func NewInventarioHandler(svc service.InventoryService, query service.QueryService) *InventarioHandler {
	return &InventarioHandler{svc: svc, query: query}
}

func (h *InventarioHandler) Transferir(c *gin.Context) {
	var req dto.TransferRequest
	if !bindAndValidate(c, &req) {
		return
	}
	msg, err := h.svc.TransferStock(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: msg})
}

func (h *InventarioHandler) Resumen(c *gin.Context) {
	c.JSON(http.StatusOK, h.query.Summary(c.Request.Context(), c.Query("sucursal")))
}

func (h *InventarioHandler) Alertas(c *gin.Context) {
	branch := c.Query("sucursal")
	products := h.svc.LowStock(c.Request.Context(), branch)
	data := dto.NewProductResponses(products, h.query.Config())
	c.JSON(http.StatusOK, dto.ProductListResponse{Data: data, Total: len(data), Branch: branch})
}

func (h *InventarioHandler) Sucursales(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.query.ListBranches(c.Request.Context())})
}

// Reinicializar wipes the whole system. The body must repeat the
// confirmation phrase exactly.
func (h *InventarioHandler) Reinicializar(c *gin.Context) {
	var req dto.ResetRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if req.Confirmation != dto.ResetConfirmationPhrase {
		c.JSON(http.StatusBadRequest, apierror.New("Confirmacion incorrecta, escriba: "+dto.ResetConfirmationPhrase))
		return
	}
	msg, err := h.svc.Reset(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: msg})
}
