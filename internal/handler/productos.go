package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yery-max/Proyecto-final/internal/apierror"
	"github.com/yery-max/Proyecto-final/internal/dto"
	"github.com/yery-max/Proyecto-final/internal/service"
)

type ProductosHandler struct {
	svc   service.ProductService
	query service.QueryService
}

func NewProductosHandler(svc service.ProductService, query service.QueryService) *ProductosHandler {
	return &ProductosHandler{svc: svc, query: query}
}

func (h *ProductosHandler) Crear(c *gin.Context) {
	var req dto.AddProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	p, err := h.svc.AddProduct(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewProductResponse(p, h.query.Config()))
}

func (h *ProductosHandler) Listar(c *gin.Context) {
	var filter dto.ProductFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	products := h.query.ListProducts(c.Request.Context(), filter.Branch)
	data := dto.NewProductResponses(products, h.query.Config())
	c.JSON(http.StatusOK, dto.ProductListResponse{Data: data, Total: len(data), Branch: filter.Branch})
}

func (h *ProductosHandler) Obtener(c *gin.Context) {
	p, err := h.svc.FindProduct(c.Request.Context(), c.Param("sku"), c.Param("sucursal"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewProductResponse(p, h.query.Config()))
}

func (h *ProductosHandler) Actualizar(c *gin.Context) {
	var req dto.EditProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if req.Price != nil && req.Price.IsNegative() {
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(map[string]string{"price": "min"}))
		return
	}
	p, err := h.svc.EditProduct(c.Request.Context(), c.Param("sku"), c.Param("sucursal"), req.Patch())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewProductResponse(p, h.query.Config()))
}

func (h *ProductosHandler) Eliminar(c *gin.Context) {
	if err := h.svc.DeleteProduct(c.Request.Context(), c.Param("sku"), c.Param("sucursal")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
