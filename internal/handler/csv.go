package handler

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yery-max/Proyecto-final/internal/apierror"
	"github.com/yery-max/Proyecto-final/internal/service"
)

const maxImportSize = 10 << 20

type CSVHandler struct{ svc service.ImportService }

func NewCSVHandler(svc service.ImportService) *CSVHandler {
	return &CSVHandler{svc: svc}
}

// Importar accepts either a multipart upload in field "archivo" or a raw
// text/csv body.
func (h *CSVHandler) Importar(c *gin.Context) {
	var src io.Reader
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fh, err := c.FormFile("archivo")
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("Falta el archivo CSV (campo 'archivo')"))
			return
		}
		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("No se pudo abrir el archivo CSV"))
			return
		}
		defer f.Close()
		src = f
	} else {
		src = http.MaxBytesReader(c.Writer, c.Request.Body, maxImportSize)
	}

	resp, err := h.svc.ImportCSV(c.Request.Context(), src)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
