package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yery-max/Proyecto-final/internal/infra"
	"github.com/yery-max/Proyecto-final/internal/model"
	"github.com/yery-max/Proyecto-final/internal/repository"
	"github.com/yery-max/Proyecto-final/internal/service"
)

func init() { gin.SetMode(gin.TestMode) }

func TestWriteError_StatusMapping(t *testing.T) {
	for _, tc := range []struct {
		name   string
		err    error
		status int
	}{
		{"not found", fmt.Errorf("%w: producto X", model.ErrNotFound), http.StatusNotFound},
		{"duplicate", fmt.Errorf("%w: X en A", model.ErrDuplicateKey), http.StatusConflict},
		{"stock", fmt.Errorf("%w: X", model.ErrInsufficientStock), http.StatusConflict},
		{"validation", &model.ValidationError{Fields: map[string]string{"sku": "required"}}, http.StatusUnprocessableEntity},
		{"import", &service.ImportParseError{Line: 7, Err: errors.New("bad")}, http.StatusBadRequest},
		{"report name", fmt.Errorf("%w: %q", infra.ErrUnsafeReportName, "../x.pdf"), http.StatusBadRequest},
		{"persistence", &repository.PersistenceError{Op: "save", Document: "ventas", Err: errors.New("disk")}, http.StatusServiceUnavailable},
	} {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			writeError(c, tc.err)
			assert.Equal(t, tc.status, w.Code)
		})
	}
}

func TestWriteError_UnknownIsDeferred(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	writeError(c, errors.New("surprise"))
	require.Len(t, c.Errors, 1)
	assert.False(t, c.Writer.Written())
}

func TestParseDay(t *testing.T) {
	day, err := parseDay("2024-06-14")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 14, 0, 0, 0, 0, time.Local), day)

	_, err = parseDay("14/06/2024")
	assert.Error(t, err)
}
