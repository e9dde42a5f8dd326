package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/yery-max/Proyecto-final/internal/apierror"
	"github.com/yery-max/Proyecto-final/internal/infra"
	"github.com/yery-max/Proyecto-final/internal/middleware"
	"github.com/yery-max/Proyecto-final/internal/model"
	"github.com/yery-max/Proyecto-final/internal/repository"
	"github.com/yery-max/Proyecto-final/internal/service"
)

const dateLayout = "2006-01-02"

var validate = model.NewValidator()

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// On failure it writes the error response and returns false; the caller
// must return without writing again.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		var ve validator.ValidationErrors
		if !errors.As(err, &ve) {
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
			return false
		}
		fields := make(map[string]string, len(ve))
		for _, fe := range ve {
			fields[strings.ToLower(fe.Field())] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// writeError maps engine errors to HTTP statuses. Unknown errors become a
// generic 500 and are logged with the request id.
func writeError(c *gin.Context, err error) {
	var (
		ve *model.ValidationError
		ie *service.ImportParseError
	)
	switch {
	case errors.As(err, &ie):
		c.JSON(http.StatusBadRequest, apierror.NewImport(err.Error(), ie.Line))
	case errors.As(err, &ve):
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(ve.Fields))
	case errors.Is(err, model.ErrNotFound):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	case errors.Is(err, infra.ErrUnsafeReportName):
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	case errors.Is(err, model.ErrDuplicateKey), errors.Is(err, model.ErrInsufficientStock):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	case errors.Is(err, repository.ErrPersistence):
		log.Error().Err(err).Str("request_id", c.GetString(middleware.RequestIDKey)).Msg("persistence failure")
		c.JSON(http.StatusServiceUnavailable, apierror.New("No se pudieron guardar los datos, la operacion no se aplico"))
	default:
		_ = c.Error(err)
	}
}

// parseDay reads a YYYY-MM-DD query value as a local calendar date.
func parseDay(raw string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, raw, time.Local)
}
