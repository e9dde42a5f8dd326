package service

import (
	"errors"
	"time"

	"github.com/yery-max/Proyecto-final/internal/infra"
	"github.com/yery-max/Proyecto-final/internal/repository"
)

// observe records the outcome of an operation. Persistence failures count
// as errors, everything else returned to the caller as a rejection.
func observe(m *infra.Metrics, op string, started time.Time, err error) {
	switch {
	case err == nil:
		m.ObserveOperation(op, infra.ResultOK, started)
	case errors.Is(err, repository.ErrPersistence):
		m.IncPersistenceFailure()
		m.ObserveOperation(op, infra.ResultError, started)
	default:
		m.ObserveOperation(op, infra.ResultRejected, started)
	}
}
