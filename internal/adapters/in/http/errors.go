package http

import (
	"errors"
	"net/http"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// writeError maps domain and application errors onto HTTP status codes.
// Validation failures are the caller's fault, conflicts report a state the
// caller must re-read, anything unrecognized stays a 500.
func writeError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, order.ErrTerminalState),
		errors.Is(err, errs.ErrVersionIsInvalid),
		errors.Is(err, order.ErrRatingAlreadyAttached):
		status = http.StatusConflict
	case errors.Is(err, order.ErrOrderNotDelivered),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
	}

	return ctx.JSON(status, ErrorResponse{
		Code:    status,
		Message: err.Error(),
	})
}
