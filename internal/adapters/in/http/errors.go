package http

import (
	"errors"
	"fmt"
	"net/http"

	"movers/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type errorResponse struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// statusFor maps an error returned by a handler to the HTTP status and body.
func statusFor(err error) (int, errorResponse) {
	var bindErr *echo.BindingError
	if errors.As(err, &bindErr) {
		return http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Kind:    errs.KindValidation.String(),
			Message: fmt.Sprintf("invalid value for %s: %v", bindErr.Field, bindErr.Message),
		}
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		kind := errs.KindUnknown
		if httpErr.Code == http.StatusBadRequest {
			kind = errs.KindValidation
		}
		return httpErr.Code, errorResponse{Code: httpErr.Code, Kind: kind.String(), Message: fmt.Sprint(httpErr.Message)}
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Kind:    errs.KindValidation.String(),
			Message: validationErrs.Error(),
		}
	}

	kind := errs.KindOf(err)
	var status int
	switch kind {
	case errs.KindValidation:
		status = http.StatusBadRequest
	case errs.KindNotFound:
		status = http.StatusNotFound
	case errs.KindInvalidTransition:
		status = http.StatusConflict
	case errs.KindPaymentFailure:
		status = http.StatusPaymentRequired
	case errs.KindUpstreamTimeout:
		status = http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError, errorResponse{
			Code:    http.StatusInternalServerError,
			Kind:    kind.String(),
			Message: http.StatusText(http.StatusInternalServerError),
		}
	}

	return status, errorResponse{Code: status, Kind: kind.String(), Message: err.Error()}
}

// HandleError is the echo error handler. Internal errors are logged and
// answered without details.
func (s *Server) HandleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, body := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			zap.String("method", c.Request().Method),
			zap.String("route", c.Path()),
			zap.Error(err),
		)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, body)
	}
	if err != nil {
		s.logger.Warn("cannot write error response", zap.Error(err))
	}
}
