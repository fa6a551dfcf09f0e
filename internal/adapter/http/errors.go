package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/couchcryptid/hurricane-landfall-service/internal/domain"
)

// APIError is the JSON error envelope returned by the report API.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewValidationError creates a 400 error for a bad query parameter.
func NewValidationError(param string, cause error) *APIError {
	err := &APIError{
		Status:  http.StatusBadRequest,
		Code:    "VALIDATION_ERROR",
		Message: "invalid query parameter: " + param,
	}
	if cause != nil {
		err.Details = cause.Error()
	}
	return err
}

// NewInternalError creates a 500 error.
func NewInternalError(message string, cause error) *APIError {
	err := &APIError{
		Status:  http.StatusInternalServerError,
		Code:    "INTERNAL_ERROR",
		Message: message,
	}
	if cause != nil {
		err.Details = cause.Error()
	}
	return err
}

// toAPIError maps domain failures onto the envelope. The upstream feed being
// down or unreadable is a bad gateway, not a server fault.
func toAPIError(err error) *APIError {
	var (
		apiErr  *APIError
		httpErr *echo.HTTPError
		fetch   *domain.FetchError
		parse   *domain.ParseError
		malform *domain.MalformedDatasetError
	)
	switch {
	case errors.As(err, &apiErr):
		return apiErr
	case errors.As(err, &httpErr):
		return &APIError{
			Status:  httpErr.Code,
			Code:    "HTTP_ERROR",
			Message: fmt.Sprintf("%v", httpErr.Message),
		}
	case errors.As(err, &fetch):
		return &APIError{
			Status:  http.StatusBadGateway,
			Code:    "FEED_UNAVAILABLE",
			Message: "hurricane feed could not be fetched",
			Details: err.Error(),
		}
	case errors.As(err, &parse), errors.As(err, &malform):
		return &APIError{
			Status:  http.StatusBadGateway,
			Code:    "FEED_MALFORMED",
			Message: "hurricane feed could not be parsed",
			Details: err.Error(),
		}
	default:
		return NewInternalError("an unexpected error occurred", err)
	}
}

// errorHandler renders every handler error as an APIError.
// Usage: e.HTTPErrorHandler = errorHandler(logger)
func errorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		apiErr := toAPIError(err)
		if apiErr.Status >= http.StatusInternalServerError {
			logger.Error("request failed",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"code", apiErr.Code,
				"error", err,
			)
		}
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(apiErr.Status)
			return
		}
		if err := c.JSON(apiErr.Status, apiErr); err != nil {
			logger.Warn("write error response failed", "error", err)
		}
	}
}
