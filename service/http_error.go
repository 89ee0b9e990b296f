package service

import (
	"errors"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
)

// RegisterErrorHandler installs the handler rendering MyError codes as {"error":{"code","message"}}.
func RegisterErrorHandler(e *echo.Echo, logger log.Logger) {
	e.HTTPErrorHandler = NewHTTPErrorHandler(NewErrorCodeToStatusCodeMaps(), logger).Handler
}

// NewErrorCodeToStatusCodeMaps creates an error code to http status mapping.
// Runtime and store failures surface as 502 since this service only relays them.
func NewErrorCodeToStatusCodeMaps() map[string]int {
	var errorCodeToStatusCodeMaps = make(map[string]int)
	errorCodeToStatusCodeMaps[ErrBadParameter] = http.StatusBadRequest
	errorCodeToStatusCodeMaps[ErrEntityNotFound] = http.StatusNotFound
	errorCodeToStatusCodeMaps[ErrInternalServerError] = http.StatusInternalServerError
	errorCodeToStatusCodeMaps[ErrTransport] = http.StatusBadGateway
	errorCodeToStatusCodeMaps[ErrMalformedLabel] = http.StatusUnprocessableEntity
	errorCodeToStatusCodeMaps[ErrInternalConsistency] = http.StatusUnprocessableEntity

	return errorCodeToStatusCodeMaps
}

// HTTPErrorHandler is an error handler.
type HTTPErrorHandler struct {
	errorCodeToHTTPStatusCodeMap map[string]int
	logger                       log.Logger
}

// NewHTTPErrorHandler creates a new instance of the HTTPErrorHandler.
func NewHTTPErrorHandler(errorCodeToStatusCodeMaps map[string]int, logger log.Logger) *HTTPErrorHandler {
	return &HTTPErrorHandler{
		errorCodeToHTTPStatusCodeMap: errorCodeToStatusCodeMaps,
		logger:                       logger,
	}
}

func (h *HTTPErrorHandler) getStatusCode(errorCode string) int {
	status, ok := h.errorCodeToHTTPStatusCodeMap[errorCode]
	if ok {
		return status
	}

	return http.StatusInternalServerError
}

// echoError converts errors echo produces itself (unknown route, bad binding, request validation).
func echoError(he *echo.HTTPError, err error) *MyError {
	m, _ := he.Message.(string)
	var requestError *openapi3filter.RequestError
	switch {
	case he.Code == http.StatusBadRequest, errors.As(he.Internal, &requestError):
		return NewBadParameterError(m, err)
	case he.Code == http.StatusNotFound, he.Code == http.StatusMethodNotAllowed:
		return NewEntityNotFoundError(m, err)
	default:
		return NewInternalServerError(m, err)
	}
}

// Handler handles error returned by echo Handlers.
func (h *HTTPErrorHandler) Handler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var myErr *MyError
	var statusCode int
	var he *echo.HTTPError
	if he, _ = err.(*echo.HTTPError); he != nil {
		if herr, ok := he.Internal.(*echo.HTTPError); ok {
			he = herr
		}
		myErr = echoError(he, err)
		statusCode = he.Code
	} else {
		myErr = NewInternalServerError("an internal server error has occurred", err)
		statusCode = h.getStatusCode(myErr.Code)
	}

	logger := level.Error(h.logger)
	if statusCode < http.StatusInternalServerError {
		logger = level.Warn(h.logger)
	}
	logger.Log(
		"msg", "HTTP request error",
		"method", c.Request().Method,
		"path", c.Path(),
		"status", statusCode,
		"err", err,
	)

	// Send response
	if !c.Response().Committed {
		if c.Request().Method == http.MethodHead && he != nil {
			_ = c.NoContent(he.Code)
		} else {
			_ = c.JSON(statusCode, ErrResponse{Error: myErr})
		}
	}
}

// ErrResponse from server.
type ErrResponse struct {
	Error *MyError `json:"error,omitempty"`
}
