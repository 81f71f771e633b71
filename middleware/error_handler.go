package middleware

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/NomadCrew/trcs2-health/errors"
	"github.com/NomadCrew/trcs2-health/logger"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the JSON body of every non-2xx response produced by the server.
type ErrorResponse struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
	Code    string `json:"code,omitempty"` // For HTTP status code as string
}

// ErrorHandler renders the last error attached to the context. Errors that are
// not AppErrors are reported as SERVER_ERROR.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appError *errors.AppError
		if !stderrors.As(err, &appError) {
			appError = errors.Wrap(err, errors.ServerError, "Internal Server Error")
		}

		statusCode := appError.GetHTTPStatus()
		logger.LogHTTPError(c, err, statusCode, fmt.Sprintf("%s error", appError.Type))
		writeAppError(c, appError)
	}
}

// Recovery turns a panic into a SERVER_ERROR response.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		err := fmt.Errorf("panic: %v", recovered)
		logger.LogHTTPError(c, err, http.StatusInternalServerError, "Recovered from panic")
		writeAppError(c, errors.InternalServerError("Internal Server Error"))
		c.Abort()
	})
}

// NotFoundHandler is installed as the engine's NoRoute handler.
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		_ = c.Error(errors.NotFound(c.Request.Method, c.Request.URL.Path))
		c.Abort()
	}
}

// MethodNotAllowedHandler is installed as the engine's NoMethod handler.
func MethodNotAllowedHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		_ = c.Error(errors.NotAllowed(c.Request.Method, c.Request.URL.Path))
		c.Abort()
	}
}

func writeAppError(c *gin.Context, appError *errors.AppError) {
	statusCode := appError.GetHTTPStatus()
	response := ErrorResponse{
		Type:    string(appError.Type),
		Message: appError.Message,
		Code:    strconv.Itoa(statusCode),
	}

	// Server error details may leak internals, so they are only shown in debug mode.
	if appError.Detail != "" && (gin.IsDebugging() || appError.Type != errors.ServerError) {
		response.Details = appError.Detail
	}

	c.JSON(statusCode, response)
}
