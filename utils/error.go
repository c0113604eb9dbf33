package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GenericErrorMessage is returned whenever the cause of a failure should not reach the client.
const GenericErrorMessage = "Something went wrong, please try again"

// Envelope is the body of every API response.
type Envelope struct {
	Success bool              `json:"success"`
	Data    any               `json:"data,omitempty"`
	Error   string            `json:"error,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// ErrorHandler recovers panics and answers with a generic error envelope.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic",
					zap.Any("error", err),
					zap.String("path", c.Request.URL.Path),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, Envelope{
					Success: false,
					Error:   GenericErrorMessage,
				})
			}
		}()
		c.Next()
	}
}

// JSONSuccess sends a success envelope.
func JSONSuccess(c *gin.Context, status int, data any) {
	c.JSON(status, Envelope{Success: true, Data: data})
}

// JSONError sends a standardized error envelope.
func JSONError(c *gin.Context, status int, message string) {
	path := ""
	if c.Request != nil {
		path = c.Request.URL.Path
	}
	if status >= http.StatusInternalServerError {
		GetLogger().Error(message, zap.String("path", path))
	} else {
		GetLogger().Debug(message, zap.String("path", path), zap.Int("status", status))
	}
	c.JSON(status, Envelope{Success: false, Error: message})
}

// AbortWithError aborts the chain with an error envelope; used by middleware.
func AbortWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Envelope{Success: false, Error: message})
}

// JSONValidationError sends a 400 envelope listing the offending fields.
func JSONValidationError(c *gin.Context, message string, fields map[string]string) {
	c.JSON(http.StatusBadRequest, Envelope{Success: false, Error: message, Fields: fields})
}
