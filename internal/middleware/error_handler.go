package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/tradesync/internal/domain/dto"
	"github.com/guttosm/tradesync/internal/logger"
)

// ErrorHandler converts errors attached with c.Error into a JSON 500 response
// when the handler did not write a response itself.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}
	last := c.Errors.Last()
	logger.L().Error().Err(last.Err).Str("path", c.Request.URL.Path).Msg("request failed")
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("internal error", last.Err))
}

// AbortWithError stops the chain and writes a standardized error body.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err))
}
