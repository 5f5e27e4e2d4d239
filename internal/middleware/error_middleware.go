package middleware

import (
	"vidshare/internal/transport/httpdto"
	"vidshare/pkg/logger"

	"github.com/gin-gonic/gin"
)

func ErrorHandler(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		if l != nil {
			l.Errorf("request error: %s", err.Error())
		}
		status, code := httpdto.StatusFor(err)
		c.JSON(status, httpdto.NewErrorResponse(err.Error(), code))
	}
}
