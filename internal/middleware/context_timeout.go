package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/learncss/Annotum/pkg/app"
	"github.com/learncss/Annotum/pkg/code"

	"github.com/gin-gonic/gin"
)

// ContextTimeout bounds the request context. A handler that returns after
// the deadline without writing anything gets a 408 envelope.
// ContextTimeout 设置请求上下文超时
func ContextTimeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if timeout <= 0 {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		if !c.Writer.Written() && errors.Is(ctx.Err(), context.DeadlineExceeded) {
			app.NewResponse(c).ToResponse(code.ErrorRequestTimeout)
		}
	}
}
