package middleware

import (
	"github.com/learncss/Annotum/pkg/app"
	"github.com/learncss/Annotum/pkg/code"
	"github.com/learncss/Annotum/pkg/limiter"

	"github.com/gin-gonic/gin"
)

// RateLimiter 创建限流中间件
func RateLimiter(l limiter.Face) gin.HandlerFunc {
	return func(c *gin.Context) {
		if bucket, ok := l.GetBucket(l.Key(c)); ok {
			if bucket.TakeAvailable(1) == 0 {
				app.NewResponse(c).ToResponse(code.ErrorTooManyRequests)
				c.Abort()
				return
			}
		}
		c.Next()
	}
}
