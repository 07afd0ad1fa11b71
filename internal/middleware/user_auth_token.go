package middleware

import (
	"github.com/learncss/Annotum/pkg/app"
	"github.com/learncss/Annotum/pkg/code"

	"github.com/gin-gonic/gin"
)

// requestToken reads the token from the query string or headers.
func requestToken(c *gin.Context) string {
	for _, k := range []string{"authorization", "Authorization", "token", "Token"} {
		if s, exist := c.GetQuery(k); exist && s != "" {
			return s
		}
		if s := c.GetHeader(k); s != "" {
			return s
		}
	}
	return ""
}

// UserAuthTokenWithConfig 用户 Token 认证中间件
func UserAuthTokenWithConfig(secretKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := requestToken(c)
		if token == "" {
			app.NewResponse(c).ToResponse(code.ErrorNotUserAuthToken)
			c.Abort()
			return
		}

		if err := app.SetTokenToContextWithKey(c, token, secretKey); err != nil {
			app.NewResponse(c).ToResponse(code.ErrorInvalidAuthToken)
			c.Abort()
			return
		}

		c.Next()
	}
}

// OptionalUserAuthToken attaches the user when a valid token is present and
// otherwise lets the request through anonymously. Used by the XML download
// routes, where previews need the caller but published exports do not.
func OptionalUserAuthToken(secretKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := requestToken(c); token != "" {
			_ = app.SetTokenToContextWithKey(c, token, secretKey)
		}
		c.Next()
	}
}
