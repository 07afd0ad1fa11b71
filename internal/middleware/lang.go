package middleware

import (
	"strings"

	"github.com/learncss/Annotum/pkg/app"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
)

// LangWithTranslator picks the request language from ?lang= or the lang
// header and stores both the language and its validator translator.
// LangWithTranslator 创建带翻译器的语言中间件
func LangWithTranslator(uni *ut.UniversalTranslator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var lang string
		if s, exist := c.GetQuery("lang"); exist {
			lang = s
		} else if s = c.GetHeader("lang"); len(s) != 0 {
			lang = s
		}
		lang = strings.ToLower(strings.ReplaceAll(lang, "-", "_"))

		trans, found := uni.GetTranslator(lang)
		if !found {
			trans, _ = uni.GetTranslator("en")
		}
		c.Set("trans", trans)
		c.Set(app.LangKey, lang)

		c.Next()
	}
}
