package middleware

import (
	"github.com/gin-gonic/gin"

	"todolist/internal/i18n"
)

const langKey = "lang"

// Language resolves the request language from ?lang= and Accept-Language
// and stores it on the request context.
func Language(catalog *i18n.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := catalog.Resolve(c.Query("lang"), c.GetHeader("Accept-Language"))
		c.Set(langKey, lang)
		c.Request = c.Request.WithContext(i18n.WithLanguage(c.Request.Context(), lang))
		c.Next()
	}
}

