// internal/middleware/i18n.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/review-page/internal/i18n"
)

// I18nMiddleware picks the page language from ?lang=, then Accept-Language,
// then defaultLang.
func I18nMiddleware(defaultLang string) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := normalizeLang(c.Query("lang"))

		// Get language from header
		if lang == "" {
			if header := c.GetHeader("Accept-Language"); header != "" {
				// Handle cases like "zh-TW,zh;q=0.9,en;q=0.8"
				langs := strings.Split(header, ",")
				lang = normalizeLang(strings.TrimSpace(strings.Split(langs[0], ";")[0]))
			}
		}

		if lang == "" || !i18n.IsSupported(lang) {
			lang = defaultLang
		}

		// Set language in context
		c.Set("lang", lang)
		c.Next()
	}
}

func normalizeLang(lang string) string {
	// Convert common language codes
	switch lang {
	case "zh-TW", "zh-Hant", "zh_TW":
		return "zh_TW"
	case "en", "en-US", "en-GB":
		return "en"
	default:
		return ""
	}
}
