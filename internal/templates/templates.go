// internal/templates/templates.go
package templates

import (
	"embed"
	"html/template"
	"net/url"

	"github.com/javajoker/review-page/internal/i18n"
)

//go:embed *.html *.css
var files embed.FS

// Load parses the embedded page templates.
func Load() (*template.Template, error) {
	return template.New("").Funcs(Funcs()).ParseFS(files, "*.html")
}

func Funcs() template.FuncMap {
	return template.FuncMap{
		"t": func(lang, key string, args ...interface{}) string {
			return i18n.T(lang, key, args...)
		},
		// stars lists the selectable ratings of the rating input
		"stars": func() []int {
			return []int{1, 2, 3, 4, 5}
		},
		"pathEscape": url.PathEscape,
		"selected": func(rating *float64, value int) bool {
			return rating != nil && *rating == float64(value)
		},
	}
}

// Static exposes the embedded stylesheet.
func Static() embed.FS {
	return files
}
