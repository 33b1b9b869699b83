package cli

import (
	"fmt"
	"io"

	"github.com/javajoker/review-page/internal/i18n"
	"github.com/javajoker/review-page/internal/reviewpage"
)

// printPage writes a plain-text rendition of the page.
func printPage(w io.Writer, v reviewpage.View, lang string) {
	fmt.Fprintf(w, "%s · %s\n", i18n.T(lang, i18n.KeyPageTitle), v.ProductID)
	fmt.Fprintf(w, "%s %s %s\n", v.AverageStars.Glyphs(), v.AverageLabel(lang), v.CountLabel(lang))

	if msg := v.ErrorMessage(lang); msg != "" {
		fmt.Fprintf(w, "\n%s: %s\n", i18n.T(lang, i18n.KeyError), msg)
	}

	fmt.Fprintf(w, "\n%s\n", i18n.T(lang, i18n.KeyListTitle))
	if v.Empty() {
		fmt.Fprintln(w, i18n.T(lang, i18n.KeyNoReviews))
		return
	}
	for _, r := range v.Reviews {
		if r.Description == "" {
			fmt.Fprintln(w, r.Stars.Glyphs())
			continue
		}
		fmt.Fprintf(w, "%s %s\n", r.Stars.Glyphs(), r.Description)
	}
}
