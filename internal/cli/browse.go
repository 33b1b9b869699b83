package cli

import (
	"github.com/spf13/cobra"

	"github.com/javajoker/review-page/internal/reviewpage"
	"github.com/javajoker/review-page/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse <productId>",
	Short: "Open an interactive review page",
	RunE: func(cmd *cobra.Command, args []string) error {
		productID, err := productArg(args)
		if err != nil {
			return err
		}
		e, err := setup()
		if err != nil {
			return err
		}

		page := reviewpage.New(productID, e.source)
		return tui.Run(cmd.Context(), page, e.lang)
	},
}
