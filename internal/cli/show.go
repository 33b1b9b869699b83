package cli

import (
	"github.com/spf13/cobra"

	"github.com/javajoker/review-page/internal/reviewpage"
)

var showCmd = &cobra.Command{
	Use:   "show <productId>",
	Short: "Print a product's reviews and average rating",
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
		loadErr := page.Load(cmd.Context())
		printPage(cmd.OutOrStdout(), page.View(), e.lang)
		return loadErr
	},
}
