package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javajoker/review-page/internal/i18n"
	"github.com/javajoker/review-page/internal/reviewpage"
)

var (
	flagRating      float64
	flagDescription string
)

var submitCmd = &cobra.Command{
	Use:   "submit <productId>",
	Short: "Submit a review and print the refreshed page",
	RunE: func(cmd *cobra.Command, args []string) error {
		productID, err := productArg(args)
		if err != nil {
			return err
		}
		if !cmd.Flags().Changed("rating") {
			return usageError{fmt.Errorf("--rating is required")}
		}
		e, err := setup()
		if err != nil {
			return err
		}

		page := reviewpage.New(productID, e.source)
		rating := flagRating
		page.SetRating(&rating)
		page.SetDescription(flagDescription)

		submitted, err := page.Submit(cmd.Context())
		if !submitted {
			if err == nil {
				err = fmt.Errorf("review for %s was not submitted", productID)
			}
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, i18n.T(e.lang, i18n.KeyReviewSubmitted))
		fmt.Fprintln(out)
		printPage(out, page.View(), e.lang)
		// the review was stored; a failed reload is reported on the page only
		return nil
	},
}

func init() {
	submitCmd.Flags().Float64VarP(&flagRating, "rating", "r", 0, "Star rating to submit")
	submitCmd.Flags().StringVarP(&flagDescription, "description", "d", "", "Review text")
}
