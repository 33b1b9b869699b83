// Reviews is a terminal client for product review pages.
//
// Usage:
//
//	reviews show <productId>                          # print reviews and the average rating
//	reviews submit <productId> -r 5 -d "Great"        # submit a review, then print the page
//	reviews browse <productId>                        # interactive review page
//
// The review API defaults to REVIEW_API_BASE_URL and can be overridden with --api.
package main

import (
	"os"

	"github.com/javajoker/review-page/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
