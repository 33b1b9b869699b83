package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/javajoker/review-page/internal/config"
	"github.com/javajoker/review-page/internal/i18n"
	"github.com/javajoker/review-page/internal/logger"
	"github.com/javajoker/review-page/internal/reviewpage"
	"github.com/javajoker/review-page/internal/services"
	"github.com/javajoker/review-page/internal/utils"
)

const version = "1.0.0"

// Exit codes
const (
	ExitSuccess     = 0
	ExitFailure     = 1
	ExitUsageError  = 2
	ExitUnavailable = 3
)

var (
	flagAPI     string
	flagLang    string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:           "reviews",
	Short:         "Read and write product reviews from the terminal",
	Long:          "reviews shows a product's review page, submits new reviews and browses them interactively against the review API.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagAPI, "api", "", "Review API base URL (default: REVIEW_API_BASE_URL)")
	rootCmd.PersistentFlags().StringVar(&flagLang, "lang", "", "Display language (en, zh_TW)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log requests to stderr")

	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError{err}
	})
}

// Run executes the root command and returns an exit code.
func Run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return execute(ctx, os.Args[1:])
}

func execute(ctx context.Context, args []string) int {
	rootCmd.SetArgs(args)
	cmd, err := rootCmd.ExecuteContextC(ctx)
	if err == nil {
		return ExitSuccess
	}

	fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
	switch {
	case reviewpage.IsUnavailable(err):
		return ExitUnavailable
	case isUsageError(err):
		if cmd != nil {
			fmt.Fprintln(rootCmd.ErrOrStderr(), cmd.UsageString())
		}
		return ExitUsageError
	default:
		return ExitFailure
	}
}

// usageError marks argument and flag problems.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func isUsageError(err error) bool {
	var u usageError
	return errors.As(err, &u)
}

// env is what every subcommand needs: a review API client and a language.
type env struct {
	source reviewpage.ReviewSource
	lang   string
}

func setup() (*env, error) {
	cfg, err := config.Load()
	if err != nil && flagAPI == "" {
		return nil, err
	}
	if flagAPI != "" {
		cfg.ReviewAPI.BaseURL = flagAPI
		if err := cfg.Validate(); err != nil {
			return nil, usageError{err}
		}
	}

	switch {
	case flagVerbose:
		cfg.Log.Level = "debug"
	case os.Getenv("LOG_LEVEL") == "":
		cfg.Log.Level = "warn"
	}
	logger.Setup(cfg.Environment, cfg.Log, rootCmd.ErrOrStderr())

	lang := cfg.I18n.DefaultLocale
	if flagLang != "" {
		lang = flagLang
	}
	if err := i18n.InitializeWithDefault(cfg.I18n.DefaultLocale); err != nil {
		return nil, fmt.Errorf("loading translations: %w", err)
	}
	if !i18n.IsSupported(lang) {
		return nil, usageError{fmt.Errorf("unsupported language %q (supported: %v)", lang, i18n.GetSupportedLanguages())}
	}

	return &env{
		source: services.NewReviewAPIClient(cfg.ReviewAPI),
		lang:   lang,
	}, nil
}

func productArg(args []string) (string, error) {
	if len(args) != 1 {
		return "", usageError{fmt.Errorf("expected exactly one product id, got %d", len(args))}
	}
	if err := utils.ValidateVar(args[0], "product_id"); err != nil {
		return "", usageError{fmt.Errorf("invalid product id %q", args[0])}
	}
	return args[0], nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print reviews version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "reviews version %s\n", version)
	},
}
