package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pulse/internal/bootstrap"
	navdto "pulse/internal/modules/navigation/dto"
	"pulse/internal/platform/config"
	apperrors "pulse/internal/platform/errors"
	"pulse/internal/platform/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootOptions struct {
	dataDir string
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "pulse",
		Short:         "Pulse health companion",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(opts)
		},
	}
	root.PersistentFlags().StringVar(&opts.dataDir, "data", config.DefaultDataDir(), "data directory")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(newTUICmd(opts))
	root.AddCommand(newStatusCmd(opts))
	root.AddCommand(newOnboardingCmd(opts))
	root.AddCommand(newResetCmd(opts))
	root.AddCommand(newDeepLinkCmd(opts))
	root.AddCommand(newFeedbackCmd(opts))
	root.AddCommand(newMetricsCmd(opts))
	return root
}

// loadApp wires the application. Plain commands run with delays removed and
// log to stderr; the TUI keeps configured delays and logs to a file.
func loadApp(opts *rootOptions, interactive bool) (*bootstrap.App, error) {
	cfg, err := config.New(opts.dataDir)
	if err != nil {
		return nil, err
	}
	level := cfg.LogLevel
	if opts.verbose {
		level = "debug"
	}
	logPath := ""
	if interactive {
		logPath = cfg.LogPath
	} else {
		cfg = cfg.Immediate()
	}
	logger, err := logging.New(level, logPath)
	if err != nil {
		return nil, err
	}
	app, err := bootstrap.New(cfg, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}
	return app, nil
}

// withSession loads the app and starts a navigation session, whose startup
// completes inline because plain commands carry no delays.
func withSession(opts *rootOptions, fn func(ctx context.Context, app *bootstrap.App) error) (err error) {
	app, err := loadApp(opts, false)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, app.Close()) }()

	ctx := context.Background()
	if _, err := app.NavigationCLI.Start(ctx, nil); err != nil {
		return err
	}
	return fn(ctx, app)
}

func runTUI(opts *rootOptions) (err error) {
	app, err := loadApp(opts, true)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, app.Close()) }()
	app.Logger.Info("tui starting", zap.String("data_dir", app.Config.DataDir))
	return bootstrap.RunTUI(app)
}

func newTUICmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the interactive terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTUI(opts)
		},
	}
}

func newStatusCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show which screen the next launch opens",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(opts, func(ctx context.Context, app *bootstrap.App) error {
				state, err := app.NavigationCLI.State(ctx)
				if err != nil {
					return err
				}
				printState(cmd.OutOrStdout(), state)
				return nil
			})
		},
	}
}

func newOnboardingCmd(opts *rootOptions) *cobra.Command {
	onboarding := &cobra.Command{Use: "onboarding", Short: "Onboarding flow commands"}

	var skip bool
	var steps int
	advanceCmd := &cobra.Command{
		Use:   "advance",
		Short: "Advance the onboarding flow from its first page",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if steps < 1 {
				return fmt.Errorf("%w: --steps must be at least 1", apperrors.ErrInvalidInput)
			}
			return withSession(opts, func(ctx context.Context, app *bootstrap.App) error {
				var state navdto.StateOutput
				var err error
				for range steps {
					state, err = app.NavigationCLI.Advance(ctx, skip)
					if err != nil {
						return err
					}
				}
				printState(cmd.OutOrStdout(), state)
				return nil
			})
		},
	}
	advanceCmd.Flags().BoolVar(&skip, "skip", false, "skip instead of continue (last page only)")
	advanceCmd.Flags().IntVar(&steps, "steps", 1, "number of pages to advance")
	onboarding.AddCommand(advanceCmd)

	onboarding.AddCommand(&cobra.Command{
		Use:   "complete",
		Short: "Walk every onboarding page and mark onboarding complete",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(opts, func(ctx context.Context, app *bootstrap.App) error {
				state, err := app.NavigationCLI.State(ctx)
				if err != nil {
					return err
				}
				for state.Screen == "onboarding" {
					if state, err = app.NavigationCLI.Advance(ctx, false); err != nil {
						return err
					}
				}
				printState(cmd.OutOrStdout(), state)
				return nil
			})
		},
	})
	return onboarding
}

func newResetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear onboarding progress (developer use)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(opts, func(ctx context.Context, app *bootstrap.App) error {
				if _, err := app.NavigationCLI.ResetSession(ctx); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "onboarding reset")
				return nil
			})
		},
	}
}

func newDeepLinkCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "deeplink <url>",
		Short: "Deliver a deep link to the session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(opts, func(ctx context.Context, app *bootstrap.App) error {
				state, err := app.NavigationCLI.HandleDeepLink(ctx, args[0])
				if err != nil {
					return err
				}
				printState(cmd.OutOrStdout(), state)
				return nil
			})
		},
	}
}

func newFeedbackCmd(opts *rootOptions) *cobra.Command {
	feedback := &cobra.Command{Use: "feedback", Short: "Send feedback"}

	var rating int
	var category, text, email string
	var followUp bool
	submitCmd := &cobra.Command{
		Use:   "submit --rating <1-5> --text <text>",
		Short: "Validate and submit feedback",
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			if strings.TrimSpace(email) == "" && followUp {
				return fmt.Errorf("%w: --follow-up requires --email", apperrors.ErrInvalidInput)
			}
			app, err := loadApp(opts, false)
			if err != nil {
				return err
			}
			defer func() { err = errors.Join(err, app.Close()) }()

			out, err := app.FeedbackCLI.Submit(cmd.Context(), rating, category, text, email, followUp)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.Message)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "id=%s category=%s delivered=%t\n", out.SubmissionID, out.Category, out.Delivered)
			return nil
		},
	}
	submitCmd.Flags().IntVar(&rating, "rating", 0, "rating from 1 to 5")
	submitCmd.Flags().StringVar(&category, "category", "general", "general|pulseTracking|userInterface|performance|features")
	submitCmd.Flags().StringVar(&text, "text", "", "feedback text (at least 10 characters)")
	submitCmd.Flags().StringVar(&email, "email", "", "contact email (optional)")
	submitCmd.Flags().BoolVar(&followUp, "follow-up", false, "allow follow-up contact")
	feedback.AddCommand(submitCmd)

	feedback.AddCommand(&cobra.Command{
		Use:   "categories",
		Short: "List feedback categories",
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			app, err := loadApp(opts, false)
			if err != nil {
				return err
			}
			defer func() { err = errors.Join(err, app.Close()) }()
			for _, c := range app.FeedbackCLI.Categories(cmd.Context()) {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", c.ID, c.Label)
			}
			return nil
		},
	})
	return feedback
}

func newMetricsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "metrics",
		Short: "Print a sample of health metrics",
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			app, err := loadApp(opts, false)
			if err != nil {
				return err
			}
			defer func() { err = errors.Join(err, app.Close()) }()

			out, err := app.MetricsCLI.Refresh(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "heart rate:    %d bpm\n", out.HeartRate)
			_, _ = fmt.Fprintf(w, "resting:       %d bpm\n", out.RestingHeartRate)
			_, _ = fmt.Fprintf(w, "hrv:           %d ms\n", out.HRV)
			_, _ = fmt.Fprintf(w, "steps:         %d\n", out.Steps)
			_, _ = fmt.Fprintf(w, "updated:       %s\n", out.UpdatedAt.Format("15:04:05"))
			return nil
		},
	}
}

func printState(w io.Writer, state navdto.StateOutput) {
	_, _ = fmt.Fprintf(w, "screen=%s onboarding_complete=%t\n", state.Screen, state.OnboardingComplete)
	if state.Screen == "onboarding" {
		_, _ = fmt.Fprintf(w, "page %d/%d: %s\n", state.PageIndex+1, state.PageCount, state.Page.Title)
	}
}
