package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kanso-habit-ledger/internal/adapters/notes"
	"github.com/comitanigiacomo/kanso-habit-ledger/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-habit-ledger/internal/config"
	"github.com/comitanigiacomo/kanso-habit-ledger/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habit-ledger/internal/core/services"
)

type options struct {
	habitsFile  string
	vault       string
	span        string
	concurrency int
}

// workspace is everything a command needs, rebuilt from the habits file on
// every run.
type workspace struct {
	file     *config.HabitsFile
	settings domain.DateSettings
	span     string
	habits   *services.HabitService
	stats    *services.StatsService
	nav      *services.NavigationService
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func (o *options) load(ctx context.Context) (*workspace, error) {
	f, err := config.LoadHabitsFile(o.habitsFile)
	if err != nil {
		return nil, err
	}

	repo := repository.NewInMemoryHabitRepository()
	habits := services.NewHabitService(repo)
	if _, err := habits.Seed(ctx, f.TrackInputs()); err != nil {
		return nil, err
	}

	span := o.span
	if span == "" {
		span = f.DefaultTimeSpan
	}
	if span == "" {
		span = domain.DefaultTimeSpanKey
	}
	if _, err := domain.LookupTimeSpan(span); err != nil {
		return nil, err
	}

	settings := f.DateSettings(domain.DefaultDateSettings())
	resolver := notes.NewFileResolver(o.vault)
	builder := services.NewLedgerBuilder(resolver, services.WithLookupConcurrency(o.concurrency))

	return &workspace{
		file:     f,
		settings: settings,
		span:     span,
		habits:   habits,
		stats:    services.NewStatsService(repo, builder, settings),
		nav:      services.NewNavigationService(resolver, settings),
	}, nil
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:          "habitctl",
		Short:        "Habit ledger for a folder of daily notes",
		Long:         "Read habit values from the frontmatter of daily notes and report streaks, success rates and target achievement.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStats(cmd, opts)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.habitsFile, "habits", "f", envOr("HABITS_FILE", "habits.toml"), "Tracked habits file (TOML)")
	rootCmd.PersistentFlags().StringVarP(&opts.vault, "vault", "v", envOr("VAULT_ROOT", "."), "Root folder of the notes")
	rootCmd.PersistentFlags().StringVarP(&opts.span, "span", "s", "", "Time span key (week, 21days, month, quarter)")
	rootCmd.PersistentFlags().IntVar(&opts.concurrency, "concurrency", services.DefaultLookupConcurrency, "Parallel note lookups")

	rootCmd.AddCommand(
		newStatsCmd(opts),
		newLedgerCmd(opts),
		newSpansCmd(opts),
		newNavCmd(opts),
		newTrackCmd(opts),
		newHashPasswordCmd(),
	)

	return rootCmd
}

func newStatsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Success rate, streaks and target achievement per habit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStats(cmd, opts)
		},
	}
}

func newLedgerCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "ledger",
		Short: "Raw values per day for every tracked habit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLedger(cmd, opts)
		},
	}
}

func newSpansCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "spans",
		Short: "List the supported time spans",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSpans(cmd, opts)
		},
	}
}

func newNavCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:       "nav <prev|next> <note path>",
		Short:     "Find the closest existing daily note before or after a note",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"prev", "next"},
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := services.ParseDirection(args[0])
			if err != nil {
				return err
			}
			ws, err := opts.load(cmd.Context())
			if err != nil {
				return err
			}
			path, err := ws.nav.Adjacent(cmd.Context(), args[1], dir)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

func newTrackCmd(opts *options) *cobra.Command {
	var (
		name    string
		widget  string
		target  float64
		isTotal bool
		ignored bool
	)

	cmd := &cobra.Command{
		Use:   "track <property>",
		Short: "Add a habit to the habits file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := opts.load(cmd.Context())
			if err != nil {
				return err
			}

			input := services.TrackHabitInput{
				PropertyName: args[0],
				DisplayName:  name,
				Widget:       widget,
				IsTotal:      isTotal,
				Ignored:      ignored,
			}
			if cmd.Flags().Changed("target") {
				input.Target = &target
			}

			habit, err := ws.habits.Track(cmd.Context(), input)
			if err != nil {
				return err
			}

			all, err := ws.habits.List(cmd.Context())
			if err != nil {
				return err
			}
			out := config.HabitsFileFrom(all, ws.settings)
			out.DefaultTimeSpan = ws.file.DefaultTimeSpan
			if err := config.SaveHabitsFile(opts.habitsFile, out); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Tracking %q as %s (position %d)\n", habit.PropertyName, habit.Widget, habit.Order+1)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&widget, "widget", string(domain.WidgetCheckbox), "checkbox, number or multitext")
	cmd.Flags().Float64Var(&target, "target", 0, "Target value (checkbox: 1 checked, 0 unchecked)")
	cmd.Flags().BoolVar(&isTotal, "total", false, "Compare the span total, not the daily value, with the target")
	cmd.Flags().BoolVar(&ignored, "ignored", false, "Track without showing stats")

	return cmd
}

func newHashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print the bcrypt hash to use as AUTH_PASSWORD_HASH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := domain.HashPassword(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}
