package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kanso-habit-ledger/internal/cli"
	"github.com/comitanigiacomo/kanso-habit-ledger/internal/core/domain"
)

func runStats(cmd *cobra.Command, opts *options) error {
	ws, err := opts.load(cmd.Context())
	if err != nil {
		return err
	}

	dashboard, err := ws.stats.Dashboard(cmd.Context(), ws.span)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintln(out, cli.RenderTitle(fmt.Sprintf("HABITS  %s  %s to %s",
		dashboard.TimeSpan.Label, dashboard.StartDate, dashboard.EndDate)))
	fmt.Fprintln(out)

	if len(dashboard.Habits) == 0 {
		fmt.Fprintln(out, "  No active habits in "+opts.habitsFile)
		return nil
	}

	rows := make([][]string, 0, len(dashboard.Habits))
	for _, h := range dashboard.Habits {
		rows = append(rows, []string{
			h.Habit.DisplayName,
			h.Summary,
			cli.RenderPercent(h.Stats.SuccessRate, h.Color),
			strconv.Itoa(h.Stats.CurrentStreak),
			strconv.Itoa(h.Stats.LongestStreak),
			cli.RenderDays(h.DailySuccess, h.Color),
		})
	}

	fmt.Fprint(out, cli.RenderTable(cli.Table{
		Headers: []string{"Habit", "Summary", "Rate", "Streak", "Best", "Days"},
		Rows:    rows,
	}))
	return nil
}

func runLedger(cmd *cobra.Command, opts *options) error {
	ws, err := opts.load(cmd.Context())
	if err != nil {
		return err
	}

	habits, err := ws.habits.List(cmd.Context())
	if err != nil {
		return err
	}
	ledger, err := ws.stats.Ledger(cmd.Context(), ws.span)
	if err != nil {
		return err
	}

	headers := []string{"Date", "Note"}
	for _, h := range habits {
		headers = append(headers, h.DisplayName)
	}

	rows := make([][]string, 0, len(ledger))
	for _, day := range ledger {
		note := cli.Muted("missing")
		if day.Exists {
			note = "yes"
		}
		row := []string{day.Date, note}
		for _, h := range habits {
			row = append(row, formatValue(day.Value(h.PropertyName)))
		}
		rows = append(rows, row)
	}

	fmt.Fprint(cmd.OutOrStdout(), cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("Ledger (%s)", ws.span),
		Headers: headers,
		Rows:    rows,
	}))
	return nil
}

func formatValue(v domain.HabitValue) string {
	if v.IsMissing() {
		return ""
	}
	return v.String()
}

func runSpans(cmd *cobra.Command, opts *options) error {
	current := opts.span
	if current == "" {
		current = domain.DefaultTimeSpanKey
	}

	rows := [][]string{}
	for _, ts := range domain.TimeSpans() {
		key := ts.Key
		if key == current {
			key += " *"
		}
		rows = append(rows, []string{key, ts.Label, strconv.Itoa(ts.Days)})
	}

	fmt.Fprint(cmd.OutOrStdout(), cli.RenderTable(cli.Table{
		Headers: []string{"Key", "Label", "Days"},
		Rows:    rows,
	}))
	return nil
}
