package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"lifebalance/internal/bootstrap"
	balancedto "lifebalance/internal/modules/balance/dto"
	progressdto "lifebalance/internal/modules/progress/dto"
	"lifebalance/internal/platform/area"
	"lifebalance/internal/platform/config"
	apperrors "lifebalance/internal/platform/errors"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var vaultPath string

	root := &cobra.Command{
		Use:           "lifebalance",
		Short:         "Rate life areas, track goals, watch the balance score",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&vaultPath, "vault", "", "vault directory (default $LIFEBALANCE_VAULT or .)")

	root.AddCommand(newRateCmd(&vaultPath))
	root.AddCommand(newScoreCmd(&vaultPath))
	root.AddCommand(newAreasCmd(&vaultPath))
	root.AddCommand(newAdviceCmd(&vaultPath))
	root.AddCommand(newActionCmd(&vaultPath))
	root.AddCommand(newMilestoneCmd(&vaultPath))
	root.AddCommand(newProgressCmd(&vaultPath))
	root.AddCommand(newHistoryCmd(&vaultPath))
	root.AddCommand(newPlanCmd(&vaultPath))
	root.AddCommand(newReindexCmd(&vaultPath))
	root.AddCommand(newTUICmd(&vaultPath))
	return root
}

func loadApp(vaultPath string) (*bootstrap.App, error) {
	cfg, err := config.Load(vaultPath)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg)
}

func newTUICmd(vaultPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the dashboard",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			return bootstrap.RunTUI(app)
		},
	}
}

func newRateCmd(vaultPath *string) *cobra.Command {
	var satisfaction, risk float64
	var notes string

	cmd := &cobra.Command{
		Use:   "rate <area> --satisfaction S --risk R",
		Short: "Record satisfaction and risk (0-10) for an area",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("satisfaction") || !cmd.Flags().Changed("risk") {
				return fmt.Errorf("--satisfaction and --risk are required")
			}
			app, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			out, err := app.BalanceCLI.Rate(context.Background(), args[0], satisfaction, risk, notes)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "rated %s: satisfaction %.1f risk %.1f note=%s\n",
				out.Metric.Title, out.Metric.Satisfaction, out.Metric.Risk, out.NotePath)
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), formatScore(out.Score))
			return nil
		},
	}
	cmd.Flags().Float64Var(&satisfaction, "satisfaction", 0, "satisfaction 0-10")
	cmd.Flags().Float64Var(&risk, "risk", 0, "risk 0-10")
	cmd.Flags().StringVar(&notes, "notes", "", "free-text notes")
	return cmd
}

func newScoreCmd(vaultPath *string) *cobra.Command {
	var asJSON bool
	var history int

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Show the balance score",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			ctx := context.Background()
			if history > 0 {
				snapshots, err := app.BalanceCLI.ScoreHistory(ctx, history)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd.OutOrStdout(), snapshots)
				}
				if len(snapshots) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no scores recorded")
					return nil
				}
				for _, s := range snapshots {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", s.ComputedAt.Format(time.RFC3339), formatScore(s))
				}
				return nil
			}

			report, err := app.BalanceCLI.Score(ctx)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), report)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), formatScore(report.Score))
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, m := range report.Metrics {
				_, _ = fmt.Fprintf(tw, "%s\tsatisfaction %.1f\trisk %.1f\t%s\n", m.Title, m.Satisfaction, m.Risk, m.LastUpdated.Format("2006-01-02"))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	cmd.Flags().IntVar(&history, "history", 0, "show the last N recorded scores instead")
	return cmd
}

func newAreasCmd(vaultPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "areas",
		Short: "List life areas and their current rating",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			metrics, err := app.BalanceCLI.ListMetrics(context.Background())
			if err != nil {
				return err
			}
			rated := make(map[string]balancedto.MetricOutput, len(metrics))
			for _, m := range metrics {
				rated[m.Area] = m
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, a := range area.All() {
				m, ok := rated[string(a)]
				if !ok {
					_, _ = fmt.Fprintf(tw, "%s\t%s\tnot rated\n", a, a.Title())
					continue
				}
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%.1f / %.1f\t%s\n", a, a.Title(), m.Satisfaction, m.Risk, m.Notes)
			}
			return tw.Flush()
		},
	}
}

func newAdviceCmd(vaultPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "advice [area]",
		Short: "Show suggestions for rated areas",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			ctx := context.Background()
			if len(args) == 1 {
				a, err := app.AdviceCLI.AdviseArea(ctx, args[0])
				if err != nil {
					return err
				}
				printAdvice(cmd.OutOrStdout(), a.Title, a.Category, a.Suggestions)
				return nil
			}
			all, err := app.AdviceCLI.Advise(ctx)
			if err != nil {
				return err
			}
			if len(all) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no areas rated yet")
				return nil
			}
			for _, a := range all {
				printAdvice(cmd.OutOrStdout(), a.Title, a.Category, a.Suggestions)
			}
			return nil
		},
	}
}

func printAdvice(w io.Writer, title, category string, suggestions []string) {
	_, _ = fmt.Fprintf(w, "%s (%s)\n", title, strings.ReplaceAll(category, "_", " "))
	for _, s := range suggestions {
		_, _ = fmt.Fprintf(w, "  - %s\n", s)
	}
}

func newActionCmd(vaultPath *string) *cobra.Command {
	action := &cobra.Command{Use: "action", Short: "Manage action items"}

	var description, deadline, notes string
	var priority int
	var metrics []string
	add := &cobra.Command{
		Use:   "add <area> --description D --metric name=target[:current]...",
		Short: "Add an action item to an area",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(description) == "" {
				return fmt.Errorf("--description is required")
			}
			due, err := parseDate(deadline)
			if err != nil {
				return fmt.Errorf("--deadline: %w", err)
			}
			parsed := make([]progressdto.MetricInput, 0, len(metrics))
			for _, raw := range metrics {
				m, err := parseMetric(raw)
				if err != nil {
					return err
				}
				parsed = append(parsed, m)
			}
			app, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			out, err := app.ProgressCLI.AddAction(context.Background(), progressdto.AddActionInput{
				Area:        args[0],
				Description: description,
				Deadline:    due,
				Priority:    priority,
				Metrics:     parsed,
				Notes:       notes,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added action %d: %s (%.0f%%) plan=%s\n",
				out.Action.Index, out.Action.Description, out.Action.Completion*100, out.PlanPath)
			return nil
		},
	}
	add.Flags().StringVar(&description, "description", "", "what the action is")
	add.Flags().StringVar(&deadline, "deadline", "", "deadline (YYYY-MM-DD)")
	add.Flags().IntVar(&priority, "priority", 2, "priority 1 (high) to 3 (low)")
	add.Flags().StringArrayVar(&metrics, "metric", nil, "metric as name=target[:current]; repeatable")
	add.Flags().StringVar(&notes, "notes", "", "free-text notes")

	progress := &cobra.Command{
		Use:   "progress <area> <action-index> <metric-index> <value>",
		Short: "Record a new current value for one metric of an action",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			actionIndex, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("action index: %w", err)
			}
			metricIndex, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("metric index: %w", err)
			}
			value, err := strconv.ParseFloat(args[3], 64)
			if err != nil {
				return fmt.Errorf("value: %w", err)
			}
			app, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			out, err := app.ProgressCLI.UpdateProgress(context.Background(), args[0], actionIndex, metricIndex, value)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s = %g, %s now %.0f%% complete\n",
				out.Event.MetricName, out.Event.NewValue, out.Action.Description, out.Action.Completion*100)
			if out.Warning != "" {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "warning: completion not updated: %s\n", out.Warning)
			}
			return nil
		},
	}

	action.AddCommand(add, progress)
	return action
}

func newMilestoneCmd(vaultPath *string) *cobra.Command {
	milestone := &cobra.Command{Use: "milestone", Short: "Manage milestones"}

	var description, targetDate string
	var criteria, metrics []string
	add := &cobra.Command{
		Use:   "add <area> --description D",
		Short: "Add a milestone to an area",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(description) == "" {
				return fmt.Errorf("--description is required")
			}
			target, err := parseDate(targetDate)
			if err != nil {
				return fmt.Errorf("--target-date: %w", err)
			}
			values := make(map[string]float64, len(metrics))
			for _, raw := range metrics {
				name, value, err := parseNamedValue(raw)
				if err != nil {
					return err
				}
				values[name] = value
			}
			app, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			out, err := app.ProgressCLI.AddMilestone(context.Background(), progressdto.AddMilestoneInput{
				Area:            args[0],
				Description:     description,
				TargetDate:      target,
				SuccessCriteria: criteria,
				Metrics:         values,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added milestone %d: %s plan=%s\n", out.Milestone.Index, out.Milestone.Description, out.PlanPath)
			return nil
		},
	}
	add.Flags().StringVar(&description, "description", "", "what the milestone is")
	add.Flags().StringVar(&targetDate, "target-date", "", "target date (YYYY-MM-DD)")
	add.Flags().StringArrayVar(&criteria, "criteria", nil, "success criterion; repeatable")
	add.Flags().StringArrayVar(&metrics, "metric", nil, "metric as name=value; repeatable")

	var undo bool
	achieve := &cobra.Command{
		Use:   "achieve <area> <index>",
		Short: "Mark a milestone achieved (or not, with --undo)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("milestone index: %w", err)
			}
			app, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			out, err := app.ProgressCLI.Achieve(context.Background(), args[0], index, !undo)
			if err != nil {
				return err
			}
			state := "achieved"
			if !out.Achieved {
				state = "not achieved"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "milestone %d %s: %s\n", out.Index, state, out.Description)
			return nil
		},
	}
	achieve.Flags().BoolVar(&undo, "undo", false, "mark as not achieved")

	milestone.AddCommand(add, achieve)
	return milestone
}

func newProgressCmd(vaultPath *string) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "progress [area]",
		Short: "Show action completion for one area or all planned areas",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			ctx := context.Background()
			var areas []progressdto.DomainProgressOutput
			if len(args) == 1 {
				p, err := app.ProgressCLI.DomainProgress(ctx, args[0])
				if err != nil {
					return err
				}
				areas = append(areas, p)
			} else {
				areas, err = app.ProgressCLI.Overview(ctx)
				if err != nil {
					return err
				}
			}
			if asJSON {
				if len(args) == 1 {
					return writeJSON(cmd.OutOrStdout(), areas[0])
				}
				return writeJSON(cmd.OutOrStdout(), areas)
			}
			if len(areas) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no plans")
				return nil
			}
			for _, p := range areas {
				printProgress(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func printProgress(w io.Writer, p progressdto.DomainProgressOutput) {
	_, _ = fmt.Fprintf(w, "%s: %d/%d actions completed (%.0f%%)\n", p.Title, p.CompletedActions, p.TotalActions, p.CompletionRate*100)
	for _, a := range p.Actions {
		_, _ = fmt.Fprintf(w, "  [%d] %s  %.0f%%", a.Index, a.Description, a.Completion*100)
		if !a.Deadline.IsZero() {
			_, _ = fmt.Fprintf(w, "  due %s", a.Deadline.Format("2006-01-02"))
		}
		_, _ = fmt.Fprintln(w)
		for i, m := range a.Metrics {
			_, _ = fmt.Fprintf(w, "      %d. %s %g/%g\n", i, m.Name, m.Current, m.Target)
		}
	}
	for _, m := range p.Milestones {
		mark := " "
		if m.Achieved {
			mark = "x"
		}
		_, _ = fmt.Fprintf(w, "  milestone [%s] %d %s\n", mark, m.Index, m.Description)
	}
}

func newHistoryCmd(vaultPath *string) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history <area>",
		Short: "Show recorded progress events for an area",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			events, err := app.ProgressCLI.History(context.Background(), args[0], limit)
			if err != nil {
				return err
			}
			if len(events) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no progress recorded")
				return nil
			}
			for _, e := range events {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%g\n", e.Timestamp.Format(time.RFC3339), e.MetricName, e.NewValue)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 50, "maximum number of events")
	return cmd
}

func newPlanCmd(vaultPath *string) *cobra.Command {
	plan := &cobra.Command{Use: "plan", Short: "Bulk plan operations"}
	plan.AddCommand(&cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Append the actions and milestones of a plan file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			out, err := app.ProgressCLI.ImportPlan(context.Background(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "imported %d actions and %d milestones into %s\n",
				out.Actions, out.Milestones, strings.Join(out.Areas, ", "))
			return nil
		},
	})
	return plan
}

func newReindexCmd(vaultPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild SQLite projections from the vault",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			ctx := context.Background()
			if err := app.BalanceCLI.Reindex(ctx); err != nil {
				return err
			}
			if err := app.ProgressCLI.Reindex(ctx); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "reindex completed")
			return nil
		},
	}
}

func formatScore(s balancedto.ScoreOutput) string {
	switch {
	case s.AreaCount == 0:
		return "score: 0.000 (no areas rated)"
	case !s.Defined:
		return "score: undefined (no risk recorded)"
	default:
		return fmt.Sprintf("score: %.3f over %d areas (risk-free %.1f)", s.Value, s.AreaCount, s.RiskFreeRate)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not YYYY-MM-DD", apperrors.ErrInvalidInput, raw)
	}
	return t, nil
}

// parseMetric reads name=target or name=target:current.
func parseMetric(raw string) (progressdto.MetricInput, error) {
	name, rest, ok := strings.Cut(raw, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return progressdto.MetricInput{}, fmt.Errorf("%w: metric %q must be name=target[:current]", apperrors.ErrInvalidInput, raw)
	}
	targetRaw, currentRaw, hasCurrent := strings.Cut(rest, ":")
	target, err := strconv.ParseFloat(strings.TrimSpace(targetRaw), 64)
	if err != nil {
		return progressdto.MetricInput{}, fmt.Errorf("%w: metric %q: bad target", apperrors.ErrInvalidInput, raw)
	}
	m := progressdto.MetricInput{Name: name, Target: target}
	if hasCurrent {
		current, err := strconv.ParseFloat(strings.TrimSpace(currentRaw), 64)
		if err != nil {
			return progressdto.MetricInput{}, fmt.Errorf("%w: metric %q: bad current value", apperrors.ErrInvalidInput, raw)
		}
		m.Current = current
	}
	return m, nil
}

func parseNamedValue(raw string) (string, float64, error) {
	name, valueRaw, ok := strings.Cut(raw, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return "", 0, fmt.Errorf("%w: %q must be name=value", apperrors.ErrInvalidInput, raw)
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(valueRaw), 64)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %q: bad value", apperrors.ErrInvalidInput, raw)
	}
	return name, value, nil
}
