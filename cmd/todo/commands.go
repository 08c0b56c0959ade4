package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tgienger/todo/internal/models"
	"github.com/tgienger/todo/internal/persist"
	"github.com/tgienger/todo/internal/session"
	"github.com/tgienger/todo/internal/stats"
	"github.com/tgienger/todo/internal/view"
)

func statsCmd(opts *globalOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show completion and due-date statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer e.Close()

			st := e.session().View().Statistics
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), st)
			}
			printStats(cmd.OutOrStdout(), st)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&asJSON, "json", "j", false, "Output as JSON")
	return cmd
}

func listCmd(opts *globalOptions) *cobra.Command {
	var (
		filter string
		query  string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print tasks in display order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := view.ParseFilter(filter)
			if err != nil {
				return err
			}

			e, err := openEnv(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer e.Close()

			sess := e.session()
			sess.SetSearchQuery(query)
			snap := sess.SetStatusFilter(f)

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), snap.VisibleTasks)
			}
			printTasks(cmd.OutOrStdout(), snap)
			return nil
		},
	}

	cmd.Flags().StringVarP(&filter, "filter", "f", "all", "Status filter (all, active, completed)")
	cmd.Flags().StringVarP(&query, "query", "q", "", "Only tasks whose title contains this text")
	cmd.Flags().BoolVarP(&asJSON, "json", "j", false, "Output as JSON")
	return cmd
}

func compactCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "compact",
		Short: "Drop manual-order entries for deleted tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer e.Close()

			removed := e.session().Compact()
			e.logger.Info("order compacted", zap.Int("removed", removed))
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d stale order entries\n", removed)
			return nil
		},
	}
}

func recordsCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "records",
		Short: "List the stored records and flag ones this version does not use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer e.Close()

			names, err := e.adapter.Records(e.ctx)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if len(names) == 0 {
				fmt.Fprintln(w, "No records.")
				return nil
			}
			for _, name := range names {
				if slices.Contains(persist.Names, name) {
					fmt.Fprintln(w, e.adapter.Key(name))
				} else {
					fmt.Fprintf(w, "%s (unused)\n", e.adapter.Key(name))
				}
			}
			return nil
		},
	}
}

func resetCmd(opts *globalOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all stored tasks, tags and ordering",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("reset deletes every task; rerun with --yes to confirm")
			}

			e, err := openEnv(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer e.Close()

			removed, err := e.adapter.Reset(e.ctx)
			if err != nil {
				return err
			}
			e.logger.Info("records reset", zap.Strings("removed", removed))
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d records\n", len(removed))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm deletion")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printStats(w io.Writer, st stats.Statistics) {
	fmt.Fprintln(w, "Tasks")
	fmt.Fprintln(w, strings.Repeat("=", 30))
	fmt.Fprintf(w, "  Total:      %d\n", st.Total)
	fmt.Fprintf(w, "  Completed:  %d\n", st.Completed)
	fmt.Fprintf(w, "  Active:     %d\n", st.Active)
	fmt.Fprintf(w, "  Progress:   %.0f%%\n", st.CompletionRate)

	fmt.Fprintln(w, "\nBy priority:")
	fmt.Fprintf(w, "  High:       %d\n", st.Priorities.High)
	fmt.Fprintf(w, "  Medium:     %d\n", st.Priorities.Medium)
	fmt.Fprintf(w, "  Low:        %d\n", st.Priorities.Low)

	fmt.Fprintln(w, "\nDue dates:")
	fmt.Fprintf(w, "  Due soon:   %d\n", st.DueSoon)
	fmt.Fprintf(w, "  Overdue:    %d\n", st.Overdue)
}

func printTasks(w io.Writer, snap session.Snapshot) {
	fmt.Fprintf(w, "all %d • active %d • completed %d\n",
		snap.Counts.All, snap.Counts.Active, snap.Counts.Completed)

	if len(snap.VisibleTasks) == 0 {
		fmt.Fprintln(w, "No tasks.")
		return
	}
	for _, t := range snap.VisibleTasks {
		fmt.Fprintln(w, formatTask(t))
	}
}

func formatTask(t models.Task) string {
	var b strings.Builder
	if t.Completed {
		b.WriteString("[x] ")
	} else {
		b.WriteString("[ ] ")
	}
	b.WriteString(t.Title)
	fmt.Fprintf(&b, " (%s)", t.Priority)
	if t.DueDate != nil {
		b.WriteString(" due " + t.DueDate.In(time.Local).Format("2006-01-02"))
	}
	for _, tag := range t.Tags {
		b.WriteString(" #" + tag.Name)
	}
	return b.String()
}
