package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/osse101/CurioSync_Go/internal/audit"
	"github.com/osse101/CurioSync_Go/internal/domain"
)

const (
	defaultAuditSample = 20
	defaultScanLimit   = 100
)

func newBackfillCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "backfill",
		Short: "Rebuild tags and item-tag links from every item's raw tags",
		Long: `Rebuild tags and item-tag links from every item's raw tags.

Existing links are kept and missing ones created, so the command is safe to rerun.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return root.withEnvironment(cmd.Context(), func(env *Environment) error {
				report, err := env.Audit.Backfill(cmd.Context())
				if err != nil {
					return err
				}
				return render(cmd.OutOrStdout(), root.Format, report, func(w io.Writer) {
					line(w, "items scanned  %d", report.ItemsScanned)
					line(w, "raw tags       %d", report.RawTags)
					line(w, "invalid tags   %d", report.InvalidTags)
					line(w, "tags           %d", report.Tags)
					line(w, "links          %d", report.Links)
					line(w, "links created  %d", report.LinksCreated)
				})
			})
		},
	}
}

func newAuditCommand(root *rootOptions) *cobra.Command {
	var userID string
	var sample int

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Compare independent tag counts for a sample of a user's tags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID == "" {
				return fmt.Errorf("%w: --user is required", domain.ErrInvalidInput)
			}
			if sample <= 0 {
				return fmt.Errorf("%w: --sample must be positive", domain.ErrInvalidInput)
			}
			return root.withEnvironment(cmd.Context(), func(env *Environment) error {
				report, err := env.Audit.Diagnose(cmd.Context(), userID, sample)
				if err != nil {
					return err
				}
				return render(cmd.OutOrStdout(), root.Format, report, func(w io.Writer) {
					printDiagnostic(w, report)
				})
			})
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "user whose tags to sample")
	cmd.Flags().IntVar(&sample, "sample", defaultAuditSample, "number of tags to sample")

	return cmd
}

func newReconcileCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile",
		Short: "Rewrite drifted tag usage counters from the join rows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return root.withEnvironment(cmd.Context(), func(env *Environment) error {
				report, err := env.Audit.Reconcile(cmd.Context())
				if err != nil {
					return err
				}
				return render(cmd.OutOrStdout(), root.Format, report, func(w io.Writer) {
					if len(report.Corrected) == 0 {
						line(w, "all usage counters match")
						return
					}
					for _, d := range report.Corrected {
						line(w, "%s  %s  %d -> %d", d.TagID, d.Name, d.Previous, d.Actual)
					}
				})
			})
		},
	}
}

func newUnattributedCommand(root *rootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "unattributed",
		Short: "List items that look imported but carry no provider provenance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit <= 0 {
				return fmt.Errorf("%w: --limit must be positive", domain.ErrInvalidInput)
			}
			return root.withEnvironment(cmd.Context(), func(env *Environment) error {
				items, err := env.Audit.ScanUnattributed(cmd.Context(), limit)
				if err != nil {
					return err
				}
				return render(cmd.OutOrStdout(), root.Format, items, func(w io.Writer) {
					for _, it := range items {
						line(w, "%s  %s  %s", it.ID, it.UserID, it.URL)
					}
				})
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", defaultScanLimit, "maximum items to list")

	return cmd
}

func printDiagnostic(w io.Writer, r *audit.DiagnosticReport) {
	line(w, "user %s, %d tags sampled", r.UserID, r.Sampled)
	for _, c := range r.Counts {
		line(w, "  %-24s usage=%d joins=%d by_name=%d by_id=%d active=%d deleted=%d",
			c.Name, c.UsageCount, c.JoinRows, c.ByDisplayName, c.ByTagID, c.ActiveItems, c.DeletedLinked)
	}
	if r.Consistent() {
		line(w, "consistent")
	}
	for _, f := range r.Findings {
		line(w, "FINDING %s %s: %s", f.Kind, f.TagName, f.Detail)
	}
	for _, e := range r.Errors {
		line(w, "ERROR %s", e)
	}
}
