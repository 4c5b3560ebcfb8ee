package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/osse101/CurioSync_Go/internal/domain"
)

type syncOptions struct {
	UserID   string
	MaxItems int
	Groups   []string
}

func newSyncCommand(root *rootOptions) *cobra.Command {
	opts := &syncOptions{}

	cmd := &cobra.Command{
		Use:   "sync <provider>",
		Short: "Run one sync for a user's provider connection",
		Long: `Run one sync for a user's provider connection and print the result.

A run that fails upstream still prints its result; the command exits non-zero
only when the store fails or the run did not succeed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			providerName := args[0]
			if !domain.IsSupportedProvider(providerName) {
				return fmt.Errorf("%w: %s", domain.ErrInvalidProvider, providerName)
			}
			if opts.UserID == "" {
				return fmt.Errorf("%w: --user is required", domain.ErrInvalidInput)
			}
			if opts.MaxItems < 0 {
				return fmt.Errorf("%w: --max-items must not be negative", domain.ErrInvalidInput)
			}

			return root.withEnvironment(cmd.Context(), func(env *Environment) error {
				res, err := env.Sync.Sync(cmd.Context(), opts.UserID, providerName, domain.SyncOptions{
					MaxItems: opts.MaxItems,
					Groups:   opts.Groups,
				})
				if err != nil {
					return err
				}
				if err := render(cmd.OutOrStdout(), root.Format, res, func(w io.Writer) {
					printSyncResult(w, res)
				}); err != nil {
					return err
				}
				if !res.Success {
					return fmt.Errorf("sync %s ended %s", res.RunID, res.State)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&opts.UserID, "user", "", "user id to sync for")
	cmd.Flags().IntVar(&opts.MaxItems, "max-items", 0, "item budget for the run (0 uses the configured default)")
	cmd.Flags().StringSliceVar(&opts.Groups, "group", nil, "restrict to these group ids or names (repeatable)")

	return cmd
}

func printSyncResult(w io.Writer, res *domain.SyncResult) {
	line(w, "run       %s", res.RunID)
	line(w, "provider  %s", res.Provider)
	line(w, "state     %s", res.State)
	line(w, "synced    %d", res.Synced)
	line(w, "skipped   %d", res.Skipped)
	line(w, "failed    %d", res.Failed)
	if len(res.Errors) > 0 {
		line(w, "errors:\n  %s", strings.Join(res.Errors, "\n  "))
	}
}
