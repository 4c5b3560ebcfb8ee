package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/osse101/CurioSync_Go/internal/database"
)

func newMigrateCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database schema migrations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply every pending migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withEnvironment(cmd.Context(), func(env *Environment) error {
				return env.Migrator.Up(cmd.Context())
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withEnvironment(cmd.Context(), func(env *Environment) error {
				return env.Migrator.Down(cmd.Context())
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "List migrations and whether they are applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withEnvironment(cmd.Context(), func(env *Environment) error {
				statuses, err := env.Migrator.Status(cmd.Context())
				if err != nil {
					return err
				}
				return render(cmd.OutOrStdout(), opts.Format, statuses, func(w io.Writer) {
					printStatuses(w, statuses)
				})
			})
		},
	})

	return cmd
}

func printStatuses(w io.Writer, statuses []database.MigrationStatus) {
	for _, s := range statuses {
		state := "pending"
		if s.Applied {
			state = "applied"
		}
		line(w, "%05d  %-8s %s", s.Version, state, s.Source)
	}
}
