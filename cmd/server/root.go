package main

import (
	"github.com/spf13/cobra"
)

// NewRootCmd builds the CLI. Running it without a subcommand serves HTTP.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "college-admin",
		Short:         "College administration backend",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runServe,
	}

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMigrateCmd())
	cmd.AddCommand(NewCreateUserCmd())

	return cmd
}
