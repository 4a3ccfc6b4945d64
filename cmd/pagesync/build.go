package main

import "github.com/spf13/cobra"

func newBuildCommand(a *app) *cobra.Command {
	var failOnError bool

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Render every binding into its page section (default command)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runBuild(cmd, failOnError)
		},
	}
	cmd.Flags().BoolVar(&failOnError, "fail-on-error", false, "exit non-zero when any binding fails")
	return cmd
}
