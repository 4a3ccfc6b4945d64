package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report whether every bound page carries its section markers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			orch, err := a.orchestrator()
			if err != nil {
				return err
			}
			statuses, err := orch.Check(cmd.Context())
			if err != nil {
				return err
			}

			missing := 0
			for _, s := range statuses {
				switch {
				case s.Err != nil:
					missing++
					fmt.Fprintf(a.out, "[ERROR] %s#%s: %v\n", s.Binding.Page, s.Binding.Section, s.Err)
				case s.Present:
					fmt.Fprintf(a.out, "[OK] %s#%s\n", s.Binding.Page, s.Binding.Section)
				default:
					missing++
					fmt.Fprintf(a.out, "[MISSING] %s#%s\n", s.Binding.Page, s.Binding.Section)
				}
			}
			if missing > 0 {
				return fmt.Errorf("pagesync: %d section(s) without markers", missing)
			}
			return nil
		},
	}
}
