package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMessagesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "messages",
		Short: "Work with the translation files",
	}

	var dir string
	check := &cobra.Command{
		Use:   "check",
		Short: "Report missing namespaces and keys in every locale",
		Long: `Loads every locale's message file and lists its gaps. Missing keys are
reported as warnings; a missing namespace breaks page rendering and makes the
command exit non-zero.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := messageStore(dir, discardLogger())
			if err != nil {
				return err
			}
			gaps, err := store.CheckAll()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			structural := 0
			for _, g := range gaps {
				if g.Structural {
					structural++
				}
				fmt.Fprintln(out, g.String())
			}
			if len(gaps) == 0 {
				fmt.Fprintln(out, "all message files are complete")
				return nil
			}
			if structural > 0 {
				return fmt.Errorf("%d namespace(s) missing", structural)
			}
			return nil
		},
	}
	check.Flags().StringVar(&dir, "dir", "", "Directory of <locale>.json files (default: embedded messages)")

	cmd.AddCommand(check)
	return cmd
}
