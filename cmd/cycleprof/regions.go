package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/cycleprof"
)

func newRegionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "regions FILE",
		Short: "Validate a YAML region table and list it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open region table: %w", err)
			}
			defer f.Close()

			reg, err := cycleprof.LoadRegistry(f)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "%6s  %s\n", "id", "name")

			for _, info := range reg.All() {
				fmt.Fprintf(out, "%6d  %s\n", info.ID, info.Name)
			}

			fmt.Fprintf(out, "%d regions, slot capacity %d\n", reg.Len(), reg.Capacity())

			return nil
		},
	}
}
