package main

import (
	"fmt"
	"os"
	"time"
	"unfollower/internal/config"
	"unfollower/internal/transfer"

	"github.com/spf13/cobra"
)

func exportCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Writes a backup of the lists and options; \"-\" prints it to stdout",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := setup(cmd.Context(), cfg, needState)
			defer a.Close()

			now := time.Now()
			data := transfer.Export(a.state, now)
			path := transfer.FileName(a.state.Account(), now)
			if len(args) == 1 {
				path = args[0]
			}
			if path == "-" {
				_, err := cmd.OutOrStdout().Write(data)

				return err
			}
			if err := os.WriteFile(path, data, 0o600); err != nil {
				return fmt.Errorf("could not write backup: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "backup written to %s\n", path)

			return nil
		},
	}

	return cmd
}

func importCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file|->",
		Short: "Merges a backup into the lists and options",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readFile(args[0])
			if err != nil {
				return fmt.Errorf("could not read backup: %w", err)
			}

			a := setup(cmd.Context(), cfg, needState)
			defer a.Close()

			report, err := transfer.Import(cmd.Context(), a.state, data)
			if err != nil {
				return err
			}

			return writeJSON(cmd.OutOrStdout(), report)
		},
	}

	return cmd
}
