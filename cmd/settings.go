package main

import (
	"fmt"
	"unfollower/internal/config"

	"github.com/spf13/cobra"
)

func optionsCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "options",
		Short: "Prints the account options, or changes the ones given as flags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := setup(cmd.Context(), cfg, needState)
			defer a.Close()

			opts := a.state.Options()
			flags := cmd.Flags()
			changed := false
			if flags.Changed("concurrency") {
				opts.Concurrency, _ = flags.GetInt("concurrency")
				changed = true
			}
			if flags.Changed("scan-timeout") {
				d, _ := flags.GetDuration("scan-timeout")
				opts.ScanTimeoutMs = int(d.Milliseconds())
				changed = true
			}
			if flags.Changed("click-delay") {
				d, _ := flags.GetDuration("click-delay")
				opts.ClickDelayMs = int(d.Milliseconds())
				changed = true
			}
			if flags.Changed("block-refollow") {
				opts.BlockReFollow, _ = flags.GetBool("block-refollow")
				changed = true
			}
			if changed {
				saved, err := a.engine.SaveOptions(cmd.Context(), opts)
				if err != nil {
					return err
				}
				opts = saved
			}

			return writeJSON(cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().Int("concurrency", 0, "Unfollow workers, clamped to 1..6")
	cmd.Flags().Duration("scan-timeout", 0, "Timeout of one listing page fetch")
	cmd.Flags().Duration("click-delay", 0, "Wait after clicking unfollow before checking the outcome")
	cmd.Flags().Bool("block-refollow", true, "Block following accounts on the unfollowed list again")

	return cmd
}

func guardCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:       "guard on|off",
		Short:     "Turns the follow guard on or off",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"on", "off"},
		RunE: func(cmd *cobra.Command, args []string) error {
			a := setup(cmd.Context(), cfg, needState)
			defer a.Close()

			opts, err := a.engine.SetGuard(cmd.Context(), args[0] == "on")
			if err != nil {
				return err
			}
			state := "off"
			if opts.BlockReFollow {
				state = "on"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "follow guard %s\n", state)

			return nil
		},
	}

	return cmd
}

func uiCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Controls the shared control surface flag",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "toggle",
		Short: "Opens the control surface in every live view, or closes it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := setup(cmd.Context(), cfg, needState)
			defer a.Close()

			open, err := a.engine.ToggleUI(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "control surface open: %t\n", open)

			return nil
		},
	})

	return cmd
}
