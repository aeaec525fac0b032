package main

import (
	"errors"
	"fmt"
	"unfollower/internal/config"
	"unfollower/pkg/domain"
	"unfollower/pkg/logger"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// errAborted is returned when the confirmation is declined.
var errAborted = errors.New("aborted")

func unfollowCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unfollow",
		Short: "Scans, then unfollows everyone who does not follow back and is not an exception",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			yes, _ := cmd.Flags().GetBool("yes")

			ctx, stop := interruptible(cmd.Context())
			defer stop()

			a := setup(ctx, cfg, needBrowser)
			defer a.Close()

			res, err := a.engine.Scan(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(res.FilteredCandidates) == 0 {
				_, _ = fmt.Fprintln(out, "nothing to unfollow")

				return nil
			}
			printUsers(out, "to unfollow", res.FilteredCandidates)

			if !yes {
				confirmed := false
				err := huh.NewConfirm().
					Title(fmt.Sprintf("Unfollow %d accounts?", len(res.FilteredCandidates))).
					Affirmative("Unfollow").
					Negative("Cancel").
					Value(&confirmed).
					Run()
				if err != nil {
					return fmt.Errorf("could not ask for confirmation: %w", err)
				}
				if !confirmed {
					return errAborted
				}
			}

			result, err := a.engine.Unfollow(ctx, func(p domain.Progress) {
				_, _ = fmt.Fprintf(out, "[%d/%d] %s (ok %d, failed %d)\n", p.Done, p.Total, p.Current, p.Succeeded, p.Failed)
			})
			_, _ = fmt.Fprintf(out, "\nunfollowed %d, failed %d\n", result.Succeeded, result.Failed)
			if err != nil {
				logger.Warn(ctx, "unfollow batch stopped early", zap.Error(err))

				return err
			}

			return nil
		},
	}

	cmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")

	return cmd
}
