package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"unfollower/internal/config"
	"unfollower/pkg/domain"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

// interruptible returns a context cancelled on SIGINT or SIGTERM.
func interruptible(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
}

func scanCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Compares followers with following and lists who does not follow back",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")
			all, _ := cmd.Flags().GetBool("all")

			ctx, stop := interruptible(cmd.Context())
			defer stop()

			a := setup(ctx, cfg, needScan)
			defer a.Close()

			res, err := a.engine.Scan(ctx)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			printScan(cmd.OutOrStdout(), res, all)

			return nil
		},
	}

	cmd.Flags().Bool("json", false, "Print the full scan result as JSON")
	cmd.Flags().Bool("all", false, "Also list fans and every candidate, not only the filtered ones")

	return cmd
}

func printScan(w io.Writer, res *domain.ScanResult, all bool) {
	for _, row := range []struct {
		label string
		n     int
	}{
		{"followers", len(res.Followers)},
		{"following", len(res.Following)},
		{"fans", len(res.Fans)},
		{"don't follow back", len(res.DontFollowBack)},
		{"to unfollow", len(res.FilteredCandidates)},
	} {
		_, _ = fmt.Fprintf(w, "%-18s %d\n", row.label+":", row.n)
	}
	if all {
		printUsers(w, "fans", res.Fans)
		printUsers(w, "candidates", res.CandidatesToUnfollow)
	}
	printUsers(w, "to unfollow", res.FilteredCandidates)
}

func printUsers(w io.Writer, title string, users []domain.Username) {
	if len(users) == 0 {
		return
	}
	_, _ = fmt.Fprintf(w, "\n%s:\n", title)
	for _, u := range users {
		_, _ = fmt.Fprintf(w, "  %s\n", u)
	}
}

func writeJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(b))

	return err
}

func readFile(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}

	return os.ReadFile(path) //nolint: gosec
}
