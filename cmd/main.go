// Package main provides the CLI entrypoint for the Letterboxd unfollower.
// It wires subcommands, loads configuration, and initializes logging.
package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"os"
	"strings"
	"unfollower/internal/config"
	"unfollower/pkg/logger"
	"unfollower/pkg/serrors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// main sets up the root Cobra command, loads configuration and logging, and
// registers subcommands before executing the CLI.
func main() {
	rootCmd := &cobra.Command{
		Use:          "unfollower",
		Short:        "Finds and unfollows Letterboxd accounts that do not follow back",
		SilenceUsage: true,
	}

	// there is no way to access flags before command execution in cobra.
	// configPath here is parsed using the standard flags package.
	// following line is just added to prevent errors when Cobra is parsing the flags.
	rootCmd.PersistentFlags().StringP("config", "c", "config.yml", "Config File Path")

	fs := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	configPath := fs.String("c", "config.yml", "The config file path")
	_ = fs.Parse(configArgs(os.Args[1:]))

	log.Println("loading config ...")
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("could not load config file: ", err)
	}

	logger.Setup(cfg.Environment)

	ctx := context.Background()

	defer func() {
		if p := recover(); p != nil {
			logger.Error(ctx, "captured panic, exiting...", zap.Any("panic", p))
			logger.Sync()

			panic(p)
		}
	}()

	rootCmd.AddCommand(
		migrateCommand(cfg),
		serveCommand(cfg),
		scanCommand(cfg),
		unfollowCommand(cfg),
		exceptionsCommand(cfg),
		unfollowedCommand(cfg),
		optionsCommand(cfg),
		guardCommand(cfg),
		uiCommand(cfg),
		exportCommand(cfg),
		importCommand(cfg),
		watchCommand(cfg),
		JWTCommand(cfg),
	)

	err = rootCmd.Execute()
	logger.Sync()
	if err != nil {
		os.Exit(exitCode(err)) //nolint: gocritic
	}
}

// Exit codes by error kind.
const (
	exitFailure     = 1
	exitRefused     = 2
	exitUnavailable = 3
	exitDenied      = 4
	exitAborted     = 130
)

func exitCode(err error) int {
	if errors.Is(err, errAborted) {
		return exitAborted
	}
	switch serrors.KindOf(err) {
	case serrors.ErrBadRequest, serrors.ErrConflict, serrors.ErrNotFound:
		return exitRefused
	case serrors.ErrTimeout, serrors.ErrUnavailable, serrors.ErrRateLimited:
		return exitUnavailable
	case serrors.ErrUnauthorized, serrors.ErrForbidden:
		return exitDenied
	default:
		return exitFailure
	}
}

// configArgs picks the -c/--config flag out of args so the standard flag
// package does not choke on subcommands and their flags.
func configArgs(args []string) []string {
	for i, a := range args {
		switch {
		case a == "-c" || a == "--config":
			if i+1 < len(args) {
				return []string{"-c", args[i+1]}
			}
		case strings.HasPrefix(a, "-c="):
			return []string{a}
		case strings.HasPrefix(a, "--config="):
			return []string{"-c=" + strings.TrimPrefix(a, "--config=")}
		}
	}

	return nil
}
