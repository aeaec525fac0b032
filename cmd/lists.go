package main

import (
	"context"
	"fmt"
	"strings"
	"unfollower/internal/config"
	"unfollower/internal/engine"
	"unfollower/pkg/domain"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

type (
	userOp  func(e *engine.Engine, ctx context.Context, raw string) (domain.Username, error) //nolint: revive
	usersOp func(e *engine.Engine, ctx context.Context, raw []string) (domain.Set, error)    //nolint: revive
)

// listCommands binds one persisted username list to its subcommands.
type listCommands struct {
	name    string
	current func(a *app) domain.Set
	add     userOp
	remove  userOp
	replace usersOp
}

func exceptionsCommand(cfg *config.Config) *cobra.Command {
	return newListCommand(cfg, listCommands{
		name:    "exceptions",
		current: func(a *app) domain.Set { return a.state.Exceptions() },
		add:     (*engine.Engine).AddException,
		remove:  (*engine.Engine).RemoveException,
		replace: (*engine.Engine).EditExceptions,
	}, "Accounts that are never unfollowed")
}

func unfollowedCommand(cfg *config.Config) *cobra.Command {
	cmd := newListCommand(cfg, listCommands{
		name:    "unfollowed",
		current: func(a *app) domain.Set { return a.state.Unfollowed() },
		add:     (*engine.Engine).AddUnfollowed,
		remove:  (*engine.Engine).RemoveUnfollowed,
		replace: (*engine.Engine).EditUnfollowed,
	}, "Accounts unfollowed before; the follow guard blocks following them again")

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Forgets every unfollowed account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := setup(cmd.Context(), cfg, needState)
			defer a.Close()

			if err := a.engine.ClearUnfollowed(cmd.Context()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "unfollowed list cleared")

			return nil
		},
	})

	return cmd
}

func newListCommand(cfg *config.Config, lc listCommands, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   lc.name,
		Short: short,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "Prints the " + lc.name + " list",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				a := setup(cmd.Context(), cfg, needState)
				defer a.Close()

				for _, u := range lc.current(a).Sorted() {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), u)
				}

				return nil
			},
		},
		&cobra.Command{
			Use:   "add <user|profile url>...",
			Short: "Adds accounts to the " + lc.name + " list",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return eachUser(cmd, cfg, args, lc.add, "added")
			},
		},
		&cobra.Command{
			Use:   "remove <user|profile url>...",
			Short: "Removes accounts from the " + lc.name + " list",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return eachUser(cmd, cfg, args, lc.remove, "removed")
			},
		},
		&cobra.Command{
			Use:   "edit [user...]",
			Short: "Replaces the " + lc.name + " list; without arguments opens an editor",
			RunE: func(cmd *cobra.Command, args []string) error {
				a := setup(cmd.Context(), cfg, needState)
				defer a.Close()

				raw := args
				if len(raw) == 0 {
					text := strings.Join(lc.current(a).Strings(), "\n")
					err := huh.NewText().
						Title("Edit " + lc.name).
						Description("One account per line; commas and spaces also separate.").
						Lines(15).
						Value(&text).
						Run()
					if err != nil {
						return fmt.Errorf("could not read the edited list: %w", err)
					}
					raw = splitUsers(text)
				}

				set, err := lc.replace(a.engine, cmd.Context(), raw)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d accounts\n", lc.name, len(set))

				return nil
			},
		},
	)

	return cmd
}

func eachUser(cmd *cobra.Command, cfg *config.Config, args []string, op userOp, verb string) error {
	a := setup(cmd.Context(), cfg, needState)
	defer a.Close()

	for _, raw := range args {
		u, err := op(a.engine, cmd.Context(), raw)
		if err != nil {
			return fmt.Errorf("%s: %w", raw, err)
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", verb, u)
	}

	return nil
}

// splitUsers splits free text on newlines, commas and whitespace.
func splitUsers(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ';' || r == '\n' || r == '\r' || r == ' ' || r == '\t'
	})
}
