package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unfollower/internal/config"
	"unfollower/internal/engine"
	"unfollower/internal/guard"
	"unfollower/pkg/browser"
	"unfollower/pkg/domain"
	"unfollower/pkg/letterboxd"
	"unfollower/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// consoleSurface reports the shared control surface flag on the terminal.
type consoleSurface struct{ w io.Writer }

func (s consoleSurface) Open()  { _, _ = fmt.Fprintln(s.w, "control surface opened") }
func (s consoleSurface) Close() { _, _ = fmt.Fprintln(s.w, "control surface closed") }

const watchHelp = `commands:
  except     add the profile on screen to the exceptions
  unexcept   remove it from the exceptions
  mark       add it to the unfollowed list (blocks re-following)
  unmark     remove it from the unfollowed list
  guard      flip the follow guard
  ui         toggle the control surface
  quit       close the view`

func watchCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [url]",
		Short: "Opens a guarded browser tab that blocks re-following unfollowed accounts",
		Long: "Opens a visible browser tab on the given page, or on the account's following list, " +
			"and keeps the follow guard applied while you browse. Commands typed on stdin act on the profile on screen.\n\n" +
			watchHelp,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := interruptible(cmd.Context())
			defer stop()

			visible := *cfg
			visible.Browser.Headless = false
			a := setup(ctx, &visible, needBrowser)
			defer a.Close()

			account := domain.Username(a.state.Account())
			pageURL := letterboxd.ProfileURL(cfg.Letterboxd.BaseURL, account) + string(domain.RelationFollowing) + "/"
			if len(args) == 1 {
				pageURL = args[0]
			}

			view, err := a.browser.OpenView(ctx, pageURL, guard.MaxDepth)
			if err != nil {
				return fmt.Errorf("could not open %s: %w", pageURL, err)
			}
			defer func() { _ = view.Close() }()

			return runWatch(ctx, a, view, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	return cmd
}

func runWatch(ctx context.Context, a *app, view *browser.View, in io.Reader, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.state.SetSurface(consoleSurface{w: out})
	if err := a.state.Watch(ctx); err != nil {
		return fmt.Errorf("could not watch state: %w", err)
	}

	g := guard.New(a.state)
	bus := guard.Attach(g, a.state, view, a.cfg.Guard.Debounce, func(err error) {
		logger.Warn(ctx, "guard pass failed", zap.Error(err))
	})

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error { return bus.Run(ctx) })
	eg.Go(func() error {
		view.Run(ctx, func(ev browser.Event) {
			switch ev.Op {
			case browser.EventReady, browser.EventStructure:
				bus.Emit(guard.SignalStructure)
			case browser.EventBlocked:
				_, _ = fmt.Fprintf(out, "blocked following %s again\n", ev.Value)
				logger.Info(ctx, "blocked a re-follow", zap.String("user", ev.Value))
			}
		})

		return nil
	})
	bus.Emit(guard.SignalStartup)

	// stdin is not cancellable; the reader goroutine is abandoned on exit
	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- strings.TrimSpace(sc.Text()):
			case <-ctx.Done():
				return
			}
		}
	}()

	_, _ = fmt.Fprintln(out, watchHelp)
loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case line, ok := <-lines:
			if !ok || line == "quit" {
				break loop
			}
			if line == "" {
				continue
			}
			msg, err := watchAction(ctx, a.engine, view, line)
			if err != nil {
				_, _ = fmt.Fprintf(out, "%s: %v\n", line, err)

				continue
			}
			_, _ = fmt.Fprintln(out, msg)
		}
	}
	cancel()

	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	return nil
}

// watchAction runs one typed command against the profile shown in view.
func watchAction(ctx context.Context, e *engine.Engine, view domain.View, line string) (string, error) {
	switch line {
	case "guard":
		opts, err := e.SetGuard(ctx, !e.State().Options().BlockReFollow)
		if err != nil {
			return "", err
		}

		return fmt.Sprintf("follow guard on: %t", opts.BlockReFollow), nil
	case "ui":
		open, err := e.ToggleUI(ctx)
		if err != nil {
			return "", err
		}

		return fmt.Sprintf("control surface open: %t", open), nil
	}

	ops := map[string]struct {
		fn   func(ctx context.Context, raw string) (domain.Username, error)
		verb string
	}{
		"except":   {e.AddException, "added %s to the exceptions"},
		"unexcept": {e.RemoveException, "removed %s from the exceptions"},
		"mark":     {e.AddUnfollowed, "added %s to the unfollowed list"},
		"unmark":   {e.RemoveUnfollowed, "removed %s from the unfollowed list"},
	}
	op, ok := ops[line]
	if !ok {
		return "", errors.New("unknown command; try one of except, unexcept, mark, unmark, guard, ui, quit")
	}
	subject, err := e.Subject(view)
	if err != nil {
		return "", err
	}
	u, err := op.fn(ctx, string(subject))
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(op.verb, u), nil
}
