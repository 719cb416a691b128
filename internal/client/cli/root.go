package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

func (a *App) prompt() string {
	state := a.resolver.Current()
	if state.Authenticated() {
		return fmt.Sprintf("nutrilog (%s)> ", state.Identity)
	}
	return "nutrilog> "
}

// repl reads and dispatches commands until exit or EOF.
func (a *App) repl(ctx context.Context) error {
	fmt.Fprintln(a.out, "Welcome to nutrilog (type 'help' for commands)")

	for {
		fmt.Fprint(a.out, a.prompt())
		line, err := a.reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "help":
			a.printHelp()
		case "login":
			if err := a.Login(ctx); err != nil {
				fmt.Fprintf(a.out, "login failed: %v\n", err)
			}
		case "status":
			a.Status()
		case "steps":
			a.Steps()
		case "complete":
			if err := a.CompleteOnboarding(ctx); err != nil {
				fmt.Fprintf(a.out, "cannot complete onboarding: %v\n", err)
			}
		case "logout":
			a.Logout(ctx)
		case "exit", "quit":
			return nil
		default:
			fmt.Fprintf(a.out, "unknown command %q, type 'help'\n", parts[0])
		}
	}
}

func (a *App) printHelp() {
	fmt.Fprintln(a.out, `Commands:
  login     sign in with email and password
  status    show the current session state
  steps     show onboarding step completion
  complete  finalize onboarding (all steps must be done)
  logout    sign out and clear cached credentials
  exit      quit`)
}

// withReader swaps the input reader (used by tests).
func (a *App) withReader(r *bufio.Reader) *App {
	a.reader = r
	return a
}
