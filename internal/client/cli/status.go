package cli

import (
	"context"
	"fmt"

	"github.com/nutrilog/client-go/internal/client/session"
)

// Status prints the published session state.
func (a *App) Status() {
	a.printState(a.resolver.Current())
}

// Steps prints per-step onboarding completion.
func (a *App) Steps() {
	state := a.resolver.Current()
	if !state.Authenticated() {
		fmt.Fprintln(a.out, "Not signed in.")
		return
	}

	done := make(map[session.Step]bool, len(state.CompletedSteps))
	for _, s := range state.CompletedSteps {
		done[s] = true
	}
	for _, s := range session.Steps {
		mark := " "
		if done[s] {
			mark = "x"
		}
		fmt.Fprintf(a.out, "  [%s] %s\n", mark, s)
	}
}

// CompleteOnboarding triggers the explicit finalization action.
func (a *App) CompleteOnboarding(ctx context.Context) error {
	state, err := a.resolver.FinalizeOnboarding(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Onboarding complete.")
	a.printState(state)
	return nil
}
