package cli

import (
	"context"
	"fmt"
)

// Logout clears cached credentials and publishes the unauthenticated state.
func (a *App) Logout(ctx context.Context) {
	a.resolver.SignOut(ctx)
	fmt.Fprintln(a.out, "Signed out.")
}
