package cli

import (
	"context"

	"github.com/nutrilog/client-go/internal/common"
)

// Login prompts for credentials and establishes a session.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	state, err := a.resolver.SignIn(ctx, email, password)
	if err != nil {
		return err
	}

	a.printState(state)
	return nil
}
