package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/doctrack/internal/api"
	"github.com/dmitrijs2005/doctrack/internal/common"
)

// getSimpleText and getPassword are swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func (a *App) credentials() (string, []byte, error) {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return "", nil, err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return "", nil, err
	}
	return email, password, nil
}

func (a *App) authenticate(ctx context.Context, call func(context.Context, string, []byte) (*api.User, error), verb string) error {
	email, password, err := a.credentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := call(ctx, email, password)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s as %s (role %s)\n", verb, u.Email, u.Role)
	return nil
}

// Register creates an account and logs in with it. New accounts are viewers.
func (a *App) Register(ctx context.Context) error {
	return a.authenticate(ctx, a.client.Register, "Registered")
}

func (a *App) Login(ctx context.Context) error {
	return a.authenticate(ctx, a.client.Login, "Logged in")
}

func (a *App) Logout(ctx context.Context) error {
	a.client.Logout()
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// Me prints the stored profile. After a role change it can differ from the
// role shown in the prompt until the next login.
func (a *App) Me(ctx context.Context) error {
	u, err := a.client.Me(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "id: %d\nemail: %s\nrole: %s\n", u.ID, u.Email, u.Role)
	if cur := a.client.User(); cur != nil && cur.Role != u.Role {
		fmt.Fprintln(a.out, "Your role has changed, log in again to use it.")
	}
	return nil
}
