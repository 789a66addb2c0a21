package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/argentbank/argentctl/internal/client/session"
	"github.com/argentbank/argentctl/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts the user for credentials and tries to authenticate.
//
// On success it prints a greeting. On failure it prints the backend's own
// error message (taken from the session projection) rather than the raw Go
// error. The password byte slice is wiped before returning. If a login is
// already in flight, the attempt is reported and dropped.
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

	err = a.session.Login(ctx, email, string(password))
	if err != nil {
		if errors.Is(err, session.ErrOperationPending) {
			fmt.Fprintln(a.out, "A login attempt is already in progress")
			return err
		}
		fmt.Fprintf(a.out, "Login failed: %s\n", a.session.Current().LastError)
		return err
	}

	fmt.Fprintln(a.out, "Logged in")
	return nil
}

// Logout clears the stored credential and resets the session. It always
// succeeds locally; no backend call is involved.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	fmt.Fprintln(a.out, "Logged out")
	return nil
}
