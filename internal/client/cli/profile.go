package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/argentbank/argentctl/internal/common"
	"github.com/argentbank/argentctl/internal/jwtx"
)

// Profile fetches the profile from the backend and prints the display name.
// Without a stored credential it reports "not logged in" and makes no call.
func (a *App) Profile(ctx context.Context) error {
	err := a.session.FetchProfile(ctx)
	if err != nil {
		if errors.Is(err, common.ErrMissingCredential) {
			fmt.Fprintln(a.out, "Not logged in")
			return err
		}
		fmt.Fprintf(a.out, "Could not fetch profile: %s\n", a.session.Current().LastError)
		return err
	}

	s := a.session.Current()
	fmt.Fprintf(a.out, "Welcome back, %s!\n", s.DisplayName())
	return nil
}

// EditName prompts for a new first and last name and writes them to the
// backend. On failure the cached profile stays as it was.
func (a *App) EditName(ctx context.Context) error {
	firstName, err := getSimpleText(a.reader, "Enter first name", a.out)
	if err != nil {
		return err
	}
	lastName, err := getSimpleText(a.reader, "Enter last name", a.out)
	if err != nil {
		return err
	}

	err = a.session.UpdateProfile(ctx, firstName, lastName)
	if err != nil {
		if errors.Is(err, common.ErrMissingCredential) {
			fmt.Fprintln(a.out, "Not logged in")
			return err
		}
		fmt.Fprintf(a.out, "Could not update profile: %s\n", a.session.Current().LastError)
		return err
	}

	fmt.Fprintf(a.out, "Name updated to %s %s\n", firstName, lastName)
	return nil
}

// WhoAmI decodes the stored credential locally and prints its claims.
// No network call is made. An undecodable credential is reported as
// "claims unavailable" and left intact.
func (a *App) WhoAmI(ctx context.Context) error {
	credential, err := a.tokens.Load(ctx)
	if err != nil || credential == "" {
		fmt.Fprintln(a.out, "Not logged in")
		return common.ErrMissingCredential
	}

	claims, err := jwtx.Decode(credential)
	if err != nil {
		fmt.Fprintln(a.out, "Claims unavailable: credential could not be decoded")
		return err
	}

	fmt.Fprintf(a.out, "Subject: %s\n", claims.SubjectID())
	if claims.IssuedAt != nil {
		fmt.Fprintf(a.out, "Issued:  %s\n", claims.IssuedAt.Format(time.RFC3339))
	}
	if claims.ExpiresAt != nil {
		fmt.Fprintf(a.out, "Expires: %s\n", claims.ExpiresAt.Format(time.RFC3339))
	}
	return nil
}

// Status prints the current session projection.
func (a *App) Status(ctx context.Context) error {
	s := a.session.Current()
	fmt.Fprintf(a.out, "Status:        %s\n", s.Status)
	fmt.Fprintf(a.out, "Authenticated: %t\n", s.Authenticated)
	if s.HasProfile {
		fmt.Fprintf(a.out, "Name:          %s\n", s.DisplayName())
	}
	if s.LastError != "" {
		fmt.Fprintf(a.out, "Last error:    %s\n", s.LastError)
	}
	return nil
}
