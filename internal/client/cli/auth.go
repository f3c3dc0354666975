package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/hotelbook/internal/client/client"
	"github.com/dmitrijs2005/hotelbook/internal/client/session"
	"github.com/dmitrijs2005/hotelbook/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

var errCommandFailed = errors.New("command failed")

// Register prompts for name, email and password and creates an account.
// On success the new session is stored.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	return a.report(a.session.Register(ctx, name, email, string(password)))
}

// Login prompts for credentials and signs in.
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

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	return a.report(a.session.Login(ctx, email, string(password)))
}

// Logout forgets the local session. The token itself stays valid on the
// server until it expires.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		fmt.Fprintf(a.out, "Logout failed: %v\n", err)
		return err
	}
	fmt.Fprintln(a.out, session.MsgLoggedOut)
	return nil
}

// Status prints the local session state without contacting the server.
func (a *App) Status(ctx context.Context) error {
	if !a.session.IsAuthenticated() {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}
	if u := a.session.User(); u != nil {
		fmt.Fprintf(a.out, "Logged in as %s <%s>\n", u.Name, u.Email)
	} else {
		fmt.Fprintln(a.out, "Logged in")
	}
	if a.Mode != "" {
		fmt.Fprintf(a.out, "Mode: %s\n", a.Mode)
	}
	return nil
}

// Whoami asks the server who the stored token belongs to. A rejected token
// is reported but the session is kept.
func (a *App) Whoami(ctx context.Context) error {
	token := a.session.Token()
	if token == "" {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	u, err := a.api.Me(ctx, token)
	a.trackMode(err)
	if err != nil {
		fmt.Fprintf(a.out, "whoami failed: %v\n", err)
		if errors.Is(err, client.ErrUnauthorized) {
			fmt.Fprintln(a.out, "Session rejected by the server, please log in again")
		}
		return err
	}
	fmt.Fprintf(a.out, "%s <%s> (id %s)\n", u.Name, u.Email, u.ID)
	return nil
}

// Ping checks that the server answers.
func (a *App) Ping(ctx context.Context) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	err := a.api.Ping(ctx)
	a.trackMode(err)
	if err != nil {
		fmt.Fprintf(a.out, "Server unavailable: %v\n", err)
		return err
	}
	fmt.Fprintln(a.out, "Server is up")
	return nil
}

func (a *App) report(res session.Result) error {
	if res.Success {
		a.setMode(ModeOnline)
		fmt.Fprintln(a.out, res.Message)
		return nil
	}
	fmt.Fprintln(a.out, res.Message)
	if res.Error != "" {
		fmt.Fprintf(a.out, "Error: %s\n", res.Error)
	}
	return errCommandFailed
}
