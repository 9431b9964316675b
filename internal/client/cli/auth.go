package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/vidtube/internal/client/client"
	"github.com/dmitrijs2005/vidtube/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for an email or username and a password and opens a session.
// The password is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	identifier, err := getSimpleText(a.reader, "Enter email or username", os.Stdout)
	if err != nil {
		return err
	}
	if identifier == "" {
		fmt.Println("Username or email is required")
		return common.Validation("username or email is required")
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.authService.Login(ctx, identifier, password)
	if err != nil {
		if errors.Is(err, client.ErrUnavailable) {
			a.setMode(ModeOffline)
		}
		log.Printf("Login unsuccessful: %v", err)
		return err
	}

	a.userName = u.Username
	fmt.Printf("Logged in as %s\n", u.Username)
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	u, err := a.authService.WhoAmI(ctx)
	if err != nil {
		a.report("Cannot fetch current user", err)
		return err
	}

	a.userName = u.Username
	fmt.Printf("%s <%s> %s\n", u.Username, u.Email, u.FullName)
	return nil
}

func (a *App) Refresh(ctx context.Context) error {
	if err := a.authService.Refresh(ctx); err != nil {
		a.report("Token refresh failed", err)
		return err
	}
	fmt.Println("Session refreshed")
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		a.report("Logout failed", err)
		return err
	}
	a.userName = ""
	fmt.Println("Logged out")
	return nil
}

// report logs err and drops the local user name once the session is gone.
func (a *App) report(what string, err error) {
	switch {
	case errors.Is(err, client.ErrUnavailable):
		a.setMode(ModeOffline)
		log.Printf("%s: server unavailable", what)
	case errors.Is(err, client.ErrNotLoggedIn), errors.Is(err, client.ErrUnauthorized):
		a.userName = ""
		log.Printf("%s: %v", what, err)
	default:
		log.Printf("%s: %v", what, err)
	}
}
