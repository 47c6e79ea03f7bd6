package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/mkorotovs/pocketvine/internal/common"
	"github.com/mkorotovs/pocketvine/internal/services"
)

func (a *App) Register(ctx context.Context) {
	username, err := GetSimpleText(a.reader, "Enter username (e.g. @username)", a.out)
	if err != nil {
		return
	}
	fullname, err := GetSimpleText(a.reader, "Enter full name", a.out)
	if err != nil {
		return
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return
	}
	bio, err := GetSimpleText(a.reader, "Enter bio (optional)", a.out)
	if err != nil {
		return
	}

	_, err = a.users.Register(ctx, services.RegisterParams{
		Username: username,
		Fullname: fullname,
		Password: password,
		Bio:      bio,
	})
	switch {
	case errors.Is(err, common.ErrDuplicateUsername),
		errors.Is(err, common.ErrInvalidUsername),
		errors.Is(err, common.ErrWeakPassword):
		fmt.Fprintln(a.out, err)
		return
	case err != nil:
		a.log.Error(ctx, "registration failed", "error", err)
		return
	}

	// registration does not log in by itself
	if _, err := a.users.Login(ctx, username, password); err != nil {
		a.log.Error(ctx, "auto-login after registration failed", "error", err)
		return
	}
	fmt.Fprintf(a.out, "Welcome, %s!\n", username)
}

func (a *App) Login(ctx context.Context) {
	username, err := GetSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return
	}

	rec, err := a.users.Login(ctx, username, password)
	if errors.Is(err, common.ErrInvalidCredentials) {
		fmt.Fprintln(a.out, "Invalid username or password.")
		return
	}
	if err != nil {
		a.log.Error(ctx, "login failed", "error", err)
		return
	}
	fmt.Fprintf(a.out, "Welcome back, %s!\n", rec.Fullname)
}

func (a *App) Logout(ctx context.Context) {
	if err := a.users.Logout(ctx); err != nil {
		a.log.Error(ctx, "logout failed", "error", err)
		return
	}
	fmt.Fprintln(a.out, "Logged out.")
}

func (a *App) Whoami(ctx context.Context) {
	cu, err := a.users.CurrentUser(ctx)
	if errors.Is(err, common.ErrNotLoggedIn) {
		fmt.Fprintln(a.out, "Not logged in.")
		return
	}
	if err != nil {
		a.log.Error(ctx, "failed to load current user", "error", err)
		return
	}
	fmt.Fprintf(a.out, "%s (%s)\n", cu.Username, cu.Fullname)
}
