package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/vagueame/galaxyterm/internal/client/auth"
	"github.com/vagueame/galaxyterm/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and drives the auth form through a login
// attempt. On rejection the server message is shown and the form state
// keeps the email for another try; this handler closes it anyway since
// the REPL re-prompts on the next "login" command.
//
// The password byte slice is securely wiped before returning.
func (a *App) Login(ctx context.Context) error {
	if a.isLoggedIn() {
		printlnFn("Already logged in as", a.userName)
		return nil
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	return a.submitAuth(ctx, auth.ModeLogin, "", email, password)
}

// Signup prompts for a username, email and password and attempts to
// create an account. A conflict with an existing account names the
// colliding field.
func (a *App) Signup(ctx context.Context) error {
	if a.isLoggedIn() {
		printlnFn("Already logged in as", a.userName)
		return nil
	}

	name, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	return a.submitAuth(ctx, auth.ModeSignup, name, email, password)
}

// submitAuth feeds the collected fields into the auth overlay and
// reports the outcome. The overlay owns the state transitions; this
// only translates them to terminal output.
func (a *App) submitAuth(ctx context.Context, mode auth.Mode, name, email string, password []byte) error {
	if err := a.overlay.Open(mode); err != nil {
		return err
	}
	if mode == auth.ModeSignup {
		if err := a.overlay.SetName(name); err != nil {
			return err
		}
	}
	if err := a.overlay.SetEmail(email); err != nil {
		return err
	}
	if err := a.overlay.SetPassword(password); err != nil {
		return err
	}

	err := a.overlay.Submit(ctx)
	if err != nil {
		if errors.Is(err, auth.ErrMissingFields) {
			printlnFn("All fields are required.")
		} else {
			printlnFn("Error:", err.Error())
		}
		_ = a.overlay.Close()
		return err
	}

	if a.overlay.State() == auth.StateClosed && a.isLoggedIn() {
		printlnFn("Success! Logged in as", a.userName)
		return nil
	}

	// Rejected by the server: the form is back open with the reason.
	draft := a.overlay.Draft()
	if draft.ConflictField != "" {
		printlnFn(fmt.Sprintf("%s (already taken: %s)", draft.Message, draft.ConflictField))
	} else if draft.Message != "" {
		printlnFn(draft.Message)
	}
	_ = a.overlay.Close()
	return nil
}

// Logout drops the server session and all local state. Local cleanup
// happens even when the server call fails.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Not logged in.")
		return nil
	}
	a.store.Clear(ctx)
	a.userName = ""
	printlnFn("Logged out.")
	return nil
}
