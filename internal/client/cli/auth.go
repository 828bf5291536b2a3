package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/contactbook/internal/client/forms"
	"github.com/dmitrijs2005/contactbook/internal/client/services"
	"github.com/dmitrijs2005/contactbook/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

const (
	msgInvalidCredentials = "Invalid email or password. Please try again."
	msgEmailTaken         = "Email already exists. Please choose a different email."
)

// printErrors shows validation messages inline.
func (a *App) printErrors(errs forms.ValidationErrors) {
	for _, m := range errs.List() {
		fmt.Fprintln(a.out, m)
	}
}

// SignUp shows the sign-up screen and registers an account. On success the
// user is sent to sign in; validation and duplicate-email problems are
// printed and leave the user on the screen.
func (a *App) SignUp(ctx context.Context) error {
	nav, err := a.navigate(ctx, services.PathSignUp)
	if err != nil {
		return err
	}
	if nav.Route.Path != services.PathSignUp {
		return nil
	}

	var f forms.SignUpForm
	if f.Email, err = getSimpleText(a.reader, "Enter email", a.out); err != nil {
		return err
	}
	if f.Password, err = getPassword(a.reader, "Enter password", a.out); err != nil {
		return err
	}
	if f.ConfirmPassword, err = getPassword(a.reader, "Confirm password", a.out); err != nil {
		return err
	}

	if errs := forms.Validate(f); errs != nil {
		a.printErrors(errs)
		return errs
	}

	ok, err := a.dir.SignUp(ctx, f.Email, f.Password)
	if err != nil {
		a.logger.Error(ctx, "sign up failed", "error", err)
		fmt.Fprintln(a.out, "error:", err)
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, msgEmailTaken)
		return common.ErrorAlreadyExists
	}

	fmt.Fprintln(a.out, "Account created. Please sign in.")
	_, err = a.navigate(ctx, services.PathSignIn)
	return err
}

// SignIn shows the sign-in screen and authenticates. When already logged in
// the navigator moves straight to the contact list instead.
func (a *App) SignIn(ctx context.Context) error {
	nav, err := a.navigate(ctx, services.PathSignIn)
	if err != nil {
		return err
	}
	if nav.Route.Path != services.PathSignIn {
		return nil
	}

	var f forms.SignInForm
	if f.Email, err = getSimpleText(a.reader, "Enter email", a.out); err != nil {
		return err
	}
	if f.Password, err = getPassword(a.reader, "Enter password", a.out); err != nil {
		return err
	}

	if errs := forms.Validate(f); errs != nil {
		a.printErrors(errs)
		return errs
	}

	ok, err := a.dir.SignIn(ctx, f.Email, f.Password)
	if err != nil {
		a.logger.Error(ctx, "sign in failed", "error", err)
		fmt.Fprintln(a.out, "error:", err)
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, msgInvalidCredentials)
		return common.ErrorInvalidCredentials
	}

	_, err = a.navigate(ctx, services.PathContactList)
	return err
}

// Logout clears the session and returns to the sign-in screen.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.LogOut(ctx); err != nil {
		a.logger.Error(ctx, "logout failed", "error", err)
		fmt.Fprintln(a.out, "error:", err)
		return err
	}
	fmt.Fprintln(a.out, "Signed out.")
	_, err := a.navigate(ctx, services.PathSignIn)
	return err
}
