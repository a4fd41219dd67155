package cli

import (
	"context"
	"errors"
	"os"

	"github.com/smazurs/peerpoint/internal/client/guard"
	"github.com/smazurs/peerpoint/internal/client/models"
	"github.com/smazurs/peerpoint/internal/client/notices"
	"github.com/smazurs/peerpoint/internal/common"
)

// getSimpleText, getPassword and getMultiline are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword
var getMultiline = GetMultiline
var getCSV = GetCSV

// loginForm prompts for credentials and delegates to the session manager.
// Failures are reported through notices, so the form only surfaces errors
// the manager does not translate (such as a login already in flight).
// Success lands on the dashboard.
func (a *App) loginForm(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.manager.Login(ctx, email, string(password)); err != nil {
		if errors.Is(err, common.ErrOperationInFlight) {
			printlnFn("A sign-in is already in progress.")
			return nil
		}
		a.log.Warn(ctx, "login failed", "error", err)
		return nil
	}

	return a.Open(ctx, guard.PathDashboard)
}

// signupForm collects the registration fields and delegates to the session
// manager, which validates email and password before touching the network.
func (a *App) signupForm(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter your name", os.Stdout)
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

	college, err := getSimpleText(a.reader, "Enter college", os.Stdout)
	if err != nil {
		return err
	}
	role, err := getSimpleText(a.reader, "Role (junior/senior)", os.Stdout)
	if err != nil {
		return err
	}
	if role == "" {
		role = string(models.RoleJunior)
	}
	year, err := getSimpleText(a.reader, "Enter year of study", os.Stdout)
	if err != nil {
		return err
	}
	department, err := getSimpleText(a.reader, "Enter department", os.Stdout)
	if err != nil {
		return err
	}

	reg := models.Registration{
		Name:       name,
		Email:      email,
		Password:   string(password),
		College:    college,
		Role:       models.Role(role),
		Year:       year,
		Department: department,
	}

	if err := a.manager.Signup(ctx, reg); err != nil {
		if errors.Is(err, common.ErrValidation) {
			printlnFn("Check the email address and use a password of at least 6 characters.")
			return nil
		}
		if errors.Is(err, common.ErrOperationInFlight) {
			printlnFn("A sign-up is already in progress.")
			return nil
		}
		a.log.Warn(ctx, "signup failed", "error", err)
		return nil
	}

	return a.Open(ctx, guard.PathDashboard)
}

// forgotForm requests a password reset link. The response is deliberately
// the same whether or not the address exists.
func (a *App) forgotForm(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.api.RequestPasswordReset(ctx, email); err != nil {
		a.log.Warn(ctx, "password reset request failed", "error", err)
		a.bus.Raise("Could not reach the server. Try again later.", notices.KindError)
		return nil
	}

	a.bus.Raise("If that address is registered, a reset link is on its way.", notices.KindInfo)
	return nil
}
