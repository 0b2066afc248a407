package main

import (
	"context"
	"fmt"

	"github.com/nightorbs/flixctl/internal/models"
	"github.com/nightorbs/flixctl/internal/shared"
	"github.com/urfave/cli/v3"
)

// AuthRegister creates a new account, then logs in with the submitted credentials.
func (r *Runner) AuthRegister(ctx context.Context, cmd *cli.Command) error {
	profile := models.UserProfile{
		Username: cmd.String("username"),
		Password: cmd.String("password"),
		Email:    cmd.String("email"),
		Birthday: cmd.String("birthday"),
	}

	r.logger.Infof("registering account %v", profile.Username)

	created, err := r.flow.Register(ctx, profile)
	if err != nil {
		if created != nil {
			r.writePlain("✓ Account created: %s\n", created.Username)
			r.writePlain("⚠ Automatic login failed, run 'flixctl auth login' manually\n")
			return nil
		}
		return fmt.Errorf("registration failed: %w", err)
	}

	r.writePlain("✓ Account created: %s\n", created.Username)
	r.writePlain("✓ Logged in\n")
	return nil
}

// AuthLogin logs in and persists the session token and username together.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	username := cmd.String("username")

	r.logger.Infof("logging in as %v", username)

	profile, err := r.flow.Login(ctx, username, cmd.String("password"))
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	r.writePlain("✓ Logged in as %s\n", profile.Username)
	return nil
}

// AuthLogout clears the stored session without calling the catalog.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if err := r.flow.Logout(); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}

	r.writePlain("✓ Logged out\n")
	return nil
}

// AuthStatus reports whether a complete session is stored locally.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	if !r.flow.Authenticated() {
		r.writePlain("✗ Not logged in\n")
		return nil
	}

	current, err := r.sessions.Current()
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrSessionStore, err)
	}

	r.writePlain("✓ Logged in as %s\n", current.Username)
	return nil
}

// AuthWhoami fetches the logged-in profile from the catalog.
func (r *Runner) AuthWhoami(ctx context.Context, cmd *cli.Command) error {
	profile, err := r.catalog.User(ctx)
	if err != nil {
		return err
	}

	return r.writePlain("%s\n", profile.Username)
}
