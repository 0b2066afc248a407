package main

import (
	"context"
	"fmt"

	"github.com/nightorbs/flixctl/internal/shared"
	"github.com/urfave/cli/v3"
)

// ProfileShow fetches and displays the logged-in profile.
func (r *Runner) ProfileShow(ctx context.Context, cmd *cli.Command) error {
	profile, err := r.catalog.User(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(profile, cmd.Bool("pretty"))
	}

	r.writePlainHeader(profile.Username)
	if profile.Email != "" {
		r.writePlain("Email: %s\n", profile.Email)
	}
	if profile.Birthday != "" {
		r.writePlain("Birthday: %s\n", profile.Birthday)
	}

	return nil
}

// ProfileUpdate resubmits the full profile with any changed fields applied.
func (r *Runner) ProfileUpdate(ctx context.Context, cmd *cli.Command) error {
	current, err := r.catalog.User(ctx)
	if err != nil {
		return err
	}

	updated := *current
	updated.Password = cmd.String("password")
	if email := cmd.String("email"); email != "" {
		updated.Email = email
	}
	if birthday := cmd.String("birthday"); birthday != "" {
		updated.Birthday = birthday
	}

	if err := updated.Validate(); err != nil {
		return err
	}

	r.logger.Infof("updating profile %v", updated.Username)

	result, err := r.catalog.UpdateUser(ctx, updated)
	if err != nil {
		return fmt.Errorf("profile update failed: %w", err)
	}

	r.writePlain("✓ Profile updated\n")
	r.writePlain("Username: %s\n", result.Username)
	if result.Email != "" {
		r.writePlain("Email: %s\n", result.Email)
	}

	return nil
}

// ProfileDelete deletes the account and clears the local session.
func (r *Runner) ProfileDelete(ctx context.Context, cmd *cli.Command) error {
	if !cmd.Bool("yes") {
		return fmt.Errorf("%w: pass --yes to confirm account deletion", shared.ErrMissingArgument)
	}

	r.logger.Warn("deleting account")

	confirmation, err := r.flow.DeleteAccount(ctx)
	if err != nil {
		// The session is cleared either way, so report the remote failure
		// without leaving the user in a half-logged-in state.
		r.writePlain("⚠ Session cleared, but the delete request failed: %v\n", err)
		return nil
	}

	if confirmation != "" {
		r.writePlain("%s\n", confirmation)
	}
	r.writePlain("✓ Account deleted and session cleared\n")
	return nil
}
