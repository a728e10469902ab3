// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package controller

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/danielhkuo/lectern/client"
	"github.com/danielhkuo/lectern/models"
)

// Gate fetches the signed-in profile and enforces that its role matches the
// one this process was started for. A 401 from the backend surfaces as
// *models.AuthError; a role mismatch as *models.PermissionError.
func Gate(ctx context.Context, api *client.Client, required models.Role) (models.User, error) {
	user, err := api.Profile(ctx)
	if err != nil {
		return models.User{}, err
	}

	role, err := models.ParseRole(user.Role)
	if err != nil {
		return models.User{}, fmt.Errorf("profile carries unknown role %q: %w", user.Role, err)
	}
	if role != required {
		return models.User{}, &models.PermissionError{
			Message: fmt.Sprintf("signed in as %s (%s), but this client was started for %s", user.DisplayName(), role, required),
		}
	}

	slog.Info("signed in", "user", user.Username, "role", role.String())
	return user, nil
}
