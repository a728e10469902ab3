// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/danielhkuo/lectern/client"
	"github.com/danielhkuo/lectern/cliparse"
	"github.com/danielhkuo/lectern/controller"
	"github.com/danielhkuo/lectern/display"
	"github.com/danielhkuo/lectern/models"
)

func main() {
	// .env is optional; flags and real environment win over it
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	role, err := models.ParseRole(cfg.Role)
	if err != nil {
		slog.Error("Invalid role", "error", err)
		os.Exit(1)
	}

	api, err := client.New(cfg.BaseURL, cfg.HTTPTimeout)
	if err != nil {
		slog.Error("client setup failed", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		cancel()
	}()

	term := display.NewTerminal(os.Stdout)

	user, err := controller.Gate(ctx, api, role)
	if err != nil {
		var permErr *models.PermissionError
		var authErr *models.AuthError
		switch {
		case errors.As(err, &authErr):
			slog.Error("Not signed in", "error", err)
		case errors.As(err, &permErr):
			slog.Error("Role mismatch", "error", err)
		default:
			slog.Error("Profile check failed", "error", err)
		}
		os.Exit(1)
	}
	term.Notify("signed in as " + user.DisplayName() + " (" + role.String() + ")")

	switch role {
	case models.RoleListener:
		err = controller.NewListener(api, term, cfg).Run(ctx, os.Stdin)
	case models.RoleSpeaker:
		err = controller.NewSpeaker(api, term).Run(ctx, os.Stdin)
	case models.RoleOrganizer:
		err = controller.NewOrganizer(api, term).Run(ctx, os.Stdin)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("Session ended", "error", err)
		os.Exit(1)
	}

	// Log out even when the context was canceled by Ctrl-C
	logoutCtx, logoutCancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer logoutCancel()
	if err := api.Logout(logoutCtx); err != nil {
		slog.Warn("logout failed", "error", err)
	}
	slog.Info("Goodbye")
}
