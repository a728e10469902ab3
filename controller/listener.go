// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package controller

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/danielhkuo/lectern/client"
	"github.com/danielhkuo/lectern/cliparse"
	"github.com/danielhkuo/lectern/display"
	"github.com/danielhkuo/lectern/quizflow"
)

// Listener is the audience-side controller: browse sessions, join one, and
// answer quizzes through the quizflow runner.
type Listener struct {
	api  *client.Client
	term *display.Terminal
	cfg  cliparse.Config
}

// NewListener wires the listener controller.
func NewListener(api *client.Client, term *display.Terminal, cfg cliparse.Config) *Listener {
	return &Listener{api: api, term: term, cfg: cfg}
}

const listenerHelp = "commands: list | join <id> | comments <quiz id> | discuss <quiz id> <text> | quit"

func (l *Listener) runnerConfig() quizflow.RunnerConfig {
	return quizflow.RunnerConfig{
		Flow:              quizflow.Config{AutoSubmitOnTimeout: l.cfg.AutoSubmitOnTimeout},
		PollInterval:      l.cfg.PollInterval,
		DwellTime:         l.cfg.DwellTime,
		ActivationDelay:   l.cfg.ActivationDelay,
		AutoActivate:      l.cfg.AutoActivate,
		UseSubmitEndpoint: l.cfg.UseSubmitEndpoint,
	}
}

// Run reads commands from in until EOF or "quit". While a session is joined,
// quiz commands are forwarded to the runner; everything else is handled here.
func (l *Listener) Run(ctx context.Context, in io.Reader) error {
	l.showSessions(ctx)
	l.term.Notify(listenerHelp)

	var (
		commands chan quizflow.Command
		runDone  chan error
	)
	inSession := func() bool { return commands != nil }
	endSession := func() {
		close(commands)
		if err := <-runDone; err != nil && ctx.Err() == nil {
			l.term.Notify(err.Error())
		}
		commands, runDone = nil, nil
	}

	lines := readLines(in)
	for {
		var line string
		select {
		case <-ctx.Done():
			if inSession() {
				endSession()
			}
			return ctx.Err()
		case raw, ok := <-lines:
			if !ok {
				if inSession() {
					endSession()
				}
				return nil
			}
			line = strings.TrimSpace(raw)
		}

		if inSession() {
			cmd, ok := display.ParseCommand(line)
			if !ok {
				if line != "" {
					l.term.Notify("type a/b/c/d to select, 'submit' to answer, 'leave' to exit the session")
				}
				continue
			}
			if cmd.Kind == quizflow.CmdLeave {
				endSession()
				l.showSessions(ctx)
				continue
			}
			select {
			case commands <- cmd:
			case err := <-runDone:
				// Runner already exited on its own.
				if err != nil && ctx.Err() == nil {
					l.term.Notify(err.Error())
				}
				commands, runDone = nil, nil
				l.showSessions(ctx)
			}
			continue
		}

		word, rest := splitCommand(line)
		switch word {
		case "":
		case "help":
			l.term.Notify(listenerHelp)
		case "list":
			l.showSessions(ctx)
		case "q", "quit", "logout":
			return nil
		case "join":
			id, err := strconv.Atoi(rest)
			if err != nil {
				l.term.Notify("usage: join <session id>")
				continue
			}
			commands, runDone = l.startSession(ctx, id)
		case "comments":
			l.comments(ctx, rest)
		case "discuss":
			l.discuss(ctx, rest)
		default:
			l.term.Notify(fmt.Sprintf("unknown command %q (try 'help')", word))
		}
	}
}

// startSession validates the target session and launches the runner. Inactive
// sessions are rejected before any join request goes out.
func (l *Listener) startSession(ctx context.Context, sessionID int) (chan quizflow.Command, chan error) {
	sessions, err := l.api.ListSessions(ctx)
	if err != nil {
		l.term.Notify(err.Error())
		return nil, nil
	}
	var found bool
	for _, s := range sessions {
		if s.ID != sessionID {
			continue
		}
		found = true
		if !s.IsActive {
			l.term.Notify(fmt.Sprintf("session %d is not active yet", sessionID))
			return nil, nil
		}
	}
	if !found {
		l.term.Notify(fmt.Sprintf("no session with id %d", sessionID))
		return nil, nil
	}

	commands := make(chan quizflow.Command)
	runDone := make(chan error, 1)
	runner := quizflow.NewRunner(l.api, l.term, l.runnerConfig(), commands)
	go func() {
		slog.Info("joining session", "session_id", sessionID)
		runDone <- runner.Run(ctx, sessionID)
	}()
	l.term.Notify("joined. answers: a/b/c/d, then 'submit'; 'leave' to exit")
	return commands, runDone
}

func (l *Listener) comments(ctx context.Context, rest string) {
	quizID, err := strconv.Atoi(rest)
	if err != nil || quizID <= 0 {
		l.term.Notify("usage: comments <quiz id>")
		return
	}
	list, err := l.api.Discussions(ctx, quizID)
	if err != nil {
		l.term.Notify(err.Error())
		return
	}
	l.term.Discussions(list)
}

func (l *Listener) discuss(ctx context.Context, rest string) {
	idWord, content := splitCommand(rest)
	quizID, err := strconv.Atoi(idWord)
	if err != nil || quizID <= 0 || content == "" {
		l.term.Notify("usage: discuss <quiz id> <text>")
		return
	}
	if _, err := l.api.PostDiscussion(ctx, quizID, content); err != nil {
		l.term.Notify(err.Error())
		return
	}
	l.term.Notify("comment posted")
}

func (l *Listener) showSessions(ctx context.Context) {
	sessions, err := l.api.ListSessions(ctx)
	if err != nil {
		l.term.Notify(err.Error())
		return
	}
	l.term.SessionList(sessions)
}
