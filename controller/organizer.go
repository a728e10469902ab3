// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package controller

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/danielhkuo/lectern/client"
	"github.com/danielhkuo/lectern/display"
)

// Organizer is the oversight controller: inspect sessions, toggle their
// active flag, and read the aggregate dashboards.
type Organizer struct {
	api  *client.Client
	term *display.Terminal
}

// NewOrganizer wires the organizer controller.
func NewOrganizer(api *client.Client, term *display.Terminal) *Organizer {
	return &Organizer{api: api, term: term}
}

const organizerHelp = "commands: sessions | detail <id> | activate <id> | deactivate <id> | overview <id> | stats <id> | feedback <id> [category] | quit"

// Run reads commands from in until EOF or "quit".
func (o *Organizer) Run(ctx context.Context, in io.Reader) error {
	o.showSessions(ctx)
	o.term.Notify(organizerHelp)

	lines := readLines(in)
	for {
		var line string
		select {
		case <-ctx.Done():
			return ctx.Err()
		case raw, ok := <-lines:
			if !ok {
				return nil
			}
			line = strings.TrimSpace(raw)
		}
		if line == "" {
			continue
		}
		word, rest := splitCommand(line)

		switch word {
		case "q", "quit", "logout":
			return nil
		case "help":
			o.term.Notify(organizerHelp)
		case "sessions":
			o.showSessions(ctx)
		case "detail":
			o.detail(ctx, rest)
		case "activate":
			o.setActive(ctx, rest, true)
		case "deactivate":
			o.setActive(ctx, rest, false)
		case "overview":
			o.overview(ctx, rest)
		case "stats":
			o.stats(ctx, rest)
		case "feedback":
			o.feedback(ctx, rest)
		default:
			o.term.Notify(fmt.Sprintf("unknown command %q (try 'help')", word))
		}
	}
}

func parseID(term *display.Terminal, rest, usage string) (int, bool) {
	id, err := strconv.Atoi(strings.TrimSpace(rest))
	if err != nil || id <= 0 {
		term.Notify(usage)
		return 0, false
	}
	return id, true
}

func (o *Organizer) detail(ctx context.Context, rest string) {
	id, ok := parseID(o.term, rest, "usage: detail <session id>")
	if !ok {
		return
	}
	d, err := o.api.SessionDetail(ctx, id)
	if err != nil {
		o.term.Notify(err.Error())
		return
	}
	o.term.SessionDetail(d)
}

func (o *Organizer) setActive(ctx context.Context, rest string, active bool) {
	usage := "usage: activate <session id>"
	if !active {
		usage = "usage: deactivate <session id>"
	}
	id, ok := parseID(o.term, rest, usage)
	if !ok {
		return
	}
	if err := o.api.ActivateSession(ctx, id, active); err != nil {
		o.term.Notify(err.Error())
		return
	}
	state := "activated"
	if !active {
		state = "deactivated"
	}
	o.term.Notify(fmt.Sprintf("session %d %s", id, state))
}

func (o *Organizer) overview(ctx context.Context, rest string) {
	id, ok := parseID(o.term, rest, "usage: overview <session id>")
	if !ok {
		return
	}
	ov, err := o.api.SessionOverview(ctx, id)
	if err != nil {
		o.term.Notify(err.Error())
		return
	}
	o.term.Overview(ov)
}

func (o *Organizer) stats(ctx context.Context, rest string) {
	id, ok := parseID(o.term, rest, "usage: stats <session id>")
	if !ok {
		return
	}
	stats, err := o.api.Statistics(ctx, id)
	if err != nil {
		o.term.Notify(err.Error())
		return
	}
	o.term.Statistics(stats)
}

func (o *Organizer) feedback(ctx context.Context, rest string) {
	idWord, category := splitCommand(rest)
	id, err := strconv.Atoi(idWord)
	if err != nil || id <= 0 {
		o.term.Notify("usage: feedback <session id> [category]")
		return
	}
	resp, err := o.api.FeedbackDetails(ctx, id)
	if err != nil {
		o.term.Notify(err.Error())
		return
	}
	o.term.Feedback(resp, category)
}

func (o *Organizer) showSessions(ctx context.Context) {
	sessions, err := o.api.ListSessions(ctx)
	if err != nil {
		o.term.Notify(err.Error())
		return
	}
	o.term.SessionList(sessions)
}
