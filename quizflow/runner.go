// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package quizflow

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/danielhkuo/lectern/models"
)

// API is the slice of the backend client the runner needs.
type API interface {
	JoinSession(ctx context.Context, sessionID int) error
	LeaveSession(ctx context.Context, sessionID int) error
	QuizSequence(ctx context.Context, sessionID int) ([]models.QuizItem, error)
	AutoActivateNext(ctx context.Context, sessionID int) (models.AutoActivateResponse, error)
	SubmitAnswer(ctx context.Context, quizID int, answer string) (models.AnswerResult, error)
	SubmitToSession(ctx context.Context, quizID, sessionID int, answer string) (models.AnswerResult, error)
}

// CommandKind tags a user input command.
type CommandKind int

const (
	CmdSelect CommandKind = iota
	CmdSubmit
	CmdLeave
)

// Command is one user input event delivered to the runner.
type Command struct {
	Kind   CommandKind
	Letter string
}

// RunnerConfig tunes the runner's timers. Tests shrink the intervals; real
// runs use the cliparse defaults.
type RunnerConfig struct {
	Flow Config

	PollInterval    time.Duration
	TickInterval    time.Duration // countdown granularity, 1s in production
	DwellTime       time.Duration
	ActivationDelay time.Duration

	AutoActivate      bool
	UseSubmitEndpoint bool
}

type seqResult struct {
	sessionID int
	items     []models.QuizItem
	err       error
}

type submitOutcome struct {
	quizID int
	res    models.AnswerResult
	err    error
}

type activateOutcome struct {
	resp models.AutoActivateResponse
	err  error
}

// Runner drives a Flow from a single goroutine: it owns the poll ticker, the
// countdown ticker, the dwell timer, and the user input channel, and issues
// all network requests. Requests run on short-lived goroutines but their
// results come back through the loop, so Flow state is never touched
// concurrently.
type Runner struct {
	api  API
	flow *Flow
	view View
	cfg  RunnerConfig

	commands <-chan Command

	seqCh      chan seqResult
	submitCh   chan submitOutcome
	activateCh chan activateOutcome

	pollInFlight     bool
	submitInFlight   bool
	activateInFlight bool
	activationDone   bool
}

// NewRunner wires a Flow to a backend client and an input channel.
func NewRunner(api API, view View, cfg RunnerConfig, commands <-chan Command) *Runner {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = time.Second
	}
	return &Runner{
		api:        api,
		flow:       New(cfg.Flow, view),
		view:       view,
		cfg:        cfg,
		commands:   commands,
		seqCh:      make(chan seqResult, 1),
		submitCh:   make(chan submitOutcome, 1),
		activateCh: make(chan activateOutcome, 1),
	}
}

// Flow exposes the underlying state machine, read-only by convention.
func (r *Runner) Flow() *Flow {
	return r.flow
}

// Run joins the session and loops until the context ends, the input channel
// closes, or a CmdLeave arrives. The session is left on every exit path.
func (r *Runner) Run(ctx context.Context, sessionID int) error {
	if err := r.api.JoinSession(ctx, sessionID); err != nil {
		return err
	}
	r.flow.JoinSession(sessionID)

	defer func() {
		// The parent context may already be canceled; leaving the session
		// gets its own deadline.
		leaveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := r.api.LeaveSession(leaveCtx, sessionID); err != nil {
			slog.Warn("failed to leave session", "session_id", sessionID, "error", err)
		}
		r.flow.LeaveSession()
	}()

	pollTicker := time.NewTicker(r.cfg.PollInterval)
	defer pollTicker.Stop()
	countdown := time.NewTicker(r.cfg.TickInterval)
	defer countdown.Stop()

	// nil until armed; a select on a nil channel simply never fires
	var dwellC, reactivateC <-chan time.Time

	r.requestPoll(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case cmd, ok := <-r.commands:
			if !ok || cmd.Kind == CmdLeave {
				return nil
			}
			switch cmd.Kind {
			case CmdSelect:
				if err := r.flow.SelectOption(cmd.Letter); err != nil {
					r.view.Notify(err.Error())
				}
			case CmdSubmit:
				r.submit(ctx)
			}

		case <-pollTicker.C:
			r.requestPoll(ctx)

		case res := <-r.seqCh:
			r.pollInFlight = false
			if res.sessionID != r.flow.SessionID() {
				// Stale response from a session we already left.
				continue
			}
			if res.err != nil {
				slog.Warn("quiz sequence poll failed", "session_id", res.sessionID, "error", res.err)
				r.view.Notify("could not reach the quiz server, retrying")
				continue
			}
			r.flow.ApplySequence(res.items)
			// Nothing is live when the sequence is still empty or when every
			// published quiz is answered; either way, ask for the next one.
			if r.cfg.AutoActivate && (len(res.items) == 0 || r.flow.State() == StateAllCompleted) {
				r.requestActivation(ctx)
			}

		case out := <-r.submitCh:
			r.submitInFlight = false
			if out.quizID != r.flow.CurrentQuizID() {
				continue
			}
			if out.err != nil {
				slog.Warn("answer submission failed", "quiz_id", out.quizID, "error", out.err)
				r.view.Notify(out.err.Error())
				continue
			}
			r.flow.ApplyAnswerResult(out.res)
			dwellC = time.After(r.cfg.DwellTime)

		case <-dwellC:
			dwellC = nil
			r.flow.EndDwell()
			r.requestPoll(ctx)

		case out := <-r.activateCh:
			r.activateInFlight = false
			if out.err != nil {
				slog.Warn("auto-activation failed", "error", out.err)
				continue
			}
			if out.resp.IsFinished {
				r.activationDone = true
				continue
			}
			reactivateC = time.After(r.cfg.ActivationDelay)

		case <-reactivateC:
			reactivateC = nil
			r.requestPoll(ctx)

		case <-countdown.C:
			if r.flow.Tick() {
				r.submit(ctx)
			}
		}
	}
}

// requestPoll starts a sequence fetch unless one is already in flight. The
// guard keeps a slow response from racing a newer one and redisplaying a
// stale question.
func (r *Runner) requestPoll(ctx context.Context) {
	if r.pollInFlight {
		return
	}
	sessionID := r.flow.SessionID()
	if sessionID == 0 {
		return
	}
	r.pollInFlight = true
	go func() {
		items, err := r.api.QuizSequence(ctx, sessionID)
		select {
		case r.seqCh <- seqResult{sessionID: sessionID, items: items, err: err}:
		case <-ctx.Done():
		}
	}()
}

func (r *Runner) submit(ctx context.Context) {
	if r.submitInFlight {
		return
	}
	quizID, answer, err := r.flow.Submission()
	if err != nil {
		var vErr *models.ValidationError
		if errors.As(err, &vErr) {
			r.view.Notify(vErr.Message)
		} else {
			r.view.Notify(err.Error())
		}
		return
	}
	sessionID := r.flow.SessionID()
	r.submitInFlight = true
	go func() {
		var res models.AnswerResult
		var subErr error
		if r.cfg.UseSubmitEndpoint {
			res, subErr = r.api.SubmitToSession(ctx, quizID, sessionID, answer)
		} else {
			res, subErr = r.api.SubmitAnswer(ctx, quizID, answer)
		}
		select {
		case r.submitCh <- submitOutcome{quizID: quizID, res: res, err: subErr}:
		case <-ctx.Done():
		}
	}()
}

func (r *Runner) requestActivation(ctx context.Context) {
	if r.activateInFlight || r.activationDone {
		return
	}
	sessionID := r.flow.SessionID()
	r.activateInFlight = true
	go func() {
		resp, err := r.api.AutoActivateNext(ctx, sessionID)
		select {
		case r.activateCh <- activateOutcome{resp: resp, err: err}:
		case <-ctx.Done():
		}
	}()
}
