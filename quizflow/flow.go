// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package quizflow

import (
	"github.com/danielhkuo/lectern/models"
)

// State is the listener's position in the quiz flow.
type State int

const (
	StateNoSession State = iota
	StatePolling
	StateShowingQuiz
	StateAnswered
	StateAllCompleted
)

func (s State) String() string {
	switch s {
	case StateNoSession:
		return "no-session"
	case StatePolling:
		return "polling"
	case StateShowingQuiz:
		return "showing-quiz"
	case StateAnswered:
		return "answered"
	case StateAllCompleted:
		return "all-completed"
	}
	return "invalid"
}

// View receives display updates from the flow. The display package provides
// the terminal implementation; tests substitute a recorder.
type View interface {
	// ShowWaiting is called when there is nothing to display yet.
	ShowWaiting(reason string)
	// ShowQuiz is called when a new quiz replaces the display.
	ShowQuiz(q models.QuizItem, remaining int)
	// ShowSelection is called when the selected letter changes.
	ShowSelection(q models.QuizItem, letter string)
	// ShowCountdown is called once per second while a quiz is live.
	ShowCountdown(remaining int)
	// ShowTimesUp is called exactly once per displayed quiz when the
	// countdown reaches zero.
	ShowTimesUp()
	// ShowResult is called after a successful submission.
	ShowResult(q models.QuizItem, selected string, res models.AnswerResult)
	// ShowCompleted is called when every quiz in the sequence is answered.
	ShowCompleted(total int)
	// Notify shows a transient message without changing the display.
	Notify(msg string)
}

// Config carries the behavior choices that differ between the two observed
// frontend variants.
type Config struct {
	// AutoSubmitOnTimeout submits the pending selection, if any, when the
	// countdown expires. Off means the quiz just locks.
	AutoSubmitOnTimeout bool
}

// Flow is the quiz-polling state machine. It is purely synchronous: the
// Runner owns all timers and goroutines and calls into Flow from a single
// goroutine, matching the run-to-completion model of the event handlers it
// replaces.
type Flow struct {
	cfg  Config
	view View

	state     State
	sessionID int
	current   *models.QuizItem
	selected  string
	remaining int
	timedOut  bool
	waiting   bool

	// lastAnswered guards against sequence snapshots taken before the
	// answer reached the server; such a snapshot still carries the quiz
	// with has_answered false.
	lastAnswered int
}

// New creates a Flow in the NoSession state.
func New(cfg Config, view View) *Flow {
	return &Flow{cfg: cfg, view: view, state: StateNoSession}
}

func (f *Flow) State() State { return f.state }

func (f *Flow) SessionID() int { return f.sessionID }

func (f *Flow) Selected() string { return f.selected }

func (f *Flow) Remaining() int { return f.remaining }

func (f *Flow) TimedOut() bool { return f.timedOut }

// CurrentQuizID returns the displayed quiz ID, or 0 when nothing is shown.
func (f *Flow) CurrentQuizID() int {
	if f.current == nil {
		return 0
	}
	return f.current.ID
}

// JoinSession enters the polling state for a session.
func (f *Flow) JoinSession(sessionID int) {
	f.sessionID = sessionID
	f.lastAnswered = 0
	f.clearQuiz()
	f.state = StatePolling
	f.waiting = true
	f.view.ShowWaiting("waiting for the first quiz")
}

// LeaveSession drops all session state and returns to NoSession. Clearing
// the displayed quiz here is what guarantees no countdown tick can touch a
// closed display.
func (f *Flow) LeaveSession() {
	f.sessionID = 0
	f.lastAnswered = 0
	f.clearQuiz()
	f.state = StateNoSession
	f.waiting = false
}

func (f *Flow) clearQuiz() {
	f.current = nil
	f.selected = ""
	f.remaining = 0
	f.timedOut = false
}

// ApplySequence recomputes the display from a fresh quiz sequence. The
// candidate is always the first item with has_answered false; the client
// never diffs incrementally.
func (f *Flow) ApplySequence(items []models.QuizItem) {
	switch f.state {
	case StateNoSession:
		// Stale response from before the session was left.
		return
	case StateAnswered:
		// Mid-dwell; the result stays up until EndDwell.
		return
	}

	var candidate *models.QuizItem
	for i := range items {
		// A response snapshotted before our own answer was recorded still
		// shows that quiz unanswered; never display it again.
		if items[i].HasAnswered || items[i].ID == f.lastAnswered {
			continue
		}
		candidate = &items[i]
		break
	}

	if candidate == nil {
		if len(items) == 0 {
			// Nothing published yet; keep waiting.
			if f.state != StatePolling || !f.waiting {
				f.clearQuiz()
				f.state = StatePolling
				f.waiting = true
				f.view.ShowWaiting("waiting for the first quiz")
			}
			return
		}
		if f.state != StateAllCompleted {
			f.clearQuiz()
			f.state = StateAllCompleted
			f.waiting = false
			f.view.ShowCompleted(len(items))
		}
		return
	}

	if f.current != nil && f.current.ID == candidate.ID {
		// Same quiz still live; the countdown keeps running.
		return
	}

	// Display transition: swapping resets the per-quiz timer and the
	// times-up latch in the same step, so a timer can never outlive its
	// quiz.
	q := *candidate
	f.current = &q
	f.selected = ""
	f.timedOut = false
	f.remaining = q.EffectiveTimeLimit()
	f.state = StateShowingQuiz
	f.waiting = false
	f.view.ShowQuiz(q, f.remaining)
}

// SelectOption records the single selected letter. Re-selecting replaces the
// previous choice.
func (f *Flow) SelectOption(letter string) error {
	if f.state != StateShowingQuiz {
		return &models.ValidationError{Message: "no quiz is currently shown"}
	}
	if f.timedOut {
		return &models.ValidationError{Message: "time is up for this quiz"}
	}
	valid := false
	for _, l := range models.Letters {
		if letter == l {
			valid = true
			break
		}
	}
	if !valid {
		return &models.ValidationError{Message: "answer must be A, B, C, or D"}
	}
	f.selected = letter
	f.view.ShowSelection(*f.current, letter)
	return nil
}

// Submission validates that an answer can be sent and returns it. The
// request itself is the Runner's job.
func (f *Flow) Submission() (quizID int, answer string, err error) {
	if f.state != StateShowingQuiz || f.current == nil {
		return 0, "", &models.ValidationError{Message: "no quiz is currently shown"}
	}
	if f.selected == "" {
		return 0, "", &models.ValidationError{Message: "select an answer first"}
	}
	if f.timedOut && !f.cfg.AutoSubmitOnTimeout {
		return 0, "", &models.ValidationError{Message: "time is up for this quiz"}
	}
	return f.current.ID, f.selected, nil
}

// ApplyAnswerResult locks the quiz and shows correctness feedback. Further
// selections and submissions are rejected until the next quiz is displayed.
func (f *Flow) ApplyAnswerResult(res models.AnswerResult) {
	if f.state != StateShowingQuiz || f.current == nil {
		return
	}
	f.current.HasAnswered = true
	f.lastAnswered = f.current.ID
	f.state = StateAnswered
	f.view.ShowResult(*f.current, f.selected, res)
}

// EndDwell finishes the post-result dwell and resumes polling for the next
// unanswered item.
func (f *Flow) EndDwell() {
	if f.state != StateAnswered {
		return
	}
	f.clearQuiz()
	f.state = StatePolling
}

// Tick advances the countdown by one second. It reports whether the caller
// should auto-submit the pending selection. Ticks outside ShowingQuiz, or
// after the times-up notification, do nothing; the displayed countdown can
// never go negative.
func (f *Flow) Tick() (autoSubmit bool) {
	if f.state != StateShowingQuiz || f.timedOut {
		return false
	}
	f.remaining--
	if f.remaining > 0 {
		f.view.ShowCountdown(f.remaining)
		return false
	}
	f.remaining = 0
	f.timedOut = true
	f.view.ShowCountdown(0)
	f.view.ShowTimesUp()
	return f.cfg.AutoSubmitOnTimeout && f.selected != ""
}
