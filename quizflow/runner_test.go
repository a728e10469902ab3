// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package quizflow

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/danielhkuo/lectern/client"
	"github.com/danielhkuo/lectern/models"
	"github.com/danielhkuo/lectern/testutil"
)

// safeView is the recorder with a mutex, for tests where the runner's
// goroutine writes while the test polls.
type safeView struct {
	mu sync.Mutex
	rv recorderView
}

func (v *safeView) ShowWaiting(reason string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.rv.ShowWaiting(reason)
}

func (v *safeView) ShowQuiz(q models.QuizItem, remaining int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.rv.ShowQuiz(q, remaining)
}

func (v *safeView) ShowSelection(q models.QuizItem, letter string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.rv.ShowSelection(q, letter)
}

func (v *safeView) ShowCountdown(remaining int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.rv.ShowCountdown(remaining)
}

func (v *safeView) ShowTimesUp() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.rv.ShowTimesUp()
}

func (v *safeView) ShowResult(q models.QuizItem, selected string, res models.AnswerResult) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.rv.ShowResult(q, selected, res)
}

func (v *safeView) ShowCompleted(total int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.rv.ShowCompleted(total)
}

func (v *safeView) Notify(msg string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.rv.Notify(msg)
}

func (v *safeView) quizCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.rv.quizzes)
}

func (v *safeView) lastQuizID() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.rv.quizzes) == 0 {
		return 0
	}
	return v.rv.quizzes[len(v.rv.quizzes)-1].ID
}

func (v *safeView) resultCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.rv.results)
}

func (v *safeView) lastResult() models.AnswerResult {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.rv.results[len(v.rv.results)-1]
}

func (v *safeView) completedCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.rv.completed)
}

func fastConfig() RunnerConfig {
	return RunnerConfig{
		PollInterval:    10 * time.Millisecond,
		TickInterval:    10 * time.Millisecond,
		DwellTime:       20 * time.Millisecond,
		ActivationDelay: 10 * time.Millisecond,
	}
}

func startRunner(t *testing.T, backend *testutil.FakeBackend, cfg RunnerConfig, sessionID int) (*safeView, chan Command, chan error) {
	t.Helper()

	c, err := client.New(backend.URL(), time.Second)
	if err != nil {
		t.Fatal(err)
	}

	view := &safeView{}
	commands := make(chan Command)
	runner := NewRunner(c, view, cfg, commands)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	done := make(chan error, 1)
	go func() {
		done <- runner.Run(ctx, sessionID)
	}()
	return view, commands, done
}

func TestRunnerAnswersQuizAndCompletes(t *testing.T) {
	backend := testutil.NewFakeBackend(t)
	backend.AddSession(models.Session{ID: 1, Title: "Live", IsActive: true})
	backend.AddQuiz(1, models.LetterB, 30)

	view, commands, done := startRunner(t, backend, fastConfig(), 1)

	testutil.WaitFor(t, time.Second, func() bool { return view.quizCount() == 1 }, "quiz display")

	commands <- Command{Kind: CmdSelect, Letter: models.LetterB}
	commands <- Command{Kind: CmdSubmit}

	testutil.WaitFor(t, time.Second, func() bool { return view.resultCount() == 1 }, "answer result")
	if res := view.lastResult(); !res.IsCorrect {
		t.Errorf("expected correct answer, got %+v", res)
	}

	// After the dwell, the fully-answered sequence completes the flow.
	testutil.WaitFor(t, time.Second, func() bool { return view.completedCount() == 1 }, "completed display")

	close(commands)
	if err := <-done; err != nil {
		t.Fatalf("runner returned error: %v", err)
	}
}

func TestRunnerAdvancesToNextQuiz(t *testing.T) {
	backend := testutil.NewFakeBackend(t)
	backend.AddSession(models.Session{ID: 1, Title: "Live", IsActive: true})
	backend.AddQuiz(1, models.LetterA, 30)
	second := backend.AddQuiz(1, models.LetterC, 30)

	view, commands, done := startRunner(t, backend, fastConfig(), 1)

	testutil.WaitFor(t, time.Second, func() bool { return view.quizCount() == 1 }, "first quiz")

	commands <- Command{Kind: CmdSelect, Letter: models.LetterA}
	commands <- Command{Kind: CmdSubmit}

	testutil.WaitFor(t, time.Second, func() bool { return view.quizCount() == 2 }, "second quiz")
	if view.lastQuizID() != second {
		t.Errorf("expected quiz %d displayed, got %d", second, view.lastQuizID())
	}

	commands <- Command{Kind: CmdLeave}
	if err := <-done; err != nil {
		t.Fatalf("runner returned error: %v", err)
	}
}

func TestRunnerRejectsInactiveSession(t *testing.T) {
	backend := testutil.NewFakeBackend(t)
	backend.AddSession(models.Session{ID: 3, Title: "Paused", IsActive: false})

	c, err := client.New(backend.URL(), time.Second)
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(c, &safeView{}, fastConfig(), make(chan Command))

	if err := runner.Run(context.Background(), 3); err == nil {
		t.Fatal("expected join failure for inactive session")
	}

	seq, _, _, _ := backend.Counts()
	if seq != 0 {
		t.Errorf("polling must not start after a rejected join, got %d polls", seq)
	}
}

func TestRunnerPollGuardPreventsOverlap(t *testing.T) {
	backend := testutil.NewFakeBackend(t)
	backend.AddSession(models.Session{ID: 1, Title: "Live", IsActive: true})
	backend.SequenceDelay = 50 * time.Millisecond

	cfg := fastConfig()
	cfg.PollInterval = 5 * time.Millisecond

	_, commands, done := startRunner(t, backend, cfg, 1)

	time.Sleep(120 * time.Millisecond)
	close(commands)
	<-done

	// Roughly two slow polls fit in the window; without the in-flight
	// guard the 5ms ticker would have issued over twenty.
	seq, _, _, _ := backend.Counts()
	if seq > 5 {
		t.Errorf("in-flight guard failed: %d overlapping polls", seq)
	}
}

func TestRunnerAutoSubmitOnTimeout(t *testing.T) {
	backend := testutil.NewFakeBackend(t)
	backend.AddSession(models.Session{ID: 1, Title: "Live", IsActive: true})
	backend.AddQuiz(1, models.LetterD, 5)

	cfg := fastConfig()
	cfg.Flow.AutoSubmitOnTimeout = true
	cfg.TickInterval = 20 * time.Millisecond

	view, commands, done := startRunner(t, backend, cfg, 1)

	testutil.WaitFor(t, time.Second, func() bool { return view.quizCount() == 1 }, "quiz display")
	commands <- Command{Kind: CmdSelect, Letter: models.LetterD}

	// No CmdSubmit: the expiring countdown submits the pending selection.
	testutil.WaitFor(t, 2*time.Second, func() bool { return view.resultCount() == 1 }, "auto-submitted result")
	if res := view.lastResult(); !res.IsCorrect {
		t.Errorf("expected the pending selection submitted, got %+v", res)
	}

	close(commands)
	<-done
}

func TestRunnerActivatesFirstQuizOfEmptySequence(t *testing.T) {
	backend := testutil.NewFakeBackend(t)
	backend.AddSession(models.Session{ID: 1, Title: "Live", IsActive: true})
	pending := backend.AddPendingQuiz(1, models.LetterA, 30)

	cfg := fastConfig()
	cfg.AutoActivate = true

	view, commands, done := startRunner(t, backend, cfg, 1)

	// Nothing is published yet: the empty sequence itself must trigger an
	// activation request so the first quiz goes live.
	testutil.WaitFor(t, 2*time.Second, func() bool { return view.lastQuizID() == pending }, "first quiz activated and displayed")

	_, activations, _, _ := backend.Counts()
	if activations == 0 {
		t.Error("expected an activation request for the empty sequence")
	}

	close(commands)
	<-done
}

func TestRunnerAutoActivation(t *testing.T) {
	backend := testutil.NewFakeBackend(t)
	backend.AddSession(models.Session{ID: 1, Title: "Live", IsActive: true})
	answered := backend.AddQuiz(1, models.LetterA, 30)
	backend.MarkAnswered(1, answered)
	pending := backend.AddPendingQuiz(1, models.LetterB, 30)

	cfg := fastConfig()
	cfg.AutoActivate = true

	view, commands, done := startRunner(t, backend, cfg, 1)

	// The all-answered sequence triggers an activation request, which
	// publishes the pending quiz; the next poll displays it.
	testutil.WaitFor(t, 2*time.Second, func() bool { return view.lastQuizID() == pending }, "activated quiz display")

	_, activations, _, _ := backend.Counts()
	if activations == 0 {
		t.Error("expected at least one auto-activation request")
	}

	close(commands)
	<-done
}
