// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package quizflow implements the listener's quiz-polling state machine.

# States

	NoSession → Polling → ShowingQuiz → Answered → (next quiz | AllCompleted)

While a session is joined, the sequence is re-fetched on a fixed interval and
the display is recomputed from scratch each time: the current quiz is always
the first item whose has_answered flag is false. An empty sequence keeps the
flow in Polling; a non-empty, fully-answered sequence moves it to
AllCompleted.

# Flow vs Runner

Flow is the pure state machine. It has no goroutines, no timers, and no
network; every transition is a plain method call (ApplySequence,
SelectOption, Submission, ApplyAnswerResult, EndDwell, Tick), which is what
makes every flow property directly unit-testable.

Runner owns everything asynchronous: the poll ticker (with an in-flight guard
so a slow poll cannot race a newer one), the 1 Hz countdown ticker, the
post-result dwell timer, optional auto-activation of the next quiz, and the
user command channel. Network requests run on short-lived goroutines but
their results are funneled back into the runner's single select loop, so Flow
is only ever touched from one goroutine.

# Timer Lifecycle

The countdown is state inside Flow, not a standalone timer object: swapping
or closing the display resets the remaining time and the times-up latch in
the same transition, so a stale countdown can never tick against a quiz that
is no longer shown, and the times-up notification fires exactly once per
displayed quiz.

# Variant Behavior

The two observed frontend variants disagreed on timeout handling (lock vs
auto-submit the pending selection) and on dwell time. Both are configuration
(Config.AutoSubmitOnTimeout, RunnerConfig.DwellTime), not code.
*/
package quizflow
