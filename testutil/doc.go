// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package testutil provides an in-memory fake quiz backend for tests.

FakeBackend serves the full REST contract over httptest, backed by plain
maps guarded by a mutex. Tests seed state through helpers and point a real
client at the server:

	backend := testutil.NewFakeBackend(t)
	backend.AddSession(models.Session{ID: 1, Title: "Demo", IsActive: true})
	quizID := backend.AddQuiz(1, models.LetterB, 30)

	c, _ := client.New(backend.URL(), time.Second)

Fault injection: set FailSequence to make sequence polls return 500, or
SequenceDelay to slow them down (used to exercise the in-flight poll guard).
Request counters (SequenceCalls, AnswerCalls, ...) are read via Counts.

WaitFor polls a condition with a deadline, for tests that drive the runner's
real tickers at millisecond intervals.
*/
package testutil
