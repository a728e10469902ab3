// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Lectern terminal client.

Lectern is a live-quiz client for lecture audiences: listeners join a
session and answer multiple-choice quizzes as the speaker publishes them,
speakers author and publish quizzes, and organizers run the sessions and
read the aggregate dashboards.

# Starting the Client

The client requires a backend URL and a role, via environment variables
or CLI flags:

	LECTERN_SERVER=https://quiz.example.com LECTERN_ROLE=listener go run .

Or with flags:

	go run . -s https://quiz.example.com -r listener

A .env file in the working directory is loaded first; flags and the real
environment take precedence.

# Configuration

Required settings:

  - LECTERN_SERVER (-s): Backend base URL
  - LECTERN_ROLE (-r): listener, speaker, or organizer

Optional settings:

  - LECTERN_POLL_SECONDS (-poll): Quiz sequence poll interval (default: 3)
  - LECTERN_DWELL_SECONDS (-dwell): How long a result stays on screen (default: 3)
  - LECTERN_AUTO_SUBMIT (-auto-submit): Submit the pending selection on timeout
  - LECTERN_SUBMIT_ENDPOINT (-submit-endpoint): Use POST /api/quiz/submit
  - LECTERN_AUTO_ACTIVATE (-auto-activate): Ask the server for the next quiz
    when the sequence is exhausted

# Architecture

The client separates quiz-flow state from I/O:

  - client: typed HTTP client for the backend REST API
  - quizflow: the poll/display/answer state machine and its runner
  - controller: one interactive loop per role, behind a profile/role gate
  - display: terminal rendering and input parsing
  - models: request/response and domain types, role enum, error taxonomy
  - cliparse: configuration parsing
  - testutil: in-memory fake backend for tests

See package documentation for each component.
*/
package main
