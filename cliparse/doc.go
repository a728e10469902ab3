// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - BaseURL: backend base URL (required)
  - Role: listener, speaker, or organizer (required)
  - PollInterval: quiz sequence poll interval (default: 3s)
  - DwellTime: delay after a result before advancing (default: 3s)
  - AutoSubmitOnTimeout: submit the pending selection when time runs out
  - UseSubmitEndpoint: use the alternate /api/quiz/submit endpoint
  - AutoActivate: request server-side activation of the next quiz
  - ActivationDelay: re-poll delay after an activation request (1s)
  - HTTPTimeout: per-request timeout (10s)

# CLI Flags

	-s <url>          backend base URL
	-r <role>         role
	-poll <seconds>   poll interval
	-dwell <seconds>  result dwell time
	-auto-submit      auto-submit on countdown expiry
	-submit-endpoint  alternate submit endpoint
	-auto-activate    request auto-activation

# Environment Variables

CLI flags take precedence over the environment:

	LECTERN_SERVER, LECTERN_ROLE, LECTERN_POLL_SECONDS,
	LECTERN_DWELL_SECONDS, LECTERN_AUTO_SUBMIT, LECTERN_SUBMIT_ENDPOINT,
	LECTERN_AUTO_ACTIVATE

The timeout and dwell settings exist because the two observed frontend
variants disagreed on both; pick per deployment rather than in code.
*/
package cliparse
