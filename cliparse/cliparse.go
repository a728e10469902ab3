package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

type Config struct {
	BaseURL string
	Role    string

	// Quiz flow tuning. The timeout and dwell behaviors differ between the
	// two observed frontend variants, so both are configuration rather than
	// a hard-coded choice.
	PollInterval        time.Duration
	DwellTime           time.Duration
	AutoSubmitOnTimeout bool
	UseSubmitEndpoint   bool
	AutoActivate        bool
	ActivationDelay     time.Duration

	HTTPTimeout time.Duration
}

// ParseFlags validates flags and fills in defaults
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var pollSecs, dwellSecs float64

	fs := flag.NewFlagSet("lectern", flag.ContinueOnError)

	fs.StringVar(&cfg.BaseURL, "s", "", "Backend base URL")
	fs.StringVar(&cfg.Role, "r", "", "Role (listener, speaker, or organizer)")
	fs.Float64Var(&pollSecs, "poll", 0, "Quiz sequence poll interval in seconds")
	fs.Float64Var(&dwellSecs, "dwell", 0, "Result dwell time in seconds")
	fs.BoolVar(&cfg.AutoSubmitOnTimeout, "auto-submit", false, "Submit the pending selection when the countdown expires")
	fs.BoolVar(&cfg.UseSubmitEndpoint, "submit-endpoint", false, "Use POST /api/quiz/submit instead of POST /api/quiz/answer")
	fs.BoolVar(&cfg.AutoActivate, "auto-activate", false, "Ask the server to activate the next quiz when none is live")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.BaseURL == "" {
		cfg.BaseURL = os.Getenv("LECTERN_SERVER")
	}
	if cfg.BaseURL == "" {
		return Config{}, errors.New("backend URL required (use -s or LECTERN_SERVER env)")
	}
	if _, err := url.ParseRequestURI(cfg.BaseURL); err != nil {
		return Config{}, fmt.Errorf("invalid backend URL %q: %w", cfg.BaseURL, err)
	}

	if cfg.Role == "" {
		cfg.Role = os.Getenv("LECTERN_ROLE")
	}
	if cfg.Role == "" {
		return Config{}, errors.New("role required (use -r or LECTERN_ROLE env)")
	}
	switch cfg.Role {
	case "listener", "speaker", "organizer":
	default:
		return Config{}, fmt.Errorf("invalid role %q (want listener, speaker, or organizer)", cfg.Role)
	}

	if pollSecs == 0 {
		pollSecs = envSeconds("LECTERN_POLL_SECONDS", 3)
	}
	cfg.PollInterval = secondsToDuration(pollSecs)
	if cfg.PollInterval <= 0 {
		return Config{}, errors.New("poll interval must be positive")
	}

	if dwellSecs == 0 {
		dwellSecs = envSeconds("LECTERN_DWELL_SECONDS", 3)
	}
	cfg.DwellTime = secondsToDuration(dwellSecs)
	if cfg.DwellTime <= 0 {
		return Config{}, errors.New("dwell time must be positive")
	}

	if !cfg.AutoSubmitOnTimeout {
		cfg.AutoSubmitOnTimeout = os.Getenv("LECTERN_AUTO_SUBMIT") == "1"
	}
	if !cfg.UseSubmitEndpoint {
		cfg.UseSubmitEndpoint = os.Getenv("LECTERN_SUBMIT_ENDPOINT") == "1"
	}
	if !cfg.AutoActivate {
		cfg.AutoActivate = os.Getenv("LECTERN_AUTO_ACTIVATE") == "1"
	}

	cfg.ActivationDelay = 1 * time.Second
	cfg.HTTPTimeout = 10 * time.Second

	return cfg, nil
}

func envSeconds(name string, def float64) float64 {
	v := os.Getenv(name)
	if v == "" {
		return def
	}
	secs, err := strconv.ParseFloat(v, 64)
	if err != nil || secs <= 0 {
		return def
	}
	return secs
}

func secondsToDuration(secs float64) time.Duration {
	return time.Duration(secs * float64(time.Second))
}
