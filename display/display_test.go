// display/display_test.go
package display_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/danielhkuo/lectern/display"
	"github.com/danielhkuo/lectern/models"
	"github.com/danielhkuo/lectern/quizflow"
)

func TestShowQuizListsOptions(t *testing.T) {
	var buf bytes.Buffer
	term := display.NewTerminal(&buf)

	term.ShowQuiz(models.QuizItem{
		ID:       1,
		Question: "Largest planet?",
		OptionA:  "Mars",
		OptionB:  "Jupiter",
		OptionC:  "Venus",
		OptionD:  "Saturn",
	}, 60)

	out := buf.String()
	for _, want := range []string{"Largest planet?", "A) Mars", "B) Jupiter", "C) Venus", "D) Saturn", "60 seconds"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\033[") {
		t.Errorf("expected no escape codes for a non-terminal writer:\n%s", out)
	}
}

func TestShowResultIncorrect(t *testing.T) {
	var buf bytes.Buffer
	term := display.NewTerminal(&buf)

	term.ShowResult(models.QuizItem{OptionA: "Mars", OptionB: "Jupiter"}, "A", models.AnswerResult{
		IsCorrect:     false,
		CorrectAnswer: "B",
		Explanation:   "Jupiter is the largest.",
	})

	out := buf.String()
	for _, want := range []string{"Incorrect", "A) Mars", "correct answer: B) Jupiter", "Jupiter is the largest."} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSessionListMarksJoined(t *testing.T) {
	var buf bytes.Buffer
	term := display.NewTerminal(&buf)

	term.SessionList([]models.Session{
		{ID: 1, Title: "Networking 101", IsActive: true, IsParticipant: true, ParticipantCount: 3},
		{ID: 2, Title: "Databases", IsActive: false},
	})

	out := buf.String()
	if !strings.Contains(out, "* [1] Networking 101") {
		t.Errorf("joined session not marked:\n%s", out)
	}
	if !strings.Contains(out, "[2] Databases") || !strings.Contains(out, "inactive") {
		t.Errorf("inactive session not rendered:\n%s", out)
	}
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		percent float64
		width   int
		want    string
	}{
		{0, 10, "[----------]"},
		{50, 10, "[#####-----]"},
		{100, 10, "[##########]"},
		{120, 10, "[##########]"},
		{-5, 10, "[----------]"},
		{33.3, 3, "[#--]"},
	}
	for _, tt := range tests {
		if got := display.ProgressBar(tt.percent, tt.width); got != tt.want {
			t.Errorf("ProgressBar(%v, %d) = %q, want %q", tt.percent, tt.width, got, tt.want)
		}
	}
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line string
		want quizflow.Command
		ok   bool
	}{
		{"a", quizflow.Command{Kind: quizflow.CmdSelect, Letter: "A"}, true},
		{"  B ", quizflow.Command{Kind: quizflow.CmdSelect, Letter: "B"}, true},
		{"submit", quizflow.Command{Kind: quizflow.CmdSubmit}, true},
		{"s", quizflow.Command{Kind: quizflow.CmdSubmit}, true},
		{"leave", quizflow.Command{Kind: quizflow.CmdLeave}, true},
		{"q", quizflow.Command{Kind: quizflow.CmdLeave}, true},
		{"", quizflow.Command{}, false},
		{"e", quizflow.Command{}, false},
		{"sessions", quizflow.Command{}, false},
	}
	for _, tt := range tests {
		got, ok := display.ParseCommand(tt.line)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseCommand(%q) = %+v, %v; want %+v, %v", tt.line, got, ok, tt.want, tt.ok)
		}
	}
}
