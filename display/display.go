// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package display

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/danielhkuo/lectern/models"
)

// ANSI codes, only emitted when the output is a terminal
const (
	ansiReset  = "\033[0m"
	ansiBold   = "\033[1m"
	ansiDim    = "\033[2m"
	ansiRed    = "\033[31m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiCyan   = "\033[36m"
)

// Terminal renders the quiz flow and the role dashboards to a writer. It
// implements quizflow.View.
type Terminal struct {
	mu    sync.Mutex
	out   io.Writer
	color bool
}

// NewTerminal creates a Terminal. Color is enabled only when the writer is
// an actual terminal.
func NewTerminal(out io.Writer) *Terminal {
	color := false
	if f, ok := out.(*os.File); ok {
		color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Terminal{out: out, color: color}
}

func (t *Terminal) paint(code, s string) string {
	if !t.color {
		return s
	}
	return code + s + ansiReset
}

func (t *Terminal) printf(format string, args ...any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.out, format, args...)
}

// quizflow.View implementation

func (t *Terminal) ShowWaiting(reason string) {
	t.printf("%s\n", t.paint(ansiDim, "... "+reason))
}

func (t *Terminal) ShowQuiz(q models.QuizItem, remaining int) {
	t.printf("\n%s\n", t.paint(ansiBold, q.Question))
	for _, letter := range models.Letters {
		t.printf("  %s) %s\n", letter, q.Option(letter))
	}
	t.printf("%s\n", t.paint(ansiDim, fmt.Sprintf("%d seconds. type a letter, then 'submit'", remaining)))
}

func (t *Terminal) ShowSelection(q models.QuizItem, letter string) {
	t.printf("selected %s) %s\n", letter, q.Option(letter))
}

func (t *Terminal) ShowCountdown(remaining int) {
	// A line per second is unreadable in a terminal; announce sparsely.
	if remaining%10 == 0 || remaining <= 5 {
		t.printf("%s\n", t.paint(ansiYellow, fmt.Sprintf("%d seconds remaining", remaining)))
	}
}

func (t *Terminal) ShowTimesUp() {
	t.printf("%s\n", t.paint(ansiRed, "Time's up!"))
}

func (t *Terminal) ShowResult(q models.QuizItem, selected string, res models.AnswerResult) {
	if res.IsCorrect {
		t.printf("%s\n", t.paint(ansiGreen, "Correct!"))
	} else {
		t.printf("%s your answer: %s) %s\n",
			t.paint(ansiRed, "Incorrect."), selected, q.Option(selected))
	}
	t.printf("correct answer: %s) %s\n", res.CorrectAnswer, q.Option(res.CorrectAnswer))
	if res.Explanation != "" {
		t.printf("%s\n", t.paint(ansiDim, res.Explanation))
	}
}

func (t *Terminal) ShowCompleted(total int) {
	t.printf("\n%s\n", t.paint(ansiGreen, fmt.Sprintf("All done! You answered every quiz (%d total).", total)))
}

func (t *Terminal) Notify(msg string) {
	t.printf("%s\n", t.paint(ansiYellow, "! "+msg))
}

// Dashboards

// SessionList renders the joinable session table.
func (t *Terminal) SessionList(sessions []models.Session) {
	if len(sessions) == 0 {
		t.printf("no sessions available\n")
		return
	}
	t.printf("\n%s\n", t.paint(ansiBold, "Sessions"))
	for _, s := range sessions {
		marker := " "
		if s.IsParticipant {
			marker = t.paint(ansiGreen, "*")
		}
		status := t.paint(ansiDim, "inactive")
		if s.IsActive {
			status = t.paint(ansiGreen, "active")
		}
		t.printf("%s [%d] %s (%s, %d participants, created %s)\n",
			marker, s.ID, s.Title, status, s.ParticipantCount, humanize.Time(s.CreatedAt))
		if s.Description != "" {
			t.printf("      %s\n", t.paint(ansiDim, s.Description))
		}
	}
}

// SessionDetail renders one session including its participants.
func (t *Terminal) SessionDetail(d models.SessionDetail) {
	t.printf("\n%s\n", t.paint(ansiBold, d.Title))
	t.printf("speaker: %s | organizer: %s | invite code: %s\n", d.Speaker, d.Organizer, t.paint(ansiCyan, d.InviteCode))
	t.printf("created %s\n", humanize.Time(d.CreatedAt))
	t.printf("participants (%d): %s\n", len(d.Participants), strings.Join(d.Participants, ", "))
}

// Statistics renders the organizer dashboard with progress bars.
func (t *Terminal) Statistics(stats models.Statistics) {
	t.printf("\n%s\n", t.paint(ansiBold, "Statistics"))
	t.printf("participants: %s | quizzes: %s | answers: %s\n",
		humanize.Comma(int64(stats.ParticipantCount)),
		humanize.Comma(int64(stats.QuizCount)),
		humanize.Comma(int64(stats.AnswerCount)))
	t.printf("accuracy: %s %s\n", ProgressBar(stats.Accuracy, 20), FormatPercent(stats.Accuracy))
	for _, q := range stats.PerQuiz {
		t.printf("  [%d] %s\n", q.QuizID, q.Question)
		t.printf("      %s %s (%d answers)\n", ProgressBar(q.Accuracy, 20), FormatPercent(q.Accuracy), q.AnswerCount)
	}
}

// Overview renders a single session's aggregate progress.
func (t *Terminal) Overview(o models.SessionOverview) {
	t.printf("\n%s\n", t.paint(ansiBold, o.Title))
	t.printf("participants: %d | quizzes answered: %d/%d\n", o.ParticipantCount, o.AnsweredCount, o.QuizCount)
	t.printf("accuracy: %s %s\n", ProgressBar(o.Accuracy, 20), FormatPercent(o.Accuracy))
}

// Feedback renders per-category counts; comments only for expanded.
func (t *Terminal) Feedback(resp models.FeedbackDetailsResponse, expanded string) {
	t.printf("\n%s (%d responses)\n", t.paint(ansiBold, "Feedback"), resp.Total)
	for _, cat := range resp.Categories {
		t.printf("  %-12s %s %s (%d)\n", cat.Category, ProgressBar(cat.Percentage, 14), FormatPercent(cat.Percentage), cat.Count)
		if cat.Category == expanded {
			for _, comment := range cat.Comments {
				t.printf("    - %s\n", comment)
			}
		}
	}
}

// Discussions renders a quiz's comment thread.
func (t *Terminal) Discussions(list []models.Discussion) {
	if len(list) == 0 {
		t.printf("no comments yet\n")
		return
	}
	for _, d := range list {
		t.printf("[%s, %s] %s\n", d.Author, humanize.Time(d.CreatedAt), d.Content)
	}
}

// Drafts renders speaker-authored quizzes awaiting upload.
func (t *Terminal) Drafts(drafts []models.QuizDraft) {
	if len(drafts) == 0 {
		t.printf("no drafts\n")
		return
	}
	for i, d := range drafts {
		t.printf("%d. %s (answer %s, %ds)\n", i+1, d.Question, d.CorrectAnswer, d.TimeLimit)
	}
}

// Published renders the published quiz list for a session.
func (t *Terminal) Published(items []models.QuizItem) {
	if len(items) == 0 {
		t.printf("nothing published yet\n")
		return
	}
	for _, q := range items {
		t.printf("[%d] %s (%ds)\n", q.ID, q.Question, q.EffectiveTimeLimit())
	}
}

// ProgressBar renders a fixed-width bar for a 0-100 percentage.
func ProgressBar(percent float64, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := int(percent/100*float64(width) + 0.5)
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

// FormatPercent renders a percentage with one decimal place.
func FormatPercent(percent float64) string {
	return fmt.Sprintf("%.1f%%", percent)
}
