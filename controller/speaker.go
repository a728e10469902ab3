// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package controller

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/danielhkuo/lectern/client"
	"github.com/danielhkuo/lectern/display"
	"github.com/danielhkuo/lectern/models"
)

// Speaker is the authoring-side controller: generate quiz drafts from
// material, upload them, publish to the audience, and review feedback and
// discussions for the selected session.
type Speaker struct {
	api  *client.Client
	term *display.Terminal

	sessionID int
	drafts    []models.QuizDraft
}

// NewSpeaker wires the speaker controller.
func NewSpeaker(api *client.Client, term *display.Terminal) *Speaker {
	return &Speaker{api: api, term: term}
}

const speakerHelp = "commands: sessions | detail <id> | use <id> | generate <material> | drafts | upload | published | send <quiz id> | sendall | feedback [category] | discuss <quiz id> <text> | comments <quiz id> | quit"

// Run reads commands from in until EOF or "quit".
func (s *Speaker) Run(ctx context.Context, in io.Reader) error {
	s.showSessions(ctx)
	s.term.Notify(speakerHelp)

	lines := readLines(in)
	for {
		var line string
		select {
		case <-ctx.Done():
			return ctx.Err()
		case raw, ok := <-lines:
			if !ok {
				return nil
			}
			line = strings.TrimSpace(raw)
		}
		if line == "" {
			continue
		}
		word, rest := splitCommand(line)

		switch word {
		case "q", "quit", "logout":
			return nil
		case "help":
			s.term.Notify(speakerHelp)
		case "sessions":
			s.showSessions(ctx)
		case "detail":
			s.detail(ctx, rest)
		case "use":
			s.use(rest)
		case "generate":
			s.generate(ctx, rest)
		case "drafts":
			s.term.Drafts(s.drafts)
		case "upload":
			s.upload(ctx)
		case "published":
			s.published(ctx)
		case "send":
			s.send(ctx, rest)
		case "sendall":
			s.sendAll(ctx)
		case "feedback":
			s.feedback(ctx, rest)
		case "discuss":
			s.discuss(ctx, rest)
		case "comments":
			s.comments(ctx, rest)
		default:
			s.term.Notify(fmt.Sprintf("unknown command %q (try 'help')", word))
		}
	}
}

// requireSession reports whether a session has been selected with "use".
func (s *Speaker) requireSession() bool {
	if s.sessionID == 0 {
		s.term.Notify("select a session first: use <id>")
		return false
	}
	return true
}

func (s *Speaker) detail(ctx context.Context, rest string) {
	id, ok := parseID(s.term, rest, "usage: detail <session id>")
	if !ok {
		return
	}
	d, err := s.api.SessionDetail(ctx, id)
	if err != nil {
		s.term.Notify(err.Error())
		return
	}
	s.term.SessionDetail(d)
}

func (s *Speaker) use(rest string) {
	id, err := strconv.Atoi(strings.TrimSpace(rest))
	if err != nil || id <= 0 {
		s.term.Notify("usage: use <session id>")
		return
	}
	s.sessionID = id
	s.term.Notify(fmt.Sprintf("working on session %d", id))
}

func (s *Speaker) generate(ctx context.Context, material string) {
	if !s.requireSession() {
		return
	}
	if strings.TrimSpace(material) == "" {
		s.term.Notify("usage: generate <material text>")
		return
	}
	drafts, err := s.api.GenerateQuizzes(ctx, models.GenerateQuizRequest{
		SessionID: s.sessionID,
		Material:  material,
	})
	if err != nil {
		s.term.Notify(err.Error())
		return
	}
	s.drafts = append(s.drafts, drafts...)
	s.term.Notify(fmt.Sprintf("%d drafts generated (%d pending upload)", len(drafts), len(s.drafts)))
}

func (s *Speaker) upload(ctx context.Context) {
	if !s.requireSession() {
		return
	}
	if len(s.drafts) == 0 {
		s.term.Notify("nothing to upload; generate drafts first")
		return
	}
	created, err := s.api.UploadQuizzes(ctx, models.UploadQuizzesRequest{
		SessionID: s.sessionID,
		Quizzes:   s.drafts,
	})
	if err != nil {
		s.term.Notify(err.Error())
		return
	}
	s.drafts = nil
	s.term.Notify(fmt.Sprintf("%d quizzes uploaded", created))
}

func (s *Speaker) published(ctx context.Context) {
	if !s.requireSession() {
		return
	}
	items, err := s.api.PublishedQuizzes(ctx, s.sessionID)
	if err != nil {
		s.term.Notify(err.Error())
		return
	}
	s.term.Published(items)
}

func (s *Speaker) send(ctx context.Context, rest string) {
	quizID, err := strconv.Atoi(strings.TrimSpace(rest))
	if err != nil || quizID <= 0 {
		s.term.Notify("usage: send <quiz id>")
		return
	}
	if err := s.api.SendToAudience(ctx, quizID); err != nil {
		s.term.Notify(err.Error())
		return
	}
	s.term.Notify(fmt.Sprintf("quiz %d sent to the audience", quizID))
}

func (s *Speaker) sendAll(ctx context.Context) {
	if !s.requireSession() {
		return
	}
	if err := s.api.SendAllToAudience(ctx, s.sessionID); err != nil {
		s.term.Notify(err.Error())
		return
	}
	s.term.Notify("all pending quizzes sent to the audience")
}

func (s *Speaker) feedback(ctx context.Context, category string) {
	if !s.requireSession() {
		return
	}
	resp, err := s.api.FeedbackDetails(ctx, s.sessionID)
	if err != nil {
		s.term.Notify(err.Error())
		return
	}
	s.term.Feedback(resp, strings.TrimSpace(category))
}

func (s *Speaker) discuss(ctx context.Context, rest string) {
	idWord, content := splitCommand(rest)
	quizID, err := strconv.Atoi(idWord)
	if err != nil || quizID <= 0 || strings.TrimSpace(content) == "" {
		s.term.Notify("usage: discuss <quiz id> <text>")
		return
	}
	if _, err := s.api.PostDiscussion(ctx, quizID, content); err != nil {
		s.term.Notify(err.Error())
		return
	}
	s.term.Notify("comment posted")
}

func (s *Speaker) comments(ctx context.Context, rest string) {
	quizID, err := strconv.Atoi(strings.TrimSpace(rest))
	if err != nil || quizID <= 0 {
		s.term.Notify("usage: comments <quiz id>")
		return
	}
	list, err := s.api.Discussions(ctx, quizID)
	if err != nil {
		s.term.Notify(err.Error())
		return
	}
	s.term.Discussions(list)
}

func (s *Speaker) showSessions(ctx context.Context) {
	sessions, err := s.api.ListSessions(ctx)
	if err != nil {
		s.term.Notify(err.Error())
		return
	}
	s.term.SessionList(sessions)
}

// splitCommand separates the first word from the remainder of a line.
func splitCommand(line string) (string, string) {
	word, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	return word, strings.TrimSpace(rest)
}

// readLines scans r on its own goroutine. Reading stdin is not
// interruptible, so the controllers select over this channel and the
// context instead of blocking in Scan; the channel closes at EOF.
func readLines(r io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			lines <- sc.Text()
		}
	}()
	return lines
}
