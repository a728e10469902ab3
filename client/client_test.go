// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/lectern/client"
	"github.com/danielhkuo/lectern/models"
	"github.com/danielhkuo/lectern/testutil"
)

func newTestClient(t *testing.T, baseURL string) *client.Client {
	t.Helper()
	c, err := client.New(baseURL, 2*time.Second)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestProfile(t *testing.T) {
	backend := testutil.NewFakeBackend(t)
	backend.User = models.User{Username: "ada", Nickname: "Ada", Role: "speaker"}
	c := newTestClient(t, backend.URL())

	user, err := c.Profile(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if user.Username != "ada" || user.Role != "speaker" {
		t.Errorf("unexpected user: %+v", user)
	}
	if user.DisplayName() != "Ada" {
		t.Errorf("expected nickname preferred, got %q", user.DisplayName())
	}
}

func TestProfileUnauthorized(t *testing.T) {
	backend := testutil.NewFakeBackend(t)
	backend.Unauthorized = true
	c := newTestClient(t, backend.URL())

	_, err := c.Profile(context.Background())
	var authErr *models.AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthError, got %v", err)
	}
	if authErr.Message != "login required" {
		t.Errorf("expected server message, got %q", authErr.Message)
	}
}

func TestJoinInactiveSession(t *testing.T) {
	backend := testutil.NewFakeBackend(t)
	backend.AddSession(models.Session{ID: 7, Title: "Paused", IsActive: false})
	c := newTestClient(t, backend.URL())

	err := c.JoinSession(context.Background(), 7)
	var srvErr *models.ServerError
	if !errors.As(err, &srvErr) {
		t.Fatalf("expected ServerError, got %v", err)
	}
	if srvErr.Status != http.StatusConflict {
		t.Errorf("expected 409, got %d", srvErr.Status)
	}
	if srvErr.Message != "session is not active" {
		t.Errorf("expected server-supplied message, got %q", srvErr.Message)
	}
}

func TestJoinAndListSessions(t *testing.T) {
	backend := testutil.NewFakeBackend(t)
	backend.AddSession(models.Session{ID: 1, Title: "Live", IsActive: true})
	c := newTestClient(t, backend.URL())

	if err := c.JoinSession(context.Background(), 1); err != nil {
		t.Fatal(err)
	}

	sessions, err := c.ListSessions(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 1 || !sessions[0].IsParticipant {
		t.Errorf("expected joined session in list, got %+v", sessions)
	}
	if sessions[0].ParticipantCount != 1 {
		t.Errorf("expected participant count 1, got %d", sessions[0].ParticipantCount)
	}
}

func TestQuizSequenceAndAnswer(t *testing.T) {
	backend := testutil.NewFakeBackend(t)
	backend.AddSession(models.Session{ID: 1, Title: "Live", IsActive: true})
	quizID := backend.AddQuiz(1, models.LetterB, 30)
	c := newTestClient(t, backend.URL())

	seq, err := c.QuizSequence(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(seq) != 1 || seq[0].ID != quizID || seq[0].HasAnswered {
		t.Fatalf("unexpected sequence: %+v", seq)
	}

	res, err := c.SubmitAnswer(context.Background(), quizID, models.LetterA)
	if err != nil {
		t.Fatal(err)
	}
	if res.IsCorrect {
		t.Error("A should be wrong")
	}
	if res.CorrectAnswer != models.LetterB {
		t.Errorf("expected correct answer B, got %q", res.CorrectAnswer)
	}

	// The sequence now reports the item as answered.
	seq, err = c.QuizSequence(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if !seq[0].HasAnswered {
		t.Error("expected has_answered after submission")
	}
}

func TestSubmitToSessionEndpoint(t *testing.T) {
	backend := testutil.NewFakeBackend(t)
	quizID := backend.AddQuiz(1, models.LetterC, 30)
	c := newTestClient(t, backend.URL())

	res, err := c.SubmitToSession(context.Background(), quizID, 1, models.LetterC)
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsCorrect {
		t.Error("C should be correct")
	}

	_, _, _, submits := backend.Counts()
	if submits != 1 {
		t.Errorf("expected the alternate endpoint to be hit once, got %d", submits)
	}
}

func TestNetworkError(t *testing.T) {
	backend := testutil.NewFakeBackend(t)
	url := backend.URL()
	backend.Server.Close()
	c := newTestClient(t, url)

	_, err := c.Profile(context.Background())
	var netErr *models.NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected NetworkError, got %v", err)
	}
}

func TestRequestCorrelationHeaders(t *testing.T) {
	var requestID, clientID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID = r.Header.Get("X-Request-ID")
		clientID = r.Header.Get("X-Client-ID")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"user":{"username":"x","role":"listener"}}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	if _, err := c.Profile(context.Background()); err != nil {
		t.Fatal(err)
	}

	if requestID == "" {
		t.Error("expected X-Request-ID header")
	}
	if clientID != c.InstanceID() {
		t.Errorf("expected X-Client-ID %q, got %q", c.InstanceID(), clientID)
	}
}

func TestDiscussions(t *testing.T) {
	backend := testutil.NewFakeBackend(t)
	c := newTestClient(t, backend.URL())

	posted, err := c.PostDiscussion(context.Background(), 5, "great question")
	if err != nil {
		t.Fatal(err)
	}
	if posted.Content != "great question" || posted.QuizID != 5 {
		t.Errorf("unexpected discussion: %+v", posted)
	}

	list, err := c.Discussions(context.Background(), 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].ID != posted.ID {
		t.Errorf("expected posted discussion in list, got %+v", list)
	}
}

func TestSpeakerAuthoringFlow(t *testing.T) {
	backend := testutil.NewFakeBackend(t)
	c := newTestClient(t, backend.URL())

	drafts, err := c.GenerateQuizzes(context.Background(), models.GenerateQuizRequest{
		SessionID: 1,
		Material:  "lecture notes",
		Count:     3,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(drafts) != 3 {
		t.Fatalf("expected 3 drafts, got %d", len(drafts))
	}

	created, err := c.UploadQuizzes(context.Background(), models.UploadQuizzesRequest{
		SessionID: 1,
		Quizzes:   drafts,
	})
	if err != nil {
		t.Fatal(err)
	}
	if created != 3 {
		t.Errorf("expected 3 created, got %d", created)
	}

	if err := c.SendAllToAudience(context.Background(), 1); err != nil {
		t.Fatal(err)
	}
}
