// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/danielhkuo/lectern/models"
)

// FakeBackend is an in-memory implementation of the quiz REST contract,
// served over httptest. Tests mutate its state directly and point a real
// client at Server.URL.
type FakeBackend struct {
	mu sync.Mutex

	Server *httptest.Server

	// Auth state
	User         models.User
	Unauthorized bool

	// Domain state
	Sessions  []models.Session
	sequences map[int][]models.QuizItem // session ID -> published items
	pending   map[int][]models.QuizItem // session ID -> not yet activated
	correct   map[int]string            // quiz ID -> correct letter

	Feedback    models.FeedbackDetailsResponse
	Overview    models.SessionOverview
	Stats       models.Statistics
	discussions map[int][]models.Discussion

	// Request accounting and fault injection
	SequenceCalls     int
	ActivateNextCalls int
	AnswerCalls       int
	SubmitCalls       int
	SendCalls         int
	SequenceDelay     time.Duration
	FailSequence      bool

	nextQuizID       int
	nextDiscussionID int
}

// NewFakeBackend starts a fake quiz server and registers cleanup with t.
func NewFakeBackend(t *testing.T) *FakeBackend {
	t.Helper()

	f := &FakeBackend{
		User:        models.User{Username: "testuser", Role: "listener"},
		sequences:   make(map[int][]models.QuizItem),
		pending:     make(map[int][]models.QuizItem),
		correct:     make(map[int]string),
		discussions: make(map[int][]models.Discussion),
		nextQuizID:  1,
	}
	f.Server = httptest.NewServer(f.routes())
	t.Cleanup(f.Server.Close)
	return f
}

// URL is the base URL clients should be pointed at.
func (f *FakeBackend) URL() string {
	return f.Server.URL
}

func (f *FakeBackend) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/auth/profile", f.handleProfile)
	mux.HandleFunc("POST /api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusOK, models.MessageResponse{Message: "logged out"})
	})

	mux.HandleFunc("GET /api/session/list", f.handleSessionList)
	mux.HandleFunc("GET /api/session/{id}", f.handleSessionDetail)
	mux.HandleFunc("POST /api/session/{id}/join", f.handleJoin)
	mux.HandleFunc("POST /api/session/{id}/leave", f.handleLeave)
	mux.HandleFunc("POST /api/session/{id}/activate", f.handleActivate)

	mux.HandleFunc("GET /api/quiz/session-sequence/{sessionId}", f.handleSequence)
	mux.HandleFunc("POST /api/quiz/auto-activate-next/{sessionId}", f.handleAutoActivate)
	mux.HandleFunc("POST /api/quiz/answer", f.handleAnswer)
	mux.HandleFunc("POST /api/quiz/submit", f.handleSubmit)

	mux.HandleFunc("GET /api/quiz/session/{id}/published", f.handlePublished)
	mux.HandleFunc("GET /api/quiz/session/{id}/feedback-details", f.handleFeedback)
	mux.HandleFunc("GET /api/quiz/session-overview/{id}", f.handleOverview)
	mux.HandleFunc("GET /api/quiz/statistics/{id}", f.handleStatistics)
	// A literal-free {id} segment would make these patterns ambiguous with
	// the session-sequence and statistics routes above, and ServeMux panics
	// on ambiguous patterns. The trailing wildcard keeps the literal routes
	// more specific; the handlers reject anything but "discussions".
	mux.HandleFunc("GET /api/quiz/{id}/{sub...}", f.handleListDiscussions)
	mux.HandleFunc("POST /api/quiz/{id}/{sub...}", f.handleCreateDiscussion)

	mux.HandleFunc("POST /api/quiz/generate", f.handleGenerate)
	mux.HandleFunc("POST /api/quiz/upload-multiple", f.handleUpload)
	mux.HandleFunc("POST /api/quiz/send-to-audience", f.handleSend)
	mux.HandleFunc("POST /api/quiz/send-all-to-audience", f.handleSend)

	return mux
}

// State helpers

// AddSession registers a session.
func (f *FakeBackend) AddSession(s models.Session) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Sessions = append(f.Sessions, s)
}

// AddQuiz publishes a quiz item to a session's sequence and returns its ID.
func (f *FakeBackend) AddQuiz(sessionID int, correctLetter string, timeLimit int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextQuizID
	f.nextQuizID++
	f.sequences[sessionID] = append(f.sequences[sessionID], models.QuizItem{
		ID:        id,
		Question:  "question " + strconv.Itoa(id),
		OptionA:   "alpha",
		OptionB:   "bravo",
		OptionC:   "charlie",
		OptionD:   "delta",
		TimeLimit: timeLimit,
	})
	f.correct[id] = correctLetter
	return id
}

// AddPendingQuiz queues an item that only auto-activation will publish.
func (f *FakeBackend) AddPendingQuiz(sessionID int, correctLetter string, timeLimit int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextQuizID
	f.nextQuizID++
	f.pending[sessionID] = append(f.pending[sessionID], models.QuizItem{
		ID:        id,
		Question:  "question " + strconv.Itoa(id),
		OptionA:   "alpha",
		OptionB:   "bravo",
		OptionC:   "charlie",
		OptionD:   "delta",
		TimeLimit: timeLimit,
	})
	f.correct[id] = correctLetter
	return id
}

// MarkAnswered sets the has_answered flag on a published quiz.
func (f *FakeBackend) MarkAnswered(sessionID, quizID int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	seq := f.sequences[sessionID]
	for i := range seq {
		if seq[i].ID == quizID {
			seq[i].HasAnswered = true
		}
	}
}

// Counts returns a snapshot of the request counters.
func (f *FakeBackend) Counts() (sequence, activate, answer, submit int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.SequenceCalls, f.ActivateNextCalls, f.AnswerCalls, f.SubmitCalls
}

// Handlers

func (f *FakeBackend) handleProfile(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	unauthorized, user := f.Unauthorized, f.User
	f.mu.Unlock()

	if unauthorized {
		errorResponse(w, http.StatusUnauthorized, "login required")
		return
	}
	jsonResponse(w, http.StatusOK, models.ProfileResponse{User: user})
}

func (f *FakeBackend) handleSessionList(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	sessions := make([]models.Session, len(f.Sessions))
	copy(sessions, f.Sessions)
	f.mu.Unlock()

	jsonResponse(w, http.StatusOK, models.SessionListResponse{Sessions: sessions})
}

func (f *FakeBackend) handleSessionDetail(w http.ResponseWriter, r *http.Request) {
	id := pathInt(r, "id")

	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.Sessions {
		if s.ID == id {
			jsonResponse(w, http.StatusOK, models.SessionDetail{
				Session:      s,
				Participants: []string{f.User.Username},
			})
			return
		}
	}
	errorResponse(w, http.StatusNotFound, "session not found")
}

func (f *FakeBackend) handleJoin(w http.ResponseWriter, r *http.Request) {
	id := pathInt(r, "id")

	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.Sessions {
		if f.Sessions[i].ID != id {
			continue
		}
		if !f.Sessions[i].IsActive {
			errorResponse(w, http.StatusConflict, "session is not active")
			return
		}
		if !f.Sessions[i].IsParticipant {
			f.Sessions[i].IsParticipant = true
			f.Sessions[i].ParticipantCount++
		}
		jsonResponse(w, http.StatusOK, models.MessageResponse{Message: "joined"})
		return
	}
	errorResponse(w, http.StatusNotFound, "session not found")
}

func (f *FakeBackend) handleLeave(w http.ResponseWriter, r *http.Request) {
	id := pathInt(r, "id")

	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.Sessions {
		if f.Sessions[i].ID != id {
			continue
		}
		if f.Sessions[i].IsParticipant {
			f.Sessions[i].IsParticipant = false
			f.Sessions[i].ParticipantCount--
		}
		jsonResponse(w, http.StatusOK, models.MessageResponse{Message: "left"})
		return
	}
	errorResponse(w, http.StatusNotFound, "session not found")
}

func (f *FakeBackend) handleActivate(w http.ResponseWriter, r *http.Request) {
	id := pathInt(r, "id")

	var req models.ActivateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.Sessions {
		if f.Sessions[i].ID == id {
			f.Sessions[i].IsActive = req.IsActive
			jsonResponse(w, http.StatusOK, models.MessageResponse{Message: "updated"})
			return
		}
	}
	errorResponse(w, http.StatusNotFound, "session not found")
}

func (f *FakeBackend) handleSequence(w http.ResponseWriter, r *http.Request) {
	sessionID := pathInt(r, "sessionId")

	f.mu.Lock()
	f.SequenceCalls++
	delay, fail := f.SequenceDelay, f.FailSequence
	items := make([]models.QuizItem, len(f.sequences[sessionID]))
	copy(items, f.sequences[sessionID])
	f.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	if fail {
		errorResponse(w, http.StatusInternalServerError, "sequence unavailable")
		return
	}
	jsonResponse(w, http.StatusOK, models.QuizSequenceResponse{Success: true, QuizSequence: items})
}

func (f *FakeBackend) handleAutoActivate(w http.ResponseWriter, r *http.Request) {
	sessionID := pathInt(r, "sessionId")

	f.mu.Lock()
	defer f.mu.Unlock()
	f.ActivateNextCalls++

	queue := f.pending[sessionID]
	if len(queue) == 0 {
		jsonResponse(w, http.StatusOK, models.AutoActivateResponse{
			Success:      true,
			IsFinished:   true,
			QuizIndex:    len(f.sequences[sessionID]),
			TotalQuizzes: len(f.sequences[sessionID]),
		})
		return
	}

	f.sequences[sessionID] = append(f.sequences[sessionID], queue[0])
	f.pending[sessionID] = queue[1:]
	jsonResponse(w, http.StatusOK, models.AutoActivateResponse{
		Success:      true,
		QuizIndex:    len(f.sequences[sessionID]) - 1,
		TotalQuizzes: len(f.sequences[sessionID]) + len(f.pending[sessionID]),
	})
}

func (f *FakeBackend) grade(quizID int, answer string) (models.AnswerResult, bool) {
	correct, ok := f.correct[quizID]
	if !ok {
		return models.AnswerResult{}, false
	}
	for sessionID, seq := range f.sequences {
		for i := range seq {
			if seq[i].ID == quizID {
				f.sequences[sessionID][i].HasAnswered = true
			}
		}
	}
	return models.AnswerResult{
		IsCorrect:     answer == correct,
		CorrectAnswer: correct,
	}, true
}

func (f *FakeBackend) handleAnswer(w http.ResponseWriter, r *http.Request) {
	var req models.AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.AnswerCalls++
	res, ok := f.grade(req.QuizID, req.Answer)
	if !ok {
		errorResponse(w, http.StatusNotFound, "quiz not found")
		return
	}
	jsonResponse(w, http.StatusOK, res)
}

func (f *FakeBackend) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.SubmitCalls++
	res, ok := f.grade(req.QuizID, req.Answer)
	if !ok {
		errorResponse(w, http.StatusNotFound, "quiz not found")
		return
	}
	jsonResponse(w, http.StatusOK, res)
}

func (f *FakeBackend) handlePublished(w http.ResponseWriter, r *http.Request) {
	sessionID := pathInt(r, "id")

	f.mu.Lock()
	items := make([]models.QuizItem, len(f.sequences[sessionID]))
	copy(items, f.sequences[sessionID])
	f.mu.Unlock()

	jsonResponse(w, http.StatusOK, models.PublishedQuizzesResponse{Quizzes: items})
}

func (f *FakeBackend) handleFeedback(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	feedback := f.Feedback
	f.mu.Unlock()
	jsonResponse(w, http.StatusOK, feedback)
}

func (f *FakeBackend) handleOverview(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	overview := f.Overview
	f.mu.Unlock()
	jsonResponse(w, http.StatusOK, overview)
}

func (f *FakeBackend) handleStatistics(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	stats := f.Stats
	f.mu.Unlock()
	jsonResponse(w, http.StatusOK, stats)
}

func (f *FakeBackend) handleListDiscussions(w http.ResponseWriter, r *http.Request) {
	if r.PathValue("sub") != "discussions" {
		errorResponse(w, http.StatusNotFound, "not found")
		return
	}
	quizID := pathInt(r, "id")

	f.mu.Lock()
	list := make([]models.Discussion, len(f.discussions[quizID]))
	copy(list, f.discussions[quizID])
	f.mu.Unlock()

	jsonResponse(w, http.StatusOK, models.DiscussionListResponse{Discussions: list})
}

func (f *FakeBackend) handleCreateDiscussion(w http.ResponseWriter, r *http.Request) {
	if r.PathValue("sub") != "discussions" {
		errorResponse(w, http.StatusNotFound, "not found")
		return
	}
	quizID := pathInt(r, "id")

	var req models.CreateDiscussionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Content == "" {
		errorResponse(w, http.StatusBadRequest, "content is required")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextDiscussionID++
	d := models.Discussion{
		ID:        f.nextDiscussionID,
		QuizID:    quizID,
		Author:    f.User.Username,
		Content:   req.Content,
		CreatedAt: time.Now(),
	}
	f.discussions[quizID] = append(f.discussions[quizID], d)
	jsonResponse(w, http.StatusCreated, d)
}

func (f *FakeBackend) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Material == "" {
		errorResponse(w, http.StatusBadRequest, "material is required")
		return
	}

	count := req.Count
	if count <= 0 {
		count = 2
	}
	drafts := make([]models.QuizDraft, count)
	for i := range drafts {
		drafts[i] = models.QuizDraft{
			Question:      "generated question " + strconv.Itoa(i+1),
			OptionA:       "alpha",
			OptionB:       "bravo",
			OptionC:       "charlie",
			OptionD:       "delta",
			CorrectAnswer: models.LetterA,
			TimeLimit:     30,
		}
	}
	jsonResponse(w, http.StatusOK, models.GenerateQuizResponse{Quizzes: drafts})
}

func (f *FakeBackend) handleUpload(w http.ResponseWriter, r *http.Request) {
	var req models.UploadQuizzesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for _, d := range req.Quizzes {
		id := f.nextQuizID
		f.nextQuizID++
		f.pending[req.SessionID] = append(f.pending[req.SessionID], models.QuizItem{
			ID:        id,
			Question:  d.Question,
			OptionA:   d.OptionA,
			OptionB:   d.OptionB,
			OptionC:   d.OptionC,
			OptionD:   d.OptionD,
			TimeLimit: d.TimeLimit,
		})
		f.correct[id] = d.CorrectAnswer
	}
	jsonResponse(w, http.StatusCreated, models.UploadQuizzesResponse{Created: len(req.Quizzes)})
}

func (f *FakeBackend) handleSend(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.SendCalls++
	f.mu.Unlock()
	jsonResponse(w, http.StatusOK, models.MessageResponse{Message: "sent"})
}

// Helpers

func pathInt(r *http.Request, name string) int {
	n, _ := strconv.Atoi(r.PathValue(name))
	return n
}

func jsonResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

func errorResponse(w http.ResponseWriter, statusCode int, message string) {
	jsonResponse(w, statusCode, models.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}

// WaitFor polls cond until it returns true or the timeout elapses.
func WaitFor(t *testing.T, timeout time.Duration, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", msg)
}
