// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Answer letter constants
const (
	LetterA = "A"
	LetterB = "B"
	LetterC = "C"
	LetterD = "D"
)

// Letters lists the valid answer letters in display order.
var Letters = []string{LetterA, LetterB, LetterC, LetterD}

// DefaultTimeLimit is applied when a quiz item carries no time limit.
const DefaultTimeLimit = 60 // seconds

// Request types

type ActivateSessionRequest struct {
	IsActive bool `json:"is_active"`
}

type AnswerRequest struct {
	QuizID int    `json:"quiz_id"`
	Answer string `json:"answer"`
}

// SubmitRequest is the alternate submission shape that also carries the
// session ID. Which endpoint the client uses is a configuration choice.
type SubmitRequest struct {
	QuizID    int    `json:"quiz_id"`
	SessionID int    `json:"session_id"`
	Answer    string `json:"answer"`
}

type GenerateQuizRequest struct {
	SessionID int    `json:"session_id"`
	Material  string `json:"material"`
	Count     int    `json:"count,omitempty"`
}

type UploadQuizzesRequest struct {
	SessionID int         `json:"session_id"`
	Quizzes   []QuizDraft `json:"quizzes"`
}

type SendToAudienceRequest struct {
	QuizID int `json:"quiz_id"`
}

type SendAllToAudienceRequest struct {
	SessionID int `json:"session_id"`
}

type CreateDiscussionRequest struct {
	Content string `json:"content"`
}

// Response types

type ProfileResponse struct {
	User User `json:"user"`
}

type SessionListResponse struct {
	Sessions []Session `json:"sessions"`
}

type QuizSequenceResponse struct {
	Success      bool       `json:"success"`
	QuizSequence []QuizItem `json:"quiz_sequence"`
}

type AutoActivateResponse struct {
	Success      bool `json:"success"`
	IsFinished   bool `json:"is_finished"`
	QuizIndex    int  `json:"quiz_index"`
	TotalQuizzes int  `json:"total_quizzes"`
}

type AnswerResult struct {
	IsCorrect     bool   `json:"is_correct"`
	CorrectAnswer string `json:"correct_answer"`
	Explanation   string `json:"explanation,omitempty"`
}

type PublishedQuizzesResponse struct {
	Quizzes []QuizItem `json:"quizzes"`
}

type GenerateQuizResponse struct {
	Quizzes []QuizDraft `json:"quizzes"`
}

type UploadQuizzesResponse struct {
	Created int `json:"created"`
}

type FeedbackDetailsResponse struct {
	Categories []FeedbackCategory `json:"categories"`
	Total      int                `json:"total"`
}

type DiscussionListResponse struct {
	Discussions []Discussion `json:"discussions"`
}

// MessageResponse covers endpoints that return either a confirmation
// message or an error string.
type MessageResponse struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Domain types

type User struct {
	Username string `json:"username"`
	Nickname string `json:"nickname,omitempty"`
	Role     string `json:"role"`
}

// DisplayName prefers the nickname when one is set.
func (u User) DisplayName() string {
	if u.Nickname != "" {
		return u.Nickname
	}
	return u.Username
}

type Session struct {
	ID               int       `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description,omitempty"`
	Speaker          string    `json:"speaker"`
	Organizer        string    `json:"organizer"`
	ParticipantCount int       `json:"participant_count"`
	IsActive         bool      `json:"is_active"`
	IsParticipant    bool      `json:"is_participant"`
	InviteCode       string    `json:"invite_code"`
	CreatedAt        time.Time `json:"created_at"`
}

type SessionDetail struct {
	Session
	Participants []string `json:"participants"`
}

type QuizItem struct {
	ID          int    `json:"id"`
	Question    string `json:"question"`
	OptionA     string `json:"option_a"`
	OptionB     string `json:"option_b"`
	OptionC     string `json:"option_c"`
	OptionD     string `json:"option_d"`
	TimeLimit   int    `json:"time_limit"`
	HasAnswered bool   `json:"has_answered"`
}

// Option returns the option text for a letter, or "" for an unknown letter.
func (q QuizItem) Option(letter string) string {
	switch letter {
	case LetterA:
		return q.OptionA
	case LetterB:
		return q.OptionB
	case LetterC:
		return q.OptionC
	case LetterD:
		return q.OptionD
	}
	return ""
}

// EffectiveTimeLimit returns the item's time limit, falling back to the
// default when the server left it unset.
func (q QuizItem) EffectiveTimeLimit() int {
	if q.TimeLimit <= 0 {
		return DefaultTimeLimit
	}
	return q.TimeLimit
}

// QuizDraft is an unpublished quiz item as authored by a speaker.
type QuizDraft struct {
	Question      string `json:"question"`
	OptionA       string `json:"option_a"`
	OptionB       string `json:"option_b"`
	OptionC       string `json:"option_c"`
	OptionD       string `json:"option_d"`
	CorrectAnswer string `json:"correct_answer"`
	TimeLimit     int    `json:"time_limit,omitempty"`
}

type FeedbackCategory struct {
	Category   string   `json:"category"`
	Count      int      `json:"count"`
	Percentage float64  `json:"percentage"`
	Comments   []string `json:"comments,omitempty"`
}

type Discussion struct {
	ID        int       `json:"id"`
	QuizID    int       `json:"quiz_id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionOverview aggregates a single session's progress for dashboards.
type SessionOverview struct {
	SessionID        int     `json:"session_id"`
	Title            string  `json:"title"`
	ParticipantCount int     `json:"participant_count"`
	QuizCount        int     `json:"quiz_count"`
	AnsweredCount    int     `json:"answered_count"`
	Accuracy         float64 `json:"accuracy"`
}

// Statistics carries cross-session aggregates, computed server-side.
type Statistics struct {
	ParticipantCount int           `json:"participant_count"`
	QuizCount        int           `json:"quiz_count"`
	AnswerCount      int           `json:"answer_count"`
	Accuracy         float64       `json:"accuracy"`
	PerQuiz          []QuizSummary `json:"per_quiz,omitempty"`
}

type QuizSummary struct {
	QuizID      int     `json:"quiz_id"`
	Question    string  `json:"question"`
	AnswerCount int     `json:"answer_count"`
	Accuracy    float64 `json:"accuracy"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
