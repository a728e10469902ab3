// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/lectern/models"
)

// Client is a typed HTTP client for the quiz backend. Session auth rides on
// cookies, so the jar must survive for the lifetime of the client.
type Client struct {
	baseURL    string
	http       *http.Client
	instanceID string
}

// New creates a Client for the given base URL.
func New(baseURL string, timeout time.Duration) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Jar:     jar,
			Timeout: timeout,
		},
		instanceID: uuid.NewString(),
	}, nil
}

// InstanceID identifies this client process in backend logs.
func (c *Client) InstanceID() string {
	return c.instanceID
}

// do runs one request against the backend and maps the outcome onto the
// error taxonomy. out may be nil when the response body is irrelevant.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	req.Header.Set("X-Client-ID", c.instanceID)

	resp, err := c.http.Do(req)
	if err != nil {
		return &models.NetworkError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &models.NetworkError{Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return &models.AuthError{Message: serverMessage(raw)}
	case resp.StatusCode == http.StatusForbidden:
		return &models.PermissionError{Message: serverMessage(raw)}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		slog.Warn("request failed", "method", method, "path", path, "status", resp.StatusCode)
		return &models.ServerError{Status: resp.StatusCode, Message: serverMessage(raw)}
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return &models.NetworkError{Err: fmt.Errorf("malformed response for %s: %w", path, err)}
		}
	}

	return nil
}

// serverMessage extracts a human-readable message from an error body.
func serverMessage(raw []byte) string {
	var body models.ErrorResponse
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	if body.Message != "" {
		return body.Message
	}
	return body.Error
}

// Profile fetches the signed-in user. A 401 surfaces as *models.AuthError.
func (c *Client) Profile(ctx context.Context) (models.User, error) {
	var resp models.ProfileResponse
	if err := c.do(ctx, http.MethodGet, "/api/auth/profile", nil, &resp); err != nil {
		return models.User{}, err
	}
	return resp.User, nil
}

// Logout ends the backend session.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}

// ListSessions fetches every session visible to the user.
func (c *Client) ListSessions(ctx context.Context) ([]models.Session, error) {
	var resp models.SessionListResponse
	if err := c.do(ctx, http.MethodGet, "/api/session/list", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Sessions, nil
}

// JoinSession adds the user to a session's participants.
func (c *Client) JoinSession(ctx context.Context, sessionID int) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/session/%d/join", sessionID), nil, nil)
}

// LeaveSession removes the user from a session's participants.
func (c *Client) LeaveSession(ctx context.Context, sessionID int) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/session/%d/leave", sessionID), nil, nil)
}

// SessionDetail fetches a full session record including participants.
func (c *Client) SessionDetail(ctx context.Context, sessionID int) (models.SessionDetail, error) {
	var resp models.SessionDetail
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/session/%d", sessionID), nil, &resp); err != nil {
		return models.SessionDetail{}, err
	}
	return resp, nil
}

// ActivateSession toggles a session's active flag.
func (c *Client) ActivateSession(ctx context.Context, sessionID int, active bool) error {
	req := models.ActivateSessionRequest{IsActive: active}
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/session/%d/activate", sessionID), req, nil)
}

// QuizSequence fetches the ordered quiz list for a session with per-item
// answered status.
func (c *Client) QuizSequence(ctx context.Context, sessionID int) ([]models.QuizItem, error) {
	var resp models.QuizSequenceResponse
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/quiz/session-sequence/%d", sessionID), nil, &resp); err != nil {
		return nil, err
	}
	return resp.QuizSequence, nil
}

// AutoActivateNext asks the server to make the next quiz in the sequence live.
func (c *Client) AutoActivateNext(ctx context.Context, sessionID int) (models.AutoActivateResponse, error) {
	var resp models.AutoActivateResponse
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/quiz/auto-activate-next/%d", sessionID), nil, &resp); err != nil {
		return models.AutoActivateResponse{}, err
	}
	return resp, nil
}

// SubmitAnswer submits a single-choice answer for a quiz.
func (c *Client) SubmitAnswer(ctx context.Context, quizID int, answer string) (models.AnswerResult, error) {
	var resp models.AnswerResult
	req := models.AnswerRequest{QuizID: quizID, Answer: answer}
	if err := c.do(ctx, http.MethodPost, "/api/quiz/answer", req, &resp); err != nil {
		return models.AnswerResult{}, err
	}
	return resp, nil
}

// SubmitToSession submits an answer via the alternate endpoint that also
// names the session.
func (c *Client) SubmitToSession(ctx context.Context, quizID, sessionID int, answer string) (models.AnswerResult, error) {
	var resp models.AnswerResult
	req := models.SubmitRequest{QuizID: quizID, SessionID: sessionID, Answer: answer}
	if err := c.do(ctx, http.MethodPost, "/api/quiz/submit", req, &resp); err != nil {
		return models.AnswerResult{}, err
	}
	return resp, nil
}

// PublishedQuizzes lists the quizzes a speaker has published to a session.
func (c *Client) PublishedQuizzes(ctx context.Context, sessionID int) ([]models.QuizItem, error) {
	var resp models.PublishedQuizzesResponse
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/quiz/session/%d/published", sessionID), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Quizzes, nil
}

// FeedbackDetails fetches aggregated feedback counts and comments.
func (c *Client) FeedbackDetails(ctx context.Context, sessionID int) (models.FeedbackDetailsResponse, error) {
	var resp models.FeedbackDetailsResponse
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/quiz/session/%d/feedback-details", sessionID), nil, &resp); err != nil {
		return models.FeedbackDetailsResponse{}, err
	}
	return resp, nil
}

// SessionOverview fetches a single session's aggregate progress.
func (c *Client) SessionOverview(ctx context.Context, sessionID int) (models.SessionOverview, error) {
	var resp models.SessionOverview
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/quiz/session-overview/%d", sessionID), nil, &resp); err != nil {
		return models.SessionOverview{}, err
	}
	return resp, nil
}

// Statistics fetches server-computed aggregates for the dashboard.
func (c *Client) Statistics(ctx context.Context, sessionID int) (models.Statistics, error) {
	var resp models.Statistics
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/quiz/statistics/%d", sessionID), nil, &resp); err != nil {
		return models.Statistics{}, err
	}
	return resp, nil
}

// Discussions lists free-text comments attached to a quiz.
func (c *Client) Discussions(ctx context.Context, quizID int) ([]models.Discussion, error) {
	var resp models.DiscussionListResponse
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/quiz/%d/discussions", quizID), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Discussions, nil
}

// PostDiscussion adds a comment to a quiz.
func (c *Client) PostDiscussion(ctx context.Context, quizID int, content string) (models.Discussion, error) {
	var resp models.Discussion
	req := models.CreateDiscussionRequest{Content: content}
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/quiz/%d/discussions", quizID), req, &resp); err != nil {
		return models.Discussion{}, err
	}
	return resp, nil
}

// GenerateQuizzes asks the backend to draft quiz items from uploaded material.
func (c *Client) GenerateQuizzes(ctx context.Context, req models.GenerateQuizRequest) ([]models.QuizDraft, error) {
	var resp models.GenerateQuizResponse
	if err := c.do(ctx, http.MethodPost, "/api/quiz/generate", req, &resp); err != nil {
		return nil, err
	}
	return resp.Quizzes, nil
}

// UploadQuizzes bulk-creates quiz items and returns how many were created.
func (c *Client) UploadQuizzes(ctx context.Context, req models.UploadQuizzesRequest) (int, error) {
	var resp models.UploadQuizzesResponse
	if err := c.do(ctx, http.MethodPost, "/api/quiz/upload-multiple", req, &resp); err != nil {
		return 0, err
	}
	return resp.Created, nil
}

// SendToAudience broadcasts a single quiz to the session's listeners.
func (c *Client) SendToAudience(ctx context.Context, quizID int) error {
	req := models.SendToAudienceRequest{QuizID: quizID}
	return c.do(ctx, http.MethodPost, "/api/quiz/send-to-audience", req, nil)
}

// SendAllToAudience broadcasts every pending quiz for a session.
func (c *Client) SendAllToAudience(ctx context.Context, sessionID int) error {
	req := models.SendAllToAudienceRequest{SessionID: sessionID}
	return c.do(ctx, http.MethodPost, "/api/quiz/send-all-to-audience", req, nil)
}
