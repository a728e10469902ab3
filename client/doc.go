// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package client implements the typed HTTP client for the quiz backend.

# Creating a Client

	c, err := client.New("https://lectern.example.com", 10*time.Second)

The client keeps a cookie jar for the backend session and tags every request
with X-Request-ID (fresh UUID) and X-Client-ID (stable per process) for log
correlation.

# Error Mapping

Every method returns exactly one of the taxonomy errors from the models
package:

  - 401 → *models.AuthError
  - 403 → *models.PermissionError
  - transport failure or undecodable body → *models.NetworkError
  - any other non-2xx → *models.ServerError with the server-supplied message

Dispatch with errors.As:

	var authErr *models.AuthError
	if errors.As(err, &authErr) { ... }

# Endpoints

Auth: Profile, Logout.

Sessions: ListSessions, JoinSession, LeaveSession, SessionDetail,
ActivateSession.

Quiz flow: QuizSequence, AutoActivateNext, SubmitAnswer (POST
/api/quiz/answer) and SubmitToSession (POST /api/quiz/submit; which one the
flow uses is a configuration choice).

Speaker authoring: GenerateQuizzes, UploadQuizzes, SendToAudience,
SendAllToAudience, PublishedQuizzes.

Dashboards: FeedbackDetails, SessionOverview, Statistics, Discussions,
PostDiscussion.
*/
package client
