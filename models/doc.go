// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the JSON types for the Lectern quiz API contract.

# Request Types

Types for request bodies sent to the backend:

  - ActivateSessionRequest: is_active
  - AnswerRequest: quiz_id, answer
  - SubmitRequest: quiz_id, session_id, answer (alternate submit endpoint)
  - GenerateQuizRequest: session_id, material, count
  - UploadQuizzesRequest: session_id, quizzes
  - SendToAudienceRequest / SendAllToAudienceRequest
  - CreateDiscussionRequest: content

# Response Types

Types for decoding backend responses:

  - ProfileResponse: user
  - SessionListResponse: sessions
  - QuizSequenceResponse: success, quiz_sequence
  - AutoActivateResponse: success, is_finished, quiz_index, total_quizzes
  - AnswerResult: is_correct, correct_answer, explanation
  - FeedbackDetailsResponse / DiscussionListResponse
  - MessageResponse: message or error
  - ErrorResponse: error, message

# Domain Types

  - User: profile of the signed-in user
  - Session: a live quiz event with active/participant flags
  - SessionDetail: Session plus participants
  - QuizItem: one multiple-choice question (options A-D, time limit,
    per-listener has_answered flag)
  - QuizDraft: a speaker-authored question before publication
  - SessionOverview, Statistics, QuizSummary: dashboard aggregates

# Roles

A closed enum replaces role strings scattered through the code:

	role, err := models.ParseRole("listener")

Valid roles: RoleListener, RoleSpeaker, RoleOrganizer.

# Constants

Answer letters:

	LetterA, LetterB, LetterC, LetterD

DefaultTimeLimit (60s) applies when the server omits a quiz time limit.
*/
package models
