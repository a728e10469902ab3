// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package controller ties the typed backend client, the terminal display, and
the quiz flow together into one interactive loop per role.

Gate runs first for every role: it fetches the signed-in profile and
refuses to continue when the account's role does not match the role the
process was started for, so a listener binary can never drive speaker
endpoints by accident.

The three controllers share a line-oriented command style:

  - Listener browses sessions and joins one; once joined, input lines are
    translated into quizflow commands and the runner drives the
    poll/answer loop until the user leaves.
  - Speaker selects a working session, generates drafts from material,
    uploads them, and publishes to the audience one at a time or all at
    once; it can also read feedback and quiz discussions.
  - Organizer inspects session details, toggles the active flag, and reads
    the overview, statistics, and feedback dashboards.

Controllers never touch quiz state directly. The listener hands all quiz
interaction to quizflow.Runner; the other two roles are plain
request/render loops.
*/
package controller
