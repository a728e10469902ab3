// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package display renders the quiz flow and the role dashboards to a terminal.

Terminal implements quizflow.View. Color is switched on automatically when
the output writer is an interactive terminal and left off when output is
piped, so logs and test captures stay free of escape codes. All writes go
through one mutex because the quiz runner and the controller's own prompts
share the writer.

The package also owns input parsing: ParseCommand maps one line of user
input to a quizflow.Command (answer letters, submit, leave). The
controller, not this package, decides what to do with lines that are not
quiz commands.
*/
package display
