// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package display

import (
	"strings"

	"github.com/danielhkuo/lectern/quizflow"
)

// ParseCommand turns one input line into a quiz command. The second return
// is false for blank lines and unrecognized input.
func ParseCommand(line string) (quizflow.Command, bool) {
	word := strings.ToLower(strings.TrimSpace(line))
	switch word {
	case "":
		return quizflow.Command{}, false
	case "a", "b", "c", "d":
		return quizflow.Command{Kind: quizflow.CmdSelect, Letter: strings.ToUpper(word)}, true
	case "s", "submit":
		return quizflow.Command{Kind: quizflow.CmdSubmit}, true
	case "leave", "q", "quit":
		return quizflow.Command{Kind: quizflow.CmdLeave}, true
	}
	return quizflow.Command{}, false
}
