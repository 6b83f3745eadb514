package action

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"
)

// ErrUnknownCommand is returned for a verb no handler understands
var ErrUnknownCommand = errors.New("unknown command")

// Verbs lists the command-line verbs, aliases included
var Verbs = []string{"q", "quit", "request", "r", "history", "hangup", "hangup!", "dial", "filter", "copy", "tag"}

// ParseCommand splits a command line into a Command. Surrounding
// whitespace and a leading ':' are ignored.
func ParseCommand(line string) (Command, error) {
	fields := strings.Fields(strings.TrimPrefix(strings.TrimSpace(line), ":"))
	if len(fields) == 0 {
		return Command{}, errors.New("empty command")
	}

	cmd := Command{Verb: fields[0], Args: fields[1:]}
	for _, v := range Verbs {
		if v == cmd.Verb {
			return cmd, nil
		}
	}

	if s := Suggest(cmd.Verb); s != "" {
		return cmd, fmt.Errorf("%w %q, did you mean %q?", ErrUnknownCommand, cmd.Verb, s)
	}
	return cmd, fmt.Errorf("%w %q", ErrUnknownCommand, cmd.Verb)
}

// Suggest returns the closest known verb, or "" when nothing is close
func Suggest(verb string) string {
	matches := fuzzy.Find(verb, Verbs)
	if len(matches) > 0 {
		return matches[0].Str
	}
	// fuzzy needs the input as a subsequence; also try the other direction
	for _, v := range Verbs {
		if len(v) > 1 && fuzzy.Find(v, []string{verb}).Len() > 0 {
			return v
		}
	}
	return ""
}
