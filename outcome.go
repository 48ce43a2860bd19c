package feedback

import (
	"fmt"
	"regexp"
)

// UnknownTicket is the ticket number reported when none could be parsed.
const UnknownTicket = "Unknown"

var (
	ticketPattern = regexp.MustCompile(`successfully: (DSRT\d+)`)
	linkPattern   = regexp.MustCompile(`Link: (https://\S+)`)
)

// OutcomeParser derives Outcomes from collaborator runs.
type OutcomeParser struct {
	// Clean, when set, is applied to a copy of stdout before the ticket
	// patterns are matched. Error messages and RawOutput use the streams as
	// captured.
	Clean func(string) string
}

// ParseOutcome parses res with a zero OutcomeParser.
func ParseOutcome(res ExecutionResult) (*Outcome, error) {
	return OutcomeParser{}.Parse(res)
}

// Parse derives an Outcome from res. A non-zero exit status yields
// *ExecutionError carrying stderr, or stdout when stderr is empty. A clean
// exit is always a success; ticket fields that cannot be found in stdout fall
// back to UnknownTicket and an empty link.
func (p OutcomeParser) Parse(res ExecutionResult) (*Outcome, error) {
	if res.ExitCode != 0 {
		msg := res.Stderr
		if msg == "" {
			msg = res.Stdout
		}
		return nil, &ExecutionError{ExitCode: res.ExitCode, Message: msg}
	}

	text := res.Stdout
	if p.Clean != nil {
		text = p.Clean(text)
	}
	number := UnknownTicket
	if m := ticketPattern.FindStringSubmatch(text); m != nil {
		number = m[1]
	}
	var link string
	if m := linkPattern.FindStringSubmatch(text); m != nil {
		link = m[1]
	}

	return &Outcome{
		Success:      true,
		TicketNumber: number,
		TicketLink:   link,
		Message:      fmt.Sprintf("Feedback submitted successfully: %s\n\n%s", number, link),
		RawOutput:    res.Stdout,
	}, nil
}
