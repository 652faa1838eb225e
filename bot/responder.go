package bot

import (
	"strings"

	"realestate-bot/models"
	"realestate-bot/services"
	"realestate-bot/utils"
)

// Outcome classifies how a message was answered.
type Outcome string

const (
	OutcomeGreeting  Outcome = "greeting"
	OutcomeResults   Outcome = "results"
	OutcomeNoResults Outcome = "no_results"
)

// Reply is the answer to one inbound message.
type Reply struct {
	Text    string
	Outcome Outcome
	Applied []string
	Matches int
}

// Responder turns inbound message text into reply text. It keeps no state
// between messages.
type Responder struct {
	table  *models.Table
	engine *services.FilterEngine
	logger *utils.Logger
}

// NewResponder creates a Responder over a loaded table.
func NewResponder(table *models.Table, engine *services.FilterEngine, logger *utils.Logger) *Responder {
	return &Responder{table: table, engine: engine, logger: logger}
}

// Table returns the table the responder answers from.
func (r *Responder) Table() *models.Table {
	return r.table
}

// Reply answers one message. A bare greeting gets the welcome text without
// touching the table.
func (r *Responder) Reply(text string) Reply {
	incoming := strings.TrimSpace(text)

	if IsGreeting(incoming) {
		return Reply{Text: welcomeMessage, Outcome: OutcomeGreeting}
	}

	res := r.engine.Filter(r.table, incoming)
	r.logger.Debug("[bot] %q → predicates %v, %d matches", incoming, res.Applied, len(res.Listings))

	if len(res.Listings) == 0 {
		return Reply{Text: noResultsMessage, Outcome: OutcomeNoResults, Applied: res.Applied}
	}

	return Reply{
		Text:    FormatListings(res.Listings),
		Outcome: OutcomeResults,
		Applied: res.Applied,
		Matches: len(res.Listings),
	}
}

// IsGreeting reports whether text is exactly one of the greeting words,
// ignoring case and surrounding whitespace.
func IsGreeting(text string) bool {
	_, ok := greetings[strings.ToLower(strings.TrimSpace(text))]
	return ok
}
