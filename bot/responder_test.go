package bot

import (
	"database/sql"
	"strings"
	"testing"

	"realestate-bot/models"
	"realestate-bot/services"
	"realestate-bot/utils"
)

func num(v float64) sql.NullFloat64 { return sql.NullFloat64{Float64: v, Valid: true} }

func sampleTable() *models.Table {
	return models.NewTable([]*models.Listing{
		{Name: "skyline towers", City: "noida", Bedrooms: "2 bhk", Status: "ready to move", Category: "residential",
			RawPrice: "95 L", Price: num(9_500_000), RawAreaMin: "900", RawAreaMax: "1300", RawFloors: "22",
			Link: "https://example.com/skyline"},
		{Name: "palm court", City: "gurgaon", Bedrooms: "3 bhk", Status: "under construction", Category: "residential",
			RawPrice: "1.5 Cr", Price: num(15_000_000)},
	})
}

// countingEngine adds a probe predicate that counts how often the engine runs.
func countingEngine(calls *int) *services.FilterEngine {
	preds := append(services.DefaultPredicates(), services.Predicate{
		Name: "probe",
		Extract: func(string, *models.Table) (services.Criterion, bool) {
			*calls++
			return nil, false
		},
	})
	return services.NewFilterEngineWith(services.DefaultLimit, preds)
}

func TestReplyGreetingSkipsFilter(t *testing.T) {
	calls := 0
	r := NewResponder(sampleTable(), countingEngine(&calls), utils.NewLogger())

	for _, msg := range []string{"hello", "Hi", "  HEY  "} {
		rep := r.Reply(msg)
		if rep.Outcome != OutcomeGreeting {
			t.Errorf("Reply(%q) outcome: got %q, want greeting", msg, rep.Outcome)
		}
		if rep.Text != welcomeMessage {
			t.Errorf("Reply(%q) should return the welcome text", msg)
		}
	}
	if calls != 0 {
		t.Errorf("filter engine consulted %d times for greetings; want 0", calls)
	}
}

func TestReplyGreetingMustBeExact(t *testing.T) {
	calls := 0
	r := NewResponder(sampleTable(), countingEngine(&calls), utils.NewLogger())

	rep := r.Reply("hello, 2 bhk in noida")
	if rep.Outcome == OutcomeGreeting {
		t.Error("a greeting followed by a query must be filtered, not greeted")
	}
	if calls != 1 {
		t.Errorf("filter engine calls: got %d, want 1", calls)
	}
}

func TestReplyResults(t *testing.T) {
	r := NewResponder(sampleTable(), services.NewFilterEngine(services.DefaultLimit), utils.NewLogger())

	rep := r.Reply("2 BHK ready projects in Noida")
	if rep.Outcome != OutcomeResults {
		t.Fatalf("outcome: got %q, want results", rep.Outcome)
	}
	if rep.Matches != 1 {
		t.Errorf("Matches: got %d, want 1", rep.Matches)
	}
	if !strings.Contains(rep.Text, "🏢 Skyline Towers\n") {
		t.Errorf("reply missing title-cased name:\n%s", rep.Text)
	}
	if strings.Contains(rep.Text, "Palm Court") {
		t.Errorf("reply contains a row that should have been filtered:\n%s", rep.Text)
	}
}

func TestReplyNoResults(t *testing.T) {
	r := NewResponder(sampleTable(), services.NewFilterEngine(services.DefaultLimit), utils.NewLogger())

	rep := r.Reply("4 bhk commercial in gurgaon under 10 lakh")
	if rep.Outcome != OutcomeNoResults {
		t.Fatalf("outcome: got %q, want no_results", rep.Outcome)
	}
	if rep.Text != noResultsMessage {
		t.Errorf("text: got %q, want the no-results message", rep.Text)
	}
}

func TestReplyUnrecognisedQueryShowsDefaults(t *testing.T) {
	r := NewResponder(sampleTable(), services.NewFilterEngine(services.DefaultLimit), utils.NewLogger())

	rep := r.Reply("what do you have?")
	if rep.Outcome != OutcomeResults || rep.Matches != 2 {
		t.Errorf("got outcome %q with %d matches; want results with 2", rep.Outcome, rep.Matches)
	}
	if len(rep.Applied) != 0 {
		t.Errorf("Applied: got %v, want none", rep.Applied)
	}
}

func TestFormatListings(t *testing.T) {
	got := FormatListings(sampleTable().Listings()[:1])
	want := "🏗 Matching Projects:\n\n" +
		"🏢 Skyline Towers\n" +
		"📍 Noida\n" +
		"🏠 BHK: 2 bhk\n" +
		"🏗 Status: Ready To Move\n" +
		"🏷 Category: Residential\n" +
		"💰 Price: 95 L\n" +
		"📐 Area: 900 - 1300 sq ft\n" +
		"🏢 Floors: 22\n" +
		"🔗 https://example.com/skyline\n\n"
	if got != want {
		t.Errorf("FormatListings mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestFormatListingsSkipsMissingFields(t *testing.T) {
	got := FormatListings([]*models.Listing{{Name: "palm court", City: "gurgaon", Bedrooms: "3 bhk", RawPrice: "1.5 Cr"}})
	for _, absent := range []string{"Status:", "Category:", "Area:", "Floors:", "🔗"} {
		if strings.Contains(got, absent) {
			t.Errorf("reply should not contain %q:\n%s", absent, got)
		}
	}
}

func TestFormatListingsEmpty(t *testing.T) {
	if got := FormatListings(nil); got != noResultsMessage {
		t.Errorf("FormatListings(nil) = %q; want the no-results message", got)
	}
}
