package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ticketwiz/ticketwiz/internal/domain"
)

func TestParseWellFormedObject(t *testing.T) {
	res := Parse(`{"sentiment_score": -0.7, "priority": "high", "suggested_solution": "Escalate immediately"}`)

	assert.Equal(t, OutcomeParsed, res.Outcome)
	assert.Equal(t, -0.7, res.Record.SentimentScore)
	assert.Equal(t, domain.TicketPriorityHigh, res.Record.Priority)
	assert.Equal(t, "Escalate immediately", res.Record.SuggestedSolution)
}

func TestParseObjectInsideCodeFence(t *testing.T) {
	raw := "```json\n{\"sentiment_score\": -0.7, \"priority\": \"high\", \"suggested_solution\": \"Escalate immediately\"}\n```"
	res := Parse(raw)

	assert.Equal(t, OutcomeParsed, res.Outcome)
	assert.Equal(t, -0.7, res.Record.SentimentScore)
	assert.Equal(t, domain.TicketPriorityHigh, res.Record.Priority)
	assert.Equal(t, "Escalate immediately", res.Record.SuggestedSolution)
}

func TestParseObjectSurroundedByProse(t *testing.T) {
	raw := "Sure! Here is the analysis you asked for:\n" +
		`{"sentiment_score": 0.2, "priority": "low", "suggested_solution": "Reply with the FAQ link."}` +
		"\nLet me know if you need anything else."
	res := Parse(raw)

	assert.Equal(t, OutcomeParsed, res.Outcome)
	assert.Equal(t, 0.2, res.Record.SentimentScore)
	assert.Equal(t, domain.TicketPriorityLow, res.Record.Priority)
}

func TestParseDefaultsWithoutBracePair(t *testing.T) {
	inputs := []string{
		"",
		"null",
		"the customer sounds upset, priority high",
		"}{",
		strings.Repeat("x", 4096),
	}
	for _, raw := range inputs {
		res := Parse(raw)
		assert.Equal(t, OutcomeDefaulted, res.Outcome, "input %q", raw)
		assert.Equal(t, domain.DefaultAnalysis(), res.Record, "input %q", raw)
	}
}

func TestParseDefaultsOnStructurallyInvalidFields(t *testing.T) {
	cases := map[string]string{
		"sentiment not numeric": `{"sentiment_score": "angry", "priority": "high", "suggested_solution": "x"}`,
		"priority unknown":      `{"sentiment_score": 0.5, "priority": "urgent", "suggested_solution": "x"}`,
		"sentiment missing":     `{"priority": "high", "suggested_solution": "x"}`,
		"priority missing":      `{"sentiment_score": 0.5, "suggested_solution": "x"}`,
		"not json":              `{sentiment_score: 0.5}`,
		"binary garbage":        "\x00\x01{\xff}",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			res := Parse(raw)
			assert.Equal(t, OutcomeDefaulted, res.Outcome)
			assert.Equal(t, domain.DefaultAnalysis(), res.Record)
		})
	}
}

func TestParseClampsOutOfRangeScores(t *testing.T) {
	res := Parse(`{"sentiment_score": -3.2, "priority": "medium", "suggested_solution": "x"}`)
	assert.Equal(t, OutcomeParsed, res.Outcome)
	assert.Equal(t, -1.0, res.Record.SentimentScore)

	res = Parse(`{"sentiment_score": 7, "priority": "medium", "suggested_solution": "x"}`)
	assert.Equal(t, 1.0, res.Record.SentimentScore)
}

func TestParseNormalizesPriorityCase(t *testing.T) {
	res := Parse(`{"sentiment_score": 0, "priority": " High ", "suggested_solution": "x"}`)
	assert.Equal(t, OutcomeParsed, res.Outcome)
	assert.Equal(t, domain.TicketPriorityHigh, res.Record.Priority)
}

func TestParseSubstitutesPlaceholderSolution(t *testing.T) {
	res := Parse(`{"sentiment_score": 0.1, "priority": "low"}`)
	assert.Equal(t, OutcomeParsed, res.Outcome)
	assert.Equal(t, domain.DefaultSuggestedSolution, res.Record.SuggestedSolution)

	res = Parse(`{"sentiment_score": 0.1, "priority": "low", "suggested_solution": "  "}`)
	assert.Equal(t, domain.DefaultSuggestedSolution, res.Record.SuggestedSolution)
}

func TestParseNeverPanics(t *testing.T) {
	inputs := []string{
		`{"sentiment_score": {"nested": true}, "priority": ["high"]}`,
		`{{{{}}}}`,
		`{"sentiment_score": 1e308, "priority": "low"}`,
		"{\"sentiment_score\": 0.5, \"priority\": \"high\"",
	}
	for _, raw := range inputs {
		assert.NotPanics(t, func() { Parse(raw) }, "input %q", raw)
	}
}
