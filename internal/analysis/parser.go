package analysis

import (
	"encoding/json"
	"strings"

	"github.com/ticketwiz/ticketwiz/internal/domain"
)

// Outcome tags whether a record came from the provider or from the fallback.
// Both collapse to the same shape externally; the tag exists so defaulted
// results can be counted and logged.
type Outcome string

const (
	OutcomeParsed    Outcome = "parsed"
	OutcomeDefaulted Outcome = "defaulted"
)

// Result pairs the analysis record with its provenance.
type Result struct {
	Record  domain.Analysis
	Outcome Outcome
}

// rawAnalysis mirrors the provider's expected object. Pointer fields
// distinguish absent from zero-valued.
type rawAnalysis struct {
	SentimentScore    *float64 `json:"sentiment_score"`
	Priority          *string  `json:"priority"`
	SuggestedSolution *string  `json:"suggested_solution"`
}

// Parse turns an untrusted text blob into a safe analysis record. It is
// total: for every input it returns a valid record and never fails.
//
// The object is located by slicing from the first '{' to the last '}',
// which discards surrounding prose and code-fence markup. The slice must
// decode to an object whose sentiment_score is numeric and whose priority
// is one of the three known literals; anything else yields the default
// record. Scores outside [-1, 1] are clamped.
func Parse(raw string) Result {
	defaulted := Result{Record: domain.DefaultAnalysis(), Outcome: OutcomeDefaulted}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return defaulted
	}

	var decoded rawAnalysis
	if err := json.Unmarshal([]byte(raw[start:end+1]), &decoded); err != nil {
		return defaulted
	}
	if decoded.SentimentScore == nil || decoded.Priority == nil {
		return defaulted
	}

	priority := domain.TicketPriority(strings.ToLower(strings.TrimSpace(*decoded.Priority)))
	if !domain.ValidPriority(priority) {
		return defaulted
	}

	record := domain.Analysis{
		SentimentScore: clamp(*decoded.SentimentScore),
		Priority:       priority,
	}
	if decoded.SuggestedSolution != nil && strings.TrimSpace(*decoded.SuggestedSolution) != "" {
		record.SuggestedSolution = strings.TrimSpace(*decoded.SuggestedSolution)
	} else {
		record.SuggestedSolution = domain.DefaultSuggestedSolution
	}

	return Result{Record: record, Outcome: OutcomeParsed}
}

func clamp(score float64) float64 {
	if score < -1 {
		return -1
	}
	if score > 1 {
		return 1
	}
	return score
}
