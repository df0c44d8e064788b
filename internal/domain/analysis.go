package domain

// Analysis is the structured record the text-analysis provider yields for a
// ticket: a sentiment score in [-1, 1], a priority class, and a short
// suggested response.
type Analysis struct {
	SentimentScore    float64        `json:"sentiment_score"`
	Priority          TicketPriority `json:"priority"`
	SuggestedSolution string         `json:"suggested_solution"`
}

// DefaultSuggestedSolution is stored whenever the provider offers none.
const DefaultSuggestedSolution = "Manual review required."

// DefaultAnalysis is the safe fallback used whenever the provider is
// unavailable or its reply cannot be interpreted.
func DefaultAnalysis() Analysis {
	return Analysis{
		SentimentScore:    0,
		Priority:          TicketPriorityMedium,
		SuggestedSolution: DefaultSuggestedSolution,
	}
}
