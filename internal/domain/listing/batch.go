package listing

// Outcome describes how a batch was produced
type Outcome string

const (
	// OutcomeOK means the items came from the upstream API
	OutcomeOK Outcome = "OK"
	// OutcomeFallback means the upstream failed and the items are the static sample set
	OutcomeFallback Outcome = "FALLBACK"
	// OutcomeConfigError means credentials were missing and no request was made
	OutcomeConfigError Outcome = "CONFIG_ERROR"
)

// Batch is the result of one adapter call. Each call produces a fresh batch.
type Batch struct {
	Outcome Outcome
	Items   []Listing
	// Total is the upstream's total hit count; equals len(Items) when the upstream has none.
	Total int
	// Start and Display echo the upstream paging window when the source is paginated.
	Start   int
	Display int
	// Query is the effective search query, when the source is query based.
	Query string
	// Reason explains a fallback or configuration error.
	Reason string
}

// NewOKBatch creates a batch of upstream items
func NewOKBatch(items []Listing, total int) *Batch {
	return &Batch{
		Outcome: OutcomeOK,
		Items:   items,
		Total:   total,
	}
}

// NewFallbackBatch creates a batch carrying the static sample items
func NewFallbackBatch(items []Listing, reason string) *Batch {
	return &Batch{
		Outcome: OutcomeFallback,
		Items:   items,
		Total:   len(items),
		Reason:  reason,
	}
}

// NewConfigErrorBatch creates an empty batch for missing credentials
func NewConfigErrorBatch(reason string) *Batch {
	return &Batch{
		Outcome: OutcomeConfigError,
		Items:   []Listing{},
		Reason:  reason,
	}
}

// IsFallback returns true when the items are the static sample set
func (b *Batch) IsFallback() bool {
	return b.Outcome == OutcomeFallback
}

// IsConfigError returns true when no upstream call was attempted
func (b *Batch) IsConfigError() bool {
	return b.Outcome == OutcomeConfigError
}
