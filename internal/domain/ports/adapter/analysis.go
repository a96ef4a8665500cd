package adapter

import "context"

// AnalysisProvider produces a summary for an uploaded document.
//
// The shipped implementation is CannedAnalysis: it performs no parsing or
// OCR and answers from a fixed set of canned summaries after a simulated
// processing delay. Swap in a real backend here if document analysis ever
// becomes a genuine feature.
type AnalysisProvider interface {
	Analyze(ctx context.Context, filename string) (string, error)
}
