package coach

import (
	"context"
	"hash/fnv"

	"lakshya-career-assistant/internal/domain/ports/adapter"
)

var _ adapter.AnalysisProvider = (*CannedAnalysis)(nil)

// CannedAnalysis is the named stub behind the attachment-upload flow.
// It performs NO parsing, OCR, or model inference: the summary is picked
// from a fixed list by a hash of the filename, which keeps the simulation
// deterministic for a given upload. Replace with a real backend before
// claiming document analysis as a feature.
type CannedAnalysis struct{}

func NewCannedAnalysis() *CannedAnalysis { return &CannedAnalysis{} }

var cannedSummaries = []string{
	"I've looked over your document! 📄 Your experience section is solid — consider quantifying achievements with numbers (e.g. \"reduced load time by 40%\") to make it pop for recruiters.",
	"Thanks for sharing! Your document reads well overall. I'd suggest moving your strongest skills to the top third of the page, since that's where reviewers spend most of their time.",
	"Nice document! 🎯 One tip: mirror the keywords from job postings you're targeting — many companies screen with ATS software before a human ever reads it.",
	"I've reviewed your upload. The structure is clear, but the summary section could be tighter: two punchy sentences about your impact beat a paragraph of duties.",
}

func (CannedAnalysis) Analyze(ctx context.Context, filename string) (string, error) {
	h := fnv.New32a()
	h.Write([]byte(filename))
	return cannedSummaries[int(h.Sum32())%len(cannedSummaries)], nil
}
