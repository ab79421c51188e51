package export

import (
	"time"

	"github.com/google/uuid"

	"github.com/dusk-indust/reassemble/internal/overlap"
)

// RunExport is the top-level JSON export of one reduction.
type RunExport struct {
	ID         string       `json:"id"`
	ExportedAt string       `json:"exportedAt"`
	Fragments  []string     `json:"fragments"`
	Result     string       `json:"result"`
	Fallback   bool         `json:"fallback"`
	Steps      []StepExport `json:"steps"`
}

// StepExport describes one reduction round.
type StepExport struct {
	Round        int    `json:"round"`
	Outcome      string `json:"outcome"`
	FirstIndex   int    `json:"firstIndex"`
	SecondIndex  int    `json:"secondIndex"`
	SecondOffset int    `json:"secondOffset"`
	Score        int    `json:"score"`
	Contained    bool   `json:"contained,omitempty"`
	First        string `json:"first,omitempty"`
	Second       string `json:"second,omitempty"`
	Combined     string `json:"combined"`
	Remaining    int    `json:"remaining"`
}

// ExportRun builds a RunExport from a reduction result.
func ExportRun(fragments []string, res *overlap.Result) *RunExport {
	export := &RunExport{
		ID:         uuid.NewString(),
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Fragments:  append([]string{}, fragments...),
		Result:     res.Combined,
		Fallback:   res.Fallback(),
		Steps:      make([]StepExport, 0, len(res.Steps)),
	}

	for _, s := range res.Steps {
		export.Steps = append(export.Steps, StepExport{
			Round:        s.Round,
			Outcome:      string(s.Outcome),
			FirstIndex:   s.Match.FirstIndex,
			SecondIndex:  s.Match.SecondIndex,
			SecondOffset: s.Match.SecondOffset,
			Score:        s.Match.Score,
			Contained:    s.Match.Contained(),
			First:        s.First,
			Second:       s.Second,
			Combined:     s.Match.Combined,
			Remaining:    s.After,
		})
	}
	return export
}
