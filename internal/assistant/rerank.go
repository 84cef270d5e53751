package assistant

import (
	"sort"

	"klinik-ai/internal/temporal"
)

// MaxContextSources caps how many sources flow into the prompt context.
const MaxContextSources = 25

// Rerank orders and filters merged retrieval results before they become
// prompt context. Temporal queries keep their date ordering from the
// database layer, so score sorting is skipped; their constant score means
// the cap, not relevance, decides which chronological items survive.
// The order sort → threshold → cap is load-bearing for both paths.
func Rerank(sources []Source, ti temporal.Info, scoreThreshold float32) []Source {
	if len(sources) == 0 {
		return nil
	}

	out := make([]Source, len(sources))
	copy(out, sources)

	if !ti.HasTemporalQuery {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Score > out[j].Score
		})
	}

	if scoreThreshold > 0 {
		kept := out[:0]
		for _, s := range out {
			if s.Score >= scoreThreshold {
				kept = append(kept, s)
			}
		}
		out = kept
	}

	if len(out) > MaxContextSources {
		out = out[:MaxContextSources]
	}
	return out
}
