package assistant

import (
	"testing"

	"klinik-ai/internal/temporal"
)

func sourcesWithScores(scores ...float32) []Source {
	out := make([]Source, len(scores))
	for i, s := range scores {
		out[i] = Source{Collection: "examinations", ID: int64(i + 1), Score: s}
	}
	return out
}

func TestRerank_NonTemporalSortsDescending(t *testing.T) {
	sources := sourcesWithScores(0.4, 0.9, 0.6)

	got := Rerank(sources, temporal.Info{}, 0)

	for i := 1; i < len(got); i++ {
		if got[i].Score > got[i-1].Score {
			t.Errorf("scores not monotonically non-increasing at %d: %v", i, got)
		}
	}
	if got[0].ID != 2 {
		t.Errorf("top source ID = %d, want 2", got[0].ID)
	}
}

func TestRerank_StableForEqualScores(t *testing.T) {
	sources := []Source{
		{Collection: "examinations", ID: 1, Score: 0.5},
		{Collection: "registrations", ID: 2, Score: 0.5},
		{Collection: "schedules", ID: 3, Score: 0.5},
	}

	got := Rerank(sources, temporal.Info{}, 0)

	for i, want := range []int64{1, 2, 3} {
		if got[i].ID != want {
			t.Errorf("position %d ID = %d, want %d (stable order)", i, got[i].ID, want)
		}
	}
}

func TestRerank_TemporalKeepsInputOrder(t *testing.T) {
	// Chronological order from the store, deliberately not score order.
	sources := sourcesWithScores(1.0, 1.0, 1.0)
	sources[0].ID = 30
	sources[1].ID = 20
	sources[2].ID = 10

	got := Rerank(sources, temporal.Info{HasTemporalQuery: true}, 0)

	for i, want := range []int64{30, 20, 10} {
		if got[i].ID != want {
			t.Errorf("position %d ID = %d, want %d (input order preserved)", i, got[i].ID, want)
		}
	}
}

func TestRerank_ThresholdFiltersWeakMatches(t *testing.T) {
	sources := sourcesWithScores(0.9, 0.2, 0.5)

	got := Rerank(sources, temporal.Info{}, 0.4)

	if len(got) != 2 {
		t.Fatalf("kept %d sources, want 2", len(got))
	}
	for _, s := range got {
		if s.Score < 0.4 {
			t.Errorf("source %d below threshold: %v", s.ID, s.Score)
		}
	}
}

func TestRerank_CapDecidesTemporalSurvivors(t *testing.T) {
	sources := make([]Source, 40)
	for i := range sources {
		sources[i] = Source{Collection: "examinations", ID: int64(i), Score: 1.0}
	}

	got := Rerank(sources, temporal.Info{HasTemporalQuery: true}, 0.3)

	if len(got) != MaxContextSources {
		t.Fatalf("kept %d sources, want %d", len(got), MaxContextSources)
	}
	// The first MaxContextSources chronological items survive.
	for i := 0; i < MaxContextSources; i++ {
		if got[i].ID != int64(i) {
			t.Errorf("position %d ID = %d, want %d", i, got[i].ID, i)
		}
	}
}

func TestRerank_Empty(t *testing.T) {
	if got := Rerank(nil, temporal.Info{}, 0.5); got != nil {
		t.Errorf("Rerank(nil) = %v, want nil", got)
	}
}

func TestRerank_DoesNotMutateInput(t *testing.T) {
	sources := sourcesWithScores(0.1, 0.9)

	_ = Rerank(sources, temporal.Info{}, 0)

	if sources[0].Score != 0.1 {
		t.Error("Rerank() must not reorder the caller's slice")
	}
}
