package notes

import (
	"errors"
	"strings"
	"testing"

	"github.com/mnemonic-notes/mnemo/internal/api"
	"github.com/mnemonic-notes/mnemo/internal/query"
)

func TestRenderAnswerIdleIsEmpty(t *testing.T) {
	t.Parallel()

	if got := renderAnswer(query.Outcome{Status: query.StatusIdle}, 80); got != "" {
		t.Fatalf("idle must render nothing, got %q", got)
	}
}

func TestRenderAnswerPending(t *testing.T) {
	t.Parallel()

	got := renderAnswer(query.Outcome{Status: query.StatusPending}, 80)
	if !strings.Contains(got, "Thinking") {
		t.Fatalf("expected pending indicator, got %q", got)
	}
}

func TestRenderAnswerError(t *testing.T) {
	t.Parallel()

	out := query.Outcome{Status: query.StatusError, Err: errors.New("boom")}
	got := renderAnswer(out, 80)
	if !strings.Contains(got, "retry") {
		t.Fatalf("expected retry hint, got %q", got)
	}
}

func TestRenderAnswerEmptyResults(t *testing.T) {
	t.Parallel()

	out := query.Outcome{
		Status: query.StatusSuccess,
		Result: &api.QueryResult{Query: "unicorns"},
	}
	got := renderAnswer(out, 80)
	if !strings.Contains(got, `"unicorns"`) {
		t.Fatalf("expected the query echoed in the empty state, got %q", got)
	}
}

func TestRenderAnswerMarksCitedSources(t *testing.T) {
	t.Parallel()

	out := query.Outcome{
		Status: query.StatusSuccess,
		Result: &api.QueryResult{
			Query:      "garage",
			Answer:     "Insulate first.",
			Confidence: api.ConfidenceHigh,
			RetrievedNotes: []api.RetrievedNote{
				{ID: "a", Title: "Garage plans", SimilarityScore: 0.9},
				{ID: "b", Title: "Unrelated", SimilarityScore: 0.5},
			},
			CitedNotes: []string{"a", "ghost"},
		},
	}

	got := renderAnswer(out, 100)
	if !strings.Contains(got, "★") {
		t.Fatalf("expected a cited mark, got %q", got)
	}
	if strings.Count(got, "★") != 1 {
		t.Fatalf("only retrieved citations get marks, got %q", got)
	}
	if !strings.Contains(got, "Garage plans") || !strings.Contains(got, "Unrelated") {
		t.Fatalf("all sources must be listed, got %q", got)
	}
}

func TestFirstCitedSkipsUnretrieved(t *testing.T) {
	t.Parallel()

	out := query.Outcome{
		Status: query.StatusSuccess,
		Result: &api.QueryResult{
			RetrievedNotes: []api.RetrievedNote{{ID: "a"}, {ID: "b"}},
			CitedNotes:     []string{"ghost", "b"},
		},
	}

	if got := firstCited(&out); got != "b" {
		t.Fatalf("firstCited = %q, want b", got)
	}

	none := query.Outcome{}
	if got := firstCited(&none); got != "" {
		t.Fatalf("expected empty id for no result, got %q", got)
	}
}
