package notes

import (
	"fmt"
	"strings"

	"github.com/mnemonic-notes/mnemo/internal/note"
	"github.com/mnemonic-notes/mnemo/internal/query"
)

// renderAnswer builds the answer panel from the engine's active outcome.
// Citations are marked against the retrieved list in ranking order; cited
// ids the backend did not return are silently uncited.
func renderAnswer(out query.Outcome, width int) string {
	switch out.Status {
	case query.StatusIdle:
		return ""
	case query.StatusPending:
		return answerStyle.Width(width).Render("Thinking…")
	case query.StatusError:
		return answerStyle.Width(width).Render(errorStyle("Query failed. Press / to retry."))
	}

	res := out.Result
	if res == nil {
		return ""
	}
	if len(res.RetrievedNotes) == 0 {
		return answerStyle.Width(width).Render(
			fmt.Sprintf("No notes matched %q.", res.Query),
		)
	}

	var b strings.Builder

	if res.Answer != "" {
		conf := string(res.Confidence)
		if render, ok := confidenceStyles[conf]; ok && conf != "" {
			b.WriteString(render("confidence: " + conf))
			b.WriteString("\n")
		}
		b.WriteString(note.RenderMarkdown(res.Answer, width-4))
	}

	cited := res.Cited()
	b.WriteString(helpStyle("Sources"))
	b.WriteString("\n")
	for i, n := range res.RetrievedNotes {
		mark := "  "
		if cited[n.ID] {
			mark = citedMarkStyle("★ ")
		}
		b.WriteString(fmt.Sprintf("%s%d. %s (%.0f%%)\n", mark, i+1, n.Title, n.SimilarityScore*100))
	}

	if res.ExecutionTimeMS > 0 {
		b.WriteString(helpStyle(fmt.Sprintf("%.0fms", res.ExecutionTimeMS)))
	}

	return answerStyle.Width(width).Render(strings.TrimRight(b.String(), "\n"))
}

// firstCited returns the top-ranked retrieved note that the answer cites,
// used by the open-cited key.
func firstCited(res *query.Outcome) string {
	if res == nil || res.Result == nil {
		return ""
	}
	cited := res.Result.Cited()
	for _, n := range res.Result.RetrievedNotes {
		if cited[n.ID] {
			return n.ID
		}
	}
	return ""
}
