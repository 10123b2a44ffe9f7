package ask

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mnemonic-notes/mnemo/internal/api"
	"github.com/mnemonic-notes/mnemo/internal/note"
	"github.com/mnemonic-notes/mnemo/internal/state"
)

// Voice transcription can take a while on top of retrieval.
const voiceTimeout = 60 * time.Second

func NewCmdAsk(s *state.State) *cobra.Command {
	var (
		audioFlag  string
		topKFlag   int
		minSimFlag float64
	)

	cmd := &cobra.Command{
		Use:     "ask [question...]",
		Aliases: []string{"q", "query"},
		Short:   "Ask a question over your notes.",
		Long: heredoc.Doc(`
			Sends a question to the backend, which retrieves relevant notes and
			synthesizes an answer with citations. With --audio, a recorded audio
			file is transcribed server-side and the transcription becomes the
			question.
		`),
		Example: heredoc.Doc(`
			mnemo ask what did I decide about the garage
			mnemo ask --audio ~/recordings/question.wav
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			minSim := s.Config.Query.MinSimilarity
			if cmd.Flags().Changed("min-similarity") {
				minSim = minSimFlag
			}
			topK := s.Config.Query.TopK
			if cmd.Flags().Changed("top-k") {
				topK = topKFlag
			}

			if audioFlag != "" {
				return runVoice(s, audioFlag, topK, &minSim)
			}
			return runText(s, strings.Join(args, " "), topK, &minSim)
		},
	}

	cmd.Flags().StringVarP(&audioFlag, "audio", "a", "", "Path to a recorded audio question")
	cmd.Flags().IntVarP(&topKFlag, "top-k", "k", 0, "Number of notes to retrieve")
	cmd.Flags().Float64VarP(&minSimFlag, "min-similarity", "m", 0, "Minimum similarity score [0, 1]")
	return cmd
}

func runText(s *state.State, question string, topK int, minSim *float64) error {
	if strings.TrimSpace(question) == "" {
		return fmt.Errorf("error: no question given, try 'mnemo ask [question]'")
	}

	ctx, cancel := context.WithTimeout(context.Background(), api.RequestTimeout)
	defer cancel()

	res, err := s.Client.TextQuery(ctx, api.QueryRequest{
		Query:         question,
		TopK:          topK,
		MinSimilarity: minSim,
	})
	if err != nil {
		return err
	}

	printResult(res)
	return nil
}

func runVoice(s *state.State, audioPath string, topK int, minSim *float64) error {
	f, err := os.Open(audioPath)
	if err != nil {
		return fmt.Errorf("opening audio file: %w", err)
	}
	defer f.Close()

	ctx, cancel := context.WithTimeout(context.Background(), voiceTimeout)
	defer cancel()

	res, err := s.Client.VoiceQuery(ctx, f, filepath.Base(audioPath), topK, minSim)
	if err != nil {
		return err
	}

	fmt.Printf("Heard: %q\n\n", res.Query)
	printResult(res)
	return nil
}

func printResult(res *api.QueryResult) {
	wrap := 100
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w < wrap {
		wrap = w
	}

	if len(res.RetrievedNotes) == 0 {
		fmt.Printf("No notes matched %q.\n", res.Query)
		return
	}

	if res.Confidence != "" {
		fmt.Printf("[confidence: %s]\n", res.Confidence)
	}
	fmt.Println(note.RenderMarkdown(res.Answer, wrap))

	cited := res.Cited()
	fmt.Println("Sources:")
	for i, n := range res.RetrievedNotes {
		mark := " "
		if cited[n.ID] {
			mark = "★"
		}
		fmt.Printf("  %s %d. %s (%.0f%% match)\n", mark, i+1, n.Title, n.SimilarityScore*100)
	}

	if res.ExecutionTimeMS > 0 {
		fmt.Printf("\nAnswered in %.0fms\n", res.ExecutionTimeMS)
	}
}
