package query

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/mnemonic-notes/mnemo/internal/api"
)

type fakeBackend struct {
	mu         sync.Mutex
	textCalls  int
	voiceCalls int

	textResult  *api.QueryResult
	voiceResult *api.QueryResult
	err         error

	// When non-nil, TextQuery blocks until the channel closes.
	block chan struct{}
}

func (b *fakeBackend) TextQuery(ctx context.Context, payload api.QueryRequest) (*api.QueryResult, error) {
	b.mu.Lock()
	b.textCalls++
	block := b.block
	res, err := b.textResult, b.err
	b.mu.Unlock()

	if block != nil {
		<-block
	}
	return res, err
}

func (b *fakeBackend) VoiceQuery(ctx context.Context, audio io.Reader, filename string, topK int, minSimilarity *float64) (*api.QueryResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.voiceCalls++
	return b.voiceResult, b.err
}

func result(query string, ids ...string) *api.QueryResult {
	notes := make([]api.RetrievedNote, len(ids))
	for i, id := range ids {
		notes[i] = api.RetrievedNote{ID: id, Title: "note " + id}
	}
	return &api.QueryResult{Query: query, Answer: "answer to " + query, RetrievedNotes: notes}
}

func TestRunTextWhitespaceIsNoOp(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{}
	engine := NewEngine(backend, zap.NewNop())

	res, err := engine.RunText(context.Background(), "   \t ", 5, nil)
	if res != nil || err != nil {
		t.Fatalf("expected no-op, got res=%v err=%v", res, err)
	}
	if backend.textCalls != 0 {
		t.Fatalf("backend should not be called for whitespace input")
	}
	if out := engine.Active(); out.Status != StatusIdle {
		t.Fatalf("expected idle state, got %v", out.Status)
	}
}

func TestRunTextRecordsSuccess(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{textResult: result("garage", "a", "b")}
	engine := NewEngine(backend, zap.NewNop())

	res, err := engine.RunText(context.Background(), "garage", 5, nil)
	if err != nil {
		t.Fatalf("RunText returned error: %v", err)
	}
	if res.Query != "garage" {
		t.Fatalf("unexpected result: %+v", res)
	}

	out := engine.Active()
	if out.Kind != KindText || out.Status != StatusSuccess {
		t.Fatalf("unexpected active outcome: %+v", out)
	}
	if out.Result != res {
		t.Fatalf("active outcome holds a different result")
	}
}

func TestRunTextRecordsError(t *testing.T) {
	t.Parallel()

	backendErr := errors.New("backend down")
	backend := &fakeBackend{err: backendErr}
	engine := NewEngine(backend, zap.NewNop())

	if _, err := engine.RunText(context.Background(), "garage", 5, nil); !errors.Is(err, backendErr) {
		t.Fatalf("expected backend error, got %v", err)
	}

	out := engine.Active()
	if out.Status != StatusError || !errors.Is(out.Err, backendErr) {
		t.Fatalf("unexpected active outcome: %+v", out)
	}
}

func TestStaleResponseIsDropped(t *testing.T) {
	t.Parallel()

	block := make(chan struct{})
	backend := &fakeBackend{textResult: result("first", "a"), block: block}
	engine := NewEngine(backend, zap.NewNop())

	firstErr := make(chan error, 1)
	go func() {
		_, err := engine.RunText(context.Background(), "first", 5, nil)
		firstErr <- err
	}()

	// Wait for the first query to register as pending, then start a
	// second one that supersedes it.
	for {
		if out := engine.Active(); out.Status == StatusPending {
			break
		}
		time.Sleep(time.Millisecond)
	}

	backend.mu.Lock()
	backend.block = nil
	backend.textResult = result("second", "b")
	backend.mu.Unlock()

	if _, err := engine.RunText(context.Background(), "second", 5, nil); err != nil {
		t.Fatalf("second query failed: %v", err)
	}

	close(block)
	if err := <-firstErr; !errors.Is(err, ErrSuperseded) {
		t.Fatalf("expected ErrSuperseded for the stale query, got %v", err)
	}

	out := engine.Active()
	if out.Status != StatusSuccess || out.Result.Query != "second" {
		t.Fatalf("stale response overwrote the newer one: %+v", out)
	}
}

func TestActiveFollowsLastStartedModality(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{
		textResult:  result("typed", "a"),
		voiceResult: result("spoken", "b"),
	}
	engine := NewEngine(backend, zap.NewNop())

	if _, err := engine.RunText(context.Background(), "typed", 5, nil); err != nil {
		t.Fatalf("RunText: %v", err)
	}
	if out := engine.Active(); out.Kind != KindText {
		t.Fatalf("expected text to be active, got %v", out.Kind)
	}

	if _, err := engine.RunVoice(context.Background(), strings.NewReader("audio"), "q.wav", 5, nil); err != nil {
		t.Fatalf("RunVoice: %v", err)
	}
	out := engine.Active()
	if out.Kind != KindVoice || out.Result.Query != "spoken" {
		t.Fatalf("expected voice to be active, got %+v", out)
	}
}

func TestResetReturnsToIdle(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{textResult: result("typed", "a")}
	engine := NewEngine(backend, zap.NewNop())

	if _, err := engine.RunText(context.Background(), "typed", 5, nil); err != nil {
		t.Fatalf("RunText: %v", err)
	}
	engine.Reset()

	if out := engine.Active(); out.Status != StatusIdle {
		t.Fatalf("expected idle after reset, got %+v", out)
	}
}

func TestOutcomeEmpty(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{textResult: result("nothing here")}
	engine := NewEngine(backend, zap.NewNop())

	if _, err := engine.RunText(context.Background(), "nothing here", 5, nil); err != nil {
		t.Fatalf("RunText: %v", err)
	}

	out := engine.Active()
	if !out.Empty() {
		t.Fatalf("expected an empty outcome, got %+v", out)
	}
	if out.Status != StatusSuccess {
		t.Fatalf("empty results are informational, not an error: %+v", out)
	}
}
