// Package query runs retrieval queries against the backend and tracks
// per-modality state. Text and voice have independent state machines but
// share one display surface; Active resolves which one that surface shows.
package query

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/mnemonic-notes/mnemo/internal/api"
)

type Kind string

const (
	KindText  Kind = "text"
	KindVoice Kind = "voice"
)

type Status int

const (
	StatusIdle Status = iota
	StatusPending
	StatusSuccess
	StatusError
)

// ErrSuperseded marks a completion that arrived after a newer query of the
// same modality started. The response is discarded, not surfaced.
var ErrSuperseded = errors.New("query superseded")

// Outcome is the tagged union rendered by the answer surface.
type Outcome struct {
	Kind   Kind
	Status Status
	Result *api.QueryResult
	Err    error
	seq    uint64
}

// Empty reports a successful query with zero matches, which is an
// informational state, never an error.
func (o Outcome) Empty() bool {
	return o.Status == StatusSuccess && o.Result != nil && len(o.Result.RetrievedNotes) == 0
}

// Backend is the slice of the API client the engine needs.
type Backend interface {
	TextQuery(ctx context.Context, payload api.QueryRequest) (*api.QueryResult, error)
	VoiceQuery(ctx context.Context, audio io.Reader, filename string, topK int, minSimilarity *float64) (*api.QueryResult, error)
}

type Engine struct {
	backend Backend
	logger  *zap.Logger

	mu    sync.Mutex
	seq   uint64
	text  Outcome
	voice Outcome
	last  Kind
}

func NewEngine(backend Backend, logger *zap.Logger) *Engine {
	return &Engine{
		backend: backend,
		logger:  logger,
		text:    Outcome{Kind: KindText},
		voice:   Outcome{Kind: KindVoice},
	}
}

// RunText executes a text query. Whitespace-only input is a no-op: the
// backend is never called with an empty query and state is untouched.
func (e *Engine) RunText(ctx context.Context, text string, topK int, minSimilarity *float64) (*api.QueryResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	seq := e.begin(KindText)
	res, err := e.backend.TextQuery(ctx, api.QueryRequest{
		Query:         text,
		TopK:          topK,
		MinSimilarity: minSimilarity,
	})
	if !e.finish(KindText, seq, res, err) {
		return nil, ErrSuperseded
	}
	return res, err
}

// RunVoice executes a voice query from recorded audio. The returned
// result's Query field carries the transcription so callers can populate
// the visible search box with what the system heard.
func (e *Engine) RunVoice(ctx context.Context, audio io.Reader, filename string, topK int, minSimilarity *float64) (*api.QueryResult, error) {
	seq := e.begin(KindVoice)
	res, err := e.backend.VoiceQuery(ctx, audio, filename, topK, minSimilarity)
	if !e.finish(KindVoice, seq, res, err) {
		return nil, ErrSuperseded
	}
	return res, err
}

// Active returns the outcome of whichever modality started most recently.
// A freshly started query hides the other modality's stale data
// immediately, even while pending.
func (e *Engine) Active() Outcome {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.last {
	case KindText:
		return e.text
	case KindVoice:
		return e.voice
	default:
		return Outcome{Status: StatusIdle}
	}
}

// Reset returns both modalities to idle, used when the user clears the
// search box.
func (e *Engine) Reset() {
	e.mu.Lock()
	e.text = Outcome{Kind: KindText}
	e.voice = Outcome{Kind: KindVoice}
	e.last = ""
	e.mu.Unlock()
}

func (e *Engine) begin(kind Kind) uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.seq++
	out := Outcome{Kind: kind, Status: StatusPending, seq: e.seq}
	e.set(kind, out)
	e.last = kind
	return e.seq
}

// finish records a completion unless a newer query of the same modality
// has started since; late arrivals report false and are dropped.
func (e *Engine) finish(kind Kind, seq uint64, res *api.QueryResult, err error) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	cur := e.get(kind)
	if cur.seq != seq {
		e.logger.Debug("dropping superseded query response", zap.String("kind", string(kind)))
		return false
	}

	out := Outcome{Kind: kind, seq: seq}
	if err != nil {
		out.Status = StatusError
		out.Err = err
	} else {
		out.Status = StatusSuccess
		out.Result = res
	}
	e.set(kind, out)
	return true
}

func (e *Engine) get(kind Kind) Outcome {
	if kind == KindVoice {
		return e.voice
	}
	return e.text
}

func (e *Engine) set(kind Kind, out Outcome) {
	if kind == KindVoice {
		e.voice = out
	} else {
		e.text = out
	}
}
