package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
)

type staticTokens string

func (s staticTokens) Token(ctx context.Context) string { return string(s) }

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, staticTokens("tok-123"), zap.NewNop()), srv
}

func TestClientInjectsBearerToken(t *testing.T) {
	t.Parallel()

	var got string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(NoteListResponse{})
	}))

	if _, err := client.ListNotes(context.Background(), ListParams{}); err != nil {
		t.Fatalf("ListNotes: %v", err)
	}
	if got != "Bearer tok-123" {
		t.Fatalf("expected bearer header, got %q", got)
	}
}

func TestClientOmitsAuthHeaderForEmptyToken(t *testing.T) {
	t.Parallel()

	var got *string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := r.Header.Get("Authorization")
		got = &h
		json.NewEncoder(w).Encode(NoteListResponse{})
	}))
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, staticTokens(""), zap.NewNop())
	if _, err := client.ListNotes(context.Background(), ListParams{}); err != nil {
		t.Fatalf("ListNotes: %v", err)
	}
	if *got != "" {
		t.Fatalf("expected no auth header, got %q", *got)
	}
}

func TestClientNormalizesErrorBody(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"message field", 400, `{"message":"Title is required"}`, "Title is required"},
		{"detail field", 422, `{"detail":"query must not be empty"}`, "query must not be empty"},
		{"unusable body", 500, `<html>boom</html>`, "Request failed"},
		{"empty json", 503, `{}`, "Request failed"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))

			_, err := client.GetNote(context.Background(), "x")
			var apiErr *Error
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *Error, got %T: %v", err, err)
			}
			if apiErr.Status != tc.status || apiErr.Message != tc.message {
				t.Fatalf("got status=%d message=%q, want status=%d message=%q",
					apiErr.Status, apiErr.Message, tc.status, tc.message)
			}
		})
	}
}

func TestClientNetworkFailureHasStatusZero(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing is listening anymore

	client := NewClient(srv.URL, staticTokens(""), zap.NewNop())
	_, err := client.ListNotes(context.Background(), ListParams{})

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %T: %v", err, err)
	}
	if apiErr.Status != 0 {
		t.Fatalf("expected status 0 for transport failure, got %d", apiErr.Status)
	}
	if !strings.Contains(apiErr.Message, "Network error") {
		t.Fatalf("unexpected message: %q", apiErr.Message)
	}
}

func TestListNotesEncodesParams(t *testing.T) {
	t.Parallel()

	var query map[string]string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = map[string]string{}
		for k := range r.URL.Query() {
			query[k] = r.URL.Query().Get(k)
		}
		json.NewEncoder(w).Encode(NoteListResponse{})
	}))

	_, err := client.ListNotes(context.Background(), ListParams{
		Page:      2,
		PageSize:  50,
		Search:    "garage",
		Tags:      []string{"home", "decisions"},
		SortBy:    "updated_at",
		SortOrder: "desc",
	})
	if err != nil {
		t.Fatalf("ListNotes: %v", err)
	}

	want := map[string]string{
		"page":       "2",
		"page_size":  "50",
		"search":     "garage",
		"tags":       "home,decisions",
		"sort_by":    "updated_at",
		"sort_order": "desc",
	}
	for k, v := range want {
		if query[k] != v {
			t.Fatalf("param %s: got %q, want %q", k, query[k], v)
		}
	}
}

func TestTextQueryRoundTrip(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/query/text" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var req QueryRequest
		json.NewDecoder(r.Body).Decode(&req)
		json.NewEncoder(w).Encode(QueryResult{
			Query:          req.Query,
			Answer:         "You decided to insulate first.",
			Confidence:     ConfidenceHigh,
			RetrievedNotes: []RetrievedNote{{ID: "n1", Title: "Garage plans"}},
			CitedNotes:     []string{"n1"},
		})
	}))

	res, err := client.TextQuery(context.Background(), QueryRequest{Query: "garage?"})
	if err != nil {
		t.Fatalf("TextQuery: %v", err)
	}
	if res.Answer == "" || res.Confidence != ConfidenceHigh {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestVoiceQueryUploadsMultipart(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parsing multipart: %v", err)
		}
		if got := r.FormValue("top_k"); got != "7" {
			t.Errorf("top_k: got %q", got)
		}
		file, header, err := r.FormFile("audio")
		if err != nil {
			t.Errorf("audio part missing: %v", err)
		} else {
			file.Close()
			if header.Filename != "question.wav" {
				t.Errorf("filename: got %q", header.Filename)
			}
		}
		json.NewEncoder(w).Encode(QueryResult{Query: "what about the garage"})
	}))

	res, err := client.VoiceQuery(context.Background(), strings.NewReader("RIFFdata"), "question.wav", 7, nil)
	if err != nil {
		t.Fatalf("VoiceQuery: %v", err)
	}
	if res.Query != "what about the garage" {
		t.Fatalf("unexpected transcription: %q", res.Query)
	}
}

func TestVoiceQueryAdaptsLegacyShape(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"transcribed_text": "porsche notes",
			"results": [{"id":"p1","title":"Porsche research","similarity_score":0.91}],
			"total_results": 1
		}`))
	}))

	res, err := client.VoiceQuery(context.Background(), strings.NewReader("RIFF"), "q.wav", 0, nil)
	if err != nil {
		t.Fatalf("VoiceQuery: %v", err)
	}
	if res.Query != "porsche notes" {
		t.Fatalf("expected transcription in Query, got %q", res.Query)
	}
	if len(res.RetrievedNotes) != 1 || res.RetrievedNotes[0].ID != "p1" {
		t.Fatalf("expected legacy results adapted, got %+v", res.RetrievedNotes)
	}
	if res.Answer != "" {
		t.Fatalf("legacy shape has no synthesized answer, got %q", res.Answer)
	}
}

func TestSearchAsQueryResult(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(SearchResponse{
			Query:        "porsche",
			Results:      []RetrievedNote{{ID: "p1"}, {ID: "p2"}},
			TotalResults: 2,
		})
	}))

	res, err := client.Search(context.Background(), SearchRequest{Query: "porsche"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	canonical := res.AsQueryResult()
	if canonical.Query != "porsche" || len(canonical.RetrievedNotes) != 2 {
		t.Fatalf("unexpected adaptation: %+v", canonical)
	}
	if canonical.Answer != "" || canonical.Confidence != "" {
		t.Fatalf("search results must not fabricate an answer: %+v", canonical)
	}
}

func TestCitedFiltersUnretrievedIDs(t *testing.T) {
	t.Parallel()

	res := QueryResult{
		RetrievedNotes: []RetrievedNote{{ID: "a"}, {ID: "b"}},
		CitedNotes:     []string{"a", "ghost"},
	}

	cited := res.Cited()
	if !cited["a"] {
		t.Fatalf("expected a to be cited")
	}
	if cited["ghost"] {
		t.Fatalf("ids outside RetrievedNotes must be dropped")
	}
}

func TestNoteCRUDPaths(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method + " " + r.URL.Path {
		case "POST /notes":
			json.NewEncoder(w).Encode(Note{ID: "n1", Title: "created"})
		case "GET /notes/n1":
			json.NewEncoder(w).Encode(Note{ID: "n1", Title: "fetched"})
		case "PUT /notes/n1":
			json.NewEncoder(w).Encode(Note{ID: "n1", Title: "updated"})
		case "DELETE /notes/n1":
			json.NewEncoder(w).Encode(NoteDeleteResponse{DeletedID: "n1"})
		case "DELETE /notes":
			json.NewEncoder(w).Encode(NoteDeleteAllResponse{DeletedCount: 3})
		case "GET /notes/stats":
			json.NewEncoder(w).Encode(NoteStatsResponse{TotalNotes: 3})
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	ctx := context.Background()

	if n, err := client.CreateNote(ctx, NoteCreate{Title: "created"}); err != nil || n.ID != "n1" {
		t.Fatalf("CreateNote: %v %+v", err, n)
	}
	if n, err := client.GetNote(ctx, "n1"); err != nil || n.Title != "fetched" {
		t.Fatalf("GetNote: %v %+v", err, n)
	}
	title := "updated"
	if n, err := client.UpdateNote(ctx, "n1", NoteUpdate{Title: &title}); err != nil || n.Title != "updated" {
		t.Fatalf("UpdateNote: %v %+v", err, n)
	}
	if d, err := client.DeleteNote(ctx, "n1"); err != nil || d.DeletedID != "n1" {
		t.Fatalf("DeleteNote: %v %+v", err, d)
	}
	if d, err := client.DeleteAllNotes(ctx); err != nil || d.DeletedCount != 3 {
		t.Fatalf("DeleteAllNotes: %v %+v", err, d)
	}
	if s, err := client.NoteStats(ctx); err != nil || s.TotalNotes != 3 {
		t.Fatalf("NoteStats: %v %+v", err, s)
	}
}
