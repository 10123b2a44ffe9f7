package api

import (
	"context"
	"io"
	"net/http"
	"strconv"
)

func (c *Client) TextQuery(ctx context.Context, payload QueryRequest) (*QueryResult, error) {
	var out QueryResult
	if err := c.sendJSON(ctx, http.MethodPost, "/query/text", payload, &out); err != nil {
		return nil, c.logErr("text query", err)
	}
	return &out, nil
}

// voiceResponse accepts both backend generations: the current one returns
// the canonical QueryResult (with the transcription in query), the older
// one returns transcribed_text plus a bare results list.
type voiceResponse struct {
	QueryResult
	TranscribedText string          `json:"transcribed_text"`
	Results         []RetrievedNote `json:"results"`
	TotalResults    int             `json:"total_results"`
}

func (v *voiceResponse) canonical() *QueryResult {
	if v.RetrievedNotes == nil && v.Results != nil {
		legacy := SearchResponse{Query: v.Query, Results: v.Results, TotalResults: v.TotalResults}
		out := legacy.AsQueryResult()
		if out.Query == "" {
			out.Query = v.TranscribedText
		}
		return out
	}

	out := v.QueryResult
	if out.Query == "" {
		out.Query = v.TranscribedText
	}
	return &out
}

// VoiceQuery uploads recorded audio and returns the canonical result; the
// resolved Query field carries the backend's transcription.
func (c *Client) VoiceQuery(ctx context.Context, audio io.Reader, filename string, topK int, minSimilarity *float64) (*QueryResult, error) {
	fields := map[string]string{}
	if topK > 0 {
		fields["top_k"] = strconv.Itoa(topK)
	}
	if minSimilarity != nil {
		fields["min_similarity"] = strconv.FormatFloat(*minSimilarity, 'f', -1, 64)
	}

	var raw voiceResponse
	if err := c.sendMultipart(ctx, "/query/voice", fields, "audio", filename, audio, &raw); err != nil {
		return nil, c.logErr("voice query", err)
	}
	return raw.canonical(), nil
}

// Search hits the plain semantic-search endpoint (no answer synthesis).
func (c *Client) Search(ctx context.Context, payload SearchRequest) (*SearchResponse, error) {
	var out SearchResponse
	if err := c.sendJSON(ctx, http.MethodPost, "/search", payload, &out); err != nil {
		return nil, c.logErr("search", err)
	}
	return &out, nil
}
