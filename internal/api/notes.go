package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

type ListParams struct {
	Page      int
	PageSize  int
	Search    string
	Tags      []string
	SortBy    string // created_at, updated_at, title
	SortOrder string // asc, desc
}

func (p ListParams) values() url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(p.PageSize))
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if len(p.Tags) > 0 {
		q.Set("tags", strings.Join(p.Tags, ","))
	}
	if p.SortBy != "" {
		q.Set("sort_by", p.SortBy)
	}
	if p.SortOrder != "" {
		q.Set("sort_order", p.SortOrder)
	}
	return q
}

func (c *Client) CreateNote(ctx context.Context, payload NoteCreate) (*Note, error) {
	var note Note
	if err := c.sendJSON(ctx, http.MethodPost, "/notes", payload, &note); err != nil {
		return nil, c.logErr("create note", err)
	}
	return &note, nil
}

func (c *Client) GetNote(ctx context.Context, id string) (*Note, error) {
	var note Note
	if err := c.getJSON(ctx, "/notes/"+url.PathEscape(id), nil, &note); err != nil {
		return nil, c.logErr(fmt.Sprintf("get note %s", id), err)
	}
	return &note, nil
}

func (c *Client) ListNotes(ctx context.Context, params ListParams) (*NoteListResponse, error) {
	var list NoteListResponse
	if err := c.getJSON(ctx, "/notes", params.values(), &list); err != nil {
		return nil, c.logErr("list notes", err)
	}
	return &list, nil
}

func (c *Client) UpdateNote(ctx context.Context, id string, payload NoteUpdate) (*Note, error) {
	var note Note
	if err := c.sendJSON(ctx, http.MethodPut, "/notes/"+url.PathEscape(id), payload, &note); err != nil {
		return nil, c.logErr(fmt.Sprintf("update note %s", id), err)
	}
	return &note, nil
}

func (c *Client) DeleteNote(ctx context.Context, id string) (*NoteDeleteResponse, error) {
	var out NoteDeleteResponse
	if err := c.do(ctx, http.MethodDelete, "/notes/"+url.PathEscape(id), nil, nil, "", &out); err != nil {
		return nil, c.logErr(fmt.Sprintf("delete note %s", id), err)
	}
	return &out, nil
}

func (c *Client) DeleteAllNotes(ctx context.Context) (*NoteDeleteAllResponse, error) {
	var out NoteDeleteAllResponse
	if err := c.do(ctx, http.MethodDelete, "/notes", nil, nil, "", &out); err != nil {
		return nil, c.logErr("delete all notes", err)
	}
	return &out, nil
}

func (c *Client) NoteStats(ctx context.Context) (*NoteStatsResponse, error) {
	var out NoteStatsResponse
	if err := c.getJSON(ctx, "/notes/stats", nil, &out); err != nil {
		return nil, c.logErr("note stats", err)
	}
	return &out, nil
}
