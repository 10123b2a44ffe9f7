package api

import "fmt"

// Error is the one shape every failed request collapses into. Status 0
// means no HTTP response was received at all.
type Error struct {
	Status  int
	Message string
	Details any
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// errorBody mirrors the backend's failure payload. FastAPI-style backends
// put the useful text in detail, others in message.
type errorBody struct {
	Message string `json:"message"`
	Detail  any    `json:"detail"`
}

func (b errorBody) text() string {
	if b.Message != "" {
		return b.Message
	}
	if s, ok := b.Detail.(string); ok && s != "" {
		return s
	}
	return "Request failed"
}
