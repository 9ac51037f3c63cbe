package agent

import (
	"context"
	"strings"
)

type EventType string

const (
	EventToken      EventType = "token"
	EventToolCall   EventType = "tool_call"
	EventToolResult EventType = "tool_result"
	EventToolDone   EventType = "tool_done"
	EventSources    EventType = "sources"
	EventDone       EventType = "done"
	EventError      EventType = "error"
)

type Event struct {
	Type EventType `json:"type"`
	Data any       `json:"data,omitempty"`
}

// Source is a citation extracted from a search tool result.
type Source struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

type Runner interface {
	Run(ctx context.Context, sessionID string, message string, emit func(Event)) error
}

// CleanName strips the "___" namespace the gateway prepends to tool
// identifiers (e.g. "valyu-mcp___web_search" -> "web_search").
func CleanName(name string) string {
	if i := strings.LastIndex(name, "___"); i >= 0 {
		return name[i+3:]
	}
	return name
}
