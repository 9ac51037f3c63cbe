// Package llm abstracts the chat model behind the research agents. The one
// implementation speaks the OpenAI responses API, which also covers local
// OpenAI-compatible endpoints through a custom base URL.
package llm

import (
	"context"

	"github.com/openai/openai-go/v3/responses"
)

// Provider runs a single model turn. Text deltas stream through onToken as
// they arrive; the returned response carries the full output, including any
// tool calls the agent loop must execute before the next turn.
type Provider interface {
	ChatStream(ctx context.Context, input []responses.ResponseInputItemUnionParam, tools []responses.ToolUnionParam, onToken func(string)) (*responses.Response, error)
}
