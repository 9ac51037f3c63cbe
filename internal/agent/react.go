package agent

import (
	"context"
	"log/slog"
	"sync"
	"valyuagent/internal/history"
	"valyuagent/internal/llm"
	"valyuagent/internal/trace"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/responses"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
)

const defaultSystemPrompt = `You are a research assistant with access to Valyu search tools.

- Be professional and concise
- Use clean markdown formatting
- ALWAYS add inline citations immediately after facts: "fact ([source](url))"
- Never state facts from search results without an inline citation`

type ReactOption func(*ReactRunner)

func WithSystemPrompt(s string) ReactOption {
	return func(r *ReactRunner) { r.systemPrompt = s }
}

// ReactRunner implements a ReAct (Reason + Act) agent loop.
// The agent keeps thinking and acting until it decides the task is done
// (i.e. the LLM returns no more tool calls) or the context is cancelled.
type ReactRunner struct {
	provider     llm.Provider
	store        *history.Store
	registry     *Registry
	tools        []responses.ToolUnionParam
	systemPrompt string
}

func NewReactRunner(provider llm.Provider, store *history.Store, registry *Registry, opts ...ReactOption) *ReactRunner {
	r := &ReactRunner{
		provider:     provider,
		store:        store,
		registry:     registry,
		systemPrompt: defaultSystemPrompt,
	}

	for _, opt := range opts {
		opt(r)
	}

	for _, t := range registry.All() {
		schema, _ := t.InputSchema().(map[string]any)
		r.tools = append(r.tools, responses.ToolUnionParam{
			OfFunction: &responses.FunctionToolParam{
				Name:        t.Name(),
				Description: openai.String(t.Description()),
				Parameters:  schema,
				Strict:      openai.Bool(false),
			},
		})
	}

	return r
}

func (r *ReactRunner) Run(ctx context.Context, sessionID string, message string, emit func(Event)) error {
	ctx = ContextWithSessionID(ctx, sessionID)
	ctx = ContextWithEmit(ctx, emit)

	truncatedMsg := message
	if len(truncatedMsg) > 200 {
		truncatedMsg = truncatedMsg[:200]
	}
	ctx, span := trace.Tracer().Start(ctx, "agent.react.run",
		oteltrace.WithAttributes(
			attribute.String("session.id", sessionID),
			attribute.String("user.message", truncatedMsg),
		),
	)
	defer span.End()

	input := r.recall(ctx, sessionID)

	input = append(input,
		responses.ResponseInputItemParamOfMessage(r.systemPrompt, "developer"),
		responses.ResponseInputItemParamOfMessage(message, "user"),
	)

	resp, err := r.loop(ctx, input, emit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	r.persist(ctx, sessionID, message, resp)

	emit(Event{Type: EventDone, Data: resp.OutputText()})
	return nil
}

// loop is the core ReAct cycle. Each iteration is a single LLM call where the
// model reasons about the current state and picks actions in one step. When a
// tool fails, the error goes back into context and the model sees it on the
// next iteration.
//
// The loop exits only when the LLM returns no tool calls (task complete) or
// the context is cancelled.
func (r *ReactRunner) loop(ctx context.Context, input []responses.ResponseInputItemUnionParam, emit func(Event)) (*responses.Response, error) {
	var resp *responses.Response
	iteration := 0

	for {
		if err := ctx.Err(); err != nil {
			emit(Event{Type: EventError, Data: "request cancelled"})
			return nil, err
		}

		llmCtx, llmSpan := trace.Tracer().Start(ctx, "llm.react",
			oteltrace.WithAttributes(attribute.Int("llm.iteration", iteration)),
		)

		var err error
		resp, err = r.provider.ChatStream(llmCtx, input, r.tools, func(token string) {
			emit(Event{Type: EventToken, Data: token})
		})
		if err != nil {
			llmSpan.RecordError(err)
			llmSpan.SetStatus(codes.Error, err.Error())
			llmSpan.End()
			emit(Event{Type: EventError, Data: err.Error()})
			return nil, err
		}

		llmSpan.SetAttributes(
			attribute.String("llm.model", string(resp.Model)),
			attribute.Int64("llm.input_tokens", resp.Usage.InputTokens),
			attribute.Int64("llm.output_tokens", resp.Usage.OutputTokens),
		)
		llmSpan.End()
		iteration++

		// Feed the LLM's output (including its reasoning) back into context.
		input = append(input, history.OutputToInput(resp.Output)...)

		var calls []responses.ResponseOutputItemUnion
		for _, item := range resp.Output {
			if item.Type == "function_call" {
				calls = append(calls, item)
			}
		}

		// No tool calls means the agent considers the task done.
		if len(calls) == 0 {
			return resp, nil
		}

		results := r.act(ctx, calls, emit)
		input = append(input, results...)
	}
}

// act executes tool calls in parallel, emitting events for each, and returns
// the results formatted as input items for the next LLM turn.
func (r *ReactRunner) act(ctx context.Context, calls []responses.ResponseOutputItemUnion, emit func(Event)) []responses.ResponseInputItemUnionParam {
	for _, call := range calls {
		fc := call.AsFunctionCall()
		emit(Event{Type: EventToolCall, Data: map[string]string{
			"name":      CleanName(fc.Name),
			"arguments": fc.Arguments,
		}})
	}

	var wg sync.WaitGroup
	results := make([]responses.ResponseInputItemUnionParam, len(calls))

	for i, call := range calls {
		wg.Add(1)
		go func(i int, call responses.ResponseOutputItemUnion) {
			defer wg.Done()
			fc := call.AsFunctionCall()

			tool, ok := r.registry.Get(fc.Name)
			if !ok {
				slog.Warn("unknown tool call", "name", fc.Name)
				results[i] = responses.ResponseInputItemParamOfFunctionCallOutput(fc.CallID, "error: unknown tool")
				emit(Event{Type: EventToolResult, Data: map[string]string{
					"name":    CleanName(fc.Name),
					"content": "error: unknown tool",
				}})
				return
			}

			traced := withTrace(tool)
			result, err := traced.Execute(ctx, fc.Arguments)
			if err != nil {
				slog.Warn("tool execution failed", "name", fc.Name, "error", err)
				errMsg := "error: " + err.Error()
				results[i] = responses.ResponseInputItemParamOfFunctionCallOutput(fc.CallID, errMsg)
				emit(Event{Type: EventToolResult, Data: map[string]string{
					"name":    CleanName(fc.Name),
					"content": errMsg,
				}})
				return
			}

			results[i] = responses.ResponseInputItemParamOfFunctionCallOutput(fc.CallID, result)
			emit(Event{Type: EventToolResult, Data: map[string]string{
				"name":    CleanName(fc.Name),
				"content": result,
			}})
		}(i, call)
	}

	wg.Wait()

	if len(calls) > 0 {
		emit(Event{Type: EventToolDone})
	}
	return results
}

// recall loads prior turns for the session. A nil store or a load failure
// degrades to an empty history.
func (r *ReactRunner) recall(ctx context.Context, sessionID string) []responses.ResponseInputItemUnionParam {
	if r.store == nil {
		return nil
	}
	if err := r.store.EnsureSession(ctx, sessionID, "cli"); err != nil {
		slog.Warn("failed to ensure session", "session_id", sessionID, "error", err)
	}
	input, err := r.store.LoadInputHistory(ctx, sessionID)
	if err != nil {
		slog.Warn("failed to load history", "session_id", sessionID, "error", err)
		return nil
	}
	return input
}

func (r *ReactRunner) persist(ctx context.Context, sessionID, message string, resp *responses.Response) {
	if r.store == nil {
		return
	}
	if err := r.store.SaveTurn(ctx, sessionID, message, resp); err != nil {
		slog.Warn("failed to save turn", "session_id", sessionID, "error", err)
	}
}
