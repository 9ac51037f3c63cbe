package agentcore

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"valyuagent/internal/agent"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentcore"
	"github.com/google/uuid"
)

const (
	// partialTextThreshold is how much streamed text must have arrived
	// before a mid-stream transport failure is treated as a usable
	// partial answer instead of triggering the non-streaming retry.
	partialTextThreshold = 100

	incompleteNote = "\n\n---\n*Response may be incomplete due to connection issue.*"

	genericErrorMessage = "Error: Connection failed. Please try again."
)

type RuntimeConfig struct {
	AgentARN string
	Region   string
}

// runtimeAPI is the slice of the data-plane API the client needs.
type runtimeAPI interface {
	InvokeAgentRuntime(ctx context.Context, in *bedrockagentcore.InvokeAgentRuntimeInput, opts ...func(*bedrockagentcore.Options)) (*bedrockagentcore.InvokeAgentRuntimeOutput, error)
}

// RuntimeClient invokes a deployed AgentCore Runtime agent.
type RuntimeClient struct {
	client runtimeAPI
	arn    string
}

func NewRuntimeClient(ctx context.Context, cfg RuntimeConfig) (*RuntimeClient, error) {
	if cfg.AgentARN == "" {
		return nil, fmt.Errorf("runtime agent ARN is required")
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	return &RuntimeClient{
		client: bedrockagentcore.NewFromConfig(awsCfg),
		arn:    cfg.AgentARN,
	}, nil
}

// InvokeStream invokes the runtime and feeds each line of the SSE response
// body to onLine. The error covers transport-level failures only; malformed
// individual lines are the reducer's concern.
func (c *RuntimeClient) InvokeStream(ctx context.Context, prompt string, onLine func(string)) error {
	body, err := c.invoke(ctx, prompt)
	if err != nil {
		return err
	}
	defer body.Close()

	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		onLine(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading runtime stream: %w", err)
	}
	return nil
}

// Invoke invokes the runtime and returns the full response as text.
func (c *RuntimeClient) Invoke(ctx context.Context, prompt string) (string, error) {
	body, err := c.invoke(ctx, prompt)
	if err != nil {
		return "", err
	}
	defer body.Close()

	raw, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("reading runtime response: %w", err)
	}

	// The non-streaming entrypoint returns a JSON-encoded string.
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text, nil
	}
	return string(raw), nil
}

func (c *RuntimeClient) invoke(ctx context.Context, prompt string) (io.ReadCloser, error) {
	payload, err := json.Marshal(map[string]string{"prompt": prompt})
	if err != nil {
		return nil, fmt.Errorf("encoding payload: %w", err)
	}

	out, err := c.client.InvokeAgentRuntime(ctx, &bedrockagentcore.InvokeAgentRuntimeInput{
		AgentRuntimeArn:  aws.String(c.arn),
		ContentType:      aws.String("application/json"),
		Accept:           aws.String("application/json"),
		Payload:          payload,
		RuntimeSessionId: aws.String(uuid.NewString() + uuid.NewString()),
	})
	if err != nil {
		return nil, fmt.Errorf("invoking runtime: %w", err)
	}
	return out.Response, nil
}

// Query runs one streaming query through the reducer with the two-tier
// fallback: a transport failure after substantial text yields the partial
// answer annotated as possibly incomplete; with little or no text, the
// non-streaming path is tried; if that also fails, a generic error string
// is produced. The caller never sees a crash from a flaky stream.
func (c *RuntimeClient) Query(ctx context.Context, prompt string, emit func(agent.Event)) string {
	r := NewReducer()

	err := c.InvokeStream(ctx, prompt, func(line string) {
		for _, ev := range r.Feed(line) {
			emit(ev)
		}
	})

	if r.Failed() {
		// The stream reported an explicit error; the notification is
		// already out.
		return r.Text()
	}

	if err != nil {
		if len(r.Text()) > partialTextThreshold {
			final := r.Text() + incompleteNote
			emit(agent.Event{Type: agent.EventDone, Data: final})
			return final
		}

		slog.Warn("streaming invoke failed, retrying non-streaming", "error", err)
		final, err2 := c.Invoke(ctx, prompt)
		if err2 != nil {
			slog.Error("non-streaming fallback failed", "error", err2)
			emit(agent.Event{Type: agent.EventDone, Data: genericErrorMessage})
			return genericErrorMessage
		}
		emit(agent.Event{Type: agent.EventDone, Data: final})
		return final
	}

	done := r.Finish()
	emit(done)
	return r.Text()
}

// Stream runs Query on a producer goroutine and returns a channel of
// events, closed when the pass completes. Cancellation is best-effort via
// ctx: the consumer stops receiving and the producer winds down on its own.
func (c *RuntimeClient) Stream(ctx context.Context, prompt string) <-chan agent.Event {
	ch := make(chan agent.Event, 64)
	go func() {
		defer close(ch)
		c.Query(ctx, prompt, func(ev agent.Event) {
			select {
			case ch <- ev:
			case <-ctx.Done():
			}
		})
	}()
	return ch
}

// NoToolsPrompt rewrites a prompt to suppress tool use, for side-by-side
// comparison against the tool-assisted answer.
func NoToolsPrompt(prompt string) string {
	return "IMPORTANT: Do not use any tools. Answer this question using only your training knowledge.\n\nQuestion: " + prompt
}
