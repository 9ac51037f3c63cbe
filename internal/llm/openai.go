package llm

import (
	"context"
	"fmt"
	"net/http"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/responses"
	"github.com/openai/openai-go/v3/shared"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// OpenAIProvider drives any OpenAI-compatible responses endpoint. An empty
// base URL targets the hosted API.
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

func NewOpenAI(baseURL, apiKey, model string) *OpenAIProvider {
	var opts []option.RequestOption
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	opts = append(opts, option.WithHTTPClient(&http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}))
	client := openai.NewClient(opts...)
	return &OpenAIProvider{client: &client, model: model}
}

// Model reports the configured model identifier.
func (o *OpenAIProvider) Model() string { return o.model }

func (o *OpenAIProvider) ChatStream(ctx context.Context, input []responses.ResponseInputItemUnionParam, tools []responses.ToolUnionParam, onToken func(string)) (*responses.Response, error) {
	stream := o.client.Responses.NewStreaming(ctx, responses.ResponseNewParams{
		Model: shared.ResponsesModel(o.model),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: input,
		},
		Tools: tools,
	})

	var completed *responses.Response

	for stream.Next() {
		ev := stream.Current()

		switch ev.Type {
		case "response.output_text.delta":
			if ev.Delta != "" {
				onToken(ev.Delta)
			}
		case "response.completed":
			completed = &ev.Response
		case "response.failed":
			return nil, fmt.Errorf("model response failed: %s", ev.Response.Error.Message)
		case "response.incomplete":
			return nil, fmt.Errorf("model response incomplete: %s", ev.Response.IncompleteDetails.Reason)
		}
	}

	if err := stream.Err(); err != nil {
		return nil, fmt.Errorf("streaming model response: %w", err)
	}
	if completed == nil {
		return nil, fmt.Errorf("stream ended without a completed response")
	}
	return completed, nil
}
