package agentcore

import (
	"encoding/json"
	"log/slog"
	"strings"

	"valyuagent/internal/agent"

	"github.com/tidwall/gjson"
)

const (
	ssePrefix = "data: "

	// maxSourceEntries caps how many results entries are scanned per
	// tool-result payload.
	maxSourceEntries = 10

	// maxTitleRunes caps source titles for display.
	maxTitleRunes = 60
)

// streamLine is the wire shape of one runtime stream event. The vendor
// interleaves several shapes on the same stream: model events under "event",
// framework callbacks under "current_tool_use", and full messages (including
// tool results) under "message".
type streamLine struct {
	Event *struct {
		ContentBlockDelta *struct {
			Delta struct {
				Text string `json:"text"`
			} `json:"delta"`
		} `json:"contentBlockDelta"`
		ContentBlockStart *struct {
			Start struct {
				ToolUse struct {
					Name string `json:"name"`
				} `json:"toolUse"`
			} `json:"start"`
		} `json:"contentBlockStart"`
		MessageStart     json.RawMessage `json:"messageStart"`
		ContentBlockStop json.RawMessage `json:"contentBlockStop"`
		MessageStop      json.RawMessage `json:"messageStop"`
	} `json:"event"`
	CurrentToolUse *struct {
		Name string `json:"name"`
	} `json:"current_tool_use"`
	Message *struct {
		Content []contentBlock `json:"content"`
	} `json:"message"`
	Error json.RawMessage `json:"error"`
}

type contentBlock struct {
	Text       string `json:"text"`
	ToolResult *struct {
		Status  string `json:"status"`
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	} `json:"toolResult"`
}

// Reducer folds a runtime SSE stream into accumulated response text, the
// set of tools invoked, and extracted citation sources. One Reducer serves
// one query/response cycle.
//
// Individual malformed lines never fail the stream: they are consumed as
// no-ops so a single bad event cannot kill an otherwise good response.
type Reducer struct {
	text           strings.Builder
	toolsUsed      []string
	toolSeen       map[string]bool
	sources        []agent.Source
	sourceSeen     map[string]bool
	toolInProgress bool
	failed         bool
}

func NewReducer() *Reducer {
	return &Reducer{
		toolSeen:   make(map[string]bool),
		sourceSeen: make(map[string]bool),
	}
}

// Text returns the accumulated response text so far.
func (r *Reducer) Text() string { return r.text.String() }

// ToolsUsed returns the normalized names of tools invoked, in first-use
// order, without duplicates.
func (r *Reducer) ToolsUsed() []string { return r.toolsUsed }

// Sources returns the citation sources extracted so far, deduplicated by
// URL, in insertion order.
func (r *Reducer) Sources() []agent.Source { return r.sources }

// Failed reports whether the stream carried an explicit error event.
func (r *Reducer) Failed() bool { return r.failed }

// Finish yields the terminal done event carrying the final answer text.
func (r *Reducer) Finish() agent.Event {
	return agent.Event{Type: agent.EventDone, Data: r.Text()}
}

// Feed consumes one stream line and returns the notifications it produced.
// Empty lines, lines that fail JSON decoding, and lines that decode to a
// non-object are no-ops. Once an error event has been seen, the rest of the
// stream is ignored.
func (r *Reducer) Feed(line string) []agent.Event {
	if r.failed {
		return nil
	}

	line = strings.TrimRight(line, "\r\n")
	line = strings.TrimPrefix(line, ssePrefix)
	if strings.TrimSpace(line) == "" {
		return nil
	}

	var ev streamLine
	if err := json.Unmarshal([]byte(line), &ev); err != nil {
		slog.Debug("skipping malformed stream line", "error", err)
		return nil
	}

	if present(ev.Error) {
		r.failed = true
		return []agent.Event{{Type: agent.EventError, Data: errorMessage(ev.Error)}}
	}

	var out []agent.Event

	if ev.Event != nil {
		switch {
		case ev.Event.ContentBlockDelta != nil:
			if text := ev.Event.ContentBlockDelta.Delta.Text; text != "" {
				// A delta after a tool call means the tool finished and
				// the model is speaking again.
				if r.toolInProgress {
					out = append(out, agent.Event{Type: agent.EventToolDone})
					r.toolInProgress = false
				}
				r.text.WriteString(text)
				out = append(out, agent.Event{Type: agent.EventToken, Data: text})
			}

		case ev.Event.ContentBlockStart != nil:
			if name := ev.Event.ContentBlockStart.Start.ToolUse.Name; name != "" {
				out = append(out, r.toolStart(name))
			} else if br := r.paragraphBreak(); br != nil {
				out = append(out, *br)
			}

		case present(ev.Event.MessageStart):
			if br := r.paragraphBreak(); br != nil {
				out = append(out, *br)
			}

		case present(ev.Event.ContentBlockStop):
			// Block boundaries carry no content.

		case present(ev.Event.MessageStop):
			if r.toolInProgress {
				out = append(out, agent.Event{Type: agent.EventToolDone})
				r.toolInProgress = false
			}
		}
	}

	if ev.CurrentToolUse != nil && ev.CurrentToolUse.Name != "" {
		out = append(out, r.toolStart(ev.CurrentToolUse.Name))
	}

	if ev.Message != nil {
		for _, block := range ev.Message.Content {
			// Use the final message text if nothing was captured streaming.
			if block.Text != "" && r.text.Len() == 0 {
				r.text.WriteString(block.Text)
			}
			if block.ToolResult != nil && block.ToolResult.Status == "success" {
				for _, content := range block.ToolResult.Content {
					if srcs := r.addSources(ExtractSources(content.Text)); len(srcs) > 0 {
						out = append(out, agent.Event{Type: agent.EventSources, Data: srcs})
					}
				}
			}
		}
	}

	return out
}

func (r *Reducer) toolStart(name string) agent.Event {
	clean := agent.CleanName(name)
	r.toolInProgress = true
	if !r.toolSeen[clean] {
		r.toolSeen[clean] = true
		r.toolsUsed = append(r.toolsUsed, clean)
	}
	return agent.Event{Type: agent.EventToolCall, Data: map[string]string{"name": clean}}
}

// paragraphBreak separates sequential content blocks from a model that does
// not signal paragraph boundaries. It is a no-op when there is no text yet
// or the text already ends in a newline.
func (r *Reducer) paragraphBreak() *agent.Event {
	if r.text.Len() == 0 || strings.HasSuffix(r.text.String(), "\n") {
		return nil
	}
	r.text.WriteString("\n\n")
	return &agent.Event{Type: agent.EventToken, Data: "\n\n"}
}

func (r *Reducer) addSources(srcs []agent.Source) []agent.Source {
	var added []agent.Source
	for _, s := range srcs {
		if r.sourceSeen[s.URL] {
			continue
		}
		r.sourceSeen[s.URL] = true
		r.sources = append(r.sources, s)
		added = append(added, s)
	}
	return added
}

// ExtractSources pulls citation sources out of a tool-result text payload.
// The payload is whatever the tool returned, usually with the vendor JSON
// embedded somewhere inside; everything from the first '{' is decoded and
// up to 10 entries of its "results" field become sources. Tool-result
// formats are not contractually guaranteed, so every failure here is
// silent and non-fatal (logged at debug only).
func ExtractSources(text string) []agent.Source {
	start := strings.Index(text, "{")
	if start < 0 {
		return nil
	}

	results := gjson.Get(text[start:], "results")
	if !results.Exists() || !results.IsArray() {
		slog.Debug("tool result payload has no results field")
		return nil
	}

	var sources []agent.Source
	for i, entry := range results.Array() {
		if i >= maxSourceEntries {
			break
		}
		url := entry.Get("url").String()
		if url == "" {
			url = entry.Get("source").String()
		}
		if url == "" {
			continue
		}
		title := entry.Get("title").String()
		if title == "" {
			title = url
		}
		sources = append(sources, agent.Source{Title: truncateTitle(title), URL: url})
	}
	return sources
}

func truncateTitle(s string) string {
	runes := []rune(s)
	if len(runes) > maxTitleRunes {
		return string(runes[:maxTitleRunes])
	}
	return s
}

// present reports whether a raw JSON field was set to something other than
// an explicit null.
func present(raw json.RawMessage) bool {
	return len(raw) > 0 && string(raw) != "null"
}

func errorMessage(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	if msg := gjson.GetBytes(raw, "message"); msg.Exists() {
		return msg.String()
	}
	return string(raw)
}
