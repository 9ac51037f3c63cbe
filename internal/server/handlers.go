package server

import (
	"encoding/json"
	"net/http"
	"sort"

	"valyuagent/internal/agent"
	"valyuagent/internal/agentcore"
)

type chatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
	Profile   string `json:"profile"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid JSON body"}`, http.StatusBadRequest)
		return
	}
	if req.SessionID == "" || req.Message == "" {
		http.Error(w, `{"error":"session_id and message are required"}`, http.StatusBadRequest)
		return
	}
	if req.Profile == "" {
		req.Profile = defaultProfile
	}

	runner, err := s.factory.Build(req.Profile)
	if err != nil {
		http.Error(w, `{"error":"unknown profile"}`, http.StatusBadRequest)
		return
	}

	sse := NewSSEWriter(w)
	var sentError bool

	err = runner.Run(r.Context(), req.SessionID, req.Message, func(ev agent.Event) {
		switch ev.Type {
		case agent.EventToken:
			sse.Send("token", map[string]string{"content": ev.Data.(string)})
		case agent.EventToolCall:
			sse.Send("tool_call", ev.Data)
		case agent.EventToolResult:
			sse.Send("tool_result", ev.Data)
			// Surface citations from search results alongside the raw output.
			if m, ok := ev.Data.(map[string]string); ok {
				if srcs := agentcore.ExtractSources(m["content"]); len(srcs) > 0 {
					sse.Send("sources", srcs)
				}
			}
		case agent.EventToolDone:
			sse.Send("tool_done", map[string]any{})
		case agent.EventSources:
			sse.Send("sources", ev.Data)
		case agent.EventError:
			sentError = true
			sse.Send("error", map[string]string{"error": ev.Data.(string)})
		case agent.EventDone:
			sse.Send("done", map[string]any{"content": ev.Data})
		}
	})

	if err != nil && !sentError {
		sse.Send("error", map[string]string{"error": err.Error()})
	}
}

type compareRequest struct {
	Message string `json:"message"`
}

// laneEvent tags a stream event with which side of the comparison it
// belongs to: "tools" for the full agent, "no_tools" for the baseline.
type laneEvent struct {
	Lane  string      `json:"lane"`
	Event agent.Event `json:"event"`
}

// handleCompare runs the same question through the deployed runtime twice,
// once with tools and once with tools suppressed, and interleaves both
// streams onto a single SSE response.
func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	if s.runtime == nil {
		http.Error(w, `{"error":"no runtime configured"}`, http.StatusServiceUnavailable)
		return
	}

	var req compareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid JSON body"}`, http.StatusBadRequest)
		return
	}
	if req.Message == "" {
		http.Error(w, `{"error":"message is required"}`, http.StatusBadRequest)
		return
	}

	sse := NewSSEWriter(w)
	ctx := r.Context()

	withTools := s.runtime.Stream(ctx, req.Message)
	noTools := s.runtime.Stream(ctx, agentcore.NoToolsPrompt(req.Message))

	for withTools != nil || noTools != nil {
		select {
		case ev, ok := <-withTools:
			if !ok {
				withTools = nil
				continue
			}
			sse.Send(string(ev.Type), laneEvent{Lane: "tools", Event: ev})
		case ev, ok := <-noTools:
			if !ok {
				noTools = nil
				continue
			}
			sse.Send(string(ev.Type), laneEvent{Lane: "no_tools", Event: ev})
		case <-ctx.Done():
			return
		}
	}
}

func (s *Server) handleProfiles(w http.ResponseWriter, r *http.Request) {
	names := s.factory.Profiles()
	sort.Strings(names)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string][]string{"profiles": names})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
