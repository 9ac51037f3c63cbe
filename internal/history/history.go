package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"

	"valyuagent/internal/db"

	"github.com/openai/openai-go/v3/responses"
)

type Store struct {
	conn *sql.DB
}

func NewStore(database *db.DB) *Store {
	return &Store{conn: database.Conn()}
}

func (s *Store) EnsureSession(ctx context.Context, sessionID, channel string) error {
	_, err := s.conn.ExecContext(ctx,
		`INSERT INTO sessions (id, channel) VALUES (?, ?) ON CONFLICT (id) DO NOTHING`,
		sessionID, channel,
	)
	return err
}

func (s *Store) SaveTurn(ctx context.Context, sessionID, userMessage string, resp *responses.Response) error {
	model := sql.NullString{String: resp.Model, Valid: resp.Model != ""}
	_, err := s.conn.ExecContext(ctx,
		`INSERT INTO turns (session_id, user_message, response_json, model) VALUES (?, ?, ?, ?)`,
		sessionID, userMessage, resp.RawJSON(), model,
	)
	return err
}

type turn struct {
	ID           int64
	UserMessage  string
	ResponseJSON string
}

func (s *Store) LoadInputHistory(ctx context.Context, sessionID string) ([]responses.ResponseInputItemUnionParam, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT id, user_message, response_json FROM turns WHERE session_id = ? ORDER BY id`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []responses.ResponseInputItemUnionParam
	for rows.Next() {
		var t turn
		if err := rows.Scan(&t.ID, &t.UserMessage, &t.ResponseJSON); err != nil {
			return nil, err
		}

		// Add user message.
		items = append(items, responses.ResponseInputItemParamOfMessage(t.UserMessage, "user"))

		// Deserialize the stored response.
		var resp responses.Response
		if err := json.Unmarshal([]byte(t.ResponseJSON), &resp); err != nil {
			slog.Warn("skipping turn with invalid response JSON", "turn_id", t.ID, "error", err)
			continue
		}

		// Convert output items to input items.
		items = append(items, OutputToInput(resp.Output)...)
	}

	return items, rows.Err()
}

// OutputToInput converts response output items into input item params
// for the next API call. Each output type's ToParam() does a lossless
// round-trip via RawJSON.
func OutputToInput(output []responses.ResponseOutputItemUnion) []responses.ResponseInputItemUnionParam {
	var items []responses.ResponseInputItemUnionParam
	for _, item := range output {
		switch item.Type {
		case "message":
			v := item.AsMessage().ToParam()
			items = append(items, responses.ResponseInputItemUnionParam{OfOutputMessage: &v})
		case "function_call":
			v := item.AsFunctionCall().ToParam()
			items = append(items, responses.ResponseInputItemUnionParam{OfFunctionCall: &v})
		case "reasoning":
			v := item.AsReasoning().ToParam()
			items = append(items, responses.ResponseInputItemUnionParam{OfReasoning: &v})
		case "file_search_call":
			v := item.AsFileSearchCall().ToParam()
			items = append(items, responses.ResponseInputItemUnionParam{OfFileSearchCall: &v})
		case "web_search_call":
			v := item.AsWebSearchCall().ToParam()
			items = append(items, responses.ResponseInputItemUnionParam{OfWebSearchCall: &v})
		case "computer_call":
			v := item.AsComputerCall().ToParam()
			items = append(items, responses.ResponseInputItemUnionParam{OfComputerCall: &v})
		case "code_interpreter_call":
			v := item.AsCodeInterpreterCall().ToParam()
			items = append(items, responses.ResponseInputItemUnionParam{OfCodeInterpreterCall: &v})
		default:
			slog.Debug("skipping unknown output item type", "type", item.Type)
		}
	}
	return items
}
