package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

const (
	ActionNewGame    = "game:new"
	ActionTurn       = "game:turn"
	ActionEngineMove = "game:engine_move"
	ActionState      = "game:state"
	ActionUpdate     = "game:update"
	ActionError      = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type RequestPayload struct {
	Cell *int `json:"cell,omitempty"`
}

type ResponsePayload struct {
	Game  *entity.State `json:"game,omitempty"`
	Error string        `json:"error,omitempty"`
}

func newMessage(action string, payload ResponsePayload) (*Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &Message{Action: action, Payload: raw}, nil
}
