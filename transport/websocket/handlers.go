package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

var ErrCellRequired = errors.New("cell is required")

func (that *Server) handleNewGame(ctx context.Context, _ *Message) (*entity.State, error) {
	return that.uGame.Start(ctx)
}

func (that *Server) handleGameTurn(ctx context.Context, msg *Message) (*entity.State, error) {
	if len(msg.Payload) == 0 {
		return nil, ErrCellRequired
	}

	var payload RequestPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payload.Cell == nil {
		return nil, ErrCellRequired
	}

	return that.uGame.MakeTurn(ctx, *payload.Cell)
}

func (that *Server) handleEngineMove(ctx context.Context, _ *Message) (*entity.State, error) {
	return that.uGame.EngineMove(ctx)
}

func (that *Server) handleState(ctx context.Context, _ *Message) (*entity.State, error) {
	return that.uGame.GetState(ctx)
}
