package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

// Listener receives every new snapshot. It is called with the manager lock
// held and must not call back into the manager.
type Listener interface {
	Notify(ctx context.Context, state *entity.State) error
}

// GameManager owns the one shared game and serializes access to it.
type GameManager struct {
	logger *slog.Logger

	mu        sync.Mutex
	game      *tictactoe.Game
	listeners []Listener
}

func NewGameManager(logger *slog.Logger, listeners ...Listener) *GameManager {
	return &GameManager{
		logger:    logger.With("component", "game_manager"),
		listeners: listeners,
	}
}

func (that *GameManager) AddListener(listener Listener) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.listeners = append(that.listeners, listener)
}

// Start - resets the game to the empty board with X to move.
func (that *GameManager) Start(ctx context.Context) (*entity.State, error) {
	log := that.logger.With("method", "Start")

	that.mu.Lock()
	defer that.mu.Unlock()

	if that.game == nil {
		that.game = &tictactoe.Game{}
	}
	that.game.Start()

	state := that.game.State()
	log.Info("game started", "gameID", state.ID)

	that.notify(ctx, state)

	return state, nil
}

// MakeTurn - plays cell for the side to move.
func (that *GameManager) MakeTurn(ctx context.Context, cell int) (*entity.State, error) {
	log := that.logger.With("method", "MakeTurn")

	that.mu.Lock()
	defer that.mu.Unlock()

	state, err := that.ongoingState()
	if err != nil {
		return state, err
	}

	if err = that.game.ApplyHumanMove(cell); err != nil {
		log.Debug("move rejected", "cell", cell, "error", err)
		return state, fmt.Errorf("failed make turn: %w", err)
	}

	state = that.game.State()
	log.Info("move played", "gameID", state.ID, "cell", cell, "status", state.Status)

	that.notify(ctx, state)

	return state, nil
}

// EngineMove - lets the engine play for the side to move.
func (that *GameManager) EngineMove(ctx context.Context) (*entity.State, error) {
	log := that.logger.With("method", "EngineMove")

	that.mu.Lock()
	defer that.mu.Unlock()

	state, err := that.ongoingState()
	if errors.Is(err, apperror.ErrGameFinished) {
		log.Info("game over", "gameID", state.ID, "winner", state.Winner)
		return state, fmt.Errorf("%w: %w", err, tictactoe.ErrNoAvailableMoves)
	}

	if err != nil {
		return state, err
	}

	cell, err := that.game.ApplyEngineMove()
	if err != nil {
		log.Info("game over", "gameID", state.ID, "error", err)
		return state, fmt.Errorf("%w: %w", apperror.ErrGameFinished, err)
	}

	state = that.game.State()
	log.Debug("engine moved", "gameID", state.ID, "cell", cell, "board", that.game.Board().String())
	log.Info("move played", "gameID", state.ID, "cell", cell, "status", state.Status)

	that.notify(ctx, state)

	return state, nil
}

// GetState - returns a snapshot of the current game.
func (that *GameManager) GetState(_ context.Context) (*entity.State, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.game == nil {
		return nil, apperror.ErrGameIsNotStarted
	}

	return that.game.State(), nil
}

// ongoingState - must be called with the lock held.
func (that *GameManager) ongoingState() (*entity.State, error) {
	if that.game == nil {
		return nil, apperror.ErrGameIsNotStarted
	}

	state := that.game.State()
	if err := state.ConfirmOngoingState(); err != nil {
		return state, err
	}

	return state, nil
}

func (that *GameManager) notify(ctx context.Context, state *entity.State) {
	log := that.logger.With("method", "notify")

	for _, listener := range that.listeners {
		snapshot := *state
		if err := listener.Notify(ctx, &snapshot); err != nil {
			log.Error("failed to notify listener", "gameID", state.ID, "error", err)
		}
	}
}
