package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

const maxMoveBodyBytes = 64

var ErrInvalidMove = errors.New("move must be a cell number from 0 to 8")

type gameUseCase interface {
	Start(ctx context.Context) (*entity.State, error)
	MakeTurn(ctx context.Context, cell int) (*entity.State, error)
	EngineMove(ctx context.Context) (*entity.State, error)
	GetState(ctx context.Context) (*entity.State, error)
}

type initResponse struct {
	Message string        `json:"message"`
	Game    *entity.State `json:"game"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type handlers struct {
	logger *slog.Logger
	game   gameUseCase
}

// NewRouter - builds the REST routes. Extra routes such as the websocket
// endpoint can be mounted on the returned router.
func NewRouter(logger *slog.Logger, game gameUseCase) chi.Router {
	h := &handlers{
		logger: logger.With("component", "rest"),
		game:   game,
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(requestLogger(h.logger))
	router.Use(middleware.Recoverer)
	router.Use(corsHeaders)

	router.Get("/ping", h.ping)
	router.Post("/init", h.initGame)
	router.Post("/manual_move", h.manualMove)
	router.Post("/engine_move", h.engineMove)
	router.Get("/state", h.state)

	return router
}

func (that *handlers) ping(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		that.logger.Error("failed to write ping response", "error", err)
	}
}

func (that *handlers) initGame(w http.ResponseWriter, r *http.Request) {
	state, err := that.game.Start(r.Context())
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.writeJSON(w, http.StatusOK, initResponse{Message: "Game initiated", Game: state})
}

func (that *handlers) manualMove(w http.ResponseWriter, r *http.Request) {
	cell, err := parseCell(http.MaxBytesReader(w, r.Body, maxMoveBodyBytes))
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	state, err := that.game.MakeTurn(r.Context(), cell)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.writeJSON(w, http.StatusOK, state)
}

func (that *handlers) engineMove(w http.ResponseWriter, r *http.Request) {
	state, err := that.game.EngineMove(r.Context())
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.writeJSON(w, http.StatusOK, state)
}

func (that *handlers) state(w http.ResponseWriter, r *http.Request) {
	state, err := that.game.GetState(r.Context())
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.writeJSON(w, http.StatusOK, state)
}

// parseCell - accepts the cell as plain text, a JSON number or a JSON string.
func parseCell(body io.Reader) (int, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidMove, err)
	}

	text := strings.Trim(strings.TrimSpace(string(raw)), `"`)

	cell, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMove, text)
	}

	if cell < 0 || cell >= tictactoe.CellCount {
		return 0, fmt.Errorf("%w: %d", ErrInvalidMove, cell)
	}

	return cell, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrInvalidMove), errors.Is(err, tictactoe.ErrInvalidCell):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrGameIsNotStarted):
		return http.StatusPreconditionFailed
	case errors.Is(err, apperror.ErrGameFinished), errors.Is(err, tictactoe.ErrCellOccupied):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (that *handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)

	log := that.logger.With("path", r.URL.Path, "requestID", middleware.GetReqID(r.Context()))
	if status == http.StatusInternalServerError {
		log.Error("request failed", "error", err)
	} else {
		log.Info("request rejected", "status", status, "error", err)
	}

	that.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
