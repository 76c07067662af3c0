package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

const (
	writeWait      = 5 * time.Second
	maxMessageSize = 1024
)

type uGame interface {
	Start(ctx context.Context) (*entity.State, error)
	MakeTurn(ctx context.Context, cell int) (*entity.State, error)
	EngineMove(ctx context.Context) (*entity.State, error)
	GetState(ctx context.Context) (*entity.State, error)
}

type handlerFunc func(ctx context.Context, msg *Message) (*entity.State, error)

// client wraps one connection; gorilla allows a single concurrent writer.
type client struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func (that *client) send(msg *Message) error {
	that.writeMu.Lock()
	defer that.writeMu.Unlock()

	if err := that.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	if err := that.conn.WriteJSON(msg); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

// Server accepts game actions over websocket and broadcasts every state
// change to all connected clients.
type Server struct {
	logger   *slog.Logger
	uGame    uGame
	upgrader websocket.Upgrader

	handlers map[string]handlerFunc

	clientsMu sync.Mutex
	clients   map[*client]struct{}
}

func New(logger *slog.Logger, uGame uGame) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		uGame:  uGame,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  maxMessageSize,
			WriteBufferSize: maxMessageSize,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		clients: make(map[*client]struct{}),
	}

	server.handlers = map[string]handlerFunc{
		ActionNewGame:    server.handleNewGame,
		ActionTurn:       server.handleGameTurn,
		ActionEngineMove: server.handleEngineMove,
		ActionState:      server.handleState,
	}

	return server
}

// ServeHTTP - upgrades the connection and processes messages until the
// client goes away.
func (that *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "ServeHTTP")

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	conn.SetReadLimit(maxMessageSize)

	c := &client{conn: conn}
	that.register(c)
	defer that.unregister(c)

	log.Info("WebSocket connection established", "remote", conn.RemoteAddr().String())

	that.handleMessages(r.Context(), c)
}

// handleMessages - processes messages from the client.
func (that *Server) handleMessages(ctx context.Context, c *client) {
	log := that.logger.With("method", "handleMessages")

	for {
		var message Message
		if err := c.conn.ReadJSON(&message); err != nil {
			var syntaxErr *json.SyntaxError
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
				log.Info("malformed message", "error", err)
				that.reply(c, ActionError, ResponsePayload{Error: "malformed message"})
				continue
			}

			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Error("error reading message", "error", err)
			}
			return
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Info("unknown action", "action", message.Action)
			that.reply(c, message.Action, ResponsePayload{Error: "unknown action"})
			continue
		}

		state, err := handler(ctx, &message)
		if err != nil {
			log.Info("action rejected", "action", message.Action, "error", err)
			that.reply(c, message.Action, ResponsePayload{Game: state, Error: err.Error()})
			continue
		}

		that.reply(c, message.Action, ResponsePayload{Game: state})
	}
}

// Notify - broadcasts the new state to every connected client.
func (that *Server) Notify(_ context.Context, state *entity.State) error {
	msg, err := newMessage(ActionUpdate, ResponsePayload{Game: state})
	if err != nil {
		return fmt.Errorf("failed to build update: %w", err)
	}

	var errs []error
	for _, c := range that.snapshotClients() {
		if err = c.send(msg); err != nil {
			errs = append(errs, err)
			that.unregister(c)
		}
	}

	return errors.Join(errs...)
}

// Close - disconnects every client.
func (that *Server) Close() {
	for _, c := range that.snapshotClients() {
		that.unregister(c)
	}
}

func (that *Server) reply(c *client, action string, payload ResponsePayload) {
	msg, err := newMessage(action, payload)
	if err != nil {
		that.logger.Error("failed to build reply", "action", action, "error", err)
		return
	}

	if err = c.send(msg); err != nil {
		that.logger.Error("failed to send reply", "action", action, "error", err)
	}
}

func (that *Server) register(c *client) {
	that.clientsMu.Lock()
	defer that.clientsMu.Unlock()

	that.clients[c] = struct{}{}
}

func (that *Server) unregister(c *client) {
	that.clientsMu.Lock()
	_, ok := that.clients[c]
	delete(that.clients, c)
	that.clientsMu.Unlock()

	if ok {
		_ = c.conn.Close()
	}
}

func (that *Server) snapshotClients() []*client {
	that.clientsMu.Lock()
	defer that.clientsMu.Unlock()

	clients := make([]*client, 0, len(that.clients))
	for c := range that.clients {
		clients = append(clients, c)
	}
	return clients
}
