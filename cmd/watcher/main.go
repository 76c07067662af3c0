package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/config"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/repository"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/repository/storage"
)

// main - prints every game state published to redis by the server.
func main() {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config.yml"
	}
	conf := config.MustLoad(path)

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	redisStorage, err := storage.New(ctx, conf.Redis.GetRedisAddr())
	if err != nil {
		logger.Error("could not connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisStorage.Close()

	states, err := repository.NewStatePublisher(redisStorage.Connection, conf.Redis.Channel).Subscribe(ctx)
	if err != nil {
		logger.Error("could not subscribe", "channel", conf.Redis.Channel, "error", err)
		os.Exit(1)
	}

	logger.Info("watching game states", "channel", conf.Redis.Channel)

	for state := range states {
		fmt.Println(render(state))
	}
}

func render(state *entity.State) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "game %s: %s", state.ID, state.Status)
	switch {
	case state.IsFinished():
		fmt.Fprintf(&sb, ", winner %s", state.Winner)
	case state.Turn != "":
		fmt.Fprintf(&sb, ", %s to move", state.Turn)
	}
	sb.WriteByte('\n')

	for _, row := range state.Board {
		for col, mark := range row {
			if mark == entity.EmptyCell {
				mark = "_"
			}
			if col > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(mark)
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}
