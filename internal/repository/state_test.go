package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-minimax/testing/suite"
)

func TestStatePublisher_Notify(t *testing.T) {
	t.Run("Subscriber receives the published snapshot", func(t *testing.T) {
		ctx, st := suite.New(t)

		publisher := NewStatePublisher(st.Client(), "")

		subCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		states, err := publisher.Subscribe(subCtx)
		require.NoError(t, err)

		// Given: a game with X in the center
		game := tictactoe.NewGame()
		require.NoError(t, game.ApplyHumanMove(4))

		// When: its snapshot is published
		err = publisher.Notify(ctx, game.State())
		require.NoError(t, err)

		// Then: the subscriber decodes the same snapshot
		select {
		case state := <-states:
			require.NotNil(t, state)
			assert.Equal(t, game.State(), state)
		case <-subCtx.Done():
			t.Fatal("timed out waiting for the published state")
		}
	})

	t.Run("Nothing is stored", func(t *testing.T) {
		ctx, st := suite.New(t)

		publisher := NewStatePublisher(st.Client(), "custom:channel")

		// When: a snapshot is published without subscribers
		err := publisher.Notify(ctx, &entity.State{ID: "123", Status: entity.StatusOngoing})
		require.NoError(t, err)

		// Then: the database stays empty
		size, err := st.Client().DBSize(ctx).Result()
		require.NoError(t, err)
		assert.Zero(t, size)
	})

	t.Run("Game manager publishes every change", func(t *testing.T) {
		ctx, st := suite.New(t)

		publisher := NewStatePublisher(st.Client(), DefaultStateChannel)
		manager := usecase.NewGameManager(st.Logger, publisher)

		subCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()

		states, err := publisher.Subscribe(subCtx)
		require.NoError(t, err)

		// When: a game is started and the engine opens
		_, err = manager.Start(ctx)
		require.NoError(t, err)
		played, err := manager.EngineMove(ctx)
		require.NoError(t, err)

		// Then: both snapshots arrive in order
		var received []*entity.State
		for len(received) < 2 {
			select {
			case state := <-states:
				received = append(received, state)
			case <-subCtx.Done():
				t.Fatalf("timed out after %d states", len(received))
			}
		}

		assert.Equal(t, [9]string{}, received[0].Cells())
		assert.Equal(t, played, received[1])
	})
}
