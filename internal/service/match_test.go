package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-match/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-match/internal/entity"
	"github.com/rocketscienceinc/tictactoe-match/internal/hub"
	"github.com/rocketscienceinc/tictactoe-match/testing/suite"
)

const testRoomID = "ROOM_abc123"

type matchFixture struct {
	service  *MatchService
	hub      *hub.Hub
	reporter *recordingReporter
	emil     *fakeConn
	sara     *fakeConn
}

// newStartedMatch - a match between emil and sara with both sockets joined.
func newStartedMatch(t *testing.T) *matchFixture {
	t.Helper()

	ctx := context.Background()
	logger := suite.NewLogger()
	registry := hub.New(logger)
	reporter := &recordingReporter{}
	matchService := NewMatchService(logger, registry, reporter)

	_, err := matchService.Start(ctx, testRoomID, []string{"emil", "sara"})
	require.NoError(t, err)

	emil, sara := &fakeConn{id: "c1"}, &fakeConn{id: "c2"}
	require.NoError(t, matchService.JoinSocket(ctx, emil, testRoomID, "emil"))
	require.NoError(t, matchService.JoinSocket(ctx, sara, testRoomID, "sara"))

	return &matchFixture{
		service:  matchService,
		hub:      registry,
		reporter: reporter,
		emil:     emil,
		sara:     sara,
	}
}

func (that *matchFixture) play(t *testing.T, moves ...int) {
	t.Helper()

	players := [2]string{"emil", "sara"}
	for i, cell := range moves {
		require.NoError(t, that.service.MakeMove(context.Background(), testRoomID, players[i%2], cell))
	}
}

func TestMatchService_Start(t *testing.T) {
	ctx := context.Background()

	t.Run("Starts an active match", func(t *testing.T) {
		registry := hub.New(suite.NewLogger())
		matchService := NewMatchService(suite.NewLogger(), registry, &recordingReporter{})

		// When: a match is started
		state, err := matchService.Start(ctx, testRoomID, []string{"emil", "sara"})

		// Then: the state is fresh and the room is registered
		require.NoError(t, err)
		assert.Regexp(t, `^MATCH_[0-9a-f]{8}$`, state.MatchID)
		assert.Equal(t, "emil", state.Turn)
		assert.Equal(t, entity.MatchStatusActive, state.Status)
		assert.Equal(t, map[string]int{"emil": 0, "sara": 0, "draws": 0}, state.Score)
		assert.Equal(t, hub.Stats{Rooms: 1}, registry.Stats())

		stored, err := matchService.State(ctx, testRoomID)
		require.NoError(t, err)
		assert.Equal(t, state, stored)
	})

	t.Run("Malformed players are rejected", func(t *testing.T) {
		matchService := NewMatchService(suite.NewLogger(), hub.New(suite.NewLogger()), &recordingReporter{})

		_, err := matchService.Start(ctx, testRoomID, []string{"emil"})
		assert.ErrorIs(t, err, apperror.ErrValidation)

		_, err = matchService.Start(ctx, "", []string{"emil", "sara"})
		assert.ErrorIs(t, err, apperror.ErrValidation)

		_, err = matchService.State(ctx, testRoomID)
		assert.ErrorIs(t, err, apperror.ErrNoActiveMatch)
	})
}

func TestMatchService_JoinSocket(t *testing.T) {
	ctx := context.Background()

	t.Run("Joiner gets the snapshot and everyone hears about it", func(t *testing.T) {
		fixture := newStartedMatch(t)

		// Then: emil saw his own join and then sara's
		assert.Equal(t, []string{"JOINED_ROOM", "PLAYER_JOINED", "PLAYER_JOINED"}, fixture.emil.types(t))
		assert.Equal(t, []string{"JOINED_ROOM", "PLAYER_JOINED"}, fixture.sara.types(t))

		joined := fixture.sara.events(t)[0]
		assert.Equal(t, "sara", joined["you"])
		assert.Equal(t, testRoomID, joined["roomId"])
		matchState, ok := joined["matchState"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "emil", matchState["turn"])

		assert.Equal(t, "sara", fixture.emil.last(t)["username"])
	})

	t.Run("Room without a match replies with a null state", func(t *testing.T) {
		matchService := NewMatchService(suite.NewLogger(), hub.New(suite.NewLogger()), &recordingReporter{})
		conn := &fakeConn{id: "c1"}

		require.NoError(t, matchService.JoinSocket(ctx, conn, "ROOM_000000", "emil"))

		joined := conn.events(t)[0]
		assert.Equal(t, "JOINED_ROOM", joined["type"])
		assert.Nil(t, joined["matchState"])
	})

	t.Run("Missing fields are rejected", func(t *testing.T) {
		registry := hub.New(suite.NewLogger())
		matchService := NewMatchService(suite.NewLogger(), registry, &recordingReporter{})
		conn := &fakeConn{id: "c1"}

		assert.ErrorIs(t, matchService.JoinSocket(ctx, conn, "", "emil"), apperror.ErrValidation)
		assert.ErrorIs(t, matchService.JoinSocket(ctx, conn, testRoomID, " "), apperror.ErrValidation)
		assert.Empty(t, conn.events(t))
		assert.Equal(t, 0, registry.Stats().Connections)
	})
}

func TestMatchService_MakeMove(t *testing.T) {
	ctx := context.Background()

	t.Run("Valid move broadcasts a board update", func(t *testing.T) {
		fixture := newStartedMatch(t)

		// When: emil takes the center
		require.NoError(t, fixture.service.MakeMove(ctx, testRoomID, "emil", 4))

		// Then: both sockets receive the update with sara to move
		for _, conn := range []*fakeConn{fixture.emil, fixture.sara} {
			event := conn.last(t)
			assert.Equal(t, "BOARD_UPDATE", event["type"])
			assert.Equal(t, "sara", event["turn"])
			assert.Equal(t, "ACTIVE", event["status"])
			assert.Equal(t, "X", event["board"].([]any)[4])
		}
	})

	t.Run("Room id with surrounding spaces still reaches the room", func(t *testing.T) {
		fixture := newStartedMatch(t)
		framesBefore := len(fixture.sara.events(t))

		// When: emil sends the room id padded with spaces
		require.NoError(t, fixture.service.MakeMove(ctx, " "+testRoomID+" ", "emil", 4))

		// Then: sara sees the update
		require.Len(t, fixture.sara.events(t), framesBefore+1)
		event := fixture.sara.last(t)
		assert.Equal(t, "BOARD_UPDATE", event["type"])
		assert.Equal(t, testRoomID, event["roomId"])
		assert.Equal(t, "X", event["board"].([]any)[4])
	})

	t.Run("Rejected moves change nothing and broadcast nothing", func(t *testing.T) {
		fixture := newStartedMatch(t)
		fixture.play(t, 4)
		before, err := fixture.service.State(ctx, testRoomID)
		require.NoError(t, err)
		framesBefore := len(fixture.emil.events(t))

		// When: a series of invalid moves arrives
		assert.ErrorIs(t, fixture.service.MakeMove(ctx, testRoomID, "emil", 0), apperror.ErrNotYourTurn)
		assert.ErrorIs(t, fixture.service.MakeMove(ctx, testRoomID, "sara", 4), apperror.ErrCellTaken)
		assert.ErrorIs(t, fixture.service.MakeMove(ctx, testRoomID, "sara", 9), apperror.ErrInvalidCell)
		assert.ErrorIs(t, fixture.service.MakeMove(ctx, testRoomID, "kate", 0), apperror.ErrNotAPlayer)
		assert.ErrorIs(t, fixture.service.MakeMove(ctx, "ROOM_000000", "sara", 0), apperror.ErrNoActiveMatch)

		// Then: state and broadcasts are untouched
		after, err := fixture.service.State(ctx, testRoomID)
		require.NoError(t, err)
		assert.Equal(t, before, after)
		assert.Len(t, fixture.emil.events(t), framesBefore)
		assert.Empty(t, fixture.reporter.Results())
	})

	t.Run("Win ends the round and reports once", func(t *testing.T) {
		// Given: emil X on 0,1 and sara O on 3,4
		fixture := newStartedMatch(t)
		fixture.play(t, 0, 3, 1, 4)

		// When: emil completes the top row
		require.NoError(t, fixture.service.MakeMove(ctx, testRoomID, "emil", 2))

		// Then: the round is over with emil as winner
		event := fixture.sara.last(t)
		assert.Equal(t, "ROUND_END", event["type"])
		assert.Equal(t, "WIN", event["result"])
		assert.Equal(t, "emil", event["winner"])
		assert.Equal(t, "sara", event["loser"])
		assert.Equal(t, map[string]any{"emil": float64(1), "sara": float64(0), "draws": float64(0)}, event["score"])

		winner := "emil"
		assert.Equal(t, []entity.MatchResult{{Player1: "emil", Player2: "sara", Winner: &winner}}, fixture.reporter.Results())

		// When: someone keeps playing
		err := fixture.service.MakeMove(ctx, testRoomID, "sara", 8)

		// Then: the finished round accepts no more moves
		assert.ErrorIs(t, err, apperror.ErrNotFound)
		assert.Len(t, fixture.reporter.Results(), 1)
	})

	t.Run("Draw ends the round and reports a null winner", func(t *testing.T) {
		fixture := newStartedMatch(t)

		// When: the board fills up without a line
		fixture.play(t, 0, 1, 2, 4, 3, 5, 7, 6, 8)

		// Then: a draw is broadcast and reported
		event := fixture.emil.last(t)
		assert.Equal(t, "ROUND_END", event["type"])
		assert.Equal(t, "DRAW", event["result"])
		assert.NotContains(t, event, "winner")
		assert.Equal(t, float64(1), event["score"].(map[string]any)["draws"])

		assert.Equal(t, []entity.MatchResult{{Player1: "emil", Player2: "sara"}}, fixture.reporter.Results())
	})

	t.Run("Concurrent moves are serialized", func(t *testing.T) {
		// Given: both players hammering the same match
		fixture := newStartedMatch(t)

		var wg sync.WaitGroup
		for _, username := range []string{"emil", "sara"} {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for cell := range entity.BoardSize {
					_ = fixture.service.MakeMove(ctx, testRoomID, username, cell)
				}
			}()
		}
		wg.Wait()

		// Then: marks alternate and the board never holds more X than O plus one
		state, err := fixture.service.State(ctx, testRoomID)
		require.NoError(t, err)

		var xCount, oCount int
		for _, cell := range state.Board {
			switch cell {
			case entity.SymbolX:
				xCount++
			case entity.SymbolO:
				oCount++
			}
		}
		assert.True(t, xCount == oCount || xCount == oCount+1, "x=%d o=%d", xCount, oCount)

		// Then: every broadcast board is a superset of the one before it
		var previous []any
		for _, event := range fixture.emil.events(t) {
			board, ok := event["board"].([]any)
			if !ok {
				continue
			}
			for i := range previous {
				if previous[i] != "" {
					assert.Equal(t, previous[i], board[i])
				}
			}
			previous = board
		}
	})
}

func TestMatchService_Disconnect(t *testing.T) {
	ctx := context.Background()

	t.Run("Remaining sockets hear about the departure", func(t *testing.T) {
		fixture := newStartedMatch(t)
		fixture.play(t, 4)
		before, err := fixture.service.State(ctx, testRoomID)
		require.NoError(t, err)

		// When: sara's socket goes away
		fixture.service.Disconnect(ctx, fixture.sara)

		// Then: emil is told and the match is untouched
		event := fixture.emil.last(t)
		assert.Equal(t, "PLAYER_LEFT", event["type"])
		assert.Equal(t, "sara", event["username"])
		assert.Equal(t, hub.Stats{Rooms: 1, Connections: 1}, fixture.hub.Stats())

		after, err := fixture.service.State(ctx, testRoomID)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("Unknown socket is a no-op", func(t *testing.T) {
		fixture := newStartedMatch(t)
		frames := len(fixture.emil.events(t))

		fixture.service.Disconnect(ctx, &fakeConn{id: "stranger"})

		assert.Len(t, fixture.emil.events(t), frames)
	})

	t.Run("Dead socket does not block the others", func(t *testing.T) {
		fixture := newStartedMatch(t)
		fixture.sara.mu.Lock()
		fixture.sara.dead = true
		fixture.sara.mu.Unlock()

		require.NoError(t, fixture.service.MakeMove(ctx, testRoomID, "emil", 0))

		assert.Equal(t, "BOARD_UPDATE", fixture.emil.last(t)["type"])
		assert.Equal(t, hub.Stats{Rooms: 1, Connections: 1}, fixture.hub.Stats())
	})
}
