package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-match/internal/entity"
)

var (
	errConnRefused = errors.New("connection refused")
	errRedisDown   = errors.New("redis down")
	errDeadSocket  = errors.New("dead socket")
)

type mockStarter struct {
	mock.Mock
}

func (that *mockStarter) StartMatch(ctx context.Context, roomID string, players [2]string) (string, error) {
	args := that.Called(ctx, roomID, players)
	return args.String(0), args.Error(1)
}

type mockPlayerRepo struct {
	mock.Mock
}

func (that *mockPlayerRepo) Create(ctx context.Context, username string) (*entity.Player, bool, error) {
	args := that.Called(ctx, username)
	player, _ := args.Get(0).(*entity.Player)
	return player, args.Bool(1), args.Error(2)
}

func (that *mockPlayerRepo) GetByUsername(ctx context.Context, username string) (*entity.Player, error) {
	args := that.Called(ctx, username)
	player, _ := args.Get(0).(*entity.Player)
	return player, args.Error(1)
}

func (that *mockPlayerRepo) RecordResult(ctx context.Context, result entity.MatchResult) error {
	return that.Called(ctx, result).Error(0)
}

type mockLedger struct {
	mock.Mock
}

func (that *mockLedger) ReportResult(ctx context.Context, result entity.MatchResult) error {
	return that.Called(ctx, result).Error(0)
}

// recordingReporter - keeps reported results in memory.
type recordingReporter struct {
	mu      sync.Mutex
	results []entity.MatchResult
}

func (that *recordingReporter) Report(result entity.MatchResult) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.results = append(that.results, result)
}

func (that *recordingReporter) Results() []entity.MatchResult {
	that.mu.Lock()
	defer that.mu.Unlock()

	return append([]entity.MatchResult(nil), that.results...)
}

type fakeConn struct {
	id string

	mu     sync.Mutex
	frames [][]byte
	dead   bool
}

func (that *fakeConn) ID() string {
	return that.id
}

func (that *fakeConn) Send(data []byte) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.dead {
		return errDeadSocket
	}

	that.frames = append(that.frames, data)
	return nil
}

func (that *fakeConn) Close() error {
	return nil
}

// events - decodes every frame the connection received.
func (that *fakeConn) events(t *testing.T) []map[string]any {
	t.Helper()

	that.mu.Lock()
	defer that.mu.Unlock()

	events := make([]map[string]any, 0, len(that.frames))
	for _, frame := range that.frames {
		var event map[string]any
		require.NoError(t, json.Unmarshal(frame, &event))
		events = append(events, event)
	}

	return events
}

func (that *fakeConn) types(t *testing.T) []string {
	t.Helper()

	events := that.events(t)
	types := make([]string, 0, len(events))
	for _, event := range events {
		types = append(types, event["type"].(string))
	}

	return types
}

func (that *fakeConn) last(t *testing.T) map[string]any {
	t.Helper()

	events := that.events(t)
	require.NotEmpty(t, events)

	return events[len(events)-1]
}
