package service

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/rocketscienceinc/tictactoe-match/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-match/internal/entity"
	"github.com/rocketscienceinc/tictactoe-match/internal/hub"
	"github.com/rocketscienceinc/tictactoe-match/pkg/idgen"
)

type registry interface {
	Ensure(roomID string)
	Admit(roomID, username string, conn hub.Connection)
	Remove(conn hub.Connection) (hub.Binding, bool)
	Broadcast(roomID string, event any) error
}

type resultReporter interface {
	Report(result entity.MatchResult)
}

// MatchService - is the authoritative owner of live matches.
type MatchService struct {
	logger   *slog.Logger
	registry registry
	reporter resultReporter

	mu      sync.RWMutex
	matches map[string]*matchEntry
	byRoom  map[string]string
}

// matchEntry - guards one match. Moves and the broadcasts they cause happen under mu.
type matchEntry struct {
	mu    sync.Mutex
	match *entity.Match
}

func NewMatchService(logger *slog.Logger, registry registry, reporter resultReporter) *MatchService {
	return &MatchService{
		logger:   logger.With("component", "match_service"),
		registry: registry,
		reporter: reporter,
		matches:  make(map[string]*matchEntry),
		byRoom:   make(map[string]string),
	}
}

func (that *MatchService) Start(_ context.Context, roomID string, players []string) (entity.MatchState, error) {
	roomID = strings.TrimSpace(roomID)
	if roomID == "" {
		return entity.MatchState{}, apperror.ErrRoomIDRequired
	}

	if err := entity.ValidatePlayers(players); err != nil {
		return entity.MatchState{}, err
	}

	that.mu.Lock()
	id := idgen.NewMatchID()
	for that.matches[id] != nil {
		id = idgen.NewMatchID()
	}

	match := entity.NewMatch(id, roomID, [2]string{players[0], players[1]})
	that.matches[id] = &matchEntry{match: match}
	that.byRoom[roomID] = id
	that.mu.Unlock()

	that.registry.Ensure(roomID)

	that.logger.Info("match started", "roomID", roomID, "matchID", id, "players", players)

	return match.State(), nil
}

func (that *MatchService) State(_ context.Context, roomID string) (entity.MatchState, error) {
	entry := that.entryByRoom(roomID)
	if entry == nil {
		return entity.MatchState{}, apperror.ErrNoActiveMatch
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	return entry.match.State(), nil
}

// JoinSocket - admits a connection to a room, replies with the current state and announces it.
func (that *MatchService) JoinSocket(_ context.Context, conn hub.Connection, roomID, username string) error {
	log := that.logger.With("method", "JoinSocket", "roomID", roomID, "username", username)

	roomID, username = strings.TrimSpace(roomID), strings.TrimSpace(username)
	if roomID == "" {
		return apperror.ErrRoomIDRequired
	}

	if username == "" {
		return apperror.ErrUsernameRequired
	}

	var state *entity.MatchState
	if entry := that.entryByRoom(roomID); entry != nil {
		// admitted under the match lock so no move broadcast can overtake the snapshot
		entry.mu.Lock()
		that.registry.Admit(roomID, username, conn)
		snapshot := entry.match.State()
		state = &snapshot
		that.reply(log, conn, entity.NewJoinedRoomEvent(roomID, username, state))
		entry.mu.Unlock()
	} else {
		that.registry.Admit(roomID, username, conn)
		that.reply(log, conn, entity.NewJoinedRoomEvent(roomID, username, nil))
	}

	if err := that.registry.Broadcast(roomID, entity.NewPlayerJoinedEvent(roomID, username)); err != nil {
		log.Error("failed to broadcast", "error", err)
	}

	return nil
}

// MakeMove - applies a move to the room's match and fans the result out to the room.
func (that *MatchService) MakeMove(_ context.Context, roomID, username string, cell int) error {
	roomID = strings.TrimSpace(roomID)
	log := that.logger.With("method", "MakeMove", "roomID", roomID, "username", username)

	entry := that.entryByRoom(roomID)
	if entry == nil {
		return apperror.ErrNoActiveMatch
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	match := entry.match

	outcome, err := match.ApplyMove(username, cell)
	if err != nil {
		return err
	}

	state := match.State()

	var event any
	switch outcome.Result {
	case entity.ResultWin:
		winner := match.PlayerWith(outcome.Symbol)
		loser := match.Opponent(winner)
		that.reporter.Report(entity.MatchResult{Player1: match.Players[0], Player2: match.Players[1], Winner: &winner})
		event = entity.NewRoundEndEvent(state, entity.ResultWin, winner, loser)
		log.Info("round won", "matchID", match.ID, "winner", winner)
	case entity.ResultDraw:
		that.reporter.Report(entity.MatchResult{Player1: match.Players[0], Player2: match.Players[1]})
		event = entity.NewRoundEndEvent(state, entity.ResultDraw, "", "")
		log.Info("round drawn", "matchID", match.ID)
	default:
		event = entity.NewBoardUpdateEvent(state)
	}

	if err = that.registry.Broadcast(roomID, event); err != nil {
		log.Error("failed to broadcast", "error", err)
	}

	return nil
}

// Disconnect - forgets a connection and tells the rest of its room. The match is left as is.
func (that *MatchService) Disconnect(_ context.Context, conn hub.Connection) {
	binding, ok := that.registry.Remove(conn)
	if !ok {
		return
	}

	that.logger.Info("socket left", "roomID", binding.RoomID, "username", binding.Username)

	if err := that.registry.Broadcast(binding.RoomID, entity.NewPlayerLeftEvent(binding.RoomID, binding.Username)); err != nil {
		that.logger.Error("failed to broadcast", "method", "Disconnect", "error", err)
	}
}

func (that *MatchService) entryByRoom(roomID string) *matchEntry {
	that.mu.RLock()
	defer that.mu.RUnlock()

	id, ok := that.byRoom[strings.TrimSpace(roomID)]
	if !ok {
		return nil
	}

	return that.matches[id]
}

func (that *MatchService) reply(log *slog.Logger, conn hub.Connection, event any) {
	if err := hub.Send(conn, event); err != nil {
		log.Warn("failed to reply", "error", err)
	}
}
