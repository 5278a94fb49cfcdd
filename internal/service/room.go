package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-match/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-match/internal/entity"
	"github.com/rocketscienceinc/tictactoe-match/pkg/idgen"
)

var errEmptyMatchID = errors.New("engine returned an empty match id")

type matchStarter interface {
	StartMatch(ctx context.Context, roomID string, players [2]string) (string, error)
}

// RoomService - owns rooms and hands full rooms over to the match engine.
type RoomService struct {
	logger       *slog.Logger
	starter      matchStarter
	startTimeout time.Duration

	mu    sync.RWMutex
	rooms map[string]*roomEntry
}

// roomEntry - serializes joins on a single room.
type roomEntry struct {
	mu   sync.Mutex
	room *entity.Room
}

func NewRoomService(logger *slog.Logger, starter matchStarter, startTimeout time.Duration) *RoomService {
	return &RoomService{
		logger:       logger.With("component", "room_service"),
		starter:      starter,
		startTimeout: startTimeout,
		rooms:        make(map[string]*roomEntry),
	}
}

func (that *RoomService) Create(_ context.Context, username string) (entity.Room, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return entity.Room{}, apperror.ErrUsernameRequired
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	id := idgen.NewRoomID()
	for that.rooms[id] != nil {
		id = idgen.NewRoomID()
	}

	room := entity.NewRoom(id, username)
	that.rooms[id] = &roomEntry{room: room}

	that.logger.Info("room created", "roomID", id, "username", username)

	return room.Clone(), nil
}

// Join - seats a player. The second seat triggers the match start exactly once.
func (that *RoomService) Join(ctx context.Context, roomID, username string) (entity.Room, error) {
	log := that.logger.With("method", "Join", "roomID", roomID)

	entry, err := that.entry(roomID)
	if err != nil {
		return entity.Room{}, err
	}

	username = strings.TrimSpace(username)
	if username == "" {
		return entity.Room{}, apperror.ErrUsernameRequired
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	room := entry.room
	if room.HasPlayer(username) {
		return room.Clone(), nil
	}

	if room.IsFull() {
		return entity.Room{}, apperror.ErrRoomFull
	}

	room.Players = append(room.Players, username)
	log.Info("player joined", "username", username)

	if !room.IsFull() {
		return room.Clone(), nil
	}

	matchID, err := that.startMatch(ctx, room)
	if err != nil {
		room.MarkError()
		log.Error("failed to start match", "error", err)
		return entity.Room{}, apperror.Wrap(apperror.ErrDependency, "couldn't start game", err)
	}

	room.Activate(matchID)
	log.Info("match started", "matchID", matchID)

	return room.Clone(), nil
}

func (that *RoomService) Get(_ context.Context, roomID string) (entity.Room, error) {
	entry, err := that.entry(roomID)
	if err != nil {
		return entity.Room{}, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	return entry.room.Clone(), nil
}

func (that *RoomService) entry(roomID string) (*roomEntry, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	entry, ok := that.rooms[strings.TrimSpace(roomID)]
	if !ok {
		return nil, apperror.ErrRoomNotFound
	}

	return entry, nil
}

func (that *RoomService) startMatch(ctx context.Context, room *entity.Room) (string, error) {
	// the handoff must finish even if the joining client goes away
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), that.startTimeout)
	defer cancel()

	matchID, err := that.starter.StartMatch(ctx, room.ID, [2]string{room.Players[0], room.Players[1]})
	if err != nil {
		return "", fmt.Errorf("start match for %s: %w", room.ID, err)
	}

	if matchID == "" {
		return "", fmt.Errorf("start match for %s: %w", room.ID, errEmptyMatchID)
	}

	return matchID, nil
}
