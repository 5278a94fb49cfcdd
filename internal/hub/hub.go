package hub

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
)

// Connection - is a live socket that can receive server events.
type Connection interface {
	ID() string
	// Send - queues a frame without blocking. An error means the connection is dead.
	Send(data []byte) error
	Close() error
}

// Binding - is the room and username a connection was admitted with.
type Binding struct {
	RoomID   string
	Username string
}

type Stats struct {
	Rooms       int `json:"rooms"`
	Connections int `json:"connections"`
}

type member struct {
	conn     Connection
	username string
}

// Hub - keeps the per-room sets of admitted connections.
type Hub struct {
	logger *slog.Logger

	mu       sync.RWMutex
	rooms    map[string]map[string]member
	bindings map[string]Binding
}

func New(logger *slog.Logger) *Hub {
	return &Hub{
		logger:   logger.With("component", "hub"),
		rooms:    make(map[string]map[string]member),
		bindings: make(map[string]Binding),
	}
}

// Ensure - registers a room with an empty member set if it is not known yet.
func (that *Hub) Ensure(roomID string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.rooms[roomID]; !ok {
		that.rooms[roomID] = make(map[string]member)
	}
}

// Admit - binds a connection to a room. A connection already bound elsewhere is moved.
func (that *Hub) Admit(roomID, username string, conn Connection) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if previous, ok := that.bindings[conn.ID()]; ok && previous.RoomID != roomID {
		delete(that.rooms[previous.RoomID], conn.ID())
	}

	members, ok := that.rooms[roomID]
	if !ok {
		members = make(map[string]member)
		that.rooms[roomID] = members
	}

	members[conn.ID()] = member{conn: conn, username: username}
	that.bindings[conn.ID()] = Binding{RoomID: roomID, Username: username}
}

// Remove - unbinds a connection and reports where it was bound.
func (that *Hub) Remove(conn Connection) (Binding, bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.removeLocked(conn.ID())
}

func (that *Hub) removeLocked(connID string) (Binding, bool) {
	binding, ok := that.bindings[connID]
	if !ok {
		return Binding{}, false
	}

	delete(that.bindings, connID)
	delete(that.rooms[binding.RoomID], connID)

	return binding, true
}

// members - usernames of the connections currently in a room.
func (that *Hub) members(roomID string) []string {
	that.mu.RLock()
	defer that.mu.RUnlock()

	usernames := make([]string, 0, len(that.rooms[roomID]))
	for _, m := range that.rooms[roomID] {
		usernames = append(usernames, m.username)
	}

	return usernames
}

func (that *Hub) Stats() Stats {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return Stats{
		Rooms:       len(that.rooms),
		Connections: len(that.bindings),
	}
}

// Broadcast - sends the event to every member of the room. Members whose send fails
// are removed and closed once the iteration is done.
func (that *Hub) Broadcast(roomID string, event any) error {
	log := that.logger.With("method", "Broadcast", "roomID", roomID)

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	that.mu.RLock()
	snapshot := make([]member, 0, len(that.rooms[roomID]))
	for _, m := range that.rooms[roomID] {
		snapshot = append(snapshot, m)
	}
	that.mu.RUnlock()

	var failed []member
	for _, m := range snapshot {
		if err = m.conn.Send(data); err != nil {
			log.Warn("dropping subscriber", "username", m.username, "error", err)
			failed = append(failed, m)
		}
	}

	if len(failed) == 0 {
		return nil
	}

	that.mu.Lock()
	for _, m := range failed {
		// the connection may have moved to another room in the meantime
		if binding, ok := that.bindings[m.conn.ID()]; ok && binding.RoomID == roomID {
			that.removeLocked(m.conn.ID())
		}
	}
	that.mu.Unlock()

	for _, m := range failed {
		if err = m.conn.Close(); err != nil {
			log.Debug("failed to close dropped subscriber", "username", m.username, "error", err)
		}
	}

	return nil
}

// Send - delivers an event to a single connection.
func Send(conn Connection, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err = conn.Send(data); err != nil {
		return fmt.Errorf("failed to send event: %w", err)
	}

	return nil
}
