package gateway

import (
	"sync"

	"github.com/konnect-platform/konnect/internal/stats"
)

// GroupRoom returns the broadcast room name for a chat group.
func GroupRoom(groupId string) string {
	return "group:" + groupId
}

// UserRoom returns the private delivery room name for a user.
func UserRoom(userId string) string {
	return "user:" + userId
}

// RoomManager tracks which connections are joined to which named
// rooms. Joins are advisory: no check is made that the user belongs
// to the underlying persisted group. Rooms exist only while at least
// one connection is joined.
type RoomManager struct {
	mu      sync.RWMutex
	rooms   map[string]map[*Client]struct{}
	members map[*Client]map[string]struct{}
	stats   stats.StatsProvider
}

func NewRoomManager(sp stats.StatsProvider) *RoomManager {
	return &RoomManager{
		rooms:   make(map[string]map[*Client]struct{}),
		members: make(map[*Client]map[string]struct{}),
		stats:   sp,
	}
}

func (rm *RoomManager) Join(c *Client, room string) {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	if rm.rooms[room] == nil {
		rm.rooms[room] = make(map[*Client]struct{})
		rm.stats.Incr("NumActiveRooms")
	}
	rm.rooms[room][c] = struct{}{}

	if rm.members[c] == nil {
		rm.members[c] = make(map[string]struct{})
	}
	rm.members[c][room] = struct{}{}
}

func (rm *RoomManager) Leave(c *Client, room string) {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	rm.leaveLocked(c, room)
}

// LeaveAll removes c from every room it joined, including its
// implicit user room. Called on disconnect.
func (rm *RoomManager) LeaveAll(c *Client) {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	for room := range rm.members[c] {
		rm.leaveLocked(c, room)
	}
}

func (rm *RoomManager) leaveLocked(c *Client, room string) {
	if clients, ok := rm.rooms[room]; ok {
		delete(clients, c)
		if len(clients) == 0 {
			delete(rm.rooms, room)
			rm.stats.Decr("NumActiveRooms")
		}
	}

	if rooms, ok := rm.members[c]; ok {
		delete(rooms, room)
		if len(rooms) == 0 {
			delete(rm.members, c)
		}
	}
}

// Broadcast queues msg on every connection joined to room, except
// skip. It returns the number of connections the message was queued
// for; zero when the room does not exist.
func (rm *RoomManager) Broadcast(room string, msg *ServerMessage, skip *Client) int {
	rm.mu.RLock()
	defer rm.mu.RUnlock()

	var delivered int
	for c := range rm.rooms[room] {
		if c == skip {
			continue
		}

		if c.queueMessage(msg) {
			delivered++
		}
	}

	return delivered
}

func (rm *RoomManager) NumRooms() int {
	rm.mu.RLock()
	defer rm.mu.RUnlock()

	return len(rm.rooms)
}
