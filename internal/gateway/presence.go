package gateway

import "sync"

// PresenceStore maps a user id to their single active connection.
// A second login from the same user overwrites the entry
// (last-connect-wins), matching the one-connection-per-user model.
type PresenceStore struct {
	mu      sync.Mutex
	entries map[string]*Client
}

func NewPresenceStore() *PresenceStore {
	return &PresenceStore{
		entries: make(map[string]*Client),
	}
}

// Register binds userId to c, evicting any prior entry for the user.
// It returns the replaced client, if any.
func (p *PresenceStore) Register(userId string, c *Client) *Client {
	p.mu.Lock()
	defer p.mu.Unlock()

	prev := p.entries[userId]
	p.entries[userId] = c
	return prev
}

// Unregister removes c's entry. If a newer connection from the same
// user has already overwritten the entry, the entry is left intact
// and Unregister reports false so the user is not marked offline.
func (p *PresenceStore) Unregister(c *Client) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if cur, ok := p.entries[c.user.Id]; ok && cur == c {
		delete(p.entries, c.user.Id)
		return true
	}

	return false
}

func (p *PresenceStore) Lookup(userId string) (*Client, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	c, ok := p.entries[userId]
	return c, ok
}

func (p *PresenceStore) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.entries)
}
