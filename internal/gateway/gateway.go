package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/konnect-platform/konnect/internal/database"
	"github.com/konnect-platform/konnect/internal/stats"
	"github.com/konnect-platform/konnect/internal/types"
)

// dbWriteTimeout bounds message and presence writes so a stalled
// database call cannot stall a delivery indefinitely.
const dbWriteTimeout = 5 * time.Second

// Gateway owns the realtime layer: connection registry, presence,
// room membership and message fan-out. Other subsystems reach it
// only through PushNotification.
type Gateway struct {
	log         *log.Logger
	db          database.KonnectRepository
	stats       stats.StatsProvider
	presence    *PresenceStore
	rooms       *RoomManager
	clients     map[*Client]struct{}
	clientsLock sync.Mutex
}

func NewGateway(logger *log.Logger, db database.KonnectRepository, sp stats.StatsProvider) (*Gateway, error) {
	for _, metric := range []string{
		"NumActiveConnections",
		"NumActiveRooms",
		"NumMessagesRelayed",
		"NumNotificationsPushed",
	} {
		sp.RegisterMetric(metric)
	}

	return &Gateway{
		log:      logger,
		db:       db,
		stats:    sp,
		presence: NewPresenceStore(),
		rooms:    NewRoomManager(sp),
		clients:  make(map[*Client]struct{}),
	}, nil
}

// Register binds an authenticated connection: it records the client,
// overwrites the user's presence entry, joins the implicit user room
// and flips the user online. The user-record write is best-effort.
func (g *Gateway) Register(c *Client) {
	g.clientsLock.Lock()
	g.clients[c] = struct{}{}
	g.clientsLock.Unlock()
	g.stats.Incr("NumActiveConnections")

	g.presence.Register(c.user.Id, c)
	g.rooms.Join(c, UserRoom(c.user.Id))

	if err := g.setPresence(c.user.Id, true); err != nil {
		g.log.Printf("mark user %q online: %v", c.user.Id, err)
	}
}

// Unregister tears a connection down. The user is marked offline
// only when this connection still owns the presence entry.
func (g *Gateway) Unregister(c *Client) {
	g.rooms.LeaveAll(c)

	if g.presence.Unregister(c) {
		if err := g.setPresence(c.user.Id, false); err != nil {
			g.log.Printf("mark user %q offline: %v", c.user.Id, err)
		}
	}

	g.clientsLock.Lock()
	if _, ok := g.clients[c]; ok {
		delete(g.clients, c)
		g.stats.Decr("NumActiveConnections")
	}
	g.clientsLock.Unlock()
}

func (g *Gateway) setPresence(userId string, online bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), dbWriteTimeout)
	defer cancel()

	return g.db.SetPresence(ctx, userId, online, Now())
}

func (g *Gateway) dispatch(msg *ClientMessage) {
	c := msg.client

	switch {
	case msg.Join != nil:
		if msg.Join.GroupId == "" {
			c.queueMessage(ErrBadRequest(msg.Id, "group_id is required"))
			return
		}
		g.rooms.Join(c, GroupRoom(msg.Join.GroupId))
		c.queueMessage(NoErrOK(msg.Id, nil))
	case msg.Leave != nil:
		if msg.Leave.GroupId == "" {
			c.queueMessage(ErrBadRequest(msg.Id, "group_id is required"))
			return
		}
		g.rooms.Leave(c, GroupRoom(msg.Leave.GroupId))
		c.queueMessage(NoErrOK(msg.Id, nil))
	case msg.Send != nil:
		g.relayMessage(msg)
	case msg.Typing != nil:
		g.relayTyping(msg)
	default:
		c.queueMessage(ErrInvalidMessage(msg.Id))
	}
}

// relayMessage persists an inbound chat message, then fans the
// enriched payload out to the target group room, or to the
// recipient's and sender's user rooms for a direct message.
func (g *Gateway) relayMessage(msg *ClientMessage) {
	c := msg.client
	send := msg.Send

	if send.Content == "" {
		c.queueMessage(ErrBadRequest(msg.Id, "content is required"))
		return
	}
	if send.GroupId == "" && send.RecipientId == "" {
		c.queueMessage(ErrBadRequest(msg.Id, "either group_id or recipient_id is required"))
		return
	}
	if send.GroupId != "" && send.RecipientId != "" {
		c.queueMessage(ErrBadRequest(msg.Id, "group_id and recipient_id are mutually exclusive"))
		return
	}

	dbMsg := database.Message{
		Id:             uuid.NewString(),
		SenderId:       c.user.Id,
		GroupId:        send.GroupId,
		Content:        send.Content,
		IsGroupMessage: send.GroupId != "",
		CreatedAt:      msg.Timestamp,
	}

	ctx, cancel := context.WithTimeout(context.Background(), dbWriteTimeout)
	defer cancel()

	if err := g.db.CreateMessage(ctx, dbMsg); err != nil {
		g.log.Println("error saving message:", err)
		c.queueMessage(ErrMessageNotSaved(msg.Id))
		return
	}

	c.queueMessage(NoErrAccepted(msg.Id))

	outbound := &ServerMessage{
		BaseMessage: BaseMessage{
			Timestamp: msg.Timestamp,
		},
		Message: &types.Message{
			Id:             dbMsg.Id,
			SenderId:       dbMsg.SenderId,
			GroupId:        dbMsg.GroupId,
			Content:        dbMsg.Content,
			IsGroupMessage: dbMsg.IsGroupMessage,
			Sender:         g.senderProfile(c),
			Timestamp:      dbMsg.CreatedAt,
		},
	}

	if send.GroupId != "" {
		g.rooms.Broadcast(GroupRoom(send.GroupId), outbound, nil)
	} else {
		g.rooms.Broadcast(UserRoom(send.RecipientId), outbound, nil)
		// echo to the sender's own room so their other sessions see it
		if send.RecipientId != c.user.Id {
			g.rooms.Broadcast(UserRoom(c.user.Id), outbound, nil)
		}
	}

	g.stats.Incr("NumMessagesRelayed")
}

// senderProfile resolves the sender's display attributes for the
// outbound payload. The current record is preferred; the identity
// snapshot bound at handshake is the fallback.
func (g *Gateway) senderProfile(c *Client) *types.Profile {
	user, err := g.db.GetAccountById(c.user.Id)
	if err != nil {
		g.log.Printf("resolve profile for %q: %v", c.user.Id, err)
		return &types.Profile{
			Id:     c.user.Id,
			Name:   c.user.Name,
			Avatar: c.user.Avatar,
		}
	}

	return &types.Profile{
		Id:     user.Id,
		Name:   user.Name,
		Avatar: user.Avatar,
	}
}

// relayTyping forwards an ephemeral typing marker. Never persisted,
// lost silently if no one is listening.
func (g *Gateway) relayTyping(msg *ClientMessage) {
	c := msg.client
	typing := msg.Typing

	ev := &ServerMessage{
		BaseMessage: BaseMessage{
			Timestamp: msg.Timestamp,
		},
		Typing: &UserTyping{
			UserId:  c.user.Id,
			GroupId: typing.GroupId,
		},
	}

	if typing.GroupId != "" {
		g.rooms.Broadcast(GroupRoom(typing.GroupId), ev, c)
	} else if typing.RecipientId != "" {
		g.rooms.Broadcast(UserRoom(typing.RecipientId), ev, nil)
	}
}

// PushNotification delivers payload to the user's active
// connection(s), if any. There is no queueing for later delivery;
// missed notifications rely on the caller's persisted record.
func (g *Gateway) PushNotification(userId string, payload json.RawMessage) {
	delivered := g.rooms.Broadcast(UserRoom(userId), &ServerMessage{
		BaseMessage: BaseMessage{
			Timestamp: Now(),
		},
		Notification: payload,
	}, nil)

	if delivered > 0 {
		g.stats.Incr("NumNotificationsPushed")
	}
}

// Shutdown stops every client and waits for their read pumps to
// deregister, bounded by ctx.
func (g *Gateway) Shutdown(ctx context.Context) error {
	g.clientsLock.Lock()
	for c := range g.clients {
		c.stopClient()
		if c.conn != nil {
			c.conn.Close()
		}
	}
	g.clientsLock.Unlock()

	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()

	for {
		g.clientsLock.Lock()
		remaining := len(g.clients)
		g.clientsLock.Unlock()
		if remaining == 0 {
			return nil
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("gateway shutdown: %w", ctx.Err())
		case <-ticker.C:
		}
	}
}
