package types

import (
	"encoding/json"
	"time"
)

type User struct {
	Id        string    `json:"id"`
	Email     string    `json:"email,omitempty"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar,omitempty"`
	Bio       string    `json:"bio,omitempty"`
	Password  string    `json:"-"`
	IsOnline  bool      `json:"is_online,omitempty"`
	LastSeen  time.Time `json:"last_seen,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// Profile is the subset of a user attached to outbound chat payloads.
type Profile struct {
	Id     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

type Group struct {
	Id          string        `json:"id"`
	InviteCode  string        `json:"invite_code"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Avatar      string        `json:"avatar,omitempty"`
	OwnerId     string        `json:"owner_id"`
	Members     []GroupMember `json:"members,omitempty"`
	CreatedAt   time.Time     `json:"created_at,omitempty"`
	UpdatedAt   time.Time     `json:"updated_at,omitempty"`
}

type GroupMember struct {
	User     Profile   `json:"user"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at,omitempty"`
}

type Message struct {
	Id             string    `json:"id"`
	SenderId       string    `json:"sender_id"`
	GroupId        string    `json:"group_id,omitempty"`
	Content        string    `json:"content"`
	IsGroupMessage bool      `json:"is_group_message"`
	Sender         *Profile  `json:"sender,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

type Notification struct {
	Id        string          `json:"id"`
	UserId    string          `json:"user_id"`
	Kind      string          `json:"kind"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Read      bool            `json:"read"`
	CreatedAt time.Time       `json:"created_at,omitempty"`
}
