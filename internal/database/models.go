package database

import (
	"encoding/json"
	"time"
)

type User struct {
	Id           string
	Email        string
	PasswordHash string
	Name         string
	Avatar       string
	Bio          string
	IsOnline     bool
	LastSeen     time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Group struct {
	Id          string
	InviteCode  string
	Name        string
	Description string
	Avatar      string
	OwnerId     string
	Members     []GroupMember
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type GroupMember struct {
	Id       string
	GroupId  string
	UserId   string
	Name     string
	Avatar   string
	Role     string
	JoinedAt time.Time
}

type Message struct {
	Id             string
	SenderId       string
	GroupId        string
	Content        string
	IsGroupMessage bool
	CreatedAt      time.Time
}

type Notification struct {
	Id        string
	UserId    string
	Kind      string
	Payload   json.RawMessage
	Read      bool
	CreatedAt time.Time
}

type CreateAccountParams struct {
	Email        string
	Name         string
	PasswordHash string
}

type UpdateAccountParams struct {
	UserId string
	Name   string
	Avatar string
	Bio    string
}

type CreateGroupParams struct {
	Name        string
	Description string
	Avatar      string
	OwnerId     string
	InviteCode  string
}

type CreateNotificationParams struct {
	UserId  string
	Kind    string
	Payload json.RawMessage
}
