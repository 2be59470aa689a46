package database

import (
	"context"
	"time"
)

type KonnectRepository interface {
	Ping() error
	CreateAccount(params CreateAccountParams) (User, error)
	UpdateAccount(params UpdateAccountParams) (User, error)
	GetAccountById(accountId string) (User, error)
	GetAccountByEmail(email string) (User, error)
	SetPresence(ctx context.Context, userId string, online bool, lastSeen time.Time) error
	CreateGroup(params CreateGroupParams) (Group, error)
	GetGroupById(groupId string) (Group, error)
	GetGroupWithMembers(groupId string) (*Group, error)
	ListGroups() ([]Group, error)
	AddGroupMember(groupId, userId, role string) (GroupMember, error)
	RemoveGroupMember(groupId, userId string) error
	GroupMemberExists(groupId, userId string) bool
	CreateMessage(ctx context.Context, msg Message) error
	GetMessages(groupId string, before time.Time, limit int) ([]Message, error)
	GetConversations(userId string, limit int) ([]Message, error)
	CreateNotification(params CreateNotificationParams) (Notification, error)
	ListNotifications(userId string) ([]Notification, error)
}
