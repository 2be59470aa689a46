package database

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

type MockKonnectRepository struct {
	mock.Mock
}

func (m *MockKonnectRepository) Ping() error {
	args := m.Called()
	return args.Error(0)
}
func (m *MockKonnectRepository) CreateAccount(params CreateAccountParams) (User, error) {
	args := m.Called(params)
	return args.Get(0).(User), args.Error(1)
}
func (m *MockKonnectRepository) UpdateAccount(params UpdateAccountParams) (User, error) {
	args := m.Called(params)
	return args.Get(0).(User), args.Error(1)
}
func (m *MockKonnectRepository) GetAccountById(accountId string) (User, error) {
	args := m.Called(accountId)
	return args.Get(0).(User), args.Error(1)
}
func (m *MockKonnectRepository) GetAccountByEmail(email string) (User, error) {
	args := m.Called(email)
	return args.Get(0).(User), args.Error(1)
}
func (m *MockKonnectRepository) SetPresence(ctx context.Context, userId string, online bool, lastSeen time.Time) error {
	args := m.Called(ctx, userId, online, lastSeen)
	return args.Error(0)
}
func (m *MockKonnectRepository) CreateGroup(params CreateGroupParams) (Group, error) {
	args := m.Called(params)
	return args.Get(0).(Group), args.Error(1)
}
func (m *MockKonnectRepository) GetGroupById(groupId string) (Group, error) {
	args := m.Called(groupId)
	return args.Get(0).(Group), args.Error(1)
}
func (m *MockKonnectRepository) GetGroupWithMembers(groupId string) (*Group, error) {
	args := m.Called(groupId)
	if group, ok := args.Get(0).(*Group); ok {
		return group, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockKonnectRepository) ListGroups() ([]Group, error) {
	args := m.Called()
	return args.Get(0).([]Group), args.Error(1)
}
func (m *MockKonnectRepository) AddGroupMember(groupId, userId, role string) (GroupMember, error) {
	args := m.Called(groupId, userId, role)
	return args.Get(0).(GroupMember), args.Error(1)
}
func (m *MockKonnectRepository) RemoveGroupMember(groupId, userId string) error {
	args := m.Called(groupId, userId)
	return args.Error(0)
}
func (m *MockKonnectRepository) GroupMemberExists(groupId, userId string) bool {
	args := m.Called(groupId, userId)
	return args.Bool(0)
}
func (m *MockKonnectRepository) CreateMessage(ctx context.Context, msg Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
func (m *MockKonnectRepository) GetMessages(groupId string, before time.Time, limit int) ([]Message, error) {
	args := m.Called(groupId, before, limit)
	return args.Get(0).([]Message), args.Error(1)
}
func (m *MockKonnectRepository) GetConversations(userId string, limit int) ([]Message, error) {
	args := m.Called(userId, limit)
	return args.Get(0).([]Message), args.Error(1)
}
func (m *MockKonnectRepository) CreateNotification(params CreateNotificationParams) (Notification, error) {
	args := m.Called(params)
	return args.Get(0).(Notification), args.Error(1)
}
func (m *MockKonnectRepository) ListNotifications(userId string) ([]Notification, error) {
	args := m.Called(userId)
	return args.Get(0).([]Notification), args.Error(1)
}
