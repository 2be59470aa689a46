package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const addMemberQuery = "INSERT INTO group_members (id, group_id, user_id, role, created_at) " +
	"VALUES ($1, $2, $3, $4, $5) RETURNING id, group_id, user_id, role, created_at"

func (db *PgKonnectRepository) CreateAccount(params CreateAccountParams) (User, error) {
	res := db.conn.QueryRow(
		"INSERT INTO users (id, email, password_hash, name, created_at, updated_at) "+
			"VALUES ($1, $2, $3, $4, $5, $5) RETURNING id, email, name, created_at, updated_at",
		uuid.NewString(),
		params.Email,
		params.PasswordHash,
		params.Name,
		time.Now().UTC(),
	)

	var u User
	err := res.Scan(
		&u.Id,
		&u.Email,
		&u.Name,
		&u.CreatedAt,
		&u.UpdatedAt,
	)

	return u, err
}

func (db *PgKonnectRepository) UpdateAccount(params UpdateAccountParams) (User, error) {
	res := db.conn.QueryRow(
		"UPDATE users SET name = $2, avatar = $3, bio = $4, updated_at = $5 "+
			"WHERE id = $1 RETURNING id, email, name, avatar, bio, created_at, updated_at",
		params.UserId,
		params.Name,
		params.Avatar,
		params.Bio,
		time.Now().UTC(),
	)

	var u User
	err := res.Scan(
		&u.Id,
		&u.Email,
		&u.Name,
		&u.Avatar,
		&u.Bio,
		&u.CreatedAt,
		&u.UpdatedAt,
	)

	return u, err
}

func (db *PgKonnectRepository) GetAccountById(accountId string) (User, error) {
	row := db.conn.QueryRow(
		"SELECT id, email, name, avatar, bio, is_online, last_seen, created_at, updated_at "+
			"FROM users WHERE id = $1 LIMIT 1",
		accountId,
	)

	var user User
	err := row.Scan(
		&user.Id,
		&user.Email,
		&user.Name,
		&user.Avatar,
		&user.Bio,
		&user.IsOnline,
		&user.LastSeen,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	return user, err
}

func (db *PgKonnectRepository) GetAccountByEmail(email string) (User, error) {
	row := db.conn.QueryRow(
		"SELECT id, email, password_hash, name, avatar, created_at, updated_at "+
			"FROM users WHERE email = $1 LIMIT 1",
		email,
	)

	var user User
	err := row.Scan(
		&user.Id,
		&user.Email,
		&user.PasswordHash,
		&user.Name,
		&user.Avatar,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	return user, err
}

func (db *PgKonnectRepository) SetPresence(ctx context.Context, userId string, online bool, lastSeen time.Time) error {
	_, err := db.conn.ExecContext(ctx,
		"UPDATE users SET is_online = $2, last_seen = $3 WHERE id = $1",
		userId,
		online,
		lastSeen,
	)

	return err
}

func (db *PgKonnectRepository) CreateGroup(params CreateGroupParams) (Group, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return Group{}, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	res := tx.QueryRow(
		"INSERT INTO groups (id, invite_code, name, description, avatar, owner_id, created_at, updated_at) "+
			"VALUES ($1, $2, $3, $4, $5, $6, $7, $7) "+
			"RETURNING id, invite_code, name, description, avatar, owner_id, created_at, updated_at",
		uuid.NewString(),
		params.InviteCode,
		params.Name,
		params.Description,
		params.Avatar,
		params.OwnerId,
		time.Now().UTC(),
	)

	var group Group
	err = res.Scan(
		&group.Id,
		&group.InviteCode,
		&group.Name,
		&group.Description,
		&group.Avatar,
		&group.OwnerId,
		&group.CreatedAt,
		&group.UpdatedAt,
	)
	if err != nil {
		return Group{}, err
	}

	// the owner is always a member of their own group
	_, err = tx.Exec(
		addMemberQuery,
		uuid.NewString(),
		group.Id,
		params.OwnerId,
		"owner",
		time.Now().UTC(),
	)
	if err != nil {
		return Group{}, err
	}

	if err = tx.Commit(); err != nil {
		return Group{}, err
	}

	return group, err
}

func (db *PgKonnectRepository) GetGroupById(groupId string) (Group, error) {
	row := db.conn.QueryRow(
		"SELECT id, invite_code, name, description, avatar, owner_id, created_at, updated_at "+
			"FROM groups WHERE id = $1 LIMIT 1",
		groupId,
	)

	var group Group
	err := row.Scan(
		&group.Id,
		&group.InviteCode,
		&group.Name,
		&group.Description,
		&group.Avatar,
		&group.OwnerId,
		&group.CreatedAt,
		&group.UpdatedAt,
	)

	return group, err
}

func (db *PgKonnectRepository) GetGroupWithMembers(groupId string) (*Group, error) {
	query := `
		SELECT
				g.id,
				g.invite_code,
				g.name,
				g.description,
				g.avatar,
				g.owner_id,
				g.created_at,
				g.updated_at,
				m.id,
				m.user_id,
				u.name,
				u.avatar,
				m.role,
				m.created_at
		FROM groups g
		LEFT JOIN group_members m ON g.id = m.group_id
		LEFT JOIN users u ON m.user_id = u.id
		WHERE g.id = $1;
`

	rows, err := db.conn.Query(query, groupId)
	if err != nil {
		return nil, fmt.Errorf("fetch group with members: %w", err)
	}
	defer rows.Close()

	var group *Group
	for rows.Next() {
		var (
			g            Group
			memberId     sql.NullString
			memberUserId sql.NullString
			memberName   sql.NullString
			memberAvatar sql.NullString
			memberRole   sql.NullString
			memberJoined sql.NullTime
		)

		err := rows.Scan(
			&g.Id,
			&g.InviteCode,
			&g.Name,
			&g.Description,
			&g.Avatar,
			&g.OwnerId,
			&g.CreatedAt,
			&g.UpdatedAt,
			&memberId,
			&memberUserId,
			&memberName,
			&memberAvatar,
			&memberRole,
			&memberJoined,
		)
		if err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}

		if group == nil {
			g.Members = make([]GroupMember, 0)
			group = &g
		}

		if memberUserId.Valid {
			group.Members = append(group.Members, GroupMember{
				Id:       memberId.String,
				GroupId:  group.Id,
				UserId:   memberUserId.String,
				Name:     memberName.String,
				Avatar:   memberAvatar.String,
				Role:     memberRole.String,
				JoinedAt: memberJoined.Time,
			})
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	if group == nil {
		return nil, sql.ErrNoRows
	}

	return group, nil
}

func (db *PgKonnectRepository) ListGroups() ([]Group, error) {
	rows, err := db.conn.Query(
		"SELECT id, invite_code, name, description, avatar, owner_id, created_at, updated_at " +
			"FROM groups ORDER BY created_at DESC",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []Group
	for rows.Next() {
		var g Group
		if err = rows.Scan(
			&g.Id,
			&g.InviteCode,
			&g.Name,
			&g.Description,
			&g.Avatar,
			&g.OwnerId,
			&g.CreatedAt,
			&g.UpdatedAt,
		); err != nil {
			break
		}

		groups = append(groups, g)
	}

	return groups, err
}

func (db *PgKonnectRepository) AddGroupMember(groupId, userId, role string) (GroupMember, error) {
	res := db.conn.QueryRow(
		addMemberQuery,
		uuid.NewString(),
		groupId,
		userId,
		role,
		time.Now().UTC(),
	)

	var m GroupMember
	err := res.Scan(
		&m.Id,
		&m.GroupId,
		&m.UserId,
		&m.Role,
		&m.JoinedAt,
	)

	return m, err
}

func (db *PgKonnectRepository) RemoveGroupMember(groupId, userId string) error {
	_, err := db.conn.Exec(
		"DELETE FROM group_members WHERE group_id = $1 AND user_id = $2",
		groupId,
		userId,
	)

	return err
}

func (db *PgKonnectRepository) GroupMemberExists(groupId, userId string) bool {
	res := db.conn.QueryRow(
		"SELECT id FROM group_members WHERE group_id = $1 AND user_id = $2 LIMIT 1",
		groupId,
		userId,
	)

	var id string
	err := res.Scan(&id)

	return err == nil
}

func (db *PgKonnectRepository) CreateMessage(ctx context.Context, msg Message) error {
	var groupId sql.NullString
	if msg.GroupId != "" {
		groupId = sql.NullString{String: msg.GroupId, Valid: true}
	}

	_, err := db.conn.ExecContext(ctx,
		"INSERT INTO messages (id, sender_id, group_id, content, is_group_message, created_at) "+
			"VALUES ($1, $2, $3, $4, $5, $6)",
		msg.Id,
		msg.SenderId,
		groupId,
		msg.Content,
		msg.IsGroupMessage,
		msg.CreatedAt,
	)

	return err
}

func (db *PgKonnectRepository) GetMessages(groupId string, before time.Time, limit int) ([]Message, error) {
	if before.IsZero() {
		before = time.Now().UTC()
	}

	if limit <= 0 {
		limit = 50
	}

	rows, err := db.conn.Query(
		"SELECT id, sender_id, group_id, content, is_group_message, created_at FROM messages "+
			"WHERE group_id = $1 AND created_at < $2 ORDER BY created_at ASC LIMIT $3",
		groupId,
		before,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMessages(rows, limit)
}

func (db *PgKonnectRepository) GetConversations(userId string, limit int) ([]Message, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.conn.Query(
		"SELECT m.id, m.sender_id, m.group_id, m.content, m.is_group_message, m.created_at FROM messages m "+
			"WHERE m.sender_id = $1 OR m.group_id IN "+
			"(SELECT group_id FROM group_members WHERE user_id = $1) "+
			"ORDER BY m.created_at DESC LIMIT $2",
		userId,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMessages(rows, limit)
}

func scanMessages(rows *sql.Rows, limit int) ([]Message, error) {
	var messages = make([]Message, 0, limit)
	for rows.Next() {
		var (
			msg     Message
			groupId sql.NullString
		)
		if err := rows.Scan(
			&msg.Id,
			&msg.SenderId,
			&groupId,
			&msg.Content,
			&msg.IsGroupMessage,
			&msg.CreatedAt,
		); err != nil {
			return nil, err
		}

		msg.GroupId = groupId.String
		messages = append(messages, msg)
	}

	return messages, rows.Err()
}

func (db *PgKonnectRepository) CreateNotification(params CreateNotificationParams) (Notification, error) {
	res := db.conn.QueryRow(
		"INSERT INTO notifications (id, user_id, kind, payload, created_at) "+
			"VALUES ($1, $2, $3, $4, $5) RETURNING id, user_id, kind, payload, read, created_at",
		uuid.NewString(),
		params.UserId,
		params.Kind,
		[]byte(params.Payload),
		time.Now().UTC(),
	)

	var n Notification
	var payload []byte
	err := res.Scan(
		&n.Id,
		&n.UserId,
		&n.Kind,
		&payload,
		&n.Read,
		&n.CreatedAt,
	)
	n.Payload = payload

	return n, err
}

func (db *PgKonnectRepository) ListNotifications(userId string) ([]Notification, error) {
	rows, err := db.conn.Query(
		"SELECT id, user_id, kind, payload, read, created_at FROM notifications "+
			"WHERE user_id = $1 ORDER BY created_at DESC LIMIT 100",
		userId,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications = make([]Notification, 0)
	for rows.Next() {
		var (
			n       Notification
			payload []byte
		)
		if err = rows.Scan(&n.Id, &n.UserId, &n.Kind, &payload, &n.Read, &n.CreatedAt); err != nil {
			break
		}

		n.Payload = payload
		notifications = append(notifications, n)
	}

	return notifications, err
}
