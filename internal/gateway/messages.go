package gateway

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/konnect-platform/konnect/internal/types"
)

type BaseMessage struct {
	Id        int       `json:"id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// ClientMessage is an inbound command. Exactly one of the
// variant fields is expected to be set.
type ClientMessage struct {
	BaseMessage
	Join   *JoinGroup   `json:"join_group,omitempty"`
	Leave  *LeaveGroup  `json:"leave_group,omitempty"`
	Send   *SendMessage `json:"send_message,omitempty"`
	Typing *Typing      `json:"typing,omitempty"`
	UserId string       `json:"-"`
	client *Client      `json:"-"`
}

type JoinGroup struct {
	GroupId string `json:"group_id"`
}

type LeaveGroup struct {
	GroupId string `json:"group_id"`
}

type SendMessage struct {
	Content     string `json:"content"`
	GroupId     string `json:"group_id,omitempty"`
	RecipientId string `json:"recipient_id,omitempty"`
}

type Typing struct {
	GroupId     string `json:"group_id,omitempty"`
	RecipientId string `json:"recipient_id,omitempty"`
}

type ServerMessage struct {
	BaseMessage
	Response     *Response       `json:"response,omitempty"`
	Message      *types.Message  `json:"new_message,omitempty"`
	Typing       *UserTyping     `json:"user_typing,omitempty"`
	Notification json.RawMessage `json:"notification,omitempty"`
}

type Response struct {
	ResponseCode int            `json:"response_code"`
	Error        string         `json:"error,omitempty"`
	Data         map[string]any `json:"data,omitempty"`
}

type UserTyping struct {
	UserId  string `json:"user_id"`
	GroupId string `json:"group_id,omitempty"`
}

func NoErrOK(id int, data map[string]any) *ServerMessage {
	return &ServerMessage{
		BaseMessage: BaseMessage{
			Id:        id,
			Timestamp: Now(),
		},
		Response: &Response{
			ResponseCode: http.StatusOK,
			Data:         data,
		},
	}
}

func NoErrAccepted(id int) *ServerMessage {
	return &ServerMessage{
		BaseMessage: BaseMessage{
			Id:        id,
			Timestamp: Now(),
		},
		Response: &Response{
			ResponseCode: http.StatusAccepted,
		},
	}
}

func ErrBadRequest(id int, reason string) *ServerMessage {
	return &ServerMessage{
		BaseMessage: BaseMessage{
			Id:        id,
			Timestamp: Now(),
		},
		Response: &Response{
			ResponseCode: http.StatusBadRequest,
			Error:        reason,
		},
	}
}

func ErrMessageNotSaved(id int) *ServerMessage {
	return &ServerMessage{
		BaseMessage: BaseMessage{
			Id:        id,
			Timestamp: Now(),
		},
		Response: &Response{
			ResponseCode: http.StatusInternalServerError,
			Error:        "message not saved",
		},
	}
}

func ErrInvalidMessage(id int) *ServerMessage {
	msg := &ServerMessage{
		BaseMessage: BaseMessage{
			Timestamp: Now(),
		},
		Response: &Response{
			ResponseCode: http.StatusBadRequest,
			Error:        "invalid message format",
		},
	}

	if id > 0 {
		msg.Id = id
	}
	return msg
}

func Now() time.Time {
	return time.Now().UTC().Round(time.Millisecond)
}
