package gateway

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClientMessage_Decode(t *testing.T) {
	tcases := []struct {
		name  string
		raw   string
		check func(t *testing.T, msg ClientMessage)
	}{
		{
			name: "join group",
			raw:  `{"id":1,"join_group":{"group_id":"g1"}}`,
			check: func(t *testing.T, msg ClientMessage) {
				assert.Equal(t, 1, msg.Id)
				assert.NotNil(t, msg.Join)
				assert.Equal(t, "g1", msg.Join.GroupId)
				assert.Nil(t, msg.Send)
			},
		},
		{
			name: "leave group",
			raw:  `{"leave_group":{"group_id":"g1"}}`,
			check: func(t *testing.T, msg ClientMessage) {
				assert.NotNil(t, msg.Leave)
				assert.Equal(t, "g1", msg.Leave.GroupId)
			},
		},
		{
			name: "group send",
			raw:  `{"id":2,"send_message":{"content":"hello","group_id":"g1"}}`,
			check: func(t *testing.T, msg ClientMessage) {
				assert.NotNil(t, msg.Send)
				assert.Equal(t, "hello", msg.Send.Content)
				assert.Equal(t, "g1", msg.Send.GroupId)
				assert.Empty(t, msg.Send.RecipientId)
			},
		},
		{
			name: "direct send",
			raw:  `{"send_message":{"content":"hi","recipient_id":"u2"}}`,
			check: func(t *testing.T, msg ClientMessage) {
				assert.NotNil(t, msg.Send)
				assert.Equal(t, "u2", msg.Send.RecipientId)
				assert.Empty(t, msg.Send.GroupId)
			},
		},
		{
			name: "typing",
			raw:  `{"typing":{"group_id":"g1"}}`,
			check: func(t *testing.T, msg ClientMessage) {
				assert.NotNil(t, msg.Typing)
				assert.Equal(t, "g1", msg.Typing.GroupId)
			},
		},
		{
			name: "no command",
			raw:  `{"id":5}`,
			check: func(t *testing.T, msg ClientMessage) {
				assert.Nil(t, msg.Join)
				assert.Nil(t, msg.Leave)
				assert.Nil(t, msg.Send)
				assert.Nil(t, msg.Typing)
			},
		},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			var msg ClientMessage
			err := json.Unmarshal([]byte(tc.raw), &msg)
			assert.NoError(t, err)
			tc.check(t, msg)
		})
	}
}

func TestServerMessage_Constructors(t *testing.T) {
	t.Run("ok with data", func(t *testing.T) {
		msg := NoErrOK(3, map[string]any{"group_id": "g1"})
		assert.Equal(t, 3, msg.Id)
		assert.Equal(t, http.StatusOK, msg.Response.ResponseCode)
		assert.Empty(t, msg.Response.Error)
		assert.Equal(t, "g1", msg.Response.Data["group_id"])
		assert.False(t, msg.Timestamp.IsZero())
	})

	t.Run("accepted", func(t *testing.T) {
		msg := NoErrAccepted(4)
		assert.Equal(t, 4, msg.Id)
		assert.Equal(t, http.StatusAccepted, msg.Response.ResponseCode)
	})

	t.Run("bad request", func(t *testing.T) {
		msg := ErrBadRequest(5, "content is required")
		assert.Equal(t, http.StatusBadRequest, msg.Response.ResponseCode)
		assert.Equal(t, "content is required", msg.Response.Error)
	})

	t.Run("message not saved", func(t *testing.T) {
		msg := ErrMessageNotSaved(6)
		assert.Equal(t, http.StatusInternalServerError, msg.Response.ResponseCode)
		assert.Equal(t, "message not saved", msg.Response.Error)
	})

	t.Run("invalid message omits unknown id", func(t *testing.T) {
		msg := ErrInvalidMessage(-1)
		assert.Zero(t, msg.Id)
		assert.Equal(t, http.StatusBadRequest, msg.Response.ResponseCode)
	})
}

func TestNow(t *testing.T) {
	now := Now()
	assert.Equal(t, time.UTC, now.Location(), "expected UTC timestamps")
	assert.Equal(t, now, now.Round(time.Millisecond), "expected millisecond precision")
}
