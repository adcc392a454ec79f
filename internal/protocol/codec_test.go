package protocol_test

import (
	"encoding/json"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yutnori-server/internal/protocol"
	"yutnori-server/internal/yut"
)

func TestSerializeFrameLayout(t *testing.T) {
	assert := assert.New(t)

	msg := protocol.EnterRoomRequest{RoomID: "ROOM", Name: "alice"}
	frame, err := protocol.Serialize(msg)
	require.NoError(t, err)

	payload, err := json.Marshal(msg)
	require.NoError(t, err)

	assert.Equal(byte(protocol.MessageTypeEnterRoom), frame[0])
	assert.Equal(byte(len(payload)>>8), frame[1])
	assert.Equal(byte(len(payload)&0xff), frame[2])
	assert.Equal(payload, frame[3:])
}

func TestReadWriteRoundTrip(t *testing.T) {
	assert := assert.New(t)
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	go func() {
		protocol.WriteMessage(server, protocol.BeginMoveResponse{
			Player:     "PLAYER",
			ShouldMove: true,
			Roll:       3,
			Cell:       yut.Right2,
			Piece:      1,
		})
	}()

	msg, err := protocol.ReadMessage(client)
	require.NoError(t, err)
	assert.Equal(protocol.MessageTypeBeginMove, msg.Kind)

	var res protocol.BeginMoveResponse
	require.NoError(t, json.Unmarshal(msg.Payload, &res))
	assert.Equal(protocol.ClientID("PLAYER"), res.Player)
	assert.True(res.ShouldMove)
	assert.Equal(3, res.Roll)
	assert.Equal(yut.Right2, res.Cell)
	assert.Equal(1, res.Piece)
	assert.False(res.Finished)
}

func TestReadMessageEmptyPayload(t *testing.T) {
	assert := assert.New(t)
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	// A bare header with a zero length is a complete frame.
	go server.Write([]byte{byte(protocol.MessageTypeBeginRoll), 0, 0})

	msg, err := protocol.ReadMessage(client)
	require.NoError(t, err)
	assert.Equal(protocol.MessageTypeBeginRoll, msg.Kind)
	assert.Empty(msg.Payload)
}

func TestReadMessageSplitAcrossWrites(t *testing.T) {
	assert := assert.New(t)
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	frame, err := protocol.Serialize(protocol.CreateRoomRequest{Name: "alice"})
	require.NoError(t, err)

	go func() {
		// Byte-at-a-time delivery must still decode as one frame.
		for i := range frame {
			server.Write(frame[i : i+1])
		}
	}()

	msg, err := protocol.ReadMessage(client)
	require.NoError(t, err)
	assert.Equal(protocol.MessageTypeCreateRoom, msg.Kind)

	var req protocol.CreateRoomRequest
	require.NoError(t, json.Unmarshal(msg.Payload, &req))
	assert.Equal("alice", req.Name)
}

func TestReadMessageConnectionClosed(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	server.Close()

	_, err := protocol.ReadMessage(client)
	assert.Error(t, err)
}

func TestMessageTypeString(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("Keepalive", protocol.MessageTypeKeepalive.String())
	assert.Equal("EndGame", protocol.MessageTypeEndGame.String())
	assert.Equal("ChangeName", protocol.MessageTypeChangeName.String())
	assert.Equal("Unsupported", protocol.MessageType(99).String())
}
