package protocol

import (
	"yutnori-server/internal/yut"
)

// ClientID and RoomID are opaque server-minted identifiers: 20 random
// bytes, base32 without padding, 32 ASCII characters.
type ClientID string
type RoomID string

// MessageType tags every frame. The ordinals are wire-stable; do not
// renumber.
type MessageType uint8

const (
	MessageTypeKeepalive MessageType = iota
	MessageTypeConnect
	MessageTypeDisconnect
	MessageTypeQuit
	MessageTypeCreateRoom
	MessageTypeExitRoom
	MessageTypeSetPieceCount
	MessageTypePlayerLeft
	MessageTypeEnterRoom
	MessageTypePlayerJoined
	MessageTypeReady
	MessageTypeKickPlayer
	MessageTypeStartGame
	MessageTypeBeginTurn
	MessageTypeCanRoll
	MessageTypeBeginRoll
	MessageTypeEndRoll
	MessageTypeEndTurn
	MessageTypeSelectingMove
	MessageTypeBeginMove
	MessageTypeEndMove
	MessageTypeEndGame
	MessageTypeChangeName
)

func (kind MessageType) String() string {
	switch kind {
	case MessageTypeKeepalive:
		return "Keepalive"
	case MessageTypeConnect:
		return "Connect"
	case MessageTypeDisconnect:
		return "Disconnect"
	case MessageTypeQuit:
		return "Quit"
	case MessageTypeCreateRoom:
		return "CreateRoom"
	case MessageTypeExitRoom:
		return "ExitRoom"
	case MessageTypeSetPieceCount:
		return "SetPieceCount"
	case MessageTypePlayerLeft:
		return "PlayerLeft"
	case MessageTypeEnterRoom:
		return "EnterRoom"
	case MessageTypePlayerJoined:
		return "PlayerJoined"
	case MessageTypeReady:
		return "Ready"
	case MessageTypeKickPlayer:
		return "KickPlayer"
	case MessageTypeStartGame:
		return "StartGame"
	case MessageTypeBeginTurn:
		return "BeginTurn"
	case MessageTypeCanRoll:
		return "CanRoll"
	case MessageTypeBeginRoll:
		return "BeginRoll"
	case MessageTypeEndRoll:
		return "EndRoll"
	case MessageTypeEndTurn:
		return "EndTurn"
	case MessageTypeSelectingMove:
		return "SelectingMove"
	case MessageTypeBeginMove:
		return "BeginMove"
	case MessageTypeEndMove:
		return "EndMove"
	case MessageTypeEndGame:
		return "EndGame"
	case MessageTypeChangeName:
		return "ChangeName"
	}
	return "Unsupported"
}

// Message is a decoded frame: one kind byte and a raw JSON payload, which
// may be empty.
type Message struct {
	Kind    MessageType
	Payload []byte
}

// Serializer is implemented by every typed payload so it can be framed.
type Serializer interface {
	Kind() MessageType
}

// ============================================================================
// SERVER → CLIENT
// ============================================================================

type KeepaliveMessage struct{}

func (KeepaliveMessage) Kind() MessageType { return MessageTypeKeepalive }

type ConnectResponse struct {
	ClientID ClientID `json:"client_id"`
}

func (ConnectResponse) Kind() MessageType { return MessageTypeConnect }

// DisconnectMessage tells a client the server is closing its connection,
// e.g. during shutdown.
type DisconnectMessage struct{}

func (DisconnectMessage) Kind() MessageType { return MessageTypeDisconnect }

type CreateRoomResponse struct {
	RoomID RoomID `json:"room_id"`
}

func (CreateRoomResponse) Kind() MessageType { return MessageTypeCreateRoom }

type ExitRoomResponse struct {
	Exit bool `json:"exit"`
}

func (ExitRoomResponse) Kind() MessageType { return MessageTypeExitRoom }

type SetPieceCountResponse struct {
	ShouldSet  bool  `json:"should_set"`
	PieceCount uint8 `json:"piece_count"`
}

func (SetPieceCountResponse) Kind() MessageType { return MessageTypeSetPieceCount }

type PlayerLeftResponse struct {
	Player ClientID `json:"player"`
	Master ClientID `json:"master"`
	Kicked bool     `json:"kicked"`
}

func (PlayerLeftResponse) Kind() MessageType { return MessageTypePlayerLeft }

// RoomPlayer is one member in an EnterRoom snapshot.
type RoomPlayer struct {
	ClientID ClientID `json:"client_id"`
	Name     string   `json:"name"`
	IsReady  bool     `json:"is_ready"`
}

type EnterRoomResponse struct {
	RoomID     RoomID       `json:"room_id"`
	Join       bool         `json:"join"`
	Master     ClientID     `json:"master"`
	PieceCount uint8        `json:"piece_count"`
	Players    []RoomPlayer `json:"players"`
}

func (EnterRoomResponse) Kind() MessageType { return MessageTypeEnterRoom }

type PlayerJoinedResponse struct {
	ClientID ClientID `json:"client_id"`
	Name     string   `json:"name"`
}

func (PlayerJoinedResponse) Kind() MessageType { return MessageTypePlayerJoined }

type ReadyResponse struct {
	Player  ClientID `json:"player"`
	IsReady bool     `json:"is_ready"`
}

func (ReadyResponse) Kind() MessageType { return MessageTypeReady }

type StartGameResponse struct {
	ShouldStart    bool     `json:"should_start"`
	StartingPlayer ClientID `json:"starting_player"`
}

func (StartGameResponse) Kind() MessageType { return MessageTypeStartGame }

type BeginTurnResponse struct{}

func (BeginTurnResponse) Kind() MessageType { return MessageTypeBeginTurn }

type CanRollResponse struct {
	Player ClientID `json:"player"`
}

func (CanRollResponse) Kind() MessageType { return MessageTypeCanRoll }

type EndRollResponse struct {
	ShouldAppend bool `json:"should_append"`
	Roll         int  `json:"roll"`
}

func (EndRollResponse) Kind() MessageType { return MessageTypeEndRoll }

type EndTurnResponse struct {
	NextPlayer ClientID `json:"next_player"`
}

func (EndTurnResponse) Kind() MessageType { return MessageTypeEndTurn }

type SelectingMoveResponse struct {
	Player ClientID `json:"player"`
}

func (SelectingMoveResponse) Kind() MessageType { return MessageTypeSelectingMove }

type BeginMoveResponse struct {
	Player     ClientID `json:"player"`
	ShouldMove bool     `json:"should_move"`
	Roll       int      `json:"roll"`
	Cell       yut.Cell `json:"cell"`
	Piece      int      `json:"piece"`
	Finished   bool     `json:"finished"`
}

func (BeginMoveResponse) Kind() MessageType { return MessageTypeBeginMove }

type EndGameResponse struct {
	Winner ClientID `json:"winner"`
}

func (EndGameResponse) Kind() MessageType { return MessageTypeEndGame }

type ChangeNameResponse struct {
	Player ClientID `json:"player"`
	Name   string   `json:"name"`
}

func (ChangeNameResponse) Kind() MessageType { return MessageTypeChangeName }

// ============================================================================
// CLIENT → SERVER
// ============================================================================

type CreateRoomRequest struct {
	Name string `json:"name"`
}

func (CreateRoomRequest) Kind() MessageType { return MessageTypeCreateRoom }

type ExitRoomRequest struct{}

func (ExitRoomRequest) Kind() MessageType { return MessageTypeExitRoom }

type SetPieceCountRequest struct {
	PieceCount int `json:"piece_count"`
}

func (SetPieceCountRequest) Kind() MessageType { return MessageTypeSetPieceCount }

type EnterRoomRequest struct {
	RoomID RoomID `json:"room_id"`
	Name   string `json:"name"`
}

func (EnterRoomRequest) Kind() MessageType { return MessageTypeEnterRoom }

type ReadyRequest struct {
	IsReady bool `json:"is_ready"`
}

func (ReadyRequest) Kind() MessageType { return MessageTypeReady }

type KickPlayerRequest struct {
	Player ClientID `json:"player"`
}

func (KickPlayerRequest) Kind() MessageType { return MessageTypeKickPlayer }

type StartGameRequest struct{}

func (StartGameRequest) Kind() MessageType { return MessageTypeStartGame }

type BeginRollRequest struct{}

func (BeginRollRequest) Kind() MessageType { return MessageTypeBeginRoll }

type BeginMoveRequest struct {
	Roll  int      `json:"roll"`
	Piece int      `json:"piece"`
	Cell  yut.Cell `json:"cell"`
}

func (BeginMoveRequest) Kind() MessageType { return MessageTypeBeginMove }

type EndMoveRequest struct {
	Roll  int      `json:"roll"`
	Piece int      `json:"piece"`
	Cell  yut.Cell `json:"cell"`
}

func (EndMoveRequest) Kind() MessageType { return MessageTypeEndMove }

type ChangeNameRequest struct {
	Name string `json:"name"`
}

func (ChangeNameRequest) Kind() MessageType { return MessageTypeChangeName }
