package server

import (
	"encoding/json"
	"log"

	"yutnori-server/internal/protocol"
	"yutnori-server/internal/yut"
)

// handleMessage routes one decoded frame. Room-targeted requests arriving
// while the endpoint has no room get the matching negative response locally;
// a failed request answers its originator and nobody else.
// Returns false when the connection should be closed.
func (c *Client) handleMessage(hub *Hub, msg protocol.Message) bool {
	switch msg.Kind {
	case protocol.MessageTypeCreateRoom:
		var req protocol.CreateRoomRequest
		if !c.unmarshal(msg, &req) {
			return false
		}
		hub.CreateRoom(c, req.Name)

	case protocol.MessageTypeEnterRoom:
		var req protocol.EnterRoomRequest
		if !c.unmarshal(msg, &req) {
			return false
		}
		hub.EnterRoom(c, req.Name, req.RoomID)

	case protocol.MessageTypeExitRoom:
		room := c.currentRoom()
		if room == nil {
			c.Send(protocol.ExitRoomResponse{})
			break
		}
		room.Exit(c.ID, false)

	case protocol.MessageTypeSetPieceCount:
		var req protocol.SetPieceCountRequest
		if !c.unmarshal(msg, &req) {
			return false
		}
		room := c.currentRoom()
		if room == nil {
			c.Send(protocol.SetPieceCountResponse{})
			break
		}
		room.Do(c, SetPieceCountAction{PieceCount: req.PieceCount})

	case protocol.MessageTypeReady:
		var req protocol.ReadyRequest
		if !c.unmarshal(msg, &req) {
			return false
		}
		room := c.currentRoom()
		if room == nil {
			c.Send(protocol.ReadyResponse{})
			break
		}
		room.Do(c, ReadyAction{IsReady: req.IsReady})

	case protocol.MessageTypeKickPlayer:
		var req protocol.KickPlayerRequest
		if !c.unmarshal(msg, &req) {
			return false
		}
		room := c.currentRoom()
		if room == nil {
			break
		}
		room.Exit(req.Player, true)

	case protocol.MessageTypeStartGame:
		room := c.currentRoom()
		if room == nil {
			c.Send(protocol.StartGameResponse{})
			break
		}
		room.Do(c, StartGameAction{})

	case protocol.MessageTypeBeginRoll:
		room := c.currentRoom()
		if room == nil {
			break
		}
		room.Do(c, BeginRollAction{})

	case protocol.MessageTypeBeginMove:
		var req protocol.BeginMoveRequest
		if !c.unmarshal(msg, &req) {
			return false
		}
		room := c.currentRoom()
		if room == nil {
			c.Send(protocol.BeginMoveResponse{})
			break
		}
		room.Do(c, BeginMoveAction{Move: yut.Move{
			Roll:  req.Roll,
			Piece: req.Piece,
			Cell:  req.Cell,
		}})

	case protocol.MessageTypeEndMove:
		var req protocol.EndMoveRequest
		if !c.unmarshal(msg, &req) {
			return false
		}
		room := c.currentRoom()
		if room == nil {
			break
		}
		room.Do(c, EndMoveAction{Move: yut.Move{
			Roll:  req.Roll,
			Piece: req.Piece,
			Cell:  req.Cell,
		}})

	case protocol.MessageTypeChangeName:
		var req protocol.ChangeNameRequest
		if !c.unmarshal(msg, &req) {
			return false
		}
		room := c.currentRoom()
		if room == nil {
			c.Send(protocol.ChangeNameResponse{})
			break
		}
		room.Do(c, ChangeNameAction{Name: req.Name})

	case protocol.MessageTypeKeepalive, protocol.MessageTypeQuit:
		// Nothing to do.

	default:
		log.Printf("client '%s' sent unexpected kind %s", c.ID, msg.Kind)
	}
	return true
}

// unmarshal parses a request payload. An empty payload and "{}" are both
// treated as the zero request; anything unparsable closes the connection.
func (c *Client) unmarshal(msg protocol.Message, req any) bool {
	if len(msg.Payload) == 0 {
		return true
	}
	if err := json.Unmarshal(msg.Payload, req); err != nil {
		log.Printf("client '%s' malformed %s payload: %v", c.ID, msg.Kind, err)
		return false
	}
	return true
}
