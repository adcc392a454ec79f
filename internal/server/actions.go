package server

import (
	"log"

	"yutnori-server/internal/protocol"
	"yutnori-server/internal/yut"
)

// ReadyAction flips the sender's ready flag and announces it.
type ReadyAction struct {
	IsReady bool
}

func (a ReadyAction) Execute(c *Client, r *Room) {
	if !r.game.SetReady(string(c.ID), a.IsReady) {
		c.Send(protocol.ReadyResponse{})
		return
	}
	r.broadcast(protocol.ReadyResponse{Player: c.ID, IsReady: a.IsReady})
}

// StartGameAction starts a fresh game: master only, everyone ready, at
// least two members, previous game over.
type StartGameAction struct{}

func (a StartGameAction) Execute(c *Client, r *Room) {
	if c.ID != r.master {
		c.Send(protocol.StartGameResponse{})
		return
	}
	startingPlayer, err := r.game.Start()
	if err != nil {
		log.Printf("room '%s' start rejected: %v", r.ID, err)
		c.Send(protocol.StartGameResponse{})
		return
	}
	r.broadcast(protocol.StartGameResponse{
		ShouldStart:    true,
		StartingPlayer: protocol.ClientID(startingPlayer),
	})
	r.broadcast(protocol.BeginTurnResponse{})
	r.sendTo(startingPlayer, protocol.CanRollResponse{Player: protocol.ClientID(startingPlayer)})
	log.Printf("room '%s' started a game, '%s' goes first", r.ID, startingPlayer)
}

// SetPieceCountAction changes how many pieces each player fields next game:
// master only, between games, clamped to the legal range.
type SetPieceCountAction struct {
	PieceCount int
}

func (a SetPieceCountAction) Execute(c *Client, r *Room) {
	if c.ID != r.master {
		c.Send(protocol.SetPieceCountResponse{})
		return
	}
	n, err := r.game.SetPieceCount(a.PieceCount)
	if err != nil {
		c.Send(protocol.SetPieceCountResponse{})
		return
	}
	r.broadcast(protocol.SetPieceCountResponse{ShouldSet: true, PieceCount: n})
}

// ChangeNameAction renames the sender and announces it.
type ChangeNameAction struct {
	Name string
}

func (a ChangeNameAction) Execute(c *Client, r *Room) {
	seat := r.game.SeatOf(string(c.ID))
	if seat == nil {
		c.Send(protocol.ChangeNameResponse{})
		return
	}
	seat.Name = a.Name
	r.broadcast(protocol.ChangeNameResponse{Player: c.ID, Name: a.Name})
}

// BeginRollAction performs the turn player's roll and drives whatever
// follows it.
type BeginRollAction struct{}

func (a BeginRollAction) Execute(c *Client, r *Room) {
	res, err := r.game.BeginRoll(string(c.ID))
	if err != nil {
		log.Printf("room '%s' roll from '%s' rejected: %v", r.ID, c.ID, err)
		return
	}
	r.broadcast(protocol.EndRollResponse{ShouldAppend: res.ShouldAppend, Roll: res.Roll})
	r.advance(res.Next, res.NextPlayer)
}

// BeginMoveAction validates the turn player's chosen move. A legal move is
// announced to everyone; an illegal one earns the sender a lone negative.
type BeginMoveAction struct {
	Move yut.Move
}

func (a BeginMoveAction) Execute(c *Client, r *Room) {
	finished, err := r.game.BeginMove(string(c.ID), a.Move)
	if err != nil {
		log.Printf("room '%s' move from '%s' rejected: %v", r.ID, c.ID, err)
		c.Send(protocol.BeginMoveResponse{})
		return
	}
	r.broadcast(protocol.BeginMoveResponse{
		Player:     c.ID,
		ShouldMove: true,
		Roll:       a.Move.Roll,
		Cell:       a.Move.Cell,
		Piece:      a.Move.Piece,
		Finished:   finished,
	})
}

// EndMoveAction records a member's animation-complete ack. The final ack
// applies the move and drives the outcome: victory, a stomp re-roll, a turn
// handover, or further move selection.
type EndMoveAction struct {
	Move yut.Move
}

func (a EndMoveAction) Execute(c *Client, r *Room) {
	res, err := r.game.EndMove(string(c.ID), a.Move)
	if err != nil {
		log.Printf("room '%s' end-move from '%s' rejected: %v", r.ID, c.ID, err)
		return
	}
	if res == nil {
		// Still waiting on other members.
		return
	}
	if res.Winner != "" {
		r.broadcast(protocol.EndGameResponse{Winner: protocol.ClientID(res.Winner)})
		log.Printf("room '%s' game won by '%s'", r.ID, res.Winner)
		return
	}
	r.advance(res.Next, res.NextPlayer)
}
