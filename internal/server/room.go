package server

import (
	"log"
	"math/rand"

	"yutnori-server/internal/protocol"
	"yutnori-server/internal/yut"
)

type enterRequest struct {
	client *Client
	name   string
}

type exitRequest struct {
	clientID protocol.ClientID
	kicked   bool
}

type actionRequest struct {
	client *Client
	action Action
}

// Action is one room-scoped request. Executing happens inside the room's
// mailbox loop, so an Action may touch the room and game freely.
type Action interface {
	Execute(c *Client, r *Room)
}

// Room owns its membership, master and game instance exclusively. Every
// mutation flows through the mailbox loop in Run; nothing outside that loop
// reads or writes room state.
type Room struct {
	ID protocol.RoomID

	hub     *Hub
	master  protocol.ClientID
	clients map[protocol.ClientID]*Client
	game    *yut.Game

	enterCh  chan enterRequest
	exitCh   chan exitRequest
	actionCh chan actionRequest
	done     chan struct{}
}

// NewRoom creates a room with the creator as master and sole member.
func NewRoom(hub *Hub, id protocol.RoomID, master *Client, masterName string) *Room {
	game := yut.NewGame()
	game.AddSeat(string(master.ID), masterName)
	return &Room{
		ID:       id,
		hub:      hub,
		master:   master.ID,
		clients:  map[protocol.ClientID]*Client{master.ID: master},
		game:     game,
		enterCh:  make(chan enterRequest),
		exitCh:   make(chan exitRequest),
		actionCh: make(chan actionRequest),
		done:     make(chan struct{}),
	}
}

// Run is the room's actor loop. It exits when the last member leaves, after
// unregistering the room from the hub.
func (r *Room) Run() {
	for {
		select {
		case req := <-r.enterCh:
			r.handleEnter(req)
		case req := <-r.exitCh:
			if r.handleExit(req) {
				close(r.done)
				r.hub.DestroyRoom(r)
				return
			}
		case req := <-r.actionCh:
			req.action.Execute(req.client, r)
		}
	}
}

// Enter asks the room to admit a client. Returns false if the room has
// already terminated; the caller then answers the joiner itself.
func (r *Room) Enter(c *Client, name string) bool {
	select {
	case r.enterCh <- enterRequest{client: c, name: name}:
		return true
	case <-r.done:
		return false
	}
}

// Exit asks the room to remove a member, voluntarily or by kick. A no-op if
// the room has already terminated or the client is not a member.
func (r *Room) Exit(clientID protocol.ClientID, kicked bool) {
	select {
	case r.exitCh <- exitRequest{clientID: clientID, kicked: kicked}:
	case <-r.done:
	}
}

// Do queues a room action on behalf of a client.
func (r *Room) Do(c *Client, action Action) {
	select {
	case r.actionCh <- actionRequest{client: c, action: action}:
	case <-r.done:
	}
}

func (r *Room) handleEnter(req enterRequest) {
	if len(r.clients) >= yut.MaxPlayerCount {
		req.client.Send(protocol.EnterRoomResponse{})
		return
	}

	// Snapshot to the joiner, announcement to everyone already present. The
	// joiner is added after the broadcast so it does not echo.
	req.client.Send(protocol.EnterRoomResponse{
		RoomID:     r.ID,
		Join:       true,
		Master:     r.master,
		PieceCount: r.game.PieceCount,
		Players:    r.snapshotPlayers(),
	})
	r.broadcast(protocol.PlayerJoinedResponse{ClientID: req.client.ID, Name: req.name})

	r.clients[req.client.ID] = req.client
	r.game.AddSeat(string(req.client.ID), req.name)
	req.client.EnterRoomNotify(r)
	log.Printf("client '%s' entered room '%s'", req.client.ID, r.ID)
}

// handleExit removes a member and reports whether the room is now empty.
// Any departure mid-game resets the game for the remaining members.
func (r *Room) handleExit(req exitRequest) (empty bool) {
	c, ok := r.clients[req.clientID]
	if !ok {
		return false
	}

	if r.game.State != yut.StateGameEnded {
		r.game.Reset()
	}
	r.game.RemoveSeat(string(req.clientID))
	delete(r.clients, req.clientID)

	if !req.kicked {
		c.Send(protocol.ExitRoomResponse{Exit: true})
	}
	c.ExitRoomNotify()

	if len(r.clients) == 0 {
		log.Printf("room '%s' is empty", r.ID)
		return true
	}

	if req.clientID == r.master {
		r.electMaster()
	}

	left := protocol.PlayerLeftResponse{
		Player: req.clientID,
		Master: r.master,
		Kicked: req.kicked,
	}
	if req.kicked {
		// The kicked client is no longer a member but still needs to hear
		// why its room went away.
		c.Send(left)
	}
	r.broadcast(left)
	log.Printf("client '%s' left room '%s' (kicked=%v)", req.clientID, r.ID, req.kicked)
	return false
}

// electMaster picks a new master uniformly at random from the remaining
// members.
func (r *Room) electMaster() {
	seats := r.game.Seats
	r.master = protocol.ClientID(seats[rand.Intn(len(seats))].PlayerID)
	log.Printf("room '%s' elected master '%s'", r.ID, r.master)
}

func (r *Room) snapshotPlayers() []protocol.RoomPlayer {
	players := make([]protocol.RoomPlayer, 0, len(r.game.Seats))
	for i := range r.game.Seats {
		seat := &r.game.Seats[i]
		players = append(players, protocol.RoomPlayer{
			ClientID: protocol.ClientID(seat.PlayerID),
			Name:     seat.Name,
			IsReady:  seat.Ready,
		})
	}
	return players
}

// broadcast serializes once and enqueues the frame on every member's
// outbound queue.
func (r *Room) broadcast(msg protocol.Serializer) {
	frame, err := protocol.Serialize(msg)
	if err != nil {
		log.Printf("room '%s' broadcast %s: %v", r.ID, msg.Kind(), err)
		return
	}
	for _, c := range r.clients {
		c.SendBytes(frame)
	}
}

func (r *Room) sendTo(playerID string, msg protocol.Serializer) {
	c, ok := r.clients[protocol.ClientID(playerID)]
	if !ok {
		return
	}
	c.Send(msg)
}

// advance emits the messages that follow a completed roll or move: another
// CanRoll, a turn handover, or a move-selection prompt.
func (r *Room) advance(next yut.Step, playerID string) {
	switch next {
	case yut.StepRollAgain:
		r.sendTo(playerID, protocol.CanRollResponse{Player: protocol.ClientID(playerID)})
	case yut.StepNextTurn:
		r.broadcast(protocol.EndTurnResponse{NextPlayer: protocol.ClientID(playerID)})
		r.broadcast(protocol.BeginTurnResponse{})
		r.sendTo(playerID, protocol.CanRollResponse{Player: protocol.ClientID(playerID)})
	case yut.StepSelectMove:
		r.sendTo(playerID, protocol.SelectingMoveResponse{Player: protocol.ClientID(playerID)})
	}
}
