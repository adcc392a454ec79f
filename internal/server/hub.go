package server

import (
	"context"
	"log"
	"net"
	"time"

	"yutnori-server/internal/protocol"
)

type createRoomRequest struct {
	client *Client
	name   string
}

type enterRoomRequest struct {
	client *Client
	name   string
	roomID protocol.RoomID
}

// Hub is the single owner of the room table and the set of connected
// clients. Everything it owns is mutated only inside Run.
type Hub struct {
	registerCh    chan net.Conn
	unregisterCh  chan *Client
	createRoomCh  chan createRoomRequest
	enterRoomCh   chan enterRoomRequest
	destroyRoomCh chan *Room
	shutdownCh    chan chan struct{}
	done          chan struct{}

	rooms   map[protocol.RoomID]*Room
	clients map[protocol.ClientID]*Client
}

func NewHub() *Hub {
	return &Hub{
		registerCh:    make(chan net.Conn),
		unregisterCh:  make(chan *Client),
		createRoomCh:  make(chan createRoomRequest),
		enterRoomCh:   make(chan enterRoomRequest),
		destroyRoomCh: make(chan *Room),
		shutdownCh:    make(chan chan struct{}),
		done:          make(chan struct{}),
		rooms:         make(map[protocol.RoomID]*Room),
		clients:       make(map[protocol.ClientID]*Client),
	}
}

// Run is the hub's actor loop.
func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.registerCh:
			h.registerClient(conn)
		case c := <-h.unregisterCh:
			delete(h.clients, c.ID)
		case req := <-h.createRoomCh:
			h.createRoom(req)
		case req := <-h.enterRoomCh:
			h.enterRoom(req)
		case room := <-h.destroyRoomCh:
			delete(h.rooms, room.ID)
			log.Printf("destroyed room '%s'", room.ID)
		case reply := <-h.shutdownCh:
			close(h.done)
			h.disconnectAll()
			reply <- struct{}{}
			return
		}
	}
}

// Register hands a freshly accepted connection to the hub.
func (h *Hub) Register(conn net.Conn) {
	select {
	case h.registerCh <- conn:
	case <-h.done:
		conn.Close()
	}
}

// Unregister drops a client from the connected set during endpoint teardown.
func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregisterCh <- c:
	case <-h.done:
	}
}

// CreateRoom asks the hub to mint a room with the client as master.
func (h *Hub) CreateRoom(c *Client, name string) {
	select {
	case h.createRoomCh <- createRoomRequest{client: c, name: name}:
	case <-h.done:
	}
}

// EnterRoom asks the hub to route a join request to the target room.
func (h *Hub) EnterRoom(c *Client, name string, roomID protocol.RoomID) {
	select {
	case h.enterRoomCh <- enterRoomRequest{client: c, name: name, roomID: roomID}:
	case <-h.done:
	}
}

// DestroyRoom drops a terminated room from the table.
func (h *Hub) DestroyRoom(room *Room) {
	select {
	case h.destroyRoomCh <- room:
	case <-h.done:
	}
}

// Shutdown tells every connected client the server is going away, closes
// their connections, and stops the hub loop.
func (h *Hub) Shutdown(ctx context.Context) error {
	reply := make(chan struct{})
	select {
	case h.shutdownCh <- reply:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-reply:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (h *Hub) registerClient(conn net.Conn) {
	id := protocol.ClientID(GenerateUniqueID(func(id string) bool {
		_, taken := h.clients[protocol.ClientID(id)]
		return taken
	}))
	c := NewClient(id, conn)
	h.clients[id] = c

	// The Connect frame is queued before the writer starts; the queue is
	// buffered so this cannot block.
	if err := c.Send(protocol.ConnectResponse{ClientID: id}); err != nil {
		log.Println(err)
		delete(h.clients, id)
		conn.Close()
		return
	}
	go c.ReadLoop(h)
	go c.WriteLoop(h)
	log.Printf("%v connected as '%s'", conn.RemoteAddr(), id)
}

func (h *Hub) createRoom(req createRoomRequest) {
	id := protocol.RoomID(GenerateUniqueID(func(id string) bool {
		_, taken := h.rooms[protocol.RoomID(id)]
		return taken
	}))
	room := NewRoom(h, id, req.client, req.name)
	if err := req.client.Send(protocol.CreateRoomResponse{RoomID: id}); err != nil {
		log.Println(err)
		return
	}
	h.rooms[id] = room
	req.client.EnterRoomNotify(room)
	go room.Run()
	log.Printf("client '%s' created room '%s'", req.client.ID, id)
}

func (h *Hub) enterRoom(req enterRoomRequest) {
	room := h.rooms[req.roomID]
	if room == nil || !room.Enter(req.client, req.name) {
		// Unknown or already-terminated room: the joiner alone hears about it.
		req.client.Send(protocol.EnterRoomResponse{})
		return
	}
}

func (h *Hub) disconnectAll() {
	frame, err := protocol.Serialize(protocol.DisconnectMessage{})
	if err != nil {
		log.Println(err)
		return
	}
	for _, c := range h.clients {
		c.SendBytes(frame)
	}
	// Give the writers a moment to flush before the connections go away.
	time.Sleep(100 * time.Millisecond)
	for _, c := range h.clients {
		c.Close()
	}
}
