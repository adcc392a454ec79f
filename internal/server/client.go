package server

import (
	"log"
	"net"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"yutnori-server/internal/protocol"
)

// keepaliveInterval is how long the writer stays idle before emitting a
// Keepalive frame. Package variable so tests can shrink it.
var keepaliveInterval = time.Minute

const (
	// sendQueueSize bounds each connection's outbound queue. A client that
	// cannot drain it is considered failed and torn down.
	sendQueueSize = 128

	// Inbound frame budget per connection. Game actions are human-paced;
	// anything past this is flooding.
	inboundRate  = 32
	inboundBurst = 128
)

// Client is one connection's endpoint: a dedicated reader, a dedicated
// writer, a bounded outbound queue, and the endpoint's current-room pointer.
type Client struct {
	ID   protocol.ClientID
	conn net.Conn

	sendCh      chan []byte
	enterRoomCh chan *Room
	exitRoomCh  chan struct{}
	limiter     *rate.Limiter
	closeOnce   sync.Once

	// The room pointer is written by the writer loop in response to room
	// notifications and read by the reader loop when routing requests.
	roomMu sync.RWMutex
	room   *Room
}

func NewClient(id protocol.ClientID, conn net.Conn) *Client {
	return &Client{
		ID:          id,
		conn:        conn,
		sendCh:      make(chan []byte, sendQueueSize),
		enterRoomCh: make(chan *Room, 8),
		exitRoomCh:  make(chan struct{}, 8),
		limiter:     rate.NewLimiter(inboundRate, inboundBurst),
	}
}

// Send serializes a message and enqueues it for the writer.
func (c *Client) Send(msg protocol.Serializer) error {
	frame, err := protocol.Serialize(msg)
	if err != nil {
		return err
	}
	c.SendBytes(frame)
	return nil
}

// SendBytes enqueues an already-serialized frame. On a full queue the
// connection is failed: the writer is not draining.
func (c *Client) SendBytes(frame []byte) {
	select {
	case c.sendCh <- frame:
	default:
		log.Printf("client '%s' outbound queue overflow, closing", c.ID)
		c.Close()
	}
}

// EnterRoomNotify tells the writer loop to set the current-room pointer.
func (c *Client) EnterRoomNotify(room *Room) {
	select {
	case c.enterRoomCh <- room:
	default:
		c.Close()
	}
}

// ExitRoomNotify tells the writer loop to clear the current-room pointer.
func (c *Client) ExitRoomNotify() {
	select {
	case c.exitRoomCh <- struct{}{}:
	default:
		c.Close()
	}
}

func (c *Client) Close() {
	c.closeOnce.Do(func() {
		c.conn.Close()
	})
}

func (c *Client) setRoom(room *Room) {
	c.roomMu.Lock()
	defer c.roomMu.Unlock()
	c.room = room
}

func (c *Client) currentRoom() *Room {
	c.roomMu.RLock()
	defer c.roomMu.RUnlock()
	return c.room
}

func (c *Client) teardown(hub *Hub) {
	c.Close()
	if room := c.currentRoom(); room != nil {
		room.Exit(c.ID, false)
	}
	hub.Unregister(c)
}

// ReadLoop decodes frames and routes them to the hub or the current room
// until the connection fails. Malformed input and flooding both terminate
// the connection.
func (c *Client) ReadLoop(hub *Hub) {
	defer c.teardown(hub)

	for {
		msg, err := protocol.ReadMessage(c.conn)
		if err != nil {
			log.Printf("client '%s' read: %v", c.ID, err)
			return
		}
		if !c.limiter.Allow() {
			log.Printf("client '%s' exceeded inbound rate, closing", c.ID)
			return
		}
		if !c.handleMessage(hub, msg) {
			return
		}
	}
}

// WriteLoop drains the outbound queue, applies room-pointer updates, and
// keeps the connection warm with a Keepalive once per idle minute.
func (c *Client) WriteLoop(hub *Hub) {
	defer c.teardown(hub)

	timer := time.NewTimer(keepaliveInterval)
	defer timer.Stop()
	rearm := func() {
		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(keepaliveInterval)
	}

	for {
		select {
		case frame, ok := <-c.sendCh:
			if !ok {
				return
			}
			if err := protocol.WriteFrame(c.conn, frame); err != nil {
				log.Printf("client '%s' write: %v", c.ID, err)
				return
			}
			rearm()
		case room := <-c.enterRoomCh:
			c.setRoom(room)
		case <-c.exitRoomCh:
			c.setRoom(nil)
		case <-timer.C:
			if err := protocol.WriteMessage(c.conn, protocol.KeepaliveMessage{}); err != nil {
				log.Printf("client '%s' keepalive: %v", c.ID, err)
				return
			}
			timer.Reset(keepaliveInterval)
		}
	}
}
