package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"strconv"

	_ "github.com/joho/godotenv/autoload"
)

// DefaultPort is the port the server binds when neither the flag nor the
// PORT environment variable says otherwise.
const DefaultPort = 42069

// PortFromEnv returns the PORT environment variable, or DefaultPort when it
// is unset or unparsable.
func PortFromEnv() int {
	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err != nil || port <= 0 || port > 65535 {
		return DefaultPort
	}
	return port
}

// Server owns the TCP listener and the hub behind it.
type Server struct {
	port int
	hub  *Hub
	ln   net.Listener
}

func New(port int) *Server {
	return &Server{
		port: port,
		hub:  NewHub(),
	}
}

// Listen binds the TCP port and starts the hub loop. Serve does the
// accepting; the split lets tests bind port 0 and read the real address.
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.port))
	if err != nil {
		return err
	}
	s.ln = ln
	go s.hub.Run()
	return nil
}

// Addr returns the bound listener address. Only valid after Listen.
func (s *Server) Addr() net.Addr {
	return s.ln.Addr()
}

// Serve accepts connections until the listener is closed.
func (s *Server) Serve() error {
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			return err
		}
		s.hub.Register(conn)
	}
}

// Start is Listen followed by Serve.
func (s *Server) Start() error {
	if err := s.Listen(); err != nil {
		return err
	}
	log.Printf("listening on %v", s.Addr())
	return s.Serve()
}

// Shutdown stops accepting, tells every client the server is going away,
// and waits for the hub to stop.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.ln != nil {
		s.ln.Close()
	}
	return s.hub.Shutdown(ctx)
}
