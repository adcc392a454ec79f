package protocol

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"net"
)

// Frame layout: [kind: uint8][payload_len: uint16 big-endian][payload].
const headerLen = 3

// MaxPayloadLen is the largest payload a frame can carry.
const MaxPayloadLen = 1<<16 - 1

// ReadMessage blocks until a full frame has been received. Timeout-class
// errors on the underlying read are retried; any other error terminates the
// connection and is surfaced to the caller.
func ReadMessage(conn net.Conn) (Message, error) {
	header := make([]byte, headerLen)
	if err := readFull(conn, header); err != nil {
		return Message{}, err
	}
	kind := MessageType(header[0])
	payloadLen := binary.BigEndian.Uint16(header[1:])
	if payloadLen == 0 {
		return Message{Kind: kind}, nil
	}
	payload := make([]byte, payloadLen)
	if err := readFull(conn, payload); err != nil {
		return Message{}, err
	}
	return Message{Kind: kind, Payload: payload}, nil
}

// readFull keeps reading past timeout-class errors without losing the bytes
// already received.
func readFull(conn net.Conn, buf []byte) error {
	for n := 0; n < len(buf); {
		m, err := conn.Read(buf[n:])
		n += m
		if err != nil {
			if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
				continue
			}
			return err
		}
	}
	return nil
}

// Serialize frames a typed payload into wire bytes: kind byte, big-endian
// length, JSON body.
func Serialize(msg Serializer) ([]byte, error) {
	payload, err := json.Marshal(msg)
	if err != nil {
		return nil, err
	}
	var b bytes.Buffer
	b.WriteByte(byte(msg.Kind()))
	binary.Write(&b, binary.BigEndian, uint16(len(payload)))
	b.Write(payload)
	return b.Bytes(), nil
}

// WriteFrame writes one already-serialized frame. A single logical message
// is written in one conn.Write call so a single-writer connection never
// interleaves frames. Timeout-class errors are retried.
func WriteFrame(conn net.Conn, frame []byte) error {
	for {
		_, err := conn.Write(frame)
		if err == nil {
			return nil
		}
		if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
			continue
		}
		return err
	}
}

// WriteMessage serializes and writes a typed payload.
func WriteMessage(conn net.Conn, msg Serializer) error {
	frame, err := Serialize(msg)
	if err != nil {
		return err
	}
	return WriteFrame(conn, frame)
}
