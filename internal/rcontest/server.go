// Package rcontest provides an in-process Source RCON server for exercising
// RCON clients against real sockets in tests.
package rcontest

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"net"
	"sync"
)

// Packet framing per the Source RCON protocol. The size prefix counts the
// ID and type fields plus the two terminating null bytes, not itself.
const (
	wrapperSize       = 8 + 2
	maximumPacketSize = 4096
)

const (
	packetTypeAuth          int32 = 3
	packetTypeAuthResponse  int32 = 2
	packetTypeExecCommand   int32 = 2
	packetTypeResponseValue int32 = 0
)

// Handler produces the response body for an executed command
type Handler func(command string) string

// Server accepts RCON connections on a loopback port, answers the auth
// handshake, and dispatches executed commands to a Handler. Commands are
// recorded in arrival order for assertions.
type Server struct {
	password string
	handler  Handler

	lis net.Listener

	mu       sync.Mutex
	conns    map[net.Conn]struct{}
	commands []string
}

// NewServer starts a server on an ephemeral loopback port
func NewServer(password string, handler Handler) (*Server, error) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, err
	}

	s := &Server{
		password: password,
		handler:  handler,
		lis:      lis,
		conns:    make(map[net.Conn]struct{}),
	}
	go s.serve()
	return s, nil
}

// Addr returns the host:port the server is listening on
func (s *Server) Addr() string {
	return s.lis.Addr().String()
}

// Commands returns every command executed so far, in order
func (s *Server) Commands() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.commands))
	copy(out, s.commands)
	return out
}

// Close stops the listener and tears down live connections
func (s *Server) Close() {
	s.lis.Close()
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.conns {
		conn.Close()
	}
}

func (s *Server) serve() {
	for {
		conn, err := s.lis.Accept()
		if err != nil {
			return
		}
		s.mu.Lock()
		s.conns[conn] = struct{}{}
		s.mu.Unlock()
		go s.handleConn(conn)
	}
}

func (s *Server) handleConn(conn net.Conn) {
	defer func() {
		conn.Close()
		s.mu.Lock()
		delete(s.conns, conn)
		s.mu.Unlock()
	}()

	authed := false
	for {
		id, typ, body, err := readPacket(conn)
		if err != nil {
			return
		}

		switch {
		case !authed:
			if typ != packetTypeAuth {
				return
			}
			if string(body) != s.password {
				// Auth rejection carries ID -1 in place of the request ID
				writePacket(conn, -1, packetTypeAuthResponse, nil)
				return
			}
			if err := writePacket(conn, id, packetTypeAuthResponse, nil); err != nil {
				return
			}
			authed = true
		case typ == packetTypeExecCommand:
			command := string(body)
			s.mu.Lock()
			s.commands = append(s.commands, command)
			s.mu.Unlock()

			response := s.handler(command)
			if err := writePacket(conn, id, packetTypeResponseValue, []byte(response)); err != nil {
				return
			}
		default:
			return
		}
	}
}

func readPacket(r io.Reader) (id, typ int32, body []byte, err error) {
	var size int32
	if err = binary.Read(r, binary.LittleEndian, &size); err != nil {
		return 0, 0, nil, err
	}
	if size < wrapperSize || size > maximumPacketSize {
		return 0, 0, nil, errors.New("rcontest: packet size out of range")
	}

	payload := make([]byte, size)
	if _, err = io.ReadFull(r, payload); err != nil {
		return 0, 0, nil, err
	}

	id = int32(binary.LittleEndian.Uint32(payload[0:4]))
	typ = int32(binary.LittleEndian.Uint32(payload[4:8]))
	body = payload[8 : size-2]

	if payload[size-2] != 0 || payload[size-1] != 0 {
		return 0, 0, nil, errors.New("rcontest: packet incorrectly terminated")
	}
	return id, typ, body, nil
}

func writePacket(w io.Writer, id, typ int32, body []byte) error {
	size := int32(len(body) + wrapperSize)

	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, size)
	binary.Write(&buf, binary.LittleEndian, id)
	binary.Write(&buf, binary.LittleEndian, typ)
	buf.Write(body)
	buf.Write([]byte{0, 0})

	_, err := w.Write(buf.Bytes())
	return err
}
