package control

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"sync"
)

// DefaultSocket is where the renderer listens unless configured otherwise.
const DefaultSocket = "/tmp/wallfacer.sock"

// Server accepts control connections and feeds their commands into a Queue.
type Server struct {
	path  string
	ln    net.Listener
	queue *Queue

	wg     sync.WaitGroup
	mu     sync.Mutex
	conns  map[net.Conn]struct{}
	closed bool
}

// Listen binds a Unix socket at path, replacing a stale socket file.
func Listen(path string, q *Queue) (*Server, error) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("control: remove stale %s: %w", path, err)
	}
	ln, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("control: listen %s: %w", path, err)
	}
	return &Server{path: path, ln: ln, queue: q, conns: make(map[net.Conn]struct{})}, nil
}

func (s *Server) Path() string { return s.path }

// Serve accepts connections until Close. Each connection gets its own
// goroutine.
func (s *Server) Serve() {
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			if !errors.Is(err, net.ErrClosed) {
				log.Printf("control: accept: %v", err)
			}
			return
		}
		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			conn.Close()
			return
		}
		s.conns[conn] = struct{}{}
		s.wg.Add(1)
		s.mu.Unlock()

		go func() {
			defer s.wg.Done()
			s.handle(conn)
		}()
	}
}

// handle answers every line with "ok" or "error: ...".
func (s *Server) handle(conn net.Conn) {
	defer func() {
		s.mu.Lock()
		delete(s.conns, conn)
		s.mu.Unlock()
		conn.Close()
	}()
	Handle(conn, conn, s.queue)
}

// Handle reads commands from r until EOF, queues them and writes one reply
// line per input line to w. Blank lines are ignored.
func Handle(r io.Reader, w io.Writer, q *Queue) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		if len(line) == 0 {
			continue
		}
		cmd, err := Parse(line)
		if err != nil {
			if _, werr := fmt.Fprintf(w, "error: %v\n", err); werr != nil {
				return
			}
			continue
		}
		q.Push(cmd)
		if _, err := io.WriteString(w, "ok\n"); err != nil {
			return
		}
	}
}

// Close stops accepting, drops open connections, waits for their goroutines
// and removes the socket file.
func (s *Server) Close() error {
	err := s.ln.Close()
	s.mu.Lock()
	s.closed = true
	for c := range s.conns {
		c.Close()
	}
	s.mu.Unlock()
	s.wg.Wait()
	os.Remove(s.path)
	return err
}
