/*
 * GCDAPB - Monitor command port.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package monitor

import (
	"bufio"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	command "github.com/rcornwell/GCDAPB/command/command"
	"github.com/rcornwell/GCDAPB/command/parser"
)

type Server struct {
	wg         sync.WaitGroup
	listener   net.Listener
	shutdown   chan struct{}
	connection chan net.Conn
	sim        command.Simulator
	mu         sync.Mutex
	clients    map[net.Conn]struct{}
}

// Open new listener.
func newServer(address string, sim command.Simulator) (*Server, error) {
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on address %s: %w", address, err)
	}

	return &Server{
		listener:   listener,
		shutdown:   make(chan struct{}),
		connection: make(chan net.Conn),
		sim:        sim,
		clients:    map[net.Conn]struct{}{},
	}, nil
}

// Accept a connection.
func (s *Server) acceptConnections() {
	defer s.wg.Done()

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.shutdown:
				return
			default:
				continue
			}
		}
		select {
		case s.connection <- conn:
		case <-s.shutdown:
			conn.Close()
			return
		}
	}
}

// Start processing for a new connection.
func (s *Server) handleConnections() {
	defer s.wg.Done()

	for {
		select {
		case <-s.shutdown:
			return
		case conn := <-s.connection:
			slog.Info("Monitor connection from " + conn.RemoteAddr().String())
			s.mu.Lock()
			s.clients[conn] = struct{}{}
			s.mu.Unlock()
			s.wg.Add(1)
			go s.handleClient(conn)
		}
	}
}

// Run commands from one client until quit or disconnect.
func (s *Server) handleClient(conn net.Conn) {
	defer s.wg.Done()
	defer func() {
		s.mu.Lock()
		delete(s.clients, conn)
		s.mu.Unlock()
		conn.Close()
	}()

	scanner := bufio.NewScanner(conn)
	fmt.Fprint(conn, "GCD> ")
	for scanner.Scan() {
		quit, err := parser.ProcessCommand(scanner.Text(), s.sim, conn)
		if err != nil {
			fmt.Fprintln(conn, "Error: "+err.Error())
		}
		if quit {
			return
		}
		fmt.Fprint(conn, "GCD> ")
	}
}

// Address server is listening on.
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// Start a new monitor server on address.
func Start(address string, sim command.Simulator) (*Server, error) {
	s, err := newServer(address, sim)
	if err != nil {
		return nil, err
	}
	slog.Info("Monitor started on " + s.listener.Addr().String())

	s.wg.Add(2)
	go s.acceptConnections()
	go s.handleConnections()
	return s, nil
}

// Stop a running server.
func (s *Server) Stop() {
	close(s.shutdown)
	s.listener.Close()
	s.mu.Lock()
	for conn := range s.clients {
		conn.Close()
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return
	case <-time.After(time.Second):
		slog.Warn("Timed out waiting for monitor connections to finish.")
		return
	}
}
