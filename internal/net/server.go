package net

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"sync"
)

// Server hosts simulator sessions for TCP clients, one session per
// connection.
type Server struct {
	Port string
	// NewSession builds the session for a new connection.
	NewSession func() *Session
}

// Run listens on Port and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", ":"+s.Port)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	fmt.Printf("Waiting for players on port %s...\n", s.Port)
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled or ln fails.
// Cancelling ctx also closes every open connection.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	var wg sync.WaitGroup
	defer wg.Wait()
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}
		log.Printf("Player connected from %s", conn.RemoteAddr())

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer conn.Close()
			// Unblock the read loop on shutdown.
			stop := context.AfterFunc(ctx, func() { conn.Close() })
			defer stop()
			if err := ServeConn(ctx, conn, s.NewSession()); err != nil {
				log.Printf("Connection %s: %v", conn.RemoteAddr(), err)
			}
		}()
	}
}

// ServeConn initializes sess, sends the initial state and then answers each
// ClientMessage read from rw until EOF.
func ServeConn(ctx context.Context, rw io.ReadWriter, sess *Session) error {
	enc := json.NewEncoder(rw)
	dec := json.NewDecoder(rw)

	first := ServerMessage{Type: ReplyState}
	if err := sess.Init(ctx); err != nil {
		log.Printf("[Session %s] load catalog failed: %v", sess.ID, err)
		first.Type = ReplyError
		first.Message = err.Error()
	}
	first.State = sess.Snapshot(ctx)
	if err := enc.Encode(first); err != nil {
		return fmt.Errorf("send state: %w", err)
	}

	for {
		var msg ClientMessage
		if err := dec.Decode(&msg); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrClosedPipe) || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("read message: %w", err)
		}
		if err := enc.Encode(sess.Handle(ctx, msg)); err != nil {
			return fmt.Errorf("send reply: %w", err)
		}
	}
}
