package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	simnet "github.com/peterkuimelis/mullsim/internal/net"
)

// ToolResponse is the JSON envelope returned by all MCP tools.
type ToolResponse struct {
	Notices []string          `json:"notices"`
	State   *simnet.StateView `json:"state,omitempty"`
}

// SimSession wraps the protocol session driven by the tools. Notices from
// refused intents accumulate until the next tool response drains them.
type SimSession struct {
	sess *simnet.Session

	mu      sync.Mutex
	notices []string
}

// NewSimSession creates a session and loads its card catalog.
func NewSimSession(ctx context.Context, cfg simnet.SessionConfig) (*SimSession, error) {
	sess := simnet.NewSession(cfg)
	if err := sess.Init(ctx); err != nil {
		return nil, fmt.Errorf("load card data: %w", err)
	}
	return &SimSession{sess: sess}, nil
}

// send applies one intent. Error replies come back as a Go error; notices
// are queued for the response.
func (s *SimSession) send(ctx context.Context, msg simnet.ClientMessage) error {
	reply := s.sess.Handle(ctx, msg)
	switch reply.Type {
	case simnet.ReplyError:
		return errors.New(reply.Message)
	case simnet.ReplyNotice:
		s.appendNotice(reply.Message)
	}
	return nil
}

// sendAll applies intents in order and stops at the first error.
func (s *SimSession) sendAll(ctx context.Context, msgs ...simnet.ClientMessage) error {
	for _, msg := range msgs {
		if err := s.send(ctx, msg); err != nil {
			return err
		}
	}
	return nil
}

// appendNotice adds a notice to the buffer. Thread-safe.
func (s *SimSession) appendNotice(n string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notices = append(s.notices, n)
}

// drainNotices returns all accumulated notices and clears the buffer.
func (s *SimSession) drainNotices() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	notices := s.notices
	s.notices = nil
	if notices == nil {
		notices = []string{}
	}
	return notices
}

// response builds a ToolResponse from the current state and pending notices.
func (s *SimSession) response(ctx context.Context) *ToolResponse {
	return &ToolResponse{
		Notices: s.drainNotices(),
		State:   s.sess.Snapshot(ctx),
	}
}

// respondJSON marshals a ToolResponse to a JSON string.
func respondJSON(resp *ToolResponse) string {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
