package net

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeConnRoundTrip(t *testing.T) {
	clientConn, serverConn := net.Pipe()
	done := make(chan error, 1)
	go func() {
		done <- ServeConn(context.Background(), serverConn, NewSession(SessionConfig{Catalogs: testCatalogs(), Seed: 1}))
		serverConn.Close()
	}()

	enc := json.NewEncoder(clientConn)
	dec := json.NewDecoder(clientConn)

	var msg ServerMessage
	require.NoError(t, dec.Decode(&msg))
	assert.Equal(t, ReplyState, msg.Type)
	require.NotNil(t, msg.State)
	assert.True(t, msg.State.Ready)

	for _, intent := range []ClientMessage{
		{Type: MsgLoad, Code: testCode()},
		{Type: MsgStart, Turn: "first"},
		{Type: MsgConfirm},
	} {
		require.NoError(t, enc.Encode(intent))
		msg = ServerMessage{}
		require.NoError(t, dec.Decode(&msg))
		require.Equal(t, ReplyState, msg.Type, msg.Message)
	}
	assert.Equal(t, 1, msg.State.Turn)
	assert.Len(t, msg.State.Hand, 4)

	clientConn.Close()
	assert.NoError(t, <-done)
}

func TestServerServesEachConnection(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	srv := &Server{NewSession: func() *Session {
		return NewSession(SessionConfig{Catalogs: testCatalogs()})
	}}
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	ids := map[string]bool{}
	for i := 0; i < 2; i++ {
		conn, err := net.Dial("tcp", ln.Addr().String())
		require.NoError(t, err)
		var msg ServerMessage
		require.NoError(t, json.NewDecoder(conn).Decode(&msg))
		ids[msg.State.Session] = true
		conn.Close()
	}
	assert.Len(t, ids, 2, "each connection gets its own session")

	cancel()
	assert.NoError(t, <-done)
}

func TestServerStopsWithIdleClient(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	srv := &Server{NewSession: func() *Session {
		return NewSession(SessionConfig{Catalogs: testCatalogs()})
	}}
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	conn, err := net.Dial("tcp", ln.Addr().String())
	require.NoError(t, err)
	defer conn.Close()
	var msg ServerMessage
	require.NoError(t, json.NewDecoder(conn).Decode(&msg))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Serve kept running with an idle client after cancel")
	}
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line string
		want ClientMessage
	}{
		{"load 2", ClientMessage{Type: MsgLoad, DeckNumber: 2}},
		{"load AAECAQcAAAA=", ClientMessage{Type: MsgLoad, Code: "AAECAQcAAAA="}},
		{"start second", ClientMessage{Type: MsgStart, Turn: "second"}},
		{"toggle 1", ClientMessage{Type: MsgToggle, Index: 0}},
		{"confirm", ClientMessage{Type: MsgConfirm}},
		{"confirm 1 3", ClientMessage{Type: MsgConfirm, Indices: []int{0, 2}}},
		{"draw", ClientMessage{Type: MsgDraw}},
		{"draw spell", ClientMessage{Type: MsgDrawType, CardType: "spell"}},
		{"end", ClientMessage{Type: MsgEndTurn}},
		{"play 3", ClientMessage{Type: MsgPlay, Index: 2}},
		{"destroy 1746", ClientMessage{Type: MsgDestroy, DbfID: 1746}},
		{"discover minion", ClientMessage{Type: MsgOpen, Strategy: "discover", CardType: "minion"}},
		{"picktwo", ClientMessage{Type: MsgOpen, Strategy: "pick_two"}},
		{"pick 2 copy", ClientMessage{Type: MsgResolve, Option: 1, Action: "COPY"}},
		{"success 5 7", ClientMessage{Type: MsgSuccess, Index: 4, Value: 7}},
		{"lang zh-TW", ClientMessage{Type: MsgLanguage, Language: "zh-TW"}},
		{"   ", ClientMessage{}},
	}
	for _, tt := range tests {
		got, err := ParseCommand(tt.line)
		require.NoError(t, err, tt.line)
		assert.Equal(t, tt.want, got, tt.line)
	}

	for _, bad := range []string{"play", "play x", "play 0", "fly", "success 1"} {
		_, err := ParseCommand(bad)
		assert.Error(t, err, bad)
	}
	_, err := ParseCommand("quit")
	assert.ErrorIs(t, err, errQuit)
}

func TestClientREPL(t *testing.T) {
	clientConn, serverConn := net.Pipe()
	go func() {
		_ = ServeConn(context.Background(), serverConn, NewSession(SessionConfig{Catalogs: testCatalogs(), Seed: 1}))
		serverConn.Close()
	}()

	in := strings.NewReader("load " + testCode() + "\nstart first\nconfirm\nbogus\nquit\n")
	var out bytes.Buffer
	require.NoError(t, NewClient(clientConn, in, &out).RunREPL(context.Background()))
	clientConn.Close()

	text := out.String()
	assert.Contains(t, text, "You are going first.")
	assert.Contains(t, text, "Turn 1 begins.")
	assert.Contains(t, text, `unknown command "bogus"`)
}
