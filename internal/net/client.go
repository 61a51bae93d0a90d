package net

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"strings"
)

// errQuit ends the REPL without an error.
var errQuit = errors.New("quit")

// Client connects to a session server and provides a terminal REPL.
type Client struct {
	conn io.ReadWriter
	in   io.Reader
	out  io.Writer
}

// NewClient creates a REPL over conn reading commands from in.
func NewClient(conn io.ReadWriter, in io.Reader, out io.Writer) *Client {
	return &Client{conn: conn, in: in, out: out}
}

// Connect dials a server and runs the REPL on the terminal.
func Connect(ctx context.Context, addr string) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	fmt.Println("Connected!")
	return NewClient(conn, os.Stdin, os.Stdout).RunREPL(ctx)
}

// PlayLocal runs sess in-process over a pipe and drives it from the terminal.
func PlayLocal(ctx context.Context, sess *Session) error {
	clientConn, serverConn := net.Pipe()
	defer clientConn.Close()

	errCh := make(chan error, 1)
	go func() {
		defer serverConn.Close()
		errCh <- ServeConn(ctx, serverConn, sess)
	}()

	if err := NewClient(clientConn, os.Stdin, os.Stdout).RunREPL(ctx); err != nil {
		return err
	}
	clientConn.Close()
	return <-errCh
}

// RunREPL renders each server reply and sends one intent per input line.
func (c *Client) RunREPL(ctx context.Context) error {
	dec := json.NewDecoder(c.conn)
	enc := json.NewEncoder(c.conn)
	reader := bufio.NewReader(c.in)

	var msg ServerMessage
	if err := dec.Decode(&msg); err != nil {
		return fmt.Errorf("read message: %w", err)
	}
	c.render(msg)

	for {
		if ctx.Err() != nil {
			return nil
		}
		fmt.Fprint(c.out, "> ")
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		intent, err := ParseCommand(line)
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintln(c.out, err)
			continue
		}
		if intent.Type == "" {
			continue
		}

		if err := enc.Encode(intent); err != nil {
			return fmt.Errorf("send %s: %w", intent.Type, err)
		}
		msg = ServerMessage{}
		if err := dec.Decode(&msg); err != nil {
			return fmt.Errorf("read message: %w", err)
		}
		c.render(msg)
	}
}

const helpText = `Commands (positions are 1-based):
  load <code|n>         load a deck code or deck n from the decks file
  start first|second    deal an opening hand
  toggle <n>            mark/unmark a hand card for the mulligan
  confirm [n...]        confirm the mulligan (default: marked cards)
  draw [type]           draw from the top, or the first card of a type
  end                   end the turn
  play|discard|sink <n> act on a hand card
  destroy|search <dbf>  act on the first deck card with that id
  shuffle | swap | undo
  discover [type] | dredge | fracking | waveshaping | picktwo
  pick <n> [copy]       choose an option of the open selection
  cancel                close the open selection
  lang en|zh-TW|zh-CN
  success <n> <value> | total <value> | reset
  state | help | quit`

// ParseCommand turns a REPL line into an intent. An empty intent means
// nothing to send.
func ParseCommand(line string) (ClientMessage, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ClientMessage{}, nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	position := func() (int, error) {
		if len(args) < 1 {
			return 0, fmt.Errorf("%s needs a position", cmd)
		}
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return 0, fmt.Errorf("bad position %q", args[0])
		}
		return n - 1, nil
	}
	number := func(i int) (int, error) {
		if len(args) <= i {
			return 0, fmt.Errorf("%s needs a number", cmd)
		}
		n, err := strconv.Atoi(args[i])
		if err != nil {
			return 0, fmt.Errorf("bad number %q", args[i])
		}
		return n, nil
	}

	switch cmd {
	case "quit", "exit", "q":
		return ClientMessage{}, errQuit
	case "help", "?":
		return ClientMessage{}, errors.New(helpText)
	case "state":
		return ClientMessage{Type: MsgGetState}, nil
	case "load":
		if len(args) < 1 {
			return ClientMessage{}, errors.New("load needs a deck code or number")
		}
		if n, err := strconv.Atoi(args[0]); err == nil {
			return ClientMessage{Type: MsgLoad, DeckNumber: n}, nil
		}
		return ClientMessage{Type: MsgLoad, Code: strings.Join(args, " ")}, nil
	case "start":
		turn := "first"
		if len(args) > 0 {
			turn = args[0]
		}
		return ClientMessage{Type: MsgStart, Turn: turn}, nil
	case "toggle", "mark":
		i, err := position()
		return ClientMessage{Type: MsgToggle, Index: i}, err
	case "confirm", "keep":
		if len(args) == 0 {
			return ClientMessage{Type: MsgConfirm}, nil
		}
		indices := []int{}
		for _, a := range args {
			n, err := strconv.Atoi(a)
			if err != nil || n < 1 {
				return ClientMessage{}, fmt.Errorf("bad position %q", a)
			}
			indices = append(indices, n-1)
		}
		return ClientMessage{Type: MsgConfirm, Indices: indices}, nil
	case "draw", "d":
		if len(args) > 0 {
			return ClientMessage{Type: MsgDrawType, CardType: args[0]}, nil
		}
		return ClientMessage{Type: MsgDraw}, nil
	case "end", "e":
		return ClientMessage{Type: MsgEndTurn}, nil
	case "play", "p":
		i, err := position()
		return ClientMessage{Type: MsgPlay, Index: i}, err
	case "discard":
		i, err := position()
		return ClientMessage{Type: MsgDiscard, Index: i}, err
	case "sink":
		i, err := position()
		return ClientMessage{Type: MsgSink, Index: i}, err
	case "destroy":
		n, err := number(0)
		return ClientMessage{Type: MsgDestroy, DbfID: n}, err
	case "search":
		n, err := number(0)
		return ClientMessage{Type: MsgSearch, DbfID: n}, err
	case "shuffle":
		return ClientMessage{Type: MsgShuffle}, nil
	case "swap":
		return ClientMessage{Type: MsgSwap}, nil
	case "undo", "u":
		return ClientMessage{Type: MsgUndo}, nil
	case "discover":
		msg := ClientMessage{Type: MsgOpen, Strategy: "discover"}
		if len(args) > 0 {
			msg.CardType = args[0]
		}
		return msg, nil
	case "dredge", "fracking", "waveshaping":
		return ClientMessage{Type: MsgOpen, Strategy: cmd}, nil
	case "picktwo", "pick_two":
		return ClientMessage{Type: MsgOpen, Strategy: "pick_two"}, nil
	case "pick":
		i, err := position()
		msg := ClientMessage{Type: MsgResolve, Option: i, Action: "PICK"}
		if len(args) > 1 && strings.EqualFold(args[1], "copy") {
			msg.Action = "COPY"
		}
		return msg, err
	case "cancel":
		return ClientMessage{Type: MsgCancel}, nil
	case "lang", "language":
		if len(args) < 1 {
			return ClientMessage{}, errors.New("lang needs a language")
		}
		return ClientMessage{Type: MsgLanguage, Language: args[0]}, nil
	case "success":
		i, err := position()
		if err != nil {
			return ClientMessage{}, err
		}
		v, err := number(1)
		return ClientMessage{Type: MsgSuccess, Index: i, Value: v}, err
	case "total":
		v, err := number(0)
		return ClientMessage{Type: MsgTotal, Value: v}, err
	case "reset":
		return ClientMessage{Type: MsgResetStats}, nil
	default:
		return ClientMessage{}, fmt.Errorf("unknown command %q (try help)", cmd)
	}
}

func (c *Client) render(msg ServerMessage) {
	switch msg.Type {
	case ReplyNotice:
		fmt.Fprintf(c.out, "! %s\n", msg.Message)
	case ReplyError:
		fmt.Fprintf(c.out, "error: %s\n", msg.Message)
	}
	if msg.State != nil {
		fmt.Fprint(c.out, FormatState(msg.State))
	}
}

// FormatState renders a state view as terminal text.
func FormatState(sv *StateView) string {
	var b strings.Builder
	if !sv.Ready {
		b.WriteString("(card data not loaded)\n")
		return b.String()
	}

	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "Deck list: %d cards | phase: %s", sv.DeckSize, sv.Phase)
	if sv.Phase != "idle" {
		fmt.Fprintf(&b, " | going %s", sv.TurnOrder)
	}
	fmt.Fprintln(&b)
	if sv.Phase == "result" {
		fmt.Fprintf(&b, "Turn %d | Mana %d/%d (spent %d) | Deck %d\n",
			sv.Turn, sv.ManaThisTurn, sv.TotalMana, sv.ManaSpent, len(sv.Deck))
	}

	if len(sv.Hand) > 0 {
		b.WriteString("Hand: ")
		for _, h := range sv.Hand {
			mark := ""
			if h.Selected {
				mark = "*"
			}
			fmt.Fprintf(&b, "[%d]%s %s (%d)  ", h.Index+1, mark, h.Card.Name, h.Card.Cost)
		}
		b.WriteString("\n")
	}

	start := max(0, len(sv.Logs)-5)
	for _, l := range sv.Logs[start:] {
		fmt.Fprintf(&b, "  T%-2d | %s\n", l.Turn, l.Details)
	}

	if in := sv.Interaction; in != nil {
		fmt.Fprintf(&b, "== %s ==\n%s\n", in.Title, in.Description)
		for _, o := range in.Options {
			fmt.Fprintf(&b, "  %d) %s (%d)\n", o.Index+1, o.Card.Name, o.Card.Cost)
		}
		var acts []string
		for _, a := range in.Actions {
			acts = append(acts, fmt.Sprintf("%s=%s", a.Label, strings.ToLower(a.Type)))
		}
		fmt.Fprintf(&b, "pick <n> [copy]   actions: %s\n", strings.Join(acts, ", "))
	}

	t := sv.Stats
	fmt.Fprintf(&b, "Stats: %v / %d\n", t.Success, t.Total)
	return b.String()
}
