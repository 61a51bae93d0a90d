package mcp

import (
	"context"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	simnet "github.com/peterkuimelis/mullsim/internal/net"
)

// activeSession is the singleton simulator session (one per stdio process).
var activeSession *SimSession

// sessionConfig configures the session created by start_simulation, set by main.
var sessionConfig simnet.SessionConfig

// Configure sets the catalog source, decks file and stats store used when a
// session is created.
func Configure(cfg simnet.SessionConfig) {
	sessionConfig = cfg
	activeSession = nil
}

// RegisterTools adds all simulator tools to the MCP server.
func RegisterTools(s *server.MCPServer) {
	s.AddTool(startSimulationTool(), handleStartSimulation)
	s.AddTool(mulliganTool(), handleMulligan)
	s.AddTool(actTool(), handleAct)
	s.AddTool(interactTool(), handleInteract)
	s.AddTool(resolveInteractionTool(), handleResolveInteraction)
	s.AddTool(undoTool(), handleUndo)
	s.AddTool(getStateTool(), handleGetState)
}

// actions maps act's action names to protocol intents.
var actions = map[string]string{
	"draw":      simnet.MsgDraw,
	"draw_type": simnet.MsgDrawType,
	"end_turn":  simnet.MsgEndTurn,
	"play":      simnet.MsgPlay,
	"shuffle":   simnet.MsgShuffle,
	"swap":      simnet.MsgSwap,
	"discard":   simnet.MsgDiscard,
	"destroy":   simnet.MsgDestroy,
	"search":    simnet.MsgSearch,
	"sink":      simnet.MsgSink,
}

// --- Tool definitions ---

func startSimulationTool() mcp.Tool {
	return mcp.NewTool("start_simulation",
		mcp.WithDescription("Load a deck and deal an opening hand. Give either a deck code or a deck number from decks.yaml. "+
			"Starting again discards the current run."),
		mcp.WithString("code", mcp.Description("Deck code to simulate")),
		mcp.WithNumber("deck", mcp.Description("Deck number (1-indexed from decks.yaml), used when no code is given")),
		mcp.WithString("turn", mcp.Required(), mcp.Enum("first", "second"), mcp.Description("Whether the simulated player goes first or second")),
	)
}

func mulliganTool() mcp.Tool {
	return mcp.NewTool("mulligan",
		mcp.WithDescription("Replace opening hand cards and begin turn 1. Cards are replaced from the top of the deck; "+
			"the coin can never be replaced."),
		mcp.WithString("indices", mcp.Description("Space-separated 0-based hand positions to replace (e.g. '0 2'), or empty string to keep all")),
	)
}

func actTool() mcp.Tool {
	return mcp.NewTool("act",
		mcp.WithDescription("Apply one deck operation after the mulligan. "+
			"play, discard and sink take a hand index; destroy and search take a dbf_id; draw_type takes a card type."),
		mcp.WithString("action", mcp.Required(),
			mcp.Enum("draw", "draw_type", "end_turn", "play", "shuffle", "swap", "discard", "destroy", "search", "sink"),
			mcp.Description("Operation to apply")),
		mcp.WithNumber("index", mcp.Description("0-based hand index")),
		mcp.WithNumber("dbf_id", mcp.Description("Numeric card id to find in the deck")),
		mcp.WithString("type", mcp.Description("Card type such as minion or spell")),
	)
}

func interactTool() mcp.Tool {
	return mcp.NewTool("interact",
		mcp.WithDescription("Open a selection effect and return its options without changing the deck. "+
			"Resolve it with resolve_interaction."),
		mcp.WithString("strategy", mcp.Required(),
			mcp.Enum("discover", "dredge", "fracking", "waveshaping", "pick_two"),
			mcp.Description("Selection effect to open")),
		mcp.WithString("filter", mcp.Description("Card type filter for discover (e.g. spell)")),
	)
}

func resolveInteractionTool() mcp.Tool {
	return mcp.NewTool("resolve_interaction",
		mcp.WithDescription("Choose an option of the open selection. A follow-up selection may open afterwards."),
		mcp.WithNumber("option", mcp.Description("0-based index into the interaction options")),
		mcp.WithString("action", mcp.Enum("PICK", "COPY", "CANCEL"), mcp.Description("PICK takes the card, COPY adds a copy (discover only), CANCEL closes the selection")),
	)
}

func undoTool() mcp.Tool {
	return mcp.NewTool("undo",
		mcp.WithDescription("Revert the most recent deck operation."),
	)
}

func getStateTool() mcp.Tool {
	return mcp.NewTool("get_state",
		mcp.WithDescription("Get the current hand, deck, log and open selection without changing anything. Read-only."),
	)
}

// --- Tool handlers ---

func handleStartSimulation(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	code := strings.TrimSpace(request.GetString("code", ""))
	deck := request.GetInt("deck", 0)
	turn := request.GetString("turn", "")

	if code == "" && deck < 1 {
		return mcp.NewToolResultError("Give a deck code or a deck number >= 1."), nil
	}
	if turn != "first" && turn != "second" {
		return mcp.NewToolResultError("turn must be 'first' or 'second'"), nil
	}

	if activeSession == nil {
		sess, err := NewSimSession(ctx, sessionConfig)
		if err != nil {
			return mcp.NewToolResultErrorf("Failed to start simulation: %v", err), nil
		}
		activeSession = sess
	}

	sess := activeSession
	err := sess.sendAll(ctx,
		simnet.ClientMessage{Type: simnet.MsgLoad, Code: code, DeckNumber: deck},
		simnet.ClientMessage{Type: simnet.MsgStart, Turn: turn},
	)
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to start simulation: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(sess.response(ctx))), nil
}

func handleMulligan(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession == nil {
		return mcp.NewToolResultError("No simulation is running. Use start_simulation first."), nil
	}

	indicesStr := request.GetString("indices", "")
	indices := []int{}
	for _, p := range strings.Fields(indicesStr) {
		idx, err := strconv.Atoi(p)
		if err != nil {
			return mcp.NewToolResultErrorf("Invalid index '%s': must be an integer.", p), nil
		}
		indices = append(indices, idx)
	}

	return apply(ctx, simnet.ClientMessage{Type: simnet.MsgConfirm, Indices: indices})
}

func handleAct(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession == nil {
		return mcp.NewToolResultError("No simulation is running. Use start_simulation first."), nil
	}

	action := request.GetString("action", "")
	msgType, ok := actions[action]
	if !ok {
		return mcp.NewToolResultErrorf("Unknown action '%s'.", action), nil
	}
	msg := simnet.ClientMessage{
		Type:     msgType,
		Index:    request.GetInt("index", -1),
		DbfID:    request.GetInt("dbf_id", 0),
		CardType: request.GetString("type", ""),
	}
	if msgType == simnet.MsgDrawType && msg.CardType == "" {
		return mcp.NewToolResultError("draw_type needs a card type."), nil
	}
	return apply(ctx, msg)
}

func handleInteract(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession == nil {
		return mcp.NewToolResultError("No simulation is running. Use start_simulation first."), nil
	}
	return apply(ctx, simnet.ClientMessage{
		Type:     simnet.MsgOpen,
		Strategy: request.GetString("strategy", ""),
		CardType: request.GetString("filter", ""),
	})
}

func handleResolveInteraction(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession == nil {
		return mcp.NewToolResultError("No simulation is running. Use start_simulation first."), nil
	}

	action := strings.ToUpper(request.GetString("action", "PICK"))
	if action == "CANCEL" {
		return apply(ctx, simnet.ClientMessage{Type: simnet.MsgCancel})
	}
	return apply(ctx, simnet.ClientMessage{
		Type:   simnet.MsgResolve,
		Option: request.GetInt("option", -1),
		Action: action,
	})
}

func handleUndo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession == nil {
		return mcp.NewToolResultError("No simulation is running. Use start_simulation first."), nil
	}
	return apply(ctx, simnet.ClientMessage{Type: simnet.MsgUndo})
}

func handleGetState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession == nil {
		return mcp.NewToolResultError("No simulation is running. Use start_simulation first."), nil
	}
	return mcp.NewToolResultText(respondJSON(activeSession.response(ctx))), nil
}

// apply sends one intent to the active session and renders the result.
func apply(ctx context.Context, msg simnet.ClientMessage) (*mcp.CallToolResult, error) {
	sess := activeSession
	if err := sess.send(ctx, msg); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(respondJSON(sess.response(ctx))), nil
}
