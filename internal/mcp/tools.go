package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/plumbers/internal/game"
	"github.com/peterkuimelis/plumbers/internal/service"
)

// Tools exposes one battle at a time to an MCP client (one per stdio
// process).
type Tools struct {
	Service  *service.Service
	DeckFile string // YAML deck file for deck_number
	PlayerID string

	mu     sync.Mutex
	active *GameSession
}

// StartEmergencyInput are the start_emergency arguments.
type StartEmergencyInput struct {
	DeckNumber int    `json:"deck_number,omitempty"`
	DeckID     string `json:"deck_id,omitempty"`
	Emergency  string `json:"emergency,omitempty"`
}

// PlayCardInput are the play_card arguments. Card wins over Index.
type PlayCardInput struct {
	Card  string `json:"card,omitempty"`
	Index int    `json:"index,omitempty"`
}

// EmergencyInfo describes an emergency for list_emergencies.
type EmergencyInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	MaxHP int    `json:"max_hp"`
	Turns int    `json:"turns"`
}

// Register adds all battle tools to the MCP server.
func (t *Tools) Register(s *server.MCPServer) {
	s.AddTool(startEmergencyTool(), t.handleStartEmergency)
	s.AddTool(playCardTool(), t.handlePlayCard)
	s.AddTool(endTurnTool(), t.handleEndTurn)
	s.AddTool(undoTool(), t.handleUndo)
	s.AddTool(getBattleStateTool(), t.handleGetBattleState)
	s.AddTool(listEmergenciesTool(), t.handleListEmergencies)
}

// --- Tool definitions ---

func startEmergencyTool() mcp.Tool {
	return mcp.NewTool("start_emergency",
		mcp.WithDescription("Start a new plumbing emergency battle. Returns the opening state with a hand of 5 cards. "+
			"Any previous battle is abandoned. Plumbers fix the emergency at the end of each turn, tools hit it at once, "+
			"excuses buy turns, power-ups multiply damage or health, sandwiches heal the deployed plumber."),
		mcp.WithNumber("deck_number", mcp.Description("Deck number from the deck file (1-indexed). Omit to use a stored deck.")),
		mcp.WithString("deck_id", mcp.Description("Stored deck id. Defaults to the Starter Kit.")),
		mcp.WithString("emergency", mcp.Description("Emergency id, see list_emergencies. Defaults to burst_pipe.")),
	)
}

func playCardTool() mcp.Tool {
	return mcp.NewTool("play_card",
		mcp.WithDescription("Play a card from the hand. The card resolves immediately."),
		mcp.WithString("card", mcp.Description("Id of the card to play, as listed in state.hand")),
		mcp.WithNumber("index", mcp.Description("1-based hand position, used when card is omitted")),
	)
}

func endTurnTool() mcp.Tool {
	return mcp.NewTool("end_turn",
		mcp.WithDescription("End the turn: the plumber fixes the emergency, the emergency counter-attacks, one turn passes and the hand refills to 5."),
	)
}

func undoTool() mcp.Tool {
	return mcp.NewTool("undo",
		mcp.WithDescription("Revert the last card play or end of turn. Not available once the battle is over."),
	)
}

func getBattleStateTool() mcp.Tool {
	return mcp.NewTool("get_battle_state",
		mcp.WithDescription("Get the current battle state without making a move, plus any events no earlier reply carried. Read-only."),
	)
}

func listEmergenciesTool() mcp.Tool {
	return mcp.NewTool("list_emergencies",
		mcp.WithDescription("List the emergencies that can be started."),
	)
}

// --- Tool handlers ---

func (t *Tools) handleStartEmergency(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input StartEmergencyInput
	if err := request.BindArguments(&input); err != nil {
		return mcp.NewToolResultErrorFromErr("invalid start_emergency arguments", err), nil
	}

	var (
		sess *service.Session
		err  error
	)
	if input.DeckNumber > 0 {
		var deck game.Deck
		deck, err = game.DeckByNumber(t.DeckFile, input.DeckNumber)
		if err != nil {
			return mcp.NewToolResultErrorFromErr("Failed to load deck", err), nil
		}
		sess, err = t.Service.StartDeck(ctx, t.PlayerID, deck, input.Emergency)
	} else {
		deckID := input.DeckID
		if deckID == "" {
			deckID = service.StarterDeckID
		}
		sess, err = t.Service.Start(ctx, t.PlayerID, deckID, input.Emergency)
	}
	if err != nil {
		return mcp.NewToolResultErrorFromErr("Failed to start battle", err), nil
	}

	t.mu.Lock()
	if t.active != nil {
		t.Service.Abandon(t.active.sess.ID)
	}
	t.active = newGameSession(t.Service, sess)
	gs := t.active
	t.mu.Unlock()

	return mcp.NewToolResultText(respondJSON(gs.record(game.Result{State: sess.State()}))), nil
}

func (t *Tools) handlePlayCard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	gs := t.session()
	if gs == nil {
		return noBattle(), nil
	}

	var input PlayCardInput
	if err := request.BindArguments(&input); err != nil {
		return mcp.NewToolResultErrorFromErr("invalid play_card arguments", err), nil
	}
	cardID := input.Card
	if cardID == "" {
		hand := gs.sess.State().Hand
		if input.Index < 1 || input.Index > len(hand) {
			return mcp.NewToolResultErrorf("index must be between 1 and %d", len(hand)), nil
		}
		cardID = hand[input.Index-1]
	}

	res, err := t.Service.PlayCard(ctx, gs.sess.ID, cardID)
	return gs.respond(res, err), nil
}

func (t *Tools) handleEndTurn(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	gs := t.session()
	if gs == nil {
		return noBattle(), nil
	}
	res, err := t.Service.EndTurn(ctx, gs.sess.ID)
	return gs.respond(res, err), nil
}

func (t *Tools) handleUndo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	gs := t.session()
	if gs == nil {
		return noBattle(), nil
	}
	if !gs.sess.CanUndo() && !gs.sess.State().Status.Terminal() {
		return mcp.NewToolResultError("Nothing to undo."), nil
	}
	res, err := t.Service.Undo(ctx, gs.sess.ID)
	return gs.respond(res, err), nil
}

func (t *Tools) handleGetBattleState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	gs := t.session()
	if gs == nil {
		return noBattle(), nil
	}
	return mcp.NewToolResultText(respondJSON(gs.snapshot())), nil
}

func (t *Tools) handleListEmergencies(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var out []EmergencyInfo
	for _, em := range t.Service.Catalog().Emergencies() {
		out = append(out, EmergencyInfo{ID: em.ID, Name: em.Name, MaxHP: em.MaxHP, Turns: em.Turns})
	}
	data, err := json.Marshal(out)
	if err != nil {
		return mcp.NewToolResultErrorFromErr("marshal emergencies", err), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (t *Tools) session() *GameSession {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

// respond builds the tool result for a move. Rule rejections come back as
// error results carrying the unchanged state.
func (s *GameSession) respond(res game.Result, err error) *mcp.CallToolResult {
	if err == nil {
		return mcp.NewToolResultText(respondJSON(s.record(res)))
	}
	if res.Outcome != nil {
		s.hold(res)
		return mcp.NewToolResultErrorFromErr("Battle ended but the reward was not saved", err)
	}
	if res.State == nil || !isRuleRejection(err) {
		return mcp.NewToolResultErrorFromErr("Move failed", err)
	}
	resp := s.record(res)
	resp.Rejected = err.Error()
	return mcp.NewToolResultError(respondJSON(resp))
}

func noBattle() *mcp.CallToolResult {
	return mcp.NewToolResultError("No battle is running. Use start_emergency first.")
}

func isRuleRejection(err error) bool {
	return errors.Is(err, game.ErrInvalidCardReference) ||
		errors.Is(err, game.ErrIllegalSandwichPlay) ||
		errors.Is(err, game.ErrSessionTerminal)
}
