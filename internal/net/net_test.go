package net

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/plumbers/internal/game"
	"github.com/peterkuimelis/plumbers/internal/service"
	"github.com/peterkuimelis/plumbers/internal/storage/memory"
)

const testDecks = `decks:
  - name: Snakes
    cards:
      - id: tool_snake_o_matic
        count: 6
`

var drip = game.EmergencyDef{ID: "drip", Name: "Dripping Tap", MaxHP: 20, Turns: 3}

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	var cards []*game.Card
	for _, ctor := range game.CardRegistry {
		cards = append(cards, ctor())
	}
	catalog, err := game.NewCatalog(cards, []game.EmergencyDef{game.BurstPipe, drip})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "decks.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testDecks), 0o644))

	return &Handler{
		Service:  service.New(memory.New(), catalog, service.WithSeed(3)),
		DeckFile: path,
		PlayerID: "tester",
	}
}

type testPeer struct {
	t   *testing.T
	enc *json.Encoder
	dec *json.Decoder
}

func (p *testPeer) roundTrip(msg ClientMessage) ServerMessage {
	p.t.Helper()
	require.NoError(p.t, p.enc.Encode(msg))
	var reply ServerMessage
	require.NoError(p.t, p.dec.Decode(&reply))
	return reply
}

func TestHandlerBattle(t *testing.T) {
	h := newTestHandler(t)
	clientConn, serverConn := net.Pipe()
	defer clientConn.Close()

	done := make(chan error, 1)
	go func() { done <- h.Serve(context.Background(), serverConn) }()

	peer := &testPeer{t: t, enc: json.NewEncoder(clientConn), dec: json.NewDecoder(clientConn)}

	reply := peer.roundTrip(ClientMessage{Type: MsgPlay, Card: "tool_snake_o_matic"})
	assert.Equal(t, MsgError, reply.Type)

	reply = peer.roundTrip(ClientMessage{Type: MsgStart, DeckNumber: 1, Emergency: drip.ID})
	require.Equal(t, MsgState, reply.Type)
	require.NotNil(t, reply.State)
	assert.NotEmpty(t, reply.Session)
	assert.Equal(t, 20, reply.State.Emergency.HP)
	assert.Len(t, reply.State.Hand, game.HandSize)
	assert.False(t, reply.State.CanUndo)
	assert.NotEmpty(t, reply.State.Log)

	reply = peer.roundTrip(ClientMessage{Type: MsgPlay, Card: "sandwich_classic_sub"})
	require.Equal(t, MsgRejected, reply.Type)
	assert.Contains(t, reply.Error, "card is not in hand")
	assert.Equal(t, 20, reply.State.Emergency.HP)

	reply = peer.roundTrip(ClientMessage{Type: MsgPlay, Card: "tool_snake_o_matic"})
	require.Equal(t, MsgGameOver, reply.Type)
	assert.Equal(t, "victory", reply.Status)
	assert.Equal(t, 150, reply.Coins)
	assert.Equal(t, 0, reply.State.Emergency.HP)
	assert.NotEmpty(t, reply.Events)

	reply = peer.roundTrip(ClientMessage{Type: MsgUndo})
	require.Equal(t, MsgRejected, reply.Type)
	assert.Contains(t, reply.Error, "battle is already over")

	first := reply.Session
	reply = peer.roundTrip(ClientMessage{Type: MsgRetry})
	require.Equal(t, MsgState, reply.Type)
	assert.NotEqual(t, first, reply.Session)
	assert.Equal(t, 20, reply.State.Emergency.HP)

	reply = peer.roundTrip(ClientMessage{Type: "shout"})
	assert.Equal(t, MsgError, reply.Type)

	require.NoError(t, peer.enc.Encode(ClientMessage{Type: MsgQuit}))
	require.NoError(t, <-done)

	profile, err := h.Service.EnsurePlayer(context.Background(), "tester")
	require.NoError(t, err)
	assert.Equal(t, service.StartingCoins+150, profile.Coins)
}

func TestHandlerStartErrors(t *testing.T) {
	h := newTestHandler(t)
	clientConn, serverConn := net.Pipe()
	defer clientConn.Close()

	done := make(chan error, 1)
	go func() { done <- h.Serve(context.Background(), serverConn) }()
	peer := &testPeer{t: t, enc: json.NewEncoder(clientConn), dec: json.NewDecoder(clientConn)}

	reply := peer.roundTrip(ClientMessage{Type: MsgStart, DeckNumber: 4})
	assert.Equal(t, MsgError, reply.Type)
	assert.Contains(t, reply.Error, "deck 4 not found")

	reply = peer.roundTrip(ClientMessage{Type: MsgStart, Emergency: "volcano"})
	assert.Equal(t, MsgError, reply.Type)

	// The stored Starter Kit is used when no deck is named.
	reply = peer.roundTrip(ClientMessage{Type: MsgStart})
	require.Equal(t, MsgState, reply.Type)
	assert.Equal(t, game.BurstPipe.MaxHP, reply.State.Emergency.MaxHP)

	clientConn.Close()
	require.NoError(t, <-done)
}

func TestRunLocal(t *testing.T) {
	h := newTestHandler(t)
	in := strings.NewReader("9\nu\n1\nr\n1\nq\n")
	var out bytes.Buffer

	err := RunLocal(context.Background(), h, ClientMessage{Type: MsgStart, DeckNumber: 1, Emergency: drip.ID}, in, &out)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "DRIPPING TAP  HP: 20/20  Turns left: 3")
	assert.Contains(t, text, "Enter a card number between 1 and 5")
	assert.Contains(t, text, "Nothing to undo")
	assert.Contains(t, text, "EMERGENCY FIXED!")
	assert.Contains(t, text, "+150 coins")
	assert.Equal(t, 2, strings.Count(text, "EMERGENCY FIXED!"))
}

func TestRunLocalEndOfInputQuits(t *testing.T) {
	h := newTestHandler(t)
	var out bytes.Buffer

	err := RunLocal(context.Background(), h, ClientMessage{Type: MsgStart, DeckNumber: 1, Emergency: drip.ID}, strings.NewReader("e\n"), &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Turn 2")
}
