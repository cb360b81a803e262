package net

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"

	"github.com/peterkuimelis/plumbers/internal/game"
	"github.com/peterkuimelis/plumbers/internal/service"
)

// Handler serves the battle protocol on a connection. One connection owns
// at most one battle at a time.
type Handler struct {
	Service  *service.Service
	DeckFile string // YAML deck file for "start" messages with a deck number
	PlayerID string
	Logger   *zap.Logger
}

// conn is one side of a connection with serialized writes.
type conn struct {
	enc *json.Encoder
	dec *json.Decoder
	mu  sync.Mutex
}

func newConn(rw io.ReadWriter) *conn {
	return &conn{enc: json.NewEncoder(rw), dec: json.NewDecoder(rw)}
}

func (c *conn) send(msg ServerMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enc.Encode(msg)
}

func (c *conn) recv() (ClientMessage, error) {
	var msg ClientMessage
	err := c.dec.Decode(&msg)
	return msg, err
}

// Serve reads client messages until the client quits, the connection closes
// or ctx is done. The connection's battle is dropped when Serve returns.
func (h *Handler) Serve(ctx context.Context, rw io.ReadWriter) error {
	logger := h.logger()
	c := newConn(rw)

	var sess *service.Session
	defer func() {
		if sess != nil {
			h.Service.Abandon(sess.ID)
		}
	}()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		msg, err := c.recv()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("read message: %w", err)
		}

		var reply ServerMessage
		switch msg.Type {
		case MsgStart:
			if sess != nil {
				h.Service.Abandon(sess.ID)
				sess = nil
			}
			next, err := h.start(ctx, msg)
			if err != nil {
				reply = ServerMessage{Type: MsgError, Error: err.Error()}
				break
			}
			sess = next
			reply = h.stateMessage(sess, MsgState, game.Result{State: sess.State()})

		case MsgRetry:
			if sess == nil {
				reply = ServerMessage{Type: MsgError, Error: "no battle to retry"}
				break
			}
			next, err := h.Service.Retry(ctx, sess.ID)
			if err != nil {
				reply = ServerMessage{Type: MsgError, Error: err.Error()}
				break
			}
			sess = next
			reply = h.stateMessage(sess, MsgState, game.Result{State: sess.State()})

		case MsgPlay, MsgEndTurn, MsgUndo:
			if sess == nil {
				reply = ServerMessage{Type: MsgError, Error: "no battle in progress, send start first"}
				break
			}
			res, err := h.apply(ctx, sess.ID, msg)
			reply = h.resultMessage(sess, res, err)

		case MsgQuit:
			logger.Debug("client quit")
			return nil

		default:
			reply = ServerMessage{Type: MsgError, Error: fmt.Sprintf("unknown message type %q", msg.Type)}
		}

		if err := c.send(reply); err != nil {
			return fmt.Errorf("send %s: %w", reply.Type, err)
		}
	}
}

func (h *Handler) start(ctx context.Context, msg ClientMessage) (*service.Session, error) {
	if msg.DeckNumber > 0 {
		deck, err := game.DeckByNumber(h.DeckFile, msg.DeckNumber)
		if err != nil {
			return nil, fmt.Errorf("load deck: %w", err)
		}
		return h.Service.StartDeck(ctx, h.PlayerID, deck, msg.Emergency)
	}
	deckID := msg.DeckID
	if deckID == "" {
		deckID = service.StarterDeckID
	}
	return h.Service.Start(ctx, h.PlayerID, deckID, msg.Emergency)
}

func (h *Handler) apply(ctx context.Context, sessionID string, msg ClientMessage) (game.Result, error) {
	switch msg.Type {
	case MsgPlay:
		return h.Service.PlayCard(ctx, sessionID, msg.Card)
	case MsgEndTurn:
		return h.Service.EndTurn(ctx, sessionID)
	default:
		return h.Service.Undo(ctx, sessionID)
	}
}

// resultMessage turns the outcome of a move into the reply. Rule rejections
// carry the unchanged state; anything else is an error.
func (h *Handler) resultMessage(sess *service.Session, res game.Result, err error) ServerMessage {
	if res.Outcome != nil {
		msg := h.stateMessage(sess, MsgGameOver, res)
		msg.Status = res.Outcome.Status.String()
		msg.Coins = res.Outcome.CoinsAwarded
		if err != nil {
			msg.Error = err.Error()
		}
		return msg
	}
	if err == nil {
		return h.stateMessage(sess, MsgState, res)
	}
	if res.State != nil && isRuleRejection(err) {
		msg := h.stateMessage(sess, MsgRejected, res)
		msg.Error = err.Error()
		return msg
	}
	return ServerMessage{Type: MsgError, Session: sess.ID, Error: err.Error()}
}

func (h *Handler) stateMessage(sess *service.Session, typ string, res game.Result) ServerMessage {
	return ServerMessage{
		Type:    typ,
		Session: sess.ID,
		State:   BuildStateView(res.State, h.Service.Catalog(), sess.CanUndo()),
		Events:  BuildEventViews(res.Events),
	}
}

func (h *Handler) logger() *zap.Logger {
	if h.Logger == nil {
		return zap.NewNop()
	}
	return h.Logger
}

func isRuleRejection(err error) bool {
	return errors.Is(err, game.ErrInvalidCardReference) ||
		errors.Is(err, game.ErrIllegalSandwichPlay) ||
		errors.Is(err, game.ErrSessionTerminal)
}
