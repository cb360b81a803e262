package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"net"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"go.uber.org/zap"

	"github.com/peterkuimelis/plumbers/internal/game"
	plumbersnet "github.com/peterkuimelis/plumbers/internal/net"
)

//go:embed static
var staticFiles embed.FS

// CardInfo is the JSON representation of a card for the /api/cards endpoint.
type CardInfo struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	CardType    string  `json:"cardType"`
	Rarity      string  `json:"rarity"`
	Price       int     `json:"price"`
	HP          int     `json:"hp,omitempty"`
	Damage      int     `json:"damage,omitempty"`
	TimeGain    int     `json:"timeGain,omitempty"`
	Health      int     `json:"health,omitempty"`
	BoostStat   string  `json:"boostStat,omitempty"`
	BoostFactor float64 `json:"boostFactor,omitempty"`
	Summary     string  `json:"summary"`
}

// EmergencyInfo is the JSON representation of an emergency.
type EmergencyInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	MaxHP int    `json:"maxHp"`
	Turns int    `json:"turns"`
}

// ProfileInfo is the JSON representation of the player for /api/profile.
type ProfileInfo struct {
	PlayerID          string         `json:"playerId"`
	Coins             int            `json:"coins"`
	Wins              int            `json:"wins"`
	EmergenciesSolved int            `json:"emergenciesSolved"`
	Level             int            `json:"level"`
	Collection        map[string]int `json:"collection"`
	Decks             []DeckInfo     `json:"decks"`
}

// Server is the web UI server. Browsers play over a WebSocket that speaks
// the same protocol as the TCP server.
type Server struct {
	handler *plumbersnet.Handler
	logger  *zap.Logger
	mux     *http.ServeMux
}

// NewServer creates a new web server around a protocol handler.
func NewServer(h *plumbersnet.Handler, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		handler: h,
		logger:  logger,
		mux:     http.NewServeMux(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	staticFS, _ := fs.Sub(staticFiles, "static")

	s.mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		f, err := staticFS.Open("index.html")
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		defer f.Close()
		io.Copy(w, f.(io.Reader))
	})

	s.mux.HandleFunc("GET /api/cards", s.handleCards)
	s.mux.HandleFunc("GET /api/decks", s.handleDecks)
	s.mux.HandleFunc("GET /api/emergencies", s.handleEmergencies)
	s.mux.HandleFunc("GET /api/profile", s.handleProfile)

	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
	s.mux.HandleFunc("GET /ws/proxy", s.handleProxy)
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	var cards []CardInfo
	for _, c := range s.handler.Service.Catalog().Cards() {
		ci := CardInfo{
			ID:          c.ID,
			Name:        c.Name,
			Description: c.Description,
			CardType:    c.Type.String(),
			Rarity:      c.Rarity.String(),
			Price:       c.Price,
			Summary:     c.Summary(),
		}
		switch c.Type {
		case game.CardTypePlumber:
			ci.HP = c.HP
			ci.Damage = c.Damage
		case game.CardTypeTool:
			ci.Damage = c.Damage
		case game.CardTypeExcuse:
			ci.TimeGain = c.TimeGain
		case game.CardTypePowerUp:
			ci.BoostStat = c.Boost.Stat.String()
			ci.BoostFactor = c.Boost.Factor
		case game.CardTypeSandwich:
			ci.Health = c.Health
		}
		cards = append(cards, ci)
	}
	writeJSON(w, cards)
}

func (s *Server) handleEmergencies(w http.ResponseWriter, r *http.Request) {
	var out []EmergencyInfo
	for _, em := range s.handler.Service.Catalog().Emergencies() {
		out = append(out, EmergencyInfo{ID: em.ID, Name: em.Name, MaxHP: em.MaxHP, Turns: em.Turns})
	}
	writeJSON(w, out)
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	svc := s.handler.Service
	playerID := s.handler.PlayerID

	profile, err := svc.EnsurePlayer(ctx, playerID)
	if err != nil {
		s.logger.Error("load profile", zap.String("player", playerID), zap.Error(err))
		http.Error(w, "could not load profile", http.StatusInternalServerError)
		return
	}
	collection, err := svc.Collection(ctx, playerID)
	if err != nil {
		s.logger.Error("load collection", zap.String("player", playerID), zap.Error(err))
		http.Error(w, "could not load collection", http.StatusInternalServerError)
		return
	}
	decks, err := svc.Decks(ctx, playerID)
	if err != nil {
		s.logger.Error("load decks", zap.String("player", playerID), zap.Error(err))
		http.Error(w, "could not load decks", http.StatusInternalServerError)
		return
	}

	info := ProfileInfo{
		PlayerID:          profile.PlayerID,
		Coins:             profile.Coins,
		Wins:              profile.Wins,
		EmergenciesSolved: profile.EmergenciesSolved,
		Level:             profile.Level,
		Collection:        collection.Cards,
	}
	for _, d := range decks {
		info.Decks = append(info.Decks, DeckInfo{ID: d.ID, Name: d.Name, Size: len(d.Cards), Cards: uniqueCards(d.Cards)})
	}
	writeJSON(w, info)
}

// handleWebSocket plays a battle in this process over the socket.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	wsConn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Allow connections from any origin
	})
	if err != nil {
		s.logger.Warn("websocket accept", zap.Error(err))
		return
	}
	defer wsConn.CloseNow()

	ctx := r.Context()
	conn := websocket.NetConn(ctx, wsConn, websocket.MessageText)
	if err := s.handler.Serve(ctx, conn); err != nil && websocket.CloseStatus(err) == -1 && !errors.Is(err, context.Canceled) {
		s.logger.Warn("websocket battle ended", zap.String("remote", r.RemoteAddr), zap.Error(err))
		wsConn.Close(websocket.StatusInternalError, "battle error")
		return
	}
	wsConn.Close(websocket.StatusNormalClosure, "battle ended")
}

// handleProxy relays the socket to a battle server at ?addr=host:port.
func (s *Server) handleProxy(w http.ResponseWriter, r *http.Request) {
	addr := r.URL.Query().Get("addr")
	if addr == "" {
		http.Error(w, "addr is required", http.StatusBadRequest)
		return
	}

	wsConn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		s.logger.Warn("websocket accept", zap.Error(err))
		return
	}
	defer wsConn.CloseNow()

	ctx := r.Context()

	var d net.Dialer
	tcpConn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		errMsg, _ := json.Marshal(plumbersnet.ServerMessage{
			Type:  plumbersnet.MsgError,
			Error: "could not connect to battle server at " + addr + ": " + err.Error(),
		})
		wsConn.Write(ctx, websocket.MessageText, errMsg)
		wsConn.Close(websocket.StatusNormalClosure, "connection failed")
		return
	}
	defer tcpConn.Close()

	done := make(chan struct{})

	// TCP → WebSocket (server messages to browser)
	go func() {
		defer close(done)
		dec := json.NewDecoder(tcpConn)
		for {
			var msg json.RawMessage
			if err := dec.Decode(&msg); err != nil {
				if !errors.Is(err, io.EOF) {
					s.logger.Debug("tcp read", zap.Error(err))
				}
				return
			}
			if err := wsConn.Write(ctx, websocket.MessageText, msg); err != nil {
				s.logger.Debug("websocket write", zap.Error(err))
				return
			}
		}
	}()

	// WebSocket → TCP (browser commands to server)
	go func() {
		for {
			_, data, err := wsConn.Read(ctx)
			if err != nil {
				tcpConn.Close()
				return
			}
			data = append(data, '\n')
			if _, err := tcpConn.Write(data); err != nil {
				s.logger.Debug("tcp write", zap.Error(err))
				return
			}
		}
	}()

	<-done
	wsConn.Close(websocket.StatusNormalClosure, "battle ended")
}

// ListenAndServe serves HTTP on addr until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info("web UI listening", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
