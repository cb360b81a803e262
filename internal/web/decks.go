package web

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/peterkuimelis/plumbers/internal/game"
)

// DeckInfo is the JSON representation of a deck. File decks carry a number,
// stored decks an id.
type DeckInfo struct {
	Number int      `json:"number,omitempty"`
	ID     string   `json:"id,omitempty"`
	Name   string   `json:"name"`
	Size   int      `json:"size"`
	Cards  []string `json:"cards"`
}

func (s *Server) handleDecks(w http.ResponseWriter, r *http.Request) {
	decks, err := game.ParseDeckFile(s.handler.DeckFile)
	if err != nil {
		s.logger.Warn("read deck file", zap.String("path", s.handler.DeckFile), zap.Error(err))
		http.Error(w, "could not read decks file", http.StatusInternalServerError)
		return
	}

	out := make([]DeckInfo, 0, len(decks))
	for i, d := range decks {
		out = append(out, DeckInfo{
			Number: i + 1,
			Name:   d.Name,
			Size:   len(d.Cards),
			Cards:  uniqueCards(d.Cards),
		})
	}
	writeJSON(w, out)
}

// uniqueCards lists card ids once each, in first-seen order.
func uniqueCards(ids []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, id := range ids {
		if !seen[id] {
			out = append(out, id)
			seen[id] = true
		}
	}
	return out
}
