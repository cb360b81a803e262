package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/plumbers/internal/app"
	"github.com/peterkuimelis/plumbers/internal/config"
	plumbersmcp "github.com/peterkuimelis/plumbers/internal/mcp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fatal(err)
	}
	flag.StringVar(&cfg.DeckFile, "decks", cfg.DeckFile, "path to decks YAML file")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database path (empty = in memory)")
	flag.StringVar(&cfg.PlayerID, "player", cfg.PlayerID, "player id the battles are credited to")
	flag.Parse()

	a, err := app.New(cfg)
	if err != nil {
		fatal(err)
	}
	defer a.Close()

	tools := &plumbersmcp.Tools{
		Service:  a.Service,
		DeckFile: cfg.DeckFile,
		PlayerID: cfg.PlayerID,
	}

	s := server.NewMCPServer("plumbers", "1.0.0")
	tools.Register(s)

	if err := server.ServeStdio(s); err != nil {
		a.Close()
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
