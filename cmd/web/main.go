package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/peterkuimelis/plumbers/internal/app"
	"github.com/peterkuimelis/plumbers/internal/config"
	"github.com/peterkuimelis/plumbers/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fatal(err)
	}
	addr := flag.String("addr", cfg.WebAddr, "HTTP address to listen on")
	flag.StringVar(&cfg.DeckFile, "decks", cfg.DeckFile, "path to decks YAML file")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database path (empty = in memory)")
	flag.StringVar(&cfg.PlayerID, "player", cfg.PlayerID, "player id")
	flag.Parse()

	a, err := app.New(cfg)
	if err != nil {
		fatal(err)
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := web.NewServer(a.Handler(), a.Logger)
	if err := srv.ListenAndServe(ctx, *addr); err != nil {
		a.Close()
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
