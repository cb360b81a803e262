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
	"github.com/peterkuimelis/plumbers/internal/log"
	plumbersnet "github.com/peterkuimelis/plumbers/internal/net"
	"github.com/peterkuimelis/plumbers/internal/service"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := os.Args[1]
	switch cmd {
	case "solo":
		err = runSolo(ctx, cfg, os.Args[2:])
	case "host":
		err = runHost(ctx, cfg, os.Args[2:])
	case "join":
		err = runJoin(ctx, cfg, os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fatal(err)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  plumbers solo [--deck N] [--emergency ID] [--decks FILE] [--db PATH] [--transcript FILE]")
	fmt.Println("  plumbers host [--addr ADDR] [--play] [--deck N] [--emergency ID] [--decks FILE] [--db PATH]")
	fmt.Println("  plumbers join [--addr ADDR] [--deck N] [--emergency ID]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  solo    Fight an emergency in this terminal")
	fmt.Println("  host    Serve battles to players over TCP")
	fmt.Println("  join    Connect to a battle server and play")
	fmt.Println()
	fmt.Println("--deck 0 plays your saved Starter Kit; N > 0 picks a deck from the deck file.")
}

// startFlags registers the flags that pick a deck and an emergency.
func startFlags(fs *flag.FlagSet, cfg config.Config) func() plumbersnet.ClientMessage {
	deck := fs.Int("deck", 0, "deck number from the deck file (0 = Starter Kit)")
	emergency := fs.String("emergency", cfg.Emergency, "emergency to fight")
	return func() plumbersnet.ClientMessage {
		return plumbersnet.ClientMessage{
			Type:       plumbersnet.MsgStart,
			DeckNumber: *deck,
			Emergency:  *emergency,
		}
	}
}

// storeFlags registers the flags that locate local data.
func storeFlags(fs *flag.FlagSet, cfg *config.Config) {
	fs.StringVar(&cfg.DeckFile, "decks", cfg.DeckFile, "path to decks file")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database path (empty = in memory)")
	fs.StringVar(&cfg.CatalogPath, "catalog", cfg.CatalogPath, "card catalog YAML (empty = built-in cards)")
	fs.StringVar(&cfg.PlayerID, "player", cfg.PlayerID, "player id")
}

func runSolo(ctx context.Context, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("solo", flag.ExitOnError)
	transcript := fs.String("transcript", "", "write every battle event to this file")
	start := startFlags(fs, cfg)
	storeFlags(fs, &cfg)
	fs.Parse(args)

	var opts []service.Option
	if *transcript != "" {
		f, err := os.Create(*transcript)
		if err != nil {
			return fmt.Errorf("create transcript: %w", err)
		}
		defer f.Close()
		opts = append(opts, service.WithEventLogger(func(string) log.EventLogger {
			return log.NewTextLogger(f)
		}))
	}

	a, err := app.New(cfg, opts...)
	if err != nil {
		return err
	}
	defer a.Close()

	return plumbersnet.RunLocal(ctx, a.Handler(), start(), os.Stdin, os.Stdout)
}

func runHost(ctx context.Context, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("host", flag.ExitOnError)
	addr := fs.String("addr", cfg.Addr, "TCP address to listen on")
	play := fs.Bool("play", false, "also play a battle from this terminal")
	start := startFlags(fs, cfg)
	storeFlags(fs, &cfg)
	fs.Parse(args)

	a, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	srv := &plumbersnet.Server{
		Handler:    a.Handler(),
		Addr:       *addr,
		Logger:     a.Logger,
		Local:      *play,
		LocalStart: start(),
	}
	fmt.Printf("Taking emergency calls on %s...\n", *addr)
	return srv.Run(ctx)
}

func runJoin(ctx context.Context, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("join", flag.ExitOnError)
	addr := fs.String("addr", "localhost"+cfg.Addr, "server address to connect to")
	start := startFlags(fs, cfg)
	fs.Parse(args)

	return plumbersnet.Connect(ctx, *addr, start())
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
