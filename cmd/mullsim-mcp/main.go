package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/peterkuimelis/mullsim/internal/card"
	simmcp "github.com/peterkuimelis/mullsim/internal/mcp"
	simnet "github.com/peterkuimelis/mullsim/internal/net"
	"github.com/peterkuimelis/mullsim/internal/stats"
)

func main() {
	decks := flag.String("decks", "decks.yaml", "path to decks YAML file")
	lang := flag.String("lang", "en", "card and message language (en, zh-TW, zh-CN)")
	catalog := flag.String("catalog", card.DefaultBase, "card data URL base or local directory")
	statsSpec := flag.String("stats", "memory", "stats store: memory, sqlite:<path> or postgres:<dsn>")
	seed := flag.Int64("seed", 0, "random seed (0 = time-based)")
	trace := flag.Bool("trace", false, "write session events to stderr")
	flag.Parse()

	language, err := card.ParseLanguage(*lang)
	if err != nil {
		fatal(err)
	}
	loader, err := card.NewLoader(*catalog)
	if err != nil {
		fatal(err)
	}
	store, _, err := stats.Open(*statsSpec)
	if err != nil {
		fatal(err)
	}
	defer store.Close()

	cfg := simnet.SessionConfig{
		Catalogs:  loader,
		Stats:     store,
		DecksFile: *decks,
		Language:  language,
		Seed:      *seed,
	}
	// stdout carries the MCP protocol.
	if *trace {
		cfg.Trace = os.Stderr
	}
	simmcp.Configure(cfg)

	s := server.NewMCPServer("mullsim", "1.0.0")
	simmcp.RegisterTools(s)

	if err := server.ServeStdio(s); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
