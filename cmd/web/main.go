package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/peterkuimelis/mullsim/internal/card"
	"github.com/peterkuimelis/mullsim/internal/stats"
	"github.com/peterkuimelis/mullsim/internal/web"
)

func main() {
	port := flag.Int("port", 8080, "HTTP port to listen on")
	decksFile := flag.String("decks", "decks.yaml", "path to decks YAML file")
	lang := flag.String("lang", "en", "default card and message language (en, zh-TW, zh-CN)")
	catalog := flag.String("catalog", card.DefaultBase, "card data URL base or local directory")
	statsSpec := flag.String("stats", "memory", "stats store: memory, sqlite:<path> or postgres:<dsn>")
	seed := flag.Int64("seed", 0, "random seed (0 = time-based)")
	trace := flag.Bool("trace", false, "write every session event to stdout")
	flag.Parse()

	language, err := card.ParseLanguage(*lang)
	if err != nil {
		fatal(err)
	}
	loader, err := card.NewLoader(*catalog)
	if err != nil {
		fatal(err)
	}
	store, mode, err := stats.Open(*statsSpec)
	if err != nil {
		fatal(err)
	}
	defer store.Close()

	cfg := web.Config{
		Catalogs:  loader,
		DecksFile: *decksFile,
		Stats:     store,
		Language:  language,
		Seed:      *seed,
	}
	if *trace {
		cfg.Trace = os.Stdout
	}
	srv := web.NewServer(cfg)

	addr := fmt.Sprintf(":%d", *port)
	log.Printf("mullsim web listening on http://localhost:%d (stats: %s)", *port, mode)
	if err := srv.ListenAndServe(addr); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
