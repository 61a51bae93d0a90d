package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/peterkuimelis/mullsim/internal/card"
	simnet "github.com/peterkuimelis/mullsim/internal/net"
	"github.com/peterkuimelis/mullsim/internal/stats"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "play":
		runPlay(os.Args[2:])
	case "serve":
		runServe(os.Args[2:])
	case "join":
		runJoin(os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  mullsim play  [--decks FILE] [--lang L] [--catalog SRC] [--stats STORE] [--seed N] [--trace]")
	fmt.Println("  mullsim serve [--port P] [--decks FILE] [--lang L] [--catalog SRC] [--stats STORE] [--seed N] [--trace]")
	fmt.Println("  mullsim join  [--addr ADDR]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  play    Run the simulator in this terminal")
	fmt.Println("  serve   Host simulator sessions over TCP, one per connection")
	fmt.Println("  join    Connect to a simulator server")
}

// sessionFlags registers the flags shared by play and serve.
type sessionFlags struct {
	decks   *string
	lang    *string
	catalog *string
	stats   *string
	profile *string
	seed    *int64
	trace   *bool
}

func addSessionFlags(fs *flag.FlagSet) *sessionFlags {
	return &sessionFlags{
		decks:   fs.String("decks", "decks.yaml", "path to decks file"),
		lang:    fs.String("lang", "en", "card and message language (en, zh-TW, zh-CN)"),
		catalog: fs.String("catalog", card.DefaultBase, "card data URL base or local directory"),
		stats:   fs.String("stats", "memory", "stats store: memory, sqlite:<path> or postgres:<dsn>"),
		profile: fs.String("profile", stats.DefaultProfile, "stats profile"),
		seed:    fs.Int64("seed", 0, "random seed (0 = time-based)"),
		trace:   fs.Bool("trace", false, "write every session event to the process log"),
	}
}

// config builds a session config. The returned store must be closed. With
// --trace, session events go to trace.
func (f *sessionFlags) config(trace io.Writer) (simnet.SessionConfig, stats.Store, error) {
	lang, err := card.ParseLanguage(*f.lang)
	if err != nil {
		return simnet.SessionConfig{}, nil, err
	}
	loader, err := card.NewLoader(*f.catalog)
	if err != nil {
		return simnet.SessionConfig{}, nil, err
	}
	store, mode, err := stats.Open(*f.stats)
	if err != nil {
		return simnet.SessionConfig{}, nil, fmt.Errorf("open %s stats store: %w", mode, err)
	}
	cfg := simnet.SessionConfig{
		Catalogs:  loader,
		Stats:     store,
		Profile:   *f.profile,
		DecksFile: *f.decks,
		Language:  lang,
		Seed:      *f.seed,
	}
	if *f.trace {
		cfg.Trace = trace
	}
	return cfg, store, nil
}

func runPlay(args []string) {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	sf := addSessionFlags(fs)
	fs.Parse(args)

	cfg, store, err := sf.config(os.Stderr)
	if err != nil {
		fatal(err)
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := simnet.PlayLocal(ctx, simnet.NewSession(cfg)); err != nil {
		fatal(err)
	}
}

func runServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	port := fs.String("port", "9000", "TCP port to listen on")
	sf := addSessionFlags(fs)
	fs.Parse(args)

	cfg, store, err := sf.config(os.Stdout)
	if err != nil {
		fatal(err)
	}
	defer store.Close()

	srv := &simnet.Server{
		Port:       *port,
		NewSession: func() *simnet.Session { return simnet.NewSession(cfg) },
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	log.Printf("mullsim listening on :%s", *port)
	if err := srv.Run(ctx); err != nil {
		fatal(err)
	}
}

func runJoin(args []string) {
	fs := flag.NewFlagSet("join", flag.ExitOnError)
	addr := fs.String("addr", "localhost:9000", "server address to connect to")
	fs.Parse(args)

	if err := simnet.Connect(context.Background(), *addr); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
