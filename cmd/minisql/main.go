package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/tuannm99/minisql/internal"
	"github.com/tuannm99/minisql/internal/engine"
	"github.com/tuannm99/minisql/internal/shell"
	"github.com/tuannm99/minisql/internal/sql/executor"
)

const version = "v0.1.0"

func main() {
	var (
		cfgPath    = flag.String("config", "", "path to a YAML config file")
		dataDir    = flag.String("data-dir", "", "directory holding table files (overrides config)")
		oneShotSQL = flag.String("c", "", "execute one SQL statement and exit")
	)
	flag.Parse()

	cfg, err := internal.LoadConfig(*cfgPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *dataDir != "" {
		cfg.Storage.DataDir = *dataDir
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))

	db, err := engine.Open(cfg.Storage.DataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not load database from disk: %v\n", err)
		fmt.Println("Starting with empty database")
		db = engine.NewDatabase(cfg.Storage.DataDir)
	}
	defer func() { _ = db.Close() }()

	sh := shell.New(executor.NewExecutor(db), db, os.Stdout)
	sh.Prompt = cfg.Shell.Prompt
	sh.HistoryFile = cfg.Shell.HistoryFile

	// one-shot mode
	if strings.TrimSpace(*oneShotSQL) != "" {
		if !sh.RunSQL(*oneShotSQL) {
			_ = db.Close()
			os.Exit(1)
		}
		return
	}

	fmt.Printf("Mini SQL Database %s\n", version)
	fmt.Println("Type '.help' for available commands, '.exit' to quit")
	fmt.Println()
	if n := len(db.ListTables()); n > 0 {
		fmt.Printf("Loaded %d existing table(s) from disk\n", n)
	}

	if err := sh.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		_ = db.Close()
		os.Exit(1)
	}
}
