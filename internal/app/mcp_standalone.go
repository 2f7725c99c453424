package app

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"bookreader/internal/config"
	"bookreader/internal/logging"
	mcpserver "bookreader/internal/mcp"
	"bookreader/internal/service"
	"bookreader/internal/storage"
)

// ServeMCP runs the app as a standalone MCP server on stdin/stdout with no GUI.
// It shares the library file with a running GUI; writes from either side are
// last-write-wins and the GUI picks them up through its library watcher.
func ServeMCP() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	// stdout carries the protocol; logs go to stderr
	logging.Setup(cfg.LogLevel)

	db, err := storage.New(cfg.DBPath())
	if err != nil {
		log.Fatalf("Failed to open library: %v", err)
	}
	defer db.Close()

	kv := storage.NewKVStore(db)
	emitter := service.NoopEmitter{}

	pdf := service.NewPDFService(kv, emitter)
	bookmarks := service.NewBookmarkService(kv, emitter)
	reading := service.NewReadingService(kv, pdf, bookmarks, emitter)

	srv := mcpserver.New(mcpserver.Deps{
		PDF:       pdf,
		Bookmarks: bookmarks,
		Reading:   reading,
	})

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ServeStdio() }()

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatalf("MCP server error: %v", err)
		}
	case <-ctx.Done():
	}
	pdf.Wait(context.Background())
}
