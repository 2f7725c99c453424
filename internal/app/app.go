package app

import (
	"context"
	"log/slog"
	"time"

	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"bookreader/internal/config"
	"bookreader/internal/logging"
	"bookreader/internal/service"
	"bookreader/internal/storage"
)

// App is the main Wails application struct.
// All exported methods are available as Wails bindings.
type App struct {
	ctx context.Context
	cfg config.Config

	db *storage.DB
	kv *storage.KVStore

	pdf         *service.PDFService
	bookmarks   *service.BookmarkService
	reading     *service.ReadingService
	window      *service.WindowSettingsService
	maintenance *service.MaintenanceService
	watcher     *service.LibraryWatcher
}

// New creates a new App.
func New() *App {
	return &App{}
}

// wailsEmitter forwards service events to the frontend.
type wailsEmitter struct{}

func (wailsEmitter) Emit(ctx context.Context, event string, data any) {
	wailsRuntime.EventsEmit(ctx, event, data)
}

// Startup is called when the app starts.
func (a *App) Startup(ctx context.Context) {
	a.ctx = ctx

	cfg, err := config.Load()
	if err != nil {
		wailsRuntime.LogFatalf(ctx, "Failed to load configuration: %v", err)
		return
	}
	a.cfg = cfg
	logging.Setup(cfg.LogLevel)

	db, err := storage.New(cfg.DBPath())
	if err != nil {
		wailsRuntime.LogFatalf(ctx, "Failed to open library: %v", err)
		return
	}
	a.db = db
	a.kv = storage.NewKVStore(db)

	a.wire(ctx, wailsEmitter{})

	size := a.window.LoadWindowSize(ctx)
	wailsRuntime.WindowSetSize(ctx, size.Width, size.Height)

	a.watcher.Start(ctx)
	if err := a.maintenance.Start(ctx, cfg.CompactSchedule); err != nil {
		wailsRuntime.LogErrorf(ctx, "Maintenance disabled: %v", err)
	}
	slog.Info("library opened", "path", cfg.DBPath())
}

// wire builds the services on top of a.kv and a.db.
func (a *App) wire(ctx context.Context, emitter service.EventEmitter) {
	a.pdf = service.NewPDFService(a.kv, emitter)
	a.bookmarks = service.NewBookmarkService(a.kv, emitter)
	a.reading = service.NewReadingService(a.kv, a.pdf, a.bookmarks, emitter)
	a.window = service.NewWindowSettingsService(a.kv)
	a.maintenance = service.NewMaintenanceService(a.db)
	a.watcher = service.NewLibraryWatcher(a.db.Path(), a.db.Fingerprint, emitter)
}

// Shutdown is called when the app is closing.
func (a *App) Shutdown(ctx context.Context) {
	if a.db == nil {
		return
	}
	if w, h := wailsRuntime.WindowGetSize(ctx); w > 0 && h > 0 {
		if err := a.window.SaveWindowSize(ctx, w, h); err != nil {
			slog.Warn("save window size", "err", err)
		}
	}

	// Let a PDF that is still being written land before the file closes.
	waitCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	a.pdf.Wait(waitCtx)
	cancel()

	a.watcher.Stop()
	a.maintenance.Stop()
	a.db.Close()
}

// touch marks our own writes as seen by the library watcher.
func (a *App) touch() {
	if a.watcher != nil {
		a.watcher.Touch(a.ctx)
	}
}
