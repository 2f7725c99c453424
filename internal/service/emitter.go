package service

import "context"

// ─────────────────────────────────────────────────────────────
// EventEmitter: decouples services from wailsRuntime
// ─────────────────────────────────────────────────────────────

// Events emitted to the frontend.
const (
	EventNotify           = "notify"
	EventPDFChanged       = "pdf:changed"
	EventUploadProgress   = "pdf:upload-progress"
	EventBookmarksChanged = "bookmarks:changed"
	EventProgressChanged  = "progress:changed"
	EventLibraryChanged   = "library:changed"
)

// EventEmitter is an interface for emitting events to the frontend.
// The App struct implements this by delegating to wailsRuntime.EventsEmit.
// Services receive this interface instead of a wailsRuntime context,
// which makes them independently testable with a mock emitter.
type EventEmitter interface {
	Emit(ctx context.Context, event string, data any)
}

// Notification is the payload of EventNotify, rendered as a toast.
type Notification struct {
	Level   string `json:"level"` // "success" or "error"
	Message string `json:"message"`
	Kind    string `json:"kind,omitempty"`
}

// MockEmitter is a test-friendly EventEmitter that records all calls.
type MockEmitter struct {
	Events []EmittedEvent
}

// EmittedEvent holds a single recorded emission for test assertions.
type EmittedEvent struct {
	Event string
	Data  any
}

func (m *MockEmitter) Emit(_ context.Context, event string, data any) {
	m.Events = append(m.Events, EmittedEvent{Event: event, Data: data})
}

// Notifications returns the recorded EventNotify payloads in order.
func (m *MockEmitter) Notifications() []Notification {
	var out []Notification
	for _, e := range m.Events {
		if n, ok := e.Data.(Notification); ok && e.Event == EventNotify {
			out = append(out, n)
		}
	}
	return out
}

// NoopEmitter discards all events. Used when no frontend is attached.
type NoopEmitter struct{}

func (NoopEmitter) Emit(_ context.Context, _ string, _ any) {}
