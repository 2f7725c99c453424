package app

import (
	"encoding/base64"
	"fmt"

	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"bookreader/internal/domain"
	"bookreader/internal/service"
)

// ============================================================
// Home page
// ============================================================

// GetLibraryState returns the reading position, bookmarks and PDF status.
func (a *App) GetLibraryState() (*domain.LibraryState, error) {
	return a.reading.State(a.ctx)
}

// GetCurrentPage returns the reading position (1 when none is saved).
func (a *App) GetCurrentPage() (int, error) {
	return a.reading.CurrentPage(a.ctx)
}

// SetCurrentPage saves the reading position.
func (a *App) SetCurrentPage(page int) error {
	defer a.touch()
	return a.reading.SetCurrentPage(a.ctx, page)
}

// ============================================================
// PDF
// ============================================================

// HasPDF reports whether a PDF is stored.
func (a *App) HasPDF() (bool, error) {
	return a.pdf.Exists(a.ctx)
}

// ChoosePDF opens the native file dialog and uploads the chosen file.
// It returns nil when the dialog is cancelled.
func (a *App) ChoosePDF() (*domain.BlobInfo, error) {
	path, err := wailsRuntime.OpenFileDialog(a.ctx, wailsRuntime.OpenDialogOptions{
		Title: "Choose a book",
		Filters: []wailsRuntime.FileFilter{
			{DisplayName: "PDF documents (*.pdf)", Pattern: "*.pdf"},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("open dialog: %w", err)
	}
	if path == "" {
		return nil, nil
	}
	defer a.touch()
	return a.pdf.UploadFile(a.ctx, path, a.progress())
}

// UploadPDFData stores a file picked in the webview. mediaType is the type
// declared by the browser; data is the base64-encoded content.
func (a *App) UploadPDFData(mediaType, data string) (*domain.BlobInfo, error) {
	defer a.touch()
	return a.pdf.UploadEncoded(a.ctx, mediaType, data, a.progress())
}

// DeletePDF removes the stored PDF and resets the reading position.
func (a *App) DeletePDF() error {
	defer a.touch()
	return a.pdf.Remove(a.ctx)
}

// GetPDFData returns the stored PDF as base64 for the viewer.
func (a *App) GetPDFData() (string, error) {
	data, err := a.pdf.Read(a.ctx)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

func (a *App) progress() service.ProgressFunc {
	return func(percent float64) {
		wailsRuntime.EventsEmit(a.ctx, service.EventUploadProgress, percent)
	}
}

// ============================================================
// Bookmarks
// ============================================================

// ListBookmarks returns the bookmarked pages in ascending order.
func (a *App) ListBookmarks() ([]int, error) {
	return a.bookmarks.List(a.ctx)
}

// AddBookmark bookmarks the page typed by the user.
func (a *App) AddBookmark(page string) ([]int, error) {
	defer a.touch()
	return a.bookmarks.AddInput(a.ctx, page)
}

// UpdateBookmark changes the bookmark at position to the page typed by the user.
func (a *App) UpdateBookmark(position int, page string) ([]int, error) {
	defer a.touch()
	return a.bookmarks.UpdateInput(a.ctx, position, page)
}

// DeleteBookmark removes the bookmark at position.
func (a *App) DeleteBookmark(position int) ([]int, error) {
	defer a.touch()
	return a.bookmarks.Delete(a.ctx, position)
}
