package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"bookreader/internal/domain"
)

// ReadingService tracks the reading position and assembles the home page view.
type ReadingService struct {
	store     domain.KVStore
	pdf       *PDFService
	bookmarks *BookmarkService
	emitter   EventEmitter
}

// NewReadingService creates a ReadingService.
func NewReadingService(store domain.KVStore, pdf *PDFService, bookmarks *BookmarkService, emitter EventEmitter) *ReadingService {
	return &ReadingService{store: store, pdf: pdf, bookmarks: bookmarks, emitter: emitter}
}

// CurrentPage returns the stored reading position. Absent or unreadable
// values yield domain.DefaultPage.
func (s *ReadingService) CurrentPage(ctx context.Context) (int, error) {
	raw, err := s.store.GetText(ctx, domain.KeyCurrentPage)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.DefaultPage, nil
	}
	if err != nil {
		return 0, fmt.Errorf("load current page: %w", err)
	}
	page, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || page < 1 {
		return domain.DefaultPage, nil
	}
	return page, nil
}

// SetCurrentPage stores the reading position.
func (s *ReadingService) SetCurrentPage(ctx context.Context, page int) (err error) {
	defer func() { notify(ctx, s.emitter, err, "Reading position saved", "") }()

	if page < 1 {
		return invalidInput("Please enter a valid page number")
	}
	if err := s.store.PutText(ctx, domain.KeyCurrentPage, strconv.Itoa(page)); err != nil {
		return fmt.Errorf("save current page: %w", err)
	}
	if s.emitter != nil {
		s.emitter.Emit(ctx, EventProgressChanged, map[string]int{"currentPage": page})
	}
	return nil
}

// State returns everything the home page renders.
func (s *ReadingService) State(ctx context.Context) (*domain.LibraryState, error) {
	state := &domain.LibraryState{}

	info, err := s.pdf.Info(ctx)
	switch {
	case err == nil:
		state.HasPDF = true
		state.PDF = info
	case !errors.Is(err, domain.ErrNotFound):
		return nil, err
	}

	if state.CurrentPage, err = s.CurrentPage(ctx); err != nil {
		return nil, err
	}
	if state.Bookmarks, err = s.bookmarks.List(ctx); err != nil {
		return nil, err
	}
	return state, nil
}
