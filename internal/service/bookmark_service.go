package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"

	"bookreader/internal/domain"
)

// ─────────────────────────────────────────────────────────────
// Bookmark Service: sorted list of bookmarked pages
// ─────────────────────────────────────────────────────────────

// BookmarkService manages the bookmark list stored under domain.KeyBookmarks.
// Every mutation reads the whole list, changes it and writes it back in a
// single PutText call.
type BookmarkService struct {
	store   domain.KVStore
	emitter EventEmitter
	mu      sync.Mutex
}

// NewBookmarkService creates a BookmarkService.
func NewBookmarkService(store domain.KVStore, emitter EventEmitter) *BookmarkService {
	return &BookmarkService{store: store, emitter: emitter}
}

// ParsePage converts user text to a page number.
func ParsePage(raw string) (int, error) {
	page, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || page < 1 {
		return 0, invalidInput("Please enter a valid page number")
	}
	return page, nil
}

// List returns the stored bookmarks in ascending order.
func (s *BookmarkService) List(ctx context.Context) ([]int, error) {
	return s.load(ctx)
}

// Add bookmarks page. It fails with domain.ErrDuplicateEntry, without
// writing, when page is already bookmarked.
func (s *BookmarkService) Add(ctx context.Context, page int) (pages []int, err error) {
	defer func() { notify(ctx, s.emitter, err, "Bookmark added!", "") }()

	if page < 1 {
		return nil, invalidInput("Please enter a valid page number")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pages, err = s.load(ctx)
	if err != nil {
		return nil, err
	}
	if slices.Contains(pages, page) {
		return nil, fmt.Errorf("page %d: %w", page, domain.ErrDuplicateEntry)
	}
	pages = append(pages, page)
	return s.save(ctx, pages)
}

// AddInput parses raw and adds it as a bookmark.
func (s *BookmarkService) AddInput(ctx context.Context, raw string) ([]int, error) {
	page, err := ParsePage(raw)
	if err != nil {
		notify(ctx, s.emitter, err, "", "")
		return nil, err
	}
	return s.Add(ctx, page)
}

// Update replaces the bookmark at position and re-sorts, so the edited page
// may move. An update that produces a duplicate is accepted.
func (s *BookmarkService) Update(ctx context.Context, position, newPage int) (pages []int, err error) {
	defer func() { notify(ctx, s.emitter, err, "Bookmark updated!", "") }()

	if newPage < 1 {
		return nil, invalidInput("Please enter a valid page number")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pages, err = s.load(ctx)
	if err != nil {
		return nil, err
	}
	if position < 0 || position >= len(pages) {
		return nil, fmt.Errorf("update position %d of %d: %w", position, len(pages), domain.ErrOutOfRange)
	}
	pages[position] = newPage
	return s.save(ctx, pages)
}

// UpdateInput parses raw and applies it at position.
func (s *BookmarkService) UpdateInput(ctx context.Context, position int, raw string) ([]int, error) {
	page, err := ParsePage(raw)
	if err != nil {
		notify(ctx, s.emitter, err, "", "")
		return nil, err
	}
	return s.Update(ctx, position, page)
}

// Delete removes the bookmark at position.
func (s *BookmarkService) Delete(ctx context.Context, position int) (pages []int, err error) {
	defer func() { notify(ctx, s.emitter, err, "Bookmark deleted!", "") }()

	s.mu.Lock()
	defer s.mu.Unlock()

	pages, err = s.load(ctx)
	if err != nil {
		return nil, err
	}
	if position < 0 || position >= len(pages) {
		return nil, fmt.Errorf("delete position %d of %d: %w", position, len(pages), domain.ErrOutOfRange)
	}
	pages = slices.Delete(pages, position, position+1)
	return s.save(ctx, pages)
}

func (s *BookmarkService) load(ctx context.Context) ([]int, error) {
	raw, err := s.store.GetText(ctx, domain.KeyBookmarks)
	if errors.Is(err, domain.ErrNotFound) {
		return []int{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load bookmarks: %w", err)
	}
	return domain.DecodeBookmarks(raw), nil
}

func (s *BookmarkService) save(ctx context.Context, pages []int) ([]int, error) {
	slices.Sort(pages)
	if err := s.store.PutText(ctx, domain.KeyBookmarks, domain.EncodeBookmarks(pages)); err != nil {
		return nil, fmt.Errorf("save bookmarks: %w", err)
	}
	if s.emitter != nil {
		s.emitter.Emit(ctx, EventBookmarksChanged, pages)
	}
	return pages, nil
}
