package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/wailsapp/mimetype"

	"bookreader/internal/domain"
)

// ─────────────────────────────────────────────────────────────
// PDF Service: the single stored book
// ─────────────────────────────────────────────────────────────

// ProgressFunc receives upload progress as a percentage in [0, 100].
type ProgressFunc func(percent float64)

const (
	defaultChunkSize = 64 << 10
	maxPrealloc      = 256 << 20
)

// PDFService stores at most one PDF under domain.KeyBookPDF.
type PDFService struct {
	store     domain.KVStore
	emitter   EventEmitter
	uploads   inflight
	chunkSize int
}

// NewPDFService creates a PDFService.
func NewPDFService(store domain.KVStore, emitter EventEmitter) *PDFService {
	return &PDFService{store: store, emitter: emitter, chunkSize: defaultChunkSize}
}

// SetChunkSize changes how many bytes are read between progress reports.
func (s *PDFService) SetChunkSize(n int) {
	if n > 0 {
		s.chunkSize = n
	}
}

// Upload reads src and stores it as the current PDF, replacing any previous
// one. mediaType must be application/pdf. size is the declared length of src
// and is only used for progress; pass 0 when unknown.
//
// progress is called with values below 100 while reading and with exactly 100
// once the store has confirmed the write. If ctx is cancelled, progress stops
// being called but the upload still runs to completion.
func (s *PDFService) Upload(ctx context.Context, src io.Reader, size int64, mediaType string, progress ProgressFunc) (info *domain.BlobInfo, err error) {
	defer func() {
		notify(ctx, s.emitter, err, "PDF uploaded successfully!", "Failed to store PDF. The file might be too large.")
	}()

	if err := checkPDFMediaType(mediaType); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, invalidInput("No file selected")
	}

	id := uuid.NewString()
	s.uploads.Begin()
	defer s.uploads.End()

	report := func(p float64) {
		if progress != nil && ctx.Err() == nil {
			progress(p)
		}
	}

	report(0)
	data, err := s.readAll(src, size, report)
	if err != nil {
		return nil, unreadableInput("Failed to read the PDF file", err)
	}
	if len(data) == 0 {
		return nil, invalidInput("The selected file is empty")
	}

	wctx := context.WithoutCancel(ctx)
	if err := s.store.PutBinary(wctx, domain.KeyBookPDF, data); err != nil {
		slog.Error("pdf upload: store failed", "upload", id, "size", len(data), "err", err)
		return nil, fmt.Errorf("store pdf: %w", err)
	}
	report(100)

	info, statErr := s.store.StatBinary(wctx, domain.KeyBookPDF)
	if statErr != nil {
		info = &domain.BlobInfo{Key: domain.KeyBookPDF, Size: int64(len(data)), UpdatedAt: time.Now()}
	}
	slog.Info("pdf upload: stored", "upload", id, "size", info.Size)
	if s.emitter != nil {
		s.emitter.Emit(ctx, EventPDFChanged, map[string]any{"hasPdf": true, "pdf": info})
	}
	return info, nil
}

func (s *PDFService) readAll(src io.Reader, size int64, report func(float64)) ([]byte, error) {
	var buf bytes.Buffer
	// size is only a hint and may be wrong
	if size > 0 && size <= maxPrealloc {
		buf.Grow(int(size))
	}
	chunk := make([]byte, s.chunkSize)
	var loaded int64
	for {
		n, err := src.Read(chunk)
		if n > 0 {
			buf.Write(chunk[:n])
			loaded += int64(n)
			if size > 0 {
				// 100 is reserved for the confirmed write
				if pct := float64(loaded) / float64(size) * 100; pct < 100 {
					report(pct)
				}
			}
		}
		if errors.Is(err, io.EOF) {
			return buf.Bytes(), nil
		}
		if err != nil {
			return nil, fmt.Errorf("read pdf: %w", err)
		}
	}
}

// UploadFile uploads the file at path. The declared media type is taken from
// the file content rather than its extension.
func (s *PDFService) UploadFile(ctx context.Context, path string, progress ProgressFunc) (*domain.BlobInfo, error) {
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		err = unreadableInput("Failed to read the PDF file", fmt.Errorf("detect type of %s: %w", path, err))
		notify(ctx, s.emitter, err, "", "")
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		err = unreadableInput("Failed to read the PDF file", fmt.Errorf("open %s: %w", path, err))
		notify(ctx, s.emitter, err, "", "")
		return nil, err
	}
	defer f.Close()

	var size int64
	if st, err := f.Stat(); err == nil {
		size = st.Size()
	}
	return s.Upload(ctx, f, size, mt.String(), progress)
}

// UploadEncoded uploads base64-encoded data, as sent by the webview file input.
func (s *PDFService) UploadEncoded(ctx context.Context, mediaType, encoded string, progress ProgressFunc) (*domain.BlobInfo, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		err = unreadableInput("Failed to read the PDF file", fmt.Errorf("decode upload: %w", err))
		notify(ctx, s.emitter, err, "", "")
		return nil, err
	}
	return s.Upload(ctx, bytes.NewReader(raw), int64(len(raw)), mediaType, progress)
}

// Remove deletes the stored PDF and the reading position. Removing when no
// PDF is stored is not an error.
func (s *PDFService) Remove(ctx context.Context) (err error) {
	defer func() { notify(ctx, s.emitter, err, "PDF deleted successfully", "Failed to delete PDF") }()

	if err := s.store.DeleteBinary(ctx, domain.KeyBookPDF); err != nil {
		return fmt.Errorf("delete pdf: %w", err)
	}
	if err := s.store.DeleteText(ctx, domain.KeyCurrentPage); err != nil {
		return fmt.Errorf("reset current page: %w", err)
	}
	if s.emitter != nil {
		s.emitter.Emit(ctx, EventPDFChanged, map[string]any{"hasPdf": false})
		s.emitter.Emit(ctx, EventProgressChanged, map[string]int{"currentPage": domain.DefaultPage})
	}
	return nil
}

// Exists reports whether a PDF is stored.
func (s *PDFService) Exists(ctx context.Context) (bool, error) {
	_, err := s.store.StatBinary(ctx, domain.KeyBookPDF)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Info describes the stored PDF, or returns domain.ErrNotFound.
func (s *PDFService) Info(ctx context.Context) (*domain.BlobInfo, error) {
	return s.store.StatBinary(ctx, domain.KeyBookPDF)
}

// Read returns the stored PDF bytes, or domain.ErrNotFound.
func (s *PDFService) Read(ctx context.Context) ([]byte, error) {
	return s.store.GetBinary(ctx, domain.KeyBookPDF)
}

// Wait blocks until in-flight uploads have been written or ctx is done.
func (s *PDFService) Wait(ctx context.Context) {
	s.uploads.Wait(ctx)
}

func checkPDFMediaType(mediaType string) error {
	mt, _, err := mime.ParseMediaType(mediaType)
	if err != nil || mt != domain.PDFMediaType {
		return invalidInput("Please upload a PDF file")
	}
	return nil
}
