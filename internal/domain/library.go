package domain

import (
	"encoding/json"
	"slices"
)

// PDFMediaType is the only media type accepted for uploads.
const PDFMediaType = "application/pdf"

// DefaultPage is the reading position reported when none is stored.
const DefaultPage = 1

// LibraryState is the read-only view rendered by the home page.
type LibraryState struct {
	HasPDF      bool      `json:"hasPdf"`
	PDF         *BlobInfo `json:"pdf,omitempty"`
	CurrentPage int       `json:"currentPage"`
	Bookmarks   []int     `json:"bookmarks"`
}

// EncodeBookmarks serializes pages as a JSON array.
func EncodeBookmarks(pages []int) string {
	if pages == nil {
		pages = []int{}
	}
	// Marshalling a []int cannot fail.
	data, _ := json.Marshal(pages)
	return string(data)
}

// DecodeBookmarks parses a stored bookmark list. Anything that is not a JSON
// array of integers decodes to an empty list; entries below 1 are dropped and
// the result is sorted ascending. Duplicates are kept as stored.
func DecodeBookmarks(raw string) []int {
	var values []float64
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return []int{}
	}
	pages := make([]int, 0, len(values))
	for _, v := range values {
		if v != float64(int(v)) || v < 1 {
			continue
		}
		pages = append(pages, int(v))
	}
	slices.Sort(pages)
	return pages
}
