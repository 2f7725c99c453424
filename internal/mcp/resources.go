package mcpserver

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
)

const libraryURI = "bookreader://library"

func (s *Server) registerResources() {
	// ── bookreader://library ───────────────────────────
	s.mcp.AddResource(mcp.NewResource(
		libraryURI,
		"Reading State",
		mcp.WithResourceDescription("Current page, bookmarks and PDF status"),
		mcp.WithMIMEType("application/json"),
	), s.handleLibraryResource)
}

func (s *Server) handleLibraryResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	state, err := s.reading.State(ctx)
	if err != nil {
		return nil, err
	}

	data, _ := json.MarshalIndent(state, "", "  ")
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      libraryURI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
