package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerLibraryTools() {
	s.mcp.AddTool(mcp.NewTool("get_library_state",
		mcp.WithDescription("Get the reading state: whether a PDF is loaded, the current page and all bookmarks"),
	), s.handleGetLibraryState)

	s.mcp.AddTool(mcp.NewTool("pdf_status",
		mcp.WithDescription("Report whether a PDF is stored, with its size and upload time"),
	), s.handlePDFStatus)

	s.mcp.AddTool(mcp.NewTool("set_current_page",
		mcp.WithDescription("Set the reading position"),
		mcp.WithNumber("page", mcp.Description("Page number (1 or greater)"), mcp.Required()),
	), s.handleSetCurrentPage)

	s.mcp.AddTool(mcp.NewTool("delete_pdf",
		mcp.WithDescription("🛑 DESTRUCTIVE: Delete the stored PDF and reset the reading position. Bookmarks are kept."),
		mcp.WithToolAnnotation(mcp.ToolAnnotation{DestructiveHint: boolPtr(true)}),
	), s.handleDeletePDF)
}

func (s *Server) handleGetLibraryState(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	state, err := s.reading.State(ctx)
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(state)
}

func (s *Server) handlePDFStatus(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ok, err := s.pdf.Exists(ctx)
	if err != nil {
		return errorResult(err), nil
	}
	if !ok {
		return jsonResult(map[string]any{"hasPdf": false})
	}
	info, err := s.pdf.Info(ctx)
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(map[string]any{"hasPdf": true, "pdf": info})
}

func (s *Server) handleSetCurrentPage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	page, err := intArg(req.GetArguments(), "page")
	if err != nil {
		return errorResult(err), nil
	}
	if err := s.reading.SetCurrentPage(ctx, page); err != nil {
		return errorResult(err), nil
	}
	return jsonResult(map[string]int{"currentPage": page})
}

func (s *Server) handleDeletePDF(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.pdf.Remove(ctx); err != nil {
		return errorResult(err), nil
	}
	return textResult("PDF deleted"), nil
}

func boolPtr(b bool) *bool { return &b }
