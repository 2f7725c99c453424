package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerBookmarkTools() {
	s.mcp.AddTool(mcp.NewTool("list_bookmarks",
		mcp.WithDescription("List bookmarked pages in ascending order. Positions used by update/delete are indexes into this list."),
	), s.handleListBookmarks)

	s.mcp.AddTool(mcp.NewTool("add_bookmark",
		mcp.WithDescription("Bookmark a page. Fails if the page is already bookmarked."),
		mcp.WithNumber("page", mcp.Description("Page number (1 or greater)"), mcp.Required()),
	), s.handleAddBookmark)

	s.mcp.AddTool(mcp.NewTool("update_bookmark",
		mcp.WithDescription("Change the page of the bookmark at a position. The list is re-sorted afterwards."),
		mcp.WithNumber("position", mcp.Description("Zero-based index from list_bookmarks"), mcp.Required()),
		mcp.WithNumber("page", mcp.Description("New page number (1 or greater)"), mcp.Required()),
	), s.handleUpdateBookmark)

	s.mcp.AddTool(mcp.NewTool("delete_bookmark",
		mcp.WithDescription("Remove the bookmark at a position"),
		mcp.WithNumber("position", mcp.Description("Zero-based index from list_bookmarks"), mcp.Required()),
		mcp.WithToolAnnotation(mcp.ToolAnnotation{DestructiveHint: boolPtr(true)}),
	), s.handleDeleteBookmark)
}

func (s *Server) handleListBookmarks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pages, err := s.bookmarks.List(ctx)
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(pages)
}

func (s *Server) handleAddBookmark(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	page, err := intArg(req.GetArguments(), "page")
	if err != nil {
		return errorResult(err), nil
	}
	pages, err := s.bookmarks.Add(ctx, page)
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(pages)
}

func (s *Server) handleUpdateBookmark(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	position, err := intArg(args, "position")
	if err != nil {
		return errorResult(err), nil
	}
	page, err := intArg(args, "page")
	if err != nil {
		return errorResult(err), nil
	}
	pages, err := s.bookmarks.Update(ctx, position, page)
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(pages)
}

func (s *Server) handleDeleteBookmark(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	position, err := intArg(req.GetArguments(), "position")
	if err != nil {
		return errorResult(err), nil
	}
	pages, err := s.bookmarks.Delete(ctx, position)
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(pages)
}
