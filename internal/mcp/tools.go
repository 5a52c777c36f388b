package mcp

import (
	"context"
	"errors"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpsrv "github.com/mark3labs/mcp-go/server"

	"tabboard/pkg/board"
)

// ─── get_messages ─────────────────────────────────────────────────────────────

func (s *Server) toolGetMessages() mcpsrv.ServerTool {
	tool := mcplib.NewTool("get_messages",
		mcplib.WithDescription(`List messages on the board, in ascending tab order then position.

When 'category' is given, only that tab's messages are returned; an unknown
category yields an empty list. 'limit' and 'page' (1-based) slice the result.`),
		mcplib.WithString("category",
			mcplib.Description("Category name to filter by (case-insensitive, e.g. \"First Messages\")"),
		),
		mcplib.WithNumber("limit",
			mcplib.Description("Maximum number of messages to return"),
		),
		mcplib.WithNumber("page",
			mcplib.Description("1-based page number used together with limit (default 1)"),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleGetMessages}
}

func (s *Server) handleGetMessages(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	category, _ := stringArg(req, "category")
	f := board.Filter{
		Category: category,
		Limit:    intArg(req, "limit", 0),
		Page:     intArg(req, "page", 0),
	}

	msgs, err := s.svc.ListMessages(ctx, f)
	if err != nil {
		return resultErr(fmt.Errorf("get_messages: %w", err)), nil
	}

	result, err := resultJSON(msgs)
	if err != nil {
		return resultErr(fmt.Errorf("get_messages: serialise: %w", err)), nil
	}
	return result, nil
}

// ─── get_message ──────────────────────────────────────────────────────────────

func (s *Server) toolGetMessage() mcpsrv.ServerTool {
	tool := mcplib.NewTool("get_message",
		mcplib.WithDescription("Fetch a single message by its id (e.g. tab1-msg0)."),
		mcplib.WithString("messageId",
			mcplib.Description("The message id, of the form tab<tabKey>-msg<index>"),
			mcplib.Required(),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleGetMessage}
}

func (s *Server) handleGetMessage(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	id, ok := stringArg(req, "messageId")
	if !ok || id == "" {
		return resultErr(errors.New("get_message: messageId is required")), nil
	}

	msg, err := s.svc.GetMessage(ctx, id)
	if err != nil {
		return resultErr(fmt.Errorf("get_message: %w", err)), nil
	}

	result, err := resultJSON(msg)
	if err != nil {
		return resultErr(fmt.Errorf("get_message: serialise: %w", err)), nil
	}
	return result, nil
}

// ─── create_message ───────────────────────────────────────────────────────────

func (s *Server) toolCreateMessage() mcpsrv.ServerTool {
	tool := mcplib.NewTool("create_message",
		mcplib.WithDescription(`Create a new message on the board.

The message is appended to the tab matching 'category'; when the category is
absent or unknown the first tab is used. The returned id encodes the tab and
the message's position within it.`),
		mcplib.WithString("title",
			mcplib.Description("Title for the message (display only; the stored title is derived from content)"),
			mcplib.Required(),
		),
		mcplib.WithString("content",
			mcplib.Description("The message text"),
			mcplib.Required(),
		),
		mcplib.WithString("category",
			mcplib.Description("Category name to file the message under (case-insensitive)"),
		),
		mcplib.WithString("author",
			mcplib.Description("Author name (accepted but not persisted)"),
		),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleCreateMessage}
}

func (s *Server) handleCreateMessage(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	title, _ := stringArg(req, "title")
	content, _ := stringArg(req, "content")
	category, _ := stringArg(req, "category")
	author, _ := stringArg(req, "author")

	msg, err := s.svc.CreateMessage(ctx, title, content, category, author)
	if err != nil {
		return resultErr(fmt.Errorf("create_message: %w", err)), nil
	}

	s.logger.InfoContext(ctx, "mcp: create_message", "id", msg.ID, "tab", msg.TabID)
	result, err := resultJSON(msg)
	if err != nil {
		return resultErr(fmt.Errorf("create_message: serialise: %w", err)), nil
	}
	return result, nil
}

// ─── update_message ───────────────────────────────────────────────────────────

func (s *Server) toolUpdateMessage() mcpsrv.ServerTool {
	tool := mcplib.NewTool("update_message",
		mcplib.WithDescription(`Update a message's content and/or move it to another category.

A category change removes the message from its current tab and appends it to
the destination tab. Positional ids of later messages in the source tab shift
down by one; re-list to obtain fresh ids.`),
		mcplib.WithString("messageId",
			mcplib.Description("The message id, of the form tab<tabKey>-msg<index>"),
			mcplib.Required(),
		),
		mcplib.WithString("title",
			mcplib.Description("New title (echoed in the response, not stored)"),
		),
		mcplib.WithString("content",
			mcplib.Description("Replacement message text"),
		),
		mcplib.WithString("category",
			mcplib.Description("Destination category name (case-insensitive)"),
		),
		mcplib.WithString("author",
			mcplib.Description("Author name (accepted but not persisted)"),
		),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleUpdateMessage}
}

func (s *Server) handleUpdateMessage(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	id, ok := stringArg(req, "messageId")
	if !ok || id == "" {
		return resultErr(errors.New("update_message: messageId is required")), nil
	}
	title, _ := stringArg(req, "title")
	content, _ := stringArg(req, "content")
	category, _ := stringArg(req, "category")
	author, _ := stringArg(req, "author")

	msg, err := s.svc.UpdateMessage(ctx, id, board.Patch{Title: title, Content: content, Category: category}, author)
	if err != nil {
		return resultErr(fmt.Errorf("update_message: %w", err)), nil
	}

	s.logger.InfoContext(ctx, "mcp: update_message", "id", id, "tab", msg.TabID)
	result, err := resultJSON(msg)
	if err != nil {
		return resultErr(fmt.Errorf("update_message: serialise: %w", err)), nil
	}
	return result, nil
}

// ─── delete_message ───────────────────────────────────────────────────────────

func (s *Server) toolDeleteMessage() mcpsrv.ServerTool {
	tool := mcplib.NewTool("delete_message",
		mcplib.WithDescription(`Delete a message from the board.

Later messages in the same tab shift down by one position, so any previously
issued ids for that tab become stale.`),
		mcplib.WithString("messageId",
			mcplib.Description("The message id, of the form tab<tabKey>-msg<index>"),
			mcplib.Required(),
		),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleDeleteMessage}
}

func (s *Server) handleDeleteMessage(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	id, ok := stringArg(req, "messageId")
	if !ok || id == "" {
		return resultErr(errors.New("delete_message: messageId is required")), nil
	}

	receipt, err := s.svc.DeleteMessage(ctx, id)
	if err != nil {
		return resultErr(fmt.Errorf("delete_message: %w", err)), nil
	}

	s.logger.InfoContext(ctx, "mcp: delete_message", "id", id, "tab", receipt.TabID)
	result, err := resultJSON(receipt)
	if err != nil {
		return resultErr(fmt.Errorf("delete_message: serialise: %w", err)), nil
	}
	return result, nil
}

// ─── get_categories ───────────────────────────────────────────────────────────

func (s *Server) toolGetCategories() mcpsrv.ServerTool {
	tool := mcplib.NewTool("get_categories",
		mcplib.WithDescription("List the configured category tabs with their ids and display names."),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleGetCategories}
}

func (s *Server) handleGetCategories(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	result, err := resultJSON(s.svc.Categories())
	if err != nil {
		return resultErr(fmt.Errorf("get_categories: serialise: %w", err)), nil
	}
	return result, nil
}
