package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/kalambet/restora/internal/notify"
	"github.com/kalambet/restora/internal/restaurant"
)

// MCPDeps holds dependencies for the MCP server.
type MCPDeps struct {
	Repo  *restaurant.Repository
	Queue notify.Queue // optional; reservation emails are skipped when nil
}

// NewMCPServer creates an MCP server with the restaurant tools and resources registered.
func NewMCPServer(deps MCPDeps) *server.MCPServer {
	s := server.NewMCPServer(
		"restora",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithInstructions("restora: browse the menu, read and write reviews, and request table reservations."),
		server.WithRecovery(),
	)

	// Tools
	s.AddTool(
		mcp.NewTool("list_menu",
			mcp.WithDescription("List menu items, optionally filtered by category or a search term."),
			mcp.WithString("category", mcp.Description("Exact category name")),
			mcp.WithString("search", mcp.Description("Case-insensitive match on name or description")),
		),
		mcpListMenu(deps),
	)

	s.AddTool(
		mcp.NewTool("list_reviews",
			mcp.WithDescription("List reviews newest first, optionally for one menu item."),
			mcp.WithString("item_id", mcp.Description("Menu item id")),
			mcp.WithNumber("limit", mcp.Description("Maximum number of reviews (default 20)")),
		),
		mcpListReviews(deps),
	)

	s.AddTool(
		mcp.NewTool("add_review",
			mcp.WithDescription("Post a review of a menu item."),
			mcp.WithString("item_id", mcp.Description("Menu item id"), mcp.Required()),
			mcp.WithNumber("rating", mcp.Description("Rating from 1 to 5"), mcp.Required()),
			mcp.WithString("text", mcp.Description("Review text"), mcp.Required()),
			mcp.WithString("reviewer_name", mcp.Description("Name shown with the review")),
		),
		mcpAddReview(deps),
	)

	s.AddTool(
		mcp.NewTool("request_reservation",
			mcp.WithDescription("Request a table. The reservation starts pending until staff approve it."),
			mcp.WithString("name", mcp.Description("Guest name"), mcp.Required()),
			mcp.WithString("phone", mcp.Description("Contact phone"), mcp.Required()),
			mcp.WithString("date", mcp.Description("Date, YYYY-MM-DD"), mcp.Required()),
			mcp.WithString("time", mcp.Description("Time, HH:MM"), mcp.Required()),
			mcp.WithNumber("guests", mcp.Description("Party size"), mcp.Required()),
			mcp.WithString("email", mcp.Description("Email for the confirmation")),
			mcp.WithString("notes", mcp.Description("Special requests")),
		),
		mcpRequestReservation(deps),
	)

	s.AddTool(
		mcp.NewTool("list_reservations",
			mcp.WithDescription("List reservations newest first, optionally filtered by status or date."),
			mcp.WithString("status", mcp.Description("pending, approved or rejected")),
			mcp.WithString("date", mcp.Description("Date, YYYY-MM-DD")),
		),
		mcpListReservations(deps),
	)

	// Resources
	s.AddResource(
		mcp.NewResource(
			"restora://menu",
			"Menu",
			mcp.WithResourceDescription("Every available menu item as JSON"),
			mcp.WithMIMEType("application/json"),
		),
		mcpResourceMenu(deps),
	)

	return s
}

func mcpListMenu(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		items, err := deps.Repo.ListMenu(restaurant.MenuFilter{
			Category: req.GetString("category", ""),
			Search:   req.GetString("search", ""),
		})
		if err != nil {
			return mcpError(fmt.Sprintf("failed to list menu: %v", err)), nil
		}
		if len(items) == 0 {
			return mcpText("No menu items found."), nil
		}
		return mcpJSON(items)
	}
}

func mcpListReviews(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		reviews, err := deps.Repo.ListReviews(req.GetString("item_id", ""))
		if err != nil {
			return mcpError(fmt.Sprintf("failed to list reviews: %v", err)), nil
		}

		limit := req.GetInt("limit", 20)
		if limit <= 0 {
			limit = 20
		}
		if len(reviews) > limit {
			reviews = reviews[:limit]
		}
		if len(reviews) == 0 {
			return mcpText("No reviews yet."), nil
		}
		return mcpJSON(reviews)
	}
}

func mcpAddReview(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		itemID, err := req.RequireString("item_id")
		if err != nil {
			return mcpError("item_id is required"), nil
		}
		text, err := req.RequireString("text")
		if err != nil {
			return mcpError("text is required"), nil
		}

		review, err := deps.Repo.CreateReview(restaurant.Review{
			ItemID:       itemID,
			Rating:       req.GetInt("rating", 0),
			Text:         text,
			ReviewerName: req.GetString("reviewer_name", ""),
		})
		if err != nil {
			return mcpError(fmt.Sprintf("failed to add review: %v", err)), nil
		}
		return mcpText(fmt.Sprintf("Added review %s for %s (%d/5)", review.ID, review.ItemName, review.Rating)), nil
	}
}

func mcpRequestReservation(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res, err := deps.Repo.CreateReservation(restaurant.Reservation{
			Name:   req.GetString("name", ""),
			Phone:  req.GetString("phone", ""),
			Email:  req.GetString("email", ""),
			Date:   req.GetString("date", ""),
			Time:   req.GetString("time", ""),
			Guests: req.GetInt("guests", 0),
			Notes:  req.GetString("notes", ""),
		})
		if err != nil {
			return mcpError(fmt.Sprintf("failed to request reservation: %v", err)), nil
		}

		if res.Email != "" && deps.Queue != nil {
			if _, err := notify.Enqueue(deps.Queue, restaurant.Notification{
				Type: restaurant.NotifyReservationConfirmation,
				To:   res.Email,
				Data: reservationData(res),
			}); err != nil {
				return mcpError(fmt.Sprintf("reservation %s saved but failed to queue confirmation: %v", res.ID, err)), nil
			}
		}

		return mcpText(fmt.Sprintf("Reservation %s requested for %d on %s at %s (status: %s)",
			res.ID, res.Guests, res.Date, res.Time, res.Status)), nil
	}
}

func mcpListReservations(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		reservations, err := deps.Repo.ListReservations(restaurant.ReservationFilter{
			Status: req.GetString("status", ""),
			Date:   req.GetString("date", ""),
		})
		if err != nil {
			return mcpError(fmt.Sprintf("failed to list reservations: %v", err)), nil
		}
		if len(reservations) == 0 {
			return mcpText("No reservations found."), nil
		}
		return mcpJSON(reservations)
	}
}

func mcpResourceMenu(deps MCPDeps) server.ResourceHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		items, err := deps.Repo.ListMenu(restaurant.MenuFilter{})
		if err != nil {
			return nil, fmt.Errorf("failed to list menu: %w", err)
		}

		available := make([]restaurant.MenuItem, 0, len(items))
		for _, it := range items {
			if it.Available {
				available = append(available, it)
			}
		}

		b, err := json.Marshal(available)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal menu: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     string(b),
			},
		}, nil
	}
}

func mcpJSON(v any) (*mcp.CallToolResult, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcpError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcpText(string(b)), nil
}

func mcpText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

func mcpError(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: msg},
		},
		IsError: true,
	}
}
