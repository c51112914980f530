// Package mcp exposes the workout calendar to MCP clients (LLM assistants).
package mcp

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("MuscleMap", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("MuscleMap workout calendar. Read the weekly plan and create, move, reorder, or delete workouts. Days are keyed by date (YYYY-MM-DD) and hold at most 5 workouts with unique names."),
	)

	h := &handlers{ds: ds, log: log}

	s.AddTools(
		server.ServerTool{Tool: toolGetWeek, Handler: h.getWeek},
		server.ServerTool{Tool: toolGetDay, Handler: h.getDay},
		server.ServerTool{Tool: toolCreateWorkout, Handler: h.createWorkout},
		server.ServerTool{Tool: toolMoveWorkout, Handler: h.moveWorkout},
		server.ServerTool{Tool: toolReorderWorkout, Handler: h.reorderWorkout},
		server.ServerTool{Tool: toolDeleteWorkout, Handler: h.deleteWorkout},
	)

	s.AddResources(
		server.ServerResource{Resource: resCurrentWeek, Handler: h.currentWeek},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resCurrentWeek = mcp.NewResource(
	"musclemap://week",
	"Current Week",
	mcp.WithResourceDescription("The current week's workout plan: seven days (Monday first) with their scheduled workouts and exercises"),
	mcp.WithMIMEType("application/json"),
)

func (h *handlers) currentWeek(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	days, err := h.ds.Days(ctx)
	if err != nil {
		return nil, err
	}

	week := materializeWeek(days, time.Now())
	data, err := json.Marshal(map[string]any{
		"week": week,
	})
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
