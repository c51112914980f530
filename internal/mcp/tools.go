package mcp

import (
	"context"
	"time"

	"github.com/claude/musclemap/internal/models"
	"github.com/mark3labs/mcp-go/mcp"
)

// parseDay parses a YYYY-MM-DD tool argument, defaulting to today.
func parseDay(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	return models.ParseDate(s)
}

// --- Tool definitions ---

var toolGetWeek = mcp.NewTool("get_week",
	mcp.WithDescription("Get the workout plan for a week: seven days (Monday first), each with its ordered list of workouts and exercises. Days without persisted state come back empty."),
	mcp.WithString("date", mcp.Description("Any date inside the wanted week (YYYY-MM-DD). Defaults to today.")),
)

var toolGetDay = mcp.NewTool("get_day",
	mcp.WithDescription("Get a single day's ordered workout list."),
	mcp.WithString("date", mcp.Required(), mcp.Description("Calendar date (YYYY-MM-DD)")),
)

var toolCreateWorkout = mcp.NewTool("create_workout",
	mcp.WithDescription("Create a workout on a day. Fails when the day already has 5 workouts or a workout with the same name (case-insensitive)."),
	mcp.WithString("date", mcp.Required(), mcp.Description("Day to schedule the workout on (YYYY-MM-DD)")),
	mcp.WithString("name", mcp.Required(), mcp.Description("Workout name, unique within the day")),
	mcp.WithNumber("duration", mcp.Description("Planned duration in minutes. Defaults to 60.")),
	mcp.WithString("difficulty", mcp.Description("Difficulty level. Defaults to intermediate."), mcp.Enum("beginner", "intermediate", "advanced")),
	mcp.WithString("color", mcp.Description("Display color (hex). Defaults to #5A57CB.")),
)

var toolMoveWorkout = mcp.NewTool("move_workout",
	mcp.WithDescription("Move a workout to a different day. The workout lands at the end of the destination day's list. Fails for full destination days and past dates."),
	mcp.WithString("workout_id", mcp.Required(), mcp.Description("ID of the workout to move")),
	mcp.WithString("from", mcp.Required(), mcp.Description("Current day (YYYY-MM-DD)")),
	mcp.WithString("to", mcp.Required(), mcp.Description("Destination day (YYYY-MM-DD)")),
)

var toolReorderWorkout = mcp.NewTool("reorder_workout",
	mcp.WithDescription("Move a workout to a new position within its day. Out-of-range positions are clamped."),
	mcp.WithString("date", mcp.Required(), mcp.Description("Day holding the workout (YYYY-MM-DD)")),
	mcp.WithString("workout_id", mcp.Required(), mcp.Description("ID of the workout to reorder")),
	mcp.WithNumber("position", mcp.Required(), mcp.Description("Target position, 0-based")),
)

var toolDeleteWorkout = mcp.NewTool("delete_workout",
	mcp.WithDescription("Delete a workout and all its exercises."),
	mcp.WithString("workout_id", mcp.Required(), mcp.Description("ID of the workout to delete")),
)

// --- Tool handlers ---

func (h *handlers) getWeek(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	at, err := parseDay(req.GetString("date", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date: " + err.Error()), nil
	}

	days, err := h.ds.Days(ctx)
	if err != nil {
		h.log.Error("mcp get_week", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(materializeWeek(days, at))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getDay(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, err := req.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError("date parameter is required"), nil
	}
	if _, err := models.ParseDate(date); err != nil {
		return mcp.NewToolResultError("invalid date: " + err.Error()), nil
	}

	days, err := h.ds.Days(ctx)
	if err != nil {
		h.log.Error("mcp get_day", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	day := models.Day{Date: date, Workouts: []models.Workout{}}
	for _, d := range days {
		if d.Date == date {
			day = d
			break
		}
	}

	result, err := mcp.NewToolResultJSON(day)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) createWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, err := req.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError("date parameter is required"), nil
	}
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name parameter is required"), nil
	}

	draft := models.Workout{
		Name:       name,
		Duration:   int(req.GetFloat("duration", 60)),
		Difficulty: models.Difficulty(req.GetString("difficulty", string(models.DifficultyIntermediate))),
		Color:      req.GetString("color", "#5A57CB"),
	}

	workout, err := h.ds.CreateWorkout(ctx, date, draft)
	if err != nil {
		h.log.Error("mcp create_workout", "error", err)
		return mcp.NewToolResultError("create failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(workout)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) moveWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("workout_id")
	if err != nil {
		return mcp.NewToolResultError("workout_id parameter is required"), nil
	}
	from, err := req.RequireString("from")
	if err != nil {
		return mcp.NewToolResultError("from parameter is required"), nil
	}
	to, err := req.RequireString("to")
	if err != nil {
		return mcp.NewToolResultError("to parameter is required"), nil
	}

	if err := h.ds.MoveWorkout(ctx, id, from, to); err != nil {
		h.log.Error("mcp move_workout", "error", err)
		return mcp.NewToolResultError("move failed: " + err.Error()), nil
	}
	return mcp.NewToolResultText("workout moved from " + from + " to " + to), nil
}

func (h *handlers) reorderWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, err := req.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError("date parameter is required"), nil
	}
	id, err := req.RequireString("workout_id")
	if err != nil {
		return mcp.NewToolResultError("workout_id parameter is required"), nil
	}
	position, err := req.RequireFloat("position")
	if err != nil {
		return mcp.NewToolResultError("position parameter is required"), nil
	}

	if err := h.ds.ReorderWorkout(ctx, date, id, int(position)); err != nil {
		h.log.Error("mcp reorder_workout", "error", err)
		return mcp.NewToolResultError("reorder failed: " + err.Error()), nil
	}
	return mcp.NewToolResultText("workout reordered"), nil
}

func (h *handlers) deleteWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("workout_id")
	if err != nil {
		return mcp.NewToolResultError("workout_id parameter is required"), nil
	}

	if err := h.ds.DeleteWorkout(ctx, id); err != nil {
		h.log.Error("mcp delete_workout", "error", err)
		return mcp.NewToolResultError("delete failed: " + err.Error()), nil
	}
	return mcp.NewToolResultText("workout deleted"), nil
}
