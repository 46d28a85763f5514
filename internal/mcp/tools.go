package mcp

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/meltforce/arise/internal/models"
	"github.com/meltforce/arise/internal/progression"
	"github.com/meltforce/arise/internal/quotes"
)

// --- Tool definitions ---

var toolGetDailyWorkout = mcp.NewTool("get_daily_workout",
	mcp.WithDescription("Get today's workout: each exercise with its target, unit, instructions, and logged amount, plus whether the day has been completed. A stale workout from a previous day is replaced automatically."),
)

var toolLogExercise = mcp.NewTool("log_exercise",
	mcp.WithDescription("Log progress on one exercise of today's workout. Running counts half a kilometer per unit; other exercises count one rep per unit. Negative amounts undo previous logs. When every exercise reaches its target the day is credited: streak, experience, and attributes update, and a level-up may fire."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exercise ID from get_daily_workout (e.g. \"1\")")),
	mcp.WithNumber("amount", mcp.Description("Units to log. Defaults to 1.")),
)

var toolGetProgress = mcp.NewTool("get_progress",
	mcp.WithDescription("Get the progression record: level, experience and next-level threshold, streak days, total workouts, monthly counts, and the four attributes (strength, endurance, agility, willpower)."),
)

var toolGetMonthlyAnalytics = mcp.NewTool("get_monthly_analytics",
	mcp.WithDescription("Workout counts per month, newest first."),
	mcp.WithNumber("months", mcp.Description("How many months to include. Defaults to 6.")),
)

var toolGetQuote = mcp.NewTool("get_quote",
	mcp.WithDescription("Get a random motivational quote."),
)

// --- Tool handlers ---

func (h *handlers) getDailyWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(h.records.DailyWorkout(ctx))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) logExercise(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("exercise")
	if err != nil {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}
	amount := req.GetFloat("amount", 1)
	if amount == 0 {
		return mcp.NewToolResultError("amount must be non-zero"), nil
	}

	workout := h.records.DailyWorkout(ctx)
	exercise := workout.Exercise(id)
	if exercise == nil {
		return mcp.NewToolResultError("no exercise with ID " + id + " in today's workout"), nil
	}

	exercise.Log(amount)
	h.records.SaveDailyWorkout(ctx, workout)

	progress := h.records.UserProgress(ctx)
	completion := h.tracker.CompleteWorkout(ctx, workout, progress)

	result, err := mcp.NewToolResultJSON(struct {
		Workout    *models.DailyWorkout          `json:"workout"`
		Completion *progression.CompletionResult `json:"completion,omitempty"`
	}{workout, completion})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getProgress(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(h.records.UserProgress(ctx))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getMonthlyAnalytics(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	months := req.GetInt("months", 6)
	if months < 1 || months > 60 {
		return mcp.NewToolResultError("months must be between 1 and 60"), nil
	}

	progress := h.records.UserProgress(ctx)

	type monthCount struct {
		Month    string `json:"month"`
		Workouts int    `json:"workouts"`
	}
	counts := make([]monthCount, 0, months)
	for _, m := range models.AnalyticsMonths(time.Now(), months) {
		counts = append(counts, monthCount{Month: m, Workouts: progress.MonthlyWorkouts[m]})
	}

	result, err := mcp.NewToolResultJSON(counts)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getQuote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(quotes.Random()), nil
}
