// Package mcp exposes the progression records as MCP tools so an agent can
// read the daily workout, log exercise progress, and inspect progression.
package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	"github.com/meltforce/arise/internal/progression"
	"github.com/meltforce/arise/internal/storage"
)

// New creates an MCP server with all tools registered.
func New(records *storage.Records, tracker *progression.Tracker, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("Arise", version,
		server.WithToolCapabilities(false),
		server.WithInstructions("Arise workout progression server. Read today's workout, log exercise progress, and query level, streak, and attribute progression. Completing all exercises credits the day and may level the hunter up."),
	)

	h := &handlers{records: records, tracker: tracker, log: log}

	s.AddTools(
		server.ServerTool{Tool: toolGetDailyWorkout, Handler: h.getDailyWorkout},
		server.ServerTool{Tool: toolLogExercise, Handler: h.logExercise},
		server.ServerTool{Tool: toolGetProgress, Handler: h.getProgress},
		server.ServerTool{Tool: toolGetMonthlyAnalytics, Handler: h.getMonthlyAnalytics},
		server.ServerTool{Tool: toolGetQuote, Handler: h.getQuote},
	)

	return s
}

// handlers holds dependencies for MCP tool handlers.
type handlers struct {
	records *storage.Records
	tracker *progression.Tracker
	log     *slog.Logger
}
