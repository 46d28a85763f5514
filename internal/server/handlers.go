package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/meltforce/arise/internal/models"
	"github.com/meltforce/arise/internal/progression"
	"github.com/meltforce/arise/internal/quotes"
)

func (s *Server) handleGetWorkout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.records.DailyWorkout(r.Context()))
}

func (s *Server) handleGetProgress(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.records.UserProgress(r.Context()))
}

type logRequest struct {
	Amount float64 `json:"amount"`
}

type logResponse struct {
	Workout    *models.DailyWorkout          `json:"workout"`
	Progress   *models.UserProgress          `json:"progress"`
	Completion *progression.CompletionResult `json:"completion,omitempty"`
}

// handleLogExercise applies a logged amount to one exercise of today's
// workout, then runs the completion tracker. The completion field is set
// only when this log pushed the workout over the line.
func (s *Server) handleLogExercise(w http.ResponseWriter, r *http.Request) {
	var req logRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.Amount == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "amount must be non-zero"})
		return
	}

	ctx := r.Context()
	workout := s.records.DailyWorkout(ctx)

	exercise := workout.Exercise(chi.URLParam(r, "id"))
	if exercise == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "exercise not found"})
		return
	}

	exercise.Log(req.Amount)
	s.records.SaveDailyWorkout(ctx, workout)

	progress := s.records.UserProgress(ctx)
	completion := s.tracker.CompleteWorkout(ctx, workout, progress)

	writeJSON(w, http.StatusOK, logResponse{
		Workout:    workout,
		Progress:   progress,
		Completion: completion,
	})
}

type monthCount struct {
	Month    string `json:"month"`
	Workouts int    `json:"workouts"`
}

func (s *Server) handleMonthlyAnalytics(w http.ResponseWriter, r *http.Request) {
	months := 6
	if v := r.URL.Query().Get("months"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 60 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "months must be between 1 and 60"})
			return
		}
		months = n
	}

	progress := s.records.UserProgress(r.Context())

	counts := make([]monthCount, 0, months)
	for _, m := range models.AnalyticsMonths(time.Now(), months) {
		counts = append(counts, monthCount{Month: m, Workouts: progress.MonthlyWorkouts[m]})
	}
	writeJSON(w, http.StatusOK, counts)
}

// handleGetLevelUp returns the pending level-up notification, or JSON null
// when there is nothing to celebrate.
func (s *Server) handleGetLevelUp(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.records.LevelUpNotification(r.Context()))
}

// handleAckLevelUp marks the pending notification as shown so the
// celebration is displayed once.
func (s *Server) handleAckLevelUp(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	n := s.records.LevelUpNotification(ctx)
	if n == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no level up pending"})
		return
	}
	n.Shown = true
	s.records.SaveLevelUpNotification(ctx, n)
	writeJSON(w, http.StatusOK, n)
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"quote": quotes.Random()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
