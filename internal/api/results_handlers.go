package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/verte-zerg/kanadrill/internal/model"
	"github.com/verte-zerg/kanadrill/internal/stats"
)

type timeframeQuery struct {
	Timeframe string `validate:"omitempty,oneof=all week month"`
	Game      string `validate:"omitempty,oneof=match quiz typing"`
}

func (s *Server) parseTimeframe(w http.ResponseWriter, r *http.Request) (model.StatsConfig, bool) {
	q := timeframeQuery{
		Timeframe: r.URL.Query().Get("timeframe"),
		Game:      r.URL.Query().Get("game"),
	}
	if err := s.validate.Struct(q); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", validationMessage(err))
		return model.StatsConfig{}, false
	}
	cfg := model.StatsConfig{
		Timeframe: model.Timeframe(q.Timeframe),
		Game:      model.Game(q.Game),
	}
	if cfg.Timeframe == "" {
		cfg.Timeframe = model.TimeframeAll
	}
	return cfg, true
}

func (s *Server) handleListResults(w http.ResponseWriter, r *http.Request) {
	cfg, ok := s.parseTimeframe(w, r)
	if !ok {
		return
	}
	records, err := s.results.List(r.Context())
	if err != nil {
		slog.Error("failed to list results", "error", err)
		respondError(w, http.StatusInternalServerError, "storage_error", "failed to load results")
		return
	}
	records = stats.FilterByTimeframe(stats.FilterByGame(records, cfg.Game), cfg.Timeframe, s.now())
	if records == nil {
		records = []model.ResultRecord{}
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"timeframe": cfg.Timeframe,
		"results":   records,
		"total":     len(records),
	})
}

func (s *Server) handleCreateResult(w http.ResponseWriter, r *http.Request) {
	var rec model.ResultRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if err := s.validate.Struct(rec); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", validationMessage(err))
		return
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = s.now().UTC()
	}
	if rec.TotalQuestions == 0 {
		rec.TotalQuestions = len(rec.Questions)
	}

	if err := s.results.Append(r.Context(), rec); err != nil {
		slog.Error("failed to save result", "id", rec.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "storage_error", "failed to save result")
		return
	}
	slog.Info("result saved", "id", rec.ID, "game", rec.Game, "mode", rec.Mode)
	respondJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleClearResults(w http.ResponseWriter, r *http.Request) {
	if err := s.results.Clear(r.Context()); err != nil {
		slog.Error("failed to clear results", "error", err)
		respondError(w, http.StatusInternalServerError, "storage_error", "failed to clear results")
		return
	}
	slog.Info("results cleared")
	respondJSON(w, http.StatusOK, map[string]bool{"cleared": true})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	cfg, ok := s.parseTimeframe(w, r)
	if !ok {
		return
	}
	report, err := stats.BuildReport(r.Context(), s.results, cfg, s.now())
	if err != nil {
		slog.Error("failed to build stats", "error", err)
		respondError(w, http.StatusInternalServerError, "storage_error", "failed to load results")
		return
	}
	characters := report.Characters
	if characters == nil {
		characters = []model.CharacterStat{}
	}
	recent := report.Recent
	if recent == nil {
		recent = []model.ResultRecord{}
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"timeframe":  report.Timeframe,
		"overall":    report.Overall,
		"characters": characters,
		"recent":     recent,
	})
}
