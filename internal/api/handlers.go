package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/verte-zerg/kanadrill/internal/generator"
	"github.com/verte-zerg/kanadrill/internal/kana"
	"github.com/verte-zerg/kanadrill/internal/model"
	"github.com/verte-zerg/kanadrill/internal/session"
)

type apiResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *apiError `json:"error,omitempty"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{
		Success: status >= 200 && status < 300,
		Data:    data,
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{
		Success: false,
		Error:   &apiError{Code: code, Message: message},
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

// validationMessage flattens validator errors into one line.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s must satisfy %s=%s", fe.Namespace(), fe.Tag(), fe.Param()))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   s.now().UTC().Format(time.RFC3339),
	})
}

type characterQuery struct {
	Set string `validate:"omitempty,oneof=basic dakuon all"`
}

func (s *Server) handleListCharacters(w http.ResponseWriter, r *http.Request) {
	q := characterQuery{Set: r.URL.Query().Get("set")}
	if err := s.validate.Struct(q); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", validationMessage(err))
		return
	}
	set := model.CharacterSet(q.Set)
	if set == "" {
		set = model.SetBasic
	}
	chars := kana.ForSet(set)
	respondJSON(w, http.StatusOK, map[string]any{
		"set":        set,
		"characters": chars,
		"total":      len(chars),
	})
}

type quizQuery struct {
	Set     string `validate:"omitempty,oneof=basic dakuon all custom"`
	Mode    string `validate:"omitempty,oneof=hiragana katakana both"`
	Basic   int    `validate:"gte=0"`
	Dakuon  int    `validate:"gte=0"`
	Options int    `validate:"omitempty,gte=2,lte=10"`
}

func intParam(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return v, nil
}

func (s *Server) handleQuiz(w http.ResponseWriter, r *http.Request) {
	q := quizQuery{
		Set:  r.URL.Query().Get("set"),
		Mode: r.URL.Query().Get("mode"),
	}
	var err error
	for name, dst := range map[string]*int{"basic": &q.Basic, "dakuon": &q.Dakuon, "options": &q.Options} {
		if *dst, err = intParam(r, name); err != nil {
			respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
			return
		}
	}
	if err := s.validate.Struct(q); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", validationMessage(err))
		return
	}
	if q.Set == "" {
		q.Set = string(model.SetBasic)
	}
	if q.Mode == "" {
		q.Mode = string(model.ModeHiragana)
	}

	sel := model.Selection{
		Set:         model.CharacterSet(q.Set),
		BasicCount:  q.Basic,
		DakuonCount: q.Dakuon,
	}
	s.genMu.Lock()
	questions, err := session.BuildQuiz(s.gen, sel, model.Mode(q.Mode), q.Options)
	s.genMu.Unlock()
	if err != nil {
		if errors.Is(err, generator.ErrBelowMinimum) {
			respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
			return
		}
		slog.Error("failed to build quiz", "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to build quiz")
		return
	}

	type questionView struct {
		session.QuizQuestion
		Prompt string `json:"prompt"`
	}
	views := make([]questionView, 0, len(questions))
	for _, question := range questions {
		views = append(views, questionView{QuizQuestion: question, Prompt: question.Prompt()})
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"mode":      q.Mode,
		"set":       q.Set,
		"questions": views,
		"total":     len(views),
	})
}
