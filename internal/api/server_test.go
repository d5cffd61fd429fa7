package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/kanadrill/internal/generator"
	"github.com/verte-zerg/kanadrill/internal/model"
	"github.com/verte-zerg/kanadrill/internal/store"
)

var testNow = time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *apiError       `json:"error"`
}

type brokenStore struct{}

func (brokenStore) Append(context.Context, model.ResultRecord) error { return errors.New("down") }
func (brokenStore) List(context.Context) ([]model.ResultRecord, error) {
	return nil, errors.New("down")
}
func (brokenStore) Clear(context.Context) error { return errors.New("down") }

func newTestServer(t *testing.T, results ResultStore) *Server {
	t.Helper()
	s := NewServer(Config{AllowedOrigins: []string{"http://app.test"}}, results, generator.NewSeeded(1))
	s.now = func() time.Time { return testNow }
	return s
}

func do(t *testing.T, s *Server, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rr := httptest.NewRecorder()
	s.Router().ServeHTTP(rr, req)
	var env envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env), rr.Body.String())
	return rr, env
}

func TestHealth(t *testing.T) {
	rr, env := do(t, newTestServer(t, store.NewResultLog(store.NewMemory())), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, env.Success)
	assert.Contains(t, string(env.Data), "healthy")
}

func TestListCharacters(t *testing.T) {
	s := newTestServer(t, store.NewResultLog(store.NewMemory()))

	rr, env := do(t, s, http.MethodGet, "/api/v1/characters?set=dakuon", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var data struct {
		Characters []model.Character `json:"characters"`
		Total      int               `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, 25, data.Total)
	assert.Len(t, data.Characters, 25)

	rr, env = do(t, s, http.MethodGet, "/api/v1/characters?set=kanji", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "invalid_request", env.Error.Code)
}

func TestQuiz(t *testing.T) {
	s := newTestServer(t, store.NewResultLog(store.NewMemory()))

	rr, env := do(t, s, http.MethodGet, "/api/v1/quiz?set=custom&basic=4&dakuon=2&mode=katakana&options=4", "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var data struct {
		Questions []struct {
			Character model.Character `json:"character"`
			Options   []string        `json:"options"`
			Prompt    string          `json:"prompt"`
		} `json:"questions"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Len(t, data.Questions, 6)
	for _, q := range data.Questions {
		assert.Equal(t, q.Character.Katakana, q.Prompt)
		assert.Len(t, q.Options, 4)
		assert.Contains(t, q.Options, q.Character.Romaji)
	}
}

func TestQuizValidation(t *testing.T) {
	s := newTestServer(t, store.NewResultLog(store.NewMemory()))
	for _, target := range []string{
		"/api/v1/quiz?set=custom&basic=1&dakuon=1",
		"/api/v1/quiz?mode=romaji-hiragana",
		"/api/v1/quiz?basic=lots",
		"/api/v1/quiz?basic=-1",
	} {
		rr, env := do(t, s, http.MethodGet, target, "")
		assert.Equal(t, http.StatusBadRequest, rr.Code, target)
		require.NotNil(t, env.Error, target)
		assert.Equal(t, "invalid_request", env.Error.Code, target)
	}
}

const validResult = `{
	"mode": "hiragana",
	"characterSet": "basic",
	"correctAnswers": 1,
	"wrongAnswers": 1,
	"questions": [
		{"character": "あ", "correct": true, "userAnswer": "a", "correctAnswer": "a"},
		{"character": "い", "correct": false, "userAnswer": "e", "correctAnswer": "i"}
	]
}`

func TestCreateListAndClearResults(t *testing.T) {
	s := newTestServer(t, store.NewResultLog(store.NewMemory()))

	rr, env := do(t, s, http.MethodPost, "/api/v1/results", validResult)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var created model.ResultRecord
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.NotEmpty(t, created.ID)
	assert.True(t, created.Timestamp.Equal(testNow))
	assert.Equal(t, 2, created.TotalQuestions)

	rr, env = do(t, s, http.MethodGet, "/api/v1/results?timeframe=week", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var listed struct {
		Results []model.ResultRecord `json:"results"`
		Total   int                  `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &listed))
	assert.Equal(t, 1, listed.Total)
	assert.Equal(t, created.ID, listed.Results[0].ID)

	rr, env = do(t, s, http.MethodGet, "/api/v1/stats", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var st struct {
		Overall    model.Overall         `json:"overall"`
		Characters []model.CharacterStat `json:"characters"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &st))
	assert.Equal(t, 1, st.Overall.TotalSessions)
	assert.InDelta(t, 50.0, st.Overall.AverageAccuracy, 1e-9)
	assert.Len(t, st.Characters, 2)

	rr, _ = do(t, s, http.MethodDelete, "/api/v1/results", "")
	require.Equal(t, http.StatusOK, rr.Code)
	_, env = do(t, s, http.MethodGet, "/api/v1/results", "")
	require.NoError(t, json.Unmarshal(env.Data, &listed))
	assert.Equal(t, 0, listed.Total)
	assert.NotNil(t, listed.Results)
}

func TestCreateResultValidation(t *testing.T) {
	s := newTestServer(t, store.NewResultLog(store.NewMemory()))
	for _, body := range []string{
		`not json`,
		`{"mode": "klingon", "characterSet": "basic", "questions": []}`,
		`{"mode": "hiragana", "characterSet": "basic", "correctAnswers": -1, "questions": []}`,
		`{"mode": "hiragana", "characterSet": "basic", "questions": [{"character": "", "correctAnswer": "a"}]}`,
	} {
		rr, env := do(t, s, http.MethodPost, "/api/v1/results", body)
		assert.Equal(t, http.StatusBadRequest, rr.Code, body)
		require.NotNil(t, env.Error, body)
		assert.Equal(t, "invalid_request", env.Error.Code, body)
	}
}

func TestTimeframeValidation(t *testing.T) {
	s := newTestServer(t, store.NewResultLog(store.NewMemory()))
	rr, _ := do(t, s, http.MethodGet, "/api/v1/stats?timeframe=year", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestStorageErrors(t *testing.T) {
	s := newTestServer(t, brokenStore{})
	for _, tc := range []struct{ method, target, body string }{
		{http.MethodGet, "/api/v1/results", ""},
		{http.MethodPost, "/api/v1/results", validResult},
		{http.MethodDelete, "/api/v1/results", ""},
		{http.MethodGet, "/api/v1/stats", ""},
	} {
		rr, env := do(t, s, tc.method, tc.target, tc.body)
		assert.Equal(t, http.StatusInternalServerError, rr.Code, tc.target)
		require.NotNil(t, env.Error)
		assert.Equal(t, "storage_error", env.Error.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, store.NewResultLog(store.NewMemory()))
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/results", nil)
	req.Header.Set("Origin", "http://app.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	s.Router().ServeHTTP(rr, req)
	assert.Equal(t, "http://app.test", rr.Header().Get("Access-Control-Allow-Origin"))
}
