package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/dream-journal-api/config"
	"github.com/oksasatya/dream-journal-api/internal/interface/middleware"
	"github.com/oksasatya/dream-journal-api/pkg/helpers"
	"github.com/oksasatya/dream-journal-api/pkg/validation"
)

type envelope struct {
	Status  int             `json:"status"`
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
}

type api struct {
	t      *testing.T
	engine *gin.Engine
}

func newAPI(t *testing.T) *api {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	cfg := &config.Config{
		Env:               "test",
		APIPrefix:         "/api/v1",
		MetricsEnabled:    true,
		LoginRateLimit:    10,
		RegisterRateLimit: 5,
	}
	reg := prometheus.NewRegistry()

	engine := gin.New()
	engine.Use(middleware.RequestIDMiddleware())
	engine.Use(middleware.HTTPMetrics(middleware.NewMetrics(reg)))

	r := NewRegistry(engine, cfg.APIPrefix)
	BuildModules(r, Deps{
		Config:   cfg,
		JWT:      helpers.NewJWTManager("access-secret", "refresh-secret", time.Hour, 2*time.Hour),
		Hasher:   helpers.NewBcryptHasher(4),
		Repos:    MemoryRepositories(),
		Gatherer: reg,
	})
	r.RegisterAll()
	return &api{t: t, engine: engine}
}

func (a *api) do(method, path, token string, body any, cookies ...*http.Cookie) (*httptest.ResponseRecorder, envelope) {
	a.t.Helper()
	var buf bytes.Buffer
	if s, ok := body.(string); ok {
		buf.WriteString(s)
	} else if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)

	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

type loginData struct {
	User struct {
		ID       string `json:"id"`
		Email    string `json:"email"`
		Password string `json:"password"`
	} `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

func (a *api) registerAndLogin(name, email string) (loginData, *httptest.ResponseRecorder) {
	a.t.Helper()
	w, env := a.do(http.MethodPost, "/api/v1/users/register", "", map[string]any{
		"fullName": name, "email": email, "password": "secret123",
	})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(a.t, "User registered successfully", env.Message)

	w, env = a.do(http.MethodPost, "/api/v1/users/login", "", map[string]any{"email": email, "password": "secret123"})
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())
	var data loginData
	require.NoError(a.t, json.Unmarshal(env.Data, &data))
	return data, w
}

func cookieNamed(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestHealth(t *testing.T) {
	a := newAPI(t)
	w, _ := a.do(http.MethodGet, "/api/v1/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"OK","message":"Server is healthy and running."}`, w.Body.String())
}

func TestRegisterAndLogin(t *testing.T) {
	a := newAPI(t)
	alice, w := a.registerAndLogin("Alice", "Alice@Example.com")

	assert.Equal(t, "alice@example.com", alice.User.Email)
	assert.Empty(t, alice.User.Password)
	assert.NotEmpty(t, alice.AccessToken)
	assert.NotEmpty(t, alice.RefreshToken)
	assert.NotContains(t, w.Body.String(), "password")
	assert.NotContains(t, w.Body.String(), "$2a$")

	access := cookieNamed(w, helpers.AccessTokenCookie)
	require.NotNil(t, access)
	assert.True(t, access.HttpOnly)
	assert.Equal(t, alice.AccessToken, access.Value)
	require.NotNil(t, cookieNamed(w, helpers.RefreshTokenCookie))

	w, env := a.do(http.MethodPost, "/api/v1/users/register", "", map[string]any{
		"fullName": "Again", "email": "ALICE@example.com", "password": "secret123",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "User with this email already exists", env.Message)

	w, env = a.do(http.MethodPost, "/api/v1/users/register", "", map[string]any{"email": "x@example.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Full name, email, and password are required", env.Message)

	w, env = a.do(http.MethodPost, "/api/v1/users/login", "", map[string]any{"email": "alice@example.com", "password": "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid user credentials", env.Message)

	w, env = a.do(http.MethodPost, "/api/v1/users/login", "", map[string]any{"email": "nobody@example.com", "password": "secret123"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User with this email does not exist", env.Message)

	w, _ = a.do(http.MethodPost, "/api/v1/users/login", "", `{"email":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = a.do(http.MethodGet, "/api/v1/users/me", alice.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"stats"`)
}

func TestOwnershipEndToEnd(t *testing.T) {
	a := newAPI(t)
	alice, _ := a.registerAndLogin("Alice", "alice@example.com")
	bob, _ := a.registerAndLogin("Bob", "bob@example.com")

	w, env := a.do(http.MethodPost, "/api/v1/stories", alice.AccessToken, map[string]any{"title": "Flight", "content": "Over the sea"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var story struct {
		ID     string `json:"id"`
		UserID string `json:"userId"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &story))
	assert.Equal(t, alice.User.ID, story.UserID)

	w, env = a.do(http.MethodGet, "/api/v1/stories/"+story.ID, alice.AccessToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	foreign, foreignEnv := a.do(http.MethodGet, "/api/v1/stories/"+story.ID, bob.AccessToken, nil)
	missing, missingEnv := a.do(http.MethodGet, "/api/v1/stories/00000000-0000-4000-8000-000000000000", bob.AccessToken, nil)
	assert.Equal(t, http.StatusNotFound, foreign.Code)
	assert.Equal(t, http.StatusNotFound, missing.Code)
	assert.Equal(t, "Story not found", foreignEnv.Message)
	assert.Equal(t, missingEnv.Message, foreignEnv.Message)

	w, _ = a.do(http.MethodPatch, "/api/v1/stories/"+story.ID, bob.AccessToken, map[string]any{"title": "mine now"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = a.do(http.MethodDelete, "/api/v1/stories/"+story.ID, bob.AccessToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, env = a.do(http.MethodGet, "/api/v1/stories/not-an-id", bob.AccessToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid story ID", env.Message)

	w, env = a.do(http.MethodGet, "/api/v1/stories", bob.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, string(env.Data))

	w, env = a.do(http.MethodGet, "/api/v1/stories/search?q=flight", alice.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), story.ID)
	w, env = a.do(http.MethodGet, "/api/v1/stories/search?q=flight", bob.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, string(env.Data))

	w, env = a.do(http.MethodPatch, "/api/v1/stories/"+story.ID, alice.AccessToken, map[string]any{"rating": 9})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, string(env.Error), "rating")

	w, _ = a.do(http.MethodDelete, "/api/v1/stories/"+story.ID, alice.AccessToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = a.do(http.MethodGet, "/api/v1/stories/"+story.ID, alice.AccessToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestJournalAndGameResultFlow(t *testing.T) {
	a := newAPI(t)
	alice, _ := a.registerAndLogin("Alice", "alice@example.com")
	bob, _ := a.registerAndLogin("Bob", "bob@example.com")

	w, env := a.do(http.MethodGet, "/api/v1/sleep-sessions/latest", alice.AccessToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "No sleep session found for this user", env.Message)

	w, env = a.do(http.MethodPost, "/api/v1/sleep-sessions", alice.AccessToken, map[string]any{
		"date":          "2026-03-01T23:00:00Z",
		"currentStatus": map[string]any{"stage": "REM", "stageDuration": 18},
		"dreamData":     map[string]any{"isDreaming": true, "confidence": 0.9, "emotion": "awe"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var session struct{ ID string }
	require.NoError(t, json.Unmarshal(env.Data, &session))

	w, _ = a.do(http.MethodGet, "/api/v1/sleep-sessions/latest", alice.AccessToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, env = a.do(http.MethodPost, "/api/v1/journal-entries", bob.AccessToken, map[string]any{
		"sleepSessionId": session.ID, "date": "2026-03-02T07:00:00Z",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Associated sleep session not found", env.Message)

	w, env = a.do(http.MethodPost, "/api/v1/journal-entries", alice.AccessToken, map[string]any{
		"sleepSessionId": session.ID, "date": "2026-03-02T07:00:00Z", "themes": []string{"ocean"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var entry struct {
		DreamsCount     int     `json:"dreamsCount"`
		TotalRem        float64 `json:"totalRem"`
		DominantEmotion string  `json:"dominantEmotion"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &entry))
	assert.Equal(t, 1, entry.DreamsCount)
	assert.Equal(t, float64(18), entry.TotalRem)
	assert.Equal(t, "awe", entry.DominantEmotion)

	w, env = a.do(http.MethodPost, "/api/v1/games", alice.AccessToken, map[string]any{
		"title": "Maze", "type": "puzzle_game", "description": "find the door", "difficulty": "medium",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var game struct{ ID string }
	require.NoError(t, json.Unmarshal(env.Data, &game))

	w, _ = a.do(http.MethodPost, "/api/v1/games", alice.AccessToken, map[string]any{
		"title": "Maze", "type": "puzzle_game", "description": "d", "difficulty": "impossible",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	result := map[string]any{"gameId": game.ID, "score": 42, "timeCompleted": 30.5, "wasSuccessful": true}
	w, _ = a.do(http.MethodPost, "/api/v1/game-results", bob.AccessToken, result)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = a.do(http.MethodPost, "/api/v1/game-results", alice.AccessToken, result)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, env = a.do(http.MethodGet, "/api/v1/game-results/game/"+game.ID, alice.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"score":42`)

	w, env = a.do(http.MethodGet, "/api/v1/game-results/game/bad-id", alice.AccessToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid Game ID", env.Message)
}

func TestJournalEntryLinksAreOwnerScoped(t *testing.T) {
	a := newAPI(t)
	alice, _ := a.registerAndLogin("Alice", "alice@example.com")
	bob, _ := a.registerAndLogin("Bob", "bob@example.com")

	w, env := a.do(http.MethodPost, "/api/v1/sleep-sessions", alice.AccessToken, map[string]any{
		"date":          "2026-03-01T23:00:00Z",
		"currentStatus": map[string]any{"stage": "REM", "stageDuration": 12},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var session struct{ ID string }
	require.NoError(t, json.Unmarshal(env.Data, &session))

	w, env = a.do(http.MethodPost, "/api/v1/journal-entries", alice.AccessToken, map[string]any{
		"sleepSessionId": session.ID, "date": "2026-03-02T07:00:00Z",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var entry struct{ ID string }
	require.NoError(t, json.Unmarshal(env.Data, &entry))

	bodies := map[string]func(id string) map[string]any{
		"/api/v1/stories": func(id string) map[string]any {
			return map[string]any{"title": "Borrowed", "content": "not mine", "journalEntryId": id}
		},
		"/api/v1/games": func(id string) map[string]any {
			return map[string]any{"title": "Borrowed", "type": "puzzle_game", "description": "d", "difficulty": "easy", "journalEntryId": id}
		},
	}
	for path, body := range bodies {
		foreign, foreignEnv := a.do(http.MethodPost, path, bob.AccessToken, body(entry.ID))
		missing, missingEnv := a.do(http.MethodPost, path, bob.AccessToken, body("00000000-0000-4000-8000-000000000000"))
		assert.Equal(t, http.StatusNotFound, foreign.Code, path)
		assert.Equal(t, http.StatusNotFound, missing.Code, path)
		assert.Equal(t, "Journal entry not found", foreignEnv.Message, path)
		assert.Equal(t, missingEnv.Message, foreignEnv.Message, path)

		w, env = a.do(http.MethodGet, path, bob.AccessToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, string(env.Data), path)

		w, env = a.do(http.MethodPost, path, alice.AccessToken, body(entry.ID))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.Contains(t, string(env.Data), `"journalEntryId":"`+entry.ID+`"`, path)
	}
}

func TestAuthGuardAndLogout(t *testing.T) {
	a := newAPI(t)
	alice, login := a.registerAndLogin("Alice", "alice@example.com")

	for _, path := range []string{"/api/v1/stories", "/api/v1/games", "/api/v1/sleep-sessions", "/api/v1/journal-entries", "/api/v1/game-results", "/api/v1/users/me"} {
		w, env := a.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
		assert.Equal(t, "Unauthorized request", env.Message)
	}
	w, env := a.do(http.MethodGet, "/api/v1/stories", alice.RefreshToken, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid access token", env.Message)

	w, _ = a.do(http.MethodPost, "/api/v1/users/logout", "", nil, cookieNamed(login, helpers.AccessTokenCookie))
	require.Equal(t, http.StatusOK, w.Code)
	cleared := cookieNamed(w, helpers.AccessTokenCookie)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.True(t, cleared.MaxAge < 0)

	w, _ = a.do(http.MethodPost, "/api/v1/users/logout", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	a := newAPI(t)
	a.do(http.MethodGet, "/api/v1/health", "", nil)

	w, _ := a.do(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), `dreamjournal_http_requests_total{method="GET",path="/api/v1/health",status="200"} 1`))
}
