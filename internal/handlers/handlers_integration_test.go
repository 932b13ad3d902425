package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"bjjtracker/internal/database"
	"bjjtracker/internal/server"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

// setupApp builds the full application over a private in-memory SQLite database.
func setupApp(t *testing.T) *fiber.App {
	t.Helper()
	db, err := database.OpenGORM("sqlite", "file:"+uuid.New().String()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	store := database.NewGORMStore(db)
	t.Cleanup(func() { _ = store.Close() })

	return server.NewApp(server.Options{
		Store:      store,
		JWTSecret:  "test_jwt_secret",
		TokenTTL:   time.Hour,
		Location:   time.UTC,
		DateLayout: "02/01/2006",
		Now:        func() time.Time { return testNow },
	})
}

// TestMain runs setup and teardown for all tests
func TestMain(m *testing.M) {
	// Suppress logging during tests for cleaner output
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

// call sends a JSON request and returns the status and raw body.
func call(t *testing.T, app *fiber.App, method, path, token string, body any) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1) // -1 for no timeout
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

func register(t *testing.T, app *fiber.App, email string) string {
	t.Helper()
	status, raw := call(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    email,
		"password": "password123",
		"name":     "Test User",
	})
	require.Equal(t, http.StatusCreated, status, string(raw))
	return decode[map[string]any](t, raw)["token"].(string)
}

func TestAuthRegisterAndLogin(t *testing.T) {
	app := setupApp(t)

	body := map[string]string{"email": "test@example.com", "password": "password123", "name": "Rickson"}
	status, raw := call(t, app, http.MethodPost, "/api/auth/register", "", body)
	require.Equal(t, http.StatusCreated, status, string(raw))

	registerResp := decode[map[string]any](t, raw)
	assert.NotEmpty(t, registerResp["id"])
	assert.NotEmpty(t, registerResp["token"])
	assert.Equal(t, "test@example.com", registerResp["email"])
	assert.NotContains(t, registerResp, "password")
	profile := registerResp["profile"].(map[string]any)
	assert.Equal(t, "white", profile["belt"])
	assert.Equal(t, float64(0), profile["stripes"])

	// Duplicate registration
	status, raw = call(t, app, http.MethodPost, "/api/auth/register", "", body)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "User already exists", decode[map[string]any](t, raw)["message"])

	// Invalid registration
	status, raw = call(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{"email": "nope", "password": "1"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, decode[map[string]any](t, raw), "errors")

	// Login
	status, raw = call(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "TEST@example.com", "password": "password123",
	})
	require.Equal(t, http.StatusOK, status, string(raw))
	loginResp := decode[map[string]any](t, raw)
	assert.Equal(t, registerResp["id"], loginResp["id"])
	token := loginResp["token"].(string)
	assert.NotEmpty(t, token)

	status, _ = call(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "test@example.com", "password": "wrongpassword",
	})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, raw = call(t, app, http.MethodGet, "/api/users/profile", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Rickson", decode[map[string]any](t, raw)["profile"].(map[string]any)["name"])
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app := setupApp(t)

	status, raw := call(t, app, http.MethodGet, "/api/trainings", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Not authorized, no token", decode[map[string]any](t, raw)["message"])

	status, _ = call(t, app, http.MethodGet, "/api/stats/overview", "invalid.token.string", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	req := httptest.NewRequest(http.MethodGet, "/api/techniques", nil)
	req.Header.Set("Authorization", "Token abc")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestProfileUpdate(t *testing.T) {
	app := setupApp(t)
	token := register(t, app, "profile@example.com")

	status, raw := call(t, app, http.MethodPut, "/api/users/profile", token, map[string]any{
		"profile": map[string]any{"belt": "purple", "stripes": 2, "academy": "Alliance"},
	})
	require.Equal(t, http.StatusOK, status, string(raw))
	profile := decode[map[string]any](t, raw)["profile"].(map[string]any)
	assert.Equal(t, "purple", profile["belt"])
	assert.Equal(t, "Test User", profile["name"])

	status, _ = call(t, app, http.MethodPut, "/api/users/profile", token, map[string]any{
		"profile": map[string]any{"belt": "green"},
	})
	assert.Equal(t, http.StatusBadRequest, status)

	status, raw = call(t, app, http.MethodGet, "/api/stats/belt-progression", token, nil)
	require.Equal(t, http.StatusOK, status)
	bp := decode[map[string]any](t, raw)
	assert.Equal(t, "purple", bp["currentBelt"])
	assert.Len(t, bp["progression"], 3)
}

func TestTrainingCRUDAndOwnership(t *testing.T) {
	app := setupApp(t)
	alice := register(t, app, "alice@example.com")
	bob := register(t, app, "bob@example.com")

	status, raw := call(t, app, http.MethodPost, "/api/trainings", alice, map[string]any{
		"date":     "2024-03-01",
		"duration": 90,
		"type":     "gi",
		"notes":    "armbar drills",
		"partners": []string{"Bob"},
	})
	require.Equal(t, http.StatusCreated, status, string(raw))
	created := decode[map[string]any](t, raw)
	id := created["id"].(string)
	assert.Equal(t, "2024-03-01T00:00:00Z", created["date"])
	assert.Equal(t, float64(5), created["physicalFeeling"])

	status, raw = call(t, app, http.MethodGet, "/api/trainings", alice, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]map[string]any](t, raw), 1)

	// Another user sees nothing and can touch nothing
	status, raw = call(t, app, http.MethodGet, "/api/trainings", bob, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, decode[[]map[string]any](t, raw))

	status, _ = call(t, app, http.MethodGet, "/api/trainings/"+id, bob, nil)
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = call(t, app, http.MethodPut, "/api/trainings/"+id, bob, map[string]any{"duration": 1})
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = call(t, app, http.MethodDelete, "/api/trainings/"+id, bob, nil)
	assert.Equal(t, http.StatusNotFound, status)

	// Partial update keeps untouched fields
	status, raw = call(t, app, http.MethodPut, "/api/trainings/"+id, alice, map[string]any{"duration": 45})
	require.Equal(t, http.StatusOK, status, string(raw))
	updated := decode[map[string]any](t, raw)
	assert.Equal(t, float64(45), updated["duration"])
	assert.Equal(t, "armbar drills", updated["notes"])

	status, raw = call(t, app, http.MethodGet, "/api/trainings/"+id, alice, nil)
	require.Equal(t, http.StatusOK, status)
	fetched := decode[map[string]any](t, raw)
	assert.Equal(t, float64(45), fetched["duration"])
	assert.Equal(t, []any{"Bob"}, fetched["partners"])

	status, raw = call(t, app, http.MethodDelete, "/api/trainings/"+id, alice, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Training removed", decode[map[string]any](t, raw)["message"])

	status, _ = call(t, app, http.MethodGet, "/api/trainings/"+id, alice, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestTrainingValidationAndSummary(t *testing.T) {
	app := setupApp(t)
	token := register(t, app, "summary@example.com")

	status, raw := call(t, app, http.MethodPost, "/api/trainings", token, map[string]any{"duration": 0, "type": "gi"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, decode[map[string]any](t, raw)["errors"], "duration")

	for _, body := range []map[string]any{
		{"duration": 60, "type": "gi", "mentalFeeling": 8},
		{"duration": 30, "type": "no-gi", "submissionsGiven": 2},
	} {
		status, raw = call(t, app, http.MethodPost, "/api/trainings", token, body)
		require.Equal(t, http.StatusCreated, status, string(raw))
	}

	// /stats is not captured by /:id
	status, raw = call(t, app, http.MethodGet, "/api/trainings/stats", token, nil)
	require.Equal(t, http.StatusOK, status, string(raw))
	summary := decode[map[string]any](t, raw)
	assert.Equal(t, float64(2), summary["totalSessions"])
	assert.Equal(t, float64(90), summary["totalDuration"])
	assert.Equal(t, 6.5, summary["averageMentalFeeling"])
}

func TestTechniqueSearchAndSuccessRate(t *testing.T) {
	app := setupApp(t)
	token := register(t, app, "tech@example.com")

	for _, body := range []map[string]any{
		{"name": "Armbar", "category": "submission", "masteryLevel": 4, "successCount": 3, "attemptCount": 4},
		{"name": "Kimura", "category": "submission", "masteryLevel": 2, "tags": []string{"arm lock"}},
		{"name": "Scissor sweep", "category": "sweep", "masteryLevel": 3},
	} {
		status, raw := call(t, app, http.MethodPost, "/api/techniques", token, body)
		require.Equal(t, http.StatusCreated, status, string(raw))
	}

	status, raw := call(t, app, http.MethodGet, "/api/techniques?search=ARM", token, nil)
	require.Equal(t, http.StatusOK, status)
	found := decode[[]map[string]any](t, raw)
	require.Len(t, found, 2)
	assert.Equal(t, "Armbar", found[0]["name"])
	assert.Equal(t, float64(75), found[0]["successRate"])
	assert.Equal(t, "Kimura", found[1]["name"])

	status, raw = call(t, app, http.MethodGet, "/api/techniques?category=sweep", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]map[string]any](t, raw), 1)

	status, raw = call(t, app, http.MethodGet, "/api/stats/technique-categories", token, nil)
	require.Equal(t, http.StatusOK, status)
	categories := decode[map[string]any](t, raw)
	assert.Equal(t, []any{"Soumission", "Balayage"}, categories["labels"])
	assert.Equal(t, []any{float64(2), float64(1)}, categories["data"])

	status, raw = call(t, app, http.MethodGet, "/api/stats/techniques-mastery", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []any{float64(0), float64(1), float64(1), float64(1), float64(0)}, decode[map[string]any](t, raw)["data"])
}

func TestCompetitionTypeAndFilter(t *testing.T) {
	app := setupApp(t)
	token := register(t, app, "comp@example.com")

	status, raw := call(t, app, http.MethodPost, "/api/competitions", token, map[string]any{
		"name": "Pans", "date": "2024-01-10", "result": "gold",
	})
	require.Equal(t, http.StatusCreated, status, string(raw))
	assert.Equal(t, "past", decode[map[string]any](t, raw)["type"])

	status, raw = call(t, app, http.MethodPost, "/api/competitions", token, map[string]any{
		"name": "Worlds", "date": "2024-06-01", "type": "past",
	})
	require.Equal(t, http.StatusCreated, status, string(raw))
	upcoming := decode[map[string]any](t, raw)
	assert.Equal(t, "upcoming", upcoming["type"])
	assert.Equal(t, "pending", upcoming["result"])

	status, raw = call(t, app, http.MethodGet, "/api/competitions?type=upcoming", token, nil)
	require.Equal(t, http.StatusOK, status)
	list := decode[[]map[string]any](t, raw)
	require.Len(t, list, 1)
	assert.Equal(t, "Worlds", list[0]["name"])

	status, _ = call(t, app, http.MethodGet, "/api/competitions?type=someday", token, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, raw = call(t, app, http.MethodGet, "/api/stats/competition-performance", token, nil)
	require.Equal(t, http.StatusOK, status)
	perf := decode[map[string]any](t, raw)
	assert.Equal(t, []any{"Or", "Argent", "Bronze", "Participation"}, perf["labels"])
	assert.Equal(t, []any{float64(1), float64(0), float64(0), float64(0)}, perf["data"])
}

func TestStatsOverviewAndFrequency(t *testing.T) {
	app := setupApp(t)
	token := register(t, app, "stats@example.com")

	// Empty account
	status, raw := call(t, app, http.MethodGet, "/api/stats/overview", token, nil)
	require.Equal(t, http.StatusOK, status)
	overview := decode[map[string]any](t, raw)
	assert.Equal(t, float64(0), overview["trainings"].(map[string]any)["total"])
	assert.Equal(t, float64(0), overview["techniques"].(map[string]any)["avgMastery"])

	for _, date := range []string{"2024-01-01", "2024-03-01", "2024-03-10T09:00:00Z", "2024-03-10T19:00:00Z"} {
		status, raw = call(t, app, http.MethodPost, "/api/trainings", token, map[string]any{
			"date": date, "duration": 45, "type": "gi",
		})
		require.Equal(t, http.StatusCreated, status, string(raw))
	}

	status, raw = call(t, app, http.MethodGet, "/api/stats/overview", token, nil)
	require.Equal(t, http.StatusOK, status)
	trainings := decode[map[string]any](t, raw)["trainings"].(map[string]any)
	assert.Equal(t, float64(4), trainings["total"])
	assert.Equal(t, float64(3), trainings["totalHours"])

	status, raw = call(t, app, http.MethodGet, "/api/stats/training-frequency", token, nil)
	require.Equal(t, http.StatusOK, status)
	freq := decode[map[string]any](t, raw)
	assert.Equal(t, []any{"01/03/2024", "10/03/2024"}, freq["labels"])
	assert.Equal(t, []any{float64(1), float64(2)}, freq["data"])

	status, raw = call(t, app, http.MethodGet, "/api/stats/training-frequency?period=7", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []any{"10/03/2024"}, decode[map[string]any](t, raw)["labels"])

	for _, period := range []string{"abc", "0", "-5"} {
		status, _ = call(t, app, http.MethodGet, "/api/stats/training-frequency?period="+period, token, nil)
		assert.Equal(t, http.StatusBadRequest, status, period)
	}
}

func TestHealthAndUnknownRoute(t *testing.T) {
	app := setupApp(t)

	status, raw := call(t, app, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "healthy", decode[map[string]any](t, raw)["status"])

	status, _ = call(t, app, http.MethodGet, "/nowhere", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
}
