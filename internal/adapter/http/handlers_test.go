package adapthttp_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	adapthttp "fitplan/internal/adapter/http"
	"fitplan/internal/adapter/memory"
	"fitplan/internal/app"
	"fitplan/internal/domain"
	"fitplan/internal/metrics"
)

// ---------------------------------------------------------------------------
// Test-server helper
// ---------------------------------------------------------------------------

type testEnv struct {
	ts     *httptest.Server
	db     *memory.DB
	client *http.Client
}

func newTestServer(t *testing.T, opts ...func(*adapthttp.Server)) *testEnv {
	t.Helper()

	db := memory.New()
	m, reg := metrics.NewTestManagerAndRegistry()

	srv := adapthttp.New(adapthttp.Services{
		Auth:     app.NewAuthService(db, db.NewSessionRepo(), db),
		Profiles: app.NewProfileService(db),
		Plans:    app.NewPlanService(db, db, m),
		Progress: app.NewProgressService(db, db),
	}, m, reg)
	for _, opt := range opts {
		opt(srv)
	}

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	return &testEnv{ts: ts, db: db, client: &http.Client{Jar: jar}}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, e.ts.URL+path, r)
	if err != nil {
		t.Fatal(err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := e.client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

// register signs up a user; the session cookie lands in the client jar.
func (e *testEnv) register(t *testing.T, email string) map[string]any {
	t.Helper()
	resp := e.do(t, http.MethodPost, "/api/auth/register", map[string]string{
		"email": email, "password": "secret123", "name": "Alex",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d", resp.StatusCode)
	}
	return decodeBody(t, resp)
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	return m
}

func decodePlans(t *testing.T, resp *http.Response) []domain.DailyPlan {
	t.Helper()
	var plans []domain.DailyPlan
	if err := json.NewDecoder(resp.Body).Decode(&plans); err != nil {
		t.Fatalf("failed to decode plans: %v", err)
	}
	return plans
}

func decodePlan(t *testing.T, resp *http.Response) domain.DailyPlan {
	t.Helper()
	var plan domain.DailyPlan
	if err := json.NewDecoder(resp.Body).Decode(&plan); err != nil {
		t.Fatalf("failed to decode plan: %v", err)
	}
	return plan
}

func expectStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		b, _ := io.ReadAll(resp.Body)
		t.Fatalf("%s %s: expected %d, got %d: %s", resp.Request.Method, resp.Request.URL.Path, want, resp.StatusCode, b)
	}
}

// ---------------------------------------------------------------------------
// Public endpoints
// ---------------------------------------------------------------------------

func TestHealthEndpoint(t *testing.T) {
	env := newTestServer(t)

	resp := env.do(t, http.MethodGet, "/api/health", nil)
	expectStatus(t, resp, http.StatusOK)

	body := decodeBody(t, resp)
	if body["status"] != "ok" {
		t.Fatalf("expected status=ok, got %v", body["status"])
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Fatal("expected a request id header")
	}
	if resp.Header.Get("Cache-Control") != "no-store" {
		t.Fatalf("expected no-store, got %q", resp.Header.Get("Cache-Control"))
	}
}

func TestConfigEndpoint(t *testing.T) {
	env := newTestServer(t)

	resp := env.do(t, http.MethodGet, "/api/config", nil)
	expectStatus(t, resp, http.StatusOK)
	if body := decodeBody(t, resp); body["sso_enabled"] != false {
		t.Fatalf("expected sso disabled, got %v", body["sso_enabled"])
	}

	expectStatus(t, env.do(t, http.MethodGet, "/api/auth/sso/login", nil), http.StatusNotFound)
}

// ---------------------------------------------------------------------------
// Auth
// ---------------------------------------------------------------------------

func TestRegisterLoginLogout(t *testing.T) {
	env := newTestServer(t)

	body := env.register(t, "Alex@Example.com")
	user, _ := body["user"].(map[string]any)
	if user["email"] != "alex@example.com" {
		t.Fatalf("expected normalized email, got %v", user["email"])
	}
	if _, ok := user["password_hash"]; ok {
		t.Fatal("password hash must not be serialized")
	}
	if body["token"] == "" {
		t.Fatal("expected a session token")
	}

	resp := env.do(t, http.MethodGet, "/api/auth/me", nil)
	expectStatus(t, resp, http.StatusOK)
	if me := decodeBody(t, resp); me["email"] != "alex@example.com" {
		t.Fatalf("unexpected user: %v", me)
	}

	expectStatus(t, env.do(t, http.MethodPost, "/api/auth/logout", nil), http.StatusOK)
	expectStatus(t, env.do(t, http.MethodGet, "/api/profile", nil), http.StatusUnauthorized)

	resp = env.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email": "alex@example.com", "password": "secret123",
	})
	expectStatus(t, resp, http.StatusOK)
	expectStatus(t, env.do(t, http.MethodGet, "/api/profile", nil), http.StatusOK)
}

func TestRegister_Errors(t *testing.T) {
	env := newTestServer(t)
	env.register(t, "alex@example.com")

	tests := []struct {
		name string
		body any
		want int
	}{
		{"duplicate", map[string]string{"email": "alex@example.com", "password": "secret123", "name": "A"}, http.StatusConflict},
		{"short password", map[string]string{"email": "b@example.com", "password": "123", "name": "B"}, http.StatusBadRequest},
		{"bad email", map[string]string{"email": "nope", "password": "secret123", "name": "B"}, http.StatusBadRequest},
		{"unknown field", map[string]string{"email": "c@example.com", "password": "secret123", "name": "C", "admin": "yes"}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectStatus(t, env.do(t, http.MethodPost, "/api/auth/register", tt.body), tt.want)
		})
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	env := newTestServer(t)
	env.register(t, "alex@example.com")

	resp := env.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email": "alex@example.com", "password": "wrong-password",
	})
	expectStatus(t, resp, http.StatusUnauthorized)
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	env := newTestServer(t)

	for _, path := range []string{"/api/profile", "/api/plans", "/api/plans/Monday", "/api/progress", "/api/progress/stats"} {
		expectStatus(t, env.do(t, http.MethodGet, path, nil), http.StatusUnauthorized)
	}
}

func TestBearerToken(t *testing.T) {
	env := newTestServer(t)
	token, _ := env.register(t, "alex@example.com")["token"].(string)

	req, err := http.NewRequest(http.MethodGet, env.ts.URL+"/api/profile", nil)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close() //nolint:errcheck
	expectStatus(t, resp, http.StatusOK)
}

func TestForwardAuth(t *testing.T) {
	trusted := newTestServer(t, func(s *adapthttp.Server) { s.WithForwardAuth() })
	untrusted := newTestServer(t)

	send := func(env *testEnv) *http.Response {
		req, err := http.NewRequest(http.MethodGet, env.ts.URL+"/api/profile", nil)
		if err != nil {
			t.Fatal(err)
		}
		req.Header.Set("Remote-User", "proxy@example.com")
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() { _ = resp.Body.Close() })
		return resp
	}

	resp := send(trusted)
	expectStatus(t, resp, http.StatusOK)
	if body := decodeBody(t, resp); body["goal"] != "maintenance" {
		t.Fatalf("expected provisioned maintenance profile, got %v", body)
	}

	expectStatus(t, send(untrusted), http.StatusUnauthorized)
}

// ---------------------------------------------------------------------------
// Plans
// ---------------------------------------------------------------------------

func TestListPlans_GeneratesWeek(t *testing.T) {
	env := newTestServer(t)
	env.register(t, "alex@example.com")

	resp := env.do(t, http.MethodGet, "/api/plans", nil)
	expectStatus(t, resp, http.StatusOK)
	plans := decodePlans(t, resp)

	if len(plans) != 7 {
		t.Fatalf("expected 7 plans, got %d", len(plans))
	}
	for i, p := range plans {
		if p.Day != domain.Weekdays[i] {
			t.Fatalf("plan %d: expected %s, got %s", i, domain.Weekdays[i], p.Day)
		}
	}
	if plans[0].Exercises[0].ID != "e1" {
		t.Fatalf("expected monday to start with e1, got %s", plans[0].Exercises[0].ID)
	}
	if plans[3].Exercises[0].ID != "e13" || plans[6].Exercises[0].ID != "e22" {
		t.Fatal("expected rest days on thursday and sunday")
	}

	// A second list returns the stored week instead of a new one.
	again := decodePlans(t, env.do(t, http.MethodGet, "/api/plans", nil))
	if again[0].ID != plans[0].ID {
		t.Fatalf("expected stored plans to be reused, got ids %d and %d", plans[0].ID, again[0].ID)
	}
}

func TestGetPlan(t *testing.T) {
	env := newTestServer(t)
	env.register(t, "alex@example.com")
	env.do(t, http.MethodGet, "/api/plans", nil)

	resp := env.do(t, http.MethodGet, "/api/plans/wednesday", nil)
	expectStatus(t, resp, http.StatusOK)
	if plan := decodePlan(t, resp); plan.Day != "Wednesday" || plan.Exercises[0].ID != "e9" {
		t.Fatalf("unexpected plan: %s %v", plan.Day, plan.Exercises)
	}

	expectStatus(t, env.do(t, http.MethodGet, "/api/plans/Funday", nil), http.StatusNotFound)
}

func TestToggleExercise(t *testing.T) {
	env := newTestServer(t)
	env.register(t, "alex@example.com")
	env.do(t, http.MethodGet, "/api/plans", nil)

	resp := env.do(t, http.MethodPost, "/api/plans/Monday/exercises/e1/toggle", nil)
	expectStatus(t, resp, http.StatusOK)
	plan := decodePlan(t, resp)
	if !plan.Exercises[0].Completed || !slices.Contains(plan.CompletedStatus.Exercises, "e1") {
		t.Fatalf("expected e1 completed in both representations, got %+v", plan.CompletedStatus)
	}
	for _, e := range plan.Exercises[1:] {
		if e.Completed {
			t.Fatalf("expected %s untouched", e.ID)
		}
	}

	plan = decodePlan(t, env.do(t, http.MethodPost, "/api/plans/Monday/exercises/e1/toggle", nil))
	if plan.Exercises[0].Completed || slices.Contains(plan.CompletedStatus.Exercises, "e1") {
		t.Fatal("expected second toggle to clear e1")
	}
}

func TestToggleMeal(t *testing.T) {
	env := newTestServer(t)
	env.register(t, "alex@example.com")
	plans := decodePlans(t, env.do(t, http.MethodGet, "/api/plans", nil))
	mealID := plans[1].Meals[0].ID

	resp := env.do(t, http.MethodPost, "/api/plans/Tuesday/meals/"+mealID+"/toggle", nil)
	expectStatus(t, resp, http.StatusOK)
	plan := decodePlan(t, resp)
	if !plan.Meals[0].Consumed || !slices.Contains(plan.CompletedStatus.Meals, mealID) {
		t.Fatalf("expected %s consumed, got %+v", mealID, plan.CompletedStatus)
	}

	monday := decodePlan(t, env.do(t, http.MethodGet, "/api/plans/Monday", nil))
	if len(monday.CompletedStatus.Meals) != 0 {
		t.Fatal("expected other days untouched")
	}

	expectStatus(t, env.do(t, http.MethodPost, "/api/plans/Funday/meals/"+mealID+"/toggle", nil), http.StatusNotFound)
}

func TestUpdatePlan(t *testing.T) {
	env := newTestServer(t)
	env.register(t, "alex@example.com")
	monday := decodePlans(t, env.do(t, http.MethodGet, "/api/plans", nil))[0]

	expectStatus(t, env.do(t, http.MethodPut, "/api/plans/Monday", map[string]any{
		"exercises": monday.Exercises,
	}), http.StatusBadRequest)

	dup := append([]domain.Exercise{}, monday.Exercises...)
	dup[1].ID = dup[0].ID
	expectStatus(t, env.do(t, http.MethodPut, "/api/plans/Monday", map[string]any{
		"exercises": dup,
		"meals":     monday.Meals,
	}), http.StatusBadRequest)

	badMeals := append([]domain.Meal{}, monday.Meals...)
	badMeals[0].Type = "brunch"
	expectStatus(t, env.do(t, http.MethodPut, "/api/plans/Monday", map[string]any{
		"exercises": monday.Exercises,
		"meals":     badMeals,
	}), http.StatusBadRequest)

	monday.Exercises[1].Completed = true
	resp := env.do(t, http.MethodPut, "/api/plans/Monday", map[string]any{
		"exercises": monday.Exercises,
		"meals":     monday.Meals[:2],
	})
	expectStatus(t, resp, http.StatusOK)
	plan := decodePlan(t, resp)
	if len(plan.Meals) != 2 {
		t.Fatalf("expected meals replaced, got %d", len(plan.Meals))
	}
	if !slices.Equal(plan.CompletedStatus.Exercises, []string{monday.Exercises[1].ID}) {
		t.Fatalf("expected status synced from flags, got %v", plan.CompletedStatus.Exercises)
	}
}

// ---------------------------------------------------------------------------
// Profile and progress
// ---------------------------------------------------------------------------

func TestProfileUpdateAndRegenerate(t *testing.T) {
	env := newTestServer(t)
	env.register(t, "alex@example.com")
	before := decodePlans(t, env.do(t, http.MethodGet, "/api/plans", nil))
	env.do(t, http.MethodPost, "/api/plans/Monday/exercises/e1/toggle", nil)

	resp := env.do(t, http.MethodPut, "/api/profile", map[string]any{
		"name": "Alex", "age": 30, "weight": 80, "height": 180, "fitness_goal": "muscle_gain",
	})
	expectStatus(t, resp, http.StatusOK)
	if body := decodeBody(t, resp); body["goal"] != "muscle_gain" || body["email"] != "alex@example.com" {
		t.Fatalf("unexpected profile: %v", body)
	}

	// Changing the goal alone leaves the stored week alone.
	same := decodePlans(t, env.do(t, http.MethodGet, "/api/plans", nil))
	if same[0].Meals[0].Calories != before[0].Meals[0].Calories {
		t.Fatal("expected plans unchanged before regeneration")
	}

	resp = env.do(t, http.MethodPost, "/api/profile/regenerate-plans", nil)
	expectStatus(t, resp, http.StatusOK)
	if body := decodeBody(t, resp); body["message"] != "Plans regenerated successfully" {
		t.Fatalf("unexpected message: %v", body["message"])
	}

	after := decodePlans(t, env.do(t, http.MethodGet, "/api/plans", nil))
	if after[0].Meals[0].Calories <= before[0].Meals[0].Calories {
		t.Fatalf("expected muscle gain meals to carry more energy: %v vs %v", after[0].Meals[0].Calories, before[0].Meals[0].Calories)
	}
	if len(after[0].CompletedStatus.Exercises) != 0 {
		t.Fatal("expected regeneration to reset completion")
	}
}

func TestProfileUpdate_Invalid(t *testing.T) {
	env := newTestServer(t)
	env.register(t, "alex@example.com")

	for name, body := range map[string]map[string]any{
		"age":    {"name": "Alex", "age": 0, "goal": "maintenance"},
		"goal":   {"name": "Alex", "goal": "bulk"},
		"name":   {"name": " ", "goal": "maintenance"},
		"gender": {"name": "Alex", "goal": "maintenance", "gender": "robot"},
	} {
		t.Run(name, func(t *testing.T) {
			expectStatus(t, env.do(t, http.MethodPut, "/api/profile", body), http.StatusBadRequest)
		})
	}
}

func TestProgress(t *testing.T) {
	env := newTestServer(t)
	env.register(t, "alex@example.com")
	env.do(t, http.MethodPut, "/api/profile", map[string]any{"name": "Alex", "weight": 80, "goal": "weight_loss"})
	env.do(t, http.MethodPost, "/api/profile/regenerate-plans", nil)
	env.do(t, http.MethodPost, "/api/plans/Monday/exercises/e1/toggle", nil)

	resp := env.do(t, http.MethodGet, "/api/progress", nil)
	expectStatus(t, resp, http.StatusOK)
	var days []domain.DayProgress
	if err := json.NewDecoder(resp.Body).Decode(&days); err != nil {
		t.Fatal(err)
	}
	if len(days) != 7 || days[0].Day != "Monday" || days[0].ExercisesCompleted != 1 {
		t.Fatalf("unexpected progress: %+v", days)
	}
	if days[0].ExerciseCompletionRate != 25 {
		t.Fatalf("expected 25%% on monday, got %v", days[0].ExerciseCompletionRate)
	}

	resp = env.do(t, http.MethodGet, "/api/progress/stats?unit=lb", nil)
	expectStatus(t, resp, http.StatusOK)
	var stats domain.Stats
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		t.Fatal(err)
	}
	if stats.Goal != domain.GoalWeightLoss || stats.WeightUnit != "lb" || stats.TotalExercisesCompleted != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if stats.CurrentWeight == nil || *stats.CurrentWeight < 176.3 || *stats.CurrentWeight > 176.4 {
		t.Fatalf("expected ~176.37 lb, got %v", stats.CurrentWeight)
	}

	expectStatus(t, env.do(t, http.MethodGet, "/api/progress/stats?unit=stone", nil), http.StatusBadRequest)
}

// ---------------------------------------------------------------------------
// Failure handling and ambient endpoints
// ---------------------------------------------------------------------------

func TestToggle_StorageFailureIsRetryable(t *testing.T) {
	env := newTestServer(t)
	env.register(t, "alex@example.com")
	env.do(t, http.MethodGet, "/api/plans", nil)

	env.db.FailWrites(errors.New("disk full"))
	resp := env.do(t, http.MethodPost, "/api/plans/Monday/exercises/e1/toggle", nil)
	expectStatus(t, resp, http.StatusServiceUnavailable)
	if body := decodeBody(t, resp); body["retryable"] != true {
		t.Fatalf("expected retryable error, got %v", body)
	}
	expectStatus(t, env.do(t, http.MethodPost, "/api/profile/regenerate-plans", nil), http.StatusServiceUnavailable)

	env.db.FailWrites(nil)
	plan := decodePlan(t, env.do(t, http.MethodGet, "/api/plans/Monday", nil))
	if plan.Exercises[0].Completed {
		t.Fatal("expected failed toggle to leave stored plan untouched")
	}
}

func TestRegister_ProfileWriteFailureRecovers(t *testing.T) {
	env := newTestServer(t)
	env.db.FailWrites(errors.New("disk full"))
	env.register(t, "alex@example.com")
	env.db.FailWrites(nil)

	resp := env.do(t, http.MethodGet, "/api/profile", nil)
	expectStatus(t, resp, http.StatusOK)
	if body := decodeBody(t, resp); body["goal"] != string(domain.GoalMaintenance) {
		t.Fatalf("expected default profile, got %v", body)
	}

	var plans []domain.DailyPlan
	resp = env.do(t, http.MethodGet, "/api/plans", nil)
	expectStatus(t, resp, http.StatusOK)
	if err := json.NewDecoder(resp.Body).Decode(&plans); err != nil {
		t.Fatal(err)
	}
	if len(plans) != 7 {
		t.Fatalf("expected a generated week, got %d days", len(plans))
	}
}

func TestWithoutAuth(t *testing.T) {
	env := newTestServer(t, func(s *adapthttp.Server) { s.WithoutAuth(42) })
	if _, err := env.db.UpsertProfile(context.Background(), domain.NewDefaultProfile(42, "Sam")); err != nil {
		t.Fatal(err)
	}

	resp := env.do(t, http.MethodGet, "/api/profile", nil)
	expectStatus(t, resp, http.StatusOK)
	if body := decodeBody(t, resp); body["name"] != "Sam" {
		t.Fatalf("expected profile of user 42, got %v", body)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestServer(t)
	env.do(t, http.MethodGet, "/api/health", nil)

	resp := env.do(t, http.MethodGet, "/metrics", nil)
	expectStatus(t, resp, http.StatusOK)
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), `fitplan_test_server_requests_total{method="GET",status="200"}`) {
		t.Fatalf("expected request counter in exposition, got:\n%s", b)
	}
}

func TestSPAFallback(t *testing.T) {
	webDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(webDir, "index.html"), []byte("<html>fitplan</html>"), 0o600); err != nil {
		t.Fatal(err)
	}
	env := newTestServer(t, func(s *adapthttp.Server) { s.WithWebDir(webDir) })

	resp := env.do(t, http.MethodGet, "/dashboard", nil)
	expectStatus(t, resp, http.StatusOK)
	b, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(b), "fitplan") {
		t.Fatalf("expected index.html, got %s", b)
	}
}

func TestCORSPreflight(t *testing.T) {
	env := newTestServer(t, func(s *adapthttp.Server) {
		s.WithAllowedOrigins([]string{"http://localhost:4200"})
	})

	req, err := http.NewRequest(http.MethodOptions, env.ts.URL+"/api/plans", nil)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Origin", "http://localhost:4200")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "http://localhost:4200" {
		t.Fatalf("expected allowed origin, got %q", got)
	}
	if resp.Header.Get("Access-Control-Allow-Credentials") != "true" {
		t.Fatal("expected credentials to be allowed")
	}
}
