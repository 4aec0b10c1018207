package app

import (
	"bytes"
	"context"
	"dsa_tracker_backend/internal/testutil"
	"dsa_tracker_backend/internal/util"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type client struct {
	t     *testing.T
	app   *App
	token string
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return New(testutil.Config(), testutil.DB(t), nil)
}

func (c *client) do(method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			c.t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	w := httptest.NewRecorder()
	c.app.Router.ServeHTTP(w, req)

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		c.t.Fatalf("%s %s: non-envelope body %q", method, path, w.Body.String())
	}
	if env.Code != w.Code {
		c.t.Fatalf("%s %s: envelope code %d differs from status %d", method, path, env.Code, w.Code)
	}
	return w, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		t.Fatalf("decode %s: %v", raw, err)
	}
	return v
}

func register(t *testing.T, a *App, email string) *client {
	t.Helper()
	c := &client{t: t, app: a}
	if w, _ := c.do(http.MethodPost, "/api/register", gin.H{"name": "Ada", "email": email, "password": "correct-horse"}); w.Code != http.StatusCreated {
		t.Fatalf("register: %d %s", w.Code, w.Body.String())
	}
	w, env := c.do(http.MethodPost, "/api/login", gin.H{"email": email, "password": "correct-horse"})
	if w.Code != http.StatusOK {
		t.Fatalf("login: %d %s", w.Code, w.Body.String())
	}
	if cookie := w.Result().Cookies(); len(cookie) == 0 || cookie[0].Name != "session_token" || !cookie[0].HttpOnly {
		t.Fatalf("login must set an HttpOnly session cookie")
	}
	c.token = decode[struct {
		Token string `json:"token"`
	}](t, env.Data).Token
	return c
}

type problemDTO struct {
	ID           uint   `json:"id"`
	Title        string `json:"title"`
	AttemptCount int    `json:"attemptCount"`
	Attempts     []struct {
		AttemptNumber int `json:"attemptNumber"`
	} `json:"attempts"`
}

func TestProblemAttemptStatsFlow(t *testing.T) {
	a := newTestApp(t)
	c := register(t, a, "ada@example.com")

	w, env := c.do(http.MethodPost, "/api/problems", gin.H{
		"title": "Two Sum", "platform": "LeetCode", "platformLink": "https://leetcode.com/problems/two-sum/",
		"difficulty": "Easy", "topics": "Array, Hash Table",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create problem: %d %s", w.Code, w.Body.String())
	}
	p := decode[problemDTO](t, env.Data)

	for i, solved := range []bool{false, true} {
		w, env := c.do(http.MethodPost, "/api/attempts", gin.H{"problemId": p.ID, "solved": solved, "timeTaken": 25})
		if w.Code != http.StatusCreated {
			t.Fatalf("attempt %d: %d %s", i+1, w.Code, w.Body.String())
		}
		got := decode[struct {
			AttemptNumber int `json:"attemptNumber"`
		}](t, env.Data)
		if got.AttemptNumber != i+1 {
			t.Fatalf("expected attempt number %d, got %d", i+1, got.AttemptNumber)
		}
	}

	_, env = c.do(http.MethodGet, "/api/problems", nil)
	list := decode[[]problemDTO](t, env.Data)
	if len(list) != 1 || len(list[0].Attempts) != 2 || list[0].AttemptCount != 2 {
		t.Fatalf("unexpected problem list %s", env.Data)
	}

	_, env = c.do(http.MethodGet, fmt.Sprintf("/api/attempts?problemId=%d", p.ID), nil)
	if attempts := decode[[]json.RawMessage](t, env.Data); len(attempts) != 2 {
		t.Fatalf("expected 2 attempts, got %d", len(attempts))
	}

	w, env = c.do(http.MethodGet, "/api/stats?tz=Europe/Berlin", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("stats: %d %s", w.Code, w.Body.String())
	}
	stats := decode[struct {
		TotalProblems int `json:"totalProblems"`
		TotalSolved   int `json:"totalSolved"`
		SuccessRate   int `json:"successRate"`
		AvgTime       int `json:"avgTime"`
		TotalAttempts int `json:"totalAttempts"`
		Activity      []struct {
			Count int `json:"count"`
		} `json:"activity"`
	}](t, env.Data)
	if stats.TotalProblems != 1 || stats.TotalSolved != 1 || stats.SuccessRate != 100 || stats.AvgTime != 25 || stats.TotalAttempts != 2 {
		t.Fatalf("unexpected stats %s", env.Data)
	}
	if len(stats.Activity) != util.ActivityWindowDays {
		t.Fatalf("expected %d activity days", util.ActivityWindowDays)
	}

	w, env = c.do(http.MethodDelete, fmt.Sprintf("/api/problems/%d", p.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete: %d %s", w.Code, w.Body.String())
	}
	if w, _ := c.do(http.MethodGet, fmt.Sprintf("/api/problems/%d", p.ID), nil); w.Code != http.StatusNotFound {
		t.Fatalf("deleted problem: expected 404, got %d", w.Code)
	}
	_, env = c.do(http.MethodGet, "/api/attempts", nil)
	if attempts := decode[[]json.RawMessage](t, env.Data); len(attempts) != 0 {
		t.Fatalf("attempts should be deleted with their problem")
	}
}

func TestErrorStatuses(t *testing.T) {
	a := newTestApp(t)
	owner := register(t, a, "owner@example.com")
	other := register(t, a, "other@example.com")
	anon := &client{t: t, app: a}

	_, env := owner.do(http.MethodPost, "/api/problems", gin.H{"title": "Two Sum", "difficulty": "Easy", "topics": "Array"})
	p := decode[problemDTO](t, env.Data)

	cases := []struct {
		name   string
		c      *client
		method string
		path   string
		body   any
		want   int
	}{
		{"anonymous create", anon, http.MethodPost, "/api/problems", gin.H{"title": "X", "difficulty": "Easy", "topics": "T"}, http.StatusUnauthorized},
		{"bad difficulty", owner, http.MethodPost, "/api/problems", gin.H{"title": "X", "difficulty": "Extreme", "topics": "T"}, http.StatusBadRequest},
		{"missing title", owner, http.MethodPost, "/api/problems", gin.H{"difficulty": "Easy", "topics": "T"}, http.StatusBadRequest},
		{"bad id", owner, http.MethodGet, "/api/problems/abc", nil, http.StatusBadRequest},
		{"foreign get", other, http.MethodGet, fmt.Sprintf("/api/problems/%d", p.ID), nil, http.StatusForbidden},
		{"foreign delete", other, http.MethodDelete, fmt.Sprintf("/api/problems/%d", p.ID), nil, http.StatusForbidden},
		{"missing delete", owner, http.MethodDelete, "/api/problems/9999", nil, http.StatusNotFound},
		{"foreign attempt", other, http.MethodPost, "/api/attempts", gin.H{"problemId": p.ID, "solved": true}, http.StatusForbidden},
		{"missing attempt problem", owner, http.MethodPost, "/api/attempts", gin.H{"problemId": 9999, "solved": true}, http.StatusNotFound},
		{"attempt without solved", owner, http.MethodPost, "/api/attempts", gin.H{"problemId": p.ID}, http.StatusBadRequest},
		{"bad filter", owner, http.MethodGet, "/api/attempts?problemId=x", nil, http.StatusBadRequest},
		{"bad tz", owner, http.MethodGet, "/api/stats?tz=Nowhere/City", nil, http.StatusBadRequest},
		{"duplicate email", anon, http.MethodPost, "/api/register", gin.H{"name": "A", "email": "owner@example.com", "password": "correct-horse"}, http.StatusConflict},
		{"wrong password", anon, http.MethodPost, "/api/login", gin.H{"email": "owner@example.com", "password": "nope-nope"}, http.StatusUnauthorized},
		{"anonymous profile", anon, http.MethodGet, "/api/profile", nil, http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.c.t = t
			if w, _ := tc.c.do(tc.method, tc.path, tc.body); w.Code != tc.want {
				t.Fatalf("got %d, want %d: %s", w.Code, tc.want, w.Body.String())
			}
		})
	}
}

func TestGuestSeesDemoCatalog(t *testing.T) {
	a := newTestApp(t)
	anon := &client{t: t, app: a}

	// before bootstrap there is no demo identity
	_, env := anon.do(http.MethodGet, "/api/problems", nil)
	if list := decode[[]problemDTO](t, env.Data); len(list) != 0 {
		t.Fatalf("expected empty list without demo identity")
	}

	if err := a.Bootstrap(context.Background(), true); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	_, env = anon.do(http.MethodGet, "/api/problems", nil)
	demo := decode[[]problemDTO](t, env.Data)
	if len(demo) == 0 {
		t.Fatalf("guest should see the demo catalog")
	}
	if w, _ := anon.do(http.MethodGet, fmt.Sprintf("/api/problems/%d", demo[0].ID), nil); w.Code != http.StatusOK {
		t.Fatalf("guest get demo problem: %d", w.Code)
	}
	if w, _ := anon.do(http.MethodDelete, fmt.Sprintf("/api/problems/%d", demo[0].ID), nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("guest delete: expected 401, got %d", w.Code)
	}

	// a signed-in user sees only their own catalog
	c := register(t, a, "ada@example.com")
	_, env = c.do(http.MethodGet, "/api/problems", nil)
	if list := decode[[]problemDTO](t, env.Data); len(list) != 0 {
		t.Fatalf("new user should start with an empty catalog")
	}
}

func TestLogoutAndProfile(t *testing.T) {
	a := newTestApp(t)
	c := register(t, a, "ada@example.com")

	w, env := c.do(http.MethodGet, "/api/profile", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("profile: %d", w.Code)
	}
	profile := decode[map[string]any](t, env.Data)
	if profile["email"] != "ada@example.com" {
		t.Fatalf("unexpected profile %v", profile)
	}
	if _, leaked := profile["password"]; leaked {
		t.Fatalf("password hash must not be serialized")
	}

	if w, _ := c.do(http.MethodPost, "/api/logout", nil); w.Code != http.StatusOK {
		t.Fatalf("logout: %d", w.Code)
	}
}

func TestHealth(t *testing.T) {
	a := newTestApp(t)
	c := &client{t: t, app: a}
	if w, _ := c.do(http.MethodGet, "/api/health", nil); w.Code != http.StatusOK {
		t.Fatalf("health: %d", w.Code)
	}
}
