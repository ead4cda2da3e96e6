package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/mastercp/arena/internal/api"
	"github.com/mastercp/arena/internal/database/dbtest"
	"github.com/mastercp/arena/internal/service"
	"github.com/mastercp/arena/internal/service/contest_service"
	"github.com/mastercp/arena/internal/service/leaderboard_service"
	"github.com/mastercp/arena/internal/service/rating_service"
	"github.com/mastercp/arena/internal/service/user_service"
	"github.com/sirupsen/logrus"
)

func TestMain(m *testing.M) {
	logrus.SetFormatter(&logrus.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})
	logrus.SetLevel(logrus.DebugLevel)
	service.InitializeServices()
	os.Exit(m.Run())
}

func newTestRouter() *chi.Mux {
	db := dbtest.NewFakeStore()
	lb := &leaderboard_service.LeaderboardService{DB: db}
	apiConfig := &api.Api{
		DB:                       db,
		UserServiceConfig:        &user_service.UserService{DB: db},
		ContestServiceConfig:     &contest_service.ContestService{DB: db, RatingServiceConfig: &rating_service.RatingService{}},
		LeaderboardServiceConfig: lb,
	}

	router := chi.NewRouter()
	router.Post("/users", apiConfig.HandlerRegisterUser)
	router.Get("/users", apiConfig.HandlerListUsers)
	router.Get("/users/{id}", apiConfig.HandlerGetUser)
	router.Delete("/users/{id}", apiConfig.HandlerDeleteUser)
	router.Get("/leaderboard", apiConfig.HandlerLeaderboard)
	router.Post("/contests/start/{user_id}", apiConfig.HandlerStartContest)
	router.Post("/contests/{contest_id}/end", apiConfig.HandlerEndContest)
	return router
}

func doRequest(t *testing.T, router *chi.Mux, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var request *http.Request
	if body == "" {
		request = httptest.NewRequest(method, path, nil)
	} else {
		request = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func TestRegisterAndFetchUser(t *testing.T) {
	router := newTestRouter()

	recorder := doRequest(t, router, http.MethodPost, "/users", `{"username": "apiuser"}`)
	if recorder.Code != http.StatusCreated {
		t.Fatalf("register status: got %d, want 201, body %s", recorder.Code, recorder.Body.String())
	}
	var created struct {
		ID     int32 `json:"id"`
		Rating int32 `json:"rating"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &created); err != nil {
		t.Fatalf("cannot parse response: %v", err)
	}
	if created.Rating != service.InitialUserRating {
		t.Errorf("rating: got %d, want %d", created.Rating, service.InitialUserRating)
	}

	recorder = doRequest(t, router, http.MethodGet, "/users/1", "")
	if recorder.Code != http.StatusOK {
		t.Errorf("get status: got %d, want 200", recorder.Code)
	}
}

func TestErrorStatusMapping(t *testing.T) {
	router := newTestRouter()
	doRequest(t, router, http.MethodPost, "/users", `{"username": "apiuser"}`)

	cases := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"missing user", http.MethodGet, "/users/99", "", http.StatusNotFound},
		{"duplicate username", http.MethodPost, "/users", `{"username": "apiuser"}`, http.StatusConflict},
		{"invalid username", http.MethodPost, "/users", `{"username": "x"}`, http.StatusBadRequest},
		{"malformed json", http.MethodPost, "/users", `{"username":`, http.StatusBadRequest},
		{"unknown field", http.MethodPost, "/users", `{"user_name": "typo"}`, http.StatusBadRequest},
		{"non numeric id", http.MethodGet, "/users/abc", "", http.StatusBadRequest},
		{"contest for missing user", http.MethodPost, "/contests/start/99", "", http.StatusNotFound},
		{"end missing contest", http.MethodPost, "/contests/99/end", "", http.StatusNotFound},
	}
	for _, c := range cases {
		recorder := doRequest(t, router, c.method, c.path, c.body)
		if recorder.Code != c.status {
			t.Errorf("%s: got %d, want %d, body %s", c.name, recorder.Code, c.status, recorder.Body.String())
			continue
		}
		var response struct {
			Detail string `json:"detail"`
		}
		if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
			t.Errorf("%s: error body is not json, %v", c.name, err)
			continue
		}
		if response.Detail == "" {
			t.Errorf("%s: error body missing detail", c.name)
		}
	}
}

func TestDeleteUserReturnsNoContent(t *testing.T) {
	router := newTestRouter()
	doRequest(t, router, http.MethodPost, "/users", `{"username": "apiuser"}`)

	recorder := doRequest(t, router, http.MethodDelete, "/users/1", "")
	if recorder.Code != http.StatusNoContent {
		t.Errorf("delete status: got %d, want 204", recorder.Code)
	}
	recorder = doRequest(t, router, http.MethodGet, "/users/1", "")
	if recorder.Code != http.StatusNotFound {
		t.Errorf("deleted user status: got %d, want 404", recorder.Code)
	}
}

func TestLeaderboardOrdering(t *testing.T) {
	router := newTestRouter()
	doRequest(t, router, http.MethodPost, "/users", `{"username": "first"}`)
	doRequest(t, router, http.MethodPost, "/users", `{"username": "second"}`)

	recorder := doRequest(t, router, http.MethodGet, "/leaderboard?limit=1", "")
	if recorder.Code != http.StatusOK {
		t.Fatalf("leaderboard status: got %d, want 200", recorder.Code)
	}
	var entries []struct {
		Rank     int32  `json:"rank"`
		Username string `json:"username"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &entries); err != nil {
		t.Fatalf("cannot parse response: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries: got %d, want 1", len(entries))
	}
	if entries[0].Rank != 1 {
		t.Errorf("rank: got %d, want 1", entries[0].Rank)
	}
}
