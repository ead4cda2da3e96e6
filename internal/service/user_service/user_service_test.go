package user_service_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mastercp/arena/internal/arena_errors"
	"github.com/mastercp/arena/internal/database"
	"github.com/mastercp/arena/internal/database/dbtest"
	"github.com/mastercp/arena/internal/service"
	"github.com/mastercp/arena/internal/service/catalog_service"
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

func newService() (*user_service.UserService, *dbtest.FakeStore) {
	db := dbtest.NewFakeStore()
	return &user_service.UserService{DB: db}, db
}

func TestRegisterStartsAtInitialRating(t *testing.T) {
	svc, _ := newService()

	user, err := svc.Register(context.Background(), user_service.RegisterRequest{
		Username: "newcomer",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Rating != service.InitialUserRating {
		t.Errorf("rating: got %d, want %d", user.Rating, service.InitialUserRating)
	}
	if user.TotalContests != 0 || user.TotalProblemsSolved != 0 {
		t.Error("fresh user should have empty counters")
	}
}

func TestRegisterValidatesInput(t *testing.T) {
	svc, _ := newService()

	cases := []user_service.RegisterRequest{
		{Username: "ab"},
		{Username: "has spaces"},
		{Username: "valid_name_but", Email: ptr("not-an-email")},
	}
	for _, request := range cases {
		if _, err := svc.Register(context.Background(), request); !errors.Is(err, arena_errors.ErrInvalidInput) {
			t.Errorf("request %+v: expected invalid input, got %v", request, err)
		}
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, _ := newService()

	if _, err := svc.Register(context.Background(), user_service.RegisterRequest{Username: "taken"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	_, err := svc.Register(context.Background(), user_service.RegisterRequest{Username: "taken"})
	if !errors.Is(err, arena_errors.ErrConflict) {
		t.Errorf("expected conflict, got %v", err)
	}
}

func TestUpdateEmail(t *testing.T) {
	svc, _ := newService()
	user, err := svc.Register(context.Background(), user_service.RegisterRequest{Username: "mailuser"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	updated, err := svc.UpdateEmail(context.Background(), user.ID, user_service.UpdateEmailRequest{
		Email: "mailuser@example.com",
	})
	if err != nil {
		t.Fatalf("update email failed: %v", err)
	}
	if updated.Email == nil || *updated.Email != "mailuser@example.com" {
		t.Errorf("email: got %v", updated.Email)
	}

	if _, err := svc.UpdateEmail(context.Background(), 999, user_service.UpdateEmailRequest{
		Email: "ghost@example.com",
	}); !errors.Is(err, arena_errors.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestDeleteUserCascades(t *testing.T) {
	svc, db := newService()
	user, err := svc.Register(context.Background(), user_service.RegisterRequest{Username: "leaver"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, err := db.CreateContest(context.Background(), database.CreateContestParams{
		UserID:           user.ID,
		RatingAtStart:    user.Rating,
		NumProblems:      5,
		TargetDifficulty: 30,
		StartedAt:        time.Now(),
		TimeLimitMinutes: 120,
	}); err != nil {
		t.Fatalf("failed to seed contest: %v", err)
	}

	if err := svc.DeleteUser(context.Background(), user.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := svc.GetUser(context.Background(), user.ID); !errors.Is(err, arena_errors.ErrNotFound) {
		t.Errorf("deleted user still readable, err %v", err)
	}
	if _, err := db.GetActiveContestByUser(context.Background(), user.ID); err == nil {
		t.Error("contest survived the user deletion")
	}
}

func TestStatisticsAggregation(t *testing.T) {
	svc, db := newService()
	user, err := svc.Register(context.Background(), user_service.RegisterRequest{Username: "grinder"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	contest, err := db.CreateContest(context.Background(), database.CreateContestParams{
		UserID:           user.ID,
		RatingAtStart:    user.Rating,
		NumProblems:      2,
		TargetDifficulty: 30,
		StartedAt:        time.Now().Add(-time.Hour),
		TimeLimitMinutes: 120,
	})
	if err != nil {
		t.Fatalf("failed to seed contest: %v", err)
	}
	for i, seed := range []struct {
		id     string
		status database.SubmissionStatus
		taken  int32
	}{
		{"p1", database.SubmissionStatusSolved, 100},
		{"p2", database.SubmissionStatusSolved, 200},
	} {
		cp, err := db.CreateContestProblem(context.Background(), database.CreateContestProblemParams{
			ContestID:   contest.ID,
			ProblemID:   seed.id,
			ProblemName: seed.id,
			Topic:       "arrays",
			Difficulty:  30,
			Source:      "leetcode",
		})
		if err != nil {
			t.Fatalf("failed to seed problem %d: %v", i, err)
		}
		taken := seed.taken
		if _, err := db.RecordContestProblemSubmission(context.Background(), database.RecordContestProblemSubmissionParams{
			ID:               cp.ID,
			Status:           seed.status,
			SubmittedAt:      time.Now(),
			TimeTakenSeconds: &taken,
		}); err != nil {
			t.Fatalf("failed to record submission: %v", err)
		}
	}
	if _, err := db.UpdateUserContestStats(context.Background(), database.UpdateUserContestStatsParams{
		ID:                user.ID,
		Rating:            30,
		ProblemsSolved:    2,
		ProblemsAttempted: 2,
	}); err != nil {
		t.Fatalf("failed to update stats: %v", err)
	}
	if _, err := db.FinishContest(context.Background(), database.FinishContestParams{
		ID:               contest.ID,
		Status:           database.ContestStatusCompleted,
		EndedAt:          time.Now(),
		RatingChange:     10,
		ProblemsSolved:   2,
		TotalTimeSeconds: 300,
	}); err != nil {
		t.Fatalf("failed to finish contest: %v", err)
	}

	stats, err := svc.GetStatistics(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("statistics failed: %v", err)
	}
	if stats.Rating != 30 {
		t.Errorf("rating: got %d, want 30", stats.Rating)
	}
	if stats.CompletedContests != 1 || stats.PerfectContests != 1 {
		t.Errorf("contests: completed %d perfect %d, want 1/1", stats.CompletedContests, stats.PerfectContests)
	}
	if stats.WinRate != 100 {
		t.Errorf("win rate: got %f, want 100", stats.WinRate)
	}
	if len(stats.RatingHistory) != 1 {
		t.Fatalf("rating history: got %d entries, want 1", len(stats.RatingHistory))
	}
	if entry := stats.RatingHistory[0]; entry.Rating != 30 || entry.Change != 10 || entry.Date == nil {
		t.Errorf("rating history entry: got %+v, want rating 30 change 10 with a date", entry)
	}
	if stats.SolveRate != 1.0 {
		t.Errorf("solve rate: got %f, want 1.0", stats.SolveRate)
	}
	if stats.AverageSolveTimeSecs == nil || *stats.AverageSolveTimeSecs != 150 {
		t.Errorf("average solve time: got %v, want 150", stats.AverageSolveTimeSecs)
	}
}

func TestStatisticsRatingHistoryAndTopics(t *testing.T) {
	svc, db := newService()
	user, err := svc.Register(context.Background(), user_service.RegisterRequest{Username: "climber"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	seedFinished := func(ratingAtStart, change int32, status database.ContestStatus, endedAgo time.Duration) {
		t.Helper()
		contest, err := db.CreateContest(context.Background(), database.CreateContestParams{
			UserID:           user.ID,
			RatingAtStart:    ratingAtStart,
			NumProblems:      5,
			TargetDifficulty: 30,
			StartedAt:        time.Now().Add(-endedAgo - time.Hour),
			TimeLimitMinutes: 120,
		})
		if err != nil {
			t.Fatalf("failed to seed contest: %v", err)
		}
		if _, err := db.FinishContest(context.Background(), database.FinishContestParams{
			ID:           contest.ID,
			Status:       status,
			EndedAt:      time.Now().Add(-endedAgo),
			RatingChange: change,
		}); err != nil {
			t.Fatalf("failed to finish contest: %v", err)
		}
	}

	// finished an hour ago but created first, so history order must
	// come from the end timestamps, not insertion order
	seedFinished(25, 10, database.ContestStatusCompleted, time.Hour)
	seedFinished(20, 5, database.ContestStatusCompleted, 2*time.Hour)
	seedFinished(30, 0, database.ContestStatusAbandoned, 30*time.Minute)

	arrays, err := db.CreateTopicRating(context.Background(), database.CreateTopicRatingParams{
		UserID: user.ID,
		Topic:  "arrays",
		Rating: 30,
	})
	if err != nil {
		t.Fatalf("failed to seed topic rating: %v", err)
	}
	if _, err := db.UpdateTopicRating(context.Background(), database.UpdateTopicRatingParams{
		ID:                arrays.ID,
		Rating:            35,
		ProblemsSolved:    4,
		ProblemsAttempted: 6,
	}); err != nil {
		t.Fatalf("failed to update topic rating: %v", err)
	}
	if _, err := db.CreateTopicRating(context.Background(), database.CreateTopicRatingParams{
		UserID: user.ID,
		Topic:  "graphs",
		Rating: 20,
	}); err != nil {
		t.Fatalf("failed to seed topic rating: %v", err)
	}

	stats, err := svc.GetStatistics(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("statistics failed: %v", err)
	}
	if len(stats.RatingHistory) != 2 {
		t.Fatalf("rating history: got %d entries, want 2 (abandoned excluded)", len(stats.RatingHistory))
	}
	first, second := stats.RatingHistory[0], stats.RatingHistory[1]
	if first.Rating != 25 || first.Change != 5 {
		t.Errorf("first entry: got rating %d change %d, want 25/5", first.Rating, first.Change)
	}
	if second.Rating != 35 || second.Change != 10 {
		t.Errorf("second entry: got rating %d change %d, want 35/10", second.Rating, second.Change)
	}
	if first.Date == nil || second.Date == nil || !first.Date.Before(*second.Date) {
		t.Error("rating history should be ordered by end time, oldest first")
	}
	if len(stats.TopicDistribution) != 2 {
		t.Fatalf("topic distribution: got %d topics, want 2", len(stats.TopicDistribution))
	}
	if stats.TopicDistribution["arrays"] != 4 || stats.TopicDistribution["graphs"] != 0 {
		t.Errorf("topic distribution: got %v, want arrays 4 graphs 0", stats.TopicDistribution)
	}
}

const practiceProblems = `{"problems": [
	{"id": "g-easy", "name": "Flood Fill", "url": "https://example.com/g-easy", "source": "leetcode", "internal_rating": 12, "pattern_id": "graphs"},
	{"id": "g-low", "name": "Count Islands", "url": "https://example.com/g-low", "source": "leetcode", "internal_rating": 20, "pattern_id": "graphs"},
	{"id": "g-high", "name": "Shortest Bridge", "url": "https://example.com/g-high", "source": "codeforces", "internal_rating": 28, "pattern_id": "graphs"},
	{"id": "g-hard", "name": "Min Cost Flow", "url": "https://example.com/g-hard", "source": "codeforces", "internal_rating": 40, "pattern_id": "graphs"},
	{"id": "a1", "name": "Two Sum", "url": "https://example.com/a1", "source": "leetcode", "internal_rating": 22, "pattern_id": "arrays"}
]}`

func TestPracticeProblemsForWeakTopic(t *testing.T) {
	svc, db := newService()
	path := filepath.Join(t.TempDir(), "problems.json")
	if err := os.WriteFile(path, []byte(practiceProblems), 0o644); err != nil {
		t.Fatalf("failed to write problems file: %v", err)
	}
	catalog := &catalog_service.CatalogService{}
	if err := catalog.LoadFromFile(path); err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}
	svc.CatalogServiceConfig = catalog

	user, err := svc.Register(context.Background(), user_service.RegisterRequest{Username: "drilluser"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, err := svc.PracticeProblems(context.Background(), user.ID, "graphs", 0); !errors.Is(err, arena_errors.ErrNotFound) {
		t.Errorf("expected not found without an active weak topic, got %v", err)
	}

	if _, err := db.CreateWeakTopic(context.Background(), database.CreateWeakTopicParams{
		UserID:       user.ID,
		Topic:        "graphs",
		CurrentLevel: 20,
		TargetLevel:  30,
		DetectedAt:   time.Now(),
	}); err != nil {
		t.Fatalf("failed to seed weak topic: %v", err)
	}

	// band is current level minus tolerance through target plus
	// tolerance: 15..35 keeps g-low and g-high out of the four
	problems, err := svc.PracticeProblems(context.Background(), user.ID, "graphs", 0)
	if err != nil {
		t.Fatalf("practice problems failed: %v", err)
	}
	if len(problems) != 2 {
		t.Fatalf("got %d problems, want 2", len(problems))
	}
	for _, p := range problems {
		if topic := catalog_service.ProblemTopic(p); topic != "graphs" {
			t.Errorf("problem %s: topic %s, want graphs", p.ID, topic)
		}
		if p.Difficulty < 15 || p.Difficulty > 35 {
			t.Errorf("problem %s: difficulty %d outside 15..35", p.ID, p.Difficulty)
		}
	}

	limited, err := svc.PracticeProblems(context.Background(), user.ID, "graphs", 1)
	if err != nil {
		t.Fatalf("practice problems failed: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("limit 1: got %d problems", len(limited))
	}
}

func ptr(s string) *string { return &s }
