package rating_service_test

import (
	"context"
	"testing"
	"time"

	"github.com/mastercp/arena/internal/database"
	"github.com/mastercp/arena/internal/database/dbtest"
	"github.com/mastercp/arena/internal/service"
)

func seedContest(t *testing.T, db *dbtest.FakeStore, userID int32, numProblems int32) database.Contest {
	t.Helper()
	contest, err := db.CreateContest(context.Background(), database.CreateContestParams{
		UserID:           userID,
		RatingAtStart:    50,
		NumProblems:      numProblems,
		TargetDifficulty: 60,
		StartedAt:        testNow.Add(-time.Hour),
		TimeLimitMinutes: 120,
	})
	if err != nil {
		t.Fatalf("failed to seed contest: %v", err)
	}
	return contest
}

func seedProblem(
	t *testing.T,
	db *dbtest.FakeStore,
	contestID int32,
	problemID, topic string,
	status database.SubmissionStatus,
	timeTaken int32,
) {
	t.Helper()
	cp, err := db.CreateContestProblem(context.Background(), database.CreateContestProblemParams{
		ContestID:   contestID,
		ProblemID:   problemID,
		ProblemName: problemID,
		Topic:       topic,
		Difficulty:  60,
		Source:      "leetcode",
	})
	if err != nil {
		t.Fatalf("failed to seed problem: %v", err)
	}
	if status == database.SubmissionStatusPending {
		return
	}
	if _, err := db.RecordContestProblemSubmission(context.Background(), database.RecordContestProblemSubmissionParams{
		ID:               cp.ID,
		Status:           status,
		SubmittedAt:      testNow,
		TimeTakenSeconds: &timeTaken,
	}); err != nil {
		t.Fatalf("failed to record submission: %v", err)
	}
}

func TestFinalizePerfectContestAwardsBonus(t *testing.T) {
	db := dbtest.NewFakeStore()
	engine := newEngine()
	user := seedUser(t, db, 50)
	contest := seedContest(t, db, user.ID, 2)
	seedProblem(t, db, contest.ID, "p1", "arrays", database.SubmissionStatusSolved, 300)
	seedProblem(t, db, contest.ID, "p2", "graphs", database.SubmissionStatusSolved, 200)

	problems, _ := db.ListContestProblems(context.Background(), contest.ID)
	outcome, err := engine.FinalizeContest(context.Background(), db, contest, problems)
	if err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if outcome.RatingChange != 10 {
		t.Errorf("rating change: got %d, want 10", outcome.RatingChange)
	}
	if outcome.NewRating != 60 {
		t.Errorf("new rating: got %d, want 60", outcome.NewRating)
	}
	if outcome.ProblemsSolved != 2 {
		t.Errorf("problems solved: got %d, want 2", outcome.ProblemsSolved)
	}
	if outcome.TotalTimeSeconds != 500 {
		t.Errorf("total time: got %d, want 500", outcome.TotalTimeSeconds)
	}
	if len(outcome.TopicsPassed) != 2 || len(outcome.TopicsFailed) != 0 {
		t.Errorf("topics: passed %v failed %v", outcome.TopicsPassed, outcome.TopicsFailed)
	}

	updated, _ := db.GetUserByID(context.Background(), user.ID)
	if updated.Rating != 60 {
		t.Errorf("stored rating: got %d, want 60", updated.Rating)
	}
	if updated.TotalContests != 1 {
		t.Errorf("total contests: got %d, want 1", updated.TotalContests)
	}
	if updated.TotalProblemsSolved != 2 || updated.TotalProblemsAttempted != 2 {
		t.Errorf("counters: solved %d attempted %d", updated.TotalProblemsSolved, updated.TotalProblemsAttempted)
	}
}

func TestFinalizePartialContestIsNeutral(t *testing.T) {
	db := dbtest.NewFakeStore()
	engine := newEngine()
	user := seedUser(t, db, 50)
	contest := seedContest(t, db, user.ID, 3)
	seedProblem(t, db, contest.ID, "p1", "arrays", database.SubmissionStatusSolved, 300)
	seedProblem(t, db, contest.ID, "p2", "graphs", database.SubmissionStatusFailed, 100)
	// p3 was never submitted and counts as unsolved
	seedProblem(t, db, contest.ID, "p3", "dp", database.SubmissionStatusPending, 0)

	problems, _ := db.ListContestProblems(context.Background(), contest.ID)
	outcome, err := engine.FinalizeContest(context.Background(), db, contest, problems)
	if err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if outcome.RatingChange != 0 {
		t.Errorf("rating change: got %d, want 0", outcome.RatingChange)
	}
	if outcome.NewRating != 50 {
		t.Errorf("new rating: got %d, want 50", outcome.NewRating)
	}
	if len(outcome.TopicsFailed) != 2 {
		t.Errorf("topics failed: got %v, want graphs and dp", outcome.TopicsFailed)
	}
	// only solved problems contribute their time
	if outcome.TotalTimeSeconds != 300 {
		t.Errorf("total time: got %d, want 300", outcome.TotalTimeSeconds)
	}
}

func TestFinalizeRatingClampsAtCeiling(t *testing.T) {
	db := dbtest.NewFakeStore()
	engine := newEngine()
	user := seedUser(t, db, 95)
	contest := seedContest(t, db, user.ID, 1)
	seedProblem(t, db, contest.ID, "p1", "arrays", database.SubmissionStatusSolved, 60)

	problems, _ := db.ListContestProblems(context.Background(), contest.ID)
	outcome, err := engine.FinalizeContest(context.Background(), db, contest, problems)
	if err != nil {
		t.Fatalf("finalize failed: %v", err)
	}
	if outcome.NewRating != service.MaxRating {
		t.Errorf("new rating: got %d, want clamp at %d", outcome.NewRating, service.MaxRating)
	}
}

func TestFinalizeReportsWeakTopicActivity(t *testing.T) {
	db := dbtest.NewFakeStore()
	engine := newEngine()
	user := seedUser(t, db, 50)
	contest := seedContest(t, db, user.ID, 1)
	seedProblem(t, db, contest.ID, "p1", "graphs", database.SubmissionStatusFailed, 100)

	// weak topic detected mid-contest
	if _, err := db.CreateWeakTopic(context.Background(), database.CreateWeakTopicParams{
		UserID:       user.ID,
		Topic:        "graphs",
		CurrentLevel: 30,
		TargetLevel:  60,
		DetectedAt:   testNow.Add(-30 * time.Minute),
	}); err != nil {
		t.Fatalf("failed to seed weak topic: %v", err)
	}

	// weak topic from an earlier session that leveled up during this one
	older, err := db.CreateWeakTopic(context.Background(), database.CreateWeakTopicParams{
		UserID:       user.ID,
		Topic:        "dp",
		CurrentLevel: 35,
		TargetLevel:  60,
		DetectedAt:   testNow.Add(-48 * time.Hour),
	})
	if err != nil {
		t.Fatalf("failed to seed weak topic: %v", err)
	}
	levelUpAt := testNow.Add(-10 * time.Minute)
	if _, err := db.UpdateWeakTopicProgress(context.Background(), database.UpdateWeakTopicProgressParams{
		ID:            older.ID,
		CurrentLevel:  40,
		LastLevelUpAt: &levelUpAt,
		IsActive:      true,
	}); err != nil {
		t.Fatalf("failed to update weak topic: %v", err)
	}

	problems, _ := db.ListContestProblems(context.Background(), contest.ID)
	outcome, err := engine.FinalizeContest(context.Background(), db, contest, problems)
	if err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if len(outcome.NewWeakTopics) != 1 || outcome.NewWeakTopics[0] != "graphs" {
		t.Errorf("new weak topics: got %v, want [graphs]", outcome.NewWeakTopics)
	}
	if len(outcome.WeakTopicsImproved) != 1 || outcome.WeakTopicsImproved[0] != "dp" {
		t.Errorf("improved weak topics: got %v, want [dp]", outcome.WeakTopicsImproved)
	}
}
