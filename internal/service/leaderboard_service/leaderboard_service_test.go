package leaderboard_service_test

import (
	"context"
	"os"
	"testing"

	"github.com/mastercp/arena/internal/database"
	"github.com/mastercp/arena/internal/database/dbtest"
	"github.com/mastercp/arena/internal/service/leaderboard_service"
	"github.com/sirupsen/logrus"
)

func TestMain(m *testing.M) {
	logrus.SetFormatter(&logrus.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})
	logrus.SetLevel(logrus.DebugLevel)
	os.Exit(m.Run())
}

func TestTopFallsBackToDatabase(t *testing.T) {
	db := dbtest.NewFakeStore()
	svc := &leaderboard_service.LeaderboardService{DB: db}

	for _, seed := range []struct {
		name   string
		rating int32
	}{
		{"bronze", 20},
		{"gold", 80},
		{"silver", 50},
	} {
		if _, err := db.CreateUser(context.Background(), database.CreateUserParams{
			Username: seed.name,
			Rating:   seed.rating,
		}); err != nil {
			t.Fatalf("failed to seed user: %v", err)
		}
	}

	entries, err := svc.Top(context.Background(), 2)
	if err != nil {
		t.Fatalf("top failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries: got %d, want 2", len(entries))
	}
	if entries[0].Username != "gold" || entries[0].Rank != 1 {
		t.Errorf("first entry: got %+v, want gold at rank 1", entries[0])
	}
	if entries[1].Username != "silver" || entries[1].Rank != 2 {
		t.Errorf("second entry: got %+v, want silver at rank 2", entries[1])
	}
}

func TestUpdateScoreWithoutRedisIsNoop(t *testing.T) {
	svc := &leaderboard_service.LeaderboardService{DB: dbtest.NewFakeStore()}
	if err := svc.UpdateScore(context.Background(), 1, 50); err != nil {
		t.Errorf("update without redis should be a no-op, got %v", err)
	}
	if err := svc.RemoveUser(context.Background(), 1); err != nil {
		t.Errorf("remove without redis should be a no-op, got %v", err)
	}
}
