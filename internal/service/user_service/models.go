package user_service

import (
	"time"

	"github.com/mastercp/arena/internal/database"
	"github.com/mastercp/arena/internal/service/catalog_service"
	"github.com/mastercp/arena/internal/service/leaderboard_service"
)

type UserService struct {
	DB                       database.Store
	CatalogServiceConfig     *catalog_service.CatalogService
	LeaderboardServiceConfig *leaderboard_service.LeaderboardService
}

type RegisterRequest struct {
	Username string  `json:"username" validate:"required,min=3,max=50,alphanum"`
	Email    *string `json:"email" validate:"omitempty,email"`
}

type UpdateEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// RatingHistoryEntry is one point of the user's rating curve, taken at
// the moment a contest completed.
type RatingHistoryEntry struct {
	Date   *time.Time `json:"date"`
	Rating int32      `json:"rating"`
	Change int32      `json:"change"`
}

// UserStatistics aggregates a user's practice record.
type UserStatistics struct {
	UserID                 int32                `json:"user_id"`
	Username               string               `json:"username"`
	Rating                 int32                `json:"rating"`
	RatingHistory          []RatingHistoryEntry `json:"rating_history"`
	TopicDistribution      map[string]int32     `json:"topic_distribution"`
	TotalContests          int32                `json:"total_contests"`
	CompletedContests      int64                `json:"completed_contests"`
	PerfectContests        int64                `json:"perfect_contests"`
	WinRate                float64              `json:"win_rate"`
	TotalProblemsSolved    int32                `json:"total_problems_solved"`
	TotalProblemsAttempted int32                `json:"total_problems_attempted"`
	SolveRate              float64              `json:"solve_rate"`
	AverageSolveTimeSecs   *float64             `json:"average_solve_time_seconds"`
	ActiveWeakTopics       int64                `json:"active_weak_topics"`
}
