package contest_service

import (
	"time"

	"github.com/mastercp/arena/internal/database"
	"github.com/mastercp/arena/internal/service"
	"github.com/mastercp/arena/internal/service/catalog_service"
	"github.com/mastercp/arena/internal/service/leaderboard_service"
	"github.com/mastercp/arena/internal/service/rating_service"
)

const (
	// weak topic selection gets a wider difficulty band
	weakTopicExtraTolerance int32 = 5

	// problems attempted within this window are not selected again
	DefaultRecentProblemWindow = 30 * 24 * time.Hour

	// weak topic slots per contest: up to half, at least one when any exist
	maxWeakTopicShare = 2
)

type ContestService struct {
	DB                       database.Store
	CatalogServiceConfig     *catalog_service.CatalogService
	RatingServiceConfig      *rating_service.RatingService
	LeaderboardServiceConfig *leaderboard_service.LeaderboardService
	Clock                    service.Clock

	// RecentProblemWindow overrides the exclusion window when non-zero
	RecentProblemWindow time.Duration
}

type StartContestRequest struct {
	NumProblems       int32 `json:"num_problems" validate:"gte=3,lte=10"`
	TimeLimitMinutes  int32 `json:"time_limit_minutes" validate:"gte=30,lte=300"`
	IncludeWeakTopics *bool `json:"include_weak_topics"`
}

type ContestDetail struct {
	database.Contest
	Problems []database.ContestProblem `json:"problems"`
}

type SubmitRequest struct {
	ProblemID        string `json:"problem_id" validate:"required"`
	Solved           bool   `json:"solved"`
	TimeTakenSeconds *int32 `json:"time_taken_seconds" validate:"omitempty,gte=0"`
}

type SubmitAllRequest struct {
	Submissions []SubmitRequest `json:"submissions" validate:"required,min=1,dive"`
}

type SubmitResult struct {
	ContestID        int32  `json:"contest_id"`
	ProblemID        string `json:"problem_id"`
	Status           string `json:"status"`
	TimeTakenSeconds *int32 `json:"time_taken_seconds"`
	Message          string `json:"message"`
}

type ProblemResult struct {
	ProblemID          string `json:"problem_id"`
	ProblemName        string `json:"problem_name"`
	Topic              string `json:"topic"`
	Difficulty         int32  `json:"difficulty"`
	Solved             bool   `json:"solved"`
	TimeTakenSeconds   *int32 `json:"time_taken_seconds"`
	IsWeakTopicProblem bool   `json:"is_weak_topic_problem"`
}

type ContestResult struct {
	ContestID          int32                  `json:"contest_id"`
	Status             database.ContestStatus `json:"status"`
	ProblemsSolved     int32                  `json:"problems_solved"`
	TotalProblems      int32                  `json:"total_problems"`
	TotalTimeSeconds   int32                  `json:"total_time_seconds"`
	OldRating          int32                  `json:"old_rating"`
	NewRating          int32                  `json:"new_rating"`
	RatingChange       int32                  `json:"rating_change"`
	TopicsPassed       []string               `json:"topics_passed"`
	TopicsFailed       []string               `json:"topics_failed"`
	NewWeakTopics      []string               `json:"new_weak_topics"`
	WeakTopicsImproved []string               `json:"weak_topics_improved"`
	Problems           []ProblemResult        `json:"problems"`
}

func (c *ContestService) now() time.Time {
	if c.Clock != nil {
		return c.Clock()
	}
	return service.RealClock()
}

func (c *ContestService) recentProblemWindow() time.Duration {
	if c.RecentProblemWindow > 0 {
		return c.RecentProblemWindow
	}
	return DefaultRecentProblemWindow
}
