package database

import (
	"time"
)

type ContestStatus string

const (
	ContestStatusActive    ContestStatus = "active"
	ContestStatusCompleted ContestStatus = "completed"
	ContestStatusAbandoned ContestStatus = "abandoned"
)

type SubmissionStatus string

const (
	SubmissionStatusPending SubmissionStatus = "pending"
	SubmissionStatusSolved  SubmissionStatus = "solved"
	SubmissionStatusFailed  SubmissionStatus = "failed"
	SubmissionStatusSkipped SubmissionStatus = "skipped"
)

type User struct {
	ID                     int32     `json:"id"`
	Username               string    `json:"username"`
	Email                  *string   `json:"email"`
	Rating                 int32     `json:"rating"`
	TotalContests          int32     `json:"total_contests"`
	TotalProblemsSolved    int32     `json:"total_problems_solved"`
	TotalProblemsAttempted int32     `json:"total_problems_attempted"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

type UserTopicRating struct {
	ID                int32     `json:"id"`
	UserID            int32     `json:"user_id"`
	Topic             string    `json:"topic"`
	Rating            int32     `json:"rating"`
	ProblemsSolved    int32     `json:"problems_solved"`
	ProblemsAttempted int32     `json:"problems_attempted"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type WeakTopic struct {
	ID                int32      `json:"id"`
	UserID            int32      `json:"user_id"`
	Topic             string     `json:"topic"`
	CurrentLevel      int32      `json:"current_level"`
	TargetLevel       int32      `json:"target_level"`
	ConsecutiveSolves int32      `json:"consecutive_solves"`
	TotalAttempts     int32      `json:"total_attempts"`
	TotalFailures     int32      `json:"total_failures"`
	DetectedAt        time.Time  `json:"detected_at"`
	LastAttemptAt     *time.Time `json:"last_attempt_at"`
	LastLevelUpAt     *time.Time `json:"last_level_up_at"`
	ResolvedAt        *time.Time `json:"resolved_at"`
	IsActive          bool       `json:"is_active"`
}

type Contest struct {
	ID               int32         `json:"id"`
	UserID           int32         `json:"user_id"`
	Status           ContestStatus `json:"status"`
	RatingAtStart    int32         `json:"rating_at_start"`
	RatingChange     int32         `json:"rating_change"`
	NumProblems      int32         `json:"num_problems"`
	TargetDifficulty int32         `json:"target_difficulty"`
	StartedAt        time.Time     `json:"started_at"`
	EndedAt          *time.Time    `json:"ended_at"`
	TimeLimitMinutes int32         `json:"time_limit_minutes"`
	ProblemsSolved   int32         `json:"problems_solved"`
	TotalTimeSeconds int32         `json:"total_time_seconds"`
}

type ContestProblem struct {
	ID                 int32            `json:"id"`
	ContestID          int32            `json:"contest_id"`
	ProblemID          string           `json:"problem_id"`
	ProblemName        string           `json:"problem_name"`
	ProblemUrl         *string          `json:"problem_url"`
	Topic              string           `json:"topic"`
	Difficulty         int32            `json:"difficulty"`
	Source             string           `json:"source"`
	IsWeakTopicProblem bool             `json:"is_weak_topic_problem"`
	Status             SubmissionStatus `json:"status"`
	StartedAt          *time.Time       `json:"started_at"`
	SubmittedAt        *time.Time       `json:"submitted_at"`
	TimeTakenSeconds   *int32           `json:"time_taken_seconds"`
	Attempts           int32            `json:"attempts"`
}

type ProblemHistory struct {
	ID              int32     `json:"id"`
	UserID          int32     `json:"user_id"`
	ProblemID       string    `json:"problem_id"`
	LastAttemptedAt time.Time `json:"last_attempted_at"`
	TimesAttempted  int32     `json:"times_attempted"`
	TimesSolved     int32     `json:"times_solved"`
	BestTimeSeconds *int32    `json:"best_time_seconds"`
}
