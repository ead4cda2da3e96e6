package database

import (
	"context"
)

type Querier interface {
	// users
	CreateUser(ctx context.Context, arg CreateUserParams) (User, error)
	GetUserByID(ctx context.Context, id int32) (User, error)
	GetUserByUsername(ctx context.Context, username string) (User, error)
	ListUsers(ctx context.Context, arg ListUsersParams) ([]User, error)
	UpdateUserEmail(ctx context.Context, arg UpdateUserEmailParams) (User, error)
	UpdateUserContestStats(ctx context.Context, arg UpdateUserContestStatsParams) (User, error)
	DeleteUser(ctx context.Context, id int32) error
	CountUsers(ctx context.Context) (int64, error)

	// contests
	CreateContest(ctx context.Context, arg CreateContestParams) (Contest, error)
	GetContestByID(ctx context.Context, id int32) (Contest, error)
	GetContestForUpdate(ctx context.Context, id int32) (Contest, error)
	GetActiveContestByUser(ctx context.Context, userID int32) (Contest, error)
	ListContestsByUser(ctx context.Context, arg ListContestsByUserParams) ([]Contest, error)
	ListCompletedContestsByUser(ctx context.Context, userID int32) ([]Contest, error)
	FinishContest(ctx context.Context, arg FinishContestParams) (Contest, error)
	CountContests(ctx context.Context) (int64, error)
	CountContestsByStatus(ctx context.Context, status ContestStatus) (int64, error)
	CountCompletedContestsByUser(ctx context.Context, userID int32) (int64, error)
	CountPerfectContestsByUser(ctx context.Context, userID int32) (int64, error)

	// contest problems
	CreateContestProblem(ctx context.Context, arg CreateContestProblemParams) (ContestProblem, error)
	ListContestProblems(ctx context.Context, contestID int32) ([]ContestProblem, error)
	GetContestProblem(ctx context.Context, arg GetContestProblemParams) (ContestProblem, error)
	MarkContestProblemStarted(ctx context.Context, arg MarkContestProblemStartedParams) (ContestProblem, error)
	RecordContestProblemSubmission(ctx context.Context, arg RecordContestProblemSubmissionParams) (ContestProblem, error)
	AverageSolveTimeByUser(ctx context.Context, userID int32) (*float64, error)

	// topic ratings
	GetTopicRating(ctx context.Context, arg GetTopicRatingParams) (UserTopicRating, error)
	CreateTopicRating(ctx context.Context, arg CreateTopicRatingParams) (UserTopicRating, error)
	UpdateTopicRating(ctx context.Context, arg UpdateTopicRatingParams) (UserTopicRating, error)
	ListTopicRatingsByUser(ctx context.Context, userID int32) ([]UserTopicRating, error)

	// weak topics
	GetActiveWeakTopic(ctx context.Context, arg GetActiveWeakTopicParams) (WeakTopic, error)
	CreateWeakTopic(ctx context.Context, arg CreateWeakTopicParams) (WeakTopic, error)
	UpdateWeakTopicProgress(ctx context.Context, arg UpdateWeakTopicProgressParams) (WeakTopic, error)
	ListWeakTopicsByUser(ctx context.Context, userID int32) ([]WeakTopic, error)
	ListActiveWeakTopicsByUser(ctx context.Context, userID int32) ([]WeakTopic, error)
	CountActiveWeakTopicsByUser(ctx context.Context, userID int32) (int64, error)

	// problem history
	ListRecentProblemIDs(ctx context.Context, arg ListRecentProblemIDsParams) ([]string, error)
	UpsertProblemHistory(ctx context.Context, arg UpsertProblemHistoryParams) (ProblemHistory, error)
}

var _ Querier = (*Queries)(nil)
