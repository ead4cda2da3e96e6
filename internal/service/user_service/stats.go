package user_service

import (
	"context"

	"github.com/mastercp/arena/internal/arena_errors"
)

// GetStatistics aggregates the user's practice record across contests,
// submissions and weak topics.
func (u *UserService) GetStatistics(
	ctx context.Context,
	userID int32,
) (stats UserStatistics, err error) {
	user, err := u.GetUser(ctx, userID)
	if err != nil {
		return
	}

	completed, err := u.DB.CountCompletedContestsByUser(ctx, userID)
	if err != nil {
		err = arena_errors.HandleDBErrors(err, nil, "failed to count completed contests")
		return
	}

	perfect, err := u.DB.CountPerfectContestsByUser(ctx, userID)
	if err != nil {
		err = arena_errors.HandleDBErrors(err, nil, "failed to count perfect contests")
		return
	}

	averageSolveTime, err := u.DB.AverageSolveTimeByUser(ctx, userID)
	if err != nil {
		err = arena_errors.HandleDBErrors(err, nil, "failed to compute average solve time")
		return
	}

	activeWeakTopics, err := u.DB.CountActiveWeakTopicsByUser(ctx, userID)
	if err != nil {
		err = arena_errors.HandleDBErrors(err, nil, "failed to count weak topics")
		return
	}

	// rating curve, one point per completed contest in finishing order
	completedContests, err := u.DB.ListCompletedContestsByUser(ctx, userID)
	if err != nil {
		err = arena_errors.HandleDBErrors(err, nil, "failed to list completed contests")
		return
	}
	ratingHistory := make([]RatingHistoryEntry, 0, len(completedContests))
	for _, contest := range completedContests {
		ratingHistory = append(ratingHistory, RatingHistoryEntry{
			Date:   contest.EndedAt,
			Rating: contest.RatingAtStart + contest.RatingChange,
			Change: contest.RatingChange,
		})
	}

	topicRatings, err := u.DB.ListTopicRatingsByUser(ctx, userID)
	if err != nil {
		err = arena_errors.HandleDBErrors(err, nil, "failed to list topic ratings")
		return
	}
	topicDistribution := make(map[string]int32, len(topicRatings))
	for _, tr := range topicRatings {
		topicDistribution[tr.Topic] = tr.ProblemsSolved
	}

	stats = UserStatistics{
		UserID:                 user.ID,
		Username:               user.Username,
		Rating:                 user.Rating,
		RatingHistory:          ratingHistory,
		TopicDistribution:      topicDistribution,
		TotalContests:          user.TotalContests,
		CompletedContests:      completed,
		PerfectContests:        perfect,
		TotalProblemsSolved:    user.TotalProblemsSolved,
		TotalProblemsAttempted: user.TotalProblemsAttempted,
		AverageSolveTimeSecs:   averageSolveTime,
		ActiveWeakTopics:       activeWeakTopics,
	}
	if completed > 0 {
		stats.WinRate = float64(perfect) / float64(completed) * 100
	}
	if user.TotalProblemsAttempted > 0 {
		stats.SolveRate = float64(user.TotalProblemsSolved) / float64(user.TotalProblemsAttempted)
	}
	return
}
