package rating_service

import (
	"context"

	"github.com/mastercp/arena/internal/arena_errors"
	"github.com/mastercp/arena/internal/database"
	"github.com/mastercp/arena/internal/service"
	log "github.com/sirupsen/logrus"
)

// ContestOutcome is the aggregated effect of ending a contest.
type ContestOutcome struct {
	User               database.User
	OldRating          int32
	NewRating          int32
	RatingChange       int32
	ProblemsSolved     int32
	TotalTimeSeconds   int32
	TopicsPassed       []string
	TopicsFailed       []string
	NewWeakTopics      []string
	WeakTopicsImproved []string
}

// FinalizeContest applies the all-or-nothing contest rating rule and
// gathers the topic report. Per-topic and weak-topic state was already
// updated per submission; here only the user aggregate moves. Problems
// still pending count as unsolved.
func (r *RatingService) FinalizeContest(
	ctx context.Context,
	db database.Store,
	contest database.Contest,
	problems []database.ContestProblem,
) (outcome ContestOutcome, err error) {
	user, err := db.GetUserByID(ctx, contest.UserID)
	if err != nil {
		err = arena_errors.HandleDBErrors(err, nil, "failed to fetch contest owner")
		return
	}

	outcome.TopicsPassed = []string{}
	outcome.TopicsFailed = []string{}

	allSolved := len(problems) > 0
	for _, p := range problems {
		if p.Status == database.SubmissionStatusSolved {
			outcome.ProblemsSolved++
			if p.TimeTakenSeconds != nil {
				outcome.TotalTimeSeconds += *p.TimeTakenSeconds
			}
			outcome.TopicsPassed = appendTopic(outcome.TopicsPassed, p.Topic)
		} else {
			allSolved = false
			outcome.TopicsFailed = appendTopic(outcome.TopicsFailed, p.Topic)
		}
	}

	if allSolved {
		outcome.RatingChange = r.perfectContestBonus()
	}
	outcome.OldRating = user.Rating
	outcome.NewRating = service.ClampRating(user.Rating + outcome.RatingChange)

	outcome.User, err = db.UpdateUserContestStats(ctx, database.UpdateUserContestStatsParams{
		ID:                user.ID,
		Rating:            outcome.NewRating,
		ProblemsSolved:    outcome.ProblemsSolved,
		ProblemsAttempted: int32(len(problems)),
	})
	if err != nil {
		err = arena_errors.HandleDBErrors(err, nil, "failed to update user contest stats")
		return
	}

	outcome.NewWeakTopics, outcome.WeakTopicsImproved, err = r.weakTopicReport(ctx, db, contest)
	if err != nil {
		return
	}

	log.WithFields(log.Fields{
		"contest_id":    contest.ID,
		"user_id":       user.ID,
		"rating_change": outcome.RatingChange,
		"new_rating":    outcome.NewRating,
	}).Info("contest finalized")

	return
}

// weakTopicReport partitions the user's weak topics into those created
// and those advanced while this contest was running.
func (r *RatingService) weakTopicReport(
	ctx context.Context,
	db database.Store,
	contest database.Contest,
) (created, improved []string, err error) {
	weakTopics, err := db.ListWeakTopicsByUser(ctx, contest.UserID)
	if err != nil {
		err = arena_errors.HandleDBErrors(err, nil, "failed to list weak topics")
		return
	}

	created = []string{}
	improved = []string{}
	for _, wt := range weakTopics {
		if !wt.DetectedAt.Before(contest.StartedAt) {
			created = append(created, wt.Topic)
		}
		if wt.LastLevelUpAt != nil && !wt.LastLevelUpAt.Before(contest.StartedAt) {
			improved = append(improved, wt.Topic)
		}
	}
	return
}

func appendTopic(topics []string, topic string) []string {
	for _, t := range topics {
		if t == topic {
			return topics
		}
	}
	return append(topics, topic)
}
