package contest_service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/mastercp/arena/internal/arena_errors"
	"github.com/mastercp/arena/internal/database"
	log "github.com/sirupsen/logrus"
)

// End closes an active contest, settles the rating and returns the full
// report. Problems never submitted stay pending and count as unsolved.
func (c *ContestService) End(
	ctx context.Context,
	contestID int32,
) (result ContestResult, err error) {
	var userID int32
	var newRating int32

	err = c.DB.ExecTx(ctx, func(q database.Store) error {
		contest, txErr := c.lockActiveContest(ctx, q, contestID)
		if txErr != nil {
			return txErr
		}

		problems, txErr := q.ListContestProblems(ctx, contestID)
		if txErr != nil {
			return arena_errors.HandleDBErrors(txErr, nil, "failed to list contest problems")
		}

		outcome, txErr := c.RatingServiceConfig.FinalizeContest(ctx, q, contest, problems)
		if txErr != nil {
			return txErr
		}

		contest, txErr = q.FinishContest(ctx, database.FinishContestParams{
			ID:               contestID,
			Status:           database.ContestStatusCompleted,
			EndedAt:          c.now(),
			RatingChange:     outcome.RatingChange,
			ProblemsSolved:   outcome.ProblemsSolved,
			TotalTimeSeconds: outcome.TotalTimeSeconds,
		})
		if txErr != nil {
			return arena_errors.HandleDBErrors(txErr, nil, "failed to finish contest")
		}

		userID = contest.UserID
		newRating = outcome.NewRating

		result = ContestResult{
			ContestID:          contest.ID,
			Status:             contest.Status,
			ProblemsSolved:     outcome.ProblemsSolved,
			TotalProblems:      int32(len(problems)),
			TotalTimeSeconds:   outcome.TotalTimeSeconds,
			OldRating:          outcome.OldRating,
			NewRating:          outcome.NewRating,
			RatingChange:       outcome.RatingChange,
			TopicsPassed:       outcome.TopicsPassed,
			TopicsFailed:       outcome.TopicsFailed,
			NewWeakTopics:      outcome.NewWeakTopics,
			WeakTopicsImproved: outcome.WeakTopicsImproved,
			Problems:           problemResults(problems),
		}
		return nil
	})
	if err != nil {
		return
	}

	// best effort, the contest result is already committed
	if c.LeaderboardServiceConfig != nil {
		if lbErr := c.LeaderboardServiceConfig.UpdateScore(ctx, userID, newRating); lbErr != nil {
			log.Errorf("failed to update leaderboard for user %d, %v", userID, lbErr)
		}
	}

	return
}

// Abandon closes an active contest without touching any rating state.
func (c *ContestService) Abandon(
	ctx context.Context,
	contestID int32,
) (contest database.Contest, err error) {
	err = c.DB.ExecTx(ctx, func(q database.Store) error {
		locked, txErr := c.lockActiveContest(ctx, q, contestID)
		if txErr != nil {
			return txErr
		}

		contest, txErr = q.FinishContest(ctx, database.FinishContestParams{
			ID:               contestID,
			Status:           database.ContestStatusAbandoned,
			EndedAt:          c.now(),
			RatingChange:     0,
			ProblemsSolved:   locked.ProblemsSolved,
			TotalTimeSeconds: locked.TotalTimeSeconds,
		})
		if txErr != nil {
			return arena_errors.HandleDBErrors(txErr, nil, "failed to abandon contest")
		}
		return nil
	})
	if err != nil {
		return
	}

	log.WithFields(log.Fields{
		"contest_id": contestID,
		"user_id":    contest.UserID,
	}).Info("contest abandoned")

	return
}

func (c *ContestService) lockActiveContest(
	ctx context.Context,
	q database.Store,
	contestID int32,
) (contest database.Contest, err error) {
	contest, err = q.GetContestForUpdate(ctx, contestID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = fmt.Errorf("%w, no contest exist with id %d", arena_errors.ErrNotFound, contestID)
			return
		}
		err = arena_errors.HandleDBErrors(err, nil, "failed to fetch contest")
		return
	}
	if contest.Status != database.ContestStatusActive {
		err = fmt.Errorf(
			"%w, contest %d is %s",
			arena_errors.ErrInvalidState, contestID, contest.Status,
		)
	}
	return
}

func problemResults(problems []database.ContestProblem) []ProblemResult {
	results := make([]ProblemResult, 0, len(problems))
	for _, p := range problems {
		results = append(results, ProblemResult{
			ProblemID:          p.ProblemID,
			ProblemName:        p.ProblemName,
			Topic:              p.Topic,
			Difficulty:         p.Difficulty,
			Solved:             p.Status == database.SubmissionStatusSolved,
			TimeTakenSeconds:   p.TimeTakenSeconds,
			IsWeakTopicProblem: p.IsWeakTopicProblem,
		})
	}
	return results
}
