package rating_service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/mastercp/arena/internal/arena_errors"
	"github.com/mastercp/arena/internal/database"
	"github.com/mastercp/arena/internal/service"
	log "github.com/sirupsen/logrus"
)

func (r *RatingService) clockNow() time.Time {
	if r.Clock != nil {
		return r.Clock()
	}
	return service.RealClock()
}

func (r *RatingService) solveRatingStep() int32 {
	if r.SolveRatingStep > 0 {
		return r.SolveRatingStep
	}
	return DefaultSolveRatingStep
}

func (r *RatingService) detectionMinAttempts() int32 {
	if r.DetectionMinAttempts > 0 {
		return r.DetectionMinAttempts
	}
	return DefaultDetectionMinAttempts
}

func (r *RatingService) detectionFailureRate() float64 {
	if r.DetectionFailureRate > 0 {
		return r.DetectionFailureRate
	}
	return DefaultDetectionFailureRate
}

func (r *RatingService) detectionLevelDrop() int32 {
	if r.DetectionLevelDrop > 0 {
		return r.DetectionLevelDrop
	}
	return DefaultDetectionLevelDrop
}

func (r *RatingService) solvesToAdvance() int32 {
	if r.SolvesToAdvance > 0 {
		return r.SolvesToAdvance
	}
	return DefaultSolvesToAdvance
}

func (r *RatingService) levelStep() int32 {
	if r.LevelStep > 0 {
		return r.LevelStep
	}
	return DefaultLevelStep
}

func (r *RatingService) perfectContestBonus() int32 {
	if r.PerfectContestBonus > 0 {
		return r.PerfectContestBonus
	}
	return DefaultPerfectContestBonus
}

func (r *RatingService) targetLevelMargin() int32 {
	if r.TargetLevelMargin > 0 {
		return r.TargetLevelMargin
	}
	return DefaultTargetLevelMargin
}

// TargetDifficultyFor is the difficulty a contest should aim at for a
// user with the given rating. Deliberately not clamped to the rating
// bounds, a top rated user still gets problems above the ceiling.
func (r *RatingService) TargetDifficultyFor(rating int32) int32 {
	return rating + r.targetLevelMargin()
}

// ApplySubmission updates the per-topic rating and the weak topic state
// of a user for a single judged attempt. Runs against the store of the
// caller so the whole submission stays in one transaction.
func (r *RatingService) ApplySubmission(
	ctx context.Context,
	db database.Store,
	user database.User,
	topic string,
	solved bool,
) (effect SubmissionEffect, err error) {
	effect.Topic = topic

	topicRating, err := r.bumpTopicRating(ctx, db, user, topic, solved)
	if err != nil {
		return
	}

	weakTopic, err := db.GetActiveWeakTopic(ctx, database.GetActiveWeakTopicParams{
		UserID: user.ID,
		Topic:  topic,
	})
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			err = arena_errors.HandleDBErrors(err, nil, "failed to fetch weak topic")
			return
		}
		// no active remediation for this topic. a failure may start one
		if !solved {
			effect.WeakTopicDetected, err = r.detectWeakTopic(ctx, db, user, topicRating)
		}
		return
	}

	effect.WeakTopicImproved, effect.WeakTopicResolved, err = r.progressWeakTopic(
		ctx, db, weakTopic, solved,
	)
	return
}

// bumpTopicRating lazily creates the topic rating and applies the
// attempt. Topic ratings never decrease.
func (r *RatingService) bumpTopicRating(
	ctx context.Context,
	db database.Store,
	user database.User,
	topic string,
	solved bool,
) (topicRating database.UserTopicRating, err error) {
	topicRating, err = db.GetTopicRating(ctx, database.GetTopicRatingParams{
		UserID: user.ID,
		Topic:  topic,
	})
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			err = arena_errors.HandleDBErrors(err, nil, "failed to fetch topic rating")
			return
		}
		// first attempt in this topic. start at the user's overall rating
		topicRating, err = db.CreateTopicRating(ctx, database.CreateTopicRatingParams{
			UserID: user.ID,
			Topic:  topic,
			Rating: service.ClampRating(user.Rating),
		})
		if err != nil {
			err = arena_errors.HandleDBErrors(err, nil, "failed to create topic rating")
			return
		}
	}

	newRating := topicRating.Rating
	newSolved := topicRating.ProblemsSolved
	if solved {
		newSolved++
		newRating = service.ClampRating(newRating + r.solveRatingStep())
	}

	topicRating, err = db.UpdateTopicRating(ctx, database.UpdateTopicRatingParams{
		ID:                topicRating.ID,
		Rating:            newRating,
		ProblemsSolved:    newSolved,
		ProblemsAttempted: topicRating.ProblemsAttempted + 1,
	})
	if err != nil {
		err = arena_errors.HandleDBErrors(err, nil, "failed to update topic rating")
	}
	return
}

// detectWeakTopic creates a remediation record once a topic shows a
// failure rate of at least 50% over two or more attempts.
func (r *RatingService) detectWeakTopic(
	ctx context.Context,
	db database.Store,
	user database.User,
	topicRating database.UserTopicRating,
) (detected bool, err error) {
	if topicRating.ProblemsAttempted < r.detectionMinAttempts() {
		return
	}
	failureRate := 1 - float64(topicRating.ProblemsSolved)/float64(topicRating.ProblemsAttempted)
	if failureRate < r.detectionFailureRate() {
		return
	}

	weakTopic, err := db.CreateWeakTopic(ctx, database.CreateWeakTopicParams{
		UserID:       user.ID,
		Topic:        topicRating.Topic,
		CurrentLevel: service.ClampRating(user.Rating - r.detectionLevelDrop()),
		TargetLevel:  service.ClampRating(user.Rating + r.targetLevelMargin()),
		DetectedAt:   r.clockNow(),
	})
	if err != nil {
		err = arena_errors.HandleDBErrors(err, nil, "failed to create weak topic")
		return
	}

	log.WithFields(log.Fields{
		"user_id":       user.ID,
		"topic":         weakTopic.Topic,
		"current_level": weakTopic.CurrentLevel,
		"target_level":  weakTopic.TargetLevel,
	}).Info("weak topic detected")

	return true, nil
}

// progressWeakTopic advances or resets the remediation streak. Levels
// only move up; the record deactivates once the target level is reached.
func (r *RatingService) progressWeakTopic(
	ctx context.Context,
	db database.Store,
	weakTopic database.WeakTopic,
	solved bool,
) (improved, resolved bool, err error) {
	now := r.clockNow()
	arg := database.UpdateWeakTopicProgressParams{
		ID:                weakTopic.ID,
		CurrentLevel:      weakTopic.CurrentLevel,
		ConsecutiveSolves: weakTopic.ConsecutiveSolves,
		TotalAttempts:     weakTopic.TotalAttempts + 1,
		TotalFailures:     weakTopic.TotalFailures,
		LastAttemptAt:     &now,
		LastLevelUpAt:     weakTopic.LastLevelUpAt,
		ResolvedAt:        weakTopic.ResolvedAt,
		IsActive:          weakTopic.IsActive,
	}

	if solved {
		arg.ConsecutiveSolves++
		if arg.ConsecutiveSolves >= r.solvesToAdvance() {
			arg.CurrentLevel = service.ClampRating(arg.CurrentLevel + r.levelStep())
			arg.ConsecutiveSolves = 0
			arg.LastLevelUpAt = &now
			improved = true

			if arg.CurrentLevel >= weakTopic.TargetLevel {
				arg.IsActive = false
				arg.ResolvedAt = &now
				resolved = true
			}
		}
	} else {
		arg.TotalFailures++
		arg.ConsecutiveSolves = 0
	}

	if _, err = db.UpdateWeakTopicProgress(ctx, arg); err != nil {
		err = arena_errors.HandleDBErrors(
			err,
			nil,
			fmt.Sprintf("failed to update weak topic %d", weakTopic.ID),
		)
		return
	}

	if resolved {
		log.WithFields(log.Fields{
			"user_id": weakTopic.UserID,
			"topic":   weakTopic.Topic,
			"level":   arg.CurrentLevel,
		}).Info("weak topic resolved")
	}
	return
}
