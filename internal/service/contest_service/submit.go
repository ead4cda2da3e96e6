package contest_service

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

// Submit records the verdict of a single problem and feeds it into the
// adaptive model. An unsolved submission is final, a problem cannot be
// retried once judged.
func (c *ContestService) Submit(
	ctx context.Context,
	contestID int32,
	request SubmitRequest,
) (result SubmitResult, err error) {
	return c.submit(ctx, contestID, request, database.SubmissionStatusFailed)
}

// Skip marks a problem as given up. The adaptive model treats a skip
// like a failed attempt.
func (c *ContestService) Skip(
	ctx context.Context,
	contestID int32,
	problemID string,
) (result SubmitResult, err error) {
	return c.submit(
		ctx,
		contestID,
		SubmitRequest{ProblemID: problemID},
		database.SubmissionStatusSkipped,
	)
}

// SubmitAll records a batch of verdicts. Entries are processed in order
// and one bad entry does not abort the rest, its error is reported in
// the per-entry result instead.
func (c *ContestService) SubmitAll(
	ctx context.Context,
	contestID int32,
	request SubmitAllRequest,
) (results []SubmitResult, err error) {
	if err = service.ValidateInput(request); err != nil {
		return
	}

	results = make([]SubmitResult, 0, len(request.Submissions))
	for _, submission := range request.Submissions {
		result, submitErr := c.Submit(ctx, contestID, submission)
		if submitErr != nil {
			results = append(results, SubmitResult{
				ContestID: contestID,
				ProblemID: submission.ProblemID,
				Status:    "error",
				Message:   submitErr.Error(),
			})
			continue
		}
		results = append(results, result)
	}
	return
}

func (c *ContestService) submit(
	ctx context.Context,
	contestID int32,
	request SubmitRequest,
	failStatus database.SubmissionStatus,
) (result SubmitResult, err error) {
	if err = service.ValidateInput(request); err != nil {
		return
	}

	var effect struct {
		detected bool
		improved bool
		resolved bool
		topic    string
	}

	err = c.DB.ExecTx(ctx, func(q database.Store) error {
		contest, txErr := c.lockActiveContest(ctx, q, contestID)
		if txErr != nil {
			return txErr
		}

		now := c.now()
		limit := time.Duration(contest.TimeLimitMinutes) * time.Minute
		if now.Sub(contest.StartedAt) > limit {
			return fmt.Errorf(
				"%w, contest %d started at %s with a %d minute limit",
				arena_errors.ErrTimeLimitExceeded,
				contestID, contest.StartedAt.Format(time.RFC3339), contest.TimeLimitMinutes,
			)
		}

		cp, txErr := q.GetContestProblem(ctx, database.GetContestProblemParams{
			ContestID: contestID,
			ProblemID: request.ProblemID,
		})
		if txErr != nil {
			if errors.Is(txErr, pgx.ErrNoRows) {
				return fmt.Errorf(
					"%w, contest %d has no problem %s",
					arena_errors.ErrNotFound, contestID, request.ProblemID,
				)
			}
			return arena_errors.HandleDBErrors(txErr, nil, "failed to fetch contest problem")
		}
		if cp.Status != database.SubmissionStatusPending {
			return fmt.Errorf(
				"%w, problem %s was already judged as %s",
				arena_errors.ErrInvalidState, request.ProblemID, cp.Status,
			)
		}

		status := failStatus
		if request.Solved {
			status = database.SubmissionStatusSolved
		}

		timeTaken := c.resolveTimeTaken(request, cp, now)

		cp, txErr = q.RecordContestProblemSubmission(ctx, database.RecordContestProblemSubmissionParams{
			ID:               cp.ID,
			Status:           status,
			SubmittedAt:      now,
			TimeTakenSeconds: &timeTaken,
		})
		if txErr != nil {
			return arena_errors.HandleDBErrors(txErr, nil, "failed to record submission")
		}

		_, txErr = q.UpsertProblemHistory(ctx, database.UpsertProblemHistoryParams{
			UserID:           contest.UserID,
			ProblemID:        cp.ProblemID,
			AttemptedAt:      now,
			Solved:           request.Solved,
			TimeTakenSeconds: &timeTaken,
		})
		if txErr != nil {
			return arena_errors.HandleDBErrors(txErr, nil, "failed to record problem history")
		}

		user, txErr := q.GetUserByID(ctx, contest.UserID)
		if txErr != nil {
			return arena_errors.HandleDBErrors(txErr, nil, "failed to fetch user")
		}

		submissionEffect, txErr := c.RatingServiceConfig.ApplySubmission(
			ctx, q, user, cp.Topic, request.Solved,
		)
		if txErr != nil {
			return txErr
		}
		effect.detected = submissionEffect.WeakTopicDetected
		effect.improved = submissionEffect.WeakTopicImproved
		effect.resolved = submissionEffect.WeakTopicResolved
		effect.topic = submissionEffect.Topic

		result = SubmitResult{
			ContestID:        contestID,
			ProblemID:        cp.ProblemID,
			Status:           string(cp.Status),
			TimeTakenSeconds: cp.TimeTakenSeconds,
			Message:          submitMessage(status),
		}
		return nil
	})
	if err != nil {
		return
	}

	fields := log.Fields{
		"contest_id": contestID,
		"problem_id": request.ProblemID,
		"status":     result.Status,
	}
	if effect.detected {
		fields["weak_topic_detected"] = effect.topic
	}
	if effect.improved {
		fields["weak_topic_improved"] = effect.topic
	}
	if effect.resolved {
		fields["weak_topic_resolved"] = effect.topic
	}
	log.WithFields(fields).Info("submission recorded")

	return
}

// resolveTimeTaken settles the time spent on a problem. A client
// supplied value wins, otherwise the gap since the problem was started,
// otherwise zero.
func (c *ContestService) resolveTimeTaken(
	request SubmitRequest,
	cp database.ContestProblem,
	now time.Time,
) int32 {
	if request.TimeTakenSeconds != nil {
		return *request.TimeTakenSeconds
	}
	if cp.StartedAt != nil {
		elapsed := int32(now.Sub(*cp.StartedAt) / time.Second)
		if elapsed < 0 {
			elapsed = 0
		}
		return elapsed
	}
	return 0
}

func submitMessage(status database.SubmissionStatus) string {
	switch status {
	case database.SubmissionStatusSolved:
		return "problem solved"
	case database.SubmissionStatusSkipped:
		return "problem skipped"
	default:
		return "problem failed"
	}
}
