package contest_service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/mastercp/arena/internal/arena_errors"
	"github.com/mastercp/arena/internal/database"
)

// StartProblem stamps the moment the user opened a problem, used later
// to derive time taken when the client does not report it. Calling it
// again for the same problem is a no-op.
func (c *ContestService) StartProblem(
	ctx context.Context,
	contestID int32,
	problemID string,
) (problem database.ContestProblem, err error) {
	err = c.DB.ExecTx(ctx, func(q database.Store) error {
		if _, txErr := c.lockActiveContest(ctx, q, contestID); txErr != nil {
			return txErr
		}

		var txErr error
		problem, txErr = q.GetContestProblem(ctx, database.GetContestProblemParams{
			ContestID: contestID,
			ProblemID: problemID,
		})
		if txErr != nil {
			if errors.Is(txErr, pgx.ErrNoRows) {
				return fmt.Errorf(
					"%w, contest %d has no problem %s",
					arena_errors.ErrNotFound, contestID, problemID,
				)
			}
			return arena_errors.HandleDBErrors(txErr, nil, "failed to fetch contest problem")
		}
		if problem.StartedAt != nil {
			return nil
		}

		problem, txErr = q.MarkContestProblemStarted(ctx, database.MarkContestProblemStartedParams{
			ID:        problem.ID,
			StartedAt: c.now(),
		})
		if txErr != nil {
			return arena_errors.HandleDBErrors(txErr, nil, "failed to mark problem started")
		}
		return nil
	})
	return
}
