package contest_service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/mastercp/arena/internal/arena_errors"
	"github.com/mastercp/arena/internal/database"
)

// GetContest returns a contest with its problem set.
func (c *ContestService) GetContest(
	ctx context.Context,
	contestID int32,
) (detail ContestDetail, err error) {
	contest, err := c.DB.GetContestByID(ctx, contestID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = fmt.Errorf("%w, no contest exist with id %d", arena_errors.ErrNotFound, contestID)
			return
		}
		err = arena_errors.HandleDBErrors(err, nil, "failed to fetch contest")
		return
	}
	return c.attachProblems(ctx, contest)
}

// GetActiveContest returns the user's running contest, or nil when the
// user has none.
func (c *ContestService) GetActiveContest(
	ctx context.Context,
	userID int32,
) (detail *ContestDetail, err error) {
	if _, err = c.requireUser(ctx, userID); err != nil {
		return
	}

	contest, err := c.DB.GetActiveContestByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		err = arena_errors.HandleDBErrors(err, nil, "failed to fetch active contest")
		return
	}

	full, err := c.attachProblems(ctx, contest)
	if err != nil {
		return
	}
	return &full, nil
}

// GetUserContests returns the user's contests, newest first.
func (c *ContestService) GetUserContests(
	ctx context.Context,
	userID int32,
	limit, offset int32,
) (contests []database.Contest, err error) {
	if _, err = c.requireUser(ctx, userID); err != nil {
		return
	}

	contests, err = c.DB.ListContestsByUser(ctx, database.ListContestsByUserParams{
		UserID: userID,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		err = arena_errors.HandleDBErrors(err, nil, "failed to list contests")
	}
	return
}

// GetUserContestDetail returns one of the user's contests with its
// problems. A contest owned by someone else is reported as not found.
func (c *ContestService) GetUserContestDetail(
	ctx context.Context,
	userID, contestID int32,
) (detail ContestDetail, err error) {
	detail, err = c.GetContest(ctx, contestID)
	if err != nil {
		return
	}
	if detail.UserID != userID {
		err = fmt.Errorf(
			"%w, user %d has no contest with id %d",
			arena_errors.ErrNotFound, userID, contestID,
		)
	}
	return
}

func (c *ContestService) attachProblems(
	ctx context.Context,
	contest database.Contest,
) (detail ContestDetail, err error) {
	problems, err := c.DB.ListContestProblems(ctx, contest.ID)
	if err != nil {
		err = arena_errors.HandleDBErrors(err, nil, "failed to list contest problems")
		return
	}
	detail = ContestDetail{Contest: contest, Problems: problems}
	return
}

func (c *ContestService) requireUser(
	ctx context.Context,
	userID int32,
) (user database.User, err error) {
	user, err = c.DB.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = fmt.Errorf("%w, no user exist with id %d", arena_errors.ErrNotFound, userID)
			return
		}
		err = arena_errors.HandleDBErrors(err, nil, "failed to fetch user")
	}
	return
}
