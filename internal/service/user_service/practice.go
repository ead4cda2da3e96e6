package user_service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/mastercp/arena/internal/arena_errors"
	"github.com/mastercp/arena/internal/database"
	"github.com/mastercp/arena/internal/service/catalog_service"
)

const defaultPracticeLimit = 10

// PracticeProblems suggests catalog problems for one of the user's
// active weak topics. The difficulty band runs from just under the
// topic's current level up to its target level, so drills stay near
// the edge of what the user can solve.
func (u *UserService) PracticeProblems(
	ctx context.Context,
	userID int32,
	topic string,
	limit int,
) (problems []catalog_service.Problem, err error) {
	if _, err = u.GetUser(ctx, userID); err != nil {
		return
	}

	weakTopic, err := u.DB.GetActiveWeakTopic(ctx, database.GetActiveWeakTopicParams{
		UserID: userID,
		Topic:  topic,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = fmt.Errorf(
				"%w, no active weak topic %s for user %d",
				arena_errors.ErrNotFound, topic, userID,
			)
			return
		}
		err = arena_errors.HandleDBErrors(err, nil, "failed to fetch weak topic")
		return
	}

	if limit <= 0 {
		limit = defaultPracticeLimit
	}
	tolerance := u.CatalogServiceConfig.Tolerance()
	problems = u.CatalogServiceConfig.ProblemsForTopic(
		topic,
		weakTopic.CurrentLevel-tolerance,
		weakTopic.TargetLevel+tolerance,
		limit,
	)
	return
}
