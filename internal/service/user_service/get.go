package user_service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/mastercp/arena/internal/arena_errors"
	"github.com/mastercp/arena/internal/database"
)

func (u *UserService) GetUser(ctx context.Context, userID int32) (user database.User, err error) {
	user, err = u.DB.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = fmt.Errorf("%w, no user exist with id %d", arena_errors.ErrNotFound, userID)
			return
		}
		err = arena_errors.HandleDBErrors(err, nil, "failed to fetch user")
	}
	return
}

func (u *UserService) GetUserByUsername(ctx context.Context, username string) (user database.User, err error) {
	user, err = u.DB.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = fmt.Errorf("%w, no user exist with username %s", arena_errors.ErrNotFound, username)
			return
		}
		err = arena_errors.HandleDBErrors(err, nil, "failed to fetch user")
	}
	return
}

// ListUsers returns users ordered by rating, highest first.
func (u *UserService) ListUsers(ctx context.Context, limit, offset int32) (users []database.User, err error) {
	users, err = u.DB.ListUsers(ctx, database.ListUsersParams{Limit: limit, Offset: offset})
	if err != nil {
		err = arena_errors.HandleDBErrors(err, nil, "failed to list users")
	}
	return
}

// GetTopicRatings returns the user's per-topic ratings.
func (u *UserService) GetTopicRatings(
	ctx context.Context,
	userID int32,
) (ratings []database.UserTopicRating, err error) {
	if _, err = u.GetUser(ctx, userID); err != nil {
		return
	}
	ratings, err = u.DB.ListTopicRatingsByUser(ctx, userID)
	if err != nil {
		err = arena_errors.HandleDBErrors(err, nil, "failed to list topic ratings")
	}
	return
}

// GetWeakTopics returns the user's weak topics. With activeOnly set,
// resolved ones are left out.
func (u *UserService) GetWeakTopics(
	ctx context.Context,
	userID int32,
	activeOnly bool,
) (weakTopics []database.WeakTopic, err error) {
	if _, err = u.GetUser(ctx, userID); err != nil {
		return
	}
	if activeOnly {
		weakTopics, err = u.DB.ListActiveWeakTopicsByUser(ctx, userID)
	} else {
		weakTopics, err = u.DB.ListWeakTopicsByUser(ctx, userID)
	}
	if err != nil {
		err = arena_errors.HandleDBErrors(err, nil, "failed to list weak topics")
	}
	return
}
