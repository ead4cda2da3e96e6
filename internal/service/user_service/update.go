package user_service

import (
	"context"

	"github.com/mastercp/arena/internal/arena_errors"
	"github.com/mastercp/arena/internal/database"
	"github.com/mastercp/arena/internal/service"
	log "github.com/sirupsen/logrus"
)

// UpdateEmail replaces the user's email address.
func (u *UserService) UpdateEmail(
	ctx context.Context,
	userID int32,
	request UpdateEmailRequest,
) (user database.User, err error) {
	if err = service.ValidateInput(request); err != nil {
		return
	}
	if _, err = u.GetUser(ctx, userID); err != nil {
		return
	}

	user, err = u.DB.UpdateUserEmail(ctx, database.UpdateUserEmailParams{
		ID:    userID,
		Email: &request.Email,
	})
	if err != nil {
		err = arena_errors.HandleDBErrors(
			err,
			map[string]map[string]string{
				arena_errors.CodeUniqueConstraint: {
					"uq_users_email": "email already registered",
				},
			},
			"failed to update email",
		)
	}
	return
}

// DeleteUser removes the user and, through cascading deletes, all of
// their contests, ratings and history.
func (u *UserService) DeleteUser(ctx context.Context, userID int32) (err error) {
	if _, err = u.GetUser(ctx, userID); err != nil {
		return
	}

	if err = u.DB.DeleteUser(ctx, userID); err != nil {
		err = arena_errors.HandleDBErrors(err, nil, "failed to delete user")
		return
	}

	if u.LeaderboardServiceConfig != nil {
		if lbErr := u.LeaderboardServiceConfig.RemoveUser(ctx, userID); lbErr != nil {
			log.Errorf("failed to remove user %d from leaderboard, %v", userID, lbErr)
		}
	}

	log.WithFields(log.Fields{"user_id": userID}).Info("user deleted")
	return
}
