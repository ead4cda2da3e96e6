package user_service

import (
	"context"
	"strings"

	"github.com/mastercp/arena/internal/arena_errors"
	"github.com/mastercp/arena/internal/database"
	"github.com/mastercp/arena/internal/service"
	log "github.com/sirupsen/logrus"
)

// Register creates a new user at the starting rating.
func (u *UserService) Register(
	ctx context.Context,
	request RegisterRequest,
) (user database.User, err error) {
	request.Username = strings.TrimSpace(request.Username)
	if err = service.ValidateInput(request); err != nil {
		return
	}

	user, err = u.DB.CreateUser(ctx, database.CreateUserParams{
		Username: request.Username,
		Email:    request.Email,
		Rating:   service.InitialUserRating,
	})
	if err != nil {
		err = arena_errors.HandleDBErrors(err, errMsgsCreateUser, "failed to create user")
		return
	}

	if u.LeaderboardServiceConfig != nil {
		if lbErr := u.LeaderboardServiceConfig.UpdateScore(ctx, user.ID, user.Rating); lbErr != nil {
			log.Errorf("failed to seed leaderboard for user %d, %v", user.ID, lbErr)
		}
	}

	log.WithFields(log.Fields{
		"user_id":  user.ID,
		"username": user.Username,
	}).Info("user registered")

	return
}

var errMsgsCreateUser = map[string]map[string]string{
	arena_errors.CodeUniqueConstraint: {
		"uq_users_username": "username already taken",
		"uq_users_email":    "email already registered",
	},
}
