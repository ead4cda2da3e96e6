package leaderboard_service

import (
	"context"
	"strconv"

	"github.com/mastercp/arena/internal/arena_errors"
	"github.com/mastercp/arena/internal/database"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

const leaderboardKey = "arena:leaderboard"

// LeaderboardService ranks users by rating. It keeps a redis sorted set
// as the fast path and falls back to the database when redis is down or
// not configured.
type LeaderboardService struct {
	DB    database.Store
	Redis *redis.Client
}

type Entry struct {
	Rank     int32  `json:"rank"`
	UserID   int32  `json:"user_id"`
	Username string `json:"username"`
	Rating   int32  `json:"rating"`
}

// UpdateScore records the user's rating in the sorted set. A nil client
// makes it a no-op, the database stays the source of truth.
func (l *LeaderboardService) UpdateScore(ctx context.Context, userID, rating int32) error {
	if l.Redis == nil {
		return nil
	}
	return l.Redis.ZAdd(ctx, leaderboardKey, redis.Z{
		Score:  float64(rating),
		Member: strconv.Itoa(int(userID)),
	}).Err()
}

// RemoveUser drops a deleted user from the sorted set.
func (l *LeaderboardService) RemoveUser(ctx context.Context, userID int32) error {
	if l.Redis == nil {
		return nil
	}
	return l.Redis.ZRem(ctx, leaderboardKey, strconv.Itoa(int(userID))).Err()
}

// Top returns the highest rated users.
func (l *LeaderboardService) Top(ctx context.Context, limit int32) (entries []Entry, err error) {
	if limit <= 0 {
		limit = 10
	}

	if l.Redis != nil {
		entries, err = l.topFromRedis(ctx, limit)
		if err == nil {
			return
		}
		log.Errorf("leaderboard read from redis failed, falling back to database, %v", err)
	}

	return l.topFromDB(ctx, limit)
}

func (l *LeaderboardService) topFromRedis(ctx context.Context, limit int32) ([]Entry, error) {
	members, err := l.Redis.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(limit)-1).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(members))
	for i, member := range members {
		id, convErr := strconv.Atoi(member.Member.(string))
		if convErr != nil {
			log.Warnf("skipping malformed leaderboard member %v", member.Member)
			continue
		}
		user, dbErr := l.DB.GetUserByID(ctx, int32(id))
		if dbErr != nil {
			// the set can lag behind user deletions
			log.Warnf("skipping leaderboard member %d, %v", id, dbErr)
			continue
		}
		entries = append(entries, Entry{
			Rank:     int32(i) + 1,
			UserID:   user.ID,
			Username: user.Username,
			Rating:   int32(member.Score),
		})
	}
	return entries, nil
}

func (l *LeaderboardService) topFromDB(ctx context.Context, limit int32) ([]Entry, error) {
	users, err := l.DB.ListUsers(ctx, database.ListUsersParams{Limit: limit, Offset: 0})
	if err != nil {
		return nil, arena_errors.HandleDBErrors(err, nil, "failed to list users for leaderboard")
	}

	entries := make([]Entry, 0, len(users))
	for i, user := range users {
		entries = append(entries, Entry{
			Rank:     int32(i) + 1,
			UserID:   user.ID,
			Username: user.Username,
			Rating:   user.Rating,
		})
	}
	return entries, nil
}
