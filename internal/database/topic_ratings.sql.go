package database

import (
	"context"
)

const topicRatingColumns = `id, user_id, topic, rating, problems_solved, problems_attempted, created_at, updated_at`

func scanTopicRating(row interface{ Scan(...interface{}) error }) (UserTopicRating, error) {
	var i UserTopicRating
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.Topic,
		&i.Rating,
		&i.ProblemsSolved,
		&i.ProblemsAttempted,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getTopicRating = `
SELECT ` + topicRatingColumns + `
FROM user_topic_ratings
WHERE user_id = $1 AND topic = $2
`

type GetTopicRatingParams struct {
	UserID int32
	Topic  string
}

func (q *Queries) GetTopicRating(ctx context.Context, arg GetTopicRatingParams) (UserTopicRating, error) {
	return scanTopicRating(q.db.QueryRow(ctx, getTopicRating, arg.UserID, arg.Topic))
}

const createTopicRating = `
INSERT INTO user_topic_ratings (user_id, topic, rating)
VALUES ($1, $2, $3)
RETURNING ` + topicRatingColumns

type CreateTopicRatingParams struct {
	UserID int32
	Topic  string
	Rating int32
}

func (q *Queries) CreateTopicRating(ctx context.Context, arg CreateTopicRatingParams) (UserTopicRating, error) {
	return scanTopicRating(q.db.QueryRow(ctx, createTopicRating, arg.UserID, arg.Topic, arg.Rating))
}

const updateTopicRating = `
UPDATE user_topic_ratings
SET rating = $2,
    problems_solved = $3,
    problems_attempted = $4,
    updated_at = now()
WHERE id = $1
RETURNING ` + topicRatingColumns

type UpdateTopicRatingParams struct {
	ID                int32
	Rating            int32
	ProblemsSolved    int32
	ProblemsAttempted int32
}

func (q *Queries) UpdateTopicRating(ctx context.Context, arg UpdateTopicRatingParams) (UserTopicRating, error) {
	return scanTopicRating(q.db.QueryRow(
		ctx,
		updateTopicRating,
		arg.ID,
		arg.Rating,
		arg.ProblemsSolved,
		arg.ProblemsAttempted,
	))
}

const listTopicRatingsByUser = `
SELECT ` + topicRatingColumns + `
FROM user_topic_ratings
WHERE user_id = $1
ORDER BY topic ASC
`

func (q *Queries) ListTopicRatingsByUser(ctx context.Context, userID int32) ([]UserTopicRating, error) {
	rows, err := q.db.Query(ctx, listTopicRatingsByUser, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []UserTopicRating{}
	for rows.Next() {
		i, err := scanTopicRating(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
