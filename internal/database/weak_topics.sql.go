package database

import (
	"context"
	"time"
)

const weakTopicColumns = `id, user_id, topic, current_level, target_level, consecutive_solves, total_attempts, total_failures, detected_at, last_attempt_at, last_level_up_at, resolved_at, is_active`

func scanWeakTopic(row interface{ Scan(...interface{}) error }) (WeakTopic, error) {
	var i WeakTopic
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.Topic,
		&i.CurrentLevel,
		&i.TargetLevel,
		&i.ConsecutiveSolves,
		&i.TotalAttempts,
		&i.TotalFailures,
		&i.DetectedAt,
		&i.LastAttemptAt,
		&i.LastLevelUpAt,
		&i.ResolvedAt,
		&i.IsActive,
	)
	return i, err
}

const getActiveWeakTopic = `
SELECT ` + weakTopicColumns + `
FROM weak_topics
WHERE user_id = $1 AND topic = $2 AND is_active
`

type GetActiveWeakTopicParams struct {
	UserID int32
	Topic  string
}

func (q *Queries) GetActiveWeakTopic(ctx context.Context, arg GetActiveWeakTopicParams) (WeakTopic, error) {
	return scanWeakTopic(q.db.QueryRow(ctx, getActiveWeakTopic, arg.UserID, arg.Topic))
}

const createWeakTopic = `
INSERT INTO weak_topics (user_id, topic, current_level, target_level, detected_at, is_active)
VALUES ($1, $2, $3, $4, $5, TRUE)
RETURNING ` + weakTopicColumns

type CreateWeakTopicParams struct {
	UserID       int32
	Topic        string
	CurrentLevel int32
	TargetLevel  int32
	DetectedAt   time.Time
}

func (q *Queries) CreateWeakTopic(ctx context.Context, arg CreateWeakTopicParams) (WeakTopic, error) {
	return scanWeakTopic(q.db.QueryRow(
		ctx,
		createWeakTopic,
		arg.UserID,
		arg.Topic,
		arg.CurrentLevel,
		arg.TargetLevel,
		arg.DetectedAt,
	))
}

const updateWeakTopicProgress = `
UPDATE weak_topics
SET current_level = $2,
    consecutive_solves = $3,
    total_attempts = $4,
    total_failures = $5,
    last_attempt_at = $6,
    last_level_up_at = $7,
    resolved_at = $8,
    is_active = $9
WHERE id = $1
RETURNING ` + weakTopicColumns

type UpdateWeakTopicProgressParams struct {
	ID                int32
	CurrentLevel      int32
	ConsecutiveSolves int32
	TotalAttempts     int32
	TotalFailures     int32
	LastAttemptAt     *time.Time
	LastLevelUpAt     *time.Time
	ResolvedAt        *time.Time
	IsActive          bool
}

func (q *Queries) UpdateWeakTopicProgress(ctx context.Context, arg UpdateWeakTopicProgressParams) (WeakTopic, error) {
	return scanWeakTopic(q.db.QueryRow(
		ctx,
		updateWeakTopicProgress,
		arg.ID,
		arg.CurrentLevel,
		arg.ConsecutiveSolves,
		arg.TotalAttempts,
		arg.TotalFailures,
		arg.LastAttemptAt,
		arg.LastLevelUpAt,
		arg.ResolvedAt,
		arg.IsActive,
	))
}

const listWeakTopicsByUser = `
SELECT ` + weakTopicColumns + `
FROM weak_topics
WHERE user_id = $1
ORDER BY detected_at ASC
`

func (q *Queries) ListWeakTopicsByUser(ctx context.Context, userID int32) ([]WeakTopic, error) {
	rows, err := q.db.Query(ctx, listWeakTopicsByUser, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []WeakTopic{}
	for rows.Next() {
		i, err := scanWeakTopic(rows)
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

const listActiveWeakTopicsByUser = `
SELECT ` + weakTopicColumns + `
FROM weak_topics
WHERE user_id = $1 AND is_active
ORDER BY detected_at ASC
`

func (q *Queries) ListActiveWeakTopicsByUser(ctx context.Context, userID int32) ([]WeakTopic, error) {
	rows, err := q.db.Query(ctx, listActiveWeakTopicsByUser, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []WeakTopic{}
	for rows.Next() {
		i, err := scanWeakTopic(rows)
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

const countActiveWeakTopicsByUser = `
SELECT count(*) FROM weak_topics WHERE user_id = $1 AND is_active
`

func (q *Queries) CountActiveWeakTopicsByUser(ctx context.Context, userID int32) (int64, error) {
	var count int64
	err := q.db.QueryRow(ctx, countActiveWeakTopicsByUser, userID).Scan(&count)
	return count, err
}
