package database

import (
	"context"
	"time"
)

const contestColumns = `id, user_id, status, rating_at_start, rating_change, num_problems, target_difficulty, started_at, ended_at, time_limit_minutes, problems_solved, total_time_seconds`

func scanContest(row interface{ Scan(...interface{}) error }) (Contest, error) {
	var i Contest
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.Status,
		&i.RatingAtStart,
		&i.RatingChange,
		&i.NumProblems,
		&i.TargetDifficulty,
		&i.StartedAt,
		&i.EndedAt,
		&i.TimeLimitMinutes,
		&i.ProblemsSolved,
		&i.TotalTimeSeconds,
	)
	return i, err
}

const createContest = `
INSERT INTO contests (user_id, status, rating_at_start, num_problems, target_difficulty, started_at, time_limit_minutes)
VALUES ($1, 'active', $2, $3, $4, $5, $6)
RETURNING ` + contestColumns

type CreateContestParams struct {
	UserID           int32
	RatingAtStart    int32
	NumProblems      int32
	TargetDifficulty int32
	StartedAt        time.Time
	TimeLimitMinutes int32
}

func (q *Queries) CreateContest(ctx context.Context, arg CreateContestParams) (Contest, error) {
	return scanContest(q.db.QueryRow(
		ctx,
		createContest,
		arg.UserID,
		arg.RatingAtStart,
		arg.NumProblems,
		arg.TargetDifficulty,
		arg.StartedAt,
		arg.TimeLimitMinutes,
	))
}

const getContestByID = `
SELECT ` + contestColumns + `
FROM contests
WHERE id = $1
`

func (q *Queries) GetContestByID(ctx context.Context, id int32) (Contest, error) {
	return scanContest(q.db.QueryRow(ctx, getContestByID, id))
}

const getContestForUpdate = `
SELECT ` + contestColumns + `
FROM contests
WHERE id = $1
FOR UPDATE
`

func (q *Queries) GetContestForUpdate(ctx context.Context, id int32) (Contest, error) {
	return scanContest(q.db.QueryRow(ctx, getContestForUpdate, id))
}

const getActiveContestByUser = `
SELECT ` + contestColumns + `
FROM contests
WHERE user_id = $1 AND status = 'active'
`

func (q *Queries) GetActiveContestByUser(ctx context.Context, userID int32) (Contest, error) {
	return scanContest(q.db.QueryRow(ctx, getActiveContestByUser, userID))
}

const listContestsByUser = `
SELECT ` + contestColumns + `
FROM contests
WHERE user_id = $1
ORDER BY started_at DESC
LIMIT $2 OFFSET $3
`

type ListContestsByUserParams struct {
	UserID int32
	Limit  int32
	Offset int32
}

func (q *Queries) ListContestsByUser(ctx context.Context, arg ListContestsByUserParams) ([]Contest, error) {
	rows, err := q.db.Query(ctx, listContestsByUser, arg.UserID, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Contest{}
	for rows.Next() {
		i, err := scanContest(rows)
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

const listCompletedContestsByUser = `
SELECT ` + contestColumns + `
FROM contests
WHERE user_id = $1 AND status = 'completed'
ORDER BY ended_at ASC
`

func (q *Queries) ListCompletedContestsByUser(ctx context.Context, userID int32) ([]Contest, error) {
	rows, err := q.db.Query(ctx, listCompletedContestsByUser, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Contest{}
	for rows.Next() {
		i, err := scanContest(rows)
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

const finishContest = `
UPDATE contests
SET status = $2,
    ended_at = $3,
    rating_change = $4,
    problems_solved = $5,
    total_time_seconds = $6
WHERE id = $1
RETURNING ` + contestColumns

type FinishContestParams struct {
	ID               int32
	Status           ContestStatus
	EndedAt          time.Time
	RatingChange     int32
	ProblemsSolved   int32
	TotalTimeSeconds int32
}

func (q *Queries) FinishContest(ctx context.Context, arg FinishContestParams) (Contest, error) {
	return scanContest(q.db.QueryRow(
		ctx,
		finishContest,
		arg.ID,
		arg.Status,
		arg.EndedAt,
		arg.RatingChange,
		arg.ProblemsSolved,
		arg.TotalTimeSeconds,
	))
}

const countContests = `
SELECT count(*) FROM contests
`

func (q *Queries) CountContests(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRow(ctx, countContests).Scan(&count)
	return count, err
}

const countContestsByStatus = `
SELECT count(*) FROM contests WHERE status = $1
`

func (q *Queries) CountContestsByStatus(ctx context.Context, status ContestStatus) (int64, error) {
	var count int64
	err := q.db.QueryRow(ctx, countContestsByStatus, status).Scan(&count)
	return count, err
}

const countCompletedContestsByUser = `
SELECT count(*) FROM contests WHERE user_id = $1 AND status = 'completed'
`

func (q *Queries) CountCompletedContestsByUser(ctx context.Context, userID int32) (int64, error) {
	var count int64
	err := q.db.QueryRow(ctx, countCompletedContestsByUser, userID).Scan(&count)
	return count, err
}

const countPerfectContestsByUser = `
SELECT count(*) FROM contests
WHERE user_id = $1 AND status = 'completed' AND problems_solved = num_problems
`

func (q *Queries) CountPerfectContestsByUser(ctx context.Context, userID int32) (int64, error) {
	var count int64
	err := q.db.QueryRow(ctx, countPerfectContestsByUser, userID).Scan(&count)
	return count, err
}
