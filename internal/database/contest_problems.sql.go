package database

import (
	"context"
	"time"
)

const contestProblemColumns = `id, contest_id, problem_id, problem_name, problem_url, topic, difficulty, source, is_weak_topic_problem, status, started_at, submitted_at, time_taken_seconds, attempts`

func scanContestProblem(row interface{ Scan(...interface{}) error }) (ContestProblem, error) {
	var i ContestProblem
	err := row.Scan(
		&i.ID,
		&i.ContestID,
		&i.ProblemID,
		&i.ProblemName,
		&i.ProblemUrl,
		&i.Topic,
		&i.Difficulty,
		&i.Source,
		&i.IsWeakTopicProblem,
		&i.Status,
		&i.StartedAt,
		&i.SubmittedAt,
		&i.TimeTakenSeconds,
		&i.Attempts,
	)
	return i, err
}

const createContestProblem = `
INSERT INTO contest_problems (contest_id, problem_id, problem_name, problem_url, topic, difficulty, source, is_weak_topic_problem, status)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 'pending')
RETURNING ` + contestProblemColumns

type CreateContestProblemParams struct {
	ContestID          int32
	ProblemID          string
	ProblemName        string
	ProblemUrl         *string
	Topic              string
	Difficulty         int32
	Source             string
	IsWeakTopicProblem bool
}

func (q *Queries) CreateContestProblem(ctx context.Context, arg CreateContestProblemParams) (ContestProblem, error) {
	return scanContestProblem(q.db.QueryRow(
		ctx,
		createContestProblem,
		arg.ContestID,
		arg.ProblemID,
		arg.ProblemName,
		arg.ProblemUrl,
		arg.Topic,
		arg.Difficulty,
		arg.Source,
		arg.IsWeakTopicProblem,
	))
}

const listContestProblems = `
SELECT ` + contestProblemColumns + `
FROM contest_problems
WHERE contest_id = $1
ORDER BY id ASC
`

func (q *Queries) ListContestProblems(ctx context.Context, contestID int32) ([]ContestProblem, error) {
	rows, err := q.db.Query(ctx, listContestProblems, contestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []ContestProblem{}
	for rows.Next() {
		i, err := scanContestProblem(rows)
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

const getContestProblem = `
SELECT ` + contestProblemColumns + `
FROM contest_problems
WHERE contest_id = $1 AND problem_id = $2
`

type GetContestProblemParams struct {
	ContestID int32
	ProblemID string
}

func (q *Queries) GetContestProblem(ctx context.Context, arg GetContestProblemParams) (ContestProblem, error) {
	return scanContestProblem(q.db.QueryRow(ctx, getContestProblem, arg.ContestID, arg.ProblemID))
}

const markContestProblemStarted = `
UPDATE contest_problems
SET started_at = $2
WHERE id = $1 AND started_at IS NULL
RETURNING ` + contestProblemColumns

type MarkContestProblemStartedParams struct {
	ID        int32
	StartedAt time.Time
}

func (q *Queries) MarkContestProblemStarted(ctx context.Context, arg MarkContestProblemStartedParams) (ContestProblem, error) {
	return scanContestProblem(q.db.QueryRow(ctx, markContestProblemStarted, arg.ID, arg.StartedAt))
}

const recordContestProblemSubmission = `
UPDATE contest_problems
SET status = $2,
    submitted_at = $3,
    time_taken_seconds = $4,
    attempts = attempts + 1
WHERE id = $1
RETURNING ` + contestProblemColumns

type RecordContestProblemSubmissionParams struct {
	ID               int32
	Status           SubmissionStatus
	SubmittedAt      time.Time
	TimeTakenSeconds *int32
}

func (q *Queries) RecordContestProblemSubmission(ctx context.Context, arg RecordContestProblemSubmissionParams) (ContestProblem, error) {
	return scanContestProblem(q.db.QueryRow(
		ctx,
		recordContestProblemSubmission,
		arg.ID,
		arg.Status,
		arg.SubmittedAt,
		arg.TimeTakenSeconds,
	))
}

const averageSolveTimeByUser = `
SELECT avg(cp.time_taken_seconds)::float8
FROM contest_problems cp
JOIN contests c ON c.id = cp.contest_id
WHERE c.user_id = $1
  AND cp.status = 'solved'
  AND cp.time_taken_seconds IS NOT NULL
`

func (q *Queries) AverageSolveTimeByUser(ctx context.Context, userID int32) (*float64, error) {
	var avg *float64
	err := q.db.QueryRow(ctx, averageSolveTimeByUser, userID).Scan(&avg)
	return avg, err
}
