package database

import (
	"context"
	"time"
)

const listRecentProblemIDs = `
SELECT problem_id
FROM problem_history
WHERE user_id = $1 AND last_attempted_at >= $2
`

type ListRecentProblemIDsParams struct {
	UserID int32
	Since  time.Time
}

func (q *Queries) ListRecentProblemIDs(ctx context.Context, arg ListRecentProblemIDsParams) ([]string, error) {
	rows, err := q.db.Query(ctx, listRecentProblemIDs, arg.UserID, arg.Since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		items = append(items, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const upsertProblemHistory = `
INSERT INTO problem_history (user_id, problem_id, last_attempted_at, times_attempted, times_solved, best_time_seconds)
VALUES (
    $1, $2, $3, 1,
    CASE WHEN $4::boolean THEN 1 ELSE 0 END,
    CASE WHEN $4::boolean THEN $5::int ELSE NULL END
)
ON CONFLICT (user_id, problem_id) DO UPDATE
SET last_attempted_at = excluded.last_attempted_at,
    times_attempted = problem_history.times_attempted + 1,
    times_solved = problem_history.times_solved + CASE WHEN $4::boolean THEN 1 ELSE 0 END,
    best_time_seconds = CASE
        WHEN $4::boolean AND $5::int IS NOT NULL
            THEN least(coalesce(problem_history.best_time_seconds, $5::int), $5::int)
        ELSE problem_history.best_time_seconds
    END
RETURNING id, user_id, problem_id, last_attempted_at, times_attempted, times_solved, best_time_seconds
`

type UpsertProblemHistoryParams struct {
	UserID           int32
	ProblemID        string
	AttemptedAt      time.Time
	Solved           bool
	TimeTakenSeconds *int32
}

func (q *Queries) UpsertProblemHistory(ctx context.Context, arg UpsertProblemHistoryParams) (ProblemHistory, error) {
	row := q.db.QueryRow(
		ctx,
		upsertProblemHistory,
		arg.UserID,
		arg.ProblemID,
		arg.AttemptedAt,
		arg.Solved,
		arg.TimeTakenSeconds,
	)
	var i ProblemHistory
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.ProblemID,
		&i.LastAttemptedAt,
		&i.TimesAttempted,
		&i.TimesSolved,
		&i.BestTimeSeconds,
	)
	return i, err
}
